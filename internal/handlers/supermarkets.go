package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/nandovidal/platewise/internal/database"
	"github.com/nandovidal/platewise/internal/models"
)

// ListSupermarkets returns all supermarkets. Pass active=true to get
// only the ones the optimizer considers.
func (h *Handler) ListSupermarkets(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active", false)

	supermarkets, err := h.db.ListSupermarkets(c.Context(), activeOnly)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list supermarkets")
	}

	return Success(c, supermarkets)
}

// GetSupermarket returns a single supermarket
func (h *Handler) GetSupermarket(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid supermarket id")
	}

	supermarket, err := h.db.GetSupermarketByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrSupermarketNotFound) {
			return Error(c, fiber.StatusNotFound, "supermarket not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get supermarket")
	}

	return Success(c, supermarket)
}

// CreateSupermarket adds a new supermarket
func (h *Handler) CreateSupermarket(c *fiber.Ctx) error {
	var req models.CreateSupermarketRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" {
		return Error(c, fiber.StatusBadRequest, "name is required")
	}

	supermarket, err := h.db.CreateSupermarket(c.Context(), &req)
	if err != nil {
		if errors.Is(err, database.ErrSupermarketExists) {
			return Error(c, fiber.StatusConflict, "supermarket name already exists")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to create supermarket")
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data:    supermarket,
	})
}

// UpdateSupermarket applies partial updates, including activation state
func (h *Handler) UpdateSupermarket(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid supermarket id")
	}

	var req models.UpdateSupermarketRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	supermarket, err := h.db.UpdateSupermarket(c.Context(), id, &req)
	if err != nil {
		if errors.Is(err, database.ErrSupermarketNotFound) {
			return Error(c, fiber.StatusNotFound, "supermarket not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to update supermarket")
	}

	return Success(c, supermarket)
}

// DeleteSupermarket removes a supermarket and its prices
func (h *Handler) DeleteSupermarket(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid supermarket id")
	}

	if err := h.db.DeleteSupermarket(c.Context(), id); err != nil {
		if errors.Is(err, database.ErrSupermarketNotFound) {
			return Error(c, fiber.StatusNotFound, "supermarket not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to delete supermarket")
	}

	return Success(c, fiber.Map{"message": "supermarket deleted"})
}
