package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/nandovidal/platewise/internal/database"
	"github.com/nandovidal/platewise/internal/middleware"
	"github.com/nandovidal/platewise/internal/models"
)

// ListExclusions returns the user's supermarket exclusions
func (h *Handler) ListExclusions(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	exclusions, err := h.db.ListExclusions(c.Context(), userID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list exclusions")
	}

	return Success(c, exclusions)
}

// CreateExclusion marks a supermarket as ineligible for an ingredient.
// Adding the same pair twice keeps the original exclusion.
func (h *Handler) CreateExclusion(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req models.CreateExclusionRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	exclusion, err := h.db.CreateExclusion(c.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrIngredientNotFound):
			return Error(c, fiber.StatusBadRequest, "ingredient not found")
		case errors.Is(err, database.ErrSupermarketNotFound):
			return Error(c, fiber.StatusBadRequest, "supermarket not found")
		default:
			return Error(c, fiber.StatusInternalServerError, "failed to create exclusion")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data:    exclusion,
	})
}

// DeleteExclusion removes one of the user's exclusions
func (h *Handler) DeleteExclusion(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid exclusion id")
	}

	if err := h.db.DeleteExclusion(c.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, database.ErrExclusionNotFound):
			return Error(c, fiber.StatusNotFound, "exclusion not found")
		case errors.Is(err, database.ErrNotExclusionOwner):
			return Error(c, fiber.StatusForbidden, "not the exclusion owner")
		default:
			return Error(c, fiber.StatusInternalServerError, "failed to delete exclusion")
		}
	}

	return Success(c, fiber.Map{"message": "exclusion deleted"})
}
