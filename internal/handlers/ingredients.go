package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/nandovidal/platewise/internal/database"
	"github.com/nandovidal/platewise/internal/middleware"
	"github.com/nandovidal/platewise/internal/models"
)

// ListIngredients returns public ingredients plus the user's own
func (h *Handler) ListIngredients(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	params := &models.IngredientListParams{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
		Search: c.Query("search"),
	}
	if userID != 0 {
		params.UserID = &userID
	}

	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 50
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	ingredients, total, err := h.db.ListIngredients(c.Context(), params)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list ingredients")
	}

	return SuccessWithMeta(c, ingredients, total, params.Limit, params.Offset)
}

// GetIngredient returns a single ingredient
func (h *Handler) GetIngredient(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid ingredient id")
	}

	ingredient, err := h.db.GetIngredientByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrIngredientNotFound) {
			return Error(c, fiber.StatusNotFound, "ingredient not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get ingredient")
	}

	return Success(c, ingredient)
}

// CreateIngredient creates a new ingredient owned by the user
func (h *Handler) CreateIngredient(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req models.CreateIngredientRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" {
		return Error(c, fiber.StatusBadRequest, "name is required")
	}
	if !req.Category.Valid() {
		return Error(c, fiber.StatusBadRequest, "category must be weight, volume or count")
	}
	if req.CaloriesPer100g < 0 || req.ProteinPer100g < 0 || req.CarbsPer100g < 0 || req.FatsPer100g < 0 {
		return Error(c, fiber.StatusBadRequest, "nutrition values must not be negative")
	}

	ingredient, err := h.db.CreateIngredient(c.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, database.ErrIngredientExists) {
			return Error(c, fiber.StatusConflict, "ingredient name already exists")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to create ingredient")
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data:    ingredient,
	})
}
