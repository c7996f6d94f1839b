package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/nandovidal/platewise/internal/middleware"
	"github.com/nandovidal/platewise/internal/shopping"
)

// GetShoppingList aggregates the user's planned meals in a date range
// into one deduplicated shopping list
func (h *Handler) GetShoppingList(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	start, end, err := parseDateRange(c)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, err.Error())
	}

	list, err := h.planner.BuildList(c.Context(), userID, start, end)
	if err != nil {
		return shoppingError(c, err)
	}

	return Success(c, list)
}

// GetOptimizedShoppingList builds the shopping list and prices each item
// at its cheapest eligible supermarket
func (h *Handler) GetOptimizedShoppingList(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	start, end, err := parseDateRange(c)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, err.Error())
	}

	list, err := h.planner.BuildOptimizedList(c.Context(), userID, start, end)
	if err != nil {
		return shoppingError(c, err)
	}

	return Success(c, list)
}

// shoppingError maps planner failures to HTTP statuses. A zero-servings
// recipe is a data integrity problem, not a client error.
func shoppingError(c *fiber.Ctx, err error) error {
	var unknownUnit *shopping.UnknownUnitError
	var refNotFound *shopping.ReferenceNotFoundError
	var divByZero *shopping.DivisionByZeroError

	switch {
	case errors.Is(err, shopping.ErrInvalidRange):
		return Error(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &unknownUnit):
		return Error(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &refNotFound):
		return Error(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &divByZero):
		return Error(c, fiber.StatusInternalServerError, err.Error())
	default:
		return Error(c, fiber.StatusInternalServerError, "failed to build shopping list")
	}
}
