package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nandovidal/platewise/internal/database"
	"github.com/nandovidal/platewise/internal/middleware"
	"github.com/nandovidal/platewise/internal/models"
	"github.com/nandovidal/platewise/internal/nutrition"
)

const dateLayout = "2006-01-02"

// ListMealPlan returns the user's plan entries in a date range, with
// macros scaled to each entry's planned servings
func (h *Handler) ListMealPlan(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	start, end, err := parseDateRange(c)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, err.Error())
	}

	entries, err := h.db.ListMealPlanEntries(c.Context(), userID, start, end)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list meal plan")
	}

	enriched := make([]*models.MealPlanEntryWithNutrition, 0, len(entries))
	for _, entry := range entries {
		e, err := h.entryWithNutrition(c, entry)
		if err != nil {
			return Error(c, fiber.StatusInternalServerError, "failed to load planned recipes")
		}
		enriched = append(enriched, e)
	}

	return Success(c, enriched)
}

// CreateMealPlanEntry schedules a recipe
func (h *Handler) CreateMealPlanEntry(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req models.CreateMealPlanEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "date must be formatted YYYY-MM-DD")
	}
	if !req.MealType.Valid() {
		return Error(c, fiber.StatusBadRequest, "meal_type must be breakfast, lunch, dinner or snack")
	}
	if req.Servings < 1 {
		return Error(c, fiber.StatusBadRequest, "servings must be at least 1")
	}

	entry, err := h.db.CreateMealPlanEntry(c.Context(), userID, req.RecipeID, date, req.MealType, req.Servings)
	if err != nil {
		if errors.Is(err, database.ErrRecipeNotFound) {
			return Error(c, fiber.StatusBadRequest, "recipe not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to create meal plan entry")
	}

	enriched, err := h.entryWithNutrition(c, entry)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to load planned recipe")
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data:    enriched,
	})
}

// UpdateMealPlanEntry applies partial updates to a plan entry
func (h *Handler) UpdateMealPlanEntry(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid entry id")
	}

	var req models.UpdateMealPlanEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	var date *time.Time
	if req.Date != nil {
		parsed, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			return Error(c, fiber.StatusBadRequest, "date must be formatted YYYY-MM-DD")
		}
		date = &parsed
	}
	if req.MealType != nil && !req.MealType.Valid() {
		return Error(c, fiber.StatusBadRequest, "meal_type must be breakfast, lunch, dinner or snack")
	}
	if req.Servings != nil && *req.Servings < 1 {
		return Error(c, fiber.StatusBadRequest, "servings must be at least 1")
	}

	entry, err := h.db.UpdateMealPlanEntry(c.Context(), id, userID, date, req.MealType, req.Servings, req.IsCooked)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrMealPlanEntryNotFound):
			return Error(c, fiber.StatusNotFound, "meal plan entry not found")
		case errors.Is(err, database.ErrNotMealPlanOwner):
			return Error(c, fiber.StatusForbidden, "not the meal plan entry owner")
		default:
			return Error(c, fiber.StatusInternalServerError, "failed to update meal plan entry")
		}
	}

	enriched, err := h.entryWithNutrition(c, entry)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to load planned recipe")
	}

	return Success(c, enriched)
}

// DeleteMealPlanEntry removes a plan entry
func (h *Handler) DeleteMealPlanEntry(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid entry id")
	}

	if err := h.db.DeleteMealPlanEntry(c.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, database.ErrMealPlanEntryNotFound):
			return Error(c, fiber.StatusNotFound, "meal plan entry not found")
		case errors.Is(err, database.ErrNotMealPlanOwner):
			return Error(c, fiber.StatusForbidden, "not the meal plan entry owner")
		default:
			return Error(c, fiber.StatusInternalServerError, "failed to delete meal plan entry")
		}
	}

	return Success(c, fiber.Map{"message": "meal plan entry deleted"})
}

// entryWithNutrition loads the planned recipe and scales its per-serving
// macros to the entry's servings
func (h *Handler) entryWithNutrition(c *fiber.Ctx, entry *models.MealPlanEntry) (*models.MealPlanEntryWithNutrition, error) {
	recipe, err := h.db.RecipeForPlan(c.Context(), entry.RecipeID)
	if err != nil {
		return nil, err
	}

	total := nutrition.ForRecipe(recipe.Ingredients)
	perServing := nutrition.PerServing(total, recipe.Servings)
	scaled := nutrition.Round(nutrition.Scale(perServing, float64(entry.Servings)))

	return &models.MealPlanEntryWithNutrition{
		MealPlanEntry:  *entry,
		RecipeTitle:    recipe.Title,
		RecipeImageURL: recipe.ImageURL,
		Calories:       scaled.Calories,
		Protein:        scaled.Protein,
		Carbs:          scaled.Carbs,
		Fats:           scaled.Fats,
	}, nil
}

// parseDateRange reads and validates the start_date and end_date query
// parameters shared by the planner endpoints
func parseDateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	startStr := c.Query("start_date")
	endStr := c.Query("end_date")
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, errors.New("start_date and end_date are required")
	}

	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("start_date must be formatted YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("end_date must be formatted YYYY-MM-DD")
	}

	return start, end, nil
}
