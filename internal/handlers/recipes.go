package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nandovidal/platewise/internal/database"
	"github.com/nandovidal/platewise/internal/middleware"
	"github.com/nandovidal/platewise/internal/models"
	"github.com/nandovidal/platewise/internal/nutrition"
	"github.com/nandovidal/platewise/internal/shopping"
)

// ListRecipes returns public recipes plus the user's own
func (h *Handler) ListRecipes(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	params := &models.RecipeListParams{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
		Search: c.Query("search"),
	}
	if userID != 0 {
		params.UserID = &userID
	}

	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 20
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	recipes, total, err := h.db.ListRecipes(c.Context(), params)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list recipes")
	}

	return SuccessWithMeta(c, recipes, total, params.Limit, params.Offset)
}

// GetRecipe returns a recipe with its ingredients and per-serving macros
func (h *Handler) GetRecipe(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid recipe id")
	}

	var userIDPtr *int
	if userID := middleware.GetUserID(c); userID != 0 {
		userIDPtr = &userID
	}

	recipe, err := h.db.GetRecipeWithIngredients(c.Context(), id, userIDPtr)
	if err != nil {
		if errors.Is(err, database.ErrRecipeNotFound) {
			return Error(c, fiber.StatusNotFound, "recipe not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get recipe")
	}

	attachNutrition(recipe)
	return Success(c, recipe)
}

// CreateRecipe creates a recipe with its ingredient rows
func (h *Handler) CreateRecipe(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req models.CreateRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.Title == "" {
		return Error(c, fiber.StatusBadRequest, "title is required")
	}
	if req.Servings < 1 {
		return Error(c, fiber.StatusBadRequest, "servings must be at least 1")
	}
	if msg := h.validateIngredientRows(c, req.Ingredients); msg != "" {
		return Error(c, fiber.StatusBadRequest, msg)
	}

	recipe, err := h.db.CreateRecipe(c.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, database.ErrIngredientNotFound) {
			return Error(c, fiber.StatusBadRequest, "ingredient not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to create recipe")
	}

	attachNutrition(recipe)
	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data:    recipe,
	})
}

// UpdateRecipe applies partial updates to a recipe owned by the user
func (h *Handler) UpdateRecipe(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid recipe id")
	}

	var req models.UpdateRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.Servings != nil && *req.Servings < 1 {
		return Error(c, fiber.StatusBadRequest, "servings must be at least 1")
	}
	if req.Ingredients != nil {
		if msg := h.validateIngredientRows(c, req.Ingredients); msg != "" {
			return Error(c, fiber.StatusBadRequest, msg)
		}
	}

	recipe, err := h.db.UpdateRecipe(c.Context(), id, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrRecipeNotFound):
			return Error(c, fiber.StatusNotFound, "recipe not found")
		case errors.Is(err, database.ErrNotRecipeOwner):
			return Error(c, fiber.StatusForbidden, "not the recipe owner")
		default:
			return Error(c, fiber.StatusInternalServerError, "failed to update recipe")
		}
	}

	attachNutrition(recipe)
	return Success(c, recipe)
}

// DeleteRecipe removes a recipe owned by the user
func (h *Handler) DeleteRecipe(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid recipe id")
	}

	if err := h.db.DeleteRecipe(c.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, database.ErrRecipeNotFound):
			return Error(c, fiber.StatusNotFound, "recipe not found")
		case errors.Is(err, database.ErrNotRecipeOwner):
			return Error(c, fiber.StatusForbidden, "not the recipe owner")
		default:
			return Error(c, fiber.StatusInternalServerError, "failed to delete recipe")
		}
	}

	return Success(c, fiber.Map{"message": "recipe deleted"})
}

// UploadRecipeImage stores a recipe photo and sets its image URL
func (h *Handler) UploadRecipeImage(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if h.storage == nil {
		return Error(c, fiber.StatusServiceUnavailable, "image storage is not configured")
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid recipe id")
	}

	// Ownership check before touching storage
	recipe, err := h.db.GetRecipeWithIngredients(c.Context(), id, &userID)
	if err != nil {
		if errors.Is(err, database.ErrRecipeNotFound) {
			return Error(c, fiber.StatusNotFound, "recipe not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get recipe")
	}
	if recipe.AuthorID != userID {
		return Error(c, fiber.StatusForbidden, "not the recipe owner")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "image file is required")
	}

	contentType := file.Header.Get("Content-Type")
	if !isValidImageType(contentType) {
		return Error(c, fiber.StatusBadRequest, "invalid image type. Supported: JPEG, PNG, WebP")
	}
	if file.Size > 10*1024*1024 {
		return Error(c, fiber.StatusBadRequest, "file too large. Maximum size is 10MB")
	}

	src, err := file.Open()
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to read file")
	}
	defer src.Close()

	key := objectKey("recipes", userID, file.Filename)
	if _, err := h.storage.Upload(c.Context(), key, src, file.Size, contentType); err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to upload image")
	}

	imageURL, err := h.storage.GetPresignedURL(c.Context(), key, 24*time.Hour)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to generate image url")
	}

	updated, err := h.db.UpdateRecipe(c.Context(), id, userID, &models.UpdateRecipeRequest{
		ImageURL: &imageURL,
	})
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to update recipe")
	}

	attachNutrition(updated)
	return Success(c, updated)
}

// validateIngredientRows checks amounts, units and unit-category fit.
// Returns an error message, or "" when the rows are valid.
func (h *Handler) validateIngredientRows(c *fiber.Ctx, rows []models.RecipeIngredientInput) string {
	if len(rows) == 0 {
		return "at least one ingredient is required"
	}

	for _, row := range rows {
		if row.Amount <= 0 {
			return fmt.Sprintf("amount for ingredient %d must be positive", row.IngredientID)
		}

		category, ok := shopping.UnitCategory(row.Unit)
		if !ok {
			return fmt.Sprintf("unknown unit %q", row.Unit)
		}

		ingredient, err := h.db.GetIngredientByID(c.Context(), row.IngredientID)
		if err != nil {
			return fmt.Sprintf("ingredient %d not found", row.IngredientID)
		}
		if ingredient.Category != category {
			return fmt.Sprintf("unit %q does not fit %s, which is measured by %s",
				row.Unit, ingredient.Name, ingredient.Category)
		}
	}

	return ""
}

// attachNutrition fills the recipe's per-serving macro fields
func attachNutrition(recipe *models.RecipeWithIngredients) {
	total := nutrition.ForRecipe(recipe.Ingredients)
	perServing := nutrition.Round(nutrition.PerServing(total, recipe.Servings))

	recipe.CaloriesPerServing = perServing.Calories
	recipe.ProteinPerServing = perServing.Protein
	recipe.CarbsPerServing = perServing.Carbs
	recipe.FatsPerServing = perServing.Fats
}

// isValidImageType checks if the content type is a supported image format
func isValidImageType(contentType string) bool {
	validTypes := []string{
		"image/jpeg",
		"image/jpg",
		"image/png",
		"image/webp",
	}

	for _, t := range validTypes {
		if strings.EqualFold(contentType, t) {
			return true
		}
	}
	return false
}

// objectKey generates a unique storage key for an uploaded file
func objectKey(prefix string, userID int, filename string) string {
	timestamp := time.Now().UnixNano()
	ext := ""
	if idx := strings.LastIndex(filename, "."); idx != -1 {
		ext = strings.ToLower(filename[idx:])
	}
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("%s/%d/%d%s", prefix, userID, timestamp, ext)
}
