package models

import (
	"time"
)

// Recipe represents a recipe owned by a user
type Recipe struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description,omitempty"`
	Instructions    string    `json:"instructions"`
	PrepTimeMinutes int       `json:"prep_time_minutes"`
	CookTimeMinutes int       `json:"cook_time_minutes"`
	Servings        int       `json:"servings"`
	ImageURL        *string   `json:"image_url,omitempty"`
	AuthorID        int       `json:"author_id"`
	IsPublic        bool      `json:"is_public"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RecipeIngredient is one ingredient row of a recipe, scaled to the
// recipe's base servings
type RecipeIngredient struct {
	ID           int     `json:"id"`
	RecipeID     int     `json:"recipe_id"`
	IngredientID int     `json:"ingredient_id"`
	Amount       float64 `json:"amount"`
	Unit         string  `json:"unit"` // g, kg, ml, l, cup, tbsp, tsp, unit
}

// RecipeIngredientWithDetails includes the ingredient's name and nutrition
type RecipeIngredientWithDetails struct {
	RecipeIngredient
	IngredientName  string              `json:"ingredient_name"`
	Category        MeasurementCategory `json:"category"`
	CaloriesPer100g float64 `json:"calories_per_100g"`
	ProteinPer100g  float64 `json:"protein_per_100g"`
	CarbsPer100g    float64 `json:"carbs_per_100g"`
	FatsPer100g     float64 `json:"fats_per_100g"`
}

// RecipeWithIngredients is a recipe plus its ordered ingredient rows
type RecipeWithIngredients struct {
	Recipe
	Ingredients []*RecipeIngredientWithDetails `json:"ingredients"`
	// Per-serving nutrition, computed from the ingredient rows
	CaloriesPerServing float64 `json:"calories_per_serving"`
	ProteinPerServing  float64 `json:"protein_per_serving"`
	CarbsPerServing    float64 `json:"carbs_per_serving"`
	FatsPerServing     float64 `json:"fats_per_serving"`
}

// RecipeIngredientInput is one ingredient row in a create/update request
type RecipeIngredientInput struct {
	IngredientID int     `json:"ingredient_id"`
	Amount       float64 `json:"amount"`
	Unit         string  `json:"unit"`
}

// CreateRecipeRequest is the request body for creating a recipe
type CreateRecipeRequest struct {
	Title           string                  `json:"title"`
	Description     *string                 `json:"description,omitempty"`
	Instructions    string                  `json:"instructions"`
	PrepTimeMinutes int                     `json:"prep_time_minutes"`
	CookTimeMinutes int                     `json:"cook_time_minutes"`
	Servings        int                     `json:"servings"`
	ImageURL        *string                 `json:"image_url,omitempty"`
	IsPublic        *bool                   `json:"is_public,omitempty"`
	Ingredients     []RecipeIngredientInput `json:"ingredients"`
}

// UpdateRecipeRequest is the request body for updating a recipe
type UpdateRecipeRequest struct {
	Title           *string                 `json:"title,omitempty"`
	Description     *string                 `json:"description,omitempty"`
	Instructions    *string                 `json:"instructions,omitempty"`
	PrepTimeMinutes *int                    `json:"prep_time_minutes,omitempty"`
	CookTimeMinutes *int                    `json:"cook_time_minutes,omitempty"`
	Servings        *int                    `json:"servings,omitempty"`
	ImageURL        *string                 `json:"image_url,omitempty"`
	IsPublic        *bool                   `json:"is_public,omitempty"`
	Ingredients     []RecipeIngredientInput `json:"ingredients,omitempty"`
}

// RecipeListParams contains parameters for listing recipes
type RecipeListParams struct {
	Limit  int
	Offset int
	Search string
	UserID *int // include this user's private recipes
}
