package models

import (
	"time"
)

// MealType identifies which meal of the day a plan entry covers
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// Valid reports whether the meal type is one of the supported values
func (m MealType) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// MealPlanEntry schedules one recipe for a user on a given date
type MealPlanEntry struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	RecipeID  int       `json:"recipe_id"`
	Date      time.Time `json:"date"`
	MealType  MealType  `json:"meal_type"`
	Servings  int       `json:"servings"` // planned servings, may differ from the recipe's base
	IsCooked  bool      `json:"is_cooked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MealPlanEntryWithNutrition adds recipe info and macros scaled to the
// planned servings
type MealPlanEntryWithNutrition struct {
	MealPlanEntry
	RecipeTitle    string  `json:"recipe_title"`
	RecipeImageURL *string `json:"recipe_image_url,omitempty"`
	Calories       float64 `json:"calories"`
	Protein        float64 `json:"protein"`
	Carbs          float64 `json:"carbs"`
	Fats           float64 `json:"fats"`
}

// CreateMealPlanEntryRequest is the request body for scheduling a meal
type CreateMealPlanEntryRequest struct {
	RecipeID int      `json:"recipe_id"`
	Date     string   `json:"date"` // YYYY-MM-DD
	MealType MealType `json:"meal_type"`
	Servings int      `json:"servings"`
}

// UpdateMealPlanEntryRequest is the request body for updating a plan entry
type UpdateMealPlanEntryRequest struct {
	Date     *string   `json:"date,omitempty"`
	MealType *MealType `json:"meal_type,omitempty"`
	Servings *int      `json:"servings,omitempty"`
	IsCooked *bool     `json:"is_cooked,omitempty"`
}
