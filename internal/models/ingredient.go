package models

import (
	"time"
)

// MeasurementCategory determines which canonical unit and which price
// quotes apply to an ingredient
type MeasurementCategory string

const (
	CategoryWeight MeasurementCategory = "weight" // canonical unit kg
	CategoryVolume MeasurementCategory = "volume" // canonical unit L
	CategoryCount  MeasurementCategory = "count"  // canonical unit piece
)

// Valid reports whether the category is one of the supported values
func (c MeasurementCategory) Valid() bool {
	switch c {
	case CategoryWeight, CategoryVolume, CategoryCount:
		return true
	}
	return false
}

// Ingredient represents a base ingredient with nutrition facts per 100g
type Ingredient struct {
	ID              int                 `json:"id"`
	Name            string              `json:"name"`
	Category        MeasurementCategory `json:"category"`
	CaloriesPer100g float64   `json:"calories_per_100g"`
	ProteinPer100g  float64   `json:"protein_per_100g"`
	CarbsPer100g    float64   `json:"carbs_per_100g"`
	FatsPer100g     float64   `json:"fats_per_100g"`
	CreatedBy       *int      `json:"created_by,omitempty"` // nil = public ingredient
	IsPublic        bool      `json:"is_public"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateIngredientRequest is the request body for creating an ingredient
type CreateIngredientRequest struct {
	Name            string              `json:"name"`
	Category        MeasurementCategory `json:"category"`
	CaloriesPer100g float64 `json:"calories_per_100g"`
	ProteinPer100g  float64 `json:"protein_per_100g"`
	CarbsPer100g    float64 `json:"carbs_per_100g"`
	FatsPer100g     float64 `json:"fats_per_100g"`
}

// IngredientListParams contains parameters for listing ingredients
type IngredientListParams struct {
	Limit  int
	Offset int
	Search string
	UserID *int // include this user's private ingredients
}
