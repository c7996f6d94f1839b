package models

import (
	"time"
)

// IngredientExclusion marks a supermarket as ineligible for one ingredient
// for one user. Re-adding the same tuple is idempotent.
type IngredientExclusion struct {
	ID            int       `json:"id"`
	UserID        int       `json:"user_id"`
	IngredientID  int       `json:"ingredient_id"`
	SupermarketID int       `json:"supermarket_id"`
	Reason        *string   `json:"reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// IngredientExclusionWithDetails includes ingredient and supermarket names
type IngredientExclusionWithDetails struct {
	IngredientExclusion
	IngredientName  string `json:"ingredient_name"`
	SupermarketName string `json:"supermarket_name"`
}

// CreateExclusionRequest is the request body for creating an exclusion
type CreateExclusionRequest struct {
	IngredientID  int     `json:"ingredient_id"`
	SupermarketID int     `json:"supermarket_id"`
	Reason        *string `json:"reason,omitempty"`
}
