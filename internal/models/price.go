package models

import (
	"time"
)

// PriceUnit is the canonical unit a price quote is expressed in
type PriceUnit string

const (
	PriceUnitKg    PriceUnit = "kg"
	PriceUnitLiter PriceUnit = "L"
	PriceUnitPiece PriceUnit = "unit"
)

// Valid reports whether the price unit is one of the supported values
func (u PriceUnit) Valid() bool {
	switch u {
	case PriceUnitKg, PriceUnitLiter, PriceUnitPiece:
		return true
	}
	return false
}

// IngredientPrice is a user-contributed price quote for an ingredient at a
// supermarket. At most one quote exists per (ingredient, supermarket, user);
// writes upsert with last-write-wins.
type IngredientPrice struct {
	ID            int       `json:"id"`
	IngredientID  int       `json:"ingredient_id"`
	SupermarketID int       `json:"supermarket_id"`
	PricePerUnit  float64   `json:"price_per_unit"`
	Unit          PriceUnit `json:"unit"`
	UserID        int       `json:"user_id"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IngredientPriceWithDetails includes ingredient and supermarket names
type IngredientPriceWithDetails struct {
	IngredientPrice
	IngredientName  string `json:"ingredient_name"`
	SupermarketName string `json:"supermarket_name"`
}

// UpsertPriceRequest is the request body for creating or updating a price
type UpsertPriceRequest struct {
	IngredientID  int       `json:"ingredient_id"`
	SupermarketID int       `json:"supermarket_id"`
	PricePerUnit  float64   `json:"price_per_unit"`
	Unit          PriceUnit `json:"unit"`
}

// ScannedPrice is a candidate quote parsed from a shelf price-tag photo.
// It is returned to the client for confirmation, never written directly.
type ScannedPrice struct {
	PricePerUnit float64    `json:"price_per_unit"`
	Unit         *PriceUnit `json:"unit,omitempty"`
	ProductName  string     `json:"product_name,omitempty"`
	RawText      string     `json:"raw_text"`
	ImageKey     string     `json:"image_key,omitempty"`
}
