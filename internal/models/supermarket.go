package models

import (
	"time"
)

// Supermarket represents a store that can carry ingredient prices.
// Inactive supermarkets keep their historical prices but are never
// considered by the shopping optimizer.
type Supermarket struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	LogoURL   *string   `json:"logo_url,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateSupermarketRequest is the request body for creating a supermarket
type CreateSupermarketRequest struct {
	Name    string  `json:"name"`
	LogoURL *string `json:"logo_url,omitempty"`
}

// UpdateSupermarketRequest is the request body for updating a supermarket
type UpdateSupermarketRequest struct {
	Name     *string `json:"name,omitempty"`
	LogoURL  *string `json:"logo_url,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}
