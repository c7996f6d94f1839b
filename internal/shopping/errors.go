package shopping

import (
	"errors"
	"fmt"
)

// ErrInvalidRange is returned when the end date precedes the start date
var ErrInvalidRange = errors.New("end date must not be before start date")

// UnknownUnitError is returned when a recipe ingredient carries a unit
// outside the supported set
type UnknownUnitError struct {
	Unit string
}

func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("unknown unit %q", e.Unit)
}

// ReferenceNotFoundError is returned when a plan entry points at a recipe
// or ingredient that no longer exists
type ReferenceNotFoundError struct {
	Kind string // "recipe" or "ingredient"
	ID   int
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// DivisionByZeroError is returned when a planned recipe has zero base
// servings. This is upstream data corruption, not a client fault: the
// whole aggregation is discarded since partial shopping totals would be
// silently wrong.
type DivisionByZeroError struct {
	RecipeID int
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("recipe %d has zero base servings", e.RecipeID)
}
