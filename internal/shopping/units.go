package shopping

import (
	"github.com/nandovidal/platewise/internal/models"
)

// Conversion factors from recipe-scale units to the canonical unit of
// their category (kg for weight, L for volume, pieces for count).
// Spoon and cup factors are fixed constants, not per-ingredient density
// conversions.
var unitConversions = map[string]struct {
	factor   float64
	category models.MeasurementCategory
}{
	"g":    {0.001, models.CategoryWeight},
	"kg":   {1, models.CategoryWeight},
	"ml":   {0.001, models.CategoryVolume},
	"l":    {1, models.CategoryVolume},
	"cup":  {0.24, models.CategoryVolume},
	"tbsp": {0.015, models.CategoryVolume},
	"tsp":  {0.005, models.CategoryVolume},
	"unit": {1, models.CategoryCount},
}

// Normalize converts an amount in a recipe-scale unit to the canonical
// unit of its measurement category. Returns UnknownUnitError for units
// outside the supported set.
func Normalize(amount float64, unit string) (float64, models.MeasurementCategory, error) {
	conv, ok := unitConversions[unit]
	if !ok {
		return 0, "", &UnknownUnitError{Unit: unit}
	}
	return amount * conv.factor, conv.category, nil
}

// KnownUnit reports whether a unit can be normalized
func KnownUnit(unit string) bool {
	_, ok := unitConversions[unit]
	return ok
}

// UnitCategory returns the measurement category a recipe unit belongs to
func UnitCategory(unit string) (models.MeasurementCategory, bool) {
	conv, ok := unitConversions[unit]
	return conv.category, ok
}

// CanonicalUnit returns the unit label used for a category in all
// aggregated output: kg, L or unit
func CanonicalUnit(category models.MeasurementCategory) string {
	switch category {
	case models.CategoryWeight:
		return "kg"
	case models.CategoryVolume:
		return "L"
	default:
		return "unit"
	}
}

// priceUnitCategory maps a quote's price unit to the item category it
// can price. A quote whose unit does not match an item's category is
// ignored as ineligible.
func priceUnitCategory(unit models.PriceUnit) (models.MeasurementCategory, bool) {
	switch unit {
	case models.PriceUnitKg:
		return models.CategoryWeight, true
	case models.PriceUnitLiter:
		return models.CategoryVolume, true
	case models.PriceUnitPiece:
		return models.CategoryCount, true
	}
	return "", false
}
