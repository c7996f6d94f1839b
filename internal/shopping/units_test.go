package shopping

import (
	"errors"
	"math"
	"testing"

	"github.com/nandovidal/platewise/internal/models"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		amount       float64
		unit         string
		want         float64
		wantCategory models.MeasurementCategory
	}{
		{"grams to kg", 400, "g", 0.4, models.CategoryWeight},
		{"kg stays kg", 2.5, "kg", 2.5, models.CategoryWeight},
		{"ml to liters", 250, "ml", 0.25, models.CategoryVolume},
		{"liters stay liters", 1.5, "l", 1.5, models.CategoryVolume},
		{"cup to liters", 2, "cup", 0.48, models.CategoryVolume},
		{"tablespoon to liters", 3, "tbsp", 0.045, models.CategoryVolume},
		{"teaspoon to liters", 1, "tsp", 0.005, models.CategoryVolume},
		{"discrete units stay count", 6, "unit", 6, models.CategoryCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, category, err := Normalize(tt.amount, tt.unit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Normalize(%v, %q) = %v, want %v", tt.amount, tt.unit, got, tt.want)
			}
			if category != tt.wantCategory {
				t.Errorf("category = %q, want %q", category, tt.wantCategory)
			}
		})
	}
}

func TestNormalizeUnknownUnit(t *testing.T) {
	for _, unit := range []string{"oz", "lb", "pinch", "", "G"} {
		_, _, err := Normalize(1, unit)
		if err == nil {
			t.Errorf("Normalize(1, %q) did not fail", unit)
			continue
		}
		var unknownErr *UnknownUnitError
		if !errors.As(err, &unknownErr) {
			t.Errorf("Normalize(1, %q) error = %v, want UnknownUnitError", unit, err)
		} else if unknownErr.Unit != unit {
			t.Errorf("UnknownUnitError.Unit = %q, want %q", unknownErr.Unit, unit)
		}
	}
}

func TestCanonicalUnit(t *testing.T) {
	tests := []struct {
		category models.MeasurementCategory
		want     string
	}{
		{models.CategoryWeight, "kg"},
		{models.CategoryVolume, "L"},
		{models.CategoryCount, "unit"},
	}
	for _, tt := range tests {
		if got := CanonicalUnit(tt.category); got != tt.want {
			t.Errorf("CanonicalUnit(%q) = %q, want %q", tt.category, got, tt.want)
		}
	}
}
