package nutrition

import (
	"math"
	"testing"

	"github.com/nandovidal/platewise/internal/models"
)

func ingredientRow(amount float64, unit string, calories, protein, carbs, fats float64) *models.RecipeIngredientWithDetails {
	return &models.RecipeIngredientWithDetails{
		RecipeIngredient: models.RecipeIngredient{
			Amount: amount,
			Unit:   unit,
		},
		CaloriesPer100g: calories,
		ProteinPer100g:  protein,
		CarbsPer100g:    carbs,
		FatsPer100g:     fats,
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestForIngredient(t *testing.T) {
	tests := []struct {
		name string
		row  *models.RecipeIngredientWithDetails
		want Facts
	}{
		{
			name: "grams scale against per 100g reference",
			row:  ingredientRow(250, "g", 52, 0.3, 14, 0.2),
			want: Facts{Calories: 130, Protein: 0.75, Carbs: 35, Fats: 0.5},
		},
		{
			name: "millilitres treated like grams",
			row:  ingredientRow(50, "ml", 884, 0, 0, 100),
			want: Facts{Calories: 442, Protein: 0, Carbs: 0, Fats: 50},
		},
		{
			name: "one countable unit counts as 100g",
			row:  ingredientRow(2, "unit", 155, 13, 1.1, 11),
			want: Facts{Calories: 155, Protein: 13, Carbs: 1.1, Fats: 11},
		},
		{
			name: "kilograms convert to grams first",
			row:  ingredientRow(0.5, "kg", 100, 10, 20, 5),
			want: Facts{Calories: 500, Protein: 50, Carbs: 100, Fats: 25},
		},
		{
			name: "unknown unit falls back to per 100 scaling",
			row:  ingredientRow(30, "tbsp", 100, 0, 0, 0),
			want: Facts{Calories: 30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForIngredient(tt.row)
			if !approxEqual(got.Calories, tt.want.Calories) ||
				!approxEqual(got.Protein, tt.want.Protein) ||
				!approxEqual(got.Carbs, tt.want.Carbs) ||
				!approxEqual(got.Fats, tt.want.Fats) {
				t.Errorf("ForIngredient() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestForRecipeSumsRows(t *testing.T) {
	rows := []*models.RecipeIngredientWithDetails{
		ingredientRow(200, "g", 52, 0.3, 14, 0.2),
		ingredientRow(100, "g", 364, 10, 76, 1),
	}

	got := ForRecipe(rows)
	want := Facts{Calories: 468, Protein: 10.6, Carbs: 104, Fats: 1.4}

	if !approxEqual(got.Calories, want.Calories) ||
		!approxEqual(got.Protein, want.Protein) ||
		!approxEqual(got.Carbs, want.Carbs) ||
		!approxEqual(got.Fats, want.Fats) {
		t.Errorf("ForRecipe() = %+v, want %+v", got, want)
	}
}

func TestPerServing(t *testing.T) {
	total := Facts{Calories: 800, Protein: 40, Carbs: 100, Fats: 20}

	got := PerServing(total, 4)
	want := Facts{Calories: 200, Protein: 10, Carbs: 25, Fats: 5}
	if got != want {
		t.Errorf("PerServing(4) = %+v, want %+v", got, want)
	}

	if got := PerServing(total, 0); got != (Facts{}) {
		t.Errorf("PerServing(0) = %+v, want zero facts", got)
	}
}

func TestScale(t *testing.T) {
	perServing := Facts{Calories: 200, Protein: 10, Carbs: 25, Fats: 5}

	got := Scale(perServing, 3)
	want := Facts{Calories: 600, Protein: 30, Carbs: 75, Fats: 15}
	if got != want {
		t.Errorf("Scale(3) = %+v, want %+v", got, want)
	}
}

func TestRound(t *testing.T) {
	got := Round(Facts{Calories: 123.456, Protein: 0.005, Carbs: 9.994, Fats: 1})
	want := Facts{Calories: 123.46, Protein: 0.01, Carbs: 9.99, Fats: 1}
	if got != want {
		t.Errorf("Round() = %+v, want %+v", got, want)
	}
}
