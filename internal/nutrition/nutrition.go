// Package nutrition computes macro totals for recipes and meal plan
// entries from per-100g ingredient data.
package nutrition

import (
	"math"

	"github.com/nandovidal/platewise/internal/models"
)

// Facts holds the four tracked macros for some quantity of food
type Facts struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// ForIngredient calculates the macros one ingredient row contributes.
// Gram and millilitre amounts map to the per-100g reference directly;
// a countable unit is treated as 100g. Other units fall back to the
// same per-100 scaling.
func ForIngredient(ri *models.RecipeIngredientWithDetails) Facts {
	var multiplier float64
	switch ri.Unit {
	case "g", "ml":
		multiplier = ri.Amount / 100
	case "unit":
		multiplier = 1.0
	case "kg", "l":
		multiplier = ri.Amount * 10
	default:
		multiplier = ri.Amount / 100
	}

	return Facts{
		Calories: ri.CaloriesPer100g * multiplier,
		Protein:  ri.ProteinPer100g * multiplier,
		Carbs:    ri.CarbsPer100g * multiplier,
		Fats:     ri.FatsPer100g * multiplier,
	}
}

// ForRecipe sums the macros of all ingredient rows
func ForRecipe(ingredients []*models.RecipeIngredientWithDetails) Facts {
	var total Facts
	for _, ri := range ingredients {
		f := ForIngredient(ri)
		total.Calories += f.Calories
		total.Protein += f.Protein
		total.Carbs += f.Carbs
		total.Fats += f.Fats
	}
	return total
}

// PerServing divides recipe totals by the recipe's base servings.
// Servings below 1 yield zero facts.
func PerServing(total Facts, servings int) Facts {
	if servings < 1 {
		return Facts{}
	}
	s := float64(servings)
	return Facts{
		Calories: total.Calories / s,
		Protein:  total.Protein / s,
		Carbs:    total.Carbs / s,
		Fats:     total.Fats / s,
	}
}

// Scale multiplies per-serving facts by the servings planned for a meal
func Scale(perServing Facts, servings float64) Facts {
	return Facts{
		Calories: perServing.Calories * servings,
		Protein:  perServing.Protein * servings,
		Carbs:    perServing.Carbs * servings,
		Fats:     perServing.Fats * servings,
	}
}

// Round rounds all facts to two decimal places for API responses
func Round(f Facts) Facts {
	return Facts{
		Calories: round2(f.Calories),
		Protein:  round2(f.Protein),
		Carbs:    round2(f.Carbs),
		Fats:     round2(f.Fats),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
