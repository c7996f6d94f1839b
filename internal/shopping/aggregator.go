package shopping

import (
	"context"
	"sort"
	"time"

	"github.com/nandovidal/platewise/internal/models"
)

// Source provides the read-only snapshot data a shopping computation
// needs. All reads happen at the start of a request; the computation
// itself never touches shared state.
type Source interface {
	// EntriesInRange returns the user's meal plan entries with a date in
	// the inclusive [start, end] range.
	EntriesInRange(ctx context.Context, userID int, start, end time.Time) ([]*models.MealPlanEntry, error)
	// RecipeForPlan returns a planned recipe with its ingredient rows,
	// regardless of recipe visibility.
	RecipeForPlan(ctx context.Context, recipeID int) (*models.RecipeWithIngredients, error)
	// ActiveSupermarkets returns every supermarket with is_active = true.
	ActiveSupermarkets(ctx context.Context) ([]*models.Supermarket, error)
	// QuotesForIngredient returns all users' price quotes for an
	// ingredient (community pricing), any supermarket.
	QuotesForIngredient(ctx context.Context, ingredientID int) ([]*models.IngredientPrice, error)
	// ExclusionsForUser returns the user's supermarket exclusions.
	ExclusionsForUser(ctx context.Context, userID int) ([]*models.IngredientExclusion, error)
}

// Planner runs shopping list aggregation and price optimization over a
// Source snapshot. It holds no state between calls.
type Planner struct {
	src Source
}

// NewPlanner creates a Planner reading from src
func NewPlanner(src Source) *Planner {
	return &Planner{src: src}
}

// ListItem is one aggregated shopping list row, expressed in the
// canonical unit of its ingredient's measurement category
type ListItem struct {
	IngredientID   int                        `json:"ingredient_id"`
	IngredientName string                     `json:"ingredient_name"`
	TotalAmount    float64                    `json:"total_amount"`
	Unit           string                     `json:"unit"` // kg, L or unit
	Category       models.MeasurementCategory `json:"-"`
}

// List is the aggregated shopping list for a date range
type List struct {
	StartDate  string     `json:"start_date"`
	EndDate    string     `json:"end_date"`
	Items      []ListItem `json:"items"` // ascending ingredient id
	TotalItems int        `json:"total_items"`
}

// BuildList aggregates the ingredient quantities required by every meal
// planned in the inclusive [start, end] range. Each recipe ingredient is
// scaled by plannedServings/recipeServings, normalized to its canonical
// unit, and summed per ingredient. A recipe with zero base servings
// aborts the whole aggregation: partial shopping totals are worse than a
// visible failure.
func (p *Planner) BuildList(ctx context.Context, userID int, start, end time.Time) (*List, error) {
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	entries, err := p.src.EntriesInRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	type accumulated struct {
		name     string
		amount   float64
		category models.MeasurementCategory
	}
	totals := make(map[int]*accumulated)

	for _, entry := range entries {
		recipe, err := p.src.RecipeForPlan(ctx, entry.RecipeID)
		if err != nil {
			return nil, err
		}
		if recipe.Servings == 0 {
			return nil, &DivisionByZeroError{RecipeID: recipe.ID}
		}

		scale := float64(entry.Servings) / float64(recipe.Servings)
		for _, ri := range recipe.Ingredients {
			normalized, category, err := Normalize(ri.Amount*scale, ri.Unit)
			if err != nil {
				return nil, err
			}

			if acc, ok := totals[ri.IngredientID]; ok {
				acc.amount += normalized
			} else {
				totals[ri.IngredientID] = &accumulated{
					name:     ri.IngredientName,
					amount:   normalized,
					category: category,
				}
			}
		}
	}

	list := &List{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Items:     []ListItem{},
	}
	for id, acc := range totals {
		if acc.amount <= 0 {
			continue
		}
		list.Items = append(list.Items, ListItem{
			IngredientID:   id,
			IngredientName: acc.name,
			TotalAmount:    acc.amount,
			Unit:           CanonicalUnit(acc.category),
			Category:       acc.category,
		})
	}

	// Ascending ingredient id keeps responses byte-for-byte reproducible
	sort.Slice(list.Items, func(i, j int) bool {
		return list.Items[i].IngredientID < list.Items[j].IngredientID
	})
	list.TotalItems = len(list.Items)

	return list, nil
}
