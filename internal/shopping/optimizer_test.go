package shopping

import (
	"context"
	"math"
	"reflect"
	"testing"

	"github.com/nandovidal/platewise/internal/models"
)

func quote(ingredientID, supermarketID, userID int, price float64, unit models.PriceUnit) *models.IngredientPrice {
	return &models.IngredientPrice{
		IngredientID:  ingredientID,
		SupermarketID: supermarketID,
		UserID:        userID,
		PricePerUnit:  price,
		Unit:          unit,
	}
}

func twoStoreSource() *fakeSource {
	src := tomatoSoupSource()
	src.supermarkets = []*models.Supermarket{
		{ID: 1, Name: "StoreA", IsActive: true},
		{ID: 2, Name: "StoreB", IsActive: true},
	}
	src.quotes = map[int][]*models.IngredientPrice{
		7: {
			quote(7, 1, 1, 2.00, models.PriceUnitKg),
			quote(7, 2, 1, 1.50, models.PriceUnitKg),
		},
	}
	return src
}

func optimize(t *testing.T, src *fakeSource) *OptimizedList {
	t.Helper()
	p := NewPlanner(src)
	out, err := p.BuildOptimizedList(context.Background(), 1, day("2025-03-01"), day("2025-03-07"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out
}

func TestOptimizePicksCheapestSupermarket(t *testing.T) {
	out := optimize(t, twoStoreSource())

	if out.TotalItems != 1 || out.ItemsWithPrices != 1 {
		t.Fatalf("totals = %d/%d, want 1/1", out.ItemsWithPrices, out.TotalItems)
	}

	item := out.Items[0]
	if item.CheapestSupermarketID == nil || *item.CheapestSupermarketID != 2 {
		t.Fatalf("item allocated to %v, want StoreB (2)", item.CheapestSupermarketID)
	}
	if *item.CheapestSupermarket != "StoreB" {
		t.Errorf("CheapestSupermarket = %q, want StoreB", *item.CheapestSupermarket)
	}
	// 0.8 kg * 1.50/kg = 1.20
	if math.Abs(*item.TotalCost-1.20) > 1e-9 {
		t.Errorf("TotalCost = %v, want 1.20", *item.TotalCost)
	}
	if math.Abs(out.TotalOptimized-1.20) > 1e-9 {
		t.Errorf("TotalOptimized = %v, want 1.20", out.TotalOptimized)
	}

	if len(out.SupermarketTotals) != 1 {
		t.Fatalf("SupermarketTotals = %v, want one entry", out.SupermarketTotals)
	}
	st := out.SupermarketTotals[0]
	if st.SupermarketID != 2 || st.ItemCount != 1 || math.Abs(st.TotalPrice-1.20) > 1e-9 {
		t.Errorf("SupermarketTotals[0] = %+v", st)
	}
}

func TestOptimizeRespectsExclusions(t *testing.T) {
	src := twoStoreSource()
	src.exclusions = []*models.IngredientExclusion{
		{UserID: 1, IngredientID: 7, SupermarketID: 2},
	}
	out := optimize(t, src)

	item := out.Items[0]
	if item.CheapestSupermarketID == nil || *item.CheapestSupermarketID != 1 {
		t.Fatalf("item allocated to %v, want StoreA (1) after excluding StoreB", item.CheapestSupermarketID)
	}
	// Forced onto the pricier store: 0.8 kg * 2.00/kg = 1.60
	if math.Abs(*item.TotalCost-1.60) > 1e-9 {
		t.Errorf("TotalCost = %v, want 1.60", *item.TotalCost)
	}
}

func TestOptimizeExclusionOfOtherUserIgnored(t *testing.T) {
	src := twoStoreSource()
	src.exclusions = []*models.IngredientExclusion{
		{UserID: 2, IngredientID: 7, SupermarketID: 2},
	}
	out := optimize(t, src)

	if *out.Items[0].CheapestSupermarketID != 2 {
		t.Errorf("another user's exclusion changed the allocation")
	}
}

func TestOptimizeNoEligibleQuotes(t *testing.T) {
	src := tomatoSoupSource()
	src.supermarkets = []*models.Supermarket{{ID: 1, Name: "StoreA", IsActive: true}}
	out := optimize(t, src)

	item := out.Items[0]
	if item.CheapestPrice != nil || item.CheapestSupermarket != nil || item.TotalCost != nil {
		t.Errorf("unpriced item carries price fields: %+v", item)
	}
	if out.ItemsWithPrices != 0 || out.TotalOptimized != 0 {
		t.Errorf("unpriced item leaked into monetary sums")
	}
	if len(out.SupermarketTotals) != 0 {
		t.Errorf("SupermarketTotals = %v, want empty", out.SupermarketTotals)
	}
	if out.PotentialSavings != nil {
		t.Errorf("PotentialSavings = %v, want absent", *out.PotentialSavings)
	}
}

func TestOptimizeIgnoresInactiveSupermarkets(t *testing.T) {
	src := twoStoreSource()
	src.supermarkets[1].IsActive = false // StoreB has the cheaper quote
	out := optimize(t, src)

	if *out.Items[0].CheapestSupermarketID != 1 {
		t.Errorf("inactive supermarket won the allocation")
	}
}

func TestOptimizeIgnoresCategoryMismatchedQuotes(t *testing.T) {
	src := twoStoreSource()
	// A per-liter quote cannot price a weight-category ingredient
	src.quotes[7] = []*models.IngredientPrice{
		quote(7, 1, 1, 2.00, models.PriceUnitKg),
		quote(7, 2, 1, 0.10, models.PriceUnitLiter),
	}
	out := optimize(t, src)

	if *out.Items[0].CheapestSupermarketID != 1 {
		t.Errorf("category-mismatched quote won the allocation")
	}
}

func TestOptimizeTieBreaksOnLowestSupermarketID(t *testing.T) {
	src := twoStoreSource()
	src.quotes[7] = []*models.IngredientPrice{
		quote(7, 2, 1, 1.50, models.PriceUnitKg),
		quote(7, 1, 1, 1.50, models.PriceUnitKg),
	}
	out := optimize(t, src)

	if *out.Items[0].CheapestSupermarketID != 1 {
		t.Errorf("tie broken to %d, want lowest id 1", *out.Items[0].CheapestSupermarketID)
	}
}

func multiIngredientSource() *fakeSource {
	return &fakeSource{
		entries: []*models.MealPlanEntry{
			{ID: 1, UserID: 1, RecipeID: 10, Date: day("2025-03-03"), Servings: 2},
		},
		recipes: map[int]*models.RecipeWithIngredients{
			10: {
				Recipe: models.Recipe{ID: 10, Servings: 2},
				Ingredients: []*models.RecipeIngredientWithDetails{
					recipeRow(1, "Tomato", 1000, "g"),
					recipeRow(2, "Milk", 1000, "ml"),
					recipeRow(3, "Egg", 4, "unit"),
				},
			},
		},
		supermarkets: []*models.Supermarket{
			{ID: 1, Name: "StoreA", IsActive: true},
			{ID: 2, Name: "StoreB", IsActive: true},
		},
		quotes: map[int][]*models.IngredientPrice{
			1: {
				quote(1, 1, 1, 2.00, models.PriceUnitKg),
				quote(1, 2, 1, 1.00, models.PriceUnitKg),
			},
			2: {
				quote(2, 1, 1, 0.90, models.PriceUnitLiter),
				quote(2, 2, 1, 1.10, models.PriceUnitLiter),
			},
			3: {
				quote(3, 1, 1, 0.30, models.PriceUnitPiece),
				quote(3, 2, 1, 0.25, models.PriceUnitPiece),
			},
		},
	}
}

func TestOptimizeSupermarketTotalsOrdering(t *testing.T) {
	out := optimize(t, multiIngredientSource())

	// StoreB gets tomato (1.00) and eggs (1.00), StoreA gets milk (0.90)
	if len(out.SupermarketTotals) != 2 {
		t.Fatalf("SupermarketTotals = %+v, want two entries", out.SupermarketTotals)
	}
	if out.SupermarketTotals[0].SupermarketID != 2 || out.SupermarketTotals[0].ItemCount != 2 {
		t.Errorf("first total = %+v, want StoreB with 2 items", out.SupermarketTotals[0])
	}
	if out.SupermarketTotals[1].SupermarketID != 1 || out.SupermarketTotals[1].ItemCount != 1 {
		t.Errorf("second total = %+v, want StoreA with 1 item", out.SupermarketTotals[1])
	}

	if math.Abs(out.TotalOptimized-2.90) > 1e-9 {
		t.Errorf("TotalOptimized = %v, want 2.90", out.TotalOptimized)
	}
}

func TestOptimizePotentialSavings(t *testing.T) {
	out := optimize(t, multiIngredientSource())

	// Both stores carry every priced ingredient.
	// StoreA alone: 2.00 + 0.90 + 4*0.30 = 4.10
	// StoreB alone: 1.00 + 1.10 + 4*0.25 = 3.10  <- cheapest baseline
	// Optimized: 2.90, savings 0.20
	if out.PotentialSavings == nil {
		t.Fatal("PotentialSavings absent, want 0.20")
	}
	if math.Abs(*out.PotentialSavings-0.20) > 1e-9 {
		t.Errorf("PotentialSavings = %v, want 0.20", *out.PotentialSavings)
	}
}

func TestOptimizePotentialSavingsAbsentWithoutFullCoverage(t *testing.T) {
	src := multiIngredientSource()
	// No single store quotes all three ingredients anymore
	src.quotes[1] = []*models.IngredientPrice{quote(1, 1, 1, 2.00, models.PriceUnitKg)}
	src.quotes[2] = []*models.IngredientPrice{quote(2, 2, 1, 0.90, models.PriceUnitLiter)}
	out := optimize(t, src)

	if out.ItemsWithPrices != 3 {
		t.Fatalf("ItemsWithPrices = %d, want 3", out.ItemsWithPrices)
	}
	if out.PotentialSavings != nil {
		t.Errorf("PotentialSavings = %v, want absent", *out.PotentialSavings)
	}
}

func TestOptimizeNeverBeatenBySingleStore(t *testing.T) {
	out := optimize(t, multiIngredientSource())

	if out.PotentialSavings != nil && *out.PotentialSavings < 0 {
		t.Errorf("single store beat the optimizer with no exclusions: savings %v", *out.PotentialSavings)
	}
}

func TestOptimizeRecommendation(t *testing.T) {
	out := optimize(t, multiIngredientSource())

	want := "Best option: Buy 2 items at StoreB (€2.00) and 1 items at StoreA (€0.90)"
	if out.RecommendedDistribution != want {
		t.Errorf("RecommendedDistribution = %q, want %q", out.RecommendedDistribution, want)
	}
}

func TestOptimizeIsDeterministic(t *testing.T) {
	first := optimize(t, multiIngredientSource())
	second := optimize(t, multiIngredientSource())

	if !reflect.DeepEqual(first, second) {
		t.Errorf("same inputs produced different output:\n%+v\n%+v", first, second)
	}
}
