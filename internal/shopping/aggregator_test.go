package shopping

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/nandovidal/platewise/internal/models"
)

// fakeSource is an in-memory Source for engine tests
type fakeSource struct {
	entries      []*models.MealPlanEntry
	recipes      map[int]*models.RecipeWithIngredients
	supermarkets []*models.Supermarket
	quotes       map[int][]*models.IngredientPrice
	exclusions   []*models.IngredientExclusion
}

func (f *fakeSource) EntriesInRange(_ context.Context, userID int, start, end time.Time) ([]*models.MealPlanEntry, error) {
	var out []*models.MealPlanEntry
	for _, e := range f.entries {
		if e.UserID != userID {
			continue
		}
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeSource) RecipeForPlan(_ context.Context, recipeID int) (*models.RecipeWithIngredients, error) {
	r, ok := f.recipes[recipeID]
	if !ok {
		return nil, &ReferenceNotFoundError{Kind: "recipe", ID: recipeID}
	}
	return r, nil
}

func (f *fakeSource) ActiveSupermarkets(_ context.Context) ([]*models.Supermarket, error) {
	var out []*models.Supermarket
	for _, s := range f.supermarkets {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSource) QuotesForIngredient(_ context.Context, ingredientID int) ([]*models.IngredientPrice, error) {
	return f.quotes[ingredientID], nil
}

func (f *fakeSource) ExclusionsForUser(_ context.Context, userID int) ([]*models.IngredientExclusion, error) {
	var out []*models.IngredientExclusion
	for _, e := range f.exclusions {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func recipeRow(ingredientID int, name string, amount float64, unit string) *models.RecipeIngredientWithDetails {
	return &models.RecipeIngredientWithDetails{
		RecipeIngredient: models.RecipeIngredient{
			IngredientID: ingredientID,
			Amount:       amount,
			Unit:         unit,
		},
		IngredientName: name,
	}
}

func tomatoSoupSource() *fakeSource {
	return &fakeSource{
		entries: []*models.MealPlanEntry{
			{ID: 1, UserID: 1, RecipeID: 10, Date: day("2025-03-03"), MealType: models.MealDinner, Servings: 4},
		},
		recipes: map[int]*models.RecipeWithIngredients{
			10: {
				Recipe: models.Recipe{ID: 10, Title: "Tomato Soup", Servings: 2},
				Ingredients: []*models.RecipeIngredientWithDetails{
					recipeRow(7, "Tomato", 400, "g"),
				},
			},
		},
	}
}

func TestBuildListScalesByServings(t *testing.T) {
	p := NewPlanner(tomatoSoupSource())

	list, err := p.BuildList(context.Background(), 1, day("2025-03-01"), day("2025-03-07"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if list.TotalItems != 1 {
		t.Fatalf("TotalItems = %d, want 1", list.TotalItems)
	}
	item := list.Items[0]
	if item.IngredientID != 7 || item.IngredientName != "Tomato" {
		t.Errorf("unexpected item %+v", item)
	}
	// 400 g * 4/2 = 800 g = 0.8 kg
	if math.Abs(item.TotalAmount-0.8) > 1e-9 {
		t.Errorf("TotalAmount = %v, want 0.8", item.TotalAmount)
	}
	if item.Unit != "kg" {
		t.Errorf("Unit = %q, want kg", item.Unit)
	}
}

func TestBuildListAccumulatesAcrossEntries(t *testing.T) {
	src := &fakeSource{
		entries: []*models.MealPlanEntry{
			{ID: 1, UserID: 1, RecipeID: 10, Date: day("2025-03-03"), Servings: 2},
			{ID: 2, UserID: 1, RecipeID: 11, Date: day("2025-03-04"), Servings: 3},
			// Outside the range, must be ignored
			{ID: 3, UserID: 1, RecipeID: 10, Date: day("2025-03-20"), Servings: 8},
			// Another user's entry, must be ignored
			{ID: 4, UserID: 2, RecipeID: 10, Date: day("2025-03-03"), Servings: 8},
		},
		recipes: map[int]*models.RecipeWithIngredients{
			10: {
				Recipe: models.Recipe{ID: 10, Servings: 2},
				Ingredients: []*models.RecipeIngredientWithDetails{
					recipeRow(7, "Tomato", 400, "g"),
					recipeRow(3, "Milk", 500, "ml"),
				},
			},
			11: {
				Recipe: models.Recipe{ID: 11, Servings: 3},
				Ingredients: []*models.RecipeIngredientWithDetails{
					recipeRow(7, "Tomato", 300, "g"),
					recipeRow(9, "Egg", 2, "unit"),
				},
			},
		},
	}
	p := NewPlanner(src)

	list, err := p.BuildList(context.Background(), 1, day("2025-03-01"), day("2025-03-07"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if list.TotalItems != 3 {
		t.Fatalf("TotalItems = %d, want 3", list.TotalItems)
	}

	// Ascending ingredient id
	wantOrder := []int{3, 7, 9}
	for i, want := range wantOrder {
		if list.Items[i].IngredientID != want {
			t.Fatalf("Items[%d].IngredientID = %d, want %d", i, list.Items[i].IngredientID, want)
		}
	}

	// Milk: 500 ml * 2/2 = 0.5 L
	if math.Abs(list.Items[0].TotalAmount-0.5) > 1e-9 || list.Items[0].Unit != "L" {
		t.Errorf("milk = %v %s, want 0.5 L", list.Items[0].TotalAmount, list.Items[0].Unit)
	}
	// Tomato: 400 g * 2/2 + 300 g * 3/3 = 0.7 kg
	if math.Abs(list.Items[1].TotalAmount-0.7) > 1e-9 {
		t.Errorf("tomato = %v, want 0.7", list.Items[1].TotalAmount)
	}
	// Eggs: 2 * 3/3 = 2 units
	if math.Abs(list.Items[2].TotalAmount-2) > 1e-9 || list.Items[2].Unit != "unit" {
		t.Errorf("eggs = %v %s, want 2 unit", list.Items[2].TotalAmount, list.Items[2].Unit)
	}
}

func TestBuildListEmptyRangeIsNotAnError(t *testing.T) {
	p := NewPlanner(&fakeSource{})

	list, err := p.BuildList(context.Background(), 1, day("2025-03-01"), day("2025-03-07"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list.TotalItems != 0 {
		t.Errorf("TotalItems = %d, want 0", list.TotalItems)
	}
	if list.Items == nil || len(list.Items) != 0 {
		t.Errorf("Items = %v, want empty slice", list.Items)
	}
}

func TestBuildListInvalidRange(t *testing.T) {
	p := NewPlanner(tomatoSoupSource())

	_, err := p.BuildList(context.Background(), 1, day("2025-03-07"), day("2025-03-01"))
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("error = %v, want ErrInvalidRange", err)
	}
}

func TestBuildListZeroServingsRecipeAbortsAggregation(t *testing.T) {
	src := &fakeSource{
		entries: []*models.MealPlanEntry{
			{ID: 1, UserID: 1, RecipeID: 10, Date: day("2025-03-02"), Servings: 2},
			{ID: 2, UserID: 1, RecipeID: 11, Date: day("2025-03-03"), Servings: 2},
		},
		recipes: map[int]*models.RecipeWithIngredients{
			10: {
				Recipe: models.Recipe{ID: 10, Servings: 2},
				Ingredients: []*models.RecipeIngredientWithDetails{
					recipeRow(7, "Tomato", 400, "g"),
				},
			},
			11: {
				Recipe: models.Recipe{ID: 11, Servings: 0},
				Ingredients: []*models.RecipeIngredientWithDetails{
					recipeRow(9, "Egg", 2, "unit"),
				},
			},
		},
	}
	p := NewPlanner(src)

	_, err := p.BuildList(context.Background(), 1, day("2025-03-01"), day("2025-03-07"))
	var zeroErr *DivisionByZeroError
	if !errors.As(err, &zeroErr) {
		t.Fatalf("error = %v, want DivisionByZeroError", err)
	}
	if zeroErr.RecipeID != 11 {
		t.Errorf("RecipeID = %d, want 11", zeroErr.RecipeID)
	}
}

func TestBuildListUnknownUnit(t *testing.T) {
	src := tomatoSoupSource()
	src.recipes[10].Ingredients = append(src.recipes[10].Ingredients,
		recipeRow(8, "Flour", 2, "oz"))
	p := NewPlanner(src)

	_, err := p.BuildList(context.Background(), 1, day("2025-03-01"), day("2025-03-07"))
	var unknownErr *UnknownUnitError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("error = %v, want UnknownUnitError", err)
	}
}

func TestBuildListDanglingRecipe(t *testing.T) {
	src := tomatoSoupSource()
	src.entries = append(src.entries,
		&models.MealPlanEntry{ID: 2, UserID: 1, RecipeID: 99, Date: day("2025-03-04"), Servings: 1})
	p := NewPlanner(src)

	_, err := p.BuildList(context.Background(), 1, day("2025-03-01"), day("2025-03-07"))
	var refErr *ReferenceNotFoundError
	if !errors.As(err, &refErr) {
		t.Fatalf("error = %v, want ReferenceNotFoundError", err)
	}
}
