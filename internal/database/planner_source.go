package database

import (
	"context"
	"errors"
	"time"

	"github.com/nandovidal/platewise/internal/models"
	"github.com/nandovidal/platewise/internal/shopping"
)

// The methods below implement shopping.Source, giving the planner its
// per-request read-only snapshot.

// EntriesInRange returns the user's meal plan entries with a date in the
// inclusive [start, end] range
func (db *DB) EntriesInRange(ctx context.Context, userID int, start, end time.Time) ([]*models.MealPlanEntry, error) {
	return db.ListMealPlanEntries(ctx, userID, start, end)
}

// RecipeForPlan returns a planned recipe with its ingredient rows. No
// visibility check: a plan entry keeps working even if its recipe is
// later made private.
func (db *DB) RecipeForPlan(ctx context.Context, recipeID int) (*models.RecipeWithIngredients, error) {
	row := db.Pool.QueryRow(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE id = $1`, recipeID)
	recipe, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, ErrRecipeNotFound) {
			return nil, &shopping.ReferenceNotFoundError{Kind: "recipe", ID: recipeID}
		}
		return nil, err
	}

	ingredients, err := db.recipeIngredientRows(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	return &models.RecipeWithIngredients{
		Recipe:      *recipe,
		Ingredients: ingredients,
	}, nil
}

// ActiveSupermarkets returns every supermarket with is_active = true
func (db *DB) ActiveSupermarkets(ctx context.Context) ([]*models.Supermarket, error) {
	return db.ListSupermarkets(ctx, true)
}

// QuotesForIngredient returns all users' quotes for an ingredient at any
// supermarket. The catalog snapshot filters out inactive supermarkets.
func (db *DB) QuotesForIngredient(ctx context.Context, ingredientID int) ([]*models.IngredientPrice, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, ingredient_id, supermarket_id, price_per_unit, unit, user_id, updated_at
		FROM ingredient_prices
		WHERE ingredient_id = $1
		ORDER BY supermarket_id ASC, user_id ASC
	`, ingredientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []*models.IngredientPrice
	for rows.Next() {
		var p models.IngredientPrice
		err := rows.Scan(&p.ID, &p.IngredientID, &p.SupermarketID, &p.PricePerUnit, &p.Unit, &p.UserID, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, &p)
	}

	return quotes, rows.Err()
}

// ExclusionsForUser returns the user's supermarket exclusions
func (db *DB) ExclusionsForUser(ctx context.Context, userID int) ([]*models.IngredientExclusion, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, user_id, ingredient_id, supermarket_id, reason, created_at
		FROM ingredient_exclusions
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exclusions []*models.IngredientExclusion
	for rows.Next() {
		var e models.IngredientExclusion
		err := rows.Scan(&e.ID, &e.UserID, &e.IngredientID, &e.SupermarketID, &e.Reason, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		exclusions = append(exclusions, &e)
	}

	return exclusions, rows.Err()
}
