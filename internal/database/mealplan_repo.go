package database

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nandovidal/platewise/internal/models"
)

var (
	ErrMealPlanEntryNotFound = errors.New("meal plan entry not found")
	ErrNotMealPlanOwner      = errors.New("not the meal plan entry owner")
)

const mealPlanColumns = `
	id, user_id, recipe_id, date, meal_type, servings, is_cooked, created_at, updated_at
`

func scanMealPlanEntry(row pgx.Row) (*models.MealPlanEntry, error) {
	var e models.MealPlanEntry
	err := row.Scan(
		&e.ID, &e.UserID, &e.RecipeID, &e.Date, &e.MealType,
		&e.Servings, &e.IsCooked, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMealPlanEntryNotFound
		}
		return nil, err
	}
	return &e, nil
}

// ListMealPlanEntries returns the user's entries with a date in the
// inclusive [start, end] range, ordered by date then meal type
func (db *DB) ListMealPlanEntries(ctx context.Context, userID int, start, end time.Time) ([]*models.MealPlanEntry, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT `+mealPlanColumns+`
		FROM meal_plan_entries
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC, meal_type ASC, id ASC
	`, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.MealPlanEntry
	for rows.Next() {
		e, err := scanMealPlanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// GetMealPlanEntryByID returns one entry
func (db *DB) GetMealPlanEntryByID(ctx context.Context, id int) (*models.MealPlanEntry, error) {
	row := db.Pool.QueryRow(ctx, `SELECT `+mealPlanColumns+` FROM meal_plan_entries WHERE id = $1`, id)
	return scanMealPlanEntry(row)
}

// CreateMealPlanEntry schedules a recipe for the user
func (db *DB) CreateMealPlanEntry(ctx context.Context, userID, recipeID int, date time.Time, mealType models.MealType, servings int) (*models.MealPlanEntry, error) {
	// Verify the recipe exists first so the caller gets a clean error
	var exists bool
	err := db.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM recipes WHERE id = $1)`, recipeID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrRecipeNotFound
	}

	row := db.Pool.QueryRow(ctx, `
		INSERT INTO meal_plan_entries (user_id, recipe_id, date, meal_type, servings)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+mealPlanColumns,
		userID, recipeID, date, mealType, servings,
	)
	return scanMealPlanEntry(row)
}

// UpdateMealPlanEntry applies partial updates to an entry owned by the user
func (db *DB) UpdateMealPlanEntry(ctx context.Context, id, userID int, date *time.Time, mealType *models.MealType, servings *int, isCooked *bool) (*models.MealPlanEntry, error) {
	entry, err := db.GetMealPlanEntryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, ErrNotMealPlanOwner
	}

	row := db.Pool.QueryRow(ctx, `
		UPDATE meal_plan_entries SET
			date = COALESCE($2, date),
			meal_type = COALESCE($3, meal_type),
			servings = COALESCE($4, servings),
			is_cooked = COALESCE($5, is_cooked),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+mealPlanColumns,
		id, date, mealType, servings, isCooked,
	)
	return scanMealPlanEntry(row)
}

// DeleteMealPlanEntry removes an entry owned by the user
func (db *DB) DeleteMealPlanEntry(ctx context.Context, id, userID int) error {
	entry, err := db.GetMealPlanEntryByID(ctx, id)
	if err != nil {
		return err
	}
	if entry.UserID != userID {
		return ErrNotMealPlanOwner
	}

	_, err = db.Pool.Exec(ctx, `DELETE FROM meal_plan_entries WHERE id = $1`, id)
	return err
}
