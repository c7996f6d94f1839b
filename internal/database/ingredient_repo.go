package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/nandovidal/platewise/internal/models"
)

var (
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrIngredientExists   = errors.New("ingredient name already exists")
)

const ingredientColumns = `
	id, name, category, calories_per_100g, protein_per_100g, carbs_per_100g, fats_per_100g,
	created_by, is_public, created_at, updated_at
`

func scanIngredient(row pgx.Row) (*models.Ingredient, error) {
	var ing models.Ingredient
	err := row.Scan(
		&ing.ID, &ing.Name, &ing.Category,
		&ing.CaloriesPer100g, &ing.ProteinPer100g, &ing.CarbsPer100g, &ing.FatsPer100g,
		&ing.CreatedBy, &ing.IsPublic, &ing.CreatedAt, &ing.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	return &ing, nil
}

// ListIngredients returns a paginated list of ingredients visible to the user
func (db *DB) ListIngredients(ctx context.Context, params *models.IngredientListParams) ([]*models.Ingredient, int, error) {
	var whereClauses []string
	var args []interface{}
	argIndex := 1

	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("LOWER(name) LIKE LOWER($%d)", argIndex))
		args = append(args, "%"+params.Search+"%")
		argIndex++
	}

	if params.UserID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("(is_public = true OR created_by = $%d)", argIndex))
		args = append(args, *params.UserID)
		argIndex++
	} else {
		whereClauses = append(whereClauses, "is_public = true")
	}

	whereClause := "WHERE " + strings.Join(whereClauses, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM ingredients %s`, whereClause)
	if err := db.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM ingredients
		%s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d
	`, ingredientColumns, whereClause, argIndex, argIndex+1)
	args = append(args, params.Limit, params.Offset)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var ingredients []*models.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, 0, err
		}
		ingredients = append(ingredients, ing)
	}

	return ingredients, total, rows.Err()
}

// GetIngredientByID returns one ingredient
func (db *DB) GetIngredientByID(ctx context.Context, id int) (*models.Ingredient, error) {
	row := db.Pool.QueryRow(ctx, `SELECT `+ingredientColumns+` FROM ingredients WHERE id = $1`, id)
	return scanIngredient(row)
}

// GetIngredientByName returns one ingredient by exact name
func (db *DB) GetIngredientByName(ctx context.Context, name string) (*models.Ingredient, error) {
	row := db.Pool.QueryRow(ctx, `SELECT `+ingredientColumns+` FROM ingredients WHERE name = $1`, name)
	return scanIngredient(row)
}

// CreateIngredient inserts a new ingredient owned by the user
func (db *DB) CreateIngredient(ctx context.Context, userID int, req *models.CreateIngredientRequest) (*models.Ingredient, error) {
	row := db.Pool.QueryRow(ctx, `
		INSERT INTO ingredients (name, category, calories_per_100g, protein_per_100g, carbs_per_100g, fats_per_100g, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+ingredientColumns,
		req.Name, req.Category, req.CaloriesPer100g, req.ProteinPer100g, req.CarbsPer100g, req.FatsPer100g, userID,
	)

	ing, err := scanIngredient(row)
	if err != nil {
		if strings.Contains(err.Error(), "ingredients_name_key") {
			return nil, ErrIngredientExists
		}
		return nil, err
	}
	return ing, nil
}

// CreatePublicIngredient inserts an ingredient with no owner, visible to
// everyone. Used by the seeder.
func (db *DB) CreatePublicIngredient(ctx context.Context, req *models.CreateIngredientRequest) (*models.Ingredient, error) {
	row := db.Pool.QueryRow(ctx, `
		INSERT INTO ingredients (name, category, calories_per_100g, protein_per_100g, carbs_per_100g, fats_per_100g, created_by, is_public)
		VALUES ($1, $2, $3, $4, $5, $6, NULL, true)
		RETURNING `+ingredientColumns,
		req.Name, req.Category, req.CaloriesPer100g, req.ProteinPer100g, req.CarbsPer100g, req.FatsPer100g,
	)

	ing, err := scanIngredient(row)
	if err != nil {
		if strings.Contains(err.Error(), "ingredients_name_key") {
			return nil, ErrIngredientExists
		}
		return nil, err
	}
	return ing, nil
}
