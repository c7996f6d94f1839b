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
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrNotRecipeOwner = errors.New("not the recipe owner")
)

const recipeColumns = `
	id, title, description, instructions, prep_time_minutes, cook_time_minutes,
	servings, image_url, author_id, is_public, created_at, updated_at
`

func scanRecipe(row pgx.Row) (*models.Recipe, error) {
	var r models.Recipe
	err := row.Scan(
		&r.ID, &r.Title, &r.Description, &r.Instructions,
		&r.PrepTimeMinutes, &r.CookTimeMinutes, &r.Servings, &r.ImageURL,
		&r.AuthorID, &r.IsPublic, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &r, nil
}

// ListRecipes returns a paginated list of recipes visible to the user
func (db *DB) ListRecipes(ctx context.Context, params *models.RecipeListParams) ([]*models.Recipe, int, error) {
	var whereClauses []string
	var args []interface{}
	argIndex := 1

	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("LOWER(title) LIKE LOWER($%d)", argIndex))
		args = append(args, "%"+params.Search+"%")
		argIndex++
	}

	if params.UserID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("(is_public = true OR author_id = $%d)", argIndex))
		args = append(args, *params.UserID)
		argIndex++
	} else {
		whereClauses = append(whereClauses, "is_public = true")
	}

	whereClause := "WHERE " + strings.Join(whereClauses, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM recipes %s`, whereClause)
	if err := db.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM recipes
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, recipeColumns, whereClause, argIndex, argIndex+1)
	args = append(args, params.Limit, params.Offset)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var recipes []*models.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, 0, err
		}
		recipes = append(recipes, r)
	}

	return recipes, total, rows.Err()
}

// recipeIngredientRows loads the ordered ingredient rows of a recipe with
// ingredient details
func (db *DB) recipeIngredientRows(ctx context.Context, recipeID int) ([]*models.RecipeIngredientWithDetails, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT
			ri.id, ri.recipe_id, ri.ingredient_id, ri.amount, ri.unit,
			i.name, i.category,
			i.calories_per_100g, i.protein_per_100g, i.carbs_per_100g, i.fats_per_100g
		FROM recipe_ingredients ri
		JOIN ingredients i ON ri.ingredient_id = i.id
		WHERE ri.recipe_id = $1
		ORDER BY ri.id ASC
	`, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []*models.RecipeIngredientWithDetails
	for rows.Next() {
		var ri models.RecipeIngredientWithDetails
		err := rows.Scan(
			&ri.ID, &ri.RecipeID, &ri.IngredientID, &ri.Amount, &ri.Unit,
			&ri.IngredientName, &ri.Category,
			&ri.CaloriesPer100g, &ri.ProteinPer100g, &ri.CarbsPer100g, &ri.FatsPer100g,
		)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, &ri)
	}

	return ingredients, rows.Err()
}

// GetRecipeWithIngredients returns a recipe with its ingredient rows,
// enforcing visibility for the requesting user
func (db *DB) GetRecipeWithIngredients(ctx context.Context, id int, userID *int) (*models.RecipeWithIngredients, error) {
	row := db.Pool.QueryRow(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE id = $1`, id)
	recipe, err := scanRecipe(row)
	if err != nil {
		return nil, err
	}

	if !recipe.IsPublic && (userID == nil || *userID != recipe.AuthorID) {
		return nil, ErrRecipeNotFound
	}

	ingredients, err := db.recipeIngredientRows(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.RecipeWithIngredients{
		Recipe:      *recipe,
		Ingredients: ingredients,
	}, nil
}

// CreateRecipe inserts a recipe and its ingredient rows in one transaction
func (db *DB) CreateRecipe(ctx context.Context, authorID int, req *models.CreateRecipeRequest) (*models.RecipeWithIngredients, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	var recipeID int
	err = tx.QueryRow(ctx, `
		INSERT INTO recipes (title, description, instructions, prep_time_minutes, cook_time_minutes, servings, image_url, author_id, is_public)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, req.Title, req.Description, req.Instructions, req.PrepTimeMinutes, req.CookTimeMinutes,
		req.Servings, req.ImageURL, authorID, isPublic,
	).Scan(&recipeID)
	if err != nil {
		return nil, err
	}

	for _, ing := range req.Ingredients {
		_, err = tx.Exec(ctx, `
			INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount, unit)
			VALUES ($1, $2, $3, $4)
		`, recipeID, ing.IngredientID, ing.Amount, ing.Unit)
		if err != nil {
			if strings.Contains(err.Error(), "recipe_ingredients_ingredient_id_fkey") {
				return nil, ErrIngredientNotFound
			}
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return db.GetRecipeWithIngredients(ctx, recipeID, &authorID)
}

// UpdateRecipe applies partial updates; when ingredient rows are provided
// they replace the existing set
func (db *DB) UpdateRecipe(ctx context.Context, id, userID int, req *models.UpdateRecipeRequest) (*models.RecipeWithIngredients, error) {
	row := db.Pool.QueryRow(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE id = $1`, id)
	recipe, err := scanRecipe(row)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != userID {
		return nil, ErrNotRecipeOwner
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE recipes SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			instructions = COALESCE($4, instructions),
			prep_time_minutes = COALESCE($5, prep_time_minutes),
			cook_time_minutes = COALESCE($6, cook_time_minutes),
			servings = COALESCE($7, servings),
			image_url = COALESCE($8, image_url),
			is_public = COALESCE($9, is_public),
			updated_at = NOW()
		WHERE id = $1
	`, id, req.Title, req.Description, req.Instructions, req.PrepTimeMinutes,
		req.CookTimeMinutes, req.Servings, req.ImageURL, req.IsPublic)
	if err != nil {
		return nil, err
	}

	if req.Ingredients != nil {
		_, err = tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, id)
		if err != nil {
			return nil, err
		}
		for _, ing := range req.Ingredients {
			_, err = tx.Exec(ctx, `
				INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount, unit)
				VALUES ($1, $2, $3, $4)
			`, id, ing.IngredientID, ing.Amount, ing.Unit)
			if err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return db.GetRecipeWithIngredients(ctx, id, &userID)
}

// DeleteRecipe removes a recipe owned by the user
func (db *DB) DeleteRecipe(ctx context.Context, id, userID int) error {
	var authorID int
	err := db.Pool.QueryRow(ctx, `SELECT author_id FROM recipes WHERE id = $1`, id).Scan(&authorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrRecipeNotFound
		}
		return err
	}
	if authorID != userID {
		return ErrNotRecipeOwner
	}

	_, err = db.Pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	return err
}
