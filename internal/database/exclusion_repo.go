package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/nandovidal/platewise/internal/models"
)

var (
	ErrExclusionNotFound = errors.New("exclusion not found")
	ErrNotExclusionOwner = errors.New("not the exclusion owner")
)

// ListExclusions returns the user's exclusions with names attached
func (db *DB) ListExclusions(ctx context.Context, userID int) ([]*models.IngredientExclusionWithDetails, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT
			e.id, e.user_id, e.ingredient_id, e.supermarket_id, e.reason, e.created_at,
			i.name AS ingredient_name, s.name AS supermarket_name
		FROM ingredient_exclusions e
		JOIN ingredients i ON e.ingredient_id = i.id
		JOIN supermarkets s ON e.supermarket_id = s.id
		WHERE e.user_id = $1
		ORDER BY e.created_at DESC, e.id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exclusions []*models.IngredientExclusionWithDetails
	for rows.Next() {
		var e models.IngredientExclusionWithDetails
		err := rows.Scan(
			&e.ID, &e.UserID, &e.IngredientID, &e.SupermarketID, &e.Reason, &e.CreatedAt,
			&e.IngredientName, &e.SupermarketName,
		)
		if err != nil {
			return nil, err
		}
		exclusions = append(exclusions, &e)
	}

	return exclusions, rows.Err()
}

// CreateExclusion marks a supermarket ineligible for an ingredient.
// Re-adding an existing tuple returns the existing row unchanged.
func (db *DB) CreateExclusion(ctx context.Context, userID int, req *models.CreateExclusionRequest) (*models.IngredientExclusion, error) {
	// Verify references exist so the caller gets a clean error
	if _, err := db.GetIngredientByID(ctx, req.IngredientID); err != nil {
		return nil, err
	}
	if _, err := db.GetSupermarketByID(ctx, req.SupermarketID); err != nil {
		return nil, err
	}

	var e models.IngredientExclusion
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO ingredient_exclusions (user_id, ingredient_id, supermarket_id, reason)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ON CONSTRAINT uix_user_ingredient_supermarket DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, user_id, ingredient_id, supermarket_id, reason, created_at
	`, userID, req.IngredientID, req.SupermarketID, req.Reason).Scan(
		&e.ID, &e.UserID, &e.IngredientID, &e.SupermarketID, &e.Reason, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteExclusion removes an exclusion owned by the user
func (db *DB) DeleteExclusion(ctx context.Context, id, userID int) error {
	var ownerID int
	err := db.Pool.QueryRow(ctx, `SELECT user_id FROM ingredient_exclusions WHERE id = $1`, id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrExclusionNotFound
		}
		return err
	}
	if ownerID != userID {
		return ErrNotExclusionOwner
	}

	_, err = db.Pool.Exec(ctx, `DELETE FROM ingredient_exclusions WHERE id = $1`, id)
	return err
}
