package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/nandovidal/platewise/internal/models"
)

var (
	ErrPriceNotFound = errors.New("price not found")
	ErrNotPriceOwner = errors.New("not the price owner")
)

// ListPricesForIngredient returns all users' quotes for an ingredient at
// active supermarkets, minus the requesting user's exclusions. This is
// the eligible-quote view the optimizer sees.
func (db *DB) ListPricesForIngredient(ctx context.Context, ingredientID, userID int) ([]*models.IngredientPriceWithDetails, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT
			ip.id, ip.ingredient_id, ip.supermarket_id, ip.price_per_unit, ip.unit,
			ip.user_id, ip.updated_at,
			i.name AS ingredient_name, s.name AS supermarket_name
		FROM ingredient_prices ip
		JOIN ingredients i ON ip.ingredient_id = i.id
		JOIN supermarkets s ON ip.supermarket_id = s.id
		WHERE ip.ingredient_id = $1
		AND s.is_active = true
		AND NOT EXISTS (
			SELECT 1 FROM ingredient_exclusions e
			WHERE e.user_id = $2
			AND e.ingredient_id = ip.ingredient_id
			AND e.supermarket_id = ip.supermarket_id
		)
		ORDER BY ip.price_per_unit ASC, ip.supermarket_id ASC
	`, ingredientID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prices []*models.IngredientPriceWithDetails
	for rows.Next() {
		var p models.IngredientPriceWithDetails
		err := rows.Scan(
			&p.ID, &p.IngredientID, &p.SupermarketID, &p.PricePerUnit, &p.Unit,
			&p.UserID, &p.UpdatedAt,
			&p.IngredientName, &p.SupermarketName,
		)
		if err != nil {
			return nil, err
		}
		prices = append(prices, &p)
	}

	return prices, rows.Err()
}

// UpsertPrice creates or updates the user's quote for an
// (ingredient, supermarket) pair. Last write wins.
func (db *DB) UpsertPrice(ctx context.Context, userID int, req *models.UpsertPriceRequest) (*models.IngredientPrice, error) {
	// Verify references exist so the caller gets a clean error
	if _, err := db.GetIngredientByID(ctx, req.IngredientID); err != nil {
		return nil, err
	}
	if _, err := db.GetSupermarketByID(ctx, req.SupermarketID); err != nil {
		return nil, err
	}

	var p models.IngredientPrice
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO ingredient_prices (ingredient_id, supermarket_id, price_per_unit, unit, user_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT uix_ingredient_supermarket_user
		DO UPDATE SET price_per_unit = EXCLUDED.price_per_unit, unit = EXCLUDED.unit, updated_at = NOW()
		RETURNING id, ingredient_id, supermarket_id, price_per_unit, unit, user_id, updated_at
	`, req.IngredientID, req.SupermarketID, req.PricePerUnit, req.Unit, userID).Scan(
		&p.ID, &p.IngredientID, &p.SupermarketID, &p.PricePerUnit, &p.Unit, &p.UserID, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeletePrice removes a quote owned by the user
func (db *DB) DeletePrice(ctx context.Context, id, userID int) error {
	var ownerID int
	err := db.Pool.QueryRow(ctx, `SELECT user_id FROM ingredient_prices WHERE id = $1`, id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPriceNotFound
		}
		return err
	}
	if ownerID != userID {
		return ErrNotPriceOwner
	}

	_, err = db.Pool.Exec(ctx, `DELETE FROM ingredient_prices WHERE id = $1`, id)
	return err
}
