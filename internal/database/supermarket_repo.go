package database

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/nandovidal/platewise/internal/models"
)

var (
	ErrSupermarketNotFound = errors.New("supermarket not found")
	ErrSupermarketExists   = errors.New("supermarket name already exists")
)

const supermarketColumns = `
	id, name, logo_url, is_active, created_at, updated_at
`

func scanSupermarket(row pgx.Row) (*models.Supermarket, error) {
	var s models.Supermarket
	err := row.Scan(&s.ID, &s.Name, &s.LogoURL, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSupermarketNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListSupermarkets returns all supermarkets, optionally only active ones
func (db *DB) ListSupermarkets(ctx context.Context, activeOnly bool) ([]*models.Supermarket, error) {
	query := `SELECT ` + supermarketColumns + ` FROM supermarkets`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY name ASC`

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var supermarkets []*models.Supermarket
	for rows.Next() {
		s, err := scanSupermarket(rows)
		if err != nil {
			return nil, err
		}
		supermarkets = append(supermarkets, s)
	}

	return supermarkets, rows.Err()
}

// GetSupermarketByID returns one supermarket
func (db *DB) GetSupermarketByID(ctx context.Context, id int) (*models.Supermarket, error) {
	row := db.Pool.QueryRow(ctx, `SELECT `+supermarketColumns+` FROM supermarkets WHERE id = $1`, id)
	return scanSupermarket(row)
}

// CreateSupermarket inserts a new supermarket
func (db *DB) CreateSupermarket(ctx context.Context, req *models.CreateSupermarketRequest) (*models.Supermarket, error) {
	row := db.Pool.QueryRow(ctx, `
		INSERT INTO supermarkets (name, logo_url)
		VALUES ($1, $2)
		RETURNING `+supermarketColumns,
		req.Name, req.LogoURL,
	)

	s, err := scanSupermarket(row)
	if err != nil {
		if strings.Contains(err.Error(), "supermarkets_name_key") {
			return nil, ErrSupermarketExists
		}
		return nil, err
	}
	return s, nil
}

// UpdateSupermarket applies partial updates
func (db *DB) UpdateSupermarket(ctx context.Context, id int, req *models.UpdateSupermarketRequest) (*models.Supermarket, error) {
	row := db.Pool.QueryRow(ctx, `
		UPDATE supermarkets SET
			name = COALESCE($2, name),
			logo_url = COALESCE($3, logo_url),
			is_active = COALESCE($4, is_active),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+supermarketColumns,
		id, req.Name, req.LogoURL, req.IsActive,
	)
	return scanSupermarket(row)
}

// DeleteSupermarket removes a supermarket and cascades to its prices and
// exclusions
func (db *DB) DeleteSupermarket(ctx context.Context, id int) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM supermarkets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSupermarketNotFound
	}
	return nil
}
