package database

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/nandovidal/platewise/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already registered")
)

const userColumns = `
	id, email, password_hash, full_name,
	daily_calories, daily_protein, daily_carbs, daily_fats, weight_goal,
	is_active, created_at, updated_at, last_login_at
`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName,
		&u.DailyCalories, &u.DailyProtein, &u.DailyCarbs, &u.DailyFats, &u.WeightGoal,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user with a hashed password
func (db *DB) CreateUser(ctx context.Context, email, passwordHash string, fullName *string) (*models.User, error) {
	row := db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, full_name)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		email, passwordHash, fullName,
	)

	user, err := scanUser(row)
	if err != nil {
		if strings.Contains(err.Error(), "users_email_key") {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return user, nil
}

// GetUserByID returns a user by id
func (db *DB) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	row := db.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetUserByEmail returns a user by email
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := db.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// UpdateUserLastLogin records the login timestamp
func (db *DB) UpdateUserLastLogin(ctx context.Context, id int) error {
	_, err := db.Pool.Exec(ctx, `UPDATE users SET last_login_at = NOW() WHERE id = $1`, id)
	return err
}

// UpdateUserProfile applies partial profile updates
func (db *DB) UpdateUserProfile(ctx context.Context, id int, req *models.UpdateProfileRequest) (*models.User, error) {
	row := db.Pool.QueryRow(ctx, `
		UPDATE users SET
			full_name = COALESCE($2, full_name),
			daily_calories = COALESCE($3, daily_calories),
			daily_protein = COALESCE($4, daily_protein),
			daily_carbs = COALESCE($5, daily_carbs),
			daily_fats = COALESCE($6, daily_fats),
			weight_goal = COALESCE($7, weight_goal),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns,
		id, req.FullName, req.DailyCalories, req.DailyProtein, req.DailyCarbs, req.DailyFats, req.WeightGoal,
	)
	return scanUser(row)
}
