package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps the connection pool
type DB struct {
	Pool *pgxpool.Pool
}

// Connect creates a new database connection pool
func Connect(databaseURL string) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}

	// Configure pool
	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	log.Println("Database connected successfully")
	return &DB{Pool: pool}, nil
}

// Close closes the database connection pool
func (db *DB) Close() {
	db.Pool.Close()
}

// RunMigrations runs all database migrations
func RunMigrations(db *DB) error {
	ctx := context.Background()

	// Create migrations table if it doesn't exist
	_, err := db.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INT PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	// Run each migration
	for version := 1; version <= len(migrations); version++ {
		// Check if migration already applied
		var exists bool
		err := db.Pool.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)",
			version,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check migration %d: %w", version, err)
		}

		if exists {
			continue
		}

		// Apply migration
		log.Printf("Applying migration %d...", version)
		_, err = db.Pool.Exec(ctx, migrations[version])
		if err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", version, err)
		}

		// Record migration
		_, err = db.Pool.Exec(ctx,
			"INSERT INTO schema_migrations (version) VALUES ($1)",
			version,
		)
		if err != nil {
			return fmt.Errorf("failed to record migration %d: %w", version, err)
		}

		log.Printf("Migration %d applied successfully", version)
	}

	return nil
}

var migrations = map[int]string{
	1: migration001,
	2: migration002,
}

const migration001 = `
-- Migration 001: Core schema

-- Users table
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    email VARCHAR(255) UNIQUE NOT NULL,
    password_hash VARCHAR(255) NOT NULL,
    full_name VARCHAR(100),
    daily_calories INT DEFAULT 2000,
    daily_protein INT DEFAULT 150,
    daily_carbs INT DEFAULT 200,
    daily_fats INT DEFAULT 70,
    weight_goal DECIMAL(5, 2),
    is_active BOOLEAN DEFAULT TRUE,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW(),
    last_login_at TIMESTAMP
);

-- Ingredients table
CREATE TABLE IF NOT EXISTS ingredients (
    id SERIAL PRIMARY KEY,
    name VARCHAR(255) UNIQUE NOT NULL,
    category VARCHAR(10) NOT NULL DEFAULT 'weight',
    calories_per_100g DOUBLE PRECISION NOT NULL,
    protein_per_100g DOUBLE PRECISION NOT NULL,
    carbs_per_100g DOUBLE PRECISION NOT NULL,
    fats_per_100g DOUBLE PRECISION NOT NULL,
    created_by INT REFERENCES users(id),
    is_public BOOLEAN DEFAULT TRUE,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW(),
    CONSTRAINT check_ingredient_category CHECK (category IN ('weight', 'volume', 'count'))
);

-- Recipes table
CREATE TABLE IF NOT EXISTS recipes (
    id SERIAL PRIMARY KEY,
    title VARCHAR(255) NOT NULL,
    description TEXT,
    instructions TEXT NOT NULL,
    prep_time_minutes INT NOT NULL,
    cook_time_minutes INT NOT NULL,
    servings INT NOT NULL,
    image_url VARCHAR(500),
    author_id INT REFERENCES users(id) ON DELETE CASCADE NOT NULL,
    is_public BOOLEAN DEFAULT TRUE,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);

-- Recipe ingredients table
CREATE TABLE IF NOT EXISTS recipe_ingredients (
    id SERIAL PRIMARY KEY,
    recipe_id INT REFERENCES recipes(id) ON DELETE CASCADE NOT NULL,
    ingredient_id INT REFERENCES ingredients(id) ON DELETE CASCADE NOT NULL,
    amount DOUBLE PRECISION NOT NULL,
    unit VARCHAR(50) NOT NULL
);

-- Meal plan entries table
CREATE TABLE IF NOT EXISTS meal_plan_entries (
    id SERIAL PRIMARY KEY,
    user_id INT REFERENCES users(id) ON DELETE CASCADE NOT NULL,
    recipe_id INT REFERENCES recipes(id) ON DELETE CASCADE NOT NULL,
    date DATE NOT NULL,
    meal_type VARCHAR(20) NOT NULL,
    servings INT NOT NULL DEFAULT 1,
    is_cooked BOOLEAN DEFAULT FALSE,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW(),
    CONSTRAINT check_meal_type CHECK (meal_type IN ('breakfast', 'lunch', 'dinner', 'snack'))
);

-- Create indexes
CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
CREATE INDEX IF NOT EXISTS idx_ingredients_name ON ingredients(name);
CREATE INDEX IF NOT EXISTS idx_recipes_title ON recipes(title);
CREATE INDEX IF NOT EXISTS idx_recipes_author ON recipes(author_id);
CREATE INDEX IF NOT EXISTS idx_recipe_ingredients_recipe ON recipe_ingredients(recipe_id);
CREATE INDEX IF NOT EXISTS idx_recipe_ingredients_ingredient ON recipe_ingredients(ingredient_id);
CREATE INDEX IF NOT EXISTS idx_meal_plan_user_date ON meal_plan_entries(user_id, date);
`

const migration002 = `
-- Migration 002: Supermarket pricing tables

-- Supermarkets table
CREATE TABLE IF NOT EXISTS supermarkets (
    id SERIAL PRIMARY KEY,
    name VARCHAR(100) UNIQUE NOT NULL,
    logo_url VARCHAR(255),
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);

-- Ingredient prices table
CREATE TABLE IF NOT EXISTS ingredient_prices (
    id SERIAL PRIMARY KEY,
    ingredient_id INT REFERENCES ingredients(id) ON DELETE CASCADE NOT NULL,
    supermarket_id INT REFERENCES supermarkets(id) ON DELETE CASCADE NOT NULL,
    price_per_unit DECIMAL(10, 2) NOT NULL,
    unit VARCHAR(10) NOT NULL,
    user_id INT REFERENCES users(id) ON DELETE CASCADE NOT NULL,
    updated_at TIMESTAMP DEFAULT NOW(),
    CONSTRAINT check_price_positive CHECK (price_per_unit > 0),
    CONSTRAINT check_price_unit CHECK (unit IN ('kg', 'L', 'unit')),
    CONSTRAINT uix_ingredient_supermarket_user UNIQUE (ingredient_id, supermarket_id, user_id)
);

-- Ingredient exclusions table
CREATE TABLE IF NOT EXISTS ingredient_exclusions (
    id SERIAL PRIMARY KEY,
    user_id INT REFERENCES users(id) ON DELETE CASCADE NOT NULL,
    ingredient_id INT REFERENCES ingredients(id) ON DELETE CASCADE NOT NULL,
    supermarket_id INT REFERENCES supermarkets(id) ON DELETE CASCADE NOT NULL,
    reason VARCHAR(255),
    created_at TIMESTAMP DEFAULT NOW(),
    CONSTRAINT uix_user_ingredient_supermarket UNIQUE (user_id, ingredient_id, supermarket_id)
);

-- Create indexes
CREATE INDEX IF NOT EXISTS idx_prices_ingredient ON ingredient_prices(ingredient_id);
CREATE INDEX IF NOT EXISTS idx_prices_supermarket ON ingredient_prices(supermarket_id);
CREATE INDEX IF NOT EXISTS idx_exclusions_user ON ingredient_exclusions(user_id);
`
