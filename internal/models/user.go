package models

import (
	"time"
)

type User struct {
	ID           int     `json:"id"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"` // Never expose in JSON
	FullName     *string `json:"full_name,omitempty"`
	// Daily nutrition goals
	DailyCalories int        `json:"daily_calories"`
	DailyProtein  int        `json:"daily_protein"`
	DailyCarbs    int        `json:"daily_carbs"`
	DailyFats     int        `json:"daily_fats"`
	WeightGoal    *float64   `json:"weight_goal,omitempty"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
}

// RegisterRequest is the request body for user registration
type RegisterRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name,omitempty"`
}

// LoginRequest is the request body for user login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// UpdateProfileRequest is the request body for updating the current user
type UpdateProfileRequest struct {
	FullName      *string  `json:"full_name,omitempty"`
	DailyCalories *int     `json:"daily_calories,omitempty"`
	DailyProtein  *int     `json:"daily_protein,omitempty"`
	DailyCarbs    *int     `json:"daily_carbs,omitempty"`
	DailyFats     *int     `json:"daily_fats,omitempty"`
	WeightGoal    *float64 `json:"weight_goal,omitempty"`
}
