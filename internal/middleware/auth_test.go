package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/nandovidal/platewise/internal/config"
)

func testApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Get("/protected", AuthRequired(cfg), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": GetUserID(c),
			"email":   GetUserEmail(c),
		})
	})
	return app
}

func signToken(t *testing.T, secret string, expiry time.Duration) string {
	t.Helper()

	claims := &JWTClaims{
		UserID: 42,
		Email:  "cook@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   "cook@example.com",
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestAuthRequired(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	app := testApp(cfg)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "valid token",
			authHeader: "Bearer " + signToken(t, cfg.JWTSecret, time.Hour),
			wantStatus: fiber.StatusOK,
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "missing bearer prefix",
			authHeader: signToken(t, cfg.JWTSecret, time.Hour),
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "wrong secret",
			authHeader: "Bearer " + signToken(t, "other-secret", time.Hour),
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "expired token",
			authHeader: "Bearer " + signToken(t, cfg.JWTSecret, -time.Hour),
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			authHeader: "Bearer not-a-token",
			wantStatus: fiber.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}
