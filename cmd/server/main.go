package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/nandovidal/platewise/internal/config"
	"github.com/nandovidal/platewise/internal/database"
	"github.com/nandovidal/platewise/internal/handlers"
	"github.com/nandovidal/platewise/internal/middleware"
	"github.com/nandovidal/platewise/internal/services"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Initialize storage for recipe images and price-tag photos
	var storage *services.StorageService
	if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		storage, err = services.NewStorageService(
			cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3Region, cfg.S3UseSSL,
		)
		if err != nil {
			log.Printf("Warning: Failed to initialize storage service: %v", err)
			storage = nil
		} else if err := storage.EnsureBucket(context.Background()); err != nil {
			log.Printf("Warning: Failed to ensure S3 bucket exists: %v", err)
		}
	} else {
		log.Println("S3 credentials not configured, image uploads disabled")
	}

	// Initialize OCR for price-tag scanning
	var ocr *services.OCRService
	if cfg.OCREnabled {
		ocr, err = services.NewOCRService()
		if err != nil {
			log.Printf("Warning: Failed to initialize OCR service: %v", err)
			ocr = nil
		} else {
			defer ocr.Close()
			log.Println("Price-tag scanning service initialized")
		}
	}

	// Create handler with dependencies
	h := handlers.New(db, cfg, storage, ocr)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// API routes
	api := app.Group("/api")

	// Auth routes (public)
	auth := api.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Post("/logout", h.Logout)
	auth.Get("/me", middleware.AuthRequired(cfg), h.GetCurrentUser)
	auth.Put("/me", middleware.AuthRequired(cfg), h.UpdateProfile)
	auth.Post("/refresh", middleware.AuthRequired(cfg), h.RefreshToken)

	// Ingredient routes (authenticated)
	ingredients := api.Group("/ingredients", middleware.AuthRequired(cfg))
	ingredients.Get("/", h.ListIngredients)
	ingredients.Get("/:id", h.GetIngredient)
	ingredients.Post("/", h.CreateIngredient)
	ingredients.Get("/:id/prices", h.ListIngredientPrices)

	// Recipe routes (authenticated)
	recipes := api.Group("/recipes", middleware.AuthRequired(cfg))
	recipes.Get("/", h.ListRecipes)
	recipes.Get("/:id", h.GetRecipe)
	recipes.Post("/", h.CreateRecipe)
	recipes.Put("/:id", h.UpdateRecipe)
	recipes.Delete("/:id", h.DeleteRecipe)
	recipes.Post("/:id/image", h.UploadRecipeImage)

	// Meal planner routes (authenticated)
	planner := api.Group("/planner", middleware.AuthRequired(cfg))
	planner.Get("/", h.ListMealPlan)
	planner.Post("/", h.CreateMealPlanEntry)
	planner.Put("/:id", h.UpdateMealPlanEntry)
	planner.Delete("/:id", h.DeleteMealPlanEntry)
	planner.Get("/shopping-list", h.GetShoppingList)
	planner.Get("/shopping-list/optimized", h.GetOptimizedShoppingList)

	// Supermarket routes (authenticated)
	supermarkets := api.Group("/supermarkets", middleware.AuthRequired(cfg))
	supermarkets.Get("/", h.ListSupermarkets)
	supermarkets.Get("/:id", h.GetSupermarket)
	supermarkets.Post("/", h.CreateSupermarket)
	supermarkets.Put("/:id", h.UpdateSupermarket)
	supermarkets.Delete("/:id", h.DeleteSupermarket)

	// Price routes (authenticated)
	prices := api.Group("/prices", middleware.AuthRequired(cfg))
	prices.Post("/", h.UpsertPrice)
	prices.Delete("/:id", h.DeletePrice)
	prices.Post("/scan", h.ScanPriceTag)

	// Exclusion routes (authenticated)
	exclusions := api.Group("/exclusions", middleware.AuthRequired(cfg))
	exclusions.Get("/", h.ListExclusions)
	exclusions.Post("/", h.CreateExclusion)
	exclusions.Delete("/:id", h.DeleteExclusion)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
