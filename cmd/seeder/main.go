package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/nandovidal/platewise/internal/config"
	"github.com/nandovidal/platewise/internal/database"
	"github.com/nandovidal/platewise/internal/models"
)

// The six supermarket chains the optimizer compares out of the box
var supermarkets = []string{
	"Mercadona",
	"Carrefour",
	"Supeco",
	"Día",
	"Lidl",
	"Aldi",
}

type ingredientSeed struct {
	name     string
	category models.MeasurementCategory
	calories float64
	protein  float64
	carbs    float64
	fats     float64
}

var ingredients = []ingredientSeed{
	{"Tomato", models.CategoryWeight, 18, 0.9, 3.9, 0.2},
	{"Onion", models.CategoryWeight, 40, 1.1, 9.3, 0.1},
	{"Garlic", models.CategoryWeight, 149, 6.4, 33.1, 0.5},
	{"Chicken Breast", models.CategoryWeight, 165, 31, 0, 3.6},
	{"Rice", models.CategoryWeight, 365, 7.1, 80, 0.7},
	{"Spaghetti", models.CategoryWeight, 371, 13, 74.7, 1.5},
	{"Olive Oil", models.CategoryVolume, 884, 0, 0, 100},
	{"Milk", models.CategoryVolume, 61, 3.2, 4.8, 3.3},
	{"Egg", models.CategoryCount, 155, 13, 1.1, 11},
	{"Lemon", models.CategoryCount, 29, 1.1, 9.3, 0.3},
}

func main() {
	demo := flag.Bool("demo", false, "Also create a demo user with a recipe, meal plan and prices")
	flag.Parse()

	// Load .env
	godotenv.Load()

	// Load config
	cfg := config.Load()

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()

	if err := seedSupermarkets(ctx, db); err != nil {
		log.Fatalf("Failed to seed supermarkets: %v", err)
	}
	if err := seedIngredients(ctx, db); err != nil {
		log.Fatalf("Failed to seed ingredients: %v", err)
	}

	if *demo {
		if err := seedDemoData(ctx, db); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
	}

	log.Println("Seeding complete")
}

func seedSupermarkets(ctx context.Context, db *database.DB) error {
	existing, err := db.ListSupermarkets(ctx, false)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Printf("Supermarkets already exist (%d found), skipping", len(existing))
		return nil
	}

	for _, name := range supermarkets {
		s, err := db.CreateSupermarket(ctx, &models.CreateSupermarketRequest{Name: name})
		if err != nil {
			return err
		}
		log.Printf("Created supermarket %s (ID %d)", s.Name, s.ID)
	}
	return nil
}

func seedIngredients(ctx context.Context, db *database.DB) error {
	existing, _, err := db.ListIngredients(ctx, &models.IngredientListParams{Limit: 1})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Println("Ingredients already exist, skipping")
		return nil
	}

	for _, seed := range ingredients {
		_, err := db.CreatePublicIngredient(ctx, &models.CreateIngredientRequest{
			Name:            seed.name,
			Category:        seed.category,
			CaloriesPer100g: seed.calories,
			ProteinPer100g:  seed.protein,
			CarbsPer100g:    seed.carbs,
			FatsPer100g:     seed.fats,
		})
		if err != nil {
			return err
		}
	}
	log.Printf("Created %d public ingredients", len(ingredients))
	return nil
}

func seedDemoData(ctx context.Context, db *database.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	fullName := "Demo User"
	user, err := db.CreateUser(ctx, "demo@platewise.dev", string(hash), &fullName)
	if err != nil {
		if errors.Is(err, database.ErrEmailExists) {
			log.Println("Demo user already exists, skipping demo data")
			return nil
		}
		return err
	}
	log.Printf("Created demo user %s (ID %d)", user.Email, user.ID)

	tomato, err := db.GetIngredientByName(ctx, "Tomato")
	if err != nil {
		return err
	}
	oil, err := db.GetIngredientByName(ctx, "Olive Oil")
	if err != nil {
		return err
	}
	garlic, err := db.GetIngredientByName(ctx, "Garlic")
	if err != nil {
		return err
	}

	recipe, err := db.CreateRecipe(ctx, user.ID, &models.CreateRecipeRequest{
		Title:           "Tomato Soup",
		Instructions:    "Sauté the garlic in olive oil, add chopped tomatoes, simmer and blend.",
		PrepTimeMinutes: 10,
		CookTimeMinutes: 25,
		Servings:        2,
		Ingredients: []models.RecipeIngredientInput{
			{IngredientID: tomato.ID, Amount: 400, Unit: "g"},
			{IngredientID: garlic.ID, Amount: 10, Unit: "g"},
			{IngredientID: oil.ID, Amount: 2, Unit: "tbsp"},
		},
	})
	if err != nil {
		return err
	}
	log.Printf("Created recipe %q (ID %d)", recipe.Title, recipe.ID)

	// Plan the soup for the next two days
	for day := 0; day < 2; day++ {
		date := time.Now().AddDate(0, 0, day).Truncate(24 * time.Hour)
		_, err := db.CreateMealPlanEntry(ctx, user.ID, recipe.ID, date, models.MealLunch, 2)
		if err != nil {
			return err
		}
	}

	// A couple of price quotes so the optimizer has something to chew on
	stores, err := db.ListSupermarkets(ctx, true)
	if err != nil {
		return err
	}
	if len(stores) >= 2 {
		quotes := []models.UpsertPriceRequest{
			{IngredientID: tomato.ID, SupermarketID: stores[0].ID, PricePerUnit: 2.10, Unit: models.PriceUnitKg},
			{IngredientID: tomato.ID, SupermarketID: stores[1].ID, PricePerUnit: 1.85, Unit: models.PriceUnitKg},
			{IngredientID: garlic.ID, SupermarketID: stores[0].ID, PricePerUnit: 5.50, Unit: models.PriceUnitKg},
			{IngredientID: oil.ID, SupermarketID: stores[1].ID, PricePerUnit: 6.75, Unit: models.PriceUnitLiter},
		}
		for _, q := range quotes {
			if _, err := db.UpsertPrice(ctx, user.ID, &q); err != nil {
				return err
			}
		}
		log.Printf("Created %d demo price quotes", len(quotes))
	}

	return nil
}
