package database

import (
	"fmt"
	"time"

	"mise/internal/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL dialect
	_ "github.com/mattn/go-sqlite3"              // SQLite driver
)

// Open connects to the database using the configured driver.
// Supported drivers: "sqlite3" (path DSN) and "postgres" (connection string).
func Open(driver, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.DB().SetMaxIdleConns(10)
	db.DB().SetMaxOpenConns(100)
	db.DB().SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Migrate creates and updates all required tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Recipe{},
		&models.Product{},
		&models.User{},
	).Error
}

// Seed ensures essential data exists in the database
func Seed(db *gorm.DB) error {
	// Create a default admin account if no users exist
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		admin := models.User{
			Email:    "admin@mise.local",
			Name:     "Administrator",
			Role:     "admin",
			Approved: true,
		}
		if err := db.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
	}

	var recipeCount int64
	db.Model(&models.Recipe{}).Count(&recipeCount)
	if recipeCount == 0 {
		if err := seedSampleRecipes(db); err != nil {
			return err
		}
	}

	var productCount int64
	db.Model(&models.Product{}).Count(&productCount)
	if productCount == 0 {
		if err := seedSampleProducts(db); err != nil {
			return err
		}
	}

	return nil
}

// seedSampleRecipes creates starter recipes for a fresh install
func seedSampleRecipes(db *gorm.DB) error {
	pasta := models.Recipe{
		Slug:            "simple-pasta",
		Title:           "Simple Pasta",
		Description:     "A quick and easy pasta dish",
		Category:        "main",
		Difficulty:      "easy",
		Servings:        4,
		PrepTimeMinutes: 15,
		CookTimeMinutes: 20,
		Tags:            models.StringSlice{"pasta", "quick", "easy"},
	}

	if err := pasta.SetIngredients([]models.Ingredient{
		{Name: "Pasta", Amount: "500", Unit: "g"},
		{Name: "Tomato Sauce", Amount: "400", Unit: "g"},
		{Name: "Olive Oil", Amount: "2", Unit: "tbsp"},
		{Name: "Salt", Amount: "1", Unit: "tsp"},
	}); err != nil {
		return err
	}

	if err := pasta.SetInstructions([]models.Instruction{
		{Step: 1, Instruction: "Bring a large pot of salted water to a boil."},
		{Step: 2, Instruction: "Cook pasta until al dente, then drain."},
		{Step: 3, Instruction: "Heat the sauce, add the pasta, and toss to coat."},
	}); err != nil {
		return err
	}

	if err := db.Create(&pasta).Error; err != nil {
		return fmt.Errorf("failed to create sample recipe: %w", err)
	}

	return nil
}

// seedSampleProducts creates starter shop items for a fresh install
func seedSampleProducts(db *gorm.DB) error {
	products := []models.Product{
		{Slug: "sourdough-loaf", Name: "Sourdough Loaf", Description: "House-baked sourdough", Category: "bakery", PriceCents: 850, Stock: 12, Available: true},
		{Slug: "chili-crisp", Name: "Chili Crisp", Description: "Small-batch chili crisp", Category: "pantry", PriceCents: 1200, Stock: 24, Available: true},
	}
	for _, p := range products {
		if err := db.Create(&p).Error; err != nil {
			return fmt.Errorf("failed to create sample product: %w", err)
		}
	}
	return nil
}
