package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/recipebox/recipebox-backend/internal/config"
	"github.com/recipebox/recipebox-backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory SQLite database with the full schema.
// MaxOpenConns(1) keeps the pool from opening a second, empty :memory: DB.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
	))

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
	}
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "not-a-real-hash",
		Name:     "Test User",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestRecipe(t *testing.T, svc *RecipeService, ownerID uuid.UUID, title string, tags, ingredients []string) *models.Recipe {
	t.Helper()

	recipe, err := svc.Create(ownerID, CreateRecipeInput{
		Title:       title,
		TimeMinutes: 22,
		Price:       5.25,
		Link:        "http://example.com/recipe.pdf",
		Description: "Sample description",
		Tags:        tags,
		Ingredients: ingredients,
	})
	require.NoError(t, err)
	return recipe
}
