package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/recipebox/recipebox-backend/internal/config"
	"github.com/recipebox/recipebox-backend/internal/handlers"
	"github.com/recipebox/recipebox-backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	recipeHandler *handlers.RecipeHandler,
	tagHandler *handlers.TagHandler,
	ingredientHandler *handlers.IngredientHandler,
	adminHandler *handlers.AdminHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Profile
	users := api.Group("/users", middleware.JWTProtected(cfg))
	users.Get("/me", authHandler.Me)
	users.Patch("/me", authHandler.UpdateProfile)
	users.Delete("/me", authHandler.DeleteAccount)

	// Recipes
	recipes := api.Group("/recipes", middleware.JWTProtected(cfg))
	recipes.Get("/", recipeHandler.List)
	recipes.Post("/", recipeHandler.Create)
	recipes.Get("/:id", recipeHandler.Get)
	recipes.Put("/:id", recipeHandler.Update)
	recipes.Patch("/:id", recipeHandler.Update)
	recipes.Delete("/:id", recipeHandler.Delete)
	recipes.Post("/:id/image", recipeHandler.AttachImage)

	// Tags
	tags := api.Group("/tags", middleware.JWTProtected(cfg))
	tags.Get("/", tagHandler.List)
	tags.Patch("/:id", tagHandler.Rename)
	tags.Delete("/:id", tagHandler.Delete)

	// Ingredients
	ingredients := api.Group("/ingredients", middleware.JWTProtected(cfg))
	ingredients.Get("/", ingredientHandler.List)
	ingredients.Patch("/:id", ingredientHandler.Rename)
	ingredients.Delete("/:id", ingredientHandler.Delete)

	// Admin panel
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/logs", adminHandler.ListSystemLogs)
	admin.Get("/users", adminHandler.ListUsers)
}
