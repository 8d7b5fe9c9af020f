package routes

import (
	"Health-Kitchen-Backend/internal/api/handlers"
	"Health-Kitchen-Backend/internal/middleware"
	"Health-Kitchen-Backend/pkg/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	ProfileHandler    handlers.ProfileHandler
	RecipeHandler     handlers.RecipeHandler
	ExtractionHandler handlers.ExtractionHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
	Gatherer          prometheus.Gatherer
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Profiles()
	c.Recipes()
	c.Extraction()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Profiles() {
	profiles := c.App.Group("/api/v1/profiles", c.Middleware.AuthMiddleware(c.JWTService))
	profiles.Post("", c.ProfileHandler.BuildProfile)
	profiles.Get("/me", c.ProfileHandler.GetProfile)
	profiles.Get("/me/split", c.ProfileHandler.GetSplit)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))
	recipes.Get("/safe", c.RecipeHandler.GetSafeRecipes)
	recipes.Get("/search", c.RecipeHandler.SearchRecipes)
	recipes.Get("/recommendations", c.RecipeHandler.GetRecommendations)
	recipes.Post("/refine", c.RecipeHandler.RefineRecipes)
	recipes.Post("/ask", c.RecipeHandler.AskAssistant)
}

func (c *Config) Extraction() {
	extraction := c.App.Group("/api/v1/extraction", c.Middleware.AuthMiddleware(c.JWTService))
	extraction.Post("/medical", c.ExtractionHandler.ExtractMedicalRecord)
	extraction.Post("/ingredients", c.ExtractionHandler.IdentifyIngredients)
	extraction.Get("/scans", c.ExtractionHandler.GetScans)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works. test"})
	})

	gatherer := c.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}
