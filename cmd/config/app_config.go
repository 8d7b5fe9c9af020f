package config

import (
	"Health-Kitchen-Backend/internal/api/handlers"
	"Health-Kitchen-Backend/internal/api/routes"
	"Health-Kitchen-Backend/internal/middleware"
	"Health-Kitchen-Backend/internal/utils"
	"Health-Kitchen-Backend/internal/utils/mailing"
	"Health-Kitchen-Backend/internal/utils/metrics"
	"Health-Kitchen-Backend/internal/utils/storage"
	"Health-Kitchen-Backend/pkg/extraction"
	"Health-Kitchen-Backend/pkg/gemini"
	"Health-Kitchen-Backend/pkg/jwt"
	"Health-Kitchen-Backend/pkg/profile"
	"Health-Kitchen-Backend/pkg/recipe"
	"Health-Kitchen-Backend/pkg/safety"
	"Health-Kitchen-Backend/pkg/user"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewRuleEngine builds the safety engine from the built-in rules plus any
// rules in RULES_FILE.
func NewRuleEngine(log *zap.Logger) (*safety.Engine, error) {
	rules := safety.DefaultRules()
	if path := utils.GetConfig("RULES_FILE"); path != "" {
		extra, err := safety.LoadRules(path)
		if err != nil {
			return nil, err
		}
		rules = append(rules, extra...)
		log.Info("loaded extra safety rules", zap.String("path", path), zap.Int("count", len(extra)))
	}
	return safety.NewEngine(rules...), nil
}

func NewApp(db *gorm.DB, log *zap.Logger) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up access logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, fmt.Errorf("error opening access log: %w", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewMailer()
	appMetrics := metrics.New(prometheus.DefaultRegisterer, "health_kitchen")
	geminiClient := gemini.NewGeminiClient()

	engine, err := NewRuleEngine(log)
	if err != nil {
		return nil, err
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	profileRepository := profile.NewProfileRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	extractionRepository := extraction.NewExtractionRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	profileService := profile.NewProfileService(
		profileRepository,
		profile.NewBuilder(engine, validator),
		s3,
		mailer,
		appMetrics,
		log,
	)
	recipeService := recipe.NewRecipeService(
		recipeRepository,
		profileService,
		recipe.NewRecipeSearcher(appMetrics),
		recipe.NewRecipeRefiner(geminiClient),
		log,
	)
	kitchenAssistant := recipe.NewKitchenAssistant(recipeRepository, geminiClient)
	extractionService := extraction.NewExtractionService(extractionRepository, geminiClient, s3, appMetrics, log)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	profileHandler := handlers.NewProfileHandler(profileService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, kitchenAssistant, validator)
	extractionHandler := handlers.NewExtractionHandler(extractionService, validator)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       userHandler,
		ProfileHandler:    profileHandler,
		RecipeHandler:     recipeHandler,
		ExtractionHandler: extractionHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
		Gatherer:          prometheus.DefaultGatherer,
	}
	routesConfig.Setup()
	return app, nil
}
