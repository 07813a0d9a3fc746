// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"relist/internal/config"
	"relist/internal/handlers"
	"relist/internal/middleware"
	"relist/internal/repositories"
	"relist/internal/services/exchange"
	"relist/internal/services/feeschedule"
	"relist/internal/services/quote"
	"relist/internal/services/record"
	"relist/internal/services/tariff"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize repositories
	feeRepo := repositories.NewFeeScheduleRepository(db)
	tariffRepo := repositories.NewTariffRuleRepository(db)
	recordRepo := repositories.NewCalculationRecordRepository(db)
	cache := repositories.Cache

	// Initialize providers
	feeProvider := feeschedule.NewProvider(feeRepo, cache)
	tariffProvider := tariff.NewProvider(tariffRepo, cache)
	staticRates := exchange.NewStaticProvider(
		config.GetEnv("FX_CURRENCY", "USD"),
		config.GetFloatEnv("FX_BASE_RATE", 150),
		config.GetFloatEnv("FX_SAFETY_MARGIN", 5),
	)
	rateProvider := exchange.NewCachedProvider(cache, staticRates)

	// Initialize services
	recordService := record.NewService(recordRepo)
	quoteService := quote.NewService(
		feeProvider,
		tariffProvider,
		rateProvider,
		recordService,
		quote.Config{},
		&quote.NoopMetricsCollector{},
	)

	// Initialize handlers
	quoteHandler := handlers.NewQuoteHandler(quoteService)
	recordHandler := handlers.NewRecordHandler(recordService)
	adminHandler := handlers.NewAdminHandler(feeRepo, tariffRepo, cache, rateProvider)

	// Health check at the root
	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	// Quote computation (public)
	api.Post("/quote", quoteHandler.ComputeQuote)
	api.Post("/quote/recommend", quoteHandler.RecommendPrice)
	api.Post("/quote/compare", quoteHandler.CompareRegimes)

	// Record reporting (authenticated)
	records := api.Group("/records", middleware.Auth)
	records.Get("/", recordHandler.ListRecords)
	records.Get("/:id", recordHandler.GetRecord)

	// Rule table management (admin)
	admin := api.Group("/admin", middleware.Auth, middleware.AdminOnly)
	admin.Post("/schedules", adminHandler.UpsertFeeSchedule)
	admin.Post("/tariffs", adminHandler.UpsertTariffRule)
	admin.Post("/rates", adminHandler.PublishExchangeQuote)
}
