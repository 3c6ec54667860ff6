package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shopkit-io/shopkit/internal/config"
	"github.com/shopkit-io/shopkit/internal/handler"
	"github.com/shopkit-io/shopkit/internal/repository"
	"github.com/shopkit-io/shopkit/internal/service"
	"github.com/shopkit-io/shopkit/internal/validator"
	"github.com/shopkit-io/shopkit/pkg/database"
)

func main() {
	// Load configuration first
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize zerolog based on configuration
	initLogger(cfg)

	// Create context for startup
	ctx := context.Background()

	// Initialize database pool with retry
	pool, err := database.NewPool(ctx, cfg.DB.DSN(), 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Initialize Fiber with production-ready configuration
	app := fiber.New(fiber.Config{
		AppName:      "Shopkit Storefront API",
		ReadTimeout:  30 * time.Second,  // Max time to read request
		WriteTimeout: 30 * time.Second,  // Max time to write response
		IdleTimeout:  120 * time.Second, // Max time for keep-alive connections
		BodyLimit:    1 * 1024 * 1024,   // 1MB body limit (explicit, prevents large payloads)
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New()) // Adds X-Request-ID header to all requests
	app.Use(logger.New())

	// Initialize validator
	validate := validator.New()

	// Repositories
	categoryRepo := repository.NewCategoryRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	couponRepo := repository.NewCouponRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	offerRepo := repository.NewOfferRepository(pool)
	feedbackRepo := repository.NewFeedbackRepository(pool)
	settingRepo := repository.NewSettingRepository(pool)

	// Services (layered architecture)
	settingsService := service.NewSettingsService(settingRepo, cfg.Shop)
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, categoryRepo)
	couponService := service.NewCouponService(couponRepo)
	orderService := service.NewOrderService(pool, orderRepo, productRepo, couponRepo, settingsService)
	reviewService := service.NewReviewService(reviewRepo, productRepo)
	offerService := service.NewOfferService(offerRepo)
	feedbackService := service.NewFeedbackService(feedbackRepo)

	// Handlers
	categoryHandler := handler.NewCategoryHandler(categoryService, validate)
	productHandler := handler.NewProductHandler(productService, validate)
	couponHandler := handler.NewCouponHandler(couponService, validate)
	orderHandler := handler.NewOrderHandler(orderService, validate)
	reviewHandler := handler.NewReviewHandler(reviewService, validate)
	offerHandler := handler.NewOfferHandler(offerService, validate)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService, validate)
	settingsHandler := handler.NewSettingsHandler(settingsService, validate)
	healthHandler := handler.NewHealthHandler(pool)

	app.Get("/health", healthHandler.Check)

	api := app.Group("/api")

	// Catalog
	api.Post("/categories", categoryHandler.Create)
	api.Get("/categories", categoryHandler.List)
	api.Get("/categories/:id", categoryHandler.Get)
	api.Put("/categories/:id", categoryHandler.Update)
	api.Delete("/categories/:id", categoryHandler.Delete)

	api.Post("/products", productHandler.Create)
	api.Get("/products", productHandler.List)
	api.Get("/products/:id", productHandler.Get)
	api.Put("/products/:id", productHandler.Update)
	api.Delete("/products/:id", productHandler.Delete)
	api.Get("/products/:id/reviews", reviewHandler.ListByProduct)

	// Orders
	api.Post("/orders", orderHandler.Create)
	api.Get("/orders", orderHandler.List)
	api.Get("/orders/:id", orderHandler.Get)
	api.Put("/orders/:id/status", orderHandler.UpdateStatus)
	api.Delete("/orders/:id", orderHandler.Delete)

	// Coupons
	api.Post("/coupons", couponHandler.Create)
	api.Get("/coupons", couponHandler.List)
	api.Post("/coupons/validate", couponHandler.Validate)
	api.Get("/coupons/:id", couponHandler.Get)
	api.Put("/coupons/:id", couponHandler.Update)
	api.Delete("/coupons/:id", couponHandler.Delete)

	// Reviews
	api.Post("/reviews", reviewHandler.Create)
	api.Put("/reviews/:id/approve", reviewHandler.Approve)
	api.Delete("/reviews/:id", reviewHandler.Delete)

	// Offers
	api.Post("/offers", offerHandler.Create)
	api.Get("/offers", offerHandler.List)
	api.Get("/offers/active", offerHandler.ListActive)
	api.Get("/offers/:id", offerHandler.Get)
	api.Put("/offers/:id", offerHandler.Update)
	api.Delete("/offers/:id", offerHandler.Delete)

	// Feedback
	api.Post("/feedback", feedbackHandler.Create)
	api.Get("/feedback", feedbackHandler.List)
	api.Put("/feedback/:id/resolve", feedbackHandler.Resolve)
	api.Delete("/feedback/:id", feedbackHandler.Delete)

	// Settings
	api.Get("/settings", settingsHandler.Get)
	api.Put("/settings", settingsHandler.Update)

	// Start server with graceful shutdown
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("starting server")
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	log.Info().Int("timeout_seconds", cfg.Server.ShutdownTimeout).Msg("shutting down server...")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	// Shutdown server (waits for in-flight requests)
	log.Info().Msg("waiting for in-flight requests to complete...")
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	// Close database pool AFTER server shutdown (even if shutdown timed out)
	log.Info().Msg("closing database connections...")
	pool.Close()
	log.Info().Msg("database connections closed")
	log.Info().Msg("server stopped")
}

// initLogger configures zerolog based on the application configuration.
func initLogger(cfg *config.Config) {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Log.Pretty {
		// Human-readable output for development
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
			With().Timestamp().Logger()
	} else {
		// JSON output for production
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}
