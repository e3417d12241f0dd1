package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // JOURNAL_TIMEZONE must resolve on hosts without zoneinfo

	"food-journal/internal/auth"
	"food-journal/internal/catalog"
	"food-journal/internal/config"
	"food-journal/internal/database"
	"food-journal/internal/handler"
	"food-journal/internal/middleware"
	"food-journal/internal/repository"
	"food-journal/internal/router"
	"food-journal/internal/service"
	"food-journal/internal/view"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting food-journal API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The pool is created on first use; migrations force that here so a bad
	// database fails startup rather than the first request.
	gateway := database.NewGateway(cfg.Database, logger)
	defer gateway.Close()

	pool, err := gateway.Pool(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := database.Migrate(pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	checks := map[string]handler.Pinger{"database": gateway}

	var cache view.Cache
	if cfg.Redis.Enabled {
		client := view.NewRedisClient(cfg.Redis)
		defer client.Close()

		redisCache := view.NewRedisCache(client, view.DefaultTTL, logger)
		if err := redisCache.Ping(ctx); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		cache = redisCache
		checks["cache"] = redisCache
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("using redis view cache")
	} else {
		cache = view.NewMemoryCache(view.DefaultTTL)
		logger.Info().Msg("using in-process view cache (redis disabled)")
	}

	foods := loadCatalog(ctx, cfg, logger)

	loc := cfg.Journal.Location()

	mealRepo := repository.NewMealRepository(gateway, logger)
	prefRepo := repository.NewPreferenceRepository(gateway, logger)

	mealService := service.NewMealService(mealRepo, cache, foods, service.MealServiceConfig{Location: loc}, logger)
	prefService := service.NewPreferenceService(prefRepo, cache, logger)

	mux := router.New(
		router.Handlers{
			Meals:       handler.NewMealHandler(mealService, logger),
			Preferences: handler.NewPreferenceHandler(prefService, logger),
			Views:       handler.NewViewHandler(mealService, prefService, cache, loc, nil, logger),
			Health:      handler.NewHealthHandler(checks, logger),
		},
		auth.NewJWTResolver(cfg.Auth),
		middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, logger),
		logger,
	)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("timezone", loc.String()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// loadCatalog loads the food catalogue from S3 (with local fallback) or local
// disk. Any failure leaves suggestions history-only.
func loadCatalog(ctx context.Context, cfg *config.Config, logger zerolog.Logger) *catalog.Catalog {
	if len(cfg.Catalog.FilePaths) == 0 {
		logger.Info().Msg("no catalogue files configured")
		return catalog.Empty()
	}

	fileLoader := catalog.NewFileLoader(logger)
	var s3Loader catalog.Loader

	if cfg.S3.Enabled {
		l, err := catalog.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = l
		}
	} else {
		logger.Info().Msg("using local file system for catalogue files (S3 disabled)")
	}

	loader := catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, logger)

	foods, err := catalog.Load(ctx, cfg.Catalog.FilePaths, loader, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load food catalogue, suggestions use history only")
		return catalog.Empty()
	}
	return foods
}
