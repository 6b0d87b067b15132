package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/skyfinder/weather-search/internal/auth"
	"github.com/skyfinder/weather-search/internal/cache"
	"github.com/skyfinder/weather-search/internal/config"
	"github.com/skyfinder/weather-search/internal/country"
	"github.com/skyfinder/weather-search/internal/database"
	"github.com/skyfinder/weather-search/internal/handler"
	middlewarepkg "github.com/skyfinder/weather-search/internal/middleware"
	"github.com/skyfinder/weather-search/internal/repository"
	"github.com/skyfinder/weather-search/internal/router"
	"github.com/skyfinder/weather-search/internal/service"
	"github.com/skyfinder/weather-search/internal/tracing"
	"github.com/skyfinder/weather-search/internal/view"
	"github.com/skyfinder/weather-search/internal/weather"
)

const serviceName = "weather-search"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Env)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	shutdownTracing, err := tracing.Setup(serviceName, cfg.ZipkinURL)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("flush traces failed", "error", err)
		}
	}()

	catalog, err := country.NewCatalog()
	if err != nil {
		return err
	}

	client, err := weather.NewClient(nil, weather.Config{
		BaseURL: cfg.Weather.BaseURL,
		APIKey:  cfg.Weather.APIKey,
		Days:    cfg.Weather.Days,
		Timeout: cfg.Weather.Timeout,
	}, logger)
	if err != nil {
		return err
	}

	var fetcher weather.Fetcher = client
	checks := map[string]handler.Pinger{}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if cfg.Redis.Addr != "" {
		forecastCache, err := cache.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL, logger)
		if err != nil {
			logger.Warn("forecast cache disabled", "addr", cfg.Redis.Addr, "error", err)
		} else {
			defer forecastCache.Close()
			fetcher = weather.NewCachedFetcher(fetcher, forecastCache, logger)
			checks["cache"] = forecastCache
		}
	}

	var (
		recorder service.SearchRecorder
		searches repository.SearchesRepository
	)
	if cfg.DatabaseURL != "" {
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		repo := repository.NewPGXSearchesRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			return err
		}
		recorder, searches = repo, repo
		checks["database"] = pool
	} else {
		logger.Info("search history disabled, DATABASE_URL is not set")
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(cfg.AdminEmail, cfg.AdminPasswordHash, jwtManager)
	if !authService.Enabled() {
		logger.Info("admin login disabled, ADMIN_EMAIL or ADMIN_PASSWORD_HASH is not set")
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(logger))
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, router.Handlers{
		Search:  handler.NewSearchHandler(service.NewSearchService(fetcher, catalog, recorder, logger)),
		Auth:    handler.NewAuthHandler(authService),
		History: handler.NewHistoryHandler(service.NewHistoryService(searches)),
		Health:  handler.NewHealthHandler(checks),
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "port", cfg.Port, "countries", catalog.Len())
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed", "error", err)
	}
	return nil
}

func newLogger(env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if env == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	opts.Level = slog.LevelDebug
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
