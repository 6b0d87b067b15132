package router

import (
	"github.com/labstack/echo/v4"

	"github.com/skyfinder/weather-search/internal/auth"
	"github.com/skyfinder/weather-search/internal/config"
	"github.com/skyfinder/weather-search/internal/handler"
	middlewarepkg "github.com/skyfinder/weather-search/internal/middleware"
	"github.com/skyfinder/weather-search/internal/service"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Search  *handler.SearchHandler
	Auth    *handler.AuthHandler
	History *handler.HistoryHandler
	Health  *handler.HealthHandler
}

// Register wires all HTTP routes.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", handlers.Health.Check)

	limiter := middlewarepkg.SearchRateLimiter(cfg.RateLimitSearch)
	e.GET("/", handlers.Search.Index)
	e.POST("/", handlers.Search.Submit, limiter)
	e.POST("/api/search", handlers.Search.Search, limiter)

	e.POST("/auth/login", handlers.Auth.Login)

	admin := e.Group("/admin", middlewarepkg.JWT(jwtManager), middlewarepkg.RequireRole(service.RoleAdmin))
	admin.GET("/searches", handlers.History.List)
}
