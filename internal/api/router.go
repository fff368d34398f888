package api

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/bugtracker-pro/bugtracker/internal/api/handler"
	"github.com/bugtracker-pro/bugtracker/internal/api/middleware"
	"github.com/bugtracker-pro/bugtracker/internal/core/domain"
	"github.com/bugtracker-pro/bugtracker/internal/core/service"
	"github.com/bugtracker-pro/bugtracker/internal/infrastructure/db/postgres"
	redisdb "github.com/bugtracker-pro/bugtracker/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *gorm.DB, rdb *redis.Client, jwtSecret string, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	bugRepo := postgres.NewBugRepository(db)
	dashboardRepo := postgres.NewDashboardRepository(db)
	statsCache := redisdb.NewStatsCache(rdb, logger)

	authService := service.NewAuthService(userRepo, jwtSecret, 24*time.Hour)
	bugService := service.NewBugService(bugRepo, userRepo, statsCache, logger)
	dashboardService := service.NewDashboardService(dashboardRepo, statsCache, logger)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService)
	bugHandler := handler.NewBugHandler(bugService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	auth := middleware.Auth(jwtSecret)

	// --- Public routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)

	// --- Authenticated routes ---
	e.GET("/me", authHandler.Me, auth)
	e.GET("/users", userHandler.List, auth)
	e.GET("/developers", userHandler.ListDevelopers, auth)

	e.GET("/bugs", bugHandler.List, auth)
	e.GET("/bugs/:id", bugHandler.Get, auth)
	e.POST("/bugs", bugHandler.Create, auth, middleware.RBAC(domain.RoleAdmin, domain.RoleTester))
	e.PUT("/bugs/:id", bugHandler.Update, auth)
	e.PATCH("/bugs/:id/status", bugHandler.UpdateStatus, auth)
	e.PATCH("/bugs/:id/assign", bugHandler.Assign, auth, middleware.RBAC(domain.RoleAdmin))
	e.DELETE("/bugs/:id", bugHandler.Delete, auth, middleware.RBAC(domain.RoleAdmin))

	e.GET("/dashboard/stats", dashboardHandler.Stats, auth)
	e.GET("/dashboard/workload", dashboardHandler.Workload, auth)
	e.GET("/dashboard/activity", dashboardHandler.Activity, auth)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
