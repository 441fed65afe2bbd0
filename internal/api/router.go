package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/adsc/report-system/docs"
	"github.com/adsc/report-system/internal/api/handler"
	"github.com/adsc/report-system/internal/api/middleware"
	"github.com/adsc/report-system/internal/core/domain"
	"github.com/adsc/report-system/internal/core/ports"
)

// RateLimits configures the per-IP limiters of the public and account routes.
type RateLimits struct {
	LoginLimit     int
	LoginWindow    time.Duration
	RegisterLimit  int
	RegisterWindow time.Duration
}

// Dependencies are the services and stores the HTTP layer is built on. They
// are constructed and torn down by the caller.
type Dependencies struct {
	Auth      ports.AuthService
	Reports   ports.ReportService
	Analytics ports.AnalyticsService
	Goals     ports.GoalService
	Users     ports.UserService
	Roles     ports.RoleService
	Activity  ports.ActivityService
	Resolver  ports.PermissionResolver
	UserStore middleware.UserFinder
	Limiter   ports.RateLimiter
	Health    map[string]handler.DependencyCheck

	JWTSecret string
	Limits    RateLimits
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddleware("reports_http"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Resolver)
	reportHandler := handler.NewReportHandler(deps.Reports)
	analyticsHandler := handler.NewAnalyticsHandler(deps.Analytics, deps.Goals)
	toolsHandler := handler.NewToolsHandler()
	adminHandler := handler.NewAdminHandler(deps.Users, deps.Roles, deps.Activity)

	// --- Public routes ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Health)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	loginLimit := middleware.RateLimit(deps.Limiter, "login", deps.Limits.LoginLimit, deps.Limits.LoginWindow, deps.Logger)
	registerLimit := middleware.RateLimit(deps.Limiter, "register", deps.Limits.RegisterLimit, deps.Limits.RegisterWindow, deps.Logger)

	api := e.Group("/api")
	api.POST("/login", authHandler.Login, loginLimit)

	// --- Authenticated routes ---
	authed := api.Group("", middleware.Auth(deps.JWTSecret), middleware.Identity(deps.UserStore, deps.Resolver))
	can := middleware.RequireCapability

	authed.POST("/logout", authHandler.Logout, middleware.RequireIdentity())
	authed.GET("/user", authHandler.Me, middleware.RequireIdentity())
	authed.POST("/change-password", authHandler.ChangePassword, middleware.RequireIdentity())

	authed.GET("/reports", reportHandler.List, can(domain.CanViewReports))
	authed.GET("/reports/export", reportHandler.Backup, middleware.RequireIdentity())
	authed.GET("/reports/date/:date", reportHandler.ByDate, can(domain.CanViewReports))
	authed.GET("/reports/:id", reportHandler.Get, can(domain.CanViewReports))
	authed.POST("/reports", reportHandler.Create, can(domain.CanCreateReports))
	authed.POST("/reports/bulk-restore", reportHandler.BulkRestore, can(domain.CanBackupRestore))
	authed.PUT("/reports/:id", reportHandler.Update, can(domain.CanEditReports))
	authed.DELETE("/reports/:id", reportHandler.Delete, can(domain.CanDeleteReports))
	authed.GET("/backup", reportHandler.Backup, can(domain.CanBackupRestore))

	authed.GET("/analytics/summary", analyticsHandler.Summary, can(domain.CanViewReports))
	authed.GET("/analytics/compare", analyticsHandler.Compare, can(domain.CanViewReports))

	authed.GET("/goals", analyticsHandler.ListGoals, can(domain.CanViewReports))
	authed.GET("/goals/progress", analyticsHandler.GoalProgress, can(domain.CanViewReports))
	authed.POST("/goals", analyticsHandler.CreateGoal, can(domain.CanViewReports))
	authed.DELETE("/goals/:id", analyticsHandler.DeleteGoal, can(domain.CanViewReports))

	authed.POST("/tools/goal-seek", toolsHandler.GoalSeek, middleware.RequireIdentity())

	authed.GET("/users", adminHandler.ListUsers, can(domain.CanManageUsers))
	authed.POST("/users", adminHandler.CreateUser, can(domain.CanManageUsers), registerLimit)
	authed.PUT("/users/:id", adminHandler.UpdateUser, can(domain.CanManageUsers))
	authed.DELETE("/users/:id", adminHandler.DeleteUser, can(domain.CanManageUsers))

	authed.GET("/roles", adminHandler.ListRoles, can(domain.CanAccessAdmin))
	authed.GET("/roles/:name/permissions", adminHandler.RolePermissions, middleware.RequireIdentity())
	authed.GET("/roles/:id", adminHandler.GetRole, can(domain.CanAccessAdmin))
	authed.POST("/roles", adminHandler.CreateRole, can(domain.CanManageUsers))
	authed.PUT("/roles/:id", adminHandler.UpdateRole, can(domain.CanManageUsers))
	authed.DELETE("/roles/:id", adminHandler.DeleteRole, can(domain.CanManageUsers))

	authed.GET("/activity-logs", adminHandler.ListActivity, can(domain.CanViewActivityLogs))

	return e
}
