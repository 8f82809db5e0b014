package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/99minutos/backoffice/internal/api/handler"
	"github.com/99minutos/backoffice/internal/api/middleware"
	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/guard"
	"github.com/99minutos/backoffice/internal/core/ports"
	"github.com/99minutos/backoffice/internal/core/validation"
)

// Deps carries everything the router wires into handlers and middleware.
type Deps struct {
	Auth      ports.AuthService
	Directory ports.DirectoryService
	Sessions  middleware.SessionVerifier
	Validator *validation.Validator
	Guard     *guard.Guard
	Cookie    handler.CookieConfig
	Checks    []handler.DependencyCheck
	Log       zerolog.Logger

	// Registerer and Gatherer default to the Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Validator == nil {
		d.Validator = validation.New()
	}
	if d.Guard == nil {
		d.Guard = guard.New(guard.DefaultTable())
	}
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}
	table := d.Guard.Table()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator(d.Validator)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "backoffice",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(middleware.Guard(middleware.GuardConfig{
		Guard:      d.Guard,
		Sessions:   d.Sessions,
		CookieName: d.Cookie.Name,
		Logger:     d.Log,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Validator, d.Cookie, table.SignIn)
	pageHandler := handler.NewPageHandler()
	principalHandler := handler.NewPrincipalHandler(d.Directory)

	// --- Auth API (bypasses the guard by prefix) ---
	authAPI := e.Group(table.APIAuthPrefix)
	authAPI.POST("/sign-in", authHandler.SignIn)
	authAPI.POST("/sign-up", authHandler.SignUp)
	authAPI.POST("/sign-up/steps/:step", authHandler.ValidateStep)
	authAPI.POST("/sign-out", authHandler.SignOut)
	authAPI.POST("/forgot-password", authHandler.ForgotPassword)

	// --- Guarded pages ---
	e.GET("/", pageHandler.Home)
	e.GET("/forbidden", pageHandler.Forbidden)
	e.GET("/auth/sign-in", pageHandler.SignIn)
	e.GET("/auth/sign-up", pageHandler.SignUp)
	e.GET("/auth/forgot-password", pageHandler.ForgotPassword)
	e.GET("/dashboard", pageHandler.Dashboard)
	e.GET("/admin/users", principalHandler.List)

	// --- Bearer API ---
	api := e.Group("/api", middleware.Auth(d.Sessions))
	api.GET("/me", principalHandler.Me)
	api.GET("/admin/principals", principalHandler.List, middleware.RBAC(domain.RoleAdmin))

	// --- Health checks (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Checks...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
