package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/userdir/user-service/docs"
	"github.com/userdir/user-service/internal/api/handler"
	"github.com/userdir/user-service/internal/api/metrics"
	"github.com/userdir/user-service/internal/api/middleware"
	"github.com/userdir/user-service/internal/core/domain"
	"github.com/userdir/user-service/internal/core/ports"
)

const metricsSubsystem = "userdir"

// RouterDeps carries everything the HTTP layer needs. Verifier is optional:
// when nil, protected routes trust the identity forwarded by the gateway.
type RouterDeps struct {
	Auth      ports.AuthService
	Directory ports.DirectoryService
	Verifier  ports.TokenVerifier
	Readiness []handler.DependencyCheck
	Log       zerolog.Logger

	// Registry receives the HTTP and auth metrics and backs /metrics. Defaults
	// to the global Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(metricsConfig(deps.Registry)))
	registerAuthMetrics(deps.Registry, deps.Log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	customerHandler := handler.NewCustomerHandler(deps.Directory)
	adminHandler := handler.NewAdminHandler(deps.Directory, domain.RoleAdmin)
	superAdminHandler := handler.NewAdminHandler(deps.Directory, domain.RoleSuperAdmin)

	// --- Auth routes (public) ---
	auth := e.Group("/auth")
	auth.POST("/customers/register", customerHandler.Create)
	auth.POST("/customers/login", authHandler.CustomerLogin)
	auth.POST("/customers/forgot-password", authHandler.CustomerForgotPassword)
	auth.POST("/customers/reset-password", authHandler.CustomerResetPassword)
	auth.POST("/verify-otp", authHandler.CustomerVerifyOTP)
	auth.POST("/admin/login", authHandler.AdminLogin)
	auth.POST("/admin/forgot-password", authHandler.AdminForgotPassword)
	auth.POST("/admin/verify-otp", authHandler.AdminVerifyOTP)
	auth.POST("/admin/reset-password", authHandler.AdminResetPassword)

	// --- Directory routes ---
	// Middleware is attached per route so the public registration route
	// shares its path with the gated listing.
	staff := protect(deps.Verifier, domain.RoleAdmin, domain.RoleSuperAdmin)
	// Customers reach only their own record; staff reach any.
	ownerOrStaff := append(
		protect(deps.Verifier, domain.RoleCustomer, domain.RoleAdmin, domain.RoleSuperAdmin),
		middleware.CustomerOwnsPath("customerId"),
	)
	superOnly := protect(deps.Verifier, domain.RoleSuperAdmin)

	e.POST("/customers", customerHandler.Create)
	e.GET("/customers", customerHandler.List, staff...)
	e.GET("/customers/:customerId", customerHandler.Get, ownerOrStaff...)
	e.PATCH("/customers/:customerId", customerHandler.Update, ownerOrStaff...)
	e.GET("/customers/:customerId/address", customerHandler.ListAddresses, ownerOrStaff...)
	e.POST("/customers/:customerId/address", customerHandler.CreateAddress, ownerOrStaff...)

	mountAdmins(e, "/admin", adminHandler, superOnly)
	mountAdmins(e, "/super-admin", superAdminHandler, superOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Readiness...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Ops ---
	e.GET("/metrics", metricsHandler(deps.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func metricsConfig(reg *prometheus.Registry) echoprometheus.MiddlewareConfig {
	cfg := echoprometheus.MiddlewareConfig{Subsystem: metricsSubsystem}
	if reg != nil {
		cfg.Registerer = reg
	}
	return cfg
}

func registerAuthMetrics(reg *prometheus.Registry, log zerolog.Logger) {
	var r prometheus.Registerer = prometheus.DefaultRegisterer
	if reg != nil {
		r = reg
	}
	if err := metrics.Register(r); err != nil {
		log.Error().Err(err).Msg("auth metrics registration failed")
	}
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}

// protect builds the middleware chain of a gated route: the optional token
// verifier followed by the role gate.
func protect(verifier ports.TokenVerifier, roles ...string) []echo.MiddlewareFunc {
	chain := make([]echo.MiddlewareFunc, 0, 2)
	if verifier != nil {
		chain = append(chain, middleware.Authenticate(verifier))
	}
	return append(chain, middleware.RoleGate(roles...))
}

func mountAdmins(e *echo.Echo, prefix string, h *handler.AdminHandler, mw []echo.MiddlewareFunc) {
	e.GET(prefix, h.List, mw...)
	e.GET(prefix+"/:adminId", h.Get, mw...)
	e.POST(prefix, h.Create, mw...)
	e.PATCH(prefix+"/:adminId", h.Update, mw...)
}
