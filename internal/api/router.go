package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/societyhub/apartment-system/docs"
	"github.com/societyhub/apartment-system/internal/api/handler"
	"github.com/societyhub/apartment-system/internal/api/middleware"
	"github.com/societyhub/apartment-system/internal/core/ports"
	"github.com/societyhub/apartment-system/internal/infrastructure/http/handlers"
)

// Services bundles everything the router dispatches to.
type Services struct {
	Auth          ports.AuthService
	Apartments    ports.ApartmentService
	Maintenance   ports.MaintenanceService
	Payments      ports.PaymentService
	Visitors      ports.VisitorService
	Announcements ports.AnnouncementService
}

// Options tunes the transport layer.
type Options struct {
	CookieSecure   bool
	LoginPerSecond float64
	LoginBurst     int
	// Readiness lists the dependencies probed by /health/ready.
	Readiness map[string]handlers.Pinger
	// Registerer receives the HTTP metrics; nil means the default registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "society",
		Registerer: opts.Registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth, opts.CookieSecure)
	apartmentHandler := handler.NewApartmentHandler(svc.Apartments)
	maintenanceHandler := handler.NewMaintenanceHandler(svc.Maintenance)
	paymentHandler := handler.NewPaymentHandler(svc.Payments)
	visitorHandler := handler.NewVisitorHandler(svc.Visitors)
	announcementHandler := handler.NewAnnouncementHandler(svc.Announcements)

	// --- Public routes ---
	e.POST("/api/register", authHandler.Register)
	e.POST("/api/login", authHandler.Login, middleware.RateLimit(opts.LoginPerSecond, opts.LoginBurst))

	// --- Session routes ---
	g := e.Group("/api", middleware.Auth(svc.Auth))
	admin := middleware.AdminGroup()

	g.POST("/logout", authHandler.Logout)
	g.GET("/user", authHandler.Me)

	g.POST("/maintenance", maintenanceHandler.Create)
	g.GET("/maintenance", maintenanceHandler.List)
	g.PATCH("/maintenance/:id", maintenanceHandler.UpdateStatus)

	g.POST("/payments", paymentHandler.Create)
	g.POST("/payments/upi", paymentHandler.CaptureUPI)
	g.GET("/payments", paymentHandler.List)

	g.GET("/apartments", apartmentHandler.ListResident)
	g.GET("/apartments/all", apartmentHandler.ListManaged, admin)
	g.POST("/apartments", apartmentHandler.Create, admin)
	g.PATCH("/apartments/:id", apartmentHandler.Update, admin)

	g.POST("/visitors", visitorHandler.Create)
	g.GET("/visitors", visitorHandler.List)
	g.PATCH("/visitors/:id/status", visitorHandler.UpdateStatus)
	g.POST("/visitors/:id/check-in", visitorHandler.CheckIn)
	g.POST("/visitors/:id/request-approval", visitorHandler.RequestApproval)
	g.POST("/visitors/:id/notify", visitorHandler.Notify)

	g.POST("/announcements", announcementHandler.Create, admin)
	g.GET("/announcements", announcementHandler.List)

	// --- Health probes and tooling (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(opts.Readiness)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
