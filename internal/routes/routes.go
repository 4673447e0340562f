// Package routes wires handlers and middleware onto the Fiber app.
package routes

import (
	"time"

	apperrors "kycdesk/internal/errors"
	"kycdesk/internal/handlers"
	"kycdesk/internal/metrics"
	"kycdesk/internal/middleware"
	"kycdesk/internal/models"
	"kycdesk/internal/services/audit"
	"kycdesk/internal/services/auth"
	"kycdesk/internal/services/kyc"
	"kycdesk/internal/services/transaction"
	"kycdesk/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Throttle bounds requests to the auth surface per caller.
type Throttle struct {
	Max    int
	Window time.Duration
	// Storage shares counters between instances; nil keeps them in memory.
	Storage fiber.Storage
}

// Dependencies are the collaborators SetupRoutes mounts.
type Dependencies struct {
	Auth         auth.Service
	KYC          kyc.Service
	Transactions transaction.Service
	Audit        audit.Service
	Health       *handlers.HealthHandler
	Metrics      *metrics.Metrics
	// Gatherer backs GET /metrics; nil disables the endpoint.
	Gatherer  prometheus.Gatherer
	Throttle  Throttle
	StaticDir string
}

var admins = []models.Role{models.RoleGlobalAdmin, models.RoleRegionalAdmin}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, d Dependencies) {
	app.Use(middleware.Metrics(d.Metrics), middleware.Client())

	if d.Health != nil {
		app.Get("/health", d.Health.HealthCheck)
	}
	if d.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}
	if d.StaticDir != "" {
		app.Static("/static", d.StaticDir)
	}

	api := app.Group("/api")
	authMiddleware := middleware.NewAuthMiddleware(d.Auth)

	authHandler := handlers.NewAuthHandler(d.Auth)
	authGroup := api.Group("/auth", authLimiter(d.Throttle))
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authMiddleware.Handler, authHandler.Me)

	kycHandler := handlers.NewKYCHandler(d.KYC)
	kycGroup := api.Group("/kyc", authMiddleware.Handler)
	kycGroup.Get("/", kycHandler.List)
	kycGroup.Get("/:id", kycHandler.Get)
	kycGroup.Patch("/:id", middleware.RequireRoles(admins...), kycHandler.Transition)
	kycGroup.Post("/:id/note", middleware.RequireRoles(admins...), kycHandler.AddNote)

	txHandler := handlers.NewTransactionHandler(d.Transactions)
	txGroup := api.Group("/transactions", authMiddleware.Handler)
	txGroup.Get("/", txHandler.List)
	txGroup.Post("/", txHandler.Create)
	txGroup.Get("/stats", txHandler.Stats)

	auditHandler := handlers.NewAuditHandler(d.Audit)
	api.Get("/audit-logs", authMiddleware.Handler, auditHandler.List)

	api.Get("/rates", handlers.GetRate)
}

func authLimiter(t Throttle) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        t.Max,
		Expiration: t.Window,
		Storage:    t.Storage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "auth:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return response.FromError(c, apperrors.ErrTooManyAttempts)
		},
	})
}
