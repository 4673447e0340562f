// Package main is the entry point of the dashboard API.
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"kycdesk/internal/config"
	"kycdesk/internal/handlers"
	"kycdesk/internal/logging"
	"kycdesk/internal/metrics"
	"kycdesk/internal/repositories"
	"kycdesk/internal/repositories/cache"
	"kycdesk/internal/routes"
	"kycdesk/internal/services/audit"
	"kycdesk/internal/services/auth"
	"kycdesk/internal/services/kyc"
	"kycdesk/internal/services/transaction"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
)

func main() {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Init(cfg.Log)

	db, err := repositories.InitDB(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := repositories.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
	log.Info().Msg("connected to database")

	redisClient := cache.NewRedisClient(cfg.Redis)
	cacheService := cache.NewCacheService(redisClient, cfg.Redis.UserTTL)
	if err := cacheService.HealthCheck(context.Background()); err != nil {
		// the identity cache degrades to the database
		log.Warn().Err(err).Msg("redis unavailable at startup")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	userRepo := repositories.NewUserRepository(db, cacheService)
	kycRepo := repositories.NewKYCRepository(db, m)
	txRepo := repositories.NewTransactionRepository(db, m)
	auditRepo := repositories.NewAuditRepository(db, m)

	auditService := audit.NewService(auditRepo, m)
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	authService := auth.NewService(userRepo, tokens, auditService, m)
	kycService := kyc.NewService(kycRepo, auditService, m)
	txService := transaction.NewService(txRepo, kycRepo)

	health := handlers.NewHealthHandler(map[string]handlers.Check{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"redis": cacheService.HealthCheck,
	})

	app := fiber.New(fiber.Config{
		AppName:      "kycdesk",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.Origins(), ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))
	app.Use(logging.Middleware())

	routes.SetupRoutes(app, routes.Dependencies{
		Auth:         authService,
		KYC:          kycService,
		Transactions: txService,
		Audit:        auditService,
		Health:       health,
		Metrics:      m,
		Gatherer:     reg,
		Throttle: routes.Throttle{
			Max:     cfg.Auth.ThrottleMax,
			Window:  cfg.Auth.ThrottleWindow,
			Storage: cache.NewLimiterStorage(redisClient),
		},
		StaticDir: cfg.StaticDir,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("server listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if err := cacheService.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close redis connection")
	}
	if err := repositories.Close(db); err != nil {
		log.Error().Err(err).Msg("failed to close database connection")
	}
}
