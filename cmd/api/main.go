package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/nivmalka/barbershop-booking/internal/api/router"
	"github.com/nivmalka/barbershop-booking/internal/appointments"
	appconfig "github.com/nivmalka/barbershop-booking/internal/config"
	"github.com/nivmalka/barbershop-booking/internal/http/handlers"
	"github.com/nivmalka/barbershop-booking/internal/observability/metrics"
	"github.com/nivmalka/barbershop-booking/pkg/logging"
)

func main() {
	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)

	// Missing connection parameters fail startup instead of turning every
	// request into a 500 later.
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting booking API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Booking repository on pgx
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create pgx pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("datastore unreachable", "error", err)
		os.Exit(1)
	}

	repo := appointments.NewPostgresRepository(pool)
	bookingMetrics := metrics.NewBookingMetrics(nil)
	svc := appointments.NewService(repo, cfg.SlotTimes, logger).WithMetrics(bookingMetrics)

	// Optional slot cache
	if cfg.RedisAddr != "" {
		redisOptions := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}
		if cfg.RedisTLS {
			redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		redisClient := redis.NewClient(redisOptions)
		defer func() { _ = redisClient.Close() }()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis not available, slot cache disabled", "error", err)
		} else {
			svc.WithCache(appointments.NewRedisSlotCache(redisClient, cfg.SlotCacheTTL))
			logger.Info("slot cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.SlotCacheTTL)
		}
	}

	// Admin view reads through database/sql
	adminDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open admin db handle", "error", err)
		os.Exit(1)
	}
	defer func() { _ = adminDB.Close() }()

	// Setup router
	r := router.New(&router.Config{
		Logger:              logger,
		AppointmentsHandler: appointments.NewHandler(svc, logger),
		AdminAppointments:   handlers.NewAdminAppointmentsHandler(adminDB, logger),
		AdminPassword:       cfg.AdminPassword,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		MetricsHandler:      promhttp.Handler(),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
