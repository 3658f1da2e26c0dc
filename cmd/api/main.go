package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clearslot/appointments/internal/api/router"
	"github.com/clearslot/appointments/internal/app/bootstrap"
	"github.com/clearslot/appointments/internal/appointments"
	appconfig "github.com/clearslot/appointments/internal/config"
	httpmiddleware "github.com/clearslot/appointments/internal/http/middleware"
	"github.com/clearslot/appointments/internal/notify"
	"github.com/clearslot/appointments/internal/observability/metrics"
	"github.com/clearslot/appointments/internal/reporting"
	"github.com/clearslot/appointments/pkg/logging"
)

func main() {
	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting clearslot appointments API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()
	validator := appointments.NewValidator(nil)

	// Schedule store: postgres when configured, in-memory otherwise.
	var repo appointments.Repository
	pool := bootstrap.BuildPool(ctx, cfg, logger)
	if pool != nil {
		defer pool.Close()
		repo = appointments.NewPostgresRepository(pool, validator)
		logger.Info("using postgres schedule store")
	} else {
		repo = appointments.NewInMemoryRepository(validator)
		logger.Warn("no database configured, schedule will not survive restarts")
	}

	// Optional schedule cache.
	var cache *appointments.ScheduleCache
	if redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true); redisClient != nil {
		defer redisClient.Close()
		cache = appointments.NewScheduleCache(redisClient, cfg.ScheduleCacheTTL)
		logger.Info("schedule cache enabled", "ttl", cfg.ScheduleCacheTTL)
	}

	bookingMetrics := metrics.NewBookingMetrics(nil)

	emailSender := bootstrap.BuildEmailSender(cfg, logger)
	notifier := notify.NewService(emailSender, cfg.BookingNotifyEmail, logger)

	svc := appointments.NewService(
		repo,
		appointments.NewEnumerator(validator),
		cache,
		bookingMetrics,
		notifier,
		logger,
	)

	routerCfg := &router.Config{
		Logger:             logger,
		Appointments:       appointments.NewHandler(svc, logger),
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
	if cfg.RateLimitPerSecond > 0 {
		limiter := httpmiddleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst, cfg.RateLimitSweepInterval)
		defer limiter.Stop()
		routerCfg.RateLimiter = limiter
	}
	if reportingDB := bootstrap.BuildReportingDB(cfg, logger); reportingDB != nil {
		defer reportingDB.Close()
		routerCfg.Reports = reporting.NewHandler(reporting.NewRepository(reportingDB), logger)
	}
	r := router.New(routerCfg)

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

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
