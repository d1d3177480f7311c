package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fintrax/analytics-bfa-go/internal/config"
	"github.com/fintrax/analytics-bfa-go/internal/domain"
	"github.com/fintrax/analytics-bfa-go/internal/handler"
	"github.com/fintrax/analytics-bfa-go/internal/infra/cache"
	"github.com/fintrax/analytics-bfa-go/internal/infra/client"
	"github.com/fintrax/analytics-bfa-go/internal/infra/observability"
	"github.com/fintrax/analytics-bfa-go/internal/infra/resilience"
	"github.com/fintrax/analytics-bfa-go/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = godotenv.Load()

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("core_api_url", cfg.CoreAPIURL),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Bool("auth_off", cfg.AuthOff),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "fintrax-analytics-bfa")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	transactionsCache := cache.New[[]domain.Transaction](cfg.CacheTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("core-api")

	// --- Clients ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	transactionsClient := client.NewTransactionsClient(httpClient, cfg.CoreAPIURL, cb, resilienceCfg, metrics, logger)

	// --- Services ---
	analyticsSvc := service.NewAnalyticsService(transactionsClient, transactionsCache, metrics, logger)

	var validator *service.TokenValidator
	if cfg.AuthOff {
		logger.Warn("auth middleware disabled (AUTH_OFF=true)")
	} else {
		validator = service.NewTokenValidator(cfg.JWTSecret)
	}

	// --- Router ---
	router := handler.NewRouter(analyticsSvc, validator, metrics, logger, handler.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
