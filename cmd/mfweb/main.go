package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mudancafacil/mf-webclient-go/internal/config"
	"github.com/mudancafacil/mf-webclient-go/internal/handler"
	"github.com/mudancafacil/mf-webclient-go/internal/infra/client"
	"github.com/mudancafacil/mf-webclient-go/internal/infra/observability"
	"github.com/mudancafacil/mf-webclient-go/internal/infra/resilience"
	"github.com/mudancafacil/mf-webclient-go/internal/infra/state"
	"github.com/mudancafacil/mf-webclient-go/internal/service"
	"github.com/mudancafacil/mf-webclient-go/internal/session"
	"github.com/mudancafacil/mf-webclient-go/internal/view"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("api_base_url", cfg.APIBaseURL),
		zap.String("state_dir", cfg.StateDir),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
	)

	// --- Tracing ---
	shutdownTracer := observability.InitTracer(context.Background(), "mf-webclient", cfg.OTLPEndpoint, cfg.OTLPInsecure, logger)
	defer shutdownTracer(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Session state ---
	stateStore, err := state.NewFileStore(cfg.StateDir)
	if err != nil {
		logger.Fatal("failed to open state dir", zap.Error(err))
	}
	sess := session.New(stateStore, logger)
	if sess.IsAuthenticated() {
		metrics.IncrSessionRestore("restored")
	} else {
		metrics.IncrSessionRestore("none")
	}

	// --- Remote API client ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	cb := resilience.NewCircuitBreaker("marketplace")
	api := client.NewAPI(httpClient, cfg.APIBaseURL, cb, metrics)

	// --- Services ---
	svc := service.NewAccountService(api, sess, metrics, logger)

	// --- Views ---
	renderer, err := view.New(logger)
	if err != nil {
		logger.Fatal("failed to parse templates", zap.Error(err))
	}

	// --- Router ---
	router := handler.NewRouter(svc, renderer, metrics, cfg.FlashTTL, logger)

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
