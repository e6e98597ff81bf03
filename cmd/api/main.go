package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/clauseguard/backend/internal/adapters/http"
	"github.com/clauseguard/backend/internal/bootstrap"
	"github.com/clauseguard/backend/internal/config"
	"github.com/clauseguard/backend/internal/observability/logging"
)

const serviceName = "clauseguard-api"

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger(serviceName, cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := bootstrap.New(cfg, serviceName)

	router := httpadapter.NewRouter(
		app.AnalyzeUC,
		app.PredictUC,
		app.SummaryUC,
		app.WorkflowUC,
		app.Users,
		httpadapter.RouterConfig{
			MaxUploadBytes: cfg.MaxUploadBytes,
			RateLimitRPS:   cfg.APIRateLimitRPS,
			RateLimitBurst: cfg.APIRateLimitBurst,
			MaxConcurrent:  cfg.APIMaxConcurrent,
		},
		app.SvcMetrics,
		func(next http.Handler) http.Handler {
			return app.Metrics.Middleware(serviceName, next)
		},
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", app.Metrics.Handler())
	mux.Handle("/", router.Handler())

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("api_listening", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("api_server_error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("api_shutdown_error", "error", err)
	}
}
