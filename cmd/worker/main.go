package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/essaylab/essaylab-backend/internal/bootstrap"
	"github.com/essaylab/essaylab-backend/internal/config"
	"github.com/essaylab/essaylab-backend/internal/observability/logging"
	"github.com/essaylab/essaylab-backend/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger("worker", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics("worker")
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", workerMetrics.Handler())
		slog.Info("worker_metrics_listening", "port", cfg.WorkerMetricsPort)
		if err := http.ListenAndServe(":"+cfg.WorkerMetricsPort, mux); err != nil && err != http.ErrServerClosed {
			slog.Error("worker_metrics_server", "error", err)
		}
	}()

	slog.Info("worker_subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeResultReady(ctx, func(handlerCtx context.Context, resultID string) error {
		buildCtx, cancel := context.WithTimeout(handlerCtx, 5*time.Minute)
		defer cancel()

		done := workerMetrics.BuildStarted()
		defer done()

		start := time.Now()
		buildErr := app.PracticeUC.BuildForResult(buildCtx, resultID)
		workerMetrics.ObserveBuild("worker", start, buildErr)
		return buildErr
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}
