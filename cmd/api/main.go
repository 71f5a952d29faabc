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

	httpadapter "github.com/essaylab/essaylab-backend/internal/adapters/http"
	"github.com/essaylab/essaylab-backend/internal/bootstrap"
	"github.com/essaylab/essaylab-backend/internal/config"
	"github.com/essaylab/essaylab-backend/internal/observability/logging"
	"github.com/essaylab/essaylab-backend/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger("api", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	serverMetrics := metrics.NewHTTPServerMetrics("api")
	app.PipelineUC.SetObserver(serverMetrics.PipelineObserver("api"))

	router := httpadapter.NewRouter(
		cfg,
		app.AuthUC,
		app.PipelineUC,
		app.AnalysisUC,
		app.ScoreUC,
		app.PracticeUC,
		app.Tokens,
		app.Health,
	)
	router.SetMetrics(serverMetrics)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("api_listening", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("api server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("api_shutdown", "error", err)
	}
}
