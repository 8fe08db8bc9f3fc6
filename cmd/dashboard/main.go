package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/vancouver-crime-dashboard/internal/adapter/csvfile"
	httpadapter "github.com/couchcryptid/vancouver-crime-dashboard/internal/adapter/http"
	"github.com/couchcryptid/vancouver-crime-dashboard/internal/config"
	"github.com/couchcryptid/vancouver-crime-dashboard/internal/dashboard"
	"github.com/couchcryptid/vancouver-crime-dashboard/internal/observability"
	"github.com/jonboulle/clockwork"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The dashboard cannot run without data: any load error is fatal and the
	// server never starts.
	start := clock.Now()
	table, err := csvfile.Load(ctx, cfg.DataPath)
	if err != nil {
		logger.Error("failed to load incidents", "path", cfg.DataPath, "error", err)
		os.Exit(1)
	}
	loadDuration := clock.Since(start)
	metrics.LoadDuration.Set(loadDuration.Seconds())
	logger.Info("incidents loaded",
		"path", cfg.DataPath,
		"incidents", table.Len(),
		"categories", len(table.Categories()),
		"years", len(table.Years()),
		"duration", loadDuration,
	)

	svc := dashboard.New(table, cfg.MapOptions(), clock, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}

// newLogger builds the process logger and installs it as the slog default.
func newLogger(cfg *config.Config) *slog.Logger {
	return sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
}
