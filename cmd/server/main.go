package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/nfrund/roster/internal/app"
	"github.com/nfrund/roster/internal/config"
	"github.com/nfrund/roster/internal/logging"
	"github.com/nfrund/roster/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)

	ctx, stop := server.SignalContext(context.Background())
	defer stop()

	deps, err := app.NewDependencies(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize dependencies", "error", err)
		os.Exit(1)
	}

	s := server.New(cfg, deps)
	s.RegisterRoutes()

	runErr := s.Start(ctx)

	closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := deps.Close(closeCtx); err != nil {
		slog.Warn("Error while closing dependencies", "error", err)
	}

	if runErr != nil {
		slog.Error("Server stopped with error", "error", runErr)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
