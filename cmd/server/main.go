package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tably/tably/internal/config"
	"github.com/tably/tably/internal/engine"
	"github.com/tably/tably/internal/logging"
	"github.com/tably/tably/internal/source"
	"github.com/tably/tably/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"source", cfg.Source.Location,
		"gate_enabled", cfg.Auth.GateEnabled(),
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	// Fetch and parse the source once at startup so the first request
	// already has data, and misconfiguration fails fast.
	ctx := context.Background()
	loader := source.NewLoader(cfg.Source.Location, cfg.Source.FetchTimeout)

	res, err := loader.Load(ctx)
	if err != nil {
		slog.Error("failed to load CSV source", "source", cfg.Source.Location, "error", err)
		os.Exit(1)
	}

	ds, err := engine.Parse(res.Text)
	if err != nil {
		slog.Error("failed to parse CSV source", "source", cfg.Source.Location, "error", err)
		os.Exit(1)
	}

	slog.Info("source loaded",
		"rows", len(ds.Records),
		"columns", len(ds.Columns),
		"dropped_rows", ds.Dropped,
		"fingerprint", res.Fingerprint,
	)

	store := web.NewStore(ds, res.Fingerprint)
	server := web.NewServer(cfg, loader, store)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(cfg.Server.Addr()); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
