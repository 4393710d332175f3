package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/committees/internal/config"
	"github.com/JonMunkholm/committees/internal/core"
	"github.com/JonMunkholm/committees/internal/logging"
	"github.com/JonMunkholm/committees/internal/source"
	"github.com/JonMunkholm/committees/internal/store"
	"github.com/JonMunkholm/committees/internal/table"
	"github.com/JonMunkholm/committees/internal/web"
	"github.com/joho/godotenv"
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
		"remote_source", cfg.Source.Remote(),
		"export_max_concurrent", cfg.Export.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	ctx := context.Background()

	// The store backs the /api routes and, without a remote source, the views.
	var st store.Store
	if cfg.Database.URL != "" {
		st, err = store.Open(ctx, cfg.Database.URL, store.Options{
			MaxConns:        int32(cfg.Database.MaxConns),
			MinConns:        int32(cfg.Database.MinConns),
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
			MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
			Seed:            cfg.Database.Seed,
		})
		if err != nil {
			slog.Error("failed to open store", "error", err)
			os.Exit(1)
		}
		defer st.Close()

		if err := st.Ping(ctx); err != nil {
			slog.Error("failed to ping store", "error", err)
			os.Exit(1)
		}
		slog.Info("connected to store", "seeded", cfg.Database.Seed)
	}

	var fetcher table.Fetcher
	if cfg.Source.Remote() {
		fetcher = source.NewHTTPSource(cfg.Source.BaseURL, cfg.Source.APIKey, cfg.Source.FetchTimeout)
		slog.Info("views read remote data API", "base_url", cfg.Source.BaseURL)
	} else {
		fetcher = source.NewLocal(st)
	}

	service := core.NewService(fetcher, core.Options{
		MaxInstances:        cfg.View.MaxInstances,
		ExportMaxConcurrent: cfg.Export.MaxConcurrent,
		ExportMaxWait:       cfg.Export.MaxWaitTime,
	})

	slog.Info("views registered", "count", len(service.Views()))
	for _, v := range service.Views() {
		slog.Debug("view", "key", v.Key, "endpoint", v.Endpoint, "columns", len(v.Columns))
	}

	server := web.NewServer(service, st, cfg)

	// Create cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(context.Background())

	go service.StartInstanceReaper(jobCtx, core.ReaperConfig{
		IdleTTL:       cfg.View.IdleTTL,
		CheckInterval: cfg.View.ReapInterval,
	})

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		// Stop background jobs
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Let in-flight exports finish (with timeout)
		exportStatus := service.ExportStatus()
		if exportStatus.Active > 0 {
			slog.Info("waiting for exports to complete", "active", exportStatus.Active)
			if err := service.WaitForExports(shutdownCtx); err != nil {
				slog.Warn("exports did not complete in time", "error", err)
			} else {
				slog.Info("all exports completed")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
		service.Close()
	}()

	// Start server (uses addr from config internally)
	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
