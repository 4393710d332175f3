package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/JonMunkholm/committees/internal/config"
	"github.com/JonMunkholm/committees/internal/core"
	"github.com/JonMunkholm/committees/internal/logging"
	"github.com/JonMunkholm/committees/internal/source"
	"github.com/JonMunkholm/committees/internal/store"
	"github.com/JonMunkholm/committees/internal/table"
	"github.com/joho/godotenv"
)

// setupLogging sends logs to stderr so exports written to stdout stay clean.
// A .env file only fills in variables the shell has not already set.
func setupLogging(level string) {
	logging.SetupWriter(os.Stderr, level, "text")
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded .env file")
	}
}

// app is the service plus whatever it reads from.
type app struct {
	cfg     *config.Config
	service *core.Service
	store   store.Store
}

// openApp builds the service the same way the server does: a remote data
// API when SOURCE_BASE_URL is set, the database otherwise.
func openApp(ctx context.Context, exportSlots int) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	rt := &app{cfg: cfg}
	var fetcher table.Fetcher
	if cfg.Source.Remote() {
		fetcher = source.NewHTTPSource(cfg.Source.BaseURL, cfg.Source.APIKey, cfg.Source.FetchTimeout)
	} else {
		st, err := store.Open(ctx, cfg.Database.URL, store.Options{
			MaxConns: int32(cfg.Database.MaxConns),
			MinConns: int32(cfg.Database.MinConns),
			Seed:     cfg.Database.Seed,
		})
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		rt.store = st
		fetcher = source.NewLocal(st)
	}

	if exportSlots < cfg.Export.MaxConcurrent {
		exportSlots = cfg.Export.MaxConcurrent
	}
	rt.service = core.NewService(fetcher, core.Options{
		ExportMaxConcurrent: exportSlots,
		ExportMaxWait:       cfg.Export.MaxWaitTime,
	})
	return rt, nil
}

func (rt *app) Close() {
	rt.service.Close()
	if rt.store != nil {
		rt.store.Close()
	}
}

// load mounts key and waits for its records. A failed fetch is an error
// here; the web UI shows it as an empty table instead.
func (rt *app) load(ctx context.Context, key string) (*core.Instance, error) {
	inst, err := rt.service.MountAndWait(ctx, key)
	if err != nil {
		return nil, err
	}
	snap := inst.View.Snapshot()
	if snap.Outcome == table.LoadFailed {
		rt.service.Unmount(key, inst.ID.String())
		return nil, fmt.Errorf("load %s: %w", key, errors.New(snap.LoadError))
	}
	return inst, nil
}
