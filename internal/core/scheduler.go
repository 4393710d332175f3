package core

// scheduler.go runs background maintenance for the service.
//
// Browsers rarely say goodbye, so instances whose page was closed linger
// until the reaper finds them idle. The loop is long-running and stops when
// its context is cancelled.

import (
	"context"
	"log/slog"
	"time"
)

// ReaperConfig holds configuration for the instance reaper.
type ReaperConfig struct {
	IdleTTL       time.Duration // Unmount instances idle this long (default: 30m)
	CheckInterval time.Duration // How often to look (default: 1m)
}

func (c ReaperConfig) withDefaults() ReaperConfig {
	if c.IdleTTL <= 0 {
		c.IdleTTL = 30 * time.Minute
	}
	if c.CheckInterval <= 0 {
		c.CheckInterval = time.Minute
	}
	return c
}

// StartInstanceReaper periodically unmounts idle view instances.
// It runs immediately on start, then every CheckInterval, and returns when
// ctx is cancelled.
func (s *Service) StartInstanceReaper(ctx context.Context, cfg ReaperConfig) {
	cfg = cfg.withDefaults()
	slog.Info("instance reaper started",
		"idle_ttl", cfg.IdleTTL.String(),
		"interval", cfg.CheckInterval.String(),
	)

	s.runReap(cfg)

	ticker := time.NewTicker(cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("instance reaper stopped")
			return
		case <-ticker.C:
			s.runReap(cfg)
		}
	}
}

func (s *Service) runReap(cfg ReaperConfig) {
	start := time.Now()
	n := s.ReapIdle(cfg.IdleTTL)
	if n == 0 {
		slog.Debug("reap found no idle instances", "live", s.InstanceCount())
		return
	}
	slog.Info("reaped idle view instances",
		"reaped", n,
		"live", s.InstanceCount(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
