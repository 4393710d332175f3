// Package logging provides structured logging configuration using log/slog.
//
// This package integrates with chi's RequestID middleware to propagate
// request IDs through structured log entries. View instances outlive the
// request that mounted them, so [ForView] carries the view key and instance
// id instead.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

// Setup configures the global slog logger based on level and format.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func Setup(level, format string) {
	SetupWriter(os.Stdout, level, format)
}

// SetupWriter is Setup with an explicit destination. The CLI logs to stderr
// so exports written to stdout stay clean.
func SetupWriter(w io.Writer, level, format string) {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type ctxKey struct{}

// FromContext returns a logger enriched with request context.
//
// When ctx carries a chi RequestID the logger includes request_id. Fields
// attached with [WithContext] are included as well.
//
//	logger := logging.FromContext(r.Context())
//	logger.Info("export written", "view", key, "rows", n)
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		logger = l
	}

	// Chi's RequestID middleware stores the ID in context
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		logger = logger.With("request_id", reqID)
	}

	return logger
}

// WithFields returns a logger with additional structured fields.
func WithFields(ctx context.Context, args ...any) *slog.Logger {
	return FromContext(ctx).With(args...)
}

// WithContext stores a logger carrying args in the returned context, so that
// later FromContext calls (including ones deep inside the engine) keep them.
func WithContext(ctx context.Context, args ...any) context.Context {
	base := slog.Default()
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		base = l
	}
	return context.WithValue(ctx, ctxKey{}, base.With(args...))
}

// ForView returns a context scoped to one mounted view instance.
func ForView(ctx context.Context, viewKey, instanceID string) context.Context {
	return WithContext(ctx, "view", viewKey, "instance", instanceID)
}
