package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/committees/internal/logging"
)

// WithRequestMetadata adds the client IP and User-Agent to the logging
// context. View instances keep this context, so their fetch logs identify
// the client that mounted them.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	ip := r.RemoteAddr // Already resolved by TrustedRealIP
	return logging.WithContext(ctx, "ip", ip, "user_agent", r.UserAgent())
}
