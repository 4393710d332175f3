package web

// errors.go provides unified error response handling for the web layer.
//
// Every error is logged server-side with the request id and returned to the
// client as a user-friendly message in the format the client expects:
// an HTMX notice fragment, JSON for /api and JSON-accepting clients, or plain
// text otherwise. Notices never replace the table, so a failed export or
// refetch leaves the page usable.

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/committees/internal/core"
	"github.com/JonMunkholm/committees/internal/logging"
	"github.com/JonMunkholm/committees/internal/source"
	"github.com/JonMunkholm/committees/internal/store"
	"github.com/JonMunkholm/committees/internal/table"
	"github.com/JonMunkholm/committees/internal/views"
	"github.com/JonMunkholm/committees/internal/web/templates"
	"github.com/a-h/templ"
)

var (
	errRateLimited = errors.New("rate limit exceeded")
	errBadRequest  = errors.New("invalid request parameter")
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// statusFor picks the HTTP status for an error from the lower layers.
func statusFor(err error) int {
	var fe *source.FetchError
	switch {
	case errors.Is(err, core.ErrUnknownView),
		errors.Is(err, core.ErrInstanceNotFound),
		errors.Is(err, store.ErrUnknownEndpoint),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, source.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, views.ErrInvalidRecommendation),
		errors.Is(err, table.ErrUnknownColumn),
		errors.Is(err, table.ErrUnknownFilterKey),
		errors.Is(err, table.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrReadOnly):
		return http.StatusMethodNotAllowed
	case errors.Is(err, core.ErrTooManyExports):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &fe):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondError handles error responses with user-friendly messages.
// A zero statusCode derives the status from err.
func respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	if statusCode == 0 {
		statusCode = statusFor(err)
	}
	userMsg := core.MapError(err)

	logger := logging.FromContext(r.Context())
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	}
	if statusCode >= http.StatusInternalServerError {
		logger.Error("request error", attrs...)
	} else {
		logger.Warn("request error", attrs...)
	}

	switch {
	case isHTMX(r):
		renderErrorPartial(w, r, userMsg, statusCode)
	case wantsJSON(r):
		respondErrorJSON(w, userMsg, statusCode)
	default:
		respondErrorText(w, userMsg, statusCode)
	}
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// respondErrorText writes a plain text error response.
func respondErrorText(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	http.Error(w, msg.Message+" ("+msg.Code+")", statusCode)
}

// renderErrorPartial renders a notice fragment into the page's notice area.
func renderErrorPartial(w http.ResponseWriter, r *http.Request, msg core.UserMessage, statusCode int) {
	w.Header().Set("HX-Retarget", "#"+templates.NoticesID)
	w.Header().Set("HX-Reswap", "innerHTML")
	render(w, r, statusCode, templates.ErrorAlert(msg.Message, msg.Action, msg.Code))
}

// render writes an HTML component with status.
func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Warn("render failed", "path", r.URL.Path, "error", err)
	}
}

// isHTMX checks if the request is an HTMX request.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	// API routes and state snapshots default to JSON
	return strings.HasPrefix(r.URL.Path, "/api/") || strings.HasSuffix(r.URL.Path, "/state")
}
