package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	r := chi.NewRouter()
	r.Use(Logger)
	r.Get("/views/{view}/{instance}/table", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("hello"))
	})

	req := httptest.NewRequest(http.MethodGet, "/views/committees/abc/table", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line %q: %v", buf.String(), err)
	}
	tests := []struct {
		field string
		want  any
	}{
		{"msg", "request"},
		{"method", "GET"},
		{"path", "/views/committees/abc/table"},
		{"route", "/views/{view}/{instance}/table"},
		{"status", float64(http.StatusTeapot)},
		{"bytes", float64(5)},
	}
	for _, tt := range tests {
		if got := entry[tt.field]; got != tt.want {
			t.Errorf("%s = %v, want %v", tt.field, got, tt.want)
		}
	}
}

func TestResponseWriter_FirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec, status: http.StatusOK}
	w.WriteHeader(http.StatusNotFound)
	w.WriteHeader(http.StatusInternalServerError)
	if w.status != http.StatusNotFound || rec.Code != http.StatusNotFound {
		t.Errorf("status = %d / %d, want 404", w.status, rec.Code)
	}
}
