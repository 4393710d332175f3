package web

import (
	"bytes"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/committees/internal/core"
	"github.com/JonMunkholm/committees/internal/table"
	"github.com/go-chi/chi/v5"
)

// handleExport renders the instance's filtered records as xlsx, pdf or csv.
//
// The file is built in memory before anything is written, so a failed export
// answers with an error notice instead of a truncated download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	inst, ok := s.instance(w, r)
	if !ok {
		return
	}

	format, err := table.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		respondError(w, r, err, http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := s.service.Export(r.Context(), inst, format, &buf); err != nil {
		if errors.Is(err, core.ErrTooManyExports) {
			w.Header().Set("Retry-After", "5")
		}
		respondError(w, r, err, 0)
		return
	}

	cfg := inst.View.Config()
	name := cfg.Export.FileName(cfg.Key, format)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
