package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/committees/internal/table"
	"github.com/JonMunkholm/committees/internal/views"
	"github.com/go-chi/chi/v5"
)

// maxRecommendationBody bounds the PUT recommendation payload.
const maxRecommendationBody = 4 << 10

// handleRecords serves GET /api/{endpoint}: a JSON array of flat objects.
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	endpoint := chi.URLParam(r, "endpoint")
	records, err := s.store.Records(r.Context(), endpoint)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	if records == nil {
		records = []table.Record{}
	}
	writeJSON(w, r, http.StatusOK, records)
}

// ViewInfo describes a registered view for API clients.
type ViewInfo struct {
	Key        string   `json:"key"`
	Title      string   `json:"title"`
	Endpoint   string   `json:"endpoint"`
	Columns    []string `json:"columns"`
	FilterKeys []string `json:"filter_keys"`
}

// handleListViews lists the registered views.
func (s *Server) handleListViews(w http.ResponseWriter, r *http.Request) {
	all := s.service.Views()
	infos := make([]ViewInfo, len(all))
	for i, cfg := range all {
		infos[i] = ViewInfo{
			Key:        cfg.Key,
			Title:      cfg.Title,
			Endpoint:   cfg.Endpoint,
			Columns:    table.Headers(cfg.Columns),
			FilterKeys: cfg.FilterKeyNames(),
		}
	}
	writeJSON(w, r, http.StatusOK, infos)
}

type recommendationRequest struct {
	Recommendation string `json:"recommendation"`
}

// handlePutRecommendation stores a reviewer recommendation.
// 204 on success, 400 for a bad body or value, 404 for an unknown application.
func (s *Server) handlePutRecommendation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "applicationID")

	r.Body = http.MaxBytesReader(w, r.Body, maxRecommendationBody)
	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, fmt.Errorf("%w: recommendation body: %v", errBadRequest, err), http.StatusBadRequest)
		return
	}
	if err := views.ValidateRecommendation(req.Recommendation); err != nil {
		respondError(w, r, err, 0)
		return
	}

	if err := s.store.SetRecommendation(r.Context(), id, req.Recommendation); err != nil {
		respondError(w, r, err, 0)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
