package web

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/JonMunkholm/committees/internal/core"
	"github.com/JonMunkholm/committees/internal/table"
	"github.com/JonMunkholm/committees/internal/web/templates"
	"github.com/go-chi/chi/v5"
)

// handleViewPage mounts a new instance of the view and renders its page.
// The fetch starts now; the table fragment polls until it resolves.
func (s *Server) handleViewPage(w http.ResponseWriter, r *http.Request) {
	ctx := WithRequestMetadata(r.Context(), r)
	inst, err := s.service.Mount(ctx, chi.URLParam(r, "view"))
	if err != nil {
		respondError(w, r, err, 0)
		return
	}

	render(w, r, http.StatusOK, templates.ViewPage(s.service.Views(), tableParams(inst)))
}

// instance resolves the {view}/{instance} pair or responds with an error.
func (s *Server) instance(w http.ResponseWriter, r *http.Request) (*core.Instance, bool) {
	inst, err := s.service.Instance(chi.URLParam(r, "view"), chi.URLParam(r, "instance"))
	if err != nil {
		respondError(w, r, err, 0)
		return nil, false
	}
	return inst, true
}

func tableParams(inst *core.Instance) templates.TableParams {
	return templates.TableParams{
		Config:   inst.View.Config(),
		Instance: inst.ID.String(),
		Snapshot: inst.View.Snapshot(),
	}
}

func renderTable(w http.ResponseWriter, r *http.Request, inst *core.Instance) {
	render(w, r, http.StatusOK, templates.Table(tableParams(inst)))
}

// handleTable renders the current table fragment.
func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	inst, ok := s.instance(w, r)
	if !ok {
		return
	}
	renderTable(w, r, inst)
}

// handleSearch replaces the search text.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	inst, ok := s.instance(w, r)
	if !ok {
		return
	}
	inst.View.SetSearch(r.FormValue("q"))
	renderTable(w, r, inst)
}

// handleFilter sets one column filter. An empty or "All" value clears it.
func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	inst, ok := s.instance(w, r)
	if !ok {
		return
	}
	if err := inst.View.SetFilter(r.FormValue("key"), r.FormValue("value")); err != nil {
		respondError(w, r, err, 0)
		return
	}
	renderTable(w, r, inst)
}

// handleSort toggles sorting on a column.
func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	inst, ok := s.instance(w, r)
	if !ok {
		return
	}
	if _, err := inst.View.ToggleSort(r.FormValue("column")); err != nil {
		respondError(w, r, err, 0)
		return
	}
	renderTable(w, r, inst)
}

// handlePage moves between pages: dir=next|prev, or index=N (0-based).
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	inst, ok := s.instance(w, r)
	if !ok {
		return
	}

	switch dir := r.FormValue("dir"); dir {
	case "next":
		inst.View.Next()
	case "prev":
		inst.View.Prev()
	case "":
		idx, err := strconv.Atoi(r.FormValue("index"))
		if err != nil {
			respondError(w, r, fmt.Errorf("%w: page index %q", errBadRequest, r.FormValue("index")), 0)
			return
		}
		inst.View.GoTo(idx)
	default:
		respondError(w, r, fmt.Errorf("%w: page direction %q", errBadRequest, dir), 0)
		return
	}
	renderTable(w, r, inst)
}

// handleRecommendation saves a reviewer recommendation and re-renders the
// table, which reloads while the refetch runs.
func (s *Server) handleRecommendation(w http.ResponseWriter, r *http.Request) {
	inst, ok := s.instance(w, r)
	if !ok {
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	if err := s.service.Recommend(ctx, inst, r.FormValue("id"), r.FormValue("value")); err != nil {
		respondError(w, r, err, 0)
		return
	}
	renderTable(w, r, inst)
}

// handleUnmount tears the instance down.
func (s *Server) handleUnmount(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Unmount(chi.URLParam(r, "view"), chi.URLParam(r, "instance")); err != nil {
		respondError(w, r, err, 0)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StateResponse is the JSON form of a view snapshot.
type StateResponse struct {
	View          string            `json:"view"`
	Instance      string            `json:"instance"`
	Loading       bool              `json:"loading"`
	Outcome       string            `json:"outcome"`
	LoadError     string            `json:"load_error,omitempty"`
	LoadedAt      *time.Time        `json:"loaded_at,omitempty"`
	Search        string            `json:"search"`
	Filters       map[string]string `json:"filters"`
	SortColumn    string            `json:"sort_column,omitempty"`
	SortDirection string            `json:"sort_direction"`
	Page          int               `json:"page"`
	PageCount     int               `json:"page_count"`
	PageSize      int               `json:"page_size"`
	Total         int               `json:"total"`
	Filtered      int               `json:"filtered"`
	Rows          []table.Record    `json:"rows"`
}

// handleState returns the instance snapshot as JSON.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	inst, ok := s.instance(w, r)
	if !ok {
		return
	}

	snap := inst.View.Snapshot()
	resp := StateResponse{
		View:          snap.Key,
		Instance:      inst.ID.String(),
		Loading:       snap.Loading,
		Outcome:       snap.Outcome.String(),
		LoadError:     snap.LoadError,
		Search:        snap.Search,
		Filters:       snap.Filters,
		SortColumn:    snap.Sort.Column,
		SortDirection: snap.Sort.Direction.String(),
		Page:          snap.PageIndex,
		PageCount:     snap.PageCount,
		PageSize:      snap.PageSize,
		Total:         snap.Total,
		Filtered:      snap.FilteredCount,
		Rows:          snap.Rows,
	}
	if !snap.LoadedAt.IsZero() {
		resp.LoadedAt = &snap.LoadedAt
	}
	writeJSON(w, r, http.StatusOK, resp)
}
