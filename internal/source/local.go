package source

import (
	"context"
	"errors"
	"net/http"

	"github.com/JonMunkholm/committees/internal/store"
	"github.com/JonMunkholm/committees/internal/table"
)

// Local reads records straight from an in-process store.
type Local struct {
	Store store.Store
}

// NewLocal wraps st.
func NewLocal(st store.Store) *Local {
	return &Local{Store: st}
}

// Fetch returns the records for endpoint. Store failures are reported as
// FetchError with the status the data API would have answered.
func (l *Local) Fetch(ctx context.Context, endpoint string) ([]table.Record, error) {
	recs, err := l.Store.Records(ctx, endpoint)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrUnknownEndpoint) {
			status = http.StatusNotFound
		}
		return nil, &FetchError{Endpoint: endpoint, Status: status, Err: err}
	}
	return recs, nil
}

// SetRecommendation writes through to the store.
func (l *Local) SetRecommendation(ctx context.Context, applicationID, value string) error {
	err := l.Store.SetRecommendation(ctx, applicationID, value)
	if errors.Is(err, store.ErrNotFound) {
		return &FetchError{Endpoint: "applicant-review", Status: http.StatusNotFound, Err: errors.Join(ErrNotFound, err)}
	}
	return err
}
