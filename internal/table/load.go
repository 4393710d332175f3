package table

import (
	"context"
	"errors"

	"github.com/JonMunkholm/committees/internal/logging"
)

// Fetcher produces the flat record sequence for a named endpoint.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string) ([]Record, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, endpoint string) ([]Record, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, endpoint string) ([]Record, error) {
	return f(ctx, endpoint)
}

// LoadOutcome tags how a load finished.
type LoadOutcome int

const (
	LoadPending LoadOutcome = iota
	LoadLoaded
	LoadEmpty
	LoadFailed
)

// String returns the outcome name.
func (o LoadOutcome) String() string {
	switch o {
	case LoadLoaded:
		return "loaded"
	case LoadEmpty:
		return "empty"
	case LoadFailed:
		return "failed"
	default:
		return "pending"
	}
}

// LoadResult is the tagged result of one fetch. Records is never nil.
type LoadResult struct {
	Records []Record
	Outcome LoadOutcome
	Err     error
}

// Load fetches endpoint and normalizes the result. Fetch errors are logged
// and absorbed: the caller always gets a usable record sequence, with the
// failure reason kept in Err.
func Load(ctx context.Context, f Fetcher, endpoint string, normalize Normalizer) LoadResult {
	logger := logging.FromContext(ctx).With("endpoint", endpoint)

	recs, err := f.Fetch(ctx, endpoint)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Debug("fetch cancelled")
		} else {
			logger.Warn("fetch failed", "error", err)
		}
		return LoadResult{Records: []Record{}, Outcome: LoadFailed, Err: err}
	}

	if len(recs) == 0 {
		logger.Debug("no records")
		return LoadResult{Records: []Record{}, Outcome: LoadEmpty}
	}

	out := make([]Record, 0, len(recs))
	for _, rec := range recs {
		if rec == nil {
			rec = Record{}
		}
		rec = rec.Clone()
		if normalize != nil {
			rec = normalize(rec)
		}
		out = append(out, rec)
	}

	logger.Debug("records loaded", "count", len(out))
	return LoadResult{Records: out, Outcome: LoadLoaded}
}
