// Package source provides the record fetchers the table engine loads from.
//
// [HTTPSource] reads the JSON data API of a (possibly remote) deployment;
// [Local] reads straight from an in-process store. Both also implement
// [RecommendationWriter] for the applicant review write-back.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/JonMunkholm/committees/internal/table"
)

// Errors returned by record sources.
var (
	// ErrUnexpectedPayload is returned when the data API answers with
	// something other than a JSON array of objects.
	ErrUnexpectedPayload = errors.New("unexpected payload")

	// ErrNotFound is returned when the addressed record does not exist.
	ErrNotFound = errors.New("not found")
)

// FetchError describes a failed fetch from the data API.
type FetchError struct {
	Endpoint string
	Status   int // HTTP status, 0 when no response was received
	Err      error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.Endpoint, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// RecommendationWriter persists a reviewer recommendation for one application.
type RecommendationWriter interface {
	SetRecommendation(ctx context.Context, applicationID, value string) error
}

// Source is a fetcher that can also write recommendations.
type Source interface {
	table.Fetcher
	RecommendationWriter
}
