package core

import "errors"

var (
	// ErrUnknownView is returned when no view is registered under a key.
	ErrUnknownView = errors.New("unknown view")

	// ErrInstanceNotFound is returned for ids that were never mounted, were
	// unmounted, or were reaped after idling.
	ErrInstanceNotFound = errors.New("view instance not found")

	// ErrReadOnly is returned when a write targets a view without an
	// editable column or the service has no writer.
	ErrReadOnly = errors.New("view is read-only")
)
