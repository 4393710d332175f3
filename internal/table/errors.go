package table

import "errors"

// Errors returned by the table package.
var (
	// ErrUnknownColumn is returned when a sort targets a column the view
	// does not declare.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrUnknownFilterKey is returned when a filter targets a key the view
	// does not declare.
	ErrUnknownFilterKey = errors.New("unknown filter key")

	// ErrExportFailed wraps any failure while generating an export.
	ErrExportFailed = errors.New("export failed")

	// ErrUnsupportedFormat is returned for an export format with no writer.
	ErrUnsupportedFormat = errors.New("unsupported export format")

	// ErrNotMounted is returned when waiting on a view that was never mounted.
	ErrNotMounted = errors.New("view not mounted")
)
