package grid

import "errors"

var (
	// ErrInvalidPageSize is returned when the items-per-page value is not
	// positive.
	ErrInvalidPageSize = errors.New("grid: items per page must be positive")
	// ErrNoSource is returned by Load when called without a data source.
	ErrNoSource = errors.New("grid: data source is required")
)
