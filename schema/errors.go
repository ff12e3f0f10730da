package schema

import "errors"

// Sentinel errors. Detection points wrap them with fmt.Errorf and %w.
var (
	// ErrInvalidColor is returned for malformed hex input.
	ErrInvalidColor = errors.New("invalid color")

	// ErrInvalidParameter is returned for out-of-range options and inverted thresholds.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrEmptyInput is returned for an empty candidate list or palette.
	ErrEmptyInput = errors.New("empty input")
)
