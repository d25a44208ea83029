package activity

import "errors"

var (
	// ErrNegativeInput indicates a negative mass, activity or exposure time.
	ErrNegativeInput = errors.New("activity: input must be non-negative")
	// ErrNotFinite indicates a NaN or infinite input or yield.
	ErrNotFinite = errors.New("activity: input must be finite")
)
