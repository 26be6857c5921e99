package chunker

import "errors"

var (
	// ErrInvalidMaxChars is returned when the window size is not positive.
	ErrInvalidMaxChars = errors.New("max chars must be positive")

	// ErrNegativeOverlap is returned when the overlap is negative.
	ErrNegativeOverlap = errors.New("overlap cannot be negative")

	// ErrInvalidStep is returned when overlap >= max chars, which would make
	// the split loop stall instead of advancing.
	ErrInvalidStep = errors.New("overlap must be smaller than max chars")
)
