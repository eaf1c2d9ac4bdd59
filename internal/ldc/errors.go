package ldc

import "errors"

// Fatal error categories. Callers should match with errors.Is; the wrapped
// message carries the offending stage and record.
var (
	// ErrInvalidInput marks malformed or out-of-domain records: negative or
	// non-finite flow, zero-length series, duplicate dates, non-positive
	// concentration samples.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfiguration marks a bad regulatory standard or unit-conversion
	// constant. Raised before any computation starts.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)
