package sieve

import "errors"

// Sentinel errors returned by sieve operations.
//
// Callers should use [errors.Is] to check error types. Every failure
// is a hard stop of the current sieve: there is no recoverable error
// category, and retrying with the same inputs is pointless since all
// sizes are deterministic functions of the inputs.
var (
	// ErrInvalidRange indicates an unusable [start, stop] range:
	// start < 7, start > stop, or stop > MaxStop.
	//
	// Surfaced at construction; no partial state is retained.
	ErrInvalidRange = errors.New("sieve: invalid range")

	// ErrResourceExhausted indicates that a crossing-off tier could
	// not allocate the bookkeeping implied by the range's prime
	// density.
	ErrResourceExhausted = errors.New("sieve: resource exhausted")

	// ErrDone indicates [Sieve.Run] was called on a sieve that has
	// already run. A Sieve covers exactly one pass over its range.
	//
	// This is a programming error.
	ErrDone = errors.New("sieve: already sieved")
)
