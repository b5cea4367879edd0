package models

import "errors"

// Pipeline error taxonomy. Stages wrap these with fmt.Errorf("...: %w", ...)
// and callers test with errors.Is; the core performs no logging or retries.
var (
	// ErrNotFound indicates a required input artifact (transcript JSON,
	// diarization output, audio file, persisted speaker map) is absent.
	ErrNotFound = errors.New("not found")

	// ErrMalformedInput indicates a segment or turn missing required fields
	// or violating interval invariants (end < start). Stages fail fast
	// rather than coerce.
	ErrMalformedInput = errors.New("malformed input")
)
