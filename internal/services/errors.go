package services

import "errors"

// Error kinds surfaced to handlers. Services wrap these with context via
// fmt.Errorf("...: %w", ...); handlers map them to HTTP statuses with
// errors.Is. Anything else is treated as a persistence failure.
var (
	// ErrNotFound marks lookups with no matching rows, including payment
	// attempts against a channel with nothing outstanding.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput marks client-supplied values that fail validation.
	ErrInvalidInput = errors.New("invalid input")
)
