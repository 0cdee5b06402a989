package generation

import "errors"

// Errors surfaced by the interpretation pipeline. Callers are expected to
// catch all of these and fall back to templated interpretation text rather
// than blocking the reading flow.
var (
	// ErrMissingCredentials is returned when no API key is configured for
	// the generation backend.
	ErrMissingCredentials = errors.New("generation credentials not configured")

	// ErrInvalidRequest is returned when the request does not describe a
	// valid three-card reading.
	ErrInvalidRequest = errors.New("invalid interpretation request")

	// ErrTimeout is returned when the generation call exceeds its deadline.
	ErrTimeout = errors.New("interpretation generation timed out")

	// ErrUpstream is returned when the generation backend fails or returns
	// an unusable envelope.
	ErrUpstream = errors.New("generation backend error")
)
