package port

import "errors"

// Sentinel errors used across ports.
var (
	// ErrMissingAPIKey indicates a capability credential is absent. This is
	// a configuration defect: it aborts the run instead of being swallowed.
	ErrMissingAPIKey = errors.New("api key not configured")

	ErrSourceNotFound   = errors.New("source not found")
	ErrDecisionNotFound = errors.New("decision not found")
)
