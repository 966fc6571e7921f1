package utils

import "errors"

// Common application errors used across services.
var (
	ErrUpstreamUnavailable = errors.New("UPSTREAM_UNAVAILABLE")
	ErrValidationFailed    = errors.New("VALIDATION_FAILED")
)
