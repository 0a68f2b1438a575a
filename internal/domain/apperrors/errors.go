package apperrors

import "errors"

// Pipeline failures are mapped to exactly one of these before they reach
// the HTTP boundary.
var (
	ErrValidation          = errors.New("query or userId is missing")
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
)
