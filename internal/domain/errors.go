package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")

	// ErrInvalidOrExpired covers every OTP/reset-token failure: wrong code,
	// never issued, expired, already consumed. Callers must not be able to
	// tell these apart.
	ErrInvalidOrExpired = errors.New("invalid or expired")

	// ErrUnavailable marks a store or delivery failure the caller may retry.
	ErrUnavailable = errors.New("upstream unavailable")
)
