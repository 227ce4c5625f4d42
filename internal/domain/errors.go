package domain

import "errors"

// Sentinel errors. Services and store backends wrap these with %w and the
// HTTP layer maps them to status codes with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
	// ErrUnavailable marks a store that could not be reached or answered 5xx.
	ErrUnavailable = errors.New("store unavailable")
)
