package service

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	// ErrUpstream wraps failures of an external issue tracker.
	ErrUpstream = errors.New("upstream provider error")
)
