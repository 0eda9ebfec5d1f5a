// Package common defines shared constants and sentinel errors used across
// repository, service and HTTP layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
	ErrorConflict      = errors.New("conflict")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrorValidation   = errors.New("validation error")

	// Auth errors (invalid or malformed session token).
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
	ErrSalonInactive    = errors.New("salon is not active")
	ErrRateLimited      = errors.New("too many requests")
	ErrInvalidSignature = errors.New("invalid signature")

	// Domain errors raised by stored procedures or service rules.
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrAttendanceLocked  = errors.New("attendance is locked for this date")
)
