package errors

import "errors"

// Business-rule violations are deterministic and surfaced to the caller
// as-is, never retried. ErrConcurrencyConflict and ErrStorageUnavailable
// are transient; callers may retry after re-reading current state.
var (
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation error")
	ErrInvalidTransition   = errors.New("invalid transition")
	ErrForbidden           = errors.New("forbidden")
	ErrPaymentRequired     = errors.New("payment required")
	ErrDuplicatePayment    = errors.New("duplicate payment")
	ErrPaymentMismatch     = errors.New("payment amount mismatch")
	ErrConcurrencyConflict = errors.New("concurrency conflict")
	ErrStorageUnavailable  = errors.New("storage unavailable")

	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
