package models

import "errors"

// Error taxonomy shared across services. Handlers map these to HTTP status via
// middlewares.StatusFromError.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("record not found")
	ErrRoleMismatch      = errors.New("role mismatch")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid status transition")
)
