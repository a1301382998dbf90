// Package apperr defines the error taxonomy shared by services, repositories
// and HTTP handlers.
//
// Authorization failures on a specific note are deliberately folded into
// ErrNotFound: a caller must not be able to distinguish "exists but not
// yours" from "does not exist".
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a note that is absent or not visible to the caller.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks an attempt to register an already-taken email.
	ErrConflict = errors.New("already exists")
	// ErrInvalidCredentials marks a failed login. The message never says
	// whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized marks a missing, malformed or expired session token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrBadRequest marks a malformed request, e.g. an empty search query.
	ErrBadRequest = errors.New("bad request")
	// ErrInternal masks unexpected collaborator failures. Details are logged,
	// never surfaced.
	ErrInternal = errors.New("internal error")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	// Field names the offending input field.
	Field string
	// Reason is a human-readable description safe to surface.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validation constructs a ValidationError for the given field.
func Validation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
