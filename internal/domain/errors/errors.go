package errors

import (
	"errors"
	"strings"
)

// Sentinel errors for handlers to map to HTTP status.
var (
	// ErrAuthenticationFailed deliberately does not say whether the
	// email or the password was wrong.
	ErrAuthenticationFailed = errors.New("unable to login")
	ErrUnauthorized         = errors.New("please authenticate")
	ErrNotFound             = errors.New("not found")
	ErrInvalidToken         = errors.New("invalid session token")
	ErrEmailTaken           = errors.New("email is already in use")
)

// ValidationError reports every user-correctable input problem at once.
type ValidationError struct {
	Problems []string
}

// NewValidation builds a ValidationError from one or more problems.
func NewValidation(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// AsValidation unwraps err into a ValidationError, if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// LockedError is returned when repeated login failures have temporarily
// locked an account.
type LockedError struct {
	RetryAfterSeconds int
}

func (e *LockedError) Error() string {
	return "account temporarily locked"
}

// AsLocked unwraps err into a LockedError, if it is one.
func AsLocked(err error) (*LockedError, bool) {
	var le *LockedError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}
