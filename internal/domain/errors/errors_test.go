package errors

import (
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	if ErrAuthenticationFailed == nil {
		t.Error("ErrAuthenticationFailed should not be nil")
	}
	if ErrUnauthorized == nil {
		t.Error("ErrUnauthorized should not be nil")
	}
	if ErrNotFound == nil {
		t.Error("ErrNotFound should not be nil")
	}
	if ErrInvalidToken == nil {
		t.Error("ErrInvalidToken should not be nil")
	}
}

func TestAsValidation(t *testing.T) {
	err := NewValidation("email is invalid", "age must be a positive number")
	ve, ok := AsValidation(err)
	if !ok {
		t.Fatal("expected a ValidationError")
	}
	if len(ve.Problems) != 2 {
		t.Errorf("got %d problems, want 2", len(ve.Problems))
	}
	if ve.Error() != "email is invalid; age must be a positive number" {
		t.Errorf("unexpected message: %q", ve.Error())
	}

	wrapped := fmt.Errorf("signup: %w", err)
	if _, ok := AsValidation(wrapped); !ok {
		t.Error("expected AsValidation to see through wrapping")
	}

	if _, ok := AsValidation(ErrNotFound); ok {
		t.Error("ErrNotFound should not be a ValidationError")
	}
}
