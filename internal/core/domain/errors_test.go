// Package domain defines the core domain models for the rendezvous server.
package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainErrorFormat(t *testing.T) {
	err := NewDomainError("M_NOT_FOUND", "Session not found")
	if got := err.Error(); got != "[M_NOT_FOUND] Session not found" {
		t.Errorf("Error() = %q", got)
	}

	withDetails := err.WithDetails("id abc123")
	if got := withDetails.Error(); got != "[M_NOT_FOUND] Session not found: id abc123" {
		t.Errorf("Error() with details = %q", got)
	}
}

func TestDomainErrorIs(t *testing.T) {
	if !errors.Is(ErrSessionNotFound.WithDetails("x"), ErrSessionNotFound) {
		t.Error("WithDetails broke errors.Is identity")
	}
	if !errors.Is(ErrConcurrentWrite.WithCause(errors.New("boom")), ErrConcurrentWrite) {
		t.Error("WithCause broke errors.Is identity")
	}

	// Same wire code, different sentinel: the HTTP layer maps them to
	// different statuses, so they must not compare equal.
	if errors.Is(ErrPreconditionRequired, ErrMissingParam) {
		t.Error("ErrPreconditionRequired compared equal to ErrMissingParam")
	}
	if ErrPreconditionRequired.Code != ErrMissingParam.Code {
		t.Errorf("expected shared wire code, got %q vs %q",
			ErrPreconditionRequired.Code, ErrMissingParam.Code)
	}
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := ErrUnknown.WithCause(cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is() did not find wrapped cause")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap() did not return cause")
	}
}

func TestIsDomainError(t *testing.T) {
	if !IsDomainError(ErrSessionNotFound, "M_NOT_FOUND") {
		t.Error("IsDomainError(ErrSessionNotFound, M_NOT_FOUND) = false")
	}
	if IsDomainError(ErrSessionNotFound, "M_TOO_LARGE") {
		t.Error("IsDomainError matched wrong code")
	}
	if !IsDomainError(fmt.Errorf("wrapped: %w", ErrPayloadTooLarge), "") {
		t.Error("IsDomainError did not see through fmt wrapping")
	}
	if IsDomainError(errors.New("plain"), "") {
		t.Error("IsDomainError matched a plain error")
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := GetErrorCode(ErrConcurrentWrite); got != "M_CONCURRENT_WRITE" {
		t.Errorf("GetErrorCode = %q", got)
	}
	if got := GetErrorCode(errors.New("plain")); got != "" {
		t.Errorf("GetErrorCode(plain) = %q, want empty", got)
	}
}

func TestGetErrorMessage(t *testing.T) {
	if got := GetErrorMessage(ErrSessionNotFound); got != "Session not found" {
		t.Errorf("GetErrorMessage = %q", got)
	}
	if got := GetErrorMessage(ErrSessionNotFound.WithDetails("gone")); got != "Session not found: gone" {
		t.Errorf("GetErrorMessage with details = %q", got)
	}
	if got := GetErrorMessage(errors.New("plain")); got != "plain" {
		t.Errorf("GetErrorMessage(plain) = %q", got)
	}
}
