// Package domain defines the core domain models for the rendezvous server.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured
// error code. Codes are the wire errcodes surfaced verbatim in JSON
// error bodies (e.g. "M_NOT_FOUND").
type DomainError struct {
	Code    string // Wire error code (e.g., "M_NOT_FOUND")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
//
// Two DomainErrors are the same error when code and message match;
// several sentinels share a wire code but mean different things
// (ErrPreconditionRequired and ErrMissingParam both map to
// M_MISSING_PARAM yet carry different HTTP statuses).
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// GetErrorMessage extracts the human-readable message from a DomainError.
// Falls back to err.Error() for other error types.
func GetErrorMessage(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		if de.Details != "" {
			return de.Message + ": " + de.Details
		}
		return de.Message
	}
	return err.Error()
}

// Session errors. Codes follow the Matrix client-server error
// vocabulary so clients of either side of the handshake can reuse
// their existing error handling.
var (
	// ErrSessionNotFound indicates no live session: never created,
	// deleted, expired, or evicted. Indistinguishable on purpose.
	ErrSessionNotFound = NewDomainError("M_NOT_FOUND", "Session not found")

	// ErrNotModified is returned by reads, alongside the current record,
	// when If-None-Match equals the current entity tag. It never reaches
	// the wire as a body; the HTTP layer answers 304.
	ErrNotModified = NewDomainError("M_NOT_MODIFIED", "Content not modified")

	// ErrConcurrentWrite indicates an If-Match tag that no longer
	// matches: the other side wrote first.
	ErrConcurrentWrite = NewDomainError("M_CONCURRENT_WRITE", "ETag mismatch")

	// ErrPreconditionRequired indicates a write without If-Match.
	ErrPreconditionRequired = NewDomainError("M_MISSING_PARAM", "If-Match required")

	// ErrPayloadTooLarge indicates a payload above the configured limit.
	ErrPayloadTooLarge = NewDomainError("M_TOO_LARGE", "Upload request body is too large")

	// ErrCapacity is reserved: the current store design evicts instead
	// of failing inserts, so it is defined but never returned.
	ErrCapacity = NewDomainError("M_UNKNOWN", "Session store at capacity")

	// ErrSessionConflict indicates a generated session id collided with
	// a live one. Callers retry with a fresh id; it never reaches the
	// wire.
	ErrSessionConflict = NewDomainError("M_UNKNOWN", "Session id conflict")
)

// Request errors.
var (
	// ErrMissingParam indicates a required request parameter or header
	// is absent (e.g. Content-Length).
	ErrMissingParam = NewDomainError("M_MISSING_PARAM", "Missing request parameter")

	// ErrInvalidParam indicates a malformed request parameter or a body
	// that does not match its declared length.
	ErrInvalidParam = NewDomainError("M_INVALID_PARAM", "Invalid request parameter")

	// ErrUnknown indicates an internal server error.
	ErrUnknown = NewDomainError("M_UNKNOWN", "Internal server error")
)
