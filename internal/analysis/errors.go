package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind categorizes a submission failure
type ErrorKind string

const (
	// KindTransport indicates the service could not be reached
	KindTransport ErrorKind = "transport"

	// KindTimeout indicates the request deadline expired
	KindTimeout ErrorKind = "timeout"

	// KindStatus indicates the service answered with a non-success status
	KindStatus ErrorKind = "status"

	// KindMalformed indicates the body is not valid JSON or lacks a field
	// every result must carry
	KindMalformed ErrorKind = "malformed"

	// KindContract indicates a well-formed body that misses a field the
	// requested mode guarantees
	KindContract ErrorKind = "contract"

	// KindInternal indicates a client-side failure building the request
	KindInternal ErrorKind = "internal"
)

// Error describes why a submission failed
type Error struct {
	// Kind categorizes the error
	Kind ErrorKind `json:"kind"`

	// Message provides human-readable error description
	Message string `json:"message"`

	// StatusCode for status errors
	StatusCode int `json:"status_code,omitempty"`

	// Field names the missing field for malformed and contract errors
	Field string `json:"field,omitempty"`

	// Cause is the underlying error
	Cause error `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	parts := []string{fmt.Sprintf("type=%s", e.Kind)}

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	parts = append(parts, e.Message)

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error of the same kind
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Diagnostic returns the short user-facing description of the failure
func (e *Error) Diagnostic() string {
	switch e.Kind {
	case KindTransport:
		return "could not reach the analysis service: " + e.Message
	case KindTimeout:
		return "the analysis service did not answer in time"
	case KindStatus:
		return fmt.Sprintf("the analysis service returned status %d: %s", e.StatusCode, e.Message)
	case KindMalformed:
		return "the analysis service returned an unreadable result: " + e.Message
	case KindContract:
		return "the analysis service broke its contract: " + e.Message
	default:
		return e.Message
	}
}

// NewError creates a new error of the given kind
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewErrorWithCause creates an error with an underlying cause
func NewErrorWithCause(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// NewStatusError creates an error for a non-success HTTP status
func NewStatusError(code int, message string) *Error {
	return &Error{Kind: KindStatus, Message: message, StatusCode: code}
}

// NewMalformedError reports a missing universally required field
func NewMalformedError(field, message string) *Error {
	return &Error{Kind: KindMalformed, Field: field, Message: message}
}

// NewContractError reports a missing mode-guaranteed field
func NewContractError(field string, mode Mode) *Error {
	return &Error{
		Kind:    KindContract,
		Field:   field,
		Message: fmt.Sprintf("field %q is required in %s mode but was absent", field, mode),
	}
}

// KindOf returns the kind of err, or KindInternal for foreign errors
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Diagnose returns a human-readable description for any error
func Diagnose(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Diagnostic()
	}
	return err.Error()
}

// IsContractViolation checks if an error is a contract violation
func IsContractViolation(err error) bool {
	return KindOf(err) == KindContract
}

// IsMalformed checks if an error is a malformed response error
func IsMalformed(err error) bool {
	return KindOf(err) == KindMalformed
}

// IsTransport checks if an error comes from the transport layer, including
// timeouts and non-success statuses
func IsTransport(err error) bool {
	switch KindOf(err) {
	case KindTransport, KindTimeout, KindStatus:
		return true
	default:
		return false
	}
}
