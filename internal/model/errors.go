package model

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies failures surfaced to the views
type ErrorKind int

const (
	// KindNetworkFailure: request rejected in transit or non-2xx without a readable body
	KindNetworkFailure ErrorKind = iota + 1
	// KindServerRejection: non-2xx with a message body
	KindServerRejection
	// KindValidationFailure: local form checks failed, nothing was sent
	KindValidationFailure
	// KindUnauthenticated: the action needs a current user and there is none
	KindUnauthenticated
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetworkFailure:
		return "network_failure"
	case KindServerRejection:
		return "server_rejection"
	case KindValidationFailure:
		return "validation_failure"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching against an *Error of the same kind
var (
	ErrNetworkFailure  = errors.New("network failure")
	ErrServerRejection = errors.New("server rejected the request")
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("not signed in")
)

// Error is the typed failure returned by clients and services
type Error struct {
	Kind    ErrorKind
	Status  int          // HTTP status, zero when no response was received
	Message string       // user-facing message
	Fields  []FieldError // populated for validation failures
	Err     error        // underlying cause
}

// FieldError represents a validation error on a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s [%d]: %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNetworkFailure:
		return e.Kind == KindNetworkFailure
	case ErrServerRejection:
		return e.Kind == KindServerRejection
	case ErrValidation:
		return e.Kind == KindValidationFailure
	case ErrUnauthenticated:
		return e.Kind == KindUnauthenticated
	}
	return false
}

// ProblemDetails is the RFC 9457 body some backends return on failure
type ProblemDetails struct {
	Type    string       `json:"type,omitempty"`
	Title   string       `json:"title,omitempty"`
	Status  int          `json:"status,omitempty"`
	Detail  string       `json:"detail,omitempty"`
	Message string       `json:"message,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Text returns the most specific message the body carries
func (p *ProblemDetails) Text() string {
	return firstString(p.Message, p.Detail, p.Title)
}

// Common error constructors

func NewNetworkError(err error) *Error {
	msg := "could not reach the server"
	if err != nil {
		msg = err.Error()
	}
	return &Error{Kind: KindNetworkFailure, Message: msg, Err: err}
}

// NewStatusError is a non-2xx response whose body could not be read
func NewStatusError(status int) *Error {
	return &Error{
		Kind:    KindNetworkFailure,
		Status:  status,
		Message: fmt.Sprintf("unexpected response: %s", http.StatusText(status)),
	}
}

func NewRejectionError(status int, message string) *Error {
	return &Error{Kind: KindServerRejection, Status: status, Message: message}
}

func NewValidationError(fields []FieldError) *Error {
	// Build detailed message from field errors
	msg := "one or more fields failed validation"
	if len(fields) > 0 {
		msg = fmt.Sprintf("%s: %s", fields[0].Field, fields[0].Message)
		if len(fields) > 1 {
			msg = fmt.Sprintf("%s (and %d more errors)", msg, len(fields)-1)
		}
	}
	return &Error{Kind: KindValidationFailure, Message: msg, Fields: fields}
}

func NewUnauthenticatedError() *Error {
	return &Error{Kind: KindUnauthenticated, Message: "sign in to continue"}
}

// UserMessage returns the message to show for err, or fallback when err
// carries none.
func UserMessage(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" && e.Kind == KindServerRejection {
		return e.Message
	}
	return fallback
}
