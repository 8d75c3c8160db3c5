package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/forgo/gather/internal/model"
	"github.com/forgo/gather/internal/service"
	"github.com/forgo/gather/internal/store"
)

// Exit codes reported by the gather command
const (
	ExitInternal        = 1
	ExitInvalidInput    = 2
	ExitUnauthenticated = 3
	ExitRejected        = 4
	ExitUnreachable     = 5
)

// Failure is an error mapped for display. It satisfies cli.ExitCoder.
type Failure struct {
	Code    int
	Message string
	Fields  []model.FieldError
	Err     error
}

func (f *Failure) Error() string {
	if len(f.Fields) == 0 {
		return f.Message
	}
	var b strings.Builder
	b.WriteString(f.Message)
	for _, fe := range f.Fields {
		b.WriteString("\n  ")
		b.WriteString(fe.Field)
		b.WriteString(": ")
		b.WriteString(fe.Message)
	}
	return b.String()
}

// ExitCode returns the process exit status
func (f *Failure) ExitCode() int { return f.Code }

func (f *Failure) Unwrap() error { return f.Err }

// MapServiceError converts a service or client error to a Failure.
// This centralizes error handling for all commands so every failure is
// shown with a consistent message and exit status.
func MapServiceError(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}

	var merr *model.Error
	errors.As(err, &merr)

	switch {
	// ===== Local Validation → 2 =====
	case errors.Is(err, model.ErrValidation):
		fail := &Failure{Code: ExitInvalidInput, Message: "invalid input:", Err: err}
		if merr != nil {
			fail.Fields = merr.Fields
		}
		return fail
	case errors.Is(err, service.ErrInvalidViewMode),
		errors.Is(err, service.ErrEmptyPatch),
		errors.Is(err, service.ErrNoSuchSuggestion):
		return &Failure{Code: ExitInvalidInput, Message: err.Error(), Err: err}
	case errors.Is(err, service.ErrEntityNotDisplayed),
		errors.Is(err, service.ErrEntityNotTracked):
		return &Failure{Code: ExitInvalidInput, Message: "no such item in the current list", Err: err}

	// ===== Session → 3 =====
	case errors.Is(err, model.ErrUnauthenticated),
		errors.Is(err, store.ErrNoSession):
		return &Failure{Code: ExitUnauthenticated, Message: "sign in to continue: run 'gather login'", Err: err}

	// ===== Server Rejections → 4 =====
	case errors.Is(err, model.ErrServerRejection):
		return &Failure{Code: ExitRejected, Message: model.UserMessage(err, "the server rejected the request"), Err: err}
	case errors.Is(err, service.ErrMissingUserID):
		return &Failure{Code: ExitRejected, Message: "sign-in failed: " + err.Error(), Err: err}

	// ===== Unreachable Backends → 5 =====
	case errors.Is(err, model.ErrNetworkFailure),
		errors.Is(err, context.DeadlineExceeded):
		return &Failure{Code: ExitUnreachable, Message: "could not reach the server, try again later", Err: err}
	case errors.Is(err, context.Canceled):
		return &Failure{Code: ExitUnreachable, Message: "cancelled", Err: err}

	// ===== Default → 1 =====
	default:
		return &Failure{Code: ExitInternal, Message: err.Error(), Err: err}
	}
}

// fail maps err, keeping nil as a nil error
func fail(err error) error {
	if err == nil {
		return nil
	}
	return MapServiceError(err)
}
