package apperror

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Kind is the machine-readable failure classification surfaced to callers.
type Kind string

const (
	KindInvalidInput      Kind = "invalid_input"
	KindRemoteUnavailable Kind = "remote_unavailable"
	KindRemoteError       Kind = "remote_error"
	KindRemoteMalformed   Kind = "remote_malformed_response"
)

// AppError is the only error type that crosses the service boundary. Callers
// get the Kind, Message and an opaque diagnostic Code, never a stack trace.
type AppError struct {
	Kind    Kind
	Message string
	Status  int    // upstream HTTP status, set for KindRemoteError only
	Body    string // upstream body excerpt, diagnostics only
	Code    string // opaque diagnostic code, also written to logs
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newError(kind Kind, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
		Code:    uuid.NewString(),
		Err:     err,
	}
}

// NewInvalidInput reports a caller error. Never retried, never sent remote.
func NewInvalidInput(message string) *AppError {
	return newError(KindInvalidInput, message, nil)
}

// NewRemoteUnavailable reports a transport-level failure reaching the engine,
// so callers can tell "engine down" apart from "no answer".
func NewRemoteUnavailable(err error) *AppError {
	return newError(KindRemoteUnavailable, "retrieval engine unreachable", err)
}

// NewRemoteError reports a non-success status from the engine. Status and a
// body excerpt are preserved for diagnostics.
func NewRemoteError(status int, body string) *AppError {
	e := newError(KindRemoteError, fmt.Sprintf("retrieval engine returned status %d", status), nil)
	e.Status = status
	e.Body = truncate(body, 2048)
	return e
}

// NewRemoteMalformed reports a 2xx response with an empty or unparseable body.
// Treated as a failure, never silently defaulted.
func NewRemoteMalformed(message string, err error) *AppError {
	return newError(KindRemoteMalformed, message, err)
}

// As unwraps err into an *AppError, or nil if it is not one.
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
