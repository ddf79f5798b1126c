package download

import (
	"errors"
	"fmt"
)

// ErrorCode classifies failures surfaced by the download pipeline.
type ErrorCode string

const (
	CodeInvalidInput        ErrorCode = "INVALID_INPUT"
	CodeUnsupportedPlatform ErrorCode = "UNSUPPORTED_PLATFORM"
	CodeUnsupportedFormat   ErrorCode = "UNSUPPORTED_FORMAT"
	CodeNotFound            ErrorCode = "NOT_FOUND"
	CodeNetwork             ErrorCode = "NETWORK"
	CodeExtraction          ErrorCode = "EXTRACTION"
	CodeArtifactMissing     ErrorCode = "ARTIFACT_MISSING"
)

// Error pairs a classification code with a client-safe message. The wrapped
// cause stays server side; only Message is rendered to clients.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a classified error with a client-facing message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithCause attaches the underlying error and returns the receiver.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// AsError extracts a classified error from an error chain.
func AsError(err error) (*Error, bool) {
	var derr *Error
	if errors.As(err, &derr) {
		return derr, true
	}
	return nil, false
}

// IsCode reports whether the error chain carries the given code.
func IsCode(err error, code ErrorCode) bool {
	derr, ok := AsError(err)
	return ok && derr.Code == code
}
