// Package errors defines the error taxonomy shared by the store and its backends.
//
// Every error returned by this module either is one of the sentinel values
// below or wraps one of them, so callers classify failures with errors.Is.
// Errors built by NewBackendError, NewIOError and NewDecodeError also unwrap to
// their cause, so the underlying transport error remains reachable through
// errors.As.
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration   = errors.New("configuration error")
	ErrInvalidPath     = fmt.Errorf("invalid path: %w", ErrConfiguration)
	ErrNotFound        = errors.New("not found")
	ErrDecode          = errors.New("decode error")
	ErrBackend         = errors.New("backend error")
	ErrIOError         = errors.New("io error")
	ErrNotDownloadable = errors.New("not downloadable")
)

type wrapError struct {
	underlying error
	msg        string
	cause      error
}

var _ error = (*wrapError)(nil)

// NewBackendError wraps a failure reported by the remote backend.
func NewBackendError(msg string, cause error) error {
	return &wrapError{
		underlying: ErrBackend,
		msg:        msg,
		cause:      cause,
	}
}

func NewIOError(msg string, cause error) error {
	return &wrapError{
		underlying: ErrIOError,
		msg:        msg,
		cause:      cause,
	}
}

// NewDecodeError wraps a codec failure on malformed content.
func NewDecodeError(msg string, cause error) error {
	return &wrapError{
		underlying: ErrDecode,
		msg:        msg,
		cause:      cause,
	}
}

func (err *wrapError) Error() string {
	if err == nil {
		return "(*wrapError)(nil)"
	}
	message := err.underlying.Error() + ": " + err.msg
	if err.cause != nil {
		message += ": " + err.cause.Error()
	}
	return message
}

func (err *wrapError) Unwrap() []error {
	if err.cause == nil {
		return []error{err.underlying}
	}
	return []error{err.underlying, err.cause}
}
