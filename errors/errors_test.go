package errors_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	. "github.com/Jumpaku/go-drivestore/errors"
)

func TestErrVars_IsAndMessage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		msg  string
	}{
		{"ErrConfiguration", ErrConfiguration, "configuration error"},
		{"ErrInvalidPath", ErrInvalidPath, "invalid path"},
		{"ErrNotFound", ErrNotFound, "not found"},
		{"ErrDecode", ErrDecode, "decode error"},
		{"ErrDecode2", NewDecodeError("", fmt.Errorf("")), "decode error"},
		{"ErrBackend", ErrBackend, "backend error"},
		{"ErrBackend2", NewBackendError("", fmt.Errorf("")), "backend error"},
		{"ErrIOError", ErrIOError, "io error"},
		{"ErrIOError2", NewIOError("", fmt.Errorf("")), "io error"},
		{"ErrNotDownloadable", ErrNotDownloadable, "not downloadable"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name+"/IsWrapped", func(t *testing.T) {
			wrapped := fmt.Errorf("higher: %w", c.err)
			if !errors.Is(wrapped, c.err) {
				t.Fatalf("errors.Is(wrapped, %s) = false, want true", c.name)
			}
		})

		t.Run(c.name+"/Message", func(t *testing.T) {
			wrapped := fmt.Errorf("higher: %w", c.err)
			if !strings.Contains(wrapped.Error(), c.msg) {
				t.Fatalf("%s.Error() = %q does not contain %q", c.name, wrapped.Error(), c.msg)
			}
		})
	}
}

func TestInvalidPathIsConfiguration(t *testing.T) {
	err := fmt.Errorf("segment 2 is empty: %w", ErrInvalidPath)
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("errors.Is(%v, ErrConfiguration) = false, want true", err)
	}
}

type causeError struct{ code int }

func (e *causeError) Error() string { return fmt.Sprintf("code %d", e.code) }

func TestWrapError_ExposesCause(t *testing.T) {
	cause := &causeError{code: 403}
	err := fmt.Errorf("save: %w", NewBackendError("failed to update content", cause))

	if !errors.Is(err, ErrBackend) {
		t.Fatalf("errors.Is(err, ErrBackend) = false, want true")
	}
	var got *causeError
	if !errors.As(err, &got) {
		t.Fatalf("errors.As(err, *causeError) = false, want true")
	}
	if got.code != 403 {
		t.Fatalf("cause code = %d, want 403", got.code)
	}
	want := "save: backend error: failed to update content: code 403"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}
