package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Message(t *testing.T) {
	err := WrapError(ErrParseFailed, fmt.Errorf("unexpected token"))
	got := err.Error()
	want := "[PARSE_FAILED] could not parse generated output: unexpected token"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if ErrParseFailed.Error() != "[PARSE_FAILED] could not parse generated output" {
		t.Errorf("bare error = %q", ErrParseFailed.Error())
	}
}

func TestError_Is(t *testing.T) {
	wrapped := WrapError(ErrProviderUnavailable, fmt.Errorf("connection refused"))

	if !errors.Is(wrapped, ErrProviderUnavailable) {
		t.Error("wrapped error should match its base by code")
	}
	if errors.Is(wrapped, ErrProviderFailed) {
		t.Error("wrapped error must not match a different code")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	wrapped := WrapError(ErrStoreFailed, cause)

	if !errors.Is(wrapped, cause) {
		t.Error("expected unwrap chain to reach the cause")
	}
}
