package zedloc

import (
	"errors"
	"strings"
	"testing"
)

func TestProviderError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := &ProviderError{Message: "request failed", Cause: cause, Retryable: true}

	if !errors.Is(err, cause) {
		t.Error("Expected errors.Is to find the cause")
	}
	if !strings.Contains(err.Error(), "connection reset") {
		t.Errorf("Error() = %q, expected cause in message", err.Error())
	}
}

func TestTranslationError_WrappedProvider(t *testing.T) {
	inner := &ProviderError{Message: "throttled", Retryable: true}
	err := &TranslationError{Message: "translating segment", Cause: inner}

	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatal("Expected errors.As to find the ProviderError")
	}
	if !pe.Retryable {
		t.Error("Expected retryable flag to survive wrapping")
	}
}

func TestMaskError_Message(t *testing.T) {
	err := &MaskError{Message: "token missing from translation", Token: "__PH1__"}
	if !strings.Contains(err.Error(), "__PH1__") {
		t.Errorf("Error() = %q, expected token in message", err.Error())
	}
}

func TestCountMismatchError_Message(t *testing.T) {
	err := &CountMismatchError{Expected: 2, Got: 1}
	if !strings.Contains(err.Error(), "expected 2") || !strings.Contains(err.Error(), "got 1") {
		t.Errorf("Error() = %q", err.Error())
	}
}
