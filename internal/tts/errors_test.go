package tts

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestTTSError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewSynthesisError("entry 3 (Bob)", cause).WithContext("speaker", "Bob")

	if !strings.Contains(err.Error(), "SYNTHESIS_FAILURE") {
		t.Errorf("Error() = %q, want code prefix", err.Error())
	}
	if !strings.Contains(err.Error(), "connection reset") {
		t.Errorf("Error() = %q, want cause", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if err.Context["speaker"] != "Bob" {
		t.Errorf("Context[speaker] = %v, want Bob", err.Context["speaker"])
	}
}

func TestErrorConstructorsDefaultCause(t *testing.T) {
	tests := []struct {
		name  string
		err   *TTSError
		code  ErrorCode
		cause error
	}{
		{"synthesis", NewSynthesisError("x", nil), ErrorCodeSynthesis, ErrSynthesisFailed},
		{"decode", NewDecodeError("x", nil), ErrorCodeDecode, ErrDecodeFailed},
		{"configuration", NewConfigurationError("x", ErrIncompleteAssignment), ErrorCodeConfiguration, ErrIncompleteAssignment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.code)
			}
			if !errors.Is(tt.err, tt.cause) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.cause)
			}
		})
	}
}

func TestHasCode(t *testing.T) {
	wrapped := fmt.Errorf("build failed: %w", NewDecodeError("entry 1", nil))

	if !HasCode(wrapped, ErrorCodeDecode) {
		t.Error("HasCode should see through fmt.Errorf wrapping")
	}
	if HasCode(wrapped, ErrorCodeSynthesis) {
		t.Error("HasCode matched the wrong code")
	}
	if HasCode(errors.New("plain"), ErrorCodeDecode) {
		t.Error("HasCode matched a plain error")
	}
}
