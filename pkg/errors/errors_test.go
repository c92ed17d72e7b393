package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Kind != ErrCodeInvalidInput {
		t.Errorf("Kind = %v, want %v", err.Kind, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrCodeIOWrite, cause, "write out.json")

	if err.Code() != ErrCodeIOWrite {
		t.Errorf("Code() = %v, want %v", err.Code(), ErrCodeIOWrite)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "IO_WRITE: write out.json: disk full"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIs(t *testing.T) {
	missing := &MissingReferenceError{Entity: "movie", Key: "Drive", Field: "director"}
	invalid := &InvalidFieldError{Entity: "movie", Key: "Drive", Field: "duration", Value: 0, Reason: "must be positive"}

	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeInvalidInput, "test"), ErrCodeInvalidInput, true},
		{"non-matching code", New(ErrCodeInvalidInput, "test"), ErrCodeIOWrite, false},
		{"outer code of wrapped error", Wrap(ErrCodeIOWrite, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeIOWrite, true},
		{"inner code of wrapped error", Wrap(ErrCodeIOWrite, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeInvalidInput, true},
		{"missing reference", missing, ErrCodeMissingReference, true},
		{"invalid field", invalid, ErrCodeInvalidField, true},
		{"fmt wrapped", fmt.Errorf("resolve: %w", missing), ErrCodeMissingReference, true},
		{"joined", errors.Join(invalid, missing), ErrCodeMissingReference, true},
		{"joined without match", errors.Join(invalid), ErrCodeIOWrite, false},
		{"non-Error type", errors.New("plain error"), ErrCodeInvalidInput, false},
		{"nil error", nil, ErrCodeInvalidInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeInvalidFormat, "test"), ErrCodeInvalidFormat},
		{"missing reference", &MissingReferenceError{Entity: "comment", Field: "author"}, ErrCodeMissingReference},
		{"wrapped invalid field", fmt.Errorf("x: %w", &InvalidFieldError{Entity: "user"}), ErrCodeInvalidField},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMissingReferenceError(t *testing.T) {
	t.Run("with key", func(t *testing.T) {
		err := &MissingReferenceError{Entity: "movie", Key: "Drive", Field: "director"}
		expected := `MISSING_REFERENCE: movie "Drive" has no director`
		if err.Error() != expected {
			t.Errorf("Error() = %v, want %v", err.Error(), expected)
		}
	})

	t.Run("without key", func(t *testing.T) {
		err := &MissingReferenceError{Entity: "comment", Field: "author"}
		expected := "MISSING_REFERENCE: comment has no author"
		if err.Error() != expected {
			t.Errorf("Error() = %v, want %v", err.Error(), expected)
		}
	})
}

func TestInvalidFieldError(t *testing.T) {
	err := &InvalidFieldError{Entity: "movie", Key: "Drive", Field: "duration", Value: -1, Reason: "must be positive"}
	expected := `INVALID_FIELD: movie "Drive": duration=-1: must be positive`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
	if err.Code() != ErrCodeInvalidField {
		t.Errorf("Code() = %v, want %v", err.Code(), ErrCodeInvalidField)
	}
}
