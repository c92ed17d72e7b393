// Package errors provides structured error types for cinegraph.
//
// Every failure surfaced by the model, the resolver and the encoders carries a
// machine-readable [Code], so callers (and the CLI) can tell a graph problem
// apart from an I/O problem without string matching.
//
// # Error Codes
//
//   - MISSING_REFERENCE: a required reference (e.g. a movie's director) is absent
//   - INVALID_FIELD: a field violates its format constraint (e.g. duration <= 0)
//   - IO_WRITE: the output sink could not be opened, written or closed
//   - INVALID_INPUT / INVALID_FORMAT: bad CLI or seed-file input
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "unknown format: %s", f)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIOWrite, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Graph errors
	ErrCodeMissingReference Code = "MISSING_REFERENCE"
	ErrCodeInvalidField     Code = "INVALID_FIELD"

	// Input errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeIOWrite      Code = "IO_WRITE"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// coded is implemented by every error type in this package.
type coded interface {
	error
	Code() Code
}

// Error is a structured error with a code and optional cause.
type Error struct {
	Kind    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Code returns the error code.
func (e *Error) Code() Code { return e.Kind }

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Kind:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Kind:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It walks the error chain (including joined errors) looking for any coded
// error with a matching code.
func Is(err error, code Code) bool {
	if err == nil {
		return false
	}
	if c, ok := err.(coded); ok && c.Code() == code {
		return true
	}
	switch x := err.(type) {
	case interface{ Unwrap() []error }:
		for _, e := range x.Unwrap() {
			if Is(e, code) {
				return true
			}
		}
		return false
	case interface{ Unwrap() error }:
		return Is(x.Unwrap(), code)
	}
	return false
}

// GetCode extracts the error code from the first coded error in the chain.
// Returns empty string if there is none.
func GetCode(err error) Code {
	var c coded
	if errors.As(err, &c) {
		return c.Code()
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// MissingReferenceError reports a required reference that is absent at
// encode time, such as a movie without a director or a comment without an
// author.
type MissingReferenceError struct {
	Entity string // Kind of the entity holding the reference ("movie", "comment")
	Key    string // Identifying field of that entity (title, username)
	Field  string // Name of the missing reference
}

// Error implements the error interface.
func (e *MissingReferenceError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %s has no %s", ErrCodeMissingReference, e.Entity, e.Field)
	}
	return fmt.Sprintf("%s: %s %q has no %s", ErrCodeMissingReference, e.Entity, e.Key, e.Field)
}

// Code returns ErrCodeMissingReference.
func (e *MissingReferenceError) Code() Code { return ErrCodeMissingReference }

// InvalidFieldError reports a field whose value violates its format
// constraint.
type InvalidFieldError struct {
	Entity string
	Key    string
	Field  string
	Value  any
	Reason string
}

// Error implements the error interface.
func (e *InvalidFieldError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %s.%s=%v: %s", ErrCodeInvalidField, e.Entity, e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("%s: %s %q: %s=%v: %s", ErrCodeInvalidField, e.Entity, e.Key, e.Field, e.Value, e.Reason)
}

// Code returns ErrCodeInvalidField.
func (e *InvalidFieldError) Code() Code { return ErrCodeInvalidField }
