// Package errors provides structured error types for dailywall.
//
// Every failure in a run is fatal, so the value of this package is in
// classification: each error carries a machine-readable [Code] that names the
// failure category, and the pipeline wraps it with the name of the stage that
// failed. Callers can then report "fetch weather: PARSE_FAILED: ..." without
// string matching.
//
// # Error Codes
//
//   - FETCH_FAILED: network or HTTP error reaching a source
//   - PARSE_FAILED: expected markup or structure absent
//   - EMPTY_RESULT: a selection step produced no candidates
//   - RENDER_FAILED: font assets or text measurement failed
//   - INVALID_*: bad arguments or configuration
//   - WRITE_FAILED: the output sink could not persist the result
//
// # Usage
//
//	err := errors.New(errors.ErrCodeEmptyResult, "no forecast rows on %s", url)
//	if errors.Is(err, errors.ErrCodeEmptyResult) {
//	    // Handle missing data
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFetch, origErr, "failed to fetch %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Source errors
	ErrCodeFetch       Code = "FETCH_FAILED"
	ErrCodeParse       Code = "PARSE_FAILED"
	ErrCodeEmptyResult Code = "EMPTY_RESULT"

	// Rendering errors
	ErrCodeRender Code = "RENDER_FAILED"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidURL    Code = "INVALID_URL"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Output errors
	ErrCodeWrite       Code = "WRITE_FAILED"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
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
