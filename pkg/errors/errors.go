// Package errors provides structured error types for the forestplot module.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (configuration errors)
//   - *_NOT_FOUND: Resource not found
//   - INVALID_DATA / EMPTY_TABLE: Data errors in the input table
//   - RENDER_BACKEND: Failures from the rendering back end, passed through
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingColumn, "column %q not found", name)
//	if errors.Is(err, errors.ErrCodeMissingColumn) {
//	    // Handle configuration error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeRenderBackend, origErr, "rsvg-convert failed")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration errors: bad column bindings or options.
	ErrCodeInvalidConfig      Code = "INVALID_CONFIG"
	ErrCodeMissingColumn      Code = "MISSING_COLUMN"
	ErrCodeConflictingColumns Code = "CONFLICTING_COLUMNS"
	ErrCodeInvalidGroupOrder  Code = "INVALID_GROUP_ORDER"
	ErrCodeInvalidFormat      Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle       Code = "INVALID_STYLE"
	ErrCodeInvalidManifest    Code = "INVALID_MANIFEST"

	// Data errors: the table itself is unusable.
	ErrCodeInvalidData Code = "INVALID_DATA"
	ErrCodeEmptyTable  Code = "EMPTY_TABLE"

	// Resource not found errors.
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeDatasetNotFound Code = "DATASET_NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"

	// Rendering back-end errors, propagated unchanged.
	ErrCodeRenderBackend Code = "RENDER_BACKEND"

	// Internal errors.
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// IsConfig reports whether err is a configuration error (bad column
// bindings, options, or manifest) as opposed to a data or backend error.
func IsConfig(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidConfig, ErrCodeMissingColumn, ErrCodeConflictingColumns,
		ErrCodeInvalidGroupOrder, ErrCodeInvalidFormat, ErrCodeInvalidStyle,
		ErrCodeInvalidManifest:
		return true
	}
	return false
}
