// Package errors provides structured error types for parcoords.
//
// Error codes are grouped by the taxonomy the chart engine reports:
//   - SCHEMA_*: schema violations. Fatal to the triggering call, which
//     leaves the previous consistent state intact.
//   - INVALID_*: malformed input reaching an outer surface (CLI, config, ingest).
//   - NOT_FOUND_* / FILE_*: missing resources.
//   - INTERNAL_*: unexpected internal errors.
//
// Recoverable metadata problems are not errors; see dimension.Warning.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeTypeChanged, "attribute %q changed from %s to %s", name, old, new)
//	if errors.IsSchemaViolation(err) {
//	    // surface to the user
//	}
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Schema violations
	ErrCodeTypeChanged Code = "SCHEMA_TYPE_CHANGED"
	ErrCodeMixedColumn Code = "SCHEMA_MIXED_COLUMN"
	ErrCodeUnknownAxis Code = "SCHEMA_UNKNOWN_AXIS"
	ErrCodeUnknownKind Code = "SCHEMA_UNKNOWN_KIND"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidColor  Code = "INVALID_COLOR"
	ErrCodeEmptyDomain   Code = "INVALID_EMPTY_DOMAIN"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// schemaPrefix marks codes that are schema violations.
const schemaPrefix = "SCHEMA_"

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

// IsSchemaViolation reports whether err carries any SCHEMA_* code.
// The whole chain is searched, so a schema violation wrapped under another
// code still counts.
func IsSchemaViolation(err error) bool {
	var e *Error
	for errors.As(err, &e) {
		if strings.HasPrefix(string(e.Code), schemaPrefix) {
			return true
		}
		err = e.Cause
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
