package errors

import (
	"fmt"
)

// Common error types
var (
	// Invocation errors
	ErrUsage = New("missing required arguments")

	// Configuration errors
	ErrInvalidConfig  = New("invalid configuration")
	ErrBinaryNotFound = New("executable not found")

	// Separation errors
	ErrModelNotFound    = New("model file not found")
	ErrModelNotLoaded   = New("no model loaded")
	ErrInputNotFound    = New("input audio file not found")
	ErrSeparationFailed = New("audio-separator failed")
	ErrNoOutput         = New("separation produced no output files")
	ErrStemNotFound     = New("stem file not found")

	// Audio tooling errors
	ErrFFmpegFailed = New("ffmpeg failed")

	// File errors
	ErrFileNotFound    = New("file not found")
	ErrFileReadFailed  = New("file read failed")
	ErrFileWriteFailed = New("file write failed")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}

// Detail attaches a detail string to a sentinel so the result still matches
// the sentinel with errors.Is.
func Detail(sentinel *Error, format string, args ...interface{}) error {
	return &Error{
		message: sentinel.message,
		cause:   fmt.Errorf(format, args...),
	}
}

// Helper functions for common patterns

// RequiredField returns an error for missing required fields
func RequiredField(field string) error {
	return Newf("%s is required", field)
}
