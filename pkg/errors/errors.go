package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Manifest errors
	ErrManifestLoad  ErrorCode = "MANIFEST_LOAD"
	ErrManifestParse ErrorCode = "MANIFEST_PARSE"
	ErrManifestValid ErrorCode = "MANIFEST_INVALID"

	// Patcher errors
	ErrFileNotFound    ErrorCode = "FILE_NOT_FOUND"
	ErrPermission      ErrorCode = "PERMISSION"
	ErrWriteFailure    ErrorCode = "WRITE_FAILURE"
	ErrAmbiguousMarker ErrorCode = "AMBIGUOUS_MARKER"

	// Step errors
	ErrStepNotFound ErrorCode = "STEP_NOT_FOUND"
	ErrStepInvalid  ErrorCode = "STEP_INVALID"
	ErrStepExecute  ErrorCode = "STEP_EXECUTE"

	// FileSystem errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileCreate    ErrorCode = "FILE_CREATE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrSymlinkExists ErrorCode = "SYMLINK_EXISTS"
	ErrDirCreate     ErrorCode = "DIR_CREATE"

	// Run errors
	ErrRunLocked ErrorCode = "RUN_LOCKED"
	ErrDownload  ErrorCode = "DOWNLOAD"
)

// StrapError represents a structured error with code and details
type StrapError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *StrapError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *StrapError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *StrapError) Is(target error) bool {
	var targetErr *StrapError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// WithDetail attaches a key/value pair to the error for logging
func (e *StrapError) WithDetail(key string, value interface{}) *StrapError {
	e.Details[key] = value
	return e
}

// New creates a new StrapError with the given code and message
func New(code ErrorCode, message string) *StrapError {
	return &StrapError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new StrapError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *StrapError {
	return &StrapError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a StrapError
func Wrap(err error, code ErrorCode, message string) *StrapError {
	if err == nil {
		return nil
	}
	return &StrapError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *StrapError {
	if err == nil {
		return nil
	}
	return &StrapError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// CodeOf returns the ErrorCode of err if it is a StrapError, ErrUnknown otherwise
func CodeOf(err error) ErrorCode {
	var serr *StrapError
	if errors.As(err, &serr) {
		return serr.Code
	}
	return ErrUnknown
}

// IsCode reports whether err carries the given code
func IsCode(err error, code ErrorCode) bool {
	var serr *StrapError
	if errors.As(err, &serr) {
		return serr.Code == code
	}
	return false
}
