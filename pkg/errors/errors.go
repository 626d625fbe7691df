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
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrPermission     ErrorCode = "PERMISSION"
	ErrCancelled      ErrorCode = "CANCELLED"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Project errors
	ErrProjectInvalid ErrorCode = "PROJECT_INVALID"

	// Tool errors
	ErrToolNotFound ErrorCode = "TOOL_NOT_FOUND"
	ErrToolInstall  ErrorCode = "TOOL_INSTALL"

	// Command execution errors
	ErrCommandFailed ErrorCode = "COMMAND_FAILED"

	// Platform errors
	ErrUnsupportedPlatform ErrorCode = "UNSUPPORTED_PLATFORM"

	// Serialization errors
	ErrSerialize ErrorCode = "SERIALIZE"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// AtlasError represents a structured error with code and details
type AtlasError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *AtlasError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *AtlasError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *AtlasError) Is(target error) bool {
	var targetErr *AtlasError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new AtlasError with the given code and message
func New(code ErrorCode, message string) *AtlasError {
	return &AtlasError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new AtlasError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *AtlasError {
	return &AtlasError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an AtlasError
func Wrap(err error, code ErrorCode, message string) *AtlasError {
	if err == nil {
		return nil
	}
	return &AtlasError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AtlasError {
	if err == nil {
		return nil
	}
	return &AtlasError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *AtlasError) WithDetail(key string, value interface{}) *AtlasError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if any error in the chain has the given code.
// Wrapping an error with another code never masks the inner one.
func IsErrorCode(err error, code ErrorCode) bool {
	return errors.Is(err, &AtlasError{Code: code})
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an AtlasError
func GetErrorCode(err error) ErrorCode {
	var atlasErr *AtlasError
	if errors.As(err, &atlasErr) {
		return atlasErr.Code
	}
	return ErrUnknown
}

// IsCancelled reports whether the error is a user cancellation.
// Cancellation is a normal termination of the current operation, not a failure.
func IsCancelled(err error) bool {
	return IsErrorCode(err, ErrCancelled)
}

// UserMessage returns a user-facing message with a remediation hint for
// the error, based on its code.
func UserMessage(err error) string {
	var atlasErr *AtlasError
	if !errors.As(err, &atlasErr) {
		return err.Error()
	}

	switch atlasErr.Code {
	case ErrToolNotFound:
		return fmt.Sprintf("%s. Run 'atlas install-tools' to install it.", atlasErr.Message)
	case ErrProjectInvalid:
		return fmt.Sprintf("%s. Make sure you're in a Rust project directory.", atlasErr.Message)
	case ErrCommandFailed:
		return fmt.Sprintf("%s. Check your project configuration and try again.", atlasErr.Message)
	case ErrPermission:
		return fmt.Sprintf("%s. You may need to run with elevated privileges.", atlasErr.Message)
	case ErrUnsupportedPlatform:
		return fmt.Sprintf("%s. Please check the documentation for supported platforms.", atlasErr.Message)
	case ErrToolInstall:
		return fmt.Sprintf("%s. Please install it manually or check your internet connection.", atlasErr.Message)
	default:
		return atlasErr.Error()
	}
}
