package errors

import (
	"errors"
	"fmt"
)

// Basic error check functions from standard library
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// ErrorCode identifies an error class across package boundaries.
type ErrorCode string

const (
	ErrValidation       ErrorCode = "validation_error"
	ErrEmptyInput       ErrorCode = "empty_input"
	ErrAIProvider       ErrorCode = "ai_provider_error"
	ErrAINotConfigured  ErrorCode = "ai_not_configured"
	ErrInternal         ErrorCode = "internal_error"
	ErrInvalidConfig    ErrorCode = "invalid_configuration"
	ErrCacheUnavailable ErrorCode = "cache_unavailable"
)

var errorMessages = map[ErrorCode]string{
	ErrValidation:       "Invalid request",
	ErrEmptyInput:       "Input sequence is empty",
	ErrAIProvider:       "AI provider request failed",
	ErrAINotConfigured:  "AI provider is not configured",
	ErrInternal:         "Internal error occurred",
	ErrInvalidConfig:    "Invalid configuration",
	ErrCacheUnavailable: "Cache unavailable",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}

// AppError carries an ErrorCode, a human readable message and an optional cause.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = GetErrorMessage(e.Code)
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any *AppError with the same code, so sentinels like
// &AppError{Code: ErrValidation} work with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New creates an error with the default message for code.
func New(code ErrorCode) *AppError {
	return &AppError{Code: code}
}

// WithMessage creates an error with a custom message.
func WithMessage(code ErrorCode, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches code to err.
func Wrap(code ErrorCode, err error) *AppError {
	return &AppError{Code: code, Err: err}
}

// Validation creates a ValidationError with a client-facing message.
func Validation(format string, args ...any) *AppError {
	return WithMessage(ErrValidation, format, args...)
}

// CodeOf returns the code of the outermost *AppError in err's chain, or
// ErrInternal when there is none.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	return errors.Is(err, New(ErrValidation))
}
