package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCode represents an error code
type ErrorCode string

const (
	ErrCodeBadRequest         ErrorCode = "BAD_REQUEST"
	ErrCodeValidation         ErrorCode = "VALIDATION_ERROR"
	ErrCodeStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"
	ErrCodeStorageFailed      ErrorCode = "STORAGE_FAILED"
	ErrCodeConfiguration      ErrorCode = "CONFIGURATION_FATAL"
	ErrCodeNotificationFailed ErrorCode = "NOTIFICATION_FAILED"
	ErrCodeInternalError      ErrorCode = "INTERNAL_ERROR"
)

// FieldError names a single rejected field and why it was rejected.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (f FieldError) String() string {
	return fmt.Sprintf("%s: %s", f.Field, f.Reason)
}

// AppError represents an application error
type AppError struct {
	Code    ErrorCode
	Message string
	Fields  []FieldError
	Err     error
}

func (e *AppError) Error() string {
	msg := e.Message
	if len(e.Fields) > 0 {
		parts := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			parts[i] = f.String()
		}
		msg = fmt.Sprintf("%s [%s]", msg, strings.Join(parts, "; "))
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with an AppError
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Invalid creates a validation error carrying one entry per rejected field
func Invalid(fields []FieldError) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: "validation failed",
		Fields:  fields,
	}
}

// CodeOf returns the code of the outermost AppError in err's chain, or
// ErrCodeInternalError when there is none.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternalError
}

// FieldsOf returns the field errors carried by err, if any
func FieldsOf(err error) []FieldError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Fields
	}
	return nil
}

// IsValidation checks if error is a validation failure
func IsValidation(err error) bool {
	return CodeOf(err) == ErrCodeValidation
}

// IsStorage checks if error is a storage failure, whether reported by the
// store itself or by the service wrapping it
func IsStorage(err error) bool {
	code := CodeOf(err)
	return code == ErrCodeStorageFailed || code == ErrCodeStorageUnavailable
}

// IsConfiguration checks if error is a fatal configuration error
func IsConfiguration(err error) bool {
	return CodeOf(err) == ErrCodeConfiguration
}
