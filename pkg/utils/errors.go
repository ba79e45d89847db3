package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// ErrorType represents different types of errors
type ErrorType string

const (
	ErrorTypeValidation  ErrorType = "validation"
	ErrorTypeIO          ErrorType = "io"
	ErrorTypeOCR         ErrorType = "ocr"
	ErrorTypeDecode      ErrorType = "decode"
	ErrorTypeWrite       ErrorType = "write"
	ErrorTypeSystem      ErrorType = "system"
	ErrorTypeUnsupported ErrorType = "unsupported"
	ErrorTypePermission  ErrorType = "permission"
	ErrorTypeNotFound    ErrorType = "not_found"
)

// AppError represents an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError of the same type
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type
	}
	return false
}

// WithContext adds context information to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new application error
func NewError(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string, cause error) *AppError {
	return NewError(ErrorTypeValidation, message, cause)
}

// NewOCRError creates an OCR engine error
func NewOCRError(message string, cause error) *AppError {
	return NewError(ErrorTypeOCR, message, cause)
}

// NewDecodeError creates an error for a file a collaborator could not open or parse
func NewDecodeError(message string, cause error) *AppError {
	return NewError(ErrorTypeDecode, message, cause)
}

// NewWriteError creates an error for a failed serialization or file write
func NewWriteError(message string, cause error) *AppError {
	return NewError(ErrorTypeWrite, message, cause)
}

// NewUnsupportedError creates an unsupported file type error
func NewUnsupportedError(message string, cause error) *AppError {
	return NewError(ErrorTypeUnsupported, message, cause)
}

// WrapError wraps an existing error with additional context.
// An empty errorType keeps the type of an existing AppError or classifies the cause.
func WrapError(err error, errorType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) && errorType == "" {
		return &AppError{
			Type:    appErr.Type,
			Message: message + ": " + appErr.Message,
			Cause:   appErr.Cause,
			Context: appErr.Context,
		}
	}

	if errorType == "" {
		errorType = classifyError(err)
	}

	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// classifyError classifies a foreign error based on its content
func classifyError(err error) ErrorType {
	if err == nil {
		return ErrorTypeSystem
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case errors.Is(err, fs.ErrPermission) || strings.Contains(errStr, "permission denied"):
		return ErrorTypePermission
	case errors.Is(err, fs.ErrNotExist) || strings.Contains(errStr, "no such file"):
		return ErrorTypeNotFound
	case strings.Contains(errStr, "tesseract") || strings.Contains(errStr, "ocr"):
		return ErrorTypeOCR
	case strings.Contains(errStr, "invalid") || strings.Contains(errStr, "malformed"):
		return ErrorTypeDecode
	default:
		return ErrorTypeSystem
	}
}

// GetErrorType extracts the error type from an error
func GetErrorType(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return classifyError(err)
}

// IsDecodeFailure reports whether err is a decode failure raised by an extractor
func IsDecodeFailure(err error) bool {
	return GetErrorType(err) == ErrorTypeDecode
}

// IsWriteFailure reports whether err came from persisting output
func IsWriteFailure(err error) bool {
	return GetErrorType(err) == ErrorTypeWrite
}

// Detail returns the innermost human-readable reason carried by err.
func Detail(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Cause != nil {
			return Detail(appErr.Cause)
		}
		return appErr.Message
	}
	return err.Error()
}
