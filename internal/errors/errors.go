package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// GetCode returns the error code if it's an AppError, otherwise the generic
// internal-error code
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeInternalError
}

// Predefined error codes
const (
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeDataValidity  = "DATA_VALIDITY_ERROR"
	CodeReadError     = "READ_ERROR"
	CodeWriteError    = "WRITE_ERROR"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeInternalError = "INTERNAL_ERROR"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func DataValidity(message string, cause error) *AppError {
	return &AppError{Code: CodeDataValidity, Message: message, Cause: cause}
}

func ReadError(message string, cause error) *AppError {
	return &AppError{Code: CodeReadError, Message: message, Cause: cause}
}

func WriteError(message string, cause error) *AppError {
	return &AppError{Code: CodeWriteError, Message: message, Cause: cause}
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}
