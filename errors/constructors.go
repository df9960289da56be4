package errors

import "fmt"

// New creates a new PlatformError with the given code and message.
// The classification is determined by the code.
//
// Example:
//
//	err := errors.New(errors.CodeInvalidInput, "mode string is empty")
func New(code ErrorCode, message string) PlatformError {
	return &platformError{
		code:           code,
		classification: getDefaultClassification(code),
		message:        message,
	}
}

// Newf creates a new PlatformError with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) PlatformError {
	return New(code, fmt.Sprintf(format, args...))
}
