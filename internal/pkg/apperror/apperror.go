package apperror

import "net/http"

// AppError is a custom error type that includes an HTTP status code and an optional wrapped error.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// BadRequest creates a 400 error for malformed input.
func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message)
}

// NotFound creates a 404 error for missing or unowned records.
func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message)
}

// Conflict creates a 409 error for violated admission or uniqueness rules.
func Conflict(message string) *AppError {
	return New(http.StatusConflict, message)
}

// Forbidden creates a 403 error for ownership violations.
func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message)
}
