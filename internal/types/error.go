package types

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds surfaced to API callers
const (
	ErrorTypeNotFound   = "not_found"
	ErrorTypeConflict   = "conflict"
	ErrorTypeValidation = "validation_error"
	ErrorTypeStoreFault = "store_fault"
)

// CustomError is an error that carries the HTTP status it maps to
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
	Details string `json:"details,omitempty"`
	cause   error
}

func (e *CustomError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%d: %s (%s) [type: %s]", e.Code, e.Message, e.Details, e.Type)
	}
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

func (e *CustomError) Unwrap() error {
	return e.cause
}

// NewNotFoundError reports a referenced id that does not exist
func NewNotFoundError(format string, args ...any) *CustomError {
	return &CustomError{Code: http.StatusNotFound, Type: ErrorTypeNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewConflictError reports a write blocked by existing state, such as a restricted delete
func NewConflictError(format string, args ...any) *CustomError {
	return &CustomError{Code: http.StatusConflict, Type: ErrorTypeConflict, Message: fmt.Sprintf(format, args...)}
}

// NewDuplicateError is a conflict reported as 400, which is what clients of the
// ticket tag endpoints expect.
func NewDuplicateError(format string, args ...any) *CustomError {
	return &CustomError{Code: http.StatusBadRequest, Type: ErrorTypeConflict, Message: fmt.Sprintf(format, args...)}
}

// NewValidationError reports a missing field or a reference to a row that does not exist
func NewValidationError(format string, args ...any) *CustomError {
	return &CustomError{Code: http.StatusBadRequest, Type: ErrorTypeValidation, Message: fmt.Sprintf(format, args...)}
}

// NewStoreFault wraps an unclassified persistence failure
func NewStoreFault(op string, err error) *CustomError {
	return &CustomError{
		Code:    http.StatusInternalServerError,
		Type:    ErrorTypeStoreFault,
		Message: op + " failed",
		Details: err.Error(),
		cause:   err,
	}
}

// AsCustomError extracts a CustomError from an error chain
func AsCustomError(err error) (*CustomError, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsType reports whether err is a CustomError of the given kind
func IsType(err error, errorType string) bool {
	ce, ok := AsCustomError(err)
	return ok && ce.Type == errorType
}
