package utils

import (
	"errors"
	"net/http"
)

// APIError is a business error that maps directly to an HTTP status.
// Anything that is not an APIError is treated as an infrastructure
// failure and surfaced as a 500.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

// NewNotFound reports a resource that does not exist or does not
// resolve within the requested owner/space scope.
func NewNotFound(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: message}
}

// NewValidation reports a field-level validation failure.
func NewValidation(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: "VALIDATION", Message: message}
}

// NewConflict reports a business-rule violation, e.g. deleting the
// active version or the last canvas in a space.
func NewConflict(message string) *APIError {
	return &APIError{Status: http.StatusConflict, Code: "CONFLICT", Message: message}
}

// AsAPIError unwraps err into an APIError if it carries one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
