package api

import "net/http"

// Error categories returned by the storefront API.
const (
	CategoryValidationError = "VALIDATION_ERROR"
	CategoryListingNotFound = "LISTING_NOT_FOUND"
	CategoryUpstreamError   = "UPSTREAM_ERROR"
	CategoryInternalError   = "INTERNAL_ERROR"
)

// Error is the JSON error envelope of every failed request.
type Error struct {
	Status        string        `json:"status"`
	Message       string        `json:"message"`
	CorrelationID string        `json:"correlationId"`
	Category      string        `json:"category"`
	Errors        []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail represents a single error within an Error.
type ErrorDetail struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	In      string `json:"in,omitempty"`
}

func newError(category, message, correlationID string) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      category,
	}
}

// NewNotFoundError creates a 404 error with the LISTING_NOT_FOUND category.
func NewNotFoundError(message, correlationID string) *Error {
	return newError(CategoryListingNotFound, message, correlationID)
}

// NewValidationError creates a 400 error with the VALIDATION_ERROR category.
func NewValidationError(message, correlationID string, details []ErrorDetail) *Error {
	e := newError(CategoryValidationError, message, correlationID)
	e.Errors = details
	return e
}

// NewUpstreamError creates a 502 error for a failed backend search.
func NewUpstreamError(message, correlationID string) *Error {
	return newError(CategoryUpstreamError, message, correlationID)
}

// NewInternalError creates a 500 error.
func NewInternalError(message, correlationID string) *Error {
	return newError(CategoryInternalError, message, correlationID)
}

// WriteError writes an Error as a JSON response with the given HTTP status code.
func WriteError(w http.ResponseWriter, statusCode int, apiErr *Error) {
	WriteJSON(w, statusCode, apiErr)
}
