package api

import "net/http"

// Error categories carried in the error envelope.
const (
	CategoryValidationError = "VALIDATION_ERROR"
	CategoryObjectNotFound  = "OBJECT_NOT_FOUND"
	CategoryConflict        = "CONFLICT"
	CategoryTypeError       = "TYPE_ERROR"
	CategoryReadOnly        = "READ_ONLY"
	CategoryInternalError   = "INTERNAL_ERROR"
	CategoryUnauthorized    = "UNAUTHORIZED"
)

// Error is the JSON body of every failed request.
type Error struct {
	Status        string        `json:"status"`
	Message       string        `json:"message"`
	CorrelationID string        `json:"correlationId"`
	Category      string        `json:"category"`
	SubCategory   string        `json:"subCategory,omitempty"`
	Errors        []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail is one field-level problem within an Error.
type ErrorDetail struct {
	Message string              `json:"message"`
	Code    string              `json:"code,omitempty"`
	In      string              `json:"in,omitempty"`
	Context map[string][]string `json:"context,omitempty"`
}

func newError(category, message, correlationID string) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      category,
	}
}

// NewNotFoundError creates a 404 error with the OBJECT_NOT_FOUND category.
func NewNotFoundError(message, correlationID string) *Error {
	return newError(CategoryObjectNotFound, message, correlationID)
}

// NewValidationError creates a 400 error with the VALIDATION_ERROR category.
func NewValidationError(message, correlationID string, details []ErrorDetail) *Error {
	e := newError(CategoryValidationError, message, correlationID)
	e.Errors = details
	return e
}

// NewConflictError creates a 409 error with the CONFLICT category.
func NewConflictError(message, correlationID string) *Error {
	return newError(CategoryConflict, message, correlationID)
}

// NewTypeError creates a 400 error for a value that does not fit the
// property's type, or a property whose type does not resolve.
func NewTypeError(message, correlationID string) *Error {
	return newError(CategoryTypeError, message, correlationID)
}

// NewReadOnlyError creates a 400 error for a write to a read-only property.
func NewReadOnlyError(message, correlationID string) *Error {
	return newError(CategoryReadOnly, message, correlationID)
}

// NewInternalError creates a 500 error. The message never carries the
// underlying cause.
func NewInternalError(correlationID string) *Error {
	return newError(CategoryInternalError, "Internal Server Error", correlationID)
}

// WriteError writes an Error as a JSON response with the given HTTP status code.
func WriteError(w http.ResponseWriter, statusCode int, apiErr *Error) {
	WriteJSON(w, statusCode, apiErr)
}
