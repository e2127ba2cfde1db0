package dynprop

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownType is returned when a type name does not resolve.
	ErrUnknownType = errors.New("unknown type")

	// ErrDuplicateType is returned when registering a type name twice.
	ErrDuplicateType = errors.New("type already registered")

	// ErrIndexOutOfRange is returned by positional collection operations.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// TypeError reports a property whose type cannot be resolved.
type TypeError struct {
	Property string // Property name
	TypeName string // Unresolved type identifier
	Cause    error  // Usually ErrUnknownType
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("property %q: type %q: %v", e.Property, e.TypeName, e.Cause)
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *TypeError) Unwrap() error {
	return e.Cause
}
