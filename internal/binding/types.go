package binding

import (
	"github.com/johnwards/propgrid/internal/domain"
	"github.com/johnwards/propgrid/internal/dynprop"
)

// NewTypeRegistry returns a registry holding the builtin types plus the
// scene value types Color and Vector3.
func NewTypeRegistry() *dynprop.TypeRegistry {
	r := dynprop.NewTypeRegistry()
	dynprop.RegisterType[domain.Color](r, "Color")
	dynprop.RegisterType[domain.Vector3](r, "Vector3")
	return r
}
