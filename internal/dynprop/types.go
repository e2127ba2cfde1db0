package dynprop

import (
	"fmt"
	"reflect"
	"slices"
	"time"

	"cogentcore.org/core/base/keylist"
)

// TypeRegistry resolves serialized type names to Go types. Names are unique
// and kept in registration order.
type TypeRegistry struct {
	types keylist.List[string, reflect.Type]
}

// Default is the registry used by a DynamicProperty created without
// WithTypes.
var Default = NewTypeRegistry()

// NewTypeRegistry returns a registry holding the builtin value types.
func NewTypeRegistry() *TypeRegistry {
	r := &TypeRegistry{}
	RegisterType[string](r, "string")
	RegisterType[bool](r, "bool")
	RegisterType[int](r, "int")
	RegisterType[int32](r, "int32")
	RegisterType[int64](r, "int64")
	RegisterType[uint](r, "uint")
	RegisterType[float32](r, "float32")
	RegisterType[float64](r, "float64")
	RegisterType[[]string](r, "[]string")
	RegisterType[time.Time](r, "time.Time")
	RegisterType[time.Duration](r, "time.Duration")
	RegisterType[any](r, "any")
	return r
}

// Register adds typ under name.
func (r *TypeRegistry) Register(name string, typ reflect.Type) error {
	if name == "" || typ == nil {
		return fmt.Errorf("register type %q: name and type are required", name)
	}
	if _, ok := r.types.AtTry(name); ok {
		return fmt.Errorf("register type %q: %w", name, ErrDuplicateType)
	}
	return r.types.Add(name, typ)
}

// MustRegister is like Register but panics on error.
func (r *TypeRegistry) MustRegister(name string, typ reflect.Type) {
	if err := r.Register(name, typ); err != nil {
		panic(err)
	}
}

// RegisterType registers T under name, panicking on a duplicate name.
func RegisterType[T any](r *TypeRegistry, name string) {
	r.MustRegister(name, reflect.TypeFor[T]())
}

// Resolve returns the type registered under name.
func (r *TypeRegistry) Resolve(name string) (reflect.Type, error) {
	if typ, ok := r.types.AtTry(name); ok {
		return typ, nil
	}
	return nil, fmt.Errorf("resolve %q: %w", name, ErrUnknownType)
}

// Names returns the registered names in registration order.
func (r *TypeRegistry) Names() []string {
	return slices.Clone(r.types.Keys)
}
