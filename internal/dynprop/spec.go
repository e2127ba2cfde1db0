package dynprop

import "reflect"

// PropertySpec describes one dynamic property. It carries metadata only; the
// property's value lives wherever the value listeners put it.
type PropertySpec struct {
	// Name identifies the property. Collections do not enforce uniqueness;
	// name lookups resolve to the first match.
	Name string

	// TypeName is the serialized type identifier, resolved through a
	// TypeRegistry when Type is nil.
	TypeName string

	// Type is an optional structural type reference. It takes precedence
	// over TypeName.
	Type reflect.Type

	// Category groups the property in the host. Empty means ungrouped.
	Category string

	// Description is help text shown next to the property.
	Description string

	// Editor is an optional hint naming the editor the host should use.
	Editor string

	// Expandable renders the value as a nested, drillable object.
	Expandable bool

	// ReadOnly disallows edits.
	ReadOnly bool

	// Browsable shows the property, unless Enabled is false.
	Browsable bool

	// Enabled is the master visibility switch. A disabled property is
	// hidden regardless of Browsable.
	Enabled bool

	// TriggersRefresh marks a property whose changes make the rest of the
	// set stale, so the host should re-enumerate after writing it.
	TriggersRefresh bool

	// DefaultValue is the baseline for reset and serialize decisions.
	// Nil means the property has no default.
	DefaultValue any
}

// NewPropertySpec returns a browsable, enabled spec with the given name and
// serialized type name.
func NewPropertySpec(name, typeName string) *PropertySpec {
	return &PropertySpec{
		Name:      name,
		TypeName:  typeName,
		Browsable: true,
		Enabled:   true,
	}
}

// NewTypedPropertySpec returns a browsable, enabled spec whose type is given
// structurally. TypeName is set to the type's string form for display.
func NewTypedPropertySpec(name string, typ reflect.Type) *PropertySpec {
	s := NewPropertySpec(name, "")
	s.Type = typ
	if typ != nil {
		s.TypeName = typ.String()
	}
	return s
}

// HasDefault reports whether the spec carries a default value.
func (s *PropertySpec) HasDefault() bool {
	return s.DefaultValue != nil
}

// Visible reports whether a host should show the property.
func (s *PropertySpec) Visible() bool {
	return s.Enabled && s.Browsable
}

// Clone returns a shallow copy of the spec. The default value is shared.
func (s *PropertySpec) Clone() *PropertySpec {
	c := *s
	return &c
}
