package dynprop

import (
	"reflect"

	"cogentcore.org/core/base/labels"
	"cogentcore.org/core/base/strcase"
)

// Attributes are the display and editing attributes a host reads from a
// descriptor. They are derived from the spec when the descriptor is
// synthesized and do not follow later changes to the spec.
type Attributes struct {
	Category          string // Empty when the property is ungrouped
	ReadOnly          bool
	Browsable         bool
	RefreshProperties bool // Re-enumerate the whole set after a write
	Order             int  // Display position, overriding alphabetic order
	Expandable        bool
}

// HasCategory reports whether the category attribute is present.
func (a Attributes) HasCategory() bool {
	return a.Category != ""
}

func deriveAttributes(spec *PropertySpec, order int) Attributes {
	return Attributes{
		Category:          spec.Category,
		ReadOnly:          spec.ReadOnly,
		Browsable:         spec.Enabled && spec.Browsable,
		RefreshProperties: spec.TriggersRefresh,
		Order:             order,
		Expandable:        spec.Expandable,
	}
}

// Descriptor presents one spec to a host as a virtual property. It owns no
// storage: reads and writes are dispatched to the owning DynamicProperty's
// listeners.
type Descriptor struct {
	spec  *PropertySpec
	attrs Attributes
	owner *DynamicProperty
}

func newDescriptor(owner *DynamicProperty, spec *PropertySpec, order int) *Descriptor {
	return &Descriptor{
		spec:  spec,
		attrs: deriveAttributes(spec, order),
		owner: owner,
	}
}

// Spec returns the described spec.
func (d *Descriptor) Spec() *PropertySpec { return d.spec }

// Attributes returns the attributes derived at synthesis.
func (d *Descriptor) Attributes() Attributes { return d.attrs }

// Name returns the property name.
func (d *Descriptor) Name() string { return d.spec.Name }

// DisplayName returns the name in sentence case, e.g. "Field of view".
func (d *Descriptor) DisplayName() string { return strcase.ToSentence(d.spec.Name) }

// Description returns the spec's help text.
func (d *Descriptor) Description() string { return d.spec.Description }

// Category returns the category attribute, empty when absent.
func (d *Descriptor) Category() string { return d.attrs.Category }

// IsReadOnly reports whether the host must not edit the value.
func (d *Descriptor) IsReadOnly() bool { return d.attrs.ReadOnly }

// IsBrowsable reports whether the host should show the property.
func (d *Descriptor) IsBrowsable() bool { return d.attrs.Browsable }

// RefreshProperties reports whether writing the value should make the host
// re-enumerate all descriptors.
func (d *Descriptor) RefreshProperties() bool { return d.attrs.RefreshProperties }

// Order returns the display position.
func (d *Descriptor) Order() int { return d.attrs.Order }

// IsExpandable reports whether the value should be shown as a nested object.
func (d *Descriptor) IsExpandable() bool { return d.attrs.Expandable }

// PropertyType resolves the spec's type. An unknown type name yields a
// *TypeError, since a host cannot safely edit a value it cannot type.
func (d *Descriptor) PropertyType() (reflect.Type, error) {
	if d.spec.Type != nil {
		return d.spec.Type, nil
	}
	typ, err := d.owner.types.Resolve(d.spec.TypeName)
	if err != nil {
		return nil, &TypeError{Property: d.spec.Name, TypeName: d.spec.TypeName, Cause: err}
	}
	return typ, nil
}

// TypeLabel returns a user-facing label for the property type. It falls back
// to the raw type name when the type does not resolve.
func (d *Descriptor) TypeLabel() string {
	typ, err := d.PropertyType()
	if err != nil {
		return d.spec.TypeName
	}
	return labels.FriendlyTypeName(typ)
}

// GetValue asks the get listeners for the current value of the property on
// target. Without listeners it returns nil.
func (d *Descriptor) GetValue(target any) (any, error) {
	return d.owner.getValue(target, d.spec)
}

// SetValue hands value to the set listeners. Without listeners the write is
// dropped.
func (d *Descriptor) SetValue(target any, value any) error {
	return d.owner.setValue(target, d.spec, value)
}

// CanResetValue reports whether the current value differs from the default.
// It is false when the spec has no default.
func (d *Descriptor) CanResetValue(target any) (bool, error) {
	if !d.spec.HasDefault() {
		return false, nil
	}
	v, err := d.GetValue(target)
	if err != nil {
		return false, err
	}
	return !valuesEqual(v, d.spec.DefaultValue), nil
}

// ResetValue writes the default value.
func (d *Descriptor) ResetValue(target any) error {
	return d.SetValue(target, d.spec.DefaultValue)
}

// ShouldSerializeValue reports whether the current value needs persisting,
// which is whenever it differs from the default. A nil value with no default
// counts as equal.
func (d *Descriptor) ShouldSerializeValue(target any) (bool, error) {
	v, err := d.GetValue(target)
	if err != nil {
		return false, err
	}
	if !d.spec.HasDefault() && v == nil {
		return false, nil
	}
	return !valuesEqual(v, d.spec.DefaultValue), nil
}

// valuesEqual compares by value. Nil only equals nil.
func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.DeepEqual(a, b)
}
