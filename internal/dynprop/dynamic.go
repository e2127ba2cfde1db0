package dynprop

import (
	"errors"
	"log/slog"
)

// ValueEvent carries one value request from a descriptor to the listeners.
// Get listeners fill Value; set listeners read it.
type ValueEvent struct {
	Target any           // Object the host is editing, as passed to the descriptor
	Spec   *PropertySpec // Sole identity of the property being read or written
	Value  any
}

// GetValueFunc answers a get request by storing the current value in e.Value.
type GetValueFunc func(e *ValueEvent) error

// SetValueFunc applies e.Value to the underlying object.
type SetValueFunc func(e *ValueEvent) error

// DescriptorProvider is the capability a property-editing host consumes.
type DescriptorProvider interface {
	Descriptors() []*Descriptor
	DefaultDescriptor() *Descriptor
}

// DynamicProperty owns a Collection and synthesizes descriptors for it. It
// holds no property values.
//
// Several listeners may be registered on each channel. Get listeners run in
// registration order over the same event and the last value written wins; the
// first get error stops dispatch. Set listeners all run in registration order
// and their errors are joined.
type DynamicProperty struct {
	// DefaultPropertyName names the property a host focuses first.
	DefaultPropertyName string

	props   *Collection
	types   *TypeRegistry
	logger  *slog.Logger
	getters []GetValueFunc
	setters []SetValueFunc
}

var _ DescriptorProvider = (*DynamicProperty)(nil)

// Option configures a DynamicProperty.
type Option func(*DynamicProperty)

// WithTypes sets the registry used to resolve spec type names.
func WithTypes(r *TypeRegistry) Option {
	return func(dp *DynamicProperty) { dp.types = r }
}

// WithDefaultProperty sets DefaultPropertyName.
func WithDefaultProperty(name string) Option {
	return func(dp *DynamicProperty) { dp.DefaultPropertyName = name }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(dp *DynamicProperty) { dp.logger = l }
}

// New returns a DynamicProperty over props. A nil props gets an empty
// collection.
func New(props *Collection, opts ...Option) *DynamicProperty {
	if props == nil {
		props = &Collection{}
	}
	dp := &DynamicProperty{
		props:  props,
		types:  Default,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(dp)
	}
	return dp
}

// Properties returns the owned collection. Producers may mutate it; hosts
// should only enumerate descriptors.
func (dp *DynamicProperty) Properties() *Collection {
	return dp.props
}

// Types returns the registry used to resolve spec type names.
func (dp *DynamicProperty) Types() *TypeRegistry {
	return dp.types
}

// SetDefaultPropertyName sets the property a host focuses first.
func (dp *DynamicProperty) SetDefaultPropertyName(name string) {
	dp.DefaultPropertyName = name
}

// OnGetValue registers a get listener.
func (dp *DynamicProperty) OnGetValue(fn GetValueFunc) {
	dp.getters = append(dp.getters, fn)
}

// OnSetValue registers a set listener.
func (dp *DynamicProperty) OnSetValue(fn SetValueFunc) {
	dp.setters = append(dp.setters, fn)
}

// Descriptors returns one descriptor per spec, in collection order.
func (dp *DynamicProperty) Descriptors() []*Descriptor {
	descs := make([]*Descriptor, 0, dp.props.Len())
	for i, spec := range dp.props.All() {
		descs = append(descs, newDescriptor(dp, spec, i))
	}
	return descs
}

// DefaultDescriptor returns the descriptor named by DefaultPropertyName, or
// nil when the name is unset or matches no spec.
func (dp *DynamicProperty) DefaultDescriptor() *Descriptor {
	if dp.DefaultPropertyName == "" {
		return nil
	}
	return dp.Find(dp.DefaultPropertyName)
}

// Find returns the descriptor of the first spec named name, or nil.
func (dp *DynamicProperty) Find(name string) *Descriptor {
	i := dp.props.IndexOfName(name)
	if i < 0 {
		dp.logger.Debug("property not found", "name", name)
		return nil
	}
	return newDescriptor(dp, dp.props.At(i), i)
}

func (dp *DynamicProperty) getValue(target any, spec *PropertySpec) (any, error) {
	if len(dp.getters) == 0 {
		dp.logger.Debug("no get listener", "property", spec.Name)
		return nil, nil
	}
	e := &ValueEvent{Target: target, Spec: spec}
	for _, fn := range dp.getters {
		if err := fn(e); err != nil {
			return nil, err
		}
	}
	return e.Value, nil
}

func (dp *DynamicProperty) setValue(target any, spec *PropertySpec, value any) error {
	if len(dp.setters) == 0 {
		dp.logger.Debug("no set listener, value dropped", "property", spec.Name)
		return nil
	}
	var errs []error
	for _, fn := range dp.setters {
		e := &ValueEvent{Target: target, Spec: spec, Value: value}
		if err := fn(e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
