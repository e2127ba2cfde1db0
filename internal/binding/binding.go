// Package binding produces DynamicProperty instances for scene nodes. Each
// node kind's spec catalog becomes the property collection, and the value
// listeners read and write the node's stored attributes.
package binding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/johnwards/propgrid/internal/domain"
	"github.com/johnwards/propgrid/internal/dynprop"
	"github.com/johnwards/propgrid/internal/store"
)

var (
	// ErrPropertyNotFound is returned for a name that matches no spec.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrReadOnly is returned when writing a read-only property.
	ErrReadOnly = errors.New("property is read-only")
)

// Sources recorded in attribute history.
const (
	SourceAPI   = "API"
	SourceReset = "RESET"
)

// Target is what the binding passes to descriptors as the edited object.
type Target struct {
	ctx    context.Context
	Node   *domain.Node
	Source string
}

// Context returns the request context the value listeners run under.
func (t *Target) Context() context.Context {
	return t.ctx
}

// Binder creates bindings backed by a store.
type Binder struct {
	store  *store.Store
	types  *dynprop.TypeRegistry
	logger *slog.Logger
}

// NewBinder returns a Binder. A nil types uses NewTypeRegistry and a nil
// logger uses slog.Default.
func NewBinder(s *store.Store, types *dynprop.TypeRegistry, logger *slog.Logger) *Binder {
	if types == nil {
		types = NewTypeRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Binder{store: s, types: types, logger: logger}
}

// Binding is one node's dynamic property set. It is used by one request at
// a time.
type Binding struct {
	Node *domain.Node

	dp     *dynprop.DynamicProperty
	store  *store.Store
	logger *slog.Logger
}

// Bind loads the node and builds its property set.
func (b *Binder) Bind(ctx context.Context, nodeID string) (*Binding, error) {
	node, err := b.store.Nodes.Get(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	defaultName, err := b.store.Specs.DefaultProperty(ctx, node.Kind)
	if err != nil {
		return nil, err
	}

	logger := b.logger.With("node", node.ID, "kind", node.Kind)
	bd := &Binding{
		Node: node,
		dp: dynprop.New(nil,
			dynprop.WithTypes(b.types),
			dynprop.WithDefaultProperty(defaultName),
			dynprop.WithLogger(logger),
		),
		store:  b.store,
		logger: logger,
	}
	bd.dp.OnGetValue(bd.getValue)
	bd.dp.OnSetValue(bd.setValue)

	if err := bd.load(ctx); err != nil {
		return nil, err
	}
	return bd, nil
}

// Properties returns the bound property set.
func (bd *Binding) Properties() *dynprop.DynamicProperty {
	return bd.dp
}

// Target returns the object to pass to the binding's descriptors.
func (bd *Binding) Target(ctx context.Context) *Target {
	return &Target{ctx: ctx, Node: bd.Node, Source: SourceAPI}
}

// Refresh rebuilds the property set from the stored catalog and current
// values. Descriptors obtained before the call are stale afterwards.
func (bd *Binding) Refresh(ctx context.Context) error {
	if err := bd.load(ctx); err != nil {
		return err
	}
	bd.logger.Info("property set refreshed", "properties", bd.dp.Properties().Len())
	return nil
}

func (bd *Binding) load(ctx context.Context) error {
	recs, err := bd.store.Specs.List(ctx, bd.Node.Kind)
	if err != nil {
		return err
	}

	props := bd.dp.Properties()
	props.Clear()
	for _, r := range recs {
		props.Add(bd.toSpec(r))
	}
	return bd.applyRules(ctx)
}

func (bd *Binding) toSpec(r domain.SpecRecord) *dynprop.PropertySpec {
	s := dynprop.NewPropertySpec(r.Name, r.TypeName)
	s.Category = r.Category
	s.Description = r.Description
	s.Editor = r.Editor
	s.Expandable = r.Expandable
	s.ReadOnly = r.ReadOnly
	s.Browsable = !r.Hidden
	s.Enabled = !r.Disabled
	s.TriggersRefresh = r.RefreshProperties

	if len(r.DefaultValue) == 0 {
		return s
	}
	typ, err := bd.dp.Types().Resolve(r.TypeName)
	if err != nil {
		bd.logger.Warn("spec type does not resolve, default skipped", "property", r.Name, "type", r.TypeName)
		return s
	}
	v, err := decode(r.DefaultValue, typ)
	if err != nil {
		bd.logger.Warn("spec default does not decode", "property", r.Name, "error", err)
		return s
	}
	s.DefaultValue = v
	return s
}

func (bd *Binding) resolve(spec *dynprop.PropertySpec) reflect.Type {
	if spec.Type != nil {
		return spec.Type
	}
	typ, err := bd.dp.Types().Resolve(spec.TypeName)
	if err != nil {
		return nil
	}
	return typ
}

func targetOf(e *dynprop.ValueEvent) (*Target, error) {
	t, ok := e.Target.(*Target)
	if !ok {
		return nil, fmt.Errorf("unexpected target %T", e.Target)
	}
	return t, nil
}

// getValue answers with the stored value, or the spec default when nothing
// is stored.
func (bd *Binding) getValue(e *dynprop.ValueEvent) error {
	t, err := targetOf(e)
	if err != nil {
		return err
	}
	raw, ok, err := bd.store.Attributes.Get(t.Context(), t.Node.ID, e.Spec.Name)
	if err != nil {
		return err
	}
	if !ok {
		e.Value = e.Spec.DefaultValue
		return nil
	}
	v, err := decode(raw, bd.resolve(e.Spec))
	if err != nil {
		return fmt.Errorf("decode %q: %w", e.Spec.Name, err)
	}
	e.Value = v
	return nil
}

// setValue writes the value converted to the spec type. Nil clears it.
func (bd *Binding) setValue(e *dynprop.ValueEvent) error {
	t, err := targetOf(e)
	if err != nil {
		return err
	}
	ctx := t.Context()

	if e.Value == nil {
		bd.logger.Debug("clearing attribute", "property", e.Spec.Name, "source", t.Source)
		return bd.store.Attributes.Delete(ctx, t.Node.ID, e.Spec.Name, t.Source)
	}

	v, err := coerce(e.Value, bd.resolve(e.Spec))
	if err != nil {
		return &dynprop.TypeError{Property: e.Spec.Name, TypeName: e.Spec.TypeName, Cause: err}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", e.Spec.Name, err)
	}
	bd.logger.Debug("writing attribute", "property", e.Spec.Name, "source", t.Source)
	return bd.store.Attributes.Set(ctx, t.Node.ID, e.Spec.Name, raw, t.Source)
}
