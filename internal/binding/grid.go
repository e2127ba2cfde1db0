package binding

import (
	"context"
	"fmt"

	"github.com/johnwards/propgrid/internal/domain"
	"github.com/johnwards/propgrid/internal/dynprop"
)

// GridOptions controls enumeration.
type GridOptions struct {
	All   bool   // include hidden properties
	Query string // fuzzy name filter
}

// View reads d's value and renders it as a DescriptorView.
func (bd *Binding) View(ctx context.Context, d *dynprop.Descriptor) (domain.DescriptorView, error) {
	t := bd.Target(ctx)
	v := domain.DescriptorView{
		Name:              d.Name(),
		DisplayName:       d.DisplayName(),
		Category:          d.Category(),
		Description:       d.Description(),
		Editor:            d.Spec().Editor,
		Type:              d.Spec().TypeName,
		TypeLabel:         d.TypeLabel(),
		ReadOnly:          d.IsReadOnly(),
		Browsable:         d.IsBrowsable(),
		RefreshProperties: d.RefreshProperties(),
		Expandable:        d.IsExpandable(),
		DisplayOrder:      d.Order(),
		DefaultValue:      d.Spec().DefaultValue,
	}

	var err error
	if v.Value, err = d.GetValue(t); err != nil {
		return v, err
	}
	if v.CanReset, err = d.CanResetValue(t); err != nil {
		return v, err
	}
	if v.ShouldSerialize, err = d.ShouldSerializeValue(t); err != nil {
		return v, err
	}
	return v, nil
}

// Grid enumerates the property set with values. Hidden properties are left
// out unless opts.All is set.
func (bd *Binding) Grid(ctx context.Context, opts GridOptions) (*domain.Grid, error) {
	descs := bd.dp.Descriptors()
	if !opts.All {
		visible := descs[:0:0]
		for _, d := range descs {
			if d.IsBrowsable() {
				visible = append(visible, d)
			}
		}
		descs = visible
	}
	descs = dynprop.Filter(descs, opts.Query)

	g := &domain.Grid{
		NodeID:          bd.Node.ID,
		Kind:            bd.Node.Kind,
		DefaultProperty: bd.dp.DefaultPropertyName,
		Results:         make([]domain.DescriptorView, 0, len(descs)),
	}
	for _, d := range descs {
		v, err := bd.View(ctx, d)
		if err != nil {
			return nil, err
		}
		g.Results = append(g.Results, v)
	}
	return g, nil
}

// Property returns the view of the first property named name.
func (bd *Binding) Property(ctx context.Context, name string) (domain.DescriptorView, error) {
	d, err := bd.find(name)
	if err != nil {
		return domain.DescriptorView{}, err
	}
	return bd.View(ctx, d)
}

// Default returns the view of the default property.
func (bd *Binding) Default(ctx context.Context) (domain.DescriptorView, error) {
	d := bd.dp.DefaultDescriptor()
	if d == nil {
		return domain.DescriptorView{}, fmt.Errorf("default property: %w", ErrPropertyNotFound)
	}
	return bd.View(ctx, d)
}

func (bd *Binding) find(name string) (*dynprop.Descriptor, error) {
	d := bd.dp.Find(name)
	if d == nil {
		return nil, fmt.Errorf("%q: %w", name, ErrPropertyNotFound)
	}
	return d, nil
}

// Set writes value to the named property. When the property triggers
// refresh the set is rebuilt and the result carries the new grid.
func (bd *Binding) Set(ctx context.Context, name string, value any) (*domain.SetResult, error) {
	d, err := bd.find(name)
	if err != nil {
		return nil, err
	}
	if d.IsReadOnly() {
		return nil, fmt.Errorf("%q: %w", name, ErrReadOnly)
	}
	if _, err := d.PropertyType(); err != nil {
		return nil, err
	}
	if err := d.SetValue(bd.Target(ctx), value); err != nil {
		return nil, err
	}
	return bd.afterWrite(ctx, d)
}

// Reset writes the property's default. A property without a default is
// cleared.
func (bd *Binding) Reset(ctx context.Context, name string) (*domain.SetResult, error) {
	d, err := bd.find(name)
	if err != nil {
		return nil, err
	}
	if d.IsReadOnly() {
		return nil, fmt.Errorf("%q: %w", name, ErrReadOnly)
	}
	t := bd.Target(ctx)
	t.Source = SourceReset
	if err := d.ResetValue(t); err != nil {
		return nil, err
	}
	return bd.afterWrite(ctx, d)
}

func (bd *Binding) afterWrite(ctx context.Context, d *dynprop.Descriptor) (*domain.SetResult, error) {
	res := &domain.SetResult{Refresh: d.RefreshProperties()}
	if res.Refresh {
		if err := bd.Refresh(ctx); err != nil {
			return nil, err
		}
		g, err := bd.Grid(ctx, GridOptions{})
		if err != nil {
			return nil, err
		}
		res.Grid = g
		if d, err = bd.find(d.Name()); err != nil {
			return nil, err
		}
	}

	v, err := bd.View(ctx, d)
	if err != nil {
		return nil, err
	}
	res.Property = v
	return res, nil
}

// History returns recent writes to the named property, newest first.
func (bd *Binding) History(ctx context.Context, name string, limit int) ([]domain.AttributeChange, error) {
	if _, err := bd.find(name); err != nil {
		return nil, err
	}
	return bd.store.Attributes.History(ctx, bd.Node.ID, name, limit)
}
