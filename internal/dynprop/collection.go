package dynprop

import (
	"fmt"
	"iter"
	"slices"
)

// Collection is an ordered sequence of property specs with lookup by name.
// Order is insertion order; only Insert places a spec elsewhere. Names are
// not required to be unique and every name lookup resolves to the first
// match.
//
// The zero value is an empty collection ready to use.
type Collection struct {
	specs []*PropertySpec
}

// NewCollection returns a collection holding specs in the given order.
func NewCollection(specs ...*PropertySpec) *Collection {
	c := &Collection{}
	c.AddRange(specs...)
	return c
}

// Len returns the number of specs.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.specs)
}

// Add appends spec and returns its index.
func (c *Collection) Add(spec *PropertySpec) int {
	c.specs = append(c.specs, spec)
	return len(c.specs) - 1
}

// AddRange appends specs in order.
func (c *Collection) AddRange(specs ...*PropertySpec) {
	c.specs = append(c.specs, specs...)
}

// Insert places spec at index, shifting later specs back by one. An index
// equal to Len appends.
func (c *Collection) Insert(index int, spec *PropertySpec) error {
	if index < 0 || index > len(c.specs) {
		return fmt.Errorf("insert at %d of %d: %w", index, len(c.specs), ErrIndexOutOfRange)
	}
	c.specs = slices.Insert(c.specs, index, spec)
	return nil
}

// Remove deletes spec, compared by identity. It does nothing when spec is not
// in the collection.
func (c *Collection) Remove(spec *PropertySpec) {
	if i := c.IndexOf(spec); i >= 0 {
		c.specs = slices.Delete(c.specs, i, i+1)
	}
}

// RemoveName deletes the first spec named name. It does nothing when no spec
// has that name.
func (c *Collection) RemoveName(name string) {
	if i := c.IndexOfName(name); i >= 0 {
		c.specs = slices.Delete(c.specs, i, i+1)
	}
}

// Clear removes all specs.
func (c *Collection) Clear() {
	c.specs = nil
}

// IndexOf returns the index of spec, or -1.
func (c *Collection) IndexOf(spec *PropertySpec) int {
	if c == nil {
		return -1
	}
	return slices.Index(c.specs, spec)
}

// IndexOfName returns the index of the first spec named name, or -1.
func (c *Collection) IndexOfName(name string) int {
	if c == nil {
		return -1
	}
	return slices.IndexFunc(c.specs, func(s *PropertySpec) bool {
		return s != nil && s.Name == name
	})
}

// Contains reports whether spec is in the collection.
func (c *Collection) Contains(spec *PropertySpec) bool {
	return c.IndexOf(spec) >= 0
}

// ContainsName reports whether any spec is named name.
func (c *Collection) ContainsName(name string) bool {
	return c.IndexOfName(name) >= 0
}

// Lookup returns the first spec named name.
func (c *Collection) Lookup(name string) (*PropertySpec, bool) {
	i := c.IndexOfName(name)
	if i < 0 {
		return nil, false
	}
	return c.specs[i], true
}

// At returns the spec at index, or nil when index is out of range.
func (c *Collection) At(index int) *PropertySpec {
	if index < 0 || index >= c.Len() {
		return nil
	}
	return c.specs[index]
}

// Set replaces the spec at index.
func (c *Collection) Set(index int, spec *PropertySpec) error {
	if index < 0 || index >= len(c.specs) {
		return fmt.Errorf("set at %d of %d: %w", index, len(c.specs), ErrIndexOutOfRange)
	}
	c.specs[index] = spec
	return nil
}

// Slice returns a copy of the specs in order.
func (c *Collection) Slice() []*PropertySpec {
	if c == nil {
		return nil
	}
	return slices.Clone(c.specs)
}

// All iterates over index/spec pairs in order.
func (c *Collection) All() iter.Seq2[int, *PropertySpec] {
	return func(yield func(int, *PropertySpec) bool) {
		if c == nil {
			return
		}
		for i, s := range c.specs {
			if !yield(i, s) {
				return
			}
		}
	}
}
