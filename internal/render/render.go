// Package render draws a property grid as styled terminal text.
package render

import (
	"fmt"
	"reflect"
	"strings"

	"cogentcore.org/core/base/reflectx"
	"github.com/charmbracelet/lipgloss"

	"github.com/johnwards/propgrid/internal/domain"
	"github.com/johnwards/propgrid/internal/dynprop"
)

// Uncategorized is the heading of properties without a category.
const Uncategorized = "Misc"

// Row markers.
const (
	markDefault = "*"
	markRefresh = "~"
)

type styles struct {
	r        *lipgloss.Renderer
	category lipgloss.Style
	name     lipgloss.Style
	readOnly lipgloss.Style
	marker   lipgloss.Style
	field    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		r:        r,
		category: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa")),
		name:     r.NewStyle(),
		readOnly: r.NewStyle().Faint(true),
		marker:   r.NewStyle().Foreground(lipgloss.Color("#f9e2af")),
		field:    r.NewStyle().Italic(true),
	}
}

// Options controls rendering.
type Options struct {
	// ShowHidden includes properties that are not browsable.
	ShowHidden bool

	// Renderer decides the color profile. Nil uses lipgloss's default,
	// which inspects stdout.
	Renderer *lipgloss.Renderer
}

type group struct {
	name  string
	descs []*dynprop.Descriptor
}

// groups buckets descriptors by category in order of first appearance,
// keeping display order within each bucket.
func groups(descs []*dynprop.Descriptor) []*group {
	var out []*group
	index := map[string]*group{}
	for _, d := range descs {
		name := d.Category()
		if !d.Attributes().HasCategory() {
			name = Uncategorized
		}
		g, ok := index[name]
		if !ok {
			g = &group{name: name}
			index[name] = g
			out = append(out, g)
		}
		g.descs = append(g.descs, d)
	}
	return out
}

// Render draws every descriptor of p with its value on target.
func Render(p dynprop.DescriptorProvider, target any, opts Options) (string, error) {
	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	st := newStyles(r)

	var descs []*dynprop.Descriptor
	width := 0
	for _, d := range p.Descriptors() {
		if !d.IsBrowsable() && !opts.ShowHidden {
			continue
		}
		descs = append(descs, d)
		width = max(width, lipgloss.Width(d.DisplayName()))
	}

	var defaultSpec *dynprop.PropertySpec
	if dd := p.DefaultDescriptor(); dd != nil {
		defaultSpec = dd.Spec()
	}

	var b strings.Builder
	for i, g := range groups(descs) {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(st.category.Render(g.name))
		b.WriteString("\n")

		for _, d := range g.descs {
			v, err := d.GetValue(target)
			if err != nil {
				return "", fmt.Errorf("render %q: %w", d.Name(), err)
			}
			b.WriteString(row(st, d, v, width, defaultSpec != nil && d.Spec() == defaultSpec))
			if d.IsExpandable() {
				for _, line := range fields(v) {
					b.WriteString(st.field.Render("    " + line))
					b.WriteString("\n")
				}
			}
		}
	}
	return b.String(), nil
}

func row(st styles, d *dynprop.Descriptor, v any, width int, isDefault bool) string {
	mark := " "
	switch {
	case isDefault:
		mark = markDefault
	case d.RefreshProperties():
		mark = markRefresh
	}

	name := st.r.NewStyle().Width(width).Render(d.DisplayName())
	value := Value(v)
	line := fmt.Sprintf("%s %s  %s", st.marker.Render(mark), name, value)
	if d.IsReadOnly() {
		line = st.readOnly.Render(line + " (read-only)")
	} else {
		line = st.name.Render(line)
	}
	if c, ok := v.(domain.Color); ok {
		line += " " + st.r.NewStyle().Background(lipgloss.Color(string(c))).Render("  ")
	}
	return line + "\n"
}

// Value formats a property value for display.
func Value(v any) string {
	switch v := v.(type) {
	case nil:
		return "(none)"
	case string:
		return fmt.Sprintf("%q", v)
	case domain.Color:
		return string(v)
	case []string:
		return "[" + strings.Join(v, ", ") + "]"
	}
	return fmt.Sprint(v)
}

// fields lists the exported fields of a struct value as "name: value".
func fields(v any) []string {
	if v == nil {
		return nil
	}
	rv := reflectx.NonPointerValue(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return nil
	}
	var out []string
	for i := range rv.NumField() {
		f := rv.Type().Field(i)
		if !f.IsExported() {
			continue
		}
		out = append(out, fmt.Sprintf("%s: %v", f.Name, rv.Field(i).Interface()))
	}
	return out
}
