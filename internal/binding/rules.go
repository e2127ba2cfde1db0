package binding

import (
	"context"

	"github.com/johnwards/propgrid/internal/domain"
	"github.com/johnwards/propgrid/internal/dynprop"
)

// rule enables or disables dependent specs from the value of a driver
// property. Drivers are the specs whose catalog entry triggers refresh.
type rule struct {
	driver string
	apply  func(v any, props *dynprop.Collection)
}

var rules = map[string][]rule{
	domain.KindCamera: {{
		driver: "projection",
		apply: func(v any, props *dynprop.Collection) {
			ortho := v == "orthographic"
			setEnabled(props, "fieldOfView", !ortho)
			setEnabled(props, "orthoSize", ortho)
		},
	}},
	domain.KindLight: {{
		driver: "type",
		apply: func(v any, props *dynprop.Collection) {
			setEnabled(props, "spotAngle", v == "spot")
		},
	}},
}

// setEnabled swaps in a copy of the named spec with Enabled set, leaving
// the original instance untouched.
func setEnabled(props *dynprop.Collection, name string, enabled bool) {
	i := props.IndexOfName(name)
	if i < 0 {
		return
	}
	c := props.At(i).Clone()
	c.Enabled = enabled
	_ = props.Set(i, c)
}

func (bd *Binding) applyRules(ctx context.Context) error {
	for _, r := range rules[bd.Node.Kind] {
		d := bd.dp.Find(r.driver)
		if d == nil {
			continue
		}
		v, err := d.GetValue(bd.Target(ctx))
		if err != nil {
			return err
		}
		r.apply(v, bd.dp.Properties())
	}
	return nil
}
