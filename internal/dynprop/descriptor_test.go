package dynprop_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnwards/propgrid/internal/dynprop"
)

// mapProducer answers value requests from a map keyed by property name.
type mapProducer struct {
	values map[string]any
	sets   []dynprop.ValueEvent
}

func bind(dp *dynprop.DynamicProperty) *mapProducer {
	p := &mapProducer{values: map[string]any{}}
	dp.OnGetValue(func(e *dynprop.ValueEvent) error {
		e.Value = p.values[e.Spec.Name]
		return nil
	})
	dp.OnSetValue(func(e *dynprop.ValueEvent) error {
		p.sets = append(p.sets, *e)
		p.values[e.Spec.Name] = e.Value
		return nil
	})
	return p
}

func TestDescriptors_Visibility(t *testing.T) {
	tests := []struct {
		enabled, browsable bool
		want               bool
	}{
		{enabled: true, browsable: true, want: true},
		{enabled: true, browsable: false, want: false},
		{enabled: false, browsable: true, want: false},
		{enabled: false, browsable: false, want: false},
	}
	for _, tt := range tests {
		s := dynprop.NewPropertySpec("p", "int")
		s.Enabled = tt.enabled
		s.Browsable = tt.browsable
		descs := dynprop.New(dynprop.NewCollection(s)).Descriptors()
		require.Len(t, descs, 1)
		assert.Equal(t, tt.want, descs[0].IsBrowsable(), "enabled=%v browsable=%v", tt.enabled, tt.browsable)
		assert.Equal(t, tt.want, s.Visible())
	}
}

func TestDescriptors_Attributes(t *testing.T) {
	pos := dynprop.NewPropertySpec("position", "Vector3")
	pos.Category = "Transform"
	pos.Expandable = true
	id := dynprop.NewPropertySpec("id", "string")
	id.ReadOnly = true
	mode := dynprop.NewPropertySpec("mode", "string")
	mode.Category = "Appearance"
	mode.TriggersRefresh = true
	scale := dynprop.NewPropertySpec("scale", "float64")
	scale.Category = "Transform"

	descs := dynprop.New(dynprop.NewCollection(pos, id, mode, scale)).Descriptors()
	require.Len(t, descs, 4)

	want := []dynprop.Attributes{
		{Category: "Transform", Browsable: true, Order: 0, Expandable: true},
		{ReadOnly: true, Browsable: true, Order: 1},
		{Category: "Appearance", Browsable: true, RefreshProperties: true, Order: 2},
		{Category: "Transform", Browsable: true, Order: 3},
	}
	for i, d := range descs {
		assert.Equal(t, want[i], d.Attributes(), "descriptor %d", i)
	}
	assert.False(t, descs[1].Attributes().HasCategory())
	assert.True(t, descs[0].IsExpandable())
	assert.True(t, descs[1].IsReadOnly())
	assert.True(t, descs[2].RefreshProperties())
	assert.Equal(t, 3, descs[3].Order())
}

func TestDescriptors_AttributesFixedAtSynthesis(t *testing.T) {
	s := dynprop.NewPropertySpec("p", "int")
	dp := dynprop.New(dynprop.NewCollection(s))
	d := dp.Descriptors()[0]

	s.ReadOnly = true
	s.Category = "Later"

	assert.False(t, d.IsReadOnly())
	assert.Empty(t, d.Category())
	assert.True(t, dp.Descriptors()[0].IsReadOnly())
}

func TestDescriptors_EnumerationHasNoSideEffects(t *testing.T) {
	dp := dynprop.New(dynprop.NewCollection(dynprop.NewPropertySpec("p", "int")))
	calls := 0
	dp.OnGetValue(func(*dynprop.ValueEvent) error { calls++; return nil })
	dp.OnSetValue(func(*dynprop.ValueEvent) error { calls++; return nil })

	_ = dp.Descriptors()
	_ = dp.Find("p")
	assert.Zero(t, calls)
}

func TestShouldSerializeValue(t *testing.T) {
	tests := []struct {
		name    string
		def     any
		current any
		want    bool
	}{
		{name: "equal to default", def: 0, current: 0, want: false},
		{name: "differs from default", def: 0, current: 5, want: true},
		{name: "no default, no value", def: nil, current: nil, want: false},
		{name: "no default, value", def: nil, current: 7, want: true},
		{name: "nil value, default", def: 0, current: nil, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := dynprop.NewPropertySpec("n", "int")
			s.DefaultValue = tt.def
			dp := dynprop.New(dynprop.NewCollection(s))
			p := bind(dp)
			p.values["n"] = tt.current

			got, err := dp.Descriptors()[0].ShouldSerializeValue(nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanResetValue(t *testing.T) {
	tests := []struct {
		name    string
		def     any
		current any
		want    bool
	}{
		{name: "equal to default", def: 0, current: 0, want: false},
		{name: "differs from default", def: 0, current: 5, want: true},
		{name: "no default, no value", def: nil, current: nil, want: false},
		{name: "no default, value", def: nil, current: 7, want: false},
		{name: "nil value, default", def: 0, current: nil, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := dynprop.NewPropertySpec("n", "int")
			s.DefaultValue = tt.def
			dp := dynprop.New(dynprop.NewCollection(s))
			p := bind(dp)
			p.values["n"] = tt.current

			got, err := dp.Descriptors()[0].CanResetValue(nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescriptor_ValuesComparedByValue(t *testing.T) {
	s := dynprop.NewPropertySpec("tags", "[]string")
	s.DefaultValue = []string{"a", "b"}
	dp := dynprop.New(dynprop.NewCollection(s))
	p := bind(dp)
	p.values["tags"] = []string{"a", "b"}

	ok, err := dp.Descriptors()[0].ShouldSerializeValue(nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDescriptor_EndToEnd(t *testing.T) {
	color := dynprop.NewPropertySpec("Color", "string")
	color.Category = "Appearance"
	color.DefaultValue = "Red"
	size := dynprop.NewPropertySpec("Size", "int")
	size.Category = "Appearance"
	size.DefaultValue = 10

	dp := dynprop.New(dynprop.NewCollection(color, size))
	p := bind(dp)
	p.values["Color"] = "Red"
	p.values["Size"] = 10

	descs := dp.Descriptors()
	require.Len(t, descs, 2)
	for i, d := range descs {
		assert.Equal(t, i, d.Order())
		assert.Equal(t, "Appearance", d.Category())
	}

	colorDesc := descs[0]
	require.NoError(t, colorDesc.SetValue(nil, "Blue"))
	v, err := colorDesc.GetValue(nil)
	require.NoError(t, err)
	assert.Equal(t, "Blue", v)

	ser, err := colorDesc.ShouldSerializeValue(nil)
	require.NoError(t, err)
	assert.True(t, ser)

	require.NoError(t, colorDesc.ResetValue(nil))
	require.Len(t, p.sets, 2)
	assert.Equal(t, "Red", p.sets[1].Value)
	assert.Same(t, color, p.sets[1].Spec)
	assert.Equal(t, "Red", p.values["Color"])
}

func TestDescriptor_TargetIsPassedThrough(t *testing.T) {
	dp := dynprop.New(dynprop.NewCollection(dynprop.NewPropertySpec("p", "int")))
	var got []any
	dp.OnGetValue(func(e *dynprop.ValueEvent) error { got = append(got, e.Target); return nil })
	dp.OnSetValue(func(e *dynprop.ValueEvent) error { got = append(got, e.Target); return nil })

	d := dp.Descriptors()[0]
	_, _ = d.GetValue("node-1")
	_ = d.SetValue("node-2", 1)
	assert.Equal(t, []any{"node-1", "node-2"}, got)
}

func TestDescriptor_NoListeners(t *testing.T) {
	s := dynprop.NewPropertySpec("p", "int")
	s.DefaultValue = 3
	d := dynprop.New(dynprop.NewCollection(s)).Descriptors()[0]

	v, err := d.GetValue(nil)
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.NoError(t, d.SetValue(nil, 4))
	assert.NoError(t, d.ResetValue(nil))

	// Nil current against a non-nil default is "not equal".
	ok, err := d.CanResetValue(nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestListeners_LastGetWins(t *testing.T) {
	dp := dynprop.New(dynprop.NewCollection(dynprop.NewPropertySpec("p", "int")))
	dp.OnGetValue(func(e *dynprop.ValueEvent) error { e.Value = 1; return nil })
	dp.OnGetValue(func(e *dynprop.ValueEvent) error {
		assert.Equal(t, 1, e.Value)
		e.Value = 2
		return nil
	})

	v, err := dp.Descriptors()[0].GetValue(nil)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestListeners_GetErrorStopsDispatch(t *testing.T) {
	boom := errors.New("boom")
	dp := dynprop.New(dynprop.NewCollection(dynprop.NewPropertySpec("p", "int")))
	dp.OnGetValue(func(*dynprop.ValueEvent) error { return boom })
	called := false
	dp.OnGetValue(func(*dynprop.ValueEvent) error { called = true; return nil })

	_, err := dp.Descriptors()[0].GetValue(nil)
	assert.ErrorIs(t, err, boom)
	assert.False(t, called)

	_, err = dp.Descriptors()[0].ShouldSerializeValue(nil)
	assert.ErrorIs(t, err, boom)
}

func TestListeners_AllSettersRun(t *testing.T) {
	errA := errors.New("a")
	errB := errors.New("b")
	dp := dynprop.New(dynprop.NewCollection(dynprop.NewPropertySpec("p", "int")))
	var order []string
	dp.OnSetValue(func(*dynprop.ValueEvent) error { order = append(order, "a"); return errA })
	dp.OnSetValue(func(*dynprop.ValueEvent) error { order = append(order, "b"); return errB })
	dp.OnSetValue(func(*dynprop.ValueEvent) error { order = append(order, "c"); return nil })

	err := dp.Descriptors()[0].SetValue(nil, 1)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestDefaultDescriptor(t *testing.T) {
	c := dynprop.NewCollection(
		dynprop.NewPropertySpec("a", "int"),
		dynprop.NewPropertySpec("b", "int"),
		dynprop.NewPropertySpec("b", "string"),
	)
	dp := dynprop.New(c)
	assert.Nil(t, dp.DefaultDescriptor())

	dp.SetDefaultPropertyName("missing")
	assert.Nil(t, dp.DefaultDescriptor())

	dp.SetDefaultPropertyName("b")
	d := dp.DefaultDescriptor()
	require.NotNil(t, d)
	assert.Equal(t, 1, d.Order())
	assert.Equal(t, "int", d.Spec().TypeName)

	dp = dynprop.New(c, dynprop.WithDefaultProperty("a"))
	require.NotNil(t, dp.DefaultDescriptor())
	assert.Equal(t, "a", dp.DefaultDescriptor().Name())
}

func TestPropertyType(t *testing.T) {
	types := dynprop.NewTypeRegistry()
	type vec struct{ X, Y, Z float64 }
	dynprop.RegisterType[vec](types, "Vector3")

	known := dynprop.NewPropertySpec("position", "Vector3")
	structural := dynprop.NewTypedPropertySpec("count", reflect.TypeFor[int]())
	unknown := dynprop.NewPropertySpec("mystery", "Quaternion")
	dp := dynprop.New(dynprop.NewCollection(known, structural, unknown), dynprop.WithTypes(types))
	descs := dp.Descriptors()

	typ, err := descs[0].PropertyType()
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[vec](), typ)

	typ, err = descs[1].PropertyType()
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[int](), typ)
	assert.Equal(t, "int", structural.TypeName)

	_, err = descs[2].PropertyType()
	require.Error(t, err)
	assert.ErrorIs(t, err, dynprop.ErrUnknownType)
	var typeErr *dynprop.TypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "mystery", typeErr.Property)
	assert.Equal(t, "Quaternion", typeErr.TypeName)
	assert.Equal(t, "Quaternion", descs[2].TypeLabel())
}

func TestDescriptor_Labels(t *testing.T) {
	fov := dynprop.NewPropertySpec("fieldOfView", "float64")
	fov.Description = "Vertical field of view in degrees"
	name := dynprop.NewPropertySpec("name", "string")
	dp := dynprop.New(dynprop.NewCollection(fov, name))
	descs := dp.Descriptors()

	assert.Equal(t, "Field of view", descs[0].DisplayName())
	assert.Equal(t, "Vertical field of view in degrees", descs[0].Description())
	assert.Equal(t, "Number", descs[0].TypeLabel())
	assert.Equal(t, "Text", descs[1].TypeLabel())
}

func TestFilter(t *testing.T) {
	dp := dynprop.New(dynprop.NewCollection(
		dynprop.NewPropertySpec("colorMode", "string"),
		dynprop.NewPropertySpec("size", "int"),
		dynprop.NewPropertySpec("color", "string"),
	))
	descs := dp.Descriptors()

	got := dynprop.Filter(descs, "col")
	require.Len(t, got, 2)
	assert.Equal(t, "colorMode", got[0].Name())
	assert.Equal(t, "color", got[1].Name())

	assert.Len(t, dynprop.Filter(descs, ""), 3)
	assert.Empty(t, dynprop.Filter(descs, "zzz"))
}
