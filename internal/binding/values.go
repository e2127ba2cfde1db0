package binding

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"cogentcore.org/core/base/reflectx"
)

// decode unmarshals a stored JSON value into typ. A nil typ decodes into
// plain JSON values.
func decode(raw json.RawMessage, typ reflect.Type) (any, error) {
	if typ == nil {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return v, nil
	}
	out := reflect.New(typ)
	if err := json.Unmarshal(raw, out.Interface()); err != nil {
		return nil, err
	}
	return out.Elem().Interface(), nil
}

// coerce converts v to typ. Values that already round-trip through JSON are
// taken as is; scalars fall back to reflectx conversion so "2.5" can set a
// float and 3 can set a string. Conversions that would lose the value, a
// fractional number into an integer or a bool into a number, are refused.
func coerce(v any, typ reflect.Type) (any, error) {
	if v == nil || typ == nil {
		return v, nil
	}
	if reflect.TypeOf(v) == typ {
		return v, nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out, jerr := decode(raw, typ)
	if jerr == nil {
		return out, nil
	}
	if !isScalar(typ.Kind()) {
		return nil, jerr
	}
	if err := checkLossless(v, typ.Kind()); err != nil {
		return nil, err
	}

	ptr := reflect.New(typ)
	if err := reflectx.SetRobust(ptr.Interface(), v); err != nil {
		return nil, fmt.Errorf("cannot convert %T to %s: %w", v, typ, err)
	}
	return ptr.Elem().Interface(), nil
}

func checkLossless(v any, k reflect.Kind) error {
	rv := reflect.ValueOf(v)
	switch {
	case rv.Kind() == reflect.Bool && isNumber(k):
		return fmt.Errorf("cannot convert bool to %s", k)
	case isFloat(rv.Kind()) && isInteger(k):
		if f := rv.Float(); f != math.Trunc(f) {
			return fmt.Errorf("cannot convert %v to %s without truncation", f, k)
		}
	}
	return nil
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isNumber(k reflect.Kind) bool {
	return isInteger(k) || isFloat(k)
}

func isScalar(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
