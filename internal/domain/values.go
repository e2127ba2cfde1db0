package domain

import "fmt"

// Color is an sRGB color in "#rrggbb" form.
type Color string

// Vector3 is a point or direction in scene space.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// String formats the vector as "(x, y, z)".
func (v Vector3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
