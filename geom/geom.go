// Package geom provides the 2D primitives used by drag tracking:
// offsets in distance units, directions, closable-axis sets, and clamping.
package geom

import "math"

// Offset is a 2D translation in distance units.
// Positive X points right, positive Y points down.
type Offset struct {
	X float64
	Y float64
}

// Add returns the component-wise sum of o and other.
func (o Offset) Add(other Offset) Offset {
	return Offset{X: o.X + other.X, Y: o.Y + other.Y}
}

// Sub returns the component-wise difference of o and other.
func (o Offset) Sub(other Offset) Offset {
	return Offset{X: o.X - other.X, Y: o.Y - other.Y}
}

// Scale returns o with both components multiplied by f.
func (o Offset) Scale(f float64) Offset {
	return Offset{X: o.X * f, Y: o.Y * f}
}

// Distance returns the Euclidean distance of o from the origin.
func (o Offset) Distance() float64 {
	return math.Hypot(o.X, o.Y)
}

// IsZero reports whether both components are exactly zero.
func (o Offset) IsZero() bool {
	return o.X == 0 && o.Y == 0
}

// Clamp01 clamps v to the closed interval [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
