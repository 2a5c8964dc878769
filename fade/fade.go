// Package fade provides the opacity curve for partial-close feedback and
// the easing functions used when animating offsets.
package fade

import "github.com/jmylchreest/scrim/geom"

// Opacity maps a close percentage to a background opacity: 1 - p*p.
// The fade is near-linear for small percentages and accelerates as the
// dismissal nears completion. Input is clamped to [0, 1] so the result
// always stays in [0, 1].
func Opacity(closePercentage float64) float64 {
	p := geom.Clamp01(closePercentage)
	return 1 - p*p
}

// Curve selects the easing applied to an animated offset.
type Curve string

const (
	CurveLinear  Curve = "linear"
	CurveEaseOut Curve = "ease-out"
	CurveSpring  Curve = "spring"
)

// ValidCurves returns all valid curve values.
func ValidCurves() []Curve {
	return []Curve{CurveLinear, CurveEaseOut, CurveSpring}
}

// Func returns the easing function for c, mapping animation progress in
// [0, 1] to eased progress. Unknown curves ease linearly.
func (c Curve) Func() func(float64) float64 {
	switch c {
	case CurveEaseOut:
		return EaseOutQuad
	case CurveSpring:
		return EaseOutBack
	default:
		return Linear
	}
}

// Linear is the identity easing.
func Linear(t float64) float64 {
	return geom.Clamp01(t)
}

// EaseOutQuad decelerates toward the end: 1 - (1-t)^2.
func EaseOutQuad(t float64) float64 {
	t = geom.Clamp01(t)
	u := 1 - t
	return 1 - u*u
}

// EaseOutBack overshoots the target slightly before settling, which reads
// as a spring on snap-back animations.
func EaseOutBack(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	const s = 1.70158
	u := t - 1
	return u*u*((s+1)*u+s) + 1
}

// Lerp interpolates between a and b by eased progress t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpOffset interpolates both components of an offset by eased progress t.
func LerpOffset(a, b geom.Offset, t float64) geom.Offset {
	return geom.Offset{
		X: Lerp(a.X, b.X, t),
		Y: Lerp(a.Y, b.Y, t),
	}
}
