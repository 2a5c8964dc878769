package drag

import (
	"math"

	"github.com/jmylchreest/scrim/fade"
	"github.com/jmylchreest/scrim/geom"
)

// StartDistance is the travel required before a pointer sequence becomes a
// drag. Shorter movements stay in the dead zone and emit nothing.
const StartDistance = 5.0

// State identifies the machine's position in the dismissal lifecycle.
type State int

const (
	// StateIdle: no drag in progress, offset is zero.
	StateIdle State = iota
	// StateDragging: the dead zone was crossed, offset tracks the pointer.
	StateDragging
	// StateSnapping: the drag ended below threshold, offset animates to zero.
	StateSnapping
	// StateDismissing: the drag committed, offset animates to the thrown
	// target while the view is removed. Terminal.
	StateDismissing
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateSnapping:
		return "snapping"
	case StateDismissing:
		return "dismissing"
	}
	return "unknown"
}

// Thresholds are the per-axis travel limits: the distance at which the
// close percentage saturates and the predicted translation commits a
// dismissal. Vertical swipes require substantially more travel than
// horizontal ones.
type Thresholds struct {
	Horizontal float64
	Vertical   float64
}

// DefaultThresholds returns the standard limits: 50 units horizontal,
// 200 units vertical.
func DefaultThresholds() Thresholds {
	return Thresholds{Horizontal: 50, Vertical: 200}
}

// PartialClose is the live feedback emitted on every drag tick.
type PartialClose struct {
	Offset          geom.Offset
	ClosePercentage float64
}

// Outcome is the end-of-drag decision.
type Outcome struct {
	// Dismiss reports whether the predicted translation committed the
	// dismissal.
	Dismiss bool
	// Target is the offset to animate to: the axis-filtered predicted
	// translation on dismissal, zero on snap-back.
	Target geom.Offset
	// Direction is the axis that satisfied the dismissal, empty otherwise.
	Direction geom.Direction
	// Curve is the easing for the animation to Target.
	Curve fade.Curve
}

// Animator schedules an offset animation on behalf of a machine. The call
// returns immediately; implementations publish interpolated frames through
// SetOffset and invoke done when the target is reached.
type Animator interface {
	Animate(from, to geom.Offset, curve fade.Curve, done func())
}

// Machine is the per-view interactive dismissal state machine. It is not
// safe for concurrent use; feed it from the host's event loop.
type Machine struct {
	axes       geom.AxisSet
	thresholds Thresholds
	state      State
	offset     geom.Offset
	pressed    bool

	animator       Animator
	onPartialClose func(PartialClose)
	onDismiss      func()
}

// NewMachine creates a machine closable along the given axes with the
// default thresholds. An empty axis set is valid: no drag ever dismisses
// and every drag snaps back.
func NewMachine(axes geom.AxisSet) *Machine {
	return &Machine{
		axes:       axes,
		thresholds: DefaultThresholds(),
	}
}

// SetThresholds overrides the per-axis limits. Non-positive values fall
// back to the defaults.
func (m *Machine) SetThresholds(t Thresholds) {
	def := DefaultThresholds()
	if t.Horizontal <= 0 {
		t.Horizontal = def.Horizontal
	}
	if t.Vertical <= 0 {
		t.Vertical = def.Vertical
	}
	m.thresholds = t
}

// SetAnimator attaches the animator used for snap-back animations. Without
// one, snap-backs settle instantly.
func (m *Machine) SetAnimator(a Animator) {
	m.animator = a
}

// OnPartialClose sets the optional subscriber for live drag feedback.
func (m *Machine) OnPartialClose(callback func(PartialClose)) {
	m.onPartialClose = callback
}

// OnDismiss sets the callback fired when a drag commits a dismissal. It
// fires during End, concurrently with the start of the throw animation,
// not after it.
func (m *Machine) OnDismiss(callback func()) {
	m.onDismiss = callback
}

// Axes returns the closable axis set.
func (m *Machine) Axes() geom.AxisSet {
	return m.axes
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Offset returns the live axis-filtered offset.
func (m *Machine) Offset() geom.Offset {
	return m.offset
}

// ClosePercentage derives the close percentage from the current offset:
// the larger of the horizontal and vertical distance ratios, each clamped
// to [0, 1] against its threshold.
func (m *Machine) ClosePercentage() float64 {
	return closePercentage(m.offset, m.thresholds)
}

func closePercentage(o geom.Offset, t Thresholds) float64 {
	h := geom.Clamp01(math.Abs(o.X) / t.Horizontal)
	v := geom.Clamp01(math.Abs(o.Y) / t.Vertical)
	return math.Max(h, v)
}

// Begin marks the start of a pointer sequence. Translations passed to
// Change and End are measured from this point.
func (m *Machine) Begin() {
	if m.state == StateDismissing {
		return
	}
	// A press during snap-back takes over: the animation is abandoned and
	// the next Change drives the offset again.
	m.state = StateIdle
	m.pressed = true
}

// Change feeds one movement tick. Below StartDistance nothing happens;
// once the dead zone is crossed the machine drags, the offset becomes the
// axis-filtered translation, and a partial-close event is emitted on every
// tick.
func (m *Machine) Change(translation geom.Offset) {
	if !m.pressed || m.state == StateDismissing {
		return
	}
	if m.state != StateDragging {
		if translation.Distance() < StartDistance {
			return
		}
		m.state = StateDragging
	}
	m.offset = m.axes.Filter(translation)
	m.emitPartialClose()
}

// End feeds the final translation together with the predicted end
// translation and resolves the drag. On dismissal the offset animates to
// the axis-filtered predicted translation while the dismiss callback fires
// concurrently; otherwise the offset animates back to zero with a spring.
func (m *Machine) End(translation, predicted geom.Offset) Outcome {
	if m.state != StateDragging {
		// The dead zone was never crossed; nothing to resolve.
		m.pressed = false
		m.reset()
		return Outcome{Target: geom.Offset{}, Curve: fade.CurveSpring}
	}
	m.pressed = false
	m.offset = m.axes.Filter(translation)

	if dir, ok := m.dismissDirection(predicted); ok {
		target := m.axes.Filter(predicted)
		m.state = StateDismissing
		out := Outcome{Dismiss: true, Target: target, Direction: dir, Curve: fade.CurveEaseOut}
		if m.onDismiss != nil {
			m.onDismiss()
		}
		if m.animator != nil {
			m.animator.Animate(m.offset, target, out.Curve, nil)
		}
		return out
	}

	m.state = StateSnapping
	out := Outcome{Target: geom.Offset{}, Curve: fade.CurveSpring}
	if m.animator != nil {
		m.animator.Animate(m.offset, geom.Offset{}, out.Curve, m.Settle)
	} else {
		m.Settle()
	}
	return out
}

// dismissDirection evaluates the predicted end translation against the
// enabled axes.
func (m *Machine) dismissDirection(predicted geom.Offset) (geom.Direction, bool) {
	if m.axes.Down && predicted.Y >= m.thresholds.Vertical {
		return geom.DirectionDown, true
	}
	if m.axes.Up && predicted.Y <= -m.thresholds.Vertical {
		return geom.DirectionUp, true
	}
	if m.axes.Right && predicted.X >= m.thresholds.Horizontal {
		return geom.DirectionRight, true
	}
	if m.axes.Left && predicted.X <= -m.thresholds.Horizontal {
		return geom.DirectionLeft, true
	}
	return "", false
}

// SetOffset publishes an interpolated animation frame. Animators call it
// while snapping or dismissing so subscribers see the offset, and the
// derived close percentage, move with the animation.
func (m *Machine) SetOffset(o geom.Offset) {
	m.offset = o
	m.emitPartialClose()
}

// Settle finalizes a snap-back: the offset returns to zero and the machine
// idles. Animators call it when the snap-back animation completes.
func (m *Machine) Settle() {
	if m.state != StateSnapping {
		return
	}
	m.reset()
}

func (m *Machine) reset() {
	changed := !m.offset.IsZero()
	m.offset = geom.Offset{}
	m.state = StateIdle
	if changed {
		m.emitPartialClose()
	}
}

func (m *Machine) emitPartialClose() {
	if m.onPartialClose == nil {
		return
	}
	m.onPartialClose(PartialClose{
		Offset:          m.offset,
		ClosePercentage: m.ClosePercentage(),
	})
}
