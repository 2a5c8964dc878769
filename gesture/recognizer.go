package gesture

import (
	"time"

	"github.com/jmylchreest/scrim/geom"
)

const (
	// TapSlop is the travel below which a press-release pair counts as a tap.
	TapSlop = 10.0

	// SwipeMinTravel is the minimum press-to-release travel for a swipe.
	SwipeMinTravel = 10.0

	// DoubleTapInterval is the maximum gap between the first release and the
	// second release of a double tap.
	DoubleTapInterval = 300 * time.Millisecond

	// DefaultLongPressFor is the minimum hold when a long-press selector
	// does not configure one.
	DefaultLongPressFor = 500 * time.Millisecond
)

// Phase identifies the stage of a pointer sample.
type Phase int

const (
	PhasePress Phase = iota
	PhaseMove
	PhaseRelease
)

// Sample is one timestamped pointer event. Positions are in distance units
// with the same orientation as geom.Offset.
type Sample struct {
	Phase Phase
	Pos   geom.Offset
	Time  time.Time
}

// Recognizer consumes pointer samples and reports completion. Feed returns
// true exactly when the gesture completes; any wired callback has fired by
// then. Implementations never read a clock and derive all timing from
// sample timestamps.
type Recognizer interface {
	Feed(s Sample) bool
	Reset()
}

type tapRecognizer struct {
	onComplete func()
	pressed    bool
	pressPos   geom.Offset
}

// NewTap returns a single-tap recognizer: press and release within TapSlop.
func NewTap(onComplete func()) Recognizer {
	return &tapRecognizer{onComplete: onComplete}
}

func (r *tapRecognizer) Feed(s Sample) bool {
	switch s.Phase {
	case PhasePress:
		r.pressed = true
		r.pressPos = s.Pos
	case PhaseMove:
		if r.pressed && s.Pos.Sub(r.pressPos).Distance() >= TapSlop {
			r.pressed = false
		}
	case PhaseRelease:
		if !r.pressed {
			return false
		}
		r.pressed = false
		if s.Pos.Sub(r.pressPos).Distance() < TapSlop {
			r.onComplete()
			return true
		}
	}
	return false
}

func (r *tapRecognizer) Reset() {
	r.pressed = false
}

type doubleTapRecognizer struct {
	onComplete  func()
	pressed     bool
	pressPos    geom.Offset
	lastRelease time.Time // release time of the first tap, zero if none
}

// NewDoubleTap returns a two-tap recognizer: two taps whose releases are at
// most DoubleTapInterval apart.
func NewDoubleTap(onComplete func()) Recognizer {
	return &doubleTapRecognizer{onComplete: onComplete}
}

func (r *doubleTapRecognizer) Feed(s Sample) bool {
	switch s.Phase {
	case PhasePress:
		r.pressed = true
		r.pressPos = s.Pos
		if !r.lastRelease.IsZero() && s.Time.Sub(r.lastRelease) > DoubleTapInterval {
			// First tap went stale, this press starts over.
			r.lastRelease = time.Time{}
		}
	case PhaseMove:
		if r.pressed && s.Pos.Sub(r.pressPos).Distance() >= TapSlop {
			r.pressed = false
			r.lastRelease = time.Time{}
		}
	case PhaseRelease:
		if !r.pressed {
			return false
		}
		r.pressed = false
		if s.Pos.Sub(r.pressPos).Distance() >= TapSlop {
			r.lastRelease = time.Time{}
			return false
		}
		if !r.lastRelease.IsZero() && s.Time.Sub(r.lastRelease) <= DoubleTapInterval {
			r.lastRelease = time.Time{}
			r.onComplete()
			return true
		}
		r.lastRelease = s.Time
	}
	return false
}

func (r *doubleTapRecognizer) Reset() {
	r.pressed = false
	r.lastRelease = time.Time{}
}

type longPressRecognizer struct {
	onComplete func()
	minHold    time.Duration
	pressed    bool
	pressPos   geom.Offset
	pressTime  time.Time
}

// NewLongPress returns a press-and-hold recognizer requiring at least
// minHold between press and release within TapSlop. A zero minHold means
// DefaultLongPressFor.
func NewLongPress(minHold time.Duration, onComplete func()) Recognizer {
	if minHold <= 0 {
		minHold = DefaultLongPressFor
	}
	return &longPressRecognizer{onComplete: onComplete, minHold: minHold}
}

func (r *longPressRecognizer) Feed(s Sample) bool {
	switch s.Phase {
	case PhasePress:
		r.pressed = true
		r.pressPos = s.Pos
		r.pressTime = s.Time
	case PhaseMove:
		if r.pressed && s.Pos.Sub(r.pressPos).Distance() >= TapSlop {
			r.pressed = false
		}
	case PhaseRelease:
		if !r.pressed {
			return false
		}
		r.pressed = false
		if s.Time.Sub(r.pressTime) >= r.minHold {
			r.onComplete()
			return true
		}
	}
	return false
}

func (r *longPressRecognizer) Reset() {
	r.pressed = false
}

type swipeRecognizer struct {
	onComplete func()
	direction  geom.Direction
	pressed    bool
	pressPos   geom.Offset
}

// NewSwipe returns a directional swipe recognizer: at least SwipeMinTravel
// between press and release, with the dominant axis of travel matching dir.
// Swipes in other directions are ignored, not treated as cancellation.
func NewSwipe(dir geom.Direction, onComplete func()) Recognizer {
	return &swipeRecognizer{onComplete: onComplete, direction: dir}
}

func (r *swipeRecognizer) Feed(s Sample) bool {
	switch s.Phase {
	case PhasePress:
		r.pressed = true
		r.pressPos = s.Pos
	case PhaseRelease:
		if !r.pressed {
			return false
		}
		r.pressed = false
		delta := s.Pos.Sub(r.pressPos)
		if delta.Distance() < SwipeMinTravel {
			return false
		}
		if geom.DominantDirection(delta) != r.direction {
			return false
		}
		r.onComplete()
		return true
	}
	return false
}

func (r *swipeRecognizer) Reset() {
	r.pressed = false
}

type completionRecognizer struct {
	inner      Recognizer
	onComplete func()
}

// WithCompletion wraps a recognizer so that onComplete fires whenever the
// inner recognizer completes.
func WithCompletion(inner Recognizer, onComplete func()) Recognizer {
	return &completionRecognizer{inner: inner, onComplete: onComplete}
}

func (r *completionRecognizer) Feed(s Sample) bool {
	if r.inner.Feed(s) {
		r.onComplete()
		return true
	}
	return false
}

func (r *completionRecognizer) Reset() {
	r.inner.Reset()
}
