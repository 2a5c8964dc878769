// Package gesture maps declarative dismiss-gesture selections to executable
// recognizers. Recognizers are pure state machines over timestamped pointer
// samples; interactive dismissal is not resolved here but by package drag.
package gesture

import (
	"errors"
	"fmt"
	"time"

	"github.com/jmylchreest/scrim/geom"
)

// Kind identifies a dismiss-gesture variant.
type Kind string

const (
	KindDisabled    Kind = "disabled"
	KindTap         Kind = "tap"
	KindDoubleTap   Kind = "double-tap"
	KindLongPress   Kind = "long-press"
	KindSwipeUp     Kind = "swipe-up"
	KindSwipeDown   Kind = "swipe-down"
	KindSwipeLeft   Kind = "swipe-left"
	KindSwipeRight  Kind = "swipe-right"
	KindCustom      Kind = "custom"
	KindInteractive Kind = "interactive"
)

// ValidKinds returns all valid gesture kind values.
func ValidKinds() []Kind {
	return []Kind{
		KindDisabled,
		KindTap,
		KindDoubleTap,
		KindLongPress,
		KindSwipeUp,
		KindSwipeDown,
		KindSwipeLeft,
		KindSwipeRight,
		KindCustom,
		KindInteractive,
	}
}

// InputProfile describes the pointer capability of the host platform.
type InputProfile string

const (
	// ProfileFull supports taps, drags, and presses.
	ProfileFull InputProfile = "full"
	// ProfilePressOnly covers remote-control-style platforms whose only
	// pointer affordance is press and hold.
	ProfilePressOnly InputProfile = "press-only"
)

// ValidInputProfiles returns all valid input profile values.
func ValidInputProfiles() []InputProfile {
	return []InputProfile{ProfileFull, ProfilePressOnly}
}

// Selector is the declarative dismiss-gesture choice for a container or a
// single view. The zero value behaves as disabled.
type Selector struct {
	Kind Kind

	// LongPressFor is the minimum hold for long-press.
	// Zero means DefaultLongPressFor.
	LongPressFor time.Duration

	// Axes are the closable directions for interactive dismissal.
	// An empty set means a drag never dismisses and always snaps back.
	Axes geom.AxisSet

	// Recognizer is the user-supplied recognizer for custom gestures.
	Recognizer Recognizer
}

// Disabled returns a selector that attaches no gesture.
func Disabled() Selector {
	return Selector{Kind: KindDisabled}
}

// Tap returns a single-tap selector.
func Tap() Selector {
	return Selector{Kind: KindTap}
}

// DoubleTap returns a two-tap selector.
func DoubleTap() Selector {
	return Selector{Kind: KindDoubleTap}
}

// LongPress returns a press-and-hold selector with the given minimum hold.
func LongPress(minHold time.Duration) Selector {
	return Selector{Kind: KindLongPress, LongPressFor: minHold}
}

// Swipe returns a directional swipe selector.
func Swipe(dir geom.Direction) Selector {
	switch dir {
	case geom.DirectionUp:
		return Selector{Kind: KindSwipeUp}
	case geom.DirectionDown:
		return Selector{Kind: KindSwipeDown}
	case geom.DirectionLeft:
		return Selector{Kind: KindSwipeLeft}
	case geom.DirectionRight:
		return Selector{Kind: KindSwipeRight}
	}
	return Disabled()
}

// Custom returns a selector wrapping a user-supplied recognizer.
func Custom(r Recognizer) Selector {
	return Selector{Kind: KindCustom, Recognizer: r}
}

// Interactive returns a drag-to-dismiss selector closable in the given
// directions.
func Interactive(dirs ...geom.Direction) Selector {
	return Selector{Kind: KindInteractive, Axes: geom.NewAxisSet(dirs...)}
}

// SwipeDirection returns the direction of a swipe selector and whether the
// selector is a swipe at all.
func (s Selector) SwipeDirection() (geom.Direction, bool) {
	switch s.Kind {
	case KindSwipeUp:
		return geom.DirectionUp, true
	case KindSwipeDown:
		return geom.DirectionDown, true
	case KindSwipeLeft:
		return geom.DirectionLeft, true
	case KindSwipeRight:
		return geom.DirectionRight, true
	}
	return "", false
}

// IsInteractive reports whether the selector requests drag-to-dismiss.
func (s Selector) IsInteractive() bool {
	return s.Kind == KindInteractive
}

// Validate checks that the selector is well formed.
func (s Selector) Validate() error {
	valid := false
	for _, k := range ValidKinds() {
		if s.Kind == k {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid gesture kind %q, must be one of: %v", s.Kind, ValidKinds())
	}
	if s.Kind == KindCustom && s.Recognizer == nil {
		return errors.New("custom gesture requires a recognizer")
	}
	if s.LongPressFor < 0 {
		return fmt.Errorf("long-press hold must not be negative, got %s", s.LongPressFor)
	}
	return nil
}
