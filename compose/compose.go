// Package compose assembles per-view render units: the background and
// foreground layers, their z-order keys, and the wired gesture handler.
// Build is pure; it reads live drag state but owns none of it.
package compose

import (
	"time"

	"github.com/jmylchreest/scrim/config"
	"github.com/jmylchreest/scrim/drag"
	"github.com/jmylchreest/scrim/fade"
	"github.com/jmylchreest/scrim/geom"
	"github.com/jmylchreest/scrim/gesture"
	"github.com/jmylchreest/scrim/style"
	"github.com/jmylchreest/scrim/view"
)

// LayerKind identifies a render layer.
type LayerKind string

const (
	LayerBackground LayerKind = "background"
	LayerForeground LayerKind = "foreground"
)

// ZKey orders layers within a container. Seq is the insertion sequence of
// the owning view; two views never share one. A view's background carries
// the same Seq as its foreground and sorts immediately behind it.
type ZKey struct {
	Seq        uint64
	Background bool
}

// Layer is one drawable stratum of a render unit.
type Layer struct {
	Kind    LayerKind
	Content any              // foreground content or custom backdrop content
	Style   style.Background // background only
	Opacity float64
	Offset  geom.Offset // foreground follows the live drag
	Z       ZKey

	Alignment  style.Alignment
	Insets     style.Insets
	Shadow     style.Shadow // foreground only
	Transition style.Transition
}

// Unit is the composed render state of one view: at most two layers plus
// the handlers the host feeds input into.
type Unit struct {
	ViewID     string
	Background *Layer // nil without a backdrop style or custom backdrop content
	Foreground Layer

	// TapToDismiss marks the unit dismissable by a press outside the
	// foreground content.
	TapToDismiss bool

	// AutoDismiss is the resolved lifetime; zero means never.
	AutoDismiss time.Duration

	// Exactly one of Recognizer and Machine is non-nil when the resolved
	// gesture is active; both are nil when it degrades to nothing.
	Recognizer gesture.Recognizer
	Machine    *drag.Machine
}

// Interactive reports whether the unit is driven by a drag machine.
func (u Unit) Interactive() bool {
	return u.Machine != nil
}

// Wire resolves a gesture selector into the handler that drives it.
// Interactive dismissal gets a drag machine constrained to the selector's
// axes; every other kind goes through the completion resolver. Press-only
// platforms get a long-press recognizer or nothing, never a substitute
// gesture.
func Wire(profile gesture.InputProfile, sel gesture.Selector, onDismiss func()) (gesture.Recognizer, *drag.Machine) {
	if sel.IsInteractive() {
		if profile == gesture.ProfilePressOnly {
			return nil, nil
		}
		m := drag.NewMachine(sel.Axes)
		m.OnDismiss(onDismiss)
		return nil, m
	}
	return gesture.Resolve(profile, sel, onDismiss), nil
}

// Params carries everything Build needs for one view. Machine and
// Recognizer are the handlers wired at present time; Build never creates
// them so live gesture state survives recomputation.
type Params struct {
	View       *view.View
	Seq        uint64
	Effective  config.Effective
	Recognizer gesture.Recognizer
	Machine    *drag.Machine
}

// Build composes the render unit for one view from its resolved
// configuration and current drag state. The foreground carries the live
// drag offset; the background fades with the close percentage. A view
// with custom backdrop content gets a background layer even when the
// backdrop style is none. Build is recomputed on every config or drag
// change.
func Build(p Params) Unit {
	offset := geom.Offset{}
	backgroundOpacity := 1.0
	if p.Machine != nil {
		offset = p.Machine.Offset()
		backgroundOpacity = fade.Opacity(p.Machine.ClosePercentage())
	}

	u := Unit{
		ViewID: p.View.ID,
		Foreground: Layer{
			Kind:       LayerForeground,
			Content:    p.View.Content,
			Opacity:    1.0,
			Offset:     offset,
			Z:          ZKey{Seq: p.Seq},
			Alignment:  p.Effective.Alignment,
			Insets:     p.Effective.Insets,
			Shadow:     p.Effective.Shadow,
			Transition: p.Effective.Transition,
		},
		TapToDismiss: p.Effective.TapToDismiss,
		AutoDismiss:  p.Effective.AutoDismiss,
		Recognizer:   p.Recognizer,
		Machine:      p.Machine,
	}

	if p.Effective.Background.Kind != style.BackgroundNone || p.View.Background != nil {
		u.Background = &Layer{
			Kind:       LayerBackground,
			Content:    p.View.Background,
			Style:      p.Effective.Background,
			Opacity:    backgroundOpacity,
			Z:          ZKey{Seq: p.Seq, Background: true},
			Alignment:  p.Effective.Alignment,
			Insets:     p.Effective.Insets,
			Transition: p.Effective.Transition,
		}
	}

	return u
}
