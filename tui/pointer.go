package tui

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/scrim/compose"
	"github.com/jmylchreest/scrim/drag"
	"github.com/jmylchreest/scrim/geom"
	"github.com/jmylchreest/scrim/gesture"
)

// Terminal cells are far coarser than pointer distance units. One cell of
// mouse travel maps to several units so the drag thresholds stay reachable
// on a typical window.
const (
	// CellWidthUnits is the distance units per horizontal cell.
	CellWidthUnits = 8.0
	// CellHeightUnits is the distance units per vertical cell.
	CellHeightUnits = 16.0
)

// cellsToUnits converts a cell-grid translation to distance units.
func cellsToUnits(dx, dy int) geom.Offset {
	return geom.Offset{
		X: float64(dx) * CellWidthUnits,
		Y: float64(dy) * CellHeightUnits,
	}
}

// unitsToCells converts a distance-unit offset back to whole cells for
// rendering.
func unitsToCells(o geom.Offset) (int, int) {
	return int(math.Round(o.X / CellWidthUnits)), int(math.Round(o.Y / CellHeightUnits))
}

// pointerState translates terminal mouse events into pointer samples and
// feeds them to the front-most unit's gesture handler. One press-to-release
// sequence targets one unit; re-targeting mid-drag would tear the machine's
// translation baseline.
type pointerState struct {
	pressed bool
	pressX  int
	pressY  int
	target  string
	tracker drag.VelocityTracker
}

// dragging reports whether a press sequence is in flight.
func (p *pointerState) dragging() bool {
	return p.pressed
}

// handle feeds one mouse event into the targeted unit's handlers. units is
// the current back-to-front ordering; the last unit is front-most. dismiss
// is invoked for tap-to-dismiss units with no recognizer of their own.
func (p *pointerState) handle(msg tea.MouseMsg, units []compose.Unit, dismiss func(id string)) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		u, ok := frontUnit(units)
		if !ok {
			return
		}
		p.pressed = true
		p.pressX, p.pressY = msg.X, msg.Y
		p.target = u.ViewID
		p.tracker.Reset()
		p.tracker.Add(time.Now(), geom.Offset{})

		if u.Machine != nil {
			u.Machine.Begin()
		}
		if u.Recognizer != nil {
			u.Recognizer.Feed(p.sample(gesture.PhasePress, msg))
		}

	case tea.MouseActionMotion:
		if !p.pressed {
			return
		}
		u, ok := unitByID(units, p.target)
		if !ok {
			return
		}
		translation := cellsToUnits(msg.X-p.pressX, msg.Y-p.pressY)
		p.tracker.Add(time.Now(), translation)

		if u.Machine != nil {
			u.Machine.Change(translation)
		}
		if u.Recognizer != nil {
			u.Recognizer.Feed(p.sample(gesture.PhaseMove, msg))
		}

	case tea.MouseActionRelease:
		if !p.pressed {
			return
		}
		p.pressed = false
		u, ok := unitByID(units, p.target)
		if !ok {
			return
		}
		translation := cellsToUnits(msg.X-p.pressX, msg.Y-p.pressY)
		p.tracker.Add(time.Now(), translation)

		if u.Machine != nil {
			u.Machine.End(translation, p.tracker.Predict(translation))
			return
		}
		if u.Recognizer != nil {
			u.Recognizer.Feed(p.sample(gesture.PhaseRelease, msg))
			return
		}
		// A bare tap falls through to tap-to-dismiss
		if u.TapToDismiss && translation.Distance() < gesture.TapSlop {
			dismiss(u.ViewID)
		}
	}
}

// sample builds a timestamped pointer sample in distance units from the
// event's absolute cell position.
func (p *pointerState) sample(phase gesture.Phase, msg tea.MouseMsg) gesture.Sample {
	return gesture.Sample{
		Phase: phase,
		Pos:   cellsToUnits(msg.X, msg.Y),
		Time:  time.Now(),
	}
}

// frontUnit returns the front-most unit, the last of the back-to-front
// ordering.
func frontUnit(units []compose.Unit) (compose.Unit, bool) {
	if len(units) == 0 {
		return compose.Unit{}, false
	}
	return units[len(units)-1], true
}

// unitByID finds a unit by view id. The targeted view may have been
// dismissed mid-sequence, in which case the remaining samples are dropped.
func unitByID(units []compose.Unit, id string) (compose.Unit, bool) {
	for _, u := range units {
		if u.ViewID == id {
			return u, true
		}
	}
	return compose.Unit{}, false
}
