package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/scrim/drag"
	"github.com/jmylchreest/scrim/fade"
	"github.com/jmylchreest/scrim/geom"
)

// FrameInterval is the animation frame period, roughly 60fps.
const FrameInterval = time.Second / 60

const (
	snapDuration  = 250 * time.Millisecond
	throwDuration = 160 * time.Millisecond
)

// frameMsg carries one animation frame tick.
type frameMsg time.Time

// frameTick schedules the next animation frame.
func frameTick() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// animation is one in-flight offset interpolation.
type animation struct {
	sink     func(geom.Offset)
	from     geom.Offset
	to       geom.Offset
	curve    fade.Curve
	start    time.Time
	duration time.Duration
	done     func()
}

// Animators drives machine offset animations from frame ticks. Machines
// request animations through the drag.Animator interface; Step publishes
// interpolated frames back through each machine's SetOffset.
type Animators struct {
	mu      sync.Mutex
	running []*animation
}

// NewAnimators creates an empty animation set.
func NewAnimators() *Animators {
	return &Animators{}
}

// Bind attaches the set to a machine as its animator.
func (a *Animators) Bind(m *drag.Machine) {
	m.SetAnimator(&machineAnimator{set: a, machine: m})
}

// Active reports whether any animation is in flight.
func (a *Animators) Active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.running) > 0
}

func (a *Animators) add(anim *animation) {
	a.mu.Lock()
	a.running = append(a.running, anim)
	a.mu.Unlock()
}

// Step advances every animation to now. Completed animations publish their
// final offset, fire their completion callback, and are dropped. Returns
// whether any animation remains in flight.
func (a *Animators) Step(now time.Time) bool {
	a.mu.Lock()
	running := a.running
	a.running = nil
	a.mu.Unlock()

	var live []*animation
	for _, anim := range running {
		t := float64(now.Sub(anim.start)) / float64(anim.duration)
		if t >= 1 {
			anim.sink(anim.to)
			if anim.done != nil {
				anim.done()
			}
			continue
		}
		eased := anim.curve.Func()(t)
		anim.sink(fade.LerpOffset(anim.from, anim.to, eased))
		live = append(live, anim)
	}

	a.mu.Lock()
	a.running = append(live, a.running...)
	active := len(a.running) > 0
	a.mu.Unlock()
	return active
}

// machineAnimator adapts the shared set to one machine.
type machineAnimator struct {
	set     *Animators
	machine *drag.Machine
}

func (ma *machineAnimator) Animate(from, to geom.Offset, curve fade.Curve, done func()) {
	duration := throwDuration
	if curve == fade.CurveSpring {
		duration = snapDuration
	}
	ma.set.add(&animation{
		sink:     ma.machine.SetOffset,
		from:     from,
		to:       to,
		curve:    curve,
		start:    time.Now(),
		duration: duration,
		done:     done,
	})
}
