// Package tui provides the BubbleTea-based demo host for the overlay
// engine. It owns the terminal adapter concerns the engine leaves to its
// host: translating mouse events into pointer samples, driving animation
// frames, and compositing render units onto the screen.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/scrim/compose"
	"github.com/jmylchreest/scrim/config"
	"github.com/jmylchreest/scrim/container"
	"github.com/jmylchreest/scrim/drag"
	"github.com/jmylchreest/scrim/fade"
	"github.com/jmylchreest/scrim/geom"
	"github.com/jmylchreest/scrim/gesture"
	"github.com/jmylchreest/scrim/sound"
	"github.com/jmylchreest/scrim/style"
	"github.com/jmylchreest/scrim/view"
)

// enterDuration is how long an insert transition runs.
const enterDuration = 150 * time.Millisecond

// ghostLinger keeps a thrown view on screen slightly past its throw
// animation so the final frame is visible.
const ghostLinger = 100 * time.Millisecond

// Model is the demo host model.
type Model struct {
	// Engine
	cfg       *config.File
	container *container.Container
	sounds    *sound.Manager
	themes    *style.Loader
	renderer  *Renderer

	// Input and animation
	pointer   pointerState
	animators *Animators
	ticking   bool
	grab      *grab

	// Transient presentation state
	entering map[string]time.Time
	ghosts   []ghost

	// Components
	help help.Model
	keys KeyMap

	// State
	width   int
	height  int
	ready   bool
	soundOn bool
	counter int

	// Status message
	statusMsg string
	statusErr bool

	// Change event subscription
	changeCh <-chan container.ChangeEvent
}

// grab is the press-time capture of the front-most interactive unit. The
// foreground layer is kept so a committed dismissal can keep rendering the
// view as a ghost after the container forgets it.
type grab struct {
	viewID  string
	layer   compose.Layer
	machine *drag.Machine
}

// ghost is a dismissed view still animating off screen. The machine keeps
// publishing the throw offset; the ghost fades with its close percentage.
type ghost struct {
	layer   compose.Layer
	machine *drag.Machine
	expires time.Time
}

// Options configures the demo model.
type Options struct {
	Config    *config.File
	Container *container.Container
	Sounds    *sound.Manager
	Themes    *style.Loader
}

// New creates the demo model. A nil config falls back to defaults; a nil
// container gets created from the config.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultFile()
	}

	themes := opts.Themes
	if themes == nil {
		themes = style.NewLoader(nil)
	}

	c := opts.Container
	if c == nil {
		c = container.NewContainer(cfg.ContainerConfig(), cfg.InputProfile(), nil)
		c.Start()
	}

	dir, _ := TemplatesDir()
	renderer := NewRenderer(themes.Theme(), NewTemplateLoader(dir))

	m := Model{
		cfg:       cfg,
		container: c,
		sounds:    opts.Sounds,
		themes:    themes,
		renderer:  renderer,
		animators: NewAnimators(),
		entering:  make(map[string]time.Time),
		help:      help.New(),
		keys:      DefaultKeyMap(),
		soundOn:   cfg.Sound.Enabled,
	}
	m.changeCh = c.Subscribe()

	return m
}

// Init initializes the demo.
func (m Model) Init() tea.Cmd {
	return m.watchChanges
}

// watchChanges blocks on the container's change feed and republishes each
// event as a message.
func (m Model) watchChanges() tea.Msg {
	if m.changeCh == nil {
		return nil
	}
	ev, ok := <-m.changeCh
	return changeMsg{event: ev, ok: ok}
}

type changeMsg struct {
	event container.ChangeEvent
	ok    bool
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

// configReloadedMsg carries a hot-reloaded configuration file.
type configReloadedMsg struct {
	file *config.File
}

// themeChangedMsg carries a freshly loaded theme.
type themeChangedMsg struct {
	theme *style.Theme
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.renderer.SetSize(msg.Width, msg.Height)
		m.ready = true
		return m, nil

	case frameMsg:
		return m.handleFrame(time.Time(msg))

	case changeMsg:
		return m.handleChange(msg)

	case configReloadedMsg:
		return m.handleConfigReload(msg.file)

	case themeChangedMsg:
		m.renderer.SetTheme(msg.theme)
		return m, nil

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	}

	return m, nil
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Toast):
		m.counter++
		return m, m.present(toastView(m.counter))

	case key.Matches(msg, m.keys.Sheet):
		m.counter++
		return m, m.present(sheetView(m.counter))

	case key.Matches(msg, m.keys.Modal):
		m.counter++
		return m, m.present(modalView(m.counter))

	case key.Matches(msg, m.keys.Dismiss):
		if u, ok := frontUnit(m.container.Units()); ok {
			if err := m.container.Dismiss(u.ViewID, container.ReasonManual); err != nil {
				return m, errorCmd("dismiss failed: " + err.Error())
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.DismissAll):
		m.container.DismissAll(container.ReasonManual)
		return m, nil

	case key.Matches(msg, m.keys.Sound):
		m.soundOn = !m.soundOn
		if m.soundOn {
			return m, statusCmd("sound on")
		}
		return m, statusCmd("sound off")
	}

	return m, nil
}

// handleMouse routes a mouse event to the front-most unit's gesture
// handlers and captures ghosts for views thrown off screen.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	units := m.container.Units()
	m.bindMachines(units)

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		if u, ok := frontUnit(units); ok && u.Machine != nil {
			m.grab = &grab{viewID: u.ViewID, layer: u.Foreground, machine: u.Machine}
		}
	}

	m.pointer.handle(msg, units, func(id string) {
		_ = m.container.Dismiss(id, container.ReasonGesture)
	})

	if msg.Action == tea.MouseActionRelease && m.grab != nil {
		if m.grab.machine.State() == drag.StateDismissing {
			m.ghosts = append(m.ghosts, ghost{
				layer:   m.grab.layer,
				machine: m.grab.machine,
				expires: time.Now().Add(throwDuration + ghostLinger),
			})
		}
		m.grab = nil
	}

	return m, m.maybeTick()
}

// handleFrame advances animations one frame and keeps ticking while
// anything still moves.
func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	m.ticking = false
	active := m.animators.Step(now)

	kept := m.ghosts[:0]
	for _, g := range m.ghosts {
		if now.Before(g.expires) {
			kept = append(kept, g)
		}
	}
	m.ghosts = kept

	for id, start := range m.entering {
		if now.Sub(start) >= enterDuration {
			delete(m.entering, id)
		}
	}

	if active || len(m.ghosts) > 0 || len(m.entering) > 0 {
		m.ticking = true
		return m, frameTick()
	}
	return m, nil
}

// handleChange reacts to one container change event and re-arms the watch.
func (m Model) handleChange(msg changeMsg) (tea.Model, tea.Cmd) {
	if !msg.ok {
		return m, nil
	}

	cmds := []tea.Cmd{m.watchChanges}
	ev := msg.event

	switch ev.Type {
	case container.ChangePresent:
		m.entering[ev.ViewID] = time.Now()
		cmds = append(cmds, m.playCue(sound.CuePresent), statusCmd("presented "+shortID(ev.ViewID)))
		if c := m.maybeTick(); c != nil {
			cmds = append(cmds, c)
		}

	case container.ChangeDismiss:
		delete(m.entering, ev.ViewID)
		cmds = append(cmds, m.playCue(sound.CueDismiss),
			statusCmd(fmt.Sprintf("dismissed %s (%s)", shortID(ev.ViewID), ev.Reason)))
	}

	return m, tea.Batch(cmds...)
}

// handleConfigReload applies a hot-reloaded configuration to the running
// engine.
func (m Model) handleConfigReload(f *config.File) (tea.Model, tea.Cmd) {
	if f == nil {
		return m, nil
	}
	m.cfg = f
	m.container.UpdateConfig(f.ContainerConfig())
	if m.sounds != nil {
		m.sounds.UpdateConfig(f.Sound)
	}

	name := f.Theme.Name
	themes := m.themes
	return m, tea.Batch(statusCmd("configuration reloaded"), func() tea.Msg {
		if err := themes.LoadTheme(name); err != nil {
			return statusMsg{text: "theme load failed: " + err.Error(), isErr: true}
		}
		return themeChangedMsg{theme: themes.Theme()}
	})
}

// maybeTick starts the frame loop when something needs animating and no
// tick is already scheduled.
func (m *Model) maybeTick() tea.Cmd {
	if m.ticking {
		return nil
	}
	if m.animators.Active() || len(m.ghosts) > 0 || len(m.entering) > 0 {
		m.ticking = true
		return frameTick()
	}
	return nil
}

// bindMachines attaches the frame animator to every interactive unit so
// snap-backs and throws animate. Binding is idempotent.
func (m Model) bindMachines(units []compose.Unit) {
	for _, u := range units {
		if u.Machine != nil {
			m.animators.Bind(u.Machine)
		}
	}
}

// present wraps a Present call in a command so slow paths never stall the
// update loop.
func (m Model) present(v *view.View, err error) tea.Cmd {
	c := m.container
	return func() tea.Msg {
		if err != nil {
			return statusMsg{text: "present failed: " + err.Error(), isErr: true}
		}
		if err := c.Present(v); err != nil {
			return statusMsg{text: "present failed: " + err.Error(), isErr: true}
		}
		return nil
	}
}

// playCue plays a sound cue off the update loop. The toggle key mutes
// locally without touching the sound manager's configuration.
func (m Model) playCue(cue sound.Cue) tea.Cmd {
	if !m.soundOn || m.sounds == nil {
		return nil
	}
	sounds := m.sounds
	return func() tea.Msg {
		sounds.PlayCue(cue)
		return nil
	}
}

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text}
	}
}

func errorCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: true}
	}
}

// shortID trims a ULID to a status-line friendly prefix.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// toastView builds a transient notification anchored top-right. It times
// out on its own and throws away to the right or upward.
func toastView(n int) (*view.View, error) {
	v, err := view.New(Content{
		Kind:      "toast",
		Title:     fmt.Sprintf("Toast #%d", n),
		Body:      "Flick right or up, or wait it out.",
		CreatedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}
	v.Override = &config.ViewOverride{
		Gesture:     config.Ptr(gesture.Interactive(geom.DirectionRight, geom.DirectionUp)),
		Alignment:   config.Ptr(style.AlignTopRight),
		Insets:      config.Ptr(style.Insets{Top: 1, Right: 2}),
		Shadow:      config.Ptr(style.ShadowNone),
		Background:  config.Ptr(style.Background{Kind: style.BackgroundNone}),
		Transition:  config.Ptr(style.TransitionSlide),
		AutoDismiss: config.Ptr(5 * time.Second),
	}
	return v, nil
}

// sheetView builds a bottom sheet with an interactive downward dismissal
// and a dimming backdrop that thins as the sheet is dragged away.
func sheetView(n int) (*view.View, error) {
	v, err := view.New(Content{
		Kind:      "sheet",
		Title:     fmt.Sprintf("Sheet #%d", n),
		Body:      "Drag down past the threshold to throw it away,\nor release early to snap back.",
		CreatedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}
	v.Background = "keep dragging to dismiss"
	v.Override = &config.ViewOverride{
		Gesture:    config.Ptr(gesture.Interactive(geom.DirectionDown)),
		Alignment:  config.Ptr(style.AlignBottom),
		Shadow:     config.Ptr(style.ShadowSoft),
		Background: config.Ptr(style.Background{Kind: style.BackgroundDim}),
		Transition: config.Ptr(style.TransitionSlide),
	}
	return v, nil
}

// modalView builds a centered modal dismissed by a tap.
func modalView(n int) (*view.View, error) {
	v, err := view.New(Content{
		Kind:      "modal",
		Title:     fmt.Sprintf("Modal #%d", n),
		Body:      "Click it once to close.",
		CreatedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}
	v.Override = &config.ViewOverride{
		Gesture:    config.Ptr(gesture.Tap()),
		Alignment:  config.Ptr(style.AlignCenter),
		Shadow:     config.Ptr(style.ShadowDrop),
		Background: config.Ptr(style.Background{Kind: style.BackgroundDim}),
		Transition: config.Ptr(style.TransitionFade),
	}
	return v, nil
}

// View renders the demo.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	canvas := m.renderer.Compose(m.viewBase(), m.buildFrames(), m.container.DisplayMode())
	return m.drawGhosts(canvas)
}

// buildFrames fetches the current units and applies insert transitions.
// Fades and scales ramp the opacity; slides walk the offset in from the
// aligned edge. Cells are too coarse for a real scale, so it degrades to a
// fade.
func (m Model) buildFrames() []Frame {
	units := m.container.Units()
	m.bindMachines(units)
	frames := Frames(units)

	now := time.Now()
	for i := range frames {
		u := &frames[i].Unit
		start, ok := m.entering[u.ViewID]
		if !ok {
			continue
		}
		p := float64(now.Sub(start)) / float64(enterDuration)
		if p >= 1 {
			continue
		}
		eased := fade.EaseOutQuad(p)

		switch u.Foreground.Transition {
		case style.TransitionFade, style.TransitionScale:
			frames[i].Opacity = eased
		case style.TransitionSlide:
			edge := slideEdge(u.Foreground.Alignment)
			u.Foreground.Offset = u.Foreground.Offset.Add(edge.Scale(1 - eased))
		}
	}
	return frames
}

// slideEdge returns the offscreen offset, in distance units, a sliding
// view enters from given its alignment.
func slideEdge(a style.Alignment) geom.Offset {
	switch a {
	case style.AlignTopLeft, style.AlignTop, style.AlignTopRight:
		return geom.Offset{Y: -4 * CellHeightUnits}
	case style.AlignBottomLeft, style.AlignBottom, style.AlignBottomRight:
		return geom.Offset{Y: 4 * CellHeightUnits}
	case style.AlignLeft:
		return geom.Offset{X: -8 * CellWidthUnits}
	case style.AlignRight:
		return geom.Offset{X: 8 * CellWidthUnits}
	default:
		return geom.Offset{Y: 4 * CellHeightUnits}
	}
}

// drawGhosts overlays dismissed views still animating off screen.
func (m Model) drawGhosts(canvas string) string {
	for _, g := range m.ghosts {
		layer := g.layer
		layer.Offset = g.machine.Offset()
		opacity := fade.Opacity(g.machine.ClosePercentage())

		box := m.renderer.renderBox(layer, opacity)
		boxW, boxH := boxSize(box)
		offX, offY := unitsToCells(layer.Offset)
		x, y := placeBox(m.width, m.height, boxW, boxH, layer.Alignment, layer.Insets, offX, offY)
		canvas = overlayBox(canvas, box, x, y, m.width, m.height)
	}
	return canvas
}

// viewBase renders the plain backdrop the overlays composite over.
func (m Model) viewBase() string {
	t := m.renderer.Theme()
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Accent))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted))

	soundState := "off"
	if m.soundOn {
		soundState = "on"
	}

	var b strings.Builder
	b.WriteString(" " + titleStyle.Render("scrim") + mutedStyle.Render(" · overlay engine demo") + "\n\n")
	b.WriteString(" " + m.help.View(m.keys) + "\n\n")
	b.WriteString(" " + mutedStyle.Render(fmt.Sprintf("visible %d · queued %d · mode %s · sound %s",
		m.container.Count(), m.container.PendingCount(), m.container.DisplayMode(), soundState)) + "\n")

	lines := strings.Split(b.String(), "\n")
	if len(lines) > m.height-1 {
		lines = lines[:m.height-1]
	}
	for len(lines) < m.height-1 {
		lines = append(lines, "")
	}

	status := ""
	if m.statusMsg != "" {
		statusStyle := mutedStyle
		if m.statusErr {
			statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		}
		status = " " + statusStyle.Render(m.statusMsg)
	}
	lines = append(lines, status)

	return strings.Join(lines, "\n")
}
