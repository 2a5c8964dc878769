package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/scrim/compose"
	"github.com/jmylchreest/scrim/style"
)

// flowGap is the spacing in cells between views arranged in a row or column.
const flowGap = 1

// Renderer draws composed render units onto a text canvas using the active
// theme. It holds no view state; the host hands it fresh units every frame.
type Renderer struct {
	theme     *style.Theme
	templates *TemplateLoader
	width     int
	height    int
}

// NewRenderer creates a renderer. A nil theme falls back to the default
// palette, a nil loader to one resolving the user templates directory.
func NewRenderer(theme *style.Theme, templates *TemplateLoader) *Renderer {
	if theme == nil {
		theme = style.DefaultTheme()
	}
	if templates == nil {
		dir, _ := TemplatesDir()
		templates = NewTemplateLoader(dir)
	}
	return &Renderer{theme: theme, templates: templates}
}

// SetSize updates the canvas dimensions in cells.
func (r *Renderer) SetSize(width, height int) {
	r.width = width
	r.height = height
}

// SetTheme swaps the active theme, typically after a hot reload.
func (r *Renderer) SetTheme(t *style.Theme) {
	if t != nil {
		r.theme = t
	}
}

// Theme returns the active theme.
func (r *Renderer) Theme() *style.Theme {
	return r.theme
}

// Frame is one render unit plus its transient presentation opacity. Opacity
// stays 1 once a view is fully presented; insert transitions ramp it up.
type Frame struct {
	Unit    compose.Unit
	Opacity float64
}

// Frames wraps units at full opacity.
func Frames(units []compose.Unit) []Frame {
	frames := make([]Frame, len(units))
	for i, u := range units {
		frames[i] = Frame{Unit: u, Opacity: 1.0}
	}
	return frames
}

// Compose draws frames back-to-front over base and returns the finished
// canvas. A unit's styled background layer fills the whole canvas before
// its foreground is placed, so backdrops cover everything presented
// earlier; custom backdrop content is drawn as an anchored box instead.
// Horizontal and vertical modes advance a flow anchor along the axis so
// concurrently visible views form a row or column; drag offsets still apply
// per view.
func (r *Renderer) Compose(base string, frames []Frame, mode style.DisplayMode) string {
	if r.width <= 0 || r.height <= 0 {
		return base
	}

	canvas := base
	flow := 0

	for i, f := range frames {
		u := f.Unit
		if u.Background != nil {
			bg := *u.Background
			bg.Opacity *= f.Opacity
			if bg.Style.Kind != style.BackgroundNone {
				canvas = r.fill(bg)
			}
			if bg.Content != nil {
				canvas = r.backdropBox(canvas, bg)
			}
		}

		box := r.renderBox(u.Foreground, f.Opacity)
		boxW, boxH := boxSize(box)
		offX, offY := unitsToCells(u.Foreground.Offset)
		x, y := placeBox(r.width, r.height, boxW, boxH, u.Foreground.Alignment, u.Foreground.Insets, offX, offY)

		switch mode {
		case style.DisplayHorizontal:
			if i == 0 {
				flow = x - offX
			}
			x = flow + offX
			flow += boxW + flowGap
		case style.DisplayVertical:
			if i == 0 {
				flow = y - offY
			}
			y = flow + offY
			flow += boxH + flowGap
		}

		canvas = overlayBox(canvas, box, x, y, r.width, r.height)
	}

	return canvas
}

// renderBox renders one foreground layer as a framed box. Opacity below one
// blends the text and frame toward the theme background, used for views
// animating out.
func (r *Renderer) renderBox(layer compose.Layer, opacity float64) string {
	text := r.contentText(layer.Content)

	border := lipgloss.NormalBorder()
	switch layer.Shadow {
	case style.ShadowSoft:
		border = lipgloss.RoundedBorder()
	case style.ShadowDrop:
		border = lipgloss.ThickBorder()
	}

	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(lipgloss.Color(r.theme.Faded(r.theme.Border, opacity))).
		Foreground(lipgloss.Color(r.theme.Faded(r.theme.Foreground, opacity))).
		Background(lipgloss.Color(r.theme.Background)).
		Padding(0, 1).
		Render(text)
}

// contentText flattens view content to the string the box renders.
func (r *Renderer) contentText(content any) string {
	switch c := content.(type) {
	case Content:
		return r.templates.Render(c)
	case *Content:
		if c == nil {
			return ""
		}
		return r.templates.Render(*c)
	case string:
		return c
	case fmt.Stringer:
		return c.String()
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", content)
	}
}

// backdropBox draws custom backdrop content behind a view's foreground,
// faded by the live backdrop opacity. Backdrops stay anchored; only the
// foreground follows the drag.
func (r *Renderer) backdropBox(canvas string, layer compose.Layer) string {
	box := lipgloss.NewStyle().
		Foreground(lipgloss.Color(r.theme.Faded(r.theme.Muted, layer.Opacity))).
		Background(lipgloss.Color(r.theme.Background)).
		Padding(0, 1).
		Render(r.contentText(layer.Content))

	boxW, boxH := boxSize(box)
	x, y := placeBox(r.width, r.height, boxW, boxH, layer.Alignment, layer.Insets, 0, 0)
	return overlayBox(canvas, box, x, y, r.width, r.height)
}

// fill renders a background layer as a full canvas. Dim backdrops blend
// the theme background toward the scrim color by the layer opacity, so a
// view dragged toward dismissal lightens the backdrop as it goes.
func (r *Renderer) fill(layer compose.Layer) string {
	var color string
	switch layer.Style.Kind {
	case style.BackgroundColor:
		color = layer.Style.Color
		if color == "" {
			color = r.theme.Scrim
		}
		color = r.theme.Faded(color, layer.Opacity)
	default:
		color = r.theme.Dimmed(r.theme.Background, layer.Opacity)
	}

	line := lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Render(strings.Repeat(" ", r.width))
	lines := make([]string, r.height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
