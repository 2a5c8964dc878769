package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jmylchreest/scrim/style"
)

// placeBox computes the top-left cell of a box inside a w-by-h canvas from
// its alignment, insets, and drag offset in cells. The result may sit
// partially outside the canvas while a throw animation runs.
func placeBox(w, h, boxW, boxH int, align style.Alignment, insets style.Insets, offX, offY int) (int, int) {
	var x, y int

	switch align {
	case style.AlignTopLeft, style.AlignLeft, style.AlignBottomLeft:
		x = insets.Left
	case style.AlignTopRight, style.AlignRight, style.AlignBottomRight:
		x = w - boxW - insets.Right
	default:
		x = (w-boxW)/2 + insets.Left - insets.Right
	}

	switch align {
	case style.AlignTopLeft, style.AlignTop, style.AlignTopRight:
		y = insets.Top
	case style.AlignBottomLeft, style.AlignBottom, style.AlignBottomRight:
		y = h - boxH - insets.Bottom
	default:
		y = (h-boxH)/2 + insets.Top - insets.Bottom
	}

	return x + offX, y + offY
}

// overlayBox draws box over base with its top-left corner at cell (x, y).
// Base content on either side of the box survives, styling included, so
// boxes sharing rows compose instead of erasing each other. Rows outside
// the canvas are clipped; a box overshooting an edge pins to it.
func overlayBox(base, box string, x, y, w, h int) string {
	if box == "" {
		return base
	}

	baseLines := strings.Split(base, "\n")
	for len(baseLines) < h {
		baseLines = append(baseLines, "")
	}
	boxLines := strings.Split(strings.TrimRight(box, "\n"), "\n")

	for i, boxLine := range boxLines {
		row := y + i
		if row < 0 || row >= len(baseLines) || row >= h {
			continue
		}

		lineW := lipgloss.Width(boxLine)
		left := x
		if left+lineW > w {
			left = w - lineW
		}
		if left < 0 {
			left = 0
		}

		baseLine := baseLines[row]
		lead := ansi.Truncate(baseLine, left, "")
		if gap := left - lipgloss.Width(lead); gap > 0 {
			lead += strings.Repeat(" ", gap)
		}
		trail := ansi.TruncateLeft(baseLine, left+lineW, "")

		baseLines[row] = lead + boxLine + trail
	}

	return strings.Join(baseLines, "\n")
}

// boxSize measures a rendered box in cells.
func boxSize(box string) (int, int) {
	return lipgloss.Width(box), lipgloss.Height(box)
}
