// Package style defines the mergeable style primitives for overlay views:
// alignment, insets, shadow, background, transition, and display mode, plus
// the display-mode-dependent defaults. Themes for the terminal renderer live
// alongside them.
package style

// DisplayMode controls how simultaneously visible views are arranged
// inside a container.
type DisplayMode string

const (
	DisplayStacking   DisplayMode = "stacking"
	DisplayHorizontal DisplayMode = "horizontal"
	DisplayVertical   DisplayMode = "vertical"
)

// ValidDisplayModes returns all valid display mode values.
func ValidDisplayModes() []DisplayMode {
	return []DisplayMode{DisplayStacking, DisplayHorizontal, DisplayVertical}
}

// Alignment positions a view inside the container frame.
type Alignment string

const (
	AlignTopLeft     Alignment = "top-left"
	AlignTop         Alignment = "top"
	AlignTopRight    Alignment = "top-right"
	AlignLeft        Alignment = "left"
	AlignCenter      Alignment = "center"
	AlignRight       Alignment = "right"
	AlignBottomLeft  Alignment = "bottom-left"
	AlignBottom      Alignment = "bottom"
	AlignBottomRight Alignment = "bottom-right"
)

// ValidAlignments returns all valid alignment values.
func ValidAlignments() []Alignment {
	return []Alignment{
		AlignTopLeft,
		AlignTop,
		AlignTopRight,
		AlignLeft,
		AlignCenter,
		AlignRight,
		AlignBottomLeft,
		AlignBottom,
		AlignBottomRight,
	}
}

// Transition selects the insert/remove animation for a view.
type Transition string

const (
	TransitionNone  Transition = "none"
	TransitionFade  Transition = "fade"
	TransitionSlide Transition = "slide"
	TransitionScale Transition = "scale"
)

// ValidTransitions returns all valid transition values.
func ValidTransitions() []Transition {
	return []Transition{TransitionNone, TransitionFade, TransitionSlide, TransitionScale}
}

// Shadow selects the drop-shadow treatment for a foreground layer.
type Shadow string

const (
	ShadowNone Shadow = "none"
	ShadowSoft Shadow = "soft"
	ShadowDrop Shadow = "drop"
)

// ValidShadows returns all valid shadow values.
func ValidShadows() []Shadow {
	return []Shadow{ShadowNone, ShadowSoft, ShadowDrop}
}

// BackgroundKind selects the backdrop layer rendered behind a view.
type BackgroundKind string

const (
	BackgroundNone  BackgroundKind = "none"
	BackgroundDim   BackgroundKind = "dim"
	BackgroundColor BackgroundKind = "color"
)

// ValidBackgroundKinds returns all valid background kind values.
func ValidBackgroundKinds() []BackgroundKind {
	return []BackgroundKind{BackgroundNone, BackgroundDim, BackgroundColor}
}

// Background describes the backdrop layer behind a view. Color is only
// consulted when Kind is "color".
type Background struct {
	Kind  BackgroundKind `toml:"kind"`
	Color string         `toml:"color"`
}

// Insets pads a view inside its aligned frame, in cells.
type Insets struct {
	Top    int `toml:"top"`
	Right  int `toml:"right"`
	Bottom int `toml:"bottom"`
	Left   int `toml:"left"`
}

// UniformInsets returns insets with the same value on every side.
func UniformInsets(n int) Insets {
	return Insets{Top: n, Right: n, Bottom: n, Left: n}
}

// DefaultAlignment returns the alignment a view falls back to when neither
// the view nor the container configures one. Stacked views center; rows
// grow from the left edge and columns from the top.
func DefaultAlignment(mode DisplayMode) Alignment {
	switch mode {
	case DisplayHorizontal:
		return AlignLeft
	case DisplayVertical:
		return AlignTop
	default:
		return AlignCenter
	}
}

// DefaultTransition returns the fallback transition for a display mode.
func DefaultTransition(mode DisplayMode) Transition {
	if mode == DisplayStacking {
		return TransitionScale
	}
	return TransitionSlide
}

// DefaultShadow returns the fallback shadow for a display mode.
func DefaultShadow(mode DisplayMode) Shadow {
	if mode == DisplayStacking {
		return ShadowSoft
	}
	return ShadowNone
}

// DefaultBackground returns the fallback background for a display mode.
// Stacked views get a dimming backdrop; arranged views get none.
func DefaultBackground(mode DisplayMode) Background {
	if mode == DisplayStacking {
		return Background{Kind: BackgroundDim}
	}
	return Background{Kind: BackgroundNone}
}
