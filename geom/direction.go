package geom

// Direction represents a cardinal drag direction.
// Down is positive Y and right is positive X, matching screen coordinates.
type Direction string

const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// ValidDirections returns all valid direction values.
func ValidDirections() []Direction {
	return []Direction{DirectionUp, DirectionDown, DirectionLeft, DirectionRight}
}

// DominantDirection classifies delta by its dominant axis: whichever of
// |X| and |Y| is larger picks the axis, the sign picks the direction.
// Ties resolve to the vertical axis.
func DominantDirection(delta Offset) Direction {
	if abs(delta.X) > abs(delta.Y) {
		if delta.X < 0 {
			return DirectionLeft
		}
		return DirectionRight
	}
	if delta.Y < 0 {
		return DirectionUp
	}
	return DirectionDown
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// AxisSet is the set of directions in which a drag may dismiss a view.
// The zero value is the empty set. Duplicates and ordering of the source
// directions are irrelevant.
type AxisSet struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
}

// NewAxisSet builds an AxisSet from the given directions.
// Unknown direction values are ignored.
func NewAxisSet(dirs ...Direction) AxisSet {
	var s AxisSet
	for _, d := range dirs {
		switch d {
		case DirectionUp:
			s.Up = true
		case DirectionDown:
			s.Down = true
		case DirectionLeft:
			s.Left = true
		case DirectionRight:
			s.Right = true
		}
	}
	return s
}

// Contains reports whether d is in the set.
func (s AxisSet) Contains(d Direction) bool {
	switch d {
	case DirectionUp:
		return s.Up
	case DirectionDown:
		return s.Down
	case DirectionLeft:
		return s.Left
	case DirectionRight:
		return s.Right
	}
	return false
}

// Empty reports whether no direction is enabled.
func (s AxisSet) Empty() bool {
	return !s.Up && !s.Down && !s.Left && !s.Right
}

// Directions returns the enabled directions in a stable order.
func (s AxisSet) Directions() []Direction {
	var dirs []Direction
	if s.Up {
		dirs = append(dirs, DirectionUp)
	}
	if s.Down {
		dirs = append(dirs, DirectionDown)
	}
	if s.Left {
		dirs = append(dirs, DirectionLeft)
	}
	if s.Right {
		dirs = append(dirs, DirectionRight)
	}
	return dirs
}

// Filter zeroes the components of o that point in a direction outside the
// set: with left excluded a negative X clamps to 0, with right excluded a
// positive X clamps to 0, and the same for up and down on Y. Components
// along enabled directions pass through unmodified.
func (s AxisSet) Filter(o Offset) Offset {
	if o.X < 0 && !s.Left {
		o.X = 0
	}
	if o.X > 0 && !s.Right {
		o.X = 0
	}
	if o.Y < 0 && !s.Up {
		o.Y = 0
	}
	if o.Y > 0 && !s.Down {
		o.Y = 0
	}
	return o
}
