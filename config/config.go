package config

import (
	"fmt"
	"time"

	"github.com/jmylchreest/scrim/gesture"
	"github.com/jmylchreest/scrim/style"
)

// Order controls how views are arranged within a container.
type Order string

const (
	// OrderAscending places older views first.
	OrderAscending Order = "ascending"
	// OrderDescending places newer views first.
	OrderDescending Order = "descending"
)

// ValidOrders returns all valid order values.
func ValidOrders() []Order {
	return []Order{OrderAscending, OrderDescending}
}

// QueuePolicy controls how a container admits queued views.
type QueuePolicy string

const (
	// QueueMultiple presents every view as it arrives.
	QueueMultiple QueuePolicy = "multiple"
	// QueueOneByOne presents one view at a time, replacing the current
	// one when a new view arrives.
	QueueOneByOne QueuePolicy = "one-by-one"
	// QueueOneByOneWaitFinish presents one view at a time and holds new
	// arrivals until the current view is dismissed.
	QueueOneByOneWaitFinish QueuePolicy = "one-by-one-wait-finish"
)

// ValidQueuePolicies returns all valid queue policy values.
func ValidQueuePolicies() []QueuePolicy {
	return []QueuePolicy{QueueMultiple, QueueOneByOne, QueueOneByOneWaitFinish}
}

// ContainerConfig is the container level of the configuration hierarchy.
// Nil pointer fields fall through to the display-mode default during
// Resolve.
type ContainerConfig struct {
	DisplayMode style.DisplayMode
	Order       Order
	Queue       QueuePolicy
	MaxVisible  int

	Gesture      *gesture.Selector
	TapToDismiss *bool
	Alignment    *style.Alignment
	Transition   *style.Transition
	Shadow       *style.Shadow
	Background   *style.Background
	Insets       *style.Insets
	AutoDismiss  *time.Duration
}

// DefaultContainerConfig returns a container configuration with stacking
// display and no overrides set.
func DefaultContainerConfig() ContainerConfig {
	return ContainerConfig{
		DisplayMode: style.DisplayStacking,
		Order:       OrderAscending,
		Queue:       QueueMultiple,
		MaxVisible:  0,
	}
}

// Validate checks the container configuration for invalid values.
func (c ContainerConfig) Validate() error {
	if !oneOf(style.ValidDisplayModes(), string(c.DisplayMode)) {
		return fmt.Errorf("invalid display mode: %s", c.DisplayMode)
	}
	if !oneOf(ValidOrders(), string(c.Order)) {
		return fmt.Errorf("invalid order: %s", c.Order)
	}
	if !oneOf(ValidQueuePolicies(), string(c.Queue)) {
		return fmt.Errorf("invalid queue policy: %s", c.Queue)
	}
	if c.MaxVisible < 0 {
		return fmt.Errorf("max visible must be >= 0, got %d", c.MaxVisible)
	}
	if c.Gesture != nil {
		if err := c.Gesture.Validate(); err != nil {
			return fmt.Errorf("invalid gesture: %w", err)
		}
	}
	if c.AutoDismiss != nil && *c.AutoDismiss < 0 {
		return fmt.Errorf("auto dismiss must be >= 0, got %s", *c.AutoDismiss)
	}
	return nil
}

// ViewOverride is the view level of the configuration hierarchy. Nil
// fields fall through to the container value.
type ViewOverride struct {
	Gesture      *gesture.Selector
	TapToDismiss *bool
	Alignment    *style.Alignment
	Transition   *style.Transition
	Shadow       *style.Shadow
	Background   *style.Background
	Insets       *style.Insets
	AutoDismiss  *time.Duration
}

// Effective is a fully resolved view configuration with every field
// populated.
type Effective struct {
	Gesture      gesture.Selector
	TapToDismiss bool
	Alignment    style.Alignment
	Transition   style.Transition
	Shadow       style.Shadow
	Background   style.Background
	Insets       style.Insets
	AutoDismiss  time.Duration
}

// Resolve merges the view override over the container configuration and
// the display-mode defaults. Each field resolves independently; a view
// that sets only its gesture still inherits the container alignment.
// A nil override resolves against container values alone.
func Resolve(c ContainerConfig, v *ViewOverride) Effective {
	if v == nil {
		v = &ViewOverride{}
	}
	return Effective{
		Gesture:      Merge(c.Gesture, v.Gesture, gesture.Disabled()),
		TapToDismiss: Merge(c.TapToDismiss, v.TapToDismiss, false),
		Alignment:    Merge(c.Alignment, v.Alignment, style.DefaultAlignment(c.DisplayMode)),
		Transition:   Merge(c.Transition, v.Transition, style.DefaultTransition(c.DisplayMode)),
		Shadow:       Merge(c.Shadow, v.Shadow, style.DefaultShadow(c.DisplayMode)),
		Background:   Merge(c.Background, v.Background, style.DefaultBackground(c.DisplayMode)),
		Insets:       Merge(c.Insets, v.Insets, style.Insets{}),
		AutoDismiss:  Merge(c.AutoDismiss, v.AutoDismiss, 0),
	}
}

