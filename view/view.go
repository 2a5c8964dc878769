// Package view defines the presentable unit managed by containers.
package view

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/scrim/config"
)

// Validation errors.
var (
	ErrEmptyID    = errors.New("view id cannot be empty")
	ErrNilContent = errors.New("view content cannot be nil")
)

// View is a single overlay entry. Content is renderer-defined; the terminal
// adapter accepts strings and fmt.Stringers. Background optionally carries
// custom backdrop content drawn behind the view and faded with the dismissal
// drag. Override carries the per-view configuration, with unset fields
// inheriting from the container. Views are transient and never persisted.
type View struct {
	ID         string
	InsertedAt time.Time
	Content    any
	Background any
	Override   *config.ViewOverride
}

// New creates a view with a generated ULID.
func New(content any) (*View, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ULID: %w", err)
	}

	return &View{
		ID:         id.String(),
		InsertedAt: time.Now(),
		Content:    content,
	}, nil
}

// Validate checks that the view has all required fields.
func (v *View) Validate() error {
	if v.ID == "" {
		return ErrEmptyID
	}
	if v.Content == nil {
		return ErrNilContent
	}
	if v.Override != nil && v.Override.Gesture != nil {
		if err := v.Override.Gesture.Validate(); err != nil {
			return fmt.Errorf("invalid view gesture: %w", err)
		}
	}
	return nil
}

// Age returns how long ago the view was inserted.
func (v *View) Age() time.Duration {
	return time.Since(v.InsertedAt)
}

// Clone creates a copy of the view. The override is copied so callers can
// mutate it without affecting the original; content is shared.
func (v *View) Clone() *View {
	clone := *v
	if v.Override != nil {
		ovClone := *v.Override
		clone.Override = &ovClone
	}
	return &clone
}
