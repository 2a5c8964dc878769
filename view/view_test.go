package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/scrim/config"
	"github.com/jmylchreest/scrim/gesture"
	"github.com/jmylchreest/scrim/style"
)

func TestNew(t *testing.T) {
	v, err := New("hello")
	require.NoError(t, err)

	assert.NotEmpty(t, v.ID)
	assert.Len(t, v.ID, 26) // ULID string length
	assert.Equal(t, "hello", v.Content)
	assert.False(t, v.InsertedAt.IsZero())
	assert.Nil(t, v.Background)
	assert.Nil(t, v.Override)
}

func TestNew_IDsAreUnique(t *testing.T) {
	a, err := New("a")
	require.NoError(t, err)
	b, err := New("b")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestView_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*View)
		wantErr error
	}{
		{
			name:    "valid view",
			modify:  func(v *View) {},
			wantErr: nil,
		},
		{
			name: "empty id",
			modify: func(v *View) {
				v.ID = ""
			},
			wantErr: ErrEmptyID,
		},
		{
			name: "nil content",
			modify: func(v *View) {
				v.Content = nil
			},
			wantErr: ErrNilContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := New("content")
			require.NoError(t, err)
			tt.modify(v)
			err = v.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestView_Validate_BadOverrideGesture(t *testing.T) {
	v, err := New("content")
	require.NoError(t, err)
	v.Override = &config.ViewOverride{
		Gesture: &gesture.Selector{Kind: "wave"},
	}

	assert.Error(t, v.Validate())
}

func TestView_Age(t *testing.T) {
	v, err := New("content")
	require.NoError(t, err)
	v.InsertedAt = time.Now().Add(-2 * time.Second)

	assert.GreaterOrEqual(t, v.Age(), 2*time.Second)
}

func TestView_Clone(t *testing.T) {
	v, err := New("content")
	require.NoError(t, err)
	v.Override = &config.ViewOverride{
		Alignment: config.Ptr(style.AlignBottom),
	}

	clone := v.Clone()
	require.NotNil(t, clone.Override)

	// Mutating the clone's override must not touch the original
	clone.Override.Alignment = config.Ptr(style.AlignTop)
	assert.Equal(t, style.AlignBottom, *v.Override.Alignment)
	assert.Equal(t, v.ID, clone.ID)
}
