package container

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/scrim/config"
	"github.com/jmylchreest/scrim/drag"
	"github.com/jmylchreest/scrim/geom"
	"github.com/jmylchreest/scrim/gesture"
	"github.com/jmylchreest/scrim/view"
)

func TestNewContainer(t *testing.T) {
	c := NewContainer(config.DefaultContainerConfig(), gesture.ProfileFull, nil)

	assert.Equal(t, 0, c.Count())
	assert.Equal(t, 0, c.PendingCount())
	assert.Empty(t, c.Units())
}

func TestContainer_Present(t *testing.T) {
	c := NewContainer(config.DefaultContainerConfig(), gesture.ProfileFull, nil)
	v := testView(t, "toast")

	require.NoError(t, c.Present(v))

	assert.Equal(t, 1, c.Count())
	units := c.Units()
	require.Len(t, units, 1)
	assert.Equal(t, v.ID, units[0].ViewID)
	assert.Equal(t, "toast", units[0].Foreground.Content)
}

func TestContainer_PresentValidates(t *testing.T) {
	c := NewContainer(config.DefaultContainerConfig(), gesture.ProfileFull, nil)
	v := testView(t, "toast")
	v.Content = nil

	assert.ErrorIs(t, c.Present(v), view.ErrNilContent)
	assert.Equal(t, 0, c.Count())
}

func TestContainer_PresentDuplicateID(t *testing.T) {
	c := NewContainer(config.DefaultContainerConfig(), gesture.ProfileFull, nil)
	v := testView(t, "toast")

	require.NoError(t, c.Present(v))
	assert.ErrorIs(t, c.Present(v), ErrDuplicateID)
}

func TestContainer_PresentAfterStop(t *testing.T) {
	c := NewContainer(config.DefaultContainerConfig(), gesture.ProfileFull, nil)
	c.Stop()

	assert.ErrorIs(t, c.Present(testView(t, "late")), ErrContainerClosed)
}

func TestContainer_Dismiss(t *testing.T) {
	c := NewContainer(config.DefaultContainerConfig(), gesture.ProfileFull, nil)
	events := make(chan dismissal, 10)
	c.SetDismissCallback(func(id string, reason DismissReason) {
		events <- dismissal{id, reason}
	})

	v := testView(t, "toast")
	require.NoError(t, c.Present(v))
	require.NoError(t, c.Dismiss(v.ID, ReasonManual))

	assert.Equal(t, 0, c.Count())
	got := waitDismissal(t, events)
	assert.Equal(t, v.ID, got.id)
	assert.Equal(t, ReasonManual, got.reason)

	// The latch: a second dismissal finds nothing
	assert.ErrorIs(t, c.Dismiss(v.ID, ReasonManual), ErrNotFound)
	assert.Empty(t, events)
}

func TestContainer_QueueMultipleRespectsMaxVisible(t *testing.T) {
	cfg := config.DefaultContainerConfig()
	cfg.MaxVisible = 2
	c := NewContainer(cfg, gesture.ProfileFull, nil)

	a := testView(t, "a")
	b := testView(t, "b")
	d := testView(t, "d")
	require.NoError(t, c.Present(a))
	require.NoError(t, c.Present(b))
	require.NoError(t, c.Present(d))

	assert.Equal(t, 2, c.Count())
	assert.Equal(t, 1, c.PendingCount())

	// Dismissing opens a slot; the queued view is admitted in FIFO order
	require.NoError(t, c.Dismiss(a.ID, ReasonManual))
	assert.Equal(t, 2, c.Count())
	assert.Equal(t, 0, c.PendingCount())

	ids := visibleIDs(c)
	assert.Contains(t, ids, b.ID)
	assert.Contains(t, ids, d.ID)
}

func TestContainer_QueueOneByOneReplaces(t *testing.T) {
	cfg := config.DefaultContainerConfig()
	cfg.Queue = config.QueueOneByOne
	c := NewContainer(cfg, gesture.ProfileFull, nil)

	events := make(chan dismissal, 10)
	c.SetDismissCallback(func(id string, reason DismissReason) {
		events <- dismissal{id, reason}
	})

	a := testView(t, "a")
	b := testView(t, "b")
	require.NoError(t, c.Present(a))
	require.NoError(t, c.Present(b))

	assert.Equal(t, 1, c.Count())
	assert.Equal(t, []string{b.ID}, visibleIDs(c))

	got := waitDismissal(t, events)
	assert.Equal(t, a.ID, got.id)
	assert.Equal(t, ReasonReplaced, got.reason)
}

func TestContainer_QueueOneByOneWaitFinishHolds(t *testing.T) {
	cfg := config.DefaultContainerConfig()
	cfg.Queue = config.QueueOneByOneWaitFinish
	c := NewContainer(cfg, gesture.ProfileFull, nil)

	a := testView(t, "a")
	b := testView(t, "b")
	require.NoError(t, c.Present(a))
	require.NoError(t, c.Present(b))

	assert.Equal(t, 1, c.Count())
	assert.Equal(t, 1, c.PendingCount())
	assert.Equal(t, []string{a.ID}, visibleIDs(c))

	// Finishing the current view promotes the waiting one
	require.NoError(t, c.Dismiss(a.ID, ReasonManual))
	assert.Equal(t, 1, c.Count())
	assert.Equal(t, 0, c.PendingCount())
	assert.Equal(t, []string{b.ID}, visibleIDs(c))
}

func TestContainer_DismissQueuedView(t *testing.T) {
	cfg := config.DefaultContainerConfig()
	cfg.Queue = config.QueueOneByOneWaitFinish
	c := NewContainer(cfg, gesture.ProfileFull, nil)

	a := testView(t, "a")
	b := testView(t, "b")
	require.NoError(t, c.Present(a))
	require.NoError(t, c.Present(b))
	require.NoError(t, c.Dismiss(b.ID, ReasonManual))

	assert.Equal(t, 0, c.PendingCount())
	assert.Equal(t, []string{a.ID}, visibleIDs(c))
}

func TestContainer_SetPresented(t *testing.T) {
	c := NewContainer(config.DefaultContainerConfig(), gesture.ProfileFull, nil)
	events := make(chan dismissal, 10)
	c.SetDismissCallback(func(id string, reason DismissReason) {
		events <- dismissal{id, reason}
	})

	v := testView(t, "toast")
	require.NoError(t, c.Present(v))

	// Raising the flag on a visible view changes nothing
	require.NoError(t, c.SetPresented(v.ID, true))
	assert.Equal(t, 1, c.Count())

	// Dropping it forces dismissal with the hidden reason
	require.NoError(t, c.SetPresented(v.ID, false))
	got := waitDismissal(t, events)
	assert.Equal(t, ReasonHidden, got.reason)

	assert.ErrorIs(t, c.SetPresented("unknown", true), ErrNotFound)
}

func TestContainer_AutoDismiss(t *testing.T) {
	cfg := config.DefaultContainerConfig()
	cfg.AutoDismiss = config.Ptr(30 * time.Millisecond)
	c := NewContainer(cfg, gesture.ProfileFull, nil)
	c.Start()
	defer c.Stop()

	events := make(chan dismissal, 10)
	c.SetDismissCallback(func(id string, reason DismissReason) {
		events <- dismissal{id, reason}
	})

	v := testView(t, "ephemeral")
	require.NoError(t, c.Present(v))

	got := waitDismissal(t, events)
	assert.Equal(t, v.ID, got.id)
	assert.Equal(t, ReasonTimeout, got.reason)
	assert.Equal(t, 0, c.Count())
}

func TestContainer_InteractiveGestureDismisses(t *testing.T) {
	cfg := config.DefaultContainerConfig()
	cfg.Gesture = config.Ptr(gesture.Interactive(geom.DirectionDown))
	c := NewContainer(cfg, gesture.ProfileFull, nil)

	events := make(chan dismissal, 10)
	c.SetDismissCallback(func(id string, reason DismissReason) {
		events <- dismissal{id, reason}
	})

	v := testView(t, "sheet")
	require.NoError(t, c.Present(v))

	units := c.Units()
	require.Len(t, units, 1)
	m := units[0].Machine
	require.NotNil(t, m)

	m.Begin()
	m.Change(geom.Offset{Y: 120})
	m.End(geom.Offset{Y: 120}, geom.Offset{Y: 400})

	got := waitDismissal(t, events)
	assert.Equal(t, v.ID, got.id)
	assert.Equal(t, ReasonGesture, got.reason)
	assert.Equal(t, 0, c.Count())
}

func TestContainer_TapGestureDismisses(t *testing.T) {
	cfg := config.DefaultContainerConfig()
	cfg.Gesture = config.Ptr(gesture.Tap())
	c := NewContainer(cfg, gesture.ProfileFull, nil)

	events := make(chan dismissal, 10)
	c.SetDismissCallback(func(id string, reason DismissReason) {
		events <- dismissal{id, reason}
	})

	v := testView(t, "toast")
	require.NoError(t, c.Present(v))

	units := c.Units()
	require.Len(t, units, 1)
	rec := units[0].Recognizer
	require.NotNil(t, rec)

	base := time.Now()
	rec.Feed(gesture.Sample{Phase: gesture.PhasePress, Pos: geom.Offset{X: 4, Y: 4}, Time: base})
	rec.Feed(gesture.Sample{Phase: gesture.PhaseRelease, Pos: geom.Offset{X: 4, Y: 4}, Time: base.Add(80 * time.Millisecond)})

	got := waitDismissal(t, events)
	assert.Equal(t, ReasonGesture, got.reason)
}

func TestContainer_PartialCloseCallback(t *testing.T) {
	cfg := config.DefaultContainerConfig()
	cfg.Gesture = config.Ptr(gesture.Interactive(geom.DirectionDown))
	c := NewContainer(cfg, gesture.ProfileFull, nil)

	var gotID string
	var gotPct float64
	c.SetPartialCloseCallback(func(id string, pc drag.PartialClose) {
		gotID = id
		gotPct = pc.ClosePercentage
	})

	v := testView(t, "sheet")
	require.NoError(t, c.Present(v))

	m := c.Units()[0].Machine
	m.Begin()
	m.Change(geom.Offset{Y: 100}) // half of the 200-unit vertical threshold

	assert.Equal(t, v.ID, gotID)
	assert.InDelta(t, 0.5, gotPct, 1e-9)
}

func TestContainer_UnitsFollowDisplayOrder(t *testing.T) {
	cfg := config.DefaultContainerConfig()
	c := NewContainer(cfg, gesture.ProfileFull, nil)

	a := testView(t, "a")
	b := testView(t, "b")
	require.NoError(t, c.Present(a))
	require.NoError(t, c.Present(b))

	assert.Equal(t, []string{a.ID, b.ID}, visibleIDs(c))

	cfg.Order = config.OrderDescending
	c.UpdateConfig(cfg)
	assert.Equal(t, []string{b.ID, a.ID}, visibleIDs(c))
}

func TestContainer_LayersKeepBackgroundBehindForeground(t *testing.T) {
	c := NewContainer(config.DefaultContainerConfig(), gesture.ProfileFull, nil)

	a := testView(t, "a")
	b := testView(t, "b")
	require.NoError(t, c.Present(a))
	require.NoError(t, c.Present(b))

	layers := c.Layers()
	require.Len(t, layers, 4) // stacking default pairs each view with a dim backdrop
	assert.True(t, layers[0].Z.Background)
	assert.False(t, layers[1].Z.Background)
	assert.Equal(t, layers[0].Z.Seq, layers[1].Z.Seq)
	assert.True(t, layers[2].Z.Background)
	assert.False(t, layers[3].Z.Background)
}

func TestContainer_UpdateConfigRewiresGesture(t *testing.T) {
	cfg := config.DefaultContainerConfig()
	c := NewContainer(cfg, gesture.ProfileFull, nil)

	v := testView(t, "sheet")
	require.NoError(t, c.Present(v))
	assert.Nil(t, c.Units()[0].Machine) // default gesture is disabled

	cfg.Gesture = config.Ptr(gesture.Interactive(geom.DirectionDown))
	c.UpdateConfig(cfg)
	assert.NotNil(t, c.Units()[0].Machine)
}

func TestContainer_UpdateConfigKeepsLiveDragState(t *testing.T) {
	cfg := config.DefaultContainerConfig()
	cfg.Gesture = config.Ptr(gesture.Interactive(geom.DirectionDown))
	c := NewContainer(cfg, gesture.ProfileFull, nil)

	v := testView(t, "sheet")
	require.NoError(t, c.Present(v))

	m := c.Units()[0].Machine
	m.Begin()
	m.Change(geom.Offset{Y: 80})

	// An unrelated edit must not reset the drag in progress
	cfg.MaxVisible = 5
	c.UpdateConfig(cfg)

	assert.Same(t, m, c.Units()[0].Machine)
	assert.Equal(t, geom.Offset{Y: 80}, c.Units()[0].Foreground.Offset)
}

func TestContainer_Subscribe(t *testing.T) {
	c := NewContainer(config.DefaultContainerConfig(), gesture.ProfileFull, nil)

	ch := c.Subscribe()
	require.NotNil(t, ch)

	v := testView(t, "toast")
	require.NoError(t, c.Present(v))

	select {
	case event := <-ch:
		assert.Equal(t, ChangePresent, event.Type)
		assert.Equal(t, v.ID, event.ViewID)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}

	require.NoError(t, c.Dismiss(v.ID, ReasonManual))

	select {
	case event := <-ch:
		assert.Equal(t, ChangeDismiss, event.Type)
		assert.Equal(t, ReasonManual, event.Reason)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestContainer_Unsubscribe(t *testing.T) {
	c := NewContainer(config.DefaultContainerConfig(), gesture.ProfileFull, nil)

	ch := c.Subscribe()
	c.Unsubscribe(ch)

	// Channel should be closed
	_, ok := <-ch
	assert.False(t, ok)
}

func TestContainer_DismissAll(t *testing.T) {
	cfg := config.DefaultContainerConfig()
	cfg.Queue = config.QueueOneByOneWaitFinish
	c := NewContainer(cfg, gesture.ProfileFull, nil)

	events := make(chan dismissal, 10)
	c.SetDismissCallback(func(id string, reason DismissReason) {
		events <- dismissal{id, reason}
	})

	require.NoError(t, c.Present(testView(t, "a")))
	require.NoError(t, c.Present(testView(t, "b"))) // queued

	c.DismissAll(ReasonManual)

	assert.Equal(t, 0, c.Count())
	assert.Equal(t, 0, c.PendingCount())
	first := waitDismissal(t, events)
	second := waitDismissal(t, events)
	assert.Equal(t, ReasonManual, first.reason)
	assert.Equal(t, ReasonManual, second.reason)
}

func TestContainer_Stop(t *testing.T) {
	c := NewContainer(config.DefaultContainerConfig(), gesture.ProfileFull, nil)
	ch := c.Subscribe()

	require.NoError(t, c.Present(testView(t, "toast")))

	c.Stop()
	c.Stop() // Second stop is a no-op

	assert.ErrorIs(t, c.Present(testView(t, "late")), ErrContainerClosed)

	// Drain: the dismissal event arrives, then the channel closes
	for range ch {
	}
}

// Helper functions

type dismissal struct {
	id     string
	reason DismissReason
}

func waitDismissal(t *testing.T, ch chan dismissal) dismissal {
	t.Helper()
	select {
	case d := <-ch:
		return d
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for dismissal")
		return dismissal{}
	}
}

func testView(t *testing.T, content string) *view.View {
	t.Helper()
	v, err := view.New(content)
	require.NoError(t, err)
	return v
}

func visibleIDs(c *Container) []string {
	units := c.Units()
	ids := make([]string, 0, len(units))
	for _, u := range units {
		ids = append(ids, u.ViewID)
	}
	return ids
}
