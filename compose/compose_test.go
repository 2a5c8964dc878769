package compose

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/scrim/config"
	"github.com/jmylchreest/scrim/drag"
	"github.com/jmylchreest/scrim/geom"
	"github.com/jmylchreest/scrim/gesture"
	"github.com/jmylchreest/scrim/style"
	"github.com/jmylchreest/scrim/view"
)

func stackingEffective(t *testing.T) config.Effective {
	t.Helper()
	return config.Resolve(config.DefaultContainerConfig(), nil)
}

func newView(t *testing.T, content string) *view.View {
	t.Helper()
	v, err := view.New(content)
	require.NoError(t, err)
	return v
}

func TestWire_InteractiveGetsMachine(t *testing.T) {
	rec, m := Wire(gesture.ProfileFull, gesture.Interactive(geom.DirectionDown), func() {})

	assert.Nil(t, rec)
	require.NotNil(t, m)
	assert.True(t, m.Axes().Contains(geom.DirectionDown))
	assert.False(t, m.Axes().Contains(geom.DirectionUp))
}

func TestWire_InteractiveOnPressOnlyGetsNothing(t *testing.T) {
	// No drag affordance exists, and no substitute gesture is attached.
	rec, m := Wire(gesture.ProfilePressOnly, gesture.Interactive(geom.DirectionDown), func() {})

	assert.Nil(t, rec)
	assert.Nil(t, m)
}

func TestWire_CompletionGesturesGetRecognizer(t *testing.T) {
	rec, m := Wire(gesture.ProfileFull, gesture.Tap(), func() {})

	assert.NotNil(t, rec)
	assert.Nil(t, m)
}

func TestWire_DisabledGetsNothing(t *testing.T) {
	rec, m := Wire(gesture.ProfileFull, gesture.Disabled(), func() {})

	assert.Nil(t, rec)
	assert.Nil(t, m)
}

func TestWire_PressOnlyKeepsLongPress(t *testing.T) {
	rec, m := Wire(gesture.ProfilePressOnly, gesture.LongPress(0), func() {})

	assert.NotNil(t, rec)
	assert.Nil(t, m)
}

func TestWire_MachineFiresDismissCallback(t *testing.T) {
	dismissed := false
	_, m := Wire(gesture.ProfileFull, gesture.Interactive(geom.DirectionDown), func() { dismissed = true })
	require.NotNil(t, m)

	m.Begin()
	m.Change(geom.Offset{Y: 100})
	m.End(geom.Offset{Y: 100}, geom.Offset{Y: 400})

	assert.True(t, dismissed)
}

func TestBuild_ForegroundCarriesContentAndStyle(t *testing.T) {
	v := newView(t, "toast")
	eff := stackingEffective(t)

	u := Build(Params{View: v, Seq: 7, Effective: eff})

	assert.Equal(t, v.ID, u.ViewID)
	assert.Equal(t, LayerForeground, u.Foreground.Kind)
	assert.Equal(t, "toast", u.Foreground.Content)
	assert.Equal(t, 1.0, u.Foreground.Opacity)
	assert.Equal(t, geom.Offset{}, u.Foreground.Offset)
	assert.Equal(t, ZKey{Seq: 7}, u.Foreground.Z)
	assert.Equal(t, style.AlignCenter, u.Foreground.Alignment)
	assert.Equal(t, style.ShadowSoft, u.Foreground.Shadow)
	assert.Equal(t, style.TransitionScale, u.Foreground.Transition)
}

func TestBuild_StackingModeGetsBackgroundLayer(t *testing.T) {
	v := newView(t, "sheet")
	eff := stackingEffective(t) // stacking default background is dim

	u := Build(Params{View: v, Seq: 3, Effective: eff})

	require.NotNil(t, u.Background)
	assert.Equal(t, LayerBackground, u.Background.Kind)
	assert.Equal(t, style.BackgroundDim, u.Background.Style.Kind)
	assert.Equal(t, 1.0, u.Background.Opacity)
	assert.Equal(t, ZKey{Seq: 3, Background: true}, u.Background.Z)
}

func TestBuild_NoBackgroundLayerWhenKindNone(t *testing.T) {
	v := newView(t, "toast")
	eff := stackingEffective(t)
	eff.Background = style.Background{Kind: style.BackgroundNone}

	u := Build(Params{View: v, Seq: 1, Effective: eff})

	assert.Nil(t, u.Background)
}

func TestBuild_CustomBackdropContent(t *testing.T) {
	v := newView(t, "sheet")
	v.Background = "handle"
	eff := stackingEffective(t)
	eff.Background = style.Background{Kind: style.BackgroundNone}

	m := drag.NewMachine(geom.NewAxisSet(geom.DirectionDown))
	m.Begin()
	m.Change(geom.Offset{Y: 100})

	u := Build(Params{View: v, Seq: 2, Effective: eff, Machine: m})

	require.NotNil(t, u.Background)
	assert.Equal(t, "handle", u.Background.Content)
	assert.Equal(t, style.BackgroundNone, u.Background.Style.Kind)
	assert.Equal(t, ZKey{Seq: 2, Background: true}, u.Background.Z)
	assert.InDelta(t, 0.75, u.Background.Opacity, 1e-9)
}

func TestBuild_DragStateFlowsIntoLayers(t *testing.T) {
	v := newView(t, "sheet")
	eff := stackingEffective(t)

	m := drag.NewMachine(geom.NewAxisSet(geom.DirectionDown))
	m.Begin()
	m.Change(geom.Offset{Y: 100}) // halfway to the 200-unit vertical threshold

	u := Build(Params{View: v, Seq: 1, Effective: eff, Machine: m})

	assert.Equal(t, geom.Offset{Y: 100}, u.Foreground.Offset)
	require.NotNil(t, u.Background)
	assert.InDelta(t, 0.75, u.Background.Opacity, 1e-9) // 1 - 0.5^2
	assert.True(t, u.Interactive())
}

func TestBuild_IdleMachineLeavesOpacityFull(t *testing.T) {
	v := newView(t, "sheet")
	eff := stackingEffective(t)
	m := drag.NewMachine(geom.NewAxisSet(geom.DirectionDown))

	u := Build(Params{View: v, Seq: 1, Effective: eff, Machine: m})

	assert.Equal(t, geom.Offset{}, u.Foreground.Offset)
	require.NotNil(t, u.Background)
	assert.Equal(t, 1.0, u.Background.Opacity)
}

func TestBuild_CarriesHandlersAndPolicies(t *testing.T) {
	v := newView(t, "toast")
	eff := stackingEffective(t)
	eff.TapToDismiss = true
	eff.AutoDismiss = 5 * time.Second
	rec := gesture.NewTap(func() {})

	u := Build(Params{View: v, Seq: 1, Effective: eff, Recognizer: rec})

	assert.True(t, u.TapToDismiss)
	assert.Equal(t, 5*time.Second, u.AutoDismiss)
	assert.NotNil(t, u.Recognizer)
	assert.False(t, u.Interactive())
}
