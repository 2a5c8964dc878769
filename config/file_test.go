package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/scrim/geom"
	"github.com/jmylchreest/scrim/gesture"
	"github.com/jmylchreest/scrim/style"
)

func TestDefaultFile(t *testing.T) {
	f := DefaultFile()

	assert.Equal(t, "full", f.Input.Profile)
	assert.Equal(t, "stacking", f.Container.DisplayMode)
	assert.Equal(t, "ascending", f.Container.Order)
	assert.Equal(t, "multiple", f.Container.Queue)
	assert.Equal(t, 0, f.Container.MaxVisible)
	assert.Empty(t, f.Container.Gesture.Kind)
	assert.Equal(t, gesture.DefaultLongPressFor, f.Container.Gesture.HoldFor.Duration())
	assert.Equal(t, "default", f.Theme.Name)
	assert.True(t, f.Sound.Enabled)
	assert.Equal(t, 80, f.Sound.Volume)
	require.NoError(t, f.Validate())
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	// Use a path that doesn't exist
	f, err := Load("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultFile().Container.DisplayMode, f.Container.DisplayMode)
}

func TestLoad_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[input]
profile = "press-only"

[container]
display_mode = "vertical"
order = "descending"
queue = "one-by-one"
max_visible = 3
tap_to_dismiss = true
alignment = "bottom-right"
transition = "fade"
shadow = "drop"
auto_dismiss = "5s"

[container.gesture]
kind = "interactive"
axes = ["down", "left"]

[container.background]
kind = "color"
color = "#1a1b26"

[container.insets]
top = 1
right = 2
bottom = 3
left = 4

[theme]
name = "minimal"

[sound]
enabled = false
volume = 40
present = "/usr/share/sounds/pop.wav"
`
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	f, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "press-only", f.Input.Profile)
	assert.Equal(t, gesture.ProfilePressOnly, f.InputProfile())
	assert.Equal(t, "vertical", f.Container.DisplayMode)
	assert.Equal(t, "descending", f.Container.Order)
	assert.Equal(t, "one-by-one", f.Container.Queue)
	assert.Equal(t, 3, f.Container.MaxVisible)
	assert.True(t, f.Container.TapToDismiss)
	assert.Equal(t, "interactive", f.Container.Gesture.Kind)
	assert.Equal(t, []string{"down", "left"}, f.Container.Gesture.Axes)
	assert.Equal(t, 5*time.Second, f.Container.AutoDismiss.Duration())
	assert.Equal(t, "minimal", f.Theme.Name)
	assert.False(t, f.Sound.Enabled)
	assert.Equal(t, 40, f.Sound.Volume)
	assert.Equal(t, "/usr/share/sounds/pop.wav", f.PresentSound())
}

func TestLoad_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[container]
display_mode = "horizontal"
`
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	f, err := Load(path)
	require.NoError(t, err)

	// Changed field
	assert.Equal(t, "horizontal", f.Container.DisplayMode)

	// Unchanged fields should have defaults
	assert.Equal(t, "ascending", f.Container.Order)
	assert.Equal(t, "full", f.Input.Profile)
	assert.Equal(t, 80, f.Sound.Volume)
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	err := os.WriteFile(path, []byte(`this is not valid toml [`), 0644)
	require.NoError(t, err)

	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsInvalidEnums(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"display mode", "[container]\ndisplay_mode = \"diagonal\"\n"},
		{"order", "[container]\norder = \"shuffled\"\n"},
		{"queue", "[container]\nqueue = \"firehose\"\n"},
		{"profile", "[input]\nprofile = \"telepathy\"\n"},
		{"gesture kind", "[container.gesture]\nkind = \"wave\"\n"},
		{"gesture axis", "[container.gesture]\nkind = \"interactive\"\naxes = [\"sideways\"]\n"},
		{"alignment", "[container]\nalignment = \"middle-ish\"\n"},
		{"background kind", "[container.background]\nkind = \"blur\"\n"},
		{"volume", "[sound]\nvolume = 150\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_RejectsCustomGesture(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[container.gesture]
kind = "custom"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "custom")
}

func TestFile_Save(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "config.toml")

	f := DefaultFile()
	f.Container.DisplayMode = string(style.DisplayHorizontal)
	f.Theme.Name = "catppuccin"

	err := f.Save(path)
	require.NoError(t, err)

	// No temp file left behind
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	// Reload and verify
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "horizontal", loaded.Container.DisplayMode)
	assert.Equal(t, "catppuccin", loaded.Theme.Name)
}

func TestFile_ContainerConfig_UnsetFieldsStayUnset(t *testing.T) {
	cfg := DefaultFile().ContainerConfig()

	assert.Equal(t, style.DisplayStacking, cfg.DisplayMode)
	assert.Equal(t, OrderAscending, cfg.Order)
	assert.Equal(t, QueueMultiple, cfg.Queue)
	assert.Nil(t, cfg.Gesture)
	assert.Nil(t, cfg.TapToDismiss)
	assert.Nil(t, cfg.Alignment)
	assert.Nil(t, cfg.Transition)
	assert.Nil(t, cfg.Shadow)
	assert.Nil(t, cfg.Background)
	assert.Nil(t, cfg.Insets)
	assert.Nil(t, cfg.AutoDismiss)
}

func TestFile_ContainerConfig_ConvertsSetFields(t *testing.T) {
	f := DefaultFile()
	f.Container.Gesture = GestureSection{Kind: "interactive", Axes: []string{"down", "left"}}
	f.Container.TapToDismiss = true
	f.Container.Alignment = "bottom"
	f.Container.Transition = "fade"
	f.Container.Shadow = "drop"
	f.Container.Background = BackgroundSec{Kind: "color", Color: "#1a1b26"}
	f.Container.Insets = style.Insets{Top: 1, Right: 2, Bottom: 3, Left: 4}
	f.Container.AutoDismiss = Duration(5 * time.Second)
	require.NoError(t, f.Validate())

	cfg := f.ContainerConfig()

	require.NotNil(t, cfg.Gesture)
	assert.Equal(t, gesture.KindInteractive, cfg.Gesture.Kind)
	assert.True(t, cfg.Gesture.Axes.Contains(geom.DirectionDown))
	assert.True(t, cfg.Gesture.Axes.Contains(geom.DirectionLeft))
	assert.False(t, cfg.Gesture.Axes.Contains(geom.DirectionUp))

	require.NotNil(t, cfg.TapToDismiss)
	assert.True(t, *cfg.TapToDismiss)
	require.NotNil(t, cfg.Alignment)
	assert.Equal(t, style.AlignBottom, *cfg.Alignment)
	require.NotNil(t, cfg.Transition)
	assert.Equal(t, style.TransitionFade, *cfg.Transition)
	require.NotNil(t, cfg.Shadow)
	assert.Equal(t, style.ShadowDrop, *cfg.Shadow)
	require.NotNil(t, cfg.Background)
	assert.Equal(t, style.BackgroundColor, cfg.Background.Kind)
	assert.Equal(t, "#1a1b26", cfg.Background.Color)
	require.NotNil(t, cfg.Insets)
	assert.Equal(t, style.Insets{Top: 1, Right: 2, Bottom: 3, Left: 4}, *cfg.Insets)
	require.NotNil(t, cfg.AutoDismiss)
	assert.Equal(t, 5*time.Second, *cfg.AutoDismiss)
}

func TestFile_ContainerConfig_LongPressHold(t *testing.T) {
	f := DefaultFile()
	f.Container.Gesture = GestureSection{Kind: "long-press", HoldFor: Duration(750 * time.Millisecond)}

	cfg := f.ContainerConfig()

	require.NotNil(t, cfg.Gesture)
	assert.Equal(t, gesture.KindLongPress, cfg.Gesture.Kind)
	assert.Equal(t, 750*time.Millisecond, cfg.Gesture.LongPressFor)
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"5s", 5 * time.Second, false},
		{"1m", time.Minute, false},
		{"1h30m", 90 * time.Minute, false},
		{"500", 500 * time.Millisecond, false}, // integer milliseconds
		{"0", 0, false},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d.Duration())
		})
	}
}

func TestConfigPath(t *testing.T) {
	path, err := ConfigPath()
	require.NoError(t, err)
	assert.Contains(t, path, filepath.Join("scrim", "config.toml"))
}
