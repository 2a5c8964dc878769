package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTheme_FullPalette(t *testing.T) {
	data := []byte(`
foreground = "#ffffff"
background = "#000000"
accent = "#ff00ff"
muted = "#808080"
border = "#444444"
scrim = "#111111"
`)

	theme, err := ParseTheme("test", data)
	require.NoError(t, err)
	assert.Equal(t, "test", theme.Name)
	assert.Equal(t, "#ffffff", theme.Foreground)
	assert.Equal(t, "#ff00ff", theme.Accent)
}

func TestParseTheme_PartialFallsBackToDefaults(t *testing.T) {
	theme, err := ParseTheme("partial", []byte(`accent = "#ff0000"`))
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", theme.Accent)
	assert.Equal(t, "#e6e6e6", theme.Foreground) // default retained
}

func TestParseTheme_InvalidColor(t *testing.T) {
	_, err := ParseTheme("bad", []byte(`accent = "not-a-color"`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accent")
}

func TestParseTheme_InvalidTOML(t *testing.T) {
	_, err := ParseTheme("broken", []byte(`accent = [`))
	assert.Error(t, err)
}

func TestBundledThemes_AllParse(t *testing.T) {
	for _, name := range ListEmbeddedThemes() {
		data, found := GetEmbeddedTheme(name)
		require.True(t, found, "theme %s", name)
		_, err := ParseTheme(name, data)
		assert.NoError(t, err, "theme %s", name)
	}
}

func TestListEmbeddedThemes(t *testing.T) {
	themes := ListEmbeddedThemes()
	assert.Contains(t, themes, "default")
	assert.Contains(t, themes, "minimal")
	assert.Contains(t, themes, "catppuccin")
}

func TestIsEmbeddedTheme(t *testing.T) {
	assert.True(t, IsEmbeddedTheme("default"))
	assert.False(t, IsEmbeddedTheme("does-not-exist"))
}

func TestTheme_FadedEndpoints(t *testing.T) {
	theme := DefaultTheme()

	assert.Equal(t, "#ffffff", theme.Faded("#ffffff", 1))
	assert.Equal(t, theme.Background, theme.Faded("#ffffff", 0))
}

func TestTheme_FadedInvalidColorPassesThrough(t *testing.T) {
	theme := DefaultTheme()
	assert.Equal(t, "bogus", theme.Faded("bogus", 0.5))
}

func TestTheme_Dimmed(t *testing.T) {
	theme := DefaultTheme()

	assert.Equal(t, "#aabbcc", theme.Dimmed("#aabbcc", 0))
	assert.Equal(t, theme.Scrim, theme.Dimmed("#aabbcc", 1))
}

func TestLoader_UnknownNameFallsBackToDefault(t *testing.T) {
	l := NewLoader(nil)
	err := l.LoadTheme("definitely-missing")
	require.NoError(t, err)
	assert.Equal(t, DefaultThemeName, l.Theme().Name)
}

func TestLoader_LoadBundled(t *testing.T) {
	l := NewLoader(nil)

	var notified *Theme
	l.SetOnChange(func(th *Theme) { notified = th })

	err := l.LoadTheme("catppuccin")
	require.NoError(t, err)
	assert.Equal(t, "catppuccin", l.Theme().Name)
	assert.True(t, l.Theme().IsBundled)
	require.NotNil(t, notified)
	assert.Equal(t, "catppuccin", notified.Name)
}
