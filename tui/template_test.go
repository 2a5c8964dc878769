package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateLoader_RendersEmbeddedToast(t *testing.T) {
	l := NewTemplateLoader(t.TempDir())

	out := l.Render(Content{
		Kind:      "toast",
		Title:     "Build finished",
		Body:      "All targets built.",
		CreatedAt: time.Now(),
	})

	assert.Contains(t, out, "Build finished")
	assert.Contains(t, out, "All targets built.")
}

func TestTemplateLoader_EmptyKindDefaultsToToast(t *testing.T) {
	l := NewTemplateLoader("")

	out := l.Render(Content{Title: "hello", CreatedAt: time.Now()})
	assert.Contains(t, out, "hello")
}

func TestTemplateLoader_UserTemplateOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toast.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("{{ .Title }}!"), 0o644))

	l := NewTemplateLoader(dir)
	out := l.Render(Content{Kind: "toast", Title: "hi"})
	assert.Equal(t, "hi!", out)
}

func TestTemplateLoader_UnknownKindFallsBack(t *testing.T) {
	l := NewTemplateLoader(t.TempDir())

	out := l.Render(Content{Kind: "bogus", Title: "hi", Body: "there"})
	assert.Equal(t, "hi\nthere", out)

	out = l.Render(Content{Kind: "bogus", Title: "hi"})
	assert.Equal(t, "hi", out)
}

func TestTemplateLoader_CachesParsedTemplates(t *testing.T) {
	l := NewTemplateLoader("")

	first, err := l.Load("toast")
	require.NoError(t, err)
	second, err := l.Load("toast")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestTemplateLoader_BadUserTemplateErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toast.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("{{ .Title"), 0o644))

	l := NewTemplateLoader(dir)
	_, err := l.Load("toast")
	assert.Error(t, err)
}

func TestListEmbeddedTemplates(t *testing.T) {
	assert.ElementsMatch(t, []string{"toast", "sheet", "modal"}, ListEmbeddedTemplates())
}

func TestEmbeddedTemplate(t *testing.T) {
	data, ok := embeddedTemplate("sheet")
	require.True(t, ok)
	assert.NotEmpty(t, data)

	_, ok = embeddedTemplate("missing")
	assert.False(t, ok)
}
