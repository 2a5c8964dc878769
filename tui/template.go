package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Content is the renderable payload the demo presents. Kind selects the
// layout template; hosts embedding the library can put any renderable they
// like into a view instead.
type Content struct {
	Kind      string // layout template name: "toast", "sheet", "modal"
	Title     string
	Body      string
	CreatedAt time.Time
}

// TemplatesDir returns the path to the user's layout templates directory.
func TemplatesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "scrim", "layouts"), nil
}

// TemplateLoader loads layout templates by name.
type TemplateLoader struct {
	templatesDir string
	cache        map[string]*template.Template
}

// NewTemplateLoader creates a template loader. templatesDir may be empty to
// use only the embedded templates.
func NewTemplateLoader(templatesDir string) *TemplateLoader {
	return &TemplateLoader{
		templatesDir: templatesDir,
		cache:        make(map[string]*template.Template),
	}
}

// templateFuncs returns the helper functions available to layout templates.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"reltime": humanize.Time,
		"bold":    lipgloss.NewStyle().Bold(true).Render,
		"faint":   lipgloss.NewStyle().Faint(true).Render,
		"truncate": func(n int, s string) string {
			if n <= 0 || len(s) <= n {
				return s
			}
			if n == 1 {
				return "…"
			}
			return s[:n-1] + "…"
		},
	}
}

// Load loads a layout template by name.
// Checks the user directory first, then falls back to the embedded set.
func (l *TemplateLoader) Load(name string) (*template.Template, error) {
	if name == "" {
		name = "toast"
	}
	if t, ok := l.cache[name]; ok {
		return t, nil
	}

	if l.templatesDir != "" {
		path := filepath.Join(l.templatesDir, name+".tmpl")
		if data, err := os.ReadFile(path); err == nil {
			t, err := template.New(name).Funcs(templateFuncs()).Parse(string(data))
			if err != nil {
				return nil, fmt.Errorf("failed to parse layout template %q: %w", path, err)
			}
			l.cache[name] = t
			return t, nil
		}
	}

	data, ok := embeddedTemplate(name)
	if !ok {
		return nil, fmt.Errorf("layout template not found: %s", name)
	}
	t, err := template.New(name).Funcs(templateFuncs()).Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template %q: %w", name, err)
	}
	l.cache[name] = t
	return t, nil
}

// Render renders content through its layout template. Unknown kinds fall
// back to a plain title-and-body rendering so a view never disappears over
// a missing template.
func (l *TemplateLoader) Render(c Content) string {
	t, err := l.Load(c.Kind)
	if err != nil {
		if c.Body == "" {
			return c.Title
		}
		return c.Title + "\n" + c.Body
	}

	var b strings.Builder
	if err := t.Execute(&b, c); err != nil {
		return c.Title
	}
	return strings.TrimRight(b.String(), "\n")
}
