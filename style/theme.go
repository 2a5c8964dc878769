package style

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/scrim/geom"
)

// Theme maps semantic color roles to hex values for the terminal renderer.
type Theme struct {
	Name      string    `toml:"-"`
	Path      string    `toml:"-"` // empty for bundled themes
	IsBundled bool      `toml:"-"`
	ModTime   time.Time `toml:"-"`

	Foreground string `toml:"foreground"` // body text
	Background string `toml:"background"` // view fill
	Accent     string `toml:"accent"`     // titles, highlights
	Muted      string `toml:"muted"`      // secondary text
	Border     string `toml:"border"`     // frame lines
	Scrim      string `toml:"scrim"`      // dimming backdrop
}

// DefaultTheme returns the built-in default palette.
func DefaultTheme() *Theme {
	t, _ := ParseTheme(DefaultThemeName, mustEmbeddedTheme(DefaultThemeName))
	t.IsBundled = true
	return t
}

// ParseTheme parses TOML theme data. Missing roles fall back to the default
// palette so partial theme files stay usable.
func ParseTheme(name string, data []byte) (*Theme, error) {
	t := &Theme{
		Name:       name,
		Foreground: "#e6e6e6",
		Background: "#1a1b26",
		Accent:     "#7aa2f7",
		Muted:      "#565f89",
		Border:     "#3b4261",
		Scrim:      "#0f0f14",
	}
	if err := toml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to parse theme %q: %w", name, err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid theme %q: %w", name, err)
	}
	return t, nil
}

// Validate checks that every color role parses as a hex color.
func (t *Theme) Validate() error {
	roles := map[string]string{
		"foreground": t.Foreground,
		"background": t.Background,
		"accent":     t.Accent,
		"muted":      t.Muted,
		"border":     t.Border,
		"scrim":      t.Scrim,
	}
	for role, hex := range roles {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("color %s = %q: %w", role, hex, err)
		}
	}
	return nil
}

// Faded blends hex toward the theme background by 1-opacity. Opacity 1
// returns the color unchanged, opacity 0 disappears into the background.
// Invalid colors pass through so rendering never fails.
func (t *Theme) Faded(hex string, opacity float64) string {
	fg, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	bg, err := colorful.Hex(t.Background)
	if err != nil {
		return hex
	}
	return bg.BlendRgb(fg, geom.Clamp01(opacity)).Hex()
}

// Dimmed blends hex toward the scrim color by amount, used for backdrop
// rendering under a dimming background.
func (t *Theme) Dimmed(hex string, amount float64) string {
	fg, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	scrim, err := colorful.Hex(t.Scrim)
	if err != nil {
		return hex
	}
	return fg.BlendRgb(scrim, geom.Clamp01(amount)).Hex()
}

// ThemesDir returns the path to the user's themes directory.
func ThemesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "scrim", "themes"), nil
}

// Loader resolves themes by name with hot-reload support.
type Loader struct {
	mu        sync.RWMutex
	logger    *slog.Logger
	themesDir string
	theme     *Theme
	watcher   *Watcher
	onChange  func(*Theme)
}

// NewLoader creates a new theme loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}

	themesDir, err := ThemesDir()
	if err != nil {
		logger.Warn("failed to get themes directory", "error", err)
		themesDir = ""
	}

	return &Loader{
		logger:    logger,
		themesDir: themesDir,
		theme:     DefaultTheme(),
	}
}

// SetOnChange sets the callback invoked after a theme loads or hot-reloads.
func (l *Loader) SetOnChange(callback func(*Theme)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = callback
}

// LoadTheme loads a theme by name.
// Resolution order:
//  1. User themes directory (~/.config/scrim/themes/)
//  2. Bundled themes
//
// A user file with a bundled theme's name overrides the bundled one.
// Unknown names fall back to the default theme.
func (l *Loader) LoadTheme(name string) error {
	if name == "" {
		name = DefaultThemeName
	}

	theme, err := l.resolve(name)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.theme = theme
	callback := l.onChange
	l.mu.Unlock()

	if callback != nil {
		callback(theme)
	}
	return nil
}

func (l *Loader) resolve(name string) (*Theme, error) {
	if l.themesDir != "" {
		path := filepath.Join(l.themesDir, name+".toml")
		if info, err := os.Stat(path); err == nil {
			data, err := os.ReadFile(path)
			if err == nil {
				theme, err := ParseTheme(name, data)
				if err == nil {
					theme.Path = path
					theme.ModTime = info.ModTime()
					l.logger.Info("loaded user theme", "name", name, "path", path)
					return theme, nil
				}
				l.logger.Warn("failed to parse user theme, trying bundled", "theme", name, "error", err)
			}
		}
	}

	if data, found := GetEmbeddedTheme(name); found {
		theme, err := ParseTheme(name, data)
		if err != nil {
			return nil, err
		}
		theme.IsBundled = true
		l.logger.Info("loaded bundled theme", "name", name)
		return theme, nil
	}

	l.logger.Warn("theme not found, using default", "theme", name)
	return DefaultTheme(), nil
}

// Theme returns the currently loaded theme.
func (l *Loader) Theme() *Theme {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.theme
}

// Reload reloads the current theme from disk.
func (l *Loader) Reload() error {
	l.mu.RLock()
	name := l.theme.Name
	l.mu.RUnlock()
	return l.LoadTheme(name)
}

// StartHotReload watches the user themes directory and reloads the current
// theme when its file changes. Bundled themes are not watched.
func (l *Loader) StartHotReload() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.theme.Path == "" {
		l.logger.Debug("not watching bundled theme")
		return nil
	}
	if l.watcher != nil {
		l.watcher.Stop()
	}

	watcher, err := NewWatcher(l.theme.Path, l.logger)
	if err != nil {
		return fmt.Errorf("failed to create theme watcher: %w", err)
	}
	watcher.SetOnChange(func() {
		if err := l.Reload(); err != nil {
			l.logger.Warn("failed to hot-reload theme", "error", err)
		}
	})

	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to start theme watcher: %w", err)
	}
	l.watcher = watcher
	return nil
}

// StopHotReload stops watching the theme file.
func (l *Loader) StopHotReload() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.watcher != nil {
		l.watcher.Stop()
		l.watcher = nil
	}
}

// ListThemes returns all available theme names, bundled first, with user
// themes appended and duplicates removed.
func (l *Loader) ListThemes() []string {
	seen := make(map[string]bool)
	var themes []string

	for _, name := range ListEmbeddedThemes() {
		if !seen[name] {
			seen[name] = true
			themes = append(themes, name)
		}
	}

	if l.themesDir != "" {
		entries, err := os.ReadDir(l.themesDir)
		if err == nil {
			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				name := entry.Name()
				if filepath.Ext(name) == ".toml" {
					themeName := strings.TrimSuffix(name, ".toml")
					if !seen[themeName] {
						seen[themeName] = true
						themes = append(themes, themeName)
					}
				}
			}
		} else if !os.IsNotExist(err) {
			l.logger.Debug("failed to read themes directory", "error", err)
		}
	}

	return themes
}
