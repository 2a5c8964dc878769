package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/scrim/geom"
	"github.com/jmylchreest/scrim/gesture"
	"github.com/jmylchreest/scrim/style"
)

// Default configuration values.
const (
	DefaultThemeName = "default"
	DefaultVolume    = 80
)

// Duration is a time.Duration that can be unmarshaled from human-readable strings.
// Supports formats like "5s", "10s", "1m", "1h30m", or integer milliseconds for backwards compatibility.
// A value of "0" or 0 means never.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	// Try parsing as integer (milliseconds) for backwards compatibility
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	// Parse as duration string (e.g., "5s", "1m", "1h30m")
	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '5s', '1m', '1h30m' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// File is the on-disk configuration.
// Loaded from ~/.config/scrim/config.toml
type File struct {
	Input     InputSection     `toml:"input"`
	Container ContainerSection `toml:"container"`
	Theme     ThemeSection     `toml:"theme"`
	Sound     SoundSection     `toml:"sound"`
}

// InputSection contains pointer capability settings.
type InputSection struct {
	Profile string `toml:"profile"` // "full" or "press-only"
}

// ContainerSection contains the container-level view settings.
// Empty enum values fall through to the display-mode default.
type ContainerSection struct {
	DisplayMode  string         `toml:"display_mode"` // "stacking", "horizontal", "vertical"
	Order        string         `toml:"order"`        // "ascending", "descending"
	Queue        string         `toml:"queue"`        // "multiple", "one-by-one", "one-by-one-wait-finish"
	MaxVisible   int            `toml:"max_visible"`  // 0 = unlimited
	Gesture      GestureSection `toml:"gesture"`
	TapToDismiss bool           `toml:"tap_to_dismiss"`
	Alignment    string         `toml:"alignment"`    // empty = mode default
	Transition   string         `toml:"transition"`   // empty = mode default
	Shadow       string         `toml:"shadow"`       // empty = mode default
	Background   BackgroundSec  `toml:"background"`   // kind empty = mode default
	Insets       style.Insets   `toml:"insets"`       // cells
	AutoDismiss  Duration       `toml:"auto_dismiss"` // e.g., "5s"; "0" = never
}

// GestureSection contains the container dismiss gesture.
type GestureSection struct {
	Kind    string   `toml:"kind"`     // empty = no container gesture
	HoldFor Duration `toml:"hold_for"` // long-press minimum hold
	Axes    []string `toml:"axes"`     // interactive drag directions
}

// BackgroundSec contains the backdrop layer settings.
type BackgroundSec struct {
	Kind  string `toml:"kind"`  // "none", "dim", "color"
	Color string `toml:"color"` // hex, used when kind = "color"
}

// ThemeSection contains theme settings.
type ThemeSection struct {
	Name string `toml:"name"` // Theme name without .toml extension
}

// SoundSection contains audio cue settings.
type SoundSection struct {
	Enabled bool   `toml:"enabled"`
	Volume  int    `toml:"volume"`  // 0-100
	Present string `toml:"present"` // sound file played on present
	Dismiss string `toml:"dismiss"` // sound file played on dismiss
}

// DefaultFile returns a new File with default values.
func DefaultFile() *File {
	return &File{
		Input: InputSection{
			Profile: string(gesture.ProfileFull),
		},
		Container: ContainerSection{
			DisplayMode: string(style.DisplayStacking),
			Order:       string(OrderAscending),
			Queue:       string(QueueMultiple),
			MaxVisible:  0,
			Gesture: GestureSection{
				Kind:    "",
				HoldFor: Duration(gesture.DefaultLongPressFor),
				Axes:    []string{},
			},
			TapToDismiss: false,
			AutoDismiss:  Duration(0), // Never
		},
		Theme: ThemeSection{
			Name: DefaultThemeName,
		},
		Sound: SoundSection{
			Enabled: true,
			Volume:  DefaultVolume,
		},
	}
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "scrim", "config.toml"), nil
}

// Load loads the configuration from the given path.
// If path is empty, uses the default config path.
// Returns default config if the file doesn't exist.
func Load(path string) (*File, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultFile(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay with file contents
	f := DefaultFile()
	if err := toml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Validate the configuration
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return f, nil
}

// Save writes the configuration to the given path.
// If path is empty, uses the default config path.
func (f *File) Save(path string) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (f *File) Validate() error {
	// Validate input profile
	if !oneOf(gesture.ValidInputProfiles(), f.Input.Profile) {
		return fmt.Errorf("invalid input profile %q, must be one of: %v", f.Input.Profile, gesture.ValidInputProfiles())
	}

	// Validate container enums
	if !oneOf(style.ValidDisplayModes(), f.Container.DisplayMode) {
		return fmt.Errorf("invalid display mode %q, must be one of: %v", f.Container.DisplayMode, style.ValidDisplayModes())
	}
	if !oneOf(ValidOrders(), f.Container.Order) {
		return fmt.Errorf("invalid order %q, must be one of: %v", f.Container.Order, ValidOrders())
	}
	if !oneOf(ValidQueuePolicies(), f.Container.Queue) {
		return fmt.Errorf("invalid queue policy %q, must be one of: %v", f.Container.Queue, ValidQueuePolicies())
	}
	if f.Container.MaxVisible < 0 {
		return fmt.Errorf("max_visible must be >= 0, got %d", f.Container.MaxVisible)
	}

	// Validate gesture
	if f.Container.Gesture.Kind != "" {
		if f.Container.Gesture.Kind == string(gesture.KindCustom) {
			return fmt.Errorf("gesture kind %q cannot be configured from a file", gesture.KindCustom)
		}
		if !oneOf(gesture.ValidKinds(), f.Container.Gesture.Kind) {
			return fmt.Errorf("invalid gesture kind %q, must be one of: %v", f.Container.Gesture.Kind, gesture.ValidKinds())
		}
		if f.Container.Gesture.HoldFor < 0 {
			return fmt.Errorf("hold_for must not be negative, got %s", f.Container.Gesture.HoldFor.Duration())
		}
		for _, axis := range f.Container.Gesture.Axes {
			if !oneOf(geom.ValidDirections(), axis) {
				return fmt.Errorf("invalid gesture axis %q, must be one of: %v", axis, geom.ValidDirections())
			}
		}
	}

	// Validate optional style enums; empty means mode default
	if f.Container.Alignment != "" && !oneOf(style.ValidAlignments(), f.Container.Alignment) {
		return fmt.Errorf("invalid alignment %q, must be one of: %v", f.Container.Alignment, style.ValidAlignments())
	}
	if f.Container.Transition != "" && !oneOf(style.ValidTransitions(), f.Container.Transition) {
		return fmt.Errorf("invalid transition %q, must be one of: %v", f.Container.Transition, style.ValidTransitions())
	}
	if f.Container.Shadow != "" && !oneOf(style.ValidShadows(), f.Container.Shadow) {
		return fmt.Errorf("invalid shadow %q, must be one of: %v", f.Container.Shadow, style.ValidShadows())
	}
	if f.Container.Background.Kind != "" && !oneOf(style.ValidBackgroundKinds(), f.Container.Background.Kind) {
		return fmt.Errorf("invalid background kind %q, must be one of: %v", f.Container.Background.Kind, style.ValidBackgroundKinds())
	}
	if f.Container.AutoDismiss < 0 {
		return fmt.Errorf("auto_dismiss must not be negative, got %s", f.Container.AutoDismiss.Duration())
	}

	// Validate volume
	if f.Sound.Volume < 0 || f.Sound.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", f.Sound.Volume)
	}

	return nil
}

// InputProfile returns the configured pointer capability.
func (f *File) InputProfile() gesture.InputProfile {
	return gesture.InputProfile(f.Input.Profile)
}

// ContainerConfig converts the file settings into a runtime container
// configuration. Empty enum values become unset fields so the display-mode
// defaults apply during Resolve. The file must have been validated.
func (f *File) ContainerConfig() ContainerConfig {
	c := f.Container
	cfg := ContainerConfig{
		DisplayMode: style.DisplayMode(c.DisplayMode),
		Order:       Order(c.Order),
		Queue:       QueuePolicy(c.Queue),
		MaxVisible:  c.MaxVisible,
	}

	if sel := c.Gesture.selector(); sel != nil {
		cfg.Gesture = sel
	}
	if c.TapToDismiss {
		cfg.TapToDismiss = Ptr(true)
	}
	if c.Alignment != "" {
		cfg.Alignment = Ptr(style.Alignment(c.Alignment))
	}
	if c.Transition != "" {
		cfg.Transition = Ptr(style.Transition(c.Transition))
	}
	if c.Shadow != "" {
		cfg.Shadow = Ptr(style.Shadow(c.Shadow))
	}
	if c.Background.Kind != "" {
		cfg.Background = Ptr(style.Background{
			Kind:  style.BackgroundKind(c.Background.Kind),
			Color: c.Background.Color,
		})
	}
	if c.Insets != (style.Insets{}) {
		cfg.Insets = Ptr(c.Insets)
	}
	if c.AutoDismiss > 0 {
		cfg.AutoDismiss = Ptr(c.AutoDismiss.Duration())
	}
	return cfg
}

// selector builds the gesture selector from the file section.
// An empty kind means no container-level gesture.
func (g GestureSection) selector() *gesture.Selector {
	kind := gesture.Kind(g.Kind)
	if kind == "" {
		return nil
	}

	var sel gesture.Selector
	switch kind {
	case gesture.KindLongPress:
		sel = gesture.LongPress(g.HoldFor.Duration())
	case gesture.KindInteractive:
		dirs := make([]geom.Direction, 0, len(g.Axes))
		for _, axis := range g.Axes {
			dirs = append(dirs, geom.Direction(axis))
		}
		sel = gesture.Interactive(dirs...)
	default:
		sel = gesture.Selector{Kind: kind}
	}
	return &sel
}

// PresentSound returns the present cue path with ~ expanded.
func (f *File) PresentSound() string {
	return expandPath(f.Sound.Present)
}

// DismissSound returns the dismiss cue path with ~ expanded.
func (f *File) DismissSound() string {
	return expandPath(f.Sound.Dismiss)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// oneOf reports whether s matches one of the valid enum values.
func oneOf[T ~string](valid []T, s string) bool {
	for _, v := range valid {
		if string(v) == s {
			return true
		}
	}
	return false
}
