package sound

import (
	"context"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/jmylchreest/scrim/config"
)

// Cue identifies a view lifecycle event with an associated sound.
type Cue string

const (
	// CuePresent plays when a view becomes visible.
	CuePresent Cue = "present"
	// CueDismiss plays when a view is removed.
	CueDismiss Cue = "dismiss"
)

// ValidCues returns all valid cue values.
func ValidCues() []Cue {
	return []Cue{CuePresent, CueDismiss}
}

// Manager manages audio playback for view lifecycle cues.
type Manager struct {
	mu      sync.RWMutex
	logger  *slog.Logger
	player  *Player
	watcher *Watcher
	enabled bool

	// Cue to sound path mapping
	sounds map[Cue]string
}

// NewManager creates a new sound manager from the sound configuration.
func NewManager(cfg config.SoundSection, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		logger:  logger,
		player:  NewPlayer(logger),
		watcher: NewWatcher(logger),
		sounds:  make(map[Cue]string),
	}
	m.watcher.SetOnChange(m.cueFileChanged)

	m.loadSoundConfig(cfg)

	return m
}

// cueFileChanged re-decodes an edited cue file so the next play picks up
// the new sound.
func (m *Manager) cueFileChanged(path string) {
	m.player.InvalidateCache(path)
	if err := m.player.Preload(path); err != nil {
		m.logger.Warn("failed to reload sound", "path", path, "error", err)
	}
}

// loadSoundConfig applies the sound configuration.
func (m *Manager) loadSoundConfig(cfg config.SoundSection) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.enabled = cfg.Enabled
	m.player.SetVolume(float64(cfg.Volume) / 100.0)

	m.sounds = make(map[Cue]string)
	cues := map[Cue]string{
		CuePresent: cfg.Present,
		CueDismiss: cfg.Dismiss,
	}

	for cue, path := range cues {
		if path == "" {
			continue
		}

		expandedPath := expandPath(path)

		if _, err := os.Stat(expandedPath); err != nil {
			m.logger.Warn("sound file not found", "cue", cue, "path", expandedPath)
			continue
		}

		m.sounds[cue] = expandedPath
		m.logger.Debug("loaded sound", "cue", cue, "path", expandedPath)
	}
}

// Start preloads the configured sounds and starts the file watcher.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.RLock()
	sounds := make(map[Cue]string, len(m.sounds))
	maps.Copy(sounds, m.sounds)
	m.mu.RUnlock()

	for _, path := range sounds {
		if err := m.player.Preload(path); err != nil {
			m.logger.Warn("failed to preload sound", "path", path, "error", err)
		}
		m.watcher.Watch(path)
	}

	if err := m.watcher.Start(ctx); err != nil {
		return err
	}

	m.logger.Info("sound manager started", "sounds", len(sounds))
	return nil
}

// Stop shuts down the sound manager.
func (m *Manager) Stop() {
	m.watcher.Stop()
	m.player.Close()
	m.logger.Debug("sound manager stopped")
}

// PlayCue plays the sound configured for the given cue.
func (m *Manager) PlayCue(cue Cue) error {
	m.mu.RLock()
	enabled := m.enabled
	path, ok := m.sounds[cue]
	m.mu.RUnlock()

	if !enabled {
		return nil
	}
	if !ok {
		m.logger.Debug("no sound configured for cue", "cue", cue)
		return nil
	}

	return m.player.Play(path)
}

// PlayFile plays a specific sound file.
func (m *Manager) PlayFile(path string) error {
	m.mu.RLock()
	enabled := m.enabled
	m.mu.RUnlock()

	if !enabled {
		return nil
	}
	return m.player.Play(path)
}

// SetVolume sets the playback volume (0.0 to 1.0).
func (m *Manager) SetVolume(volume float64) {
	m.player.SetVolume(volume)
}

// GetVolume returns the current volume.
func (m *Manager) GetVolume() float64 {
	return m.player.GetVolume()
}

// UpdateConfig applies a new sound configuration and reloads the cues.
// This is called when the config file is hot-reloaded.
func (m *Manager) UpdateConfig(cfg config.SoundSection) {
	m.player.ClearCache()
	m.loadSoundConfig(cfg)

	m.mu.RLock()
	sounds := make(map[Cue]string, len(m.sounds))
	maps.Copy(sounds, m.sounds)
	m.mu.RUnlock()

	for _, path := range sounds {
		if err := m.player.Preload(path); err != nil {
			m.logger.Warn("failed to preload sound on reload", "path", path, "error", err)
		}
		m.watcher.Watch(path)
	}

	m.logger.Debug("sound manager config updated")
}

// expandPath expands ~ to home directory.
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
