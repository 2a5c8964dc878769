package sound

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/scrim/config"
)

func TestValidCues(t *testing.T) {
	cues := ValidCues()
	assert.Contains(t, cues, CuePresent)
	assert.Contains(t, cues, CueDismiss)
}

func TestManager_DisabledPlaysNothing(t *testing.T) {
	m := NewManager(config.SoundSection{Enabled: false, Volume: 80}, nil)

	assert.NoError(t, m.PlayCue(CuePresent))
	assert.NoError(t, m.PlayFile("/does/not/exist.wav"))
}

func TestManager_MissingFilesAreSkipped(t *testing.T) {
	cfg := config.SoundSection{
		Enabled: true,
		Volume:  80,
		Present: "/does/not/exist/present.wav",
		Dismiss: "/does/not/exist/dismiss.wav",
	}
	m := NewManager(cfg, nil)

	// Unconfigured cues resolve to a silent no-op
	assert.NoError(t, m.PlayCue(CuePresent))
	assert.NoError(t, m.PlayCue(CueDismiss))
}

func TestManager_VolumeFollowsConfig(t *testing.T) {
	m := NewManager(config.SoundSection{Enabled: true, Volume: 40}, nil)
	assert.InDelta(t, 0.4, m.GetVolume(), 1e-9)

	m.UpdateConfig(config.SoundSection{Enabled: true, Volume: 100})
	assert.InDelta(t, 1.0, m.GetVolume(), 1e-9)
}

func TestWatcher_TracksPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cue.wav")
	require.NoError(t, os.WriteFile(path, []byte("not really audio"), 0o600))

	w := NewWatcher(nil)
	w.Watch(path)
	w.Watch("") // Ignored

	assert.False(t, w.IsRunning())
	w.Unwatch(path)
}

func TestWatcher_SweepFiresOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cue.wav")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o600))

	w := NewWatcher(nil)
	w.Watch(path)

	var changed []string
	w.SetOnChange(func(p string) { changed = append(changed, p) })

	// Unchanged file: no callback
	w.sweep()
	assert.Empty(t, changed)

	// Bump the mtime well past the recorded one
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))

	w.sweep()
	assert.Equal(t, []string{path}, changed)

	// A second sweep sees the new mtime as current
	w.sweep()
	assert.Len(t, changed, 1)
}
