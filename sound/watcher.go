package sound

import (
	"context"
	"log/slog"
	"maps"
	"os"
	"sync"
	"time"
)

// defaultPollInterval is how often watched cue files are checked for
// modification. Cue files can live anywhere on disk, so the watcher polls
// mtimes instead of watching directories.
const defaultPollInterval = 2 * time.Second

// Watcher polls cue files and reports modifications so edited sounds take
// effect without a restart.
type Watcher struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	paths    map[string]time.Time // last seen mtime per watched file
	interval time.Duration
	onChange func(path string)

	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewWatcher creates a cue file watcher.
func NewWatcher(logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		logger:   logger,
		paths:    make(map[string]time.Time),
		interval: defaultPollInterval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// SetPollInterval overrides the polling interval.
func (w *Watcher) SetPollInterval(interval time.Duration) {
	if interval <= 0 {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.interval = interval
}

// SetOnChange sets the callback invoked with the path of each modified
// file.
func (w *Watcher) SetOnChange(fn func(path string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Watch adds path to the watch set. A path that does not exist yet is
// fine; the callback fires once the file appears.
func (w *Watcher) Watch(path string) {
	if path == "" {
		return
	}

	var mod time.Time
	if info, err := os.Stat(path); err == nil {
		mod = info.ModTime()
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.paths[path] = mod
}

// Unwatch removes path from the watch set.
func (w *Watcher) Unwatch(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.paths, path)
}

// Start launches the poll loop. Starting a running watcher is a no-op.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	interval := w.interval
	w.mu.Unlock()

	go w.poll(ctx, interval)

	w.logger.Debug("sound watcher started", "interval", interval)
	return nil
}

// Stop terminates the poll loop and waits for it to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	w.mu.Unlock()

	<-w.doneCh
	w.logger.Debug("sound watcher stopped")
}

// IsRunning reports whether the poll loop is live.
func (w *Watcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

func (w *Watcher) poll(ctx context.Context, interval time.Duration) {
	defer close(w.doneCh)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

// sweep stats every watched path and fires onChange for fresh mtimes.
func (w *Watcher) sweep() {
	w.mu.RLock()
	paths := make(map[string]time.Time, len(w.paths))
	maps.Copy(paths, w.paths)
	onChange := w.onChange
	w.mu.RUnlock()

	for path, seen := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		mod := info.ModTime()
		if !mod.After(seen) {
			continue
		}

		w.logger.Debug("sound file changed", "path", path)

		w.mu.Lock()
		w.paths[path] = mod
		w.mu.Unlock()

		if onChange != nil {
			onChange(path)
		}
	}
}
