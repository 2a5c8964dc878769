package config

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the config file and reloads it on change. A reload that
// fails to parse or validate keeps the previous configuration and reports
// through the error callback.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	current  *File
	onReload func(*File)
	onError  func(error)
	done     chan struct{}
	mu       sync.Mutex
	running  bool
}

// NewWatcher creates a watcher for the config file at path. If path is
// empty, uses the default config path. The initial configuration is loaded
// immediately.
func NewWatcher(path string) (*Watcher, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	initial, err := Load(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher: watcher,
		path:    path,
		current: initial,
		done:    make(chan struct{}),
	}, nil
}

// SetReloadCallback sets the function called after a successful reload.
func (w *Watcher) SetReloadCallback(fn func(*File)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = fn
}

// SetErrorCallback sets the function called when a reload fails.
func (w *Watcher) SetErrorCallback(fn func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = fn
}

// Current returns the most recently loaded valid configuration.
func (w *Watcher) Current() *File {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Start begins watching the config file for changes.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	// Watch the directory containing the file (more reliable for writes)
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return err
	}

	go w.watch()
	return nil
}

// watch is the main watch loop.
func (w *Watcher) watch() {
	filename := filepath.Base(w.path)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Only care about our file
			if filepath.Base(event.Name) != filename {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				slog.Debug("config file changed, reloading", "file", w.path)
				w.reload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("config watcher error", "error", err)

		case <-w.done:
			return
		}
	}
}

// reload re-reads the config file. The previous configuration stays in
// effect when the new one is invalid.
func (w *Watcher) reload() {
	f, err := Load(w.path)

	w.mu.Lock()
	onReload := w.onReload
	onError := w.onError
	if err == nil {
		w.current = f
	}
	w.mu.Unlock()

	if err != nil {
		slog.Warn("config reload failed, keeping previous", "error", err)
		if onError != nil {
			onError(err)
		}
		return
	}

	if onReload != nil {
		onReload(f)
	}
}

// Stop stops the config watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	w.running = false
	close(w.done)
	return w.watcher.Close()
}
