package tui

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/scrim/config"
	"github.com/jmylchreest/scrim/container"
	"github.com/jmylchreest/scrim/sound"
	"github.com/jmylchreest/scrim/style"
)

// RunOptions configures the demo program.
type RunOptions struct {
	// ConfigPath overrides the default config file location.
	ConfigPath string
	Logger     *slog.Logger
}

// Run wires the engine to a BubbleTea program and blocks until it exits.
// The config file and the active theme hot-reload while the demo runs.
func Run(opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	themes := style.NewLoader(logger)
	if err := themes.LoadTheme(cfg.Theme.Name); err != nil {
		logger.Warn("failed to load theme, using default", "theme", cfg.Theme.Name, "error", err)
	}

	c := container.NewContainer(cfg.ContainerConfig(), cfg.InputProfile(), logger)
	c.Start()
	defer c.Stop()

	sounds := sound.NewManager(cfg.Sound, logger)
	if err := sounds.Start(context.Background()); err != nil {
		logger.Warn("failed to start sound manager", "error", err)
	}
	defer sounds.Stop()

	m := New(Options{
		Config:    cfg,
		Container: c,
		Sounds:    sounds,
		Themes:    themes,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath, _ = config.ConfigPath()
	}
	if configPath != "" {
		watcher, err := config.NewWatcher(configPath)
		if err != nil {
			logger.Debug("config watcher unavailable", "error", err)
		} else {
			watcher.SetReloadCallback(func(f *config.File) {
				p.Send(configReloadedMsg{file: f})
			})
			watcher.SetErrorCallback(func(err error) {
				logger.Warn("config reload failed", "error", err)
			})
			if err := watcher.Start(); err != nil {
				logger.Debug("failed to start config watcher", "error", err)
			} else {
				defer watcher.Stop()
			}
		}
	}

	themes.SetOnChange(func(t *style.Theme) {
		p.Send(themeChangedMsg{theme: t})
	})
	if err := themes.StartHotReload(); err != nil {
		logger.Debug("theme hot reload unavailable", "error", err)
	}
	defer themes.StopHotReload()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}
