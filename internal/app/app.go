package app

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"overterm/internal/config"
	"overterm/internal/sink"
	"overterm/internal/term"
	"overterm/internal/ui"
)

// Options selects the config the program starts with.
type Options struct {
	Config     config.Config
	ConfigPath string
	Watch      bool
	Hidden     bool
}

// Start runs the TUI program and returns any error.
func Start(opts Options) error {
	zones := zone.New()
	defer zones.Close()

	// Host logs reach the scrollback through the queue; the terminal's own
	// level filter decides what is shown.
	logs := ui.NewLogQueue(1024)
	prev := slog.Default()
	slog.SetDefault(slog.New(sink.New(logs.Deliver, sink.Level(term.Trace))))
	defer slog.SetDefault(prev)

	m, err := ui.New(ui.Options{
		Config:     opts.Config,
		ConfigPath: opts.ConfigPath,
		Watch:      opts.Watch,
		Logs:       logs,
		Zones:      zones,
		Hidden:     opts.Hidden,
	})
	if err != nil {
		return err
	}
	slog.Info("overterm started", "config", opts.ConfigPath)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		return err
	}
	return nil
}
