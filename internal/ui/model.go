package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"overterm/internal/commands"
	"overterm/internal/config"
	"overterm/internal/term"
)

// Options configures the host program.
type Options struct {
	Config config.Config
	// ConfigPath is reloaded by the reload_config command and, with Watch,
	// whenever the file changes.
	ConfigPath string
	Watch      bool
	// Logs is drained into the terminal scrollback. May be nil.
	Logs  LogQueue
	Zones *zone.Manager
	// Commands are registered next to the built-in set.
	Commands []term.Command
	// Hidden starts with the overlay closed.
	Hidden bool
}

// hostKeys are read before the terminal sees a key. Open applies while the
// overlay is hidden; once it has focus only Close does, so a backtick is
// plain input.
type hostKeys struct {
	Open  key.Binding
	Close key.Binding
	Quit  key.Binding
	Leave key.Binding
}

func (k hostKeys) ShortHelp() []key.Binding { return []key.Binding{k.Open, k.Leave} }
func (k hostKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Open, k.Close, k.Quit, k.Leave}}
}

var defaultHostKeys = hostKeys{
	Open:  key.NewBinding(key.WithKeys("`", "f1"), key.WithHelp("`", "terminal")),
	Close: key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "hide")),
	Quit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Leave: key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}

// host is shared by every copy of the model; commands registered by the
// host close over it.
type host struct {
	cfgPath string
	panels  []term.Panel
	shared  *commands.Shared
	watcher *config.Watcher
}

// Model for TUI
type model struct {
	term  *term.Terminal
	keys  term.KeyMap
	host  hostKeys
	help  help.Model
	zones *zone.Manager
	logs  LogQueue
	h     *host
	watch bool

	width   int
	height  int
	visible bool
	frame   string

	quitting bool
}

func newModel(opts Options) (model, error) {
	h := &host{cfgPath: opts.ConfigPath, shared: &commands.Shared{}}
	extra := append([]term.Command{commands.Log(), h.reloadCommand()}, opts.Commands...)
	reg, err := commands.NewDefault(extra...)
	if err != nil {
		return model{}, err
	}

	m := model{
		keys:  term.DefaultKeyMap,
		host:  defaultHostKeys,
		help:  help.New(),
		zones: opts.Zones,
		logs:  opts.Logs,
		h:     h,
		watch: opts.Watch,
	}
	m.term = term.New(opts.Config.Options(term.Options{
		Name:   "overterm",
		Helper: reg,
		Value:  h.shared,
		KeyMap: &m.keys,
		Zones:  opts.Zones,
	}))
	m.term.SetTheme(term.ThemeVitesse)
	if err := h.apply(m.term, opts.Config); err != nil {
		return model{}, err
	}
	m.setVisible(!opts.Hidden)
	return m, nil
}

// New returns the host program model.
func New(opts Options) (tea.Model, error) {
	m, err := newModel(opts)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitLogCmd(m.logs)}
	if m.watch && m.h.cfgPath != "" {
		cmds = append(cmds, startWatchCmd(m.h.cfgPath))
	}
	return tea.Batch(cmds...)
}

func (m *model) setVisible(on bool) {
	m.visible = on
	if on {
		m.term.Focus()
	} else {
		m.term.Blur()
	}
}
