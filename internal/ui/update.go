package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"overterm/internal/term"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	case logMsg:
		m.term.AddMessage(term.Message(msg))
		cmd = waitLogCmd(m.logs)
	case watchStartedMsg:
		m.h.watcher = msg.w
		return m, watchSubscribeCmd(msg.w)
	case configChangedMsg:
		m.h.reload(m.term)
		cmd = watchSubscribeCmd(m.h.watcher)
	case tea.MouseMsg:
		if m.visible {
			m.term.HandleMouse(msg)
		}
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.host.Quit):
			return m.quit()
		case m.visible && key.Matches(msg, m.host.Close):
			m.setVisible(false)
		case m.visible:
			m.term.HandleKey(msg)
		case key.Matches(msg, m.host.Open):
			m.setVisible(true)
		case key.Matches(msg, m.host.Leave):
			return m.quit()
		}
	}
	if m.h.shared.ShouldClose {
		return m.quit()
	}
	m.redraw()
	return m, cmd
}

// redraw runs one terminal frame. The frame is cached for View, which must
// not mutate the terminal.
func (m *model) redraw() {
	if !m.visible || m.width <= 0 || m.height <= 1 {
		return
	}
	f := term.Frame{Width: m.width, Height: m.height - 1, Panels: m.h.panels}
	if !m.term.Show(&f) {
		m.setVisible(false)
		return
	}
	m.frame = f.String()
}

func (m model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.h.watcher != nil {
		_ = m.h.watcher.Close()
		m.h.watcher = nil
	}
	return m, tea.Quit
}
