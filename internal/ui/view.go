package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m model) View() string {
	if m.quitting {
		return ""
	}
	if m.width <= 0 || m.height <= 0 {
		return "\n"
	}

	rows := backdrop(m.width, m.height-1, "press ` or F1 to open the terminal")
	if m.visible && m.frame != "" {
		rows = overlay(strings.Split(m.frame, "\n"), rows, m.width)
	}
	out := strings.Join(rows, "\n") + "\n" + m.statusBar()
	if m.zones != nil {
		return m.zones.Scan(out)
	}
	return out
}

// overlay draws top over the first rows of back. Backdrop cells to the right
// of a narrower overlay stay visible.
func overlay(top, back []string, width int) []string {
	out := append([]string(nil), back...)
	for i, ln := range top {
		if i >= len(out) {
			break
		}
		w := xansi.StringWidth(ln)
		if w >= width {
			out[i] = xansi.Truncate(ln, width, "")
			continue
		}
		out[i] = ln + xansi.Cut(padRight(out[i], width), w, width)
	}
	return out
}

func padRight(s string, width int) string {
	if w := xansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// statusBar is one line: a name chip and key hints on the left, theme and
// log level on the right.
func (m model) statusBar() string {
	var bindings []key.Binding
	if m.visible {
		bindings = append([]key.Binding{m.host.Close}, m.keys.ShortHelp()...)
	} else {
		bindings = m.host.ShortHelp()
	}
	left := ChipKeyStyle().Render(m.term.Name()) + " " + m.help.ShortHelpView(bindings)

	theme := m.term.Theme().Name
	if theme == "" {
		theme = "custom"
	}
	right := theme + " · " + m.term.LevelName(m.term.LogLevel()) + " "

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	line := left
	if gap > 0 {
		line += strings.Repeat(" ", gap) + right
	}
	return StatusBarBase().Render(xansi.Truncate(line, m.width, ""))
}
