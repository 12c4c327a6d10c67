package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"

	"overterm/internal/config"
	"overterm/internal/term"
	tu "overterm/internal/testutil"
)

func start(t *testing.T, opts Options) model {
	t.Helper()
	m, err := newModel(opts)
	if err != nil {
		t.Fatalf("newModel error: %v", err)
	}
	return step(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
}

func step(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm
}

func typeLine(t *testing.T, m model, line string) model {
	t.Helper()
	for _, r := range line {
		if r == ' ' {
			m = step(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		m = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func hasText(m model, s string) bool {
	for _, msg := range m.term.Messages() {
		if strings.Contains(msg.Text, s) {
			return true
		}
	}
	return false
}

func TestModel_RunsCommands(t *testing.T) {
	m := start(t, Options{})
	m = typeLine(t, m, "echo hello there")
	if !hasText(m, "hello there") {
		t.Fatalf("echo output missing: %v", m.term.Messages())
	}
	v := m.View()
	if !strings.Contains(v, "overterm") || !strings.Contains(v, "hello there") {
		t.Fatalf("view lacks terminal content:\n%s", v)
	}
	if got := len(strings.Split(v, "\n")); got != 24 {
		t.Fatalf("view has %d lines, want 24", got)
	}
}

func TestModel_QuitCommand(t *testing.T) {
	m := start(t, Options{})
	for _, r := range "quit" {
		m = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !next.(model).quitting || cmd == nil {
		t.Fatalf("quit should stop the program")
	}
}

func TestModel_ToggleAndEscape(t *testing.T) {
	m := start(t, Options{Hidden: true})
	if m.visible || m.term.Focused() {
		t.Fatalf("overlay should start hidden")
	}
	m = step(t, m, tea.KeyMsg{Type: tea.KeyF1})
	if !m.visible || !m.term.Focused() {
		t.Fatalf("F1 should open the overlay")
	}
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.visible {
		t.Fatalf("double escape should hide the overlay")
	}
	if strings.Contains(m.View(), "[1] >") {
		t.Fatalf("hidden overlay still drawn")
	}
}

func TestModel_BacktickIsInputWhileOpen(t *testing.T) {
	m := start(t, Options{Hidden: true})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'`'}})
	if !m.visible {
		t.Fatalf("backtick should open the overlay")
	}
	m = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'`'}})
	if !m.visible {
		t.Fatalf("backtick closed the focused overlay")
	}
	if in, _ := m.term.Input(); in != "`" {
		t.Fatalf("input = %q, want a backtick", in)
	}
	m = step(t, m, tea.KeyMsg{Type: tea.KeyF1})
	if m.visible {
		t.Fatalf("F1 should hide the overlay")
	}
}

func TestModel_ExitHidesOverlay(t *testing.T) {
	m := start(t, Options{})
	m = typeLine(t, m, "exit")
	if m.visible || m.quitting {
		t.Fatalf("exit closes the overlay only: visible=%v quitting=%v", m.visible, m.quitting)
	}
}

func TestModel_LogQueue(t *testing.T) {
	q := NewLogQueue(1)
	m := start(t, Options{Logs: q})
	q.Deliver(term.Message{Severity: term.Warn, Text: "from host"})
	q.Deliver(term.Message{Severity: term.Warn, Text: "dropped"})

	msg := waitLogCmd(q)()
	m = step(t, m, msg)
	if !hasText(m, "from host") || hasText(m, "dropped") {
		t.Fatalf("unexpected scrollback %v", m.term.Messages())
	}
}

func TestWatchSubscribe_StopsOnClose(t *testing.T) {
	p := tu.WriteFile(t, t.TempDir(), "config.yaml", "theme: dark cherry\n")
	w, err := config.Watch(p)
	if err != nil {
		t.Fatalf("Watch error: %v", err)
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- watchSubscribeCmd(w)() }()
	if err := w.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	select {
	case msg := <-done:
		if msg != nil {
			t.Fatalf("got %T after Close", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("subscription still blocked after Close")
	}
}

func TestModel_ReloadConfig(t *testing.T) {
	dir := t.TempDir()
	p := tu.WriteFile(t, dir, "config.yaml", "theme: light rainbow\npanels: [clear]\n")
	c, err := config.Load(p)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	m := start(t, Options{Config: c, ConfigPath: p})
	if m.term.Theme().Name != term.ThemeLight.Name || len(m.h.panels) != 1 {
		t.Fatalf("startup config not applied")
	}

	tu.WriteFile(t, dir, "config.yaml", "theme: dark cherry\nautocomplete: up\n")
	m = step(t, m, configChangedMsg{})
	if m.term.Theme().Name != term.ThemeCherry.Name || m.term.AutocompletePos() != term.PositionUp {
		t.Fatalf("reload did not apply")
	}
	if m.h.panels != nil {
		t.Fatalf("panels should return to the default, got %v", m.h.panels)
	}

	tu.WriteFile(t, dir, "config.yaml", "theme: nope\n")
	m = typeLine(t, m, "reload_config")
	if !hasText(m, `unknown theme "nope"`) {
		t.Fatalf("reload error not reported: %v", m.term.Messages())
	}
}

func TestModel_BadStartupConfig(t *testing.T) {
	if _, err := newModel(Options{Config: config.Config{MinLevel: "loud"}}); err == nil {
		t.Fatalf("expected config error")
	}
}

func TestOverlay(t *testing.T) {
	back := []string{"abcdefghij", "", "klmnopqrst"}
	got := overlay([]string{"XYZ", "12"}, back, 10)
	if got[0] != "XYZdefghij" || xansi.StringWidth(got[1]) != 10 || got[2] != back[2] {
		t.Fatalf("unexpected overlay %q", got)
	}
}
