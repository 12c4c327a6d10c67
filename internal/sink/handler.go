// Package sink routes log/slog records into a terminal's scrollback.
package sink

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	clog "github.com/charmbracelet/log"

	"overterm/internal/term"
)

// Deliver receives every formatted record. It may be called from any
// goroutine; hosts that own the terminal on one goroutine should forward
// the message there (bubbletea: Program.Send).
type Deliver func(term.Message)

type shared struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	deliver Deliver
}

// Handler is a slog.Handler whose records become term.Message values.
// Formatting is done by a charmbracelet/log logger writing into a buffer.
type Handler struct {
	s     *shared
	inner slog.Handler
	level slog.Leveler
}

// New returns a handler passing records at or above level to deliver. A nil
// level means slog.LevelInfo.
func New(deliver Deliver, level slog.Leveler) *Handler {
	if level == nil {
		level = slog.LevelInfo
	}
	s := &shared{deliver: deliver}
	// the inner logger formats whatever Enabled lets through
	inner := clog.NewWithOptions(&s.buf, clog.Options{
		Level:     clog.Level(math.MinInt32),
		Formatter: clog.TextFormatter,
	})
	inner.SetStyles(styles())
	return &Handler{s: s, inner: inner, level: level}
}

// styles adds a TRAC label below debug to the charmbracelet/log defaults.
func styles() *clog.Styles {
	st := clog.DefaultStyles()
	st.Levels[clog.Level(Level(term.Trace))] = lipgloss.NewStyle().
		SetString("TRAC").
		Bold(true).
		MaxWidth(4).
		Foreground(lipgloss.Color("244"))
	return st
}

func (h *Handler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	h.s.mu.Lock()
	h.s.buf.Reset()
	err := h.inner.Handle(ctx, r)
	text := strings.TrimRight(h.s.buf.String(), "\n")
	h.s.mu.Unlock()
	if err != nil || text == "" {
		return err
	}

	m := term.Message{Severity: Severity(r.Level), Text: text}
	if i := strings.IndexByte(text, ' '); i > 0 {
		m.ColorEnd = i
	} else {
		m.ColorEnd = len(text)
	}
	if h.s.deliver != nil {
		h.s.deliver(m)
	}
	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{s: h.s, inner: h.inner.WithAttrs(attrs), level: h.level}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{s: h.s, inner: h.inner.WithGroup(name), level: h.level}
}

// Severity maps a slog level onto the terminal's severities. Levels below
// debug are trace; levels from error+4 up are critical.
func Severity(l slog.Level) term.Severity {
	switch {
	case l < slog.LevelDebug:
		return term.Trace
	case l < slog.LevelInfo:
		return term.Debug
	case l < slog.LevelWarn:
		return term.Info
	case l < slog.LevelError:
		return term.Warn
	case l < slog.LevelError+4:
		return term.Error
	}
	return term.Critical
}

// Level maps a terminal severity back to slog, for filtering records with
// the same threshold the terminal shows.
func Level(s term.Severity) slog.Level {
	switch s {
	case term.Trace:
		return slog.LevelDebug - 4
	case term.Debug:
		return slog.LevelDebug
	case term.Info:
		return slog.LevelInfo
	case term.Warn:
		return slog.LevelWarn
	case term.Error:
		return slog.LevelError
	}
	return slog.LevelError + 4
}
