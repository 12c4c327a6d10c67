package sink

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"overterm/internal/term"
)

func TestSeverityMapping(t *testing.T) {
	cases := []struct {
		in   slog.Level
		want term.Severity
	}{
		{slog.LevelDebug - 4, term.Trace},
		{slog.LevelDebug, term.Debug},
		{slog.LevelInfo, term.Info},
		{slog.LevelInfo + 1, term.Info},
		{slog.LevelWarn, term.Warn},
		{slog.LevelError, term.Error},
		{slog.LevelError + 4, term.Critical},
	}
	for _, c := range cases {
		if got := Severity(c.in); got != c.want {
			t.Fatalf("Severity(%v) = %v, want %v", c.in, got, c.want)
		}
	}
	for s := term.Trace; s <= term.Critical; s++ {
		if got := Severity(Level(s)); got != s {
			t.Fatalf("Level/Severity round trip of %v gave %v", s, got)
		}
	}
}

func TestHandler_DeliversMessages(t *testing.T) {
	var got []term.Message
	h := New(func(m term.Message) { got = append(got, m) }, slog.LevelInfo)
	log := slog.New(h).With("component", "test")

	log.Debug("dropped")
	log.Info("hello", "n", 3)
	log.Error("broken")

	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d: %+v", len(got), got)
	}
	if got[0].Severity != term.Info || !strings.Contains(got[0].Text, "hello") {
		t.Fatalf("unexpected first message %+v", got[0])
	}
	if !strings.Contains(got[0].Text, "n=3") || !strings.Contains(got[0].Text, "component=test") {
		t.Fatalf("attributes missing from %q", got[0].Text)
	}
	if got[1].Severity != term.Error {
		t.Fatalf("unexpected second message %+v", got[1])
	}
	for _, m := range got {
		if m.IsTermMessage {
			t.Fatalf("host log records are not terminal messages")
		}
		if m.ColorEnd <= 0 || m.ColorEnd > len(m.Text) || strings.HasSuffix(m.Text, "\n") {
			t.Fatalf("bad span or trailing newline in %+v", m)
		}
	}
}

func TestHandler_TraceRecords(t *testing.T) {
	var got []term.Message
	log := slog.New(New(func(m term.Message) { got = append(got, m) }, Level(term.Trace)))
	log.Log(context.Background(), Level(term.Trace), "tracemsg")
	log.Log(context.Background(), Level(term.Critical), "critmsg")

	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %+v", got)
	}
	if m := got[0]; m.Severity != term.Trace || !strings.HasPrefix(m.Text, "TRAC") || !strings.Contains(m.Text, "tracemsg") {
		t.Fatalf("unexpected trace message %+v", m)
	}
	if m := got[0]; m.ColorEnd != len("TRAC") {
		t.Fatalf("level label span = %d", m.ColorEnd)
	}
	if m := got[1]; m.Severity != term.Critical || !strings.Contains(m.Text, "critmsg") {
		t.Fatalf("unexpected critical message %+v", m)
	}
}

func TestHandler_FeedsTerminal(t *testing.T) {
	tm := term.New(term.Options{Helper: nopHelper{}})
	log := slog.New(New(tm.AddMessage, slog.LevelDebug))
	log.Warn("disk almost full")

	ms := tm.Messages()
	if len(ms) != 1 || ms[0].Severity != term.Warn {
		t.Fatalf("unexpected scrollback %+v", ms)
	}
	tm.SetLogLevel(term.Error)
	if len(tm.VisibleMessages()) != 0 {
		t.Fatalf("warning should be hidden at error level")
	}
}

type nopHelper struct{}

func (nopHelper) FindCommandsByPrefix(string) []*term.Command { return nil }
func (nopHelper) ListCommands() []*term.Command               { return nil }
func (nopHelper) Format(text string, kind term.MessageKind) (term.Message, bool) {
	return term.Message{Text: text}, true
}
