package term

import "strings"

// Severity orders log messages by importance.
type Severity int

const (
	Trace Severity = iota
	Debug
	Info
	Warn
	Error
	Critical
)

// LevelOff is only meaningful as a filter level: it hides every message
// that did not originate from the terminal itself.
const LevelOff = Critical + 1

var severityNames = [...]string{"trace", "debug", "info", "warning", "error", "critical", "none"}

func (s Severity) String() string {
	if s < Trace || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// ParseSeverity accepts the names printed by String plus a few common aliases.
func ParseSeverity(name string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return Trace, true
	case "debug":
		return Debug, true
	case "info":
		return Info, true
	case "warn", "warning":
		return Warn, true
	case "err", "error":
		return Error, true
	case "critical", "fatal":
		return Critical, true
	case "none", "off":
		return LevelOff, true
	}
	return Trace, false
}

// MessageKind tells the Helper what the terminal wants to log when it asks
// for a formatted message, and tells the renderer how to color the span of a
// terminal message.
type MessageKind int

const (
	KindLog MessageKind = iota
	KindUserInput
	KindError
	KindHistoryCompletion
)

// Message is one scrollback entry.
type Message struct {
	Severity Severity
	Text     string

	// Byte offsets into Text; the colored span is [ColorBegin, ColorEnd).
	// An empty span means no highlight.
	ColorBegin int
	ColorEnd   int

	// Terminal messages are never hidden by the severity filter.
	IsTermMessage bool
	Kind          MessageKind
}

// clampSpan enforces ColorBegin <= ColorEnd <= len(Text).
func (m *Message) clampSpan() {
	n := len(m.Text)
	if m.ColorEnd > n {
		m.ColorEnd = n
	}
	if m.ColorEnd < 0 {
		m.ColorEnd = 0
	}
	if m.ColorBegin < 0 {
		m.ColorBegin = 0
	}
	if m.ColorBegin > m.ColorEnd {
		m.ColorBegin = m.ColorEnd
	}
}
