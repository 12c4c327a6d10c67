package term

import (
	"github.com/mattn/go-runewidth"
)

// Arguments is what a command or completer receives.
type Arguments struct {
	// Value is the host-owned value shared with every command.
	Value any
	// Term is the terminal running the command.
	Term *Terminal
	// Line holds the arguments; Line[0] is the command name as typed.
	Line []string
}

// Command describes one command a Helper can offer.
type Command struct {
	Name        string
	Description string
	Call        func(arg *Arguments)
	// Complete returns candidates for the argument being typed, the last
	// element of arg.Line. May be nil.
	Complete func(arg *Arguments) []string
}

// Helper is the command registry capability the terminal depends on.
type Helper interface {
	// FindCommandsByPrefix returns the commands whose name starts with
	// prefix, ignoring case, in a stable order.
	FindCommandsByPrefix(prefix string) []*Command
	// ListCommands returns every command.
	ListCommands() []*Command
	// Format builds the message logged when the terminal echoes user input,
	// reports an error or reports a history completion. Returning false
	// suppresses the message.
	Format(text string, kind MessageKind) (Message, bool)
}

// Metrics customizes delimiter detection and width accounting. A Helper may
// implement it; otherwise DefaultMetrics is used.
type Metrics interface {
	IsSpace(s string) int
	DisplayWidth(s string) int
}

type defaultMetrics struct{}

func (defaultMetrics) IsSpace(s string) int      { return asciiSpace(s) }
func (defaultMetrics) DisplayWidth(s string) int { return runewidth.StringWidth(s) }

// DefaultMetrics splits on ASCII spaces and measures East Asian wide
// characters as two cells.
var DefaultMetrics Metrics = defaultMetrics{}
