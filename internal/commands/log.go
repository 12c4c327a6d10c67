package commands

import (
	"context"
	"log/slog"
	"strings"

	"overterm/internal/sink"
	"overterm/internal/term"
)

// Log returns a command that emits a record through the default slog
// logger, so it reaches the terminal the same way host logs do.
//
//	log <level> <text...>
func Log() term.Command {
	return term.Command{
		Name:        "log",
		Description: "logs text through the application logger",
		Call:        logCmd,
		Complete:    logComplete,
	}
}

func logCmd(arg *term.Arguments) {
	if len(arg.Line) < 3 {
		arg.Term.AddTextErr("usage: log <trace|debug|info|warning|error|critical> <text>")
		return
	}
	sev, ok := term.ParseSeverity(arg.Line[1])
	if !ok || sev == term.LevelOff {
		arg.Term.AddTextErrf("log: unknown level %q", arg.Line[1])
		return
	}
	slog.Log(context.Background(), sink.Level(sev), strings.Join(arg.Line[2:], " "))
}

func logComplete(arg *term.Arguments) []string {
	if len(arg.Line) != 2 {
		return nil
	}
	cur := strings.ToLower(arg.Line[1])
	var out []string
	for s := term.Trace; s <= term.Critical; s++ {
		if strings.HasPrefix(s.String(), cur) {
			out = append(out, s.String())
		}
	}
	return out
}
