package commands

import (
	"strings"
	"testing"

	"overterm/internal/term"
)

func nop(*term.Arguments) {}

func names(cmds []*term.Command) []string {
	out := make([]string, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, c.Name)
	}
	return out
}

func TestRegistry_SortedAndPrefix(t *testing.T) {
	r, err := NewRegistry(
		term.Command{Name: "Zeta", Call: nop},
		term.Command{Name: "alpha", Call: nop},
		term.Command{Name: "Alphabet", Call: nop},
		term.Command{Name: "beta", Call: nop},
	)
	if err != nil {
		t.Fatalf("NewRegistry error: %v", err)
	}
	if got := strings.Join(names(r.ListCommands()), ","); got != "alpha,Alphabet,beta,Zeta" {
		t.Fatalf("unexpected order %s", got)
	}
	if got := strings.Join(names(r.FindCommandsByPrefix("ALP")), ","); got != "alpha,Alphabet" {
		t.Fatalf("prefix ALP gave %s", got)
	}
	if got := r.FindCommandsByPrefix("q"); got != nil {
		t.Fatalf("expected no match, got %v", names(got))
	}
	if got := len(r.FindCommandsByPrefix("")); got != 4 {
		t.Fatalf("empty prefix matched %d", got)
	}
}

func TestRegistry_Rejects(t *testing.T) {
	cases := []struct {
		cmd  term.Command
		frag string
	}{
		{term.Command{Name: " ", Call: nop}, "empty"},
		{term.Command{Name: "two words", Call: nop}, "invalid"},
		{term.Command{Name: `q"uote`, Call: nop}, "invalid"},
		{term.Command{Name: "nohandler"}, "no handler"},
		{term.Command{Name: "ECHO", Call: nop}, "duplicate"},
	}
	for _, c := range cases {
		r, _ := NewRegistry(term.Command{Name: "echo", Call: nop})
		err := r.Add(c.cmd)
		if err == nil || !strings.Contains(err.Error(), c.frag) {
			t.Fatalf("Add(%q) err = %v, want %q", c.cmd.Name, err, c.frag)
		}
	}
}

func TestRegistry_Format(t *testing.T) {
	r, _ := NewRegistry()
	m, ok := r.Format("boom", term.KindError)
	if !ok || m.Severity != term.Error || !m.IsTermMessage || m.ColorEnd != 4 || m.Kind != term.KindError {
		t.Fatalf("unexpected error message %+v", m)
	}
	m, _ = r.Format("ls", term.KindUserInput)
	if m.Severity != term.Info || m.Kind != term.KindUserInput {
		t.Fatalf("unexpected input message %+v", m)
	}
}
