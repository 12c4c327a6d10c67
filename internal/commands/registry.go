// Package commands provides the command registry a terminal dispatches to,
// plus the built-in command set.
package commands

import (
	"fmt"
	"sort"
	"strings"

	"overterm/internal/term"
)

// Registry implements term.Helper over a fixed set of commands kept sorted
// by lower-cased name.
type Registry struct {
	cmds []*term.Command
}

// NewRegistry returns a registry holding cmds. It fails on the first
// invalid or duplicate command.
func NewRegistry(cmds ...term.Command) (*Registry, error) {
	r := &Registry{}
	for _, c := range cmds {
		if err := r.Add(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add registers one command. Names are unique regardless of case and may
// not contain spaces.
func (r *Registry) Add(cmd term.Command) error {
	cmd.Name = strings.TrimSpace(cmd.Name)
	if cmd.Name == "" {
		return fmt.Errorf("commands: empty command name")
	}
	if strings.ContainsAny(cmd.Name, " \t\"\\") {
		return fmt.Errorf("commands: invalid command name %q", cmd.Name)
	}
	if cmd.Call == nil {
		return fmt.Errorf("commands: %q has no handler", cmd.Name)
	}
	key := strings.ToLower(cmd.Name)
	i := sort.Search(len(r.cmds), func(i int) bool { return strings.ToLower(r.cmds[i].Name) >= key })
	if i < len(r.cmds) && strings.ToLower(r.cmds[i].Name) == key {
		return fmt.Errorf("commands: duplicate command %q", cmd.Name)
	}
	c := cmd
	r.cmds = append(r.cmds, nil)
	copy(r.cmds[i+1:], r.cmds[i:])
	r.cmds[i] = &c
	return nil
}

// FindCommandsByPrefix returns the commands whose name starts with prefix,
// ignoring case, in name order. An empty prefix matches everything.
func (r *Registry) FindCommandsByPrefix(prefix string) []*term.Command {
	key := strings.ToLower(prefix)
	lo := sort.Search(len(r.cmds), func(i int) bool { return strings.ToLower(r.cmds[i].Name) >= key })
	hi := lo
	for hi < len(r.cmds) && strings.HasPrefix(strings.ToLower(r.cmds[hi].Name), key) {
		hi++
	}
	if lo == hi {
		return nil
	}
	out := make([]*term.Command, hi-lo)
	copy(out, r.cmds[lo:hi])
	return out
}

// ListCommands returns every command in name order.
func (r *Registry) ListCommands() []*term.Command {
	out := make([]*term.Command, len(r.cmds))
	copy(out, r.cmds)
	return out
}

// Format colors the whole text: echoed input and history completions at
// info level, errors at error level.
func (r *Registry) Format(text string, kind term.MessageKind) (term.Message, bool) {
	m := term.Message{
		Severity:      term.Info,
		Text:          text,
		ColorEnd:      len(text),
		IsTermMessage: true,
		Kind:          kind,
	}
	if kind == term.KindError {
		m.Severity = term.Error
	}
	return m, true
}
