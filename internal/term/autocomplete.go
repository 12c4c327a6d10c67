package term

import (
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	candidateSeparator = " | "
	candidateEllipsis  = "..."
)

// Candidates returns what the completion overlay offers for the text before
// the cursor: command names while the first argument is typed, the
// command's own completions afterwards.
func (t *Terminal) Candidates() []string {
	if len(t.candidates) > 0 {
		out := make([]string, 0, len(t.candidates))
		for _, c := range t.candidates {
			out = append(out, c.Name)
		}
		return out
	}
	return t.completions
}

func (t *Terminal) updateCandidates() {
	t.candidates, t.completions = nil, nil
	if t.autocompletePos == PositionNowhere {
		return
	}
	args, _ := SplitBySpace(t.input[:t.cursor], true, t.isSpace)
	switch len(args) {
	case 0:
		return
	case 1:
		if args[0] == "" {
			return
		}
		for _, c := range t.helper.FindCommandsByPrefix(args[0]) {
			if c != nil {
				t.candidates = append(t.candidates, c)
			}
		}
		return
	}
	cmd := t.lookup(args[0])
	if cmd == nil || cmd.Complete == nil {
		return
	}
	t.completions = t.callCompleter(cmd, args)
}

func (t *Terminal) callCompleter(cmd *Command, args []string) (out []string) {
	defer func() {
		if r := recover(); r != nil {
			t.internalError("completer of %s panicked: %v", cmd.Name, r)
			out = nil
		}
	}()
	return cmd.Complete(&Arguments{Value: t.value, Term: t, Line: args})
}

// LayoutCandidates picks how many candidates fit on one line of width
// cells when joined by sep. more reports that some were left out, in which
// case the caller draws sep and ellipsis after the returned ones; room for
// them is reserved. A first candidate that cannot fit is truncated.
func LayoutCandidates(cands []string, width int, sep, ellipsis string, widthOf func(string) int) (shown []string, more bool) {
	if widthOf == nil {
		widthOf = DefaultMetrics.DisplayWidth
	}
	sepW, ellW := widthOf(sep), widthOf(ellipsis)
	total := 0
	for i, c := range cands {
		if i > 0 {
			total += sepW
		}
		total += widthOf(c)
	}
	if total <= width {
		return cands, false
	}

	used := 0
	for i, c := range cands {
		add := widthOf(c)
		if i > 0 {
			add += sepW
		}
		reserve := 0
		if i < len(cands)-1 {
			reserve = sepW + ellW
		}
		if used+add+reserve <= width {
			shown = append(shown, c)
			used += add
			continue
		}
		if i > 0 {
			return shown, true
		}
		avail := width - reserve
		if avail <= ellW {
			if len(cands) == 1 && width > ellW {
				return []string{xansi.Truncate(c, width, ellipsis)}, false
			}
			return nil, true
		}
		return []string{xansi.Truncate(c, avail, ellipsis)}, len(cands) > 1
	}
	return shown, false
}
