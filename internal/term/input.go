package term

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// HandleKey applies one key press to whichever field has focus.
func (t *Terminal) HandleKey(msg tea.KeyMsg) {
	switch t.focus {
	case focusNone:
		return
	case focusFilter:
		t.handleFilterKey(msg)
		return
	}

	switch {
	case key.Matches(msg, t.keys.Submit):
		t.submit()
	case key.Matches(msg, t.keys.Complete):
		t.complete()
	case key.Matches(msg, t.keys.Escape):
		t.escape()
	case key.Matches(msg, t.keys.HistoryPrev):
		t.historyPrev()
	case key.Matches(msg, t.keys.HistoryNext):
		t.historyNext()

	case key.Matches(msg, t.keys.LevelUp):
		t.SetLogLevel(t.level + 1)
	case key.Matches(msg, t.keys.LevelDown):
		if t.level > t.lowestLevel {
			t.SetLogLevel(t.level - 1)
		}
	case key.Matches(msg, t.keys.ClearScreen):
		t.Clear()
	case key.Matches(msg, t.keys.ScrollUp):
		t.scroll(-t.pageSize())
	case key.Matches(msg, t.keys.ScrollDown):
		t.scroll(t.pageSize())
	case key.Matches(msg, t.keys.ToggleAutoscroll):
		t.SetAutoscroll(!t.autoscroll)
	case key.Matches(msg, t.keys.ToggleAutowrap):
		t.SetAutowrap(!t.autowrap)
	case key.Matches(msg, t.keys.FocusFilter):
		t.focus = focusFilter

	case key.Matches(msg, t.keys.WordForward):
		t.moveCursor(t.wordEnd(t.cursor))
	case key.Matches(msg, t.keys.WordBackward):
		t.moveCursor(t.wordStart(t.cursor))
	case key.Matches(msg, t.keys.CharacterForward):
		if t.cursor < len(t.input) {
			_, n := utf8.DecodeRuneInString(t.input[t.cursor:])
			t.moveCursor(t.cursor + n)
		}
	case key.Matches(msg, t.keys.CharacterBackward):
		if t.cursor > 0 {
			_, n := utf8.DecodeLastRuneInString(t.input[:t.cursor])
			t.moveCursor(t.cursor - n)
		}
	case key.Matches(msg, t.keys.LineStart):
		t.moveCursor(0)
	case key.Matches(msg, t.keys.LineEnd):
		t.moveCursor(len(t.input))

	case key.Matches(msg, t.keys.DeleteWordBackward):
		t.deleteRange(t.wordStart(t.cursor), t.cursor)
	case key.Matches(msg, t.keys.DeleteCharacterBackward):
		if t.cursor > 0 {
			_, n := utf8.DecodeLastRuneInString(t.input[:t.cursor])
			t.deleteRange(t.cursor-n, t.cursor)
		}
	case key.Matches(msg, t.keys.DeleteCharacterForward):
		if t.cursor < len(t.input) {
			_, n := utf8.DecodeRuneInString(t.input[t.cursor:])
			t.deleteRange(t.cursor, t.cursor+n)
		}
	case key.Matches(msg, t.keys.DeleteBeforeCursor):
		t.deleteRange(0, t.cursor)
	case key.Matches(msg, t.keys.DeleteAfterCursor):
		t.deleteRange(t.cursor, len(t.input))

	case msg.Type == tea.KeySpace:
		t.insert(" ")
	case msg.Type == tea.KeyRunes && !msg.Alt:
		t.insert(sanitizeRunes(msg.Runes))
	}
}

func (t *Terminal) handleFilterKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, t.keys.Submit), key.Matches(msg, t.keys.Escape),
		key.Matches(msg, t.keys.Complete), key.Matches(msg, t.keys.FocusFilter):
		t.focus = focusInput
	case key.Matches(msg, t.keys.DeleteCharacterBackward):
		if t.filter != "" {
			_, n := utf8.DecodeLastRuneInString(t.filter)
			t.SetFilter(t.filter[:len(t.filter)-n])
		}
	case key.Matches(msg, t.keys.DeleteBeforeCursor):
		t.SetFilter("")
	case msg.Type == tea.KeySpace:
		t.SetFilter(t.filter + " ")
	case msg.Type == tea.KeyRunes && !msg.Alt:
		t.SetFilter(t.filter + sanitizeRunes(msg.Runes))
	}
}

// sanitizeRunes drops control characters, which also flattens pasted
// multi-line text onto the single input line.
func sanitizeRunes(rs []rune) string {
	var b strings.Builder
	for _, r := range rs {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			b.WriteByte(' ')
		case r < 0x20 || r == 0x7f:
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (t *Terminal) insert(s string) {
	if s == "" {
		return
	}
	if t.charLimit > 0 {
		room := t.charLimit - utf8.RuneCountInString(t.input)
		if room <= 0 {
			return
		}
		if utf8.RuneCountInString(s) > room {
			cut := 0
			for i := 0; i < room; i++ {
				_, n := utf8.DecodeRuneInString(s[cut:])
				cut += n
			}
			s = s[:cut]
		}
	}
	t.input = t.input[:t.cursor] + s + t.input[t.cursor:]
	t.cursor += len(s)
	t.afterEdit()
}

func (t *Terminal) deleteRange(from, to int) {
	if from >= to {
		return
	}
	t.input = t.input[:from] + t.input[to:]
	t.cursor = from
	t.afterEdit()
}

func (t *Terminal) moveCursor(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(t.input) {
		pos = len(t.input)
	}
	t.cursor = pos
	t.updateCandidates()
}

// wordStart finds the start of the word before pos, skipping delimiters.
func (t *Terminal) wordStart(pos int) int {
	i := pos
	for i > 0 {
		_, n := utf8.DecodeLastRuneInString(t.input[:i])
		if t.isSpace(t.input[i-n:]) == 0 {
			break
		}
		i -= n
	}
	for i > 0 {
		_, n := utf8.DecodeLastRuneInString(t.input[:i])
		if t.isSpace(t.input[i-n:]) > 0 {
			break
		}
		i -= n
	}
	return i
}

func (t *Terminal) wordEnd(pos int) int {
	i := pos
	for i < len(t.input) {
		if n := t.isSpace(t.input[i:]); n > 0 {
			i += n
			continue
		}
		break
	}
	for i < len(t.input) {
		if t.isSpace(t.input[i:]) > 0 {
			break
		}
		_, n := utf8.DecodeRuneInString(t.input[i:])
		i += n
	}
	return i
}

// afterEdit runs after every change to the input line. A change made by the
// user ends history browsing; the terminal's own changes set ignoreNextEdit.
func (t *Terminal) afterEdit() {
	if t.ignoreNextEdit {
		t.ignoreNextEdit = false
	} else {
		t.histSel = -1
	}
	t.updateCandidates()
}

// replaceInput is an edit made by the terminal itself.
func (t *Terminal) replaceInput(s string, cursor int) {
	t.input = s
	t.cursor = cursor
	t.ignoreNextEdit = true
	t.afterEdit()
}

func (t *Terminal) escape() {
	if t.input == "" && t.prevInputLen == 0 && t.histSel < 0 {
		t.shouldShowNextFrame = false
		return
	}
	t.histSel = -1
	t.input = ""
	t.cursor = 0
	t.updateCandidates()
}

func (t *Terminal) historyPrev() {
	if len(t.history) == 0 {
		return
	}
	from := t.histSel - 1
	if t.histSel < 0 {
		t.histBackup = t.input
		t.histPrefix = t.input[:t.cursor]
		from = len(t.history) - 1
	}
	for i := from; i >= 0; i-- {
		if strings.HasPrefix(t.history[i], t.histPrefix) {
			t.histSel = i
			t.replaceInput(t.history[i], len(t.history[i]))
			return
		}
	}
}

func (t *Terminal) historyNext() {
	if t.histSel < 0 {
		return
	}
	for i := t.histSel + 1; i < len(t.history); i++ {
		if strings.HasPrefix(t.history[i], t.histPrefix) {
			t.histSel = i
			t.replaceInput(t.history[i], len(t.history[i]))
			return
		}
	}
	t.histSel = -1
	t.replaceInput(t.histBackup, len(t.histBackup))
}

// submit runs the input line.
func (t *Terminal) submit() {
	raw := t.input
	t.histSel = -1
	t.replaceInput("", 0)
	if strings.TrimSpace(raw) == "" {
		return
	}

	line, modified, err := ResolveHistoryReferences(raw, t.history, t.isSpace)
	if err != nil {
		t.tryLog(raw, KindUserInput)
		t.tryLog(err.Error(), KindError)
		return
	}
	args, ok := SplitBySpace(line, false, t.isSpace)
	if !ok {
		t.tryLog(raw, KindUserInput)
		t.tryLog("unmatched quote", KindError)
		return
	}
	args = trimTrailingEmpty(args, line, t.isSpace)

	t.tryLog(raw, KindUserInput)
	if modified {
		t.tryLog(line, KindHistoryCompletion)
	}
	if len(args) == 0 {
		return
	}

	cmd := t.lookup(args[0])
	if cmd == nil {
		t.tryLog(args[0]+": command not found", KindError)
		t.history = append(t.history, line)
		return
	}
	t.run(cmd, args)
	t.history = append(t.history, line)
}

// lookup returns the command a name dispatches to: the exact match when
// there is one, otherwise the first prefix match.
func (t *Terminal) lookup(name string) *Command {
	if name == "" {
		return nil
	}
	var first *Command
	for _, c := range t.helper.FindCommandsByPrefix(name) {
		if c == nil {
			t.internalError("command registry returned a nil command for %q", name)
			continue
		}
		if strings.EqualFold(c.Name, name) {
			return c
		}
		if first == nil {
			first = c
		}
	}
	return first
}

func (t *Terminal) run(cmd *Command, args []string) {
	if cmd.Call == nil {
		t.internalError("command %s has no implementation", cmd.Name)
		return
	}
	t.running = true
	defer func() {
		t.running = false
		if r := recover(); r != nil {
			t.internalError("command %s panicked: %v", cmd.Name, r)
		}
	}()
	cmd.Call(&Arguments{Value: t.value, Term: t, Line: args})
}

// complete handles Tab: it accepts the first candidate, or resolves the
// history reference right before the cursor when there is none.
func (t *Terminal) complete() {
	before := t.input[:t.cursor]
	start := lastArgStart(before, t.isSpace)

	// accepted completions replace the whole argument under the cursor
	end := t.cursor
	for end < len(t.input) && t.isSpace(t.input[end:]) == 0 {
		_, n := utf8.DecodeRuneInString(t.input[end:])
		end += n
	}

	switch {
	case len(t.candidates) > 0:
		t.paste(start, end, t.candidates[0].Name)

	case len(t.completions) > 0:
		t.paste(start, end, quoteIfNeeded(t.completions[0], t.isSpace))

	default:
		ref := before[start:]
		if !IsHistoryRef(ref) {
			return
		}
		escape := !(start == 0 && t.cursor == len(t.input))
		s, err := ResolveHistoryReference(ref, t.history, t.isSpace, escape)
		if err != nil {
			t.tryLog(err.Error(), KindError)
			return
		}
		in := t.input[:start] + s + t.input[t.cursor:]
		t.input, t.cursor = in, start+len(s)
		t.afterEdit()
	}
}

// paste replaces input[from:to] with s; a space follows when the cursor
// was at the end of the line so the next argument can be typed right away.
func (t *Terminal) paste(from, to int, s string) {
	atEnd := to == len(t.input)
	if atEnd {
		s += " "
	}
	t.input = t.input[:from] + s + t.input[to:]
	t.cursor = from + len(s)
	t.afterEdit()
}

// lastArgStart returns the byte offset where the last argument of s starts,
// or len(s) when s ends with a delimiter.
func lastArgStart(s string, isSpace SpaceFunc) int {
	start, inArg, inQuote, escaped := 0, false, false, false
	for i := 0; i < len(s); {
		if escaped {
			escaped = false
			i++
			continue
		}
		if !inQuote {
			if n := isSpace(s[i:]); n > 0 {
				inArg = false
				i += n
				continue
			}
		}
		if !inArg {
			inArg, start = true, i
		}
		switch s[i] {
		case '\\':
			escaped = true
		case '"':
			inQuote = !inQuote
		}
		i++
	}
	if !inArg {
		return len(s)
	}
	return start
}

func (t *Terminal) scroll(lines int) {
	off := t.viewport.YOffset + lines
	if off < 0 {
		off = 0
	}
	t.viewport.SetYOffset(off)
}

func (t *Terminal) pageSize() int {
	if h := t.viewport.Height / 2; h > 0 {
		return h
	}
	return 1
}
