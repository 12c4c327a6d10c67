package term

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeHelper struct {
	cmds []*Command
}

func (h *fakeHelper) FindCommandsByPrefix(prefix string) []*Command {
	var out []*Command
	for _, c := range h.cmds {
		if strings.HasPrefix(strings.ToLower(c.Name), strings.ToLower(prefix)) {
			out = append(out, c)
		}
	}
	return out
}

func (h *fakeHelper) ListCommands() []*Command { return h.cmds }

func (h *fakeHelper) Format(text string, kind MessageKind) (Message, bool) {
	return Message{Severity: Info, Text: text, ColorEnd: len(text)}, true
}

// newTestTerm builds a terminal with an echo command that logs its
// arguments, plus any extra commands. Commands are kept in name order.
func newTestTerm(t *testing.T, extra ...*Command) *Terminal {
	t.Helper()
	echo := &Command{Name: "echo", Call: func(a *Arguments) {
		a.Term.AddText(strings.Join(a.Line[1:], " "))
	}}
	h := &fakeHelper{cmds: append([]*Command{echo}, extra...)}
	sortCommands(h.cmds)
	return New(Options{Name: "test", Helper: h})
}

func sortCommands(cmds []*Command) {
	for i := 1; i < len(cmds); i++ {
		for j := i; j > 0 && cmds[j].Name < cmds[j-1].Name; j-- {
			cmds[j], cmds[j-1] = cmds[j-1], cmds[j]
		}
	}
}

func typeText(tm *Terminal, s string) {
	for _, r := range s {
		if r == ' ' {
			tm.HandleKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		tm.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func press(tm *Terminal, k tea.KeyType) {
	tm.HandleKey(tea.KeyMsg{Type: k})
}

func run(tm *Terminal, line string) {
	typeText(tm, line)
	press(tm, tea.KeyEnter)
}

func texts(ms []Message) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Text)
	}
	return out
}

func lastText(tm *Terminal) string {
	ms := tm.Messages()
	if len(ms) == 0 {
		return ""
	}
	return ms[len(ms)-1].Text
}

func TestTerminal_SubmitRunsCommand(t *testing.T) {
	tm := newTestTerm(t)
	run(tm, "echo hello world")

	want := []string{"echo hello world", "hello world"}
	if got := texts(tm.Messages()); !reflect.DeepEqual(got, want) {
		t.Fatalf("messages = %q, want %q", got, want)
	}
	if m := tm.Messages()[0]; m.Kind != KindUserInput || !m.IsTermMessage {
		t.Fatalf("echoed input should be a terminal user-input message: %+v", m)
	}
	if got := tm.History(); !reflect.DeepEqual(got, []string{"echo hello world"}) {
		t.Fatalf("history = %q", got)
	}
	if in, cur := tm.Input(); in != "" || cur != 0 {
		t.Fatalf("input not cleared: %q %d", in, cur)
	}
}

func TestTerminal_QuotedEmptyArgument(t *testing.T) {
	var got [][]string
	args := &Command{Name: "args", Call: func(a *Arguments) {
		got = append(got, append([]string(nil), a.Line...))
	}}
	tm := newTestTerm(t, args)
	run(tm, `args ""`)
	run(tm, `args a ""`)
	run(tm, "args a ")
	run(tm, `args "" `)

	want := [][]string{{"args", ""}, {"args", "a", ""}, {"args", "a"}, {"args", ""}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
}

func TestTerminal_PrefixDispatchIgnoresCase(t *testing.T) {
	tm := newTestTerm(t)
	run(tm, "EC hi")
	if got := lastText(tm); got != "hi" {
		t.Fatalf("EC should dispatch to echo, last message %q", got)
	}
	if got := tm.History(); !reflect.DeepEqual(got, []string{"EC hi"}) {
		t.Fatalf("history = %q", got)
	}
}

func TestTerminal_ExactNameWinsOverPrefix(t *testing.T) {
	var called string
	tm := newTestTerm(t,
		&Command{Name: "ec", Call: func(*Arguments) { called = "ec" }},
		&Command{Name: "ecx", Call: func(*Arguments) { called = "ecx" }},
	)
	run(tm, "ec")
	if called != "ec" {
		t.Fatalf("called %q, want ec", called)
	}
}

func TestTerminal_UnknownCommand(t *testing.T) {
	tm := newTestTerm(t)
	run(tm, "nope a b")
	last := tm.Messages()[len(tm.Messages())-1]
	if last.Text != "nope: command not found" || last.Kind != KindError {
		t.Fatalf("unexpected last message %+v", last)
	}
	if got := tm.History(); !reflect.DeepEqual(got, []string{"nope a b"}) {
		t.Fatalf("unknown commands still enter history, got %q", got)
	}
}

func TestTerminal_BlankInputIgnored(t *testing.T) {
	tm := newTestTerm(t)
	run(tm, "   ")
	press(tm, tea.KeyEnter)
	if len(tm.Messages()) != 0 || len(tm.History()) != 0 {
		t.Fatalf("blank input should do nothing: %q %q", texts(tm.Messages()), tm.History())
	}
}

func TestTerminal_ResolutionFailureSkipsHistory(t *testing.T) {
	tm := newTestTerm(t)
	run(tm, "echo !!")
	want := []string{"echo !!", "no such event: !!"}
	if got := texts(tm.Messages()); !reflect.DeepEqual(got, want) {
		t.Fatalf("messages = %q, want %q", got, want)
	}
	if tm.Messages()[1].Kind != KindError {
		t.Fatalf("resolution failure should be an error message")
	}
	if len(tm.History()) != 0 {
		t.Fatalf("history should stay empty, got %q", tm.History())
	}
}

func TestTerminal_UnmatchedQuoteSkipsHistory(t *testing.T) {
	tm := newTestTerm(t)
	run(tm, `echo "abc`)
	if got := lastText(tm); got != "unmatched quote" {
		t.Fatalf("last message %q", got)
	}
	if len(tm.History()) != 0 {
		t.Fatalf("history should stay empty, got %q", tm.History())
	}
}

func TestTerminal_HistoryExpansionLogged(t *testing.T) {
	tm := newTestTerm(t)
	run(tm, "echo a")
	run(tm, "!!")

	ms := tm.Messages()
	want := []string{"echo a", "a", "!!", "echo a", "a"}
	if got := texts(ms); !reflect.DeepEqual(got, want) {
		t.Fatalf("messages = %q, want %q", got, want)
	}
	if ms[3].Kind != KindHistoryCompletion {
		t.Fatalf("expanded line should be logged as history completion, got kind %v", ms[3].Kind)
	}
	if got := tm.History(); !reflect.DeepEqual(got, []string{"echo a", "echo a"}) {
		t.Fatalf("history stores the resolved line, got %q", got)
	}
}

func TestTerminal_PanickingCommand(t *testing.T) {
	tm := newTestTerm(t, &Command{Name: "boom", Call: func(*Arguments) { panic("kaput") }})
	run(tm, "boom")
	if got := lastText(tm); !strings.Contains(got, "internal error") || !strings.Contains(got, "kaput") {
		t.Fatalf("panic should be reported, last message %q", got)
	}
	if tm.running {
		t.Fatalf("running flag left set")
	}
	if len(tm.History()) != 1 {
		t.Fatalf("history = %q", tm.History())
	}
}

func TestTerminal_HistoryNavigation(t *testing.T) {
	tm := newTestTerm(t)
	run(tm, "echo 1")
	run(tm, "ls")
	run(tm, "echo 2")

	typeText(tm, "echo")
	steps := []struct {
		key  tea.KeyType
		want string
	}{
		{tea.KeyUp, "echo 2"},
		{tea.KeyUp, "echo 1"},
		{tea.KeyUp, "echo 1"},
		{tea.KeyDown, "echo 2"},
		{tea.KeyDown, "echo"},
		{tea.KeyDown, "echo"},
	}
	for i, s := range steps {
		press(tm, s.key)
		if in, _ := tm.Input(); in != s.want {
			t.Fatalf("step %d: input %q, want %q", i, in, s.want)
		}
	}
}

func TestTerminal_HistoryUpDownRestores(t *testing.T) {
	tm := newTestTerm(t)
	for _, l := range []string{"a", "b", "c", "d"} {
		run(tm, l)
	}
	typeText(tm, "")
	for n := 1; n <= 3; n++ {
		for i := 0; i < n; i++ {
			press(tm, tea.KeyUp)
		}
		for i := 0; i < n; i++ {
			press(tm, tea.KeyDown)
		}
		if in, _ := tm.Input(); in != "" {
			t.Fatalf("Up x%d then Down x%d left %q", n, n, in)
		}
		if tm.histSel != -1 {
			t.Fatalf("navigation should have ended")
		}
	}
}

func TestTerminal_EditEndsNavigation(t *testing.T) {
	tm := newTestTerm(t)
	run(tm, "echo 1")
	run(tm, "echo 2")
	press(tm, tea.KeyUp)
	if tm.prompt() != "[-1] > " {
		t.Fatalf("prompt while browsing = %q", tm.prompt())
	}
	typeText(tm, "x")
	if tm.histSel != -1 {
		t.Fatalf("typing should end history navigation")
	}
	press(tm, tea.KeyUp)
	if in, _ := tm.Input(); in != "echo 2x" {
		t.Fatalf("no entry starts with the new prefix, input %q", in)
	}
}

func TestTerminal_SeverityFilter(t *testing.T) {
	tm := newTestTerm(t)
	tm.AddMessage(Message{Severity: Warn, Text: "warn"})
	tm.AddMessage(Message{Severity: Info, Text: "info"})
	tm.AddMessage(Message{Severity: Error, Text: "error"})
	tm.AddText("term")

	tm.SetLogLevel(Warn)
	if got := texts(tm.VisibleMessages()); !reflect.DeepEqual(got, []string{"warn", "error", "term"}) {
		t.Fatalf("visible = %q", got)
	}
	tm.SetLogLevel(LevelOff)
	if got := texts(tm.VisibleMessages()); !reflect.DeepEqual(got, []string{"term"}) {
		t.Fatalf("level none should only keep terminal messages, got %q", got)
	}
}

func TestTerminal_MinLogLevel(t *testing.T) {
	tm := newTestTerm(t)
	tm.SetMinLogLevel(Info)
	if tm.LogLevel() != Info {
		t.Fatalf("level should be raised to the minimum, got %v", tm.LogLevel())
	}
	press := func(up bool) {
		tm.HandleKey(tea.KeyMsg{Type: map[bool]tea.KeyType{true: tea.KeyUp, false: tea.KeyDown}[up], Alt: true})
	}
	press(false)
	if tm.LogLevel() != Info {
		t.Fatalf("level went below the minimum: %v", tm.LogLevel())
	}
	press(true)
	if tm.LogLevel() != Warn {
		t.Fatalf("alt+up should raise the level, got %v", tm.LogLevel())
	}
	tm.SetLogLevel(Debug)
	if tm.MinLogLevel() != Debug {
		t.Fatalf("explicit level below the minimum lowers it, got %v", tm.MinLogLevel())
	}
}

func TestTerminal_TextFilter(t *testing.T) {
	tm := newTestTerm(t)
	tm.AddText("alpha")
	tm.AddText("beta")
	tm.AddText("gamma alp")
	tm.SetFilter("alp")
	if got := texts(tm.VisibleMessages()); !reflect.DeepEqual(got, []string{"alpha", "gamma alp"}) {
		t.Fatalf("visible = %q", got)
	}
	tm.SetFilter("")
	if len(tm.VisibleMessages()) != 3 {
		t.Fatalf("empty filter shows everything")
	}
}

func TestTerminal_FilterFocus(t *testing.T) {
	tm := newTestTerm(t)
	tm.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlF})
	typeText(tm, "ab")
	press(tm, tea.KeyBackspace)
	if tm.Filter() != "a" {
		t.Fatalf("filter = %q", tm.Filter())
	}
	if in, _ := tm.Input(); in != "" {
		t.Fatalf("keys leaked into the input line: %q", in)
	}
	press(tm, tea.KeyEsc)
	typeText(tm, "x")
	if in, _ := tm.Input(); in != "x" {
		t.Fatalf("focus should be back on the input line, input %q", in)
	}
}

func TestTerminal_AddTextSpan(t *testing.T) {
	tm := newTestTerm(t)
	tm.AddText("hello", 2)
	tm.AddTextErr("hello", 1, 99)
	tm.AddMessage(Message{Text: "abc", ColorBegin: 5, ColorEnd: 2})

	ms := tm.Messages()
	if ms[0].ColorBegin != 2 || ms[0].ColorEnd != 5 || ms[0].Severity != Info {
		t.Fatalf("unexpected span %+v", ms[0])
	}
	if ms[1].ColorBegin != 1 || ms[1].ColorEnd != 5 || ms[1].Severity != Warn {
		t.Fatalf("span should be clamped %+v", ms[1])
	}
	if ms[2].ColorBegin != 2 || ms[2].ColorEnd != 2 {
		t.Fatalf("inverted span should collapse %+v", ms[2])
	}
}

func TestTerminal_DoubleEscapeCloses(t *testing.T) {
	tm := newTestTerm(t)
	f := &Frame{Width: 60, Height: 12}
	typeText(tm, "ab")
	if !tm.Show(f) {
		t.Fatalf("first frame should keep the terminal")
	}
	press(tm, tea.KeyEsc)
	if in, _ := tm.Input(); in != "" {
		t.Fatalf("escape should clear the line, got %q", in)
	}
	if !tm.Show(f) {
		t.Fatalf("clearing the line must not close")
	}
	press(tm, tea.KeyEsc)
	if tm.Show(f) {
		t.Fatalf("escape on an already empty line should close")
	}
	if !tm.Show(f) {
		t.Fatalf("close request is one-shot")
	}
}

func TestTerminal_EscapeCancelsHistoryBrowsing(t *testing.T) {
	tm := newTestTerm(t)
	f := &Frame{Width: 60, Height: 12}
	run(tm, "echo 1")
	tm.Show(f)
	press(tm, tea.KeyUp)
	press(tm, tea.KeyEsc)
	if !tm.Show(f) {
		t.Fatalf("escape while browsing should only clear")
	}
	if in, _ := tm.Input(); in != "" || tm.histSel != -1 {
		t.Fatalf("browsing not cancelled: %q %d", in, tm.histSel)
	}
}

func TestTerminal_SetShouldClose(t *testing.T) {
	tm := newTestTerm(t, &Command{Name: "exit", Call: func(a *Arguments) { a.Term.SetShouldClose() }})
	f := &Frame{Width: 60, Height: 12}
	run(tm, "exit")
	if tm.Show(f) {
		t.Fatalf("exit should close the terminal")
	}
}

func TestTerminal_ClearInsideCommandDefersNumbering(t *testing.T) {
	tm := newTestTerm(t, &Command{Name: "clear", Call: func(a *Arguments) { a.Term.Clear() }})
	f := &Frame{Width: 60, Height: 12}
	run(tm, "echo a")
	tm.Show(f)
	if got := tm.prompt(); got != "[2] > " {
		t.Fatalf("prompt = %q", got)
	}
	run(tm, "clear")
	if len(tm.Messages()) != 0 {
		t.Fatalf("clear left %q", texts(tm.Messages()))
	}
	tm.Show(f)
	if got := tm.prompt(); got != "[1] > " {
		t.Fatalf("prompt after clear = %q", got)
	}
}

func TestTerminal_ClearOutsideCommand(t *testing.T) {
	tm := newTestTerm(t)
	run(tm, "echo a")
	run(tm, "echo b")
	tm.Clear()
	if got := tm.prompt(); got != "[1] > " {
		t.Fatalf("prompt = %q", got)
	}
}

func TestTerminal_CharLimit(t *testing.T) {
	tm := New(Options{Helper: &fakeHelper{}, CharLimit: 3})
	typeText(tm, "abcdef")
	if in, _ := tm.Input(); in != "abc" {
		t.Fatalf("input = %q", in)
	}
}

func TestTerminal_Editing(t *testing.T) {
	tm := newTestTerm(t)
	typeText(tm, "echo héllo world")
	tm.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlW})
	if in, _ := tm.Input(); in != "echo héllo " {
		t.Fatalf("ctrl+w: %q", in)
	}
	press(tm, tea.KeyBackspace)
	press(tm, tea.KeyLeft)
	press(tm, tea.KeyLeft)
	typeText(tm, "X")
	if in, _ := tm.Input(); in != "echo hélXlo" {
		t.Fatalf("insert in the middle: %q", in)
	}
	press(tm, tea.KeyHome)
	press(tm, tea.KeyDelete)
	if in, _ := tm.Input(); in != "cho hélXlo" {
		t.Fatalf("delete at start: %q", in)
	}
	tm.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlK})
	if in, _ := tm.Input(); in != "" {
		t.Fatalf("ctrl+k from start: %q", in)
	}
}

func TestTerminal_BlurIgnoresKeys(t *testing.T) {
	tm := newTestTerm(t)
	tm.Blur()
	typeText(tm, "abc")
	if in, _ := tm.Input(); in != "" || tm.Focused() {
		t.Fatalf("blurred terminal took input %q", in)
	}
	tm.Focus()
	typeText(tm, "abc")
	if in, _ := tm.Input(); in != "abc" {
		t.Fatalf("input = %q", in)
	}
}
