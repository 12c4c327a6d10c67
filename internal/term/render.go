package term

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/sahilm/fuzzy"
)

// Panel is one element of the settings bar.
type Panel int

const (
	PanelClearButton Panel = iota
	PanelAutoscroll
	PanelAutowrap
	PanelFilter
	PanelLongFilter
	PanelLogLevel
	PanelBlank
)

// DefaultPanels is the settings bar used when a Frame names none.
var DefaultPanels = []Panel{PanelClearButton, PanelAutoscroll, PanelAutowrap, PanelLongFilter, PanelLogLevel}

var panelNames = [...]string{
	PanelClearButton: "clear",
	PanelAutoscroll:  "autoscroll",
	PanelAutowrap:    "autowrap",
	PanelFilter:      "filter",
	PanelLongFilter:  "long_filter",
	PanelLogLevel:    "log_level",
	PanelBlank:       "blank",
}

func (p Panel) String() string {
	if p < 0 || int(p) >= len(panelNames) {
		return fmt.Sprintf("panel(%d)", int(p))
	}
	return panelNames[p]
}

// AllPanels lists every panel kind.
func AllPanels() []Panel {
	out := make([]Panel, len(panelNames))
	for i := range out {
		out[i] = Panel(i)
	}
	return out
}

// ParsePanel reads a panel name such as "long_filter".
func ParsePanel(name string) (Panel, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range panelNames {
		if n == name {
			return Panel(i), true
		}
	}
	return 0, false
}

// Frame is the space a terminal draws into during one Show call.
type Frame struct {
	Width, Height int
	// Panels lays out the settings bar; nil means DefaultPanels and an
	// empty non-nil slice hides the bar.
	Panels []Panel

	out string
}

func (f *Frame) String() string { return f.out }

const (
	minWidth  = 24
	minHeight = 5

	filterWidth = 16
)

// zone ids
const (
	zoneClear      = "clear"
	zoneAutoscroll = "autoscroll"
	zoneAutowrap   = "autowrap"
	zoneFilter     = "filter"
	zoneLevel      = "level"
	zoneInput      = "input"
	zoneMessages   = "messages"
)

type styles struct {
	window      lipgloss.Style
	title       lipgloss.Style
	text        lipgloss.Style
	panel       lipgloss.Style
	button      lipgloss.Style
	check       lipgloss.Style
	field       lipgloss.Style
	hint        lipgloss.Style
	filterText  lipgloss.Style
	match       lipgloss.Style
	selected    lipgloss.Style
	nonSelected lipgloss.Style
	separator   lipgloss.Style
	level       lipgloss.Style
	backlog     lipgloss.Style
	completed   lipgloss.Style
	cursor      lipgloss.Style
	logs        [Critical + 1]lipgloss.Style
}

// color returns the slot color; a fully transparent color counts as unset.
func (t *Terminal) color(s ColorSlot) (lipgloss.Color, bool) {
	c, ok := t.theme.Get(s)
	if !ok || c.A == 0 {
		return "", false
	}
	return c.Lipgloss(), true
}

func (t *Terminal) fg(st lipgloss.Style, s ColorSlot) lipgloss.Style {
	if c, ok := t.color(s); ok {
		return st.Foreground(c)
	}
	return st
}

func (t *Terminal) bg(st lipgloss.Style, s ColorSlot) lipgloss.Style {
	if c, ok := t.color(s); ok {
		return st.Background(c)
	}
	return st
}

func (t *Terminal) styles() styles {
	base := lipgloss.NewStyle()
	var st styles

	st.window = t.bg(base.Border(lipgloss.RoundedBorder()), SlotWindowBg)
	if c, ok := t.color(SlotBorder); ok {
		st.window = st.window.BorderForeground(c)
	}
	titleSlot := SlotTitleBg
	if t.Focused() {
		titleSlot = SlotTitleBgActive
	}
	st.title = t.fg(t.bg(base.Bold(true), titleSlot), SlotText)
	st.text = t.fg(base, SlotText)
	st.panel = t.bg(base, SlotMessagePanel)
	st.button = t.fg(t.bg(base, SlotButton), SlotText)
	st.check = t.fg(base, SlotCheckMark)
	st.field = t.bg(base, SlotFrameBg)
	if t.focus == focusFilter {
		st.field = t.bg(base, SlotFrameBgActive)
	}
	st.hint = t.fg(st.field, SlotFilterHint)
	st.filterText = t.fg(st.field, SlotFilterText)
	st.match = t.fg(base.Underline(true), SlotMatchingText)
	st.selected = t.fg(base.Bold(true), SlotAutoCompleteSelected)
	st.nonSelected = t.fg(base, SlotAutoCompleteNonSelected)
	st.separator = t.fg(base, SlotAutoCompleteSeparator)
	st.level = t.fg(base, SlotLogLevelSelected)
	st.backlog = t.fg(base, SlotCmdBacklog)
	st.completed = t.fg(base, SlotCmdHistoryCompleted)
	st.cursor = t.bg(base.Reverse(true), SlotTextSelectedBg)
	for s := Trace; s <= Critical; s++ {
		slot, _ := LogSlot(s)
		st.logs[s] = t.fg(base, slot)
	}
	return st
}

// Show draws the terminal into f and reports whether the host should keep
// showing it on the next frame.
func (t *Terminal) Show(f *Frame) bool {
	if t.flushPending {
		t.lastFlushAt = len(t.history)
		t.flushPending = false
	}

	w, h := t.size(f)
	innerW, innerH := w-2, h-2
	st := t.styles()

	top := []string{st.title.Width(innerW).Render(xansi.Truncate(" "+t.name, innerW, "…"))}
	panels := f.Panels
	if panels == nil {
		panels = DefaultPanels
	}
	if len(panels) > 0 {
		top = append(top, t.renderSettingsBar(st, innerW, panels))
	}

	input := t.renderInput(st, innerW)
	overlay := ""
	if t.focus == focusInput && t.autocompletePos != PositionNowhere && len(t.Candidates()) > 0 {
		overlay = t.renderCandidates(st, innerW)
	}
	bottom := []string{input}
	switch {
	case overlay == "":
	case t.autocompletePos == PositionUp:
		bottom = []string{overlay, input}
	default:
		bottom = append(bottom, overlay)
	}

	rows := top
	if remaining := innerH - len(top) - len(bottom); remaining > 1 {
		rows = append(rows, t.renderMessages(st, innerW, remaining))
	} else if remaining == 1 {
		rows = append(rows, "")
	}
	rows = append(rows, bottom...)

	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	f.out = st.window.Width(innerW).Height(innerH).MaxHeight(h).Render(body)

	t.prevInputLen = len(t.input)
	keep := t.shouldShowNextFrame && !t.closeRequest
	t.shouldShowNextFrame = true
	t.closeRequest = false
	return keep
}

func (t *Terminal) size(f *Frame) (int, int) {
	w, h := f.Width, f.Height
	if t.baseWidth > 0 && t.baseWidth < w {
		w = t.baseWidth
	}
	if t.baseHeight > 0 && t.baseHeight < h {
		h = t.baseHeight
	}
	return max(w, minWidth), max(h, minHeight)
}

func (t *Terminal) mark(id, s string) string {
	if t.zones == nil {
		return s
	}
	return t.zones.Mark(t.zoneID+id, s)
}

func checkbox(st styles, on bool, label string) string {
	box := "[ ]"
	if on {
		box = "[" + st.check.Render("x") + "]"
	}
	return box + " " + st.text.Render(label)
}

// renderSettingsBar lays the panels out on one line. Blank and long filter
// panels share whatever width the others leave.
func (t *Terminal) renderSettingsBar(st styles, width int, panels []Panel) string {
	parts := make([]string, len(panels))
	var flex []int
	fixed := 0
	for i, p := range panels {
		switch p {
		case PanelClearButton:
			if t.labels.Clear != "" {
				parts[i] = t.mark(zoneClear, st.button.Render(" "+t.labels.Clear+" "))
			}
		case PanelAutoscroll:
			if t.labels.Autoscroll != "" {
				parts[i] = t.mark(zoneAutoscroll, checkbox(st, t.autoscroll, t.labels.Autoscroll))
			}
		case PanelAutowrap:
			if t.labels.Autowrap != "" {
				parts[i] = t.mark(zoneAutowrap, checkbox(st, t.autowrap, t.labels.Autowrap))
			}
		case PanelFilter:
			parts[i] = t.renderFilter(st, max(filterWidth, t.width(t.labels.FilterHint)+2))
		case PanelLogLevel:
			if t.labels.LogLevel != "" {
				parts[i] = t.mark(zoneLevel, st.text.Render(t.labels.LogLevel+": ")+st.level.Render(t.LevelName(t.level)+" ▾"))
			}
		case PanelLongFilter, PanelBlank:
			flex = append(flex, i)
			continue
		}
		fixed += lipgloss.Width(parts[i])
	}

	gaps := -1
	for i, p := range parts {
		if p != "" || containsIndex(flex, i) {
			gaps++
		}
	}
	left := width - fixed - max(gaps, 0)
	for n, i := range flex {
		share := 0
		if left > 0 {
			share = left / len(flex)
			if n == len(flex)-1 {
				share = left - share*(len(flex)-1)
			}
		}
		if panels[i] == PanelLongFilter {
			parts[i] = t.renderFilter(st, share)
		} else {
			parts[i] = strings.Repeat(" ", max(share, 0))
		}
	}

	var shown []string
	for i, p := range parts {
		if p != "" || containsIndex(flex, i) {
			shown = append(shown, p)
		}
	}
	return xansi.Truncate(strings.Join(shown, " "), width, "…")
}

func containsIndex(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func (t *Terminal) renderFilter(st styles, width int) string {
	if t.labels.FilterHint == "" || width <= 0 {
		return ""
	}
	var s string
	switch {
	case t.filter != "":
		s = st.filterText.Render(tailFit(t.filter, width-1, t.width))
	case t.focus != focusFilter:
		s = st.hint.Render(xansi.Truncate(t.labels.FilterHint, width, "…"))
	}
	if t.focus == focusFilter {
		s += st.cursor.Render(" ")
	}
	return t.mark(zoneFilter, st.field.Width(width).MaxWidth(width).Render(s))
}

// tailFit keeps the end of s that fits in width cells.
func tailFit(s string, width int, widthOf func(string) int) string {
	if width <= 0 {
		return ""
	}
	for widthOf(s) > width {
		_, n := firstRune(s)
		s = s[n:]
	}
	return s
}

func firstRune(s string) (rune, int) {
	for _, r := range s {
		return r, len(string(r))
	}
	return 0, 0
}

// prompt shows how many commands ran since the last clear, or how far
// back in history the input line currently is.
func (t *Terminal) prompt() string {
	if t.histSel >= 0 {
		return fmt.Sprintf("[-%d] > ", len(t.history)-t.histSel)
	}
	return fmt.Sprintf("[%d] > ", len(t.history)-t.lastFlushAt+1)
}

func (t *Terminal) renderInput(st styles, width int) string {
	p := t.prompt()
	avail := width - t.width(p) - 1
	before := tailFit(t.input[:t.cursor], avail, t.width)
	after := t.input[t.cursor:]

	var b strings.Builder
	b.WriteString(st.text.Render(p))
	b.WriteString(st.text.Render(before))
	if t.focus == focusInput {
		under, n := firstRune(after)
		if n == 0 {
			b.WriteString(st.cursor.Render(" "))
		} else {
			b.WriteString(st.cursor.Render(string(under)))
			after = after[n:]
		}
	}
	rest := avail - t.width(before)
	if rest > 0 {
		b.WriteString(st.text.Render(xansi.Truncate(after, rest, "…")))
	}
	return t.mark(zoneInput, b.String())
}

func (t *Terminal) renderCandidates(st styles, width int) string {
	shown, more := LayoutCandidates(t.Candidates(), width, candidateSeparator, candidateEllipsis, t.width)
	var b strings.Builder
	for i, c := range shown {
		if i > 0 {
			b.WriteString(st.separator.Render(candidateSeparator))
		}
		if i == 0 {
			b.WriteString(st.selected.Render(c))
		} else {
			b.WriteString(st.nonSelected.Render(c))
		}
	}
	if more {
		if len(shown) > 0 {
			b.WriteString(st.separator.Render(candidateSeparator))
		}
		b.WriteString(st.nonSelected.Render(candidateEllipsis))
	}
	return b.String()
}

type visible struct {
	index   int
	matched []int
}

// visibleIndexes applies the severity filter, then the fuzzy text filter.
func (t *Terminal) visibleIndexes() []visible {
	var idx []int
	for i, m := range t.messages {
		if t.passesLevel(m) {
			idx = append(idx, i)
		}
	}
	if t.filter == "" {
		out := make([]visible, len(idx))
		for i, v := range idx {
			out[i] = visible{index: v}
		}
		return out
	}

	texts := make([]string, len(idx))
	for i, v := range idx {
		texts[i] = t.messages[v].Text
	}
	matches := fuzzy.Find(t.filter, texts)
	sort.Slice(matches, func(i, j int) bool { return matches[i].Index < matches[j].Index })
	out := make([]visible, len(matches))
	for i, m := range matches {
		out[i] = visible{index: idx[m.Index], matched: m.MatchedIndexes}
	}
	return out
}

// spanStyle picks the color of a message's highlighted span.
func (t *Terminal) spanStyle(st styles, m Message) lipgloss.Style {
	if m.IsTermMessage {
		switch m.Kind {
		case KindUserInput:
			return st.backlog
		case KindHistoryCompletion:
			return st.completed
		}
	}
	if _, ok := LogSlot(m.Severity); !ok {
		t.internalError("no color slot for severity %d", int(m.Severity))
		return st.text
	}
	return st.logs[m.Severity]
}

// renderMessage draws one message on a single logical line.
func (t *Terminal) renderMessage(st styles, m Message, matched []int) string {
	span := t.spanStyle(st, m)
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}
	styleAt := func(i int) (lipgloss.Style, int) {
		switch {
		case hit[i]:
			return st.match, 2
		case i >= m.ColorBegin && i < m.ColorEnd:
			return span, 1
		}
		return st.text, 0
	}

	var b strings.Builder
	runStart, runKind := 0, -1
	var runStyle lipgloss.Style
	flush := func(end int) {
		if runKind >= 0 && end > runStart {
			b.WriteString(runStyle.Render(m.Text[runStart:end]))
		}
	}
	for i, r := range m.Text {
		if r == '\n' || r == '\t' {
			flush(i)
			b.WriteString(" ")
			runKind = -1
			continue
		}
		s, kind := styleAt(i)
		if kind != runKind {
			flush(i)
			runStart, runKind, runStyle = i, kind, s
		}
	}
	flush(len(m.Text))
	return b.String()
}

func (t *Terminal) renderMessages(st styles, width, height int) string {
	dirty := t.contentDirty
	t.contentDirty = false

	var lines []string
	wrap := lipgloss.NewStyle().Width(width)
	for _, v := range t.visibleIndexes() {
		line := t.renderMessage(st, t.messages[v.index], v.matched)
		if t.autowrap {
			lines = append(lines, wrap.Render(line))
		} else {
			lines = append(lines, xansi.Truncate(line, width, "…"))
		}
	}

	t.viewport.Width = width
	t.viewport.Height = height
	t.viewport.SetContent(strings.Join(lines, "\n"))
	if t.autoscroll && dirty {
		t.viewport.GotoBottom()
	}
	return t.mark(zoneMessages, st.panel.Width(width).Height(height).Render(t.viewport.View()))
}

// HandleMouse applies clicks on the settings bar and wheel scrolling over
// the message panel. It needs Options.Zones, and the host must run the
// final view through the same manager's Scan.
func (t *Terminal) HandleMouse(msg tea.MouseMsg) {
	if t.zones == nil {
		return
	}
	in := func(id string) bool { return t.zones.Get(t.zoneID + id).InBounds(msg) }

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if in(zoneMessages) {
			t.scroll(-3)
		}
		return
	case tea.MouseButtonWheelDown:
		if in(zoneMessages) {
			t.scroll(3)
		}
		return
	}
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return
	}
	switch {
	case in(zoneClear):
		t.Clear()
	case in(zoneAutoscroll):
		t.SetAutoscroll(!t.autoscroll)
	case in(zoneAutowrap):
		t.SetAutowrap(!t.autowrap)
	case in(zoneLevel):
		next := t.level + 1
		if next > LevelOff {
			next = t.lowestLevel
		}
		t.SetLogLevel(next)
	case in(zoneFilter):
		t.focus = focusFilter
	case in(zoneInput), in(zoneMessages):
		t.focus = focusInput
	}
}
