// Package term implements an embeddable command terminal for frame-driven
// user interfaces: a scrollback panel, an input line with history
// references, argument completion and a settings bar.
//
// The host calls Show once per frame and forwards keyboard and mouse
// events to HandleKey and HandleMouse. Nothing here is safe for concurrent
// use; the host owns the terminal from a single goroutine.
package term

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	zone "github.com/lrstanley/bubblezone"
)

// Position places the autocompletion overlay.
type Position int

const (
	PositionDown Position = iota
	PositionUp
	PositionNowhere
)

func (p Position) String() string {
	switch p {
	case PositionUp:
		return "up"
	case PositionNowhere:
		return "disabled"
	}
	return "down"
}

// ParsePosition reads "up", "down" or "disabled".
func ParsePosition(s string) (Position, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "down", "to-bottom", "":
		return PositionDown, true
	case "up", "to-top":
		return PositionUp, true
	case "disabled", "disable", "none", "nowhere":
		return PositionNowhere, true
	}
	return PositionDown, false
}

// Labels holds the text of the settings bar elements. An empty label hides
// its element.
type Labels struct {
	Clear      string
	Autoscroll string
	Autowrap   string
	LogLevel   string
	FilterHint string
}

// DefaultLabels are used by New.
var DefaultLabels = Labels{
	Clear:      "clear",
	Autoscroll: "autoscroll",
	Autowrap:   "autowrap",
	LogLevel:   "log level",
	FilterHint: "filter...",
}

// Options configures a Terminal.
type Options struct {
	// Name is shown in the title line.
	Name string
	// Width and Height bound the rendered box; zero fills the frame.
	Width, Height int
	// Helper provides the commands. Required.
	Helper Helper
	// Value is handed to every command through Arguments.Value.
	Value any
	// KeyMap overrides DefaultKeyMap.
	KeyMap *KeyMap
	// Zones enables mouse support on the settings bar.
	Zones *zone.Manager
	// CharLimit caps the input line length in runes; zero means no limit.
	CharLimit int
}

type focusTarget int

const (
	focusNone focusTarget = iota
	focusInput
	focusFilter
)

// Terminal is the widget state. Create it with New.
type Terminal struct {
	name       string
	baseWidth  int
	baseHeight int

	helper  Helper
	metrics Metrics
	value   any
	keys    KeyMap
	zones   *zone.Manager
	zoneID  string

	shouldShowNextFrame bool
	closeRequest        bool

	theme       Theme
	autoscroll  bool
	autowrap    bool
	level       Severity
	lowestLevel Severity
	labels      Labels
	levelNames  [LevelOff + 1]string
	filter      string

	// scrollback
	messages     []Message
	lastFlushAt  int
	flushPending bool
	running      bool
	reported     map[string]bool

	// input line
	input        string
	cursor       int
	prevInputLen int
	charLimit    int
	focus        focusTarget

	// autocompletion
	autocompletePos Position
	candidates      []*Command
	completions     []string

	// history
	history        []string
	histSel        int
	histBackup     string
	histPrefix     string
	ignoreNextEdit bool

	viewport     viewport.Model
	contentDirty bool
}

// New creates a terminal with focus on the input line.
func New(opts Options) *Terminal {
	if opts.Helper == nil {
		panic("term: Options.Helper is required")
	}
	name := opts.Name
	if name == "" {
		name = "terminal"
	}
	t := &Terminal{
		name:                name,
		baseWidth:           opts.Width,
		baseHeight:          opts.Height,
		helper:              opts.Helper,
		metrics:             DefaultMetrics,
		value:               opts.Value,
		keys:                DefaultKeyMap,
		zones:               opts.Zones,
		shouldShowNextFrame: true,
		autoscroll:          true,
		autowrap:            true,
		labels:              DefaultLabels,
		levelNames:          severityNames,
		reported:            map[string]bool{},
		charLimit:           opts.CharLimit,
		focus:               focusInput,
		histSel:             -1,
		viewport:            viewport.New(0, 0),
		theme:               Theme{Colors: map[ColorSlot]Color{}},
	}
	if m, ok := opts.Helper.(Metrics); ok {
		t.metrics = m
	}
	if opts.KeyMap != nil {
		t.keys = *opts.KeyMap
	}
	if t.zones != nil {
		t.zoneID = t.zones.NewPrefix()
	}
	return t
}

// Helper returns the command registry the terminal was built with.
func (t *Terminal) Helper() Helper { return t.helper }

// Value returns the host value shared with commands.
func (t *Terminal) Value() any { return t.value }

// Name returns the title.
func (t *Terminal) Name() string { return t.name }

// History returns the submitted command lines, oldest first.
func (t *Terminal) History() []string { return t.history }

// Messages returns the whole scrollback, including filtered messages.
func (t *Terminal) Messages() []Message { return t.messages }

// SetShouldClose makes the next Show return false.
func (t *Terminal) SetShouldClose() { t.closeRequest = true }

// Theme returns the current theme for in-place edits.
func (t *Terminal) Theme() *Theme { return &t.theme }

// SetTheme replaces the theme with a copy of th.
func (t *Terminal) SetTheme(th Theme) { t.theme = th.Clone() }

// ResetColors unsets every theme slot.
func (t *Terminal) ResetColors() { t.theme.Reset() }

// SetAutocompletePos moves or disables the completion overlay.
func (t *Terminal) SetAutocompletePos(p Position) {
	t.autocompletePos = p
	t.updateCandidates()
}

// AutocompletePos returns the completion overlay position.
func (t *Terminal) AutocompletePos() Position { return t.autocompletePos }

// Labels returns the settings bar labels for in-place edits.
func (t *Terminal) Labels() *Labels { return &t.labels }

// Autoscroll reports whether the message panel follows new messages.
func (t *Terminal) Autoscroll() bool { return t.autoscroll }

// SetAutoscroll toggles following new messages.
func (t *Terminal) SetAutoscroll(on bool) {
	t.autoscroll = on
	t.contentDirty = true
}

// Autowrap reports whether long messages wrap.
func (t *Terminal) Autowrap() bool { return t.autowrap }

// SetAutowrap toggles wrapping of long messages.
func (t *Terminal) SetAutowrap(on bool) {
	t.autowrap = on
	t.contentDirty = true
}

// Filter returns the message filter text.
func (t *Terminal) Filter() string { return t.filter }

// SetFilter sets the message filter text; empty shows everything.
func (t *Terminal) SetFilter(s string) {
	t.filter = s
	t.contentDirty = true
}

// LogLevel returns the lowest severity shown in the message panel.
func (t *Terminal) LogLevel() Severity { return t.level }

// SetLogLevel changes the displayed severity, lowering the minimum
// selectable level when needed.
func (t *Terminal) SetLogLevel(s Severity) {
	if s < Trace {
		s = Trace
	}
	if s > LevelOff {
		s = LevelOff
	}
	if s < t.lowestLevel {
		t.lowestLevel = s
	}
	t.level = s
	t.contentDirty = true
}

// MinLogLevel returns the lowest level the user can select.
func (t *Terminal) MinLogLevel() Severity { return t.lowestLevel }

// SetMinLogLevel restricts the levels a user can select; the current level
// is raised to it when below.
func (t *Terminal) SetMinLogLevel(s Severity) {
	if s < Trace {
		s = Trace
	}
	if s > LevelOff {
		s = LevelOff
	}
	t.lowestLevel = s
	if t.level < s {
		t.level = s
	}
	t.contentDirty = true
}

// SetLevelListText renames the entries of the log level selector.
func (t *Terminal) SetLevelListText(trace, debug, info, warn, err, critical, none string) {
	t.levelNames = [LevelOff + 1]string{trace, debug, info, warn, err, critical, none}
}

// LevelName returns the selector label of a level.
func (t *Terminal) LevelName(s Severity) string {
	if s < Trace || s > LevelOff {
		return s.String()
	}
	return t.levelNames[s]
}

// Focus gives the input line keyboard focus.
func (t *Terminal) Focus() { t.focus = focusInput }

// Blur drops keyboard focus; keys are ignored until Focus.
func (t *Terminal) Blur() { t.focus = focusNone }

// Focused reports whether the terminal takes keyboard input.
func (t *Terminal) Focused() bool { return t.focus != focusNone }

// Input returns the input line and the cursor byte offset.
func (t *Terminal) Input() (string, int) { return t.input, t.cursor }

// SetInput replaces the input line and puts the cursor at its end.
func (t *Terminal) SetInput(s string) {
	t.input = s
	t.cursor = len(s)
	t.afterEdit()
}

// AddText logs an informational terminal message. With one span value the
// color runs from it to the end of the text; with two it covers [begin,end).
func (t *Terminal) AddText(text string, span ...int) {
	t.addTermText(Info, text, span)
}

// AddTextf is AddText with fmt formatting and no color.
func (t *Terminal) AddTextf(format string, args ...any) {
	t.addTermText(Info, fmt.Sprintf(format, args...), nil)
}

// AddTextErr logs a warning terminal message; span works as in AddText.
func (t *Terminal) AddTextErr(text string, span ...int) {
	t.addTermText(Warn, text, span)
}

// AddTextErrf is AddTextErr with fmt formatting and no color.
func (t *Terminal) AddTextErrf(format string, args ...any) {
	t.addTermText(Warn, fmt.Sprintf(format, args...), nil)
}

func (t *Terminal) addTermText(sev Severity, text string, span []int) {
	m := Message{Severity: sev, Text: text, IsTermMessage: true}
	switch len(span) {
	case 0:
	case 1:
		m.ColorBegin, m.ColorEnd = span[0], len(text)
	default:
		m.ColorBegin, m.ColorEnd = span[0], span[1]
	}
	t.AddMessage(m)
}

// AddMessage appends a message to the scrollback. The color span is
// clamped into the text.
func (t *Terminal) AddMessage(m Message) {
	m.clampSpan()
	t.messages = append(t.messages, m)
	t.contentDirty = true
}

// Clear empties the scrollback. When a command clears the terminal, the
// command counter shown on the prompt restarts on the next frame, so the
// clearing command itself is not counted again.
func (t *Terminal) Clear() {
	t.messages = nil
	t.contentDirty = true
	if t.running {
		t.flushPending = true
		return
	}
	t.lastFlushAt = len(t.history)
}

// VisibleMessages returns the messages the panel currently shows, after the
// severity and text filters.
func (t *Terminal) VisibleMessages() []Message {
	idx := t.visibleIndexes()
	out := make([]Message, 0, len(idx))
	for _, v := range idx {
		out = append(out, t.messages[v.index])
	}
	return out
}

func (t *Terminal) passesLevel(m Message) bool {
	return m.IsTermMessage || m.Severity >= t.level
}

// tryLog asks the helper to format a terminal message and appends it.
func (t *Terminal) tryLog(text string, kind MessageKind) {
	m, ok := t.helper.Format(text, kind)
	if !ok {
		return
	}
	m.Kind = kind
	m.IsTermMessage = true
	t.AddMessage(m)
}

// internalError reports an inconsistency once per distinct text.
func (t *Terminal) internalError(format string, args ...any) {
	text := "internal error: " + fmt.Sprintf(format, args...)
	if t.reported[text] {
		return
	}
	t.reported[text] = true
	t.AddMessage(Message{
		Severity:      Error,
		Text:          text,
		ColorEnd:      len(text),
		IsTermMessage: true,
		Kind:          KindError,
	})
}

func (t *Terminal) isSpace(s string) int { return t.metrics.IsSpace(s) }

func (t *Terminal) width(s string) int { return t.metrics.DisplayWidth(s) }
