package term

import "github.com/charmbracelet/bubbles/key"

// KeyMap binds keys to terminal actions.
type KeyMap struct {
	Submit   key.Binding
	Complete key.Binding
	Escape   key.Binding

	HistoryPrev key.Binding
	HistoryNext key.Binding

	CharacterForward  key.Binding
	CharacterBackward key.Binding
	WordForward       key.Binding
	WordBackward      key.Binding
	LineStart         key.Binding
	LineEnd           key.Binding

	DeleteCharacterBackward key.Binding
	DeleteCharacterForward  key.Binding
	DeleteWordBackward      key.Binding
	DeleteBeforeCursor      key.Binding
	DeleteAfterCursor       key.Binding

	ClearScreen      key.Binding
	ScrollUp         key.Binding
	ScrollDown       key.Binding
	ToggleAutoscroll key.Binding
	ToggleAutowrap   key.Binding
	LevelUp          key.Binding
	LevelDown        key.Binding
	FocusFilter      key.Binding
}

// DefaultKeyMap follows readline where it can.
var DefaultKeyMap = KeyMap{
	Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
	Complete: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
	Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear/close")),

	HistoryPrev: key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "history")),
	HistoryNext: key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "history")),

	CharacterForward:  key.NewBinding(key.WithKeys("right")),
	CharacterBackward: key.NewBinding(key.WithKeys("left", "ctrl+b")),
	WordForward:       key.NewBinding(key.WithKeys("alt+right", "ctrl+right", "alt+f")),
	WordBackward:      key.NewBinding(key.WithKeys("alt+left", "ctrl+left", "alt+b")),
	LineStart:         key.NewBinding(key.WithKeys("home", "ctrl+a")),
	LineEnd:           key.NewBinding(key.WithKeys("end", "ctrl+e")),

	DeleteCharacterBackward: key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
	DeleteCharacterForward:  key.NewBinding(key.WithKeys("delete", "ctrl+d")),
	DeleteWordBackward:      key.NewBinding(key.WithKeys("ctrl+w", "alt+backspace")),
	DeleteBeforeCursor:      key.NewBinding(key.WithKeys("ctrl+u")),
	DeleteAfterCursor:       key.NewBinding(key.WithKeys("ctrl+k")),

	ClearScreen:      key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
	ScrollUp:         key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
	ScrollDown:       key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
	ToggleAutoscroll: key.NewBinding(key.WithKeys("alt+s"), key.WithHelp("alt+s", "autoscroll")),
	ToggleAutowrap:   key.NewBinding(key.WithKeys("alt+w"), key.WithHelp("alt+w", "autowrap")),
	LevelUp:          key.NewBinding(key.WithKeys("alt+up"), key.WithHelp("alt+↑", "level up")),
	LevelDown:        key.NewBinding(key.WithKeys("alt+down"), key.WithHelp("alt+↓", "level down")),
	FocusFilter:      key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "filter")),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Complete, k.HistoryPrev, k.Escape, k.FocusFilter}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Complete, k.Escape, k.HistoryPrev, k.HistoryNext},
		{k.ClearScreen, k.ScrollUp, k.ScrollDown, k.FocusFilter},
		{k.ToggleAutoscroll, k.ToggleAutowrap, k.LevelUp, k.LevelDown},
	}
}
