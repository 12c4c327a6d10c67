package commands

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"overterm/internal/term"
)

// Shared is the host value the built-in commands expect in
// term.Arguments.Value.
type Shared struct {
	// ShouldClose asks the host application to exit.
	ShouldClose bool
}

// Builtins returns the default command set.
func Builtins() []term.Command {
	return []term.Command{
		{Name: "clear", Description: "clears the terminal screen", Call: clearCmd},
		{Name: "configure_terminal", Description: "configures terminal behaviour and appearance", Call: configure, Complete: configureComplete},
		{Name: "echo", Description: "prints text", Call: echo},
		{Name: "exit", Description: "closes this terminal", Call: exit},
		{Name: "help", Description: "show this help", Call: help},
		{Name: "print", Description: "prints text", Call: echo},
		{Name: "quit", Description: "closes this application", Call: quit},
	}
}

// NewDefault returns a registry holding Builtins plus extra.
func NewDefault(extra ...term.Command) (*Registry, error) {
	return NewRegistry(append(Builtins(), extra...)...)
}

func clearCmd(arg *term.Arguments) { arg.Term.Clear() }

func exit(arg *term.Arguments) { arg.Term.SetShouldClose() }

func quit(arg *term.Arguments) {
	if s, ok := arg.Value.(*Shared); ok {
		s.ShouldClose = true
		return
	}
	arg.Term.AddTextErr("quit: the host does not support quitting")
}

func echo(arg *term.Arguments) {
	if len(arg.Line) < 2 {
		arg.Term.AddText("")
		return
	}
	if strings.HasPrefix(arg.Line[1], "-") {
		if arg.Line[1] == "--help" || arg.Line[1] == "-help" {
			arg.Term.AddTextf("usage: %s [text to be printed]", arg.Line[0])
		} else {
			arg.Term.AddTextErrf("Unknown argument: %s", arg.Line[1])
		}
		return
	}
	words := make([]string, 0, len(arg.Line)-1)
	for _, w := range arg.Line[1:] {
		if w != "" {
			words = append(words, w)
		}
	}
	arg.Term.AddText(strings.Join(words, " "))
}

func help(arg *term.Arguments) {
	cmds := arg.Term.Helper().ListCommands()
	width := 0
	for _, c := range cmds {
		width = max(width, len(c.Name))
	}
	arg.Term.AddText("Available commands:")
	for _, c := range cmds {
		line := fmt.Sprintf("        %-*s | %s", width, c.Name, c.Description)
		arg.Term.AddText(line, 8, 8+len(c.Name))
	}
	arg.Term.AddText("")
	arg.Term.AddText(`Additional information might be available using "'command' --help"`)
}

const (
	cfgCompletion = "completion"
	cfgColors     = "colors"

	cplUp      = "up"
	cplDown    = "down"
	cplDisable = "disable"

	colListThemes = "list-themes"
	colResetTheme = "reset-theme"
	colSetTheme   = "set-theme"
	colGetValue   = "get-value"
	colSetValue   = "set-value"
)

const configureUsage = "usage: configure_terminal completion <up|down|disable> | " +
	"colors <list-themes|reset-theme|set-theme NAME|get-value SLOT|set-value SLOT [R G B [A] | #RRGGBB[AA]]>"

func configure(arg *term.Arguments) {
	t, cl := arg.Term, arg.Line
	fail := func() { t.AddTextErr(configureUsage) }
	if len(cl) < 3 {
		fail()
		return
	}

	switch cl[1] {
	case cfgCompletion:
		if len(cl) != 3 {
			fail()
			return
		}
		p, ok := term.ParsePosition(cl[2])
		if !ok {
			fail()
			return
		}
		t.SetAutocompletePos(p)

	case cfgColors:
		switch {
		case cl[2] == colListThemes && len(cl) == 3:
			t.AddText("Available styles: ")
			for _, th := range term.Themes() {
				t.AddText("      " + th.Name)
			}
		case cl[2] == colResetTheme && len(cl) == 3:
			t.ResetColors()
		case cl[2] == colSetTheme && len(cl) == 4:
			th, ok := term.FindTheme(cl[3])
			if !ok {
				t.AddTextErrf("unknown theme: %s", cl[3])
				return
			}
			t.SetTheme(th)
		case cl[2] == colGetValue && len(cl) == 4:
			slot, ok := findSlot(cl[3])
			if !ok {
				fail()
				return
			}
			c, set := t.Theme().Get(slot)
			if !set {
				t.AddTextf("Current value for %s: unset", slot)
				return
			}
			r, g, b, a := c.Components()
			t.AddTextf("Current value for %s: [R: %d] [G: %d] [B: %d] [A: %d]", slot, r, g, b, a)
		case cl[2] == colSetValue && len(cl) >= 4 && len(cl) <= 8:
			slot, ok := findSlot(cl[3])
			if !ok {
				fail()
				return
			}
			if len(cl) == 4 {
				t.Theme().Unset(slot)
				return
			}
			c, err := parseColorArgs(cl[4:])
			if err != nil {
				t.AddTextErrf("set-value: %v", err)
				return
			}
			t.Theme().Set(slot, c)
		default:
			fail()
		}

	default:
		fail()
	}
}

// findSlot resolves a slot name, or else the first slot in name order that
// starts with it.
func findSlot(name string) (term.ColorSlot, bool) {
	if s, ok := term.ParseColorSlot(name); ok {
		return s, true
	}
	names := slotNames()
	for _, n := range names {
		if strings.HasPrefix(n, strings.ToLower(name)) {
			return term.ParseColorSlot(n)
		}
	}
	return 0, false
}

func slotNames() []string {
	var out []string
	for _, s := range term.ColorSlots() {
		out = append(out, s.String())
	}
	sort.Strings(out)
	return out
}

// parseColorArgs reads "R G B [A]" in 0-255 or a single hex color.
func parseColorArgs(args []string) (term.Color, error) {
	if len(args) == 1 {
		return term.ParseColor(args[0])
	}
	if len(args) != 3 && len(args) != 4 {
		return term.Color{}, fmt.Errorf("expected R G B [A]")
	}
	v := [4]uint8{0, 0, 0, 255}
	for i, a := range args {
		n, err := strconv.ParseUint(a, 10, 8)
		if err != nil {
			return term.Color{}, fmt.Errorf("invalid component %q", a)
		}
		v[i] = uint8(n)
	}
	return term.RGBA8(v[0], v[1], v[2], v[3]), nil
}

func configureComplete(arg *term.Arguments) []string {
	args := arg.Line
	cur := args[len(args)-1]
	var out []string
	try := func(cands ...string) {
		for _, c := range cands {
			if len(cur) <= len(c) && strings.EqualFold(cur, c[:len(cur)]) {
				out = append(out, c)
			}
		}
	}

	switch len(args) {
	case 2:
		try(cfgCompletion, cfgColors)
	case 3:
		switch args[1] {
		case cfgCompletion:
			pos := arg.Term.AutocompletePos()
			if pos != term.PositionNowhere {
				try(cplDisable)
			}
			if pos != term.PositionDown {
				try(cplDown)
			}
			if pos != term.PositionUp {
				try(cplUp)
			}
		case cfgColors:
			try(colSetTheme, colGetValue, colListThemes, colSetValue, colResetTheme)
		}
	case 4:
		if args[1] != cfgColors {
			break
		}
		switch args[2] {
		case colSetTheme:
			for _, th := range term.Themes() {
				try(th.Name)
			}
		case colSetValue, colGetValue:
			try(slotNames()...)
		}
	}
	return out
}
