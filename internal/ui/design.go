package ui

import (
	"github.com/charmbracelet/lipgloss"

	"overterm/internal/term"
)

// Design centralizes the backdrop palette. It is derived from the same
// Vitesse Dark Soft colors as term.ThemeVitesse so the host and the overlay
// agree when the default theme is active.
type designTheme struct {
	Primary lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Bg      lipgloss.Color

	OnAccent lipgloss.Color

	BarFG lipgloss.AdaptiveColor
	BarBG lipgloss.AdaptiveColor
}

// Vitesse is the backdrop palette.
var Vitesse = designTheme{
	Primary: slotColor(term.SlotCheckMark, "#4d9375"),
	Text:    slotColor(term.SlotText, "#dbd7caee"),
	Muted:   slotColor(term.SlotFilterHint, "#dedcd590"),
	Bg:      slotColor(term.SlotWindowBg, "#181818"),

	OnAccent: lipgloss.Color("#222"),

	BarFG: lipgloss.AdaptiveColor{Light: "#343433", Dark: "#bfbaaa"},
	BarBG: lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#222"},
}

func slotColor(s term.ColorSlot, fallback string) lipgloss.Color {
	if c, ok := term.ThemeVitesse.Get(s); ok {
		return lipgloss.Color(c.Hex())
	}
	return lipgloss.Color(fallback)
}

// AccentBold returns a bold style using the primary accent color.
func AccentBold() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(Vitesse.Primary)
}

// MutedStyle is used for backdrop hints.
func MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.Muted)
}

// ChipKeyStyle returns a style for the left-most highlighted chip in the status bar.
func ChipKeyStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(Vitesse.OnAccent).
		Background(Vitesse.Primary).
		Padding(0, 1)
}

// StatusBarBase returns the base style for the status bar background/foreground.
func StatusBarBase() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.BarFG).Background(Vitesse.BarBG)
}
