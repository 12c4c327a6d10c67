package settings

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"overterm/internal/config"
	"overterm/internal/term"
)

// Run launches an interactive form seeded with c and returns the edited
// config. Nothing is written; the caller saves the result.
func Run(c config.Config) (config.Config, error) {
	theme := c.Theme
	pos := c.Autocomplete
	if pos == "" {
		pos = term.PositionDown.String()
	}
	minLevel := c.MinLevel
	if minLevel == "" {
		minLevel = term.Trace.String()
	}
	level := c.Level
	if level == "" {
		level = term.Info.String()
	}
	autowrap := c.Autowrap == nil || *c.Autowrap
	panels := c.Panels
	if panels == nil {
		for _, p := range term.DefaultPanels {
			panels = append(panels, p.String())
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("overterm").Description("Initial terminal settings, saved to config.yaml"),
			huh.NewSelect[string]().Title("Theme").Options(themeOptions()...).Value(&theme),
			huh.NewSelect[string]().Title("Completion").
				Options(huh.NewOptions(term.PositionDown.String(), term.PositionUp.String(), term.PositionNowhere.String())...).
				Value(&pos),
			huh.NewSelect[string]().Title("Lowest level").Options(levelOptions(term.Critical)...).Value(&minLevel),
			huh.NewSelect[string]().Title("Level").Options(levelOptions(term.LevelOff)...).Value(&level),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().Title("Settings bar").Options(panelOptions()...).Value(&panels),
			huh.NewConfirm().Title("Wrap long lines").Value(&autowrap),
		),
	).WithTheme(formTheme()).WithWidth(60)

	if err := form.Run(); err != nil {
		return c, err // form canceled or failed
	}

	c.Theme = theme
	c.Autocomplete = pos
	c.MinLevel = minLevel
	c.Level = level
	c.Autowrap = &autowrap
	c.Panels = panels
	return c, nil
}

// Light theme tweaks inspired by freeze/interactive.go
func formTheme() *huh.Theme {
	green := lipgloss.Color("#03BF87")
	theme := huh.ThemeCharm()
	theme.FieldSeparator = lipgloss.NewStyle()
	theme.Blurred.Title = theme.Blurred.Title.Width(18).Foreground(lipgloss.Color("7"))
	theme.Focused.Title = theme.Focused.Title.Width(18).Foreground(green).Bold(true)
	theme.Blurred.SelectedOption = theme.Blurred.SelectedOption.Foreground(lipgloss.Color("243"))
	theme.Focused.SelectedOption = lipgloss.NewStyle().Foreground(green)
	theme.Focused.Base.BorderForeground(green)
	return theme
}

func themeOptions() []huh.Option[string] {
	var out []huh.Option[string]
	for _, th := range term.Themes() {
		out = append(out, huh.NewOption(th.Name, th.Name))
	}
	return out
}

func levelOptions(upTo term.Severity) []huh.Option[string] {
	var out []huh.Option[string]
	for s := term.Trace; s <= upTo; s++ {
		out = append(out, huh.NewOption(s.String(), s.String()))
	}
	return out
}

func panelOptions() []huh.Option[string] {
	var out []huh.Option[string]
	for _, p := range term.AllPanels() {
		out = append(out, huh.NewOption(p.String(), p.String()))
	}
	return out
}
