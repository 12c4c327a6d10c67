// Package config loads the YAML file that sets up the terminal's initial
// appearance and behaviour.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"overterm/internal/term"
)

// Config mirrors config.yaml. Zero values leave the terminal defaults alone.
type Config struct {
	Name      string `yaml:"name,omitempty"`
	Width     int    `yaml:"width,omitempty"`
	Height    int    `yaml:"height,omitempty"`
	CharLimit int    `yaml:"char_limit,omitempty"`

	Theme  string            `yaml:"theme,omitempty"`
	Colors map[string]string `yaml:"colors,omitempty"`

	Autocomplete string `yaml:"autocomplete,omitempty"`
	MinLevel     string `yaml:"min_level,omitempty"`
	Level        string `yaml:"level,omitempty"`
	Autoscroll   *bool  `yaml:"autoscroll,omitempty"`
	Autowrap     *bool  `yaml:"autowrap,omitempty"`

	Panels []string `yaml:"panels,omitempty"`
	// Labels overrides settings bar labels by key (clear, autoscroll,
	// autowrap, log_level, filter_hint); an empty value hides the element.
	Labels     map[string]string `yaml:"labels,omitempty"`
	LevelNames []string          `yaml:"level_names,omitempty"`
}

// Default is what `overterm init` starts from.
func Default() Config {
	return Config{
		Name:         "overterm",
		Theme:        term.ThemeVitesse.Name,
		Autocomplete: term.PositionDown.String(),
		MinLevel:     term.Trace.String(),
		Level:        term.Info.String(),
	}
}

// Load reads path. A missing file yields an empty Config and no error.
func Load(path string) (Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}

// Save writes c to path, creating its directory.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, b, 0o644)
}

// Options fills the construction-time fields of base.
func (c Config) Options(base term.Options) term.Options {
	if c.Name != "" {
		base.Name = c.Name
	}
	if c.Width > 0 {
		base.Width = c.Width
	}
	if c.Height > 0 {
		base.Height = c.Height
	}
	if c.CharLimit > 0 {
		base.CharLimit = c.CharLimit
	}
	return base
}

// FramePanels returns the settings bar layout; nil means the default.
func (c Config) FramePanels() ([]term.Panel, error) {
	if c.Panels == nil {
		return nil, nil
	}
	out := make([]term.Panel, 0, len(c.Panels))
	for _, name := range c.Panels {
		p, ok := term.ParsePanel(name)
		if !ok {
			return nil, fmt.Errorf("unknown panel %q", name)
		}
		out = append(out, p)
	}
	return out, nil
}

// Apply pushes the runtime settings into t. Every valid setting is applied;
// the invalid ones are reported together.
func (c Config) Apply(t *term.Terminal) error {
	var errs []error

	if c.Theme != "" {
		if th, ok := term.FindTheme(c.Theme); ok {
			t.SetTheme(th)
		} else {
			errs = append(errs, fmt.Errorf("unknown theme %q", c.Theme))
		}
	}
	for name, value := range c.Colors {
		slot, ok := term.ParseColorSlot(name)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown color slot %q", name))
			continue
		}
		col, err := term.ParseColor(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("color %s: %w", name, err))
			continue
		}
		t.Theme().Set(slot, col)
	}

	if c.Autocomplete != "" {
		if p, ok := term.ParsePosition(c.Autocomplete); ok {
			t.SetAutocompletePos(p)
		} else {
			errs = append(errs, fmt.Errorf("invalid autocomplete position %q", c.Autocomplete))
		}
	}
	if c.MinLevel != "" {
		if s, ok := term.ParseSeverity(c.MinLevel); ok {
			t.SetMinLogLevel(s)
		} else {
			errs = append(errs, fmt.Errorf("invalid min_level %q", c.MinLevel))
		}
	}
	if c.Level != "" {
		if s, ok := term.ParseSeverity(c.Level); ok {
			t.SetLogLevel(max(s, t.MinLogLevel()))
		} else {
			errs = append(errs, fmt.Errorf("invalid level %q", c.Level))
		}
	}
	if c.Autoscroll != nil {
		t.SetAutoscroll(*c.Autoscroll)
	}
	if c.Autowrap != nil {
		t.SetAutowrap(*c.Autowrap)
	}

	l := t.Labels()
	for key, v := range c.Labels {
		switch strings.ToLower(key) {
		case "clear":
			l.Clear = v
		case "autoscroll":
			l.Autoscroll = v
		case "autowrap":
			l.Autowrap = v
		case "log_level":
			l.LogLevel = v
		case "filter_hint":
			l.FilterHint = v
		default:
			errs = append(errs, fmt.Errorf("unknown label %q", key))
		}
	}
	switch n := len(c.LevelNames); n {
	case 0:
	case 7:
		ln := c.LevelNames
		t.SetLevelListText(ln[0], ln[1], ln[2], ln[3], ln[4], ln[5], ln[6])
	default:
		errs = append(errs, fmt.Errorf("level_names needs 7 entries, got %d", n))
	}

	if _, err := c.FramePanels(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
