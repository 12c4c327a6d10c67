package ui

import (
	"overterm/internal/config"
	"overterm/internal/term"
)

// apply pushes c into t and keeps the settings bar layout for rendering.
func (h *host) apply(t *term.Terminal, c config.Config) error {
	panels, err := c.FramePanels()
	if err == nil {
		h.panels = panels
	}
	return c.Apply(t)
}

// reload re-reads the config file. Problems are reported in the
// scrollback; whatever is valid still applies.
func (h *host) reload(t *term.Terminal) {
	if h.cfgPath == "" {
		t.AddTextErr("no config file")
		return
	}
	c, err := config.Load(h.cfgPath)
	if err != nil {
		t.AddTextErrf("reload: %v", err)
		return
	}
	if err := h.apply(t, c); err != nil {
		t.AddTextErrf("reload: %v", err)
		return
	}
	t.AddTextf("reloaded %s", h.cfgPath)
}

func (h *host) reloadCommand() term.Command {
	return term.Command{
		Name:        "reload_config",
		Description: "re-reads the config file",
		Call:        func(arg *term.Arguments) { h.reload(arg.Term) },
	}
}
