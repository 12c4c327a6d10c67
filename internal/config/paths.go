package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// AppName names the config directory.
const AppName = "overterm"

// Dir returns the overterm config directory under the user config base.
// On Linux, this typically resolves to $XDG_CONFIG_HOME/overterm; on macOS
// to ~/Library/Application Support/overterm; and on Windows to
// %AppData%/overterm. Falls back to HOME when UserConfigDir is unavailable.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(base) == "" {
		if home, herr := os.UserHomeDir(); herr == nil {
			base = home
		} else {
			return "", errors.New("cannot determine config directory")
		}
	}
	return filepath.Join(base, AppName), nil
}

// Path returns the default config file location.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
