// Package prefs stores user preferences between runs.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Theme is the color theme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark".
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("prefs: unknown theme %q", s)
}

// Toggle returns the other theme. An unset theme counts as dark, so the
// first toggle selects light.
func (t Theme) Toggle() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

// Prefs is the preferences file.
type Prefs struct {
	Theme Theme `yaml:"theme,omitempty"`
}

// DefaultPath is prefs.yaml in the prettify directory under the user's
// configuration directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "prettify", "prefs.yaml"), nil
}

// Load reads the preferences at path. A missing file gives zero Prefs and
// no error.
func Load(path string) (Prefs, error) {
	var p Prefs
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	} else if err != nil {
		return p, err
	}
	if err := yaml.Unmarshal(b, &p); err != nil {
		return Prefs{}, fmt.Errorf("prefs: %s: %w", path, err)
	}
	if p.Theme != "" {
		if _, err := ParseTheme(string(p.Theme)); err != nil {
			return Prefs{}, fmt.Errorf("%w in %s", err, path)
		}
	}
	return p, nil
}

// Save writes p to path, creating the parent directory if needed.
func Save(path string, p Prefs) error {
	b, err := yaml.Marshal(&p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
