package session

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shabbyrobe/prettify"
)

// Combo is a normalized key combination such as ctrl+shift+enter.
type Combo struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Key   string
}

func (c Combo) String() string {
	var parts []string
	if c.Ctrl {
		parts = append(parts, "ctrl")
	}
	if c.Alt {
		parts = append(parts, "alt")
	}
	if c.Shift {
		parts = append(parts, "shift")
	}
	return strings.Join(append(parts, c.Key), "+")
}

var keyAliases = map[string]string{
	"return": "enter",
	"esc":    "escape",
	"del":    "delete",
}

// ParseCombo reads a combo like "Ctrl+Shift+Enter". Modifiers may come in
// any order and case; cmd, command, meta and super are treated as ctrl so
// that one binding serves both Linux and macOS keyboards.
func ParseCombo(s string) (Combo, error) {
	var c Combo
	for _, part := range strings.Split(s, "+") {
		p := strings.ToLower(strings.TrimSpace(part))
		switch p {
		case "ctrl", "control", "cmd", "command", "meta", "super":
			c.Ctrl = true
		case "alt", "option", "opt":
			c.Alt = true
		case "shift":
			c.Shift = true
		case "":
			return Combo{}, fmt.Errorf("session: empty key in combo %q", s)
		default:
			if c.Key != "" {
				return Combo{}, fmt.Errorf("session: combo %q has more than one key", s)
			}
			if alias, ok := keyAliases[p]; ok {
				p = alias
			}
			c.Key = p
		}
	}
	if c.Key == "" {
		return Combo{}, fmt.Errorf("session: combo %q has no key", s)
	}
	return c, nil
}

// Handler runs when its combo is dispatched.
type Handler func() error

// Keymap maps key combos to handlers. A later Bind for the same combo
// replaces the earlier one.
type Keymap struct {
	bindings map[Combo]Handler
}

// NewKeymap returns an empty Keymap.
func NewKeymap() *Keymap {
	return &Keymap{bindings: map[Combo]Handler{}}
}

// Bind registers h for combo.
func (k *Keymap) Bind(combo string, h Handler) error {
	c, err := ParseCombo(combo)
	if err != nil {
		return err
	}
	k.bindings[c] = h
	return nil
}

// Dispatch runs the handler bound to combo. It reports whether there was
// one, along with the handler's error.
func (k *Keymap) Dispatch(combo string) (bool, error) {
	c, err := ParseCombo(combo)
	if err != nil {
		return false, err
	}
	h, ok := k.bindings[c]
	if !ok {
		return false, nil
	}
	return true, h()
}

// Combos lists the bound combos in a stable order.
func (k *Keymap) Combos() []string {
	out := make([]string, 0, len(k.bindings))
	for c := range k.bindings {
		out = append(out, c.String())
	}
	sort.Strings(out)
	return out
}

// DefaultKeymap binds the editor shortcuts to s:
//
//	ctrl+enter        Format
//	ctrl+shift+enter  Minify
//	ctrl+l            Clear
//	ctrl+c            Copy
//	ctrl+1            JSON tab
//	ctrl+2            XML tab
func DefaultKeymap(s *Session) *Keymap {
	k := NewKeymap()
	for combo, h := range map[string]Handler{
		"ctrl+enter":       s.Format,
		"ctrl+shift+enter": s.Minify,
		"ctrl+l":           func() error { s.Clear(); return nil },
		"ctrl+c":           s.Copy,
		"ctrl+1":           func() error { return s.SwitchTab(prettify.LangJSON) },
		"ctrl+2":           func() error { return s.SwitchTab(prettify.LangXML) },
	} {
		if err := k.Bind(combo, h); err != nil {
			panic(err)
		}
	}
	return k
}
