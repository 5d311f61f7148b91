package session

import (
	"fmt"
	"math"
	"time"
)

// Action is a user action that is reported in the status strip.
type Action int

const (
	ActionNone Action = iota
	ActionFormat
	ActionMinify
	ActionCopy
	ActionClear
)

var actionNames = [...]string{
	ActionNone:   "",
	ActionFormat: "Format",
	ActionMinify: "Minify",
	ActionCopy:   "Copy",
	ActionClear:  "Clear",
}

func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Meta describes the last action: what it was, when it finished and how
// long it took.
type Meta struct {
	Action   Action
	At       time.Time
	Duration time.Duration
}

// Relative describes how long ago the action happened: "" when there was
// none, "just now" under a second, otherwise whole seconds rounded to the
// nearest, like "3s ago".
func (m Meta) Relative(now time.Time) string {
	if m.Action == ActionNone || m.At.IsZero() {
		return ""
	}
	diff := now.Sub(m.At)
	if diff < 0 {
		diff = 0
	}
	if diff < time.Second {
		return "just now"
	}
	return fmt.Sprintf("%ds ago", int64(math.Floor(diff.Seconds()+0.5)))
}
