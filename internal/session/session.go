// Package session models the state of an interactive formatting session:
// one text buffer per language tab, the last error, the last action and a
// short-lived toast. It has no I/O of its own apart from the clipboard.
package session

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rivo/uniseg"

	"github.com/shabbyrobe/prettify"
)

// ToastDuration is how long a toast stays visible.
const ToastDuration = 1200 * time.Millisecond

// CopiedToast is shown after a successful Copy.
const CopiedToast = "Copied!"

// Sample documents inserted by InsertSample.
const (
	SampleJSON = "{\n  \"name\": \"Ada\",\n  \"skills\": [\"math\", \"logic\"],\n  \"active\": true\n}"
	SampleXML  = "<user>\n  <name>Ada</name>\n  <skills>\n    <skill>math</skill>\n    <skill>logic</skill>\n  </skills>\n  <active>true</active>\n</user>"
)

// ErrNoClipboard is returned by Copy when the Session has no clipboard.
var ErrNoClipboard = errors.New("session: no clipboard")

type tab struct {
	text string
	err  string
}

// Session is the editor state. The zero value is not usable; call New.
type Session struct {
	lang       prettify.Language
	tabs       [2]tab
	meta       Meta
	toast      string
	toastUntil time.Time

	clipboard ClipboardWriter
	now       func() time.Time
	indent    string
}

// Option configures a Session.
type Option func(s *Session)

// WithClock replaces time.Now. Durations and relative times are measured
// with it.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithClipboard sets where Copy writes to.
func WithClipboard(c ClipboardWriter) Option {
	return func(s *Session) { s.clipboard = c }
}

// WithTab selects the initial tab. The default is JSON, which is also kept
// when lang is not a known language.
func WithTab(lang prettify.Language) Option {
	return func(s *Session) { s.lang = lang }
}

// WithIndent sets the indent unit used by Format.
func WithIndent(indent string) Option {
	return func(s *Session) { s.indent = indent }
}

// New creates a Session on the JSON tab with empty buffers.
func New(options ...Option) *Session {
	s := &Session{now: time.Now, indent: prettify.DefaultIndent}
	for _, o := range options {
		o(s)
	}
	if s.lang.Name() == "" {
		s.lang = prettify.LangJSON
	}
	return s
}

func (s *Session) cur() *tab { return &s.tabs[s.lang] }

// Tab returns the active tab.
func (s *Session) Tab() prettify.Language { return s.lang }

// SwitchTab makes lang the active tab. Each tab keeps its own buffer and
// error.
func (s *Session) SwitchTab(lang prettify.Language) error {
	if lang.Name() == "" {
		return fmt.Errorf("session: unknown tab %d", int(lang))
	}
	s.lang = lang
	return nil
}

// Text returns the active buffer.
func (s *Session) Text() string { return s.cur().text }

// Err returns the active tab's error message, or "".
func (s *Session) Err() string { return s.cur().err }

// Edit replaces the active buffer. Any error shown for the tab is cleared.
func (s *Session) Edit(text string) {
	t := s.cur()
	t.text = text
	t.err = ""
}

// InsertSample replaces the active buffer with the tab's sample document.
func (s *Session) InsertSample() {
	if s.lang == prettify.LangXML {
		s.Edit(SampleXML)
	} else {
		s.Edit(SampleJSON)
	}
}

// Placeholder is the hint shown for an empty buffer.
func (s *Session) Placeholder() string {
	return "Paste " + s.lang.Name() + " here…"
}

// Format pretty-prints the active buffer in place. On failure the buffer is
// left untouched and the error is kept for display.
func (s *Session) Format() error {
	return s.run(ActionFormat, prettify.Pretty(s.indent))
}

// Minify minifies the active buffer in place.
func (s *Session) Minify() error {
	return s.run(ActionMinify, prettify.Minified)
}

func (s *Session) run(action Action, mode prettify.Mode) error {
	t := s.cur()
	start := s.now()
	out, err := prettify.Format(t.text, s.lang, mode)
	end := s.now()
	s.record(action, end, end.Sub(start))
	if err != nil {
		t.err = err.Error()
		return err
	}
	t.text = out
	t.err = ""
	return nil
}

// Copy writes the active buffer to the clipboard and raises the "Copied!"
// toast. The action is recorded even if the clipboard fails.
func (s *Session) Copy() error {
	now := s.now()
	s.record(ActionCopy, now, 0)
	if s.clipboard == nil {
		return ErrNoClipboard
	}
	if err := s.clipboard.WriteText(s.cur().text); err != nil {
		return err
	}
	s.toast = CopiedToast
	s.toastUntil = now.Add(ToastDuration)
	return nil
}

// Clear empties the active buffer.
func (s *Session) Clear() {
	s.Edit("")
	s.record(ActionClear, s.now(), 0)
}

func (s *Session) record(action Action, at time.Time, d time.Duration) {
	if d < 0 {
		d = 0
	}
	s.meta = Meta{Action: action, At: at, Duration: d}
}

// Meta returns the last recorded action.
func (s *Session) Meta() Meta { return s.meta }

// Toast returns the visible toast message, or "" once it has expired.
func (s *Session) Toast() string {
	if s.toast == "" || !s.now().Before(s.toastUntil) {
		return ""
	}
	return s.toast
}

// Stats counts the active buffer.
func (s *Session) Stats() Stats { return Count(s.cur().text) }

// Status renders the status strip: the tab, then the last action with its
// relative time and duration when there is one.
//
//	Tab: XML · Last: Format · just now · Render: 3 ms
func (s *Session) Status() string {
	parts := []string{"Tab: " + s.lang.Name()}
	if s.meta.Action != ActionNone {
		parts = append(parts,
			"Last: "+s.meta.Action.String()+" · "+s.meta.Relative(s.now()),
			fmt.Sprintf("Render: %d ms", s.meta.Duration.Round(time.Millisecond).Milliseconds()),
		)
	}
	return strings.Join(parts, " · ")
}

// Stats are the counters shown under the editor.
type Stats struct {
	Chars int
	Lines int
}

func (s Stats) String() string {
	return fmt.Sprintf("chars: %d · lines: %d", s.Chars, s.Lines)
}

var lineBreak = regexp.MustCompile(`\r?\n`)

// Count returns the number of user-perceived characters and lines in text.
// An empty text is one line.
func Count(text string) Stats {
	return Stats{
		Chars: uniseg.GraphemeClusterCount(text),
		Lines: len(lineBreak.Split(text, -1)),
	}
}
