package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shabbyrobe/prettify"
)

type fakeClock struct {
	t    time.Time
	step time.Duration
}

func (c *fakeClock) now() time.Time {
	t := c.t
	c.t = c.t.Add(c.step)
	return t
}

func newTestSession(opts ...Option) (*Session, *fakeClock, *MemoryClipboard) {
	clock := &fakeClock{t: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}
	clip := &MemoryClipboard{}
	s := New(append([]Option{WithClock(clock.now), WithClipboard(clip)}, opts...)...)
	return s, clock, clip
}

func TestSessionDefaults(t *testing.T) {
	s := New()
	assert.Equal(t, prettify.LangJSON, s.Tab())
	assert.Equal(t, "", s.Text())
	assert.Equal(t, "", s.Err())
	assert.Equal(t, ActionNone, s.Meta().Action)
	assert.Equal(t, "Tab: JSON", s.Status())
	assert.Equal(t, "Paste JSON here…", s.Placeholder())
}

func TestSessionFormat(t *testing.T) {
	s, clock, _ := newTestSession(WithTab(prettify.LangXML))
	clock.step = 3 * time.Millisecond

	s.Edit("<a><b>1</b></a>")
	require.NoError(t, s.Format())
	assert.Equal(t, "<a>\n  <b>1</b>\n</a>", s.Text())
	assert.Equal(t, "", s.Err())

	m := s.Meta()
	assert.Equal(t, ActionFormat, m.Action)
	assert.Equal(t, 3*time.Millisecond, m.Duration)

	require.NoError(t, s.Minify())
	assert.Equal(t, "<a><b>1</b></a>", s.Text())
	assert.Equal(t, ActionMinify, s.Meta().Action)
}

func TestSessionFormatIndent(t *testing.T) {
	s, _, _ := newTestSession(WithIndent("\t"))
	s.Edit(`{"a":[1]}`)
	require.NoError(t, s.Format())
	assert.Equal(t, "{\n\t\"a\": [\n\t\t1\n\t]\n}", s.Text())
}

func TestSessionFormatError(t *testing.T) {
	s, _, _ := newTestSession(WithTab(prettify.LangXML))
	s.Edit("<a><b></a>")

	err := s.Format()
	require.Error(t, err)
	assert.True(t, errors.Is(err, prettify.ErrSyntax))
	assert.Equal(t, "<a><b></a>", s.Text(), "buffer must be untouched")
	assert.Equal(t, "Invalid XML: mismatched closing tag: expected </b>, found </a> (line 1, column 7)", s.Err())
	assert.Equal(t, ActionFormat, s.Meta().Action)

	// any edit clears the error, even one that leaves the input invalid
	s.Edit("<a><b></a> ")
	assert.Equal(t, "", s.Err())
}

func TestSessionEmptyBufferFails(t *testing.T) {
	s, _, _ := newTestSession()
	require.Error(t, s.Format())
	assert.Equal(t, "Invalid JSON: unexpected end of JSON input (line 1, column 1)", s.Err())
}

func TestSessionTabsKeepState(t *testing.T) {
	s, _, _ := newTestSession()
	s.Edit("{")
	require.Error(t, s.Format())

	require.NoError(t, s.SwitchTab(prettify.LangXML))
	assert.Equal(t, "", s.Text())
	assert.Equal(t, "", s.Err())
	s.InsertSample()
	assert.Equal(t, SampleXML, s.Text())

	require.NoError(t, s.SwitchTab(prettify.LangJSON))
	assert.Equal(t, "{", s.Text())
	assert.Contains(t, s.Err(), "Invalid JSON: ")

	assert.Error(t, s.SwitchTab(prettify.Language(5)))
	assert.Equal(t, prettify.LangJSON, s.Tab())
}

func TestSessionSamples(t *testing.T) {
	s, _, _ := newTestSession(WithTab(prettify.LangXML))
	s.InsertSample()
	require.NoError(t, s.Format())
	assert.Equal(t, SampleXML, s.Text(), "XML sample is already formatted")

	require.NoError(t, s.SwitchTab(prettify.LangJSON))
	s.InsertSample()
	require.NoError(t, s.Minify())
	assert.Equal(t, `{"name":"Ada","skills":["math","logic"],"active":true}`, s.Text())
}

func TestSessionCopyToast(t *testing.T) {
	s, clock, clip := newTestSession()
	s.Edit("[1]")
	require.NoError(t, s.Copy())
	assert.Equal(t, "[1]", clip.Text)
	assert.Equal(t, ActionCopy, s.Meta().Action)
	assert.Equal(t, time.Duration(0), s.Meta().Duration)

	assert.Equal(t, CopiedToast, s.Toast())
	clock.t = clock.t.Add(ToastDuration - time.Millisecond)
	assert.Equal(t, CopiedToast, s.Toast())
	clock.t = clock.t.Add(time.Millisecond)
	assert.Equal(t, "", s.Toast())
}

type failingClipboard struct{}

func (failingClipboard) WriteText(string) error { return errors.New("no display") }

func TestSessionCopyFailure(t *testing.T) {
	s, _, _ := newTestSession(WithClipboard(failingClipboard{}))
	s.Edit("x")
	assert.EqualError(t, s.Copy(), "no display")
	assert.Equal(t, "", s.Toast())
	assert.Equal(t, ActionCopy, s.Meta().Action)

	s = New(WithClipboard(nil))
	assert.ErrorIs(t, s.Copy(), ErrNoClipboard)
}

func TestSessionClear(t *testing.T) {
	s, _, _ := newTestSession()
	s.Edit("{")
	require.Error(t, s.Minify())
	s.Clear()
	assert.Equal(t, "", s.Text())
	assert.Equal(t, "", s.Err())
	assert.Equal(t, ActionClear, s.Meta().Action)
}

func TestSessionStatus(t *testing.T) {
	s, clock, _ := newTestSession(WithTab(prettify.LangXML))
	clock.step = 2 * time.Millisecond
	s.Edit("<a/>")
	require.NoError(t, s.Format())

	clock.step = 0
	assert.Equal(t, "Tab: XML · Last: Format · just now · Render: 2 ms", s.Status())

	clock.t = clock.t.Add(2600 * time.Millisecond)
	assert.Equal(t, "Tab: XML · Last: Format · 3s ago · Render: 2 ms", s.Status())
}

func TestCount(t *testing.T) {
	for _, tc := range []struct {
		text  string
		chars int
		lines int
	}{
		{"", 0, 1},
		{"abc", 3, 1},
		{"a\nb", 3, 2},
		{"a\r\nb\n", 4, 3},
		{"é", 1, 1},
		{"\U0001F1F3\U0001F1FF", 1, 1},
	} {
		st := Count(tc.text)
		assert.Equal(t, tc.chars, st.Chars, "chars in %q", tc.text)
		assert.Equal(t, tc.lines, st.Lines, "lines in %q", tc.text)
	}
	assert.Equal(t, "chars: 3 · lines: 2", Count("a\nb").String())
}

func TestUnknownInitialTab(t *testing.T) {
	s := New(WithTab(prettify.Language(5)))
	assert.Equal(t, prettify.LangJSON, s.Tab())
	s.Edit("[1]")
	require.NoError(t, s.Minify())
	assert.Equal(t, "[1]", s.Text())

	s = New(WithTab(prettify.Language(-1)))
	assert.Equal(t, prettify.LangJSON, s.Tab())
}
