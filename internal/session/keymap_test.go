package session

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shabbyrobe/prettify"
)

func TestParseCombo(t *testing.T) {
	for _, tc := range []struct {
		in  string
		out string
	}{
		{"ctrl+enter", "ctrl+enter"},
		{"Shift+Ctrl+Enter", "ctrl+shift+enter"},
		{"cmd+L", "ctrl+l"},
		{"meta + return", "ctrl+enter"},
		{"alt+shift+x", "alt+shift+x"},
		{"f5", "f5"},
	} {
		c, err := ParseCombo(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.out, c.String(), tc.in)
	}

	for _, bad := range []string{"", "ctrl+", "ctrl+shift", "a+b"} {
		_, err := ParseCombo(bad)
		assert.Error(t, err, bad)
	}
}

func TestKeymapBindDispatch(t *testing.T) {
	k := NewKeymap()
	calls := 0
	require.NoError(t, k.Bind("ctrl+k", func() error { calls++; return nil }))

	ok, err := k.Dispatch("Cmd+K")
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)

	ok, err = k.Dispatch("ctrl+j")
	assert.False(t, ok)
	assert.NoError(t, err)

	boom := errors.New("boom")
	require.NoError(t, k.Bind("ctrl+k", func() error { return boom }))
	ok, err = k.Dispatch("ctrl+k")
	assert.True(t, ok)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)

	assert.Error(t, k.Bind("ctrl+", nil))
}

func TestDefaultKeymap(t *testing.T) {
	var out bytes.Buffer
	s, _, _ := newTestSession(WithClipboard(OSC52Clipboard{W: &out}))
	k := DefaultKeymap(s)
	assert.Equal(t, []string{"ctrl+1", "ctrl+2", "ctrl+c", "ctrl+enter", "ctrl+l", "ctrl+shift+enter"}, k.Combos())

	dispatch := func(combo string) {
		t.Helper()
		ok, err := k.Dispatch(combo)
		require.True(t, ok, combo)
		require.NoError(t, err, combo)
	}

	dispatch("ctrl+2")
	assert.Equal(t, prettify.LangXML, s.Tab())

	s.Edit("<a> <b/> </a>")
	dispatch("cmd+enter")
	assert.Equal(t, "<a>\n  <b/>\n</a>", s.Text())

	dispatch("ctrl+shift+enter")
	assert.Equal(t, "<a><b/></a>", s.Text())

	dispatch("ctrl+c")
	assert.Equal(t, "\x1b]52;c;PGE+PGIvPjwvYT4=\a", out.String())

	dispatch("ctrl+l")
	assert.Equal(t, "", s.Text())

	dispatch("ctrl+1")
	assert.Equal(t, prettify.LangJSON, s.Tab())

	s.Edit("nope")
	ok, err := k.Dispatch("ctrl+enter")
	assert.True(t, ok)
	assert.ErrorIs(t, err, prettify.ErrSyntax)
}
