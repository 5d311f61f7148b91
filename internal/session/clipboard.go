package session

import (
	"encoding/base64"
	"io"
)

// ClipboardWriter puts text on a clipboard.
type ClipboardWriter interface {
	WriteText(text string) error
}

// OSC52Clipboard sets the terminal's clipboard with an OSC 52 escape
// sequence written to W. Most terminal emulators honour it, including over
// SSH.
type OSC52Clipboard struct {
	W io.Writer
}

// WriteText implements ClipboardWriter.
func (c OSC52Clipboard) WriteText(text string) error {
	seq := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\a"
	_, err := io.WriteString(c.W, seq)
	return err
}

// MemoryClipboard keeps the last copied text. It stands in for a system
// clipboard where there is none.
type MemoryClipboard struct {
	Text string
}

// WriteText implements ClipboardWriter.
func (c *MemoryClipboard) WriteText(text string) error {
	c.Text = text
	return nil
}
