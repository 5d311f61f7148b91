package prettify

import (
	"bytes"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset is the character encoding an XML input was stored in. A zero
// Charset is plain UTF-8 with no byte order mark.
type Charset struct {
	Name     string
	Encoding encoding.Encoding
}

// IsUTF8 reports whether no transcoding is needed.
func (c Charset) IsUTF8() bool { return c.Encoding == nil }

var declEncoding = regexp.MustCompile(`^\s*<\?xml\s[^>]*?\bencoding\s*=\s*["']([^"']*)["']`)

// sniffLen bounds how far DecodeXML looks for the XML declaration.
const sniffLen = 1024

// DecodeXML converts raw XML bytes to UTF-8 text.
//
// A UTF-8 or UTF-16 byte order mark decides the encoding. Without one, the
// encoding="..." of the XML declaration is honoured, looked up by its IANA
// or WHATWG label:
//
//	text, cs, err := prettify.DecodeXML(raw)
//	out, err := prettify.FormatXML(text)
//	encoded, err := cs.Encode(out)
//
// Anything else must be valid UTF-8.
func DecodeXML(b []byte) (string, Charset, error) {
	var cs Charset
	switch {
	case bytes.HasPrefix(b, []byte{0xEF, 0xBB, 0xBF}):
		cs = Charset{Name: "UTF-8", Encoding: unicode.UTF8BOM}
	case bytes.HasPrefix(b, []byte{0xFE, 0xFF}):
		cs = Charset{Name: "UTF-16BE", Encoding: unicode.UTF16(unicode.BigEndian, unicode.UseBOM)}
	case bytes.HasPrefix(b, []byte{0xFF, 0xFE}):
		cs = Charset{Name: "UTF-16LE", Encoding: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)}
	default:
		head := b
		if len(head) > sniffLen {
			head = head[:sniffLen]
		}
		if m := declEncoding.FindSubmatch(head); m != nil {
			name := string(m[1])
			if !isUTF8Label(name) {
				if err := CheckEncoding(name); err != nil {
					return "", cs, newError(UnsupportedError, LangXML, "", -1, "invalid encoding name %q", name)
				}
				enc, err := htmlindex.Get(name)
				if err != nil {
					return "", cs, newError(UnsupportedError, LangXML, "", -1, "unsupported encoding %q", name)
				}
				cs = Charset{Name: name, Encoding: enc}
			}
		}
	}

	if cs.Encoding == nil {
		if !utf8.Valid(b) {
			text := string(b)
			return "", cs, newError(SyntaxError, LangXML, text, invalidUTF8(b), "input is not valid UTF-8")
		}
		return string(b), cs, nil
	}

	out, err := cs.Encoding.NewDecoder().Bytes(b)
	if err != nil {
		return "", cs, &FormatError{Kind: SyntaxError, Lang: LangXML, Reason: "cannot decode " + cs.Name + " input", Err: err}
	}
	return string(out), cs, nil
}

func isUTF8Label(name string) bool {
	return strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8")
}

func invalidUTF8(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(b)
}

// Encode converts UTF-8 text back to the charset. Runes the charset cannot
// represent are written as numeric character references.
func (c Charset) Encode(s string) ([]byte, error) {
	if c.Encoding == nil {
		return []byte(s), nil
	}
	return encoding.HTMLEscapeUnsupported(c.Encoding.NewEncoder()).Bytes([]byte(s))
}

// NewWriter returns a writer that re-encodes UTF-8 written to it into the
// charset. Close must be called to flush a trailing partial rune.
func (c Charset) NewWriter(w io.Writer) io.WriteCloser {
	if c.Encoding == nil {
		return nopCloser{w}
	}
	return transform.NewWriter(w, encoding.HTMLEscapeUnsupported(c.Encoding.NewEncoder()))
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
