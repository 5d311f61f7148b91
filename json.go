package prettify

import (
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"
)

// maxJSONIndent matches the cap JSON.stringify puts on its indent argument.
const maxJSONIndent = 10

// FormatJSON re-serializes a JSON value with a two-space indent. Object keys
// keep their input order.
//
//	out, _ := prettify.FormatJSON(`{"b":2,"a":1}`)
//	// {
//	//   "b": 2,
//	//   "a": 1
//	// }
func FormatJSON(text string) (string, error) {
	return JSON(text, DefaultPretty)
}

// MinifyJSON re-serializes a JSON value with no whitespace.
func MinifyJSON(text string) (string, error) {
	return JSON(text, Minified)
}

// JSON parses text with a strict parser and writes the value back in the
// given Mode. A pretty Mode with an empty indent produces the same output
// as Minified.
func JSON(text string, mode Mode) (string, error) {
	v, err := ParseJSON(text)
	if err != nil {
		return "", err
	}
	indent := mode.Indent()
	if mode.IsMinified() {
		indent = ""
	}
	if len(indent) > maxJSONIndent {
		indent = indent[:maxJSONIndent]
	}

	p := &jsonPrinter{indent: indent}
	p.sb.Grow(len(text))
	p.value(v, 0)
	return p.sb.String(), nil
}

// ParseJSON parses text into an ordered Value tree. The whole input must be
// exactly one JSON value, optionally surrounded by whitespace.
func ParseJSON(text string) (Value, error) {
	// Unmarshal into RawMessage validates the complete input, including
	// trailing data, before anything is decoded.
	var raw json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, jsonError(text, err)
	}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, jsonError(text, err)
	}
	return v, nil
}

func jsonError(text string, err error) error {
	fe := &FormatError{
		Kind:   SyntaxError,
		Lang:   LangJSON,
		Reason: firstLine(strings.TrimPrefix(err.Error(), "json: ")),
		Err:    err,
	}
	var se *json.SyntaxError
	if errors.As(err, &se) {
		// Offset counts the offending byte itself, except at end of input.
		off := int(se.Offset)
		if off > 0 && off <= len(text) && !strings.HasPrefix(se.Error(), "unexpected end") {
			off--
		}
		fe.Line, fe.Column = position(text, off)
	}
	return fe
}

type jsonPrinter struct {
	sb     strings.Builder
	indent string
}

func (p *jsonPrinter) newline(depth int) {
	if p.indent == "" {
		return
	}
	p.sb.WriteByte('\n')
	for i := 0; i < depth; i++ {
		p.sb.WriteString(p.indent)
	}
}

func (p *jsonPrinter) value(v Value, depth int) {
	switch t := v.(type) {
	case *Object:
		if len(t.Members) == 0 {
			p.sb.WriteString("{}")
			return
		}
		p.sb.WriteByte('{')
		for i, m := range t.Members {
			if i > 0 {
				p.sb.WriteByte(',')
			}
			p.newline(depth + 1)
			p.quote(m.Key)
			p.sb.WriteByte(':')
			if p.indent != "" {
				p.sb.WriteByte(' ')
			}
			p.value(m.Value, depth+1)
		}
		p.newline(depth)
		p.sb.WriteByte('}')

	case Array:
		if len(t) == 0 {
			p.sb.WriteString("[]")
			return
		}
		p.sb.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				p.sb.WriteByte(',')
			}
			p.newline(depth + 1)
			p.value(e, depth+1)
		}
		p.newline(depth)
		p.sb.WriteByte(']')

	case String:
		p.quote(string(t))
	case Number:
		p.sb.WriteString(formatNumber(string(t)))
	case Bool:
		if t {
			p.sb.WriteString("true")
		} else {
			p.sb.WriteString("false")
		}
	case Null, nil:
		p.sb.WriteString("null")
	}
}

const hex = "0123456789abcdef"

// quote writes s as a JSON string, escaping only what must be escaped:
// the quote, the backslash and control characters. Everything else,
// including '<', '&' and non-ASCII text, is written as-is.
func (p *jsonPrinter) quote(s string) {
	p.sb.WriteByte('"')
	last := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c >= utf8.RuneSelf {
			_, size := utf8.DecodeRuneInString(s[i:])
			i += size
			continue
		}
		if c >= 0x20 && c != '"' && c != '\\' {
			i++
			continue
		}
		p.sb.WriteString(s[last:i])
		switch c {
		case '"':
			p.sb.WriteString(`\"`)
		case '\\':
			p.sb.WriteString(`\\`)
		case '\b':
			p.sb.WriteString(`\b`)
		case '\f':
			p.sb.WriteString(`\f`)
		case '\n':
			p.sb.WriteString(`\n`)
		case '\r':
			p.sb.WriteString(`\r`)
		case '\t':
			p.sb.WriteString(`\t`)
		default:
			p.sb.WriteString(`\u00`)
			p.sb.WriteByte(hex[c>>4])
			p.sb.WriteByte(hex[c&0xF])
		}
		i++
		last = i
	}
	p.sb.WriteString(s[last:])
	p.sb.WriteByte('"')
}
