package prettify

import (
	"fmt"
	"strings"
)

// DefaultIndent is the indent unit used by FormatXML and FormatJSON.
const DefaultIndent = "  "

// Mode selects pretty or minified output.
type Mode struct {
	indent string
	minify bool
}

var (
	// Minified output has no whitespace that is not significant.
	Minified = Mode{minify: true}

	// DefaultPretty indents each nesting level by DefaultIndent.
	DefaultPretty = Pretty(DefaultIndent)
)

// Pretty returns a Mode that puts one construct per line and indents each
// nesting level by indent. An empty indent still breaks lines.
func Pretty(indent string) Mode { return Mode{indent: indent} }

// IsMinified reports whether m is the minified mode.
func (m Mode) IsMinified() bool { return m.minify }

// Indent returns the indent unit of a pretty Mode.
func (m Mode) Indent() string { return m.indent }

func (m Mode) String() string {
	if m.minify {
		return "minified"
	}
	return fmt.Sprintf("pretty(%q)", m.indent)
}

// Language is one of the two text formats this package handles.
type Language int

const (
	LangJSON Language = iota
	LangXML
)

// Name returns the label used in error messages: "JSON" or "XML".
func (l Language) Name() string {
	switch l {
	case LangJSON:
		return "JSON"
	case LangXML:
		return "XML"
	}
	return ""
}

func (l Language) String() string {
	if s := l.Name(); s != "" {
		return s
	}
	return fmt.Sprintf("Language(%d)", int(l))
}

// ParseLanguage accepts "json" or "xml" in any case.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return LangJSON, nil
	case "xml":
		return LangXML, nil
	}
	return 0, fmt.Errorf("prettify: unknown language %q", s)
}

// Format formats or minifies text in the given language.
func Format(text string, lang Language, mode Mode) (string, error) {
	switch lang {
	case LangJSON:
		return JSON(text, mode)
	case LangXML:
		return XML(text, mode)
	}
	return "", fmt.Errorf("prettify: unknown language %s", lang)
}
