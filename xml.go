package prettify

import (
	"strings"
)

// FormatXML pretty-prints an XML document with a two-space indent.
//
//	out, err := prettify.FormatXML("<a><b>1</b><c>2</c></a>")
//	// <a>
//	//   <b>1</b>
//	//   <c>2</c>
//	// </a>
func FormatXML(text string) (string, error) {
	return XML(text, DefaultPretty)
}

// MinifyXML removes all whitespace between tags. Text that is not purely
// whitespace is kept verbatim.
func MinifyXML(text string) (string, error) {
	return XML(text, Minified)
}

// XML parses text and writes it back in the given Mode. On failure it
// returns a *FormatError and no output.
func XML(text string, mode Mode) (string, error) {
	doc, err := ParseXML(text)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(len(text))
	w := Open(&sb, WithMode(mode))

	ec := &ErrCollector{}
	ec.Do(w.WriteDoc(doc), w.Flush())
	if ec.Err != nil {
		return "", ec.Err
	}
	return sb.String(), nil
}
