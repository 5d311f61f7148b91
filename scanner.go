package prettify

import (
	"strings"

	"github.com/rivo/uniseg"
)

// scanner is a forward-only cursor over the source text. All offsets are
// byte offsets into src.
type scanner struct {
	src string
	pos int
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) rest() string { return s.src[s.pos:] }

func (s *scanner) peek() byte {
	if s.pos < len(s.src) {
		return s.src[s.pos]
	}
	return 0
}

func (s *scanner) has(prefix string) bool {
	return strings.HasPrefix(s.src[s.pos:], prefix)
}

// consume advances past prefix if the input starts with it.
func (s *scanner) consume(prefix string) bool {
	if s.has(prefix) {
		s.pos += len(prefix)
		return true
	}
	return false
}

// skipSpace advances past XML whitespace and reports whether there was any.
func (s *scanner) skipSpace() bool {
	start := s.pos
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		s.pos++
	}
	return s.pos > start
}

// until returns the text up to the next occurrence of delim and moves past
// delim. If delim is not found the cursor is left unchanged.
func (s *scanner) until(delim string) (string, bool) {
	i := strings.Index(s.src[s.pos:], delim)
	if i < 0 {
		return "", false
	}
	out := s.src[s.pos : s.pos+i]
	s.pos += i + len(delim)
	return out, true
}

// name reads an XML Name. It stops at whitespace and at the bytes that end
// a name inside markup; validation is left to CheckName.
func (s *scanner) name() string {
	start := s.pos
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if isSpace(c) || c == '>' || c == '/' || c == '=' || c == '<' ||
			c == '?' || c == '"' || c == '\'' || c == '[' {
			break
		}
		s.pos++
	}
	return s.src[start:s.pos]
}

// position converts a byte offset into a 1-based line and column. Columns
// count grapheme clusters so that a combined character or an emoji counts
// as one, the way an editor shows it.
func position(src string, offset int) (line, col int) {
	if offset > len(src) {
		offset = len(src)
	}
	if offset < 0 {
		offset = 0
	}
	before := src[:offset]
	line = strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1
	col = uniseg.GraphemeClusterCount(before[lineStart:]) + 1
	return line, col
}
