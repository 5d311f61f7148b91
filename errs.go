package prettify

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrorKind classifies a FormatError.
type ErrorKind int

const (
	// SyntaxError means the input is not well-formed: an unterminated tag,
	// a mismatched closing tag, an invalid JSON token and so on.
	SyntaxError ErrorKind = iota + 1

	// UnsupportedError means the input uses a construct the formatter
	// deliberately does not handle, such as a DOCTYPE inside an element.
	UnsupportedError
)

func (k ErrorKind) String() string {
	switch k {
	case SyntaxError:
		return "syntax"
	case UnsupportedError:
		return "unsupported"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Sentinels for errors.Is. A *FormatError matches the sentinel for its Kind.
var (
	ErrSyntax      = errors.New("prettify: syntax error")
	ErrUnsupported = errors.New("prettify: unsupported construct")
)

// FormatError describes the first problem found in an input. It is always
// returned instead of partial output; the input itself is never modified.
//
// Error() is a single line of the form:
//
//	Invalid XML: mismatched closing tag: expected </b>, found </a> (line 1, column 7)
type FormatError struct {
	Kind   ErrorKind
	Lang   Language
	Reason string

	// 1-based position of the problem. Zero when unknown. Columns count
	// grapheme clusters rather than bytes.
	Line   int
	Column int

	// Underlying parser error, if any.
	Err error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	var sb strings.Builder
	sb.WriteString("Invalid ")
	sb.WriteString(e.Lang.Name())
	sb.WriteString(": ")
	sb.WriteString(firstLine(e.Reason))
	if e.Line > 0 {
		fmt.Fprintf(&sb, " (line %d, column %d)", e.Line, e.Column)
	}
	return sb.String()
}

// Unwrap returns the underlying parser error, if there is one.
func (e *FormatError) Unwrap() error { return e.Err }

// Is matches ErrSyntax or ErrUnsupported against the error's Kind.
func (e *FormatError) Is(target error) bool {
	switch target {
	case ErrSyntax:
		return e.Kind == SyntaxError
	case ErrUnsupported:
		return e.Kind == UnsupportedError
	}
	return false
}

func newError(kind ErrorKind, lang Language, src string, offset int, reason string, args ...interface{}) *FormatError {
	if len(args) > 0 {
		reason = fmt.Sprintf(reason, args...)
	}
	e := &FormatError{Kind: kind, Lang: lang, Reason: reason}
	if offset >= 0 {
		e.Line, e.Column = position(src, offset)
	}
	return e
}

// firstLine cuts s at its first line break. Parser messages are shown in a
// one-line error slot, so anything after the break is dropped.
func firstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return strings.TrimRight(s[:i], " ")
	}
	return s
}

/*
ErrCollector allows you to defer raising or accumulating an error
until after a series of procedural calls.

The Writer uses it for runs of printer calls where any failure after the
first is harmless, since the bufio.Writer underneath caches the first write
error anyway:

	func emit(w *prettify.Writer, doc *prettify.Document) (err error) {
		ec := &prettify.ErrCollector{}
		defer ec.Set(&err)
		ec.Do(
			w.WriteDoc(doc),
			w.Flush(),
		)
		return
	}

If you want to panic instead, just substitute `defer ec.Set(&err)` with `defer
ec.Panic()`

It is entirely the responsibility of the caller to remember to call
either `ec.Set()` or `ec.Panic()`. If you don't, you'll be swallowing errors.
*/
type ErrCollector struct {
	File  string
	Line  int
	Index int
	Err   error
}

// Error implements the error interface.
func (e *ErrCollector) Error() string {
	return fmt.Sprintf("error at %s:%d #%d - %v", e.File, e.Line, e.Index, e.Err)
}

// Unwrap returns the collected error.
func (e *ErrCollector) Unwrap() error { return e.Err }

// Panic causes the collector to panic if any error has been collected.
func (e *ErrCollector) Panic() {
	if e.Err != nil {
		panic(e)
	}
}

// Set assigns the collector's internal error to an external error variable.
func (e *ErrCollector) Set(err *error) {
	if e.Err != nil {
		*err = e
	}
}

// Do collects the first error in a list of errors and holds on to it.
//
// If you pass the result of multiple functions to Do, they will not be
// short circuited on failure - the first error is retained by the collector
// and the rest are discarded.
func (e *ErrCollector) Do(errs ...error) {
	if e.Err != nil {
		return
	}
	for i, err := range errs {
		if err != nil {
			_, file, line, _ := runtime.Caller(1)
			e.Err = err
			e.Index = i + 1
			e.File = file
			e.Line = line
			return
		}
	}
}

// Must collects the first error in a list of errors and panics with it.
func (e *ErrCollector) Must(errs ...error) {
	for i, err := range errs {
		if err != nil {
			_, file, line, _ := runtime.Caller(1)
			e.Err = err
			e.Index = i + 1
			e.File = file
			e.Line = line
			panic(e)
		}
	}
}
