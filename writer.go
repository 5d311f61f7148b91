package prettify

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const defaultBufsize = 2048

// Writer writes a Document to an io.Writer.
type Writer struct {
	printer printer
	last    Event

	// Validate nodes before writing them. Defaults to true. Documents from
	// ParseXML always pass; the checks matter for documents built by hand.
	Enforce bool

	// Determines how much memory the internal buffer will use. Set to 0 to use
	// the default.
	InitialBufSize int

	// Defaults to \n.
	NewlineString string

	// Controls the indenting process used by the writer. Nil writes minified
	// output.
	Indenter Indenter
}

// Option is an option to the Writer.
type Option func(w *Writer)

// WithIndent sets the Writer up to indent XML elements to make them
// easier to read using the StandardIndenter:
//	w := prettify.Open(b, prettify.WithIndent())
func WithIndent() Option {
	return func(w *Writer) {
		w.Indenter = NewStandardIndenter()
	}
}

// WithIndentString configures the Writer with a StandardIndenter using
// a specific indent string:
//	w := prettify.Open(b, prettify.WithIndentString("    "))
func WithIndentString(indent string) Option {
	return func(w *Writer) {
		si := NewStandardIndenter()
		si.IndentString = indent
		w.Indenter = si
	}
}

// WithMode configures the Writer for a pretty or minified Mode.
func WithMode(m Mode) Option {
	if m.IsMinified() {
		return func(w *Writer) { w.Indenter = nil }
	}
	return WithIndentString(m.Indent())
}

// WithNewline sets the line break written between lines, "\n" by default.
func WithNewline(nl string) Option {
	return func(w *Writer) { w.NewlineString = nl }
}

// WithEnforce turns node validation on or off.
func WithEnforce(on bool) Option {
	return func(w *Writer) { w.Enforce = on }
}

// Open creates a Writer on top of w. Without options it writes minified
// output.
func Open(w io.Writer, options ...Option) *Writer {
	xw := &Writer{}
	xw.NewlineString = "\n"
	xw.Enforce = true
	for _, o := range options {
		o(xw)
	}
	if xw.InitialBufSize <= 0 {
		xw.InitialBufSize = defaultBufsize
	}
	xw.printer = printer{Writer: bufio.NewWriterSize(w, xw.InitialBufSize)}
	return xw
}

// Flush ensures the output buffer accumulated inside the Writer
// is fully written to the underlying io.Writer.
func (w *Writer) Flush() error {
	return w.printer.Flush()
}

// WriteDoc writes every top-level node of doc. Blank text is skipped. In
// pretty mode each top-level node starts on its own line; no newline is
// written after the last one.
func (w *Writer) WriteDoc(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("prettify: nil document")
	}
	for _, n := range doc.Nodes {
		if n.IsBlank() {
			continue
		}
		if err := w.writeBlock(NoNode, n, 0); err != nil {
			return err
		}
	}
	return w.printer.cachedWriteError()
}

// WriteNode writes a single node and its subtree as if it were at the top
// level of a document.
func (w *Writer) WriteNode(n *Node) error {
	if n == nil || n.IsBlank() {
		return nil
	}
	return w.writeBlock(NoNode, n, 0)
}

func (w *Writer) event(ev Event) error {
	if w.Indenter == nil {
		return nil
	}
	if err := w.Indenter.Indent(w, w.last, ev); err != nil {
		return err
	}
	w.last = ev
	return nil
}

// writeBlock writes n at a position where the indenter may break the line.
func (w *Writer) writeBlock(parent NodeKind, n *Node, depth int) error {
	if w.Enforce {
		if err := w.check(parent, n); err != nil {
			return err
		}
	}
	if err := w.event(Event{StateOpen, n.Kind, depth}); err != nil {
		return err
	}
	if n.Kind == ElemNode {
		return w.writeElem(n, depth, false)
	}
	w.printer.printLeaf(n)
	return w.printer.cachedWriteError()
}

func (w *Writer) writeInline(n *Node, depth int) error {
	if w.Enforce {
		if err := w.check(ElemNode, n); err != nil {
			return err
		}
	}
	if n.Kind == ElemNode {
		return w.writeElem(n, depth, true)
	}
	w.printer.printLeaf(n)
	return w.printer.cachedWriteError()
}

func (w *Writer) writeElem(n *Node, depth int, inline bool) error {
	w.printer.WriteByte('<')
	w.printer.WriteString(n.Name)
	for _, a := range n.Attrs {
		w.printer.printAttr(a)
	}

	lay := n.layout()
	if inline && lay == layoutBlock {
		lay = layoutInline
	}

	switch lay {
	case layoutEmpty:
		if n.SelfClosing {
			w.printer.WriteString("/>")
		} else {
			w.printer.WriteByte('>')
			w.printer.printEnd(n.Name)
		}

	case layoutInline:
		w.printer.WriteByte('>')
		for _, c := range n.Children {
			if c.IsBlank() {
				continue
			}
			if err := w.writeInline(c, depth+1); err != nil {
				return err
			}
		}
		w.printer.printEnd(n.Name)

	case layoutBlock:
		w.printer.WriteByte('>')
		for _, c := range n.Children {
			if c.IsBlank() {
				continue
			}
			if err := w.writeBlock(ElemNode, c, depth+1); err != nil {
				return err
			}
		}
		if err := w.event(Event{StateEnded, ElemNode, depth}); err != nil {
			return err
		}
		w.printer.printEnd(n.Name)
	}
	return w.printer.cachedWriteError()
}

func (w *Writer) check(parent NodeKind, n *Node) error {
	if err := checkParent(parent, n.Kind); err != nil {
		return err
	}
	switch n.Kind {
	case ElemNode:
		if n.Name == "" {
			return fmt.Errorf("prettify: element name must not be empty")
		}
		if err := CheckName(n.Name); err != nil {
			return err
		}
		for i, a := range n.Attrs {
			if a.Name == "" {
				return fmt.Errorf("prettify: attribute name must not be empty")
			}
			if err := CheckName(a.Name); err != nil {
				return err
			}
			for _, b := range n.Attrs[:i] {
				if a.Name == b.Name {
					return fmt.Errorf("prettify: duplicate attribute %q", a.Name)
				}
			}
			if strings.IndexByte(a.Value, a.quote()) >= 0 || strings.IndexByte(a.Value, '<') >= 0 {
				return fmt.Errorf("prettify: attribute %q value must be escaped", a.Name)
			}
		}
	case TextNode:
		if strings.IndexByte(n.Content, '<') >= 0 {
			return fmt.Errorf("prettify: text must be escaped, found '<'")
		}
		if parent == NoNode && !n.IsBlank() {
			return fmt.Errorf("prettify: text outside root element")
		}
	case CommentNode:
		return CheckComment(n.Content)
	case CDataNode:
		return CheckCData(n.Content)
	case PINode:
		return CheckPI(n.Name, n.Content)
	case DeclNode:
		if strings.Contains(n.Content, "?>") {
			return fmt.Errorf("prettify: declaration may not contain '?>'")
		}
	}
	return nil
}
