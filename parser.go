package prettify

import (
	"strings"
)

// MaxDepth is the deepest element nesting ParseXML accepts. Anything deeper
// is reported as an unsupported construct.
const MaxDepth = 4096

// ParseXML parses text into a Document. The input must be well-formed: an
// optional declaration, optional comments, processing instructions and a
// DOCTYPE, and exactly one root element whose tags are properly nested and
// closed.
//
// Parsing stops at the first problem, which is returned as a *FormatError.
func ParseXML(text string) (*Document, error) {
	p := &parser{scanner: scanner{src: text}}
	return p.document()
}

type parser struct {
	scanner
	depth int
}

func (p *parser) errorf(offset int, reason string, args ...interface{}) error {
	return newError(SyntaxError, LangXML, p.src, offset, reason, args...)
}

func (p *parser) unsupportedf(offset int, reason string, args ...interface{}) error {
	return newError(UnsupportedError, LangXML, p.src, offset, reason, args...)
}

func (p *parser) document() (*Document, error) {
	doc := &Document{}

	p.consume("\uFEFF")

	// The declaration may only follow leading whitespace.
	var root, doctype, prolog bool
	for !p.eof() {
		start := p.pos
		if p.peek() != '<' {
			text := p.text()
			if !isBlank(text) {
				return nil, p.errorf(start+leadingSpace(text), "text outside root element")
			}
			doc.Nodes = append(doc.Nodes, &Node{Kind: TextNode, Content: text, Offset: start})
			continue
		}

		var n *Node
		var err error
		switch {
		case p.has("<!--"):
			n, err = p.comment()
		case p.has("<![CDATA["):
			return nil, p.errorf(start, "CDATA section outside root element")
		case p.has("<!DOCTYPE"):
			if root {
				return nil, p.unsupportedf(start, "DOCTYPE after root element")
			}
			if doctype {
				return nil, p.unsupportedf(start, "more than one DOCTYPE")
			}
			doctype = true
			n, err = p.doctype()
		case p.has("<!"):
			return nil, p.unsupportedf(start, "unsupported markup %q", p.markup())
		case p.declAhead() && !prolog:
			n, err = p.decl()
		case p.has("<?"):
			n, err = p.pi()
		case p.has("</"):
			p.pos += 2
			return nil, p.errorf(start, "unexpected closing tag </%s> outside root element", p.name())
		default:
			if root {
				return nil, p.errorf(start, "multiple root elements")
			}
			root = true
			n, err = p.element()
		}
		if err != nil {
			return nil, err
		}
		prolog = true
		doc.Nodes = append(doc.Nodes, n)
	}

	if !root {
		return nil, p.errorf(len(p.src), "no root element")
	}
	return doc, nil
}

// declAhead reports whether the cursor is at "<?xml" followed by whitespace
// or "?>". A PI target that merely starts with "xml", such as
// xml-stylesheet, does not count.
func (p *parser) declAhead() bool {
	if !p.has("<?xml") {
		return false
	}
	rest := p.rest()[len("<?xml"):]
	return rest != "" && (isSpace(rest[0]) || rest[0] == '?')
}

func (p *parser) decl() (*Node, error) {
	start := p.pos
	p.pos += len("<?xml")
	content, ok := p.until("?>")
	if !ok {
		return nil, p.errorf(start, "unterminated XML declaration")
	}
	return &Node{Kind: DeclNode, Content: strings.TrimSpace(content), Offset: start}, nil
}

func (p *parser) text() string {
	start := p.pos
	if i := strings.IndexByte(p.src[p.pos:], '<'); i >= 0 {
		p.pos += i
	} else {
		p.pos = len(p.src)
	}
	return p.src[start:p.pos]
}

func (p *parser) comment() (*Node, error) {
	start := p.pos
	p.pos += len("<!--")
	i := strings.Index(p.rest(), "--")
	if i < 0 {
		return nil, p.errorf(start, "unterminated comment")
	}
	end := p.pos + i
	if end+2 >= len(p.src) {
		return nil, p.errorf(start, "unterminated comment")
	}
	if p.src[end+2] != '>' {
		return nil, p.errorf(end, "'--' not allowed inside comment")
	}
	content := p.src[p.pos:end]
	p.pos = end + 3
	return &Node{Kind: CommentNode, Content: content, Offset: start}, nil
}

func (p *parser) cdata() (*Node, error) {
	start := p.pos
	p.pos += len("<![CDATA[")
	content, ok := p.until("]]>")
	if !ok {
		return nil, p.errorf(start, "unterminated CDATA section")
	}
	return &Node{Kind: CDataNode, Content: content, Offset: start}, nil
}

func (p *parser) pi() (*Node, error) {
	start := p.pos
	p.pos += len("<?")
	target := p.name()
	if target == "" {
		return nil, p.errorf(start, "missing processing instruction target")
	}
	if strings.EqualFold(target, "xml") {
		return nil, p.errorf(start, "XML declaration allowed only at the start of the document")
	}
	if err := CheckName(target); err != nil {
		return nil, p.errorf(start+2, "invalid processing instruction target %q", target)
	}
	n := &Node{Kind: PINode, Name: target, Offset: start}
	if p.consume("?>") {
		return n, nil
	}
	if !p.skipSpace() {
		if p.eof() {
			return nil, p.errorf(start, "unterminated processing instruction <?%s", target)
		}
		return nil, p.errorf(p.pos, "expected whitespace after processing instruction target %q", target)
	}
	content, ok := p.until("?>")
	if !ok {
		return nil, p.errorf(start, "unterminated processing instruction <?%s", target)
	}
	n.Content = content
	return n, nil
}

func (p *parser) doctype() (*Node, error) {
	start := p.pos
	p.pos += len("<!DOCTYPE")
	if !p.skipSpace() {
		if p.eof() {
			return nil, p.errorf(start, "unterminated DOCTYPE")
		}
		return nil, p.errorf(p.pos, "expected whitespace after <!DOCTYPE")
	}
	contentStart := p.pos

	var quote byte
	depth := 0
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '<' && p.has("<!--"):
			i := strings.Index(p.src[p.pos+4:], "-->")
			if i < 0 {
				return nil, p.errorf(p.pos, "unterminated comment")
			}
			p.pos += 4 + i + 3
			continue
		case c == '[':
			depth++
		case c == ']':
			depth--
		case c == '>' && depth <= 0:
			content := strings.TrimRight(p.src[contentStart:p.pos], " \t\r\n")
			p.pos++
			if content == "" {
				return nil, p.errorf(start, "missing DOCTYPE name")
			}
			return &Node{Kind: DocTypeNode, Content: content, Offset: start}, nil
		}
		p.pos++
	}
	return nil, p.errorf(start, "unterminated DOCTYPE")
}

// markup returns the keyword of an unknown "<!" construct, for messages.
func (p *parser) markup() string {
	end := p.pos + 2
	for end < len(p.src) && end-p.pos < 16 {
		c := p.src[end]
		if !(c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c == '[') {
			break
		}
		end++
	}
	return p.src[p.pos:end]
}

func (p *parser) element() (*Node, error) {
	start := p.pos
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxDepth {
		return nil, p.unsupportedf(start, "elements nested deeper than %d levels", MaxDepth)
	}

	p.pos++
	name := p.name()
	if name == "" {
		return nil, p.errorf(start, "missing element name after '<'")
	}
	if err := CheckName(name); err != nil {
		return nil, p.errorf(start+1, "invalid element name %q", name)
	}

	n := &Node{Kind: ElemNode, Name: name, Offset: start}
	for {
		space := p.skipSpace()
		if p.eof() {
			return nil, p.errorf(start, "unterminated tag <%s", name)
		}
		if p.consume("/>") {
			n.SelfClosing = true
			return n, nil
		}
		if p.consume(">") {
			break
		}
		if !space {
			return nil, p.errorf(p.pos, "expected whitespace, '>' or '/>' in tag <%s>", name)
		}
		attr, err := p.attr(n)
		if err != nil {
			return nil, err
		}
		n.Attrs = append(n.Attrs, attr)
	}

	if err := p.content(n); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *parser) attr(elem *Node) (Attr, error) {
	at := p.pos
	name := p.name()
	if name == "" {
		return Attr{}, p.errorf(at, "unexpected %q in tag <%s>", p.peek(), elem.Name)
	}
	if err := CheckName(name); err != nil {
		return Attr{}, p.errorf(at, "invalid attribute name %q", name)
	}
	for _, a := range elem.Attrs {
		if a.Name == name {
			return Attr{}, p.errorf(at, "duplicate attribute %q in tag <%s>", name, elem.Name)
		}
	}

	p.skipSpace()
	if p.eof() {
		return Attr{}, p.errorf(elem.Offset, "unterminated tag <%s", elem.Name)
	}
	if !p.consume("=") {
		return Attr{}, p.errorf(p.pos, "attribute %q has no value", name)
	}
	p.skipSpace()
	if p.eof() {
		return Attr{}, p.errorf(elem.Offset, "unterminated tag <%s", elem.Name)
	}

	q := p.peek()
	if q != '"' && q != '\'' {
		return Attr{}, p.errorf(p.pos, "value of attribute %q must be quoted", name)
	}
	p.pos++
	vstart := p.pos
	value, ok := p.until(string(q))
	if !ok {
		return Attr{}, p.errorf(vstart-1, "unterminated value for attribute %q", name)
	}
	if i := strings.IndexByte(value, '<'); i >= 0 {
		return Attr{}, p.errorf(vstart+i, "'<' not allowed in value of attribute %q", name)
	}
	if err := p.checkCharData(vstart, value); err != nil {
		return Attr{}, err
	}
	return Attr{Name: name, Value: value, Quote: q}, nil
}

func (p *parser) content(n *Node) error {
	for {
		if p.eof() {
			return p.errorf(n.Offset, "unexpected end of input: <%s> is not closed", n.Name)
		}

		start := p.pos
		if p.peek() != '<' {
			text := p.text()
			if err := p.checkCharData(start, text); err != nil {
				return err
			}
			if i := strings.Index(text, "]]>"); i >= 0 {
				return p.errorf(start+i, "']]>' not allowed in text")
			}
			n.Children = append(n.Children, &Node{Kind: TextNode, Content: text, Offset: start})
			continue
		}

		var child *Node
		var err error
		switch {
		case p.has("</"):
			p.pos += 2
			name := p.name()
			p.skipSpace()
			if !p.consume(">") {
				if p.eof() {
					return p.errorf(start, "unterminated closing tag </%s", name)
				}
				return p.errorf(p.pos, "expected '>' to end closing tag </%s", name)
			}
			if name != n.Name {
				return p.errorf(start, "mismatched closing tag: expected </%s>, found </%s>", n.Name, name)
			}
			return nil
		case p.has("<!--"):
			child, err = p.comment()
		case p.has("<![CDATA["):
			child, err = p.cdata()
		case p.has("<!DOCTYPE"):
			return p.unsupportedf(start, "DOCTYPE inside element <%s>", n.Name)
		case p.has("<!"):
			return p.unsupportedf(start, "unsupported markup %q", p.markup())
		case p.has("<?"):
			child, err = p.pi()
		default:
			child, err = p.element()
		}
		if err != nil {
			return err
		}
		n.Children = append(n.Children, child)
	}
}

// checkCharData validates text or an attribute value found at offset.
func (p *parser) checkCharData(offset int, s string) error {
	if i, err := checkReferences(s); err != nil {
		return p.errorf(offset+i, "%v", err)
	}
	if i := invalidChar(s); i >= 0 {
		return p.errorf(offset+i, "invalid character %U", []rune(s[i:])[0])
	}
	return nil
}

func leadingSpace(s string) int {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}
