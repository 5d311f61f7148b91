package prettify

// Document is the parsed form of an XML text: an ordered sequence of
// top-level nodes. A Document is built fresh for each call and nothing in
// this package holds on to it afterwards.
type Document struct {
	Nodes []*Node
}

// Root returns the document's root element, or nil if there is none.
func (d *Document) Root() *Node {
	for _, n := range d.Nodes {
		if n.Kind == ElemNode {
			return n
		}
	}
	return nil
}

// Node is a single item in a Document tree.
//
// Which fields are meaningful depends on Kind:
//
//	ElemNode     Name, Attrs, Children, SelfClosing
//	PINode       Name (the target), Content
//	TextNode     Content, raw: entity and character references are untouched
//	CDataNode    Content, without the <![CDATA[ and ]]> markers
//	CommentNode  Content, without <!-- and -->
//	DeclNode     Content, everything between "<?xml" and "?>", trimmed
//	DocTypeNode  Content, everything between "<!DOCTYPE " and the final ">"
type Node struct {
	Kind     NodeKind
	Name     string
	Attrs    []Attr
	Content  string
	Children []*Node

	// Element was written as <name/> in the source. An empty element that
	// was written <name></name> keeps its explicit closing tag.
	SelfClosing bool

	// Byte offset of the node in the source text, for diagnostics.
	Offset int
}

// Attr is an element attribute. Value is the raw text found between the
// quotes; references such as &amp; or &#34; are kept exactly as written
// so they are never decoded or escaped twice.
type Attr struct {
	Name  string
	Value string

	// Quote is the quote character used in the source, '"' or '\''. The
	// zero value writes a double quote.
	Quote byte
}

func (a Attr) quote() byte {
	if a.Quote == '\'' {
		return '\''
	}
	return '"'
}

// Elem builds an element node. It is a convenience for code that assembles
// documents by hand rather than parsing them.
func Elem(name string, attrs []Attr, children ...*Node) *Node {
	return &Node{Kind: ElemNode, Name: name, Attrs: attrs, Children: children, SelfClosing: len(children) == 0}
}

// Text builds a text node. The content is written verbatim, so it must
// already be escaped.
func Text(content string) *Node { return &Node{Kind: TextNode, Content: content} }

// Comment builds a comment node.
func Comment(content string) *Node { return &Node{Kind: CommentNode, Content: content} }

// CData builds a CDATA section node.
func CData(content string) *Node { return &Node{Kind: CDataNode, Content: content} }

// PI builds a processing instruction node.
func PI(target, content string) *Node { return &Node{Kind: PINode, Name: target, Content: content} }

// IsBlank reports whether n is a text node holding nothing but XML
// whitespace. Blank text is not significant to either output mode.
func (n *Node) IsBlank() bool {
	return n.Kind == TextNode && isBlank(n.Content)
}

func isBlank(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isSpace(s[i]) {
			return false
		}
	}
	return true
}

// isSpace matches the S production: space, tab, CR and LF.
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

type layout int

const (
	layoutEmpty layout = iota
	layoutInline
	layoutBlock
)

// layout decides how an element's content is printed in pretty mode. An
// element holding any non-blank text or CDATA is printed on one line, as
// indentation would change its character data. An element holding only
// elements, comments and processing instructions gets one line per child.
func (n *Node) layout() layout {
	out := layoutEmpty
	for _, c := range n.Children {
		switch c.Kind {
		case TextNode:
			if !isBlank(c.Content) {
				return layoutInline
			}
		case CDataNode:
			return layoutInline
		default:
			out = layoutBlock
		}
	}
	return out
}
