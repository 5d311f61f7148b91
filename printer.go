package prettify

import (
	"bufio"
)

type printer struct {
	*bufio.Writer
}

// return the bufio Writer's cached write error
func (p *printer) cachedWriteError() error {
	_, err := p.Write(nil)
	return err
}

// printAttr writes ` name="value"` using the attribute's own quote. The
// value is written as-is: it came from the source already escaped.
func (p printer) printAttr(a Attr) {
	q := a.quote()
	p.WriteByte(' ')
	p.WriteString(a.Name)
	p.WriteByte('=')
	p.WriteByte(q)
	p.WriteString(a.Value)
	p.WriteByte(q)
}

func (p printer) printEnd(name string) {
	p.WriteString("</")
	p.WriteString(name)
	p.WriteByte('>')
}

func (p printer) printLeaf(n *Node) {
	switch n.Kind {
	case TextNode:
		p.WriteString(n.Content)

	case CDataNode:
		p.WriteString("<![CDATA[")
		p.WriteString(n.Content)
		p.WriteString("]]>")

	case CommentNode:
		p.WriteString("<!--")
		p.WriteString(n.Content)
		p.WriteString("-->")

	case PINode:
		p.WriteString("<?")
		p.WriteString(n.Name)
		if n.Content != "" {
			p.WriteByte(' ')
			p.WriteString(n.Content)
		}
		p.WriteString("?>")

	case DeclNode:
		p.WriteString("<?xml")
		if n.Content != "" {
			p.WriteByte(' ')
			p.WriteString(n.Content)
		}
		p.WriteString("?>")

	case DocTypeNode:
		p.WriteString("<!DOCTYPE ")
		p.WriteString(n.Content)
		p.WriteByte('>')
	}
}
