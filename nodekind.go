package prettify

import (
	"fmt"
	"strings"
)

// NodeKind is the kind of a node in a parsed Document.
type NodeKind int

// Name returns a stable name for the NodeKind. If the NodeKind is invalid,
// the Name() will be empty. String() returns a human-readable representation
// for information purposes; if a stable string is required, use this instead.
func (n NodeKind) Name() string {
	if n >= 0 && int(n) < nodeKindLength {
		return kindName[n]
	}
	return ""
}

// String returns a human-readable representation of the NodeKind. If a stable
// string is required, use Name().
func (n NodeKind) String() string {
	s := n.Name()
	if s == "" {
		s = "<unknown>"
	}
	return fmt.Sprintf("%s(%d)", s, n)
}

func (n NodeKind) flag() nodeFlag {
	if n >= 0 && int(n) < nodeKindLength {
		return 1 << n
	}
	return 0
}

// Range of allowed NodeKind values.
const (
	NoNode NodeKind = iota
	AttrNode
	CDataNode
	CommentNode
	DeclNode
	DocTypeNode
	ElemNode
	PINode
	TextNode

	nodeKindLength int = iota
)

var kindName = [nodeKindLength]string{
	NoNode:      "none",
	AttrNode:    "attr",
	CDataNode:   "cdata",
	CommentNode: "comment",
	DeclNode:    "decl",
	DocTypeNode: "doctype",
	ElemNode:    "elem",
	PINode:      "pi",
	TextNode:    "text",
}

// nodeFlag is a set of NodeKinds, one bit per kind.
type nodeFlag int

const (
	noNodeFlag   nodeFlag = 1 << NoNode
	elemNodeFlag nodeFlag = 1 << ElemNode
)

// kindParents lists where each kind may appear. NoNode stands for the top
// level of a Document.
var kindParents = [nodeKindLength]nodeFlag{
	CDataNode:   elemNodeFlag,
	CommentNode: noNodeFlag | elemNodeFlag,
	DeclNode:    noNodeFlag,
	DocTypeNode: noNodeFlag,
	ElemNode:    noNodeFlag | elemNodeFlag,
	PINode:      noNodeFlag | elemNodeFlag,
	TextNode:    noNodeFlag | elemNodeFlag,
}

func checkParent(parent, child NodeKind) error {
	if child.flag() == 0 {
		return fmt.Errorf("prettify: unknown node kind %s", child)
	}
	allowed := kindParents[child]
	if allowed&parent.flag() == 0 {
		return fmt.Errorf("prettify: unexpected %s inside %s, expected %s",
			child.Name(), parent.Name(), allowed.names())
	}
	return nil
}

func (set nodeFlag) names() string {
	switch set {
	case noNodeFlag:
		return "none"
	case elemNodeFlag:
		return "elem"
	case noNodeFlag | elemNodeFlag:
		return "none, elem"

	default:
		var names = make([]string, 0, 4)
		for i := 0; i < nodeKindLength; i++ {
			nk := NodeKind(i)
			if set&nk.flag() != 0 {
				names = append(names, nk.Name())
			}
		}
		return strings.Join(names, ", ")
	}
}
