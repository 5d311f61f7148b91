package prettify

import "fmt"

// NodeState is the state of the node being written.
type NodeState int

// Name returns a string representation of the NodeState.
func (n NodeState) Name() string { return stateName[n] }

const (
	// StateOpen indicates the node is starting, e.g. "<elem" or "<!--".
	StateOpen NodeState = iota

	// StateEnded indicates a block element's closing tag, e.g. "</elem>".
	StateEnded
)

var stateName = map[NodeState]string{
	StateOpen:  "open",
	StateEnded: "ended",
}

// Event is raised when the Writer reaches a point where a line may be
// broken: before a top-level node, before each child of a block element,
// and before a block element's closing tag. Nothing inside an inline
// element raises an Event.
type Event struct {
	State NodeState
	Node  NodeKind
	Depth int
}

func (e Event) String() string {
	return fmt.Sprintf("%d\t%s\t+%d", e.State, e.Node.Name(), e.Depth)
}

// Indenter allows custom indenting strategies to be written for pretty
// printing the resultant XML.
//
// A Writer with a nil Indenter writes minified output.
type Indenter interface {
	// Indent is called at every Event. Whatever it writes lands between
	// the previous construct and the next one.
	Indent(w *Writer, last Event, next Event) error
}

// StandardIndenter puts every Event on its own line, indented by
// IndentString once per level of depth.
//
// StandardIndenter is used by the WithIndent writer option:
//	w := prettify.Open(b, prettify.WithIndent())
type StandardIndenter struct {
	// Output whitespace control
	IndentString string
}

// NewStandardIndenter creates a StandardIndenter using DefaultIndent.
func NewStandardIndenter() *StandardIndenter {
	return &StandardIndenter{IndentString: DefaultIndent}
}

// Indent satisfies the Indenter interface.
func (s *StandardIndenter) Indent(w *Writer, last Event, next Event) error {
	// nothing precedes the first node, so there is no line to break
	if last.Node == NoNode {
		return nil
	}
	w.printer.WriteString(w.NewlineString)
	// strings.Repeat allocates
	for i := 0; i < next.Depth; i++ {
		w.printer.WriteString(s.IndentString)
	}
	return w.printer.cachedWriteError()
}
