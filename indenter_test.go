package prettify

import (
	"errors"
	"strings"
	"testing"

	tt "github.com/shabbyrobe/prettify/testtool"
)

type recordingIndenter struct {
	events []Event
	err    error
}

func (r *recordingIndenter) Indent(w *Writer, last Event, next Event) error {
	r.events = append(r.events, next)
	return r.err
}

func TestIndentEvents(t *testing.T) {
	ri := &recordingIndenter{}
	b, w := open()
	w.Indenter = ri
	must(w.WriteDoc(doc(
		Comment("top"),
		Elem("a", nil,
			Elem("b", nil, Elem("c", nil)),
			Comment("d"),
			Elem("e", nil, Text("inline"), Elem("f", nil)),
		),
	)))
	tt.Equals(t, "<!--top--><a><b><c/></b><!--d--><e>inline<f/></e></a>", str(b, w))
	tt.Equals(t, []Event{
		{StateOpen, CommentNode, 0},
		{StateOpen, ElemNode, 0},
		{StateOpen, ElemNode, 1},
		{StateOpen, ElemNode, 2},
		{StateEnded, ElemNode, 1},
		{StateOpen, CommentNode, 1},
		{StateOpen, ElemNode, 1},
		{StateEnded, ElemNode, 0},
	}, ri.events)
}

func TestIndentError(t *testing.T) {
	errIndent := errors.New("indent")
	_, w := open()
	w.Indenter = &recordingIndenter{err: errIndent}
	tt.Assert(t, errors.Is(w.WriteDoc(doc(Elem("a", nil))), errIndent))
}

func TestIndentNested(t *testing.T) {
	result := strings.Join([]string{
		"<a>",
		"\t<b>",
		"\t\t<c/>",
		"\t\t<!--x-->",
		"\t</b>",
		"\t<d>text</d>",
		"</a>",
	}, "\n")
	d := doc(Elem("a", nil,
		Elem("b", nil, Elem("c", nil), Comment("x")),
		Elem("d", nil, Text("text")),
	))
	tt.Equals(t, result, doWrite(d, WithIndentString("\t")))
}

func TestIndentMixedContentStaysInline(t *testing.T) {
	result := strings.Join([]string{
		"<a>",
		" <b>Hi my name is <judge/>. Judge <my><name><is/></name></my> foo</b>",
		"</a>",
	}, "\n")
	d := doc(Elem("a", nil,
		Elem("b", nil,
			Text("Hi my name is "), Elem("judge", nil), Text(". Judge "),
			Elem("my", nil, Elem("name", nil, Elem("is", nil))),
			Text(" foo"),
		),
	))
	tt.Equals(t, result, doWrite(d, WithIndentString(" ")))
}

func TestIndentCDataStaysInline(t *testing.T) {
	d := doc(Elem("a", nil, Elem("b", nil, CData("\n  raw\n"))))
	tt.Equals(t, "<a>\n  <b><![CDATA[\n  raw\n]]></b>\n</a>", doWrite(d, WithIndent()))
}

func TestEventString(t *testing.T) {
	tt.Equals(t, "0\telem\t+2", Event{StateOpen, ElemNode, 2}.String())
	tt.Equals(t, "ended", StateEnded.Name())
}
