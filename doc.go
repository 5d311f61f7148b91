/*
Package prettify pretty-prints and minifies JSON and XML text.

Both formatters parse their input completely before writing anything. If the
input is not well-formed, the result is a *FormatError and no output; the
input is never modified.

	out, err := prettify.FormatXML("<a><b>1</b><c>2</c></a>")
	// <a>
	//   <b>1</b>
	//   <c>2</c>
	// </a>

	out, err = prettify.MinifyJSON("{ \"a\": [1, 2] }")
	// {"a":[1,2]}


Modes

Every entry point takes, or implies, a Mode:

	- DefaultPretty: one construct per line, two spaces per level
	- Pretty(indent): the same with another indent unit
	- Minified: no whitespace that is not significant

Format(text, lang, mode) dispatches on a Language. DetectLanguage picks one
from a file name or from the first character of the text.


XML layout

The XML formatter is a small parser feeding a forward-only Writer. Whitespace
between tags is only ever removed, never added inside character data:

	- Text made only of spaces, tabs and line breaks is dropped.
	- An element with no other content is written <a/> if it was
	  self-closing in the input, and <a></a> if it was not.
	- An element holding any other text or a CDATA section is written on one
	  line, together with everything inside it.
	- Any other element gets one line per child, indented one level deeper
	  than its own tags.

Attribute values, text, entity references, comments, CDATA sections and
processing instructions are copied byte for byte. Output has no trailing
newline.


Writer

The Writer can also be used on its own with a Document from ParseXML or one
assembled by hand. Options follow Dave Cheney's functional options pattern
(https://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis):

	b := &bytes.Buffer{}
	w := prettify.Open(b, prettify.WithIndentString("\t"))
	ec := &prettify.ErrCollector{}
	defer ec.Panic()
	ec.Do(
		w.WriteDoc(&prettify.Document{Nodes: []*prettify.Node{
			prettify.Elem("list", nil,
				prettify.Comment(" items "),
				prettify.Elem("item", []prettify.Attr{{Name: "id", Value: "1"}}),
			),
		}}),
		w.Flush(),
	)

Provided options are:
  - WithIndent()
  - WithIndentString(string)
  - WithMode(Mode)
  - WithNewline(string)
  - WithEnforce(bool)

The Writer extends bufio.Writer, so don't forget to flush.

With Enforce on, which is the default, nodes are validated as they are
written: names must be valid XML names, comments may not contain "--", text
may not contain '<' and so on.


JSON

JSON is validated by encoding/json and decoded into an ordered Value tree, so
object keys keep their input order. Output follows the conventions of
JavaScript's JSON.stringify: numbers are written in their shortest form,
strings escape only what must be escaped, and empty containers are {} and [].


Encodings

DecodeXML turns raw bytes into text, honouring a byte order mark or the
encoding named in the XML declaration, using golang.org/x/text/encoding. The
returned Charset converts formatted output back:

	text, cs, err := prettify.DecodeXML(raw)
	out, err := prettify.FormatXML(text)
	encoded, err := cs.Encode(out)
*/
package prettify
