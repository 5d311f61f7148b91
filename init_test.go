package prettify

import (
	"bytes"
	"io"
	"runtime"
)

var memstats runtime.MemStats

func allocs() uint64 {
	runtime.ReadMemStats(&memstats)
	return memstats.Mallocs
}

type DodgyWriter struct {
	writer     io.Writer
	shouldFail func(b []byte) (fail bool, len int, err error)
}

func (d *DodgyWriter) Write(b []byte) (len int, err error) {
	if fail, len, err := d.shouldFail(b); fail {
		return len, err
	}
	return d.writer.Write(b)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func open(o ...Option) (*bytes.Buffer, *Writer) {
	b := &bytes.Buffer{}
	w := Open(b, o...)
	return b, w
}

func openNull(o ...Option) *Writer {
	return Open(io.Discard, o...)
}

func str(b *bytes.Buffer, w *Writer) string {
	must(w.Flush())
	return b.String()
}

func doc(nodes ...*Node) *Document {
	return &Document{Nodes: nodes}
}

func doWrite(d *Document, o ...Option) string {
	b, w := open(o...)
	must(w.WriteDoc(d))
	return str(b, w)
}

func doWriteErrMsg(d *Document, o ...Option) (ret string) {
	defer func() {
		if e := recover(); e != nil {
			ret = e.(error).Error()
		}
	}()
	doWrite(d, o...)
	return ""
}

func attrs(kv ...string) []Attr {
	out := make([]Attr, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, Attr{Name: kv[i], Value: kv[i+1]})
	}
	return out
}
