package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	"github.com/shabbyrobe/prettify"
)

type formatter struct {
	cfg    *config
	stderr io.Writer
	pal    palette
	log    *log.Logger

	dumpMu sync.Mutex
}

// result is one formatted input. before and after are UTF-8 text; encoded
// is after in the input's own charset, ready to be written.
type result struct {
	name    string
	before  string
	after   string
	encoded []byte
	cs      prettify.Charset
	err     error
}

func (r *result) changed() bool { return r.before != r.after }

// writeTo streams the formatted text to w in the input's charset.
func (r *result) writeTo(w io.Writer) error {
	cw := r.cs.NewWriter(w)
	if _, err := io.WriteString(cw, r.after); err != nil {
		return err
	}
	return cw.Close()
}

// format runs one input through the formatter selected by the -lang flag,
// or by the file name and content when it is auto. Output always ends in a
// newline.
func (f *formatter) format(name string, in []byte) *result {
	r := &result{name: name}
	lang := f.language(name, in)

	if lang == prettify.LangXML {
		text, cs, err := prettify.DecodeXML(in)
		if err != nil {
			r.err = err
			return r
		}
		r.before = text
		if f.cfg.debug {
			f.dump(name, text)
		}
		out, err := prettify.XML(text, f.cfg.mode())
		if err != nil {
			r.err = err
			return r
		}
		r.after = out + "\n"
		r.cs = cs
		r.encoded, r.err = cs.Encode(r.after)
		return r
	}

	r.before = string(in)
	out, err := prettify.JSON(r.before, f.cfg.mode())
	if err != nil {
		r.err = err
		return r
	}
	r.after = out + "\n"
	r.encoded = []byte(r.after)
	return r
}

func (f *formatter) language(name string, in []byte) prettify.Language {
	if f.cfg.lang != "auto" {
		lang, _ := prettify.ParseLanguage(f.cfg.lang)
		return lang
	}
	if lang, ok := prettify.LanguageForExt(name); ok {
		return lang
	}
	// UTF-16 byte order marks only ever precede XML here.
	if bytes.HasPrefix(in, []byte{0xFE, 0xFF}) || bytes.HasPrefix(in, []byte{0xFF, 0xFE}) {
		return prettify.LangXML
	}
	return prettify.DetectLanguage("", string(in))
}

func (f *formatter) dump(name, text string) {
	doc, err := prettify.ParseXML(text)
	if err != nil {
		return
	}
	f.dumpMu.Lock()
	defer f.dumpMu.Unlock()
	fmt.Fprintf(f.stderr, "# %s\n", name)
	spew.Fdump(f.stderr, doc)
}

func (f *formatter) stdin(stdin io.Reader, stdout io.Writer) int {
	in, err := io.ReadAll(stdin)
	if err != nil {
		f.log.Print(err)
		return exitFail
	}
	r := f.format("<stdin>", in)
	if r.err != nil {
		f.report(r)
		return exitFail
	}
	switch {
	case f.cfg.list:
		if r.changed() {
			fmt.Fprintln(stdout, r.name)
		}
	case f.cfg.diff:
		if err := f.writeDiff(stdout, r); err != nil {
			f.log.Print(err)
			return exitFail
		}
	default:
		if err := r.writeTo(stdout); err != nil {
			f.log.Print(err)
			return exitFail
		}
	}
	return exitOK
}

func (f *formatter) files(patterns []string, stdout io.Writer) int {
	names, err := expand(patterns)
	if err != nil {
		f.log.Print(f.pal.err.Sprint(err.Error()))
		return exitFail
	}

	results := make([]*result, len(names))
	var g errgroup.Group
	g.SetLimit(f.cfg.jobs)
	for i, name := range names {
		g.Go(func() error {
			results[i] = f.file(name)
			return nil
		})
	}
	_ = g.Wait()

	code := exitOK
	for _, r := range results {
		if r.err != nil {
			f.report(r)
			code = exitFail
			continue
		}
		var err error
		switch {
		case f.cfg.list:
			if r.changed() {
				_, err = fmt.Fprintln(stdout, r.name)
			}
		case f.cfg.diff:
			err = f.writeDiff(stdout, r)
		case f.cfg.write:
			// Written by file.
		default:
			err = r.writeTo(stdout)
		}
		if err != nil {
			f.log.Print(err)
			return exitFail
		}
	}
	return code
}

// file formats a single named file, writing it back when -w is set and its
// contents changed.
func (f *formatter) file(name string) *result {
	in, err := os.ReadFile(name)
	if err != nil {
		return &result{name: name, err: err}
	}
	r := f.format(name, in)
	if r.err == nil && f.cfg.write && !bytes.Equal(in, r.encoded) {
		info, err := os.Stat(name)
		if err != nil {
			r.err = err
			return r
		}
		r.err = os.WriteFile(name, r.encoded, info.Mode().Perm())
	}
	return r
}

func (f *formatter) report(r *result) {
	f.log.Print(f.pal.file.Sprint(r.name) + ": " + f.pal.err.Sprint(r.err.Error()))
}

func (f *formatter) writeDiff(w io.Writer, r *result) error {
	if !r.changed() {
		return nil
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(r.before),
		B:        splitLines(r.after),
		FromFile: r.name + ".orig",
		ToFile:   r.name,
		Context:  3,
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, f.pal.colorDiff(diff))
	return err
}

// splitLines keeps difflib from seeing a final newline as an extra empty
// line.
func splitLines(s string) []string {
	return difflib.SplitLines(strings.TrimSuffix(s, "\n"))
}

// expand turns the command line arguments into a sorted list of files. A
// pattern must match at least one file; a directory contributes every file
// below it with a known extension.
func expand(args []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	add := func(name string) {
		name = filepath.Clean(name)
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		switch {
		case err == nil && info.IsDir():
			matches, err := doublestar.Glob(os.DirFS(arg), "**/*")
			if err != nil {
				return nil, err
			}
			sort.Strings(matches)
			for _, m := range matches {
				m = filepath.Join(arg, filepath.FromSlash(m))
				if _, ok := prettify.LanguageForExt(m); ok && isFile(m) {
					add(m)
				}
			}

		case err == nil:
			add(arg)

		default:
			if !doublestar.ValidatePattern(filepath.ToSlash(arg)) {
				return nil, fmt.Errorf("bad pattern %q", arg)
			}
			matches, gerr := doublestar.FilepathGlob(arg)
			if gerr != nil {
				return nil, gerr
			}
			var files []string
			for _, m := range matches {
				if isFile(m) {
					files = append(files, m)
				}
			}
			if len(files) == 0 {
				if os.IsNotExist(err) {
					return nil, fmt.Errorf("no files match %q", arg)
				}
				return nil, err
			}
			sort.Strings(files)
			for _, m := range files {
				add(m)
			}
		}
	}
	return out, nil
}

func isFile(name string) bool {
	info, err := os.Stat(name)
	return err == nil && info.Mode().IsRegular()
}
