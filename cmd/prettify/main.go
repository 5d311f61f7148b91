// Command prettify pretty-prints or minifies JSON and XML files.
//
// Usage:
//
//	prettify [flags] [path or glob ...]
//
// With no paths it reads standard input and writes standard output. A
// directory stands for every file below it with a known JSON or XML
// extension. Patterns may use ** to match any number of directories.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/shabbyrobe/prettify"
	"github.com/shabbyrobe/prettify/internal/prefs"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

type config struct {
	lang      string
	minify    bool
	indent    string
	write     bool
	list      bool
	diff      bool
	debug     bool
	theme     string
	prefsPath string
	jobs      int
	session   bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "prettify: ", 0)

	var cfg config
	fs := flag.NewFlagSet("prettify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.lang, "lang", "auto", "Input language: auto, json or xml")
	fs.BoolVar(&cfg.minify, "m", false, "Minify instead of pretty-printing")
	fs.StringVar(&cfg.indent, "indent", prettify.DefaultIndent, "Indent unit for pretty output")
	fs.BoolVar(&cfg.write, "w", false, "Write result to the source file instead of stdout")
	fs.BoolVar(&cfg.list, "l", false, "List files whose formatting differs")
	fs.BoolVar(&cfg.diff, "d", false, "Display diffs instead of rewriting files")
	fs.BoolVar(&cfg.debug, "debug", false, "Dump the parsed XML tree to stderr")
	fs.StringVar(&cfg.theme, "theme", "", "Color theme: light, dark or toggle; saved for later runs")
	fs.StringVar(&cfg.prefsPath, "prefs", "", "Preferences file (default is in the user config directory)")
	fs.IntVar(&cfg.jobs, "j", 4, "Number of files to format in parallel")
	fs.BoolVar(&cfg.session, "session", false, "Start an interactive editing session")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: prettify [flags] [path or glob ...]\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	paths := fs.Args()

	if err := cfg.validate(paths); err != nil {
		logger.Print(err)
		fs.Usage()
		return exitUsage
	}

	theme, err := cfg.resolveTheme()
	if err != nil {
		logger.Print(err)
		return exitFail
	}
	pal := newPalette(theme)

	if cfg.session {
		return runSession(&cfg, stdin, stdout, pal, logger)
	}

	f := &formatter{cfg: &cfg, stderr: stderr, pal: pal, log: logger}
	if len(paths) == 0 {
		return f.stdin(stdin, stdout)
	}
	return f.files(paths, stdout)
}

func (c *config) validate(paths []string) error {
	if c.lang != "auto" {
		if _, err := prettify.ParseLanguage(c.lang); err != nil {
			return err
		}
	}
	if c.theme != "" && c.theme != "toggle" {
		if _, err := prefs.ParseTheme(c.theme); err != nil {
			return err
		}
	}
	if c.jobs < 1 {
		return fmt.Errorf("-j must be at least 1, got %d", c.jobs)
	}
	if c.write && (c.list || c.diff) {
		return errors.New("-w cannot be combined with -l or -d")
	}
	if c.session {
		if len(paths) > 0 || c.write || c.list || c.diff {
			return errors.New("-session takes no paths and no -w, -l or -d")
		}
		if c.lang == "auto" {
			c.lang = "json"
		}
		return nil
	}
	if c.write && len(paths) == 0 {
		return errors.New("cannot use -w with standard input")
	}
	return nil
}

func (c *config) mode() prettify.Mode {
	if c.minify {
		return prettify.Minified
	}
	return prettify.Pretty(c.indent)
}

// resolveTheme returns the saved theme, after applying and saving -theme if
// it was given.
func (c *config) resolveTheme() (prefs.Theme, error) {
	path := c.prefsPath
	if path == "" {
		p, err := prefs.DefaultPath()
		if err != nil {
			// No config directory: colors still work, they just aren't saved.
			if c.theme == "" || c.theme == "toggle" {
				return prefs.Light, nil
			}
			return prefs.ParseTheme(c.theme)
		}
		path = p
	}

	p, err := prefs.Load(path)
	if err != nil {
		return "", err
	}
	switch c.theme {
	case "":
		return p.Theme, nil
	case "toggle":
		p.Theme = p.Theme.Toggle()
	default:
		t, err := prefs.ParseTheme(c.theme)
		if err != nil {
			return "", err
		}
		p.Theme = t
	}
	if err := prefs.Save(path, p); err != nil {
		return "", err
	}
	return p.Theme, nil
}
