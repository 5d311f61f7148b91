package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/shabbyrobe/prettify"
	"github.com/shabbyrobe/prettify/internal/session"
)

const sessionHelp = `commands:
  :key COMBO     press a key combo, e.g. :key ctrl+enter
  :keys          list bound combos
  :tab json|xml  switch tab
  :sample        insert the sample document
  :edit          replace the buffer with the lines that follow, up to a line
                 holding a single "."
  :show          print the buffer
  :status        print the status strip
  :quit          leave
`

// repl drives a session from line-oriented input. Copy writes the buffer to
// the terminal clipboard with an OSC 52 escape sequence on out.
type repl struct {
	s    *session.Session
	keys *session.Keymap
	in   *bufio.Scanner
	out  io.Writer
	pal  palette
}

func runSession(cfg *config, stdin io.Reader, stdout io.Writer, pal palette, logger *log.Logger) int {
	lang, _ := prettify.ParseLanguage(cfg.lang)
	s := session.New(
		session.WithTab(lang),
		session.WithIndent(cfg.indent),
		session.WithClipboard(session.OSC52Clipboard{W: stdout}),
	)
	r := &repl{
		s:    s,
		keys: session.DefaultKeymap(s),
		in:   bufio.NewScanner(stdin),
		out:  stdout,
		pal:  pal,
	}
	r.in.Buffer(make([]byte, 64*1024), 64*1024*1024)

	if err := r.loop(); err != nil {
		logger.Print(err)
		return exitFail
	}
	return exitOK
}

func (r *repl) loop() error {
	for r.in.Scan() {
		line := strings.TrimSpace(r.in.Text())
		if line == "" {
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case ":quit", ":q":
			return nil

		case ":help":
			fmt.Fprint(r.out, sessionHelp)

		case ":keys":
			for _, c := range r.keys.Combos() {
				fmt.Fprintln(r.out, c)
			}

		case ":key":
			ok, err := r.keys.Dispatch(arg)
			if !ok && err == nil {
				r.fail(fmt.Errorf("no binding for %q", arg))
				continue
			}
			r.fail(err)
			r.status()

		case ":tab":
			lang, err := prettify.ParseLanguage(arg)
			if err == nil {
				err = r.s.SwitchTab(lang)
			}
			r.fail(err)
			r.status()

		case ":sample":
			r.s.InsertSample()
			r.show()

		case ":edit":
			text, err := r.readBlock()
			if err != nil {
				return err
			}
			r.s.Edit(text)
			fmt.Fprintln(r.out, r.s.Stats())

		case ":show":
			r.show()

		case ":status":
			r.status()

		default:
			r.fail(fmt.Errorf("unknown command %q, try :help", cmd))
		}
	}
	return r.in.Err()
}

func (r *repl) readBlock() (string, error) {
	var lines []string
	for r.in.Scan() {
		if r.in.Text() == "." {
			return strings.Join(lines, "\n"), nil
		}
		lines = append(lines, r.in.Text())
	}
	if err := r.in.Err(); err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

func (r *repl) show() {
	if text := r.s.Text(); text != "" {
		fmt.Fprintln(r.out, text)
	} else {
		fmt.Fprintln(r.out, r.pal.status.Sprint(r.s.Placeholder()))
	}
}

func (r *repl) fail(err error) {
	if err != nil {
		fmt.Fprintln(r.out, r.pal.err.Sprint("error: "+err.Error()))
	}
}

func (r *repl) status() {
	if toast := r.s.Toast(); toast != "" {
		fmt.Fprintln(r.out, toast)
	}
	fmt.Fprintln(r.out, r.pal.status.Sprint(r.s.Status()+" · "+r.s.Stats().String()))
}
