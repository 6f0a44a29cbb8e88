package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dshills/runpad/internal/app"
	"github.com/dshills/runpad/internal/dispatcher/handler"
	"github.com/dshills/runpad/internal/input"
	"github.com/dshills/runpad/internal/renderer/gutter"
)

// shellCommands are handled by the shell itself rather than dispatched.
var shellCommands = []string{
	"bg          run the active document in the background",
	"cancel      stop the background run",
	"console     print the run console",
	"help        list commands",
	"quit        exit",
	"show        print the visible rows with line numbers",
	"stats       print dispatch counts",
	"tabs        list open documents with cursor positions",
}

// shell is a line-oriented front end over the application.
// All application calls happen on the goroutine running Run.
type shell struct {
	app *app.Application
	in  io.Reader
	out io.Writer

	pending <-chan app.RunOutcome
	cancel  context.CancelFunc
}

func newShell(a *app.Application, in io.Reader, out io.Writer) *shell {
	return &shell{app: a, in: in, out: out}
}

// Run reads commands until input ends, quit is entered or a signal arrives
// with no run to cancel. A background run still pending at end of input is
// waited for.
func (s *shell) Run(signals <-chan os.Signal) error {
	done := make(chan struct{})
	defer close(done)

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(s.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
		readErr <- sc.Err()
	}()

	s.prompt()
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				if s.pending != nil {
					s.finish(<-s.pending)
				}
				return <-readErr
			}
			if err := s.handle(line); err != nil {
				s.stop()
				return err
			}
			s.prompt()

		case o := <-s.pending:
			s.finish(o)
			s.prompt()

		case <-signals:
			if s.cancel != nil {
				s.cancel()
				continue
			}
			return app.ErrQuit
		}
	}
}

func (s *shell) handle(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	word, _, _ := strings.Cut(line, " ")
	switch strings.ToLower(word) {
	case "quit", "exit":
		return app.ErrQuit
	case "help":
		s.help()
	case "show":
		for _, row := range s.app.Render() {
			fmt.Fprintln(s.out, row)
		}
	case "console":
		fmt.Fprint(s.out, s.app.Console().Text())
	case "tabs":
		s.tabs()
	case "stats":
		s.stats()
	case "bg":
		s.background()
	case "cancel":
		if s.cancel == nil {
			fmt.Fprintln(s.out, "Nothing running")
			return nil
		}
		s.cancel()
	default:
		res, err := s.app.Execute(context.Background(), line)
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
			return nil
		}
		s.report(res)
	}
	return nil
}

func (s *shell) background() {
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := s.app.RunAsync(ctx)
	if err != nil {
		cancel()
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	s.pending, s.cancel = ch, cancel
	fmt.Fprintf(s.out, "Running %s\n", s.app.Documents().Active().Label())
}

func (s *shell) finish(o app.RunOutcome) {
	s.stop()
	s.report(s.app.CompleteRun(o))
}

func (s *shell) stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.pending, s.cancel = nil, nil
}

// report prints a result's output, if any, then its status message.
func (s *shell) report(res handler.Result) {
	if out := res.GetDataString("output"); out != "" {
		fmt.Fprint(s.out, out)
		if !strings.HasSuffix(out, "\n") {
			fmt.Fprintln(s.out)
		}
	}

	switch {
	case res.IsError():
		fmt.Fprintf(s.out, "error: %s\n", res.Message)
	case res.Message != "":
		fmt.Fprintln(s.out, res.Message)
	}
}

func (s *shell) tabs() {
	docs := s.app.Documents()
	for i, doc := range docs.Documents() {
		marker := " "
		if i == docs.ActiveIndex() {
			marker = "*"
		}
		modified := ""
		if doc.Modified() {
			modified = " [+]"
		}
		cur := doc.Buffer().Cursor()
		fmt.Fprintf(s.out, "%s %d %s%s %s\n", marker, i, doc.Label(), modified, gutter.FormatPosition(cur.Line, cur.Column))
	}
}

func (s *shell) stats() {
	m := s.app.Dispatcher().Metrics()
	if m == nil {
		fmt.Fprintln(s.out, "Metrics disabled")
		return
	}
	sum := m.Summary()
	fmt.Fprintf(s.out, "%d dispatches, %d errors, %d panics, avg %s\n", sum.Dispatches, sum.Errors, sum.Panics, sum.Average)
	for _, a := range sum.Actions {
		fmt.Fprintf(s.out, "  %-16s %d\n", a.Name, a.DispatchCount)
	}
}

func (s *shell) help() {
	fmt.Fprintln(s.out, "Editor commands:")
	for _, usage := range input.Commands() {
		fmt.Fprintf(s.out, "  %s\n", usage)
	}
	fmt.Fprintln(s.out, "Shell commands:")
	for _, c := range shellCommands {
		fmt.Fprintf(s.out, "  %s\n", c)
	}
}

func (s *shell) prompt() {
	fmt.Fprintf(s.out, "%s> ", s.app.Documents().Active().Label())
}
