// Package session runs line-oriented desk commands from a terminal or a script.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"cae-cli/internal/desk"
	"cae-cli/internal/store"

	"golang.org/x/term"
)

const Prompt = "cae> "

// MaxLineBytes bounds one input line.
const MaxLineBytes = 1 << 20

type Options struct {
	// Tickets is where save-pending writes its snapshot.
	Tickets store.TicketDir
	Format  string
	Pretty  bool
	// StopOnError makes Run return at the first failing line.
	StopOnError bool
	Logger      *slog.Logger
}

type Session struct {
	desk *desk.Desk
	opts Options
	out  io.Writer
	err  io.Writer
	log  *slog.Logger

	// line is the script line being executed, 0 outside Run or on a terminal.
	line int
	quit bool
}

func New(d *desk.Desk, out, errOut io.Writer, opts Options) *Session {
	l := opts.Logger
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{desk: d, opts: opts, out: out, err: errOut, log: l}
}

// Desk exposes the session's desk.
func (s *Session) Desk() *desk.Desk { return s.desk }

// Done reports whether exit or quit was executed.
func (s *Session) Done() bool { return s.quit }

// Interactive reports whether r is a terminal.
func Interactive(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Run executes lines from r until EOF or exit.
// When prompt is set, Prompt is written before each line; otherwise failures
// are reported with their line number. Every error Run returns has already
// been written to the error writer.
func (s *Session) Run(ctx context.Context, r io.Reader, prompt bool) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)
	defer func() { s.line = 0 }()
	lineNo := 0
	failed := 0
	for {
		if prompt {
			fmt.Fprint(s.out, Prompt)
		}
		if !sc.Scan() {
			break
		}
		lineNo++
		if !prompt {
			s.line = lineNo
		}
		if err := ctx.Err(); err != nil {
			return s.fail(err)
		}
		if err := s.Exec(ctx, sc.Text()); err != nil {
			failed++
			if s.opts.StopOnError {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
		}
		if s.quit {
			return nil
		}
	}
	if prompt {
		fmt.Fprintln(s.out)
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			s.line = lineNo + 1
			err = fmt.Errorf("line longer than %d bytes", MaxLineBytes)
		}
		return s.fail(err)
	}
	if failed > 0 {
		s.log.Debug("session finished with errors", "failed", failed, "lines", lineNo)
	}
	return nil
}

// Exec runs one command line. Errors are reported on the error writer and returned.
func (s *Session) Exec(ctx context.Context, line string) error {
	argv, err := splitWords(line)
	if err != nil {
		return s.fail(err)
	}
	if len(argv) == 0 {
		return nil
	}
	s.log.Debug("exec", "cmd", argv[0], "args", len(argv)-1)

	root := s.newCommandTree()
	root.SetArgs(argv)
	root.SetOut(s.out)
	root.SetErr(s.err)
	if err := root.ExecuteContext(ctx); err != nil {
		return s.fail(err)
	}
	return nil
}

func (s *Session) fail(err error) error {
	prefix := "error: "
	if s.line > 0 {
		prefix = fmt.Sprintf("line %d: error: ", s.line)
	}
	fmt.Fprintln(s.err, prefix+strings.TrimSpace(describeErr(s.desk, err)))
	return err
}
