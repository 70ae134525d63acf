package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cae-cli/internal/desk"
	"cae-cli/internal/store"
)

func newTestSession(t *testing.T, opts Options) (*Session, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	if opts.Tickets.Dir == "" {
		opts.Tickets = store.TicketDir{Dir: t.TempDir()}
	}
	return New(desk.New(desk.WithSessionID("test")), &out, &errOut, opts), &out, &errOut
}

func TestRun_Script(t *testing.T) {
	t.Parallel()

	s, out, errOut := newTestSession(t, Options{})
	script := strings.Join([]string{
		"# morning shift",
		"intake Ana Lopez",
		"intake -u Beto Ruiz",
		"",
		"attend",
		"note add llamar",
		"note add 'seguimiento semanal'",
		"notes",
		"note rm 1",
		"undo",
		"notes",
		"status QUEUED",
		"finalize",
		"completed",
	}, "\n")
	if err := s.Run(context.Background(), strings.NewReader(script), false); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := strings.Join([]string{
		"Case #1 registered for Ana Lopez",
		"Case #2 registered for Beto Ruiz (urgent)",
		"Attending case #2: Beto Ruiz (urgent)",
		"Note added to case #2.",
		"Note added to case #2.",
		"Notes (newest first):",
		"  1. seguimiento semanal",
		"  2. llamar",
		"Removed note: seguimiento semanal",
		`Undone: note "seguimiento semanal"`,
		"Notes (newest first):",
		"  1. seguimiento semanal",
		"  2. llamar",
		"Case #2: IN_ATTENTION -> QUEUED",
		"Case #2 finalized.",
		"#2 Beto Ruiz [COMPLETED] urgent (2 note(s))",
		"",
	}, "\n")
	if out.String() != want {
		t.Fatalf("output:\n%s\nwant:\n%s", out.String(), want)
	}
	if errOut.Len() != 0 {
		t.Fatalf("unexpected errors: %s", errOut.String())
	}
}

func TestRun_ErrorsContinueUnlessStopOnError(t *testing.T) {
	t.Parallel()

	script := "attend\nintake A\nintake Ana\nbogus\nattend\n"

	s, out, errOut := newTestSession(t, Options{})
	if err := s.Run(context.Background(), strings.NewReader(script), false); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "Attending case #1: Ana (normal)") {
		t.Fatalf("expected later lines to run; out=%q", out.String())
	}
	errs := errOut.String()
	for _, want := range []string{"error: no cases waiting", "error: invalid name", `unknown command "bogus"`} {
		if !strings.Contains(errs, want) {
			t.Fatalf("expected %q in errors; got:\n%s", want, errs)
		}
	}

	s, _, _ = newTestSession(t, Options{StopOnError: true})
	err := s.Run(context.Background(), strings.NewReader(script), false)
	if !errors.Is(err, desk.ErrNoCasesWaiting) || !strings.HasPrefix(err.Error(), "line 1:") {
		t.Fatalf("expected line 1 failure; got %v", err)
	}
}

func TestRun_ExitStopsAndPrompt(t *testing.T) {
	t.Parallel()

	s, out, _ := newTestSession(t, Options{})
	if err := s.Run(context.Background(), strings.NewReader("quit\nintake Ana\n"), true); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !s.Done() {
		t.Fatalf("expected session done")
	}
	if out.String() != Prompt {
		t.Fatalf("expected only one prompt; got %q", out.String())
	}
	if len(s.Desk().Queued()) != 0 {
		t.Fatalf("lines after quit must not run")
	}
}

func TestExec_NoteRemovalMessages(t *testing.T) {
	t.Parallel()

	s, _, errOut := newTestSession(t, Options{})
	ctx := context.Background()
	for _, line := range []string{"intake Ana", "attend", "note add uno"} {
		if err := s.Exec(ctx, line); err != nil {
			t.Fatalf("Exec(%q): %v", line, err)
		}
	}
	if err := s.Exec(ctx, "note rm 3"); !errors.Is(err, desk.ErrInvalidIndex) {
		t.Fatalf("expected invalid index; got %v", err)
	}
	if !strings.Contains(errOut.String(), "no note 3; the current case has 1 note(s)") {
		t.Fatalf("unexpected message: %q", errOut.String())
	}
	if err := s.Exec(ctx, "note rm x"); err == nil {
		t.Fatalf("expected parse error")
	}
	if err := s.Exec(ctx, "note add"); !errors.Is(err, desk.ErrEmptyNote) {
		t.Fatalf("expected empty note; got %v", err)
	}
	if err := s.Exec(ctx, "note add -u --urgent"); err != nil {
		t.Fatalf("dash-prefixed note: %v", err)
	}
	if got := s.Desk().Current().Notes(); got[0] != "-u --urgent" {
		t.Fatalf("expected literal note text; got %q", got)
	}
	if err := s.Exec(ctx, "attend"); !errors.Is(err, desk.ErrAlreadyAttending) {
		t.Fatalf("expected already attending; got %v", err)
	}
	if !strings.Contains(errOut.String(), "(case #1: Ana)") {
		t.Fatalf("expected current case context; got %q", errOut.String())
	}
}

func TestExec_ShowAndHistory(t *testing.T) {
	t.Parallel()

	s, out, _ := newTestSession(t, Options{})
	ctx := context.Background()
	for _, line := range []string{"intake Ana", "intake --urgent Beto", "attend", "finalize", "intake Carla"} {
		if err := s.Exec(ctx, line); err != nil {
			t.Fatalf("Exec(%q): %v", line, err)
		}
	}
	out.Reset()
	if err := s.Exec(ctx, "show 2"); err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.HasPrefix(out.String(), "This ticket has been finalized.\nCase #2\n") {
		t.Fatalf("unexpected show output:\n%s", out.String())
	}
	if err := s.Exec(ctx, "show 9"); err == nil {
		t.Fatalf("expected not found")
	}

	out.Reset()
	if err := s.Exec(ctx, "history"); err != nil {
		t.Fatalf("history: %v", err)
	}
	want := "#1 Ana [QUEUED]\n#2 Beto [COMPLETED] urgent\n#3 Carla [QUEUED]\n"
	if out.String() != want {
		t.Fatalf("history=%q, want %q", out.String(), want)
	}
}

func TestExec_SavePending(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, _, _ := newTestSession(t, Options{Tickets: store.TicketDir{Dir: dir}})
	ctx := context.Background()
	for _, line := range []string{"intake -u Beto", "intake Ana", "save-pending"} {
		if err := s.Exec(ctx, line); err != nil {
			t.Fatalf("Exec(%q): %v", line, err)
		}
	}
	b, err := os.ReadFile(filepath.Join(dir, "pending_tickets.txt"))
	if err != nil {
		t.Fatalf("read pending: %v", err)
	}
	if string(b) != "2;Ana;QUEUED;false\n1;Beto;URGENT;true\n" {
		t.Fatalf("unexpected pending snapshot: %q", b)
	}
}

func TestExec_JSONEnvelope(t *testing.T) {
	t.Parallel()

	s, out, _ := newTestSession(t, Options{Format: "json"})
	if err := s.Exec(context.Background(), "intake Ana Lopez"); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	var env struct {
		Message string `json:"message"`
		Data    struct {
			ID      int    `json:"id"`
			Student string `json:"student"`
			Status  string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(out.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", out.String(), err)
	}
	if env.Message != "Case #1 registered for Ana Lopez" || env.Data.ID != 1 || env.Data.Status != "QUEUED" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestExec_FreshFlagsPerLine(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestSession(t, Options{})
	ctx := context.Background()
	if err := s.Exec(ctx, "intake --urgent Ana"); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if err := s.Exec(ctx, "intake Beto"); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	urgent, normal := s.Desk().Waiting()
	if urgent != 1 || normal != 1 {
		t.Fatalf("urgent flag leaked between lines: urgent=%d normal=%d", urgent, normal)
	}
}

func TestRun_ReportsLineNumbers(t *testing.T) {
	t.Parallel()

	s, _, errOut := newTestSession(t, Options{})
	if err := s.Run(context.Background(), strings.NewReader("intake Ana\n\nbogus\nattend\nattend\n"), false); err != nil {
		t.Fatalf("Run: %v", err)
	}
	errs := errOut.String()
	for _, want := range []string{`line 3: error: unknown command "bogus"`, "line 5: error: a case is already in attention"} {
		if !strings.Contains(errs, want) {
			t.Fatalf("expected %q in errors; got:\n%s", want, errs)
		}
	}

	// Direct Exec and prompted sessions have no line context.
	errOut.Reset()
	if err := s.Exec(context.Background(), "attend"); err == nil {
		t.Fatalf("expected already attending")
	}
	if !strings.HasPrefix(errOut.String(), "error: a case is already in attention") {
		t.Fatalf("unexpected prefix: %q", errOut.String())
	}
}

func TestRun_LongLines(t *testing.T) {
	t.Parallel()

	s, _, errOut := newTestSession(t, Options{StopOnError: true})
	long := strings.Repeat("x", 100*1024)
	script := "intake Ana\nattend\nnote add " + long + "\n"
	if err := s.Run(context.Background(), strings.NewReader(script), false); err != nil {
		t.Fatalf("Run: %v (stderr %q)", err, errOut.String())
	}
	if got := s.Desk().Current().Notes(); len(got) != 1 || got[0] != long {
		t.Fatalf("expected the 100 KiB note intact; got %d note(s)", len(got))
	}

	s, _, errOut = newTestSession(t, Options{})
	script = "intake Ana\n" + strings.Repeat("y", MaxLineBytes+1) + "\n"
	if err := s.Run(context.Background(), strings.NewReader(script), false); err == nil {
		t.Fatalf("expected an error for a line over MaxLineBytes")
	}
	if !strings.HasPrefix(errOut.String(), "line 2: error: line longer than") {
		t.Fatalf("unexpected report: %q", errOut.String())
	}
}
