// Package desk implements the case dispatch engine and its undo/redo log.
//
// A Desk is single-operator, in-memory state for one process run. It is not
// safe for concurrent use.
package desk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"cae-cli/internal/model"

	"github.com/google/uuid"
)

// Exporter receives every finalized case.
type Exporter interface {
	Export(ctx context.Context, t model.Ticket) error
}

type ExporterFunc func(ctx context.Context, t model.Ticket) error

func (f ExporterFunc) Export(ctx context.Context, t model.Ticket) error { return f(ctx, t) }

type Desk struct {
	cases   *Dispatcher
	history *History

	exporters []Exporter
	now       func() time.Time
	session   string
	log       *slog.Logger
	valid     NameValidator
}

type Option func(*Desk)

func WithLogger(l *slog.Logger) Option {
	return func(d *Desk) {
		if l != nil {
			d.log = l
		}
	}
}

func WithValidator(v NameValidator) Option {
	return func(d *Desk) {
		if v != nil {
			d.valid = v
		}
	}
}

// WithExporter adds an exporter. Exporters run in the order they were added.
func WithExporter(e Exporter) Option {
	return func(d *Desk) {
		if e != nil {
			d.exporters = append(d.exporters, e)
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(d *Desk) {
		if now != nil {
			d.now = now
		}
	}
}

func WithSessionID(id string) Option {
	return func(d *Desk) {
		if strings.TrimSpace(id) != "" {
			d.session = strings.TrimSpace(id)
		}
	}
}

func New(opts ...Option) *Desk {
	d := &Desk{
		now:     time.Now,
		session: uuid.NewString(),
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		valid:   ValidName,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.log = d.log.With("session", d.session)
	d.cases = NewDispatcher(d.valid, d.log)
	d.history = NewHistory(d.cases, d.log)
	return d
}

func (d *Desk) SessionID() string { return d.session }

// ValidateName runs the intake validator without creating a case.
func (d *Desk) ValidateName(name string) error {
	if !d.valid(name) {
		return ErrInvalidName
	}
	return nil
}

func (d *Desk) Intake(name string, urgent bool) (*Case, error) {
	return d.cases.Intake(name, urgent)
}

func (d *Desk) AttendNext() (*Case, error) {
	return d.cases.AttendNext()
}

// ChangeStatus changes the current case's status and records it for undo.
// Nothing is recorded when the dispatcher refuses the change.
func (d *Desk) ChangeStatus(to model.Status) (model.StatusChange, error) {
	ch, err := d.cases.ChangeStatus(to)
	if err != nil {
		return model.StatusChange{}, err
	}
	d.history.Record(StateChange{CaseID: ch.CaseID, From: ch.From, To: ch.To})
	return ch, nil
}

// Finalize completes the current case and hands it to every exporter.
//
// The case is finalized even when an exporter fails; in that case the
// finalized case is returned together with the joined export error.
func (d *Desk) Finalize(ctx context.Context) (*Case, error) {
	c, err := d.cases.FinalizeCurrent()
	if err != nil {
		return nil, err
	}
	t := model.Ticket{Case: c.Snapshot(), CompletedAt: d.now().UTC(), SessionID: d.session}
	var errs []error
	for _, e := range d.exporters {
		if err := e.Export(ctx, t); err != nil {
			d.log.Error("ticket export failed", "case_id", c.id, "err", err)
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return c, fmt.Errorf("export ticket %d: %w", c.id, errors.Join(errs...))
	}
	return c, nil
}

func (d *Desk) AddNote(text string) error {
	c := d.cases.Current()
	if c == nil {
		return ErrNoCaseInAttention
	}
	text = strings.TrimSpace(text)
	if !c.addNote(text) {
		return ErrEmptyNote
	}
	d.history.Record(AddNote{CaseID: c.id, Text: text})
	d.log.Debug("note added", "case_id", c.id, "notes", len(c.notes))
	return nil
}

// RemoveNoteAt removes the note at a zero-based, newest-first index and returns its text.
func (d *Desk) RemoveNoteAt(index int) (string, error) {
	c := d.cases.Current()
	if c == nil {
		return "", ErrNoCaseInAttention
	}
	if !c.HasNotes() {
		return "", ErrNoNotes
	}
	text, ok := c.removeNoteAt(index)
	if !ok {
		return "", IndexError{Index: index, Len: c.NoteCount()}
	}
	d.history.Record(RemoveNote{CaseID: c.id, Text: text})
	d.log.Debug("note removed", "case_id", c.id, "notes", len(c.notes))
	return text, nil
}

// CurrentHasNoNotes is true when no case is in attention or it has no notes.
func (d *Desk) CurrentHasNoNotes() bool {
	c := d.cases.Current()
	return c == nil || !c.HasNotes()
}

// Undo reverses the last action. It returns the note text for note actions;
// isNote is false for status changes.
func (d *Desk) Undo() (text string, isNote bool, err error) {
	a, err := d.history.Undo()
	if err != nil {
		return "", false, err
	}
	text, isNote = NoteText(a)
	return text, isNote, nil
}

// Redo replays the last undone action, with the same result shape as Undo.
func (d *Desk) Redo() (text string, isNote bool, err error) {
	a, err := d.history.Redo()
	if err != nil {
		return "", false, err
	}
	text, isNote = NoteText(a)
	return text, isNote, nil
}

// LastUndoable returns the action Undo would reverse next.
func (d *Desk) LastUndoable() (Action, bool) {
	return d.history.Next()
}

func (d *Desk) CanUndo() bool { return d.history.CanUndo() }
func (d *Desk) CanRedo() bool { return d.history.CanRedo() }

// HistoryDepth returns how many actions can be undone and redone.
func (d *Desk) HistoryDepth() (undo, redo int) { return d.history.Depth() }

func (d *Desk) Current() *Case     { return d.cases.Current() }
func (d *Desk) Completed() []*Case { return d.cases.Completed() }
func (d *Desk) Queued() []*Case    { return d.cases.Queued() }

// NextUp returns the case the next attend would take.
func (d *Desk) NextUp() (*Case, bool) { return d.cases.NextUp() }

func (d *Desk) Waiting() (urgent, normal int) { return d.cases.Waiting() }

func (d *Desk) Find(id int) (*Case, bool) { return d.cases.Find(id) }

// AllCases returns completed, current and queued cases sorted by id.
func (d *Desk) AllCases() []*Case {
	out := d.cases.Completed()
	if c := d.cases.Current(); c != nil {
		out = append(out, c)
	}
	out = append(out, d.cases.Queued()...)
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}
