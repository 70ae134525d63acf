package desk

import (
	"errors"
	"reflect"
	"testing"

	"cae-cli/internal/model"
)

type fixedCurrent struct{ c *Case }

func (f *fixedCurrent) Current() *Case { return f.c }

func TestHistory_EmptyStacks(t *testing.T) {
	t.Parallel()

	h := NewHistory(&fixedCurrent{c: newCase(1, "Ana", false)}, nil)
	if _, err := h.Undo(); !errors.Is(err, ErrEmptyHistory) {
		t.Fatalf("undo: expected ErrEmptyHistory; got %v", err)
	}
	if _, err := h.Redo(); !errors.Is(err, ErrEmptyHistory) {
		t.Fatalf("redo: expected ErrEmptyHistory; got %v", err)
	}
}

func TestHistory_InverseAndForwardEffects(t *testing.T) {
	t.Parallel()

	c := newCase(7, "Ana", false)
	c.setStatus(model.StatusInAttention)
	h := NewHistory(&fixedCurrent{c: c}, nil)

	c.addNote("uno")
	h.Record(AddNote{CaseID: 7, Text: "uno"})
	c.addNote("dos")
	h.Record(AddNote{CaseID: 7, Text: "dos"})
	text, _ := c.removeNoteAt(1)
	h.Record(RemoveNote{CaseID: 7, Text: text})
	c.setStatus(model.StatusUrgent)
	h.Record(StateChange{CaseID: 7, From: model.StatusInAttention, To: model.StatusUrgent})

	steps := []struct {
		wantKind   ActionKind
		wantNotes  []string
		wantStatus model.Status
	}{
		{KindStateChange, []string{"dos"}, model.StatusInAttention},
		{KindRemoveNote, []string{"uno", "dos"}, model.StatusInAttention},
		{KindAddNote, []string{"uno"}, model.StatusInAttention},
		{KindAddNote, []string{}, model.StatusInAttention},
	}
	for i, st := range steps {
		a, err := h.Undo()
		if err != nil {
			t.Fatalf("undo %d: %v", i, err)
		}
		if a.Kind() != st.wantKind {
			t.Fatalf("undo %d: kind %s, want %s", i, a.Kind(), st.wantKind)
		}
		if got := c.Notes(); !reflect.DeepEqual(got, st.wantNotes) {
			t.Fatalf("undo %d: notes %v, want %v", i, got, st.wantNotes)
		}
		if c.Status() != st.wantStatus {
			t.Fatalf("undo %d: status %s, want %s", i, c.Status(), st.wantStatus)
		}
	}

	for i := 0; i < 4; i++ {
		if _, err := h.Redo(); err != nil {
			t.Fatalf("redo %d: %v", i, err)
		}
	}
	if got, want := c.Notes(), []string{"dos"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("after redo: notes %v, want %v", got, want)
	}
	if c.Status() != model.StatusUrgent {
		t.Fatalf("after redo: status %s, want URGENT", c.Status())
	}
	if undo, redo := h.Depth(); undo != 4 || redo != 0 {
		t.Fatalf("depth=%d/%d, want 4/0", undo, redo)
	}
}

func TestHistory_RecordClearsRedo(t *testing.T) {
	t.Parallel()

	c := newCase(1, "Ana", false)
	h := NewHistory(&fixedCurrent{c: c}, nil)
	h.Record(AddNote{CaseID: 1, Text: "a"})
	if _, err := h.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if !h.CanRedo() {
		t.Fatalf("expected redo to be available")
	}
	h.Record(AddNote{CaseID: 1, Text: "b"})
	if h.CanRedo() {
		t.Fatalf("expected redo cleared by a new record")
	}
	if _, err := h.Redo(); !errors.Is(err, ErrEmptyHistory) {
		t.Fatalf("expected ErrEmptyHistory; got %v", err)
	}
}

func TestHistory_MismatchDiscardsRecord(t *testing.T) {
	t.Parallel()

	cur := &fixedCurrent{c: newCase(1, "Ana", false)}
	h := NewHistory(cur, nil)
	h.Record(AddNote{CaseID: 1, Text: "keep"})
	h.Record(AddNote{CaseID: 2, Text: "other"})

	_, err := h.Undo()
	if !errors.Is(err, ErrCaseMismatch) {
		t.Fatalf("expected ErrCaseMismatch; got %v", err)
	}
	var mm CaseMismatchError
	if !errors.As(err, &mm) || mm.ActionCaseID != 2 || mm.CurrentCaseID != 1 {
		t.Fatalf("unexpected mismatch detail: %#v", err)
	}
	if h.CanRedo() {
		t.Fatalf("mismatched record must not move to redo")
	}
	if undo, _ := h.Depth(); undo != 1 {
		t.Fatalf("mismatched record must be consumed; undo depth=%d", undo)
	}

	// The next undo reaches the older record for the current case.
	a, err := h.Undo()
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if text, _ := NoteText(a); text != "keep" {
		t.Fatalf("expected the 'keep' record; got %q", text)
	}
}

func TestHistory_MismatchWithoutCurrent(t *testing.T) {
	t.Parallel()

	cur := &fixedCurrent{c: newCase(1, "Ana", false)}
	h := NewHistory(cur, nil)
	h.Record(AddNote{CaseID: 1, Text: "x"})
	if _, err := h.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	cur.c = nil
	_, err := h.Redo()
	var mm CaseMismatchError
	if !errors.As(err, &mm) || mm.CurrentCaseID != 0 {
		t.Fatalf("expected mismatch with no current case; got %v", err)
	}
	if h.CanRedo() || h.CanUndo() {
		t.Fatalf("expected both stacks empty after discarding")
	}
}

func TestHistory_DuplicateNotesUseFirstMatch(t *testing.T) {
	t.Parallel()

	c := newCase(1, "Ana", false)
	h := NewHistory(&fixedCurrent{c: c}, nil)
	c.addNote("dup")
	c.addNote("mid")
	c.addNote("dup")
	// Remove the older "dup" (index 2) by position.
	text, ok := c.removeNoteAt(2)
	if !ok {
		t.Fatalf("removeNoteAt failed")
	}
	h.Record(RemoveNote{CaseID: 1, Text: text})
	if _, err := h.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	// Restored at the front, not at its original place.
	if got, want := c.Notes(), []string{"dup", "dup", "mid"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("notes %v, want %v", got, want)
	}
	if _, err := h.Redo(); err != nil {
		t.Fatalf("redo: %v", err)
	}
	// Redo removes the first match in newest-first order.
	if got, want := c.Notes(), []string{"dup", "mid"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("notes %v, want %v", got, want)
	}
}

func TestNoteText(t *testing.T) {
	t.Parallel()

	if text, ok := NoteText(AddNote{Text: "a"}); !ok || text != "a" {
		t.Fatalf("AddNote: (%q,%v)", text, ok)
	}
	if text, ok := NoteText(RemoveNote{Text: "b"}); !ok || text != "b" {
		t.Fatalf("RemoveNote: (%q,%v)", text, ok)
	}
	if _, ok := NoteText(StateChange{}); ok {
		t.Fatalf("StateChange must not surface text")
	}
	if _, ok := NoteText(nil); ok {
		t.Fatalf("nil must not surface text")
	}
}

func TestHistory_NextPeeksWithoutPopping(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(nil, nil)
	mustIntake(t, d, "Ana", false)
	if _, err := d.AttendNext(); err != nil {
		t.Fatalf("AttendNext: %v", err)
	}
	h := NewHistory(d, nil)
	if _, ok := h.Next(); ok {
		t.Fatalf("expected nothing to peek on empty history")
	}
	h.Record(AddNote{CaseID: 1, Text: "a"})
	h.Record(AddNote{CaseID: 1, Text: "b"})

	for i := 0; i < 2; i++ {
		a, ok := h.Next()
		if !ok || a != (AddNote{CaseID: 1, Text: "b"}) {
			t.Fatalf("Next=(%v,%v), want the latest record", a, ok)
		}
	}
	if undo, _ := h.Depth(); undo != 2 {
		t.Fatalf("Next must not pop; undo depth %d", undo)
	}
}
