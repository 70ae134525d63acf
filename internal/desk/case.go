package desk

import (
	"encoding/json"
	"strings"

	"cae-cli/internal/model"
)

// Case is a student support case. Identity, student and urgency are fixed at
// intake; status only moves through the Dispatcher or History.
type Case struct {
	id      int
	student string
	status  model.Status
	urgent  bool
	// notes is stored oldest first; the public order is newest first.
	notes []string
}

func newCase(id int, student string, urgent bool) *Case {
	st := model.StatusQueued
	if urgent {
		st = model.StatusUrgent
	}
	return &Case{id: id, student: student, status: st, urgent: urgent}
}

func (c *Case) ID() int              { return c.id }
func (c *Case) Student() string      { return c.student }
func (c *Case) Status() model.Status { return c.status }
func (c *Case) Urgent() bool         { return c.urgent }
func (c *Case) NoteCount() int       { return len(c.notes) }
func (c *Case) HasNotes() bool       { return len(c.notes) > 0 }

// Notes returns a copy of the notes, most recently inserted first.
func (c *Case) Notes() []string {
	out := make([]string, 0, len(c.notes))
	for i := len(c.notes) - 1; i >= 0; i-- {
		out = append(out, c.notes[i])
	}
	return out
}

func (c *Case) setStatus(s model.Status) { c.status = s }

// addNote inserts text at the front. Blank text is ignored.
func (c *Case) addNote(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	c.notes = append(c.notes, text)
	return true
}

// removeNote drops the first note, in newest-first order, equal to text.
func (c *Case) removeNote(text string) bool {
	text = strings.TrimSpace(text)
	for i := len(c.notes) - 1; i >= 0; i-- {
		if c.notes[i] == text {
			c.notes = append(c.notes[:i], c.notes[i+1:]...)
			return true
		}
	}
	return false
}

// removeNoteAt drops the note at a newest-first index.
func (c *Case) removeNoteAt(index int) (string, bool) {
	if index < 0 || index >= len(c.notes) {
		return "", false
	}
	i := len(c.notes) - 1 - index
	text := c.notes[i]
	c.notes = append(c.notes[:i], c.notes[i+1:]...)
	return text, true
}

func (c *Case) Snapshot() model.Case {
	return model.Case{
		ID:      c.id,
		Student: c.student,
		Status:  c.status,
		Urgent:  c.urgent,
		Notes:   c.Notes(),
	}
}

func (c *Case) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Snapshot())
}

// Snapshots converts cases for output, preserving order.
func Snapshots(cs []*Case) []model.Case {
	out := make([]model.Case, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Snapshot())
	}
	return out
}
