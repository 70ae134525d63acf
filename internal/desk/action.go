package desk

import (
	"fmt"

	"cae-cli/internal/model"
)

type ActionKind string

const (
	KindAddNote     ActionKind = "ADD_NOTE"
	KindRemoveNote  ActionKind = "REMOVE_NOTE"
	KindStateChange ActionKind = "STATE_CHANGE"
)

// Action is one reversible mutation recorded against a case.
// The set of implementations is closed: AddNote, RemoveNote and StateChange.
type Action interface {
	TargetCase() int
	Kind() ActionKind
	String() string

	undo(c *Case)
	redo(c *Case)
}

type AddNote struct {
	CaseID int
	Text   string
}

func (a AddNote) TargetCase() int  { return a.CaseID }
func (a AddNote) Kind() ActionKind { return KindAddNote }
func (a AddNote) String() string   { return fmt.Sprintf("case %d: add note %q", a.CaseID, a.Text) }
func (a AddNote) undo(c *Case)     { c.removeNote(a.Text) }
func (a AddNote) redo(c *Case)     { c.addNote(a.Text) }

type RemoveNote struct {
	CaseID int
	Text   string
}

func (a RemoveNote) TargetCase() int  { return a.CaseID }
func (a RemoveNote) Kind() ActionKind { return KindRemoveNote }
func (a RemoveNote) String() string   { return fmt.Sprintf("case %d: remove note %q", a.CaseID, a.Text) }
func (a RemoveNote) undo(c *Case)     { c.addNote(a.Text) }
func (a RemoveNote) redo(c *Case)     { c.removeNote(a.Text) }

type StateChange struct {
	CaseID int
	From   model.Status
	To     model.Status
}

func (a StateChange) TargetCase() int  { return a.CaseID }
func (a StateChange) Kind() ActionKind { return KindStateChange }
func (a StateChange) String() string {
	return fmt.Sprintf("case %d: status %s -> %s", a.CaseID, a.From, a.To)
}
func (a StateChange) undo(c *Case) { c.setStatus(a.From) }
func (a StateChange) redo(c *Case) { c.setStatus(a.To) }

// NoteText returns the note payload of a note-kind action.
// ok is false for StateChange and nil.
func NoteText(a Action) (text string, ok bool) {
	switch a := a.(type) {
	case AddNote:
		return a.Text, true
	case RemoveNote:
		return a.Text, true
	default:
		return "", false
	}
}
