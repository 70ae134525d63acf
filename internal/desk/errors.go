package desk

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidName       = errors.New("invalid name: only letters and spaces, at least two characters")
	ErrAlreadyAttending  = errors.New("a case is already in attention; finalize it before attending another")
	ErrNoCasesWaiting    = errors.New("no cases waiting")
	ErrNoCaseInAttention = errors.New("no case in attention")
	ErrStatusUnchanged   = errors.New("case already has that status")
	ErrAlreadyUrgent     = errors.New("case was already marked urgent at intake")
	ErrEmptyHistory      = errors.New("nothing in history")
	ErrCaseMismatch      = errors.New("action does not match current case")
	ErrInvalidIndex      = errors.New("invalid note index")
	ErrNoNotes           = errors.New("current case has no notes")
	ErrEmptyNote         = errors.New("note text is empty")
)

// CaseMismatchError reports an undo/redo record that belongs to a different case.
// CurrentCaseID is 0 when no case is in attention.
type CaseMismatchError struct {
	ActionCaseID  int
	CurrentCaseID int
}

func (e CaseMismatchError) Error() string {
	if e.CurrentCaseID == 0 {
		return fmt.Sprintf("%s: action for case %d, none in attention", ErrCaseMismatch, e.ActionCaseID)
	}
	return fmt.Sprintf("%s: action for case %d, current is %d", ErrCaseMismatch, e.ActionCaseID, e.CurrentCaseID)
}

func (e CaseMismatchError) Unwrap() error { return ErrCaseMismatch }

type IndexError struct {
	Index int
	Len   int
}

func (e IndexError) Error() string {
	return fmt.Sprintf("%s: %d (have %d)", ErrInvalidIndex, e.Index, e.Len)
}

func (e IndexError) Unwrap() error { return ErrInvalidIndex }
