package desk

import (
	"io"
	"log/slog"

	"cae-cli/internal/collections"
)

// CurrentCaser exposes the case an action may be replayed against.
type CurrentCaser interface {
	Current() *Case
}

// History keeps the undo and redo stacks for note and status actions.
type History struct {
	cases CurrentCaser
	undo  *collections.Stack[Action]
	redo  *collections.Stack[Action]
	log   *slog.Logger
}

func NewHistory(cases CurrentCaser, logger *slog.Logger) *History {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &History{
		cases: cases,
		undo:  collections.NewStack[Action](),
		redo:  collections.NewStack[Action](),
		log:   logger,
	}
}

// Record pushes a forward action. Any redo history is dropped.
func (h *History) Record(a Action) {
	h.undo.Push(a)
	h.redo.Clear()
}

// Undo reverses the most recent action on the current case.
//
// A record that targets a different case than the one in attention is
// consumed and dropped; it is not pushed back.
func (h *History) Undo() (Action, error) {
	a, ok := h.undo.Pop()
	if !ok {
		return nil, ErrEmptyHistory
	}
	c, err := h.target(a)
	if err != nil {
		h.log.Warn("undo record dropped", "action", a.String(), "err", err)
		return nil, err
	}
	h.redo.Push(a)
	a.undo(c)
	h.log.Debug("undo", "action", a.String())
	return a, nil
}

// Redo replays the most recently undone action. Mismatches are dropped as in Undo.
func (h *History) Redo() (Action, error) {
	a, ok := h.redo.Pop()
	if !ok {
		return nil, ErrEmptyHistory
	}
	c, err := h.target(a)
	if err != nil {
		h.log.Warn("redo record dropped", "action", a.String(), "err", err)
		return nil, err
	}
	h.undo.Push(a)
	a.redo(c)
	h.log.Debug("redo", "action", a.String())
	return a, nil
}

func (h *History) target(a Action) (*Case, error) {
	c := h.cases.Current()
	if c == nil {
		return nil, CaseMismatchError{ActionCaseID: a.TargetCase()}
	}
	if c.id != a.TargetCase() {
		return nil, CaseMismatchError{ActionCaseID: a.TargetCase(), CurrentCaseID: c.id}
	}
	return c, nil
}

func (h *History) CanUndo() bool { return !h.undo.IsEmpty() }
func (h *History) CanRedo() bool { return !h.redo.IsEmpty() }

// Next returns the action Undo would reverse, without popping it.
func (h *History) Next() (Action, bool) {
	return h.undo.Peek()
}

// Depth returns the sizes of the undo and redo stacks.
func (h *History) Depth() (undo, redo int) {
	return h.undo.Len(), h.redo.Len()
}
