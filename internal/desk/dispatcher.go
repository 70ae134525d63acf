package desk

import (
	"io"
	"log/slog"

	"cae-cli/internal/collections"
	"cae-cli/internal/model"
)

// Dispatcher owns the two tier queues, the current-case slot and the completed
// list. A case lives in exactly one of them at a time.
type Dispatcher struct {
	urgent    *collections.Queue[*Case]
	normal    *collections.Queue[*Case]
	current   *Case
	completed []*Case
	nextID    int

	validName NameValidator
	log       *slog.Logger
}

// NewDispatcher returns an empty dispatcher. A nil validator means ValidName;
// a nil logger discards.
func NewDispatcher(valid NameValidator, logger *slog.Logger) *Dispatcher {
	if valid == nil {
		valid = ValidName
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dispatcher{
		urgent:    collections.NewQueue[*Case](),
		normal:    collections.NewQueue[*Case](),
		nextID:    1,
		validName: valid,
		log:       logger,
	}
}

// Intake creates a case and places it in its tier queue.
// The id counter only advances when the name is accepted.
func (d *Dispatcher) Intake(name string, urgent bool) (*Case, error) {
	if !d.validName(name) {
		return nil, ErrInvalidName
	}
	c := newCase(d.nextID, normalizeName(name), urgent)
	d.nextID++
	if urgent {
		d.urgent.Enqueue(c)
	} else {
		d.normal.Enqueue(c)
	}
	d.log.Debug("case intake", "case_id", c.id, "urgent", urgent, "status", c.status)
	return c, nil
}

// AttendNext moves the next waiting case into attention, urgent tier first.
func (d *Dispatcher) AttendNext() (*Case, error) {
	if d.current != nil && d.current.status == model.StatusInAttention {
		return nil, ErrAlreadyAttending
	}
	next, ok := d.urgent.Dequeue()
	if !ok {
		next, ok = d.normal.Dequeue()
	}
	if !ok {
		return nil, ErrNoCasesWaiting
	}
	if d.current != nil {
		// The slot holds a case whose status was changed away from IN_ATTENTION.
		// Cases never go back to a queue, so it leaves the desk.
		d.log.Warn("case displaced from attention", "case_id", d.current.id, "status", d.current.status)
	}
	next.setStatus(model.StatusInAttention)
	d.current = next
	d.log.Debug("case attended", "case_id", next.id, "urgent", next.urgent)
	return next, nil
}

// ChangeStatus sets the current case's status.
func (d *Dispatcher) ChangeStatus(to model.Status) (model.StatusChange, error) {
	c := d.current
	if c == nil {
		return model.StatusChange{}, ErrNoCaseInAttention
	}
	from := c.status
	if from == to {
		return model.StatusChange{}, ErrStatusUnchanged
	}
	if to == model.StatusUrgent && c.urgent {
		return model.StatusChange{}, ErrAlreadyUrgent
	}
	c.setStatus(to)
	d.log.Debug("case status changed", "case_id", c.id, "from", from, "to", to)
	return model.StatusChange{CaseID: c.id, From: from, To: to}, nil
}

// FinalizeCurrent completes the current case and empties the slot.
func (d *Dispatcher) FinalizeCurrent() (*Case, error) {
	c := d.current
	if c == nil {
		return nil, ErrNoCaseInAttention
	}
	c.setStatus(model.StatusCompleted)
	d.completed = append(d.completed, c)
	d.current = nil
	d.log.Debug("case finalized", "case_id", c.id, "notes", len(c.notes))
	return c, nil
}

// Current returns the case in attention, or nil.
func (d *Dispatcher) Current() *Case { return d.current }

// Completed returns the finalized cases in completion order.
func (d *Dispatcher) Completed() []*Case {
	out := make([]*Case, len(d.completed))
	copy(out, d.completed)
	return out
}

// Queued lists the normal tier followed by the urgent tier.
// This is enumeration order, not dispatch order.
func (d *Dispatcher) Queued() []*Case {
	out := d.normal.Snapshot()
	return append(out, d.urgent.Snapshot()...)
}

// Waiting returns the queue lengths per tier.
func (d *Dispatcher) Waiting() (urgent, normal int) {
	return d.urgent.Len(), d.normal.Len()
}

// NextUp returns the case AttendNext would dispatch, without dequeuing it.
func (d *Dispatcher) NextUp() (*Case, bool) {
	if c, ok := d.urgent.Peek(); ok {
		return c, true
	}
	return d.normal.Peek()
}

// NextID is the id the next accepted intake will receive.
func (d *Dispatcher) NextID() int { return d.nextID }

// Find looks a case up by id across every collection.
func (d *Dispatcher) Find(id int) (*Case, bool) {
	if d.current != nil && d.current.id == id {
		return d.current, true
	}
	for _, c := range d.completed {
		if c.id == id {
			return c, true
		}
	}
	for _, c := range d.Queued() {
		if c.id == id {
			return c, true
		}
	}
	return nil, false
}
