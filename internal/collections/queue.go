// Package collections holds the typed FIFO and LIFO containers used by the case desk.
package collections

import "github.com/emirpasic/gods/queues/linkedlistqueue"

// Queue is a FIFO queue. Enqueue and Dequeue are O(1).
// The zero value is not usable; call NewQueue.
type Queue[T any] struct {
	q *linkedlistqueue.Queue
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{q: linkedlistqueue.New()}
}

// Enqueue appends v to the tail.
func (q *Queue[T]) Enqueue(v T) {
	q.q.Enqueue(v)
}

// Dequeue removes and returns the head. ok is false when the queue is empty.
func (q *Queue[T]) Dequeue() (v T, ok bool) {
	raw, ok := q.q.Dequeue()
	if !ok {
		return v, false
	}
	return raw.(T), true
}

// Peek returns the head without removing it.
func (q *Queue[T]) Peek() (v T, ok bool) {
	raw, ok := q.q.Peek()
	if !ok {
		return v, false
	}
	return raw.(T), true
}

func (q *Queue[T]) IsEmpty() bool { return q.q.Empty() }

func (q *Queue[T]) Len() int { return q.q.Size() }

// Snapshot returns all elements head to tail. The queue is not modified.
func (q *Queue[T]) Snapshot() []T {
	raw := q.q.Values()
	out := make([]T, 0, len(raw))
	for _, v := range raw {
		out = append(out, v.(T))
	}
	return out
}
