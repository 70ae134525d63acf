package collections

import "github.com/emirpasic/gods/stacks/arraystack"

// Stack is a LIFO stack. Push and Pop are O(1) amortized.
// It performs no checks on the values it holds.
type Stack[T any] struct {
	s *arraystack.Stack
}

func NewStack[T any]() *Stack[T] {
	return &Stack[T]{s: arraystack.New()}
}

func (s *Stack[T]) Push(v T) {
	s.s.Push(v)
}

// Pop removes and returns the top. ok is false when the stack is empty.
func (s *Stack[T]) Pop() (v T, ok bool) {
	raw, ok := s.s.Pop()
	if !ok {
		return v, false
	}
	return raw.(T), true
}

func (s *Stack[T]) Peek() (v T, ok bool) {
	raw, ok := s.s.Peek()
	if !ok {
		return v, false
	}
	return raw.(T), true
}

// Clear drops every entry.
func (s *Stack[T]) Clear() { s.s.Clear() }

func (s *Stack[T]) IsEmpty() bool { return s.s.Empty() }

func (s *Stack[T]) Len() int { return s.s.Size() }

