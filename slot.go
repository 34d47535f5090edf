package gather

import (
	"go.uber.org/atomic"
)

// Slot is the outcome cell for a single task. It starts empty and
// transitions to filled (a value) or failed (an error) exactly once. Its
// channel has exactly one writer, the owning worker, and exactly one reader,
// the merge collector.
//
// Completing a slot twice is a programming error and panics.
type Slot[T any] struct {
	index     int
	completed atomic.Bool
	ch        chan Outcome[T]
}

// NewSlot creates an empty slot for the task at the given declaration index.
func NewSlot[T any](index int) *Slot[T] {
	return &Slot[T]{
		index: index,
		// Capacity 1 so the single completion send never blocks the worker;
		// the forwarder in Merge is the one that must be drained.
		ch: make(chan Outcome[T], 1),
	}
}

// Index returns the declaration index of the owning task.
func (s *Slot[T]) Index() int {
	return s.index
}

// Fill records a successful outcome.
func (s *Slot[T]) Fill(value T) {
	s.complete(Outcome[T]{Value: value, Index: s.index})
}

// Fail records a failed outcome. Panics if err is nil.
func (s *Slot[T]) Fail(err error) {
	if err == nil {
		panic("gather: Slot.Fail with nil error")
	}
	s.complete(Outcome[T]{Err: err, Index: s.index})
}

// RecvChan returns the channel on which the slot's single outcome arrives.
// The channel is closed after the outcome is delivered.
func (s *Slot[T]) RecvChan() <-chan Outcome[T] {
	return s.ch
}

func (s *Slot[T]) complete(outcome Outcome[T]) {
	if !s.completed.CompareAndSwap(false, true) {
		panic("gather: slot completed twice")
	}
	s.ch <- outcome
	close(s.ch)
}
