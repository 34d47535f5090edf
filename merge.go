package gather

import (
	"sync"

	"go.uber.org/atomic"
)

// Merge fans the outcome channels of many slots into a single completion
// stream. It implements the fan-in side of the pipeline: one forwarder per
// slot, and a counting barrier that closes the merged stream only after
// every forwarder has delivered.
//
// The merged stream must be consumed to closure. A forwarder blocked on an
// unread send outlives its pipeline, which is exactly the leak this package
// exists to prevent; All, Join2 and Join3 drain for you, Stream callers do
// it themselves.
type Merge[T any] struct {
	outChan chan Outcome[T]
	wg      sync.WaitGroup
	pending atomic.Int64
	sealed  sync.Once
}

// NewMerge creates a merge writing into a stream with the given buffer size.
// A buffer of 0 gives an unbuffered stream.
func NewMerge[T any](buffer int) *Merge[T] {
	return &Merge[T]{
		outChan: make(chan Outcome[T], buffer),
	}
}

// Add registers slots and starts forwarding their outcomes into the merged
// stream. Panics if any slot is nil. Add must not be called after Seal.
func (m *Merge[T]) Add(slots ...*Slot[T]) {
	for _, slot := range slots {
		if slot == nil {
			panic("gather: cannot add nil slots")
		}
		m.wg.Add(1)
		m.pending.Inc()
		go m.forward(slot)
	}
}

// Seal arranges for the merged stream to close once every added slot has
// delivered its outcome. Call it exactly once, after the last Add.
func (m *Merge[T]) Seal() {
	m.sealed.Do(func() {
		go func() {
			m.wg.Wait()
			close(m.outChan)
		}()
	})
}

// RecvChan returns the merged completion stream. It is closed after every
// added slot has delivered, never before.
func (m *Merge[T]) RecvChan() <-chan Outcome[T] {
	return m.outChan
}

// Pending returns how many slots have not yet been forwarded. It reaches
// zero by the time RecvChan is closed, which makes it usable as a leak
// gauge in tests.
func (m *Merge[T]) Pending() int64 {
	return m.pending.Load()
}

func (m *Merge[T]) forward(slot *Slot[T]) {
	defer m.wg.Done()
	for outcome := range slot.RecvChan() {
		m.outChan <- outcome
	}
	m.pending.Dec()
}
