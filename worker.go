package gather

import (
	"context"
	"log/slog"

	"golang.org/x/sync/semaphore"
)

// Worker is a typed goroutine wrapper that runs a single task and records
// its outcome into a dedicated Slot exactly once. The goroutine always
// terminates: on success, on failure, or immediately with ctx.Err() when the
// context was cancelled before the task got to run.
type Worker[T any] struct {
	slot *Slot[T]
	gate *semaphore.Weighted
	// OnDone is called from the worker goroutine after the outcome has been
	// recorded, just before the goroutine exits.
	OnDone func(w *Worker[T])
}

// WorkerOption is a functional option for configuring a Worker.
type WorkerOption[T any] func(*Worker[T])

// WithGate makes the worker acquire the semaphore before running its task
// and release it afterwards. Workers sharing a gate bound how many tasks run
// at once.
func WithGate[T any](gate *semaphore.Weighted) WorkerOption[T] {
	return func(w *Worker[T]) {
		w.gate = gate
	}
}

// WithOnDone sets the callback to be called when the worker finishes.
func WithOnDone[T any](fn func(*Worker[T])) WorkerOption[T] {
	return func(w *Worker[T]) {
		w.OnDone = fn
	}
}

// NewWorker launches a goroutine running the task and returns immediately.
// The worker starts as soon as it is created, like all runners in this
// package. Its outcome is observed on slot.RecvChan().
func NewWorker[T any](ctx context.Context, task Task[T], slot *Slot[T], opts ...WorkerOption[T]) *Worker[T] {
	if slot == nil {
		panic("gather: cannot create a worker with a nil slot")
	}
	w := &Worker[T]{slot: slot}
	for _, opt := range opts {
		opt(w)
	}
	w.start(ctx, task)
	return w
}

// Slot returns the outcome cell this worker writes to.
func (w *Worker[T]) Slot() *Slot[T] {
	return w.slot
}

func (w *Worker[T]) start(ctx context.Context, task Task[T]) {
	go func() {
		defer func() {
			if w.OnDone != nil {
				w.OnDone(w)
			}
		}()

		if w.gate != nil {
			// Acquire respects cancellation, so a cancelled pipeline stops
			// admitting queued tasks; they still deliver an outcome so the
			// drain accounts for every worker.
			if err := w.gate.Acquire(ctx, 1); err != nil {
				w.slot.Fail(err)
				return
			}
			defer w.gate.Release(1)
		} else if err := ctx.Err(); err != nil {
			w.slot.Fail(err)
			return
		}

		value, err := task(ctx)
		if err != nil {
			slog.Debug("task failed", "index", w.slot.Index(), "error", err)
			w.slot.Fail(err)
			return
		}
		w.slot.Fill(value)
	}()
}
