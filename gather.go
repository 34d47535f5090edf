package gather

import (
	"context"

	"go.uber.org/multierr"
	"golang.org/x/sync/semaphore"
)

// All runs every task concurrently, waits for all of them to finish, and
// combines their results.
//
// If every task succeeds, All returns the values in declaration order,
// regardless of completion order. If one or more tasks fail, All returns
// the error of the failed task with the lowest declaration index (or every
// failure, with WithCollectAll), again regardless of which task finished
// first.
//
// All never returns before every launched task has delivered its outcome:
// the merged completion stream is drained to closure even once the final
// result is already known, so no task goroutine is left blocked on an
// unread send.
func All[T any](ctx context.Context, tasks []Task[T], opts ...Option) ([]T, error) {
	cfg := newConfig(opts...)
	merge := launch(ctx, tasks, cfg)

	values := make([]T, len(tasks))
	failures := make([]error, len(tasks))
	failed := false

	// Full drain: consume until closure, recording later failures only to
	// discard them, so every forwarder gets to deliver.
	for outcome := range merge.RecvChan() {
		if outcome.Failed() {
			failures[outcome.Index] = outcome.Err
			failed = true
			continue
		}
		values[outcome.Index] = outcome.Value
	}

	if failed {
		return nil, reduceFailures(failures, cfg)
	}
	return values, nil
}

// Stream launches every task concurrently and returns the merged completion
// stream for incremental consumption. Outcomes arrive in completion order,
// each tagged with its task's declaration index, and the stream closes once
// all tasks have delivered.
//
// The caller owns the full-drain obligation: consume RecvChan to closure,
// even after deciding on a result, or forwarder goroutines stay blocked.
func Stream[T any](ctx context.Context, tasks []Task[T], opts ...Option) *Merge[T] {
	return launch(ctx, tasks, newConfig(opts...))
}

// launch fans out one worker per task and seals the merge so its stream
// closes behind the counting barrier once every worker has delivered.
// Workers are started in declaration order.
func launch[T any](ctx context.Context, tasks []Task[T], cfg config) *Merge[T] {
	var workerOpts []WorkerOption[T]
	if cfg.limit > 0 {
		workerOpts = append(workerOpts, WithGate[T](semaphore.NewWeighted(cfg.limit)))
	}

	merge := NewMerge[T](cfg.buffer)
	for index, task := range tasks {
		slot := NewSlot[T](index)
		NewWorker(ctx, task, slot, workerOpts...)
		merge.Add(slot)
	}
	merge.Seal()
	return merge
}

// reduceFailures applies the tie-break rule to the per-index failure table
// built during the drain: lowest declaration index wins, or all failures
// combined in declaration order when collect-all is on.
func reduceFailures(failures []error, cfg config) error {
	if cfg.collectAll {
		return multierr.Combine(failures...)
	}
	for _, err := range failures {
		if err != nil {
			return err
		}
	}
	return nil
}

// Join2 runs two tasks of different result types concurrently and returns
// both values, with the same drain and tie-break semantics as All. On
// failure both values are zero.
func Join2[A, B any](ctx context.Context, taskA Task[A], taskB Task[B], opts ...Option) (A, B, error) {
	var a A
	var b B
	values, err := All(ctx, []Task[any]{erase(taskA), erase(taskB)}, opts...)
	if err != nil {
		return a, b, err
	}
	a, _ = values[0].(A)
	b, _ = values[1].(B)
	return a, b, nil
}

// Join3 is Join2 for three tasks.
func Join3[A, B, C any](ctx context.Context, taskA Task[A], taskB Task[B], taskC Task[C], opts ...Option) (A, B, C, error) {
	var a A
	var b B
	var c C
	values, err := All(ctx, []Task[any]{erase(taskA), erase(taskB), erase(taskC)}, opts...)
	if err != nil {
		return a, b, c, err
	}
	a, _ = values[0].(A)
	b, _ = values[1].(B)
	c, _ = values[2].(C)
	return a, b, c, nil
}

// erase adapts a typed task to the any-valued form used by the Join arity
// family. The declaration index, not the type, identifies each task.
func erase[T any](task Task[T]) Task[any] {
	return func(ctx context.Context) (any, error) {
		value, err := task(ctx)
		return value, err
	}
}
