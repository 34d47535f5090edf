package gather

import (
	"context"
	"fmt"
)

// Task is a unit of asynchronous work. It produces exactly one value or one
// error. Tasks run concurrently with each other and must not share mutable
// state without their own synchronization; they communicate only through
// their returned outcome.
//
// When ctx is cancelled a task should finish as soon as possible and return
// ctx.Err(), but a task that ignores its context is still waited for.
type Task[T any] func(ctx context.Context) (T, error)

// Named wraps a task so its failures identify the task by name. The error
// reported for a failed pipeline should say which task failed and why, not
// just that something failed.
func Named[T any](name string, task Task[T]) Task[T] {
	return func(ctx context.Context) (T, error) {
		value, err := task(ctx)
		if err != nil {
			return value, fmt.Errorf("%s: %w", name, err)
		}
		return value, nil
	}
}

// Value returns a task that immediately succeeds with the given value.
// Useful for mixing already-known values into a pipeline.
func Value[T any](value T) Task[T] {
	return func(context.Context) (T, error) {
		return value, nil
	}
}
