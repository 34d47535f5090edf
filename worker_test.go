package gather

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/semaphore"
)

func TestWorkerSuccess(t *testing.T) {
	slot := NewSlot[int](0)
	NewWorker(context.Background(), func(ctx context.Context) (int, error) {
		return 99, nil
	}, slot)

	outcome := withTimeout(t, slot.RecvChan())
	require.NoError(t, outcome.Err)
	assert.Equal(t, 99, outcome.Value)
}

func TestWorkerFailure(t *testing.T) {
	cause := errors.New("boom")
	slot := NewSlot[int](0)
	NewWorker(context.Background(), func(ctx context.Context) (int, error) {
		return 0, cause
	}, slot)

	outcome := withTimeout(t, slot.RecvChan())
	assert.ErrorIs(t, outcome.Err, cause)
}

func TestWorkerNilSlotPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewWorker[int](context.Background(), func(ctx context.Context) (int, error) {
			return 0, nil
		}, nil)
	})
}

// TestWorkerPreCancelled verifies the short-circuit: under an already
// cancelled context the task never runs, but an outcome is still delivered
// so the pipeline's drain accounts for this worker.
func TestWorkerPreCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	slot := NewSlot[int](0)
	NewWorker(ctx, func(ctx context.Context) (int, error) {
		ran = true
		return 1, nil
	}, slot)

	outcome := withTimeout(t, slot.RecvChan())
	assert.ErrorIs(t, outcome.Err, context.Canceled)
	assert.False(t, ran)
}

func TestWorkerOnDoneCallback(t *testing.T) {
	done := make(chan *Worker[int], 1)
	slot := NewSlot[int](0)
	NewWorker(context.Background(), func(ctx context.Context) (int, error) {
		return 1, nil
	}, slot, WithOnDone(func(w *Worker[int]) {
		done <- w
	}))

	w := withTimeout(t, done)
	assert.Equal(t, slot, w.Slot())
}

func TestWorkerGateSerializes(t *testing.T) {
	gate := semaphore.NewWeighted(1)

	running := make(chan string, 4)
	slots := []*Slot[string]{NewSlot[string](0), NewSlot[string](1)}

	for i, name := range []string{"first", "second"} {
		task := func(ctx context.Context) (string, error) {
			running <- name + " start"
			time.Sleep(10 * time.Millisecond)
			running <- name + " end"
			return name, nil
		}
		NewWorker(context.Background(), task, slots[i], WithGate[string](gate))
	}

	withTimeout(t, slots[0].RecvChan())
	withTimeout(t, slots[1].RecvChan())
	close(running)

	// With a weight-1 gate the start/end events never interleave.
	var events []string
	for e := range running {
		events = append(events, e)
	}
	require.Len(t, events, 4)
	for i := 0; i < len(events); i += 2 {
		name := strings.TrimSuffix(events[i], " start")
		assert.Equal(t, name+" end", events[i+1])
	}
}
