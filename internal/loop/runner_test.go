package loop

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/chronos/internal/repository"
)

func TestRunner_TicksUntilCancelled(t *testing.T) {
	var ticks atomic.Int32
	r := &Runner{
		Name:     "test",
		Interval: time.Millisecond,
		Tick: func(ctx context.Context) error {
			ticks.Add(1)
			return nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("runner did not stop on cancellation")
	}
}

func TestRunner_NonStoreErrorKeepsCadence(t *testing.T) {
	var ticks atomic.Int32
	r := &Runner{
		Name:     "test",
		Interval: time.Millisecond,
		Tick: func(ctx context.Context) error {
			ticks.Add(1)
			return errors.New("transient")
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = r.Run(ctx) }()

	// Errors other than store outages do not suppress subsequent ticks.
	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)
}

func TestRunner_BacksOffWhenStoreUnavailable(t *testing.T) {
	var ticks atomic.Int32
	r := &Runner{
		Name:     "test",
		Interval: time.Millisecond,
		Tick: func(ctx context.Context) error {
			ticks.Add(1)
			return fmt.Errorf("opening store: %w", repository.ErrUnavailable)
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = r.Run(ctx) }()

	// The first tick fires immediately; the retry waits out the backoff,
	// so the count stays put well past several normal intervals.
	require.Eventually(t, func() bool { return ticks.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), ticks.Load())
}
