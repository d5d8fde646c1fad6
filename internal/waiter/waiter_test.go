package waiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitUntil_SleepsInChunks(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	clock := NewFakeClock(start)

	var reports []time.Duration
	w := New(clock, time.Minute, func(remaining time.Duration) {
		reports = append(reports, remaining)
	})

	err := w.WaitUntil(context.Background(), start.Add(5*time.Minute))
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, clock.Slept())
	assert.Equal(t, 5, clock.SleepCount())
	require.Len(t, reports, 5)
	assert.Equal(t, 5*time.Minute, reports[0])
	assert.Equal(t, time.Minute, reports[4])
}

func TestWaitUntil_PastTarget(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	clock := NewFakeClock(start)
	w := New(clock, time.Minute, nil)

	err := w.WaitUntil(context.Background(), start.Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, clock.SleepCount())
}

func TestWaitUntil_Cancelled(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	clock := NewFakeClock(start)
	w := New(clock, time.Minute, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := w.WaitUntil(ctx, start.Add(time.Hour))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSystemClock_SleepCancellable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A cancelled context returns immediately even for a long sleep.
	err := System.Sleep(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSystemClock_SleepZero(t *testing.T) {
	assert.NoError(t, System.Sleep(context.Background(), 0))
	assert.NoError(t, System.Sleep(context.Background(), -time.Second))
}
