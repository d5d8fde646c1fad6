// Package waiter suspends the process until a rate limit reset passes.
//
// The clock is injected so the hook pipeline and manual mode are testable
// without genuinely blocking.
package waiter

import (
	"context"
	"time"
)

// Clock abstracts time observation and suspension.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until the context is cancelled, whichever
	// comes first. A cancelled context returns ctx.Err().
	Sleep(ctx context.Context, d time.Duration) error
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// System is the real wall-clock implementation.
var System Clock = systemClock{}

// Waiter blocks until a deadline, reporting progress along the way.
type Waiter struct {
	clock    Clock
	interval time.Duration
	progress func(remaining time.Duration)
}

// New creates a Waiter. interval bounds how often progress is reported;
// progress may be nil.
func New(clock Clock, interval time.Duration, progress func(remaining time.Duration)) *Waiter {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Waiter{clock: clock, interval: interval, progress: progress}
}

// WaitUntil sleeps until the target instant. It returns ctx.Err() when
// interrupted and nil when the deadline has passed (including a target
// already in the past, which waits zero time).
func (w *Waiter) WaitUntil(ctx context.Context, target time.Time) error {
	for {
		remaining := target.Sub(w.clock.Now())
		if remaining <= 0 {
			return nil
		}
		if w.progress != nil {
			w.progress(remaining)
		}
		step := remaining
		if step > w.interval {
			step = w.interval
		}
		if err := w.clock.Sleep(ctx, step); err != nil {
			return err
		}
	}
}
