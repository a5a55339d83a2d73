package ports

import (
	"context"
	"time"
)

// Scheduler is the suspension point between measurement iterations.
// Yield returns once the host is ready for the next iteration.
type Scheduler interface {
	Yield(ctx context.Context) error
}

// RateEstimator runs fn for each of iterations, yielding between calls, and
// reports a frame-rate score for the run.
type RateEstimator interface {
	Estimate(ctx context.Context, iterations int, fn func(i int)) (float64, error)
}

// Clock provides the current time.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time                  { return time.Now() }
func (SystemClock) Since(t time.Time) time.Duration { return time.Since(t) }
