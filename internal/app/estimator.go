package app

import (
	"context"
	"fmt"

	"github.com/bft-labs/spritebench/internal/domain"
	"github.com/bft-labs/spritebench/internal/ports"
)

// WallClockEstimator scores a run as iterations per elapsed second, counting
// the time spent yielding to the scheduler.
type WallClockEstimator struct {
	scheduler ports.Scheduler
	clock     ports.Clock
}

// NewWallClockEstimator creates an estimator. A nil clock uses the wall clock.
func NewWallClockEstimator(scheduler ports.Scheduler, clock ports.Clock) *WallClockEstimator {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &WallClockEstimator{scheduler: scheduler, clock: clock}
}

// Estimate implements ports.RateEstimator. Iteration i+1 starts only after
// the yield following iteration i has returned.
func (e *WallClockEstimator) Estimate(ctx context.Context, iterations int, fn func(i int)) (float64, error) {
	if iterations <= 0 {
		return 0, fmt.Errorf("estimate: iterations must be positive, got %d", iterations)
	}

	start := e.clock.Now()
	for i := 0; i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		fn(i)
		if err := e.scheduler.Yield(ctx); err != nil {
			return 0, err
		}
	}

	elapsed := e.clock.Since(start)
	if elapsed <= 0 {
		return 0, fmt.Errorf("%w: no time elapsed over %d iterations", domain.ErrInvalidScore, iterations)
	}
	return float64(iterations) / elapsed.Seconds(), nil
}
