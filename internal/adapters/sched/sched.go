// Package sched provides the schedulers the measurement loop yields to
// between iterations.
package sched

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/time/rate"

	"github.com/bft-labs/spritebench/internal/ports"
)

// Scheduler names accepted by New.
const (
	Immediate = "immediate"
	Paced     = "paced"
)

var (
	_ ports.Scheduler = ImmediateScheduler{}
	_ ports.Scheduler = (*PacedScheduler)(nil)
)

// ImmediateScheduler yields the processor and continues as soon as the Go
// scheduler runs the goroutine again.
type ImmediateScheduler struct{}

// Yield implements ports.Scheduler.
func (ImmediateScheduler) Yield(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runtime.Gosched()
	return nil
}

// PacedScheduler releases at most one continuation per frame interval,
// like a display refresh.
type PacedScheduler struct {
	limiter *rate.Limiter
}

// NewPacedScheduler creates a scheduler releasing hz continuations per second.
func NewPacedScheduler(hz float64) *PacedScheduler {
	return &PacedScheduler{limiter: rate.NewLimiter(rate.Limit(hz), 1)}
}

// Yield implements ports.Scheduler.
func (s *PacedScheduler) Yield(ctx context.Context) error {
	return s.limiter.Wait(ctx)
}

// Hz returns the configured refresh rate.
func (s *PacedScheduler) Hz() float64 {
	return float64(s.limiter.Limit())
}

// New returns the scheduler registered under name.
func New(name string, hz float64) (ports.Scheduler, error) {
	switch name {
	case "", Immediate:
		return ImmediateScheduler{}, nil
	case Paced:
		if hz <= 0 {
			return nil, fmt.Errorf("paced scheduler: hz must be positive, got %v", hz)
		}
		return NewPacedScheduler(hz), nil
	default:
		return nil, fmt.Errorf("unknown scheduler %q", name)
	}
}
