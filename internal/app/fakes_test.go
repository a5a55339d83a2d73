package app

import (
	"context"
	"errors"
	"sync"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeBackend advances the clock on every render and records its calls.
type fakeBackend struct {
	clock      *fakeClock
	renderCost time.Duration
	loadErr    error

	loads   int
	unloads int
	renders []int
}

func (b *fakeBackend) Load(ctx context.Context) error {
	b.loads++
	return b.loadErr
}

func (b *fakeBackend) RenderFrame(i int) {
	b.renders = append(b.renders, i)
	if b.clock != nil {
		b.clock.Advance(b.renderCost)
	}
}

func (b *fakeBackend) Unload() {
	b.unloads++
}

// fakeScheduler advances the clock on every yield and can fail after a count.
type fakeScheduler struct {
	clock     *fakeClock
	cost      time.Duration
	failAfter int
	yields    int
}

var errSchedulerStopped = errors.New("scheduler stopped")

func (s *fakeScheduler) Yield(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.yields++
	if s.failAfter > 0 && s.yields >= s.failAfter {
		return errSchedulerStopped
	}
	if s.clock != nil {
		s.clock.Advance(s.cost)
	}
	return nil
}

type stubEstimator struct {
	score float64
	err   error
	runs  int
}

func (e *stubEstimator) Estimate(ctx context.Context, iterations int, fn func(i int)) (float64, error) {
	for i := 0; i < iterations; i++ {
		fn(i)
	}
	e.runs++
	return e.score, e.err
}
