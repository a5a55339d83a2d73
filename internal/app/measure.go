package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/bft-labs/spritebench/internal/domain"
	"github.com/bft-labs/spritebench/internal/ports"
)

// DefaultIterations is the number of frames rendered per measurement.
const DefaultIterations = 1000

// Measurer runs a fixed number of frame renders against one backend.
type Measurer struct {
	iterations int
	estimator  ports.RateEstimator
	clock      ports.Clock
}

// NewMeasurer creates a measurer. A nil clock uses the wall clock.
func NewMeasurer(iterations int, estimator ports.RateEstimator, clock ports.Clock) *Measurer {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &Measurer{
		iterations: iterations,
		estimator:  estimator,
		clock:      clock,
	}
}

// Measure loads b, renders frames cyclically for the configured number of
// iterations and reports the summed render time and the estimator's score.
// b is unloaded exactly once before Measure returns, on every path.
func (m *Measurer) Measure(ctx context.Context, b ports.Backend, frameCount int) (domain.Measurement, error) {
	defer b.Unload()

	if frameCount <= 0 {
		return domain.Measurement{}, errors.New("measure: empty frame set")
	}
	if err := b.Load(ctx); err != nil {
		return domain.Measurement{}, &domain.LoadError{Stage: domain.StageBackend, Err: err}
	}

	var compute time.Duration
	score, err := m.estimator.Estimate(ctx, m.iterations, func(i int) {
		start := m.clock.Now()
		b.RenderFrame(i % frameCount)
		compute += m.clock.Since(start)
	})
	if err != nil {
		return domain.Measurement{}, fmt.Errorf("measure: %w", err)
	}
	if math.IsNaN(score) || math.IsInf(score, 0) || score < 0 {
		return domain.Measurement{}, fmt.Errorf("%w: %v", domain.ErrInvalidScore, score)
	}

	return domain.Measurement{
		ComputeTimeMs: float64(compute) / float64(time.Millisecond),
		FPS:           score,
	}, nil
}

// BackendProber measures a backend at a given object count, building a fresh
// backend instance for every probe from a shared frame set.
type BackendProber struct {
	name     string
	measurer *Measurer
	factory  ports.BackendFactory
	sprite   *domain.Sprite
	frames   *domain.FrameSet
}

// NewBackendProber creates a prober for the backend registered as name.
func NewBackendProber(name string, measurer *Measurer, factory ports.BackendFactory, sprite *domain.Sprite, frames *domain.FrameSet) *BackendProber {
	return &BackendProber{
		name:     name,
		measurer: measurer,
		factory:  factory,
		sprite:   sprite,
		frames:   frames,
	}
}

// Probe implements Prober.
func (p *BackendProber) Probe(ctx context.Context, objectCount int) (domain.Observation, error) {
	view := p.frames.Take(objectCount)
	backend := p.factory(p.sprite, view)

	m, err := p.measurer.Measure(ctx, backend, view.Len())
	if err != nil {
		var le *domain.LoadError
		if errors.As(err, &le) && le.Name == "" {
			le.Name = p.name
		}
		return domain.Observation{}, err
	}
	return domain.Observation{
		ObjectCount:   objectCount,
		ComputeTimeMs: m.ComputeTimeMs,
		FPS:           m.FPS,
	}, nil
}
