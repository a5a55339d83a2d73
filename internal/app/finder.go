package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bft-labs/spritebench/internal/domain"
	"github.com/bft-labs/spritebench/internal/ports"
	"github.com/bft-labs/spritebench/pkg/log"
)

const tracerName = "github.com/bft-labs/spritebench/internal/app"

// Default search budget.
const (
	DefaultMaxProbes      = 500
	DefaultMaxObjectCount = 10000
)

// FinderConfig contains configuration for one capacity search.
type FinderConfig struct {
	// TargetFPS is the frame rate the search solves for.
	TargetFPS float64

	// Steps are the search granularities, finest first. Defaults to DefaultSteps.
	Steps []int

	// MaxProbes caps the number of measurements per search.
	MaxProbes int

	// MaxObjectCount stops advancing past this count; zero disables the ceiling.
	MaxObjectCount int

	// Timeout is the wall-clock budget for the whole search; zero disables it.
	Timeout time.Duration
}

// Prober measures the frame rate at one object count.
type Prober interface {
	Probe(ctx context.Context, objectCount int) (domain.Observation, error)
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func(ctx context.Context, objectCount int) (domain.Observation, error)

// Probe calls f(ctx, objectCount).
func (f ProberFunc) Probe(ctx context.Context, objectCount int) (domain.Observation, error) {
	return f(ctx, objectCount)
}

// Finder searches for the object count at which a prober reports the target
// frame rate. It steps coarse to fine and interpolates between the closest
// observations on either side of the target.
type Finder struct {
	config FinderConfig
	logger log.Logger
	events EventHandler
	gate   ports.ProbeGate
	clock  ports.Clock
}

// NewFinder creates a finder. events and gate may be nil.
func NewFinder(config FinderConfig, logger log.Logger, events EventHandler, gate ports.ProbeGate) *Finder {
	if len(config.Steps) == 0 {
		config.Steps = DefaultSteps
	}
	if config.MaxProbes <= 0 {
		config.MaxProbes = DefaultMaxProbes
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	if events == nil {
		events = BaseEventHandler{}
	}
	return &Finder{
		config: config,
		logger: logger,
		events: events,
		gate:   gate,
		clock:  ports.SystemClock{},
	}
}

// Find runs one search. Every probe is sequential; the observation cache and
// step sequence live only for the duration of the call.
func (f *Finder) Find(ctx context.Context, run RunInfo, p Prober) (domain.CapacityResult, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "capacity.find", trace.WithAttributes(
		attribute.String("spritebench.run_id", run.ID),
		attribute.String("spritebench.test", run.Test),
		attribute.Float64("spritebench.target_fps", f.config.TargetFPS),
	))
	defer span.End()

	if f.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, f.config.Timeout, domain.ErrBudgetExceeded)
		defer cancel()
	}

	start := f.clock.Now()
	res, probes, err := f.search(ctx, run, p)
	res.Probes = probes

	f.events.OnComplete(CompleteEvent{
		Run:      run,
		Result:   res,
		Err:      err,
		Probes:   probes,
		Duration: f.clock.Since(start),
	})

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.CapacityResult{Probes: probes}, err
	}
	span.SetAttributes(
		attribute.Float64("spritebench.object_count", res.ObjectCount),
		attribute.Int("spritebench.probes", probes),
	)
	return res, nil
}

func (f *Finder) search(ctx context.Context, run RunInfo, p Prober) (domain.CapacityResult, int, error) {
	target := f.config.TargetFPS
	cache := NewObservationCache()
	steps := NewStepSequence(f.config.Steps)
	step := steps.Pop()

	objectCount := 0
	probes := 0
	for {
		if _, seen := cache.Get(objectCount); seen {
			f.logger.Debug("object count already tested, interpolating",
				log.Int("objects", objectCount))
			break
		}
		if f.config.MaxObjectCount > 0 && objectCount > f.config.MaxObjectCount {
			f.logger.Warn("object count ceiling reached, interpolating",
				log.Int("objects", objectCount),
				log.Int("max_objects", f.config.MaxObjectCount))
			break
		}
		if probes >= f.config.MaxProbes {
			return domain.CapacityResult{}, probes, &domain.MeasurementError{
				ObjectCount: objectCount,
				Probes:      probes,
				Err:         fmt.Errorf("%w: %d probes", domain.ErrBudgetExceeded, f.config.MaxProbes),
			}
		}
		if err := ctx.Err(); err != nil {
			return domain.CapacityResult{}, probes, f.contextError(ctx, objectCount, probes)
		}
		if f.gate != nil {
			if err := f.gate.Wait(ctx); err != nil {
				return domain.CapacityResult{}, probes, f.contextError(ctx, objectCount, probes)
			}
		}

		f.logger.Info("testing", log.Int("objects", objectCount), log.Int("step", step))
		probeStart := f.clock.Now()
		obs, err := f.probe(ctx, p, objectCount)
		probes++
		if err != nil {
			if ctx.Err() != nil {
				return domain.CapacityResult{}, probes, f.contextError(ctx, objectCount, probes)
			}
			if errors.Is(err, domain.ErrInvalidScore) {
				return domain.CapacityResult{}, probes, &domain.MeasurementError{ObjectCount: objectCount, Probes: probes, Err: err}
			}
			return domain.CapacityResult{}, probes, err
		}
		cache.Put(obs)

		event := ProbeEvent{Run: run, Observation: obs, Duration: f.clock.Since(probeStart)}
		switch {
		case obs.FPS < target:
			// Too many objects: back off to the previous count plus the next
			// finer step.
			next := steps.Pop()
			objectCount = max(0, objectCount-step+next)
			step = next
			event.Phase = PhaseBackoff
		case obs.FPS > target:
			objectCount += step
			event.Phase = PhaseAdvance
		default:
			event.Phase = PhaseExact
			event.NextCount, event.Step = objectCount, step
			f.events.OnProbe(event)
			return domain.CapacityResult{
				ObjectCount:   float64(obs.ObjectCount),
				ComputeTimeMs: obs.ComputeTimeMs,
				Exact:         true,
			}, probes, nil
		}
		event.NextCount, event.Step = objectCount, step
		f.events.OnProbe(event)
	}

	res, err := cache.Interpolate(target)
	if err != nil {
		f.logger.Warn("cannot bracket target frame rate",
			log.Float64("target_fps", target),
			log.Any("observations", cache.Observations()),
			log.Err(err))
		return domain.CapacityResult{}, probes, err
	}
	return res, probes, nil
}

func (f *Finder) probe(ctx context.Context, p Prober, objectCount int) (domain.Observation, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "capacity.probe",
		trace.WithAttributes(attribute.Int("spritebench.objects", objectCount)))
	defer span.End()

	obs, err := p.Probe(ctx, objectCount)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return obs, err
	}
	obs.ObjectCount = objectCount
	if math.IsNaN(obs.FPS) || math.IsInf(obs.FPS, 0) || obs.FPS < 0 {
		err := fmt.Errorf("%w: %v", domain.ErrInvalidScore, obs.FPS)
		span.SetStatus(codes.Error, err.Error())
		return obs, err
	}
	span.SetAttributes(
		attribute.Float64("spritebench.fps", obs.FPS),
		attribute.Float64("spritebench.compute_ms", obs.ComputeTimeMs),
	)
	return obs, nil
}

// contextError converts an expired search budget into a MeasurementError and
// passes any other cancellation through.
func (f *Finder) contextError(ctx context.Context, objectCount, probes int) error {
	if cause := context.Cause(ctx); errors.Is(cause, domain.ErrBudgetExceeded) {
		return &domain.MeasurementError{
			ObjectCount: objectCount,
			Probes:      probes,
			Err:         fmt.Errorf("%w: %s wall clock", domain.ErrBudgetExceeded, f.config.Timeout),
		}
	}
	return ctx.Err()
}
