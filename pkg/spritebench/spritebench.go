package spritebench

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bft-labs/spritebench/internal/app"
	"github.com/bft-labs/spritebench/internal/domain"
	"github.com/bft-labs/spritebench/internal/ports"
	"github.com/bft-labs/spritebench/pkg/lifecycle"
	"github.com/bft-labs/spritebench/pkg/log"
)

// Bench runs capacity tests over the product of its registered sources,
// backends and generators. Tests run strictly one at a time.
type Bench struct {
	config   Config
	registry *Registry
	tests    Tests
	logger   log.Logger
	events   app.EventHandler
	gate     ports.ProbeGate
	measurer *app.Measurer
	clock    ports.Clock
	plugins  []Plugin
	state    *lifecycle.Manager

	// mu serializes test runs; probes share the host and must not overlap.
	mu sync.Mutex

	started []Plugin
}

// New creates a Bench. Returns an error if the configuration is invalid or
// no source, backend or generator is registered.
func New(cfg Config, opts ...Option) (*Bench, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	reg := newRegistry(o)
	switch {
	case len(reg.sources) == 0:
		return nil, fmt.Errorf("%w: no sources registered", ErrInvalidConfig)
	case len(reg.backends) == 0:
		return nil, fmt.Errorf("%w: no backends registered", ErrInvalidConfig)
	case len(reg.generators) == 0:
		return nil, fmt.Errorf("%w: no generators registered", ErrInvalidConfig)
	}

	clock := o.clock
	if clock == nil {
		clock = ports.SystemClock{}
	}
	estimator := o.estimator
	if estimator == nil {
		if o.scheduler == nil {
			return nil, fmt.Errorf("%w: no scheduler", ErrInvalidConfig)
		}
		estimator = app.NewWallClockEstimator(o.scheduler, clock)
	}

	var events app.EventHandler = app.BaseEventHandler{}
	switch len(o.handlers) {
	case 0:
	case 1:
		events = o.handlers[0]
	default:
		events = app.MultiHandler(o.handlers)
	}

	b := &Bench{
		config:   cfg,
		registry: reg,
		logger:   o.logger,
		events:   events,
		gate:     o.gate,
		measurer: app.NewMeasurer(cfg.Iterations, estimator, clock),
		clock:    clock,
		plugins:  o.plugins,
		state:    lifecycle.NewManager(o.logger, stateEmitters(o.handlers)),
	}
	b.tests = b.buildTests()
	return b, nil
}

// stateEmitters collects the handlers that also observe lifecycle changes.
// It returns nil when none do.
func stateEmitters(handlers []EventHandler) lifecycle.EventEmitter {
	var out multiEmitter
	for _, h := range handlers {
		if em, ok := h.(lifecycle.EventEmitter); ok {
			out = append(out, em)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

type multiEmitter []lifecycle.EventEmitter

func (m multiEmitter) OnStateChange(previous, current lifecycle.State, reason string) {
	for _, em := range m {
		em.OnStateChange(previous, current, reason)
	}
}

// Config returns the effective configuration with defaults applied.
func (b *Bench) Config() Config {
	return b.config
}

// Registry returns the registered components.
func (b *Bench) Registry() *Registry {
	return b.registry
}

// Tests returns the test table. Each TestFunc loads its source, builds the
// frame set and runs the capacity search.
func (b *Bench) Tests() Tests {
	return b.tests
}

func (b *Bench) buildTests() Tests {
	tests := make(Tests, len(b.registry.sources))
	for _, s := range b.registry.Sources() {
		tests[s] = make(map[string]map[string]TestFunc, len(b.registry.backends))
		for _, be := range b.registry.Backends() {
			tests[s][be] = make(map[string]TestFunc, len(b.registry.generators))
			for _, g := range b.registry.Generators() {
				key := TestKey{Source: s, Backend: be, Generator: g}
				tests[s][be][g] = func(ctx context.Context) (CapacityResult, error) {
					out := b.RunTest(ctx, key)
					return out.Result, out.Err
				}
			}
		}
	}
	return tests
}

// State returns the lifecycle state of the bench.
func (b *Bench) State() lifecycle.State {
	return b.state.State()
}

// Start initializes plugins in registration order. On failure, plugins that
// were already initialized are shut down and the bench moves to
// lifecycle.StateFailed, from which it may be started again.
func (b *Bench) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.state.CanStart() {
		return lifecycle.ErrAlreadyRunning
	}
	if err := b.state.TransitionTo(lifecycle.StateStarting, "start requested"); err != nil {
		return err
	}

	cfg := PluginConfig{Config: b.config, Logger: b.logger}
	for _, p := range b.plugins {
		if err := p.Initialize(ctx, cfg); err != nil {
			b.logger.Error("plugin initialization failed",
				log.String("plugin", p.Name()),
				log.Err(err))
			_ = b.shutdownLocked(ctx)
			_ = b.state.TransitionTo(lifecycle.StateFailed, "plugin initialization failed")
			return fmt.Errorf("initialize plugin %s: %w", p.Name(), err)
		}
		b.started = append(b.started, p)
		b.logger.Info("plugin initialized", log.String("plugin", p.Name()))
	}
	return b.state.TransitionTo(lifecycle.StateRunning, "plugins initialized")
}

// Stop shuts plugins down in reverse order. Stopping a bench that is not
// running is a no-op.
func (b *Bench) Stop(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.state.CanStop() {
		return nil
	}
	if err := b.state.TransitionTo(lifecycle.StateStopping, "stop requested"); err != nil {
		return err
	}
	if err := b.shutdownLocked(ctx); err != nil {
		_ = b.state.TransitionTo(lifecycle.StateFailed, "plugin shutdown failed")
		return err
	}
	return b.state.TransitionTo(lifecycle.StateStopped, "plugins shut down")
}

func (b *Bench) shutdownLocked(ctx context.Context) error {
	var errs []error
	for i := len(b.started) - 1; i >= 0; i-- {
		p := b.started[i]
		if err := p.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown plugin %s: %w", p.Name(), err))
		}
	}
	b.started = nil
	return errors.Join(errs...)
}

// Outcome is the result of one test.
type Outcome struct {
	TestKey
	RunID    string
	Result   CapacityResult
	Err      error
	Duration time.Duration
}

// Run runs the selected tests one after another. A failing test does not
// stop the run; cancellation of ctx does, and Run returns the outcomes
// collected so far together with ctx's error.
func (b *Bench) Run(ctx context.Context, sel Selection) ([]Outcome, error) {
	keys, err := b.registry.Select(sel)
	if err != nil {
		return nil, err
	}

	b.logger.Info("benchmark started", log.Int("tests", len(keys)),
		log.Float64("target_fps", b.config.TargetFPS))

	outcomes := make([]Outcome, 0, len(keys))
	for i, k := range keys {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		out := b.RunTest(ctx, k)
		outcomes = append(outcomes, out)

		fields := []log.Field{
			log.String("test", k.String()),
			log.Int("index", i+1),
			log.Int("of", len(keys)),
			log.Duration("duration", out.Duration),
		}
		if out.Err != nil {
			b.logger.Warn("test failed", append(fields, log.Err(out.Err))...)
			continue
		}
		b.logger.Info("test finished", append(fields,
			log.Float64("objects", out.Result.ObjectCount),
			log.Int("probes", out.Result.Probes))...)
	}
	return outcomes, ctx.Err()
}

// RunTest runs the test named by k.
func (b *Bench) RunTest(ctx context.Context, k TestKey) Outcome {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := Outcome{TestKey: k, RunID: uuid.NewString()}
	start := b.clock.Now()
	out.Result, out.Err = b.runTest(ctx, out)
	out.Duration = b.clock.Since(start)
	return out
}

func (b *Bench) runTest(ctx context.Context, out Outcome) (CapacityResult, error) {
	k := out.TestKey
	if !b.registry.Has(k) {
		return CapacityResult{}, fmt.Errorf("%w: %s", ErrUnknownTest, k)
	}
	run := app.RunInfo{ID: out.RunID, Test: k.String()}
	logger := log.With(b.logger, log.String("test", run.Test), log.String("run_id", run.ID))

	sprite, err := b.registry.sources[k.Source].Load(ctx)
	if err != nil {
		err = &domain.LoadError{Stage: domain.StageSource, Name: k.Source, Err: err}
		logger.Error("source failed to load", log.Err(err))
		b.events.OnComplete(app.CompleteEvent{Run: run, Err: err})
		return CapacityResult{}, err
	}

	frames := domain.NewFrameSet(b.registry.generators[k.Generator], b.config.FrameCount)
	prober := app.NewBackendProber(k.Backend, b.measurer, b.registry.backends[k.Backend], sprite, frames)
	finder := app.NewFinder(b.config.finderConfig(), logger, b.events, b.gate)
	return finder.Find(ctx, run, prober)
}
