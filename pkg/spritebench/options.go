package spritebench

import (
	"github.com/bft-labs/spritebench/internal/adapters/backends"
	"github.com/bft-labs/spritebench/internal/adapters/generators"
	"github.com/bft-labs/spritebench/internal/adapters/sched"
	"github.com/bft-labs/spritebench/internal/adapters/sources"
	"github.com/bft-labs/spritebench/pkg/log"
)

// Option configures optional behavior of a Bench.
type Option func(*options)

type options struct {
	logger     log.Logger
	handlers   []EventHandler
	scheduler  Scheduler
	clock      Clock
	estimator  RateEstimator
	gate       ProbeGate
	plugins    []Plugin
	sources    map[string]Source
	backends   map[string]BackendFactory
	generators map[string]Generator
}

func defaultOptions() options {
	return options{
		logger:     log.NewNoopLogger(),
		scheduler:  sched.ImmediateScheduler{},
		sources:    map[string]Source{},
		backends:   map[string]BackendFactory{},
		generators: map[string]Generator{},
	}
}

// Options combines several options into one.
func Options(opts ...Option) Option {
	return func(o *options) {
		for _, opt := range opts {
			opt(o)
		}
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithEventHandler adds a handler for probe and completion events.
// Events are called synchronously from the search loop, in registration order.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		if handler != nil {
			o.handlers = append(o.handlers, handler)
		}
	}
}

// WithScheduler sets the suspension point between iterations.
// Default: yield to the Go scheduler and continue immediately.
func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

// WithClock sets the time source for render timing and the default estimator.
func WithClock(c Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithRateEstimator replaces the wall-clock rate estimator. The scheduler
// option is ignored when a custom estimator is set.
func WithRateEstimator(e RateEstimator) Option {
	return func(o *options) {
		o.estimator = e
	}
}

// WithProbeGate sets a gate consulted before every measurement.
func WithProbeGate(g ProbeGate) Option {
	return func(o *options) {
		o.gate = g
	}
}

// WithPlugin registers a plugin to be initialized by Bench.Start.
func WithPlugin(p Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, p)
	}
}

// WithSource registers a sprite source. A later registration under the same
// name replaces the earlier one.
func WithSource(name string, s Source) Option {
	return func(o *options) {
		o.sources[name] = s
	}
}

// WithBackend registers a render backend.
func WithBackend(name string, f BackendFactory) Option {
	return func(o *options) {
		o.backends[name] = f
	}
}

// WithGenerator registers a frame generator.
func WithGenerator(name string, g Generator) Option {
	return func(o *options) {
		o.generators[name] = g
	}
}

// BuiltinConfig selects the canvas for the built-in components.
type BuiltinConfig struct {
	// Width and Height size the render canvas and the generator field.
	// Default: 640x480
	Width, Height int

	// SpritePath adds the "file" source when set.
	SpritePath string
}

// WithBuiltins registers the built-in sources, backends and generators.
//
// Sources: checker, gradient, file (when SpritePath is set).
// Backends: null, matrix, raster.
// Generators: static, translate, rotate, scale.
func WithBuiltins(cfg BuiltinConfig) Option {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	return func(o *options) {
		for name, s := range sources.Builtin(cfg.SpritePath) {
			o.sources[name] = s
		}
		for name, f := range backends.Builtin(cfg.Width, cfg.Height) {
			o.backends[name] = f
		}
		for name, g := range generators.Builtin(cfg.Width, cfg.Height) {
			o.generators[name] = g
		}
	}
}
