// Package resourcegating holds capacity probes back while the host is busy.
// Before every measurement the gate samples CPU utilization and, while it is
// above the threshold, waits with exponential backoff up to a maximum wait.
package resourcegating

import (
	"context"
	"sync"
	"time"

	"github.com/bft-labs/spritebench/pkg/log"
	"github.com/bft-labs/spritebench/pkg/spritebench"
)

// Plugin implements resource gating as a spritebench probe gate.
type Plugin struct {
	mu sync.RWMutex

	cpuThreshold   float64
	maxWait        time.Duration
	backoffInitial time.Duration
	backoffMax     time.Duration
	procFS         string

	sampler Sampler
	logger  log.Logger
}

// Config holds configuration options for the resource gating plugin.
type Config struct {
	// CPUThreshold is the CPU usage fraction (0.0-1.0) above which probes wait.
	// Default: 0.85
	CPUThreshold float64

	// MaxWait bounds the wait before one probe; the probe then runs anyway.
	// Default: 30 seconds
	MaxWait time.Duration

	// BackoffInitial and BackoffMax bound the delay between samples.
	// Defaults: 50 milliseconds and 2 seconds
	BackoffInitial time.Duration
	BackoffMax     time.Duration

	// ProcFS overrides the /proc mount point.
	ProcFS string

	// Sampler replaces the default /proc/stat sampler.
	Sampler Sampler
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		CPUThreshold:   0.85,
		MaxWait:        30 * time.Second,
		BackoffInitial: DefaultBackoffInitial,
		BackoffMax:     DefaultBackoffMax,
	}
}

// New creates a new resource gating plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.CPUThreshold <= 0 {
		cfg.CPUThreshold = 0.85
	}
	if cfg.MaxWait <= 0 {
		cfg.MaxWait = 30 * time.Second
	}
	if cfg.BackoffInitial <= 0 {
		cfg.BackoffInitial = DefaultBackoffInitial
	}
	if cfg.BackoffMax < cfg.BackoffInitial {
		cfg.BackoffMax = max(DefaultBackoffMax, cfg.BackoffInitial)
	}

	return &Plugin{
		cpuThreshold:   cfg.CPUThreshold,
		maxWait:        cfg.MaxWait,
		backoffInitial: cfg.BackoffInitial,
		backoffMax:     cfg.BackoffMax,
		procFS:         cfg.ProcFS,
		sampler:        cfg.Sampler,
		logger:         log.NewNoopLogger(),
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "resourcegating"
}

// Initialize picks the sampler and takes a first sample so the next one
// measures a fresh interval.
func (p *Plugin) Initialize(ctx context.Context, cfg spritebench.PluginConfig) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if cfg.Logger != nil {
		p.logger = cfg.Logger
	}
	p.ensureSamplerLocked()
	p.logger.Info("resource gating plugin initialized",
		log.Float64("cpu_threshold", p.cpuThreshold),
		log.Duration("max_wait", p.maxWait))
	return nil
}

func (p *Plugin) ensureSamplerLocked() {
	if p.sampler != nil {
		return
	}
	s, err := NewProcStatSampler(p.procFS)
	if err == nil {
		_, err = s.Utilization()
	}
	if err != nil {
		p.logger.Warn("cpu accounting unavailable, using goroutine heuristic", log.Err(err))
		p.sampler = GoroutineSampler{}
		return
	}
	p.sampler = s
}

// Shutdown releases plugin resources.
func (p *Plugin) Shutdown(ctx context.Context) error {
	return nil
}

// Wait implements spritebench.ProbeGate. It returns nil once utilization is
// at or below the threshold, or when MaxWait has passed.
func (p *Plugin) Wait(ctx context.Context) error {
	p.mu.Lock()
	p.ensureSamplerLocked()
	sampler, logger := p.sampler, p.logger
	p.mu.Unlock()

	b := newBackoff(p.backoffInitial, p.backoffMax)
	start := time.Now()
	for {
		u, err := sampler.Utilization()
		if err != nil {
			logger.Warn("cpu sample failed, not gating", log.Err(err))
			return nil
		}
		if u <= p.cpuThreshold {
			return nil
		}
		if waited := time.Since(start); waited >= p.maxWait {
			logger.Warn("host still busy, probing anyway",
				log.Float64("cpu", u),
				log.Duration("waited", waited))
			return nil
		}
		logger.Debug("host busy, delaying probe",
			log.Float64("cpu", u),
			log.Duration("backoff", b.Current()))
		if err := b.Wait(ctx); err != nil {
			return err
		}
	}
}

// Ensure Plugin implements spritebench.Plugin and spritebench.ProbeGate.
var (
	_ spritebench.Plugin    = (*Plugin)(nil)
	_ spritebench.ProbeGate = (*Plugin)(nil)
)
