package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/bft-labs/spritebench/internal/adapters/metrics"
	"github.com/bft-labs/spritebench/internal/adapters/sched"
	"github.com/bft-labs/spritebench/internal/cliconfig"
	"github.com/bft-labs/spritebench/internal/telemetry"
	"github.com/bft-labs/spritebench/pkg/log"
	"github.com/bft-labs/spritebench/pkg/spritebench"
	"github.com/bft-labs/spritebench/plugins/configwatcher"
	"github.com/bft-labs/spritebench/plugins/resourcegating"
)

// errTestsFailed is returned when at least one test has no result.
var errTestsFailed = errors.New("some tests failed")

func newLogger(level string) log.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	fd := os.Stderr.Fd()
	console := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return log.NewZerologAdapter(os.Stderr, lvl, console)
}

func newBench(cfg cliconfig.Config, logger log.Logger, handlers ...spritebench.EventHandler) (*spritebench.Bench, error) {
	scheduler, err := sched.New(cfg.Scheduler, cfg.PaceHz)
	if err != nil {
		return nil, err
	}

	maxObjects := cfg.MaxObjectCount
	if maxObjects == 0 {
		maxObjects = spritebench.NoObjectCeiling
	}

	opts := []spritebench.Option{
		spritebench.WithLogger(logger),
		spritebench.WithScheduler(scheduler),
		spritebench.WithBuiltins(spritebench.BuiltinConfig{
			Width:      cfg.Width,
			Height:     cfg.Height,
			SpritePath: cfg.SpritePath,
		}),
	}
	for _, h := range handlers {
		opts = append(opts, spritebench.WithEventHandler(h))
	}
	if cfg.Gate {
		opts = append(opts, resourcegating.WithResourceGating(resourcegating.Config{
			CPUThreshold: cfg.CPUThreshold,
			MaxWait:      cfg.GateMaxWait,
		}))
	}

	return spritebench.New(spritebench.Config{
		TargetFPS:      cfg.TargetFPS,
		FrameCount:     cfg.FrameCount,
		Iterations:     cfg.Iterations,
		Steps:          cfg.Steps,
		MaxProbes:      cfg.MaxProbes,
		MaxObjectCount: maxObjects,
		Timeout:        cfg.Timeout,
	}, opts...)
}

func selection(cfg cliconfig.Config) spritebench.Selection {
	return spritebench.Selection{
		Sources:    cfg.Sources,
		Backends:   cfg.Backends,
		Generators: cfg.Generators,
	}
}

func listTests(l *loader, out io.Writer) error {
	cfg, err := l.Load()
	if err != nil {
		return err
	}
	bench, err := newBench(cfg, log.NewNoopLogger())
	if err != nil {
		return err
	}
	keys, err := bench.Registry().Select(selection(cfg))
	if err != nil {
		return err
	}
	for _, k := range keys {
		fmt.Fprintln(out, k)
	}
	return nil
}

func run(ctx context.Context, l *loader, out io.Writer) error {
	cfg, err := l.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	shutdown, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "spritebench",
		ServiceVersion: getVersion(),
		TraceExporter:  cfg.Trace,
	})
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			logger.Warn("trace shutdown failed", log.Err(err))
		}
	}()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	var handlers []spritebench.EventHandler
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		handlers = append(handlers, metrics.NewRecorder(reg))
		serveMetrics(gctx, g, cfg.MetricsAddr, reg, logger)
	}

	var watcher *configwatcher.Plugin
	if cfg.Watch {
		path := l.WatchPath()
		if path == "" {
			logger.Warn("watch requested but no config file exists, running once")
		} else {
			watcher = configwatcher.New(configwatcher.Config{Path: path})
			if err := watcher.Initialize(gctx, spritebench.PluginConfig{Logger: logger}); err != nil {
				return err
			}
			defer watcher.Shutdown(context.Background())
		}
	}

	g.Go(func() error {
		defer cancel()
		for {
			err := runSuite(gctx, cfg, logger, out, handlers)
			if watcher == nil {
				return err
			}
			if err != nil && !errors.Is(err, errTestsFailed) {
				logger.Error("benchmark failed", log.Err(err))
			}

			logger.Info("waiting for config changes")
			select {
			case <-gctx.Done():
				return nil
			case <-watcher.Changes():
			}

			next, err := l.Load()
			if err != nil {
				logger.Error("config reload failed, keeping previous config", log.Err(err))
				continue
			}
			if next.MetricsAddr != cfg.MetricsAddr || next.Trace != cfg.Trace || next.LogLevel != cfg.LogLevel {
				logger.Warn("metrics, trace and log settings apply on restart")
			}
			cfg = next
		}
	})

	return g.Wait()
}

func runSuite(ctx context.Context, cfg cliconfig.Config, logger log.Logger, out io.Writer, handlers []spritebench.EventHandler) error {
	bench, err := newBench(cfg, logger, handlers...)
	if err != nil {
		return err
	}
	if err := bench.Start(ctx); err != nil {
		return err
	}
	defer bench.Stop(context.Background())

	outcomes, runErr := bench.Run(ctx, selection(cfg))
	if len(outcomes) > 0 {
		if err := writeReport(out, cfg.Format, newReport(cfg.TargetFPS, outcomes)); err != nil {
			return err
		}
	}
	if runErr != nil {
		return runErr
	}

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errTestsFailed, failed, len(outcomes))
	}
	return nil
}

func serveMetrics(ctx context.Context, g *errgroup.Group, addr string, reg *prometheus.Registry, logger log.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g.Go(func() error {
		logger.Info("serving metrics", log.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	})
}
