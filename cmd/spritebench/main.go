package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/spritebench/internal/cliconfig"
)

const helpDescription = `
Measure how many animated sprites a renderer sustains at a target frame rate.

For every combination of sprite source, render backend and motion generator,
spritebench renders a fixed animation at increasing object counts, backs off
when the frame rate drops below the target, and interpolates the object count
at which the target is met exactly.

Configuration is read from $HOME/.spritebench/config.toml, then SPRITEBENCH_*
environment variables, then flags; later sources win.
`

var exampleUsage = strings.TrimSpace(`
  spritebench
  spritebench --backends raster --generators rotate,scale --target-fps 60
  spritebench --sprite ./ship.png --sources file --format json
  spritebench --scheduler paced --pace-hz 60 --metrics-addr :9090 --watch
  spritebench list
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "spritebench",
		Short:         "Find how many sprites a renderer can animate at a target frame rate",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLoader(cmd, cfg, cfgPath)
			if err != nil {
				return err
			}
			return run(cmd.Context(), l, cmd.OutOrStdout())
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the registered tests",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLoader(cmd, cfg, cfgPath)
			if err != nil {
				return err
			}
			return listTests(l, cmd.OutOrStdout())
		},
	}
	root.AddCommand(list)

	f := root.PersistentFlags()
	f.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.spritebench/config.toml)")

	f.Float64Var(&cfg.TargetFPS, "target-fps", cfg.TargetFPS, "frame rate to solve for")
	f.IntVar(&cfg.FrameCount, "frame-count", cfg.FrameCount, "frames in each animation")
	f.IntVar(&cfg.Iterations, "iterations", cfg.Iterations, "frames rendered per measurement")
	f.IntSliceVar(&cfg.Steps, "steps", cfg.Steps, "search step sizes, finest first")
	f.IntVar(&cfg.MaxProbes, "max-probes", cfg.MaxProbes, "maximum measurements per test")
	f.IntVar(&cfg.MaxObjectCount, "max-objects", cfg.MaxObjectCount, "stop advancing past this object count (0 disables)")
	f.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "wall-clock budget per test (0 disables)")
	f.IntVar(&cfg.Width, "width", cfg.Width, "canvas width in pixels")
	f.IntVar(&cfg.Height, "height", cfg.Height, "canvas height in pixels")

	f.StringVar(&cfg.Scheduler, "scheduler", cfg.Scheduler, "iteration scheduler: immediate or paced")
	f.Float64Var(&cfg.PaceHz, "pace-hz", cfg.PaceHz, "refresh rate of the paced scheduler")

	f.StringVar(&cfg.SpritePath, "sprite", cfg.SpritePath, "image file for the file source (png, jpeg, gif, bmp, webp)")
	f.StringSliceVar(&cfg.Sources, "sources", cfg.Sources, "sources to run (default: all)")
	f.StringSliceVar(&cfg.Backends, "backends", cfg.Backends, "backends to run (default: all)")
	f.StringSliceVar(&cfg.Generators, "generators", cfg.Generators, "generators to run (default: all)")

	f.StringVar(&cfg.Format, "format", cfg.Format, "report format: table, json or yaml")
	f.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve Prometheus metrics on this address")
	f.StringVar(&cfg.Trace, "trace", cfg.Trace, "trace exporter: none or stdout")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	f.BoolVar(&cfg.Watch, "watch", cfg.Watch, "rerun when the config file changes")

	f.BoolVar(&cfg.Gate, "gate", cfg.Gate, "wait for an idle CPU before each measurement")
	f.Float64Var(&cfg.CPUThreshold, "cpu-threshold", cfg.CPUThreshold, "CPU usage fraction above which measurements wait")
	f.DurationVar(&cfg.GateMaxWait, "gate-max-wait", cfg.GateMaxWait, "longest wait for an idle CPU before measuring anyway")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "spritebench:", err)
		}
		stop()
		os.Exit(1)
	}
}

// loader resolves the layered configuration. It keeps the flag-level config
// so a watched config file can be reapplied from scratch.
type loader struct {
	flags   cliconfig.Config
	path    string
	changed map[string]bool
}

func newLoader(cmd *cobra.Command, flags cliconfig.Config, cfgPath string) (*loader, error) {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	path := cfgPath
	if path == "" {
		path = cliconfig.DefaultConfigPath()
	}
	if cfgPath != "" && !cliconfig.FileExists(cfgPath) {
		return nil, fmt.Errorf("config file %s not found", cfgPath)
	}
	return &loader{flags: flags, path: path, changed: changed}, nil
}

// Load applies file, environment and flags over defaults and validates.
func (l *loader) Load() (cliconfig.Config, error) {
	cfg := l.flags
	cfg.Steps = append([]int(nil), l.flags.Steps...)

	if l.path != "" && cliconfig.FileExists(l.path) {
		fc, err := cliconfig.LoadFileConfig(l.path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&cfg, fc, l.changed); err != nil {
			return cfg, err
		}
	}

	// Environment overrides the file; explicitly set flags override both.
	if err := cliconfig.ApplyEnvConfig(&cfg, l.changed); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// WatchPath returns the config file to watch, or "" if there is none.
func (l *loader) WatchPath() string {
	if l.path == "" || !cliconfig.FileExists(l.path) {
		return ""
	}
	return l.path
}
