package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	TargetFPS      float64  `toml:"target_fps"`
	FrameCount     int      `toml:"frame_count"`
	Iterations     int      `toml:"iterations"`
	Steps          []int    `toml:"steps"`
	MaxProbes      int      `toml:"max_probes"`
	MaxObjectCount *int     `toml:"max_object_count"`
	Timeout        string   `toml:"timeout"`
	Width          int      `toml:"width"`
	Height         int      `toml:"height"`
	Scheduler      string   `toml:"scheduler"`
	PaceHz         float64  `toml:"pace_hz"`
	SpritePath     string   `toml:"sprite_path"`
	Sources        []string `toml:"sources"`
	Backends       []string `toml:"backends"`
	Generators     []string `toml:"generators"`
	Format         string   `toml:"format"`
	MetricsAddr    string   `toml:"metrics_addr"`
	Trace          string   `toml:"trace"`
	LogLevel       string   `toml:"log_level"`
	Watch          *bool    `toml:"watch"`
	Gate           *bool    `toml:"gate"`
	CPUThreshold   float64  `toml:"cpu_threshold"`
	GateMaxWait    string   `toml:"gate_max_wait"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.spritebench/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".spritebench", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setFloat("target-fps", fc.TargetFPS, &cfg.TargetFPS)
	s.setInt("frame-count", fc.FrameCount, &cfg.FrameCount)
	s.setInt("iterations", fc.Iterations, &cfg.Iterations)
	s.setInts("steps", fc.Steps, &cfg.Steps)
	s.setInt("max-probes", fc.MaxProbes, &cfg.MaxProbes)
	s.setIntPtr("max-objects", fc.MaxObjectCount, &cfg.MaxObjectCount)
	s.setInt("width", fc.Width, &cfg.Width)
	s.setInt("height", fc.Height, &cfg.Height)

	s.setString("scheduler", fc.Scheduler, &cfg.Scheduler)
	s.setFloat("pace-hz", fc.PaceHz, &cfg.PaceHz)

	s.setString("sprite", fc.SpritePath, &cfg.SpritePath)
	s.setStrings("sources", fc.Sources, &cfg.Sources)
	s.setStrings("backends", fc.Backends, &cfg.Backends)
	s.setStrings("generators", fc.Generators, &cfg.Generators)

	s.setString("format", fc.Format, &cfg.Format)
	s.setString("metrics-addr", fc.MetricsAddr, &cfg.MetricsAddr)
	s.setString("trace", fc.Trace, &cfg.Trace)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	s.setBool("watch", fc.Watch, &cfg.Watch)
	s.setBool("gate", fc.Gate, &cfg.Gate)
	s.setFloat("cpu-threshold", fc.CPUThreshold, &cfg.CPUThreshold)

	if err := s.setDuration("timeout", fc.Timeout, &cfg.Timeout); err != nil {
		return err
	}
	if err := s.setDuration("gate-max-wait", fc.GateMaxWait, &cfg.GateMaxWait); err != nil {
		return err
	}

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
