package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (SPRITEBENCH_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	if err := s.setFloatFromString("target-fps", os.Getenv("SPRITEBENCH_TARGET_FPS"), &cfg.TargetFPS); err != nil {
		return err
	}
	if err := s.setIntFromString("frame-count", os.Getenv("SPRITEBENCH_FRAME_COUNT"), &cfg.FrameCount); err != nil {
		return err
	}
	if err := s.setIntFromString("iterations", os.Getenv("SPRITEBENCH_ITERATIONS"), &cfg.Iterations); err != nil {
		return err
	}
	if err := s.setIntsFromString("steps", os.Getenv("SPRITEBENCH_STEPS"), &cfg.Steps); err != nil {
		return err
	}
	if err := s.setIntFromString("max-probes", os.Getenv("SPRITEBENCH_MAX_PROBES"), &cfg.MaxProbes); err != nil {
		return err
	}
	if err := s.setIntAllowZeroFromString("max-objects", os.Getenv("SPRITEBENCH_MAX_OBJECTS"), &cfg.MaxObjectCount); err != nil {
		return err
	}
	if err := s.setIntFromString("width", os.Getenv("SPRITEBENCH_WIDTH"), &cfg.Width); err != nil {
		return err
	}
	if err := s.setIntFromString("height", os.Getenv("SPRITEBENCH_HEIGHT"), &cfg.Height); err != nil {
		return err
	}
	if err := s.setDuration("timeout", os.Getenv("SPRITEBENCH_TIMEOUT"), &cfg.Timeout); err != nil {
		return err
	}

	s.setString("scheduler", os.Getenv("SPRITEBENCH_SCHEDULER"), &cfg.Scheduler)
	if err := s.setFloatFromString("pace-hz", os.Getenv("SPRITEBENCH_PACE_HZ"), &cfg.PaceHz); err != nil {
		return err
	}

	s.setString("sprite", os.Getenv("SPRITEBENCH_SPRITE"), &cfg.SpritePath)
	s.setStringsFromString("sources", os.Getenv("SPRITEBENCH_SOURCES"), &cfg.Sources)
	s.setStringsFromString("backends", os.Getenv("SPRITEBENCH_BACKENDS"), &cfg.Backends)
	s.setStringsFromString("generators", os.Getenv("SPRITEBENCH_GENERATORS"), &cfg.Generators)

	s.setString("format", os.Getenv("SPRITEBENCH_FORMAT"), &cfg.Format)
	s.setString("metrics-addr", os.Getenv("SPRITEBENCH_METRICS_ADDR"), &cfg.MetricsAddr)
	s.setString("trace", os.Getenv("SPRITEBENCH_TRACE"), &cfg.Trace)
	s.setString("log-level", os.Getenv("SPRITEBENCH_LOG_LEVEL"), &cfg.LogLevel)

	s.setBoolFromString("watch", os.Getenv("SPRITEBENCH_WATCH"), &cfg.Watch)
	s.setBoolFromString("gate", os.Getenv("SPRITEBENCH_GATE"), &cfg.Gate)
	if err := s.setFloatFromString("cpu-threshold", os.Getenv("SPRITEBENCH_CPU_THRESHOLD"), &cfg.CPUThreshold); err != nil {
		return err
	}
	if err := s.setDuration("gate-max-wait", os.Getenv("SPRITEBENCH_GATE_MAX_WAIT"), &cfg.GateMaxWait); err != nil {
		return err
	}

	return nil
}
