package cliconfig

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/bft-labs/spritebench/internal/domain"
)

// Defaults for the benchmark run.
const (
	DefaultTargetFPS  = 30
	DefaultFrameCount = 100
	DefaultIterations = 1000
	DefaultWidth      = 640
	DefaultHeight     = 480
)

// Config holds CLI configuration for spritebench.
type Config struct {
	TargetFPS      float64       `json:"target_fps" validate:"gt=0"`
	FrameCount     int           `json:"frame_count" validate:"gt=0"`
	Iterations     int           `json:"iterations" validate:"gt=0"`
	Steps          []int         `json:"steps" validate:"omitempty,dive,gt=0"`
	MaxProbes      int           `json:"max_probes" validate:"gt=0"`
	MaxObjectCount int           `json:"max_object_count" validate:"gte=0"`
	Timeout        time.Duration `json:"timeout" validate:"gte=0"`
	Width          int           `json:"width" validate:"gt=0"`
	Height         int           `json:"height" validate:"gt=0"`

	Scheduler string  `json:"scheduler" validate:"oneof=immediate paced"`
	PaceHz    float64 `json:"pace_hz" validate:"gte=0"`

	SpritePath string   `json:"sprite_path,omitempty"`
	Sources    []string `json:"sources,omitempty"`
	Backends   []string `json:"backends,omitempty"`
	Generators []string `json:"generators,omitempty"`

	Format      string `json:"format" validate:"oneof=table json yaml"`
	MetricsAddr string `json:"metrics_addr,omitempty" validate:"omitempty,hostname_port"`
	Trace       string `json:"trace" validate:"oneof=none stdout"`
	LogLevel    string `json:"log_level" validate:"oneof=debug info warn error"`
	Watch       bool   `json:"watch"`

	Gate         bool          `json:"gate"`
	CPUThreshold float64       `json:"cpu_threshold" validate:"gt=0,lte=1"`
	GateMaxWait  time.Duration `json:"gate_max_wait" validate:"gte=0"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		TargetFPS:      DefaultTargetFPS,
		FrameCount:     DefaultFrameCount,
		Iterations:     DefaultIterations,
		Steps:          []int{1, 5, 25},
		MaxProbes:      500,
		MaxObjectCount: 10000,
		Timeout:        10 * time.Minute,
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		Scheduler:      "immediate",
		PaceHz:         60,
		Format:         "table",
		Trace:          "none",
		LogLevel:       "info",
		CPUThreshold:   0.85,
		GateMaxWait:    30 * time.Second,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s failed %q", domain.ErrInvalidConfig, verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	if c.Scheduler == "paced" && c.PaceHz <= 0 {
		return fmt.Errorf("%w: pace-hz must be positive with the paced scheduler", domain.ErrInvalidConfig)
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setStrings sets a list if not empty and flag not changed.
func (s *configSetter) setStrings(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = append([]string(nil), value...)
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setIntPtr sets an int value from a pointer if not nil and flag not changed.
// Zero is applied, unlike setInt.
func (s *configSetter) setIntPtr(flag string, value *int, dst *int) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setInts sets an int list if not empty and flag not changed.
func (s *configSetter) setInts(flag string, value []int, dst *[]int) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = append([]int(nil), value...)
}

// setFloat sets a float64 value if positive and flag not changed.
func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setIntAllowZeroFromString is setIntFromString for keys where zero is a
// meaningful value.
func (s *configSetter) setIntAllowZeroFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i < 0 {
		return fmt.Errorf("parse %s: %d is negative", flag, i)
	}
	*dst = i
	return nil
}

// setIntsFromString parses a comma-separated int list.
func (s *configSetter) setIntsFromString(flag, value string, dst *[]int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	var out []int
	for _, part := range splitList(value) {
		i, err := strconv.Atoi(part)
		if err != nil {
			return fmt.Errorf("parse %s: %w", flag, err)
		}
		out = append(out, i)
	}
	*dst = out
	return nil
}

// setStringsFromString parses a comma-separated string list.
func (s *configSetter) setStringsFromString(flag, value string, dst *[]string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = splitList(value)
}

// setFloatFromString parses a string to float64 and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if f <= 0 {
		return nil
	}
	*dst = f
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
