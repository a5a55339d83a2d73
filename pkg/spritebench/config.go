package spritebench

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/bft-labs/spritebench/internal/app"
	"github.com/bft-labs/spritebench/internal/domain"
)

// Default run parameters.
const (
	DefaultTargetFPS      = 30
	DefaultFrameCount     = 100
	DefaultIterations     = app.DefaultIterations
	DefaultMaxProbes      = app.DefaultMaxProbes
	DefaultMaxObjectCount = app.DefaultMaxObjectCount
)

// NoObjectCeiling disables the object count ceiling when set as
// Config.MaxObjectCount.
const NoObjectCeiling = -1

// Config holds the parameters shared by every test in a Bench.
type Config struct {
	// TargetFPS is the frame rate the capacity search solves for.
	// Default: 30
	TargetFPS float64 `validate:"gte=0"`

	// FrameCount is the number of frames in each frame set.
	// Default: 100
	FrameCount int `validate:"gte=0"`

	// Iterations is the number of frames rendered per measurement.
	// Default: 1000
	Iterations int `validate:"gte=0"`

	// Steps are the search granularities, finest first.
	// Default: [1, 5, 25]
	Steps []int `validate:"omitempty,dive,gt=0"`

	// MaxProbes caps the measurements per test.
	// Default: 500
	MaxProbes int `validate:"gte=0"`

	// MaxObjectCount stops the search from advancing past this count.
	// Default: 10000. Use NoObjectCeiling to disable.
	MaxObjectCount int `validate:"gte=-1"`

	// Timeout is the wall-clock budget per test. Zero means no limit.
	Timeout time.Duration `validate:"gte=0"`
}

// SetDefaults fills zero fields with defaults.
func (c *Config) SetDefaults() {
	if c.TargetFPS == 0 {
		c.TargetFPS = DefaultTargetFPS
	}
	if c.FrameCount == 0 {
		c.FrameCount = DefaultFrameCount
	}
	if c.Iterations == 0 {
		c.Iterations = DefaultIterations
	}
	if len(c.Steps) == 0 {
		c.Steps = append([]int(nil), app.DefaultSteps...)
	}
	if c.MaxProbes == 0 {
		c.MaxProbes = DefaultMaxProbes
	}
	if c.MaxObjectCount == 0 {
		c.MaxObjectCount = DefaultMaxObjectCount
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s must satisfy %s=%s", domain.ErrInvalidConfig,
				verrs[0].Field(), verrs[0].Tag(), verrs[0].Param())
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) finderConfig() app.FinderConfig {
	return app.FinderConfig{
		TargetFPS:      c.TargetFPS,
		Steps:          c.Steps,
		MaxProbes:      c.MaxProbes,
		MaxObjectCount: max(0, c.MaxObjectCount),
		Timeout:        c.Timeout,
	}
}
