package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent the failure kinds of a single test invocation.
// They can be checked with errors.Is.
var (
	// ErrLoad is wrapped by every LoadError.
	ErrLoad = errors.New("spritebench: load failed")

	// ErrBracketing is returned when interpolation cannot find an observation
	// on both sides of the target frame rate.
	ErrBracketing = errors.New("spritebench: bad test results")

	// ErrBudgetExceeded is returned when the capacity search runs out of its
	// probe or wall-clock budget.
	ErrBudgetExceeded = errors.New("spritebench: search budget exceeded")

	// ErrInvalidScore is returned when a rate estimator reports a score that
	// is negative, NaN or infinite.
	ErrInvalidScore = errors.New("spritebench: invalid rate score")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("spritebench: invalid configuration")

	// ErrUnknownTest is returned when a test name is not registered.
	ErrUnknownTest = errors.New("spritebench: unknown test")
)

// Load stages.
const (
	StageSource  = "source"
	StageBackend = "backend"
)

// LoadError reports a source or backend that failed to initialize.
type LoadError struct {
	Stage string
	Name  string
	Err   error
}

func (e *LoadError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("load %s %q: %v", e.Stage, e.Name, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Stage, e.Err)
}

// Unwrap returns both the cause and ErrLoad so either can be matched.
func (e *LoadError) Unwrap() []error {
	return []error{ErrLoad, e.Err}
}

// MeasurementError reports a capacity search that could not produce a result
// from its measurements.
type MeasurementError struct {
	ObjectCount int
	Probes      int
	Err         error
}

func (e *MeasurementError) Error() string {
	return fmt.Sprintf("measurement at %d objects after %d probes: %v", e.ObjectCount, e.Probes, e.Err)
}

func (e *MeasurementError) Unwrap() error {
	return e.Err
}
