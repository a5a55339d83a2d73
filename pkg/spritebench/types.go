package spritebench

import (
	"github.com/bft-labs/spritebench/internal/app"
	"github.com/bft-labs/spritebench/internal/domain"
	"github.com/bft-labs/spritebench/internal/ports"
	"github.com/bft-labs/spritebench/pkg/log"
)

// Re-export types from internal packages so embedders can implement
// components without importing internal paths.
type (
	// Transform is a 2x3 affine matrix placing one sprite in one frame.
	Transform = domain.Transform

	// Frame is the ordered set of object transforms for one frame.
	Frame = domain.Frame

	// Frames is an immutable view of the frame set at one object count.
	Frames = domain.Frames

	// Generator produces the transform of one object in one frame.
	Generator = domain.Generator

	// Sprite is the payload handed to backends.
	Sprite = domain.Sprite

	// Observation is one measurement at one object count.
	Observation = domain.Observation

	// CapacityResult is the interpolated object count at the target frame rate.
	CapacityResult = domain.CapacityResult

	// LoadError reports a source or backend that failed to initialize.
	LoadError = domain.LoadError

	// MeasurementError reports a search that ran out of budget or received
	// an invalid score.
	MeasurementError = domain.MeasurementError

	Backend        = ports.Backend
	BackendFactory = ports.BackendFactory
	Source         = ports.Source
	SourceFunc     = ports.SourceFunc
	Scheduler      = ports.Scheduler
	RateEstimator  = ports.RateEstimator
	Clock          = ports.Clock
	ProbeGate      = ports.ProbeGate

	// EventHandler receives probe and completion events.
	EventHandler = app.EventHandler

	// BaseEventHandler provides no-op event methods for embedding.
	BaseEventHandler = app.BaseEventHandler

	// Logger is the structured logger interface from pkg/log.
	Logger = log.Logger

	RunInfo       = app.RunInfo
	ProbeEvent    = app.ProbeEvent
	CompleteEvent = app.CompleteEvent
)

// Errors returned by tests. Match them with errors.Is.
var (
	ErrLoad           = domain.ErrLoad
	ErrBracketing     = domain.ErrBracketing
	ErrBudgetExceeded = domain.ErrBudgetExceeded
	ErrInvalidScore   = domain.ErrInvalidScore
	ErrInvalidConfig  = domain.ErrInvalidConfig
	ErrUnknownTest    = domain.ErrUnknownTest
)
