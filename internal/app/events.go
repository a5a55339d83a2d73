package app

import (
	"time"

	"github.com/bft-labs/spritebench/internal/domain"
)

// RunInfo identifies one test invocation.
type RunInfo struct {
	ID   string
	Test string
}

// Probe phases describe what the search did after a measurement.
const (
	PhaseAdvance = "advance"
	PhaseBackoff = "backoff"
	PhaseExact   = "exact"
)

// ProbeEvent is emitted after every measurement.
type ProbeEvent struct {
	Run         RunInfo
	Observation domain.Observation
	Phase       string
	NextCount   int
	Step        int
	Duration    time.Duration
}

// CompleteEvent is emitted once per search, on success or failure.
type CompleteEvent struct {
	Run      RunInfo
	Result   domain.CapacityResult
	Err      error
	Probes   int
	Duration time.Duration
}

// EventHandler receives search events synchronously from the search loop.
// Implementations should return quickly.
type EventHandler interface {
	OnProbe(ProbeEvent)
	OnComplete(CompleteEvent)
}

// BaseEventHandler provides no-op implementations for embedding.
type BaseEventHandler struct{}

func (BaseEventHandler) OnProbe(ProbeEvent)       {}
func (BaseEventHandler) OnComplete(CompleteEvent) {}

// MultiHandler fans events out to several handlers in order.
type MultiHandler []EventHandler

func (m MultiHandler) OnProbe(e ProbeEvent) {
	for _, h := range m {
		h.OnProbe(e)
	}
}

func (m MultiHandler) OnComplete(e CompleteEvent) {
	for _, h := range m {
		h.OnComplete(e)
	}
}
