package metrics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/bft-labs/spritebench/internal/app"
	"github.com/bft-labs/spritebench/internal/domain"
	"github.com/bft-labs/spritebench/pkg/lifecycle"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)
	run := app.RunInfo{ID: "run-1", Test: "checker/raster/static"}

	var h app.EventHandler = r
	h.OnProbe(app.ProbeEvent{Run: run, Observation: domain.Observation{ObjectCount: 25, FPS: 10}, Phase: app.PhaseBackoff, Duration: 50 * time.Millisecond})
	h.OnProbe(app.ProbeEvent{Run: run, Observation: domain.Observation{ObjectCount: 5, FPS: 50}, Phase: app.PhaseAdvance, Duration: 10 * time.Millisecond})
	h.OnProbe(app.ProbeEvent{Run: run, Observation: domain.Observation{ObjectCount: 10, FPS: 40}, Phase: app.PhaseAdvance, Duration: 20 * time.Millisecond})
	h.OnComplete(app.CompleteEvent{Run: run, Result: domain.CapacityResult{ObjectCount: 15.5, ComputeTimeMs: 6}})

	assert.Equal(t, 1.0, testutil.ToFloat64(r.probes.WithLabelValues(run.Test, app.PhaseBackoff)))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.probes.WithLabelValues(run.Test, app.PhaseAdvance)))
	assert.Equal(t, 15.5, testutil.ToFloat64(r.capacity.WithLabelValues(run.Test)))
	assert.Equal(t, 6.0, testutil.ToFloat64(r.computeTime.WithLabelValues(run.Test)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues(run.Test, OutcomeOK)))
	assert.Equal(t, 2, testutil.CollectAndCount(r.probes))
	assert.Equal(t, 1, testutil.CollectAndCount(r.probeFPS))
}

func TestRecorderFailureLeavesCapacity(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())
	run := app.RunInfo{Test: "t"}

	r.OnComplete(app.CompleteEvent{Run: run, Err: fmt.Errorf("x: %w", domain.ErrBracketing)})

	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("t", OutcomeBracketing)))
	assert.Equal(t, 0, testutil.CollectAndCount(r.capacity))
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, OutcomeOK},
		{&domain.LoadError{Stage: domain.StageSource, Name: "s", Err: fmt.Errorf("boom")}, OutcomeLoad},
		{fmt.Errorf("wrap: %w", domain.ErrBracketing), OutcomeBracketing},
		{&domain.MeasurementError{Err: domain.ErrBudgetExceeded}, OutcomeBudget},
		{context.Canceled, OutcomeCanceled},
		{context.DeadlineExceeded, OutcomeCanceled},
		{fmt.Errorf("measure: %w", context.DeadlineExceeded), OutcomeCanceled},
		{fmt.Errorf("other"), OutcomeError},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Outcome(tt.err))
		})
	}
}

func TestRecorderTracksBenchState(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())

	var em lifecycle.EventEmitter = r
	em.OnStateChange(lifecycle.StateStopped, lifecycle.StateStarting, "start requested")
	em.OnStateChange(lifecycle.StateStarting, lifecycle.StateRunning, "plugins initialized")

	assert.Equal(t, 1.0, testutil.ToFloat64(r.state.WithLabelValues("Running")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.state.WithLabelValues("Starting")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.state.WithLabelValues("Stopped")))
}

func TestNewRecorderDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewRecorder(reg)
	assert.Panics(t, func() { NewRecorder(reg) })
}
