// Package metrics exports capacity search events as Prometheus metrics.
package metrics

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bft-labs/spritebench/internal/app"
	"github.com/bft-labs/spritebench/internal/domain"
	"github.com/bft-labs/spritebench/pkg/lifecycle"
)

const namespace = "spritebench"

// Run outcomes.
const (
	OutcomeOK         = "ok"
	OutcomeLoad       = "load_error"
	OutcomeBracketing = "bracketing"
	OutcomeBudget     = "budget_exceeded"
	OutcomeCanceled   = "canceled"
	OutcomeError      = "error"
)

// Recorder is an app.EventHandler that updates Prometheus collectors.
type Recorder struct {
	app.BaseEventHandler

	probes        *prometheus.CounterVec
	probeFPS      *prometheus.HistogramVec
	probeDuration *prometheus.HistogramVec
	capacity      *prometheus.GaugeVec
	computeTime   *prometheus.GaugeVec
	runs          *prometheus.CounterVec
	state         *prometheus.GaugeVec
}

// NewRecorder registers the collectors with reg. A nil reg registers with
// prometheus.DefaultRegisterer.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Recorder{
		probes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "probes_total",
			Help:      "Measurements taken, by test and search phase.",
		}, []string{"test", "phase"}),
		probeFPS: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "probe_fps",
			Help:      "Frame rate reported by each measurement.",
			Buckets:   []float64{1, 5, 10, 20, 30, 45, 60, 90, 120, 240, 500, 1000, 5000},
		}, []string{"test"}),
		probeDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "probe_duration_seconds",
			Help:      "Wall time of each measurement including backend load.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"test"}),
		capacity: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "capacity_objects",
			Help:      "Interpolated object count at the target frame rate.",
		}, []string{"test"}),
		computeTime: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "capacity_compute_time_ms",
			Help:      "Interpolated per-run compute time at the target frame rate.",
		}, []string{"test"}),
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Completed capacity searches, by outcome.",
		}, []string{"test", "outcome"}),
		state: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bench_state",
			Help:      "Lifecycle state of the bench, 1 for the current state.",
		}, []string{"state"}),
	}
}

// OnStateChange moves the bench_state gauge to current.
func (r *Recorder) OnStateChange(previous, current lifecycle.State, _ string) {
	r.state.WithLabelValues(previous.String()).Set(0)
	r.state.WithLabelValues(current.String()).Set(1)
}

// OnProbe records one measurement.
func (r *Recorder) OnProbe(e app.ProbeEvent) {
	r.probes.WithLabelValues(e.Run.Test, e.Phase).Inc()
	r.probeFPS.WithLabelValues(e.Run.Test).Observe(e.Observation.FPS)
	r.probeDuration.WithLabelValues(e.Run.Test).Observe(e.Duration.Seconds())
}

// OnComplete records the search outcome and, on success, the capacity.
func (r *Recorder) OnComplete(e app.CompleteEvent) {
	r.runs.WithLabelValues(e.Run.Test, Outcome(e.Err)).Inc()
	if e.Err != nil {
		return
	}
	r.capacity.WithLabelValues(e.Run.Test).Set(e.Result.ObjectCount)
	r.computeTime.WithLabelValues(e.Run.Test).Set(e.Result.ComputeTimeMs)
}

// Outcome classifies a search error into a metric label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrLoad):
		return OutcomeLoad
	case errors.Is(err, domain.ErrBracketing):
		return OutcomeBracketing
	case errors.Is(err, domain.ErrBudgetExceeded):
		return OutcomeBudget
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeError
	}
}
