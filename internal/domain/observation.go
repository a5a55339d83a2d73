package domain

// Measurement is the aggregate reported by one measurement loop run.
type Measurement struct {
	// ComputeTimeMs is the summed time spent inside RenderFrame.
	ComputeTimeMs float64

	// FPS is the rate score reported by the rate estimator.
	FPS float64
}

// Observation is a single measured sample at an integral object count.
type Observation struct {
	ObjectCount   int     `json:"object_count" yaml:"object_count"`
	ComputeTimeMs float64 `json:"compute_time_ms" yaml:"compute_time_ms"`
	FPS           float64 `json:"fps" yaml:"fps"`
}

// CapacityResult is the final answer of a capacity search.
// ObjectCount is generally fractional because it is interpolated between two
// observations.
type CapacityResult struct {
	ObjectCount   float64 `json:"object_count" yaml:"object_count"`
	ComputeTimeMs float64 `json:"compute_time_ms" yaml:"compute_time_ms"`

	// Probes is the number of measurements the search ran.
	Probes int `json:"probes" yaml:"probes"`

	// Exact is set when a probe hit the target frame rate exactly and no
	// interpolation was needed.
	Exact bool `json:"exact" yaml:"exact"`
}
