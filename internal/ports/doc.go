// Package ports defines the interfaces that connect the capacity search to
// its collaborators.
//
// The application layer (internal/app) depends only on these interfaces.
// Adapters (internal/adapters) implement them with concrete render backends,
// frame generators, sprite sources and schedulers.
//
// # Port Interfaces
//
//   - [Backend] and [BackendFactory]: render one animation frame
//   - [Source]: loads the sprite payload
//   - [RateEstimator]: turns a run of iterations into a frame-rate score
//   - [Scheduler]: the suspension point between iterations
//   - [Clock]: time source for per-iteration timing
//   - [ProbeGate]: optional admission check before each measurement
package ports
