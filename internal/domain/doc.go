// Package domain contains the core entities and value objects for spritebench.
//
// This package is the innermost layer. It has no dependencies on rendering,
// scheduling, logging or configuration and contains only the data the
// capacity search operates on.
//
// # Entities
//
//   - [Transform]: a 2x3 affine matrix placing one sprite in one frame
//   - [FrameSet]: the per-test set of frames replayed cyclically while measuring
//   - [Sprite]: the source payload handed to render backends
//   - [Observation]: one measured (object count, compute time, fps) sample
//   - [CapacityResult]: the final, usually fractional, capacity estimate
//
// # Errors
//
// Error kinds ([LoadError], [MeasurementError], [ErrBracketing]) are terminal
// for a single test invocation and can be checked with errors.Is and errors.As.
package domain
