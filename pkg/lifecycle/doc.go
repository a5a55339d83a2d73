// Package lifecycle provides the start/stop state machine of a bench.
//
// Valid state transitions:
//   - Stopped -> Starting
//   - Starting -> Running, Failed
//   - Running -> Stopping
//   - Stopping -> Stopped, Failed
//   - Failed -> Starting
//
// Usage:
//
//	m := lifecycle.NewManager(logger, emitter)
//	if !m.CanStart() {
//	    return lifecycle.ErrAlreadyRunning
//	}
//	_ = m.TransitionTo(lifecycle.StateStarting, "start requested")
//	// ... initialize plugins ...
//	_ = m.TransitionTo(lifecycle.StateRunning, "plugins initialized")
package lifecycle
