package lifecycle

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bft-labs/spritebench/pkg/log"
)

// Common lifecycle errors.
var (
	ErrAlreadyRunning    = errors.New("already running")
	ErrInvalidTransition = errors.New("invalid state transition")
)

// Manager guards the state machine. It is safe for concurrent use.
type Manager struct {
	mu      sync.RWMutex
	state   State
	logger  log.Logger
	emitter EventEmitter
}

// NewManager creates a manager in StateStopped. emitter may be nil.
func NewManager(logger log.Logger, emitter EventEmitter) *Manager {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Manager{state: StateStopped, logger: logger, emitter: emitter}
}

// State returns the current state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// TransitionTo moves to next, or returns an error wrapping
// ErrInvalidTransition if the move is not allowed from the current state.
func (m *Manager) TransitionTo(next State, reason string) error {
	m.mu.Lock()
	prev := m.state
	if !allowed(prev, next) {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, prev, next)
	}
	m.state = next
	m.mu.Unlock()

	// Emit outside the lock.
	if m.emitter != nil {
		m.emitter.OnStateChange(prev, next, reason)
	}
	m.logger.Debug("state transition",
		log.String("from", prev.String()),
		log.String("to", next.String()),
		log.String("reason", reason),
	)
	return nil
}

func allowed(from, to State) bool {
	switch from {
	case StateStopped, StateFailed:
		return to == StateStarting
	case StateStarting:
		return to == StateRunning || to == StateFailed
	case StateRunning:
		return to == StateStopping
	case StateStopping:
		return to == StateStopped || to == StateFailed
	}
	return false
}

// CanStart returns true if a start may begin.
func (m *Manager) CanStart() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == StateStopped || m.state == StateFailed
}

// CanStop returns true if there is something to stop.
func (m *Manager) CanStop() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == StateRunning
}
