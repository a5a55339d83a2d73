package lifecycle

import (
	"errors"
	"testing"
)

type recordingEmitter struct {
	changes [][2]State
}

func (r *recordingEmitter) OnStateChange(prev, cur State, reason string) {
	r.changes = append(r.changes, [2]State{prev, cur})
}

func TestManagerHappyPath(t *testing.T) {
	em := &recordingEmitter{}
	m := NewManager(nil, em)

	if !m.CanStart() || m.CanStop() {
		t.Fatalf("new manager: CanStart=%v CanStop=%v", m.CanStart(), m.CanStop())
	}
	for _, s := range []State{StateStarting, StateRunning, StateStopping, StateStopped} {
		if err := m.TransitionTo(s, "test"); err != nil {
			t.Fatalf("TransitionTo(%s): %v", s, err)
		}
	}
	if got := m.State(); got != StateStopped {
		t.Errorf("State() = %s, want Stopped", got)
	}
	if len(em.changes) != 4 {
		t.Errorf("emitted %d changes, want 4", len(em.changes))
	}
	if em.changes[1] != [2]State{StateStarting, StateRunning} {
		t.Errorf("second change = %v", em.changes[1])
	}
}

func TestManagerRejectsInvalidTransitions(t *testing.T) {
	tests := []struct {
		name string
		path []State
		bad  State
	}{
		{"stopped to running", nil, StateRunning},
		{"running to starting", []State{StateStarting, StateRunning}, StateStarting},
		{"running to failed", []State{StateStarting, StateRunning}, StateFailed},
		{"failed to stopped", []State{StateStarting, StateFailed}, StateStopped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(nil, nil)
			for _, s := range tt.path {
				if err := m.TransitionTo(s, ""); err != nil {
					t.Fatalf("TransitionTo(%s): %v", s, err)
				}
			}
			before := m.State()
			err := m.TransitionTo(tt.bad, "")
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("err = %v, want ErrInvalidTransition", err)
			}
			if m.State() != before {
				t.Errorf("state changed to %s on rejected transition", m.State())
			}
		})
	}
}

func TestManagerRestartAfterFailure(t *testing.T) {
	m := NewManager(nil, nil)
	_ = m.TransitionTo(StateStarting, "")
	_ = m.TransitionTo(StateFailed, "plugin failed")

	if !m.CanStart() {
		t.Fatal("CanStart() = false after failure")
	}
	if m.CanStop() {
		t.Error("CanStop() = true after failure")
	}
	if err := m.TransitionTo(StateStarting, "retry"); err != nil {
		t.Fatalf("restart: %v", err)
	}
}

func TestStateString(t *testing.T) {
	if got := StateFailed.String(); got != "Failed" {
		t.Errorf("String() = %q", got)
	}
	if got := State(42).String(); got != "Unknown" {
		t.Errorf("String() = %q", got)
	}
}
