package app

// DefaultSteps are the search granularities, finest first. The last entry is
// the initial step.
var DefaultSteps = []int{1, 5, 25}

// StepSequence is a stack of decreasing search granularities.
type StepSequence struct {
	stack []int
}

// NewStepSequence copies steps into a new stack; the last element is on top.
func NewStepSequence(steps []int) *StepSequence {
	return &StepSequence{stack: append([]int(nil), steps...)}
}

// Pop removes and returns the top step, or 1 once the stack is exhausted.
func (s *StepSequence) Pop() int {
	if len(s.stack) == 0 {
		return 1
	}
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return top
}

// Len returns the number of steps left.
func (s *StepSequence) Len() int {
	return len(s.stack)
}
