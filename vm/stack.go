package vm

import (
	"github.com/npillmayer/arith"
)

// Stack is the scratch memory of the stack machine. Create one with NewStack
// (fixed capacity) or NewGrowableStack.
type Stack struct {
	slots    []float64
	top      int  // index of TOS, -1 for empty stack
	growable bool // may slots be re-allocated?
	limit    int  // maximum capacity of a growable stack, 0 for no limit
}

// NewStack creates a stack with a fixed capacity. Pushing more than capacity
// values results in an error of kind arith.StackOverflow.
func NewStack(capacity int) *Stack {
	if capacity < 0 {
		capacity = 0
	}
	return &Stack{
		slots: make([]float64, capacity),
		top:   -1,
	}
}

// NewGrowableStack creates a stack which grows on demand, starting with an initial
// capacity. If limit is positive, the stack will not grow beyond limit values.
func NewGrowableStack(initial, limit int) *Stack {
	if initial < 0 {
		initial = 0
	}
	if limit > 0 && initial > limit {
		initial = limit
	}
	return &Stack{
		slots:    make([]float64, initial),
		top:      -1,
		growable: true,
		limit:    limit,
	}
}

// Reset empties the stack. Capacity is retained.
func (s *Stack) Reset() {
	s.top = -1
}

// Len returns the number of values on the stack.
func (s *Stack) Len() int {
	return s.top + 1
}

// Cap returns the current capacity of the stack.
func (s *Stack) Cap() int {
	return len(s.slots)
}

// Growable is a predicate: will the stack grow on demand?
func (s *Stack) Growable() bool {
	return s.growable
}

// Values returns a copy of the values on the stack, bottom first.
func (s *Stack) Values() []float64 {
	return append([]float64(nil), s.slots[:s.top+1]...)
}

func (s *Stack) push(v float64, at int) error {
	if s.top+1 == len(s.slots) {
		if !s.grow() {
			return arith.ErrorAt(arith.StackOverflow, at, "capacity of %d exceeded", len(s.slots))
		}
	}
	s.top++
	s.slots[s.top] = v
	return nil
}

func (s *Stack) grow() bool {
	if !s.growable || (s.limit > 0 && len(s.slots) >= s.limit) {
		return false
	}
	n := 2 * len(s.slots)
	if n < 8 {
		n = 8
	}
	if s.limit > 0 && n > s.limit {
		n = s.limit
	}
	slots := make([]float64, n)
	copy(slots, s.slots)
	s.slots = slots
	return true
}

// pop2 pops the two topmost values. rhs is the value pushed last.
func (s *Stack) pop2(at int) (lhs, rhs float64, err error) {
	if s.top < 1 {
		return 0, 0, arith.ErrorAt(arith.StackUnderflow, at, "%d value(s) on stack, 2 required", s.Len())
	}
	rhs = s.slots[s.top]
	lhs = s.slots[s.top-1]
	s.top -= 2
	return lhs, rhs, nil
}
