package runtime

import (
	"github.com/npillmayer/arith/config"
	"github.com/npillmayer/arith/vm"
)

// defaultGrowable is the initial capacity of growable stacks, if not configured.
const defaultGrowable = 16

// Run executes a program on a stack obtained from the runtime's stack pool.
// Run may be called concurrently.
func (rt *Runtime) Run(prog vm.Program) (float64, error) {
	stack := rt.acquireStack(prog)
	defer rt.stacks.Put(stack)
	rt.mu.Lock()
	rt.stats.Runs++
	rt.mu.Unlock()
	return vm.Run(prog, stack)
}

// acquireStack returns a stack suitable for prog, according to the stack policy:
//
//   fixed, capacity 0:   a fixed stack with at least prog.StackDepth() slots
//   fixed, capacity n:   a fixed stack with exactly n slots
//   growable:            a growable stack bounded by the stack limit
func (rt *Runtime) acquireStack(prog vm.Program) *vm.Stack {
	conf := rt.Config
	x := rt.stacks.Get()
	if conf.StackPolicy == config.GrowableStack {
		if s, ok := x.(*vm.Stack); ok && s.Growable() {
			return s
		}
		initial := conf.StackCapacity
		if initial == 0 {
			initial = defaultGrowable
		}
		return vm.NewGrowableStack(initial, conf.StackLimit)
	}
	if conf.StackCapacity > 0 {
		if s, ok := x.(*vm.Stack); ok && !s.Growable() && s.Cap() == conf.StackCapacity {
			return s
		}
		return vm.NewStack(conf.StackCapacity)
	}
	depth := prog.StackDepth()
	if s, ok := x.(*vm.Stack); ok && !s.Growable() && s.Cap() >= depth {
		return s
	}
	tracer().Debugf("allocating stack of depth %d", depth)
	return vm.NewStack(depth)
}
