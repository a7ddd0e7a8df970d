package vm

import (
	"github.com/npillmayer/arith"
)

// Run executes a program on a stack and returns the program's result.
//
// The stack is emptied before execution starts. If stack is nil, Run allocates a
// fixed stack just large enough for prog.
//
// Run fails with an error of one of the following kinds:
//
//    arith.StackOverflow       a push exceeds the stack's capacity
//    arith.StackUnderflow      an apply finds less than two values on the stack
//    arith.UnknownInstruction  an instruction has an invalid tag or operator
//    arith.IncompleteProgram   no value is left on the stack at the end
//    arith.ExcessValues        more than one value is left on the stack at the end
//
// Errors are reported for the first failing instruction; there are no partial
// results.
func Run(prog Program, stack *Stack) (float64, error) {
	if stack == nil {
		stack = NewStack(prog.StackDepth())
	}
	stack.Reset()
	for at, instr := range prog {
		if err := step(instr, at, stack); err != nil {
			tracer().Errorf("vm: %v", err)
			return 0, err
		}
	}
	switch n := stack.Len(); {
	case n == 0:
		err := arith.ErrorAt(arith.IncompleteProgram, len(prog), "no value left on stack")
		tracer().Errorf("vm: %v", err)
		return 0, err
	case n > 1:
		err := arith.ErrorAt(arith.ExcessValues, len(prog), "%d values left on stack", n)
		tracer().Errorf("vm: %v", err)
		return 0, err
	}
	return stack.slots[0], nil
}

func step(instr Instruction, at int, stack *Stack) error {
	switch instr.Code {
	case PushConstant:
		tracer().Debugf("%03d push %s", at, arith.FormatNumber(instr.Value))
		return stack.push(instr.Value, at)
	case Apply:
		if !instr.Op.Valid() {
			return arith.ErrorAt(arith.UnknownInstruction, at, "apply with invalid operator %s", instr.Op)
		}
		lhs, rhs, err := stack.pop2(at)
		if err != nil {
			return err
		}
		v := instr.Op.Apply(lhs, rhs)
		tracer().Debugf("%03d apply %s %s %s = %s", at, arith.FormatNumber(lhs),
			instr.Op, arith.FormatNumber(rhs), arith.FormatNumber(v))
		return stack.push(v, at)
	}
	return arith.ErrorAt(arith.UnknownInstruction, at, "tag %d", uint8(instr.Code))
}
