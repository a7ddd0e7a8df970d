package compiler

import (
	"github.com/npillmayer/arith"
	"github.com/npillmayer/arith/expr"
	"github.com/npillmayer/arith/vm"
)

// Decompile reconstructs the expression tree a program computes. It executes the
// program symbolically: instead of numbers, sub-trees are pushed onto the stack.
// For every well-formed expression e, Decompile(Compile(e)) is structurally equal
// to e.
//
// Decompile fails with the same error kinds vm.Run would report for prog, except
// for arith.StackOverflow (symbolic execution does not limit stack size).
func Decompile(prog vm.Program) (expr.Expression, error) {
	stack := make([]expr.Expression, 0, prog.StackDepth())
	for at, instr := range prog {
		switch instr.Code {
		case vm.PushConstant:
			stack = append(stack, expr.Lit(instr.Value))
		case vm.Apply:
			if !instr.Op.Valid() {
				return nil, arith.ErrorAt(arith.UnknownInstruction, at, "apply with invalid operator %s", instr.Op)
			}
			n := len(stack)
			if n < 2 {
				return nil, arith.ErrorAt(arith.StackUnderflow, at, "%d value(s) on stack, 2 required", n)
			}
			node := expr.Binary(instr.Op, stack[n-2], stack[n-1])
			stack = append(stack[:n-2], node)
		default:
			return nil, arith.ErrorAt(arith.UnknownInstruction, at, "tag %d", uint8(instr.Code))
		}
	}
	switch len(stack) {
	case 0:
		return nil, arith.ErrorAt(arith.IncompleteProgram, len(prog), "no value left on stack")
	case 1:
		return stack[0], nil
	}
	return nil, arith.ErrorAt(arith.ExcessValues, len(prog), "%d values left on stack", len(stack))
}
