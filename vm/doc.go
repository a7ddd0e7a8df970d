/*
Package vm implements a stack machine for arithmetic programs.

A program is a flat sequence of instructions. There are two kinds of instructions:
PushConstant pushes a number onto the stack, Apply pops two operands, combines them
with an operator and pushes the result. Programs do not branch; they are executed
from start to end, every instruction exactly once. A program which executes
correctly leaves exactly one value on the stack, which is the program's result.

Programs are usually created by lowering an expression tree (see package compiler),
but may be constructed by hand:

    prog := vm.Program{
        vm.Push(5), vm.Push(7), vm.ApplyOp(arith.Add),
        vm.Push(3), vm.ApplyOp(arith.Add),
    }
    v, err := vm.Run(prog, vm.NewStack(prog.StackDepth()))   // v = 15

The stack is owned by the caller. It may either have a fixed capacity (NewStack)
or grow on demand (NewGrowableStack). A stack must not be shared between
concurrent runs, but may be re-used for sequential runs.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package vm

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'arith.vm'.
func tracer() tracing.Trace {
	return tracing.Select("arith.vm")
}
