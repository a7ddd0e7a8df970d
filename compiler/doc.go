/*
Package compiler lowers arithmetic expression trees to stack machine programs.

Lowering emits instructions in post-order: the instructions of the left operand,
then those of the right operand, then the operator. Executing the program on the
stack machine of package vm therefore performs the same operations in the same
order as the tree evaluator of package expr, and yields the identical result.

A tree with L literal leaves compiles to exactly 2L−1 instructions. Compilation
walks the tree once; the resulting program may then be run any number of times
without recursion.

    prog, err := compiler.Compile(e)
    stack := vm.NewStack(prog.StackDepth())
    for … {
        v, err := vm.Run(prog, stack)
    }

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package compiler

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'arith.compiler'.
func tracer() tracing.Trace {
	return tracing.Select("arith.compiler")
}
