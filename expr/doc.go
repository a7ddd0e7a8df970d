/*
Package expr implements arithmetic expression trees and a recursive evaluator
for them.

An expression is either a literal number or a binary operation over two
sub-expressions. Expressions are immutable values; they may be shared freely
between goroutines and evaluated any number of times.

    e := expr.Mul(expr.Add(expr.Lit(2), expr.Lit(1)), expr.Lit(3))
    v, err := expr.Evaluate(e)   // v = 9

Evaluation recurses along the tree, therefore very deep trees need a
proportionally deep call stack. Clients executing the same expression
repeatedly should rather compile it (see package compiler) and run the program
on the stack machine of package vm.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package expr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'arith.expr'.
func tracer() tracing.Trace {
	return tracing.Select("arith.expr")
}
