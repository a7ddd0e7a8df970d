package compiler

import (
	"github.com/npillmayer/arith"
	"github.com/npillmayer/arith/expr"
	"github.com/npillmayer/arith/vm"
)

// Compile lowers an expression tree to a program. Compile fails with an error of
// kind arith.MalformedExpression for trees violating the expression invariants.
func Compile(e expr.Expression) (vm.Program, error) {
	prog := make(vm.Program, 0, 2*expr.Leaves(e))
	prog, err := emit(e, prog)
	if err != nil {
		tracer().Errorf("compile: %v", err)
		return nil, err
	}
	tracer().Debugf("compiled %d instructions", len(prog))
	return prog, nil
}

// emit appends the post-order instruction sequence for e to prog.
func emit(e expr.Expression, prog vm.Program) (vm.Program, error) {
	switch n := e.(type) {
	case expr.Literal:
		tracer().Debugf("emit push %s", arith.FormatNumber(n.Value))
		return append(prog, vm.Push(n.Value)), nil
	case *expr.BinaryOp:
		if err := expr.CheckNode(n); err != nil {
			return prog, err
		}
		var err error
		if prog, err = emit(n.Left, prog); err != nil {
			return prog, err
		}
		if prog, err = emit(n.Right, prog); err != nil {
			return prog, err
		}
		tracer().Debugf("emit apply %s", n.Op.Name())
		return append(prog, vm.ApplyOp(n.Op)), nil
	case nil:
		return prog, arith.Errorf(arith.MalformedExpression, "nil expression")
	}
	return prog, arith.Errorf(arith.MalformedExpression, "unknown node type %T", e)
}

// StackDepth returns the stack capacity the compiled program for e will need,
// without compiling e. For well-formed trees it equals the result of
// calling StackDepth() on the compiled program. Malformed sub-trees count as
// zero.
//
// The left operand's result stays on the stack while the right operand is
// computed, therefore a binary node needs max(depth(left), depth(right)+1).
func StackDepth(e expr.Expression) int {
	switch n := e.(type) {
	case expr.Literal:
		return 1
	case *expr.BinaryOp:
		if n == nil {
			return 0
		}
		l, r := StackDepth(n.Left), StackDepth(n.Right)+1
		if l > r {
			return l
		}
		return r
	}
	return 0
}
