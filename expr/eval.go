package expr

import (
	"math"

	"github.com/npillmayer/arith"
)

// Evaluate computes the value of an expression tree. The left operand of a
// binary operation is evaluated completely before the right one.
//
// Evaluate fails with an error of kind arith.MalformedExpression if it encounters
// a node which does not satisfy the expression invariants: a nil node, a nil child
// or an invalid operator. Trees built with this package's constructors from valid
// operators never fail.
func Evaluate(e Expression) (float64, error) {
	v, err := eval(e)
	if err != nil {
		tracer().Errorf("evaluate: %v", err)
		return 0, err
	}
	return v, nil
}

func eval(e Expression) (float64, error) {
	switch n := e.(type) {
	case Literal:
		return n.Value, nil
	case *BinaryOp:
		if err := CheckNode(n); err != nil {
			return 0, err
		}
		lhs, err := eval(n.Left)
		if err != nil {
			return 0, err
		}
		rhs, err := eval(n.Right)
		if err != nil {
			return 0, err
		}
		v := n.Op.Apply(lhs, rhs)
		tracer().Debugf("eval %s %s %s = %s", arith.FormatNumber(lhs), n.Op,
			arith.FormatNumber(rhs), arith.FormatNumber(v))
		return v, nil
	case nil:
		return 0, arith.Errorf(arith.MalformedExpression, "nil expression")
	}
	return 0, arith.Errorf(arith.MalformedExpression, "unknown node type %T", e)
}

// CheckNode checks the shape of a single binary node (not its sub-trees): it must
// not be nil, must have two children and a valid operator.
func CheckNode(n *BinaryOp) error {
	if n == nil {
		return arith.Errorf(arith.MalformedExpression, "nil binary node")
	}
	if !n.Op.Valid() {
		return arith.Errorf(arith.MalformedExpression, "unrecognized operator %s", n.Op)
	}
	if n.Left == nil || n.Right == nil {
		return arith.Errorf(arith.MalformedExpression, "binary node %s lacks an operand", n.Op)
	}
	return nil
}

// Identical reports whether two results are the same float64, bit for bit.
// All NaNs are considered identical.
func Identical(a, b float64) bool {
	return math.Float64bits(a) == math.Float64bits(b) || (math.IsNaN(a) && math.IsNaN(b))
}
