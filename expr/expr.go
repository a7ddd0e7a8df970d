package expr

import (
	"strings"

	"github.com/npillmayer/arith"
)

// Expression is a node of an expression tree. The set of node types is closed:
// an Expression is either a Literal or a *BinaryOp.
type Expression interface {
	String() string
	isExpression()
}

// Literal is a leaf node holding a constant number.
type Literal struct {
	Value float64
}

// BinaryOp is an inner node, combining two sub-expressions with an operator.
// Left and Right are owned by the node.
type BinaryOp struct {
	Op    arith.Operator
	Left  Expression
	Right Expression
}

func (Literal) isExpression()   {}
func (*BinaryOp) isExpression() {}

// Lit creates a literal node.
func Lit(v float64) Expression {
	return Literal{Value: v}
}

// Binary creates a binary operation node.
func Binary(op arith.Operator, left, right Expression) Expression {
	return &BinaryOp{Op: op, Left: left, Right: right}
}

// Add creates an addition node.
func Add(left, right Expression) Expression { return Binary(arith.Add, left, right) }

// Sub creates a subtraction node.
func Sub(left, right Expression) Expression { return Binary(arith.Subtract, left, right) }

// Mul creates a multiplication node.
func Mul(left, right Expression) Expression { return Binary(arith.Multiply, left, right) }

// Div creates a division node.
func Div(left, right Expression) Expression { return Binary(arith.Divide, left, right) }

func (l Literal) String() string {
	return arith.FormatNumber(l.Value)
}

// String returns a fully parenthesized infix representation, e.g. "((2 + 1) * 3)".
func (b *BinaryOp) String() string {
	if b == nil {
		return "<nil>"
	}
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(str(b.Left))
	sb.WriteByte(' ')
	sb.WriteString(b.Op.String())
	sb.WriteByte(' ')
	sb.WriteString(str(b.Right))
	sb.WriteByte(')')
	return sb.String()
}

func str(e Expression) string {
	if e == nil {
		return "<nil>"
	}
	return e.String()
}

// --- Tree measures ---------------------------------------------------------

// Leaves counts the literal leaves of an expression. Nil sub-trees count as zero.
func Leaves(e Expression) int {
	switch n := e.(type) {
	case Literal:
		return 1
	case *BinaryOp:
		if n == nil {
			return 0
		}
		return Leaves(n.Left) + Leaves(n.Right)
	}
	return 0
}

// Depth returns the height of an expression tree; a literal has depth 1.
func Depth(e Expression) int {
	switch n := e.(type) {
	case Literal:
		return 1
	case *BinaryOp:
		if n == nil {
			return 0
		}
		l, r := Depth(n.Left), Depth(n.Right)
		if l > r {
			return l + 1
		}
		return r + 1
	}
	return 0
}

// Order is the order in which Walk visits the nodes of a tree.
type Order int

// Traversal orders for Walk.
const (
	PreOrder  Order = iota // node, left, right: the order of a printed tree
	PostOrder              // left, right, node: the order a compiler emits instructions
)

// Walk visits the nodes of e in the given order. Walk calls visit with each node
// and its depth below the root (0). Walk stops at nil sub-trees.
func Walk(e Expression, order Order, visit func(node Expression, level int)) {
	walk(e, order, 0, visit)
}

func walk(e Expression, order Order, level int, visit func(Expression, int)) {
	switch n := e.(type) {
	case Literal:
		visit(n, level)
	case *BinaryOp:
		if n == nil {
			return
		}
		if order == PreOrder {
			visit(n, level)
		}
		walk(n.Left, order, level+1, visit)
		walk(n.Right, order, level+1, visit)
		if order == PostOrder {
			visit(n, level)
		}
	}
}

// Equal reports whether two expressions are structurally identical. Literals are
// compared bitwise, so NaN literals are equal to themselves.
func Equal(a, b Expression) bool {
	switch x := a.(type) {
	case Literal:
		y, ok := b.(Literal)
		return ok && Identical(x.Value, y.Value)
	case *BinaryOp:
		y, ok := b.(*BinaryOp)
		if !ok || x == nil || y == nil {
			return ok && x == y
		}
		return x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	}
	return a == nil && b == nil
}
