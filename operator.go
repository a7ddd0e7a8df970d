package arith

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Operator is one of the binary arithmetic operators. The zero value NoOp is not a
// valid operator.
type Operator uint8

// The closed set of operators.
const (
	NoOp Operator = iota
	Add
	Subtract
	Multiply
	Divide
)

// Operators lists all valid operators, in order of their codes.
var Operators = []Operator{Add, Subtract, Multiply, Divide}

// Valid is a predicate: is op one of Add, Subtract, Multiply or Divide?
func (op Operator) Valid() bool {
	return op >= Add && op <= Divide
}

// Apply applies op to lhs and rhs. All arithmetic is IEEE-754 double arithmetic,
// i.e. division by zero results in ±Inf or NaN. Applying an invalid operator
// results in NaN.
//
// Apply is the single place where numbers get combined; the tree evaluator and the
// stack machine both call it.
func (op Operator) Apply(lhs, rhs float64) float64 {
	switch op {
	case Add:
		return lhs + rhs
	case Subtract:
		return lhs - rhs
	case Multiply:
		return lhs * rhs
	case Divide:
		return lhs / rhs
	}
	return math.NaN()
}

// Apply is a convenience function for op.Apply(lhs, rhs).
func Apply(op Operator, lhs, rhs float64) float64 {
	return op.Apply(lhs, rhs)
}

var opSymbols = [...]string{"?", "+", "-", "*", "/"}
var opNames = [...]string{"noop", "add", "sub", "mul", "div"}

func (op Operator) String() string {
	if int(op) < len(opSymbols) {
		return opSymbols[op]
	}
	return fmt.Sprintf("op(%d)", uint8(op))
}

// Name returns a lowercase name for op ("add", "sub", "mul", "div").
func (op Operator) Name() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("op%d", uint8(op))
}

// OperatorFor maps an operator symbol ("+") or name ("add", "subtract", …) to an
// operator. Names are case-insensitive. Returns NoOp and false for unknown input.
func OperatorFor(s string) (Operator, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "+", "add", "plus":
		return Add, true
	case "-", "sub", "subtract", "minus":
		return Subtract, true
	case "*", "mul", "multiply", "times":
		return Multiply, true
	case "/", "div", "divide":
		return Divide, true
	}
	return NoOp, false
}

// FormatNumber formats a float in the shortest representation which parses back
// to the identical value.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
