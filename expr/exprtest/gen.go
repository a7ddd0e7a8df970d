/*
Package exprtest provides generators of expression trees for property-based tests,
built with rapid (pgregory.net/rapid).

Trees and values shrink towards small literals, so a failing property is reported
with a minimal tree:

    rapid.Check(t, func(t *rapid.T) {
        e := exprtest.Expressions(8).Draw(t, "e")
        …
    })

Outside of tests, Example draws a single tree for a seed.
*/
package exprtest

import (
	"math"

	"github.com/npillmayer/arith"
	"github.com/npillmayer/arith/expr"
	"pgregory.net/rapid"
)

// Specials are the literal values with IEEE corner-case behaviour.
var Specials = []float64{0, math.Copysign(0, -1), math.Inf(1), math.Inf(-1), math.NaN()}

// Numbers generates literal values: mostly small integers, then decimal fractions,
// values across many binary magnitudes and, with low probability, one of Specials.
func Numbers() *rapid.Generator[float64] {
	return rapid.Custom(func(t *rapid.T) float64 {
		switch kind := rapid.IntRange(0, 9).Draw(t, "kind"); {
		case kind < 5:
			return float64(rapid.IntRange(0, 99).Draw(t, "int"))
		case kind < 8:
			return rapid.Float64Range(-1000, 1000).Draw(t, "float")
		case kind < 9:
			m := rapid.Float64Range(-1, 1).Draw(t, "mantissa")
			return math.Ldexp(m, rapid.IntRange(-100, 100).Draw(t, "exponent"))
		}
		return rapid.SampledFrom(Specials).Draw(t, "special")
	})
}

// Literals generates single-literal expressions.
func Literals() *rapid.Generator[expr.Expression] {
	return rapid.Custom(func(t *rapid.T) expr.Expression {
		return expr.Lit(Numbers().Draw(t, "value"))
	})
}

// Expressions generates well-formed trees of height at most maxDepth (minimum 1).
// Every inner level stops early with a literal with a probability of about one
// in four.
func Expressions(maxDepth int) *rapid.Generator[expr.Expression] {
	if maxDepth <= 1 {
		return Literals()
	}
	sub := rapid.Deferred(func() *rapid.Generator[expr.Expression] {
		return Expressions(maxDepth - 1)
	})
	return rapid.Custom(func(t *rapid.T) expr.Expression {
		if rapid.IntRange(0, 3).Draw(t, "branch") == 0 {
			return Literals().Draw(t, "leaf")
		}
		op := rapid.SampledFrom(arith.Operators).Draw(t, "op")
		return expr.Binary(op, sub.Draw(t, "left"), sub.Draw(t, "right"))
	})
}

// Example draws one tree of height at most maxDepth, deterministically for a seed.
func Example(maxDepth int, seed int) expr.Expression {
	return Expressions(maxDepth).Example(seed)
}
