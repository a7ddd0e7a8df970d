/*
Package calclang parses arithmetic in infix notation into expression trees.

The grammar is the classic expression grammar:

    Expr   ➞ Expr SumOp Term  |  Term
    Term   ➞ Term ProdOp Factor  |  Factor
    Factor ➞ number  |  ( Expr )  |  - Factor
    SumOp  ➞ +  |  -
    ProdOp ➞ *  |  /

Binary operators are left-associative. Numbers are decimal, with an optional
fraction and exponent ("3", "0.25", "1e-3"). Comments start with '#' and extend to
the end of the line.

The language of package expr has no unary operators. A minus sign in front of a
number is folded into a negative literal, a minus sign in front of any other factor
is lowered to (0 − factor).

    e, err := calclang.Parse("(2 + 1) * 3")

Parse uses a lexmachine-generated scanner. ParseWith selects the tokenizer,
either the lexmachine one or scanner.GoTokenizer (which knows Go-style comments
instead of '#' comments). ParseTokens accepts any scanner.Tokenizer.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package calclang

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'arith.calclang'.
func tracer() tracing.Trace {
	return tracing.Select("arith.calclang")
}
