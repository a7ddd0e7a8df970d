/*
Package arepl/main provides an interactive command line tool (A.REPL)
for arithmetic expressions. A.REPL parses an expression, compiles it
for the stack machine and prints the result. Commands let users inspect
the expression tree and the compiled program, and save and load programs.


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'arith.repl'
func tracer() tracing.Trace {
	return tracing.Select("arith.repl")
}
