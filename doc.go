/*
Package arith is a small toolbox for evaluating arithmetic expressions.

Arith evaluates expressions in two interchangeable ways: by walking an expression
tree, or by lowering the tree to a flat bytecode program which is executed on a
stack machine. Both ways share a single operator table and must agree on every
input. Package structure is as follows:

■ expr: Package expr implements expression trees and the tree-walking evaluator.

■ compiler: Package compiler lowers expression trees to stack machine programs.

■ vm: Package vm implements the stack machine and its instruction set. Sub-package
codec serializes compiled programs.

■ calclang: Package calclang parses textual arithmetic into expression trees, using
the scanners of package scanner.

■ runtime: Package runtime bundles parsing, compilation and execution, caching
compiled programs.

The base package contains data types which are used throughout all the other packages:
operators, errors, tokens and spans.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package arith
