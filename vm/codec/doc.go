/*
Package codec serializes stack machine programs, so that programs may be compiled
once and run later, or elsewhere.

A program is represented as a flat list of tagged records, each consisting of an
opcode and an 8-byte operand. Two encodings are provided:

Binary:

    "AVM" | version (1 byte) | count (uint32, big endian) |
    count × ( opcode (1 byte) | operand (uint64, big endian) ) |
    fingerprint length (uint16, big endian) | fingerprint

The operand of a push instruction is the IEEE-754 bit pattern of its value, the
operand of an apply instruction is the operator code. The fingerprint is a
structural hash over the records and is checked when decoding.

YAML:

    - {push: 5}
    - {push: 7}
    - {apply: add}

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package codec

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'arith.vm'.
func tracer() tracing.Trace {
	return tracing.Select("arith.vm")
}
