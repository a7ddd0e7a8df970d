package vm

import (
	"fmt"
	"strings"

	"github.com/npillmayer/arith"
)

// Opcode is the tag of an instruction.
type Opcode uint8

// Instruction tags. Invalid is the zero value and never a valid tag.
const (
	Invalid      Opcode = iota
	PushConstant        // push Value
	Apply               // pop rhs, pop lhs, push Op(lhs, rhs)
)

func (c Opcode) String() string {
	switch c {
	case PushConstant:
		return "push"
	case Apply:
		return "apply"
	}
	return fmt.Sprintf("opcode(%d)", uint8(c))
}

// Instruction is a single step of a program. Value is the operand of
// PushConstant instructions, Op is the operand of Apply instructions.
type Instruction struct {
	Code  Opcode
	Value float64
	Op    arith.Operator
}

// Push creates a PushConstant instruction.
func Push(v float64) Instruction {
	return Instruction{Code: PushConstant, Value: v}
}

// ApplyOp creates an Apply instruction.
func ApplyOp(op arith.Operator) Instruction {
	return Instruction{Code: Apply, Op: op}
}

func (i Instruction) String() string {
	switch i.Code {
	case PushConstant:
		return "push " + arith.FormatNumber(i.Value)
	case Apply:
		return "apply " + i.Op.Name()
	}
	return i.Code.String()
}

// Program is a sequence of instructions, executed from start to end.
type Program []Instruction

// Len returns the number of instructions.
func (p Program) Len() int {
	return len(p)
}

// StackDepth returns the maximum number of values on the stack during execution of
// p, i.e. the capacity a fixed stack needs to run p without overflow. Applies
// finding too few operands are counted as if they succeeded.
func (p Program) StackDepth() int {
	height, max := 0, 0
	for _, instr := range p {
		switch instr.Code {
		case PushConstant:
			height++
		case Apply:
			if height >= 2 {
				height--
			}
		}
		if height > max {
			max = height
		}
	}
	return max
}

// String returns a listing of the program, one numbered instruction per line.
func (p Program) String() string {
	var sb strings.Builder
	for i, instr := range p {
		fmt.Fprintf(&sb, "%03d  %s\n", i, instr)
	}
	return sb.String()
}
