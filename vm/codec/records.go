package codec

import (
	"math"

	"github.com/cnf/structhash"
	"github.com/npillmayer/arith"
	"github.com/npillmayer/arith/vm"
)

// Record is the serialized form of an instruction.
type Record struct {
	Code    uint8
	Operand uint64
}

// Records converts a program to a list of records.
func Records(prog vm.Program) []Record {
	recs := make([]Record, len(prog))
	for i, instr := range prog {
		recs[i].Code = uint8(instr.Code)
		switch instr.Code {
		case vm.PushConstant:
			recs[i].Operand = math.Float64bits(instr.Value)
		case vm.Apply:
			recs[i].Operand = uint64(instr.Op)
		}
	}
	return recs
}

// FromRecords converts a list of records to a program. It fails with an error of
// kind arith.UnknownInstruction for records with unknown opcodes or operators.
func FromRecords(recs []Record) (vm.Program, error) {
	prog := make(vm.Program, len(recs))
	for i, rec := range recs {
		switch vm.Opcode(rec.Code) {
		case vm.PushConstant:
			prog[i] = vm.Push(math.Float64frombits(rec.Operand))
		case vm.Apply:
			op := arith.Operator(rec.Operand)
			if rec.Operand > math.MaxUint8 || !op.Valid() {
				return nil, arith.ErrorAt(arith.UnknownInstruction, i, "operator code %d", rec.Operand)
			}
			prog[i] = vm.ApplyOp(op)
		default:
			return nil, arith.ErrorAt(arith.UnknownInstruction, i, "opcode %d", rec.Code)
		}
	}
	return prog, nil
}

// hashed is the structure the fingerprint is computed for.
type hashed struct {
	Records []Record
}

// Fingerprint computes a structural hash of a program. Programs consisting of the
// same instructions have the same fingerprint.
func Fingerprint(prog vm.Program) (string, error) {
	return structhash.Hash(hashed{Records: Records(prog)}, 1)
}
