package arith

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes failures of evaluation, compilation and execution.
type ErrorKind int

// Error kinds. Every failure is reported with exactly one of these.
const (
	NoError             ErrorKind = iota
	MalformedExpression           // a tree node violates its shape contract
	StackOverflow                 // a push exceeds the stack's capacity
	StackUnderflow                // an apply finds fewer than two operands
	IncompleteProgram             // a program terminates with an empty stack
	ExcessValues                  // a program terminates with more than one value
	UnknownInstruction            // an instruction tag (or operator) is unknown
)

var kindNames = [...]string{
	"no error",
	"malformed expression",
	"stack overflow",
	"stack underflow",
	"incomplete program",
	"excess values",
	"unknown instruction",
}

func (k ErrorKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("error kind %d", int(k))
}

// Error is the error type of evaluator, compiler and stack machine.
// At is the index of the offending instruction within a program, or -1 if the
// error did not originate from executing a program.
type Error struct {
	Kind ErrorKind
	At   int
	Msg  string
}

// Sentinel errors, to be used with errors.Is. Two *Error values match if they are
// of the same kind.
var (
	ErrMalformedExpression = &Error{Kind: MalformedExpression, At: -1}
	ErrStackOverflow       = &Error{Kind: StackOverflow, At: -1}
	ErrStackUnderflow      = &Error{Kind: StackUnderflow, At: -1}
	ErrIncompleteProgram   = &Error{Kind: IncompleteProgram, At: -1}
	ErrExcessValues        = &Error{Kind: ExcessValues, At: -1}
	ErrUnknownInstruction  = &Error{Kind: UnknownInstruction, At: -1}
)

// Errorf creates an error of kind k, not bound to an instruction.
func Errorf(k ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: k, At: -1, Msg: fmt.Sprintf(format, args...)}
}

// ErrorAt creates an error of kind k for instruction #at.
func ErrorAt(k ErrorKind, at int, format string, args ...interface{}) *Error {
	return &Error{Kind: k, At: at, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	s := e.Kind.String()
	if e.At >= 0 {
		s = fmt.Sprintf("%s at instruction #%d", s, e.At)
	}
	if e.Msg != "" {
		s = s + ": " + e.Msg
	}
	return s
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or NoError.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return NoError
}
