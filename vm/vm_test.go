package vm

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/arith"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSum(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arith.vm")
	defer teardown()
	//
	prog := Program{Push(5), Push(7), ApplyOp(arith.Add), Push(3), ApplyOp(arith.Add)}
	v, err := Run(prog, NewStack(4))
	require.NoError(t, err)
	assert.Equal(t, 15.0, v)
}

func TestRunMixed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arith.vm")
	defer teardown()
	//
	prog := Program{
		Push(5), Push(7), ApplyOp(arith.Add),
		Push(3), ApplyOp(arith.Multiply),
		Push(2), ApplyOp(arith.Divide),
	}
	v, err := Run(prog, NewGrowableStack(0, 0))
	require.NoError(t, err)
	assert.Equal(t, 18.0, v)
}

func TestOperandOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arith.vm")
	defer teardown()
	//
	v, err := Run(Program{Push(10), Push(4), ApplyOp(arith.Subtract)}, nil)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)
	v, err = Run(Program{Push(1), Push(4), ApplyOp(arith.Divide)}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.25, v)
}

func TestUnderflow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arith.vm")
	defer teardown()
	//
	_, err := Run(Program{ApplyOp(arith.Add)}, NewStack(4))
	require.Error(t, err)
	assert.True(t, errors.Is(err, arith.ErrStackUnderflow), err.Error())
	_, err = Run(Program{Push(1), ApplyOp(arith.Add)}, NewStack(4))
	assert.True(t, errors.Is(err, arith.ErrStackUnderflow), err.Error())
	var e *arith.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, 1, e.At)
}

func TestOverflow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arith.vm")
	defer teardown()
	//
	prog := Program{Push(1), Push(2), ApplyOp(arith.Add)}
	assert.Equal(t, 2, prog.StackDepth())
	_, err := Run(prog, NewStack(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, arith.ErrStackOverflow), err.Error())
	assert.Equal(t, arith.StackOverflow, arith.KindOf(err))
	// same program succeeds with sufficient capacity
	v, err := Run(prog, NewStack(2))
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)
}

func TestGrowableStack(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arith.vm")
	defer teardown()
	//
	var prog Program
	for i := 0; i < 100; i++ {
		prog = append(prog, Push(1))
	}
	for i := 0; i < 99; i++ {
		prog = append(prog, ApplyOp(arith.Add))
	}
	stack := NewGrowableStack(1, 0)
	v, err := Run(prog, stack)
	require.NoError(t, err)
	assert.Equal(t, 100.0, v)
	assert.GreaterOrEqual(t, stack.Cap(), 100)
	//
	_, err = Run(prog, NewGrowableStack(1, 50))
	assert.True(t, errors.Is(err, arith.ErrStackOverflow))
}

func TestTermination(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arith.vm")
	defer teardown()
	//
	_, err := Run(Program{}, NewStack(2))
	assert.True(t, errors.Is(err, arith.ErrIncompleteProgram))
	_, err = Run(Program{Push(5), Push(7)}, NewStack(2))
	assert.True(t, errors.Is(err, arith.ErrExcessValues))
	_, err = Run(Program{Push(5), Push(7), ApplyOp(arith.Add), Push(3)}, NewStack(2))
	assert.True(t, errors.Is(err, arith.ErrExcessValues))
	assert.False(t, errors.Is(err, arith.ErrIncompleteProgram))
}

func TestUnknownInstruction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arith.vm")
	defer teardown()
	//
	_, err := Run(Program{Push(1), {Code: Opcode(9)}}, NewStack(2))
	assert.True(t, errors.Is(err, arith.ErrUnknownInstruction))
	_, err = Run(Program{Push(1), Push(2), ApplyOp(arith.NoOp)}, NewStack(2))
	assert.True(t, errors.Is(err, arith.ErrUnknownInstruction))
	_, err = Run(Program{{}}, NewStack(2))
	assert.True(t, errors.Is(err, arith.ErrUnknownInstruction))
}

func TestStackReuse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arith.vm")
	defer teardown()
	//
	stack := NewStack(2)
	_, err := Run(Program{Push(5), Push(7)}, stack)
	require.Error(t, err)
	v, err := Run(Program{Push(1), Push(4), ApplyOp(arith.Divide)}, stack)
	require.NoError(t, err)
	assert.Equal(t, 0.25, v)
	assert.Equal(t, []float64{0.25}, stack.Values())
}

func TestIEEEPropagation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arith.vm")
	defer teardown()
	//
	v, err := Run(Program{Push(-1), Push(0), ApplyOp(arith.Divide)}, nil)
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, -1))
}

func TestListing(t *testing.T) {
	prog := Program{Push(2), Push(1.5), ApplyOp(arith.Add)}
	assert.Equal(t, "000  push 2\n001  push 1.5\n002  apply add\n", prog.String())
	assert.Equal(t, 3, prog.Len())
}
