package arith

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestOperatorApply(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arith")
	defer teardown()
	//
	assert.Equal(t, 12.0, Add.Apply(5, 7))
	assert.Equal(t, -2.0, Subtract.Apply(5, 7))
	assert.Equal(t, 35.0, Apply(Multiply, 5, 7))
	assert.Equal(t, 2.5, Apply(Divide, 5, 2))
	assert.True(t, math.IsInf(Divide.Apply(1, 0), 1))
	assert.True(t, math.IsInf(Divide.Apply(-1, 0), -1))
	assert.True(t, math.IsNaN(Divide.Apply(0, 0)))
	assert.True(t, math.IsNaN(NoOp.Apply(1, 2)))
	assert.True(t, math.IsNaN(Operator(17).Apply(1, 2)))
}

func TestOperatorNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arith")
	defer teardown()
	//
	for _, op := range Operators {
		assert.True(t, op.Valid())
		x, ok := OperatorFor(op.String())
		assert.True(t, ok)
		assert.Equal(t, op, x)
		x, ok = OperatorFor(op.Name())
		assert.True(t, ok)
		assert.Equal(t, op, x)
	}
	assert.False(t, NoOp.Valid())
	op, ok := OperatorFor(" Times ")
	assert.True(t, ok)
	assert.Equal(t, Multiply, op)
	_, ok = OperatorFor("%")
	assert.False(t, ok)
	assert.Equal(t, "op(9)", Operator(9).String())
}

func TestFormatNumber(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arith")
	defer teardown()
	//
	assert.Equal(t, "3", FormatNumber(3))
	assert.Equal(t, "0.1", FormatNumber(0.1))
	assert.Equal(t, "-0", FormatNumber(math.Copysign(0, -1)))
	assert.Equal(t, "+Inf", FormatNumber(math.Inf(1)))
	assert.Equal(t, "NaN", FormatNumber(math.NaN()))
}

func TestErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arith")
	defer teardown()
	//
	err := ErrorAt(StackUnderflow, 1, "%d value(s) on stack", 1)
	assert.Equal(t, "stack underflow at instruction #1: 1 value(s) on stack", err.Error())
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.False(t, errors.Is(err, ErrStackOverflow))
	wrapped := fmt.Errorf("running: %w", err)
	assert.True(t, errors.Is(wrapped, ErrStackUnderflow))
	assert.Equal(t, StackUnderflow, KindOf(wrapped))
	assert.Equal(t, NoError, KindOf(errors.New("other")))
	assert.Equal(t, "malformed expression", Errorf(MalformedExpression, "").Error())
	assert.Equal(t, "error kind 42", ErrorKind(42).String())
}

func TestSpan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arith")
	defer teardown()
	//
	s := Span{3, 5}
	assert.Equal(t, uint64(2), s.Len())
	assert.Equal(t, s, Span{}.Extend(s))
	assert.Equal(t, s, s.Extend(Span{}))
	assert.Equal(t, Span{1, 5}, s.Extend(Span{1, 2}))
	assert.Equal(t, Span{3, 9}, s.Extend(Span{4, 9}))
	assert.True(t, Span{}.IsNull())
	assert.Equal(t, "(3…5)", s.String())
}
