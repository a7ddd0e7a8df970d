package calclang

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/npillmayer/arith"
	"github.com/npillmayer/arith/expr"
	"github.com/npillmayer/arith/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arith.calclang")
	defer teardown()
	//
	lex, err := Lexer()
	require.NoError(t, err)
	input := "12.5 * (3 - .5e1) # comment"
	scan, err := lex.Scanner(input)
	require.NoError(t, err)
	scan.SetErrorHandler(func(e error) {
		t.Error(e)
	})
	var lexemes []string
	for token := scan.NextToken(); token.TokType() != scanner.EOF; token = scan.NextToken() {
		t.Logf("token = %q with value = %d", token.Lexeme(), token.TokType())
		lexemes = append(lexemes, token.Lexeme())
	}
	assert.Equal(t, []string{"12.5", "*", "(", "3", "-", ".5e1", ")"}, lexemes)
}

func TestParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arith.calclang")
	defer teardown()
	//
	cases := []struct {
		input string
		tree  expr.Expression
	}{
		{"2", expr.Lit(2)},
		{"6 + (4 + 3)", expr.Add(expr.Lit(6), expr.Add(expr.Lit(4), expr.Lit(3)))},
		{"(2 + 1) * 3", expr.Mul(expr.Add(expr.Lit(2), expr.Lit(1)), expr.Lit(3))},
		{"2 + 1 * 3", expr.Add(expr.Lit(2), expr.Mul(expr.Lit(1), expr.Lit(3)))},
		{"9 * 7 / 7", expr.Div(expr.Mul(expr.Lit(9), expr.Lit(7)), expr.Lit(7))},
		{"10 - 4 - 3", expr.Sub(expr.Sub(expr.Lit(10), expr.Lit(4)), expr.Lit(3))},
		{"-2 * 3", expr.Mul(expr.Lit(-2), expr.Lit(3))},
		{"2 * --3", expr.Mul(expr.Lit(2), expr.Lit(3))},
		{"-(1 + 2)", expr.Sub(expr.Lit(0), expr.Add(expr.Lit(1), expr.Lit(2)))},
		{"((1e3))", expr.Lit(1000)},
		{"1 / 0 # inf", expr.Div(expr.Lit(1), expr.Lit(0))},
	}
	for _, c := range cases {
		e, err := Parse(c.input)
		if assert.NoError(t, err, c.input) {
			assert.True(t, expr.Equal(c.tree, e), "%q: expected %s, got %s", c.input, c.tree, e)
		}
	}
}

func TestParseEvaluates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arith.calclang")
	defer teardown()
	//
	v, err := expr.Evaluate(MustParse("(5 + 7) * 3 / 2"))
	require.NoError(t, err)
	assert.Equal(t, 18.0, v)
	v, err = expr.Evaluate(MustParse("1e400"))
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, 1))
}

func TestSyntaxErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arith.calclang")
	defer teardown()
	//
	inputs := map[string]arith.Span{
		"":        {0, 0},
		"1 +":     {3, 3},
		"(1 + 2":  {0, 1},
		"1 + 2)":  {5, 6},
		"1 2":     {2, 3},
		"* 3":     {0, 1},
		"4 @ 2":   {2, 3},
		"(1 + )":  {5, 6},
		"2 * (3)(": {7, 8},
	}
	for input, span := range inputs {
		_, err := Parse(input)
		var serr *SyntaxError
		if assert.True(t, errors.As(err, &serr), "%q: expected syntax error, got %v", input, err) {
			t.Logf("%q: %v", input, err)
			assert.Equal(t, span, serr.Span, "span for %q", input)
		}
	}
}

func TestParseGoTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arith.calclang")
	defer teardown()
	//
	scan := scanner.GoTokenizer("go tokens", strings.NewReader("(2 + 1) * 3.5"))
	e, err := ParseTokens(scan)
	require.NoError(t, err)
	assert.Equal(t, "((2 + 1) * 3.5)", e.String())
	//
	e, err = ParseWith(GoScanner, "-2 * (3 - .5e1) // comment")
	require.NoError(t, err)
	assert.Equal(t, "(-2 * (3 - 5))", e.String())
}

func TestBadInputSpans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arith.calclang")
	defer teardown()
	//
	_, err := Parse("4 @ 2")
	var serr *SyntaxError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, arith.Span{2, 3}, serr.Span)
	assert.Equal(t, "@", serr.Lexeme)
	//
	_, err = ParseWith(GoScanner, "2 * 1e+")
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, arith.Span{4, 7}, serr.Span)
	//
	_, err = ParseWith(GoScanner, "4 @ 2")
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, arith.Span{2, 3}, serr.Span)
}

func TestTokenizerFor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arith.calclang")
	defer teardown()
	//
	for _, k := range []TokenizerKind{LexMachine, GoScanner} {
		x, err := TokenizerFor(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, x)
	}
	_, err := TokenizerFor("yacc")
	assert.Error(t, err)
}
