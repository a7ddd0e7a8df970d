package calclang

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/arith"
	"github.com/npillmayer/arith/expr"
	"github.com/npillmayer/arith/scanner"
)

// SyntaxError is returned for input not conforming to the grammar.
type SyntaxError struct {
	Span   arith.Span // input positions of the offending token
	Lexeme string     // the offending token, empty at end of input
	Msg    string
}

func (e *SyntaxError) Error() string {
	if e.Lexeme == "" {
		return fmt.Sprintf("syntax error at %s: %s", e.Span, e.Msg)
	}
	return fmt.Sprintf("syntax error at %s: %s, found %q", e.Span, e.Msg, e.Lexeme)
}

// Parse parses an input string and returns its expression tree, or an error in
// case of failure. Errors are of type *SyntaxError.
func Parse(input string) (expr.Expression, error) {
	return ParseWith(LexMachine, input)
}

// ParseWith is like Parse, but tokenizes input with a tokenizer of the given kind.
func ParseWith(kind TokenizerKind, input string) (expr.Expression, error) {
	scan, err := NewTokenizer(kind, input)
	if err != nil {
		return nil, err
	}
	return ParseTokens(scan)
}

// MustParse is like Parse, but panics on errors. It is intended for tests and
// static initialization.
func MustParse(input string) expr.Expression {
	e, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return e
}

// ParseTokens parses the tokens delivered by a tokenizer, until EOF.
// Numbers may be delivered as scanner.Int or scanner.Float tokens, operators and
// parentheses as tokens with their character as token type.
//
// ParseTokens installs its own error handler at the tokenizer and fails on the
// first scanner error.
func ParseTokens(scan scanner.Tokenizer) (expr.Expression, error) {
	p := &parser{
		operands:  arraystack.New(),
		operators: arraystack.New(),
	}
	var scanErr error
	var errSpan arith.Span
	scan.SetErrorHandler(func(e error) {
		if scanErr == nil {
			scanErr = e
		}
	})
	e, err := p.parse(func() arith.Token {
		tok := scan.NextToken()
		if scanErr != nil {
			errSpan = tok.Span()
			return errorToken{errSpan}
		}
		return tok
	})
	if scanErr != nil {
		serr := &SyntaxError{Span: errSpan, Msg: scanErr.Error()}
		var ierr *scanner.InputError
		if errors.As(scanErr, &ierr) {
			serr.Span, serr.Lexeme, serr.Msg = ierr.Span, ierr.Text, ierr.Msg
		}
		err = serr
	}
	if err != nil {
		tracer().Errorf("%v", err)
		return nil, err
	}
	tracer().Debugf("parsed %s", e)
	return e, nil
}

// --- Operator precedence parsing -------------------------------------------

// We use a shift-reduce parser with an operand stack and an operator stack.
// Operators are shifted onto the operator stack; before shifting, every operator
// on the stack binding at least as tight as the incoming one is reduced, i.e.
// combined with the topmost operands. This makes binary operators
// left-associative.

const unaryMinus = 'u'

type parser struct {
	operands  *arraystack.Stack // of operand
	operators *arraystack.Stack // of operator
}

// operand is a sub-expression on the operand stack.
type operand struct {
	e      expr.Expression
	span   arith.Span
	number bool // is e a literal from a number token (possibly with signs)?
}

// operator is a pending operator or an open parenthesis.
type operator struct {
	sym  rune
	span arith.Span
}

// errorToken signals a scanner error to the parser loop.
type errorToken struct {
	span arith.Span
}

func (t errorToken) TokType() arith.TokType { return arith.TokType(scanner.EOF - 100) }
func (t errorToken) Lexeme() string         { return "" }
func (t errorToken) Value() interface{}     { return nil }
func (t errorToken) Span() arith.Span       { return t.span }

var errScanner = errors.New("scanner error")

func precedence(sym rune) int {
	switch sym {
	case '+', '-':
		return 1
	case '*', '/':
		return 2
	case unaryMinus:
		return 3
	}
	return 0 // '('
}

func (p *parser) parse(next func() arith.Token) (expr.Expression, error) {
	expectOperand := true
	for {
		tok := next()
		typ := int(tok.TokType())
		if _, isErr := tok.(errorToken); isErr {
			return nil, errScanner
		}
		tracer().Debugf("token %q/%d at %s", tok.Lexeme(), typ, tok.Span())
		if expectOperand {
			switch {
			case typ == scanner.Int || typ == scanner.Float:
				v, err := number(tok)
				if err != nil {
					return nil, err
				}
				p.operands.Push(operand{e: expr.Lit(v), span: tok.Span(), number: true})
				expectOperand = false
			case typ == '(':
				p.operators.Push(operator{sym: '(', span: tok.Span()})
			case typ == '-':
				p.operators.Push(operator{sym: unaryMinus, span: tok.Span()})
			case typ == scanner.EOF:
				return nil, syntaxError(tok, "unexpected end of input")
			default:
				return nil, syntaxError(tok, "expected number or '('")
			}
			continue
		}
		switch typ {
		case '+', '-', '*', '/':
			sym := rune(typ)
			if err := p.reduceWhile(func(top rune) bool {
				return precedence(top) >= precedence(sym)
			}); err != nil {
				return nil, err
			}
			p.operators.Push(operator{sym: sym, span: tok.Span()})
			expectOperand = true
		case ')':
			if err := p.reduceWhile(func(top rune) bool { return top != '(' }); err != nil {
				return nil, err
			}
			top, ok := p.operators.Pop()
			if !ok {
				return nil, syntaxError(tok, "unbalanced ')'")
			}
			x, _ := p.operands.Pop()
			inner := x.(operand)
			p.operands.Push(operand{
				e:    inner.e,
				span: top.(operator).span.Extend(inner.span).Extend(tok.Span()),
			})
		case scanner.EOF:
			if err := p.reduceWhile(func(top rune) bool { return top != '(' }); err != nil {
				return nil, err
			}
			if top, ok := p.operators.Peek(); ok {
				return nil, &SyntaxError{Span: top.(operator).span, Lexeme: "(", Msg: "missing ')'"}
			}
			return p.result()
		default:
			return nil, syntaxError(tok, "expected operator")
		}
	}
}

// reduceWhile reduces operators from the operator stack as long as cond holds for
// the topmost one.
func (p *parser) reduceWhile(cond func(top rune) bool) error {
	for {
		x, ok := p.operators.Peek()
		if !ok || !cond(x.(operator).sym) {
			return nil
		}
		p.operators.Pop()
		if err := p.reduce(x.(operator)); err != nil {
			return err
		}
	}
}

func (p *parser) reduce(op operator) error {
	if op.sym == unaryMinus {
		x, ok := p.operands.Pop()
		if !ok {
			return &SyntaxError{Span: op.span, Lexeme: "-", Msg: "missing operand"}
		}
		arg := x.(operand)
		span := op.span.Extend(arg.span)
		if arg.number {
			v := arg.e.(expr.Literal).Value
			p.operands.Push(operand{e: expr.Lit(-v), span: span, number: true})
		} else {
			p.operands.Push(operand{e: expr.Sub(expr.Lit(0), arg.e), span: span})
		}
		tracer().Debugf("reduce unary minus at %s", span)
		return nil
	}
	y, ok1 := p.operands.Pop()
	x, ok2 := p.operands.Pop()
	if !ok1 || !ok2 {
		return &SyntaxError{Span: op.span, Lexeme: string(op.sym), Msg: "missing operand"}
	}
	lhs, rhs := x.(operand), y.(operand)
	bop, _ := arith.OperatorFor(string(op.sym))
	span := lhs.span.Extend(op.span).Extend(rhs.span)
	p.operands.Push(operand{e: expr.Binary(bop, lhs.e, rhs.e), span: span})
	tracer().Debugf("reduce %s at %s", bop, span)
	return nil
}

func (p *parser) result() (expr.Expression, error) {
	if p.operands.Size() != 1 {
		return nil, &SyntaxError{Msg: fmt.Sprintf("%d operands left after parsing", p.operands.Size())}
	}
	x, _ := p.operands.Pop()
	return x.(operand).e, nil
}

func number(tok arith.Token) (float64, error) {
	if v, ok := tok.Value().(float64); ok {
		return v, nil
	}
	lexeme := strings.TrimSpace(tok.Lexeme())
	v, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
			return v, nil // ±Inf or denormalized, like any other IEEE overflow
		}
		return 0, syntaxError(tok, "malformed number")
	}
	return v, nil
}

func syntaxError(tok arith.Token, msg string) *SyntaxError {
	return &SyntaxError{Span: tok.Span(), Lexeme: tok.Lexeme(), Msg: msg}
}
