/*
Package scanner defines the tokenizer interface of the arithmetic parser in package
calclang, together with the token type both tokenizers deliver.

Two tokenizers exist: a DFA-based one built with lexmachine (sub-package lexmach),
which calclang uses by default, and GoTokenizer, which reads numbers, operators and
Go-style comments with the help of the standard library's text/scanner. Runtimes
select between them by configuration.

Tokenizers report malformed input as *InputError, located by the span of the
offending text.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"text/scanner"

	"github.com/npillmayer/arith"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'arith.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("arith.scanner")
}

// Token types for numbers and end of input. Operators and parentheses use
// their character code as token type.
const (
	EOF     = scanner.EOF
	Int     = scanner.Int
	Float   = scanner.Float
	Comment = scanner.Comment
)

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() arith.Token
	SetErrorHandler(func(error))
}

// InputError is reported to a tokenizer's error handler for input which cannot
// be tokenized.
type InputError struct {
	Span arith.Span // the offending input
	Text string
	Msg  string
}

func (e *InputError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("%s: %s", e.Span, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %q", e.Span, e.Msg, e.Text)
}

// LogError is the error handler tokenizers start with. It traces the error.
func LogError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// --- Go-style tokenizer ----------------------------------------------------

// GoScanner tokenizes arithmetic input with text/scanner. Integer and floating
// point numbers are delivered as Int and Float tokens; every other character is a
// token of its own. Create one with GoTokenizer.
type GoScanner struct {
	sc      scanner.Scanner
	onError func(error)
}

var _ Tokenizer = (*GoScanner)(nil)

// GoTokenizer creates a tokenizer for input. Comments (// and /* */) are skipped
// unless option SkipComments(false) is given.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *GoScanner {
	t := &GoScanner{onError: LogError}
	t.sc.Init(input)
	t.sc.Filename = sourceID
	t.sc.Mode = scanner.ScanInts | scanner.ScanFloats | scanner.ScanComments | scanner.SkipComments
	t.sc.Error = func(s *scanner.Scanner, msg string) {
		// s.Position is the start of the token under construction
		from, to := uint64(s.Position.Offset), uint64(s.Pos().Offset)
		if to <= from {
			to = from + 1
		}
		t.onError(&InputError{Span: arith.Span{from, to}, Msg: msg})
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the tokenizer. nil restores LogError.
func (t *GoScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		h = LogError
	}
	t.onError = h
}

// NextToken is part of the Tokenizer interface.
func (t *GoScanner) NextToken() arith.Token {
	typ := t.sc.Scan()
	from := uint64(t.sc.Position.Offset)
	if typ == scanner.EOF {
		tracer().Debugf("%s: end of input", t.sc.Filename)
		pos := uint64(t.sc.Pos().Offset)
		return MakeDefaultToken(EOF, "", arith.Span{pos, pos})
	}
	return MakeDefaultToken(arith.TokType(typ), t.sc.TokenText(), arith.Span{from, uint64(t.sc.Pos().Offset)})
}

// Option configures a GoScanner.
type Option func(t *GoScanner)

// SkipComments lets the tokenizer skip comments (the default) or deliver them
// as Comment tokens.
func SkipComments(b bool) Option {
	return func(t *GoScanner) {
		if b {
			t.sc.Mode |= scanner.SkipComments
		} else {
			t.sc.Mode &^= scanner.SkipComments
		}
	}
}

// --- Tokens ----------------------------------------------------------------

// DefaultToken is the token type delivered by both tokenizers.
type DefaultToken struct {
	kind   arith.TokType
	lexeme string
	Val    interface{}
	span   arith.Span
}

// MakeDefaultToken creates a token without a value.
func MakeDefaultToken(typ arith.TokType, lexeme string, span arith.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() arith.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() arith.Span {
	return t.span
}
