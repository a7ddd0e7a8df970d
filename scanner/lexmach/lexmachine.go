package lexmach

import (
	"fmt"

	"github.com/npillmayer/arith"
	"github.com/npillmayer/arith/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'arith.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("arith.scanner")
}

// LMAdapter holds a compiled lexmachine DFA. It is safe to create scanners for
// different inputs from one adapter concurrently.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter compiles a DFA. init adds the patterns for numbers, whitespace and
// comments; every literal (operator or parenthesis) is added as a token of type
// tokenIds[literal].
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, tokenIds map[string]int) (*LMAdapter, error) {
	lexer := lexmachine.NewLexer()
	init(lexer)
	for _, lit := range literals {
		id, ok := tokenIds[lit]
		if !ok {
			return nil, fmt.Errorf("no token type for literal %q", lit)
		}
		lexer.Add(escape(lit), MakeToken(id))
	}
	if err := lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return &LMAdapter{Lexer: lexer}, nil
}

// escape quotes every character of a literal for use as a lexmachine pattern.
func escape(lit string) []byte {
	pattern := make([]byte, 0, 2*len(lit))
	for i := 0; i < len(lit); i++ {
		pattern = append(pattern, '\\', lit[i])
	}
	return pattern
}

// Scanner creates a tokenizer for input.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &LMScanner{scanner: s, onError: scanner.LogError}, nil
}

// LMScanner tokenizes one input with a lexmachine DFA. Spans are byte offsets
// into the input.
type LMScanner struct {
	scanner *lexmachine.Scanner
	onError func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner. nil restores
// scanner.LogError.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		h = scanner.LogError
	}
	lms.onError = h
}

// NextToken is part of the Tokenizer interface.
//
// Input no pattern matches is reported as *scanner.InputError, spanning the text
// the DFA could not consume, and skipped.
func (lms *LMScanner) NextToken() arith.Token {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		ui, ok := err.(*machines.UnconsumedInput)
		if !ok {
			lms.onError(err)
			break
		}
		lms.onError(&scanner.InputError{
			Span: arith.Span{uint64(ui.StartTC), uint64(ui.FailTC)},
			Text: string(ui.Text[ui.StartTC:ui.FailTC]),
			Msg:  "unmatched input",
		})
		lms.scanner.TC = ui.FailTC
		tok, err, eof = lms.scanner.Next()
	}
	if eof || tok == nil {
		pos := uint64(lms.scanner.TC)
		return scanner.MakeDefaultToken(scanner.EOF, "", arith.Span{pos, pos})
	}
	token := tok.(*lexmachine.Token)
	from := uint64(token.TC)
	tracer().Debugf("token %q at %d", token.Lexeme, from)
	return scanner.MakeDefaultToken(
		arith.TokType(token.Type),
		string(token.Lexeme),
		arith.Span{from, from + uint64(len(token.Lexeme))},
	)
}

// Skip is an action which drops the match, used for whitespace and comments.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken returns an action which turns a match into a token of type id.
func MakeToken(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
