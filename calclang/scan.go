package calclang

import (
	"fmt"
	"strings"
	"sync"

	"github.com/npillmayer/arith/scanner"
	"github.com/npillmayer/arith/scanner/lexmach"
	"github.com/timtadh/lexmachine"
)

// The tokens representing literal one-char lexemes
var literals = []string{"(", ")", "+", "-", "*", "/"}

// tokenIds will be set in initTokens()
var tokenIds map[string]int // A map from the token names to their token types

var initOnce sync.Once // monitors one-time initialization
func initTokens() {
	initOnce.Do(func() {
		tokenIds = make(map[string]int)
		tokenIds["NUM"] = scanner.Float
		for _, lit := range literals {
			r := lit[0]
			tokenIds[lit] = int(r)
		}
	})
}

// Lexer creates a new lexmachine lexer for arithmetic input.
func Lexer() (*lexmach.LMAdapter, error) {
	initTokens()
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`#[^\n]*\n?`), lexmach.Skip) // skip comments
		lexer.Add([]byte(`[0-9]+(\.[0-9]*)?([eE][\+\-]?[0-9]+)?`), makeToken("NUM"))
		lexer.Add([]byte(`\.[0-9]+([eE][\+\-]?[0-9]+)?`), makeToken("NUM"))
		lexer.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)
	}
	adapter, err := lexmach.NewLMAdapter(init, literals, tokenIds)
	if err != nil {
		return nil, err
	}
	return adapter, nil
}

func makeToken(s string) lexmachine.Action {
	id, ok := tokenIds[s]
	if !ok {
		panic(fmt.Errorf("unknown token: %s", s))
	}
	return lexmach.MakeToken(id)
}

var lexer *lexmach.LMAdapter
var lexerErr error
var lexerOnce sync.Once // monitors one-time creation of the lexer

func sharedLexer() (*lexmach.LMAdapter, error) {
	lexerOnce.Do(func() {
		tracer().Infof("Creating lexer")
		lexer, lexerErr = Lexer()
	})
	return lexer, lexerErr
}

// TokenizerKind selects a tokenizer for textual input.
type TokenizerKind int

// Tokenizers for textual input.
const (
	LexMachine TokenizerKind = iota // DFA from Lexer(), '#' comments
	GoScanner                       // scanner.GoTokenizer, Go-style comments
)

var tokenizerNames = [...]string{"lexmachine", "go"}

func (k TokenizerKind) String() string {
	if k >= 0 && int(k) < len(tokenizerNames) {
		return tokenizerNames[k]
	}
	return fmt.Sprintf("tokenizer(%d)", int(k))
}

// TokenizerFor maps a tokenizer name ("lexmachine" or "go") to its kind.
// The empty name selects LexMachine.
func TokenizerFor(name string) (TokenizerKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "lexmachine":
		return LexMachine, nil
	case "go":
		return GoScanner, nil
	}
	return LexMachine, fmt.Errorf("unknown tokenizer %q", name)
}

// NewTokenizer creates a tokenizer of the given kind for input.
func NewTokenizer(kind TokenizerKind, input string) (scanner.Tokenizer, error) {
	switch kind {
	case LexMachine:
		lm, err := sharedLexer()
		if err != nil {
			return nil, err
		}
		scan, err := lm.Scanner(input)
		if err != nil {
			return nil, err
		}
		return scan, nil
	case GoScanner:
		return scanner.GoTokenizer("input", strings.NewReader(input)), nil
	}
	return nil, fmt.Errorf("unknown tokenizer %v", kind)
}
