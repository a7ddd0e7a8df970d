/*
Package lexmach tokenizes arithmetic input with a DFA generated by lexmachine
(github.com/timtadh/lexmachine).

Package calclang describes its number syntax as regular expressions and lets
NewLMAdapter compile them, together with the operator and parenthesis literals,
into a single DFA. The DFA is compiled once; LMAdapter.Scanner then creates a
cheap scanner.Tokenizer per input string:

	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`[0-9]+(\.[0-9]*)?`), lexmach.MakeToken(scanner.Float))
		lexer.Add([]byte(`( |\t)+`), lexmach.Skip)
	}
	lm, err := lexmach.NewLMAdapter(init, []string{"+", "-", "*", "/", "(", ")"}, ids)
	…
	tokens, err := lm.Scanner("1.5 * (2 + 3)")

Token spans are byte offsets into the input string. Text the DFA cannot consume
is reported to the error handler as a *scanner.InputError spanning exactly that
text, and tokenizing resumes behind it.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
