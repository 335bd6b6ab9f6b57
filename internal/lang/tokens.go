// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

package lang

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

var whitespaceType = tokenLexer.Symbols()["Whitespace"]

// Token is a single lexical token with its raw source text and byte
// offset, exported so internal/shell can scan dot-command argument tails
// (which have their own per-command keyword grammar: `where`, `limit`,
// `as`, `into`) without hand-rolling a second tokeniser.
type Token struct {
	Type   string
	Value  string
	Offset int
}

// Tokenize lexes src fully, eliding whitespace, and is total: malformed
// input is reported as an error, never a panic.
func Tokenize(src string) ([]Token, error) {
	lex, err := tokenLexer.Lex("", strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	names := map[lexer.TokenType]string{}
	for name, t := range tokenLexer.Symbols() {
		names[t] = name
	}

	var out []Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF() {
			return out, nil
		}
		if tok.Type == whitespaceType {
			continue
		}
		out = append(out, Token{Type: names[tok.Type], Value: tok.Value, Offset: tok.Pos.Offset})
	}
}
