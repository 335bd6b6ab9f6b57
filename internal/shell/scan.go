// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

package shell

import (
	"strconv"
	"strings"

	"github.com/laszlokorte/damasc/internal/errs"
	"github.com/laszlokorte/damasc/internal/lang"
)

// Dot-command argument tails have their own flat mini-grammar of keyword
// clauses (`where EXPR`, `limit N`, `as PATTERN`, `into EXPR`) that the
// participle expression/pattern grammar has no reason to know about, and
// `;`-separated lists of patterns or expressions. These helpers carve a
// token slice into pieces depth-aware (so a `;` or `where` that is really
// a nested object key or predicate text does not get mistaken for a
// clause boundary) and hand each piece back to lang.ParseExpression /
// lang.ParsePattern by rejoining it into source text.

func isOpenBracket(t lang.Token) bool {
	switch t.Value {
	case "(", "[", "{":
		return true
	}
	return false
}

func isCloseBracket(t lang.Token) bool {
	switch t.Value {
	case ")", "]", "}":
		return true
	}
	return false
}

// splitTop splits tokens on every top-level (bracket-depth zero)
// occurrence of a punctuation token whose value is sep, dropping the
// separator itself. A single empty input yields one empty group.
func splitTop(tokens []lang.Token, sep string) [][]lang.Token {
	var groups [][]lang.Token
	var cur []lang.Token
	depth := 0
	for _, t := range tokens {
		if isOpenBracket(t) {
			depth++
		} else if isCloseBracket(t) {
			depth--
		}
		if depth == 0 && t.Value == sep {
			groups = append(groups, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	groups = append(groups, cur)
	return groups
}

// carveClauses splits tokens into a leading head segment and the argument
// tokens following each top-level keyword in keywords, wherever that
// keyword occurs (as a bare identifier, at bracket depth zero). Keywords
// not present are simply absent from the returned map.
func carveClauses(tokens []lang.Token, keywords ...string) ([]lang.Token, map[string][]lang.Token) {
	type hit struct {
		idx int
		kw  string
	}
	var hits []hit
	depth := 0
	for i, t := range tokens {
		if isOpenBracket(t) {
			depth++
			continue
		}
		if isCloseBracket(t) {
			depth--
			continue
		}
		if depth != 0 || t.Type != "Ident" {
			continue
		}
		for _, kw := range keywords {
			if t.Value == kw {
				hits = append(hits, hit{i, kw})
				break
			}
		}
	}
	clauses := map[string][]lang.Token{}
	if len(hits) == 0 {
		return tokens, clauses
	}
	head := tokens[:hits[0].idx]
	for i, h := range hits {
		end := len(tokens)
		if i+1 < len(hits) {
			end = hits[i+1].idx
		}
		clauses[h.kw] = tokens[h.idx+1 : end]
	}
	return head, clauses
}

// joinTokens reconstructs source text from tokens, single-space separated.
// String and Template token values already include their delimiters (the
// lexer captures the whole literal), so a plain join re-lexes identically
// to the original text regardless of the original spacing.
func joinTokens(tokens []lang.Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.Value
	}
	return strings.Join(parts, " ")
}

// parseLimit reads a `limit N` clause's argument tokens as a non-negative
// integer.
func parseLimit(tokens []lang.Token) (int, error) {
	if len(tokens) != 1 || tokens[0].Type != "Int" {
		return 0, errs.ParseError(0, "integer", "limit expects a single integer")
	}
	n, err := strconv.Atoi(tokens[0].Value)
	if err != nil {
		return 0, errs.ParseError(tokens[0].Offset, "integer", "invalid limit")
	}
	return n, nil
}
