// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

package lang

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/laszlokorte/damasc/internal/errs"
)

var (
	exprParser    = participle.MustBuild[Expression](
		participle.Lexer(tokenLexer),
		participle.Unquote("String"),
		participle.Elide("Whitespace"),
		participle.UseLookahead(participle.MaxLookahead),
	)
	patternParser = participle.MustBuild[Pattern](
		participle.Lexer(tokenLexer),
		participle.Unquote("String"),
		participle.Elide("Whitespace"),
		participle.UseLookahead(participle.MaxLookahead),
	)
	programParser = participle.MustBuild[Program](
		participle.Lexer(tokenLexer),
		participle.Unquote("String"),
		participle.Elide("Whitespace"),
		participle.UseLookahead(participle.MaxLookahead),
	)
)

// ParseExpression parses a single expression. Parsing is total: malformed
// input always yields a ParseError, never a panic.
func ParseExpression(src string) (expr *Expression, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errs.ParseError(0, "expression", "internal parser failure")
		}
	}()
	expr, parseErr := exprParser.ParseString("", src)
	if parseErr != nil {
		return nil, wrapParseError(parseErr)
	}
	return expr, nil
}

// ParsePattern parses a single pattern.
func ParsePattern(src string) (pat *Pattern, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errs.ParseError(0, "pattern", "internal parser failure")
		}
	}()
	pat, parseErr := patternParser.ParseString("", src)
	if parseErr != nil {
		return nil, wrapParseError(parseErr)
	}
	return pat, nil
}

// ParseProgram parses a `;`-separated sequence of statements.
func ParseProgram(src string) (prog *Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errs.ParseError(0, "statement", "internal parser failure")
		}
	}()
	prog, parseErr := programParser.ParseString("", src)
	if parseErr != nil {
		return nil, wrapParseError(parseErr)
	}
	return prog, nil
}

func wrapParseError(err error) error {
	if perr, ok := err.(participle.Error); ok {
		pos := perr.Position()
		return errs.ParseError(pos.Offset, "", perr.Message())
	}
	return errs.ParseError(0, "", err.Error())
}

// ---------------------------------------------------------------------
// Template interpolation
//
// The lexer captures a whole `...` literal, backticks included, as one raw
// token; it cannot balance braces itself (a simple regex rule only needs
// to find the closing backtick). Splitting the chunks and recursively
// parsing each ${...} interpolation with ParseExpression happens here, in
// a second pass over the raw text, the same two-pass approach template
// engines in the wider ecosystem use when the host lexer is a plain
// regex-based tokeniser.
// ---------------------------------------------------------------------

// TemplateChunk is either a literal string chunk or a parsed interpolation.
type TemplateChunk struct {
	Literal string
	Expr    *Expression
}

// SplitTemplate parses the raw backtick-delimited token text (including
// the surrounding backticks) into a sequence of chunks.
func SplitTemplate(raw string) ([]TemplateChunk, error) {
	if len(raw) < 2 || raw[0] != '`' || raw[len(raw)-1] != '`' {
		return nil, errs.ParseError(0, "template", "template literal must be backtick-delimited")
	}
	body := raw[1 : len(raw)-1]

	var chunks []TemplateChunk
	var lit strings.Builder
	inString := false
	i := 0
	for i < len(body) {
		c := body[i]
		if inString {
			lit.WriteByte(c)
			if c == '\\' && i+1 < len(body) {
				i++
				lit.WriteByte(body[i])
				i++
				continue
			}
			if c == '"' {
				inString = false
			}
			i++
			continue
		}
		if c == '"' {
			inString = true
			lit.WriteByte(c)
			i++
			continue
		}
		if c == '$' && i+1 < len(body) && body[i+1] == '{' {
			if lit.Len() > 0 {
				chunks = append(chunks, TemplateChunk{Literal: lit.String()})
				lit.Reset()
			}
			depth := 1
			j := i + 2
			inner := false
			for j < len(body) && depth > 0 {
				ch := body[j]
				if inner {
					if ch == '\\' && j+1 < len(body) {
						j += 2
						continue
					}
					if ch == '"' {
						inner = false
					}
					j++
					continue
				}
				switch ch {
				case '"':
					inner = true
				case '{':
					depth++
				case '}':
					depth--
					if depth == 0 {
						continue
					}
				}
				j++
			}
			if depth != 0 {
				return nil, errs.ParseError(i, "}", "unterminated template interpolation")
			}
			exprSrc := body[i+2 : j]
			expr, err := ParseExpression(exprSrc)
			if err != nil {
				return nil, err
			}
			chunks = append(chunks, TemplateChunk{Expr: expr})
			i = j + 1
			continue
		}
		lit.WriteByte(c)
		i++
	}
	if lit.Len() > 0 {
		chunks = append(chunks, TemplateChunk{Literal: lit.String()})
	}
	return chunks, nil
}
