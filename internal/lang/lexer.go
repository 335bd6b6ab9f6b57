// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

package lang

import "github.com/alecthomas/participle/v2/lexer"

// tokenLexer tokenises expressions, patterns and statements. Multi-character
// operators are listed before the generic Punct rule so the simple lexer
// (which tries rules in order at each position) prefers the longer match,
// the same convention the teacher's dslLexer uses for its own operators.
var tokenLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Template", Pattern: "`[^`]*`"},
	{Name: "String", Pattern: `"([^"\\]|\\.)*"`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "OpAnd", Pattern: `&&`},
	{Name: "OpOr", Pattern: `\|\|`},
	{Name: "OpEq", Pattern: `==`},
	{Name: "OpNe", Pattern: `!=`},
	{Name: "OpLe", Pattern: `<=`},
	{Name: "OpGe", Pattern: `>=`},
	{Name: "Ellipsis", Pattern: `\.\.\.`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[{}\[\]()\,:;.=!<>+\-*/^]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})
