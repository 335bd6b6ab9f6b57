// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

package lang_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laszlokorte/damasc/internal/lang"
)

func TestParseExpression_Precedence(t *testing.T) {
	expr, err := lang.ParseExpression("1 + 2 * 3")
	require.NoError(t, err)
	assert.Equal(t, "Binary(+, Literal(1), Binary(*, Literal(2), Literal(3)))", lang.DescribeExpression(expr))
}

func TestParseExpression_PowerIsRightAssociative(t *testing.T) {
	expr, err := lang.ParseExpression("2 ^ 3 ^ 2")
	require.NoError(t, err)
	assert.Equal(t, "Binary(^, Literal(2), Binary(^, Literal(3), Literal(2)))", lang.DescribeExpression(expr))
}

func TestParseExpression_MemberAndDot(t *testing.T) {
	expr, err := lang.ParseExpression(`x.y[0]`)
	require.NoError(t, err)
	assert.Equal(t, `Member(Dot(Identifier(x), y), Literal(0))`, lang.DescribeExpression(expr))
}

func TestParseExpression_CallAndTypeOf(t *testing.T) {
	expr, err := lang.ParseExpression(`type(length(x))`)
	require.NoError(t, err)
	assert.Equal(t, "TypeOf(Call(length, [Identifier(x)]))", lang.DescribeExpression(expr))
}

func TestParseExpression_IsAndAs(t *testing.T) {
	expr, err := lang.ParseExpression(`x is Integer`)
	require.NoError(t, err)
	assert.Equal(t, "IsType(Identifier(x), TypeLiteral(Integer))", lang.DescribeExpression(expr))

	expr, err = lang.ParseExpression(`x as String`)
	require.NoError(t, err)
	assert.Equal(t, "Cast(Identifier(x), String)", lang.DescribeExpression(expr))
}

func TestParseExpression_ArrayAndObjectLiterals(t *testing.T) {
	expr, err := lang.ParseExpression(`[1, 2]`)
	require.NoError(t, err)
	assert.NotNil(t, expr.Or.Ops[0].Ops[0].Left.Left.Left.Left.Operand.Primary.ArrayLit)

	_, err = lang.ParseExpression(`{a: 1, b: 2}`)
	require.NoError(t, err)
}

func TestParseExpression_InvalidInputIsParseError(t *testing.T) {
	_, err := lang.ParseExpression(`1 +`)
	assert.Error(t, err)
}

func TestParsePattern_Discard(t *testing.T) {
	pat, err := lang.ParsePattern("_")
	require.NoError(t, err)
	assert.Equal(t, "Discard", lang.DescribePattern(pat))
}

func TestParsePattern_TypedCapture(t *testing.T) {
	pat, err := lang.ParsePattern("x is Integer")
	require.NoError(t, err)
	assert.Equal(t, "TypedCapture(x, Integer)", lang.DescribePattern(pat))
}

func TestParsePattern_ArrayWithRest(t *testing.T) {
	pat, err := lang.ParsePattern("[a, ...rest]")
	require.NoError(t, err)
	assert.Equal(t, "Array([Single(Capture(a))], Collect(rest))", lang.DescribePattern(pat))
}

func TestParsePattern_ObjectWithOpenRest(t *testing.T) {
	pat, err := lang.ParsePattern("{x, ...}")
	require.NoError(t, err)
	assert.Equal(t, "Object([Single(Capture(x))], Discard)", lang.DescribePattern(pat))
}

func TestParseProgram_LetAndAssignAndExpr(t *testing.T) {
	prog, err := lang.ParseProgram(`let x = 1; x = 2; x`)
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 3)
	assert.NotNil(t, prog.Stmts[0].Let)
	assert.NotNil(t, prog.Stmts[1].Assign)
	assert.NotNil(t, prog.Stmts[2].Expr)
}

func TestSplitTemplate_LiteralAndInterpolation(t *testing.T) {
	chunks, err := lang.SplitTemplate("`hello ${name}!`")
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, "hello ", chunks[0].Literal)
	assert.NotNil(t, chunks[1].Expr)
	assert.Equal(t, "!", chunks[2].Literal)
}

func TestSplitTemplate_RequiresBackticks(t *testing.T) {
	_, err := lang.SplitTemplate(`"not a template"`)
	assert.Error(t, err)
}
