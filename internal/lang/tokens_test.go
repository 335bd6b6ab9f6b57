// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

package lang_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laszlokorte/damasc/internal/lang"
)

func TestTokenize_ElidesWhitespace(t *testing.T) {
	toks, err := lang.Tokenize("x  +   1")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, "Ident", toks[0].Type)
	assert.Equal(t, "x", toks[0].Value)
	assert.Equal(t, "Punct", toks[1].Type)
	assert.Equal(t, "+", toks[1].Value)
	assert.Equal(t, "Int", toks[2].Type)
	assert.Equal(t, "1", toks[2].Value)
}

func TestTokenize_StringRetainsDelimiters(t *testing.T) {
	toks, err := lang.Tokenize(`"hello"`)
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, `"hello"`, toks[0].Value)
}

func TestTokenize_TemplateIsOneToken(t *testing.T) {
	toks, err := lang.Tokenize("`a ${b}`")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, "Template", toks[0].Type)
	assert.Equal(t, "`a ${b}`", toks[0].Value)
}

func TestTokenize_OffsetsAreByteOffsets(t *testing.T) {
	toks, err := lang.Tokenize("a b")
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, 0, toks[0].Offset)
	assert.Equal(t, 2, toks[1].Offset)
}
