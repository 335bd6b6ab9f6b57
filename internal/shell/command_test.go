// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCmdBag_DefaultPrintsCurrentName(t *testing.T) {
	s := New()
	out := s.Eval(".bag")
	require.Len(t, out, 1)
	assert.Equal(t, "init", out[0].String())
}

func TestCmdBag_SwitchCreatesIfMissing(t *testing.T) {
	s := New()
	out := s.Eval(".bag inventory")
	require.Len(t, out, 1)
	assert.Equal(t, KindOk, out[0].Kind)

	out = s.Eval(".bag")
	assert.Equal(t, "inventory", out[0].String())
}

func TestCmdBag_ConstrainedSchema(t *testing.T) {
	// scenario 6
	s := New()
	out := s.Eval(`.bag users as {username: _ is String, age: _ is Integer}`)
	require.Len(t, out, 1)
	assert.Equal(t, KindOk, out[0].Kind)

	out = s.Eval(`.insert "Luke"`)
	require.Len(t, out, 1)
	assert.Equal(t, "NO", out[0].String())

	out = s.Eval(`.insert {username: "Hurley", age: 42}`)
	require.Len(t, out, 1)
	assert.Equal(t, "INSERTED 1", out[0].String())
}

func TestCmdInsert_MultipleValues(t *testing.T) {
	s := New()
	out := s.Eval(".insert 1;0")
	require.Len(t, out, 1)
	assert.Equal(t, "INSERTED 2", out[0].String())
}

func TestCmdQuery_DistinctVsRepetition(t *testing.T) {
	// scenario 5
	s := New()
	s.Eval(".insert 1;0")

	out := s.Eval(".query a;b")
	assert.Len(t, out, 2)

	out = s.Eval(".queryx a;b")
	assert.Len(t, out, 4)
}

func TestCmdQuery_DefaultPatternIsDiscard(t *testing.T) {
	s := New()
	s.Eval(".insert 1;2;3")
	out := s.Eval(".query")
	require.Len(t, out, 3)
	for _, o := range out {
		assert.Equal(t, KindQueryRow, o.Kind)
	}
}

func TestCmdQuery_IntoWhereLimit(t *testing.T) {
	s := New()
	s.Eval(".insert 1;2;3")
	out := s.Eval(".query x where x > 1 into x limit 1")
	require.Len(t, out, 1)
	assert.Equal(t, "2", out[0].String())
}

func TestCmdDelete_WithLimit(t *testing.T) {
	s := New()
	s.Eval(".insert 1;1;1")
	out := s.Eval(".delete 1 limit 2")
	require.Len(t, out, 1)
	assert.Equal(t, "DELETED 2", out[0].String())
}

func TestCmdPop_MissingValueReturnsZero(t *testing.T) {
	s := New()
	out := s.Eval(".pop 99")
	require.Len(t, out, 1)
	assert.Equal(t, "POPPED 0", out[0].String())
}

func TestCmdPop_RemovesOneOccurrence(t *testing.T) {
	s := New()
	s.Eval(".insert 5;5")
	out := s.Eval(".pop 5")
	require.Len(t, out, 1)
	assert.Equal(t, "POPPED 1", out[0].String())
}

func TestCmdDumpLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := New(WithDir(dir))
	s.Eval(".insert 1;2;3")

	out := s.Eval(".dump snapshot")
	require.Len(t, out, 1)
	assert.Equal(t, KindOk, out[0].Kind)

	s2 := New(WithDir(dir))
	out = s2.Eval(".load snapshot")
	require.Len(t, out, 1)
	assert.Equal(t, "LOADED 3", out[0].String())
}

func TestCmdInspect_DescribesExpression(t *testing.T) {
	s := New()
	out := s.Eval(".inspect 1+2")
	require.Len(t, out, 1)
	assert.Equal(t, "Binary(+, Literal(1), Literal(2))", out[0].String())
}

func TestCmdPattern_DescribesPattern(t *testing.T) {
	s := New()
	out := s.Eval(".pattern [a, ...rest]")
	require.Len(t, out, 1)
	assert.Equal(t, "Array([Single(Capture(a))], Collect(rest))", out[0].String())
}

func TestCmdClear_ReturnsOk(t *testing.T) {
	s := New()
	out := s.Eval(".clear")
	require.Len(t, out, 1)
	assert.Equal(t, KindOk, out[0].Kind)
}
