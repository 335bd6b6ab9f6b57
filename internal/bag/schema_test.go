// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

package bag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laszlokorte/damasc/internal/bag"
	"github.com/laszlokorte/damasc/internal/errs"
	"github.com/laszlokorte/damasc/internal/value"
)

func TestNewSchema_RequiresPattern(t *testing.T) {
	_, err := bag.NewSchema(nil, nil, nil)
	assert.True(t, errs.Is(err, errs.KindBagError))
}

func TestNewSchema_RejectsNegativeLimit(t *testing.T) {
	neg := -1
	_, err := bag.NewSchema(mustPattern(t, "x"), nil, &neg)
	assert.True(t, errs.Is(err, errs.KindBagError))
}

func TestSchema_ValidateUsesDiscardedCaptures(t *testing.T) {
	schema, err := bag.NewSchema(mustPattern(t, "x is Integer"), mustExpr(t, "x > 0"), nil)
	require.NoError(t, err)

	assert.NoError(t, schema.Validate(value.Int(1)))
	assert.Error(t, schema.Validate(value.Int(-1)))
	assert.Error(t, schema.Validate(value.Str("nope")))
}

func TestSchema_ValidateRejectsNonBooleanPredicate(t *testing.T) {
	schema, err := bag.NewSchema(mustPattern(t, "x"), mustExpr(t, "x"), nil)
	require.NoError(t, err)

	err = schema.Validate(value.Int(1))
	assert.True(t, errs.Is(err, errs.KindTypeMismatch))
}

func TestSchema_Accessors(t *testing.T) {
	limit := 3
	pat := mustPattern(t, "x")
	pred := mustExpr(t, "x > 0")
	schema, err := bag.NewSchema(pat, pred, &limit)
	require.NoError(t, err)

	assert.Same(t, pat, schema.Pattern())
	assert.Same(t, pred, schema.Predicate())
	require.NotNil(t, schema.Limit())
	assert.Equal(t, 3, *schema.Limit())
}
