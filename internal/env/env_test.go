// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

package env_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/laszlokorte/damasc/internal/env"
	"github.com/laszlokorte/damasc/internal/value"
)

func TestLookup_Empty(t *testing.T) {
	_, ok := env.Empty.Lookup("x")
	assert.False(t, ok)
}

func TestExtend_ShadowsInnermostFirst(t *testing.T) {
	e := env.Empty.Extend("x", value.Int(1)).Extend("x", value.Int(2))
	v, ok := e.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, int64(2), v.Int())
}

func TestExtend_DoesNotMutateReceiver(t *testing.T) {
	base := env.Empty.Extend("x", value.Int(1))
	_ = base.Extend("x", value.Int(2))
	v, ok := base.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, int64(1), v.Int())
}

func TestSince_CollectsOnlyNewBindings(t *testing.T) {
	base := env.Empty.Extend("x", value.Int(1))
	extended := base.Extend("y", value.Int(2)).Extend("z", value.Int(3))
	bindings := extended.Since(base)
	assert.Equal(t, []env.Binding{
		{Name: "z", Value: value.Int(3)},
		{Name: "y", Value: value.Int(2)},
	}, bindings)
}

func TestSince_NoNewBindingsIsEmpty(t *testing.T) {
	base := env.Empty.Extend("x", value.Int(1))
	assert.Empty(t, base.Since(base))
}

func TestNames_NoDuplicates(t *testing.T) {
	e := env.Empty.Extend("x", value.Int(1)).Extend("y", value.Int(2)).Extend("x", value.Int(3))
	assert.Equal(t, []string{"x", "y"}, e.Names())
}
