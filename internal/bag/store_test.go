// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

package bag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laszlokorte/damasc/internal/bag"
	"github.com/laszlokorte/damasc/internal/errs"
)

func TestNewStore_StartsOnInitBag(t *testing.T) {
	s := bag.NewStore()
	assert.Equal(t, bag.DefaultBagName, s.Current())
	_, ok := s.Get(bag.DefaultBagName)
	assert.True(t, ok)
}

func TestStore_SwitchCreatesUnconstrainedBag(t *testing.T) {
	s := bag.NewStore()
	require.NoError(t, s.Switch("inventory"))
	assert.Equal(t, "inventory", s.Current())
	b, ok := s.Get("inventory")
	require.True(t, ok)
	assert.Nil(t, b.Schema())
}

func TestStore_SwitchToExistingBagKeepsSchema(t *testing.T) {
	s := bag.NewStore()
	schema, err := bag.NewSchema(mustPattern(t, "x"), nil, nil)
	require.NoError(t, err)
	_, err = s.Create("items", schema)
	require.NoError(t, err)

	require.NoError(t, s.Switch(bag.DefaultBagName))
	require.NoError(t, s.Switch("items"))
	b, _ := s.Get("items")
	assert.Same(t, schema, b.Schema())
}

func TestStore_CreateRejectsExistingBag(t *testing.T) {
	s := bag.NewStore()
	_, err := s.Create(bag.DefaultBagName, nil)
	assert.True(t, errs.Is(err, errs.KindBagError))
}

func TestStore_ValidatesBagName(t *testing.T) {
	s := bag.NewStore()
	assert.Error(t, s.Switch(""))
	assert.Error(t, s.Switch("Has-Upper-And-Dash"))
	assert.NoError(t, s.Switch("valid_name"))
}
