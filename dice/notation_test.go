// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osrkit/combat/dice"
)

func TestParseNotation_Simple(t *testing.T) {
	pool, err := dice.ParseNotation("2d6+3")
	require.NoError(t, err)
	assert.Equal(t, "2d6+3", pool.Notation())
	assert.Equal(t, 5, pool.Min())
	assert.Equal(t, 15, pool.Max())
}

func TestParseNotation_NoModifier(t *testing.T) {
	pool, err := dice.ParseNotation("1d20")
	require.NoError(t, err)
	assert.Equal(t, "d20", pool.Notation())
	assert.Equal(t, 1, pool.Min())
	assert.Equal(t, 20, pool.Max())
}

func TestParseNotation_NegativeModifier(t *testing.T) {
	pool, err := dice.ParseNotation("3d8-2")
	require.NoError(t, err)
	assert.Equal(t, 1, pool.Min())
	assert.Equal(t, 22, pool.Max())
}

func TestParseNotation_Invalid(t *testing.T) {
	_, err := dice.ParseNotation("not dice")
	assert.ErrorIs(t, err, dice.ErrInvalidNotation)
}

func TestParseNotation_Empty(t *testing.T) {
	_, err := dice.ParseNotation("")
	assert.ErrorIs(t, err, dice.ErrInvalidNotation)
}

func TestPool_Roll_Fixed(t *testing.T) {
	pool, err := dice.ParseNotation("2d6+3")
	require.NoError(t, err)

	roller := dice.NewFixedRoller(4, 2)
	result := pool.Roll(roller)
	require.NoError(t, result.Error())
	assert.Equal(t, 9, result.Total())
	assert.Equal(t, 4, result.First())
}
