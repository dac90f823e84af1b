// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osrkit/combat/dice"
)

func TestNewMoraleTrackerScoreTwelveIsImmune(t *testing.T) {
	m := NewMoraleTracker(12)
	assert.True(t, m.IsImmune)
}

func TestNewMoraleTrackerBelowTwelveNotImmune(t *testing.T) {
	m := NewMoraleTracker(7)
	assert.False(t, m.IsImmune)
}

func TestMoraleTrackerRecordPassGrantsImmunityAtTwo(t *testing.T) {
	m := NewMoraleTracker(7)

	assert.False(t, m.RecordPass())
	assert.Equal(t, 1, m.ChecksPassed)
	assert.False(t, m.IsImmune)

	assert.True(t, m.RecordPass())
	assert.Equal(t, 2, m.ChecksPassed)
	assert.True(t, m.IsImmune)
}

func TestMoraleTrackerRecordPassStaysImmune(t *testing.T) {
	m := NewMoraleTracker(7)
	m.RecordPass()
	m.RecordPass()
	assert.True(t, m.RecordPass())
}

// newMoraleEngine builds a bare one-PC-vs-one-monster engine whose morale
// check is ready to fire on the next handleCheckMorale call, with roller
// pinned to a known 2d6 result.
func newMoraleEngine(t *testing.T, moraleScore int, d1, d2 int) *CombatEngine {
	t.Helper()
	pc := &fakeEntity{name: "Aldric", hp: 10, maxHP: 10}
	goblin := &fakeEntity{name: "goblin", hp: 6, maxHP: 6}
	party := fakeParty{seeds: []CombatantSeed{{ID: "pc:aldric", Side: SidePC, Entity: pc}}}
	monsters := fakeMonsterParty{
		seeds:  []CombatantSeed{{ID: "monster:goblin:0", Side: SideMonster, Entity: goblin}},
		morale: moraleScore,
	}
	e := NewCombatEngine(party, monsters, WithRoller(dice.NewFixedRoller(d1, d2)))
	e.newMonsterDeath = true
	return e
}

// Roll 6 (3+3) against morale 10: a failing-check-inverted bug would score
// this as Passed=false. Per the B/X rule (roll <= morale passes), 6 <= 10
// must pass.
func TestHandleCheckMoraleRollUnderScorePasses(t *testing.T) {
	e := newMoraleEngine(t, 10, 3, 3)
	events := e.handleCheckMorale()
	require.Len(t, events, 1)
	checked, ok := events[0].(MoraleChecked)
	require.True(t, ok)
	assert.Equal(t, 6, checked.Roll)
	assert.True(t, checked.Passed)
}

// Roll 12 (6+6) against morale 6: 12 <= 6 is false, so this must fail and
// queue a flee intent for every living monster.
func TestHandleCheckMoraleRollOverScoreFails(t *testing.T) {
	e := newMoraleEngine(t, 6, 6, 6)
	events := e.handleCheckMorale()
	require.Len(t, events, 1)
	checked, ok := events[0].(MoraleChecked)
	require.True(t, ok)
	assert.Equal(t, 12, checked.Roll)
	assert.False(t, checked.Passed)
}

// Roll equal to morale score passes -- the check is roll <= score, not
// strictly less than.
func TestHandleCheckMoraleRollEqualsScorePasses(t *testing.T) {
	e := newMoraleEngine(t, 6, 3, 3)
	events := e.handleCheckMorale()
	require.Len(t, events, 1)
	checked, ok := events[0].(MoraleChecked)
	require.True(t, ok)
	assert.Equal(t, 6, checked.Roll)
	assert.True(t, checked.Passed)
}
