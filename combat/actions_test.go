// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestContext builds a context with the attacker on the monster side
// and the defender on the PC side, for tests of monster-attacker
// behavior (no crit/fumble).
func newTestContext(t *testing.T, actor, target *fakeEntity) *Context {
	t.Helper()
	ctx := NewContext(
		[]CombatantSeed{{ID: "pc:defender", Side: SidePC, Entity: target}},
		[]CombatantSeed{{ID: "monster:attacker:0", Side: SideMonster, Entity: actor}},
		7,
	)
	ctx.CurrentCombatantID = "monster:attacker:0"
	return ctx
}

// newPCAttackContext builds a context with the attacker on the PC side
// and the defender on the monster side, for tests of PC-attacker
// behavior (crit/fumble apply).
func newPCAttackContext(t *testing.T, actor, target *fakeEntity) *Context {
	t.Helper()
	ctx := NewContext(
		[]CombatantSeed{{ID: "pc:attacker", Side: SidePC, Entity: actor}},
		[]CombatantSeed{{ID: "monster:defender:0", Side: SideMonster, Entity: target}},
		7,
	)
	ctx.CurrentCombatantID = "pc:attacker"
	return ctx
}

func TestMeleeAttackMultiAttackAutoMissAfterLethal(t *testing.T) {
	attacker := &fakeEntity{name: "goblin", hp: 6, maxHP: 6, ac: 6, hitDice: 1,
		attackRolls: []int{15, 15, 15}, damageRoll: 1, toHitNeeded: 1}
	defender := &fakeEntity{name: "hero", hp: 2, maxHP: 2, ac: 9}
	ctx := newTestContext(t, attacker, defender)

	action := MeleeAttackAction{ActorID: "monster:attacker:0", TargetID: "pc:defender"}
	require.Empty(t, action.Validate(ctx))

	events, effects := action.Execute(ctx, nil)

	require.Len(t, events, 3, "exactly 3 AttackRolled events for 3 attacks")
	first, ok := events[0].(AttackRolled)
	require.True(t, ok)
	assert.True(t, first.Hit)

	second, ok := events[1].(AttackRolled)
	require.True(t, ok)
	assert.True(t, second.Hit, "second attack's damage brings the defender to exactly 0")

	third, ok := events[2].(AttackRolled)
	require.True(t, ok)
	assert.False(t, third.Hit, "third attack auto-misses once the defender is already dead in simulation")

	assert.Len(t, effects, 2, "only the first two hits produce damage effects")
}

func TestMeleeAttackCriticalAppliesHalfAgainDamage(t *testing.T) {
	attacker := &fakeEntity{name: "fighter", hp: 10, maxHP: 10, attackRolls: []int{20}, damageRoll: 8, toHitNeeded: 15}
	defender := &fakeEntity{name: "ogre", hp: 30, maxHP: 30, ac: 4}
	ctx := newPCAttackContext(t, attacker, defender)

	action := MeleeAttackAction{ActorID: "pc:attacker", TargetID: "monster:defender:0"}
	_, effects := action.Execute(ctx, nil)

	require.Len(t, effects, 1)
	dmg, ok := effects[0].(DamageEffect)
	require.True(t, ok)
	assert.Equal(t, ceilHalfAgain(8), dmg.Amount)
}

func TestMeleeAttackFumbleAlwaysMisses(t *testing.T) {
	attacker := &fakeEntity{name: "hero", hp: 10, maxHP: 10, attackRolls: []int{1}, damageRoll: 6, toHitNeeded: 2}
	defender := &fakeEntity{name: "goblin", hp: 6, maxHP: 6, ac: 9}
	ctx := newPCAttackContext(t, attacker, defender)

	action := MeleeAttackAction{ActorID: "pc:attacker", TargetID: "monster:defender:0"}
	events, effects := action.Execute(ctx, nil)

	require.Len(t, events, 1)
	ev := events[0].(AttackRolled)
	assert.False(t, ev.Hit)
	assert.True(t, ev.Fumble)
	assert.Empty(t, effects)
}

// TestMonsterMultiAttackHasNoCritOrFumble locks in the literal spec-2
// scenario: a monster rolling all natural 20s against a 1-HP defender.
// Unlike a PC attacker, the monster gets no critical damage scaling and
// no fumble-on-1 special case -- raw 20 is evaluated as a plain hit, so
// the first hit's plain damage (not half-again) is what kills the
// defender, and the remaining attacks auto-miss once that happens.
func TestMonsterMultiAttackHasNoCritOrFumble(t *testing.T) {
	attacker := &fakeEntity{name: "goblin", hp: 6, maxHP: 6,
		attackRolls: []int{20, 20, 20}, damageRoll: 6, toHitNeeded: 1}
	defender := &fakeEntity{name: "hero", hp: 1, maxHP: 1, ac: 9}
	ctx := newTestContext(t, attacker, defender)

	action := MeleeAttackAction{ActorID: "monster:attacker:0", TargetID: "pc:defender"}
	events, effects := action.Execute(ctx, nil)

	require.Len(t, events, 3)
	for i, ev := range events {
		attack, ok := ev.(AttackRolled)
		require.True(t, ok)
		assert.False(t, attack.Critical, "monster attack %d should never be flagged critical", i)
	}
	first := events[0].(AttackRolled)
	assert.True(t, first.Hit)

	require.Len(t, effects, 1, "only the first, lethal hit produces a damage effect")
	dmg, ok := effects[0].(DamageEffect)
	require.True(t, ok)
	assert.Equal(t, 6, dmg.Amount, "monster damage is never scaled by the PC-only critical rule")
}

func TestValidateActorAndTargetRejectsNonCurrentCombatant(t *testing.T) {
	attacker := &fakeEntity{name: "goblin", hp: 6, maxHP: 6}
	defender := &fakeEntity{name: "hero", hp: 10, maxHP: 10}
	ctx := newTestContext(t, attacker, defender)
	ctx.CurrentCombatantID = "pc:defender"

	action := MeleeAttackAction{ActorID: "monster:attacker:0", TargetID: "pc:defender"}
	rejections := action.Validate(ctx)
	require.NotEmpty(t, rejections)
	assert.Equal(t, NotCurrentCombatant, rejections[0].Code)
}

func TestValidateActorAndTargetRejectsDeadActor(t *testing.T) {
	attacker := &fakeEntity{name: "goblin", hp: 0, maxHP: 6}
	defender := &fakeEntity{name: "hero", hp: 10, maxHP: 10}
	ctx := newTestContext(t, attacker, defender)

	action := MeleeAttackAction{ActorID: "monster:attacker:0", TargetID: "pc:defender"}
	rejections := action.Validate(ctx)
	require.NotEmpty(t, rejections)
	found := false
	for _, r := range rejections {
		if r.Code == ActorDead {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCeilHalfAgain(t *testing.T) {
	assert.Equal(t, 0, ceilHalfAgain(0))
	assert.Equal(t, 0, ceilHalfAgain(-3))
	assert.Equal(t, 2, ceilHalfAgain(1))
	assert.Equal(t, 3, ceilHalfAgain(2))
	assert.Equal(t, 12, ceilHalfAgain(8))
}

func TestFleeActionProducesFleeEffect(t *testing.T) {
	attacker := &fakeEntity{name: "goblin", hp: 6, maxHP: 6}
	ctx := NewContext(nil, []CombatantSeed{{ID: "monster:attacker:0", Side: SideMonster, Entity: attacker}}, 7)

	action := FleeAction{ActorID: "monster:attacker:0"}
	require.Empty(t, action.Validate(ctx))

	_, effects := action.Execute(ctx, nil)
	require.Len(t, effects, 1)
	_, ok := effects[0].(FleeEffect)
	assert.True(t, ok)
}
