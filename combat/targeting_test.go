// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osrkit/combat/dice"
)

func TestResolveHDPoolGreedyAscending(t *testing.T) {
	candidates := []HDCandidate{
		{ID: "c", HD: 4},
		{ID: "a", HD: 1},
		{ID: "b", HD: 2},
	}
	got := ResolveHDPool(candidates, 3)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestResolveHDPoolZeroBudget(t *testing.T) {
	candidates := []HDCandidate{{ID: "a", HD: 1}}
	assert.Nil(t, ResolveHDPool(candidates, 0))
}

func TestResolveHDPoolZeroHDCountsAsOne(t *testing.T) {
	candidates := []HDCandidate{{ID: "a", HD: 0}, {ID: "b", HD: 0}}
	got := ResolveHDPool(candidates, 1)
	assert.Equal(t, []string{"a"}, got)
}

func TestResolveHDPoolBudgetCoversAll(t *testing.T) {
	candidates := []HDCandidate{{ID: "a", HD: 1}, {ID: "b", HD: 2}}
	got := ResolveHDPool(candidates, 100)
	assert.ElementsMatch(t, []string{"a", "b"}, got)
}

func TestResolveRandomGroupCountExceedsCandidates(t *testing.T) {
	roller := dice.NewFixedRoller(1)
	candidates := []string{"x", "y"}
	got := ResolveRandomGroup(roller, candidates, 5)
	assert.Equal(t, candidates, got)
}

func TestResolveRandomGroupPicksWithoutReplacement(t *testing.T) {
	// Roller always returns the highest remaining index, so we deplete
	// the pool from the end each draw.
	roller := dice.NewFixedRoller(3, 2, 1)
	candidates := []string{"a", "b", "c"}
	got := ResolveRandomGroup(roller, candidates, 2)
	assert.Len(t, got, 2)
	seen := map[string]bool{}
	for _, id := range got {
		assert.False(t, seen[id], "candidate %q picked twice", id)
		seen[id] = true
	}
}

func TestResolveRandomGroupZeroCount(t *testing.T) {
	roller := dice.NewFixedRoller(1)
	assert.Nil(t, ResolveRandomGroup(roller, []string{"a"}, 0))
}

func TestGetCombatantHDFloorsAtOne(t *testing.T) {
	e := &fakeEntity{hitDice: 0}
	assert.Equal(t, 1, GetCombatantHD(e))
}

// fakeEntity is a minimal Entity stub for unit tests that don't need a
// full character or monster built up, with just enough configurable
// behavior to drive targeting, morale, condition, and action-resolution
// tests without a real dice roller.
type fakeEntity struct {
	name          string
	hp, maxHP     int
	ac            int
	hitDice       int
	undead        bool
	attackRolls   []int
	damageRoll    int
	toHitNeeded   int
	savingThrow   int
}

func (f *fakeEntity) Name() string           { return f.name }
func (f *fakeEntity) HitPoints() int         { return f.hp }
func (f *fakeEntity) MaxHitPoints() int      { return f.maxHP }
func (f *fakeEntity) IsAlive() bool          { return f.hp > 0 }
func (f *fakeEntity) ArmorClass() int        { return f.ac }
func (f *fakeEntity) ApplyDamage(amount int) {
	f.hp -= amount
	if f.hp < 0 {
		f.hp = 0
	}
}
func (f *fakeEntity) Heal(amount int)        { f.hp += amount }
func (f *fakeEntity) GetInitiativeRoll() int { return 1 }
func (f *fakeEntity) GetAttackRolls() []int {
	if f.attackRolls != nil {
		return f.attackRolls
	}
	return []int{10}
}
func (f *fakeEntity) GetDamageRoll() int { return f.damageRoll }
func (f *fakeEntity) GetToHitTargetAC(ac int) int {
	if f.toHitNeeded != 0 {
		return f.toHitNeeded
	}
	return 10
}
func (f *fakeEntity) HitDice() int                      { return f.hitDice }
func (f *fakeEntity) IsUndead() bool                    { return f.undead }
func (f *fakeEntity) SavingThrow(attackType string) int { return f.savingThrow }
