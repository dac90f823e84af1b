// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func choiceKeys(choices []ActionChoice) []string {
	var keys []string
	for _, c := range choices {
		keys = append(keys, c.UIKey)
	}
	return keys
}

func TestBuildChoicesPCOffersAttackAndFlee(t *testing.T) {
	pc := &fakeEntity{name: "Aldric", hp: 10, maxHP: 10}
	goblin := &fakeEntity{name: "goblin", hp: 6, maxHP: 6}
	ctx := NewContext(
		[]CombatantSeed{{ID: "pc:aldric", Side: SidePC, Entity: pc}},
		[]CombatantSeed{{ID: "monster:goblin:0", Side: SideMonster, Entity: goblin}},
		7,
	)

	choices := BuildChoices(ctx, "pc:aldric", nil)
	assert.Equal(t, []string{"attack_target", "flee"}, choiceKeys(choices))
}

func TestBuildChoicesMonsterOffersOnlyAttack(t *testing.T) {
	pc := &fakeEntity{name: "Aldric", hp: 10, maxHP: 10}
	goblin := &fakeEntity{name: "goblin", hp: 6, maxHP: 6}
	ctx := NewContext(
		[]CombatantSeed{{ID: "pc:aldric", Side: SidePC, Entity: pc}},
		[]CombatantSeed{{ID: "monster:goblin:0", Side: SideMonster, Entity: goblin}},
		7,
	)

	choices := BuildChoices(ctx, "monster:goblin:0", nil)
	assert.Equal(t, []string{"attack_target"}, choiceKeys(choices),
		"monsters never see a flee choice in choice generation; flight only happens via a forced morale intent")
}

func TestBuildChoicesDeadCombatantGetsNone(t *testing.T) {
	pc := &fakeEntity{name: "Aldric", hp: 0, maxHP: 10}
	ctx := NewContext(
		[]CombatantSeed{{ID: "pc:aldric", Side: SidePC, Entity: pc}},
		nil,
		7,
	)
	assert.Nil(t, BuildChoices(ctx, "pc:aldric", nil))
}

func TestBuildChoicesNoEnemiesStillOffersFlee(t *testing.T) {
	pc := &fakeEntity{name: "Aldric", hp: 10, maxHP: 10}
	ctx := NewContext(
		[]CombatantSeed{{ID: "pc:aldric", Side: SidePC, Entity: pc}},
		nil,
		7,
	)
	choices := BuildChoices(ctx, "pc:aldric", nil)
	assert.Len(t, choices, 1)
	assert.Equal(t, "flee", choices[0].UIKey)
}

func TestKVSortsByKey(t *testing.T) {
	pairs := kv("target_id", "x", "item", "torch")
	assert.Equal(t, []KV{{Key: "item", Value: "torch"}, {Key: "target_id", Value: "x"}}, pairs)
}
