// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package entity

import "github.com/osrkit/combat/combat"

// Party is the adventuring party an encounter's PC side is built from.
type Party struct {
	Members []*PlayerCharacter
}

// NewParty builds a party from its members.
func NewParty(members ...*PlayerCharacter) *Party {
	return &Party{Members: members}
}

// Seeds implements combat.PartySource.
func (p *Party) Seeds() []combat.CombatantSeed {
	seeds := make([]combat.CombatantSeed, len(p.Members))
	for i, m := range p.Members {
		seeds[i] = combat.CombatantSeed{ID: combat.PCID(m.NameValue), Side: combat.SidePC, Entity: m}
	}
	return seeds
}

// AwardXP splits amount evenly (integer division, remainder dropped)
// across every party member still alive when victory is declared. This
// is the one treasure/XP hook the surrounding application calls after
// VictoryDetermined{PARTY_VICTORY} -- full leveling and treasure
// allocation live outside this package.
func (p *Party) AwardXP(amount int) map[string]int {
	var living []*PlayerCharacter
	for _, m := range p.Members {
		if m.IsAlive() {
			living = append(living, m)
		}
	}
	award := map[string]int{}
	if len(living) == 0 {
		return award
	}
	share := amount / len(living)
	for _, m := range living {
		award[m.NameValue] = share
	}
	return award
}

// MonsterParty is the opposition an encounter's monster side is built
// from: every monster in the group, all sharing one morale score.
type MonsterParty struct {
	Members []*Monster
	Morale  int
}

// NewMonsterParty builds a monster party from its members and morale score.
func NewMonsterParty(morale int, members ...*Monster) *MonsterParty {
	return &MonsterParty{Members: members, Morale: morale}
}

// Seeds implements combat.PartySource. IDs are assigned
// "monster:<stat block name>:<zero-based index>", matching members in
// encounter order.
func (p *MonsterParty) Seeds() []combat.CombatantSeed {
	seeds := make([]combat.CombatantSeed, len(p.Members))
	for i, m := range p.Members {
		seeds[i] = combat.CombatantSeed{
			ID:     combat.MonsterID(m.StatBlock.Name, i),
			Side:   combat.SideMonster,
			Entity: m,
		}
	}
	return seeds
}

// MoraleScore implements combat.MonsterPartySource.
func (p *MonsterParty) MoraleScore() int { return p.Morale }

// TotalXP sums the XP value of every member, for the surrounding
// application to pass into Party.AwardXP after a party victory.
func (p *MonsterParty) TotalXP() int {
	total := 0
	for _, m := range p.Members {
		total += m.XPValue
	}
	return total
}
