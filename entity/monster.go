// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package entity

import (
	"github.com/osrkit/combat/dice"
	"github.com/osrkit/combat/spells"
)

// xpBand is one row of the monster XP-value table: a hit-dice band's upper
// bound, its base XP, and the bonus XP per special ability.
type xpBand struct {
	MaxHD    int
	Base     int
	PerSpecial int
}

// monsterXPTable mirrors the source's hit-dice-banded XP table. xpForHD
// uses the first band whose MaxHD is at least the monster's (rounded-down)
// hit dice count; the last entry's MaxHD covers every higher count.
var monsterXPTable = []xpBand{
	{1, 10, 3}, {2, 20, 5}, {3, 35, 15}, {4, 75, 50},
	{5, 175, 125}, {6, 275, 225}, {7, 450, 400}, {8, 650, 550},
	{10, 900, 700}, {12, 1100, 800}, {16, 1350, 950},
	{20, 2000, 1150}, {1 << 30, 2500, 2000},
}

func xpForHD(hd, numSpecialAbilities int) int {
	for _, band := range monsterXPTable {
		if hd <= band.MaxHD {
			return band.Base + band.PerSpecial*numSpecialAbilities
		}
	}
	last := monsterXPTable[len(monsterXPTable)-1]
	return last.Base + last.PerSpecial*numSpecialAbilities
}

// MonsterStatBlock is the template a monster party is built from --
// values shared by every monster of that kind in the group.
type MonsterStatBlock struct {
	Name                 string
	ArmorClass           int
	HitDice              int // rounded down, used for THAC0/XP/HD-pool resolution
	HitDieNotation       string
	AttacksPerRound      int
	DamagePerAttackDie   string
	SaveAsClass          string
	SaveAsLevel          int
	NumSpecialAbilities  int
	IsUndead             bool
}

// Monster is one member of a monster party, instantiated from a
// MonsterStatBlock with its own rolled hit points.
type Monster struct {
	StatBlock MonsterStatBlock
	HP        int
	MaxHP     int
	XPValue   int
	Roller    dice.Roller
}

// NewMonster rolls hit points from the stat block's hit die notation and
// computes the monster's XP value.
func NewMonster(block MonsterStatBlock, roller dice.Roller) *Monster {
	hp := rollDie(roller, block.HitDieNotation)
	if hp < 1 {
		hp = 1
	}
	return &Monster{
		StatBlock: block,
		HP:        hp,
		MaxHP:     hp,
		XPValue:   xpForHD(block.HitDice, block.NumSpecialAbilities),
		Roller:    roller,
	}
}

// Name returns the monster's stat block name.
func (m *Monster) Name() string { return m.StatBlock.Name }

// HitPoints returns current hit points.
func (m *Monster) HitPoints() int { return m.HP }

// MaxHitPoints returns rolled maximum hit points.
func (m *Monster) MaxHitPoints() int { return m.MaxHP }

// IsAlive reports whether the monster has positive hit points.
func (m *Monster) IsAlive() bool { return m.HP > 0 }

// ArmorClass returns the monster's armor class.
func (m *Monster) ArmorClass() int { return m.StatBlock.ArmorClass }

// ApplyDamage reduces hit points, floored at zero.
func (m *Monster) ApplyDamage(amount int) {
	m.HP -= amount
	if m.HP < 0 {
		m.HP = 0
	}
}

// Heal restores hit points, capped at rolled max hp.
func (m *Monster) Heal(amount int) {
	m.HP += amount
	if m.HP > m.MaxHP {
		m.HP = m.MaxHP
	}
}

// GetInitiativeRoll rolls 1d6 for initiative.
func (m *Monster) GetInitiativeRoll() int {
	return rollDie(m.Roller, "1d6")
}

// GetAttackRolls returns one 1d20 roll per attack the monster gets this round.
func (m *Monster) GetAttackRolls() []int {
	rolls := make([]int, m.StatBlock.AttacksPerRound)
	for i := range rolls {
		rolls[i] = rollDie(m.Roller, "1d20")
	}
	return rolls
}

// GetDamageRoll rolls the monster's per-attack damage die.
func (m *Monster) GetDamageRoll() int {
	return rollDie(m.Roller, m.StatBlock.DamagePerAttackDie)
}

// GetToHitTargetAC returns the d20 total needed to hit targetAC, per the
// monster's hit-dice THAC0.
func (m *Monster) GetToHitTargetAC(targetAC int) int {
	return toHitTargetAC(monsterThac0(m.StatBlock.HitDice), targetAC)
}

// HitDice returns the monster's hit dice.
func (m *Monster) HitDice() int { return m.StatBlock.HitDice }

// IsUndead reports whether this monster is affected by turn undead.
func (m *Monster) IsUndead() bool { return m.StatBlock.IsUndead }

// SavingThrow returns the d20 total needed to save against attackType,
// per the class and level the monster saves as.
func (m *Monster) SavingThrow(attackType string) int {
	return savingThrowFor(m.StatBlock.SaveAsClass, m.StatBlock.SaveAsLevel, spells.AttackType(attackType))
}
