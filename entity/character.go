// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package entity implements the player-character and monster types that
// satisfy the combat package's Entity capability set, plus the party
// aggregates the engine registers a combatant from. Ability scores,
// equipment, and class progression beyond what combat needs to resolve
// a round stay out of scope -- callers build a PlayerCharacter fresh
// from whatever character sheet system they already have.
package entity

import (
	"github.com/osrkit/combat/dice"
	"github.com/osrkit/combat/spells"
)

// PlayerCharacter is the engine-facing view of a party member: just
// enough state to resolve attacks, spells, saves, and turn undead.
type PlayerCharacter struct {
	NameValue  string
	Class      string // "fighter", "cleric", "magic_user", "thief", "elf", "dwarf", "halfling"
	Level      int
	HP         int
	MaxHP      int
	BaseAC     int // lower is better, per B/X convention
	Roller     dice.Roller
	MeleeDie   string // e.g. "1d8"

	// Ranged is nil for characters without an equipped ranged weapon.
	Ranged *RangedWeapon

	// Spells is nil for non-casters.
	Spells *SpellBook

	// Items are the names of throwable items this character carries.
	Items []string
}

// RangedWeapon describes a character's equipped ranged weapon.
type RangedWeapon struct {
	AttackDie string // to-hit bonus baked into notation, e.g. "1d20+1"
	DamageDie string
}

// SpellBook tracks known spells and remaining slots per level.
type SpellBook struct {
	Known      []string
	MaxSlots   map[int]int
	UsedSlots  map[int]int
}

// NewSpellBook builds a book with every slot unused.
func NewSpellBook(known []string, maxSlots map[int]int) *SpellBook {
	return &SpellBook{Known: known, MaxSlots: maxSlots, UsedSlots: map[int]int{}}
}

func (s *SpellBook) remaining(level int) int {
	return s.MaxSlots[level] - s.UsedSlots[level]
}

func (s *SpellBook) use(level int) bool {
	if s.remaining(level) <= 0 {
		return false
	}
	s.UsedSlots[level]++
	return true
}

func rollDie(roller dice.Roller, notation string) int {
	pool, err := dice.ParseNotation(notation)
	if err != nil {
		return 0
	}
	result := pool.Roll(roller)
	if result.Error() != nil {
		return 0
	}
	return result.Total()
}

// Name returns the character's display name.
func (c *PlayerCharacter) Name() string { return c.NameValue }

// HitPoints returns current hit points.
func (c *PlayerCharacter) HitPoints() int { return c.HP }

// MaxHitPoints returns maximum hit points.
func (c *PlayerCharacter) MaxHitPoints() int { return c.MaxHP }

// IsAlive reports whether the character has positive hit points.
func (c *PlayerCharacter) IsAlive() bool { return c.HP > 0 }

// ArmorClass returns the character's armor class.
func (c *PlayerCharacter) ArmorClass() int { return c.BaseAC }

// ApplyDamage reduces hit points, floored at zero.
func (c *PlayerCharacter) ApplyDamage(amount int) {
	c.HP -= amount
	if c.HP < 0 {
		c.HP = 0
	}
}

// Heal restores hit points, capped at max hp.
func (c *PlayerCharacter) Heal(amount int) {
	c.HP += amount
	if c.HP > c.MaxHP {
		c.HP = c.MaxHP
	}
}

// GetInitiativeRoll rolls 1d6 for initiative.
func (c *PlayerCharacter) GetInitiativeRoll() int {
	return rollDie(c.Roller, "1d6")
}

// GetAttackRolls returns exactly one 1d20 roll; PCs make a single melee
// attack per round.
func (c *PlayerCharacter) GetAttackRolls() []int {
	return []int{rollDie(c.Roller, "1d20")}
}

// GetDamageRoll rolls the character's melee weapon damage die.
func (c *PlayerCharacter) GetDamageRoll() int {
	return rollDie(c.Roller, c.MeleeDie)
}

// GetToHitTargetAC returns the d20 total needed to hit targetAC, per
// this character's class/level THAC0.
func (c *PlayerCharacter) GetToHitTargetAC(targetAC int) int {
	return toHitTargetAC(thac0For(c.Class, c.Level), targetAC)
}

// HitDice returns the character's class level, standing in for hit dice
// in group-targeting spell resolution.
func (c *PlayerCharacter) HitDice() int { return c.Level }

// IsUndead always reports false for player characters.
func (c *PlayerCharacter) IsUndead() bool { return false }

// SavingThrow returns the d20 total needed to save against attackType.
func (c *PlayerCharacter) SavingThrow(attackType string) int {
	return savingThrowFor(c.Class, c.Level, spells.AttackType(attackType))
}

// HasRangedWeapon reports whether the character has an equipped ranged weapon.
func (c *PlayerCharacter) HasRangedWeapon() bool { return c.Ranged != nil }

// GetRangedAttackRoll rolls the equipped ranged weapon's attack die.
func (c *PlayerCharacter) GetRangedAttackRoll() int {
	if c.Ranged == nil {
		return 0
	}
	return rollDie(c.Roller, c.Ranged.AttackDie)
}

// GetRangedDamageRoll rolls the equipped ranged weapon's damage die.
func (c *PlayerCharacter) GetRangedDamageRoll() int {
	if c.Ranged == nil {
		return 0
	}
	return rollDie(c.Roller, c.Ranged.DamageDie)
}

// CasterClass returns the character's class, used to check spell eligibility.
func (c *PlayerCharacter) CasterClass() string { return c.Class }

// CasterLevel returns the character's level.
func (c *PlayerCharacter) CasterLevel() int { return c.Level }

// KnownSpells returns the character's known spell ids.
func (c *PlayerCharacter) KnownSpells() []string {
	if c.Spells == nil {
		return nil
	}
	return c.Spells.Known
}

// RemainingSlots returns the character's unused slot count at level.
func (c *PlayerCharacter) RemainingSlots(level int) int {
	if c.Spells == nil {
		return 0
	}
	return c.Spells.remaining(level)
}

// UseSpellSlot spends one slot at level, reporting whether one was available.
func (c *PlayerCharacter) UseSpellSlot(level int) bool {
	if c.Spells == nil {
		return false
	}
	return c.Spells.use(level)
}

// IsCleric reports whether this character can turn undead.
func (c *PlayerCharacter) IsCleric() bool { return c.Class == "cleric" }

// ClericLevel returns the character's level for turn-undead resolution.
func (c *PlayerCharacter) ClericLevel() int { return c.Level }

// ThrowableItems returns the names of throwable items this character carries.
func (c *PlayerCharacter) ThrowableItems() []string { return c.Items }
