// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package combat

// IntentKind tags the variant of an Intent.
type IntentKind string

const (
	IntentMelee      IntentKind = "melee_attack"
	IntentRanged     IntentKind = "ranged_attack"
	IntentCastSpell  IntentKind = "cast_spell"
	IntentUseItem    IntentKind = "use_item"
	IntentTurnUndead IntentKind = "turn_undead"
	IntentFlee       IntentKind = "flee"
)

// Intent is an externally supplied command for one combatant's turn.
// Implementations are small immutable structs, one per IntentKind --
// the idiomatic stand-in for the tagged-variant dispatch the design
// notes call for.
type Intent interface {
	Kind() IntentKind
	Actor() string
}

// MeleeAttackIntent attacks a single target in melee.
type MeleeAttackIntent struct {
	ActorID  string
	TargetID string
}

func (i MeleeAttackIntent) Kind() IntentKind { return IntentMelee }
func (i MeleeAttackIntent) Actor() string    { return i.ActorID }

// RangedAttackIntent attacks a single target at range.
type RangedAttackIntent struct {
	ActorID  string
	TargetID string
}

func (i RangedAttackIntent) Kind() IntentKind { return IntentRanged }
func (i RangedAttackIntent) Actor() string    { return i.ActorID }

// CastSpellIntent casts a catalog spell at one or more targets. Level is
// the slot level the caster is spending, which must equal the spell's
// defined level.
type CastSpellIntent struct {
	ActorID   string
	SpellID   string
	Level     int
	TargetIDs []string
}

func (i CastSpellIntent) Kind() IntentKind { return IntentCastSpell }
func (i CastSpellIntent) Actor() string    { return i.ActorID }

// UseItemIntent throws a named throwable item at a single target.
type UseItemIntent struct {
	ActorID  string
	ItemName string
	TargetID string
}

func (i UseItemIntent) Kind() IntentKind { return IntentUseItem }
func (i UseItemIntent) Actor() string    { return i.ActorID }

// TurnUndeadIntent attempts to turn or destroy undead enemies.
type TurnUndeadIntent struct {
	ActorID string
}

func (i TurnUndeadIntent) Kind() IntentKind { return IntentTurnUndead }
func (i TurnUndeadIntent) Actor() string    { return i.ActorID }

// FleeIntent removes the actor from further rounds of the encounter.
type FleeIntent struct {
	ActorID string
}

func (i FleeIntent) Kind() IntentKind { return IntentFlee }
func (i FleeIntent) Actor() string    { return i.ActorID }
