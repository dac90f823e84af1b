// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package combat

// RejectionCode is a stable, string-tagged identifier for why an intent
// or effect could not proceed.
type RejectionCode string

// Rejection codes, per the external interface contract.
const (
	NoIntent                  RejectionCode = "NO_INTENT"
	UnsupportedIntent         RejectionCode = "UNSUPPORTED_INTENT"
	InvalidActor               RejectionCode = "INVALID_ACTOR"
	NotCurrentCombatant        RejectionCode = "NOT_CURRENT_COMBATANT"
	ActorDead                  RejectionCode = "ACTOR_DEAD"
	InvalidTarget              RejectionCode = "INVALID_TARGET"
	TargetNotOpponent          RejectionCode = "TARGET_NOT_OPPONENT"
	NoSpellSlot                RejectionCode = "NO_SPELL_SLOT"
	NoRangedWeapon             RejectionCode = "NO_RANGED_WEAPON"
	UnknownSpell               RejectionCode = "UNKNOWN_SPELL"
	UnknownEffectType          RejectionCode = "UNKNOWN_EFFECT_TYPE"
	NoValidatedAction          RejectionCode = "NO_VALIDATED_ACTION"
	IneligibleCaster           RejectionCode = "INELIGIBLE_CASTER"
	SlotLevelMismatch          RejectionCode = "SLOT_LEVEL_MISMATCH"
	MonsterActionNotSupported  RejectionCode = "MONSTER_ACTION_NOT_SUPPORTED"
	TargetNotAlly              RejectionCode = "TARGET_NOT_ALLY"
	ItemNotThrowable           RejectionCode = "ITEM_NOT_THROWABLE"
	ItemNotInInventory         RejectionCode = "ITEM_NOT_IN_INVENTORY"
)

// Rejection pairs a stable code with a human-readable message. An empty
// Rejection slice from a validator means the intent is legal.
type Rejection struct {
	Code    RejectionCode
	Message string
}

func reject(code RejectionCode, message string) Rejection {
	return Rejection{Code: code, Message: message}
}
