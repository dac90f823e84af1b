// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package combat

import (
	"github.com/osrkit/combat/dice"
)

// Action is a validated resolver built from an Intent. Validate reports
// every reason the action cannot proceed (empty means legal); Execute
// produces the resolution events and deferred effects. Actions never
// mutate the context themselves -- APPLY_EFFECTS does that.
type Action interface {
	Validate(ctx *Context) []Rejection
	Execute(ctx *Context, roller dice.Roller) ([]Event, []Effect)
}

func rollNotation(roller dice.Roller, notation string) int {
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

// ceilHalfAgain returns ceil(n * 1.5), used for critical-hit damage.
func ceilHalfAgain(n int) int {
	if n <= 0 {
		return 0
	}
	return (n*3 + 1) / 2
}

func validateActorAndTarget(ctx *Context, actorID, targetID string, requireOpponent bool) []Rejection {
	var rej []Rejection

	actor := ctx.Get(actorID)
	if actor == nil {
		return []Rejection{reject(InvalidActor, "unknown actor")}
	}
	if actorID != ctx.CurrentCombatantID {
		rej = append(rej, reject(NotCurrentCombatant, "not the current combatant"))
	}
	if !actor.Entity.IsAlive() {
		rej = append(rej, reject(ActorDead, "actor is dead"))
	}

	target := ctx.Get(targetID)
	if target == nil {
		rej = append(rej, reject(InvalidTarget, "unknown target"))
		return rej
	}
	if !target.Entity.IsAlive() {
		rej = append(rej, reject(InvalidTarget, "target is dead"))
	}
	if requireOpponent && target.Side == actor.Side {
		rej = append(rej, reject(TargetNotOpponent, "target is not an opponent"))
	} else if !requireOpponent && target.Side != actor.Side {
		rej = append(rej, reject(TargetNotAlly, "target is not an ally"))
	}
	return rej
}

// MeleeAttackAction resolves a melee attack intent.
type MeleeAttackAction struct {
	ActorID  string
	TargetID string
}

func (a MeleeAttackAction) Validate(ctx *Context) []Rejection {
	return validateActorAndTarget(ctx, a.ActorID, a.TargetID, true)
}

func (a MeleeAttackAction) Execute(ctx *Context, roller dice.Roller) ([]Event, []Effect) {
	actor := ctx.Get(a.ActorID)
	target := ctx.Get(a.TargetID)
	rolls := actor.Entity.GetAttackRolls()
	return resolveAttackRolls(ctx, roller, a.ActorID, a.TargetID, rolls, func() int { return actor.Entity.GetDamageRoll() }, target.Entity.ArmorClass(), actor.Entity.GetToHitTargetAC(target.Entity.ArmorClass()), actor.Side == SidePC)
}

// RangedAttackAction resolves a ranged attack intent.
type RangedAttackAction struct {
	ActorID  string
	TargetID string
}

func (a RangedAttackAction) Validate(ctx *Context) []Rejection {
	rej := validateActorAndTarget(ctx, a.ActorID, a.TargetID, true)
	actor := ctx.Get(a.ActorID)
	if actor != nil {
		if ranged, ok := actor.Entity.(RangedAttacker); !ok || !ranged.HasRangedWeapon() {
			rej = append(rej, reject(NoRangedWeapon, "no ranged weapon equipped"))
		}
	}
	return rej
}

func (a RangedAttackAction) Execute(ctx *Context, roller dice.Roller) ([]Event, []Effect) {
	actor := ctx.Get(a.ActorID)
	target := ctx.Get(a.TargetID)
	ranged := actor.Entity.(RangedAttacker)
	needed := actor.Entity.GetToHitTargetAC(target.Entity.ArmorClass())
	// Only PlayerCharacter implements RangedAttacker, so this path is
	// always a PC attacker and always gets crit/fumble treatment.
	return resolveAttackRolls(ctx, roller, a.ActorID, a.TargetID, []int{ranged.GetRangedAttackRoll()}, func() int { return ranged.GetRangedDamageRoll() }, target.Entity.ArmorClass(), needed, true)
}

// resolveAttackRolls is shared by melee and ranged: it evaluates one or
// more raw d20 rolls against needed, stopping lethal damage early once
// the defender's simulated hp reaches zero. applyCritFumble gates the
// raw-20-critical/raw-1-fumble rule, which only ever applies to a PC
// attacker -- a monster's attack roll is just a plain roll-vs-needed
// check, crit and fumble included.
func resolveAttackRolls(ctx *Context, roller dice.Roller, actorID, targetID string, rolls []int, damageRoll func() int, _ int, needed int, applyCritFumble bool) ([]Event, []Effect) {
	var events []Event
	var effects []Effect

	target := ctx.Get(targetID)
	simulatedHP := target.Entity.HitPoints()
	lethalReached := false
	attackBonus := ctx.Modifiers.GetTotal(actorID, StatAttack)

	for _, raw := range rolls {
		total := raw + attackBonus
		critical := applyCritFumble && raw == 20
		fumble := applyCritFumble && raw == 1

		hit := false
		if !lethalReached {
			switch {
			case critical:
				hit = true
			case fumble:
				hit = false
			default:
				hit = total >= needed
			}
		}

		events = append(events, AttackRolled{
			AttackerID: actorID,
			TargetID:   targetID,
			Roll:       total,
			Needed:     needed,
			Hit:        hit,
			Critical:   critical,
			Fumble:     fumble,
		})

		if !hit {
			continue
		}

		dmg := damageRoll() + ctx.Modifiers.GetTotal(actorID, StatDamage)
		if critical {
			dmg = ceilHalfAgain(dmg)
		}
		if dmg < 0 {
			dmg = 0
		}
		effects = append(effects, DamageEffect{TargetID: targetID, Amount: dmg})

		simulatedHP -= dmg
		if simulatedHP <= 0 {
			lethalReached = true
		}
	}

	return events, effects
}

// UseItemAction resolves a throwable-item intent.
type UseItemAction struct {
	ActorID  string
	ItemName string
	TargetID string
}

func (a UseItemAction) Validate(ctx *Context) []Rejection {
	var rej []Rejection
	if _, known := ThrowableItemTable[a.ItemName]; !known {
		rej = append(rej, reject(ItemNotThrowable, "item is not throwable: "+a.ItemName))
	}
	rej = append(rej, validateActorAndTarget(ctx, a.ActorID, a.TargetID, true)...)
	actor := ctx.Get(a.ActorID)
	if actor != nil {
		items, ok := actor.Entity.(ItemUser)
		if !ok || !hasItem(items.ThrowableItems(), a.ItemName) {
			rej = append(rej, reject(ItemNotInInventory, "actor does not hold "+a.ItemName))
		}
	}
	return rej
}

func hasItem(items []string, name string) bool {
	for _, i := range items {
		if i == name {
			return true
		}
	}
	return false
}

func (a UseItemAction) Execute(ctx *Context, roller dice.Roller) ([]Event, []Effect) {
	item := ThrowableItemTable[a.ItemName]
	dmg := rollNotation(roller, item.DamageDie)
	events := []Event{ItemUsed{ActorID: a.ActorID, ItemName: a.ItemName, TargetID: a.TargetID}}
	effects := []Effect{DamageEffect{TargetID: a.TargetID, Amount: dmg}}
	return events, effects
}

// FleeAction resolves a flee intent.
type FleeAction struct {
	ActorID string
}

func (a FleeAction) Validate(ctx *Context) []Rejection {
	actor := ctx.Get(a.ActorID)
	if actor == nil {
		return []Rejection{reject(InvalidActor, "unknown actor")}
	}
	if !actor.Entity.IsAlive() {
		return []Rejection{reject(ActorDead, "actor is dead")}
	}
	return nil
}

func (a FleeAction) Execute(ctx *Context, roller dice.Roller) ([]Event, []Effect) {
	return nil, []Effect{FleeEffect{ActorID: a.ActorID}}
}
