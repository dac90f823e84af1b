// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package combat

import (
	"github.com/osrkit/combat/dice"
	"github.com/osrkit/combat/spells"
)

// CastSpellAction resolves a cast-spell intent. Catalog is injected so
// the engine can swap in a private catalog for tests without touching
// package-level state.
type CastSpellAction struct {
	ActorID   string
	SpellID   string
	Level     int
	TargetIDs []string
	Catalog   *spells.Catalog
}

func isAllyTargetMode(mode spells.TargetMode) bool {
	switch mode {
	case spells.TargetSelf, spells.TargetSingleAlly, spells.TargetAllAllies:
		return true
	default:
		return false
	}
}

func (a CastSpellAction) Validate(ctx *Context) []Rejection {
	actor := ctx.Get(a.ActorID)
	if actor == nil {
		return []Rejection{reject(InvalidActor, "unknown actor")}
	}

	var rej []Rejection
	if a.ActorID != ctx.CurrentCombatantID {
		rej = append(rej, reject(NotCurrentCombatant, "not the current combatant"))
	}
	if !actor.Entity.IsAlive() {
		rej = append(rej, reject(ActorDead, "actor is dead"))
	}

	caster, ok := actor.Entity.(SpellCaster)
	if !ok {
		rej = append(rej, reject(IneligibleCaster, "actor cannot cast spells"))
		return rej
	}

	spell, found := a.Catalog.Lookup(a.SpellID)
	if !found {
		rej = append(rej, reject(UnknownSpell, "unknown spell: "+a.SpellID))
		return rej
	}
	if !spell.PermitsClass(caster.CasterClass()) {
		rej = append(rej, reject(IneligibleCaster, "class cannot cast "+a.SpellID))
	}
	if a.Level != spell.Level {
		rej = append(rej, reject(SlotLevelMismatch, "slot level mismatch"))
	}

	wantAlly := isAllyTargetMode(spell.TargetMode)
	for _, t := range a.TargetIDs {
		target := ctx.Get(t)
		if target == nil {
			rej = append(rej, reject(InvalidTarget, "unknown target "+t))
			continue
		}
		if wantAlly && target.Side != actor.Side {
			rej = append(rej, reject(TargetNotAlly, "target is not an ally"))
		}
		if !wantAlly && target.Side == actor.Side {
			rej = append(rej, reject(TargetNotOpponent, "target is not an opponent"))
		}
	}
	return rej
}

func (a CastSpellAction) Execute(ctx *Context, roller dice.Roller) ([]Event, []Effect) {
	actor := ctx.Get(a.ActorID)
	caster := actor.Entity.(SpellCaster)
	spell, _ := a.Catalog.Lookup(a.SpellID)

	events := []Event{SpellCast{
		CasterID:  a.ActorID,
		SpellID:   a.SpellID,
		SpellName: spell.Name,
		TargetIDs: append([]string{}, a.TargetIDs...),
	}}
	effects := []Effect{ConsumeSlotEffect{CasterID: a.ActorID, Level: a.Level}}

	var ev []Event
	var ef []Effect
	switch spell.Category {
	case spells.CategoryDamage:
		ev, ef = a.executeDamage(ctx, roller, caster, spell)
	case spells.CategoryCondition:
		ev, ef = a.executeCondition(ctx, roller, spell)
	case spells.CategoryProjectile:
		ev, ef = a.executeProjectile(roller, caster, spell)
	case spells.CategoryHeal:
		ef = []Effect{HealEffect{TargetID: a.TargetIDs[0], Amount: rollNotation(roller, spell.HealDie)}}
	case spells.CategoryBuff:
		for _, t := range a.TargetIDs {
			for _, m := range spell.Modifiers {
				ef = append(ef, ApplyModifierEffect{
					SourceID:   a.ActorID,
					TargetID:   t,
					ModifierID: spell.ID,
					Stat:       ModifierStat(m.Stat),
					Value:      m.Value,
					Duration:   m.Duration,
				})
			}
		}
	}

	events = append(events, ev...)
	effects = append(effects, ef...)
	return events, effects
}

func rollNDice(roller dice.Roller, count int, notation string) int {
	total := 0
	for i := 0; i < count; i++ {
		total += rollNotation(roller, notation)
	}
	return total
}

func (a CastSpellAction) executeDamage(ctx *Context, roller dice.Roller, caster SpellCaster, spell *spells.Spell) ([]Event, []Effect) {
	var dmg int
	if spell.DamagePerLevelDie != "" {
		level := caster.CasterLevel()
		if spell.DamagePerLevelCap > 0 && level > spell.DamagePerLevelCap {
			level = spell.DamagePerLevelCap
		}
		if level < 1 {
			level = 1
		}
		dmg = rollNDice(roller, level, spell.DamagePerLevelDie)
	} else {
		dmg = rollNotation(roller, spell.DamageDie)
	}

	var events []Event
	var effects []Effect
	for _, t := range a.TargetIDs {
		target := ctx.Get(t)
		amount := dmg
		if spell.HasSave {
			targetNumber := target.Entity.SavingThrow(string(spell.SaveType))
			roll := rollNotation(roller, "1d20")
			success := roll+spell.SingleSavePenalty >= targetNumber
			events = append(events, SavingThrowRolled{
				TargetID: t, SaveType: string(spell.SaveType), TargetNumber: targetNumber,
				Roll: roll, Success: success, SpellName: spell.Name, Penalty: spell.SingleSavePenalty,
			})
			if success {
				if spell.SaveNegates {
					continue
				}
				amount /= 2
			}
		}
		effects = append(effects, DamageEffect{TargetID: t, Amount: amount, SpellName: spell.Name})
	}
	return events, effects
}

func (a CastSpellAction) executeCondition(ctx *Context, roller dice.Roller, spell *spells.Spell) ([]Event, []Effect) {
	var events []Event
	var effects []Effect

	targets := a.TargetIDs
	isGroupCast := len(targets) > 1 || spell.TargetMode == spells.TargetHDPool || spell.TargetMode == spells.TargetAllEnemies

	var resolvedTargets []string
	penalty := spell.SingleSavePenalty

	switch spell.TargetMode {
	case spells.TargetHDPool:
		budget := rollNotation(roller, spell.HDPoolDice)
		var candidates []HDCandidate
		for _, t := range targets {
			target := ctx.Get(t)
			if spell.UndeadImmune && target.Entity.IsUndead() {
				continue
			}
			candidates = append(candidates, HDCandidate{ID: t, HD: GetCombatantHD(target.Entity)})
		}
		resolvedTargets = ResolveHDPool(candidates, budget)
		events = append(events, GroupTargetsResolved{SpellName: spell.Name, PoolRoll: budget, ResolvedTargetIDs: resolvedTargets})
		penalty = 0
	default:
		if isGroupCast && spell.HasGroupOption {
			count := rollNotation(roller, spell.GroupTargetDice)
			resolvedTargets = ResolveRandomGroup(roller, targets, count)
			events = append(events, GroupTargetsResolved{SpellName: spell.Name, PoolRoll: count, ResolvedTargetIDs: resolvedTargets})
			penalty = 0
		} else {
			resolvedTargets = targets
		}
	}

	for _, t := range resolvedTargets {
		target := ctx.Get(t)
		if spell.UndeadImmune && target.Entity.IsUndead() {
			continue
		}
		applied := true
		if spell.HasSave {
			targetNumber := target.Entity.SavingThrow(string(spell.SaveType))
			roll := rollNotation(roller, "1d20")
			success := roll+penalty >= targetNumber
			events = append(events, SavingThrowRolled{
				TargetID: t, SaveType: string(spell.SaveType), TargetNumber: targetNumber,
				Roll: roll, Success: success, SpellName: spell.Name, Penalty: penalty,
			})
			if success && spell.SaveNegates {
				applied = false
			}
		}
		if applied {
			effects = append(effects, ApplyConditionEffect{
				SourceID: a.ActorID, TargetID: t, ConditionID: spell.ConditionID, Duration: spell.ConditionDuration,
			})
		}
	}
	return events, effects
}

func (a CastSpellAction) executeProjectile(roller dice.Roller, caster SpellCaster, spell *spells.Spell) ([]Event, []Effect) {
	count := spell.ProjectileCount(caster.CasterLevel())
	if count < 1 {
		count = 1
	}
	target := a.TargetIDs[0]

	var effects []Effect
	for i := 0; i < count; i++ {
		dmg := rollNotation(roller, spell.DamageDie)
		effects = append(effects, DamageEffect{TargetID: target, Amount: dmg, SpellName: spell.Name})
	}
	return nil, effects
}
