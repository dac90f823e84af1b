// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package combat

import (
	"fmt"
	"sort"

	"github.com/osrkit/combat/spells"
)

// KV is one (key, value) pair within an ActionChoice's UIArgs. A small
// sorted slice stands in for the source's frozen mapping -- labels only
// ever read it, never mutate it.
type KV struct {
	Key   string
	Value string
}

// ActionChoice is one offerable action for a combatant's turn: a stable
// ui_key for dispatch, a small set of ui_args for label rendering, a
// human label, and the concrete Intent submitting it would produce.
type ActionChoice struct {
	UIKey  string
	UIArgs []KV
	Label  string
	Intent Intent
}

func kv(pairs ...string) []KV {
	out := make([]KV, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, KV{Key: pairs[i], Value: pairs[i+1]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// BuildChoices constructs the full list of permissible actions for
// combatantID, per the choice-generation rules.
func BuildChoices(ctx *Context, combatantID string, catalog *spells.Catalog) []ActionChoice {
	actor := ctx.Get(combatantID)
	if actor == nil || !actor.Entity.IsAlive() {
		return nil
	}

	var choices []ActionChoice
	enemies := ctx.LivingOnSide(actor.Side.Opposite())
	allies := ctx.LivingOnSide(actor.Side)

	for _, targetID := range enemies {
		target := ctx.Get(targetID)
		choices = append(choices, ActionChoice{
			UIKey:  "attack_target",
			UIArgs: kv("target_id", targetID),
			Label:  fmt.Sprintf("Attack %s", target.Entity.Name()),
			Intent: MeleeAttackIntent{ActorID: combatantID, TargetID: targetID},
		})
	}

	if ranged, ok := actor.Entity.(RangedAttacker); ok && ranged.HasRangedWeapon() {
		for _, targetID := range enemies {
			target := ctx.Get(targetID)
			choices = append(choices, ActionChoice{
				UIKey:  "ranged_attack_target",
				UIArgs: kv("target_id", targetID),
				Label:  fmt.Sprintf("Ranged attack %s", target.Entity.Name()),
				Intent: RangedAttackIntent{ActorID: combatantID, TargetID: targetID},
			})
		}
	}

	if caster, ok := actor.Entity.(SpellCaster); ok && catalog != nil {
		visited := map[string]bool{}
		for _, spellID := range caster.KnownSpells() {
			choices = append(choices, spellChoices(ctx, combatantID, caster, spellID, catalog, enemies, allies, visited)...)
		}
	}

	if items, ok := actor.Entity.(ItemUser); ok {
		for _, itemName := range items.ThrowableItems() {
			if _, known := ThrowableItemTable[itemName]; !known {
				continue
			}
			for _, targetID := range enemies {
				target := ctx.Get(targetID)
				choices = append(choices, ActionChoice{
					UIKey:  "use_item",
					UIArgs: kv("item", itemName, "target_id", targetID),
					Label:  fmt.Sprintf("Throw %s at %s", itemName, target.Entity.Name()),
					Intent: UseItemIntent{ActorID: combatantID, ItemName: itemName, TargetID: targetID},
				})
			}
		}
	}

	if turner, ok := actor.Entity.(UndeadTurner); ok && turner.IsCleric() {
		for _, enemyID := range enemies {
			if ctx.Get(enemyID).Entity.IsUndead() {
				choices = append(choices, ActionChoice{
					UIKey:  "turn_undead",
					UIArgs: nil,
					Label:  "Turn Undead",
					Intent: TurnUndeadIntent{ActorID: combatantID},
				})
				break
			}
		}
	}

	if actor.Side == SidePC {
		choices = append(choices, ActionChoice{
			UIKey:  "flee",
			UIArgs: nil,
			Label:  "Flee",
			Intent: FleeIntent{ActorID: combatantID},
		})
	}

	return choices
}

func spellChoices(ctx *Context, combatantID string, caster SpellCaster, spellID string, catalog *spells.Catalog, enemies, allies []string, visited map[string]bool) []ActionChoice {
	if visited[spellID] {
		return nil
	}
	visited[spellID] = true

	spell, ok := catalog.Lookup(spellID)
	if !ok || !spell.PermitsClass(caster.CasterClass()) {
		return nil
	}
	if ctx.remainingSlots(combatantID, spell.Level, caster) <= 0 {
		return nil
	}

	var choices []ActionChoice
	switch spell.TargetMode {
	case spells.TargetSingleEnemy:
		for _, targetID := range enemies {
			target := ctx.Get(targetID)
			choices = append(choices, ActionChoice{
				UIKey:  "cast_spell",
				UIArgs: kv("spell_id", spellID, "target_id", targetID),
				Label:  fmt.Sprintf("Cast %s on %s", spell.Name, target.Entity.Name()),
				Intent: CastSpellIntent{ActorID: combatantID, SpellID: spellID, Level: spell.Level, TargetIDs: []string{targetID}},
			})
		}
		if spell.HasGroupOption && len(enemies) > 0 {
			label := fmt.Sprintf("Cast %s on enemy group", spell.Name)
			if spell.GroupTargetDice != "" {
				label = fmt.Sprintf("%s (%s)", label, spell.GroupTargetDice)
			}
			choices = append(choices, ActionChoice{
				UIKey:  "cast_spell",
				UIArgs: kv("spell_id", spellID, "target_id", "enemy_group"),
				Label:  label,
				Intent: CastSpellIntent{ActorID: combatantID, SpellID: spellID, Level: spell.Level, TargetIDs: append([]string{}, enemies...)},
			})
		}
	case spells.TargetAllEnemies:
		if len(enemies) == 0 {
			break
		}
		label := fmt.Sprintf("Cast %s on enemy group", spell.Name)
		if spell.GroupTargetDice != "" {
			label = fmt.Sprintf("%s (%s)", label, spell.GroupTargetDice)
		}
		choices = append(choices, ActionChoice{
			UIKey:  "cast_spell",
			UIArgs: kv("spell_id", spellID, "target_id", "enemy_group"),
			Label:  label,
			Intent: CastSpellIntent{ActorID: combatantID, SpellID: spellID, Level: spell.Level, TargetIDs: append([]string{}, enemies...)},
		})
	case spells.TargetHDPool:
		var eligible []string
		for _, enemyID := range enemies {
			target := ctx.Get(enemyID)
			if spell.UndeadImmune && target.Entity.IsUndead() {
				continue
			}
			if spell.MaxTargetHD > 0 && GetCombatantHD(target.Entity) > spell.MaxTargetHD {
				continue
			}
			eligible = append(eligible, enemyID)
		}
		if len(eligible) == 0 {
			break
		}
		choices = append(choices, ActionChoice{
			UIKey:  "cast_spell",
			UIArgs: kv("spell_id", spellID, "target_id", "hd_pool"),
			Label:  fmt.Sprintf("Cast %s", spell.Name),
			Intent: CastSpellIntent{ActorID: combatantID, SpellID: spellID, Level: spell.Level, TargetIDs: eligible},
		})
	case spells.TargetSelf:
		choices = append(choices, ActionChoice{
			UIKey:  "cast_spell",
			UIArgs: kv("spell_id", spellID, "target_id", combatantID),
			Label:  fmt.Sprintf("Cast %s on self", spell.Name),
			Intent: CastSpellIntent{ActorID: combatantID, SpellID: spellID, Level: spell.Level, TargetIDs: []string{combatantID}},
		})
	case spells.TargetSingleAlly:
		for _, targetID := range allies {
			target := ctx.Get(targetID)
			choices = append(choices, ActionChoice{
				UIKey:  "cast_spell",
				UIArgs: kv("spell_id", spellID, "target_id", targetID),
				Label:  fmt.Sprintf("Cast %s on %s", spell.Name, target.Entity.Name()),
				Intent: CastSpellIntent{ActorID: combatantID, SpellID: spellID, Level: spell.Level, TargetIDs: []string{targetID}},
			})
		}
	case spells.TargetAllAllies:
		if len(allies) == 0 {
			break
		}
		choices = append(choices, ActionChoice{
			UIKey:  "cast_spell",
			UIArgs: kv("spell_id", spellID, "target_id", "ally_group"),
			Label:  fmt.Sprintf("Cast %s on party", spell.Name),
			Intent: CastSpellIntent{ActorID: combatantID, SpellID: spellID, Level: spell.Level, TargetIDs: append([]string{}, allies...)},
		})
	}

	if spell.IsReversed && spell.ReverseID != "" {
		choices = append(choices, spellChoices(ctx, combatantID, caster, spell.ReverseID, catalog, enemies, allies, visited)...)
	}

	return choices
}
