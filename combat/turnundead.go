// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package combat

import (
	"sort"
	"strconv"

	"github.com/osrkit/combat/dice"
)

// turnUndeadCell computes one cell of the canonical cleric-level ×
// undead-HD turning table. The source port has no such table (an open
// question in the design notes); this fixes one at the catalog level
// using the standard B/X shape -- a diagonal band of numeric targets
// bracketed by "T" (auto-turn) above and "-" (impossible) below, with
// "D" (auto-destroy) once the cleric has outgrown the tier entirely.
func turnUndeadCell(clericLevel, undeadHD int) string {
	diff := clericLevel - undeadHD
	switch {
	case diff >= 5:
		return "D"
	case diff >= 3:
		return "T"
	case diff <= -4:
		return "-"
	default:
		needed := 10 - 2*diff
		if needed > 12 {
			return "-"
		}
		if needed < 2 {
			needed = 2
		}
		return strconv.Itoa(needed)
	}
}

// TurnUndeadAction resolves a turn-undead intent.
type TurnUndeadAction struct {
	ActorID string
}

func (a TurnUndeadAction) Validate(ctx *Context) []Rejection {
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
	if turner, ok := actor.Entity.(UndeadTurner); !ok || !turner.IsCleric() {
		rej = append(rej, reject(UnsupportedIntent, "actor is not a cleric"))
	}

	hasUndead := false
	for _, id := range ctx.LivingOnSide(actor.Side.Opposite()) {
		if ctx.Get(id).Entity.IsUndead() {
			hasUndead = true
			break
		}
	}
	if !hasUndead {
		rej = append(rej, reject(InvalidTarget, "no undead enemies present"))
	}
	return rej
}

type eligibleUndead struct {
	ID   string
	HD   int
	Cell string
}

func (a TurnUndeadAction) Execute(ctx *Context, roller dice.Roller) ([]Event, []Effect) {
	actor := ctx.Get(a.ActorID)
	turner := actor.Entity.(UndeadTurner)
	level := turner.ClericLevel()

	var eligible []eligibleUndead
	for _, id := range ctx.LivingOnSide(actor.Side.Opposite()) {
		target := ctx.Get(id)
		if !target.Entity.IsUndead() {
			continue
		}
		hd := GetCombatantHD(target.Entity)
		cell := turnUndeadCell(level, hd)
		if cell == "-" {
			continue
		}
		eligible = append(eligible, eligibleUndead{ID: id, HD: hd, Cell: cell})
	}

	if len(eligible) == 0 {
		return []Event{TurnUndeadAttempted{ActorID: a.ActorID, Result: "NO_EFFECT"}}, nil
	}

	sort.SliceStable(eligible, func(i, j int) bool { return eligible[i].HD < eligible[j].HD })
	lead := eligible[0]

	var roll, targetNumber int
	result := "TURNED"
	succeeded := true
	switch lead.Cell {
	case "T":
		result = "TURNED"
	case "D":
		result = "DESTROYED"
	default:
		targetNumber, _ = strconv.Atoi(lead.Cell)
		roll = rollNotation(roller, "2d6")
		succeeded = roll >= targetNumber
		if !succeeded {
			result = "FAILED"
		}
	}

	events := []Event{TurnUndeadAttempted{ActorID: a.ActorID, Roll: roll, TargetNumber: targetNumber, Result: result}}
	if !succeeded {
		return events, nil
	}

	budget := rollNotation(roller, "2d6")
	candidates := make([]HDCandidate, len(eligible))
	for i, e := range eligible {
		candidates[i] = HDCandidate{ID: e.ID, HD: e.HD}
	}
	affected := ResolveHDPool(candidates, budget)
	if len(affected) == 0 {
		affected = []string{lead.ID}
	}

	var effects []Effect
	for _, id := range affected {
		target := ctx.Get(id)
		hd := GetCombatantHD(target.Entity)
		cell := turnUndeadCell(level, hd)
		destroyed := cell == "D"
		events = append(events, UndeadTurned{TargetID: id, Destroyed: destroyed, HDSpent: effectiveHD(hd)})
		if destroyed {
			effects = append(effects, DamageEffect{TargetID: id, Amount: target.Entity.HitPoints()})
		} else {
			effects = append(effects, FleeEffect{ActorID: id})
		}
	}
	return events, effects
}
