// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package combat

// CombatantView is the frozen per-combatant slice of a CombatView.
type CombatantView struct {
	ID          string
	Name        string
	Side        Side
	HitPoints   int
	MaxHP       int
	ArmorClass  int
	IsAlive     bool
	HasFled     bool
	Conditions  []string
}

// CombatView is a read-only snapshot of an encounter in progress,
// suitable for UI rendering. It holds copies, not references, so a
// caller can hang onto one across further Step calls.
type CombatView struct {
	State           EncounterState
	Round           int
	CurrentID       string
	Combatants      []CombatantView
	AnnouncedDeaths []string
}

// BuildView renders ctx and state into a CombatView.
func BuildView(ctx *Context, state EncounterState) CombatView {
	view := CombatView{
		State:     state,
		Round:     ctx.Round,
		CurrentID: ctx.CurrentCombatantID,
	}

	for _, id := range ctx.Order {
		cb := ctx.Combatants[id]
		var conditionIDs []string
		for _, ac := range ctx.Conditions.GetAll(id) {
			conditionIDs = append(conditionIDs, ac.ConditionID)
		}
		view.Combatants = append(view.Combatants, CombatantView{
			ID:         id,
			Name:       cb.Entity.Name(),
			Side:       cb.Side,
			HitPoints:  cb.Entity.HitPoints(),
			MaxHP:      cb.Entity.MaxHitPoints(),
			ArmorClass: cb.Entity.ArmorClass(),
			IsAlive:    cb.Entity.IsAlive(),
			HasFled:    cb.HasFled,
			Conditions: conditionIDs,
		})
	}

	for _, id := range ctx.Order {
		if ctx.AnnouncedDeaths[id] {
			view.AnnouncedDeaths = append(view.AnnouncedDeaths, id)
		}
	}

	return view
}
