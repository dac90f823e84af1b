// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package combat

// ModifierStat tags which stat a temporary modifier affects.
type ModifierStat string

const (
	StatAttack     ModifierStat = "ATTACK"
	StatArmorClass ModifierStat = "ARMOR_CLASS"
	StatSave       ModifierStat = "SAVE"
	StatDamage     ModifierStat = "DAMAGE"
)

// ActiveModifier is one temporary stat modifier applied to a combatant.
type ActiveModifier struct {
	ModifierID      string
	SourceID        string
	Stat            ModifierStat
	Value           int
	RemainingRounds *int // nil means it never expires via TickRound
}

// ModifierTracker stores active stat modifiers per combatant, mirroring
// ConditionTracker's add/tick shape.
type ModifierTracker struct {
	active map[string][]*ActiveModifier
}

// NewModifierTracker returns an empty tracker.
func NewModifierTracker() *ModifierTracker {
	return &ModifierTracker{active: make(map[string][]*ActiveModifier)}
}

// Add attaches a modifier to target.
func (t *ModifierTracker) Add(target string, m *ActiveModifier) {
	t.active[target] = append(t.active[target], m)
}

// GetTotal sums the value of every active modifier on target for stat.
func (t *ModifierTracker) GetTotal(target string, stat ModifierStat) int {
	total := 0
	for _, m := range t.active[target] {
		if m.Stat == stat {
			total += m.Value
		}
	}
	return total
}

// TickRound decrements every modifier with a finite remaining-round
// count by one, removing and reporting any that expire.
func (t *ModifierTracker) TickRound() []ExpiredModifier {
	var expired []ExpiredModifier
	for target, list := range t.active {
		var kept []*ActiveModifier
		for _, m := range list {
			if m.RemainingRounds == nil {
				kept = append(kept, m)
				continue
			}
			remaining := *m.RemainingRounds - 1
			if remaining <= 0 {
				expired = append(expired, ExpiredModifier{TargetID: target, ModifierID: m.ModifierID})
				continue
			}
			m.RemainingRounds = intP(remaining)
			kept = append(kept, m)
		}
		t.active[target] = kept
	}
	return expired
}

// ExpiredModifier names a (target, modifier) pair removed by TickRound.
type ExpiredModifier struct {
	TargetID   string
	ModifierID string
}
