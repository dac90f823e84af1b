// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package combat

// ConditionBehavior describes the static rules for a condition id,
// independent of any particular active instance.
type ConditionBehavior struct {
	SkipTurn      bool
	BreakOnDamage bool
}

// ConditionRegistry is the static per-condition behavior table.
var ConditionRegistry = map[string]ConditionBehavior{
	"held":    {SkipTurn: true, BreakOnDamage: false},
	"asleep":  {SkipTurn: true, BreakOnDamage: true},
	"blinded": {SkipTurn: false, BreakOnDamage: false},
}

// ActiveCondition is one condition instance applied to a combatant.
type ActiveCondition struct {
	ConditionID     string
	SourceID        string
	RemainingRounds *int // nil means it never expires via TickRound
	SkipTurn        bool
	BreakOnDamage   bool
}

// ExpiredCondition names a (target, condition) pair removed by TickRound.
type ExpiredCondition struct {
	TargetID    string
	ConditionID string
}

// ConditionTracker stores active conditions per combatant. It never
// mutates outside the methods below, which the engine calls only from
// within step().
type ConditionTracker struct {
	active map[string][]*ActiveCondition
}

// NewConditionTracker returns an empty tracker.
func NewConditionTracker() *ConditionTracker {
	return &ConditionTracker{active: make(map[string][]*ActiveCondition)}
}

// Add attaches an active condition to target.
func (t *ConditionTracker) Add(target string, ac *ActiveCondition) {
	t.active[target] = append(t.active[target], ac)
}

// Remove removes the first instance of conditionID on target, reporting
// whether anything was removed.
func (t *ConditionTracker) Remove(target, conditionID string) bool {
	list := t.active[target]
	for i, ac := range list {
		if ac.ConditionID == conditionID {
			t.active[target] = append(list[:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// Has reports whether target currently carries conditionID.
func (t *ConditionTracker) Has(target, conditionID string) bool {
	for _, ac := range t.active[target] {
		if ac.ConditionID == conditionID {
			return true
		}
	}
	return false
}

// GetAll returns every active condition on target.
func (t *ConditionTracker) GetAll(target string) []*ActiveCondition {
	return t.active[target]
}

// ShouldSkipTurn reports whether any active condition on target forces a
// turn skip.
func (t *ConditionTracker) ShouldSkipTurn(target string) bool {
	for _, ac := range t.active[target] {
		if ac.SkipTurn {
			return true
		}
	}
	return false
}

// SkipReason returns the id of the first turn-skipping condition on
// target, if any.
func (t *ConditionTracker) SkipReason(target string) (string, bool) {
	for _, ac := range t.active[target] {
		if ac.SkipTurn {
			return ac.ConditionID, true
		}
	}
	return "", false
}

// TickRound decrements every condition with a finite remaining-round
// count by one, removing and reporting any that reach zero.
func (t *ConditionTracker) TickRound() []ExpiredCondition {
	var expired []ExpiredCondition
	for target, list := range t.active {
		var kept []*ActiveCondition
		for _, ac := range list {
			if ac.RemainingRounds == nil {
				kept = append(kept, ac)
				continue
			}
			remaining := *ac.RemainingRounds - 1
			if remaining <= 0 {
				expired = append(expired, ExpiredCondition{TargetID: target, ConditionID: ac.ConditionID})
				continue
			}
			ac.RemainingRounds = intP(remaining)
			kept = append(kept, ac)
		}
		t.active[target] = kept
	}
	return expired
}

// RemoveBreakOnDamage removes every break-on-damage condition on target
// and returns the ids removed. Callers must only invoke this after
// confirming positive damage was applied; zero-damage events must not
// call it.
func (t *ConditionTracker) RemoveBreakOnDamage(target string) []string {
	list := t.active[target]
	var kept []*ActiveCondition
	var removed []string
	for _, ac := range list {
		if ac.BreakOnDamage {
			removed = append(removed, ac.ConditionID)
			continue
		}
		kept = append(kept, ac)
	}
	t.active[target] = kept
	return removed
}
