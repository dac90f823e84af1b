// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package combat

import (
	"fmt"
	"strings"
)

// FormatEvent renders a single human-readable log line for ev. Output
// style matches what a surrounding application would want to hand to
// its own battle summary, not a debug dump of the struct.
func FormatEvent(ev Event) string {
	switch e := ev.(type) {
	case EncounterStarted:
		return fmt.Sprintf("Encounter %s started.", e.EncounterID)

	case SurpriseRolled:
		switch {
		case e.PCSurprised:
			return fmt.Sprintf("PCs are surprised! (PC roll: %d, Monster roll: %d)", e.PCRoll, e.MonsterRoll)
		case e.MonsterSurprised:
			return fmt.Sprintf("Monsters are surprised! (PC roll: %d, Monster roll: %d)", e.PCRoll, e.MonsterRoll)
		default:
			return fmt.Sprintf("No surprise. (PC roll: %d, Monster roll: %d)", e.PCRoll, e.MonsterRoll)
		}

	case RoundStarted:
		return fmt.Sprintf("Starting combat round %d...", e.Round)

	case ConditionExpired:
		return fmt.Sprintf("%s's %s expired (%s).", e.TargetID, e.ConditionID, e.Reason)

	case ModifierExpired:
		return fmt.Sprintf("%s's %s wore off.", e.TargetID, e.ModifierID)

	case InitiativeRolled:
		parts := make([]string, len(e.Order))
		for i, entry := range e.Order {
			parts[i] = fmt.Sprintf("%s=%d", entry.CombatantID, entry.Roll)
		}
		return fmt.Sprintf("Initiative: %s", strings.Join(parts, ", "))

	case TurnQueueBuilt:
		return fmt.Sprintf("Turn order: %s", strings.Join(e.Queue, ", "))

	case TurnStarted:
		return fmt.Sprintf("%s's turn.", e.CombatantID)

	case TurnSkipped:
		return fmt.Sprintf("%s's turn skipped (%s).", e.CombatantID, e.Reason)

	case ForcedIntentApplied:
		return fmt.Sprintf("%s's turn was forced (%s).", e.CombatantID, e.Reason)

	case NeedAction:
		labels := make([]string, len(e.Available))
		for i, c := range e.Available {
			labels[i] = c.Label
		}
		return fmt.Sprintf("Awaiting action for %s: %s", e.CombatantID, strings.Join(labels, ", "))

	case ActionRejected:
		msgs := make([]string, len(e.Reasons))
		for i, r := range e.Reasons {
			msgs[i] = r.Message
		}
		return fmt.Sprintf("Action rejected for %s: %s", e.CombatantID, strings.Join(msgs, "; "))

	case AttackRolled:
		result := "MISS"
		if e.Hit {
			result = "HIT"
		}
		crit := ""
		if e.Critical {
			crit = " CRITICAL HIT!"
		}
		return fmt.Sprintf("%s attacked %s (rolled %d, needed %d): %s%s", e.AttackerID, e.TargetID, e.Roll, e.Needed, result, crit)

	case SpellCast:
		return fmt.Sprintf("%s cast %s on %s.", e.CasterID, e.SpellName, strings.Join(e.TargetIDs, ", "))

	case SavingThrowRolled:
		outcome := "failed"
		if e.Success {
			outcome = "succeeded"
		}
		return fmt.Sprintf("%s's save vs %s %s (rolled %d, needed %d).", e.TargetID, e.SaveType, outcome, e.Roll, e.TargetNumber)

	case GroupTargetsResolved:
		return fmt.Sprintf("%s affects: %s", e.SpellName, strings.Join(e.ResolvedTargetIDs, ", "))

	case ItemUsed:
		return fmt.Sprintf("%s threw %s at %s.", e.ActorID, e.ItemName, e.TargetID)

	case TurnUndeadAttempted:
		return fmt.Sprintf("%s attempts to turn undead: %s", e.ActorID, e.Result)

	case UndeadTurned:
		verb := "turned"
		if e.Destroyed {
			verb = "destroyed"
		}
		return fmt.Sprintf("%s was %s.", e.TargetID, verb)

	case DamageApplied:
		return fmt.Sprintf("%s took %d damage (HP: %d).", e.TargetID, e.Amount, e.Remaining)

	case HealingApplied:
		return fmt.Sprintf("%s healed %d (HP: %d).", e.TargetID, e.Amount, e.Remaining)

	case SpellSlotConsumed:
		return fmt.Sprintf("%s used a level %d spell slot (%d remaining).", e.CasterID, e.Level, e.Remaining)

	case ConditionApplied:
		duration := "permanent"
		if e.Duration != nil {
			duration = fmt.Sprintf("%d rounds", *e.Duration)
		}
		return fmt.Sprintf("%s applied %s to %s (%s).", e.SourceID, e.ConditionID, e.TargetID, duration)

	case ModifierApplied:
		duration := "permanent"
		if e.Duration != nil {
			duration = fmt.Sprintf("%d rounds", *e.Duration)
		}
		return fmt.Sprintf("%s applied %s %+d to %s (%s).", e.SourceID, e.Stat, e.Value, e.TargetID, duration)

	case EntityFled:
		return fmt.Sprintf("%s fled the battle.", e.CombatantID)

	case EntityDied:
		return fmt.Sprintf("%s was killed!", e.CombatantID)

	case MoraleChecked:
		outcome := "failed"
		if e.Passed {
			outcome = "passed"
		}
		return fmt.Sprintf("Monster morale check (%s): rolled %d vs %d, %s.", e.Trigger, e.Roll, e.MonsterMorale, outcome)

	case ForcedIntentQueued:
		return fmt.Sprintf("Forced intent queued for %s (%s).", e.CombatantID, e.Reason)

	case VictoryDetermined:
		switch e.Outcome {
		case OutcomePartyVictory:
			return "The party is victorious!"
		case OutcomeOppositionVictory:
			return "The party has been defeated."
		default:
			return "Encounter ended in a fault."
		}

	case EncounterFaulted:
		return fmt.Sprintf("FAULT in %s: [%s] %s", e.State, e.ErrorType, e.Message)

	default:
		return fmt.Sprintf("%+v", ev)
	}
}

// FormatAll joins FormatEvent over events with newlines, for handing a
// full step's (or encounter's) log to a battle summary.
func FormatAll(events []Event) string {
	lines := make([]string, len(events))
	for i, e := range events {
		lines[i] = FormatEvent(e)
	}
	return strings.Join(lines, "\n")
}
