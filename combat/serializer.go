// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package combat

// SerializeEvent renders ev as a {kind: <tag>, ...fields} map suitable
// for logging or telemetry. Enum-typed fields come out as their
// underlying string; *int durations come out as nil or int.
func SerializeEvent(ev Event) map[string]any {
	out := map[string]any{"kind": string(ev.Kind())}

	switch e := ev.(type) {
	case EncounterStarted:
		out["encounter_id"] = e.EncounterID
	case SurpriseRolled:
		out["pc_roll"] = e.PCRoll
		out["monster_roll"] = e.MonsterRoll
		out["pc_surprised"] = e.PCSurprised
		out["monster_surprised"] = e.MonsterSurprised
	case RoundStarted:
		out["round"] = e.Round
	case ConditionExpired:
		out["target_id"] = e.TargetID
		out["condition_id"] = e.ConditionID
		out["reason"] = e.Reason
	case ModifierExpired:
		out["target_id"] = e.TargetID
		out["modifier_id"] = e.ModifierID
	case InitiativeRolled:
		entries := make([]map[string]any, len(e.Order))
		for i, entry := range e.Order {
			entries[i] = map[string]any{"combatant_id": entry.CombatantID, "roll": entry.Roll}
		}
		out["order"] = entries
	case TurnQueueBuilt:
		out["queue"] = append([]string{}, e.Queue...)
	case TurnSkipped:
		out["combatant_id"] = e.CombatantID
		out["reason"] = e.Reason
	case TurnStarted:
		out["combatant_id"] = e.CombatantID
	case ForcedIntentApplied:
		out["combatant_id"] = e.CombatantID
		out["reason"] = e.Reason
	case NeedAction:
		out["combatant_id"] = e.CombatantID
		out["available_count"] = len(e.Available)
	case ActionRejected:
		out["combatant_id"] = e.CombatantID
		reasons := make([]map[string]any, len(e.Reasons))
		for i, r := range e.Reasons {
			reasons[i] = map[string]any{"code": string(r.Code), "message": r.Message}
		}
		out["reasons"] = reasons
	case AttackRolled:
		out["attacker_id"] = e.AttackerID
		out["target_id"] = e.TargetID
		out["roll"] = e.Roll
		out["needed"] = e.Needed
		out["hit"] = e.Hit
		out["critical"] = e.Critical
		out["fumble"] = e.Fumble
	case SpellCast:
		out["caster_id"] = e.CasterID
		out["spell_id"] = e.SpellID
		out["spell_name"] = e.SpellName
		out["target_ids"] = append([]string{}, e.TargetIDs...)
	case SavingThrowRolled:
		out["target_id"] = e.TargetID
		out["save_type"] = e.SaveType
		out["target_number"] = e.TargetNumber
		out["roll"] = e.Roll
		out["success"] = e.Success
		out["spell_name"] = e.SpellName
		out["penalty"] = e.Penalty
	case GroupTargetsResolved:
		out["spell_name"] = e.SpellName
		out["pool_roll"] = e.PoolRoll
		out["resolved_target_ids"] = append([]string{}, e.ResolvedTargetIDs...)
	case ItemUsed:
		out["actor_id"] = e.ActorID
		out["item_name"] = e.ItemName
		out["target_id"] = e.TargetID
	case TurnUndeadAttempted:
		out["actor_id"] = e.ActorID
		out["roll"] = e.Roll
		out["target_number"] = e.TargetNumber
		out["result"] = e.Result
	case UndeadTurned:
		out["target_id"] = e.TargetID
		out["destroyed"] = e.Destroyed
		out["hd_spent"] = e.HDSpent
	case DamageApplied:
		out["target_id"] = e.TargetID
		out["amount"] = e.Amount
		out["remaining"] = e.Remaining
	case HealingApplied:
		out["target_id"] = e.TargetID
		out["amount"] = e.Amount
		out["remaining"] = e.Remaining
	case SpellSlotConsumed:
		out["caster_id"] = e.CasterID
		out["level"] = e.Level
		out["remaining"] = e.Remaining
	case ConditionApplied:
		out["source_id"] = e.SourceID
		out["target_id"] = e.TargetID
		out["condition_id"] = e.ConditionID
		out["duration"] = durationField(e.Duration)
	case ModifierApplied:
		out["source_id"] = e.SourceID
		out["target_id"] = e.TargetID
		out["modifier_id"] = e.ModifierID
		out["stat"] = string(e.Stat)
		out["value"] = e.Value
		out["duration"] = durationField(e.Duration)
	case EntityFled:
		out["combatant_id"] = e.CombatantID
	case EntityDied:
		out["combatant_id"] = e.CombatantID
	case MoraleChecked:
		out["monster_morale"] = e.MonsterMorale
		out["roll"] = e.Roll
		out["modifier"] = e.Modifier
		out["passed"] = e.Passed
		out["trigger"] = e.Trigger
		out["checks_passed_total"] = e.ChecksPassedTotal
		out["now_immune"] = e.NowImmune
	case ForcedIntentQueued:
		out["combatant_id"] = e.CombatantID
		out["reason"] = e.Reason
	case VictoryDetermined:
		out["outcome"] = string(e.Outcome)
	case EncounterFaulted:
		out["state"] = e.State
		out["error_type"] = e.ErrorType
		out["message"] = e.Message
	}

	return out
}

func durationField(d *int) any {
	if d == nil {
		return nil
	}
	return *d
}
