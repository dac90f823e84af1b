// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package combat

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/osrkit/combat/dice"
	"github.com/osrkit/combat/rpgerr"
	"github.com/osrkit/combat/spells"
)

// EngineOption configures a CombatEngine at construction time.
type EngineOption func(*CombatEngine)

// WithRoller swaps the engine's dice source, primarily for deterministic tests.
func WithRoller(r dice.Roller) EngineOption {
	return func(e *CombatEngine) { e.roller = r }
}

// WithAutoResolve sets whether PC turns are also routed through the
// tactical provider instead of suspending for external input.
func WithAutoResolve(auto bool) EngineOption {
	return func(e *CombatEngine) { e.autoResolve = auto }
}

// WithTacticalProvider overrides the default random tactical provider.
func WithTacticalProvider(p TacticalProvider) EngineOption {
	return func(e *CombatEngine) { e.tactical = p }
}

// WithLogger attaches a structured logger for transition and fault logging.
func WithLogger(l *zap.SugaredLogger) EngineOption {
	return func(e *CombatEngine) { e.log = l }
}

// WithCatalog overrides the default spell catalog.
func WithCatalog(c *spells.Catalog) EngineOption {
	return func(e *CombatEngine) { e.catalog = c }
}

// CombatEngine is the finite-state transformer driving one encounter
// from INIT to a terminal outcome. It is single-threaded and purely
// cooperative: all mutation happens inside Step.
type CombatEngine struct {
	ctx         *Context
	state       EncounterState
	outcome     Outcome
	encounterID string

	roller      dice.Roller
	autoResolve bool
	tactical    TacticalProvider
	catalog     *spells.Catalog
	log         *zap.SugaredLogger

	pendingIntent    Intent
	pendingWasForced bool
	pendingAction    Action
	pendingEffects   []Effect
	deferredEvents   []Event

	newMonsterDeath bool
}

// NewCombatEngine builds an engine ready to run INIT on its first Step call.
func NewCombatEngine(pcParty PartySource, monsterParty MonsterPartySource, opts ...EngineOption) *CombatEngine {
	e := &CombatEngine{
		state:       StateInit,
		encounterID: uuid.NewString(),
		roller:      dice.NewRoller(),
		autoResolve: true,
		catalog:     spells.DefaultCatalog(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.tactical == nil {
		e.tactical = NewRandomTactician(e.roller)
	}
	e.ctx = NewContext(pcParty.Seeds(), monsterParty.Seeds(), monsterParty.MoraleScore())
	return e
}

// State returns the engine's current state.
func (e *CombatEngine) State() EncounterState { return e.state }

// Outcome returns the terminal outcome and whether the encounter has ended.
func (e *CombatEngine) Outcome() (Outcome, bool) { return e.outcome, e.state == StateEnded }

// GetView returns a frozen snapshot of the encounter suitable for UI rendering.
func (e *CombatEngine) GetView() CombatView {
	return BuildView(e.ctx, e.state)
}

// errCtx builds a context.Context carrying the encounter id, current
// round, and current combatant as rpgerr metadata, so every fault raised
// through it arrives with the same diagnostic fields a host process
// would otherwise have to reconstruct from the event log.
func (e *CombatEngine) errCtx() context.Context {
	return rpgerr.WithMetadata(context.Background(),
		rpgerr.Meta("encounter_id", e.encounterID),
		rpgerr.Meta("round", e.ctx.Round),
		rpgerr.Meta("current_combatant_id", e.ctx.CurrentCombatantID),
		rpgerr.Meta("state", string(e.state)),
	)
}

// QueueForcedIntent stashes an intent for combatantID's next TURN_START,
// bypassing normal choice generation, and defers a ForcedIntentQueued
// event to the next Step call's batch.
func (e *CombatEngine) QueueForcedIntent(combatantID string, intent Intent, reason string) (ForcedIntentQueued, error) {
	if e.state == StateEnded {
		return ForcedIntentQueued{}, rpgerr.NewCtx(e.errCtx(), rpgerr.CodeInvalidState, "cannot queue a forced intent after the encounter has ended")
	}
	e.ctx.ForcedIntents[combatantID] = forcedEntry{Intent: intent, Reason: reason}
	ev := ForcedIntentQueued{CombatantID: combatantID, Reason: reason}
	e.deferredEvents = append(e.deferredEvents, ev)
	return ev, nil
}

// Step runs one state-machine transition, optionally consuming a
// caller-supplied intent if the engine is suspended at AWAIT_INTENT.
func (e *CombatEngine) Step(intent Intent) StepResult {
	if e.state == StateEnded {
		return StepResult{State: StateEnded}
	}

	events := append([]Event{}, e.deferredEvents...)
	e.deferredEvents = nil

	func() {
		defer func() {
			if r := recover(); r != nil {
				events = append(events, e.fault(r))
			}
		}()
		events = append(events, e.dispatch(intent)...)
	}()

	if e.log != nil {
		e.log.Debugw("combat step", "state", string(e.state), "events", len(events))
	}

	result := StepResult{State: e.state, Events: events}
	if e.state == StateAwaitIntent {
		result.NeedsIntent = true
		result.PendingCombatantID = e.ctx.CurrentCombatantID
	}
	return result
}

// StepUntilDecision loops Step until the engine reaches AWAIT_INTENT or
// ENDED, or faults the engine if maxSteps is exhausted first. Only the
// first iteration consumes the supplied intent.
func (e *CombatEngine) StepUntilDecision(intent Intent, maxSteps int) ([]StepResult, error) {
	if maxSteps <= 0 {
		maxSteps = 64
	}

	var results []StepResult
	first := true
	for i := 0; i < maxSteps; i++ {
		var use Intent
		if first {
			use = intent
			first = false
		}
		r := e.Step(use)
		results = append(results, r)
		if r.State == StateAwaitIntent || r.State == StateEnded {
			return results, nil
		}
	}

	msg := fmt.Sprintf("step_until_decision exceeded max_steps=%d", maxSteps)
	ev := EncounterFaulted{State: string(e.state), ErrorType: "loop_exhausted", Message: msg}
	e.state = StateEnded
	e.outcome = OutcomeFaulted
	results = append(results, StepResult{State: StateEnded, Events: []Event{ev}})
	if e.log != nil {
		e.log.Warnw("encounter faulted", "reason", msg)
	}
	return results, rpgerr.NewCtx(e.errCtx(), rpgerr.CodeInternal, msg)
}

func (e *CombatEngine) fault(r any) Event {
	err := rpgerr.NewfCtx(e.errCtx(), rpgerr.CodeInternal, "panic in state %s: %v", e.state, r)
	ev := EncounterFaulted{State: string(e.state), ErrorType: "panic", Message: err.Error()}
	if e.log != nil {
		e.log.Warnw("encounter faulted", "state", ev.State, "message", ev.Message)
	}
	e.state = StateEnded
	e.outcome = OutcomeFaulted
	return ev
}

func (e *CombatEngine) dispatch(intent Intent) []Event {
	switch e.state {
	case StateInit:
		return e.handleInit()
	case StateRoundStart:
		return e.handleRoundStart()
	case StateTurnStart:
		return e.handleTurnStart()
	case StateAwaitIntent:
		return e.handleAwaitIntent(intent)
	case StateValidateIntent:
		return e.handleValidateIntent()
	case StateExecuteAction:
		return e.handleExecuteAction()
	case StateApplyEffects:
		return e.handleApplyEffects()
	case StateCheckDeaths:
		return e.handleCheckDeaths()
	case StateCheckMorale:
		return e.handleCheckMorale()
	case StateCheckVictory:
		return e.handleCheckVictory()
	default:
		panic(fmt.Sprintf("combat: unknown state %s", e.state))
	}
}

func (e *CombatEngine) buildAction(intent Intent) Action {
	switch it := intent.(type) {
	case MeleeAttackIntent:
		return MeleeAttackAction{ActorID: it.ActorID, TargetID: it.TargetID}
	case RangedAttackIntent:
		return RangedAttackAction{ActorID: it.ActorID, TargetID: it.TargetID}
	case CastSpellIntent:
		return CastSpellAction{ActorID: it.ActorID, SpellID: it.SpellID, Level: it.Level, TargetIDs: it.TargetIDs, Catalog: e.catalog}
	case UseItemIntent:
		return UseItemAction{ActorID: it.ActorID, ItemName: it.ItemName, TargetID: it.TargetID}
	case TurnUndeadIntent:
		return TurnUndeadAction{ActorID: it.ActorID}
	case FleeIntent:
		return FleeAction{ActorID: it.ActorID}
	default:
		return nil
	}
}

func (e *CombatEngine) handleInit() []Event {
	var events []Event
	events = append(events, EncounterStarted{EncounterID: e.encounterID})

	pcRoll, _ := e.roller.Roll(6)
	monsterRoll, _ := e.roller.Roll(6)
	events = append(events, SurpriseRolled{
		PCRoll: pcRoll, MonsterRoll: monsterRoll,
		PCSurprised:      monsterRoll > pcRoll,
		MonsterSurprised: pcRoll > monsterRoll,
	})

	e.state = StateRoundStart
	return events
}

func (e *CombatEngine) handleRoundStart() []Event {
	var events []Event

	e.ctx.Round++
	events = append(events, RoundStarted{Round: e.ctx.Round})

	for _, exp := range e.ctx.Conditions.TickRound() {
		events = append(events, ConditionExpired{TargetID: exp.TargetID, ConditionID: exp.ConditionID, Reason: "duration"})
	}
	for _, exp := range e.ctx.Modifiers.TickRound() {
		events = append(events, ModifierExpired{TargetID: exp.TargetID, ModifierID: exp.ModifierID})
	}

	living := e.ctx.Living()
	type rolledEntry struct {
		id   string
		roll int
	}
	rolls := make([]rolledEntry, len(living))
	for i, id := range living {
		rolls[i] = rolledEntry{id: id, roll: e.ctx.Get(id).Entity.GetInitiativeRoll()}
	}
	sort.SliceStable(rolls, func(i, j int) bool { return rolls[i].roll > rolls[j].roll })

	entries := make([]InitiativeEntry, len(rolls))
	queue := make([]string, len(rolls))
	for i, r := range rolls {
		entries[i] = InitiativeEntry{CombatantID: r.id, Roll: r.roll}
		queue[i] = r.id
	}
	events = append(events, InitiativeRolled{Order: entries})

	e.ctx.TurnQueue = queue
	events = append(events, TurnQueueBuilt{Queue: append([]string{}, queue...)})

	e.state = StateTurnStart
	return events
}

func (e *CombatEngine) handleTurnStart() []Event {
	var events []Event
	for {
		if len(e.ctx.TurnQueue) == 0 {
			e.ctx.CurrentCombatantID = ""
			e.state = StateCheckVictory
			return events
		}

		id := e.ctx.TurnQueue[0]
		e.ctx.TurnQueue = e.ctx.TurnQueue[1:]
		e.ctx.CurrentCombatantID = id
		cb := e.ctx.Get(id)

		if !cb.Entity.IsAlive() {
			events = append(events, TurnSkipped{CombatantID: id, Reason: "dead"})
			continue
		}
		if cb.HasFled {
			events = append(events, TurnSkipped{CombatantID: id, Reason: "fled"})
			continue
		}
		if e.ctx.Conditions.ShouldSkipTurn(id) {
			reason, _ := e.ctx.Conditions.SkipReason(id)
			events = append(events, TurnSkipped{CombatantID: id, Reason: reason})
			continue
		}

		events = append(events, TurnStarted{CombatantID: id})

		if forced, ok := e.ctx.ForcedIntents[id]; ok {
			delete(e.ctx.ForcedIntents, id)
			events = append(events, ForcedIntentApplied{CombatantID: id, Reason: forced.Reason})
			e.pendingIntent = forced.Intent
			e.pendingWasForced = true
			e.state = StateValidateIntent
			return events
		}

		choices := BuildChoices(e.ctx, id, e.catalog)
		if e.autoResolve || cb.Side == SideMonster {
			e.pendingIntent = e.tactical.ChooseIntent(id, choices, e.ctx)
			e.pendingWasForced = false
			e.state = StateValidateIntent
			return events
		}

		events = append(events, NeedAction{CombatantID: id, Available: choices})
		e.state = StateAwaitIntent
		return events
	}
}

func (e *CombatEngine) handleAwaitIntent(intent Intent) []Event {
	if intent == nil {
		return nil
	}
	e.pendingIntent = intent
	e.pendingWasForced = false
	e.state = StateValidateIntent
	return nil
}

func (e *CombatEngine) handleValidateIntent() []Event {
	intent := e.pendingIntent
	e.pendingIntent = nil

	if intent == nil {
		events := []Event{ActionRejected{
			CombatantID: e.ctx.CurrentCombatantID,
			Reasons:     []Rejection{reject(NoIntent, "no intent supplied")},
		}}
		e.state = StateAwaitIntent
		return events
	}

	actorID := intent.Actor()
	actor := e.ctx.Get(actorID)

	if actor != nil && actor.Side == SideMonster && intent.Kind() != IntentMelee && intent.Kind() != IntentFlee {
		events := []Event{ActionRejected{
			CombatantID: actorID,
			Reasons:     []Rejection{reject(MonsterActionNotSupported, "monsters may only melee or flee")},
		}}
		return e.rejectIntent(events)
	}

	action := e.buildAction(intent)
	if action == nil {
		events := []Event{ActionRejected{
			CombatantID: actorID,
			Reasons:     []Rejection{reject(UnsupportedIntent, "unsupported intent kind")},
		}}
		return e.rejectIntent(events)
	}

	reasons := action.Validate(e.ctx)
	if len(reasons) > 0 {
		events := []Event{ActionRejected{CombatantID: actorID, Reasons: reasons}}
		return e.rejectIntent(events)
	}

	e.pendingAction = action
	e.state = StateExecuteAction
	return nil
}

// rejectIntent applies the shared VALIDATE_INTENT rejection policy: a
// forced intent that was rejected falls back to normal choice
// generation for the same combatant; any other rejection suspends at
// AWAIT_INTENT.
func (e *CombatEngine) rejectIntent(events []Event) []Event {
	if !e.pendingWasForced {
		e.state = StateAwaitIntent
		return events
	}

	e.pendingWasForced = false
	id := e.ctx.CurrentCombatantID
	cb := e.ctx.Get(id)
	choices := BuildChoices(e.ctx, id, e.catalog)

	if e.autoResolve || (cb != nil && cb.Side == SideMonster) {
		e.pendingIntent = e.tactical.ChooseIntent(id, choices, e.ctx)
		e.state = StateValidateIntent
		return events
	}

	events = append(events, NeedAction{CombatantID: id, Available: choices})
	e.state = StateAwaitIntent
	return events
}

func (e *CombatEngine) handleExecuteAction() []Event {
	events, effects := e.pendingAction.Execute(e.ctx, e.roller)
	e.pendingAction = nil
	e.pendingEffects = effects
	e.state = StateApplyEffects
	return events
}

func (e *CombatEngine) handleApplyEffects() []Event {
	var events []Event
	blocked := false

	for _, eff := range e.pendingEffects {
		switch ef := eff.(type) {
		case DamageEffect:
			if blocked {
				continue
			}
			target := e.ctx.Get(ef.TargetID)
			target.Entity.ApplyDamage(ef.Amount)
			if ef.Amount > 0 {
				for _, cid := range e.ctx.Conditions.RemoveBreakOnDamage(ef.TargetID) {
					events = append(events, ConditionExpired{TargetID: ef.TargetID, ConditionID: cid, Reason: "damage"})
				}
			}
			events = append(events, DamageApplied{TargetID: ef.TargetID, Amount: ef.Amount, Remaining: target.Entity.HitPoints()})

		case HealEffect:
			if blocked {
				continue
			}
			target := e.ctx.Get(ef.TargetID)
			target.Entity.Heal(ef.Amount)
			events = append(events, HealingApplied{TargetID: ef.TargetID, Amount: ef.Amount, Remaining: target.Entity.HitPoints()})

		case ConsumeSlotEffect:
			caster := e.ctx.Get(ef.CasterID)
			sc, ok := caster.Entity.(SpellCaster)
			if !ok || !sc.UseSpellSlot(ef.Level) {
				events = append(events, ActionRejected{
					CombatantID: ef.CasterID,
					Reasons:     []Rejection{reject(NoSpellSlot, "no spell slot remaining")},
				})
				blocked = true
				continue
			}
			e.ctx.spendCachedSlot(ef.CasterID, ef.Level)
			events = append(events, SpellSlotConsumed{CasterID: ef.CasterID, Level: ef.Level, Remaining: sc.RemainingSlots(ef.Level)})

		case ApplyConditionEffect:
			if blocked {
				continue
			}
			behavior := ConditionRegistry[ef.ConditionID]
			e.ctx.Conditions.Add(ef.TargetID, &ActiveCondition{
				ConditionID:     ef.ConditionID,
				SourceID:        ef.SourceID,
				RemainingRounds: ef.Duration,
				SkipTurn:        behavior.SkipTurn,
				BreakOnDamage:   behavior.BreakOnDamage,
			})
			events = append(events, ConditionApplied{SourceID: ef.SourceID, TargetID: ef.TargetID, ConditionID: ef.ConditionID, Duration: ef.Duration})

		case ApplyModifierEffect:
			if blocked {
				continue
			}
			e.ctx.Modifiers.Add(ef.TargetID, &ActiveModifier{
				ModifierID:      ef.ModifierID,
				SourceID:        ef.SourceID,
				Stat:            ef.Stat,
				Value:           ef.Value,
				RemainingRounds: ef.Duration,
			})
			events = append(events, ModifierApplied{SourceID: ef.SourceID, TargetID: ef.TargetID, ModifierID: ef.ModifierID, Stat: ef.Stat, Value: ef.Value, Duration: ef.Duration})

		case FleeEffect:
			if blocked {
				continue
			}
			target := e.ctx.Get(ef.ActorID)
			target.HasFled = true
			events = append(events, EntityFled{CombatantID: ef.ActorID})

		default:
			events = append(events, ActionRejected{
				CombatantID: e.ctx.CurrentCombatantID,
				Reasons:     []Rejection{reject(UnknownEffectType, "unknown effect type")},
			})
		}
	}

	e.pendingEffects = nil
	e.state = StateCheckDeaths
	return events
}

func (e *CombatEngine) handleCheckDeaths() []Event {
	var events []Event
	for _, id := range e.ctx.Order {
		cb := e.ctx.Combatants[id]
		if !cb.Entity.IsAlive() && !e.ctx.AnnouncedDeaths[id] {
			e.ctx.AnnouncedDeaths[id] = true
			events = append(events, EntityDied{CombatantID: id})
			if cb.Side == SideMonster {
				e.newMonsterDeath = true
			}
		}
	}
	e.state = StateCheckMorale
	return events
}

func (e *CombatEngine) totalMonsters() int {
	n := 0
	for _, id := range e.ctx.Order {
		if e.ctx.Combatants[id].Side == SideMonster {
			n++
		}
	}
	return n
}

func (e *CombatEngine) incapacitatedMonsters() int {
	n := 0
	for _, id := range e.ctx.Order {
		cb := e.ctx.Combatants[id]
		if cb.Side == SideMonster && (!cb.Entity.IsAlive() || cb.HasFled) {
			n++
		}
	}
	return n
}

func (e *CombatEngine) handleCheckMorale() []Event {
	var events []Event
	defer func() { e.state = StateCheckVictory }()

	if e.ctx.Morale.IsImmune || !e.newMonsterDeath {
		return events
	}
	e.newMonsterDeath = false

	trigger := ""
	switch {
	case !e.ctx.Morale.FirstDeathChecked:
		trigger = "first_death"
		e.ctx.Morale.FirstDeathChecked = true
	case !e.ctx.Morale.HalfDeadChecked && e.incapacitatedMonsters()*2 >= e.totalMonsters():
		trigger = "half_incapacitated"
		e.ctx.Morale.HalfDeadChecked = true
	default:
		return events
	}

	roll := rollNotation(e.roller, "2d6")
	passed := roll <= e.ctx.Morale.MoraleScore
	nowImmune := false
	if passed {
		nowImmune = e.ctx.Morale.RecordPass()
	}
	events = append(events, MoraleChecked{
		MonsterMorale:     e.ctx.Morale.MoraleScore,
		Roll:              roll,
		Passed:            passed,
		Trigger:           trigger,
		ChecksPassedTotal: e.ctx.Morale.ChecksPassed,
		NowImmune:         nowImmune,
	})

	if !passed {
		for _, id := range e.ctx.LivingOnSide(SideMonster) {
			_, _ = e.QueueForcedIntent(id, FleeIntent{ActorID: id}, "morale_failed")
		}
	}
	return events
}

func (e *CombatEngine) handleCheckVictory() []Event {
	var events []Event

	if len(e.ctx.LivingOnSide(SideMonster)) == 0 {
		events = append(events, VictoryDetermined{Outcome: OutcomePartyVictory})
		e.outcome = OutcomePartyVictory
		e.state = StateEnded
		return events
	}
	if len(e.ctx.LivingOnSide(SidePC)) == 0 {
		events = append(events, VictoryDetermined{Outcome: OutcomeOppositionVictory})
		e.outcome = OutcomeOppositionVictory
		e.state = StateEnded
		return events
	}

	if len(e.ctx.TurnQueue) > 0 {
		e.state = StateTurnStart
	} else {
		e.state = StateRoundStart
	}
	return events
}
