// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package main provides a demonstration binary that drives one
// randomly-tactical encounter from INIT to a terminal outcome, logging
// every step and printing the formatted event log as it plays out.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/osrkit/combat/combat"
	"github.com/osrkit/combat/config"
	"github.com/osrkit/combat/dice"
	"github.com/osrkit/combat/entity"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := newLogger()
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	sugar.Infow("starting combat simulation",
		"auto_resolve_intents", cfg.AutoResolveIntents,
		"max_steps", cfg.MaxSteps,
		"dice_mode", cfg.DiceMode,
	)

	var roller dice.Roller
	if cfg.DiceMode == "fixed" {
		roller = dice.NewFixedRoller(cfg.FixedRolls...)
	} else {
		roller = dice.NewRoller()
	}

	party, monsters := demoEncounter(roller)

	// The demo has no human operator to hand AWAIT_INTENT turns to, so it
	// auto-resolves PC turns through the random tactician too regardless
	// of cfg.AutoResolveIntents, which governs engines embedded in a host
	// process that supplies its own intents.
	engine := combat.NewCombatEngine(party, monsters,
		combat.WithRoller(roller),
		combat.WithAutoResolve(true),
		combat.WithLogger(sugar),
	)

	var allEvents []combat.Event
	results, err := engine.StepUntilDecision(nil, cfg.MaxSteps)
	allEvents = append(allEvents, flattenEvents(results)...)
	if err != nil {
		sugar.Errorw("encounter faulted", "error", err)
	}

	fmt.Println(combat.FormatAll(allEvents))

	outcome, ended := engine.Outcome()
	sugar.Infow("combat simulation complete",
		"outcome", outcome,
		"ended", ended,
		"elapsed", time.Since(start),
	)
}

func flattenEvents(results []combat.StepResult) []combat.Event {
	var events []combat.Event
	for _, r := range results {
		events = append(events, r.Events...)
	}
	return events
}

func newLogger() (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapCfg.Build()
}

// demoEncounter builds a small fixed scenario: a fighter, a cleric and a
// magic-user against four goblins, for a quick end-to-end run.
func demoEncounter(roller dice.Roller) (*entity.Party, *entity.MonsterParty) {
	party := entity.NewParty(
		&entity.PlayerCharacter{NameValue: "Aldric", Class: "fighter", Level: 3, HP: 24, MaxHP: 24, BaseAC: 4, Roller: roller, MeleeDie: "1d8"},
		&entity.PlayerCharacter{NameValue: "Brynn", Class: "cleric", Level: 3, HP: 18, MaxHP: 18, BaseAC: 5, Roller: roller, MeleeDie: "1d6"},
		&entity.PlayerCharacter{NameValue: "Corwin", Class: "magic_user", Level: 3, HP: 10, MaxHP: 10, BaseAC: 9, Roller: roller, MeleeDie: "1d4",
			Spells: entity.NewSpellBook([]string{"magic_missile"}, map[int]int{1: 2})},
	)

	goblinBlock := entity.MonsterStatBlock{
		Name: "goblin", ArmorClass: 6, HitDice: 1, HitDieNotation: "1d6",
		AttacksPerRound: 1, DamagePerAttackDie: "1d6", SaveAsClass: "fighter", SaveAsLevel: 1,
	}
	monsters := entity.NewMonsterParty(7,
		entity.NewMonster(goblinBlock, roller),
		entity.NewMonster(goblinBlock, roller),
		entity.NewMonster(goblinBlock, roller),
		entity.NewMonster(goblinBlock, roller),
	)

	return party, monsters
}
