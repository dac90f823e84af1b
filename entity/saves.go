// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package entity

import "github.com/osrkit/combat/spells"

// levelBand is an inclusive [Low, High] range of class levels sharing
// one row of the saving-throw table.
type levelBand struct {
	Low, High int
}

func (b levelBand) contains(level int) bool { return level >= b.Low && level <= b.High }

type saveRow map[spells.AttackType]int

var savingThrowTable = map[string][]struct {
	Band levelBand
	Row  saveRow
}{
	"cleric": {
		{levelBand{1, 4}, saveRow{spells.AttackDeathRayPoison: 11, spells.AttackMagicWands: 12, spells.AttackParalysisTurnToStone: 14, spells.AttackDragonBreath: 16, spells.AttackRodsStavesSpells: 15}},
		{levelBand{5, 8}, saveRow{spells.AttackDeathRayPoison: 9, spells.AttackMagicWands: 10, spells.AttackParalysisTurnToStone: 12, spells.AttackDragonBreath: 14, spells.AttackRodsStavesSpells: 12}},
		{levelBand{9, 12}, saveRow{spells.AttackDeathRayPoison: 6, spells.AttackMagicWands: 7, spells.AttackParalysisTurnToStone: 9, spells.AttackDragonBreath: 11, spells.AttackRodsStavesSpells: 9}},
		{levelBand{13, 16}, saveRow{spells.AttackDeathRayPoison: 3, spells.AttackMagicWands: 5, spells.AttackParalysisTurnToStone: 7, spells.AttackDragonBreath: 8, spells.AttackRodsStavesSpells: 7}},
	},
	"fighter": {
		{levelBand{1, 3}, saveRow{spells.AttackDeathRayPoison: 12, spells.AttackMagicWands: 13, spells.AttackParalysisTurnToStone: 14, spells.AttackDragonBreath: 15, spells.AttackRodsStavesSpells: 16}},
		{levelBand{4, 6}, saveRow{spells.AttackDeathRayPoison: 10, spells.AttackMagicWands: 11, spells.AttackParalysisTurnToStone: 12, spells.AttackDragonBreath: 13, spells.AttackRodsStavesSpells: 14}},
		{levelBand{7, 9}, saveRow{spells.AttackDeathRayPoison: 8, spells.AttackMagicWands: 9, spells.AttackParalysisTurnToStone: 10, spells.AttackDragonBreath: 10, spells.AttackRodsStavesSpells: 12}},
		{levelBand{10, 12}, saveRow{spells.AttackDeathRayPoison: 6, spells.AttackMagicWands: 7, spells.AttackParalysisTurnToStone: 8, spells.AttackDragonBreath: 8, spells.AttackRodsStavesSpells: 10}},
		{levelBand{13, 15}, saveRow{spells.AttackDeathRayPoison: 4, spells.AttackMagicWands: 5, spells.AttackParalysisTurnToStone: 6, spells.AttackDragonBreath: 5, spells.AttackRodsStavesSpells: 8}},
	},
	"magic_user": {
		{levelBand{1, 5}, saveRow{spells.AttackDeathRayPoison: 13, spells.AttackMagicWands: 14, spells.AttackParalysisTurnToStone: 13, spells.AttackDragonBreath: 16, spells.AttackRodsStavesSpells: 15}},
		{levelBand{6, 10}, saveRow{spells.AttackDeathRayPoison: 11, spells.AttackMagicWands: 12, spells.AttackParalysisTurnToStone: 11, spells.AttackDragonBreath: 14, spells.AttackRodsStavesSpells: 12}},
		{levelBand{11, 15}, saveRow{spells.AttackDeathRayPoison: 8, spells.AttackMagicWands: 9, spells.AttackParalysisTurnToStone: 8, spells.AttackDragonBreath: 11, spells.AttackRodsStavesSpells: 8}},
	},
	"thief": {
		{levelBand{1, 4}, saveRow{spells.AttackDeathRayPoison: 13, spells.AttackMagicWands: 14, spells.AttackParalysisTurnToStone: 13, spells.AttackDragonBreath: 16, spells.AttackRodsStavesSpells: 15}},
		{levelBand{5, 8}, saveRow{spells.AttackDeathRayPoison: 12, spells.AttackMagicWands: 13, spells.AttackParalysisTurnToStone: 11, spells.AttackDragonBreath: 14, spells.AttackRodsStavesSpells: 13}},
		{levelBand{9, 12}, saveRow{spells.AttackDeathRayPoison: 10, spells.AttackMagicWands: 11, spells.AttackParalysisTurnToStone: 9, spells.AttackDragonBreath: 12, spells.AttackRodsStavesSpells: 10}},
		{levelBand{13, 16}, saveRow{spells.AttackDeathRayPoison: 8, spells.AttackMagicWands: 9, spells.AttackParalysisTurnToStone: 7, spells.AttackDragonBreath: 10, spells.AttackRodsStavesSpells: 8}},
	},
	"elf": {
		{levelBand{1, 3}, saveRow{spells.AttackDeathRayPoison: 12, spells.AttackMagicWands: 13, spells.AttackParalysisTurnToStone: 13, spells.AttackDragonBreath: 15, spells.AttackRodsStavesSpells: 15}},
		{levelBand{4, 6}, saveRow{spells.AttackDeathRayPoison: 10, spells.AttackMagicWands: 11, spells.AttackParalysisTurnToStone: 11, spells.AttackDragonBreath: 13, spells.AttackRodsStavesSpells: 12}},
		{levelBand{7, 9}, saveRow{spells.AttackDeathRayPoison: 8, spells.AttackMagicWands: 9, spells.AttackParalysisTurnToStone: 9, spells.AttackDragonBreath: 10, spells.AttackRodsStavesSpells: 10}},
		{levelBand{10, 10}, saveRow{spells.AttackDeathRayPoison: 6, spells.AttackMagicWands: 7, spells.AttackParalysisTurnToStone: 8, spells.AttackDragonBreath: 8, spells.AttackRodsStavesSpells: 8}},
	},
	"dwarf": {
		{levelBand{1, 3}, saveRow{spells.AttackDeathRayPoison: 8, spells.AttackMagicWands: 9, spells.AttackParalysisTurnToStone: 10, spells.AttackDragonBreath: 13, spells.AttackRodsStavesSpells: 12}},
		{levelBand{4, 6}, saveRow{spells.AttackDeathRayPoison: 6, spells.AttackMagicWands: 7, spells.AttackParalysisTurnToStone: 8, spells.AttackDragonBreath: 10, spells.AttackRodsStavesSpells: 10}},
		{levelBand{7, 9}, saveRow{spells.AttackDeathRayPoison: 4, spells.AttackMagicWands: 5, spells.AttackParalysisTurnToStone: 6, spells.AttackDragonBreath: 7, spells.AttackRodsStavesSpells: 8}},
		{levelBand{10, 12}, saveRow{spells.AttackDeathRayPoison: 2, spells.AttackMagicWands: 3, spells.AttackParalysisTurnToStone: 4, spells.AttackDragonBreath: 4, spells.AttackRodsStavesSpells: 6}},
	},
}

func init() {
	savingThrowTable["halfling"] = savingThrowTable["dwarf"]
}

// savingThrowFor returns the d20 total needed to save as className at
// level against attackType, falling back to the fighter table for an
// unrecognized class and the table's last band for an out-of-range level.
func savingThrowFor(className string, level int, attackType spells.AttackType) int {
	rows, ok := savingThrowTable[className]
	if !ok {
		rows = savingThrowTable["fighter"]
	}
	for _, r := range rows {
		if r.Band.contains(level) {
			return r.Row[attackType]
		}
	}
	return rows[len(rows)-1].Row[attackType]
}
