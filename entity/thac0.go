// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package entity

// pcThac0Table gives each class's THAC0 ("to hit armor class 0") by
// level band. Fighter-type classes (fighter, dwarf, elf, halfling)
// improve fastest, cleric a step behind, thief and magic-user slowest --
// the standard B/X progression shape.
var pcThac0Table = map[string][]struct {
	Band  levelBand
	Thac0 int
}{
	"fighter": {
		{levelBand{1, 3}, 19}, {levelBand{4, 6}, 17}, {levelBand{7, 9}, 15},
		{levelBand{10, 12}, 13}, {levelBand{13, 15}, 11}, {levelBand{16, 18}, 9},
	},
	"cleric": {
		{levelBand{1, 4}, 19}, {levelBand{5, 8}, 17}, {levelBand{9, 12}, 15},
		{levelBand{13, 16}, 13},
	},
	"thief": {
		{levelBand{1, 4}, 19}, {levelBand{5, 8}, 18}, {levelBand{9, 12}, 16},
		{levelBand{13, 16}, 14},
	},
	"magic_user": {
		{levelBand{1, 5}, 19}, {levelBand{6, 10}, 18}, {levelBand{11, 15}, 16},
	},
}

func init() {
	pcThac0Table["elf"] = pcThac0Table["fighter"]
	pcThac0Table["dwarf"] = pcThac0Table["fighter"]
	pcThac0Table["halfling"] = pcThac0Table["fighter"]
}

// thac0For returns className's THAC0 at level, falling back to fighter
// for an unknown class and the table's last band beyond its range.
func thac0For(className string, level int) int {
	rows, ok := pcThac0Table[className]
	if !ok {
		rows = pcThac0Table["fighter"]
	}
	for _, r := range rows {
		if r.Band.contains(level) {
			return r.Thac0
		}
	}
	return rows[len(rows)-1].Thac0
}

// toHitTargetAC converts a THAC0 value into the d20 total needed to hit
// targetAC; 1 always misses, so 2 is the lowest possible requirement.
func toHitTargetAC(thac0, targetAC int) int {
	needed := thac0 - targetAC
	if needed < 2 {
		needed = 2
	}
	return needed
}

// monsterThac0Bands mirrors the source's hit-dice-keyed THAC0 table: HD
// up to 1 needs 19, each HD improves it by one up to 8 HD (12), then it
// improves by one every two HD down to 5 at 22 HD and above, matching
// monster.py's "N+ to N+1" banding.
var monsterThac0Bands = []int{
	19, 18, 17, 16, 15, 14, 13, 12, 12, 11,
	11, 10, 10, 9, 9, 8, 8, 7, 7, 6, 6, 5,
}

// monsterThac0 returns the THAC0 for a monster with the given hit dice.
func monsterThac0(hd int) int {
	if hd < 1 {
		hd = 1
	}
	idx := hd - 1
	if idx >= len(monsterThac0Bands) {
		idx = len(monsterThac0Bands) - 1
	}
	return monsterThac0Bands[idx]
}
