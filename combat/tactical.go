// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package combat

import "github.com/osrkit/combat/dice"

// TacticalProvider chooses an intent from the set of available choices
// for an auto-resolved combatant's turn. Implementations must be total:
// given a non-empty choice list they must always return a valid intent.
type TacticalProvider interface {
	ChooseIntent(combatantID string, choices []ActionChoice, ctx *Context) Intent
}

// RandomTactician is the default tactical provider: it picks uniformly
// at random among the offered choices, using the engine's own dice
// roller so auto-resolved turns stay within the encounter's
// deterministic dice stream.
type RandomTactician struct {
	Roller dice.Roller
}

// NewRandomTactician builds a RandomTactician backed by roller.
func NewRandomTactician(roller dice.Roller) *RandomTactician {
	return &RandomTactician{Roller: roller}
}

func (p *RandomTactician) ChooseIntent(_ string, choices []ActionChoice, _ *Context) Intent {
	if len(choices) == 0 {
		return nil
	}
	if len(choices) == 1 {
		return choices[0].Intent
	}
	n, err := p.Roller.Roll(len(choices))
	if err != nil {
		return choices[0].Intent
	}
	return choices[n-1].Intent
}
