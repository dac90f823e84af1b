// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package combat

import (
	"sort"

	"github.com/osrkit/combat/dice"
)

// HDCandidate pairs a candidate id with its HD, for ResolveHDPool.
type HDCandidate struct {
	ID string
	HD int
}

// effectiveHD applies the "HD of 0 counts as 1" rule.
func effectiveHD(hd int) int {
	if hd <= 0 {
		return 1
	}
	return hd
}

// GetCombatantHD returns the entity's HD for monsters or class level for
// PCs, with a minimum of 1.
func GetCombatantHD(e Entity) int {
	return effectiveHD(e.HitDice())
}

// ResolveRandomGroup uniformly picks up to count items from candidates
// without replacement, preserving none of the original order (the
// selection order is the roll order). If count is at least as large as
// len(candidates), every candidate is returned in its original order.
func ResolveRandomGroup(roller dice.Roller, candidates []string, count int) []string {
	if count >= len(candidates) {
		out := make([]string, len(candidates))
		copy(out, candidates)
		return out
	}
	if count <= 0 {
		return nil
	}
	pool := make([]string, len(candidates))
	copy(pool, candidates)

	picked := make([]string, 0, count)
	for i := 0; i < count && len(pool) > 0; i++ {
		n, err := roller.Roll(len(pool))
		if err != nil {
			break
		}
		idx := n - 1
		picked = append(picked, pool[idx])
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	return picked
}

// ResolveHDPool sorts candidates ascending by HD (stable on ties, so
// original order survives), then greedily includes each until the
// cumulative HD would exceed budget. A budget of 0 returns empty; a
// budget at or above the total HD returns every candidate.
func ResolveHDPool(candidates []HDCandidate, budget int) []string {
	if budget <= 0 {
		return nil
	}

	sorted := make([]HDCandidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return effectiveHD(sorted[i].HD) < effectiveHD(sorted[j].HD)
	})

	var out []string
	cumulative := 0
	for _, c := range sorted {
		hd := effectiveHD(c.HD)
		if cumulative+hd > budget {
			break
		}
		cumulative += hd
		out = append(out, c.ID)
	}
	return out
}
