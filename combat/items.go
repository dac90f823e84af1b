// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package combat

// ThrowableItem describes a small static catalog entry for a throwable
// weapon usable via the use-item intent.
type ThrowableItem struct {
	Name      string
	DamageDie string
}

// ThrowableItemTable is the static table of throwable items, keyed by
// name, consulted by both choice generation and UseItemAction.
var ThrowableItemTable = map[string]ThrowableItem{
	"dagger":     {Name: "dagger", DamageDie: "1d4"},
	"hand axe":   {Name: "hand axe", DamageDie: "1d6"},
	"oil flask":  {Name: "oil flask", DamageDie: "2d6"},
	"holy water": {Name: "holy water", DamageDie: "2d6"},
}
