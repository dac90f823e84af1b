// Package dice provides dice notation parsing and random number generation
// for B/X-style tabletop RPG mechanics, without implementing any
// game-specific rules.
//
// Purpose:
// Every roll the combat engine makes — attacks, damage, saving throws,
// morale, initiative, spell pools — goes through a single Roller
// interface. Swapping the default CryptoRoller for a FixedRoller makes an
// entire encounter deterministic, which is what the engine's test suite
// relies on.
//
// Scope:
//   - Dice notation parsing (e.g., "3d6+2", "1d20-1")
//   - Cryptographically secure random generation
//   - Deterministic, pre-seeded generation for tests (FixedRoller)
//   - Roll results carrying both the individual dice and the total
//
// Non-Goals:
//   - Game-specific roll types: advantage/disadvantage, criticals, and
//     reroll rules belong to the combat engine, not this package
//   - Dice pool success-counting systems
//   - Probability/statistics tooling
//
// Example:
//
//	roller := dice.NewRoller()
//	result, err := roller.Roll(20)
//
//	// For deterministic tests:
//	fixed := dice.NewFixedRoller(4, 2)
//	pool, _ := dice.ParseNotation("2d6+3")
//	sum := pool.Roll(fixed)
//	// sum.Total() == 4 + 2 + 3 == 9 (the two fixed values plus the modifier)
package dice
