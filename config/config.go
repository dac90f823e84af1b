// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config provides Viper-based configuration loading for the
// combat engine's runtime knobs.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EngineConfig holds the settings cmd/combatsim (or any other host
// process) uses to construct a CombatEngine.
type EngineConfig struct {
	// AutoResolveIntents, when true, has the engine pick every combatant's
	// intent via its tactical provider instead of suspending at
	// AWAIT_INTENT for PC turns.
	AutoResolveIntents bool `mapstructure:"auto_resolve_intents"`
	// MaxSteps bounds StepUntilDecision's internal loop.
	MaxSteps int `mapstructure:"max_steps"`
	// DiceMode selects the roller: "crypto" for the production
	// crypto/rand-backed roller, "fixed" for a deterministic roller
	// seeded from FixedRolls.
	DiceMode string `mapstructure:"dice_mode"`
	// FixedRolls is consumed in order when DiceMode is "fixed".
	FixedRolls []int `mapstructure:"fixed_rolls"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error
// describing all violations.
func (c EngineConfig) Validate() error {
	var errs []string

	if c.MaxSteps < 1 {
		errs = append(errs, fmt.Sprintf("max_steps must be >= 1, got %d", c.MaxSteps))
	}
	validModes := map[string]bool{"crypto": true, "fixed": true}
	if !validModes[c.DiceMode] {
		errs = append(errs, fmt.Sprintf("dice_mode must be one of [crypto, fixed], got %q", c.DiceMode))
	}
	if c.DiceMode == "fixed" && len(c.FixedRolls) == 0 {
		errs = append(errs, "fixed_rolls must be non-empty when dice_mode is \"fixed\"")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("auto_resolve_intents", false)
	v.SetDefault("max_steps", 64)
	v.SetDefault("dice_mode", "crypto")
	v.SetDefault("fixed_rolls", []int{})
}

// Load reads configuration from the given file path, applies
// environment variable overrides under the ENGINE_ prefix, and
// validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration
// file, or empty to load from environment and defaults alone.
// Postcondition: Returns a valid EngineConfig or a non-nil error.
func Load(path string) (EngineConfig, error) {
	v := viper.New()

	v.SetEnvPrefix("ENGINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return EngineConfig{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg EngineConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return EngineConfig{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return EngineConfig{}, err
	}

	return cfg, nil
}
