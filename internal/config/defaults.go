package config

import (
	_ "embed"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the hardcoded default configuration. It mirrors
// defaults/game.yaml and is used when the embedded file cannot be parsed.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Level:  "meadow",
		Preset: DifficultyNormal,
		Physics: PhysicsConfig{
			Gravity:      600,
			MaxFallSpeed: 900,
		},
		Player: PlayerConfig{
			Width:     36,
			Height:    36,
			Speed:     250,
			JumpForce: 360,
		},
		Session: SessionConfig{
			InvincibilityMS:  1000,
			KnockbackX:       200,
			KnockbackY:       250,
			RevivalDelayMS:   1500,
			GoalTransitionMS: 3000,
			OverlayMS:        1500,
		},
		Overlays: OverlayConfig{
			MemoryButton:    "Keep memory ♥",
			RevivalButton:   "Retry (deal) ♥",
			GoalText:        "You:\n\nNini!\nAnd where is Terry?",
			RevivalTemplate: "An angel says:\n\n\"Oh my love... I'll revive you...\nbut you owe me %s for the effort.\"",
			RevivalFoods: []string{
				"a mini burger",
				"some sushi",
				"a pizza",
				"a tiny hamburger",
				"a little mexican dinner",
			},
			FinalScene: "final",
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.8,
		},
		Storage: StorageConfig{
			LedgerKey: "collectedMemories",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultGameYAML
}
