package config

import "math"

// presetScale describes how a preset stretches the damage rules relative to
// the configured (normal) values.
type presetScale struct {
	invincibility float64
	knockback     float64
}

var presetScales = map[DifficultyPreset]presetScale{
	DifficultyEasy:   {invincibility: 1.5, knockback: 0.75},
	DifficultyNormal: {invincibility: 1.0, knockback: 1.0},
	DifficultyHard:   {invincibility: 0.6, knockback: 1.25},
}

// ApplyPreset modifies the config based on a difficulty preset.
// An empty or unknown preset leaves the config untouched.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	scale, ok := presetScales[preset]
	if !ok {
		return
	}
	cfg.Preset = preset
	cfg.Session.InvincibilityMS = int(math.Round(float64(cfg.Session.InvincibilityMS) * scale.invincibility))
	cfg.Session.KnockbackX *= scale.knockback
	cfg.Session.KnockbackY *= scale.knockback
}
