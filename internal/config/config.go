// Package config provides YAML-based configuration loading and difficulty
// presets for the platformer.
package config

// GameConfig contains all tunable parameters of a session.
type GameConfig struct {
	Physics  PhysicsConfig    `yaml:"physics"`
	Player   PlayerConfig     `yaml:"player"`
	Session  SessionConfig    `yaml:"session"`
	Overlays OverlayConfig    `yaml:"overlays"`
	Audio    AudioConfig      `yaml:"audio"`
	Storage  StorageConfig    `yaml:"storage"`
	Level    string           `yaml:"level"` // Registered level ID or path to a level YAML file
	Preset   DifficultyPreset `yaml:"difficulty"`
}

// PhysicsConfig defines world physics parameters, in pixels and seconds.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
}

// PlayerConfig defines the character body and movement tuning.
type PlayerConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Speed     float64 `yaml:"speed"`
	JumpForce float64 `yaml:"jump_force"`
}

// SessionConfig defines damage and timing rules. Durations are milliseconds
// and are converted to ticks at the runtime tick rate.
type SessionConfig struct {
	InvincibilityMS  int     `yaml:"invincibility_ms"`
	KnockbackX       float64 `yaml:"knockback_x"`
	KnockbackY       float64 `yaml:"knockback_y"`
	RevivalDelayMS   int     `yaml:"revival_delay_ms"`
	GoalTransitionMS int     `yaml:"goal_transition_ms"`
	OverlayMS        int     `yaml:"overlay_ms"` // Lifetime of temporary overlays
}

// OverlayConfig holds the narrative texts shown by the host UI.
type OverlayConfig struct {
	MemoryButton    string   `yaml:"memory_button"`
	RevivalButton   string   `yaml:"revival_button"`
	GoalText        string   `yaml:"goal_text"`
	RevivalTemplate string   `yaml:"revival_template"` // %s is replaced with one of RevivalFoods
	RevivalFoods    []string `yaml:"revival_foods"`
	FinalScene      string   `yaml:"final_scene"`
}

// AudioConfig controls cosmetic sound cues.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 - 1.0
}

// StorageConfig controls ledger persistence.
type StorageConfig struct {
	LedgerKey string `yaml:"ledger_key"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI string into a preset. Unknown values return "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
