package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the game configuration.
// Search order: customPath -> ~/.memorylane/configs/game.yaml -> ./configs/game.yaml -> embedded default
//
// Files are decoded on top of the defaults, so a partial file only overrides
// the keys it names.
func Load(customPath string) (GameConfig, error) {
	cfg := DefaultGameConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := UserPath("configs", "game.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, cfg.Validate()
			}
			cfg = DefaultGameConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/game.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, cfg.Validate()
		}
		cfg = DefaultGameConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultGameYAML, &cfg); err != nil {
		return DefaultGameConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// UserPath returns a path under ~/.memorylane, or empty if home is unavailable.
func UserPath(elem ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home, ".memorylane"}, elem...)...)
}

// Validate checks that the configuration describes a playable session.
func (c GameConfig) Validate() error {
	switch {
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("config: physics.gravity must be positive, got %v", c.Physics.Gravity)
	case c.Physics.MaxFallSpeed <= 0:
		return fmt.Errorf("config: physics.max_fall_speed must be positive, got %v", c.Physics.MaxFallSpeed)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("config: player size must be positive, got %vx%v", c.Player.Width, c.Player.Height)
	case c.Player.Speed < 0 || c.Player.JumpForce < 0:
		return fmt.Errorf("config: player speed and jump_force must not be negative")
	case c.Session.InvincibilityMS < 0 || c.Session.RevivalDelayMS < 0 ||
		c.Session.GoalTransitionMS < 0 || c.Session.OverlayMS < 0:
		return fmt.Errorf("config: session durations must not be negative")
	}
	return nil
}
