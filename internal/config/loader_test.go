package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var fromYAML GameConfig
	if err := yaml.Unmarshal(DefaultYAML(), &fromYAML); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}

	def := DefaultGameConfig()
	if fromYAML.Physics != def.Physics {
		t.Errorf("physics differ: yaml=%+v hardcoded=%+v", fromYAML.Physics, def.Physics)
	}
	if fromYAML.Player != def.Player {
		t.Errorf("player differ: yaml=%+v hardcoded=%+v", fromYAML.Player, def.Player)
	}
	if fromYAML.Session != def.Session {
		t.Errorf("session differ: yaml=%+v hardcoded=%+v", fromYAML.Session, def.Session)
	}
	if fromYAML.Overlays.GoalText != def.Overlays.GoalText {
		t.Errorf("goal text differ: %q vs %q", fromYAML.Overlays.GoalText, def.Overlays.GoalText)
	}
	if len(fromYAML.Overlays.RevivalFoods) != len(def.Overlays.RevivalFoods) {
		t.Errorf("revival foods differ in length")
	}
	if fromYAML.Storage.LedgerKey != "collectedMemories" {
		t.Errorf("ledger key = %q", fromYAML.Storage.LedgerKey)
	}
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("player:\n  speed: 300\nsession:\n  invincibility_ms: 2000\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Player.Speed != 300 {
		t.Errorf("speed = %v, expected override 300", cfg.Player.Speed)
	}
	if cfg.Player.JumpForce != 360 {
		t.Errorf("jump force = %v, expected default 360", cfg.Player.JumpForce)
	}
	if cfg.Session.InvincibilityMS != 2000 {
		t.Errorf("invincibility = %d, expected 2000", cfg.Session.InvincibilityMS)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics: [not, a, map"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected error for malformed custom config")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("physics:\n  gravity: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); err == nil {
		t.Error("expected validation error for negative gravity")
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset        DifficultyPreset
		invincibility int
		knockbackX    float64
	}{
		{DifficultyEasy, 1500, 150},
		{DifficultyNormal, 1000, 200},
		{DifficultyHard, 600, 250},
		{"", 1000, 200},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultGameConfig()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Session.InvincibilityMS != tc.invincibility {
				t.Errorf("invincibility = %d, expected %d", cfg.Session.InvincibilityMS, tc.invincibility)
			}
			if cfg.Session.KnockbackX != tc.knockbackX {
				t.Errorf("knockback x = %v, expected %v", cfg.Session.KnockbackX, tc.knockbackX)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("hard should parse")
	}
	if ParsePreset("fixed") != "" {
		t.Error("unknown presets should parse to empty")
	}
}
