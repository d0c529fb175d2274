package level

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestMeadowParses(t *testing.T) {
	g, err := Meadow()
	if err != nil {
		t.Fatalf("Meadow() failed: %v", err)
	}

	if g.ID != "meadow" {
		t.Errorf("ID = %q, expected meadow", g.ID)
	}
	if len(g.Collectibles) != 7 {
		t.Errorf("collectibles = %d, expected 7", len(g.Collectibles))
	}
	if len(g.Hazards) != 7 {
		t.Errorf("hazards = %d, expected 7", len(g.Hazards))
	}
	if g.FallThreshold != 650 {
		t.Errorf("fall threshold = %v, expected 650", g.FallThreshold)
	}

	// Photo index defaults to id+1
	c, ok := g.Collectible(2)
	if !ok || c.Photo != 3 {
		t.Errorf("collectible 2 photo = %d (found=%v), expected 3", c.Photo, ok)
	}

	// Untagged platforms are bricks
	if g.Platforms[0].Kind != KindGround || g.Platforms[2].Kind != KindBrick {
		t.Errorf("unexpected platform kinds: %q, %q", g.Platforms[0].Kind, g.Platforms[2].Kind)
	}
	if len(g.Solids()) != len(g.Platforms) {
		t.Error("Solids() should return one box per platform")
	}
}

func TestMeadowHazardsRestOnGround(t *testing.T) {
	g, err := Meadow()
	if err != nil {
		t.Fatal(err)
	}
	ground := g.Platforms[0].Box.Y
	for i, h := range g.Hazards {
		if h.Bottom() != ground {
			t.Errorf("hazard %d bottom = %v, expected ground %v", i, h.Bottom(), ground)
		}
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing id", "size: {w: 100, h: 100}\nfall_threshold: 150\ngoal: {x: 1, y: 1, w: 1, h: 1}\n"},
		{"zero size", "id: x\nfall_threshold: 150\ngoal: {x: 1, y: 1, w: 1, h: 1}\n"},
		{"no goal", "id: x\nsize: {w: 100, h: 100}\nfall_threshold: 150\n"},
		{"spawn below threshold", "id: x\nsize: {w: 100, h: 100}\nfall_threshold: 150\nspawn: {x: 1, y: 200}\ngoal: {x: 1, y: 1, w: 1, h: 1}\n"},
		{"duplicate ids", "id: x\nsize: {w: 100, h: 100}\nfall_threshold: 150\ngoal: {x: 1, y: 1, w: 1, h: 1}\ncollectibles:\n  - {id: 1, x: 0, y: 0, w: 1, h: 1}\n  - {id: 1, x: 5, y: 0, w: 1, h: 1}\n"},
		{"negative id", "id: x\nsize: {w: 100, h: 100}\nfall_threshold: 150\ngoal: {x: 1, y: 1, w: 1, h: 1}\ncollectibles:\n  - {id: -1, x: 0, y: 0, w: 1, h: 1}\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Parse() error = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestLoaderLoadAll(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "extra")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	write := func(path, body string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	valid := "size: {w: 100, h: 100}\nfall_threshold: 150\ngoal: {x: 1, y: 1, w: 1, h: 1}\n"
	write(filepath.Join(root, "b.yaml"), "id: b\n"+valid)
	write(filepath.Join(nested, "a.yml"), "id: a\n"+valid)
	write(filepath.Join(root, "broken.yaml"), "id: [")
	write(filepath.Join(root, "notes.txt"), "id: c\n"+valid)

	loader := NewLoader(root)
	levels, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}
	if len(levels) != 2 || levels[0].ID != "a" || levels[1].ID != "b" {
		t.Fatalf("LoadAll() = %d levels, expected a and b in order", len(levels))
	}
	if levels[1].FilePath != filepath.Join(root, "b.yaml") {
		t.Errorf("FilePath = %q", levels[1].FilePath)
	}

	if _, err := loader.LoadByID("b"); err != nil {
		t.Errorf("LoadByID(b) failed: %v", err)
	}
	if _, err := loader.LoadByID("zzz"); err == nil {
		t.Error("LoadByID of unknown level should fail")
	}
}

func TestLooksLikePath(t *testing.T) {
	if LooksLikePath("meadow") {
		t.Error("plain id should not look like a path")
	}
	if !LooksLikePath("levels/custom.yaml") || !LooksLikePath("custom.yml") {
		t.Error("yaml file should look like a path")
	}
}
