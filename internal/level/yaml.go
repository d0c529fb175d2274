package level

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/memory-lane/internal/core"
)

// yamlLevel represents the YAML structure for a level file.
type yamlLevel struct {
	ID            string            `yaml:"id"`
	Name          string            `yaml:"name"`
	Size          yamlSize          `yaml:"size"`
	FallThreshold float64           `yaml:"fall_threshold"`
	Spawn         yamlPoint         `yaml:"spawn"`
	Platforms     []yamlPlatform    `yaml:"platforms"`
	Collectibles  []yamlCollectible `yaml:"collectibles"`
	Hazards       []yamlBox         `yaml:"hazards"`
	Goal          yamlBox           `yaml:"goal"`
}

type yamlSize struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type yamlPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type yamlBox struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

func (b yamlBox) box() core.Box {
	return core.NewBox(b.X, b.Y, b.W, b.H)
}

type yamlPlatform struct {
	yamlBox `yaml:",inline"`
	Kind    string `yaml:"kind,omitempty"`
}

type yamlCollectible struct {
	yamlBox `yaml:",inline"`
	ID      int    `yaml:"id"`
	Message string `yaml:"message"`
	Photo   int    `yaml:"photo,omitempty"`
}

// Parse decodes and validates a YAML level.
func Parse(data []byte) (*Geometry, error) {
	var yl yamlLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return nil, fmt.Errorf("level: parsing yaml: %w", err)
	}

	g := &Geometry{
		ID:            yl.ID,
		Name:          yl.Name,
		Width:         yl.Size.W,
		Height:        yl.Size.H,
		FallThreshold: yl.FallThreshold,
		Spawn:         core.Vec{X: yl.Spawn.X, Y: yl.Spawn.Y},
		Goal:          yl.Goal.box(),
	}
	if g.Name == "" {
		g.Name = g.ID
	}

	for _, p := range yl.Platforms {
		kind := PlatformKind(p.Kind)
		if kind == "" {
			kind = KindBrick
		}
		g.Platforms = append(g.Platforms, Platform{Box: p.box(), Kind: kind})
	}
	for _, c := range yl.Collectibles {
		photo := c.Photo
		if photo == 0 {
			photo = c.ID + 1
		}
		g.Collectibles = append(g.Collectibles, CollectibleSpec{
			ID:      c.ID,
			Box:     c.box(),
			Message: c.Message,
			Photo:   photo,
		})
	}
	for _, h := range yl.Hazards {
		g.Hazards = append(g.Hazards, h.box())
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}
