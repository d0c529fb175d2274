// Package level describes static level geometry: platforms, hazards,
// collectibles, the goal and the spawn point. It is pure configuration; the
// platformer core reads it but never mutates it.
package level

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/memory-lane/internal/core"
)

// PlatformKind selects how a solid is drawn. It has no effect on physics.
type PlatformKind string

const (
	KindGround PlatformKind = "ground"
	KindBrick  PlatformKind = "brick"
)

// Platform is a static solid the character can stand on.
type Platform struct {
	Box  core.Box
	Kind PlatformKind
}

// CollectibleSpec is the static placement of a collectible memory.
type CollectibleSpec struct {
	ID      int
	Box     core.Box
	Message string
	Photo   int // Photo index shown with the overlay; 0 means none
}

// Geometry is a complete level definition.
type Geometry struct {
	ID            string
	Name          string
	Width         float64
	Height        float64
	FallThreshold float64 // Character Y beyond which it is respawned
	Spawn         core.Vec
	Platforms     []Platform
	Collectibles  []CollectibleSpec
	Hazards       []core.Box
	Goal          core.Box
	FilePath      string
}

// Solids returns the platform boxes for the physics step.
func (g *Geometry) Solids() []core.Box {
	boxes := make([]core.Box, len(g.Platforms))
	for i, p := range g.Platforms {
		boxes[i] = p.Box
	}
	return boxes
}

// Collectible returns the spec with the given ID.
func (g *Geometry) Collectible(id int) (CollectibleSpec, bool) {
	for _, c := range g.Collectibles {
		if c.ID == id {
			return c, true
		}
	}
	return CollectibleSpec{}, false
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid level")

// Validate checks that the level is playable.
func (g *Geometry) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("level: missing id: %w", ErrInvalid)
	}
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("level %s: size %vx%v: %w", g.ID, g.Width, g.Height, ErrInvalid)
	}
	if g.FallThreshold <= 0 {
		return fmt.Errorf("level %s: fall threshold must be positive: %w", g.ID, ErrInvalid)
	}
	if g.Spawn.X < 0 || g.Spawn.X >= g.Width || g.Spawn.Y >= g.FallThreshold {
		return fmt.Errorf("level %s: spawn (%v, %v) outside the world: %w", g.ID, g.Spawn.X, g.Spawn.Y, ErrInvalid)
	}
	if g.Goal.W <= 0 || g.Goal.H <= 0 {
		return fmt.Errorf("level %s: goal has no area: %w", g.ID, ErrInvalid)
	}

	seen := make(map[int]bool, len(g.Collectibles))
	for _, c := range g.Collectibles {
		if c.ID < 0 {
			return fmt.Errorf("level %s: collectible id %d is negative: %w", g.ID, c.ID, ErrInvalid)
		}
		if seen[c.ID] {
			return fmt.Errorf("level %s: duplicate collectible id %d: %w", g.ID, c.ID, ErrInvalid)
		}
		seen[c.ID] = true
	}
	for i, p := range g.Platforms {
		if p.Box.W <= 0 || p.Box.H <= 0 {
			return fmt.Errorf("level %s: platform %d has no area: %w", g.ID, i, ErrInvalid)
		}
	}
	return nil
}
