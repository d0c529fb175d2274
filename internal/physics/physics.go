// Package physics integrates velocities and resolves collisions against
// static solids. It plays the role of an arcade physics engine for the
// platformer core: gravity, a terminal fall speed, per-axis AABB separation
// and a ground-contact report consumed on the next tick.
package physics

import "github.com/vovakirdan/memory-lane/internal/core"

// Body is a dynamic axis-aligned box. Pos is the top-left corner.
type Body struct {
	Pos core.Vec
	Vel core.Vec
	W   float64
	H   float64
}

// Box returns the body's current bounding box.
func (b *Body) Box() core.Box {
	return core.BoxAt(b.Pos, b.W, b.H)
}

// Contact reports which sides of the body touched a solid during a step.
type Contact struct {
	Down  bool // Landed on or resting on top of a solid
	Up    bool // Bumped a ceiling
	Left  bool
	Right bool
}

// World holds the static environment a body moves through.
type World struct {
	Gravity      float64 // px/s^2, positive is down
	MaxFallSpeed float64 // px/s
	Width        float64 // Horizontal extent; bodies are kept inside [0, Width]
	Solids       []core.Box
}

// Step advances the body by dt seconds and resolves overlaps with solids,
// first along X and then along Y. Velocity along a blocked axis is zeroed.
func (w *World) Step(b *Body, dt float64) Contact {
	var c Contact

	b.Vel.Y += w.Gravity * dt
	if w.MaxFallSpeed > 0 && b.Vel.Y > w.MaxFallSpeed {
		b.Vel.Y = w.MaxFallSpeed
	}

	// Horizontal
	b.Pos.X += b.Vel.X * dt
	for _, s := range w.Solids {
		if !b.Box().Intersects(s) {
			continue
		}
		switch {
		case b.Vel.X > 0:
			b.Pos.X = s.X - b.W
			c.Right = true
			b.Vel.X = 0
		case b.Vel.X < 0:
			b.Pos.X = s.Right()
			c.Left = true
			b.Vel.X = 0
		}
	}
	if w.Width > 0 {
		b.Pos.X = core.ClampF(b.Pos.X, 0, w.Width-b.W)
	}

	// Vertical
	b.Pos.Y += b.Vel.Y * dt
	for _, s := range w.Solids {
		if !b.Box().Intersects(s) {
			continue
		}
		switch {
		case b.Vel.Y > 0:
			b.Pos.Y = s.Y - b.H
			c.Down = true
			b.Vel.Y = 0
		case b.Vel.Y < 0:
			b.Pos.Y = s.Bottom()
			c.Up = true
			b.Vel.Y = 0
		}
	}

	return c
}
