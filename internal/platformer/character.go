// Package platformer implements the session core of a side-scrolling
// platformer: character control with double jump, overlap dispatch against
// collectibles, hazards and the goal, lives with an invincibility window,
// fall respawn and the session state machine that gates all of it.
//
// The core is single-threaded. A host drives it one tick at a time and
// receives one-way notifications and overlay requests back.
package platformer

import (
	"github.com/vovakirdan/memory-lane/internal/core"
	"github.com/vovakirdan/memory-lane/internal/physics"
)

const (
	MaxLives = 3
	MaxJumps = 2
)

// Facing is the horizontal direction the character looks at.
type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

// Character is the player body plus jump bookkeeping.
type Character struct {
	physics.Body
	Grounded  bool // Ground contact from the most recent physics step
	JumpCount int  // Jumps since last grounded, 0..MaxJumps
	Facing    Facing
}

// NewCharacter creates a character of size w x h standing at spawn.
func NewCharacter(spawn core.Vec, w, h float64) Character {
	c := Character{Body: physics.Body{W: w, H: h}}
	c.PlaceAt(spawn)
	return c
}

// PlaceAt moves the character to p with zero velocity and resets jumps.
func (c *Character) PlaceAt(p core.Vec) {
	c.Pos = p
	c.Vel = core.Vec{}
	c.JumpCount = 0
	c.Grounded = false
}

// ControlInput is what the controller sees on one tick.
type ControlInput struct {
	LeftHeld  bool
	RightHeld bool
	JumpEdge  bool // True only on the tick jump goes from released to pressed
	Grounded  bool // Contact result of the previous tick
}

// Tuning holds the movement constants.
type Tuning struct {
	Speed     float64
	JumpForce float64
}

// JumpKind tells which jump, if any, the controller performed.
type JumpKind int

const (
	JumpNone JumpKind = iota
	JumpGround
	JumpExtra
)

// Control turns input into velocity. Left wins when both directions are
// held. A jump edge jumps from the ground or, in the air, performs the one
// extra jump allowed before landing.
func Control(c *Character, in ControlInput, t Tuning) JumpKind {
	switch {
	case in.LeftHeld:
		c.Vel.X = -t.Speed
		c.Facing = FacingLeft
	case in.RightHeld:
		c.Vel.X = t.Speed
		c.Facing = FacingRight
	default:
		c.Vel.X = 0
	}

	if !in.JumpEdge {
		if in.Grounded {
			c.JumpCount = 0
		}
		return JumpNone
	}

	if in.Grounded {
		c.Vel.Y = -t.JumpForce
		c.JumpCount = 1
		return JumpGround
	}
	if c.JumpCount < MaxJumps {
		c.Vel.Y = -t.JumpForce
		c.JumpCount++
		return JumpExtra
	}
	return JumpNone
}
