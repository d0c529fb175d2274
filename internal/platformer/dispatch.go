package platformer

import (
	"fmt"

	"github.com/vovakirdan/memory-lane/internal/core"
	"github.com/vovakirdan/memory-lane/internal/level"
)

// Collectible is a placed memory. Active drops to false once picked and never
// comes back within a run.
type Collectible struct {
	level.CollectibleSpec
	Active bool
}

// Overlaps is what the character touched after a physics step.
type Overlaps struct {
	Collectibles []int // Indices into the collectible slice, in level order
	Hazard       bool
	Goal         bool
}

// Detect tests box against active collectibles, hazards and the goal.
func Detect(box core.Box, collectibles []Collectible, hazards []core.Box, goal core.Box) Overlaps {
	var o Overlaps
	for i := range collectibles {
		if collectibles[i].Active && box.Intersects(collectibles[i].Box) {
			o.Collectibles = append(o.Collectibles, i)
		}
	}
	for _, h := range hazards {
		if box.Intersects(h) {
			o.Hazard = true
			break
		}
	}
	o.Goal = box.Intersects(goal)
	return o
}

// dispatch resolves overlaps in fixed order: collectibles, hazards, goal.
// Every handler requires an active session, so the first event that changes
// state stops the rest of the tick from firing.
func (g *Game) dispatch() {
	o := Detect(g.char.Box(), g.collectibles, g.level.Hazards, g.level.Goal)

	for _, i := range o.Collectibles {
		g.pickCollectible(i)
	}
	if o.Hazard {
		g.hitHazard()
	}
	if o.Goal {
		g.reachGoal()
	}
}

func (g *Game) pickCollectible(i int) {
	c := &g.collectibles[i]
	if !c.Active || !g.session.Active() {
		return
	}
	c.Active = false

	fresh, err := g.ledger.Record(c.ID)
	if err != nil {
		g.logger.Warn("failed to save ledger", "id", c.ID, "err", err)
	}
	g.logger.Debug("collectible picked", "id", c.ID, "new", fresh, "pickups", g.ledger.SessionPickups())

	g.notify.OnCollectiblePicked(c.ID)

	if err := g.session.Pause(PauseOverlay, g.tick); err != nil {
		return
	}
	g.char.Vel = core.Vec{}
	g.host.SetButtonLabel(g.cfg.Overlays.MemoryButton)
	g.showOverlay(Overlay{
		Kind:          OverlayMemory,
		Text:          c.Message,
		Photo:         c.Photo,
		CollectibleID: c.ID,
	}, g.dismissMemory)
}

func (g *Game) dismissMemory() {
	g.hideOverlay()
	if g.session.State() == StatePaused && g.session.PauseReason() == PauseOverlay {
		if err := g.session.Resume(g.tick); err != nil {
			g.logger.Debug("resume rejected", "err", err)
		}
	}
}

func (g *Game) hitHazard() {
	if g.inv.Active() || !g.session.Active() {
		return
	}

	g.lives--
	if g.lives < 0 {
		g.lives = 0
	}
	g.livesLost++
	g.logger.Info("hazard hit", "lives", g.lives, "tick", g.tick)
	g.notify.OnHazardHit(g.lives)

	if g.lives == 0 {
		g.exhaustLives()
		return
	}

	switch {
	case g.char.Vel.X > 0:
		g.char.Vel.X = -g.cfg.Session.KnockbackX
	case g.char.Vel.X < 0:
		g.char.Vel.X = g.cfg.Session.KnockbackX
	default:
		g.char.Vel.X = -g.cfg.Session.KnockbackX
	}
	g.char.Vel.Y = -g.cfg.Session.KnockbackY
	g.inv.Start(g.tick, g.runtime.TicksFor(g.cfg.Session.InvincibilityMS))
}

// exhaustLives runs Ended -> Reviving in the same tick and schedules the
// revival overlay.
func (g *Game) exhaustLives() {
	if err := g.session.End(EndLivesExhausted, g.tick); err != nil {
		g.logger.Debug("end rejected", "err", err)
		return
	}
	if err := g.session.BeginRevival(g.tick); err != nil {
		g.logger.Debug("revival rejected", "err", err)
	}
	g.char.Vel = core.Vec{}
	g.notify.OnLivesExhausted()

	g.sched.After(g.runtime.TicksFor(g.cfg.Session.RevivalDelayMS), func() {
		if g.session.State() != StateReviving {
			return
		}
		g.host.SetButtonLabel(g.cfg.Overlays.RevivalButton)
		g.showOverlay(Overlay{Kind: OverlayRevival, Text: g.revivalText()}, func() {
			if err := g.ConfirmRevival(); err != nil {
				g.logger.Debug("revival confirm ignored", "err", err)
			}
		})
	})
}

func (g *Game) revivalText() string {
	foods := g.cfg.Overlays.RevivalFoods
	if len(foods) == 0 {
		return g.cfg.Overlays.RevivalTemplate
	}
	return fmt.Sprintf(g.cfg.Overlays.RevivalTemplate, foods[g.rng.Intn(len(foods))])
}

func (g *Game) reachGoal() {
	if err := g.session.End(EndGoalReached, g.tick); err != nil {
		return
	}
	g.char.Vel = core.Vec{}
	g.logger.Info("goal reached", "tick", g.tick, "pickups", g.ledger.SessionPickups())
	g.notify.OnGoalReached()

	g.showOverlay(Overlay{Kind: OverlayGoal, Text: g.cfg.Overlays.GoalText, Temporary: true}, nil)
	g.sched.After(g.runtime.TicksFor(g.cfg.Session.OverlayMS), func() {
		if g.overlay != nil && g.overlay.Kind == OverlayGoal {
			g.hideOverlay()
		}
	})
	g.sched.After(g.runtime.TicksFor(g.cfg.Session.GoalTransitionMS), func() {
		if g.session.State() == StateEnded && g.session.EndReason() == EndGoalReached {
			g.host.TransitionScene(g.cfg.Overlays.FinalScene)
		}
	})
}
