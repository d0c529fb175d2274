package platformer

import (
	"errors"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/memory-lane/internal/config"
	"github.com/vovakirdan/memory-lane/internal/core"
	"github.com/vovakirdan/memory-lane/internal/level"
	"github.com/vovakirdan/memory-lane/internal/physics"
)

// Options configures a Game. Level is required; every other field has a
// working default.
type Options struct {
	Config   config.GameConfig
	Level    *level.Geometry
	Host     HostUI
	Notifier Notifier
	Store    LedgerStore
	Logger   *log.Logger
}

// RunSummary describes the run so far.
type RunSummary struct {
	Level     string
	Pickups   int
	LivesLost int
	Ticks     int
	Outcome   string // "goal" or "abandoned"
}

// Game orchestrates one platformer session. It is not safe for concurrent
// use; a single host goroutine must drive it.
type Game struct {
	cfg     config.GameConfig
	level   *level.Geometry
	host    HostUI
	notify  Notifier
	logger  *log.Logger
	runtime core.RuntimeConfig

	world        physics.World
	tuning       Tuning
	respawn      RespawnPolicy
	char         Character
	collectibles []Collectible
	ledger       *Ledger
	lives        int
	livesLost    int
	inv          Invincibility
	session      *Session
	sched        *Scheduler
	rng          *rand.Rand

	tick     int
	prevJump bool
	events   []string

	overlay *Overlay
	dismiss func()
}

// New creates a game for opts.Level. Call Reset before the first tick.
func New(opts Options) (*Game, error) {
	if opts.Level == nil {
		return nil, errors.New("platformer: level is required")
	}
	if opts.Host == nil {
		opts.Host = NopHost{}
	}
	if opts.Notifier == nil {
		opts.Notifier = NopNotifier{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	g := &Game{
		cfg:    opts.Config,
		level:  opts.Level,
		host:   opts.Host,
		logger: opts.Logger,
		ledger: NewLedger(opts.Store),
	}
	g.notify = Notifiers{recorder{events: &g.events}, opts.Notifier}
	g.Reset(core.DefaultConfig())
	return g, nil
}

// ID returns the identifier used for run history.
func (g *Game) ID() string { return "memorylane" }

// Title returns the level name.
func (g *Game) Title() string {
	if g.level.Name != "" {
		return g.level.Name
	}
	return g.level.ID
}

// Reset starts a fresh run. The persisted ledger is kept; every collectible
// becomes active again.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	g.world = physics.World{
		Gravity:      g.cfg.Physics.Gravity,
		MaxFallSpeed: g.cfg.Physics.MaxFallSpeed,
		Width:        g.level.Width,
		Solids:       g.level.Solids(),
	}
	g.tuning = Tuning{Speed: g.cfg.Player.Speed, JumpForce: g.cfg.Player.JumpForce}
	g.respawn = RespawnPolicy{Spawn: g.level.Spawn, FallThreshold: g.level.FallThreshold}
	g.char = NewCharacter(g.level.Spawn, g.cfg.Player.Width, g.cfg.Player.Height)

	g.collectibles = make([]Collectible, len(g.level.Collectibles))
	for i, spec := range g.level.Collectibles {
		g.collectibles[i] = Collectible{CollectibleSpec: spec, Active: true}
	}

	g.ledger.ResetSession()
	g.lives = MaxLives
	g.livesLost = 0
	g.inv.Clear()
	g.session = NewSession(g.logger)
	g.sched = &Scheduler{}
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	g.tick = 0
	g.prevJump = false
	g.events = g.events[:0]

	if g.overlay != nil {
		g.hideOverlay()
	}
	g.logger.Debug("run reset", "level", g.level.ID, "tick_rate", runtime.TickRate)
}

// Step applies control actions from the frame and advances one tick.
// Confirm dismisses the open overlay and Pause toggles a manual pause.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionConfirm) {
		g.DismissOverlay()
	}
	if in.Has(core.ActionPause) {
		if err := g.TogglePause(); err != nil {
			g.logger.Debug("pause ignored", "err", err)
		}
	}
	return g.Tick(in.Signals())
}

// Tick advances the session by one tick:
// timers, jump edge, state gate, respawn, controller, physics, dispatch.
func (g *Game) Tick(sig core.Signals) core.StepResult {
	g.tick++
	g.sched.Poll(g.tick)
	g.inv.Update(g.tick)

	jumpEdge := sig.JumpPressed && !g.prevJump
	g.prevJump = sig.JumpPressed

	if !g.session.Active() {
		g.char.Vel = core.Vec{}
		return g.result()
	}

	if g.respawn.Apply(&g.char) {
		g.logger.Debug("fell out of level", "tick", g.tick)
		g.notify.OnRespawn()
		return g.result()
	}

	switch Control(&g.char, ControlInput{
		LeftHeld:  sig.LeftHeld,
		RightHeld: sig.RightHeld,
		JumpEdge:  jumpEdge,
		Grounded:  g.char.Grounded,
	}, g.tuning) {
	case JumpGround:
		g.notify.OnJump()
	case JumpExtra:
		g.notify.OnExtraJump()
	}

	contact := g.world.Step(&g.char.Body, g.runtime.DT())
	g.char.Grounded = contact.Down
	if g.char.Grounded {
		g.char.JumpCount = 0
	}

	g.dispatch()
	return g.result()
}

// DismissOverlay acts as if the player pressed the open overlay's button.
// It reports whether there was anything to dismiss.
func (g *Game) DismissOverlay() bool {
	if g.dismiss == nil {
		return false
	}
	g.dismiss()
	return true
}

// ConfirmRevival restores a session waiting in StateReviving.
func (g *Game) ConfirmRevival() error {
	if err := g.session.Revive(g.tick); err != nil {
		return err
	}
	g.lives = MaxLives
	g.inv.Clear()
	g.char.PlaceAt(g.level.Spawn)
	g.hideOverlay()
	g.logger.Info("revived", "tick", g.tick)
	g.notify.OnRespawn()
	return nil
}

// TogglePause pauses an active session or resumes a manually paused one.
// Overlay pauses can only be ended by dismissing the overlay.
func (g *Game) TogglePause() error {
	if g.session.State() == StatePaused && g.session.PauseReason() == PauseManual {
		return g.session.Resume(g.tick)
	}
	if err := g.session.Pause(PauseManual, g.tick); err != nil {
		return err
	}
	g.char.Vel = core.Vec{}
	return nil
}

func (g *Game) showOverlay(o Overlay, onDismiss func()) {
	g.overlay = &o
	g.dismiss = nil

	var hostDismiss func()
	if onDismiss != nil {
		fired := false
		g.dismiss = func() {
			if fired {
				return
			}
			fired = true
			onDismiss()
		}
		hostDismiss = g.dismiss
	}
	g.host.ShowOverlay(o, hostDismiss)
}

func (g *Game) hideOverlay() {
	g.overlay = nil
	g.dismiss = nil
	g.host.HideOverlay()
}

func (g *Game) result() core.StepResult {
	var events []string
	if len(g.events) > 0 {
		events = make([]string, len(g.events))
		copy(events, g.events)
		g.events = g.events[:0]
	}
	return core.StepResult{State: g.State(), Events: events}
}

// State returns the summary consumed by hosts.
func (g *Game) State() core.GameState {
	return core.GameState{
		State:    g.session.State().String(),
		Lives:    g.lives,
		Pickups:  g.ledger.SessionPickups(),
		Tick:     g.tick,
		Finished: g.session.State() == StateEnded && g.session.EndReason() == EndGoalReached,
		Paused:   !g.session.Active(),
	}
}

// Summary returns the run history record for the current run.
func (g *Game) Summary() RunSummary {
	outcome := "abandoned"
	if g.State().Finished {
		outcome = "goal"
	}
	return RunSummary{
		Level:     g.level.ID,
		Pickups:   g.ledger.SessionPickups(),
		LivesLost: g.livesLost,
		Ticks:     g.tick,
		Outcome:   outcome,
	}
}

// Accessors for hosts and renderers.

func (g *Game) Character() Character         { return g.char }
func (g *Game) Collectibles() []Collectible  { return g.collectibles }
func (g *Game) Level() *level.Geometry       { return g.level }
func (g *Game) Lives() int                   { return g.lives }
func (g *Game) Session() *Session            { return g.session }
func (g *Game) Ledger() *Ledger              { return g.ledger }
func (g *Game) Invincible() bool             { return g.inv.Active() }
func (g *Game) Invincibility() Invincibility { return g.inv }
func (g *Game) CurrentTick() int             { return g.tick }
func (g *Game) Runtime() core.RuntimeConfig  { return g.runtime }

// Overlay returns the overlay currently shown, if any.
func (g *Game) Overlay() (Overlay, bool) {
	if g.overlay == nil {
		return Overlay{}, false
	}
	return *g.overlay, true
}
