package platformer

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/memory-lane/internal/config"
	"github.com/vovakirdan/memory-lane/internal/core"
	"github.com/vovakirdan/memory-lane/internal/level"
)

type fakeHost struct {
	overlays []Overlay
	dismiss  func()
	hides    int
	labels   []string
	scenes   []string
}

func (h *fakeHost) ShowOverlay(o Overlay, onDismiss func()) {
	h.overlays = append(h.overlays, o)
	h.dismiss = onDismiss
}
func (h *fakeHost) HideOverlay()                { h.hides++ }
func (h *fakeHost) SetButtonLabel(label string) { h.labels = append(h.labels, label) }
func (h *fakeHost) TransitionScene(name string) { h.scenes = append(h.scenes, name) }

func (h *fakeHost) shown(kind OverlayKind) int {
	n := 0
	for _, o := range h.overlays {
		if o.Kind == kind {
			n++
		}
	}
	return n
}

type countNotifier struct {
	picked    []int
	hits      []int
	exhausted int
	goals     int
	respawns  int
	jumps     int
	extra     int
}

func (n *countNotifier) OnCollectiblePicked(id int) { n.picked = append(n.picked, id) }
func (n *countNotifier) OnHazardHit(lives int)      { n.hits = append(n.hits, lives) }
func (n *countNotifier) OnLivesExhausted()          { n.exhausted++ }
func (n *countNotifier) OnGoalReached()             { n.goals++ }
func (n *countNotifier) OnRespawn()                 { n.respawns++ }
func (n *countNotifier) OnJump()                    { n.jumps++ }
func (n *countNotifier) OnExtraJump()               { n.extra++ }

const groundTop = 500

func testLevel() *level.Geometry {
	return &level.Geometry{
		ID:            "test",
		Name:          "Test Lane",
		Width:         1000,
		Height:        600,
		FallThreshold: 650,
		Spawn:         core.Vec{X: 100, Y: groundTop - 36},
		Platforms: []level.Platform{
			{Box: core.NewBox(0, groundTop, 1000, 40), Kind: level.KindGround},
		},
		Collectibles: []level.CollectibleSpec{
			{ID: 2, Box: core.NewBox(300, 460, 40, 40), Message: "first walk", Photo: 3},
		},
		Hazards: []core.Box{core.NewBox(500, 482, 18, 18)},
		Goal:    core.NewBox(900, 420, 40, 80),
	}
}

type harness struct {
	g     *Game
	host  *fakeHost
	note  *countNotifier
	store *MemoryStore
}

func newHarness(t *testing.T, lvl *level.Geometry, store *MemoryStore) *harness {
	t.Helper()
	if store == nil {
		store = NewMemoryStore()
	}
	h := &harness{host: &fakeHost{}, note: &countNotifier{}, store: store}
	g, err := New(Options{
		Config:   config.DefaultGameConfig(),
		Level:    lvl,
		Host:     h.host,
		Notifier: h.note,
		Store:    store,
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7})
	h.g = g
	return h
}

// place puts the character on the ground at x.
func (h *harness) place(x float64) {
	h.g.char.PlaceAt(core.Vec{X: x, Y: groundTop - 36})
	h.g.char.Grounded = true
}

func (h *harness) idle(n int) {
	for i := 0; i < n; i++ {
		h.g.Tick(core.Signals{})
	}
}

func TestNewRequiresLevel(t *testing.T) {
	if _, err := New(Options{Config: config.DefaultGameConfig()}); err == nil {
		t.Error("New without a level should fail")
	}
}

func TestGroundAndDoubleJump(t *testing.T) {
	h := newHarness(t, testLevel(), nil)
	h.idle(3)
	if !h.g.char.Grounded {
		t.Fatal("character should settle on the ground")
	}

	res := h.g.Tick(core.Signals{JumpPressed: true})
	if h.g.char.JumpCount != 1 || h.g.char.Vel.Y >= 0 {
		t.Fatalf("after ground jump count=%d vy=%v", h.g.char.JumpCount, h.g.char.Vel.Y)
	}
	if len(res.Events) != 1 || res.Events[0] != EventJump {
		t.Errorf("events = %v, expected [jump]", res.Events)
	}

	h.g.Tick(core.Signals{})
	res = h.g.Tick(core.Signals{JumpPressed: true})
	if h.g.char.JumpCount != 2 {
		t.Fatalf("after extra jump count=%d", h.g.char.JumpCount)
	}
	if h.note.extra != 1 {
		t.Errorf("extra jump notifications = %d", h.note.extra)
	}
	if len(res.Events) != 1 || res.Events[0] != EventExtraJump {
		t.Errorf("events = %v, expected [extra_jump]", res.Events)
	}

	h.g.Tick(core.Signals{})
	vyBefore := h.g.char.Vel.Y
	h.g.Tick(core.Signals{JumpPressed: true})
	if h.g.char.JumpCount != 2 {
		t.Errorf("third jump changed count to %d", h.g.char.JumpCount)
	}
	if h.g.char.Vel.Y <= vyBefore {
		t.Errorf("third jump should not add lift: vy %v -> %v", vyBefore, h.g.char.Vel.Y)
	}

	for i := 0; i < 240 && !h.g.char.Grounded; i++ {
		h.g.Tick(core.Signals{})
	}
	if !h.g.char.Grounded || h.g.char.JumpCount != 0 {
		t.Errorf("after landing grounded=%v count=%d", h.g.char.Grounded, h.g.char.JumpCount)
	}
}

func TestHeldJumpFiresOnce(t *testing.T) {
	h := newHarness(t, testLevel(), nil)
	h.idle(3)

	for i := 0; i < 120; i++ {
		h.g.Tick(core.Signals{JumpPressed: true})
	}
	if h.note.jumps != 1 || h.note.extra != 0 {
		t.Errorf("holding jump gave %d jumps and %d extra jumps", h.note.jumps, h.note.extra)
	}
}

func TestJumpCountInvariant(t *testing.T) {
	lvl := testLevel()
	lvl.Hazards = nil
	lvl.Collectibles = nil
	lvl.Goal = core.Box{}
	lvl.Platforms = append(lvl.Platforms,
		level.Platform{Box: core.NewBox(400, 380, 120, 40), Kind: level.KindBrick},
		level.Platform{Box: core.NewBox(700, 300, 120, 40), Kind: level.KindBrick},
	)
	h := newHarness(t, lvl, nil)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 5000; i++ {
		h.g.Tick(core.Signals{
			LeftHeld:    rng.Intn(4) == 0,
			RightHeld:   rng.Intn(3) == 0,
			JumpPressed: rng.Intn(5) == 0,
		})
		c := h.g.char
		if c.JumpCount < 0 || c.JumpCount > MaxJumps {
			t.Fatalf("tick %d: jumpCount = %d", i, c.JumpCount)
		}
		if c.Grounded && c.JumpCount != 0 {
			t.Fatalf("tick %d: grounded with jumpCount %d", i, c.JumpCount)
		}
	}
}

func TestHazardKnockbackAndInvincibility(t *testing.T) {
	h := newHarness(t, testLevel(), nil)
	h.place(490)

	res := h.g.Tick(core.Signals{})
	if h.g.lives != 2 {
		t.Fatalf("lives = %d, expected 2", h.g.lives)
	}
	if len(h.note.hits) != 1 || h.note.hits[0] != 2 {
		t.Errorf("hit notifications = %v", h.note.hits)
	}
	if res.State.Lives != 2 {
		t.Errorf("result lives = %d", res.State.Lives)
	}
	if !h.g.Invincible() {
		t.Fatal("invincibility should start after a hit")
	}
	if h.g.char.Vel.X != -200 || h.g.char.Vel.Y != -250 {
		t.Errorf("knockback vel = %v, expected (-200,-250)", h.g.char.Vel)
	}

	// The character falls back onto the spike while still immune.
	for i := 0; i < 55; i++ {
		h.g.Tick(core.Signals{})
		if h.g.lives != 2 {
			t.Fatalf("tick %d: lives changed to %d while invincible", h.g.tick, h.g.lives)
		}
	}

	for i := 0; i < 20 && h.g.lives == 2; i++ {
		h.g.Tick(core.Signals{})
	}
	if h.g.lives != 1 {
		t.Fatalf("lives = %d after invincibility expired, expected 1", h.g.lives)
	}
	if h.g.tick < 1+60 {
		t.Errorf("second hit at tick %d, before the window closed", h.g.tick)
	}
}

func TestKnockbackDirection(t *testing.T) {
	tests := []struct {
		name     string
		signals  core.Signals
		expectVX float64
	}{
		{"moving right", core.Signals{RightHeld: true}, -200},
		{"moving left", core.Signals{LeftHeld: true}, 200},
		{"standing", core.Signals{}, -200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, testLevel(), nil)
			h.place(491)
			h.g.Tick(tt.signals)
			if h.g.lives != 2 {
				t.Fatalf("lives = %d", h.g.lives)
			}
			if h.g.char.Vel.X != tt.expectVX {
				t.Errorf("vx = %v, expected %v", h.g.char.Vel.X, tt.expectVX)
			}
		})
	}
}

func TestLastLifeStartsRevival(t *testing.T) {
	h := newHarness(t, testLevel(), nil)
	h.g.lives = 1
	h.place(490)

	res := h.g.Tick(core.Signals{})
	if h.g.lives != 0 {
		t.Fatalf("lives = %d, expected 0", h.g.lives)
	}
	if h.g.session.State() != StateReviving {
		t.Fatalf("state = %v, expected reviving", h.g.session.State())
	}
	if h.note.exhausted != 1 {
		t.Errorf("lives exhausted notifications = %d", h.note.exhausted)
	}
	if res.State.State != "reviving" || !res.State.Paused {
		t.Errorf("result state = %+v", res.State)
	}

	hist := h.g.session.History()
	if len(hist) < 2 || hist[len(hist)-2].To != StateEnded || hist[len(hist)-1].To != StateReviving {
		t.Errorf("history = %+v, expected ... ended, reviving", hist)
	}

	pos := h.g.char.Pos
	for i := 0; i < 10; i++ {
		h.g.Tick(core.Signals{RightHeld: true, JumpPressed: i%2 == 0})
	}
	if len(h.note.hits) != 1 || h.g.lives != 0 {
		t.Errorf("extra hits while reviving: hits=%v lives=%d", h.note.hits, h.g.lives)
	}
	if h.g.char.Pos != pos || !h.g.char.Vel.IsZero() {
		t.Errorf("character moved while reviving: %v -> %v", pos, h.g.char.Pos)
	}
}

func TestRevivalOverlayAndConfirm(t *testing.T) {
	h := newHarness(t, testLevel(), nil)
	h.g.lives = 1
	h.place(490)
	h.g.Tick(core.Signals{})

	for h.g.tick < 90 {
		h.g.Tick(core.Signals{})
	}
	if h.host.shown(OverlayRevival) != 0 {
		t.Fatal("revival overlay shown before the delay")
	}

	h.g.Tick(core.Signals{})
	if h.host.shown(OverlayRevival) != 1 {
		t.Fatalf("revival overlay not shown at tick %d", h.g.tick)
	}
	last := h.host.overlays[len(h.host.overlays)-1]
	foodShown := false
	for _, food := range config.DefaultGameConfig().Overlays.RevivalFoods {
		if strings.Contains(last.Text, food) {
			foodShown = true
		}
	}
	if !foodShown {
		t.Errorf("revival text %q names no food", last.Text)
	}
	if got := h.host.labels[len(h.host.labels)-1]; got != config.DefaultGameConfig().Overlays.RevivalButton {
		t.Errorf("button label = %q", got)
	}

	h.host.dismiss()

	if h.g.session.State() != StateActive {
		t.Errorf("state = %v, expected active", h.g.session.State())
	}
	if h.g.lives != MaxLives {
		t.Errorf("lives = %d, expected %d", h.g.lives, MaxLives)
	}
	if h.g.char.Pos != h.g.level.Spawn || !h.g.char.Vel.IsZero() || h.g.char.JumpCount != 0 {
		t.Errorf("character not reset: %+v", h.g.char)
	}
	if h.g.Invincible() {
		t.Error("invincibility should be cleared on revival")
	}
	if _, ok := h.g.Overlay(); ok {
		t.Error("overlay should be hidden after revival")
	}
	if h.note.respawns != 1 {
		t.Errorf("respawn notifications = %d", h.note.respawns)
	}

	h.host.dismiss()
	if h.note.respawns != 1 {
		t.Error("a second dismissal must not revive again")
	}
}

func TestEarlyRevivalSkipsStaleOverlay(t *testing.T) {
	h := newHarness(t, testLevel(), nil)
	h.g.lives = 1
	h.place(490)
	h.g.Tick(core.Signals{})

	if err := h.g.ConfirmRevival(); err != nil {
		t.Fatalf("ConfirmRevival: %v", err)
	}
	h.idle(120)

	if h.host.shown(OverlayRevival) != 0 {
		t.Error("stale revival overlay should not be shown")
	}
	if h.g.session.State() != StateActive {
		t.Errorf("state = %v", h.g.session.State())
	}
}

func TestStaleRevivalButtonIsLogged(t *testing.T) {
	h := newHarness(t, testLevel(), nil)
	var buf bytes.Buffer
	h.g.logger = log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	h.g.lives = 1
	h.place(490)
	h.g.Tick(core.Signals{})
	for h.host.shown(OverlayRevival) == 0 && h.g.tick < 200 {
		h.g.Tick(core.Signals{})
	}
	if h.host.dismiss == nil {
		t.Fatal("revival overlay should offer a button")
	}

	// The host revives directly, then the stale button fires.
	if err := h.g.ConfirmRevival(); err != nil {
		t.Fatalf("ConfirmRevival: %v", err)
	}
	h.host.dismiss()

	if h.note.respawns != 1 {
		t.Errorf("respawn notifications = %d, expected 1", h.note.respawns)
	}
	if !strings.Contains(buf.String(), "revival confirm ignored") {
		t.Errorf("rejected revival not logged: %q", buf.String())
	}
}

func TestConfirmRevivalWhenActive(t *testing.T) {
	h := newHarness(t, testLevel(), nil)
	if err := h.g.ConfirmRevival(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("err = %v, expected ErrInvalidTransition", err)
	}
	if h.note.respawns != 0 {
		t.Error("rejected revival must not notify")
	}
}

func TestCollectiblePickup(t *testing.T) {
	h := newHarness(t, testLevel(), nil)
	h.place(290)

	res := h.g.Tick(core.Signals{})
	if len(h.note.picked) != 1 || h.note.picked[0] != 2 {
		t.Fatalf("picked = %v, expected [2]", h.note.picked)
	}
	if !h.g.ledger.Has(2) || h.g.ledger.SessionPickups() != 1 {
		t.Errorf("ledger has=%v pickups=%d", h.g.ledger.Has(2), h.g.ledger.SessionPickups())
	}
	if res.State.Pickups != 1 || res.State.State != "paused" {
		t.Errorf("result state = %+v", res.State)
	}
	if stored := h.store.Load(); len(stored) != 1 || stored[0] != 2 {
		t.Errorf("store = %v", stored)
	}

	o, ok := h.g.Overlay()
	if !ok || o.Kind != OverlayMemory || o.CollectibleID != 2 || o.Photo != 3 || o.Text != "first walk" {
		t.Errorf("overlay = %+v, %v", o, ok)
	}
	if got := h.host.labels[len(h.host.labels)-1]; got != config.DefaultGameConfig().Overlays.MemoryButton {
		t.Errorf("button label = %q", got)
	}

	pos := h.g.char.Pos
	for i := 0; i < 10; i++ {
		h.g.Tick(core.Signals{RightHeld: true})
	}
	if h.g.char.Pos != pos {
		t.Errorf("character moved while paused: %v -> %v", pos, h.g.char.Pos)
	}

	confirm := core.NewInputFrame()
	confirm.Set(core.ActionConfirm)
	h.g.Step(confirm)
	if h.g.session.State() != StateActive {
		t.Fatalf("state after dismissal = %v", h.g.session.State())
	}

	h.idle(10)
	if len(h.note.picked) != 1 {
		t.Errorf("collectible fired again: %v", h.note.picked)
	}
}

func TestPickupOfPersistedID(t *testing.T) {
	h := newHarness(t, testLevel(), NewMemoryStore(2))
	h.place(290)
	h.g.Tick(core.Signals{})

	if h.g.ledger.SessionPickups() != 1 {
		t.Errorf("pickups = %d, expected 1", h.g.ledger.SessionPickups())
	}
	if h.g.ledger.Len() != 1 {
		t.Errorf("ledger size = %d, expected 1", h.g.ledger.Len())
	}
	if len(h.note.picked) != 1 {
		t.Errorf("picked = %v", h.note.picked)
	}
}

func TestCollectibleBeatsHazardInSameTick(t *testing.T) {
	lvl := testLevel()
	lvl.Hazards = []core.Box{core.NewBox(300, 482, 18, 18)}
	h := newHarness(t, lvl, nil)
	h.place(290)

	h.g.Tick(core.Signals{})
	if len(h.note.picked) != 1 {
		t.Errorf("picked = %v", h.note.picked)
	}
	if len(h.note.hits) != 0 || h.g.lives != MaxLives {
		t.Errorf("hazard resolved while the memory overlay paused the session: hits=%v", h.note.hits)
	}
}

func TestGoalFiresOnce(t *testing.T) {
	h := newHarness(t, testLevel(), nil)
	h.place(890)

	res := h.g.Tick(core.Signals{})
	if h.note.goals != 1 {
		t.Fatalf("goal notifications = %d", h.note.goals)
	}
	if !res.State.Finished {
		t.Error("state should be finished")
	}
	o, ok := h.g.Overlay()
	if !ok || o.Kind != OverlayGoal || !o.Temporary {
		t.Errorf("overlay = %+v, %v", o, ok)
	}
	if h.host.dismiss != nil {
		t.Error("temporary overlay should not offer a dismiss callback")
	}

	for h.g.tick < 180 {
		h.g.Tick(core.Signals{RightHeld: true})
	}
	if len(h.host.scenes) != 0 {
		t.Fatalf("scene transition too early: %v", h.host.scenes)
	}
	if _, ok := h.g.Overlay(); ok {
		t.Error("goal overlay should hide itself")
	}

	h.idle(100)
	if h.note.goals != 1 {
		t.Errorf("goal fired %d times", h.note.goals)
	}
	if len(h.host.scenes) != 1 || h.host.scenes[0] != "final" {
		t.Errorf("scenes = %v, expected [final]", h.host.scenes)
	}
	if s := h.g.Summary(); s.Outcome != "goal" || s.Level != "test" {
		t.Errorf("summary = %+v", s)
	}
}

func TestFallRespawn(t *testing.T) {
	h := newHarness(t, testLevel(), nil)
	h.idle(3)
	h.g.lives = 1
	h.g.char.Pos = core.Vec{X: 600, Y: 700}
	h.g.char.Vel = core.Vec{X: 250, Y: 900}
	h.g.char.JumpCount = 2

	res := h.g.Tick(core.Signals{RightHeld: true})
	if h.g.char.Pos != h.g.level.Spawn || !h.g.char.Vel.IsZero() || h.g.char.JumpCount != 0 {
		t.Errorf("after respawn: %+v", h.g.char)
	}
	if h.g.lives != 1 {
		t.Errorf("respawn changed lives to %d", h.g.lives)
	}
	if len(res.Events) != 1 || res.Events[0] != EventRespawn {
		t.Errorf("events = %v, expected [respawn]", res.Events)
	}
}

func TestManualPause(t *testing.T) {
	h := newHarness(t, testLevel(), nil)
	h.idle(3)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	h.g.Step(pause)
	if h.g.session.State() != StatePaused || h.g.session.PauseReason() != PauseManual {
		t.Fatalf("state = %v reason = %v", h.g.session.State(), h.g.session.PauseReason())
	}

	h.g.inv.Start(h.g.tick, 10)
	pos := h.g.char.Pos
	for i := 0; i < 10; i++ {
		h.g.Tick(core.Signals{RightHeld: true})
	}
	if h.g.char.Pos != pos {
		t.Error("character moved while paused")
	}
	if h.g.Invincible() {
		t.Error("invincibility should keep elapsing while paused")
	}

	if err := h.g.TogglePause(); err != nil {
		t.Fatalf("unpause: %v", err)
	}
	h.g.Tick(core.Signals{RightHeld: true})
	if h.g.char.Pos.X <= pos.X {
		t.Error("character should move after unpausing")
	}
}

func TestManualPauseDuringOverlay(t *testing.T) {
	h := newHarness(t, testLevel(), nil)
	h.place(290)
	h.g.Tick(core.Signals{})

	if err := h.g.TogglePause(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("err = %v, expected ErrInvalidTransition", err)
	}
	if h.g.session.PauseReason() != PauseOverlay {
		t.Errorf("pause reason = %v", h.g.session.PauseReason())
	}
}

func TestResetKeepsLedger(t *testing.T) {
	h := newHarness(t, testLevel(), nil)
	h.place(290)
	h.g.Tick(core.Signals{})
	h.g.DismissOverlay()
	h.place(490)
	h.g.Tick(core.Signals{})

	h.g.Reset(core.DefaultConfig())

	if h.g.lives != MaxLives || h.g.tick != 0 || h.g.ledger.SessionPickups() != 0 {
		t.Errorf("after reset lives=%d tick=%d pickups=%d", h.g.lives, h.g.tick, h.g.ledger.SessionPickups())
	}
	if !h.g.ledger.Has(2) {
		t.Error("reset should keep the persisted ledger")
	}
	for _, c := range h.g.Collectibles() {
		if !c.Active {
			t.Errorf("collectible %d inactive after reset", c.ID)
		}
	}
	if h.g.session.State() != StateActive || h.g.Invincible() {
		t.Errorf("state=%v invincible=%v", h.g.session.State(), h.g.Invincible())
	}
}

func TestLogNotifierFanOut(t *testing.T) {
	var buf bytes.Buffer
	counts := &countNotifier{}
	n := Notifiers{LogNotifier{Logger: log.New(&buf)}, counts, NopNotifier{}}

	n.OnCollectiblePicked(5)
	n.OnHazardHit(1)

	if len(counts.picked) != 1 || len(counts.hits) != 1 {
		t.Errorf("fan-out counts = %+v", counts)
	}
	out := buf.String()
	if !strings.Contains(out, "memory collected") || !strings.Contains(out, "hazard hit") {
		t.Errorf("log output = %q", out)
	}
}
