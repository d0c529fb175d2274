package platformer

import "github.com/vovakirdan/memory-lane/internal/core"

// Invincibility is the immunity window that follows hazard damage.
// It is measured in ticks and keeps elapsing while the session is paused.
type Invincibility struct {
	active    bool
	expiresAt int
}

// Start opens the window until now+duration.
func (w *Invincibility) Start(now, duration int) {
	w.active = true
	w.expiresAt = now + duration
}

// Update closes the window once now reaches the expiry tick.
func (w *Invincibility) Update(now int) {
	if w.active && now >= w.expiresAt {
		w.active = false
	}
}

// Clear closes the window immediately.
func (w *Invincibility) Clear() {
	w.active = false
	w.expiresAt = 0
}

func (w *Invincibility) Active() bool   { return w.active }
func (w *Invincibility) ExpiresAt() int { return w.expiresAt }

// RespawnPolicy returns a fallen character to the spawn point. It never
// touches lives.
type RespawnPolicy struct {
	Spawn         core.Vec
	FallThreshold float64
}

// Apply resets c when it fell below the threshold and reports whether it did.
func (p RespawnPolicy) Apply(c *Character) bool {
	if c.Pos.Y <= p.FallThreshold {
		return false
	}
	c.PlaceAt(p.Spawn)
	return true
}
