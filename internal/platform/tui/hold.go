package tui

import (
	"time"

	"github.com/vovakirdan/memory-lane/internal/core"
)

// Default hold windows. The first press has to outlast the terminal's
// auto-repeat delay; later repeats arrive much faster. Jump waits out the
// slowest common delays so the first auto-repeat never reads as a second tap.
const (
	DefaultInitialHold = 300 * time.Millisecond
	DefaultRepeatHold  = 100 * time.Millisecond
	DefaultJumpHold    = 700 * time.Millisecond
)

// HoldTracker turns key presses into held signals. Terminals report presses
// and auto-repeats but never releases, so directions and jump count as held
// until their window passes without another press. A held jump key stays a
// single press for the core; the next jump edge needs the window to lapse.
// Every other action is a pulse that lasts exactly one frame.
type HoldTracker struct {
	Initial     time.Duration
	Repeat      time.Duration
	JumpInitial time.Duration

	until  map[core.Action]time.Time
	pulses map[core.Action]bool
	frame  core.InputFrame
}

// NewHoldTracker creates a tracker with the default windows.
func NewHoldTracker() *HoldTracker {
	return &HoldTracker{
		Initial:     DefaultInitialHold,
		Repeat:      DefaultRepeatHold,
		JumpInitial: DefaultJumpHold,
		until:       make(map[core.Action]time.Time),
		pulses:      make(map[core.Action]bool),
		frame:       core.NewInputFrame(),
	}
}

// Press records a key press for a at now.
func (h *HoldTracker) Press(a core.Action, now time.Time) {
	switch a {
	case core.ActionNone:
		return
	case core.ActionLeft, core.ActionRight:
		window := h.Repeat
		if !h.Held(a, now) {
			window = h.Initial
		}
		h.until[a] = now.Add(window)
		delete(h.until, opposite(a))
	case core.ActionJump:
		window := h.Repeat
		if !h.Held(a, now) {
			window = h.JumpInitial
		}
		// Repeats only ever extend the hold.
		if t := now.Add(window); t.After(h.until[a]) {
			h.until[a] = t
		}
	default:
		h.pulses[a] = true
	}
}

// Held reports whether a is still within its hold window.
func (h *HoldTracker) Held(a core.Action, now time.Time) bool {
	t, ok := h.until[a]
	return ok && now.Before(t)
}

// Frame builds the input frame for the tick at now and consumes pulses.
// The returned frame is reused by the next call.
func (h *HoldTracker) Frame(now time.Time) core.InputFrame {
	h.frame.Clear()
	for a, t := range h.until {
		if now.Before(t) {
			h.frame.Set(a)
		} else {
			delete(h.until, a)
		}
	}
	for a := range h.pulses {
		h.frame.Set(a)
		delete(h.pulses, a)
	}
	return h.frame
}

// Reset forgets every held key and pending pulse.
func (h *HoldTracker) Reset() {
	clear(h.until)
	clear(h.pulses)
	h.frame.Clear()
}

func opposite(a core.Action) core.Action {
	if a == core.ActionLeft {
		return core.ActionRight
	}
	return core.ActionLeft
}
