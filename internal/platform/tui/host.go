package tui

import (
	"github.com/vovakirdan/memory-lane/internal/platformer"
)

// Host is the terminal implementation of platformer.HostUI. It only keeps
// the requested UI state; View draws it on the next frame.
type Host struct {
	overlay *platformer.Overlay
	dismiss func()
	label   string
	scene   string
}

// NewHost creates an empty host.
func NewHost() *Host {
	return &Host{}
}

func (h *Host) ShowOverlay(o platformer.Overlay, onDismiss func()) {
	h.overlay = &o
	h.dismiss = onDismiss
}

func (h *Host) HideOverlay() {
	h.overlay = nil
	h.dismiss = nil
}

func (h *Host) SetButtonLabel(label string) { h.label = label }
func (h *Host) TransitionScene(name string) { h.scene = name }

// Overlay returns the overlay on screen, if any.
func (h *Host) Overlay() (platformer.Overlay, bool) {
	if h.overlay == nil {
		return platformer.Overlay{}, false
	}
	return *h.overlay, true
}

// Dismissible reports whether the overlay on screen waits for a button press.
func (h *Host) Dismissible() bool { return h.dismiss != nil }

// Label returns the last button label requested by the game.
func (h *Host) Label() string { return h.label }

// Scene returns the scene the game asked to switch to, or "".
func (h *Host) Scene() string { return h.scene }

// ClearScene returns to the gameplay scene.
func (h *Host) ClearScene() { h.scene = "" }

// Ensure Host implements platformer.HostUI
var _ platformer.HostUI = (*Host)(nil)
