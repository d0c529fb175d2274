package web

import (
	"github.com/vovakirdan/memory-lane/internal/platformer"
)

// Bridge implements platformer.HostUI by queueing messages for the browser.
// The session flushes the queue after every tick or client command.
type Bridge struct {
	queue []any
	label string
}

func (b *Bridge) ShowOverlay(o platformer.Overlay, onDismiss func()) {
	b.queue = append(b.queue, overlayMessage{
		Type:        TypeOverlay,
		Overlay:     o,
		Dismissible: onDismiss != nil,
		Label:       b.label,
	})
}

func (b *Bridge) HideOverlay() {
	b.queue = append(b.queue, hideMessage{Type: TypeHide})
}

func (b *Bridge) SetButtonLabel(label string) {
	b.label = label
	b.queue = append(b.queue, labelMessage{Type: TypeLabel, Label: label})
}

func (b *Bridge) TransitionScene(name string) {
	b.queue = append(b.queue, sceneMessage{Type: TypeScene, Scene: name})
}

// Drain returns the queued messages and empties the queue.
func (b *Bridge) Drain() []any {
	out := b.queue
	b.queue = nil
	return out
}

// Ensure Bridge implements platformer.HostUI
var _ platformer.HostUI = (*Bridge)(nil)
