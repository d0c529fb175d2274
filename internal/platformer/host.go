package platformer

// OverlayKind identifies which narrative overlay is requested.
type OverlayKind int

const (
	OverlayMemory OverlayKind = iota
	OverlayRevival
	OverlayGoal
)

func (k OverlayKind) String() string {
	switch k {
	case OverlayMemory:
		return "memory"
	case OverlayRevival:
		return "revival"
	case OverlayGoal:
		return "goal"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k OverlayKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Overlay is a text panel shown on top of the level.
type Overlay struct {
	Kind          OverlayKind `json:"kind"`
	Text          string      `json:"text"`
	Photo         int         `json:"photo,omitempty"`          // Memory photo index, 0 when none
	CollectibleID int         `json:"collectible_id,omitempty"` // Only for OverlayMemory
	Temporary     bool        `json:"temporary,omitempty"`      // Hidden by the core, has no button
}

// HostUI is the presentation layer the core drives. The core never touches
// presentation state except through these calls.
//
// onDismiss passed to ShowOverlay is nil for temporary overlays. Hosts call
// it when the player presses the overlay button; calling it more than once
// is harmless.
type HostUI interface {
	ShowOverlay(o Overlay, onDismiss func())
	HideOverlay()
	SetButtonLabel(label string)
	TransitionScene(name string)
}

// NopHost ignores every request.
type NopHost struct{}

func (NopHost) ShowOverlay(Overlay, func()) {}
func (NopHost) HideOverlay()                {}
func (NopHost) SetButtonLabel(string)       {}
func (NopHost) TransitionScene(string)      {}
