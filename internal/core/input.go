package core

// Action represents a semantic input action, abstracted from physical keys,
// touch buttons or websocket messages.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow, touch "left"
	ActionRight          // D, Right arrow, touch "right"
	ActionJump           // Space, W, Up arrow, touch "up"
	ActionConfirm        // Enter - dismiss overlay / confirm revival
	ActionPause          // P - pause/unpause
	ActionBack           // B, Escape - leave to title
	ActionQuit           // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionConfirm:
		return "Confirm"
	case ActionPause:
		return "Pause"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions that are active during one simulation tick.
// For Left, Right and Jump an action being present means "held this tick".
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is active this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Signals converts the frame into the boolean signals the core consumes.
func (f InputFrame) Signals() Signals {
	return Signals{
		LeftHeld:    f.Has(ActionLeft),
		RightHeld:   f.Has(ActionRight),
		JumpPressed: f.Has(ActionJump),
	}
}

// Signals is the device-independent input sampled once per tick.
// JumpPressed is level-triggered; the core derives the edge itself.
type Signals struct {
	LeftHeld    bool `json:"left"`
	RightHeld   bool `json:"right"`
	JumpPressed bool `json:"jump"`
}
