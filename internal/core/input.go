package core

// Action is a semantic input, abstracted from physical key presses.
type Action int

const (
	ActionNone     Action = iota
	ActionLeft            // A, Left arrow - roll ball left (button control)
	ActionRight           // D, Right arrow - roll ball right (button control)
	ActionUp              // W, Up arrow, k - menu navigation
	ActionDown            // S, Down arrow, j - menu navigation
	ActionConfirm         // Enter, Space - toggle the selected row
	ActionBack            // B, Escape - leave the settings screen
	ActionSettings        // Tab - open the settings screen
	ActionRestart         // R - restart after game over
	ActionPause           // P - pause/unpause
	ActionQuit            // Q, Ctrl+C - exit
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
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionSettings:
		return "Settings"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the input collected during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool

	// Tilt is the horizontal motion-sensor reading in [-1, 1].
	// Only meaningful when the motion source is subscribed.
	Tilt float64
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Clear resets the actions for the next frame. Tilt is a level, not an
// edge, so it persists until the motion source reports a new reading.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
