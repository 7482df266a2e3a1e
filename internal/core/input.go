package core

// Action represents a semantic game action, abstracted from physical key presses.
// Lane presses are not actions: they carry a lane index and their order matters,
// so they travel in InputFrame.Lanes instead.
type Action int

const (
	ActionNone    Action = iota
	ActionConfirm        // Enter - start / confirm
	ActionRestart        // R key - restart after the session ended
	ActionQuit           // Q, Esc, Ctrl+C - exit
	ActionPause          // P - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionConfirm:
		return "Confirm"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input collected during one frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Lanes holds lane presses in the order they were dequeued.
	// The same lane may appear more than once.
	Lanes []int
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
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Press appends a lane press to the frame.
func (f *InputFrame) Press(lane int) {
	f.Lanes = append(f.Lanes, lane)
}

// Clear resets all actions and presses for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Lanes = f.Lanes[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	if len(f.Lanes) > 0 {
		clone.Lanes = append([]int(nil), f.Lanes...)
	}
	return clone
}
