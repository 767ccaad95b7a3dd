package core

// Action represents a semantic game action, abstracted from physical input.
// This allows games to work with high-level intents rather than raw keys or clicks.
type Action int

const (
	ActionNone    Action = iota
	ActionLever          // Space, Enter - pull or release the lever (toggle)
	ActionPress          // Mouse button down - start holding the lever
	ActionRelease        // Mouse button up - let go of the lever
	ActionBack           // B, Escape - go back to menu
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLever:
		return "Lever"
	case ActionPress:
		return "Press"
	case ActionRelease:
		return "Release"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input collected between two platform ticks.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
	// order keeps every action in arrival order, repeats included, so two
	// lever toggles inside one frame are both applied.
	order []Action
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
	f.order = append(f.order, a)
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Ordered returns every triggered action in arrival order, repeats included.
func (f InputFrame) Ordered() []Action {
	return f.order
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.order = f.order[:0]
}
