package core

import "fmt"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows game logic to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - move cannon left
	ActionRight          // D, Right arrow - move cannon right
	ActionFire           // Space - shoot
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
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
	case ActionFire:
		return "Fire"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
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

// actionNames maps config-file action names to actions.
var actionNames = map[string]Action{
	"left":    ActionLeft,
	"right":   ActionRight,
	"fire":    ActionFire,
	"confirm": ActionConfirm,
	"back":    ActionBack,
	"restart": ActionRestart,
	"quit":    ActionQuit,
	"pause":   ActionPause,
}

// ParseAction resolves a config-file action name like "fire" to an Action.
func ParseAction(name string) (Action, error) {
	a, ok := actionNames[name]
	if !ok {
		return ActionNone, fmt.Errorf("input: unknown action %q", name)
	}
	return a, nil
}

// Bindings maps key names (as reported by the platform layer, e.g. "space",
// "left", "a") to game actions. It is an explicit table passed to the driver,
// not ambient state, so tests and the SSH server can carry their own copies.
type Bindings map[string]Action

// DefaultBindings returns the stock keyboard layout.
func DefaultBindings() Bindings {
	return Bindings{
		"left":   ActionLeft,
		"a":      ActionLeft,
		"h":      ActionLeft,
		"right":  ActionRight,
		"d":      ActionRight,
		"l":      ActionRight,
		" ":      ActionFire,
		"enter":  ActionConfirm,
		"b":      ActionBack,
		"esc":    ActionBack,
		"r":      ActionRestart,
		"p":      ActionPause,
		"q":      ActionQuit,
		"ctrl+c": ActionQuit,
	}
}

// Lookup returns the action bound to a key, or ActionNone.
func (b Bindings) Lookup(key string) Action {
	if a, ok := b[key]; ok {
		return a
	}
	return ActionNone
}

// Merge overlays other onto b, replacing existing keys.
// Used to apply config-file overrides on top of the defaults.
func (b Bindings) Merge(other Bindings) {
	for k, v := range other {
		b[k] = v
	}
}

// InputFrame represents the input state for a single simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
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

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
