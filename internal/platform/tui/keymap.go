package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/arcadehall/invaders/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions through a
// bindings table, so config-file overrides apply uniformly to local and
// SSH sessions.
type KeyMapper struct {
	bindings core.Bindings
}

// NewKeyMapper creates a key mapper over the given bindings. Nil falls back
// to the defaults.
func NewKeyMapper(b core.Bindings) *KeyMapper {
	if b == nil {
		b = core.DefaultBindings()
	}
	return &KeyMapper{bindings: b}
}

// MapKey translates a key message to an action. Returns the action (may be
// ActionNone) and whether it is a hard quit (ctrl+c bypasses the game).
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()
	if key == "ctrl+c" {
		return core.ActionQuit, true
	}
	return km.bindings.Lookup(key), false
}

// MapKeyToFrame applies a key message to an input frame. Returns true for a
// hard quit.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}
