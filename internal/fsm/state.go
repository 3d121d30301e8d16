// Package fsm implements the game's finite state machine: a registry of
// named states, guarded transitions between them, bounded history and
// fallback-based error recovery. It enforces that exactly one state is
// active and that a transition in flight blocks everything else.
package fsm

import (
	"time"

	"github.com/arcadehall/invaders/internal/core"
)

// Context carries caller data into transition conditions, actions and the
// Enter hook of the target state.
type Context map[string]any

// Bool reads a boolean key from the context; absent keys read as false.
func (c Context) Bool(key string) bool {
	v, _ := c[key].(bool)
	return v
}

// StateConfig declares a state's capabilities.
type StateConfig struct {
	// CanPause allows Manager.Pause to suspend this state.
	CanPause bool

	// CanResume allows Manager.Resume to wake this state.
	CanResume bool

	// Persistent states keep their internal data across exit/enter
	// instead of resetting. Purely advisory to the state itself.
	Persistent bool
}

// State is the capability set every game state must implement. Conformance
// is checked at registration, so a state missing a hook fails at setup
// rather than mid-frame.
type State interface {
	// Name returns the unique registry key for this state.
	Name() string

	// Config declares pause/resume/persistence capabilities.
	Config() StateConfig

	// Enter is called when the state becomes active. prev is nil for the
	// first activation.
	Enter(ctx Context, prev State) error

	// Exit is called before the state is deactivated. next is nil on
	// manager shutdown.
	Exit(next State) error

	// Update advances the state by dt seconds.
	Update(dt float64) error

	// Render draws the state onto the screen buffer.
	Render(dst *core.Screen) error

	// Pause suspends the state. Only called when Config().CanPause.
	Pause()

	// Resume wakes a paused state. Only called when Config().CanResume.
	Resume()
}

// BaseState carries the bookkeeping every concrete state needs: activity
// and pause flags plus timing accumulators. Embed it and override the hooks
// that matter.
type BaseState struct {
	active      bool
	paused      bool
	startedAt   time.Time
	pausedAt    time.Time
	totalPaused time.Duration
}

// MarkEntered records activation time and clears pause accounting.
// Concrete states call this from Enter.
func (b *BaseState) MarkEntered() {
	b.active = true
	b.paused = false
	b.startedAt = time.Now()
	b.totalPaused = 0
}

// MarkExited clears the activity flag. Concrete states call this from Exit.
func (b *BaseState) MarkExited() {
	b.active = false
	b.paused = false
}

// Pause records the pause start. Safe to call repeatedly.
func (b *BaseState) Pause() {
	if b.paused {
		return
	}
	b.paused = true
	b.pausedAt = time.Now()
}

// Resume accumulates the paused interval. Safe to call when not paused.
func (b *BaseState) Resume() {
	if !b.paused {
		return
	}
	b.paused = false
	b.totalPaused += time.Since(b.pausedAt)
}

// IsActive reports whether the state is currently entered.
func (b *BaseState) IsActive() bool {
	return b.active
}

// IsPaused reports whether the state is individually paused.
func (b *BaseState) IsPaused() bool {
	return b.paused
}

// ActiveTime returns time since activation, excluding paused intervals.
func (b *BaseState) ActiveTime() time.Duration {
	if !b.active {
		return 0
	}
	d := time.Since(b.startedAt) - b.totalPaused
	if b.paused {
		d -= time.Since(b.pausedAt)
	}
	return d
}
