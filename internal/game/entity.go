// Package game implements the Space Invaders simulation: the player cannon,
// the marching fleet, projectiles, bunkers and the World that ties them into
// a deterministic fixed-step update. Rendering targets core.Screen; nothing
// here touches the terminal directly.
package game

import "github.com/arcadehall/invaders/internal/core"

// Entity is the shared base for everything that occupies space on the
// battlefield. Positions are float64 cells; rendering truncates.
type Entity struct {
	Pos   core.Vec2
	Vel   core.Vec2
	W, H  float64
	Alive bool
}

// Bounds returns the entity's axis-aligned collision box.
func (e *Entity) Bounds() core.Rect {
	return core.NewRect(e.Pos.X, e.Pos.Y, e.W, e.H)
}

// Move advances the entity by its velocity over dt seconds.
func (e *Entity) Move(dt float64) {
	e.Pos = e.Pos.Add(e.Vel.Scale(dt))
}

// Kill marks the entity dead. Dead entities are skipped by update, render
// and collision passes.
func (e *Entity) Kill() {
	e.Alive = false
}
