package game

import (
	"github.com/arcadehall/invaders/internal/config"
	"github.com/arcadehall/invaders/internal/core"
)

// Cannon glyphs
const (
	cannonChar = '▲'
	cannonBase = '█'
)

// Player is the cannon at the bottom of the screen.
type Player struct {
	Entity
	Lives    int
	cooldown float64 // Seconds until the next shot is allowed
	cfg      config.PlayerConfig
}

// NewPlayer creates the cannon centered at the bottom of a screenW-wide
// battlefield.
func NewPlayer(cfg config.PlayerConfig, screenW, screenH int) *Player {
	p := &Player{
		Entity: Entity{
			W:     3,
			H:     1,
			Alive: true,
		},
		Lives: cfg.Lives,
		cfg:   cfg,
	}
	p.Pos = core.V(float64(screenW)/2-p.W/2, float64(screenH-2))
	return p
}

// Update applies movement input and advances the fire cooldown.
func (p *Player) Update(in core.InputFrame, dt float64, screenW int) {
	if p.cooldown > 0 {
		p.cooldown -= dt
	}

	var dx float64
	if in.Has(core.ActionLeft) {
		dx -= 1
	}
	if in.Has(core.ActionRight) {
		dx += 1
	}
	p.Pos.X = core.ClampF(p.Pos.X+dx*p.cfg.Speed*dt, 0, float64(screenW)-p.W)
}

// TryFire returns a new upward bolt if the cooldown allows, nil otherwise.
func (p *Player) TryFire() *Projectile {
	if p.cooldown > 0 {
		return nil
	}
	p.cooldown = p.cfg.FireCooldown
	return NewBolt(core.V(p.Pos.X+p.W/2, p.Pos.Y-1), p.cfg.BoltSpeed)
}

// Hit removes a life. Returns true when no lives remain.
func (p *Player) Hit() bool {
	p.Lives--
	return p.Lives <= 0
}

// Render draws the cannon.
func (p *Player) Render(dst *core.Screen) {
	if !p.Alive {
		return
	}
	x, y := int(p.Pos.X), int(p.Pos.Y)
	dst.SetColored(x, y, cannonBase, core.ColorGreen)
	dst.SetColored(x+1, y, cannonChar, core.ColorBrightGreen)
	dst.SetColored(x+2, y, cannonBase, core.ColorGreen)
}
