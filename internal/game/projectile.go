package game

import "github.com/arcadehall/invaders/internal/core"

// Projectile glyphs
const (
	boltChar = '|'
	bombChar = '¡'
)

// Projectile is a player bolt or an invader bomb in flight.
type Projectile struct {
	Entity
	FromPlayer bool
}

// NewBolt creates a player shot moving upward at speed cells per second.
func NewBolt(pos core.Vec2, speed float64) *Projectile {
	return &Projectile{
		Entity: Entity{
			Pos:   pos,
			Vel:   core.V(0, -speed),
			W:     1,
			H:     1,
			Alive: true,
		},
		FromPlayer: true,
	}
}

// NewBomb creates an invader shot moving downward at speed cells per second.
func NewBomb(pos core.Vec2, speed float64) *Projectile {
	return &Projectile{
		Entity: Entity{
			Pos:   pos,
			Vel:   core.V(0, speed),
			W:     1,
			H:     1,
			Alive: true,
		},
	}
}

// Update moves the projectile and kills it once it leaves the battlefield.
func (p *Projectile) Update(dt float64, screenH int) {
	if !p.Alive {
		return
	}
	p.Move(dt)
	if p.Pos.Y < 0 || p.Pos.Y >= float64(screenH) {
		p.Kill()
	}
}

// Render draws the projectile.
func (p *Projectile) Render(dst *core.Screen) {
	if !p.Alive {
		return
	}
	if p.FromPlayer {
		dst.SetColored(int(p.Pos.X), int(p.Pos.Y), boltChar, core.ColorBrightWhite)
	} else {
		dst.SetColored(int(p.Pos.X), int(p.Pos.Y), bombChar, core.ColorBrightRed)
	}
}

// compact removes dead projectiles in place.
func compact(ps []*Projectile) []*Projectile {
	out := ps[:0]
	for _, p := range ps {
		if p.Alive {
			out = append(out, p)
		}
	}
	return out
}
