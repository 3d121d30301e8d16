package game

import (
	"math/rand"

	"github.com/arcadehall/invaders/internal/config"
	"github.com/arcadehall/invaders/internal/core"
)

// rowSpriteNames index the fleet sprite bank by formation row, top first.
var rowSpriteNames = []string{"squid", "crab", "crab", "octopus", "octopus"}

// newFleetSprites builds the two-frame march sprites for each invader kind.
func newFleetSprites() *core.SpriteBank {
	bank := core.NewSpriteBank()
	bank.MustAdd("squid", core.MustSprite(core.ColorBrightMagenta, []string{"Ж"}, []string{"X"}))
	bank.MustAdd("crab", core.MustSprite(core.ColorBrightCyan, []string{"¥"}, []string{"Y"}))
	bank.MustAdd("octopus", core.MustSprite(core.ColorBrightGreen, []string{"W"}, []string{"M"}))
	return bank
}

// Invader is a single fleet member. Row/Col index its formation slot.
type Invader struct {
	Entity
	Row, Col int
	Points   int
}

// Fleet is the marching invader formation. It moves as a block: a timer
// fires march steps, each step shifts every live invader horizontally, and
// hitting a screen edge drops the block one descent and reverses direction.
type Fleet struct {
	Invaders []*Invader

	dir       float64 // +1 right, -1 left
	stepTimer float64
	frame     int // Alternates the march glyph
	alive     int
	total     int

	cfg        config.FleetConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	sprites    *core.SpriteBank
}

// NewFleet builds the formation in the top-left region of the battlefield.
func NewFleet(cfg config.FleetConfig, scoring config.ScoringConfig, dm *config.DifficultyManager, rng *rand.Rand) *Fleet {
	f := &Fleet{
		dir:        1,
		cfg:        cfg,
		difficulty: dm,
		rng:        rng,
		sprites:    newFleetSprites(),
	}
	f.Invaders = make([]*Invader, 0, cfg.Rows*cfg.Cols)
	for row := 0; row < cfg.Rows; row++ {
		for col := 0; col < cfg.Cols; col++ {
			inv := &Invader{
				Entity: Entity{
					Pos:   core.V(float64(2+col*cfg.HSpacing), float64(2+row*cfg.VSpacing)),
					W:     1,
					H:     1,
					Alive: true,
				},
				Row:    row,
				Col:    col,
				Points: rowPoints(scoring, row),
			}
			f.Invaders = append(f.Invaders, inv)
		}
	}
	f.alive = len(f.Invaders)
	f.total = f.alive
	return f
}

// rowPoints returns the score value for an invader in the given row; rows
// beyond the configured slice reuse the last value.
func rowPoints(scoring config.ScoringConfig, row int) int {
	if len(scoring.RowPoints) == 0 {
		return 10
	}
	if row >= len(scoring.RowPoints) {
		return scoring.RowPoints[len(scoring.RowPoints)-1]
	}
	return scoring.RowPoints[row]
}

// AliveCount returns the number of surviving invaders.
func (f *Fleet) AliveCount() int {
	return f.alive
}

// Cleared reports whether every invader has been destroyed.
func (f *Fleet) Cleared() bool {
	return f.alive == 0
}

// stepInterval returns the seconds between march steps. It shrinks linearly
// as ranks thin and with the difficulty level, floored at the configured
// minimum.
func (f *Fleet) stepInterval(wave, score int) float64 {
	interval := f.cfg.StepInterval
	if f.total > 0 {
		// Full formation marches at the base rate; the last invader
		// marches at the minimum.
		ratio := float64(f.alive) / float64(f.total)
		interval = f.cfg.MinStepInterval + ratio*(f.cfg.StepInterval-f.cfg.MinStepInterval)
	}
	if f.difficulty != nil {
		speed := f.difficulty.MarchSpeed(1.0/interval, wave, score)
		interval = 1.0 / speed
	}
	if interval < f.cfg.MinStepInterval {
		interval = f.cfg.MinStepInterval
	}
	return interval
}

// Update advances the march timer and fires step/bomb logic. Spawned bombs
// are returned for the world to track; maxBombs caps in-flight bombs.
func (f *Fleet) Update(dt float64, screenW, wave, score, inFlight int) []*Projectile {
	if f.alive == 0 {
		return nil
	}
	f.stepTimer += dt
	interval := f.stepInterval(wave, score)
	var bombs []*Projectile
	for f.stepTimer >= interval {
		f.stepTimer -= interval
		f.step(screenW)
		if b := f.dropBomb(wave, score, inFlight+len(bombs)); b != nil {
			bombs = append(bombs, b)
		}
	}
	return bombs
}

// step moves the block one horizontal increment, or descends and reverses
// when the leading edge would leave the battlefield.
func (f *Fleet) step(screenW int) {
	f.frame ^= 1

	minX, maxX := f.extent()
	next := minX + f.dir*f.cfg.StepX
	nextMax := maxX + f.dir*f.cfg.StepX
	if next < 0 || nextMax >= float64(screenW) {
		for _, inv := range f.Invaders {
			if inv.Alive {
				inv.Pos.Y += f.cfg.Descent
			}
		}
		f.dir = -f.dir
		return
	}
	for _, inv := range f.Invaders {
		if inv.Alive {
			inv.Pos.X += f.dir * f.cfg.StepX
		}
	}
}

// extent returns the min and max X of the live formation.
func (f *Fleet) extent() (minX, maxX float64) {
	first := true
	for _, inv := range f.Invaders {
		if !inv.Alive {
			continue
		}
		if first {
			minX, maxX = inv.Pos.X, inv.Pos.X+inv.W-1
			first = false
			continue
		}
		if inv.Pos.X < minX {
			minX = inv.Pos.X
		}
		if inv.Pos.X+inv.W-1 > maxX {
			maxX = inv.Pos.X + inv.W - 1
		}
	}
	return minX, maxX
}

// BottomY returns the lowest Y any live invader occupies. Zero when the
// fleet is cleared.
func (f *Fleet) BottomY() float64 {
	var bottom float64
	for _, inv := range f.Invaders {
		if inv.Alive && inv.Pos.Y > bottom {
			bottom = inv.Pos.Y
		}
	}
	return bottom
}

// shooters returns, per column, the lowest live invader. Only these drop
// bombs, like the arcade original.
func (f *Fleet) shooters() []*Invader {
	byCol := make(map[int]*Invader, f.cfg.Cols)
	for _, inv := range f.Invaders {
		if !inv.Alive {
			continue
		}
		cur, ok := byCol[inv.Col]
		if !ok || inv.Pos.Y > cur.Pos.Y {
			byCol[inv.Col] = inv
		}
	}
	out := make([]*Invader, 0, len(byCol))
	for col := 0; col < f.cfg.Cols; col++ {
		if inv, ok := byCol[col]; ok {
			out = append(out, inv)
		}
	}
	return out
}

// dropBomb rolls the per-step bomb chance across the bottom shooters and
// spawns at most one bomb. Returns nil when the in-flight cap is reached.
func (f *Fleet) dropBomb(wave, score, inFlight int) *Projectile {
	if inFlight >= f.cfg.MaxBombs {
		return nil
	}
	chance := f.cfg.BombChance
	if f.difficulty != nil {
		chance = f.difficulty.BombChance(chance, wave, score)
	}
	shooters := f.shooters()
	if len(shooters) == 0 {
		return nil
	}
	for _, idx := range f.rng.Perm(len(shooters)) {
		if f.rng.Float64() < chance {
			s := shooters[idx]
			return NewBomb(core.V(s.Pos.X, s.Pos.Y+1), f.cfg.BombSpeed)
		}
	}
	return nil
}

// HitAt kills the first live invader intersecting box and returns it, or
// nil when nothing was hit.
func (f *Fleet) HitAt(box core.Rect) *Invader {
	for _, inv := range f.Invaders {
		if inv.Alive && inv.Bounds().Intersects(box) {
			inv.Kill()
			f.alive--
			return inv
		}
	}
	return nil
}

// Render draws the live formation with the current march frame.
func (f *Fleet) Render(dst *core.Screen) {
	for _, inv := range f.Invaders {
		if !inv.Alive {
			continue
		}
		row := inv.Row
		if row >= len(rowSpriteNames) {
			row = len(rowSpriteNames) - 1
		}
		spr := f.sprites.Get(rowSpriteNames[row])
		if spr == nil {
			continue
		}
		spr.SetFrame(f.frame)
		spr.Draw(dst, int(inv.Pos.X), int(inv.Pos.Y))
	}
}
