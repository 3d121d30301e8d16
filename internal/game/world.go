package game

import (
	"fmt"
	"math/rand"

	"github.com/arcadehall/invaders/internal/config"
	"github.com/arcadehall/invaders/internal/core"
)

// World is the full simulation. It is deterministic for a given seed,
// config and input sequence, so replays and tests are exact.
type World struct {
	cfg        config.Config
	runtime    core.RuntimeConfig
	rng        *rand.Rand
	difficulty *config.DifficultyManager

	player  *Player
	fleet   *Fleet
	bolts   []*Projectile
	bombs   []*Projectile
	bunkers []*Bunker

	score int
	wave  int
	over  bool
}

// NewWorld builds a fresh simulation for wave 1.
func NewWorld(cfg config.Config, runtime core.RuntimeConfig) *World {
	w := &World{
		cfg:        cfg,
		runtime:    runtime,
		rng:        rand.New(rand.NewSource(runtime.Seed)),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
	w.reset()
	return w
}

// reset rebuilds the battlefield for wave 1 with full lives.
func (w *World) reset() {
	w.score = 0
	w.wave = 1
	w.over = false
	w.player = NewPlayer(w.cfg.Player, w.runtime.ScreenW, w.runtime.ScreenH)
	w.spawnWave()
}

// spawnWave rebuilds the fleet and bunkers for the current wave.
func (w *World) spawnWave() {
	w.fleet = NewFleet(w.cfg.Fleet, w.cfg.Scoring, w.difficulty, w.rng)
	w.bunkers = NewBunkers(w.cfg.Bunkers, w.runtime.ScreenW, w.runtime.ScreenH)
	w.bolts = nil
	w.bombs = nil
}

// Restart returns the world to its initial state, keeping the seed stream.
func (w *World) Restart() {
	w.reset()
}

// Score returns the current score.
func (w *World) Score() int { return w.score }

// Wave returns the current wave number, starting at 1.
func (w *World) Wave() int { return w.wave }

// Lives returns the player's remaining lives.
func (w *World) Lives() int { return w.player.Lives }

// GameOver reports whether the run has ended.
func (w *World) GameOver() bool { return w.over }

// FleetDrift reports where the live fleet's center sits relative to the
// cannon: -1 left, +1 right, 0 when aligned or cleared. Used by scripted
// drivers to track the formation.
func (w *World) FleetDrift() int {
	if w.fleet.Cleared() {
		return 0
	}
	minX, maxX := w.fleet.extent()
	center := (minX + maxX) / 2
	cannon := w.player.Pos.X + w.player.W/2
	switch {
	case center < cannon-1:
		return -1
	case center > cannon+1:
		return 1
	}
	return 0
}

// Step advances the simulation by dt seconds under the given input. A
// finished world ignores input except through Restart.
func (w *World) Step(in core.InputFrame, dt float64) {
	if w.over {
		return
	}

	w.player.Update(in, dt, w.runtime.ScreenW)
	if in.Has(core.ActionFire) {
		if bolt := w.player.TryFire(); bolt != nil {
			w.bolts = append(w.bolts, bolt)
		}
	}

	for _, b := range w.bolts {
		b.Update(dt, w.runtime.ScreenH)
	}
	for _, b := range w.bombs {
		b.Update(dt, w.runtime.ScreenH)
	}

	dropped := w.fleet.Update(dt, w.runtime.ScreenW, w.wave, w.score, len(w.bombs))
	w.bombs = append(w.bombs, dropped...)

	w.collide()

	w.bolts = compact(w.bolts)
	w.bombs = compact(w.bombs)

	if w.fleet.Cleared() {
		w.score += w.cfg.Scoring.WaveBonus
		w.wave++
		w.spawnWave()
		return
	}

	// Invaders reaching the cannon row end the run immediately.
	if w.fleet.BottomY() >= w.player.Pos.Y {
		w.over = true
	}
}

// collide resolves all projectile collisions for this tick.
func (w *World) collide() {
	for _, bolt := range w.bolts {
		if !bolt.Alive {
			continue
		}
		box := bolt.Bounds()
		if inv := w.fleet.HitAt(box); inv != nil {
			bolt.Kill()
			w.score += inv.Points
			continue
		}
		for _, bunker := range w.bunkers {
			if bunker.Absorb(box) {
				bolt.Kill()
				break
			}
		}
	}

	for _, bomb := range w.bombs {
		if !bomb.Alive {
			continue
		}
		box := bomb.Bounds()
		hitBunker := false
		for _, bunker := range w.bunkers {
			if bunker.Absorb(box) {
				bomb.Kill()
				hitBunker = true
				break
			}
		}
		if hitBunker {
			continue
		}
		if w.player.Bounds().Intersects(box) {
			bomb.Kill()
			if w.player.Hit() {
				w.over = true
			}
		}
	}
}

// Render draws the battlefield onto a cleared screen, HUD included.
func (w *World) Render(dst *core.Screen) {
	dst.Clear()
	w.renderHUD(dst)
	for _, bunker := range w.bunkers {
		bunker.Render(dst)
	}
	w.fleet.Render(dst)
	for _, b := range w.bolts {
		b.Render(dst)
	}
	for _, b := range w.bombs {
		b.Render(dst)
	}
	w.player.Render(dst)
}

// renderHUD draws the score line.
func (w *World) renderHUD(dst *core.Screen) {
	dst.DrawTextColored(1, 0, fmt.Sprintf("SCORE %d", w.score), core.ColorBrightWhite)
	dst.DrawTextCenteredColored(0, fmt.Sprintf("WAVE %d", w.wave), core.ColorBrightYellow)
	lives := fmt.Sprintf("LIVES %d", w.player.Lives)
	dst.DrawTextColored(dst.Width()-len(lives)-1, 0, lives, core.ColorBrightGreen)
}
