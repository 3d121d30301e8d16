package game

import (
	"github.com/arcadehall/invaders/internal/config"
	"github.com/arcadehall/invaders/internal/core"
)

// Erosion glyphs, full strength first. A segment renders the glyph for its
// remaining hit count.
var bunkerGlyphs = []rune{'█', '▓', '▒', '░'}

// Bunker is a destructible shield. Each cell-wide segment absorbs a number
// of hits independently, eroding visibly.
type Bunker struct {
	X, Y     int
	segments []int // Remaining hits per column; 0 = gone
	maxHits  int
}

// NewBunkers lays out cfg.Count bunkers evenly above the cannon row.
func NewBunkers(cfg config.BunkerConfig, screenW, screenH int) []*Bunker {
	if cfg.Count <= 0 {
		return nil
	}
	bunkers := make([]*Bunker, 0, cfg.Count)
	span := screenW / cfg.Count
	for i := 0; i < cfg.Count; i++ {
		x := i*span + (span-cfg.Width)/2
		b := &Bunker{
			X:        x,
			Y:        screenH - 5,
			segments: make([]int, cfg.Width),
			maxHits:  cfg.Hits,
		}
		for j := range b.segments {
			b.segments[j] = cfg.Hits
		}
		bunkers = append(bunkers, b)
	}
	return bunkers
}

// Absorb erodes the segment under the projectile box. Returns true when a
// live segment absorbed the hit.
func (b *Bunker) Absorb(box core.Rect) bool {
	row := core.NewRect(float64(b.X), float64(b.Y), float64(len(b.segments)), 1)
	if !row.Intersects(box) {
		return false
	}
	col := int(box.Center().X) - b.X
	if col < 0 || col >= len(b.segments) || b.segments[col] == 0 {
		return false
	}
	b.segments[col]--
	return true
}

// Intact reports whether any segment still stands.
func (b *Bunker) Intact() bool {
	for _, hits := range b.segments {
		if hits > 0 {
			return true
		}
	}
	return false
}

// Render draws the bunker with per-segment erosion.
func (b *Bunker) Render(dst *core.Screen) {
	for i, hits := range b.segments {
		if hits == 0 {
			continue
		}
		// Map remaining hits onto the erosion ramp.
		idx := (b.maxHits - hits) * len(bunkerGlyphs) / b.maxHits
		if idx >= len(bunkerGlyphs) {
			idx = len(bunkerGlyphs) - 1
		}
		dst.SetColored(b.X+i, b.Y, bunkerGlyphs[idx], core.ColorGreen)
	}
}
