package core

import "fmt"

// Sprite is a multi-frame piece of character art. Frames are rows of runes;
// all rows within a frame must have equal width. Spaces are treated as
// transparent when drawing so sprites can overlap without punching holes.
type Sprite struct {
	frames [][]string
	color  Color
	frame  int
}

// NewSprite creates a sprite from one or more frames.
// Returns an error if no frames are given or a frame has ragged rows.
func NewSprite(color Color, frames ...[]string) (*Sprite, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("sprite: no frames")
	}
	for i, f := range frames {
		if len(f) == 0 {
			return nil, fmt.Errorf("sprite: frame %d is empty", i)
		}
		w := len([]rune(f[0]))
		for _, row := range f {
			if len([]rune(row)) != w {
				return nil, fmt.Errorf("sprite: frame %d has ragged rows", i)
			}
		}
	}
	return &Sprite{frames: frames, color: color}, nil
}

// MustSprite is like NewSprite but panics on invalid art.
// Intended for compile-time constant sprites.
func MustSprite(color Color, frames ...[]string) *Sprite {
	s, err := NewSprite(color, frames...)
	if err != nil {
		panic(err)
	}
	return s
}

// Width returns the sprite width in cells.
func (s *Sprite) Width() int {
	return len([]rune(s.frames[0][0]))
}

// Height returns the sprite height in cells.
func (s *Sprite) Height() int {
	return len(s.frames[0])
}

// FrameCount returns the number of animation frames.
func (s *Sprite) FrameCount() int {
	return len(s.frames)
}

// Frame returns the current frame index.
func (s *Sprite) Frame() int {
	return s.frame
}

// SetFrame selects the frame to draw. Out-of-range values wrap.
func (s *Sprite) SetFrame(i int) {
	n := len(s.frames)
	s.frame = ((i % n) + n) % n
}

// Advance moves to the next animation frame, wrapping at the end.
func (s *Sprite) Advance() {
	s.frame = (s.frame + 1) % len(s.frames)
}

// Draw renders the current frame onto dst with its top-left corner at (x, y).
// Cells outside the screen are clipped; space runes are skipped.
func (s *Sprite) Draw(dst *Screen, x, y int) {
	for dy, row := range s.frames[s.frame] {
		for dx, r := range []rune(row) {
			if r == ' ' {
				continue
			}
			dst.SetColored(x+dx, y+dy, r, s.color)
		}
	}
}

// SpriteBank is an owned collection of named sprites. It replaces ambient
// module-level sprite caches: the owner creates it, passes it where needed
// and drops it on teardown.
type SpriteBank struct {
	sprites map[string]*Sprite
}

// NewSpriteBank creates an empty sprite bank.
func NewSpriteBank() *SpriteBank {
	return &SpriteBank{sprites: make(map[string]*Sprite)}
}

// Add registers a sprite under a name.
// Returns an error if the name is empty or already taken.
func (b *SpriteBank) Add(name string, s *Sprite) error {
	if name == "" {
		return fmt.Errorf("sprite: empty name")
	}
	if _, exists := b.sprites[name]; exists {
		return fmt.Errorf("sprite: %q already registered", name)
	}
	b.sprites[name] = s
	return nil
}

// MustAdd is like Add but panics on a bad name.
// Intended for banks built from compile-time constants.
func (b *SpriteBank) MustAdd(name string, s *Sprite) {
	if err := b.Add(name, s); err != nil {
		panic(err)
	}
}

// Get returns the sprite registered under name, or nil if absent.
func (b *SpriteBank) Get(name string) *Sprite {
	return b.sprites[name]
}

// Len returns the number of registered sprites.
func (b *SpriteBank) Len() int {
	return len(b.sprites)
}
