package core

import (
	"strings"
	"testing"
)

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 5)

	s.Set(3, 2, '#')
	if got := s.Get(3, 2); got != '#' {
		t.Errorf("Get(3,2) = %q, expected '#'", got)
	}

	// Untouched cells are spaces
	if got := s.Get(0, 0); got != ' ' {
		t.Errorf("Get(0,0) = %q, expected space", got)
	}
}

func TestScreenColoredCells(t *testing.T) {
	s := NewScreen(10, 5)

	s.SetColored(1, 1, '@', ColorGreen)
	cell := s.GetCell(1, 1)
	if cell.Rune != '@' || cell.Color != ColorGreen {
		t.Errorf("GetCell(1,1) = %+v, expected green '@'", cell)
	}

	// Clear resets color too
	s.Clear()
	cell = s.GetCell(1, 1)
	if cell.Rune != ' ' || cell.Color != ColorDefault {
		t.Errorf("after Clear, GetCell(1,1) = %+v", cell)
	}
}

func TestScreenOutOfBounds(t *testing.T) {
	s := NewScreen(10, 5)

	// Writes outside the buffer must be ignored, not panic
	s.Set(-1, 0, 'x')
	s.Set(0, -1, 'x')
	s.Set(10, 0, 'x')
	s.Set(0, 5, 'x')

	if got := s.Get(-1, 0); got != ' ' {
		t.Errorf("Get(-1,0) = %q, expected space", got)
	}
	if got := s.Get(10, 5); got != ' ' {
		t.Errorf("Get(10,5) = %q, expected space", got)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 3)

	s.DrawText(2, 1, "hi")
	if row := s.Row(1); row != "  hi      " {
		t.Errorf("Row(1) = %q", row)
	}

	// Clipped at the right edge
	s.DrawText(8, 0, "long")
	if row := s.Row(0); row != "        lo" {
		t.Errorf("Row(0) = %q", row)
	}
}

func TestScreenDrawTextMultibyte(t *testing.T) {
	s := NewScreen(16, 3)

	// Box-drawing and interpunct glyphs are multi-byte in UTF-8; each
	// still occupies exactly one cell with no gaps.
	s.DrawText(0, 0, "── PAUSED ──")
	if row := s.Row(0); row != "── PAUSED ──    " {
		t.Errorf("Row(0) = %q", row)
	}
	if got := s.Get(1, 0); got != '─' {
		t.Errorf("Get(1,0) = %q, expected '─'", got)
	}

	s.DrawText(0, 1, "a·b")
	if got := s.Get(2, 1); got != 'b' {
		t.Errorf("Get(2,1) = %q, expected 'b'", got)
	}
}

func TestScreenDrawTextCenteredMultibyte(t *testing.T) {
	s := NewScreen(11, 2)

	// Centering counts runes, not bytes.
	s.DrawTextCentered(0, "───")
	if row := s.Row(0); row != "    ───    " {
		t.Errorf("Row(0) = %q", row)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 3)
	s.DrawTextCentered(1, "abc")
	if row := s.Row(1); row != "    abc    " {
		t.Errorf("Row(1) = %q", row)
	}
}

func TestScreenResizePreservesContent(t *testing.T) {
	s := NewScreen(10, 5)
	s.Set(2, 2, 'x')
	s.SetColored(9, 4, 'y', ColorRed)

	s.Resize(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size after Resize = %dx%d", s.Width(), s.Height())
	}
	if got := s.Get(2, 2); got != 'x' {
		t.Errorf("content at (2,2) lost on shrink: %q", got)
	}

	s.Resize(12, 6)
	if got := s.Get(2, 2); got != 'x' {
		t.Errorf("content at (2,2) lost on grow: %q", got)
	}
	// The cell that was cut off must not come back
	if got := s.Get(9, 4); got != ' ' {
		t.Errorf("truncated cell reappeared: %q", got)
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'a')
	s.Set(2, 1, 'b')

	out := s.String()
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("String() produced %d lines, expected 2", len(lines))
	}
	if lines[0] != "a  " || lines[1] != "  b" {
		t.Errorf("String() = %q", out)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(0, 0, 6, 4)

	if got := s.Get(0, 0); got != '┌' {
		t.Errorf("top-left corner = %q", got)
	}
	if got := s.Get(5, 0); got != '┐' {
		t.Errorf("top-right corner = %q", got)
	}
	if got := s.Get(0, 3); got != '└' {
		t.Errorf("bottom-left corner = %q", got)
	}
	if got := s.Get(5, 3); got != '┘' {
		t.Errorf("bottom-right corner = %q", got)
	}
	if got := s.Get(2, 0); got != '─' {
		t.Errorf("top edge = %q", got)
	}
	if got := s.Get(0, 1); got != '│' {
		t.Errorf("left edge = %q", got)
	}
	// Interior untouched
	if got := s.Get(2, 1); got != ' ' {
		t.Errorf("interior = %q", got)
	}
}
