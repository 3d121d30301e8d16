package core

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestVec2Arithmetic(t *testing.T) {
	a := V(3, 4)
	b := V(-1, 2)

	if got := a.Add(b); got != V(2, 6) {
		t.Errorf("Add() = %v, expected (2,6)", got)
	}
	if got := a.Sub(b); got != V(4, 2) {
		t.Errorf("Sub() = %v, expected (4,2)", got)
	}
	if got := a.Scale(2); got != V(6, 8) {
		t.Errorf("Scale() = %v, expected (6,8)", got)
	}
	if got := a.Dot(b); !almostEqual(got, 5) {
		t.Errorf("Dot() = %v, expected 5", got)
	}
}

func TestVec2Length(t *testing.T) {
	v := V(3, 4)
	if got := v.Length(); !almostEqual(got, 5) {
		t.Errorf("Length() = %v, expected 5", got)
	}
	if got := v.LengthSq(); !almostEqual(got, 25) {
		t.Errorf("LengthSq() = %v, expected 25", got)
	}
	if got := V(0, 0).Length(); !almostEqual(got, 0) {
		t.Errorf("Length() of zero vector = %v, expected 0", got)
	}
}

func TestVec2Normalize(t *testing.T) {
	n := V(10, 0).Normalize()
	if !almostEqual(n.X, 1) || !almostEqual(n.Y, 0) {
		t.Errorf("Normalize() = %v, expected (1,0)", n)
	}

	n = V(3, 4).Normalize()
	if !almostEqual(n.Length(), 1) {
		t.Errorf("Normalize().Length() = %v, expected 1", n.Length())
	}

	// Zero vector must not produce NaN
	z := V(0, 0).Normalize()
	if math.IsNaN(z.X) || math.IsNaN(z.Y) {
		t.Errorf("Normalize() of zero vector produced NaN: %v", z)
	}
}

func TestVec2DistanceAndLerp(t *testing.T) {
	a := V(0, 0)
	b := V(6, 8)

	if got := a.Distance(b); !almostEqual(got, 10) {
		t.Errorf("Distance() = %v, expected 10", got)
	}

	mid := a.Lerp(b, 0.5)
	if !almostEqual(mid.X, 3) || !almostEqual(mid.Y, 4) {
		t.Errorf("Lerp(0.5) = %v, expected (3,4)", mid)
	}
	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0) = %v, expected %v", got, a)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %v, expected %v", got, b)
	}
}

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 15, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent edges (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "tiny overlap",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(9.5, 9.5, 10, 10),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			// Also test symmetry
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		p        Vec2
		expected bool
	}{
		{"inside", V(15, 15), true},
		{"top-left corner", V(10, 10), true},
		{"bottom-right edge (exclusive)", V(30, 25), false},
		{"left of rect", V(5, 15), false},
		{"below rect", V(15, 30), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.p); got != tc.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestRectCenterAndTranslate(t *testing.T) {
	r := NewRect(0, 0, 10, 20)
	c := r.Center()
	if !almostEqual(c.X, 5) || !almostEqual(c.Y, 10) {
		t.Errorf("Center() = %v, expected (5,10)", c)
	}

	moved := r.Translate(V(3, -2))
	if moved.X != 3 || moved.Y != -2 || moved.W != 10 || moved.H != 20 {
		t.Errorf("Translate() = %v", moved)
	}
}

func TestClampHelpers(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Errorf("Clamp(5) = %d", got)
	}
	if got := Clamp(-5, 0, 10); got != 0 {
		t.Errorf("Clamp(-5) = %d", got)
	}
	if got := Clamp(15, 0, 10); got != 10 {
		t.Errorf("Clamp(15) = %d", got)
	}
	if got := ClampF(0.5, 0, 1); got != 0.5 {
		t.Errorf("ClampF(0.5) = %v", got)
	}
	if got := ClampF(-0.5, 0, 1); got != 0 {
		t.Errorf("ClampF(-0.5) = %v", got)
	}
}
