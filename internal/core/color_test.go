package core

import "testing"

func TestColorAnsiCodes(t *testing.T) {
	cases := []struct {
		color Color
		code  uint8
	}{
		{ColorDefault, 0},
		{ColorGreen, 2},
		{ColorBrightGreen, 10},
		{ColorBrightWhite, 15},
		{ColorGray, 245},
	}
	for _, c := range cases {
		if got := c.color.Ansi(); got != c.code {
			t.Errorf("Ansi() for %d = %d, expected %d", c.color, got, c.code)
		}
	}
}
