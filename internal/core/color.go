package core

// Color is a foreground color for a screen cell. The value is the ANSI
// 256-color code the terminal renderer emits; zero means unstyled.
type Color uint8

// Ansi reports the ANSI 256-color code for the color.
func (c Color) Ansi() uint8 { return uint8(c) }

// The game palette. Green for the cannon and bunkers echoes the cabinet's
// overlay strip; each fleet rank gets its own bright accent.
const (
	ColorDefault       Color = 0
	ColorRed           Color = 1
	ColorGreen         Color = 2
	ColorBrightRed     Color = 9
	ColorBrightGreen   Color = 10
	ColorBrightYellow  Color = 11
	ColorBrightMagenta Color = 13
	ColorBrightCyan    Color = 14
	ColorBrightWhite   Color = 15
	ColorGray          Color = 245
)
