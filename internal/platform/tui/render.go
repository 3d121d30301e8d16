package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/arcadehall/invaders/internal/core"
)

// colorStyles holds one lipgloss style per ANSI code. Built once so
// concurrent SSH sessions render from a read-only table.
var colorStyles = func() [256]lipgloss.Style {
	var styles [256]lipgloss.Style
	styles[core.ColorDefault] = lipgloss.NewStyle()
	for i := 1; i < len(styles); i++ {
		styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(i)))
	}
	return styles
}()

// styleFor resolves a cell color to its lipgloss style. Colors carry their
// own ANSI code, so any palette entry resolves without a hand-kept table.
func styleFor(c core.Color) lipgloss.Style {
	return colorStyles[c.Ansi()]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells sharing a color are grouped into one styled run to keep
// ANSI escape sequences down.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			runColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != runColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(styleFor(runColor).Render(run.String()))
		}
	}
	return sb.String()
}
