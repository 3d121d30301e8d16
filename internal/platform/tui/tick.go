// Package tui provides the Bubble Tea integration for the invaders game:
// the terminal UI loop, input mapping, scoreboard views and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives one frame of the game loop.
type TickMsg time.Time

// tickCmd returns a command that sends tick messages at the given rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate < 1 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// BlinkMsg toggles the menu/overlay blink phase.
type BlinkMsg struct{}

// blinkInterval is the on/off period of blinking prompt text.
const blinkInterval = 600 * time.Millisecond

func blinkCmd() tea.Cmd {
	return tea.Tick(blinkInterval, func(time.Time) tea.Msg {
		return BlinkMsg{}
	})
}
