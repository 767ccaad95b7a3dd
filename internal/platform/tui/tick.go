// Package tui provides the Bubble Tea integration for the money machine.
// It handles the terminal UI loop, input mapping, the puzzle screens and
// the SSH front end.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const defaultTickRate = 60

// TickMsg is sent to trigger a machine update.
type TickMsg time.Time

// frameInterval converts a tick rate to a frame length. Non-positive rates
// fall back to 60 per second.
func frameInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd schedules the next frame.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(frameInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
