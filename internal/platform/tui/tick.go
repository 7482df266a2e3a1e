// Package tui runs the tiles game in the terminal with Bubble Tea.
// It owns the frame clock, maps keys to lane presses, plays sound effects
// for game events and renders the game's screen buffer with lipgloss.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// maxFrameDelta caps one frame's step, e.g. after the terminal was suspended.
const maxFrameDelta = 250 * time.Millisecond

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDelta returns seconds between two ticks. The first tick of a session
// (zero prev) advances nothing.
func frameDelta(prev, now time.Time) float64 {
	if prev.IsZero() || now.Before(prev) {
		return 0
	}
	d := now.Sub(prev)
	if d > maxFrameDelta {
		d = maxFrameDelta
	}
	return d.Seconds()
}
