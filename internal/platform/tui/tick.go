// Package tui provides the Bubble Tea integration for the battlefield.
// It hosts a battlefield controller inside a terminal program, feeds it
// window resizes and key presses, and runs its callback loop.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/battlefield/internal/loop"
)

// loopMsg signals that callbacks are waiting on the battlefield loop.
type loopMsg struct{}

// waitForLoop returns a command that blocks until the loop has work. The
// callbacks themselves run in Update, on the program's goroutine.
func waitForLoop(l *loop.Loop) tea.Cmd {
	return func() tea.Msg {
		<-l.Ready()
		return loopMsg{}
	}
}
