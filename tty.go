package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/glyphgrid/tty"
)

const ttyFrame = 16 * time.Millisecond

// runTTY drives a session on the terminal until the user quits.
func runTTY(s *session, screen tcell.Screen) {
	mirror := tty.NewMirror(screen, s.grid)
	s.grid.SetPresenter(mirror)
	mirror.FitGrid()
	events := mirror.Listen()

	ticker := time.NewTicker(ttyFrame)
	defer ticker.Stop()
	for range ticker.C {
		if !mirror.Pump(events, s.keys) {
			return
		}
		s.step()
		s.grid.Render()
	}
}
