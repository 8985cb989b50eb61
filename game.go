package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/glyphgrid/input"
	"github.com/milk9111/glyphgrid/render"
)

// Game runs a session in an ebiten window.
type Game struct {
	session *session
	device  *render.EbitenDevice
	poller  *input.EbitenPoller
	debug   bool
}

func NewGame(s *session, device *render.EbitenDevice, debug bool) *Game {
	return &Game{
		session: s,
		device:  device,
		poller:  input.NewEbitenPoller(s.keys),
		debug:   debug,
	}
}

func (g *Game) Update() error {
	g.poller.Poll()
	g.session.step()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	bg := g.session.cfg.Background
	r, gr, b := bg.RGB8()
	screen.Fill(color.RGBA{R: r, G: gr, B: b, A: 0xff})

	g.device.SetTarget(screen)
	g.session.grid.Render()

	if g.debug {
		st := g.session.batcher.Stats()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f  cells: %d  sprites: %d  draws: %d",
			ebiten.ActualFPS(), g.session.grid.Len(), st.Sprites, st.DrawCalls))
	}
}

// Layout hands the window size to the grid, which clears itself when the
// size changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.session.grid.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
