package main

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/koteyur/physac-hexagon/internal/sim"
)

// errQuit ends RunGame without being reported as a failure.
var errQuit = errors.New("quit")

var (
	backgroundColor = color.RGBA{30, 30, 30, 255}
	wallColor       = color.RGBA{0, 255, 0, 255}
	ballColor       = color.RGBA{255, 100, 100, 255}
)

type Game struct {
	sim     *sim.Simulation
	frame   sim.Frame
	width   int
	height  int
	verbose bool
}

func NewGame(s *sim.Simulation, width, height int, verbose bool) (*Game, error) {
	frame, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return &Game{sim: s, frame: frame, width: width, height: height, verbose: verbose}, nil
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		return errQuit
	}

	touches := inpututil.AppendJustPressedTouchIDs(nil)
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		len(touches) > 0 {

		g.sim.Reset()
	}

	contacts := g.sim.Step(1 / float64(ebiten.MaxTPS()))
	if g.verbose {
		logContacts(contacts)
	}

	frame, err := g.sim.Snapshot()
	if err != nil {
		return err
	}
	g.frame = frame
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	vertices := g.frame.Vertices
	for i := range vertices {
		// close the outline back to the first vertex
		a := vertices[i]
		b := vertices[(i+1)%len(vertices)]
		ebitenutil.DrawLine(screen, a.X(), a.Y(), b.X(), b.Y(), wallColor)
	}
	drawFilledCircle(screen, g.frame.Position, g.frame.Radius, ballColor)

	st := g.sim.Stats()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"TPS: %0.1f\nBounces: %d\nAngle: %0.2f\nPress <space> or click to reset, <esc> to quit",
		ebiten.CurrentTPS(), st.Bounces, g.frame.Angle,
	))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
