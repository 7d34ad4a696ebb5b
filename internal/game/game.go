// Package game is the windowed shell around the outbreak simulation. It
// turns mouse and keyboard input into engine commands and draws the map; it
// never edits tile state itself.
package game

import (
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/hex-outbreak/internal/config"
	"github.com/Garsondee/hex-outbreak/internal/hexgrid"
	"github.com/Garsondee/hex-outbreak/internal/sim"
)

// OverlayMode selects the per-tile text label.
type OverlayMode int

const (
	OverlayOff OverlayMode = iota
	OverlayInfection
	OverlayResources
	OverlayPopulation
)

func (m OverlayMode) String() string {
	switch m {
	case OverlayInfection:
		return "infection"
	case OverlayResources:
		return "resources"
	case OverlayPopulation:
		return "population"
	default:
		return "off"
	}
}

var (
	backgroundColor = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	outlineColor    = color.RGBA{R: 100, G: 100, B: 100, A: 255}
	wallColor       = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	factoryColor    = color.RGBA{R: 180, G: 180, B: 0, A: 255}
	labColor        = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	researchColor   = color.RGBA{R: 100, G: 100, B: 250, A: 255}
	panelColor      = color.RGBA{R: 50, G: 50, B: 50, A: 255}
	textColor       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	menuTextColor   = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	victoryColor    = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	defeatColor     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// speeds are the selectable ticks-per-frame multipliers.
var speeds = []float64{0, 0.5, 1, 2, 4}

type Game struct {
	engine *sim.Engine
	logger *log.Logger

	width   int
	height  int
	hexSize float64
	corners [hexgrid.DirectionCount][2]float64

	// Camera offset: screen position of the origin tile's centre.
	camX float64
	camY float64

	// Right-button drag pan.
	dragging   bool
	dragStartX int
	dragStartY int
	camStartX  float64
	camStartY  float64

	overlay   OverlayMode
	buildMode sim.Action
	showHUD   bool

	// Simulation speed control.
	simSpeed  float64
	tickAccum float64

	hovered *hexgrid.Tile
	tint    map[hexgrid.Coord]uint8
	events  *EventPanel
	phase   sim.Phase
}

// New wraps an engine in a window shell. The engine should still be in
// PhaseMenu; the first left click starts it.
func New(engine *sim.Engine, display config.DisplayConfig, seed int64, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.Default()
	}
	g := &Game{
		engine:    engine,
		logger:    logger,
		width:     display.Width,
		height:    display.Height,
		hexSize:   display.HexSize,
		corners:   hexgrid.Corners(display.HexSize),
		camX:      float64(display.Width) / 2,
		camY:      float64(display.Height) / 2,
		buildMode: sim.ActionBuildFactory,
		showHUD:   true,
		simSpeed:  1,
		tint:      groundTint(engine.Grid(), seed),
		events:    NewEventPanel(),
		phase:     engine.Phase(),
	}
	return g
}

func (g *Game) Update() error {
	g.handleInput()

	if g.engine.Phase() != sim.PhasePlaying || g.simSpeed <= 0 {
		g.notePhase()
		return nil
	}

	// For speeds > 1 run several ticks per frame; below 1 accumulate.
	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		g.engine.Tick()
	}
	g.notePhase()
	return nil
}

// notePhase posts phase transitions to the event panel.
func (g *Game) notePhase() {
	p := g.engine.Phase()
	if p == g.phase {
		return
	}
	g.events.Add(g.engine.TickCount(), "--", EventPhase, p.String())
	g.phase = p
}

// issue sends one command to the engine and reports the result on the panel.
func (g *Game) issue(cmd sim.Command) bool {
	ok := g.engine.Apply(cmd)
	kind := EventAccepted
	if !ok {
		kind = EventRejected
	}
	g.events.Add(g.engine.TickCount(), cmd.Coord.String(), kind, cmd.Action.String())
	return ok
}

// tileAtScreen maps a screen pixel to the tile under it and the offset of
// the pixel from that tile's centre.
func (g *Game) tileAtScreen(sx, sy int) (*hexgrid.Tile, float64, float64, bool) {
	rx := float64(sx) - g.camX
	ry := float64(sy) - g.camY
	c := hexgrid.CubeFromPixel(rx, ry, g.hexSize)
	t, ok := g.engine.TileAt(c)
	if !ok {
		return nil, 0, 0, false
	}
	cx, cy := hexgrid.PixelFromCube(c.Q, c.R, g.hexSize)
	return t, rx - cx, ry - cy, true
}

// commandAt builds the command a left click at (sx, sy) issues in the
// current build mode.
func (g *Game) commandAt(sx, sy int) (sim.Command, bool) {
	t, dx, dy, ok := g.tileAtScreen(sx, sy)
	if !ok {
		return sim.Command{}, false
	}
	switch g.buildMode {
	case sim.ActionBuildWall:
		return sim.BuildWall(t.Coord, hexgrid.EdgeFromOffset(dx, dy)), true
	case sim.ActionBuildLab:
		return sim.BuildLab(t.Coord), true
	default:
		return sim.BuildFactory(t.Coord), true
	}
}

// screenCentre returns the screen position of a tile's centre.
func (g *Game) screenCentre(c hexgrid.Coord) (float32, float32) {
	x, y := hexgrid.PixelFromCube(c.Q, c.R, g.hexSize)
	return float32(x + g.camX), float32(y + g.camY)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Run opens the window and blocks until it closes.
func Run(g *Game, title string, tps int) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetTPS(tps)
	return ebiten.RunGame(g)
}
