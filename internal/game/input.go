package game

import (
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/hex-outbreak/internal/sim"
)

var overlayKeys = map[ebiten.Key]OverlayMode{
	ebiten.Key0: OverlayOff,
	ebiten.Key1: OverlayInfection,
	ebiten.Key2: OverlayResources,
	ebiten.Key3: OverlayPopulation,
}

var buildKeys = map[ebiten.Key]sim.Action{
	ebiten.KeyF: sim.ActionBuildFactory,
	ebiten.KeyL: sim.ActionBuildLab,
	ebiten.KeyW: sim.ActionBuildWall,
}

// handleInput processes edge-triggered keys and mouse buttons.
func (g *Game) handleInput() {
	mx, my := ebiten.CursorPosition()

	if g.engine.Phase() == sim.PhaseMenu {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			g.engine.Start()
		}
		return
	}

	if t, _, _, ok := g.tileAtScreen(mx, my); ok {
		g.hovered = t
	} else {
		g.hovered = nil
	}

	// C: copy the status report; works after the game has ended too.
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyStatus()
	}
	// H: toggle HUD.
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}

	g.handlePan(mx, my)

	if g.engine.Phase() != sim.PhasePlaying {
		return
	}

	for k, mode := range overlayKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.overlay = mode
		}
	}
	for k, action := range buildKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.buildMode = action
		}
	}

	// Sim speed controls: P=pause/resume, ,=slower, .=faster.
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.togglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyComma) {
		g.slower()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		g.faster()
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if cmd, ok := g.commandAt(mx, my); ok {
			g.issue(cmd)
		}
	}
}

// handlePan drags the camera while the right button is held.
func (g *Game) handlePan(mx, my int) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.dragging = true
		g.dragStartX, g.dragStartY = mx, my
		g.camStartX, g.camStartY = g.camX, g.camY
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight) {
		g.dragging = false
	}
	if g.dragging {
		g.camX = g.camStartX + float64(mx-g.dragStartX)
		g.camY = g.camStartY + float64(my-g.dragStartY)
	}
}

func (g *Game) togglePause() {
	if g.simSpeed > 0 {
		g.simSpeed = 0
	} else {
		g.simSpeed = 1
	}
}

func (g *Game) slower() {
	for i, s := range speeds {
		if s >= g.simSpeed && i > 0 {
			g.simSpeed = speeds[i-1]
			return
		}
	}
}

func (g *Game) faster() {
	for i, s := range speeds {
		if s > g.simSpeed {
			g.simSpeed = speeds[i]
			return
		}
	}
}

func (g *Game) copyStatus() {
	report := StatusReport(g.engine, g.hovered)
	if err := clipboard.WriteAll(report); err != nil {
		g.logger.Warn("clipboard unavailable", "err", err)
		return
	}
	g.events.Add(g.engine.TickCount(), "--", EventInfo, "status copied")
}
