package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/hex-outbreak/internal/hexgrid"
	"github.com/Garsondee/hex-outbreak/internal/sim"
)

var face = basicfont.Face7x13

const (
	lineHeight     = 18
	researchBarW   = 200
	maxInfectAlpha = 200
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	if g.engine.Phase() == sim.PhaseMenu {
		g.drawMenu(screen)
		return
	}

	for _, t := range g.engine.Tiles() {
		g.drawTile(screen, t)
	}
	if g.hovered != nil {
		g.drawHoverOutline(screen, g.hovered)
	}

	g.drawStatusPanel(screen)
	if g.hovered != nil {
		g.drawInfoPanel(screen, g.hovered)
	}
	if msg, ok := banner(g.engine.Phase()); ok {
		col := victoryColor
		if g.engine.Phase() == sim.PhaseDefeat {
			col = defeatColor
		}
		drawCentred(screen, msg, g.width/2, 28, col)
	}
	if g.showHUD {
		g.drawHUD(screen)
		g.events.Draw(screen, g.width, g.height)
	}
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	drawCentred(screen, "Click to Start", g.width/2, g.height/2, menuTextColor)
}

// hexPath returns the closed outline of the hex centred at (cx, cy).
func (g *Game) hexPath(cx, cy float32) *vector.Path {
	var path vector.Path
	for i, c := range g.corners {
		x := cx + float32(c[0])
		y := cy + float32(c[1])
		if i == 0 {
			path.MoveTo(x, y)
		} else {
			path.LineTo(x, y)
		}
	}
	path.Close()
	return &path
}

func (g *Game) fillHex(screen *ebiten.Image, cx, cy float32, col color.Color) {
	opts := &vector.DrawPathOptions{AntiAlias: true}
	opts.ColorScale.ScaleWithColor(col)
	vector.FillPath(screen, g.hexPath(cx, cy), &vector.FillOptions{}, opts)
}

func (g *Game) drawTile(screen *ebiten.Image, t *hexgrid.Tile) {
	cx, cy := g.screenCentre(t.Coord)

	// Ground.
	shade := g.tint[t.Coord]
	g.fillHex(screen, cx, cy, color.RGBA{R: 34 + shade, G: 40 + shade, B: 34 + shade, A: 255})

	// Infection overlay.
	if rate := t.InfectionRate(); rate > 0 {
		alpha := uint8(min(maxInfectAlpha, int(maxInfectAlpha*rate)))
		g.fillHex(screen, cx, cy, color.NRGBA{R: 255, A: alpha})
	}

	// Outline.
	for i := range g.corners {
		a := g.corners[i]
		b := g.corners[(i+1)%hexgrid.DirectionCount]
		vector.StrokeLine(screen, cx+float32(a[0]), cy+float32(a[1]), cx+float32(b[0]), cy+float32(b[1]), 1, outlineColor, true)
	}

	// Walls sit on the edge facing the neighbour they block.
	for d := 0; d < hexgrid.DirectionCount; d++ {
		if !t.HasWall(d) {
			continue
		}
		i, j := hexgrid.EdgeCorners(d)
		a, b := g.corners[i], g.corners[j]
		vector.StrokeLine(screen, cx+float32(a[0]), cy+float32(a[1]), cx+float32(b[0]), cy+float32(b[1]), 4, wallColor, true)
	}

	switch t.Building {
	case hexgrid.BuildingFactory:
		vector.FillCircle(screen, cx, cy, float32(g.hexSize/3), factoryColor, true)
	case hexgrid.BuildingLab:
		vector.FillCircle(screen, cx, cy, float32(g.hexSize/3), labColor, true)
	}

	if label := overlayLabel(g.overlay, t); label != "" {
		drawCentred(screen, label, int(cx), int(cy)+4, textColor)
	}
}

func (g *Game) drawHoverOutline(screen *ebiten.Image, t *hexgrid.Tile) {
	cx, cy := g.screenCentre(t.Coord)
	for i := range g.corners {
		a := g.corners[i]
		b := g.corners[(i+1)%hexgrid.DirectionCount]
		vector.StrokeLine(screen, cx+float32(a[0]), cy+float32(a[1]), cx+float32(b[0]), cy+float32(b[1]), 2, menuTextColor, true)
	}
}

// drawStatusPanel shows the stockpile, labs, research bar and modes.
func (g *Game) drawStatusPanel(screen *ebiten.Image) {
	lines := hudLines(g.engine, g.overlay, g.buildMode)
	vector.FillRect(screen, 10, 10, 280, float32(30+len(lines)*lineHeight), panelColor, false)

	y := 28
	for i, line := range lines {
		text.Draw(screen, line, face, 20, y, textColor)
		y += lineHeight
		if i == 1 {
			// Research bar under the labs line.
			r := g.engine.Rules()
			w := float32(researchBarW) * float32(g.engine.ResearchProgress()) / float32(r.ResearchTarget)
			w = min(w, researchBarW)
			vector.StrokeRect(screen, 20, float32(y-8), researchBarW, 10, 1, researchColor, false)
			vector.FillRect(screen, 20, float32(y-8), w, 10, researchColor, false)
			y += 12
		}
	}
}

// drawInfoPanel lists the hovered tile's state in the bottom-left corner.
func (g *Game) drawInfoPanel(screen *ebiten.Image, t *hexgrid.Tile) {
	lines := tileInfoLines(t)
	h := len(lines)*lineHeight + 12
	top := g.height - h - 10
	vector.FillRect(screen, 10, float32(top), 220, float32(h), panelColor, false)
	for i, line := range lines {
		text.Draw(screen, line, face, 18, top+18+i*lineHeight, textColor)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	speed := "PAUSED"
	if g.simSpeed > 0 {
		speed = fmt.Sprintf("%gx", g.simSpeed)
	}
	lines := []string{
		fmt.Sprintf("SIM: %s  T=%d  P=pause  ,/. speed", speed, g.engine.TickCount()),
		"0-3 overlay  F/L/W build  right-drag pan",
		"C copy status  H toggle HUD",
	}
	x := g.width/2 - 130
	y := g.height - len(lines)*16 - 6
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x, y+i*16)
	}
}

func drawCentred(screen *ebiten.Image, s string, cx, cy int, col color.Color) {
	b := text.BoundString(face, s)
	text.Draw(screen, s, face, cx-b.Dx()/2, cy, col)
}
