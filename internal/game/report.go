package game

import (
	"fmt"
	"strings"

	"github.com/Garsondee/hex-outbreak/internal/hexgrid"
	"github.com/Garsondee/hex-outbreak/internal/sim"
)

// overlayLabel returns the text drawn on a tile for the given mode, or "".
func overlayLabel(mode OverlayMode, t *hexgrid.Tile) string {
	switch mode {
	case OverlayInfection:
		return fmt.Sprintf("%.0f%%", t.InfectionRate()*100)
	case OverlayResources:
		return fmt.Sprintf("R:%d", t.ResourceAmount)
	case OverlayPopulation:
		return fmt.Sprintf("S:%d/I:%d", t.Survivors, t.Infected)
	}
	return ""
}

// tileInfoLines is the hover panel for one tile.
func tileInfoLines(t *hexgrid.Tile) []string {
	var walls []string
	for d := 0; d < hexgrid.DirectionCount; d++ {
		if t.HasWall(d) {
			walls = append(walls, fmt.Sprint(d))
		}
	}
	wallText := "none"
	if len(walls) > 0 {
		wallText = strings.Join(walls, ",")
	}
	return []string{
		fmt.Sprintf("Tile: %v", t.Coord),
		fmt.Sprintf("Survivors: %d", t.Survivors),
		fmt.Sprintf("Infected: %d", t.Infected),
		fmt.Sprintf("Infection Rate: %.2f%%", t.InfectionRate()*100),
		fmt.Sprintf("Resources: %d", t.ResourceAmount),
		fmt.Sprintf("Building: %s", t.Building),
		fmt.Sprintf("Walls: %s", wallText),
	}
}

// hudLines is the top-left status panel text, excluding the research bar.
func hudLines(e *sim.Engine, overlay OverlayMode, mode sim.Action) []string {
	r := e.Rules()
	return []string{
		fmt.Sprintf("Resources: %d", e.Resources()),
		fmt.Sprintf("Labs: %d/%d", e.LabsCount(), r.MaxLabs),
		fmt.Sprintf("Research: %d/%d", e.ResearchProgress(), r.ResearchTarget),
		fmt.Sprintf("Overlay:%d Mode:%s (F/L/W)", int(overlay), capitalize(mode.String())),
	}
}

// banner returns the end-of-game message and whether the game has ended.
func banner(p sim.Phase) (string, bool) {
	switch p {
	case sim.PhaseVictory:
		return "Victory! Vaccine Completed!", true
	case sim.PhaseDefeat:
		return "Game Over. All Tiles Infected.", true
	}
	return "", false
}

// StatusReport renders the engine state, plus the given tile if not nil, as
// plain text for the clipboard.
func StatusReport(e *sim.Engine, t *hexgrid.Tile) string {
	var sb strings.Builder
	st := e.Stats()
	fmt.Fprintf(&sb, "--- Outbreak at T=%03d (%s) ---\n", e.TickCount(), e.Phase())
	fmt.Fprintf(&sb, "Resources: %d  Labs: %d/%d  Research: %d/%d\n",
		e.Resources(), e.LabsCount(), e.Rules().MaxLabs, e.ResearchProgress(), e.Rules().ResearchTarget)
	fmt.Fprintf(&sb, "Population: survivors=%d infected=%d (%.1f%%)\n",
		st.Survivors, st.Infected, st.InfectedShare()*100)
	fmt.Fprintf(&sb, "Tiles: %d total, %d infected, %d lost\n", st.Tiles, st.InfectedTiles, st.FullyInfectedTiles)
	fmt.Fprintf(&sb, "Buildings: factories=%d labs=%d walls=%d\n", st.Factories, st.Labs, st.Walls)
	if t != nil {
		for _, line := range tileInfoLines(t) {
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
