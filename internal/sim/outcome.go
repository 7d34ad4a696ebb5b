package sim

import (
	"fmt"

	"github.com/Garsondee/hex-outbreak/internal/hexgrid"
)

// Stats is a whole-map census.
type Stats struct {
	Tiles              int
	Survivors          int
	Infected           int
	InfectedTiles      int // tiles with at least one infected
	FullyInfectedTiles int // tiles at infection rate 1
	Factories          int
	Labs               int
	Walls              int
	ResourcesInGround  int
}

// InfectedShare is the infected fraction of the whole population.
func (s Stats) InfectedShare() float64 {
	total := s.Survivors + s.Infected
	if total == 0 {
		return 0
	}
	return float64(s.Infected) / float64(total)
}

// Stats counts the current map.
func (e *Engine) Stats() Stats {
	var s Stats
	for _, t := range e.grid.Tiles() {
		s.Tiles++
		s.Survivors += t.Survivors
		s.Infected += t.Infected
		s.ResourcesInGround += t.ResourceAmount
		s.Walls += t.WallCount()
		if t.Infected > 0 {
			s.InfectedTiles++
		}
		if t.InfectionRate() >= 1 {
			s.FullyInfectedTiles++
		}
		switch t.Building {
		case hexgrid.BuildingFactory:
			s.Factories++
		case hexgrid.BuildingLab:
			s.Labs++
		}
	}
	return s
}

// Outcome summarises a run for reports.
type Outcome struct {
	Phase       Phase
	Tick        int
	Research    int
	Target      int
	Resources   int
	Stats       Stats
	Description string
}

// DetermineOutcome snapshots the engine's result so far.
func DetermineOutcome(e *Engine) Outcome {
	o := Outcome{
		Phase:     e.phase,
		Tick:      e.tick,
		Research:  e.research,
		Target:    e.rules.ResearchTarget,
		Resources: e.resources,
		Stats:     e.Stats(),
	}
	switch o.Phase {
	case PhaseVictory:
		o.Description = fmt.Sprintf("vaccine completed at T=%d with %.0f%% of the population infected",
			o.Tick, o.Stats.InfectedShare()*100)
	case PhaseDefeat:
		o.Description = fmt.Sprintf("all %d tiles infected at T=%d (research %d/%d)",
			o.Stats.Tiles, o.Tick, o.Research, o.Target)
	case PhaseMenu:
		o.Description = "not started"
	default:
		o.Description = fmt.Sprintf("unfinished at T=%d: research %d/%d, %d/%d tiles infected",
			o.Tick, o.Research, o.Target, o.Stats.InfectedTiles, o.Stats.Tiles)
	}
	return o
}
