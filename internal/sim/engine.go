// Package sim advances the outbreak: infection spread, production, research
// and the win/loss checks, plus validation of player build commands.
package sim

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/Garsondee/hex-outbreak/internal/hexgrid"
)

// Roller supplies the spread rolls. *math/rand.Rand satisfies it.
type Roller interface {
	Float64() float64
}

// Engine owns every mutation of tile contents and the global counters. It is
// not safe for concurrent use; the caller sequences Tick, Apply and reads.
type Engine struct {
	grid  *hexgrid.Grid
	rules Rules
	rng   Roller

	phase     Phase
	resources int
	labs      int
	research  int
	tick      int

	logger *log.Logger
	events *EventLog
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithRoller sets the random source used for spread rolls.
func WithRoller(r Roller) Option {
	return func(e *Engine) { e.rng = r }
}

// WithLogger routes phase changes and command rejections to l.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithEventLog records structured events into el.
func WithEventLog(el *EventLog) Option {
	return func(e *Engine) { e.events = el }
}

// New wraps an already built grid. The engine starts in PhaseMenu with the
// rules' starting stockpile.
func New(grid *hexgrid.Grid, rules Rules, opts ...Option) *Engine {
	e := &Engine{
		grid:      grid,
		rules:     rules,
		phase:     PhaseMenu,
		resources: rules.StartingResources,
		logger:    log.New(io.Discard),
	}
	for _, o := range opts {
		o(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(1)) // #nosec G404 -- game only
	}
	return e
}

// NewGame validates rules, builds the grid from seed and returns an engine
// whose spread rolls continue the same random stream. Options may override
// the roller.
func NewGame(rules Rules, seed int64, opts ...Option) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- game only
	grid, err := hexgrid.BuildWith(rules.MapRadius, rules.Start, rng)
	if err != nil {
		return nil, fmt.Errorf("build grid: %w", err)
	}
	opts = append([]Option{WithRoller(rng)}, opts...)
	return New(grid, rules, opts...), nil
}

// Start moves the engine from PhaseMenu to PhasePlaying. It reports false in
// any other phase.
func (e *Engine) Start() bool {
	if e.phase != PhaseMenu {
		return false
	}
	e.setPhase(PhasePlaying)
	return true
}

// Tick advances the simulation one step. Outside PhasePlaying it does nothing.
func (e *Engine) Tick() {
	if e.phase != PhasePlaying {
		return
	}
	e.tick++

	// 1. INFECTION: decide every hit against start-of-tick rates, then apply.
	e.applyInfections(e.collectInfections())

	// 2. PRODUCTION: factories mine their tile, labs add research.
	e.produce()

	// 3. VICTORY before defeat, so a simultaneous finish is a win.
	if e.research >= e.rules.ResearchTarget {
		e.setPhase(PhaseVictory)
		return
	}

	// 4. DEFEAT: every tile fully infected.
	if e.allInfected() {
		e.setPhase(PhaseDefeat)
	}
}

// collectInfections returns one entry per successful spread roll. A tile hit
// from several sources appears several times.
func (e *Engine) collectInfections() []*hexgrid.Tile {
	var targets []*hexgrid.Tile
	for _, t := range e.grid.Tiles() {
		rate := t.InfectionRate()
		if rate <= 0 || rate >= 1 {
			continue
		}
		chance := rate * e.rules.SpreadCoefficient
		for _, n := range t.Neighbors() {
			// Only the source's own wall blocks the edge.
			if t.Walls[n.Dir] {
				continue
			}
			nb := e.grid.Resolve(n)
			if nb.InfectionRate() >= 1 {
				continue
			}
			if e.rng.Float64() < chance {
				targets = append(targets, nb)
				if e.events != nil {
					e.events.AddVerbose(e.tick, nb.Coord.String(), CategoryInfection, "hit",
						fmt.Sprintf("from %v dir=%d", t.Coord, n.Dir), chance)
				}
			}
		}
	}
	return targets
}

func (e *Engine) applyInfections(targets []*hexgrid.Tile) {
	for _, t := range targets {
		if t.Survivors > 0 {
			t.Survivors--
		}
		t.Infected++
	}
	if e.events != nil && len(targets) > 0 {
		e.events.Add(e.tick, "--", CategoryInfection, "spread",
			fmt.Sprintf("%d hits", len(targets)), float64(len(targets)))
	}
}

func (e *Engine) produce() {
	for _, t := range e.grid.Tiles() {
		switch t.Building {
		case hexgrid.BuildingFactory:
			if t.ResourceAmount > 0 {
				t.ResourceAmount--
				e.resources++
				if e.events != nil {
					e.events.AddVerbose(e.tick, t.Coord.String(), CategoryProduction, "mined",
						fmt.Sprintf("left=%d", t.ResourceAmount), float64(t.ResourceAmount))
				}
				continue
			}
			t.Building = hexgrid.BuildingNone
			if e.events != nil {
				e.events.Add(e.tick, t.Coord.String(), CategoryProduction, "depleted", "factory removed", 0)
			}
		case hexgrid.BuildingLab:
			e.research += e.rules.ResearchRate
			if e.events != nil {
				e.events.AddVerbose(e.tick, t.Coord.String(), CategoryResearch, "progress",
					fmt.Sprintf("%d/%d", e.research, e.rules.ResearchTarget), float64(e.research))
			}
		}
	}
}

func (e *Engine) allInfected() bool {
	for _, t := range e.grid.Tiles() {
		if t.InfectionRate() < 1 {
			return false
		}
	}
	return true
}

func (e *Engine) setPhase(p Phase) {
	prev := e.phase
	e.phase = p
	e.logger.Info("phase change", "from", prev, "to", p, "tick", e.tick,
		"resources", e.resources, "research", e.research)
	if e.events != nil {
		e.events.Add(e.tick, "--", CategoryPhase, "change", fmt.Sprintf("%s → %s", prev, p), float64(p))
	}
}

// Apply validates and executes one build command. It reports whether the
// command was accepted; a rejected command changes nothing.
func (e *Engine) Apply(cmd Command) bool {
	if reason := e.apply(cmd); reason != "" {
		e.logger.Debug("command rejected", "cmd", cmd, "reason", reason, "resources", e.resources)
		if e.events != nil {
			e.events.Add(e.tick, cmd.Coord.String(), CategoryCommand, "rejected",
				fmt.Sprintf("%s: %s", cmd.Action, reason), float64(e.resources))
		}
		return false
	}
	if e.events != nil {
		e.events.Add(e.tick, cmd.Coord.String(), CategoryCommand, "accepted", cmd.String(), float64(e.resources))
	}
	return true
}

// apply returns the rejection reason, or "" after mutating state.
func (e *Engine) apply(cmd Command) string {
	if e.phase != PhasePlaying {
		return rejectPhase
	}
	t, ok := e.grid.TileAt(cmd.Coord)
	if !ok {
		return rejectNoTile
	}

	switch cmd.Action {
	case ActionBuildWall:
		if e.resources < e.rules.WallCost {
			return rejectFunds
		}
		if !hexgrid.ValidDirection(cmd.Edge) {
			return rejectBadEdge
		}
		if t.Walls[cmd.Edge] {
			return rejectWalled
		}
		t.Walls[cmd.Edge] = true
		e.resources -= e.rules.WallCost
	case ActionBuildLab:
		if t.Building != hexgrid.BuildingNone {
			return rejectOccupied
		}
		if e.labs >= e.rules.MaxLabs {
			return rejectLabCap
		}
		if e.resources < e.rules.LabCost {
			return rejectFunds
		}
		t.Building = hexgrid.BuildingLab
		e.labs++
		e.resources -= e.rules.LabCost
	case ActionBuildFactory:
		if t.Building != hexgrid.BuildingNone {
			return rejectOccupied
		}
		if e.resources < e.rules.FactoryCost {
			return rejectFunds
		}
		t.Building = hexgrid.BuildingFactory
		e.resources -= e.rules.FactoryCost
	default:
		return rejectBadAction
	}
	return ""
}

// Phase returns the current lifecycle phase.
func (e *Engine) Phase() Phase { return e.phase }

// Resources returns the global stockpile.
func (e *Engine) Resources() int { return e.resources }

// LabsCount returns how many labs have been built. Labs are never removed.
func (e *Engine) LabsCount() int { return e.labs }

// ResearchProgress returns accumulated research.
func (e *Engine) ResearchProgress() int { return e.research }

// TickCount returns how many ticks have run in PhasePlaying.
func (e *Engine) TickCount() int { return e.tick }

// Rules returns the rules the engine was built with.
func (e *Engine) Rules() Rules { return e.rules }

// Grid exposes the topology for read-only display use.
func (e *Engine) Grid() *hexgrid.Grid { return e.grid }

// TileAt returns the tile at c for display.
func (e *Engine) TileAt(c hexgrid.Coord) (*hexgrid.Tile, bool) { return e.grid.TileAt(c) }

// Tiles returns all tiles in grid order for display.
func (e *Engine) Tiles() []*hexgrid.Tile { return e.grid.Tiles() }

// Events returns the attached event log, or nil.
func (e *Engine) Events() *EventLog { return e.events }
