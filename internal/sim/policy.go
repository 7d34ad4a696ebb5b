package sim

import (
	"sort"

	"github.com/Garsondee/hex-outbreak/internal/hexgrid"
)

// Policy issues commands on behalf of a player in headless runs.
type Policy interface {
	Name() string
	Plan(e *Engine) []Command
}

// PolicyByName returns the policy registered under name.
func PolicyByName(name string) (Policy, bool) {
	switch name {
	case "idle":
		return IdlePolicy{}, true
	case "economy":
		return EconomyPolicy{MaxFactories: 4}, true
	}
	return nil, false
}

// IdlePolicy never builds anything.
type IdlePolicy struct{}

func (IdlePolicy) Name() string            { return "idle" }
func (IdlePolicy) Plan(*Engine) []Command { return nil }

// EconomyPolicy buys labs as soon as it can, keeps up to MaxFactories
// factories on the richest clean tiles and spends any surplus walling the
// infected frontier.
type EconomyPolicy struct {
	MaxFactories int
}

func (EconomyPolicy) Name() string { return "economy" }

// Plan returns at most one command per tick so the stockpile check in Apply
// always sees the real balance.
func (p EconomyPolicy) Plan(e *Engine) []Command {
	rules := e.Rules()
	stats := e.Stats()
	funds := e.Resources()

	if e.LabsCount() < rules.MaxLabs {
		if site := richestFree(e); site != nil {
			if funds >= rules.LabCost {
				return []Command{BuildLab(site.Coord)}
			}
			// Save up for the remaining labs while there is a site for one.
			if stats.Factories > 0 {
				return nil
			}
		}
	}
	if stats.Factories < p.MaxFactories && funds >= rules.FactoryCost {
		if t := richestFree(e); t != nil {
			return []Command{BuildFactory(t.Coord)}
		}
	}
	if funds >= rules.WallCost {
		if c, ok := frontierEdge(e); ok {
			return []Command{c}
		}
	}
	return nil
}

// richestFree picks the empty, uninfected tile with the most resources.
// Ties fall back to grid order.
func richestFree(e *Engine) *hexgrid.Tile {
	var candidates []*hexgrid.Tile
	for _, t := range e.Tiles() {
		if t.Building == hexgrid.BuildingNone && t.Infected == 0 && t.ResourceAmount > 0 {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].ResourceAmount > candidates[j].ResourceAmount
	})
	return candidates[0]
}

// frontierEdge finds the first unwalled edge from a spreading tile to a
// clean neighbour.
func frontierEdge(e *Engine) (Command, bool) {
	for _, t := range e.Tiles() {
		rate := t.InfectionRate()
		if rate <= 0 || rate >= 1 {
			continue
		}
		for _, n := range t.Neighbors() {
			if t.Walls[n.Dir] {
				continue
			}
			if e.Grid().Resolve(n).Infected == 0 {
				return BuildWall(t.Coord, n.Dir), true
			}
		}
	}
	return Command{}, false
}

// TickHook observes the engine after every tick of Run.
type TickHook func(e *Engine)

// Run starts e if needed and plays it with p until a terminal phase or
// maxTicks ticks. hook may be nil.
func Run(e *Engine, p Policy, maxTicks int, hook TickHook) Outcome {
	e.Start()
	for i := 0; i < maxTicks && e.Phase() == PhasePlaying; i++ {
		for _, cmd := range p.Plan(e) {
			e.Apply(cmd)
		}
		e.Tick()
		if hook != nil {
			hook(e)
		}
	}
	return DetermineOutcome(e)
}
