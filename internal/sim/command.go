package sim

import (
	"fmt"

	"github.com/Garsondee/hex-outbreak/internal/hexgrid"
)

// Action is the build a player command asks for.
type Action int

const (
	ActionBuildFactory Action = iota
	ActionBuildLab
	ActionBuildWall
)

func (a Action) String() string {
	switch a {
	case ActionBuildFactory:
		return "factory"
	case ActionBuildLab:
		return "lab"
	case ActionBuildWall:
		return "wall"
	default:
		return "unknown"
	}
}

// Command is one player input. Edge is only read for ActionBuildWall and is a
// direction index into hexgrid.Directions.
type Command struct {
	Coord  hexgrid.Coord
	Action Action
	Edge   int
}

// BuildFactory is shorthand for a factory command on c.
func BuildFactory(c hexgrid.Coord) Command { return Command{Coord: c, Action: ActionBuildFactory} }

// BuildLab is shorthand for a lab command on c.
func BuildLab(c hexgrid.Coord) Command { return Command{Coord: c, Action: ActionBuildLab} }

// BuildWall is shorthand for a wall command on edge of c.
func BuildWall(c hexgrid.Coord, edge int) Command {
	return Command{Coord: c, Action: ActionBuildWall, Edge: edge}
}

func (c Command) String() string {
	if c.Action == ActionBuildWall {
		return fmt.Sprintf("%s %v edge=%d", c.Action, c.Coord, c.Edge)
	}
	return fmt.Sprintf("%s %v", c.Action, c.Coord)
}

// Rejection reasons recorded in the event log.
const (
	rejectPhase     = "wrong_phase"
	rejectNoTile    = "no_tile"
	rejectFunds     = "insufficient_resources"
	rejectOccupied  = "slot_occupied"
	rejectLabCap    = "lab_cap"
	rejectWalled    = "already_walled"
	rejectBadEdge   = "bad_edge"
	rejectBadAction = "bad_action"
)
