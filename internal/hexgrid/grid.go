package hexgrid

import (
	"errors"
	"fmt"
)

// ErrInvalidRadius is returned by Build for a negative radius.
var ErrInvalidRadius = errors.New("hexgrid: invalid radius")

// ErrInvalidStats is returned by BuildWith for a negative or inverted
// starting range.
var ErrInvalidStats = errors.New("hexgrid: invalid starting stats")

// Rand is the random source used while building a grid. *math/rand.Rand
// satisfies it.
type Rand interface {
	Intn(n int) int
}

// StartingStats bounds the uniform draws for a new tile (inclusive).
type StartingStats struct {
	SurvivorsMin int
	SurvivorsMax int
	ResourcesMin int
	ResourcesMax int
}

// DefaultStats are the starting population and resource ranges.
var DefaultStats = StartingStats{
	SurvivorsMin: 50,
	SurvivorsMax: 150,
	ResourcesMin: 50,
	ResourcesMax: 150,
}

// Grid owns every tile within Radius of the origin. Topology is fixed once
// Build returns.
type Grid struct {
	radius int
	tiles  map[Coord]*Tile
	order  []Coord // build order; gives callers a deterministic iteration
	seed   Coord
}

// Build creates a grid of the given radius using DefaultStats.
func Build(radius int, rng Rand) (*Grid, error) {
	return BuildWith(radius, DefaultStats, rng)
}

// BuildWith creates a grid, rolls starting survivors and resources for each
// tile, links neighbours and seeds one infected tile.
func BuildWith(radius int, stats StartingStats, rng Rand) (*Grid, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRadius, radius)
	}
	if stats.SurvivorsMin < 0 || stats.ResourcesMin < 0 {
		return nil, fmt.Errorf("%w: negative minimum: %+v", ErrInvalidStats, stats)
	}
	if stats.SurvivorsMin > stats.SurvivorsMax || stats.ResourcesMin > stats.ResourcesMax {
		return nil, fmt.Errorf("%w: range inverted: %+v", ErrInvalidStats, stats)
	}

	size := 3*radius*radius + 3*radius + 1
	g := &Grid{
		radius: radius,
		tiles:  make(map[Coord]*Tile, size),
		order:  make([]Coord, 0, size),
	}

	for q := -radius; q <= radius; q++ {
		r1 := max(-radius, -q-radius)
		r2 := min(radius, -q+radius)
		for r := r1; r <= r2; r++ {
			c := NewCoord(q, r)
			g.tiles[c] = &Tile{
				Coord:          c,
				Survivors:      rollRange(rng, stats.SurvivorsMin, stats.SurvivorsMax),
				ResourceAmount: rollRange(rng, stats.ResourcesMin, stats.ResourcesMax),
			}
			g.order = append(g.order, c)
		}
	}

	g.link()

	g.seed = g.order[rng.Intn(len(g.order))]
	g.tiles[g.seed].Infected = 1
	return g, nil
}

// link records, for every tile, each direction whose target lies inside the
// grid. Missing neighbours at the rim are simply absent.
func (g *Grid) link() {
	for _, c := range g.order {
		t := g.tiles[c]
		for i, d := range Directions {
			nc := c.Add(d)
			if _, ok := g.tiles[nc]; ok {
				t.neighbors = append(t.neighbors, Neighbor{Coord: nc, Dir: i})
			}
		}
	}
}

func rollRange(rng Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

// Radius returns the radius the grid was built with.
func (g *Grid) Radius() int { return g.radius }

// Len returns the number of tiles.
func (g *Grid) Len() int { return len(g.order) }

// SeedCoord returns the coordinate of the tile that received the initial
// infection.
func (g *Grid) SeedCoord() Coord { return g.seed }

// TileAt returns the tile at c.
func (g *Grid) TileAt(c Coord) (*Tile, bool) {
	t, ok := g.tiles[c]
	return t, ok
}

// Tiles returns all tiles in build order.
func (g *Grid) Tiles() []*Tile {
	out := make([]*Tile, len(g.order))
	for i, c := range g.order {
		out[i] = g.tiles[c]
	}
	return out
}

// Resolve returns the tile a neighbour link points at.
func (g *Grid) Resolve(n Neighbor) *Tile {
	return g.tiles[n.Coord]
}

// NeighborAt returns the tile adjacent to t across edge d, if any.
func (g *Grid) NeighborAt(t *Tile, d int) (*Tile, bool) {
	if !ValidDirection(d) {
		return nil, false
	}
	nt, ok := g.tiles[t.Coord.Add(Directions[d])]
	return nt, ok
}
