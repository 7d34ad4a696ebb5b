package hexgrid

// Building is what occupies a tile's single build slot.
type Building int

const (
	BuildingNone Building = iota
	BuildingFactory
	BuildingLab
)

func (b Building) String() string {
	switch b {
	case BuildingNone:
		return "none"
	case BuildingFactory:
		return "factory"
	case BuildingLab:
		return "lab"
	default:
		return "unknown"
	}
}

// Neighbor links a tile to an adjacent one. The link holds the neighbour's
// coordinate, not the tile itself; resolve it through Grid.
type Neighbor struct {
	Coord Coord
	Dir   int // index into Directions
}

// Tile is one hex cell. Population and resource fields are mutated only by
// the simulation engine; the grid never touches them after Build.
type Tile struct {
	Coord          Coord
	Survivors      int
	Infected       int
	ResourceAmount int
	Building       Building
	Walls          [DirectionCount]bool

	neighbors []Neighbor
}

// InfectionRate is infected/(survivors+infected), or 0 for an empty tile.
func (t *Tile) InfectionRate() float64 {
	total := t.Survivors + t.Infected
	if total <= 0 {
		return 0
	}
	return float64(t.Infected) / float64(total)
}

// Neighbors returns the tile's links in ascending direction order. Edge tiles
// have fewer than six.
func (t *Tile) Neighbors() []Neighbor { return t.neighbors }

// HasWall reports whether the wall on edge d is built. Out-of-range
// directions report false.
func (t *Tile) HasWall(d int) bool {
	if !ValidDirection(d) {
		return false
	}
	return t.Walls[d]
}

// WallCount returns the number of built walls on the tile.
func (t *Tile) WallCount() int {
	n := 0
	for _, w := range t.Walls {
		if w {
			n++
		}
	}
	return n
}
