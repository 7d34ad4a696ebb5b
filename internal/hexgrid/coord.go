// Package hexgrid owns the tiles of the outbreak map, addressed by cube
// coordinates, and the fixed adjacency between them.
package hexgrid

import "fmt"

// Coord is a cube coordinate. Q+R+S is always 0 for coordinates produced by
// this package.
type Coord struct {
	Q int
	R int
	S int
}

// NewCoord builds a cube coordinate from its axial part.
func NewCoord(q, r int) Coord { return Coord{Q: q, R: r, S: -q - r} }

// Add returns c+d component-wise.
func (c Coord) Add(d Coord) Coord { return Coord{c.Q + d.Q, c.R + d.R, c.S + d.S} }

// Valid reports whether the cube constraint holds.
func (c Coord) Valid() bool { return c.Q+c.R+c.S == 0 }

// Distance returns the hex distance between c and o.
func (c Coord) Distance(o Coord) int {
	return max(abs(c.Q-o.Q), abs(c.R-o.R), abs(c.S-o.S))
}

func (c Coord) String() string { return fmt.Sprintf("(%d,%d,%d)", c.Q, c.R, c.S) }

// DirectionCount is the number of hex edges.
const DirectionCount = 6

// Directions is the canonical neighbour table. The index into this table is
// the direction index used for neighbour links and wall slots.
var Directions = [DirectionCount]Coord{
	{+1, -1, 0},
	{+1, 0, -1},
	{0, +1, -1},
	{-1, +1, 0},
	{-1, 0, +1},
	{0, -1, +1},
}

// Opposite returns the direction pointing back across the same edge.
func Opposite(d int) int { return (d + 3) % DirectionCount }

// ValidDirection reports whether d indexes Directions.
func ValidDirection(d int) bool { return d >= 0 && d < DirectionCount }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
