package game

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/Garsondee/hex-outbreak/internal/hexgrid"
)

// tintScale controls how quickly ground shade varies across the map.
const tintScale = 0.35

// groundTint gives every tile a cosmetic shade offset in [0,12]. It is
// derived from noise only and never feeds back into the simulation.
func groundTint(grid *hexgrid.Grid, seed int64) map[hexgrid.Coord]uint8 {
	noise := opensimplex.New(seed)
	out := make(map[hexgrid.Coord]uint8, grid.Len())
	for _, t := range grid.Tiles() {
		v := noise.Eval2(float64(t.Coord.Q)*tintScale, float64(t.Coord.R)*tintScale)
		// Eval2 is roughly [-1,1].
		shade := int((v + 1) * 6)
		out[t.Coord] = uint8(max(0, min(12, shade)))
	}
	return out
}
