package hexgrid

import "math"

// Pointy-top layout helpers. size is the centre-to-corner radius in pixels.
// Nothing here is used by the simulation.

// PixelFromCube converts an axial position to the pixel offset of the hex
// centre from the origin tile's centre.
func PixelFromCube(q, r int, size float64) (x, y float64) {
	x = size * math.Sqrt(3) * (float64(q) + float64(r)/2)
	y = size * 1.5 * float64(r)
	return x, y
}

// CubeFromPixel returns the coordinate of the hex containing the pixel
// offset (x, y).
func CubeFromPixel(x, y, size float64) Coord {
	fq := (math.Sqrt(3)/3*x - y/3) / size
	fr := (2.0 / 3 * y) / size
	return cubeRound(fq, fr, -fq-fr)
}

func cubeRound(fq, fr, fs float64) Coord {
	q := math.Round(fq)
	r := math.Round(fr)
	s := math.Round(fs)
	dq := math.Abs(q - fq)
	dr := math.Abs(r - fr)
	ds := math.Abs(s - fs)
	switch {
	case dq > dr && dq > ds:
		q = -r - s
	case dr > ds:
		r = -q - s
	default:
		s = -q - r
	}
	return Coord{Q: int(q), R: int(r), S: int(s)}
}

// EdgeFromOffset picks the edge of a hex facing the pixel offset (dx, dy)
// from its centre. The result indexes Directions, so the wall placed on the
// returned edge is the one between the tile and the neighbour on that side.
func EdgeFromOffset(dx, dy float64) int {
	// Direction d's neighbour centre sits at screen angle 60*(d-1) degrees.
	deg := math.Atan2(dy, dx)*180/math.Pi + 360 + 30
	return (int(deg/60) + 1) % DirectionCount
}

// Corners returns the six corner offsets of a pointy-top hex. Corner i sits
// at angle 60*i-30 degrees.
func Corners(size float64) [DirectionCount][2]float64 {
	var out [DirectionCount][2]float64
	for i := range out {
		a := (60*float64(i) - 30) * math.Pi / 180
		out[i] = [2]float64{size * math.Cos(a), size * math.Sin(a)}
	}
	return out
}

// EdgeCorners returns the indices into Corners of the two endpoints of the
// edge crossed by direction d.
func EdgeCorners(d int) (int, int) {
	return (d + DirectionCount - 1) % DirectionCount, d % DirectionCount
}
