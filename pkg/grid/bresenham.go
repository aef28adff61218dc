package grid

import (
	"math"

	"github.com/kavehsim/lumensim/pkg/geom"
	"github.com/kavehsim/lumensim/pkg/tracer"
)

// compensationCap bounds the hypotenuse brightness-compensation factor,
// which both rasterizers clamp to [1, compensationCap]. Under octant
// normalization |dy| <= |dx|, so the ratio hypot(dx,dy)/max(|dx|,1) never
// exceeds sqrt(2) and the cap does not take effect; the floor of 1 applies
// to zero-length and sub-pixel segments.
const compensationCap = 2.0

// drawBresenham plots seg with the classic octant-normalized Bresenham line
// algorithm: one pixel added per x-step (in the normalized frame), each
// weighted by the hypotenuse compensation factor so diagonal lines read as
// bright as horizontal ones.
func drawBresenham(sums []pixelSum, width, height int, seg tracer.LightSegment) {
	x0, y0 := int(math.Round(seg.Pos1.X)), int(math.Round(seg.Pos1.Y))
	x1, y1 := int(math.Round(seg.Pos2.X)), int(math.Round(seg.Pos2.Y))

	dx := x1 - x0
	dy := y1 - y0

	steep := absInt(dy) > absInt(dx)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx = x1 - x0
	dy = y1 - y0
	absDy := absInt(dy)

	yStep := 1
	if y0 > y1 {
		yStep = -1
	}

	compensation := math.Min(compensationCap, math.Max(1, hypotenuseRatio(dx, dy)))

	err := dx / 2
	y := y0
	for x := x0; x <= x1; x++ {
		px, py := x, y
		if steep {
			px, py = y, x
		}
		plot(sums, width, height, px, py, seg.Color, compensation)

		err -= absDy
		if err < 0 {
			y += yStep
			err += dx
		}
	}
}

func hypotenuseRatio(dx, dy int) float64 {
	denom := math.Max(1, math.Abs(float64(dx)))
	return math.Hypot(float64(dx), float64(dy)) / denom
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// plot adds color*weight into the pixel at (x,y), silently discarding
// coordinates that fall outside the grid.
func plot(sums []pixelSum, width, height, x, y int, color geom.LightColor, weight float64) {
	if x < 0 || x >= width || y < 0 || y >= height {
		return
	}
	sums[y*width+x].add(color, weight)
}
