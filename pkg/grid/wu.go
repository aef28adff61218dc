package grid

import (
	"math"

	"github.com/kavehsim/lumensim/pkg/geom"
	"github.com/kavehsim/lumensim/pkg/tracer"
)

// drawWu plots seg with the Xiaolin Wu anti-aliased line algorithm: two
// pixels per major-axis step, weighted by their coverage fraction and the
// same hypotenuse compensation Bresenham uses. If fastAA is set, the minor
// axis is rounded and a single pixel is plotted per step instead, trading
// anti-aliasing for speed.
func drawWu(sums []pixelSum, width, height int, seg tracer.LightSegment, fastAA bool) {
	x0, y0 := seg.Pos1.X, seg.Pos1.Y
	x1, y1 := seg.Pos2.X, seg.Pos2.Y

	dx := x1 - x0
	dy := y1 - y0

	steep := math.Abs(dy) > math.Abs(dx)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
		dx, dy = dy, dx
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
		dx, dy = -dx, -dy
	}

	gradient := 1.0
	if dx != 0 {
		gradient = dy / dx
	}

	compensation := math.Min(compensationCap, math.Max(1, math.Hypot(dx, dy)/math.Max(1, math.Abs(dx))))

	y := y0
	for x := math.Round(x0); x <= math.Round(x1); x++ {
		if fastAA {
			plotSteepAware(sums, width, height, int(x), int(math.Round(y)), seg.Color, compensation, steep)
		} else {
			yFloor := math.Floor(y)
			frac := y - yFloor
			plotSteepAware(sums, width, height, int(x), int(yFloor), seg.Color, compensation*(1-frac), steep)
			plotSteepAware(sums, width, height, int(x), int(yFloor)+1, seg.Color, compensation*frac, steep)
		}
		y += gradient
	}
}

// plotSteepAware plots into (a,b) in the normalized (major-axis-is-x) frame,
// swapping back to true (x,y) grid coordinates if the line was steep.
func plotSteepAware(sums []pixelSum, width, height, a, b int, color geom.LightColor, weight float64, steep bool) {
	x, y := a, b
	if steep {
		x, y = b, a
	}
	plot(sums, width, height, x, y, color, weight)
}
