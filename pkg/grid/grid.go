// Package grid implements the light accumulation buffer: a thread-safe
// pixel array of running color sums that Tracer batches are rasterized
// into, tone-mapped and handed out as periodic RGB snapshots.
package grid

import (
	"image"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/kavehsim/lumensim/pkg/geom"
	"github.com/kavehsim/lumensim/pkg/tracer"
)

// pixelSum is a running per-channel accumulation. Additions are
// saturation-agnostic; overflow is not expected at realistic segment
// counts (comment carried from the original design's overflow analysis).
type pixelSum struct {
	R, G, B uint32
}

func (p *pixelSum) add(c geom.LightColor, weight float64) {
	p.R += uint32(float64(c.R) * weight)
	p.G += uint32(float64(c.G) * weight)
	p.B += uint32(float64(c.B) * weight)
}

// SimulationSnapshot is a fully rendered frame: an RGB image and the total
// number of segments accumulated into it so far.
type SimulationSnapshot struct {
	Image               *image.RGBA
	TotalSegmentsTraced uint64
}

// Handler receives every snapshot the Grid emits. It must not block for
// long, since it is invoked synchronously by whichever goroutine called
// DrawSegments, Reset, or SetExposure.
type Handler func(SimulationSnapshot)

// Grid is the accumulation buffer described by the light grid contract:
// draw_segments rasterizes traced light into running per-pixel sums, and a
// snapshot tone-maps those sums into a displayable image.
type Grid struct {
	mu sync.Mutex

	width, height int
	sums          []pixelSum

	totalSegmentCount   uint64
	latestLayoutVersion uint64
	exposure            float64

	// FastAA trades the Wu rasterizer's two-pixel coverage-weighted plot
	// for a single rounded-minor-axis plot per major-axis step. It's an
	// implementation option, not a correctness requirement.
	FastAA bool

	handler Handler
}

// New allocates a zero-initialized W×H pixel grid at the given exposure.
func New(width, height int, exposure float64, handler Handler) *Grid {
	return &Grid{
		width:    width,
		height:   height,
		sums:     make([]pixelSum, width*height),
		exposure: exposure,
		handler:  handler,
	}
}

// Reset zeroes every pixel sum and the total segment count. If updateImage
// is true, a snapshot of the now-black image is emitted immediately.
func (g *Grid) Reset(updateImage bool) {
	g.mu.Lock()
	for i := range g.sums {
		g.sums[i] = pixelSum{}
	}
	g.totalSegmentCount = 0
	snap := g.snapshotLocked()
	g.mu.Unlock()

	if updateImage {
		g.emit(snap)
	}
}

// SetExposure updates the render exposure and re-emits a snapshot from the
// existing accumulated sums, without re-rasterizing anything.
func (g *Grid) SetExposure(exposure float64) {
	g.mu.Lock()
	g.exposure = exposure
	snap := g.snapshotLocked()
	g.mu.Unlock()

	g.emit(snap)
}

// DrawSegments rasterizes segments into the grid using the Bresenham
// rasterizer when lowQuality is set, else the anti-aliased Wu variant, then
// emits a snapshot. A batch whose layoutVersion trails the latest version
// already observed is a stale batch and is dropped without touching any
// pixel sum, per the version-gating invariant.
func (g *Grid) DrawSegments(layoutVersion uint64, segments []tracer.LightSegment, lowQuality bool) {
	g.mu.Lock()
	if layoutVersion < g.latestLayoutVersion {
		g.mu.Unlock()
		return
	}
	g.latestLayoutVersion = layoutVersion

	for _, seg := range segments {
		if lowQuality {
			drawBresenham(g.sums, g.width, g.height, seg)
		} else {
			drawWu(g.sums, g.width, g.height, seg, g.FastAA)
		}
	}
	g.totalSegmentCount += uint64(len(segments))
	snap := g.snapshotLocked()
	g.mu.Unlock()

	g.emit(snap)
}

// TotalSegmentCount returns the number of segments accumulated so far.
func (g *Grid) TotalSegmentCount() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.totalSegmentCount
}

func (g *Grid) emit(snap SimulationSnapshot) {
	if g.handler != nil {
		g.handler(snap)
	}
}

// snapshotLocked renders the current sums into an RGB image. Callers must
// hold g.mu.
func (g *Grid) snapshotLocked() SimulationSnapshot {
	brightness := 0.0
	if g.totalSegmentCount != 0 {
		brightness = g.exposure / float64(g.totalSegmentCount)
	}

	img := image.NewRGBA(image.Rect(0, 0, g.width, g.height))
	for i, sum := range g.sums {
		px := img.Pix[i*4 : i*4+4]
		r, gCh, b := quantize(float64(sum.R)*brightness, float64(sum.G)*brightness, float64(sum.B)*brightness)
		px[0] = r
		px[1] = gCh
		px[2] = b
		px[3] = 255
	}

	return SimulationSnapshot{Image: img, TotalSegmentsTraced: g.totalSegmentCount}
}

// quantize clamps a pre-clamp [0,255]-scaled color into valid 8-bit channels
// via colorful.Color's [0,1] clamp, so the same clamping policy that governs
// every other color operation in this port also governs the final readback.
func quantize(r, g, b float64) (uint8, uint8, uint8) {
	c := colorful.Color{R: r / 255, G: g / 255, B: b / 255}.Clamped()
	return c.RGB255()
}
