// Package gridgpu is the optional hardware-accelerated Light Grid backend.
// It rasterizes the same segment batches as pkg/grid, but through a gg.Context
// backed by a registered GPU accelerator, and falls back to an error when no
// accelerator is available so the caller can use the CPU grid instead.
package gridgpu

import (
	"errors"
	"image"
	"sync"

	gg "github.com/gogpu/gg"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/kavehsim/lumensim/pkg/grid"
	"github.com/kavehsim/lumensim/pkg/tracer"
)

// ErrNoAccelerator is returned by New when the runtime has no registered
// GPU accelerator. New does not initialize the accelerator, so it does not
// detect one that is registered but fails to initialize.
var ErrNoAccelerator = errors.New("gridgpu: no GPU accelerator registered")

// pixelSum mirrors grid.pixelSum: a running per-channel accumulation, kept
// here rather than shared because the two packages accumulate from
// different rasterization sources (a GPU-drawn coverage mask here, direct
// line-plotting there) and should stay independently adaptable.
type pixelSum struct {
	R, G, B float64
}

// Grid is the hardware-accelerated counterpart to grid.Grid. Every draw call
// strokes each segment into a scratch gg.Context (dispatched to the GPU
// accelerator when the segment's bounding box is large enough for the
// accelerator to bother with), then accumulates the resulting coverage mask
// into running per-pixel sums exactly like the CPU grid's weighted plots.
type Grid struct {
	mu sync.Mutex

	width, height int
	sums          []pixelSum

	totalSegmentCount   uint64
	latestLayoutVersion uint64
	exposure            float64

	scratch *gg.Context
	handler grid.Handler
}

// New creates a GPU-backed Grid. It fails with ErrNoAccelerator if no
// gg.GPUAccelerator has been registered via gg.RegisterAccelerator (typically
// through a backend package's blank import), matching the Simulator's
// documented fallback-to-CPU behavior when hardware acceleration is
// unavailable.
func New(width, height int, exposure float64, handler grid.Handler) (*Grid, error) {
	if gg.Accelerator() == nil {
		return nil, ErrNoAccelerator
	}
	return &Grid{
		width:    width,
		height:   height,
		sums:     make([]pixelSum, width*height),
		exposure: exposure,
		scratch:  gg.NewContext(width, height),
		handler:  handler,
	}, nil
}

// Reset zeroes every pixel sum and the total segment count, mirroring
// grid.Grid.Reset.
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
// existing accumulated sums.
func (g *Grid) SetExposure(exposure float64) {
	g.mu.Lock()
	g.exposure = exposure
	snap := g.snapshotLocked()
	g.mu.Unlock()

	g.emit(snap)
}

// DrawSegments strokes each segment through the GPU-accelerated context and
// accumulates the resulting coverage into running pixel sums. lowQuality is
// accepted for interface parity with grid.Grid but has no effect here: the
// accelerator always produces an anti-aliased stroke, since the coarse
// Bresenham path exists specifically to avoid the coverage-computation cost
// the GPU absorbs for free.
func (g *Grid) DrawSegments(layoutVersion uint64, segments []tracer.LightSegment, lowQuality bool) {
	g.mu.Lock()
	if layoutVersion < g.latestLayoutVersion {
		g.mu.Unlock()
		return
	}
	g.latestLayoutVersion = layoutVersion

	for _, seg := range segments {
		g.strokeSegment(seg)
	}
	g.totalSegmentCount += uint64(len(segments))
	snap := g.snapshotLocked()
	g.mu.Unlock()

	g.emit(snap)
}

// strokeSegment draws a single segment on the scratch context at full white
// opacity, reads back the coverage it produced, then adds the segment's
// color weighted by that coverage into the running sums. The scratch canvas
// is cleared per segment: coverage weights must reflect a single segment,
// not overlap with everything drawn before it in the batch.
func (g *Grid) strokeSegment(seg tracer.LightSegment) {
	g.scratch.Clear()
	g.scratch.SetRGBA(1, 1, 1, 1)
	g.scratch.SetLineWidth(1)
	g.scratch.MoveTo(seg.Pos1.X, seg.Pos1.Y)
	g.scratch.LineTo(seg.Pos2.X, seg.Pos2.Y)
	if err := g.scratch.Stroke(); err != nil {
		return
	}

	img, ok := g.scratch.Image().(*image.RGBA)
	if !ok {
		return
	}
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			i := (y*g.width + x) * 4
			coverage := float64(img.Pix[i+3]) / 255
			if coverage == 0 {
				continue
			}
			sum := &g.sums[y*g.width+x]
			sum.R += float64(seg.Color.R) * coverage
			sum.G += float64(seg.Color.G) * coverage
			sum.B += float64(seg.Color.B) * coverage
		}
	}
}

// TotalSegmentCount returns the number of segments accumulated so far.
func (g *Grid) TotalSegmentCount() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.totalSegmentCount
}

func (g *Grid) emit(snap grid.SimulationSnapshot) {
	if g.handler != nil {
		g.handler(snap)
	}
}

func (g *Grid) snapshotLocked() grid.SimulationSnapshot {
	brightness := 0.0
	if g.totalSegmentCount != 0 {
		brightness = g.exposure / float64(g.totalSegmentCount)
	}

	img := image.NewRGBA(image.Rect(0, 0, g.width, g.height))
	for i, sum := range g.sums {
		px := img.Pix[i*4 : i*4+4]
		c := colorful.Color{R: sum.R * brightness / 255, G: sum.G * brightness / 255, B: sum.B * brightness / 255}.Clamped()
		r, gCh, b := c.RGB255()
		px[0] = r
		px[1] = gCh
		px[2] = b
		px[3] = 255
	}

	return grid.SimulationSnapshot{Image: img, TotalSegmentsTraced: g.totalSegmentCount}
}
