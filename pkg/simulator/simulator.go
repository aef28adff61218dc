// Package simulator orchestrates Tracer batches into a Light Grid: it owns
// the tracer worker pool, the interactive/final job scheduling policy, and
// the budget-driven refill loop that keeps a session tracing until either
// a new layout arrives or the segment budget is exhausted.
package simulator

import (
	"context"
	"image"
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/kavehsim/lumensim/pkg/grid"
	"github.com/kavehsim/lumensim/pkg/gridgpu"
	"github.com/kavehsim/lumensim/pkg/scene"
	"github.com/kavehsim/lumensim/pkg/tracer"
)

const (
	interactiveMaxSegmentsToTrace = 200
	finalMaxSegmentsToTrace       = 10_000_000
	standardTracerSize            = 200_000
	hardwareStandardTracerSize    = 100_000
)

// gridBackend is the subset of grid.Grid's and gridgpu.Grid's method sets the
// Simulator depends on, letting it drive either backend identically.
type gridBackend interface {
	Reset(updateImage bool)
	SetExposure(exposure float64)
	DrawSegments(layoutVersion uint64, segments []tracer.LightSegment, lowQuality bool)
	TotalSegmentCount() uint64
}

// Option configures a Simulator at construction time.
type Option func(*Simulator)

// WithTracerConcurrency overrides the default runtime.NumCPU() tracer pool
// size.
func WithTracerConcurrency(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithStandardTracerSize overrides the per-job segment count used by final
// tracing passes.
func WithStandardTracerSize(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.standardTracerSize = n
			s.standardTracerSizeChosen = true
		}
	}
}

// WithFinalBudget overrides the total segment budget for one final tracing
// session.
func WithFinalBudget(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.finalBudget = n
		}
	}
}

// WithLogger overrides the default StdLogger.
func WithLogger(l Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHardwareGrid attempts to back the Simulator with the GPU-accelerated
// Grid from pkg/gridgpu. If no accelerator is registered, construction
// silently falls back to the CPU grid.Grid and logs the fallback, per the
// documented hardware-Grid-initialization-failure policy.
func WithHardwareGrid() Option {
	return func(s *Simulator) {
		s.useHardwareGrid = true
	}
}

// Simulator is the top-level orchestrator: one Grid, one always-on
// orchestration queue, and one tracer pool rebuilt on every Restart.
type Simulator struct {
	simSize image.Point

	concurrency              int
	standardTracerSize       int
	standardTracerSizeChosen bool
	finalBudget              int
	useHardwareGrid          bool
	logger                   Logger

	backend gridBackend

	handlerMu sync.RWMutex
	handler   grid.Handler

	simPool *simulatorPool

	// Owned exclusively by the simulatorPool goroutine; no lock needed.
	currentLayout scene.SimulationLayout
	tracerCancel  context.CancelFunc
	rawExposure   float64

	nextTracerID atomic.Uint64
}

// New creates a Simulator sized to simSize with the given starting exposure
// (0..1, per §6's editor-facing Exposure control).
func New(simSize image.Point, initialExposure float64, opts ...Option) *Simulator {
	s := &Simulator{
		simSize:            simSize,
		concurrency:        runtime.NumCPU(),
		standardTracerSize: standardTracerSize,
		finalBudget:        finalMaxSegmentsToTrace,
		logger:             StdLogger{},
		rawExposure:        initialExposure,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.backend = s.buildBackend(initialExposure)
	s.simPool = newSimulatorPool()
	return s
}

func (s *Simulator) buildBackend(exposure float64) gridBackend {
	if s.useHardwareGrid {
		if !s.standardTracerSizeChosen {
			s.standardTracerSize = hardwareStandardTracerSize
		}
		gpuGrid, err := gridgpu.New(s.simSize.X, s.simSize.Y, exposure, s.emit)
		if err == nil {
			return gpuGrid
		}
		s.logger.Printf("simulator: hardware grid unavailable (%v), falling back to CPU grid\n", err)
	}
	return grid.New(s.simSize.X, s.simSize.Y, exposure, s.emit)
}

func (s *Simulator) emit(snap grid.SimulationSnapshot) {
	s.handlerMu.RLock()
	h := s.handler
	s.handlerMu.RUnlock()
	if h != nil {
		h(snap)
	}
}

// SnapshotHandler registers the callback invoked with each new
// SimulationSnapshot. It may be called at any time, including while a
// session is tracing.
func (s *Simulator) SnapshotHandler(h func(grid.SimulationSnapshot)) {
	s.handlerMu.Lock()
	s.handler = h
	s.handlerMu.Unlock()
}

// SetExposure updates the render exposure and triggers a snapshot re-emit
// without re-rasterizing anything.
func (s *Simulator) SetExposure(newExposure float64) {
	s.simPool.submit(func() {
		s.rawExposure = newExposure
		s.backend.SetExposure(exposureCoefficient(s.rawExposure, len(s.currentLayout.Lights)))
	})
}

// Stop cancels all tracer operations and leaves the Simulator idle. The
// orchestration queue itself keeps running; a subsequent Restart works
// normally.
func (s *Simulator) Stop() {
	s.simPool.submit(func() {
		if s.tracerCancel != nil {
			s.tracerCancel()
			s.tracerCancel = nil
		}
	})
}

// Close permanently shuts down the Simulator's orchestration queue. No
// further Restart/Stop/SetExposure call has any effect afterward.
func (s *Simulator) Close() {
	s.Stop()
	s.simPool.stop()
}

// Restart replaces the current layout and begins a new tracing session. See
// the state-machine description: an interactive Restart runs a single quick
// low-quality pass; a non-interactive Restart fills the tracer pool and
// refills it until the final segment budget is exhausted or the next
// Restart/Stop cancels it.
func (s *Simulator) Restart(layout scene.SimulationLayout, interactive bool) {
	s.simPool.submit(func() { s.doRestart(layout, interactive) })
}

func (s *Simulator) doRestart(layout scene.SimulationLayout, interactive bool) {
	s.currentLayout = layout

	if s.tracerCancel != nil {
		s.tracerCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.tracerCancel = cancel
	pool := newTracerPool(ctx, s.concurrency)

	s.backend.SetExposure(exposureCoefficient(s.rawExposure, len(layout.Lights)))

	if len(layout.Lights) == 0 {
		s.backend.Reset(true)
		return
	}
	s.backend.Reset(false)

	if interactive {
		s.dispatchTracer(ctx, pool, layout, interactiveMaxSegmentsToTrace, true, true)
		return
	}

	remaining := &atomicBudget{value: int64(s.finalBudget)}
	for i := 0; i < s.concurrency; i++ {
		size := remaining.take(int64(s.standardTracerSize))
		if size <= 0 {
			break
		}
		s.dispatchFinalTracer(ctx, pool, layout, int(size), remaining)
	}
}

// dispatchTracer submits one Tracer job. lowQuality controls the Grid's
// rasterizer choice, not the tracer's own behavior.
func (s *Simulator) dispatchTracer(ctx context.Context, pool *tracerPool, layout scene.SimulationLayout, size int, interactive bool, lowQuality bool) {
	tracerID := s.nextTracerID.Add(1)
	job := tracerJob{run: func(ctx context.Context) {
		segments := tracer.Trace(ctx, layout, s.simSize.X, s.simSize.Y, size, tracerID)
		if ctx.Err() != nil {
			return
		}
		s.backend.DrawSegments(layout.Version, segments, lowQuality)
	}}
	if interactive {
		pool.submitInteractive(job)
	} else {
		pool.submitFinal(job)
	}
}

// dispatchFinalTracer wraps dispatchTracer with the refill-until-exhausted
// bookkeeping: on successful (non-cancelled) completion it posts an
// orchestration task that tops the pool back up if the layout hasn't
// changed underneath it and budget remains.
func (s *Simulator) dispatchFinalTracer(ctx context.Context, pool *tracerPool, layout scene.SimulationLayout, size int, remaining *atomicBudget) {
	tracerID := s.nextTracerID.Add(1)
	job := tracerJob{run: func(ctx context.Context) {
		segments := tracer.Trace(ctx, layout, s.simSize.X, s.simSize.Y, size, tracerID)
		if ctx.Err() != nil {
			return
		}
		s.backend.DrawSegments(layout.Version, segments, false)

		s.simPool.submit(func() {
			if ctx.Err() != nil || layout.Version != s.currentLayout.Version {
				return
			}
			next := remaining.take(int64(s.standardTracerSize))
			if next <= 0 {
				return
			}
			s.dispatchFinalTracer(ctx, pool, layout, int(next), remaining)
		})
	}}
	pool.submitFinal(job)
}

// atomicBudget hands out segment allotments from a shared pool without
// ever exceeding the total, even under concurrent refill requests.
type atomicBudget struct {
	value int64
}

// take reserves up to want segments from the remaining budget, returning
// the amount actually granted (0 if exhausted).
func (b *atomicBudget) take(want int64) int64 {
	for {
		cur := atomic.LoadInt64(&b.value)
		if cur <= 0 {
			return 0
		}
		grant := want
		if grant > cur {
			grant = cur
		}
		if atomic.CompareAndSwapInt64(&b.value, cur, cur-grant) {
			return grant
		}
	}
}

// exposureCoefficient implements the editor-facing Exposure control from
// §6: a per-snapshot brightness coefficient that keeps images comparable
// across varying segment budgets and light counts. The Grid divides this
// by TotalSegmentCount itself, so what's computed here is everything to
// the left of that division.
func exposureCoefficient(exposure float64, lightCount int) float64 {
	return math.Exp(1+10*exposure) * float64(lightCount)
}
