package simulator

import (
	"image"
	"sync"
	"testing"
	"time"

	"github.com/kavehsim/lumensim/pkg/geom"
	"github.com/kavehsim/lumensim/pkg/grid"
	"github.com/kavehsim/lumensim/pkg/scene"
)

func closedRoomLayout(version uint64) scene.SimulationLayout {
	alloc := scene.NewIDAllocator()
	matte := scene.NewShapeAttributes(geom.FractionalColor{R: 0.1, G: 0.1, B: 0.1}, 0.4, 1, false)
	corners := []geom.Vec2{{X: 5, Y: 5}, {X: 45, Y: 5}, {X: 45, Y: 45}, {X: 5, Y: 45}}
	var walls []scene.Wall
	for i := range corners {
		next := (i + 1) % len(corners)
		walls = append(walls, scene.NewWall(alloc, corners[i], corners[next], matte))
	}
	light := scene.Light{ID: alloc.Next(), Pos: geom.NewVec2(25, 25), Color: geom.NewLightColor(255, 255, 255)}
	return scene.NewSimulationLayout(version, []scene.Light{light}, walls, nil, nil)
}

type snapshotCollector struct {
	mu    sync.Mutex
	snaps []grid.SimulationSnapshot
}

func (c *snapshotCollector) handle(s grid.SimulationSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snaps = append(c.snaps, s)
}

func (c *snapshotCollector) latest() (grid.SimulationSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.snaps) == 0 {
		return grid.SimulationSnapshot{}, false
	}
	return c.snaps[len(c.snaps)-1], true
}

func (c *snapshotCollector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.snaps)
}

func waitFor(t *testing.T, timeout time.Duration, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}

func TestRestartInteractiveProducesASnapshot(t *testing.T) {
	collector := &snapshotCollector{}
	s := New(image.Point{X: 50, Y: 50}, 0.5, WithLogger(NullLogger{}))
	s.SnapshotHandler(collector.handle)
	defer s.Close()

	s.Restart(closedRoomLayout(1), true)

	waitFor(t, time.Second, func() bool {
		snap, ok := collector.latest()
		return ok && snap.TotalSegmentsTraced == interactiveMaxSegmentsToTrace
	})
}

func TestRestartEmptyLightsResetsToBlack(t *testing.T) {
	collector := &snapshotCollector{}
	s := New(image.Point{X: 20, Y: 20}, 0.5, WithLogger(NullLogger{}))
	s.SnapshotHandler(collector.handle)
	defer s.Close()

	empty := scene.NewSimulationLayout(1, nil, nil, nil, nil)
	s.Restart(empty, false)

	waitFor(t, time.Second, func() bool { return collector.count() > 0 })

	snap, ok := collector.latest()
	if !ok {
		t.Fatalf("expected a snapshot")
	}
	if snap.TotalSegmentsTraced != 0 {
		t.Fatalf("expected zero segments traced for an empty layout, got %d", snap.TotalSegmentsTraced)
	}
	for i := 0; i < len(snap.Image.Pix); i += 4 {
		if snap.Image.Pix[i] != 0 || snap.Image.Pix[i+1] != 0 || snap.Image.Pix[i+2] != 0 {
			t.Fatalf("expected an all-black image for an empty layout")
		}
	}
}

func TestFinalTracingRefillsUntilBudgetExhausted(t *testing.T) {
	collector := &snapshotCollector{}
	s := New(image.Point{X: 50, Y: 50}, 0.5,
		WithLogger(NullLogger{}),
		WithTracerConcurrency(2),
		WithStandardTracerSize(500),
		WithFinalBudget(2000),
	)
	s.SnapshotHandler(collector.handle)
	defer s.Close()

	s.Restart(closedRoomLayout(1), false)

	waitFor(t, 5*time.Second, func() bool {
		snap, ok := collector.latest()
		return ok && snap.TotalSegmentsTraced >= 2000
	})

	snap, _ := collector.latest()
	if snap.TotalSegmentsTraced != 2000 {
		t.Fatalf("expected the budget to stop exactly at 2000 segments, got %d", snap.TotalSegmentsTraced)
	}
}

func TestRestartCancelsPriorSession(t *testing.T) {
	collector := &snapshotCollector{}
	s := New(image.Point{X: 50, Y: 50}, 0.5,
		WithLogger(NullLogger{}),
		WithTracerConcurrency(2),
		WithStandardTracerSize(500_000),
		WithFinalBudget(50_000_000),
	)
	s.SnapshotHandler(collector.handle)
	defer s.Close()

	s.Restart(closedRoomLayout(1), false)
	time.Sleep(5 * time.Millisecond)

	// A second, distinct-version Restart should cancel the first session; the
	// Grid's version gate then guarantees no batch from version 1 is ever
	// counted again, even if one was already in flight.
	s.Restart(closedRoomLayout(2), true)

	waitFor(t, time.Second, func() bool {
		snap, ok := collector.latest()
		return ok && snap.TotalSegmentsTraced == interactiveMaxSegmentsToTrace
	})
}
