package tracer

import (
	"context"
	"testing"

	"github.com/kavehsim/lumensim/pkg/geom"
	"github.com/kavehsim/lumensim/pkg/scene"
)

func closedRoomLayout() scene.SimulationLayout {
	alloc := scene.NewIDAllocator()
	matte := scene.NewShapeAttributes(geom.FractionalColor{R: 0.1, G: 0.1, B: 0.1}, 0.4, 1, false)
	corners := []geom.Vec2{{X: 10, Y: 10}, {X: 90, Y: 10}, {X: 90, Y: 90}, {X: 10, Y: 90}}
	var walls []scene.Wall
	for i := range corners {
		next := (i + 1) % len(corners)
		walls = append(walls, scene.NewWall(alloc, corners[i], corners[next], matte))
	}
	light := scene.Light{ID: alloc.Next(), Pos: geom.NewVec2(50, 50), Color: geom.NewLightColor(255, 255, 255)}
	return scene.NewSimulationLayout(1, []scene.Light{light}, walls, nil, nil)
}

func TestTracePanicsOnEmptyLights(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Trace to panic when the layout has no lights")
		}
	}()
	empty := scene.NewSimulationLayout(1, nil, nil, nil, nil)
	Trace(context.Background(), empty, 100, 100, 10, 1)
}

func TestTraceProducesRequestedSegmentCount(t *testing.T) {
	layout := closedRoomLayout()
	segments := Trace(context.Background(), layout, 100, 100, 500, 1)
	if len(segments) != 500 {
		t.Fatalf("Trace produced %d segments, want 500", len(segments))
	}
}

func TestTraceRespectsCancellation(t *testing.T) {
	layout := closedRoomLayout()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	segments := Trace(ctx, layout, 100, 100, 100000, 1)
	if len(segments) >= 100000 {
		t.Fatalf("expected cancellation to cut the run short, got %d segments", len(segments))
	}
}

func TestTraceIsDeterministicForSameTracerID(t *testing.T) {
	layout := closedRoomLayout()
	a := Trace(context.Background(), layout, 100, 100, 200, 7)
	b := Trace(context.Background(), layout, 100, 100, 200, 7)

	if len(a) != len(b) {
		t.Fatalf("expected identical segment counts for the same tracer id")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("expected identical segment %d for the same tracer id, got %+v vs %+v", i, a[i], b[i])
		}
	}
}
