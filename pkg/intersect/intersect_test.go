package intersect

import (
	"math"
	"testing"

	"github.com/kavehsim/lumensim/pkg/geom"
	"github.com/kavehsim/lumensim/pkg/scene"
)

func TestSegmentParallelRaysTrivialReject(t *testing.T) {
	alloc := scene.NewIDAllocator()
	wall := scene.NewWall(alloc, geom.NewVec2(0, 50), geom.NewVec2(100, 50), scene.FreeSpace())

	ray := geom.NewRay2(geom.NewVec2(-10, 50), geom.NewVec2(1, 0))
	if _, ok := Segment(ray, wall.Segment); ok {
		t.Fatalf("expected a horizontal ray to trivially reject a horizontal wall")
	}
}

func TestSegmentHitsWithinRange(t *testing.T) {
	alloc := scene.NewIDAllocator()
	wall := scene.NewWall(alloc, geom.NewVec2(0, 0), geom.NewVec2(0, 100), scene.FreeSpace())

	ray := geom.NewRay2(geom.NewVec2(-50, 50), geom.NewVec2(1, 0))
	point, ok := Segment(ray, wall.Segment)
	if !ok {
		t.Fatalf("expected a hit on the vertical wall")
	}
	if math.Abs(point.X) > 1e-9 || math.Abs(point.Y-50) > 1e-9 {
		t.Fatalf("unexpected hit point: %+v", point)
	}
}

func TestSegmentRejectsBehindOrigin(t *testing.T) {
	alloc := scene.NewIDAllocator()
	wall := scene.NewWall(alloc, geom.NewVec2(0, 0), geom.NewVec2(0, 100), scene.FreeSpace())

	ray := geom.NewRay2(geom.NewVec2(50, 50), geom.NewVec2(1, 0)) // pointing away from the wall
	if _, ok := Segment(ray, wall.Segment); ok {
		t.Fatalf("expected no hit for a ray pointing away from the wall")
	}
}

func TestSegmentNormalsOrthogonality(t *testing.T) {
	seg := scene.NewShapeSegment(geom.NewVec2(0, 0), geom.NewVec2(10, 0))
	incoming := geom.NewVec2(0, -1)
	normals := SegmentNormals(seg, incoming)

	dir := seg.Direction()
	dot := normals.Reflection.Dot(dir)
	if math.Abs(dot) > 1e-9 {
		t.Fatalf("expected reflection normal orthogonal to segment direction, dot=%v", dot)
	}
}

func TestPointInCircleConsistency(t *testing.T) {
	center := geom.NewVec2(0, 0)
	radius := 10.0

	cases := []struct {
		p      geom.Vec2
		inside bool
	}{
		{geom.NewVec2(0, 0), true},
		{geom.NewVec2(9.9, 0), true},
		{geom.NewVec2(10, 0), true},
		{geom.NewVec2(10.1, 0), false},
		{geom.NewVec2(20, 20), false},
	}
	for _, c := range cases {
		if got := PointInCircle(c.p, center, radius); got != c.inside {
			t.Errorf("PointInCircle(%v) = %v, want %v", c.p, got, c.inside)
		}
	}
}

func TestPointInPolygonConsistency(t *testing.T) {
	square := []geom.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}

	if !PointInPolygon(geom.NewVec2(5, 5), square) {
		t.Fatalf("expected interior point to be inside")
	}
	if PointInPolygon(geom.NewVec2(50, 50), square) {
		t.Fatalf("expected exterior point to be outside")
	}
}

func TestPointInWallAlwaysFalse(t *testing.T) {
	alloc := scene.NewIDAllocator()
	wall := scene.NewWall(alloc, geom.NewVec2(0, 0), geom.NewVec2(10, 0), scene.FreeSpace())
	if PointInWall(wall) {
		t.Fatalf("PointInWall must always return false")
	}
}

func TestCircleIntersectionMissOutsideRadius(t *testing.T) {
	ray := geom.NewRay2(geom.NewVec2(-100, 100), geom.NewVec2(1, 0))
	if _, ok := Circle(ray, geom.NewVec2(0, 0), 10); ok {
		t.Fatalf("expected a ray passing well outside the circle's radius to miss")
	}
}

func TestFreeIndexAndBruteForceAgree(t *testing.T) {
	alloc := scene.NewIDAllocator()
	walls := []scene.Wall{
		scene.NewWall(alloc, geom.NewVec2(-100, -100), geom.NewVec2(100, -100), scene.FreeSpace()),
		scene.NewWall(alloc, geom.NewVec2(100, -100), geom.NewVec2(100, 100), scene.FreeSpace()),
	}
	layout := scene.NewSimulationLayout(1, nil, walls, nil, nil)
	idx := NewIndex(layout)

	ray := geom.NewRay2(geom.NewVec2(0, 0), geom.NewVec2(1, 0))
	bvhHit, bvhOk := idx.Query(ray, nil)
	bruteHit, bruteOk := bruteForce(layout, ray, nil)

	if bvhOk != bruteOk {
		t.Fatalf("index and brute force disagree on hit/miss")
	}
	if bvhOk && bvhHit.PrimitiveID != bruteHit.PrimitiveID {
		t.Fatalf("index and brute force picked different closest primitives")
	}
}
