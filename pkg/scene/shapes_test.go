package scene

import (
	"testing"

	"github.com/kavehsim/lumensim/pkg/geom"
)

func TestIDAllocatorMonotonic(t *testing.T) {
	alloc := NewIDAllocator()
	prev := ID(0)
	for i := 0; i < 100; i++ {
		id := alloc.Next()
		if id <= prev {
			t.Fatalf("IDAllocator produced non-increasing ID: %v after %v", id, prev)
		}
		prev = id
	}
}

func TestAttributeIDDistinguishesEqualValues(t *testing.T) {
	a := NewShapeAttributes(geom.FractionalColor{R: 0.1, G: 0.1, B: 0.1}, 0.5, 1.5, true)
	b := NewShapeAttributes(geom.FractionalColor{R: 0.1, G: 0.1, B: 0.1}, 0.5, 1.5, true)

	if a.Absorption != b.Absorption || a.Diffusion != b.Diffusion {
		t.Fatalf("expected equal attribute values for this test")
	}
	if a.SameSurface(b) {
		t.Fatalf("two independently constructed ShapeAttributes must not share a stable identity")
	}
	if !a.SameSurface(a) {
		t.Fatalf("a ShapeAttributes must share a stable identity with itself")
	}
}

func TestNewPolygonShapeRejectsTooFewVertices(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic constructing a polygon with 2 vertices")
		}
	}()
	alloc := NewIDAllocator()
	_, _ = NewPolygonShape(alloc, []geom.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}}, FreeSpace())
}

func TestNewPolygonShapeRejectsSelfIntersection(t *testing.T) {
	alloc := NewIDAllocator()
	// A bowtie: (0,0)-(1,1)-(1,0)-(0,1) crosses itself.
	vertices := []geom.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	_, err := NewPolygonShape(alloc, vertices, FreeSpace())
	if err == nil {
		t.Fatalf("expected an error for a self-intersecting polygon")
	}
}

func TestNewPolygonShapeAcceptsSimpleSquare(t *testing.T) {
	alloc := NewIDAllocator()
	vertices := []geom.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	poly, err := NewPolygonShape(alloc, vertices, FreeSpace())
	if err != nil {
		t.Fatalf("unexpected error for a simple square: %v", err)
	}
	if len(poly.Segments) != 4 {
		t.Fatalf("expected 4 segments, got %d", len(poly.Segments))
	}
}

func TestNewFractionalColorRejectsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic constructing a FractionalColor outside [0,1]")
		}
	}()
	geom.NewFractionalColor(1.5, 0, 0)
}

func TestLayoutPrimitiveCount(t *testing.T) {
	alloc := NewIDAllocator()
	wall := NewWall(alloc, geom.Vec2{}, geom.Vec2{X: 1}, FreeSpace())
	circle := NewCircleShape(alloc, geom.Vec2{}, 1, FreeSpace())
	poly, _ := NewPolygonShape(alloc, []geom.Vec2{{X: 0}, {X: 1}, {X: 1, Y: 1}}, FreeSpace())

	layout := NewSimulationLayout(1, nil, []Wall{wall}, []CircleShape{circle}, []PolygonShape{poly})
	if got := layout.PrimitiveCount(); got != 5 { // 1 wall + 1 circle + 3 polygon edges
		t.Fatalf("PrimitiveCount() = %d, want 5", got)
	}
}
