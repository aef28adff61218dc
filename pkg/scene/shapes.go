package scene

import (
	"fmt"
	"math"

	"github.com/kavehsim/lumensim/pkg/geom"
)

// Light is a point light source.
type Light struct {
	ID    ID
	Pos   geom.Vec2
	Color geom.LightColor
}

// ShapeSegment is a precomputation cache for a line segment: endpoints,
// slope (infinity-safe), y-intercept, inclusive x/y ranges padded by 0.5,
// and the pair of outward normals. Walls and polygon edges both reduce to
// this structure so the intersection library only needs one segment path.
type ShapeSegment struct {
	P1, P2 geom.Vec2

	Slope     float64 // math.Inf for vertical segments
	Intercept float64 // y-intercept; meaningless when Slope is infinite

	MinX, MaxX float64 // inclusive, padded by 0.5
	MinY, MaxY float64

	NormalA, NormalB geom.Vec2 // the two candidate outward normals
}

// NewShapeSegment precomputes the intersection-time fields for a segment
// between p1 and p2.
func NewShapeSegment(p1, p2 geom.Vec2) ShapeSegment {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y

	var slope, intercept float64
	if math.Abs(dx) < 1e-9 {
		slope = math.Inf(1)
	} else {
		slope = dy / dx
		intercept = p1.Y - slope*p1.X
	}

	minX, maxX := math.Min(p1.X, p2.X)-0.5, math.Max(p1.X, p2.X)+0.5
	minY, maxY := math.Min(p1.Y, p2.Y)-0.5, math.Max(p1.Y, p2.Y)+0.5

	// The segment direction (dx, dy) has two perpendiculars; which one is
	// the "reflection" normal for a given ray is decided at hit time, not
	// here, since it depends on the incoming direction.
	normalA := geom.NewVec2(-dy, dx).Normalize()
	normalB := normalA.Negate()

	return ShapeSegment{
		P1: p1, P2: p2,
		Slope: slope, Intercept: intercept,
		MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY,
		NormalA: normalA, NormalB: normalB,
	}
}

// Direction returns the (non-unit) direction from P1 to P2.
func (s ShapeSegment) Direction() geom.Vec2 {
	return s.P2.Subtract(s.P1)
}

// Wall is an oriented line segment obstacle.
type Wall struct {
	ID      ID
	Segment ShapeSegment
	Attrs   ShapeAttributes
}

// NewWall creates a wall between p1 and p2 with the given attributes.
func NewWall(alloc *IDAllocator, p1, p2 geom.Vec2, attrs ShapeAttributes) Wall {
	return Wall{
		ID:      alloc.Next(),
		Segment: NewShapeSegment(p1, p2),
		Attrs:   attrs,
	}
}

// CircleShape is a circular obstacle.
type CircleShape struct {
	ID     ID
	Center geom.Vec2
	Radius float64
	Attrs  ShapeAttributes
}

// NewCircleShape creates a circle. A non-positive radius is a
// programmer-contract violation and panics.
func NewCircleShape(alloc *IDAllocator, center geom.Vec2, radius float64, attrs ShapeAttributes) CircleShape {
	if radius <= 0 {
		panic("scene: CircleShape radius must be positive")
	}
	return CircleShape{
		ID:     alloc.Next(),
		Center: center,
		Radius: radius,
		Attrs:  attrs,
	}
}

// PolygonShape is a convex (or at least simple) polygon obstacle bounded by
// a closed vertex ring.
type PolygonShape struct {
	ID       ID
	Vertices []geom.Vec2
	Segments []ShapeSegment // precomputed adjacent-vertex edges, closed ring
	Attrs    ShapeAttributes
}

// NewPolygonShape creates a polygon from a vertex ring. Fewer than 3
// vertices is a programmer-contract violation and panics. A self-intersecting
// ring is rejected with an error rather than admitted with undefined
// intersection behavior later (see DESIGN.md, "Polygon simplicity").
func NewPolygonShape(alloc *IDAllocator, vertices []geom.Vec2, attrs ShapeAttributes) (PolygonShape, error) {
	if len(vertices) < 3 {
		panic("scene: PolygonShape requires at least 3 vertices")
	}
	if selfIntersects(vertices) {
		return PolygonShape{}, fmt.Errorf("scene: polygon vertex ring is self-intersecting")
	}

	segments := make([]ShapeSegment, len(vertices))
	for i := range vertices {
		next := (i + 1) % len(vertices)
		segments[i] = NewShapeSegment(vertices[i], vertices[next])
	}

	return PolygonShape{
		ID:       alloc.Next(),
		Vertices: append([]geom.Vec2(nil), vertices...),
		Segments: segments,
		Attrs:    attrs,
	}, nil
}

// selfIntersects reports whether any two non-adjacent edges of the closed
// vertex ring cross. O(n^2) but polygons in this system are small.
func selfIntersects(vertices []geom.Vec2) bool {
	n := len(vertices)
	if n < 4 {
		return false // triangles can never self-intersect
	}
	for i := 0; i < n; i++ {
		a1, a2 := vertices[i], vertices[(i+1)%n]
		for j := i + 1; j < n; j++ {
			// Skip edges adjacent to edge i (they share an endpoint by
			// construction, which segmentsCross would otherwise flag).
			if j == i || (j+1)%n == i {
				continue
			}
			b1, b2 := vertices[j], vertices[(j+1)%n]
			if segmentsCross(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

// segmentsCross reports whether segments (a1,a2) and (b1,b2) cross using the
// standard orientation test.
func segmentsCross(a1, a2, b1, b2 geom.Vec2) bool {
	o1 := orientation(a1, a2, b1)
	o2 := orientation(a1, a2, b2)
	o3 := orientation(b1, b2, a1)
	o4 := orientation(b1, b2, a2)
	return o1 != o2 && o3 != o4 && o1 != 0 && o2 != 0 && o3 != 0 && o4 != 0
}

// orientation returns -1, 0, or 1 for clockwise, collinear, counter-clockwise.
func orientation(p, q, r geom.Vec2) int {
	val := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
	switch {
	case val > 1e-9:
		return 1
	case val < -1e-9:
		return -1
	default:
		return 0
	}
}
