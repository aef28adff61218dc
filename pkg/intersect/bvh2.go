package intersect

import (
	"sort"

	"github.com/kavehsim/lumensim/pkg/geom"
	"github.com/kavehsim/lumensim/pkg/scene"
)

// leafThreshold mirrors the original 3D BVH's leaf-node fanout: groups of
// this size or fewer are tested by linear search instead of splitting
// further.
const leafThreshold = 8

// BVHThreshold is the primitive count above which Trace builds a BVH2
// instead of brute-force testing every primitive; below it the fixed
// per-node overhead of the tree isn't worth paying.
const BVHThreshold = 32

// sourceNudgeDistance is how far a ray's origin is advanced along its
// direction before testing it against the primitive it just bounced off, so
// it doesn't immediately re-hit that surface at t≈0.
const sourceNudgeDistance = 0.1

// primitive is anything the broad phase can bound and test directly; the
// three concrete adapters below wrap the scene package's primitive types.
// sourceID identifies the primitive the ray last bounced off, if any: a
// primitive whose own ID matches nudges its local copy of the ray's origin
// forward by 0.1 along its direction before testing, so a ray doesn't
// immediately re-hit the surface it just left. Distance is always measured
// from the ray's true origin, not the nudged one, so ordering across
// primitives during closest-hit selection is unaffected.
type primitive interface {
	boundingBox() AABB2
	testHit(ray geom.Ray2, sourceID *scene.ID) (Hit, bool)
}

func nudgeFor(ray geom.Ray2, id, sourceID scene.ID, hasSource bool) geom.Ray2 {
	if !hasSource || sourceID != id {
		return ray
	}
	nudged := ray
	nudged.Origin = geom.Advance(ray.Origin, ray.Direction, sourceNudgeDistance)
	return nudged
}

type wallPrimitive struct{ w scene.Wall }

func (p wallPrimitive) boundingBox() AABB2 {
	return AABB2{Min: geom.NewVec2(p.w.Segment.MinX, p.w.Segment.MinY), Max: geom.NewVec2(p.w.Segment.MaxX, p.w.Segment.MaxY)}
}

func (p wallPrimitive) testHit(ray geom.Ray2, sourceID *scene.ID) (Hit, bool) {
	testRay := ray
	if sourceID != nil {
		testRay = nudgeFor(ray, p.w.ID, *sourceID, true)
	}
	point, ok := Segment(testRay, p.w.Segment)
	if !ok {
		return Hit{}, false
	}
	return Hit{
		Point:       point,
		DistSquared: ray.Origin.DistanceSquared(point),
		PrimitiveID: p.w.ID,
		Attrs:       p.w.Attrs,
		Segment:     p.w.Segment,
		IsSegment:   true,
	}, true
}

type circlePrimitive struct{ c scene.CircleShape }

func (p circlePrimitive) boundingBox() AABB2 {
	r := geom.NewVec2(p.c.Radius, p.c.Radius)
	return AABB2{Min: p.c.Center.Subtract(r), Max: p.c.Center.Add(r)}
}

func (p circlePrimitive) testHit(ray geom.Ray2, sourceID *scene.ID) (Hit, bool) {
	testRay := ray
	if sourceID != nil {
		testRay = nudgeFor(ray, p.c.ID, *sourceID, true)
	}
	point, ok := Circle(testRay, p.c.Center, p.c.Radius)
	if !ok {
		return Hit{}, false
	}
	return Hit{
		Point:       point,
		DistSquared: ray.Origin.DistanceSquared(point),
		PrimitiveID: p.c.ID,
		Attrs:       p.c.Attrs,
		Center:      p.c.Center,
		Radius:      p.c.Radius,
		IsCircle:    true,
	}, true
}

type polygonPrimitive struct{ poly scene.PolygonShape }

func (p polygonPrimitive) boundingBox() AABB2 {
	return NewAABB2FromPoints(p.poly.Vertices...)
}

func (p polygonPrimitive) testHit(ray geom.Ray2, sourceID *scene.ID) (Hit, bool) {
	testRay := ray
	if sourceID != nil {
		testRay = nudgeFor(ray, p.poly.ID, *sourceID, true)
	}
	point, edge, ok := Polygon(testRay, p.poly.Segments)
	if !ok {
		return Hit{}, false
	}
	return Hit{
		Point:       point,
		DistSquared: ray.Origin.DistanceSquared(point),
		PrimitiveID: p.poly.ID,
		Attrs:       p.poly.Attrs,
		Segment:     edge,
		IsSegment:   true,
	}, true
}

// BVH2Node is one node of the tree: an internal node with two children, or a
// leaf holding a small group of primitives tested by linear search.
type BVH2Node struct {
	Box        AABB2
	Left, Right *BVH2Node
	Leaf       []primitive
}

// BVH2 accelerates broad-phase lookup for layouts with many primitives.
type BVH2 struct {
	root *BVH2Node
}

// primitivesFromLayout flattens a layout's walls, circles, and polygons
// into the primitive interface the tree builds over.
func primitivesFromLayout(layout scene.SimulationLayout) []primitive {
	prims := make([]primitive, 0, len(layout.Walls)+len(layout.Circles)+len(layout.Polygons))
	for _, w := range layout.Walls {
		prims = append(prims, wallPrimitive{w})
	}
	for _, c := range layout.Circles {
		prims = append(prims, circlePrimitive{c})
	}
	for _, p := range layout.Polygons {
		prims = append(prims, polygonPrimitive{p})
	}
	return prims
}

// NewBVH2 builds a broad-phase tree over layout's primitives.
func NewBVH2(layout scene.SimulationLayout) *BVH2 {
	prims := primitivesFromLayout(layout)
	if len(prims) == 0 {
		return &BVH2{}
	}
	return &BVH2{root: build(prims)}
}

func build(prims []primitive) *BVH2Node {
	box := prims[0].boundingBox()
	for _, p := range prims[1:] {
		box = box.Union(p.boundingBox())
	}

	if len(prims) <= leafThreshold {
		return &BVH2Node{Box: box, Leaf: prims}
	}

	axis := box.LongestAxis()
	sort.Slice(prims, func(i, j int) bool {
		ci, cj := prims[i].boundingBox().Center(), prims[j].boundingBox().Center()
		if axis == 0 {
			return ci.X < cj.X
		}
		return ci.Y < cj.Y
	})

	mid := len(prims) / 2
	return &BVH2Node{
		Box:  box,
		Left: build(prims[:mid]), Right: build(prims[mid:]),
	}
}

// Hit returns the closest primitive the ray intersects, if any. sourceID,
// when non-nil, identifies the primitive the ray last bounced off.
func (b *BVH2) Hit(ray geom.Ray2, sourceID *scene.ID) (Hit, bool) {
	if b == nil || b.root == nil {
		return Hit{}, false
	}
	return hitNode(b.root, ray, sourceID)
}

func hitNode(node *BVH2Node, ray geom.Ray2, sourceID *scene.ID) (Hit, bool) {
	if !node.Box.Hit(ray) {
		return Hit{}, false
	}

	if node.Leaf != nil {
		var hits []Hit
		for _, p := range node.Leaf {
			if h, ok := p.testHit(ray, sourceID); ok {
				hits = append(hits, h)
			}
		}
		return Closest(hits)
	}

	var candidates []Hit
	if node.Left != nil {
		if h, ok := hitNode(node.Left, ray, sourceID); ok {
			candidates = append(candidates, h)
		}
	}
	if node.Right != nil {
		if h, ok := hitNode(node.Right, ray, sourceID); ok {
			candidates = append(candidates, h)
		}
	}
	return Closest(candidates)
}
