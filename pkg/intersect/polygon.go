package intersect

import (
	"github.com/kavehsim/lumensim/pkg/geom"
	"github.com/kavehsim/lumensim/pkg/scene"
)

// Polygon intersects ray with each edge of poly and returns the closest hit
// point plus the edge segment it hit, carried through as context for normal
// computation, per "intersect with each edge segment; return the closest;
// carry that edge's segment through as context for normal computation."
func Polygon(ray geom.Ray2, segments []scene.ShapeSegment) (geom.Vec2, scene.ShapeSegment, bool) {
	var (
		best     geom.Vec2
		bestEdge scene.ShapeSegment
		bestDist float64
		found    bool
	)
	for _, seg := range segments {
		point, ok := Segment(ray, seg)
		if !ok {
			continue
		}
		d := ray.Origin.DistanceSquared(point)
		if !found || d < bestDist {
			best, bestEdge, bestDist, found = point, seg, d, true
		}
	}
	return best, bestEdge, found
}

// PointInPolygon reports whether p lies inside the closed vertex ring using
// ray-cast parity: cast a ray from p in a fixed direction, count boundary
// crossings, inside iff the count is odd.
func PointInPolygon(p geom.Vec2, vertices []geom.Vec2) bool {
	inside := false
	n := len(vertices)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := vertices[i], vertices[j]
		crosses := (vi.Y > p.Y) != (vj.Y > p.Y)
		if !crosses {
			continue
		}
		xIntersect := vj.X + (p.Y-vj.Y)/(vi.Y-vj.Y)*(vi.X-vj.X)
		if p.X < xIntersect {
			inside = !inside
		}
	}
	return inside
}
