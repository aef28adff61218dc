package intersect

import (
	"math"

	"github.com/kavehsim/lumensim/pkg/geom"
	"github.com/kavehsim/lumensim/pkg/scene"
)

// slopeEpsilon is the tolerance below which a ray's slope and a segment's
// slope are treated as parallel, in which case the pair never intersects.
const slopeEpsilon = 1e-4

// Segment intersects ray with seg. It returns false if the ray and segment
// are parallel (slopes differ by less than slopeEpsilon), the intersection
// falls behind the ray's origin, or it falls outside the segment's padded
// x/y range.
func Segment(ray geom.Ray2, seg scene.ShapeSegment) (geom.Vec2, bool) {
	rayVertical := math.Abs(ray.Direction.X) < 1e-9
	segVertical := math.IsInf(seg.Slope, 1)

	var point geom.Vec2

	switch {
	case rayVertical && segVertical:
		return geom.Vec2{}, false // parallel verticals never cross

	case rayVertical:
		// Ray is x = ray.Origin.X; substitute into the segment's line.
		x := ray.Origin.X
		y := seg.Slope*x + seg.Intercept
		point = geom.NewVec2(x, y)

	case segVertical:
		// Segment is x = seg.P1.X; substitute into the ray's line.
		raySlope := geom.SafeDivide(ray.Direction.Y, ray.Direction.X)
		rayIntercept := ray.Origin.Y - raySlope*ray.Origin.X
		x := seg.P1.X
		y := raySlope*x + rayIntercept
		point = geom.NewVec2(x, y)

	default:
		raySlope := geom.SafeDivide(ray.Direction.Y, ray.Direction.X)
		if math.Abs(raySlope-seg.Slope) < slopeEpsilon {
			return geom.Vec2{}, false
		}
		rayIntercept := ray.Origin.Y - raySlope*ray.Origin.X
		x := (seg.Intercept - rayIntercept) / (raySlope - seg.Slope)
		y := raySlope*x + rayIntercept
		point = geom.NewVec2(x, y)
	}

	if !onForwardSide(ray, point) {
		return geom.Vec2{}, false
	}
	if point.X < seg.MinX || point.X > seg.MaxX || point.Y < seg.MinY || point.Y > seg.MaxY {
		return geom.Vec2{}, false
	}
	return point, true
}

// onForwardSide reports whether point lies on the forward side of the ray:
// the sign of (point.x - origin.x) must match the sign of direction.x (and
// likewise for y), so intersections behind the ray's origin are rejected.
func onForwardSide(ray geom.Ray2, point geom.Vec2) bool {
	dx := point.X - ray.Origin.X
	dy := point.Y - ray.Origin.Y
	if math.Abs(ray.Direction.X) > 1e-9 && sign(dx) != sign(ray.Direction.X) {
		return false
	}
	if math.Abs(ray.Direction.Y) > 1e-9 && sign(dy) != sign(ray.Direction.Y) {
		return false
	}
	return true
}

func sign(v float64) int {
	switch {
	case v > 1e-9:
		return 1
	case v < -1e-9:
		return -1
	default:
		return 0
	}
}

// SegmentNormals picks the reflection/refraction normal pair for a hit on a
// line segment. The candidate whose angle with the reverse incoming
// direction is within ±π/2 becomes the reflection normal; the other becomes
// the refraction normal.
func SegmentNormals(seg scene.ShapeSegment, incoming geom.Vec2) Normals {
	reverse := incoming.Negate()
	if geom.Angle(seg.NormalA, reverse) <= math.Pi/2 {
		return Normals{Reflection: seg.NormalA, Refraction: seg.NormalB}
	}
	return Normals{Reflection: seg.NormalB, Refraction: seg.NormalA}
}
