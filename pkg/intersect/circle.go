package intersect

import (
	"math"

	"github.com/kavehsim/lumensim/pkg/geom"
)

// Circle intersects ray with a circle of the given center and radius using
// the quadratic formula, returning the closest forward intersection point.
func Circle(ray geom.Ray2, center geom.Vec2, radius float64) (geom.Vec2, bool) {
	oc := ray.Origin.Subtract(center)
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - radius*radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return geom.Vec2{}, false
	}
	sqrtDisc := geom.ClampSqrt(discriminant)

	t1 := (-b - sqrtDisc) / (2 * a)
	t2 := (-b + sqrtDisc) / (2 * a)

	// Prefer the smallest positive root; a negative root is behind the ray.
	t, ok := smallestPositive(t1, t2)
	if !ok {
		return geom.Vec2{}, false
	}
	return ray.At(t), true
}

func smallestPositive(a, b float64) (float64, bool) {
	const eps = 1e-9
	switch {
	case a > eps && b > eps:
		return math.Min(a, b), true
	case a > eps:
		return a, true
	case b > eps:
		return b, true
	default:
		return 0, false
	}
}

// CircleNormals picks the reflection/refraction normal pair for a hit on a
// circle. If the ray's origin lies outside the circle, the reflection
// normal points away from the center (outward); otherwise the roles swap
// (the ray is exiting from inside).
func CircleNormals(center geom.Vec2, radius float64, hitPoint, rayOrigin geom.Vec2) Normals {
	outward := hitPoint.Subtract(center).Normalize()
	inward := outward.Negate()

	if PointInCircle(rayOrigin, center, radius) {
		return Normals{Reflection: inward, Refraction: outward}
	}
	return Normals{Reflection: outward, Refraction: inward}
}

// PointInCircle reports whether p lies within or on the circle, per the
// "point-in-circle consistency" testable property.
func PointInCircle(p, center geom.Vec2, radius float64) bool {
	return p.DistanceSquared(center) <= radius*radius
}
