package intersect

import (
	"math"

	"github.com/kavehsim/lumensim/pkg/geom"
)

// AABB2 is a 2D axis-aligned bounding box, adapted from the 3D AABB used to
// accelerate the original path tracer's ray-object queries.
type AABB2 struct {
	Min, Max geom.Vec2
}

// NewAABB2FromPoints returns the smallest AABB2 containing all given points.
func NewAABB2FromPoints(points ...geom.Vec2) AABB2 {
	if len(points) == 0 {
		return AABB2{}
	}
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min.X, min.Y = math.Min(min.X, p.X), math.Min(min.Y, p.Y)
		max.X, max.Y = math.Max(max.X, p.X), math.Max(max.Y, p.Y)
	}
	return AABB2{Min: min, Max: max}
}

// Hit tests whether ray intersects this box using the slab method.
func (b AABB2) Hit(ray geom.Ray2) bool {
	tMin, tMax := math.Inf(-1), math.Inf(1)

	for axis := 0; axis < 2; axis++ {
		var lo, hi, origin, dir float64
		if axis == 0 {
			lo, hi, origin, dir = b.Min.X, b.Max.X, ray.Origin.X, ray.Direction.X
		} else {
			lo, hi, origin, dir = b.Min.Y, b.Max.Y, ray.Origin.Y, ray.Direction.Y
		}

		if math.Abs(dir) < 1e-9 {
			if origin < lo || origin > hi {
				return false
			}
			continue
		}

		invDir := 1 / dir
		t1, t2 := (lo-origin)*invDir, (hi-origin)*invDir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin, tMax = math.Max(tMin, t1), math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return true
}

// Union returns the smallest AABB2 containing both b and other.
func (b AABB2) Union(other AABB2) AABB2 {
	return AABB2{
		Min: geom.NewVec2(math.Min(b.Min.X, other.Min.X), math.Min(b.Min.Y, other.Min.Y)),
		Max: geom.NewVec2(math.Max(b.Max.X, other.Max.X), math.Max(b.Max.Y, other.Max.Y)),
	}
}

// Center returns the box's midpoint.
func (b AABB2) Center() geom.Vec2 {
	return geom.NewVec2((b.Min.X+b.Max.X)/2, (b.Min.Y+b.Max.Y)/2)
}

// LongestAxis returns 0 (X) or 1 (Y), whichever extent is larger.
func (b AABB2) LongestAxis() int {
	if (b.Max.X - b.Min.X) >= (b.Max.Y - b.Min.Y) {
		return 0
	}
	return 1
}

// Expand pads the box by amount in every direction, matching the ±0.5
// padding convention used for ShapeSegment ranges.
func (b AABB2) Expand(amount float64) AABB2 {
	pad := geom.NewVec2(amount, amount)
	return AABB2{Min: b.Min.Subtract(pad), Max: b.Max.Add(pad)}
}
