// Package intersect provides ray-vs-primitive intersection and
// normal-at-hit computations shared by every scene primitive, plus a broad
// phase acceleration structure for layouts with many primitives.
package intersect

import (
	"github.com/kavehsim/lumensim/pkg/geom"
	"github.com/kavehsim/lumensim/pkg/scene"
)

// Hit records the closest intersection of a ray with a primitive.
type Hit struct {
	Point       geom.Vec2
	DistSquared float64

	PrimitiveID scene.ID
	Attrs       scene.ShapeAttributes

	// Segment is set when the hit primitive reduces to a line segment (a
	// wall, or the edge of a polygon that was hit) and carries the edge's
	// precomputed normal candidates through to normal selection. It is the
	// zero value for circle hits, which compute normals directly from the
	// hit point and center instead.
	Segment   scene.ShapeSegment
	IsSegment bool

	// Center and Radius are set when the hit primitive is a circle.
	Center geom.Vec2
	Radius float64
	IsCircle bool
}

// Normals is the (reflection, refraction) normal pair computed at a hit, per
// the "Normal selection" rules: the reflection normal points into the
// half-space containing the incoming ray's reverse direction, and the
// refraction normal is its opposite.
type Normals struct {
	Reflection geom.Vec2
	Refraction geom.Vec2
}

// Closest walks candidates and keeps the one with the smallest DistSquared,
// matching step 5 of the tracer's main loop ("keep the closest intersection
// by squared Euclidean distance... ties broken by first-encountered
// iteration order").
func Closest(candidates []Hit) (Hit, bool) {
	var best Hit
	found := false
	for _, h := range candidates {
		if !found || h.DistSquared < best.DistSquared {
			best = h
			found = true
		}
	}
	return best, found
}
