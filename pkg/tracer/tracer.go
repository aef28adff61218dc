// Package tracer implements the progressive Monte-Carlo light tracer: a
// pure function of a scene layout and a segment budget that casts rays from
// point lights, bounces them off primitives with Fresnel reflection and
// refraction plus diffuse scattering, and returns the lit segments it
// traced.
package tracer

import (
	"context"
	"math"

	"github.com/kavehsim/lumensim/pkg/geom"
	"github.com/kavehsim/lumensim/pkg/intersect"
	"github.com/kavehsim/lumensim/pkg/scene"
)

// cancelCheckInterval is how many segments the main loop produces between
// checks of ctx's cancellation, per "checks a cancellation signal at batch
// boundaries (every ~1,000 segments suffices)".
const cancelCheckInterval = 1000

// fullyAbsorbedThreshold is the per-channel absorption fraction above which
// a ray is considered fully absorbed and stops propagating.
const fullyAbsorbedThreshold = 0.99

// mediumProbeDistance is how far past a hit point the tracer looks to
// determine a refracted ray's new medium.
const mediumProbeDistance = 0.1

// containmentIDBase is where synthetic containment-wall IDs start, chosen
// far above any realistic user-layout ID range so a containment wall can
// never be mistaken for the primitive a ray last bounced off.
const containmentIDBase = scene.ID(math.MaxUint64 - 8)

// Trace runs one tracer call to completion or cancellation. layout is read
// only; simulationWidth/Height define the containment rectangle; tracerID
// seeds this call's random sampling deterministically. It panics if layout
// has no lights, since an empty light set means the caller built the scene
// wrong.
func Trace(ctx context.Context, layout scene.SimulationLayout, simulationWidth, simulationHeight int, segmentsToTrace int, tracerID uint64) []LightSegment {
	if len(layout.Lights) == 0 {
		panic("tracer: layout has no lights")
	}

	rng := newSampler(tracerID)
	idx := intersect.NewIndex(layout)
	containment := containmentWalls(simulationWidth, simulationHeight)

	queue := geom.NewRingBuffer[lightRay](segmentsToTrace)
	produced := make([]LightSegment, 0, segmentsToTrace)

	for len(produced) < segmentsToTrace {
		if len(produced)%cancelCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return produced
			default:
			}
		}

		ray, ok := queue.Dequeue()
		if !ok {
			ray = spawnRootRay(layout, rng)
		}

		if ray.Color.Sum() < colorCutoff {
			continue
		}
		if !insideContainment(ray.Origin, simulationWidth, simulationHeight) {
			continue
		}

		hit, isContainmentHit, found := closestHit(idx, containment, ray)
		if !found {
			continue
		}

		produced = append(produced, LightSegment{Pos1: ray.Origin, Pos2: hit.Point, Color: ray.Color})

		if hit.Attrs.Absorption.FullyAbsorbing(fullyAbsorbedThreshold) || isContainmentHit {
			continue // containment walls are always fully absorbing
		}
		absorbedColor := ray.Color.MultiplyFractional(hit.Attrs.Absorption.Complement())

		normals := hitNormals(hit, ray)
		reverseDir := ray.Direction.Negate()
		incomingAngle := geom.Angle(normals.Reflection, reverseDir)

		reflectedDir := reflectedDirection(ray.Direction, normals.Reflection, hit, rng)
		reflectedColor := absorbedColor

		var refractedRay lightRay
		haveRefracted := false

		if hit.Attrs.Translucent {
			nFrom := ray.Medium.IndexOfRefraction
			nTo := hit.Attrs.IndexOfRefraction
			percentReflected := fresnelReflectance(math.Cos(incomingAngle), nFrom, nTo)

			reflectedColor = absorbedColor.Scale(geom.SafeDivide(1, percentReflected))
			refractedColor := absorbedColor.Scale(geom.SafeDivide(1, 1-percentReflected))

			refractedDir := refractedDirection(normals, reverseDir, incomingAngle, nFrom, nTo)
			probePoint := geom.Advance(hit.Point, ray.Direction, mediumProbeDistance)
			medium, inside := intersect.PointInPrimitive(probePoint, layout)
			if !inside {
				medium = scene.FreeSpace()
			}

			primID := hit.PrimitiveID
			refractedRay = lightRay{
				SourceItemID: &primID,
				Origin:       hit.Point,
				Direction:    refractedDir,
				Color:        refractedColor,
				Medium:       medium,
			}
			haveRefracted = true
		}

		primID := hit.PrimitiveID
		reflected := lightRay{
			SourceItemID: &primID,
			Origin:       hit.Point,
			Direction:    reflectedDir,
			Color:        reflectedColor,
			Medium:       ray.Medium,
		}
		queue.Enqueue(reflected)
		if haveRefracted {
			queue.Enqueue(refractedRay)
		}
	}

	return produced
}

// spawnRootRay mints a fresh ray from a uniformly-chosen light with a
// direction sampled uniformly on the unit circle.
func spawnRootRay(layout scene.SimulationLayout, rng *sampler) lightRay {
	light := layout.Lights[rng.lightIndex(len(layout.Lights))]
	return lightRay{
		SourceItemID: nil,
		Origin:       light.Pos,
		Direction:    rng.unitCircleDirection(),
		Color:        light.Color,
		Medium:       scene.FreeSpace(),
	}
}

// insideContainment reports whether p lies within the containment
// rectangle, inset by 1 pixel per side.
func insideContainment(p geom.Vec2, width, height int) bool {
	minX, minY := 1.0, 1.0
	maxX, maxY := float64(width-2), float64(height-2)
	return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
}

// containmentWalls builds the four fully-absorbing boundary walls, inset by
// 1 pixel, that always enclose the scene ahead of any user primitives.
func containmentWalls(width, height int) []scene.Wall {
	minX, minY := 1.0, 1.0
	maxX, maxY := float64(width-2), float64(height-2)
	corners := []geom.Vec2{
		geom.NewVec2(minX, minY), geom.NewVec2(maxX, minY),
		geom.NewVec2(maxX, maxY), geom.NewVec2(minX, maxY),
	}
	absorbing := scene.NewShapeAttributes(geom.NewFractionalColor(1, 1, 1), 0, 1, false)

	walls := make([]scene.Wall, 4)
	for i := range corners {
		next := (i + 1) % len(corners)
		walls[i] = scene.Wall{
			ID:      containmentIDBase + scene.ID(i),
			Segment: scene.NewShapeSegment(corners[i], corners[next]),
			Attrs:   absorbing,
		}
	}
	return walls
}

// closestHit tests ray against both the user layout and the containment
// rectangle and returns whichever intersection is closer.
func closestHit(idx *intersect.Index, containment []scene.Wall, ray lightRay) (intersect.Hit, bool, bool) {
	r2 := geom.NewRay2(ray.Origin, ray.Direction)

	layoutHit, layoutOK := idx.Query(r2, ray.SourceItemID)
	containmentHit, containmentOK := closestContainmentHit(containment, r2)

	switch {
	case layoutOK && containmentOK:
		if containmentHit.DistSquared < layoutHit.DistSquared {
			return containmentHit, true, true
		}
		return layoutHit, false, true
	case layoutOK:
		return layoutHit, false, true
	case containmentOK:
		return containmentHit, true, true
	default:
		return intersect.Hit{}, false, false
	}
}

func closestContainmentHit(walls []scene.Wall, ray geom.Ray2) (intersect.Hit, bool) {
	var hits []intersect.Hit
	for _, w := range walls {
		point, ok := intersect.Segment(ray, w.Segment)
		if !ok {
			continue
		}
		hits = append(hits, intersect.Hit{
			Point:       point,
			DistSquared: ray.Origin.DistanceSquared(point),
			PrimitiveID: w.ID,
			Attrs:       w.Attrs,
			Segment:     w.Segment,
			IsSegment:   true,
		})
	}
	return intersect.Closest(hits)
}

// hitNormals dispatches normal-pair computation to the segment or circle
// rule depending on which kind of primitive was hit.
func hitNormals(hit intersect.Hit, ray lightRay) intersect.Normals {
	if hit.IsCircle {
		return intersect.CircleNormals(hit.Center, hit.Radius, hit.Point, ray.Origin)
	}
	return intersect.SegmentNormals(hit.Segment, ray.Direction)
}

// reflectedDirection computes the mirror-reflection direction and, when the
// surface is diffusive, perturbs it by a random offset bounded by both the
// diffusion coefficient and the angle to the nearest surface tangent (so a
// diffuse bounce can never point back into the surface).
func reflectedDirection(incomingDir geom.Vec2, normal geom.Vec2, hit intersect.Hit, rng *sampler) geom.Vec2 {
	direction := reflectVector(incomingDir, normal).Normalize()

	diffusion := hit.Attrs.Diffusion
	if diffusion <= 0 {
		return direction
	}

	tangent := surfaceTangent(hit)
	angleToTangent := math.Min(geom.Angle(direction, tangent), geom.Angle(direction, tangent.Negate()))

	limit := math.Min(math.Pi/8*diffusion, angleToTangent-0.1)
	if limit <= 0 {
		return direction
	}
	return direction.Rotate(rng.diffusionOffset(limit)).Normalize()
}

// surfaceTangent returns a unit vector along the hit surface's local
// tangent line, used to bound diffuse perturbation away from the surface.
func surfaceTangent(hit intersect.Hit) geom.Vec2 {
	if hit.IsCircle {
		outward := hit.Point.Subtract(hit.Center).Normalize()
		return geom.NewVec2(-outward.Y, outward.X)
	}
	return hit.Segment.Direction().Normalize()
}

// refractedDirection rotates the refraction normal by the Snell's-law
// transmission angle, preserving the rotational sense of the incoming ray
// relative to the reflection normal so the transmitted ray bends to the
// same side the incident ray approached from.
func refractedDirection(normals intersect.Normals, reverseDir geom.Vec2, incomingAngle, nFrom, nTo float64) geom.Vec2 {
	signedIncoming := math.Atan2(normals.Reflection.Cross(reverseDir), normals.Reflection.Dot(reverseDir))
	transmittedMagnitude := refractedAngle(incomingAngle, nFrom, nTo)
	signedTransmitted := math.Copysign(transmittedMagnitude, signedIncoming)
	return normals.Refraction.Rotate(signedTransmitted).Normalize()
}
