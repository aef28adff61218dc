package intersect

import (
	"github.com/kavehsim/lumensim/pkg/geom"
	"github.com/kavehsim/lumensim/pkg/scene"
)

// PointInWall always returns false: a wall has no interior to probe into,
// so a ray passing through the medium beside one is never considered
// "inside" it.
func PointInWall(scene.Wall) bool {
	return false
}

// PointInPrimitive is the medium probe dispatcher used when a refracted ray
// checks what it has just entered: "probe the medium just past the hit
// point; if inside another translucent primitive, that primitive's
// attributes become the new medium; otherwise free space."
func PointInPrimitive(p geom.Vec2, layout scene.SimulationLayout) (scene.ShapeAttributes, bool) {
	for _, c := range layout.Circles {
		if c.Attrs.Translucent && PointInCircle(p, c.Center, c.Radius) {
			return c.Attrs, true
		}
	}
	for _, poly := range layout.Polygons {
		if poly.Attrs.Translucent && PointInPolygon(p, poly.Vertices) {
			return poly.Attrs, true
		}
	}
	return scene.ShapeAttributes{}, false
}
