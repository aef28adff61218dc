package tracer

import (
	"github.com/kavehsim/lumensim/pkg/geom"
	"github.com/kavehsim/lumensim/pkg/scene"
)

// colorCutoff is the aggregate-channel threshold below which a ray is
// considered spent and discarded without further tracing.
const colorCutoff = 50

// lightRay is one in-flight ray inside a single Trace call. It never
// escapes the tracer package; the caller only ever sees the LightSegments a
// Trace call emits.
type lightRay struct {
	// SourceItemID is the primitive the ray just bounced off, or nil for a
	// freshly-minted root ray. It is used to nudge the ray's origin forward
	// before re-testing that exact primitive, so a ray doesn't immediately
	// re-hit the surface it left.
	SourceItemID *scene.ID

	Origin    geom.Vec2
	Direction geom.Vec2
	Color     geom.LightColor
	Medium    scene.ShapeAttributes
}

// LightSegment is one lit segment of traced light, the Tracer's output unit.
type LightSegment struct {
	Pos1, Pos2 geom.Vec2
	Color      geom.LightColor
}
