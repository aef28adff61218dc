package intersect

import (
	"github.com/kavehsim/lumensim/pkg/geom"
	"github.com/kavehsim/lumensim/pkg/scene"
)

// Index is the intersection library's entry point: it holds whichever
// broad-phase structure (if any) is worth building for a layout, and
// dispatches Query calls through it.
type Index struct {
	bvh    *BVH2
	layout scene.SimulationLayout
}

// NewIndex builds an Index for layout. A BVH2 is only constructed once the
// layout's primitive count exceeds BVHThreshold; smaller layouts fall back
// to brute force, whose result is identical within float tolerance but
// cheaper to build and walk at that scale.
func NewIndex(layout scene.SimulationLayout) *Index {
	idx := &Index{layout: layout}
	if layout.PrimitiveCount() > BVHThreshold {
		idx.bvh = NewBVH2(layout)
	}
	return idx
}

// Query returns the closest primitive ray intersects in the index's layout.
// sourceID, when non-nil, identifies the primitive the ray last bounced off,
// so that primitive's self-intersection test uses a nudged origin.
func (idx *Index) Query(ray geom.Ray2, sourceID *scene.ID) (Hit, bool) {
	if idx.bvh != nil {
		return idx.bvh.Hit(ray, sourceID)
	}
	return bruteForce(idx.layout, ray, sourceID)
}

func bruteForce(layout scene.SimulationLayout, ray geom.Ray2, sourceID *scene.ID) (Hit, bool) {
	prims := primitivesFromLayout(layout)
	var hits []Hit
	for _, p := range prims {
		if h, ok := p.testHit(ray, sourceID); ok {
			hits = append(hits, h)
		}
	}
	return Closest(hits)
}
