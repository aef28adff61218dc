package scene

// SimulationLayout is an immutable snapshot of the scene: lights, walls,
// circles, and polygons, each carrying their own optical attributes, plus a
// monotonic Version used by the Grid to discard stale batches. A layout
// value is constructed once by the editor and flows to the Simulator and
// its Tracers by shared read-only reference — nothing in this package
// mutates a SimulationLayout after construction.
type SimulationLayout struct {
	Version  uint64
	Lights   []Light
	Walls    []Wall
	Circles  []CircleShape
	Polygons []PolygonShape
}

// NewSimulationLayout builds a layout value. Callers own version bookkeeping;
// each edit to the scene must supply a strictly greater Version and the
// complete list of primitives (no deltas), per §6.
func NewSimulationLayout(version uint64, lights []Light, walls []Wall, circles []CircleShape, polygons []PolygonShape) SimulationLayout {
	return SimulationLayout{
		Version:  version,
		Lights:   lights,
		Walls:    walls,
		Circles:  circles,
		Polygons: polygons,
	}
}

// PrimitiveCount returns the total number of intersection-testable
// primitives (walls + circles + polygon edges), used by the intersection
// library to decide whether a BVH is worth building for a given layout.
func (l SimulationLayout) PrimitiveCount() int {
	n := len(l.Walls) + len(l.Circles)
	for _, p := range l.Polygons {
		n += len(p.Segments)
	}
	return n
}
