// Package catalogue lists the built-in demo layouts that cmd/lumensim and
// the SSE demo server offer a caller by name, and builds the
// SimulationLayout for a chosen one. There is no external
// scene-description file format to load, so a small fixed table of
// builder functions stands in for one.
package catalogue

import (
	"fmt"
	"math"
	"sort"

	"github.com/kavehsim/lumensim/pkg/geom"
	"github.com/kavehsim/lumensim/pkg/scene"
)

// Info describes one built-in demo layout for display purposes.
type Info struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
}

// builder constructs the layout for a demo, given a fresh IDAllocator so the
// resulting primitive IDs are hermetic to that call, and the target canvas
// size so its geometry lands inside the containment rectangle
// (pkg/tracer.insideContainment: [1, width-2] x [1, height-2]) rather than
// at a fixed set of coordinates that only happens to fit one canvas size.
type builder func(alloc *scene.IDAllocator, width, height int) scene.SimulationLayout

type entry struct {
	Info
	build builder
}

var registry = []entry{
	{
		Info: Info{ID: "empty-room", DisplayName: "Empty Room", Description: "A single light in a bare rectangular room."},
		build: buildEmptyRoom,
	},
	{
		Info: Info{ID: "lens", DisplayName: "Glass Lens", Description: "A point light shining through a refractive circular lens."},
		build: buildLens,
	},
	{
		Info: Info{ID: "prism", DisplayName: "Prism Hallway", Description: "A light beside a translucent triangular prism in a corridor."},
		build: buildPrism,
	},
	{
		Info: Info{ID: "diffuse-scatter", DisplayName: "Diffuse Scatter", Description: "Two lights against a bank of highly diffusive walls."},
		build: buildDiffuseScatter,
	},
}

// List returns the built-in demo layouts sorted by display name.
func List() []Info {
	infos := make([]Info, len(registry))
	for i, e := range registry {
		infos[i] = e.Info
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].DisplayName < infos[j].DisplayName })
	return infos
}

// Build constructs the layout registered under id, sized to fit within a
// width x height simulation grid. It returns an error if id is not a known
// demo.
func Build(id string, version uint64, width, height int) (scene.SimulationLayout, error) {
	for _, e := range registry {
		if e.ID == id {
			alloc := scene.NewIDAllocator()
			layout := e.build(alloc, width, height)
			layout.Version = version
			return layout, nil
		}
	}
	return scene.SimulationLayout{}, fmt.Errorf("catalogue: unknown demo layout %q", id)
}

// margin returns the wall/light inset used by the built-in demos, scaled to
// the smaller canvas dimension so a layout keeps its proportions across
// canvas sizes, while never shrinking below what the containment rectangle
// needs (pkg/tracer.insideContainment insets by 1 pixel per side).
func margin(width, height int) float64 {
	m := 0.08 * math.Min(float64(width), float64(height))
	if m < 4 {
		m = 4
	}
	return m
}

func rect(alloc *scene.IDAllocator, minX, minY, maxX, maxY float64, attrs scene.ShapeAttributes) []scene.Wall {
	corners := []geom.Vec2{
		{X: minX, Y: minY}, {X: maxX, Y: minY}, {X: maxX, Y: maxY}, {X: minX, Y: maxY},
	}
	walls := make([]scene.Wall, 4)
	for i := range corners {
		next := (i + 1) % len(corners)
		walls[i] = scene.NewWall(alloc, corners[i], corners[next], attrs)
	}
	return walls
}

func buildEmptyRoom(alloc *scene.IDAllocator, width, height int) scene.SimulationLayout {
	w, h := float64(width), float64(height)
	m := margin(width, height)

	matteWall := scene.NewShapeAttributes(geom.NewFractionalColor(0.15, 0.15, 0.15), 0.6, 1, false)
	walls := rect(alloc, m, m, w-m, h-m, matteWall)
	light := scene.Light{ID: alloc.Next(), Pos: geom.NewVec2(w/2, h/2), Color: geom.NewLightColor(255, 255, 255)}
	return scene.NewSimulationLayout(0, []scene.Light{light}, walls, nil, nil)
}

func buildLens(alloc *scene.IDAllocator, width, height int) scene.SimulationLayout {
	w, h := float64(width), float64(height)
	m := margin(width, height)

	matteWall := scene.NewShapeAttributes(geom.NewFractionalColor(0.1, 0.1, 0.1), 0.4, 1, false)
	walls := rect(alloc, m, m, w-m, h-m, matteWall)

	glass := scene.NewShapeAttributes(geom.NewFractionalColor(0.02, 0.02, 0.02), 0.02, 1.52, true)
	radius := 0.15 * math.Min(w, h)
	lens := scene.NewCircleShape(alloc, geom.NewVec2(w/2, h/2), radius, glass)

	light := scene.Light{ID: alloc.Next(), Pos: geom.NewVec2(m+(w-2*m)*0.1, h/2), Color: geom.NewLightColor(255, 240, 220)}
	return scene.NewSimulationLayout(0, []scene.Light{light}, walls, []scene.CircleShape{lens}, nil)
}

func buildPrism(alloc *scene.IDAllocator, width, height int) scene.SimulationLayout {
	w, h := float64(width), float64(height)
	m := margin(width, height)
	vMargin := 0.25 * h
	if vMargin < m {
		vMargin = m
	}

	matteWall := scene.NewShapeAttributes(geom.NewFractionalColor(0.2, 0.2, 0.2), 0.5, 1, false)
	walls := rect(alloc, m, vMargin, w-m, h-vMargin, matteWall)

	glass := scene.NewShapeAttributes(geom.NewFractionalColor(0.01, 0.01, 0.01), 0.03, 1.5, true)
	triHalf := 0.4 * (h/2 - vMargin)
	cx, cy := w/2, h/2
	tri := []geom.Vec2{
		{X: cx - triHalf, Y: cy + triHalf},
		{X: cx + triHalf, Y: cy + triHalf},
		{X: cx, Y: cy - triHalf},
	}
	prism, err := scene.NewPolygonShape(alloc, tri, glass)
	if err != nil {
		panic(err) // programmer error: this triangle is fixed and never self-intersecting
	}

	light := scene.Light{ID: alloc.Next(), Pos: geom.NewVec2(m+(w-2*m)*0.1, h/2), Color: geom.NewLightColor(255, 255, 255)}
	return scene.NewSimulationLayout(0, []scene.Light{light}, walls, nil, []scene.PolygonShape{prism})
}

func buildDiffuseScatter(alloc *scene.IDAllocator, width, height int) scene.SimulationLayout {
	w, h := float64(width), float64(height)
	m := margin(width, height)

	roughWall := scene.NewShapeAttributes(geom.NewFractionalColor(0.05, 0.05, 0.05), 0.95, 1, false)
	walls := rect(alloc, m, m, w-m, h-m, roughWall)

	lights := []scene.Light{
		{ID: alloc.Next(), Pos: geom.NewVec2(m+(w-2*m)*0.25, m+(h-2*m)*0.25), Color: geom.NewLightColor(255, 80, 80)},
		{ID: alloc.Next(), Pos: geom.NewVec2(m+(w-2*m)*0.75, m+(h-2*m)*0.75), Color: geom.NewLightColor(80, 120, 255)},
	}

	// A ring of small absorbing pillars to break up the scatter field.
	absorbent := scene.NewShapeAttributes(geom.NewFractionalColor(0.8, 0.8, 0.8), 0.3, 1, false)
	var circles []scene.CircleShape
	const pillars = 6
	ringRadius := 0.3 * math.Min(w, h)
	pillarRadius := 0.05 * math.Min(w, h)
	cx, cy := w/2, h/2
	for i := 0; i < pillars; i++ {
		angle := 2 * math.Pi * float64(i) / pillars
		center := geom.NewVec2(cx+ringRadius*math.Cos(angle), cy+ringRadius*math.Sin(angle))
		circles = append(circles, scene.NewCircleShape(alloc, center, pillarRadius, absorbent))
	}

	return scene.NewSimulationLayout(0, lights, walls, circles, nil)
}
