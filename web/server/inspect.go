package server

import (
	"encoding/json"
	"net/http"

	"github.com/kavehsim/lumensim/pkg/catalogue"
	"github.com/kavehsim/lumensim/pkg/geom"
	"github.com/kavehsim/lumensim/pkg/intersect"
)

// InspectResult describes the medium a probed point sits in, for the
// editor's point-and-inspect tool.
type InspectResult struct {
	InFreeSpace       bool    `json:"inFreeSpace"`
	Translucent       bool    `json:"translucent"`
	Diffusion         float64 `json:"diffusion,omitempty"`
	IndexOfRefraction float64 `json:"indexOfRefraction,omitempty"`
}

// handleInspect answers "what medium is at (x, y) in this demo layout?" via
// a direct point-in-medium query against the translucent primitives of a
// 2D layout.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	demoID := q.Get("demo")
	if demoID == "" {
		demoID = "empty-room"
	}
	x, err := parseFloatParam(q, "x", 0, -1e9, 1e9)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	y, err := parseFloatParam(q, "y", 0, -1e9, 1e9)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	width, err := parseIntParam(q, "width", 400, 16, 2000)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	height, err := parseIntParam(q, "height", 400, 16, 2000)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	layout, err := catalogue.Build(demoID, 1, width, height)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	attrs, found := intersect.PointInPrimitive(geom.NewVec2(x, y), layout)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if !found {
		json.NewEncoder(w).Encode(InspectResult{InFreeSpace: true})
		return
	}
	json.NewEncoder(w).Encode(InspectResult{
		InFreeSpace:       false,
		Translucent:       attrs.Translucent,
		Diffusion:         attrs.Diffusion,
		IndexOfRefraction: attrs.IndexOfRefraction,
	})
}
