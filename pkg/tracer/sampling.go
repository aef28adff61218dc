package tracer

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/kavehsim/lumensim/pkg/geom"
)

// sampler draws the random values a single Trace call needs: a light index,
// a direction on the unit circle, and a diffusion-angle perturbation. It is
// seeded per call, mirroring the renderer's per-tile deterministic seeding
// (id+42, "avoid seed 0") so repeated calls with the same tracerID are
// reproducible for testing.
type sampler struct {
	unit distuv.Uniform
}

// newSampler seeds a fresh sampler for one Trace invocation.
func newSampler(tracerID uint64) *sampler {
	src := rand.NewSource(int64(tracerID + 42))
	return &sampler{
		unit: distuv.Uniform{Min: 0, Max: 1, Src: src},
	}
}

// unitCircleDirection returns a direction uniformly distributed on the unit
// circle, used to give a freshly-minted root ray its initial heading.
func (s *sampler) unitCircleDirection() geom.Vec2 {
	angle := s.unit.Rand() * 2 * math.Pi
	return geom.NewVec2(math.Cos(angle), math.Sin(angle))
}

// lightIndex picks a light uniformly at random from n candidates.
func (s *sampler) lightIndex(n int) int {
	idx := int(s.unit.Rand() * float64(n))
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// diffusionOffset returns a uniform random offset in [-limit, limit], used
// to perturb a reflected ray's direction when its surface is diffusive.
func (s *sampler) diffusionOffset(limit float64) float64 {
	return (s.unit.Rand()*2 - 1) * limit
}
