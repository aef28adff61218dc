package scene

import "github.com/kavehsim/lumensim/pkg/geom"

// ShapeAttributes describes the optical properties of a scene primitive's
// surface (and, for translucent shapes, its interior volume).
type ShapeAttributes struct {
	Absorption        geom.FractionalColor
	Diffusion         float64 // 0..1, 0 = perfect mirror
	IndexOfRefraction float64 // >= 1, free space = 1
	Translucent       bool

	id AttributeID
}

// NewShapeAttributes constructs a ShapeAttributes record with a fresh stable
// identity. IndexOfRefraction below 1 or Diffusion outside [0,1] is a
// programmer-contract violation and panics, matching the treatment of
// FractionalColor's own range check.
func NewShapeAttributes(absorption geom.FractionalColor, diffusion, indexOfRefraction float64, translucent bool) ShapeAttributes {
	if diffusion < 0 || diffusion > 1 {
		panic("scene: Diffusion must be in [0,1]")
	}
	if indexOfRefraction < 1 {
		panic("scene: IndexOfRefraction must be >= 1")
	}
	return ShapeAttributes{
		Absorption:        absorption,
		Diffusion:         diffusion,
		IndexOfRefraction: indexOfRefraction,
		Translucent:       translucent,
		id:                NewAttributeID(),
	}
}

// FreeSpace is the default medium a ray travels through when not inside any
// translucent primitive: no absorption, no diffusion, index of refraction 1.
func FreeSpace() ShapeAttributes {
	return NewShapeAttributes(geom.FractionalColor{}, 0, 1, false)
}

// AttrID returns the stable identity of this attribute record, used to
// tell whether a ray's current medium is the same physical surface as a
// primitive under test, independent of whether their optical properties
// happen to compare equal.
func (a ShapeAttributes) AttrID() AttributeID {
	return a.id
}

// SameSurface reports whether two attribute records share a stable
// identity — i.e. they were produced by the same ShapeAttributes
// construction and therefore describe the same physical surface.
func (a ShapeAttributes) SameSurface(other ShapeAttributes) bool {
	return a.id == other.id
}
