package tracer

import (
	"math"

	"github.com/kavehsim/lumensim/pkg/geom"
)

// fresnelReflectance computes the unpolarized Fresnel reflectance for a ray
// crossing from a medium of index nFrom into one of index nTo, using the
// exact s- and p-polarization forms rather than Schlick's approximation:
//
//	Rs = ((n1 cosθi − n2 cosθt) / (n1 cosθi + n2 cosθt))²
//	Rp = ((n1 cosθt − n2 cosθi) / (n1 cosθt + n2 cosθi))²
//	R  = (Rs + Rp) / 2
//
// cosThetaT is derived from Snell's law; when the radicand it depends on
// goes negative (total internal reflection), it is clamped to 0 by
// geom.ClampSqrt and the result saturates toward 1. The final value is
// clamped to [0,1] to absorb any residual floating-point overshoot.
func fresnelReflectance(cosThetaI, nFrom, nTo float64) float64 {
	sinThetaI := geom.ClampSqrt(1 - cosThetaI*cosThetaI)
	sinThetaT := geom.SafeDivide(nFrom*sinThetaI, nTo)

	cosThetaT := geom.ClampSqrt(1 - sinThetaT*sinThetaT)

	rs := geom.SafeDivide(nFrom*cosThetaI-nTo*cosThetaT, nFrom*cosThetaI+nTo*cosThetaT)
	rp := geom.SafeDivide(nFrom*cosThetaT-nTo*cosThetaI, nFrom*cosThetaT+nTo*cosThetaI)

	r := (rs*rs + rp*rp) / 2
	return math.Min(1, math.Max(0, r))
}

// reflectVector reflects v off a surface with unit normal n:
// r = v - 2*dot(v,n)*n. Grounded on the same identity the original
// dielectric material used for its specular bounce.
func reflectVector(v, n geom.Vec2) geom.Vec2 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// refractedAngle applies Snell's law and returns the transmitted angle from
// the refraction normal, clamped to a right angle at total internal
// reflection rather than propagating a NaN out of asin.
func refractedAngle(incomingAngle, nFrom, nTo float64) float64 {
	sinRefracted := geom.SafeDivide(math.Sin(incomingAngle)*nFrom, nTo)
	if sinRefracted > 1 {
		return math.Pi / 2
	}
	if sinRefracted < -1 {
		return -math.Pi / 2
	}
	return math.Asin(sinRefracted)
}
