// Package geom provides the 2D vector, color, and buffer primitives shared
// by the scene model, intersection library, tracer, and grid.
package geom

import "math"

// Vec2 represents a 2D point or direction.
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2.
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Subtract returns the difference of two vectors.
func (v Vec2) Subtract(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Multiply returns the vector scaled by a scalar.
func (v Vec2) Multiply(scalar float64) Vec2 {
	return Vec2{v.X * scalar, v.Y * scalar}
}

// Length returns the magnitude of the vector.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared returns the squared magnitude of the vector, avoiding a sqrt.
func (v Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Dot returns the dot product of two vectors.
func (v Vec2) Dot(other Vec2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Cross returns the scalar (z-component) cross product of two 2D vectors.
func (v Vec2) Cross(other Vec2) float64 {
	return v.X*other.Y - v.Y*other.X
}

// Normalize returns a unit vector in the same direction. The zero vector
// normalizes to itself; callers that require magnitude > 0 (every LightRay
// direction, per the containment invariant) must check before calling.
func (v Vec2) Normalize() Vec2 {
	length := v.Length()
	if length == 0 {
		return Vec2{0, 0}
	}
	return Vec2{v.X / length, v.Y / length}
}

// Negate returns the reverse of the vector.
func (v Vec2) Negate() Vec2 {
	return Vec2{-v.X, -v.Y}
}

// Reverse is an alias for Negate matching the "direction reversal law"
// terminology used in the tracer's invariants (reverse(reverse(v)) == v).
func (v Vec2) Reverse() Vec2 {
	return v.Negate()
}

// DistanceSquared returns the squared distance between two points, avoiding
// sqrt until strictly needed (used for closest-hit comparisons).
func (v Vec2) DistanceSquared(other Vec2) float64 {
	return v.Subtract(other).LengthSquared()
}

// Rotate returns v rotated counter-clockwise by angle radians.
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Angle returns the unsigned angle in [0, pi] between two vectors.
func Angle(a, b Vec2) float64 {
	al, bl := a.Length(), b.Length()
	if al == 0 || bl == 0 {
		return 0
	}
	cosTheta := a.Dot(b) / (al * bl)
	// Clamp for float error before acos, which is undefined outside [-1, 1].
	cosTheta = math.Max(-1, math.Min(1, cosTheta))
	return math.Acos(cosTheta)
}

// Advance returns a point moved distance along direction from origin.
// direction need not be normalized; distance is applied along its unit form.
func Advance(origin, direction Vec2, distance float64) Vec2 {
	return origin.Add(direction.Normalize().Multiply(distance))
}

// Ray2 is a 2D ray with an origin and direction.
type Ray2 struct {
	Origin    Vec2
	Direction Vec2
}

// NewRay2 creates a new 2D ray.
func NewRay2(origin, direction Vec2) Ray2 {
	return Ray2{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray.
func (r Ray2) At(t float64) Vec2 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// SafeDivide returns num/den, or a large finite sentinel when den is zero or
// the result would be non-finite. This is the local-recovery mechanism for
// slope computations described for numerical degeneracy handling: division
// by zero never propagates as NaN/Inf into downstream geometry.
func SafeDivide(num, den float64) float64 {
	if den == 0 {
		if num >= 0 {
			return math.MaxFloat64
		}
		return -math.MaxFloat64
	}
	result := num / den
	if math.IsNaN(result) || math.IsInf(result, 0) {
		if num >= 0 {
			return math.MaxFloat64
		}
		return -math.MaxFloat64
	}
	return result
}

// ClampSqrt returns sqrt(x), clamping negative radicands to 0 rather than
// producing NaN. Used by the Fresnel equations under total internal
// reflection, where the radicand can legitimately go negative.
func ClampSqrt(x float64) float64 {
	if x < 0 {
		return 0
	}
	return math.Sqrt(x)
}
