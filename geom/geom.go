// Package geom provides the minimal 3D math needed by the portal converter:
// vectors, a basis+origin transform, half-space planes and axis-aligned
// bounding boxes. Every type is a small value struct and every method has a
// value receiver that returns a new value, leaving the receiver unchanged,
// so calls can be chained without allocating.
package geom

import "math"

// Epsilon is the tolerance used by Aeq for float comparisons.
const Epsilon = 1e-8

// Aeq (~=) reports whether a and b are close enough to be considered equal.
func Aeq(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < Epsilon
}

// V3 is a 3 element vector, also used as a point.
type V3 struct {
	X, Y, Z float64
}

// Vec3 is a convenience constructor for V3.
func Vec3(x, y, z float64) V3 { return V3{x, y, z} }

// Add returns v+a.
func (v V3) Add(a V3) V3 { return V3{v.X + a.X, v.Y + a.Y, v.Z + a.Z} }

// Sub returns v-a.
func (v V3) Sub(a V3) V3 { return V3{v.X - a.X, v.Y - a.Y, v.Z - a.Z} }

// Scale returns v*s.
func (v V3) Scale(s float64) V3 { return V3{v.X * s, v.Y * s, v.Z * s} }

// Neg returns -v.
func (v V3) Neg() V3 { return V3{-v.X, -v.Y, -v.Z} }

// Dot returns the dot product of v and a.
func (v V3) Dot(a V3) float64 { return v.X*a.X + v.Y*a.Y + v.Z*a.Z }

// Cross returns the cross product v x a.
func (v V3) Cross(a V3) V3 {
	return V3{
		v.Y*a.Z - v.Z*a.Y,
		v.Z*a.X - v.X*a.Z,
		v.X*a.Y - v.Y*a.X,
	}
}

// Len returns the length of v.
func (v V3) Len() float64 { return math.Sqrt(v.Dot(v)) }

// Unit returns v normalized to length 1. The zero vector is returned unchanged.
func (v V3) Unit() V3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	inv := 1 / l
	return V3{v.X * inv, v.Y * inv, v.Z * inv}
}

// Eq reports exact equality of all components.
func (v V3) Eq(a V3) bool { return v.X == a.X && v.Y == a.Y && v.Z == a.Z }

// Aeq reports whether v and a are almost equal component-wise.
func (v V3) Aeq(a V3) bool { return Aeq(v.X, a.X) && Aeq(v.Y, a.Y) && Aeq(v.Z, a.Z) }

// Min returns the component-wise minimum of v and a.
func (v V3) Min(a V3) V3 { return V3{math.Min(v.X, a.X), math.Min(v.Y, a.Y), math.Min(v.Z, a.Z)} }

// Max returns the component-wise maximum of v and a.
func (v V3) Max(a V3) V3 { return V3{math.Max(v.X, a.X), math.Max(v.Y, a.Y), math.Max(v.Z, a.Z)} }

// Lerp returns the linear interpolation between v and a at fraction t.
func (v V3) Lerp(a V3, t float64) V3 {
	return V3{
		v.X + (a.X-v.X)*t,
		v.Y + (a.Y-v.Y)*t,
		v.Z + (a.Z-v.Z)*t,
	}
}
