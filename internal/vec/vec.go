// Package vec holds the float64 vector and quaternion values persisted per
// vessel, plus their comma-separated text form.
package vec

import (
	"math"
)

// Vec3 is a 3D vector in world space.
type Vec3 struct {
	X, Y, Z float64
}

// Quat is a rotation quaternion stored as (X, Y, Z, W).
type Quat struct {
	X, Y, Z, W float64
}

// Zero is the zero vector.
var Zero = Vec3{}

// Identity is the no-rotation quaternion.
var Identity = Quat{W: 1}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// MagSq is the squared length of v.
func (v Vec3) MagSq() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Mag is the length of v.
func (v Vec3) Mag() float64 {
	return math.Sqrt(v.MagSq())
}

// Normalize returns the unit vector along v. The zero vector stays zero.
func (v Vec3) Normalize() Vec3 {
	mag := v.Mag()
	if mag == 0 {
		return Vec3{}
	}
	inv := 1.0 / mag
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// Norm is the quaternion magnitude.
func (q Quat) Norm() float64 {
	return math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normalize returns q scaled to unit length. A zero quaternion becomes Identity.
func (q Quat) Normalize() Quat {
	n := q.Norm()
	if n == 0 {
		return Identity
	}
	inv := 1.0 / n
	return Quat{q.X * inv, q.Y * inv, q.Z * inv, q.W * inv}
}
