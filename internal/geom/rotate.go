package geom

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

const Tau = 2 * math.Pi

// WrapAngle maps a into [0, 2π).
func WrapAngle(a float64) float64 {
	m := math.Mod(a, Tau)
	if m < 0 {
		m += Tau
	}
	if m >= Tau {
		m = 0
	}
	return m
}

// Rotate2 rotates p counterclockwise about pivot around the +Z axis.
func Rotate2(p, pivot Vec3, angle float64) Vec3 {
	s, c := math.Sincos(WrapAngle(angle))
	d := p.Sub(pivot)
	return Vec3{
		X: pivot.X + d.X*c - d.Y*s,
		Y: pivot.Y + d.X*s + d.Y*c,
		Z: p.Z,
	}
}

// AxisAngle is the unit quaternion rotating by angle about axis.
// A zero axis yields the identity.
func AxisAngle(axis Vec3, angle float64) quat.Number {
	n := axis.Len()
	if n == 0 {
		return quat.Number{Real: 1}
	}
	s, c := math.Sincos(WrapAngle(angle) / 2)
	s /= n
	return quat.Number{Real: c, Imag: axis.X * s, Jmag: axis.Y * s, Kmag: axis.Z * s}
}

// Then composes rotations: q first, then r.
func Then(q, r quat.Number) quat.Number { return quat.Mul(r, q) }

// Rotate3 applies unit quaternion q to p about pivot.
func Rotate3(p, pivot Vec3, q quat.Number) Vec3 {
	d := p.Sub(pivot)
	r := quat.Mul(quat.Mul(q, quat.Number{Imag: d.X, Jmag: d.Y, Kmag: d.Z}), quat.Conj(q))
	return pivot.Add(Vec3{X: r.Imag, Y: r.Jmag, Z: r.Kmag})
}
