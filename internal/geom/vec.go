// Package geom holds the immutable geometry snapshots produced by bindings
// and the rotation helpers used to derive them from a saved base shape.
package geom

import "math"

type Vec3 struct{ X, Y, Z float64 }

var (
	Origin = Vec3{}
	Right  = Vec3{X: 1}
	Left   = Vec3{X: -1}
	Up     = Vec3{Y: 1}
	Down   = Vec3{Y: -1}
	Out    = Vec3{Z: 1}
	In     = Vec3{Z: -1}
)

func (v Vec3) Add(u Vec3) Vec3 { return Vec3{v.X + u.X, v.Y + u.Y, v.Z + u.Z} }

func (v Vec3) Sub(u Vec3) Vec3 { return Vec3{v.X - u.X, v.Y - u.Y, v.Z - u.Z} }

func (v Vec3) Scale(t float64) Vec3 { return Vec3{v.X * t, v.Y * t, v.Z * t} }

func (v Vec3) Dot(u Vec3) float64 { return v.X*u.X + v.Y*u.Y + v.Z*u.Z }

func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		v.Y*u.Z - v.Z*u.Y,
		v.Z*u.X - v.X*u.Z,
		v.X*u.Y - v.Y*u.X,
	}
}

func (v Vec3) Len() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns the unit vector; the zero vector stays zero.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Dist is the euclidean distance between v and u.
func (v Vec3) Dist(u Vec3) float64 { return v.Sub(u).Len() }
