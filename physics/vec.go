// Package physics implements the Verlet particle core: integration,
// distance and minimum-separation constraints, and a target-tracking
// simulation with a fixed-timestep accumulator.
package physics

import "math"

// Vec3 is a 3-component float32 vector. Hot paths stay in float32;
// float64 only appears inside math calls.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product of v and o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// LengthSq returns the squared length of v.
func (v Vec3) LengthSq() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the length of v.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.LengthSq())))
}

// Normalized returns the unit vector of v, or fallback when v is shorter
// than eps. Every normalization in the solver goes through this guard so
// degenerate geometry never produces NaN.
func (v Vec3) Normalized(fallback Vec3, eps float32) Vec3 {
	l := v.Length()
	if l < eps {
		return fallback
	}
	return v.Scale(1 / l)
}

// Lerp returns the linear interpolation from v to o by t.
func (v Vec3) Lerp(o Vec3, t float32) Vec3 {
	return v.Add(o.Sub(v).Scale(t))
}

// Distance returns the distance between two points.
func Distance(a, b Vec3) float32 {
	return b.Sub(a).Length()
}

// clamp01 clamps a float32 value to the [0, 1] range.
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Smoothstep returns the smooth Hermite interpolation of x between edge0
// and edge1. Works with edge0 > edge1 for inverted ramps.
func Smoothstep(edge0, edge1, x float32) float32 {
	t := clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}
