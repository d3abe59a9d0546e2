package game

import "math"

// Vec3 is a world-space vector. Gameplay runs on the X/Y plane; Z only
// carries the draw-order depth layer.
type Vec3 struct {
	X, Y, Z float64
}

// DefaultDirection is used wherever a zero-length vector has to be normalized.
var DefaultDirection = Vec3{X: 1}

// Add returns v + o
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// LengthSquared returns |v|²
func (v Vec3) LengthSquared() float64 {
	return v.Dot(v)
}

// Length returns |v|
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// IsFinite reports whether every component is a finite number
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// NormalizeOr returns the unit vector of v, or fallback when v has zero
// length or is not finite.
func (v Vec3) NormalizeOr(fallback Vec3) Vec3 {
	length := v.Length()
	if length == 0 || !isFinite(length) {
		return fallback
	}
	n := v.Scale(1 / length)
	if !n.IsFinite() {
		return fallback
	}
	return n
}

// Normalize returns the unit vector of v with DefaultDirection as fallback
func (v Vec3) Normalize() Vec3 {
	return v.NormalizeOr(DefaultDirection)
}

// ClampLength scales v down so that |v| <= max
func (v Vec3) ClampLength(max float64) Vec3 {
	lengthSq := v.LengthSquared()
	if lengthSq <= max*max || lengthSq == 0 {
		return v
	}
	return v.Scale(max / math.Sqrt(lengthSq))
}

// ProjectToPlane drops the depth component so 3D storage can be used for
// planar gameplay logic.
func ProjectToPlane(v Vec3) Vec3 {
	return Vec3{X: v.X, Y: v.Y}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// euclidMod is the true modulo: the result has the sign of m, so negative
// offsets wrap to the far edge instead of truncating towards zero.
func euclidMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	// r+m rounds up to m for tiny negative r
	if r >= m {
		r = 0
	}
	return r
}
