// Package mathx holds small vector helpers on top of mgl64 shared by the
// simulation phases.
package mathx

import "github.com/go-gl/mathgl/mgl64"

// epsilon below which a vector is treated as zero length.
const epsilon = 1e-9

// Up is the world vertical axis.
var Up = mgl64.Vec3{0, 1, 0}

// Normalize returns v scaled to unit length. Zero-length input returns the
// zero vector and false; mgl64's Normalize would produce NaNs.
func Normalize(v mgl64.Vec3) (mgl64.Vec3, bool) {
	l := v.Len()
	if l < epsilon {
		return mgl64.Vec3{}, false
	}
	return v.Mul(1 / l), true
}

// Flatten projects v onto the horizontal plane and normalizes it.
func Flatten(v mgl64.Vec3) (mgl64.Vec3, bool) {
	return Normalize(mgl64.Vec3{v.X(), 0, v.Z()})
}

// Lerp moves a toward b by t, with t clamped into [0, 1].
func Lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	if t >= 1 {
		return b
	}
	t = mgl64.Clamp(t, 0, 1)
	return a.Add(b.Sub(a).Mul(t))
}

// Distance returns |a - b|.
func Distance(a, b mgl64.Vec3) float64 {
	return a.Sub(b).Len()
}

// SegmentDistance returns the closest distance between point p and the
// segment a→b. A degenerate segment degrades to a point distance.
func SegmentDistance(a, b, p mgl64.Vec3) float64 {
	ab := b.Sub(a)
	den := ab.LenSqr()
	if den < epsilon {
		return Distance(a, p)
	}
	t := mgl64.Clamp(p.Sub(a).Dot(ab)/den, 0, 1)
	return Distance(a.Add(ab.Mul(t)), p)
}

// ClampHorizontal clamps x and z into [-half, half].
func ClampHorizontal(v mgl64.Vec3, half float64) mgl64.Vec3 {
	return mgl64.Vec3{
		mgl64.Clamp(v.X(), -half, half),
		v.Y(),
		mgl64.Clamp(v.Z(), -half, half),
	}
}
