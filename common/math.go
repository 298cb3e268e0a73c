package common

import (
	"cmp"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Pi is math.Pi narrowed to float32.
const Pi = float32(math32.Pi)

// DegToRad converts an angle in degrees to radians.
//
// Parameters:
//   - degrees: angle in degrees
//
// Returns:
//   - float32: angle in radians
func DegToRad(degrees float32) float32 {
	return degrees * (Pi / 180.0)
}

// Clamp limits x to the closed range [lo, hi].
//
// Parameters:
//   - x: value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - T: x limited to [lo, hi]
func Clamp[T cmp.Ordered](x, lo, hi T) T {
	return min(max(x, lo), hi)
}

// Lerp linearly interpolates between a and b.
//
// Parameters:
//   - a: value at t = 0
//   - b: value at t = 1
//   - t: interpolation parameter
//
// Returns:
//   - float32: a + (b - a) * t
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// LerpVec3 linearly interpolates each component of a and b.
//
// Parameters:
//   - a: value at t = 0
//   - b: value at t = 1
//   - t: interpolation parameter
//
// Returns:
//   - mgl32.Vec3: a + (b - a) * t
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// WrapAngle maps an angle in radians into the half-open range [-Pi, Pi).
// The result is the signed shortest rotation equivalent to the input.
//
// Parameters:
//   - angle: angle in radians, any magnitude
//
// Returns:
//   - float32: equivalent angle in [-Pi, Pi)
func WrapAngle(angle float32) float32 {
	wrapped := math32.Mod(angle+Pi, 2*Pi)
	if wrapped < 0 {
		wrapped += 2 * Pi
	}
	return wrapped - Pi
}

// SafeNormalize returns v scaled to unit length, or v unchanged when its length is zero.
//
// Parameters:
//   - v: the vector to normalize
//
// Returns:
//   - mgl32.Vec3: the unit vector, or v when degenerate
func SafeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}
