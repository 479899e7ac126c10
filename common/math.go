package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Clamp01 clamps a value into the closed range [0, 1].
//
// Parameters:
//   - x: the value to clamp
//
// Returns:
//   - float32: x limited to [0, 1]
func Clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// EaseInOutExpo is the exponential ease-in-out curve used by every eased transition in the engine.
// The endpoints are exact: EaseInOutExpo(0) == 0 and EaseInOutExpo(1) == 1. Both halves meet at 0.5.
//
// Reference: https://easings.net/#easeInOutExpo
//
// Parameters:
//   - x: progress in [0, 1]
//
// Returns:
//   - float32: eased progress in [0, 1]
func EaseInOutExpo(x float32) float32 {
	switch {
	case x <= 0:
		return 0
	case x >= 1:
		return 1
	case x < 0.5:
		return math32.Pow(2, 20*x-10) / 2
	default:
		return (2 - math32.Pow(2, -20*x+10)) / 2
	}
}

// Lerp linearly interpolates between a and b.
//
// Parameters:
//   - a: value at t = 0
//   - b: value at t = 1
//   - t: interpolation factor (not clamped)
//
// Returns:
//   - float32: the interpolated value
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// LerpVec3 linearly interpolates each component of two vectors.
//
// Parameters:
//   - a: vector at t = 0
//   - b: vector at t = 1
//   - t: interpolation factor (not clamped)
//
// Returns:
//   - mgl32.Vec3: the interpolated vector
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return mgl32.Vec3{
		Lerp(a[0], b[0], t),
		Lerp(a[1], b[1], t),
		Lerp(a[2], b[2], t),
	}
}

// ResolveColor converts a control colour with 0-255 RGB channels and a 0-1 alpha channel
// into the normalized RGBA vector the shaders expect.
//
// Parameters:
//   - c: colour as [r, g, b, a] with r, g, b in [0, 255] and a in [0, 1]
//
// Returns:
//   - mgl32.Vec4: the colour with every channel in [0, 1]
func ResolveColor(c [4]float32) mgl32.Vec4 {
	return mgl32.Vec4{c[0] / 255, c[1] / 255, c[2] / 255, c[3]}
}

// InverseTranspose returns the inverse of the transpose of m, used to transform normals.
// A singular matrix yields the zero matrix (mgl32 semantics).
//
// Parameters:
//   - m: the model matrix
//
// Returns:
//   - mgl32.Mat4: inverse(transpose(m))
func InverseTranspose(m mgl32.Mat4) mgl32.Mat4 {
	return m.Transpose().Inv()
}
