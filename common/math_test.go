package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestEaseInOutExpoEndpoints(t *testing.T) {
	assert.Equal(t, float32(0), EaseInOutExpo(0))
	assert.Equal(t, float32(1), EaseInOutExpo(1))
	assert.Equal(t, float32(0), EaseInOutExpo(-0.5))
	assert.Equal(t, float32(1), EaseInOutExpo(1.5))
}

func TestEaseInOutExpoContinuousAtMidpoint(t *testing.T) {
	const eps = 1e-4
	left := EaseInOutExpo(0.5 - eps)
	right := EaseInOutExpo(0.5)
	assert.InDelta(t, 0.5, right, 1e-6)
	assert.InDelta(t, right, left, 1e-2)
	assert.InDelta(t, 0.5, EaseInOutExpo(0.5+eps), 1e-2)
}

func TestEaseInOutExpoMonotonic(t *testing.T) {
	prev := EaseInOutExpo(0)
	for i := 1; i <= 100; i++ {
		cur := EaseInOutExpo(float32(i) / 100)
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, float32(0), Clamp01(-3))
	assert.Equal(t, float32(0.25), Clamp01(0.25))
	assert.Equal(t, float32(1), Clamp01(7))
}

func TestLerpVec3(t *testing.T) {
	got := LerpVec3(mgl32.Vec3{0, 0, 4}, mgl32.Vec3{0, 2, 8}, 0.5)
	assert.Equal(t, mgl32.Vec3{0, 1, 6}, got)
}

func TestResolveColor(t *testing.T) {
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, ResolveColor([4]float32{255, 0, 0, 1}))
	assert.Equal(t, mgl32.Vec4{1, 1, 0, 1}, ResolveColor([4]float32{255, 255, 0, 1}))
}

func TestInverseTransposeOfScale(t *testing.T) {
	m := mgl32.Scale3D(2, 4, 8)
	it := InverseTranspose(m)
	assert.InDelta(t, 0.5, it.At(0, 0), 1e-6)
	assert.InDelta(t, 0.25, it.At(1, 1), 1e-6)
	assert.InDelta(t, 0.125, it.At(2, 2), 1e-6)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "fallback", Coalesce("", "fallback"))
	assert.Equal(t, 3, Coalesce(0, 3, 4))
	assert.Equal(t, 0, Coalesce(0, 0))
}
