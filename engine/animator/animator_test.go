package animator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tickN(a SpeedAnimator, n int) float32 {
	var s float32
	for range n {
		s = a.Tick()
	}
	return s
}

func TestNewSpeedAnimatorDefaults(t *testing.T) {
	a := NewSpeedAnimator()
	assert.Equal(t, float32(0), a.Speed())
	assert.True(t, a.SpeedingUp())
	assert.Equal(t, PhaseIdle, a.Phase())
}

func TestIdleHoldsSpeedUntilTimerExpires(t *testing.T) {
	a := NewSpeedAnimator(WithSpeedUpTimer(5), WithSpeedUpDuration(10))
	for i := 1; i <= 5; i++ {
		assert.Equal(t, float32(0), a.Tick())
		assert.Equal(t, PhaseIdle, a.Phase())
		assert.Equal(t, i, a.IdleFrames())
	}
	a.Tick()
	assert.Equal(t, PhaseRamping, a.Phase())
	assert.Equal(t, 1, a.RampFrames())
}

func TestFullCycleWithDefaults(t *testing.T) {
	a := NewSpeedAnimator()

	s := tickN(a, DefaultSpeedUpTimer+DefaultSpeedUpDuration)
	assert.Equal(t, float32(1), s)
	assert.False(t, a.SpeedingUp())
	assert.Equal(t, PhaseIdle, a.Phase())

	s = tickN(a, DefaultSpeedDownTimer+DefaultSpeedDownDuration)
	assert.Equal(t, float32(0), s)
	assert.True(t, a.SpeedingUp())
	assert.Equal(t, PhaseIdle, a.Phase())
}

func TestRampIsMonotonic(t *testing.T) {
	a := NewSpeedAnimator(WithSpeedUpTimer(0), WithSpeedUpDuration(50), WithSpeedDownTimer(0), WithSpeedDownDuration(20))

	prev := a.Speed()
	for range 50 {
		s := a.Tick()
		assert.GreaterOrEqual(t, s, prev)
		prev = s
	}
	require.Equal(t, float32(1), prev)

	for range 20 {
		s := a.Tick()
		assert.LessOrEqual(t, s, prev)
		prev = s
	}
	assert.Equal(t, float32(0), prev)
}

func TestSlowDownIsFasterThanSpeedUp(t *testing.T) {
	a := NewSpeedAnimator(WithSpeedUpTimer(0), WithSpeedDownTimer(0))
	up := 0
	for a.SpeedingUp() {
		a.Tick()
		up++
	}
	down := 0
	for !a.SpeedingUp() {
		a.Tick()
		down++
	}
	assert.Greater(t, up, down)
}

func TestDirectionFlipsOnlyAtRampCompletion(t *testing.T) {
	a := NewSpeedAnimator(WithSpeedUpTimer(2), WithSpeedUpDuration(6))
	for range 7 {
		a.Tick()
		assert.True(t, a.SpeedingUp())
	}
	a.Tick()
	assert.False(t, a.SpeedingUp())
}

func TestOverrideResetsMidRamp(t *testing.T) {
	a := NewSpeedAnimator(WithSpeedUpTimer(2), WithSpeedUpDuration(10))
	tickN(a, 6)
	require.Equal(t, PhaseRamping, a.Phase())

	a.Override(0.8)
	assert.Equal(t, float32(0.8), a.Speed())
	assert.False(t, a.SpeedingUp())
	assert.Equal(t, PhaseIdle, a.Phase())
	assert.Equal(t, 0, a.IdleFrames())
	assert.Equal(t, 0, a.RampFrames())

	assert.Equal(t, float32(0.8), a.Tick())
}

func TestOverrideDirectionThreshold(t *testing.T) {
	a := NewSpeedAnimator()
	a.Override(0.5)
	assert.True(t, a.SpeedingUp())
	a.Override(0.51)
	assert.False(t, a.SpeedingUp())
	a.Override(-1)
	assert.Equal(t, float32(0), a.Speed())
	assert.True(t, a.SpeedingUp())
}

func TestOverrideHoldsSpeedForTimer(t *testing.T) {
	a := NewSpeedAnimator(WithSpeedDownTimer(4), WithSpeedDownDuration(4))
	a.Override(0.9)
	for range 4 {
		assert.Equal(t, float32(0.9), a.Tick())
	}
	assert.Equal(t, float32(0.9), a.Speed())
	a.Tick()
	assert.Equal(t, PhaseRamping, a.Phase())
}

func TestInitialSpeedSetsDirection(t *testing.T) {
	a := NewSpeedAnimator(WithInitialSpeed(1))
	assert.Equal(t, float32(1), a.Speed())
	assert.False(t, a.SpeedingUp())
}

func TestZeroDurationCompletesImmediately(t *testing.T) {
	a := NewSpeedAnimator(WithSpeedUpTimer(0), WithSpeedUpDuration(0))
	assert.Equal(t, float32(1), a.Tick())
	assert.False(t, a.SpeedingUp())
}
