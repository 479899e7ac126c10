// Package animator drives the autonomous speed oscillation of the fireball: after a quiet
// period without manual input the speed eases up to full, holds, then eases back down.
package animator

import (
	"github.com/Carmen-Shannon/oxy-fireball/common"
	"go.uber.org/zap"
)

// Phase is the state the speed animator is in.
type Phase int

const (
	// PhaseIdle waits for the timer of the current direction to expire.
	PhaseIdle Phase = iota

	// PhaseRamping eases the speed toward the target of the current direction.
	PhaseRamping
)

// String returns the lower-case phase name used in logs.
func (p Phase) String() string {
	if p == PhaseRamping {
		return "ramping"
	}
	return "idle"
}

// Default timings, in frames.
const (
	DefaultSpeedUpTimer      = 300
	DefaultSpeedUpDuration   = 600
	DefaultSpeedDownTimer    = 300
	DefaultSpeedDownDuration = 120
)

// speedAnimator is the implementation of the SpeedAnimator interface.
type speedAnimator struct {
	logger *zap.Logger

	speedUpTimer      int
	speedUpDuration   int
	speedDownTimer    int
	speedDownDuration int

	speed      float32
	speedingUp bool
	phase      Phase
	idle       int
	ramp       int
}

// SpeedAnimator is the speed state machine. It is either idle, counting frames since the
// last manual change, or ramping, counting frames since the ramp started. The direction only
// flips when a ramp completes or on Override.
type SpeedAnimator interface {
	// Tick advances the state machine by one frame.
	//
	// Returns:
	//   - float32: the speed after this frame
	Tick() float32

	// Override records a manual speed change: both timers reset, the phase returns to idle and
	// the next ramp speeds up if speed is at most 0.5, otherwise slows down.
	//
	// Parameters:
	//   - speed: the manually chosen speed
	Override(speed float32)

	// Speed returns the current speed in [0, 1].
	Speed() float32

	// SpeedingUp reports the direction of the next (or current) ramp.
	SpeedingUp() bool

	// Phase returns the current state.
	Phase() Phase

	// IdleFrames returns the frames counted since the last manual change or completed ramp.
	IdleFrames() int

	// RampFrames returns the frames counted since the current ramp started.
	RampFrames() int
}

var _ SpeedAnimator = &speedAnimator{}

// NewSpeedAnimator creates an idle animator at speed 0 that will speed up first.
//
// Parameters:
//   - options: SpeedAnimatorBuilderOption functions to configure the animator
//
// Returns:
//   - SpeedAnimator: the animator
func NewSpeedAnimator(options ...SpeedAnimatorBuilderOption) SpeedAnimator {
	a := &speedAnimator{
		logger:            zap.NewNop(),
		speedUpTimer:      DefaultSpeedUpTimer,
		speedUpDuration:   DefaultSpeedUpDuration,
		speedDownTimer:    DefaultSpeedDownTimer,
		speedDownDuration: DefaultSpeedDownDuration,
		speedingUp:        true,
	}
	for _, option := range options {
		option(a)
	}
	a.speed = common.Clamp01(a.speed)
	a.speedingUp = a.speed <= 0.5
	return a
}

func (a *speedAnimator) Tick() float32 {
	if a.phase == PhaseIdle {
		a.idle++
		if a.idle <= a.timer() {
			return a.speed
		}
		a.phase = PhaseRamping
		a.ramp = 0
		a.logger.Debug("speed ramp started", zap.Bool("speedingUp", a.speedingUp), zap.Float32("speed", a.speed))
	}

	a.ramp++
	duration := a.duration()
	var p float32 = 1
	if duration > 0 {
		p = common.Clamp01(float32(a.ramp) / float32(duration))
	}
	e := common.EaseInOutExpo(p)
	if a.speedingUp {
		a.speed = e
	} else {
		a.speed = 1 - e
	}

	if e >= 1 {
		a.speedingUp = !a.speedingUp
		a.phase = PhaseIdle
		a.idle = 0
		a.ramp = 0
		a.logger.Debug("speed ramp finished", zap.Bool("speedingUp", a.speedingUp), zap.Float32("speed", a.speed))
	}
	return a.speed
}

func (a *speedAnimator) Override(speed float32) {
	a.speed = common.Clamp01(speed)
	a.speedingUp = a.speed <= 0.5
	a.phase = PhaseIdle
	a.idle = 0
	a.ramp = 0
}

func (a *speedAnimator) Speed() float32 {
	return a.speed
}

func (a *speedAnimator) SpeedingUp() bool {
	return a.speedingUp
}

func (a *speedAnimator) Phase() Phase {
	return a.phase
}

func (a *speedAnimator) IdleFrames() int {
	return a.idle
}

func (a *speedAnimator) RampFrames() int {
	return a.ramp
}

func (a *speedAnimator) timer() int {
	if a.speedingUp {
		return a.speedUpTimer
	}
	return a.speedDownTimer
}

func (a *speedAnimator) duration() int {
	if a.speedingUp {
		return a.speedUpDuration
	}
	return a.speedDownDuration
}
