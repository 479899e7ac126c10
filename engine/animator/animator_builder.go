package animator

import "go.uber.org/zap"

// SpeedAnimatorBuilderOption is a functional option for configuring a SpeedAnimator.
type SpeedAnimatorBuilderOption func(*speedAnimator)

// WithSpeedUpTimer sets how many idle frames pass before a speed-up ramp starts.
func WithSpeedUpTimer(frames int) SpeedAnimatorBuilderOption {
	return func(a *speedAnimator) {
		a.speedUpTimer = max(frames, 0)
	}
}

// WithSpeedUpDuration sets how many frames a speed-up ramp lasts.
func WithSpeedUpDuration(frames int) SpeedAnimatorBuilderOption {
	return func(a *speedAnimator) {
		a.speedUpDuration = max(frames, 0)
	}
}

// WithSpeedDownTimer sets how many idle frames pass before a slow-down ramp starts.
func WithSpeedDownTimer(frames int) SpeedAnimatorBuilderOption {
	return func(a *speedAnimator) {
		a.speedDownTimer = max(frames, 0)
	}
}

// WithSpeedDownDuration sets how many frames a slow-down ramp lasts.
func WithSpeedDownDuration(frames int) SpeedAnimatorBuilderOption {
	return func(a *speedAnimator) {
		a.speedDownDuration = max(frames, 0)
	}
}

// WithInitialSpeed sets the starting speed. The initial direction follows the same rule as Override.
func WithInitialSpeed(speed float32) SpeedAnimatorBuilderOption {
	return func(a *speedAnimator) {
		a.speed = speed
	}
}

// WithLogger sets the logger phase changes are reported to.
//
// Parameters:
//   - logger: the zap logger to use
//
// Returns:
//   - SpeedAnimatorBuilderOption: a function that applies the logger option
func WithLogger(logger *zap.Logger) SpeedAnimatorBuilderOption {
	return func(a *speedAnimator) {
		if logger != nil {
			a.logger = logger
		}
	}
}
