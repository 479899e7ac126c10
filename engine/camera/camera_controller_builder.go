package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithRadiusBounds sets the minimum and maximum distance from the center.
//
// Parameters:
//   - min: minimum radius
//   - max: maximum radius
//
// Returns:
//   - CameraControllerOption: functional option to set the radius bounds
func WithRadiusBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minRadius = min
		cc.maxRadius = max
	}
}

// WithElevationBounds sets the minimum and maximum elevation angles.
//
// Parameters:
//   - min: minimum elevation in radians
//   - max: maximum elevation in radians
//
// Returns:
//   - CameraControllerOption: functional option to set the elevation bounds
func WithElevationBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minElevation = min
		cc.maxElevation = max
	}
}

// WithMouseSensitivity sets the scale applied to Rotate input.
//
// Parameters:
//   - sensitivity: radians of orbit velocity per input unit
//
// Returns:
//   - CameraControllerOption: functional option to set the mouse sensitivity
func WithMouseSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.mouseSensitivity = sensitivity
	}
}

// WithZoomSpeed sets the scale applied to Zoom input.
//
// Parameters:
//   - speed: radius velocity per input unit
//
// Returns:
//   - CameraControllerOption: functional option to set the zoom speed
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = speed
	}
}

// WithPanSpeed sets the scale applied to axis pans.
//
// Parameters:
//   - speed: world units per input unit
//
// Returns:
//   - CameraControllerOption: functional option to set the pan speed
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.panSpeed = speed
	}
}

// WithDamping sets the fraction of orbit and zoom velocity removed each Tick.
// 1 stops motion after a single tick, 0 never settles.
//
// Parameters:
//   - damping: the decay factor in [0, 1]
//
// Returns:
//   - CameraControllerOption: functional option to set the damping
func WithDamping(damping float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.damping = damping
	}
}
