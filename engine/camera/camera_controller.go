package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController defines the union interface for camera control systems.
// Controllers own the eye/center/up state the view matrix is built from. Orbit and zoom
// input accumulate into damped velocities that are settled one step per Tick; pans apply
// immediately. Embeds both orbitCameraController and planarCameraController.
type CameraController interface {
	orbitCameraController
	planarCameraController

	// Eye returns the controller's world-space eye position.
	//
	// Returns:
	//   - mgl32.Vec3: the eye position
	Eye() mgl32.Vec3

	// Center returns the look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: the orbit center
	Center() mgl32.Vec3

	// Up returns the camera's up vector, consistent with the LookAt basis.
	//
	// Returns:
	//   - mgl32.Vec3: the normalized up vector
	Up() mgl32.Vec3

	// Tick advances damped orbit and zoom motion by one frame.
	Tick()
}

// orbitCameraController defines the spherical-coordinate controls around the center.
type orbitCameraController interface {
	// Rotate adds orbit velocity. Deltas are scaled by MouseSensitivity.
	//
	// Parameters:
	//   - dAzimuth: horizontal input, positive orbits right
	//   - dElevation: vertical input, positive orbits up
	Rotate(dAzimuth, dElevation float32)

	// Zoom adds zoom velocity. Positive delta zooms in (closer to center).
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float32)

	// Radius returns the current distance from the center.
	Radius() float32

	// SetRadius sets the distance from the center, clamped to the radius bounds.
	SetRadius(radius float32)

	// Azimuth returns the horizontal angle around the Y axis in radians.
	Azimuth() float32

	// Elevation returns the vertical angle from the horizontal plane in radians.
	Elevation() float32

	// MouseSensitivity returns the scale applied to Rotate input.
	MouseSensitivity() float32

	// ZoomSpeed returns the scale applied to Zoom input.
	ZoomSpeed() float32
}

// planarCameraController defines translations that move eye and center together.
type planarCameraController interface {
	// Pan translates eye and center by a world-space offset.
	//
	// Parameters:
	//   - offset: the world-space translation
	Pan(offset mgl32.Vec3)

	// PanRight translates along the camera's right axis.
	//
	// Parameters:
	//   - delta: distance scaled by PanSpeed
	PanRight(delta float32)

	// PanUp translates along the camera's up axis.
	//
	// Parameters:
	//   - delta: distance scaled by PanSpeed
	PanUp(delta float32)

	// PanForward translates along the view direction.
	//
	// Parameters:
	//   - delta: distance scaled by PanSpeed
	PanForward(delta float32)

	// PanSpeed returns the scale applied to the axis pans.
	PanSpeed() float32
}
