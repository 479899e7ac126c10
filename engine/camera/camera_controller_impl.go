package camera

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// velocityEpsilon is the magnitude below which a damped velocity snaps to zero.
const velocityEpsilon = 1e-5

// cameraControllerImpl is the single implementation of CameraController.
// The eye is always center + spherical(radius, azimuth, elevation); pans move the center
// and therefore the eye by the same offset.
type cameraControllerImpl struct {
	mu *sync.Mutex

	eye    mgl32.Vec3
	center mgl32.Vec3

	radius    float32
	azimuth   float32
	elevation float32

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	mouseSensitivity float32
	zoomSpeed        float32
	panSpeed         float32
	damping          float32

	azimuthVel   float32
	elevationVel float32
	zoomVel      float32
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a controller looking from eye at center.
// The spherical coordinates are derived from eye - center.
//
// Parameters:
//   - eye: the initial eye position
//   - center: the orbit center
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(eye, center mgl32.Vec3, options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:     &sync.Mutex{},
		center: center,

		minRadius:    0.5,
		maxRadius:    100.0,
		minElevation: -math32.Pi/2 + 0.01,
		maxElevation: math32.Pi/2 - 0.01,

		mouseSensitivity: 0.005,
		zoomSpeed:        0.25,
		panSpeed:         0.01,
		damping:          0.2,
	}

	offset := eye.Sub(center)
	cc.radius = offset.Len()
	if cc.radius > 0 {
		cc.azimuth = math32.Atan2(offset[0], offset[2])
		cc.elevation = math32.Asin(mgl32.Clamp(offset[1]/cc.radius, -1, 1))
	}

	for _, option := range options {
		option(cc)
	}

	cc.radius = mgl32.Clamp(cc.radius, cc.minRadius, cc.maxRadius)
	cc.elevation = mgl32.Clamp(cc.elevation, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
	return cc
}

// --- internal helpers ---

// updatePosition recomputes the eye from spherical coordinates.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	sinElev, cosElev := math32.Sincos(cc.elevation)
	sinAzim, cosAzim := math32.Sincos(cc.azimuth)

	cc.eye = cc.center.Add(mgl32.Vec3{
		cc.radius * cosElev * sinAzim,
		cc.radius * sinElev,
		cc.radius * cosElev * cosAzim,
	})
}

// localAxes computes right, up and forward consistent with the LookAt matrix.
// If eye and center coincide all axes are zero.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) localAxes() (right, up, forward mgl32.Vec3) {
	backward := cc.eye.Sub(cc.center)
	if backward.Len() < 1e-8 {
		return
	}
	backward = backward.Normalize()

	right = mgl32.Vec3{0, 1, 0}.Cross(backward)
	if right.Len() < 1e-8 {
		return mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{}
	}
	right = right.Normalize()
	up = backward.Cross(right)
	forward = backward.Mul(-1)
	return
}

// damp applies one step of exponential decay.
func (cc *cameraControllerImpl) damp(v float32) float32 {
	v *= 1 - cc.damping
	if math32.Abs(v) < velocityEpsilon {
		return 0
	}
	return v
}

// --- CameraController shared methods ---

func (cc *cameraControllerImpl) Eye() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.eye
}

func (cc *cameraControllerImpl) Center() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.center
}

func (cc *cameraControllerImpl) Up() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	_, up, _ := cc.localAxes()
	if up.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return up
}

func (cc *cameraControllerImpl) Tick() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if cc.azimuthVel == 0 && cc.elevationVel == 0 && cc.zoomVel == 0 {
		return
	}

	cc.azimuth += cc.azimuthVel
	cc.elevation = mgl32.Clamp(cc.elevation+cc.elevationVel, cc.minElevation, cc.maxElevation)
	cc.radius = mgl32.Clamp(cc.radius-cc.zoomVel, cc.minRadius, cc.maxRadius)

	cc.azimuthVel = cc.damp(cc.azimuthVel)
	cc.elevationVel = cc.damp(cc.elevationVel)
	cc.zoomVel = cc.damp(cc.zoomVel)
	cc.updatePosition()
}

// --- orbitCameraController implementation ---

func (cc *cameraControllerImpl) Rotate(dAzimuth, dElevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuthVel += dAzimuth * cc.mouseSensitivity
	cc.elevationVel += dElevation * cc.mouseSensitivity
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.zoomVel += delta * cc.zoomSpeed
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) SetRadius(radius float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = mgl32.Clamp(radius, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) MouseSensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.mouseSensitivity
}

func (cc *cameraControllerImpl) ZoomSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomSpeed
}

// --- planarCameraController implementation ---

func (cc *cameraControllerImpl) Pan(offset mgl32.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.translate(offset)
}

func (cc *cameraControllerImpl) PanRight(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	right, _, _ := cc.localAxes()
	cc.translate(right.Mul(delta * cc.panSpeed))
}

func (cc *cameraControllerImpl) PanUp(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	_, up, _ := cc.localAxes()
	cc.translate(up.Mul(delta * cc.panSpeed))
}

func (cc *cameraControllerImpl) PanForward(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	_, _, forward := cc.localAxes()
	cc.translate(forward.Mul(delta * cc.panSpeed))
}

func (cc *cameraControllerImpl) PanSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.panSpeed
}

// translate moves eye and center together. Caller must hold the mutex.
func (cc *cameraControllerImpl) translate(offset mgl32.Vec3) {
	cc.center = cc.center.Add(offset)
	cc.eye = cc.eye.Add(offset)
}
