package camera

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	position  mgl32.Vec3
	target    mgl32.Vec3
	direction mgl32.Vec3
	up        mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4

	controller CameraController
}

// Camera defines the interface for the camera rig.
// The camera holds a logical position and target plus perspective settings. The view
// matrix is always built from the attached CameraController's eye/center/up; the logical
// position only ever reaches the controller as a relative pan.
type Camera interface {
	// Position returns the logical camera position.
	//
	// Returns:
	//   - mgl32.Vec3: the last position given to NewCamera or SetPosition
	Position() mgl32.Vec3

	// Target returns the logical look-at point, position + direction after Update.
	//
	// Returns:
	//   - mgl32.Vec3: the target
	Target() mgl32.Vec3

	// Direction returns the vector from the initial position to the initial target.
	//
	// Returns:
	//   - mgl32.Vec3: the view direction (not normalized)
	Direction() mgl32.Vec3

	// Up returns the camera's up vector as reported by the controller at the last Update.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ViewMatrix returns the view matrix built at the last Update.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the projection matrix built at the last UpdateProjectionMatrix.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view.
	//
	// Returns:
	//   - mgl32.Mat4: the combined view-projection matrix
	ViewProjectionMatrix() mgl32.Mat4

	// Controller returns the attached CameraController.
	//
	// Returns:
	//   - CameraController: the controller
	Controller() CameraController

	// SetAspectRatio stores the aspect ratio. The projection is not recomputed until
	// UpdateProjectionMatrix is called.
	//
	// Parameters:
	//   - aspect: width / height
	SetAspectRatio(aspect float32)

	// UpdateProjectionMatrix recomputes the perspective projection from fov, aspect, near and far.
	UpdateProjectionMatrix()

	// SetPosition moves the logical position and pans the controller by the difference.
	// Setting the same position twice pans by zero.
	//
	// Parameters:
	//   - position: the new logical position
	SetPosition(position mgl32.Vec3)

	// Update ticks the controller and rebuilds the view matrix from the controller's eye
	// displaced by -jitter. The jitter is never stored, so it does not accumulate.
	//
	// Parameters:
	//   - jitter: the per-frame shake offset
	Update(jitter mgl32.Vec3)
}

// Compile-time interface compliance check
var _ Camera = &cameraImpl{}

// NewCamera creates a camera at position looking at target. Unless a controller is supplied
// via WithController, an orbit CameraController with eye = position and center = target is
// created. The projection is computed once at construction.
//
// Parameters:
//   - position: the initial logical position
//   - target: the initial look-at point
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(position, target mgl32.Vec3, options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:         &sync.Mutex{},
		position:   position,
		target:     target,
		direction:  target.Sub(position),
		up:         mgl32.Vec3{0, 1, 0},
		fov:        mgl32.DegToRad(45),
		aspect:     1,
		near:       0.1,
		far:        1000,
		viewMatrix: mgl32.Ident4(),
	}
	for _, option := range options {
		option(c)
	}
	if c.controller == nil {
		c.controller = NewCameraController(position, target)
	}
	c.updateProjection()
	c.viewMatrix = mgl32.LookAtV(c.controller.Eye(), c.controller.Center(), c.controller.Up())
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) Direction() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.direction
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) SetAspectRatio(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
}

func (c *cameraImpl) UpdateProjectionMatrix() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateProjection()
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}

func (c *cameraImpl) SetPosition(position mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	offset := position.Sub(c.position)
	c.controller.Pan(offset)
	c.position = position
}

func (c *cameraImpl) Update(jitter mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.controller.Tick()
	c.target = c.position.Add(c.direction)

	eye := c.controller.Eye().Sub(jitter)
	c.up = c.controller.Up()
	c.viewMatrix = mgl32.LookAtV(eye, c.controller.Center(), c.up)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}

// updateProjection recomputes the perspective matrix. Caller must hold the mutex.
func (c *cameraImpl) updateProjection() {
	c.projectionMatrix = mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
}
