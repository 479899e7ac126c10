package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingController wraps a real controller and records every pan offset and tick.
type recordingController struct {
	CameraController
	pans  []mgl32.Vec3
	ticks int
}

func (r *recordingController) Pan(offset mgl32.Vec3) {
	r.pans = append(r.pans, offset)
	r.CameraController.Pan(offset)
}

func (r *recordingController) Tick() {
	r.ticks++
	r.CameraController.Tick()
}

func newRecordingCamera(position, target mgl32.Vec3) (Camera, *recordingController) {
	rc := &recordingController{CameraController: NewCameraController(position, target)}
	return NewCamera(position, target, WithController(rc)), rc
}

func vecNear(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], 1e-4, "component %d of %v vs %v", i, want, got)
	}
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})

	assert.Equal(t, mgl32.Vec3{0, 0, 5}, c.Position())
	assert.Equal(t, mgl32.Vec3{}, c.Target())
	assert.Equal(t, mgl32.Vec3{0, 0, -5}, c.Direction())
	assert.InDelta(t, mgl32.DegToRad(45), c.Fov(), 1e-6)
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(1000), c.Far())
	require.NotNil(t, c.Controller())
	vecNear(t, mgl32.Vec3{0, 0, 5}, c.Controller().Eye())
}

func TestSetPositionPansByOffset(t *testing.T) {
	c, rc := newRecordingCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})

	c.SetPosition(mgl32.Vec3{0, 0, 4})
	c.SetPosition(mgl32.Vec3{0, 0, 4})

	require.Len(t, rc.pans, 2)
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, rc.pans[0])
	assert.Equal(t, mgl32.Vec3{}, rc.pans[1])
	assert.Equal(t, mgl32.Vec3{0, 0, 4}, c.Position())
	vecNear(t, mgl32.Vec3{0, 0, 4}, rc.Eye())
	vecNear(t, mgl32.Vec3{0, 0, -1}, rc.Center())
}

func TestUpdateDoesNotAccumulateJitter(t *testing.T) {
	c, rc := newRecordingCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	eye := rc.Eye()

	for range 10 {
		c.Update(mgl32.Vec3{0.1, -0.2, 0.3})
	}

	assert.Equal(t, mgl32.Vec3{0, 0, 5}, c.Position())
	vecNear(t, eye, rc.Eye())
	assert.Equal(t, 10, rc.ticks)
}

func TestUpdateBuildsViewFromJitteredEye(t *testing.T) {
	c, rc := newRecordingCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	jitter := mgl32.Vec3{0.05, 0.1, -0.02}

	c.Update(jitter)

	want := mgl32.LookAtV(rc.Eye().Sub(jitter), rc.Center(), rc.Up())
	assert.True(t, want.ApproxEqualThreshold(c.ViewMatrix(), 1e-5))
	assert.True(t, c.ProjectionMatrix().Mul4(want).ApproxEqualThreshold(c.ViewProjectionMatrix(), 1e-4))
}

func TestUpdateKeepsTargetAheadOfPosition(t *testing.T) {
	c := NewCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	c.SetPosition(mgl32.Vec3{0, 0, 6})
	c.Update(mgl32.Vec3{})

	assert.Equal(t, mgl32.Vec3{0, 0, 1}, c.Target())
}

func TestAspectRatioAppliesOnlyOnUpdateProjection(t *testing.T) {
	c := NewCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	before := c.ProjectionMatrix()

	c.SetAspectRatio(16.0 / 9.0)
	assert.Equal(t, before, c.ProjectionMatrix())

	c.UpdateProjectionMatrix()
	want := mgl32.Perspective(mgl32.DegToRad(45), 16.0/9.0, 0.1, 1000)
	assert.True(t, want.ApproxEqual(c.ProjectionMatrix()))
	assert.Equal(t, float32(16.0/9.0), c.Aspect())
}

func TestCameraBuilderOptions(t *testing.T) {
	c := NewCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{},
		WithFov(1), WithAspect(2), WithNear(0.5), WithFar(50))

	want := mgl32.Perspective(1, 2, 0.5, 50)
	assert.True(t, want.ApproxEqual(c.ProjectionMatrix()))
}

func TestControllerPanMovesEyeAndCenter(t *testing.T) {
	cc := NewCameraController(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	cc.Pan(mgl32.Vec3{1, 2, 3})

	vecNear(t, mgl32.Vec3{1, 2, 8}, cc.Eye())
	vecNear(t, mgl32.Vec3{1, 2, 3}, cc.Center())
	assert.InDelta(t, 5, cc.Radius(), 1e-5)
}

func TestControllerRotateSettlesWithDamping(t *testing.T) {
	cc := NewCameraController(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, WithDamping(0.5))
	cc.Rotate(100, 0)

	cc.Tick()
	first := cc.Azimuth()
	assert.Greater(t, first, float32(0))

	for range 200 {
		cc.Tick()
	}
	settled := cc.Azimuth()
	cc.Tick()
	assert.Equal(t, settled, cc.Azimuth())
	assert.InDelta(t, 5, cc.Eye().Sub(cc.Center()).Len(), 1e-4)
}

func TestControllerTickWithoutInputIsStable(t *testing.T) {
	cc := NewCameraController(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 1, 0})
	eye := cc.Eye()
	cc.Tick()
	assert.Equal(t, eye, cc.Eye())
}

func TestControllerZoomClampsRadius(t *testing.T) {
	cc := NewCameraController(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, WithRadiusBounds(2, 10), WithDamping(1))
	cc.Zoom(1000)
	cc.Tick()
	assert.Equal(t, float32(2), cc.Radius())

	cc.Zoom(-1000)
	cc.Tick()
	assert.Equal(t, float32(10), cc.Radius())
}

func TestControllerUpIsOrthogonalToView(t *testing.T) {
	cc := NewCameraController(mgl32.Vec3{3, 4, 5}, mgl32.Vec3{})
	view := cc.Center().Sub(cc.Eye()).Normalize()
	assert.InDelta(t, 0, cc.Up().Dot(view), 1e-5)
	assert.InDelta(t, 1, cc.Up().Len(), 1e-5)
}

func TestControllerAxisPans(t *testing.T) {
	cc := NewCameraController(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, WithPanSpeed(1))

	cc.PanRight(2)
	vecNear(t, mgl32.Vec3{2, 0, 0}, cc.Center())

	cc.PanUp(1)
	vecNear(t, mgl32.Vec3{2, 1, 0}, cc.Center())

	cc.PanForward(1)
	vecNear(t, mgl32.Vec3{2, 1, -1}, cc.Center())
	vecNear(t, mgl32.Vec3{2, 1, 4}, cc.Eye())
}
