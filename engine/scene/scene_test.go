package scene

import (
	"errors"
	"testing"
	"testing/fstest"

	"cogentcore.org/core/base/randx"
	"github.com/Carmen-Shannon/oxy-fireball/common"
	"github.com/Carmen-Shannon/oxy-fireball/engine/animator"
	"github.com/Carmen-Shannon/oxy-fireball/engine/camera"
	"github.com/Carmen-Shannon/oxy-fireball/engine/model"
	"github.com/Carmen-Shannon/oxy-fireball/engine/params"
	"github.com/Carmen-Shannon/oxy-fireball/engine/renderer"
	"github.com/Carmen-Shannon/oxy-fireball/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-fireball/engine/renderer/backend/backendtest"
	"github.com/Carmen-Shannon/oxy-fireball/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var locationNames = []string{
	shader.AttribPos, shader.AttribNor,
	shader.UniformModel, shader.UniformModelInvTr, shader.UniformViewProj, shader.UniformDimensions,
	shader.UniformColor1, shader.UniformColor2, shader.UniformTime, shader.UniformSpeed, shader.UniformAngle,
}

// fixedRand returns the same Float32 every draw.
type fixedRand struct {
	randx.Rand
	v float32
}

func (f fixedRand) Float32() float32 {
	return f.v
}

type fixture struct {
	rec   *backendtest.Recorder
	r     renderer.Renderer
	cam   camera.Camera
	store *params.Store
	scene Scene
}

func newFixture(t *testing.T, controls params.Controls, options ...SceneBuilderOption) *fixture {
	t.Helper()
	rec := backendtest.NewRecorder(locationNames...)
	r := renderer.NewRenderer(rec)
	cam := camera.NewCamera(mgl32.Vec3{0, 0, 6}, mgl32.Vec3{})
	store := params.NewStore(controls)
	options = append([]SceneBuilderOption{WithWorkers(2)}, options...)
	s, err := NewScene("fireball", cam, r, store, options...)
	require.NoError(t, err)
	t.Cleanup(s.Release)
	return &fixture{rec: rec, r: r, cam: cam, store: store, scene: s}
}

func (f *fixture) program(key string) shader.Program {
	return f.r.Program(key)
}

func TestNewSceneRegistersPrograms(t *testing.T) {
	f := newFixture(t, params.DefaultControls())

	assert.Equal(t, 4, f.rec.Count("LinkProgram"))
	for _, key := range []string{ProgramBackground, ProgramRim, ProgramVortex, ProgramFireball} {
		assert.NotNil(t, f.program(key), key)
	}
}

func TestNewSceneReturnsLinkError(t *testing.T) {
	rec := backendtest.NewRecorder(locationNames...)
	rec.LinkFailure = "undefined u_Color1"
	r := renderer.NewRenderer(rec)
	cam := camera.NewCamera(mgl32.Vec3{0, 0, 6}, mgl32.Vec3{})

	_, err := NewScene("fireball", cam, r, params.NewStore(params.DefaultControls()))
	var le *shader.LinkError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "undefined u_Color1", le.Log)
}

func TestNewSceneReportsMissingShaders(t *testing.T) {
	rec := backendtest.NewRecorder(locationNames...)
	r := renderer.NewRenderer(rec)
	cam := camera.NewCamera(mgl32.Vec3{0, 0, 6}, mgl32.Vec3{})

	_, err := NewScene("fireball", cam, r, params.NewStore(params.DefaultControls()), WithShaderFS(fstest.MapFS{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "background")
}

func TestNewScenePanicsOnNilInputs(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = NewScene("fireball", nil, nil, nil)
	})
}

func TestUnchangedTessellationNeverRebuilds(t *testing.T) {
	f := newFixture(t, params.DefaultControls())

	f.scene.Frame()
	buffers := f.rec.Count("CreateBuffer")
	for i := 0; i < 10; i++ {
		f.scene.Frame()
	}

	for _, key := range []string{SlotBackground, SlotRim, SlotVortex, SlotBase} {
		assert.Equal(t, 1, f.scene.Slot(key).Rebuilds(), key)
	}
	assert.Equal(t, buffers, f.rec.Count("CreateBuffer"))
}

func TestChangedTessellationRebuildsOnce(t *testing.T) {
	f := newFixture(t, params.DefaultControls())
	f.scene.Frame()

	f.store.Update(func(c *params.Controls) { c.BaseTessellation = 2 })
	f.scene.Frame()
	f.scene.Frame()

	base := f.scene.Slot(SlotBase)
	assert.Equal(t, 2, base.Rebuilds())
	assert.Equal(t, 2, base.Level())
	assert.Equal(t, int32(60*16), base.Model().ElemCount())
	assert.Equal(t, 1, f.scene.Slot(SlotRim).Rebuilds())
}

func TestPassOrderAndPipelineState(t *testing.T) {
	f := newFixture(t, params.DefaultControls())
	f.scene.Frame()

	draws := f.rec.CallsNamed("DrawElements")
	require.Len(t, draws, 4)

	wantPrograms := []string{ProgramBackground, ProgramRim, ProgramVortex, ProgramFireball}
	wantCull := []backend.CullMode{backend.CullNone, backend.CullFront, backend.CullNone, backend.CullBack}
	wantDepth := []bool{false, true, true, true}
	for i, d := range draws {
		assert.Equal(t, f.program(wantPrograms[i]).Handle(), d.Program, wantPrograms[i])
		assert.Equal(t, wantCull[i], d.Cull, wantPrograms[i])
		assert.Equal(t, wantDepth[i], d.Enabled, wantPrograms[i])
	}
	assert.True(t, f.rec.DepthTest())
}

func TestHiddenLayersAreSkipped(t *testing.T) {
	controls := params.DefaultControls()
	controls.ShowRim = false
	controls.ShowVortex = false
	f := newFixture(t, controls)
	f.scene.Frame()

	draws := f.rec.CallsNamed("DrawElements")
	require.Len(t, draws, 2)
	assert.Equal(t, f.program(ProgramBackground).Handle(), draws[0].Program)
	assert.Equal(t, f.program(ProgramFireball).Handle(), draws[1].Program)
	assert.Nil(t, f.scene.Slot(SlotRim).Model())
	assert.Nil(t, f.scene.Slot(SlotVortex).Model())
}

func TestShowingALayerBuildsItBeforeItsFirstDraw(t *testing.T) {
	controls := params.DefaultControls()
	controls.ShowRim = false
	f := newFixture(t, controls)
	f.scene.Frame()
	require.Nil(t, f.scene.Slot(SlotRim).Model())

	f.store.Update(func(c *params.Controls) { c.ShowRim = true })
	f.rec.Reset()
	f.scene.Frame()

	assert.Equal(t, 1, f.scene.Slot(SlotRim).Rebuilds())
	assert.Len(t, f.rec.CallsNamed("DrawElements"), 4)
}

func TestNoJitterAtZeroSpeed(t *testing.T) {
	controls := params.DefaultControls()
	controls.Speed = 0
	controls.Shake = 0.2
	f := newFixture(t, controls, WithRandom(fixedRand{v: 0.99}))

	for i := 0; i < 5; i++ {
		f.scene.Frame()
		assert.Equal(t, mgl32.Vec3{}, f.scene.Jitter())
	}
}

func TestJitterScalesWithShakeAndSpeed(t *testing.T) {
	controls := params.DefaultControls()
	controls.Speed = 1
	controls.Shake = 0.2
	f := newFixture(t, controls, WithRandom(fixedRand{v: 0.75}))

	f.scene.Frame()
	j := f.scene.Jitter()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 0.05, j[i], 1e-6)
	}
}

func TestJitterStaysWithinBound(t *testing.T) {
	controls := params.DefaultControls()
	controls.Speed = 1
	controls.Shake = 1
	f := newFixture(t, controls, WithRandom(randx.NewSysRand(42)))

	for i := 0; i < 50; i++ {
		f.scene.Frame()
		for _, v := range f.scene.Jitter() {
			assert.LessOrEqual(t, v, float32(0.5))
			assert.GreaterOrEqual(t, v, float32(-0.5))
		}
	}
}

func TestJitterDoesNotMoveLogicalCameraPosition(t *testing.T) {
	controls := params.DefaultControls()
	controls.Speed = 1
	controls.Shake = 1
	f := newFixture(t, controls, WithRandom(fixedRand{v: 0.9}))

	f.scene.Frame()
	assert.Equal(t, mgl32.Vec3{0, 0, 4}, f.cam.Position())
	f.scene.Frame()
	assert.Equal(t, mgl32.Vec3{0, 0, 4}, f.cam.Position())
}

func TestCameraEasesBetweenAnchors(t *testing.T) {
	slow := mgl32.Vec3{0, 0, 8}
	fast := mgl32.Vec3{0, 0, 2}

	rest := newFixture(t, params.DefaultControls(), WithAnchors(slow, fast))
	rest.scene.Frame()
	assert.Equal(t, slow, rest.cam.Position())

	controls := params.DefaultControls()
	controls.Speed = 1
	full := newFixture(t, controls, WithAnchors(slow, fast))
	full.scene.Frame()
	assert.Equal(t, fast, full.cam.Position())
}

func TestResolvedColorsArePushed(t *testing.T) {
	controls := params.DefaultControls()
	controls.PrimaryColor = [4]float32{255, 0, 0, 1}
	controls.SecondaryColor = [4]float32{255, 255, 0, 1}
	f := newFixture(t, controls)
	f.scene.Frame()

	for _, key := range []string{ProgramBackground, ProgramRim, ProgramVortex, ProgramFireball} {
		p := f.program(key)
		c1, ok := f.rec.Uniform(p.Handle(), p.Location(shader.UniformColor1))
		require.True(t, ok, key)
		assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, c1.Vec4, key)
		c2, ok := f.rec.Uniform(p.Handle(), p.Location(shader.UniformColor2))
		require.True(t, ok, key)
		assert.Equal(t, mgl32.Vec4{1, 1, 0, 1}, c2.Vec4, key)
	}
}

func TestDimensionsOnlyReachTheBackground(t *testing.T) {
	f := newFixture(t, params.DefaultControls())
	f.scene.Resize(800, 600)
	f.scene.Frame()

	bg := f.program(ProgramBackground)
	dims, ok := f.rec.Uniform(bg.Handle(), bg.Location(shader.UniformDimensions))
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec2{800, 600}, dims.Vec2)

	for _, key := range []string{ProgramRim, ProgramVortex, ProgramFireball} {
		p := f.program(key)
		_, ok := f.rec.Uniform(p.Handle(), p.Location(shader.UniformDimensions))
		assert.False(t, ok, key)
	}
}

func TestTimeAdvancesEveryFrame(t *testing.T) {
	f := newFixture(t, params.DefaultControls())
	for i := 0; i < 3; i++ {
		f.scene.Frame()
	}
	assert.Equal(t, float32(3), f.scene.Time())

	p := f.program(ProgramFireball)
	v, ok := f.rec.Uniform(p.Handle(), p.Location(shader.UniformTime))
	require.True(t, ok)
	assert.Equal(t, float32(2), v.Float)
}

func TestAngleAccumulatesSpeed(t *testing.T) {
	controls := params.DefaultControls()
	controls.Speed = 1
	f := newFixture(t, controls)
	for i := 0; i < 4; i++ {
		f.scene.Frame()
	}
	assert.Equal(t, float32(4), f.scene.Angle())
}

func TestReloadRebuildsAndRestartsClock(t *testing.T) {
	f := newFixture(t, params.DefaultControls())
	for i := 0; i < 5; i++ {
		f.scene.Frame()
	}

	f.store.RequestReload()
	f.scene.Frame()

	assert.Equal(t, float32(1), f.scene.Time())
	for _, key := range []string{SlotBackground, SlotRim, SlotVortex, SlotBase} {
		assert.Equal(t, 2, f.scene.Slot(key).Rebuilds(), key)
	}
}

func TestManualChangeDuringRampReturnsToIdle(t *testing.T) {
	f := newFixture(t, params.DefaultControls(),
		WithAnimatorOptions(animator.WithSpeedUpTimer(2), animator.WithSpeedUpDuration(100)),
	)
	for i := 0; i < 40; i++ {
		f.scene.Frame()
	}
	a := f.scene.Animator()
	require.Equal(t, animator.PhaseRamping, a.Phase())

	f.store.Update(func(c *params.Controls) { c.Shake = 0.9 })
	f.scene.Frame()

	assert.Equal(t, animator.PhaseIdle, a.Phase())
	assert.Equal(t, 1, a.IdleFrames())
	assert.Equal(t, 0, a.RampFrames())
	assert.Equal(t, a.Speed() <= 0.5, a.SpeedingUp())
}

func TestManualSpeedChangeIsAdopted(t *testing.T) {
	f := newFixture(t, params.DefaultControls())
	f.scene.Frame()

	f.store.Update(func(c *params.Controls) { c.Speed = 0.8 })
	f.scene.Frame()

	a := f.scene.Animator()
	assert.InDelta(t, 0.8, a.Speed(), 1e-6)
	assert.False(t, a.SpeedingUp())
}

func TestSpeedKeysStepFromRampedSpeed(t *testing.T) {
	f := newFixture(t, params.DefaultControls(),
		WithAnimatorOptions(animator.WithSpeedUpTimer(2), animator.WithSpeedUpDuration(10)),
	)
	a := f.scene.Animator()
	for i := 0; i < 20; i++ {
		f.scene.Frame()
	}
	require.InDelta(t, 1, a.Speed(), 1e-6)
	require.Equal(t, float32(0), f.store.Snapshot().Speed)

	keys := params.DefaultKeyMap(a.Speed)
	f.store.HandleKey(keys, common.KeyEqual)
	f.scene.Frame()
	assert.InDelta(t, 1, a.Speed(), 1e-6)

	f.store.HandleKey(keys, common.KeyMinus)
	f.scene.Frame()
	assert.InDelta(t, 1-params.SpeedStep, a.Speed(), 1e-6)
	assert.Equal(t, animator.PhaseIdle, a.Phase())
}

func TestInactiveSceneDoesNothing(t *testing.T) {
	f := newFixture(t, params.DefaultControls(), WithActive(false))
	f.scene.Frame()

	assert.Equal(t, 0, f.rec.Count("DrawElements"))
	assert.Equal(t, float32(0), f.scene.Time())

	f.scene.SetActive(true)
	f.scene.Frame()
	assert.Equal(t, 4, f.rec.Count("DrawElements"))
}

func TestResizeIsIdempotent(t *testing.T) {
	f := newFixture(t, params.DefaultControls())
	f.scene.Resize(1000, 500)
	f.scene.Resize(1000, 500)
	f.scene.Resize(0, 500)

	assert.Equal(t, 1, f.rec.Count("Viewport"))
	assert.Equal(t, float32(2), f.cam.Aspect())
}

func TestReleaseFreesGeometry(t *testing.T) {
	rec := backendtest.NewRecorder(locationNames...)
	r := renderer.NewRenderer(rec)
	cam := camera.NewCamera(mgl32.Vec3{0, 0, 6}, mgl32.Vec3{})
	s, err := NewScene("fireball", cam, r, params.NewStore(params.DefaultControls()),
		WithTessellator(model.NewTessellator(model.WithWorkers(1))),
	)
	require.NoError(t, err)
	s.Frame()

	s.Release()
	for _, key := range []string{SlotBackground, SlotRim, SlotVortex, SlotBase} {
		assert.Nil(t, s.Slot(key).Model(), key)
	}
	assert.Equal(t, rec.Count("CreateBuffer"), rec.Count("DeleteBuffer"))
}
