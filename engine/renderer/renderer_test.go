package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-fireball/engine/camera"
	"github.com/Carmen-Shannon/oxy-fireball/engine/model"
	"github.com/Carmen-Shannon/oxy-fireball/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-fireball/engine/renderer/backend/backendtest"
	"github.com/Carmen-Shannon/oxy-fireball/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNames = []string{
	shader.AttribPos, shader.AttribNor,
	shader.UniformModel, shader.UniformModelInvTr, shader.UniformViewProj, shader.UniformColor1,
}

func testShaders(tag string) []shader.Shader {
	return []shader.Shader{
		shader.NewShader(tag+".vert", backend.StageVertex, "#version 410\n// "+tag+" vert\n"),
		shader.NewShader(tag+".frag", backend.StageFragment, "#version 410\n// "+tag+" frag\n"),
	}
}

func TestNewRendererAppliesClearColor(t *testing.T) {
	rec := backendtest.NewRecorder()
	r := NewRenderer(rec, WithClearColor(0.2, 0.2, 0.2, 1))

	assert.Equal(t, mgl32.Vec4{0.2, 0.2, 0.2, 1}, r.ClearColor())
	assert.Equal(t, 1, rec.Count("SetClearColor"))

	r.SetClearColor(0, 0, 0, 1)
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, r.ClearColor())
	r.Clear()
	assert.Equal(t, 1, rec.Count("Clear"))
}

func TestSetSizeIsIdempotent(t *testing.T) {
	rec := backendtest.NewRecorder()
	r := NewRenderer(rec)

	r.SetSize(800, 600)
	r.SetSize(800, 600)
	w, h := r.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
	assert.Equal(t, 1, rec.Count("Viewport"))

	r.SetSize(1024, 768)
	assert.Equal(t, 2, rec.Count("Viewport"))
}

func TestRegisterProgramCachesByKey(t *testing.T) {
	rec := backendtest.NewRecorder(testNames...)
	r := NewRenderer(rec)

	p, err := r.RegisterProgram("fireball", testShaders("fireball")...)
	require.NoError(t, err)
	again, err := r.RegisterProgram("fireball", testShaders("other")...)
	require.NoError(t, err)

	assert.Same(t, p, again)
	assert.Equal(t, 1, rec.Count("LinkProgram"))
	assert.Equal(t, "fireball", p.Name())
	assert.Same(t, p, r.Program("fireball"))
	assert.Len(t, r.Programs(), 1)
	assert.Nil(t, r.Program("missing"))
}

func TestRegisterProgramWrapsLinkError(t *testing.T) {
	rec := backendtest.NewRecorder(testNames...)
	rec.LinkFailure = "link failed"
	r := NewRenderer(rec)

	_, err := r.RegisterProgram("rim", testShaders("rim")...)
	var le *shader.LinkError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "link failed", le.Log)
	assert.Nil(t, r.Program("rim"))
}

func TestRenderPairsDrawablesWithPrograms(t *testing.T) {
	rec := backendtest.NewRecorder(testNames...)
	r := NewRenderer(rec)
	cam := camera.NewCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})

	a, err := r.RegisterProgram("a", testShaders("a")...)
	require.NoError(t, err)
	b, err := r.RegisterProgram("b", testShaders("b")...)
	require.NoError(t, err)

	sphere := model.NewModel(rec, model.Icosphere(mgl32.Vec3{}, 1, 0))
	square := model.NewModel(rec, model.Square(mgl32.Vec3{}))
	rec.Reset()

	color := mgl32.Vec4{1, 0.5, 0, 1}
	r.Render(cam, []model.Drawable{sphere, square, sphere}, []shader.Program{a, b}, color)

	draws := rec.CallsNamed("DrawElements")
	require.Len(t, draws, 3)
	assert.Equal(t, a.Handle(), draws[0].Program)
	assert.Equal(t, b.Handle(), draws[1].Program)
	assert.Equal(t, b.Handle(), draws[2].Program)
	assert.Equal(t, int32(60), draws[0].Count)
	assert.Equal(t, int32(6), draws[1].Count)

	vp, ok := rec.Uniform(a.Handle(), a.Location(shader.UniformViewProj))
	require.True(t, ok)
	assert.Equal(t, cam.ViewProjectionMatrix(), vp.Mat4)
	m, ok := rec.Uniform(b.Handle(), b.Location(shader.UniformModel))
	require.True(t, ok)
	assert.Equal(t, mgl32.Ident4(), m.Mat4)
	c, ok := rec.Uniform(a.Handle(), a.Location(shader.UniformColor1))
	require.True(t, ok)
	assert.Equal(t, color, c.Vec4)
}

func TestRenderUsesCurrentPassState(t *testing.T) {
	rec := backendtest.NewRecorder(testNames...)
	r := NewRenderer(rec)
	cam := camera.NewCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	p, err := r.RegisterProgram("p", testShaders("p")...)
	require.NoError(t, err)
	sphere := model.NewModel(rec, model.Icosphere(mgl32.Vec3{}, 1, 0))

	r.SetCullFace(backend.CullFront)
	r.SetDepthTest(false)
	r.Render(cam, []model.Drawable{sphere}, []shader.Program{p})

	draws := rec.CallsNamed("DrawElements")
	require.Len(t, draws, 1)
	assert.Equal(t, backend.CullFront, draws[0].Cull)
	assert.False(t, draws[0].Enabled)
}

func TestRenderWithoutProgramsDrawsNothing(t *testing.T) {
	rec := backendtest.NewRecorder(testNames...)
	r := NewRenderer(rec)
	cam := camera.NewCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	sphere := model.NewModel(rec, model.Icosphere(mgl32.Vec3{}, 1, 0))

	r.Render(cam, []model.Drawable{sphere}, nil)
	assert.Equal(t, 0, rec.Count("DrawElements"))
}

func TestReleaseDeletesProgramsAndResetsContext(t *testing.T) {
	rec := backendtest.NewRecorder(testNames...)
	r := NewRenderer(rec)
	p, err := r.RegisterProgram("p", testShaders("p")...)
	require.NoError(t, err)
	p.Use()

	r.Release()
	assert.True(t, rec.Deleted(p.Handle()))
	assert.Empty(t, r.Programs())
	_, bound := r.Context().Active()
	assert.False(t, bound)
}
