// Package opengl implements backend.Backend on top of the OpenGL 4.1 core profile.
package opengl

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-fireball/engine/renderer/backend"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// openGLBackend is the OpenGL implementation of backend.Backend.
// The core profile refuses attribute state without a bound vertex array object,
// so a single VAO is created at init and kept bound for the lifetime of the context.
type openGLBackend struct {
	vao uint32
}

var _ backend.Backend = &openGLBackend{}

// NewBackend loads the OpenGL function pointers for the current context and applies
// the fixed pipeline state the fireball passes rely on (depth test, back-face culling,
// counter-clockwise front faces).
// The calling goroutine must own the current GL context and be locked to its OS thread.
//
// Returns:
//   - backend.Backend: the OpenGL backend
//   - error: error if the GL function pointers cannot be loaded
func NewBackend() (backend.Backend, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	b := &openGLBackend{}
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.FrontFace(gl.CCW)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	return b, nil
}

// Version returns the GL version string reported by the driver.
//
// Returns:
//   - string: the GL_VERSION string
func Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (b *openGLBackend) CompileShader(stage backend.ShaderStage, source string) (uint32, string, bool) {
	shader := gl.CreateShader(glStage(stage))
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		logMsg := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logMsg))

		gl.DeleteShader(shader)
		return 0, strings.TrimSpace(strings.TrimRight(logMsg, "\x00")), false
	}
	return shader, "", true
}

func (b *openGLBackend) DeleteShader(handle uint32) {
	gl.DeleteShader(handle)
}

func (b *openGLBackend) LinkProgram(shaders ...uint32) (uint32, string, bool) {
	program := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		logMsg := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logMsg))

		gl.DeleteProgram(program)
		return 0, strings.TrimSpace(strings.TrimRight(logMsg, "\x00")), false
	}

	for _, s := range shaders {
		gl.DetachShader(program, s)
	}
	return program, "", true
}

func (b *openGLBackend) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (b *openGLBackend) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (b *openGLBackend) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (b *openGLBackend) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (b *openGLBackend) UniformMatrix4(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (b *openGLBackend) Uniform4(location int32, v mgl32.Vec4) {
	gl.Uniform4f(location, v[0], v[1], v[2], v[3])
}

func (b *openGLBackend) Uniform2(location int32, v mgl32.Vec2) {
	gl.Uniform2f(location, v[0], v[1])
}

func (b *openGLBackend) Uniform1(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (b *openGLBackend) CreateBuffer() uint32 {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	return buffer
}

func (b *openGLBackend) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (b *openGLBackend) BindBuffer(target backend.BufferTarget, buffer uint32) {
	gl.BindBuffer(glTarget(target), buffer)
}

func (b *openGLBackend) BufferFloats(target backend.BufferTarget, data []float32) {
	if len(data) == 0 {
		gl.BufferData(glTarget(target), 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(glTarget(target), len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (b *openGLBackend) BufferIndices(target backend.BufferTarget, data []uint32) {
	if len(data) == 0 {
		gl.BufferData(glTarget(target), 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(glTarget(target), len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (b *openGLBackend) EnableAttrib(location int32) {
	gl.EnableVertexAttribArray(uint32(location))
}

func (b *openGLBackend) DisableAttrib(location int32) {
	gl.DisableVertexAttribArray(uint32(location))
}

func (b *openGLBackend) AttribPointer(location int32, size int32) {
	gl.VertexAttribPointer(uint32(location), size, gl.FLOAT, false, 0, nil)
}

func (b *openGLBackend) DrawElements(mode backend.DrawMode, count int32) {
	gl.DrawElements(glMode(mode), count, gl.UNSIGNED_INT, nil)
}

func (b *openGLBackend) SetClearColor(r, g, bl, a float32) {
	gl.ClearColor(r, g, bl, a)
}

func (b *openGLBackend) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (b *openGLBackend) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (b *openGLBackend) SetDepthTest(enabled bool) {
	if enabled {
		gl.Enable(gl.DEPTH_TEST)
		return
	}
	gl.Disable(gl.DEPTH_TEST)
}

func (b *openGLBackend) SetCullFace(mode backend.CullMode) {
	switch mode {
	case backend.CullFront:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	case backend.CullBack:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	default:
		gl.Disable(gl.CULL_FACE)
	}
}

func glStage(stage backend.ShaderStage) uint32 {
	if stage == backend.StageFragment {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func glTarget(target backend.BufferTarget) uint32 {
	if target == backend.BufferIndex {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func glMode(mode backend.DrawMode) uint32 {
	switch mode {
	case backend.DrawLines:
		return gl.LINES
	case backend.DrawPoints:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}
