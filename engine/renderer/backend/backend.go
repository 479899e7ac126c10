// Package backend defines the graphics API surface the renderer, shader programs and models
// issue their GPU calls through. The concrete OpenGL implementation lives in the opengl
// sub-package so that everything above it can be exercised without a GL context.
package backend

import "github.com/go-gl/mathgl/mgl32"

// ShaderStage identifies a programmable pipeline stage.
type ShaderStage int

const (
	// StageVertex is the vertex processing stage.
	StageVertex ShaderStage = iota

	// StageFragment is the fragment processing stage.
	StageFragment
)

// String returns the lower-case stage name used in diagnostics.
func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// DrawMode is the primitive topology of an indexed draw.
type DrawMode int

const (
	// DrawTriangles draws independent triangles.
	DrawTriangles DrawMode = iota

	// DrawLines draws independent line segments.
	DrawLines

	// DrawPoints draws points.
	DrawPoints
)

// CullMode selects which faces are discarded by the rasterizer.
type CullMode int

const (
	// CullNone disables face culling.
	CullNone CullMode = iota

	// CullBack discards back faces.
	CullBack

	// CullFront discards front faces.
	CullFront
)

// BufferTarget identifies the binding point a buffer is bound to.
type BufferTarget int

const (
	// BufferVertex is the vertex attribute (array) buffer binding.
	BufferVertex BufferTarget = iota

	// BufferIndex is the element (index) buffer binding.
	BufferIndex
)

// NoLocation is the sentinel returned for attributes and uniforms a program does not declare.
const NoLocation int32 = -1

// Backend is the graphics API used by the rendering subsystem.
// All methods must be called from the thread that owns the graphics context.
type Backend interface {
	// CompileShader compiles a single shader stage.
	//
	// Parameters:
	//   - stage: the pipeline stage the source targets
	//   - source: the shader source code
	//
	// Returns:
	//   - uint32: the shader handle
	//   - string: the compiler info log when compilation fails, empty otherwise
	//   - bool: true if compilation succeeded
	CompileShader(stage ShaderStage, source string) (uint32, string, bool)

	// DeleteShader releases a compiled shader stage.
	DeleteShader(handle uint32)

	// LinkProgram links compiled stages into a program.
	//
	// Parameters:
	//   - shaders: compiled shader handles to attach
	//
	// Returns:
	//   - uint32: the program handle
	//   - string: the linker info log when linking fails, empty otherwise
	//   - bool: true if linking succeeded
	LinkProgram(shaders ...uint32) (uint32, string, bool)

	// DeleteProgram releases a linked program.
	DeleteProgram(program uint32)

	// UseProgram binds a program for subsequent uniform pushes and draws.
	UseProgram(program uint32)

	// AttribLocation resolves a vertex attribute slot, or NoLocation if the program lacks it.
	AttribLocation(program uint32, name string) int32

	// UniformLocation resolves a uniform slot, or NoLocation if the program lacks it.
	UniformLocation(program uint32, name string) int32

	// UniformMatrix4 pushes a 4x4 matrix (column-major, not transposed).
	UniformMatrix4(location int32, m mgl32.Mat4)

	// Uniform4 pushes a vec4.
	Uniform4(location int32, v mgl32.Vec4)

	// Uniform2 pushes a vec2.
	Uniform2(location int32, v mgl32.Vec2)

	// Uniform1 pushes a float.
	Uniform1(location int32, v float32)

	// CreateBuffer allocates a buffer object.
	CreateBuffer() uint32

	// DeleteBuffer releases a buffer object.
	DeleteBuffer(buffer uint32)

	// BindBuffer binds a buffer to the given target.
	BindBuffer(target BufferTarget, buffer uint32)

	// BufferFloats uploads float data to the buffer currently bound to target.
	BufferFloats(target BufferTarget, data []float32)

	// BufferIndices uploads index data to the buffer currently bound to target.
	BufferIndices(target BufferTarget, data []uint32)

	// EnableAttrib enables the attribute stream at location.
	EnableAttrib(location int32)

	// DisableAttrib disables the attribute stream at location.
	DisableAttrib(location int32)

	// AttribPointer describes the currently bound vertex buffer as tightly packed float vectors.
	//
	// Parameters:
	//   - location: the attribute slot
	//   - size: number of float components per vertex
	AttribPointer(location int32, size int32)

	// DrawElements issues an indexed draw with 32-bit indices from the bound index buffer.
	DrawElements(mode DrawMode, count int32)

	// SetClearColor sets the colour used by Clear.
	SetClearColor(r, g, b, a float32)

	// Clear clears the colour and depth buffers.
	Clear()

	// Viewport sets the viewport rectangle.
	Viewport(x, y, width, height int32)

	// SetDepthTest enables or disables depth testing.
	SetDepthTest(enabled bool)

	// SetCullFace selects the face culling mode. CullNone disables culling.
	SetCullFace(mode CullMode)
}
