package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-fireball/engine/camera"
	"github.com/Carmen-Shannon/oxy-fireball/engine/model"
	"github.com/Carmen-Shannon/oxy-fireball/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-fireball/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backend backend.Backend
	ctx     *shader.ProgramContext
	logger  *zap.Logger

	programCache map[string]shader.Program

	clearColor    mgl32.Vec4
	width, height int
}

// Renderer defines the interface for the rendering system.
//
// The Renderer owns the graphics backend and the ProgramContext every program it links shares,
// caches linked programs by key, and issues draws for drawable/program pairs under whatever
// depth and cull state the caller set for the pass.
type Renderer interface {
	// Backend returns the graphics backend.
	//
	// Returns:
	//   - backend.Backend: the backend draws are issued through
	Backend() backend.Backend

	// Context returns the shared active-program state.
	//
	// Returns:
	//   - *shader.ProgramContext: the context every registered program binds through
	Context() *shader.ProgramContext

	// Program retrieves the cached Program associated with the given key.
	// If the Program does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Program to retrieve
	//
	// Returns:
	//   - shader.Program: the Program associated with the key, or nil if not found
	Program(key string) shader.Program

	// Programs retrieves the entire cache of Programs.
	//
	// Returns:
	//   - map[string]shader.Program: a map of program keys to programs
	Programs() map[string]shader.Program

	// RegisterProgram links the shaders into a Program and caches it by key.
	// A key that is already registered returns the cached program without relinking.
	//
	// Parameters:
	//   - key: the unique identifier for the Program
	//   - shaders: the shader stages to link
	//
	// Returns:
	//   - shader.Program: the linked program
	//   - error: a *shader.CompileError or *shader.LinkError if linking fails
	RegisterProgram(key string, shaders ...shader.Shader) (shader.Program, error)

	// SetClearColor sets the colour the frame is cleared to.
	SetClearColor(r, g, b, a float32)

	// ClearColor returns the colour the frame is cleared to.
	ClearColor() mgl32.Vec4

	// Clear clears the colour and depth buffers.
	Clear()

	// SetSize updates the viewport. Applying the same size again is a no-op.
	//
	// Parameters:
	//   - width: the new framebuffer width in pixels
	//   - height: the new framebuffer height in pixels
	SetSize(width, height int)

	// Size returns the current viewport size.
	Size() (width, height int)

	// SetDepthTest enables or disables depth testing for the following draws.
	SetDepthTest(enabled bool)

	// SetCullFace selects the face culling mode for the following draws.
	SetCullFace(mode backend.CullMode)

	// Render draws each drawable with its paired program: drawables[i] uses programs[i], and
	// drawables beyond the last program reuse the last one. Each program receives the identity
	// model matrix, the camera's view-projection and, if given, the primary colour.
	//
	// Parameters:
	//   - cam: the camera supplying the view-projection matrix
	//   - drawables: the geometry to draw
	//   - programs: the programs to draw with
	//   - color: optional primary colour
	Render(cam camera.Camera, drawables []model.Drawable, programs []shader.Program, color ...mgl32.Vec4)

	// Release deletes every cached program.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer on top of a graphics backend.
//
// Parameters:
//   - b: the graphics backend
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer
func NewRenderer(b backend.Backend, options ...RendererBuilderOption) Renderer {
	if b == nil {
		panic("renderer: NewRenderer requires a non-nil Backend")
	}
	r := &renderer{
		mu:           &sync.Mutex{},
		backend:      b,
		logger:       zap.NewNop(),
		programCache: make(map[string]shader.Program),
		clearColor:   mgl32.Vec4{0, 0, 0, 1},
	}
	for _, opt := range options {
		opt(r)
	}
	if r.ctx == nil {
		r.ctx = shader.NewProgramContext()
	}
	b.SetClearColor(r.clearColor[0], r.clearColor[1], r.clearColor[2], r.clearColor[3])
	return r
}

func (r *renderer) Backend() backend.Backend {
	return r.backend
}

func (r *renderer) Context() *shader.ProgramContext {
	return r.ctx
}

func (r *renderer) Program(key string) shader.Program {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.programCache[key]
}

func (r *renderer) Programs() map[string]shader.Program {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.programCache
}

func (r *renderer) RegisterProgram(key string, shaders ...shader.Shader) (shader.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, exists := r.programCache[key]; exists {
		return p, nil
	}
	p, err := shader.NewProgram(r.ctx, r.backend, shaders, shader.WithName(key), shader.WithLogger(r.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to register program %q: %w", key, err)
	}
	r.programCache[key] = p
	return p, nil
}

func (r *renderer) SetClearColor(red, green, blue, alpha float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearColor = mgl32.Vec4{red, green, blue, alpha}
	r.backend.SetClearColor(red, green, blue, alpha)
}

func (r *renderer) ClearColor() mgl32.Vec4 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clearColor
}

func (r *renderer) Clear() {
	r.backend.Clear()
}

func (r *renderer) SetSize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.width == width && r.height == height {
		return
	}
	r.width, r.height = width, height
	r.backend.Viewport(0, 0, int32(width), int32(height))
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) SetDepthTest(enabled bool) {
	r.backend.SetDepthTest(enabled)
}

func (r *renderer) SetCullFace(mode backend.CullMode) {
	r.backend.SetCullFace(mode)
}

func (r *renderer) Render(cam camera.Camera, drawables []model.Drawable, programs []shader.Program, color ...mgl32.Vec4) {
	if len(programs) == 0 || len(drawables) == 0 {
		return
	}
	viewProj := cam.ViewProjectionMatrix()
	identity := mgl32.Ident4()

	for i, d := range drawables {
		if d == nil {
			continue
		}
		p := programs[min(i, len(programs)-1)]
		p.SetModelMatrix(identity)
		p.SetViewProjMatrix(viewProj)
		if len(color) > 0 {
			p.SetColor1(color[0])
		}
		p.Draw(d)
	}
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, p := range r.programCache {
		p.Release()
		delete(r.programCache, key)
	}
	r.ctx.Reset()
}
