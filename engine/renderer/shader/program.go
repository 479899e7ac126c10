package shader

import (
	"strings"

	"github.com/Carmen-Shannon/oxy-fireball/common"
	"github.com/Carmen-Shannon/oxy-fireball/engine/model"
	"github.com/Carmen-Shannon/oxy-fireball/engine/renderer/backend"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Attribute names every fireball program may declare.
const (
	AttribPos = "vs_Pos"
	AttribNor = "vs_Nor"
	AttribCol = "vs_Col"
)

// Uniform names every fireball program may declare.
const (
	UniformModel      = "u_Model"
	UniformModelInvTr = "u_ModelInvTr"
	UniformViewProj   = "u_ViewProj"
	UniformDimensions = "u_Dimensions"
	UniformColor1     = "u_Color1"
	UniformColor2     = "u_Color2"
	UniformTime       = "u_Time"
	UniformSpeed      = "u_Speed"
	UniformAngle      = "u_Angle"
)

var (
	attribNames  = []string{AttribPos, AttribNor, AttribCol}
	uniformNames = []string{
		UniformModel, UniformModelInvTr, UniformViewProj, UniformDimensions,
		UniformColor1, UniformColor2, UniformTime, UniformSpeed, UniformAngle,
	}
)

// program is the implementation of the Program interface.
type program struct {
	ctx     *ProgramContext
	backend backend.Backend
	logger  *zap.Logger
	name    string
	handle  uint32
	locs    map[string]int32
}

// Program is a linked GPU program with its attribute and uniform slots resolved once at
// construction. Every setter binds the program first through the shared ProgramContext and
// silently skips uniforms the program does not declare.
type Program interface {
	// Name returns the program's diagnostic name.
	//
	// Returns:
	//   - string: the name given via WithName, or the joined shader keys
	Name() string

	// Handle returns the backend program handle.
	//
	// Returns:
	//   - uint32: the linked program handle
	Handle() uint32

	// Location returns the resolved slot for an attribute or uniform name.
	//
	// Parameters:
	//   - name: one of the Attrib* or Uniform* names
	//
	// Returns:
	//   - int32: the slot, or backend.NoLocation if the program does not declare it
	Location(name string) int32

	// Has reports whether the program declares the attribute or uniform.
	//
	// Parameters:
	//   - name: one of the Attrib* or Uniform* names
	//
	// Returns:
	//   - bool: true if the slot resolved
	Has(name string) bool

	// Use binds the program unless it is already the active program of its context.
	Use()

	// SetModelMatrix pushes the model matrix and, if declared, its inverse transpose.
	//
	// Parameters:
	//   - m: the model matrix
	SetModelMatrix(m mgl32.Mat4)

	// SetViewProjMatrix pushes the combined view-projection matrix.
	//
	// Parameters:
	//   - m: the view-projection matrix
	SetViewProjMatrix(m mgl32.Mat4)

	// SetColor1 pushes the primary colour.
	SetColor1(c mgl32.Vec4)

	// SetColor2 pushes the secondary colour.
	SetColor2(c mgl32.Vec4)

	// SetTime pushes the animation clock.
	SetTime(t float32)

	// SetSpeed pushes the playback speed in [0, 1].
	SetSpeed(s float32)

	// SetAngle pushes the accumulated rotation angle.
	SetAngle(a float32)

	// SetDimensions pushes the framebuffer size in pixels.
	//
	// Parameters:
	//   - width: framebuffer width
	//   - height: framebuffer height
	SetDimensions(width, height float32)

	// Draw issues an indexed draw of the drawable with this program.
	// Position and normal streams are bound only if the program declares them and the
	// drawable provides them; enabled streams are disabled again after the draw.
	//
	// Parameters:
	//   - d: the drawable to draw
	Draw(d model.Drawable)

	// Release deletes the backend program. The program must not be used afterwards.
	Release()
}

var _ Program = &program{}

// NewProgram compiles the given shader stages, links them and resolves every known attribute
// and uniform slot. On failure no program is returned and the error carries the raw diagnostic
// as a *CompileError or *LinkError.
//
// Parameters:
//   - ctx: the shared binding state of the graphics context
//   - b: the backend to compile and link against
//   - shaders: the shader stages to link
//   - options: ProgramBuilderOption functions to configure the program
//
// Returns:
//   - Program: the linked program
//   - error: error if any stage fails to compile or the program fails to link
func NewProgram(ctx *ProgramContext, b backend.Backend, shaders []Shader, options ...ProgramBuilderOption) (Program, error) {
	if ctx == nil {
		panic("shader: NewProgram requires a non-nil ProgramContext")
	}
	if b == nil {
		panic("shader: NewProgram requires a non-nil Backend")
	}

	p := &program{
		ctx:     ctx,
		backend: b,
		logger:  zap.NewNop(),
		locs:    make(map[string]int32, len(attribNames)+len(uniformNames)),
	}
	for _, option := range options {
		option(p)
	}

	keys := make([]string, 0, len(shaders))
	for _, s := range shaders {
		keys = append(keys, s.Key())
	}
	if p.name == "" {
		p.name = strings.Join(keys, "+")
	}

	handles := make([]uint32, 0, len(shaders))
	release := func() {
		for _, h := range handles {
			b.DeleteShader(h)
		}
	}

	for _, s := range shaders {
		h, err := compile(b, s)
		if err != nil {
			release()
			p.logger.Error("shader compile failed", zap.String("shader", s.Key()), zap.Error(err))
			return nil, err
		}
		handles = append(handles, h)
	}

	handle, log, ok := b.LinkProgram(handles...)
	release()
	if !ok {
		err := &LinkError{Keys: keys, Log: log}
		p.logger.Error("program link failed", zap.String("program", p.name), zap.Error(err))
		return nil, err
	}
	p.handle = handle

	for _, name := range attribNames {
		p.locs[name] = b.AttribLocation(handle, name)
	}
	for _, name := range uniformNames {
		p.locs[name] = b.UniformLocation(handle, name)
	}

	p.logger.Debug("program linked", zap.String("program", p.name), zap.Uint32("handle", handle))
	return p, nil
}

func (p *program) Name() string {
	return p.name
}

func (p *program) Handle() uint32 {
	return p.handle
}

func (p *program) Location(name string) int32 {
	if loc, ok := p.locs[name]; ok {
		return loc
	}
	return backend.NoLocation
}

func (p *program) Has(name string) bool {
	return p.Location(name) != backend.NoLocation
}

func (p *program) Use() {
	if p.ctx.bind(p.handle) {
		p.backend.UseProgram(p.handle)
	}
}

func (p *program) SetModelMatrix(m mgl32.Mat4) {
	p.Use()
	if loc := p.Location(UniformModel); loc != backend.NoLocation {
		p.backend.UniformMatrix4(loc, m)
	}
	if loc := p.Location(UniformModelInvTr); loc != backend.NoLocation {
		p.backend.UniformMatrix4(loc, common.InverseTranspose(m))
	}
}

func (p *program) SetViewProjMatrix(m mgl32.Mat4) {
	p.Use()
	if loc := p.Location(UniformViewProj); loc != backend.NoLocation {
		p.backend.UniformMatrix4(loc, m)
	}
}

func (p *program) SetColor1(c mgl32.Vec4) {
	p.setVec4(UniformColor1, c)
}

func (p *program) SetColor2(c mgl32.Vec4) {
	p.setVec4(UniformColor2, c)
}

func (p *program) SetTime(t float32) {
	p.setFloat(UniformTime, t)
}

func (p *program) SetSpeed(s float32) {
	p.setFloat(UniformSpeed, s)
}

func (p *program) SetAngle(a float32) {
	p.setFloat(UniformAngle, a)
}

func (p *program) SetDimensions(width, height float32) {
	p.Use()
	if loc := p.Location(UniformDimensions); loc != backend.NoLocation {
		p.backend.Uniform2(loc, mgl32.Vec2{width, height})
	}
}

func (p *program) Draw(d model.Drawable) {
	p.Use()

	var enabled []int32
	if loc := p.Location(AttribPos); loc != backend.NoLocation && d.BindPos() {
		p.backend.EnableAttrib(loc)
		p.backend.AttribPointer(loc, 4)
		enabled = append(enabled, loc)
	}
	if loc := p.Location(AttribNor); loc != backend.NoLocation && d.BindNor() {
		p.backend.EnableAttrib(loc)
		p.backend.AttribPointer(loc, 4)
		enabled = append(enabled, loc)
	}

	d.BindIdx()
	p.backend.DrawElements(d.DrawMode(), d.ElemCount())

	for _, loc := range enabled {
		p.backend.DisableAttrib(loc)
	}
}

func (p *program) Release() {
	p.ctx.release(p.handle)
	p.backend.DeleteProgram(p.handle)
}

func (p *program) setVec4(name string, v mgl32.Vec4) {
	p.Use()
	if loc := p.Location(name); loc != backend.NoLocation {
		p.backend.Uniform4(loc, v)
	}
}

func (p *program) setFloat(name string, v float32) {
	p.Use()
	if loc := p.Location(name); loc != backend.NoLocation {
		p.backend.Uniform1(loc, v)
	}
}
