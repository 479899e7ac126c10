// Package backendtest provides a recording backend.Backend for tests that exercise
// programs, models and the renderer without a graphics context.
package backendtest

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-fireball/engine/renderer/backend"
	"github.com/go-gl/mathgl/mgl32"
)

// Call is one recorded backend invocation.
type Call struct {
	Name     string
	Program  uint32
	Location int32
	Mode     backend.DrawMode
	Cull     backend.CullMode
	Enabled  bool
	Count    int32
}

// UniformValue is the last value pushed to a uniform location of a program.
type UniformValue struct {
	Mat4  mgl32.Mat4
	Vec4  mgl32.Vec4
	Vec2  mgl32.Vec2
	Float float32
}

// Recorder is a backend.Backend that records every call and resolves attribute and
// uniform locations from a configurable name table. Names missing from the table
// resolve to backend.NoLocation, mimicking a program that does not declare them.
type Recorder struct {
	mu *sync.Mutex

	// Locations maps attribute/uniform names to the slot every program reports for them.
	Locations map[string]int32

	// CompileFailures maps shader source to the info log CompileShader reports for it.
	CompileFailures map[string]string

	// LinkFailure, when non-empty, makes every LinkProgram call fail with this log.
	LinkFailure string

	calls     []Call
	counts    map[string]int
	next      uint32
	bound     uint32
	uniforms  map[uint32]map[int32]UniformValue
	buffers   map[uint32][]float32
	indices   map[uint32][]uint32
	bindings  map[backend.BufferTarget]uint32
	deleted   map[uint32]bool
	depthTest bool
	cull      backend.CullMode
}

var _ backend.Backend = &Recorder{}

// NewRecorder creates a Recorder resolving the given names to locations 0..n-1 in order.
//
// Parameters:
//   - names: attribute and uniform names every program declares
//
// Returns:
//   - *Recorder: the recording backend
func NewRecorder(names ...string) *Recorder {
	r := &Recorder{
		mu:              &sync.Mutex{},
		Locations:       make(map[string]int32, len(names)),
		CompileFailures: make(map[string]string),
		counts:          make(map[string]int),
		uniforms:        make(map[uint32]map[int32]UniformValue),
		buffers:         make(map[uint32][]float32),
		indices:         make(map[uint32][]uint32),
		bindings:        make(map[backend.BufferTarget]uint32),
		deleted:         make(map[uint32]bool),
		depthTest:       true,
		cull:            backend.CullBack,
	}
	for i, n := range names {
		r.Locations[n] = int32(i)
	}
	return r
}

// Count returns how many times the named backend method was called.
func (r *Recorder) Count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[name]
}

// Calls returns a copy of every recorded call in order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// CallsNamed returns the recorded calls with the given method name, in order.
func (r *Recorder) CallsNamed(name string) []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Call
	for _, c := range r.calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets every recorded call and count. Resources and pushed uniforms are kept.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
	r.counts = make(map[string]int)
}

// Uniform returns the last value pushed to location while program was bound.
func (r *Recorder) Uniform(program uint32, location int32) (UniformValue, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.uniforms[program][location]
	return v, ok
}

// Bound returns the currently bound program handle.
func (r *Recorder) Bound() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bound
}

// Deleted reports whether the handle was released through a Delete* call.
func (r *Recorder) Deleted(handle uint32) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deleted[handle]
}

// DepthTest reports the current depth test state.
func (r *Recorder) DepthTest() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.depthTest
}

// Cull reports the current face culling mode.
func (r *Recorder) Cull() backend.CullMode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cull
}

func (r *Recorder) record(c Call) {
	r.calls = append(r.calls, c)
	r.counts[c.Name]++
}

func (r *Recorder) handle() uint32 {
	r.next++
	return r.next
}

func (r *Recorder) setUniform(location int32, fn func(*UniformValue)) {
	if r.uniforms[r.bound] == nil {
		r.uniforms[r.bound] = make(map[int32]UniformValue)
	}
	v := r.uniforms[r.bound][location]
	fn(&v)
	r.uniforms[r.bound][location] = v
}

func (r *Recorder) CompileShader(stage backend.ShaderStage, source string) (uint32, string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Name: "CompileShader"})
	if msg, ok := r.CompileFailures[source]; ok {
		return 0, msg, false
	}
	return r.handle(), "", true
}

func (r *Recorder) DeleteShader(handle uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Name: "DeleteShader", Program: handle})
	r.deleted[handle] = true
}

func (r *Recorder) LinkProgram(shaders ...uint32) (uint32, string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Name: "LinkProgram"})
	if r.LinkFailure != "" {
		return 0, r.LinkFailure, false
	}
	return r.handle(), "", true
}

func (r *Recorder) DeleteProgram(program uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Name: "DeleteProgram", Program: program})
	r.deleted[program] = true
}

func (r *Recorder) UseProgram(program uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Name: "UseProgram", Program: program})
	r.bound = program
}

func (r *Recorder) AttribLocation(program uint32, name string) int32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Name: "AttribLocation", Program: program})
	if loc, ok := r.Locations[name]; ok {
		return loc
	}
	return backend.NoLocation
}

func (r *Recorder) UniformLocation(program uint32, name string) int32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Name: "UniformLocation", Program: program})
	if loc, ok := r.Locations[name]; ok {
		return loc
	}
	return backend.NoLocation
}

func (r *Recorder) UniformMatrix4(location int32, m mgl32.Mat4) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Name: "UniformMatrix4", Program: r.bound, Location: location})
	r.setUniform(location, func(v *UniformValue) { v.Mat4 = m })
}

func (r *Recorder) Uniform4(location int32, vec mgl32.Vec4) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Name: "Uniform4", Program: r.bound, Location: location})
	r.setUniform(location, func(v *UniformValue) { v.Vec4 = vec })
}

func (r *Recorder) Uniform2(location int32, vec mgl32.Vec2) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Name: "Uniform2", Program: r.bound, Location: location})
	r.setUniform(location, func(v *UniformValue) { v.Vec2 = vec })
}

func (r *Recorder) Uniform1(location int32, f float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Name: "Uniform1", Program: r.bound, Location: location})
	r.setUniform(location, func(v *UniformValue) { v.Float = f })
}

func (r *Recorder) CreateBuffer() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Name: "CreateBuffer"})
	return r.handle()
}

func (r *Recorder) DeleteBuffer(buffer uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Name: "DeleteBuffer", Program: buffer})
	r.deleted[buffer] = true
}

func (r *Recorder) BindBuffer(target backend.BufferTarget, buffer uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Name: "BindBuffer", Program: buffer})
	r.bindings[target] = buffer
}

func (r *Recorder) BufferFloats(target backend.BufferTarget, data []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Name: "BufferFloats", Count: int32(len(data))})
	r.buffers[r.bindings[target]] = append([]float32(nil), data...)
}

func (r *Recorder) BufferIndices(target backend.BufferTarget, data []uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Name: "BufferIndices", Count: int32(len(data))})
	r.indices[r.bindings[target]] = append([]uint32(nil), data...)
}

func (r *Recorder) EnableAttrib(location int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Name: "EnableAttrib", Location: location})
}

func (r *Recorder) DisableAttrib(location int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Name: "DisableAttrib", Location: location})
}

func (r *Recorder) AttribPointer(location int32, size int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Name: "AttribPointer", Location: location, Count: size})
}

func (r *Recorder) DrawElements(mode backend.DrawMode, count int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{
		Name:    "DrawElements",
		Program: r.bound,
		Mode:    mode,
		Count:   count,
		Cull:    r.cull,
		Enabled: r.depthTest,
	})
}

func (r *Recorder) SetClearColor(_, _, _, _ float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Name: "SetClearColor"})
}

func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Name: "Clear"})
}

func (r *Recorder) Viewport(_, _, width, height int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Name: "Viewport", Count: width * height})
}

func (r *Recorder) SetDepthTest(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Name: "SetDepthTest", Enabled: enabled})
	r.depthTest = enabled
}

func (r *Recorder) SetCullFace(mode backend.CullMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Call{Name: "SetCullFace", Cull: mode})
	r.cull = mode
}
