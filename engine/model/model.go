package model

import (
	"github.com/Carmen-Shannon/oxy-fireball/engine/renderer/backend"
)

// Drawable is anything a shader program can issue an indexed draw for.
// Each Bind* call binds the corresponding buffer on the backend and reports whether the
// stream exists; a drawable without normals declines BindNor.
type Drawable interface {
	// BindPos binds the position stream (vec4 per vertex).
	//
	// Returns:
	//   - bool: true if the drawable has positions and they were bound
	BindPos() bool

	// BindNor binds the normal stream (vec4 per vertex).
	//
	// Returns:
	//   - bool: true if the drawable has normals and they were bound
	BindNor() bool

	// BindIdx binds the index stream.
	//
	// Returns:
	//   - bool: true if the drawable has indices and they were bound
	BindIdx() bool

	// DrawMode returns the primitive topology.
	DrawMode() backend.DrawMode

	// ElemCount returns the number of indices to draw.
	ElemCount() int32
}

// model is the implementation of the Model interface.
type model struct {
	backend backend.Backend
	name    string
	mode    backend.DrawMode
	count   int32

	bufPos, bufNor, bufIdx uint32
	genPos, genNor, genIdx bool
}

// Model defines the interface for a mesh uploaded to the graphics backend.
// A Model owns its buffers; Release frees them and the model must not be drawn afterwards.
type Model interface {
	Drawable

	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Release deletes every buffer the model owns. Calling it twice is a no-op.
	Release()
}

var _ Model = &model{}

// NewModel uploads a CPU mesh to the backend and returns the drawable handle for it.
// Streams with no data are not created, so the matching Bind* call reports false.
//
// Parameters:
//   - b: the backend to upload to
//   - mesh: the CPU geometry
//   - options: ModelBuilderOption functions to configure the model
//
// Returns:
//   - Model: the uploaded model
func NewModel(b backend.Backend, mesh Mesh, options ...ModelBuilderOption) Model {
	if b == nil {
		panic("model: NewModel requires a non-nil Backend")
	}
	m := &model{
		backend: b,
		mode:    backend.DrawTriangles,
		count:   int32(len(mesh.Indices)),
	}
	for _, option := range options {
		option(m)
	}

	if len(mesh.Indices) > 0 {
		m.bufIdx = b.CreateBuffer()
		m.genIdx = true
		b.BindBuffer(backend.BufferIndex, m.bufIdx)
		b.BufferIndices(backend.BufferIndex, mesh.Indices)
	}
	if len(mesh.Positions) > 0 {
		m.bufPos = b.CreateBuffer()
		m.genPos = true
		b.BindBuffer(backend.BufferVertex, m.bufPos)
		b.BufferFloats(backend.BufferVertex, mesh.Positions)
	}
	if len(mesh.Normals) > 0 {
		m.bufNor = b.CreateBuffer()
		m.genNor = true
		b.BindBuffer(backend.BufferVertex, m.bufNor)
		b.BufferFloats(backend.BufferVertex, mesh.Normals)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) BindPos() bool {
	if m.genPos {
		m.backend.BindBuffer(backend.BufferVertex, m.bufPos)
	}
	return m.genPos
}

func (m *model) BindNor() bool {
	if m.genNor {
		m.backend.BindBuffer(backend.BufferVertex, m.bufNor)
	}
	return m.genNor
}

func (m *model) BindIdx() bool {
	if m.genIdx {
		m.backend.BindBuffer(backend.BufferIndex, m.bufIdx)
	}
	return m.genIdx
}

func (m *model) DrawMode() backend.DrawMode {
	return m.mode
}

func (m *model) ElemCount() int32 {
	return m.count
}

func (m *model) Release() {
	if m.genIdx {
		m.backend.DeleteBuffer(m.bufIdx)
		m.genIdx = false
	}
	if m.genPos {
		m.backend.DeleteBuffer(m.bufPos)
		m.genPos = false
	}
	if m.genNor {
		m.backend.DeleteBuffer(m.bufNor)
		m.genNor = false
	}
	m.count = 0
}
