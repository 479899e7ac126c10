package model

import (
	"github.com/Carmen-Shannon/oxy-fireball/engine/renderer/backend"
	"go.uber.org/zap"
)

// Slot caches the drawable for one piece of scene geometry together with the tessellation
// level it was built at. A slot is stale until first built and whenever the requested level
// differs from the built one; replacing the model releases the previous one.
type Slot struct {
	key      string
	factory  MeshFactory
	options  []ModelBuilderOption
	model    Model
	level    int
	built    bool
	rebuilds int
}

// NewSlot creates an empty slot.
//
// Parameters:
//   - key: the slot identifier, also used as the model name
//   - factory: the mesh factory used on rebuild
//   - options: ModelBuilderOption functions applied to every model built for the slot
//
// Returns:
//   - *Slot: the empty slot
func NewSlot(key string, factory MeshFactory, options ...ModelBuilderOption) *Slot {
	if factory == nil {
		panic("model: NewSlot requires a non-nil MeshFactory")
	}
	return &Slot{
		key:     key,
		factory: factory,
		options: append([]ModelBuilderOption{WithName(key)}, options...),
	}
}

// Key returns the slot identifier.
func (s *Slot) Key() string {
	return s.key
}

// Model returns the current drawable, or nil before the first build.
func (s *Slot) Model() Model {
	return s.model
}

// Level returns the tessellation level of the current drawable.
func (s *Slot) Level() int {
	return s.level
}

// Rebuilds returns how many times the slot has been (re)built.
func (s *Slot) Rebuilds() int {
	return s.rebuilds
}

// Stale reports whether the slot needs a rebuild for the desired level.
//
// Parameters:
//   - desired: the requested tessellation level
//
// Returns:
//   - bool: true if never built or built at a different level
func (s *Slot) Stale(desired int) bool {
	return !s.built || s.level != desired
}

// Invalidate marks the slot stale regardless of level, forcing the next rebuild.
func (s *Slot) Invalidate() {
	s.built = false
}

// Tessellate produces the CPU mesh for a level. It touches no slot state and is safe to run
// off the graphics thread.
func (s *Slot) Tessellate(level int) Mesh {
	return s.factory(level)
}

// Replace uploads mesh as the slot's new drawable and releases the previous one.
//
// Parameters:
//   - b: the backend to upload to
//   - level: the level mesh was tessellated at
//   - mesh: the CPU geometry
func (s *Slot) Replace(b backend.Backend, level int, mesh Mesh) {
	next := NewModel(b, mesh, s.options...)
	if s.model != nil {
		s.model.Release()
	}
	s.model = next
	s.level = level
	s.built = true
	s.rebuilds++
}

// Rebuild tessellates and uploads synchronously if the slot is stale for level.
//
// Parameters:
//   - b: the backend to upload to
//   - level: the requested tessellation level
//
// Returns:
//   - bool: true if a rebuild happened
func (s *Slot) Rebuild(b backend.Backend, level int) bool {
	if !s.Stale(level) {
		return false
	}
	s.Replace(b, level, s.Tessellate(level))
	return true
}

// Release frees the current drawable and marks the slot stale.
func (s *Slot) Release() {
	if s.model != nil {
		s.model.Release()
		s.model = nil
	}
	s.built = false
}

// RebuildRequest pairs a slot with the level it should be rebuilt at.
type RebuildRequest struct {
	Slot  *Slot
	Level int
}

// logRebuild reports a finished rebuild at debug level.
func logRebuild(logger *zap.Logger, s *Slot) {
	logger.Debug("geometry rebuilt",
		zap.String("slot", s.key),
		zap.Int("level", s.level),
		zap.Int32("indices", s.model.ElemCount()),
	)
}
