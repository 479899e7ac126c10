package model

import "github.com/Carmen-Shannon/oxy-fireball/engine/renderer/backend"

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithDrawMode is an option builder that sets the primitive topology of the Model.
// Models default to backend.DrawTriangles.
//
// Parameters:
//   - mode: the draw mode
//
// Returns:
//   - ModelBuilderOption: a function that applies the draw mode option to a model
func WithDrawMode(mode backend.DrawMode) ModelBuilderOption {
	return func(m *model) {
		m.mode = mode
	}
}
