package renderer

import (
	"github.com/Carmen-Shannon/oxy-fireball/engine/renderer/shader"
	"go.uber.org/zap"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithProgram pre-registers an already linked Program in the renderer's program cache under the given key.
//
// Parameters:
//   - key: the unique identifier for the program
//   - p: the Program to cache
//
// Returns:
//   - RendererBuilderOption: a function that applies the program option to a renderer
func WithProgram(key string, p shader.Program) RendererBuilderOption {
	return func(r *renderer) {
		r.programCache[key] = p
	}
}

// WithProgramContext shares an existing ProgramContext instead of creating a new one.
// Programs linked outside the renderer must use the same context for bind deduplication to hold.
//
// Parameters:
//   - ctx: the shared active-program state
//
// Returns:
//   - RendererBuilderOption: a function that applies the context option to a renderer
func WithProgramContext(ctx *shader.ProgramContext) RendererBuilderOption {
	return func(r *renderer) {
		r.ctx = ctx
	}
}

// WithClearColor sets the initial clear colour.
//
// Parameters:
//   - red, green, blue, alpha: the colour components in [0, 1]
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear colour option to a renderer
func WithClearColor(red, green, blue, alpha float32) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor[0], r.clearColor[1], r.clearColor[2], r.clearColor[3] = red, green, blue, alpha
	}
}

// WithLogger sets the logger program link failures are reported to.
//
// Parameters:
//   - logger: the zap logger to use
//
// Returns:
//   - RendererBuilderOption: a function that applies the logger option to a renderer
func WithLogger(logger *zap.Logger) RendererBuilderOption {
	return func(r *renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}
