package scene

import (
	"io/fs"

	"cogentcore.org/core/base/randx"
	"github.com/Carmen-Shannon/oxy-fireball/engine/animator"
	"github.com/Carmen-Shannon/oxy-fireball/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithAnimator supplies the speed state machine instead of building one from the store's initial speed.
// WithAnimatorOptions is ignored when an animator is supplied.
//
// Parameters:
//   - a: the animator
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithAnimator(a animator.SpeedAnimator) SceneBuilderOption {
	return func(s *scene) {
		s.animator = a
	}
}

// WithAnimatorOptions appends options to the animator the scene builds, e.g. configured timings.
//
// Parameters:
//   - options: SpeedAnimatorBuilderOption functions
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithAnimatorOptions(options ...animator.SpeedAnimatorBuilderOption) SceneBuilderOption {
	return func(s *scene) {
		s.animOptions = append(s.animOptions, options...)
	}
}

// WithRandom sets the random source camera shake is drawn from. Defaults to a SysRand seeded with 1.
//
// Parameters:
//   - rng: the random source
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRandom(rng randx.Rand) SceneBuilderOption {
	return func(s *scene) {
		s.rng = rng
	}
}

// WithAnchors sets the camera positions used at full speed (fast) and at rest (slow).
//
// Parameters:
//   - slow: the camera position at speed 0
//   - fast: the camera position at speed 1
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithAnchors(slow, fast mgl32.Vec3) SceneBuilderOption {
	return func(s *scene) {
		s.slowAnchor = slow
		s.fastAnchor = fast
	}
}

// WithShaderFS overrides the filesystem the GLSL stages are read from.
// The filesystem must hold assets/<program>.vert.glsl and assets/<program>.frag.glsl for
// every program.
//
// Parameters:
//   - fsys: the shader filesystem
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithShaderFS(fsys fs.FS) SceneBuilderOption {
	return func(s *scene) {
		s.shaderFS = fsys
	}
}

// WithTessellator supplies the tessellator used for geometry rebuilds.
//
// Parameters:
//   - t: the tessellator
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithTessellator(t *model.Tessellator) SceneBuilderOption {
	return func(s *scene) {
		s.tessellator = t
	}
}

// WithWorkers sets the number of tessellation workers. Defaults to GOMAXPROCS.
// Ignored when a tessellator is supplied with WithTessellator.
//
// Parameters:
//   - n: the number of workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.workers = n
	}
}

// WithLogger sets the logger the scene and the components it builds report to.
//
// Parameters:
//   - logger: the zap logger to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) SceneBuilderOption {
	return func(s *scene) {
		if logger != nil {
			s.logger = logger
		}
	}
}
