package shader

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/Carmen-Shannon/oxy-fireball/engine/renderer/backend"
)

// shader is the implementation of the Shader interface.
// It holds the GLSL source of a single pipeline stage and the key used to identify it in diagnostics.
type shader struct {
	key    string
	source string
	stage  backend.ShaderStage
}

// Shader defines the interface for a single GLSL pipeline stage. Shaders are plain source holders;
// they are compiled by a Program against a backend when the program is linked.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used in diagnostics.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the GLSL source code.
	//
	// Returns:
	//   - string: the GLSL source code of the shader
	Source() string

	// Stage returns the pipeline stage this shader targets.
	//
	// Returns:
	//   - backend.ShaderStage: StageVertex or StageFragment
	Stage() backend.ShaderStage
}

var _ Shader = &shader{}

// NewShader creates a new Shader from in-memory GLSL source.
//
// Parameters:
//   - key: a unique identifier for the shader, used in diagnostics
//   - stage: the pipeline stage the source targets
//   - source: the GLSL source code
//
// Returns:
//   - Shader: a new Shader instance
func NewShader(key string, stage backend.ShaderStage, source string) Shader {
	if strings.TrimSpace(source) == "" {
		panic(fmt.Sprintf("shader: %s must have a non-empty source", key))
	}
	return &shader{
		key:    key,
		source: source,
		stage:  stage,
	}
}

// NewShaderFromFS reads GLSL source from a file system, typically an embedded asset tree.
// The file path doubles as the shader key.
//
// Parameters:
//   - fsys: the file system to read from
//   - stage: the pipeline stage the source targets
//   - path: the path of the source file within fsys
//
// Returns:
//   - Shader: a new Shader instance
//   - error: error if the file cannot be read or is empty
func NewShaderFromFS(fsys fs.FS, stage backend.ShaderStage, path string) (Shader, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read shader source %q: %w", path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("shader source %q is empty", path)
	}
	return &shader{
		key:    path,
		source: string(data),
		stage:  stage,
	}, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) Stage() backend.ShaderStage {
	return s.stage
}

// compile compiles a shader stage against the backend.
func compile(b backend.Backend, s Shader) (uint32, error) {
	handle, log, ok := b.CompileShader(s.Stage(), s.Source())
	if !ok {
		return 0, &CompileError{Key: s.Key(), Stage: s.Stage(), Log: log}
	}
	return handle, nil
}
