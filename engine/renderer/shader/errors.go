package shader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-fireball/engine/renderer/backend"
)

// CompileError is returned when a shader stage fails to compile. Log holds the raw
// compiler diagnostic.
type CompileError struct {
	Key   string
	Stage backend.ShaderStage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader %q: %s", e.Stage, e.Key, e.Log)
}

// LinkError is returned when compiled stages fail to link into a program. Log holds the
// raw linker diagnostic.
type LinkError struct {
	Keys []string
	Log  string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link program %v: %s", e.Keys, e.Log)
}
