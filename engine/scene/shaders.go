package scene

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/Carmen-Shannon/oxy-fireball/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-fireball/engine/renderer/shader"
)

//go:embed assets/*.glsl
var embeddedShaders embed.FS

// Program keys registered with the renderer.
const (
	ProgramBackground = "background"
	ProgramRim        = "rim"
	ProgramVortex     = "vortex"
	ProgramFireball   = "fireball"
)

// programKeys lists every program in pass order.
var programKeys = []string{ProgramBackground, ProgramRim, ProgramVortex, ProgramFireball}

// loadShaders reads the vertex and fragment stage for a program key from fsys.
// Stages live at assets/<key>.vert.glsl and assets/<key>.frag.glsl.
//
// Parameters:
//   - fsys: the filesystem holding the GLSL sources
//   - key: the program key
//
// Returns:
//   - []shader.Shader: the vertex and fragment stages
//   - error: error if either stage cannot be read
func loadShaders(fsys fs.FS, key string) ([]shader.Shader, error) {
	vert, err := shader.NewShaderFromFS(fsys, backend.StageVertex, fmt.Sprintf("assets/%s.vert.glsl", key))
	if err != nil {
		return nil, err
	}
	frag, err := shader.NewShaderFromFS(fsys, backend.StageFragment, fmt.Sprintf("assets/%s.frag.glsl", key))
	if err != nil {
		return nil, err
	}
	return []shader.Shader{vert, frag}, nil
}
