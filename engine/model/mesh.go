package model

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is CPU-side indexed geometry. Positions and normals are packed as four floats per
// vertex (w = 1 for positions, w = 0 for normals) to match the vec4 vertex attributes.
type Mesh struct {
	Positions []float32
	Normals   []float32
	Indices   []uint32
}

// VertexCount returns the number of vertices in the mesh.
func (m Mesh) VertexCount() int {
	return len(m.Positions) / 4
}

// MeshFactory produces a mesh for a tessellation level. Factories must be safe to call
// from any goroutine; they run on the tessellation worker pool.
type MeshFactory func(level int) Mesh

// IcosphereFactory returns a MeshFactory producing icospheres of the given center and radius.
//
// Parameters:
//   - center: the sphere center
//   - radius: the sphere radius
//
// Returns:
//   - MeshFactory: the factory
func IcosphereFactory(center mgl32.Vec3, radius float32) MeshFactory {
	return func(level int) Mesh {
		return Icosphere(center, radius, level)
	}
}

// SquareFactory returns a MeshFactory producing the background plane. The level is ignored.
//
// Parameters:
//   - center: the plane center
//
// Returns:
//   - MeshFactory: the factory
func SquareFactory(center mgl32.Vec3) MeshFactory {
	return func(int) Mesh {
		return Square(center)
	}
}

type edge struct {
	a, b uint32
}

func newEdge(a, b uint32) edge {
	if a > b {
		a, b = b, a
	}
	return edge{a: a, b: b}
}

// Icosphere builds a sphere by subdividing a regular icosahedron level times and projecting
// every new vertex onto the sphere. Midpoints are shared between neighbouring faces, so
// level n has 10*4^n+2 vertices and 20*4^n triangles. Triangles wind counter-clockwise
// when seen from outside.
//
// Parameters:
//   - center: the sphere center
//   - radius: the sphere radius
//   - level: the number of subdivisions, negative values are treated as zero
//
// Returns:
//   - Mesh: the sphere geometry
func Icosphere(center mgl32.Vec3, radius float32, level int) Mesh {
	if level < 0 {
		level = 0
	}

	t := (1 + math32.Sqrt(5)) / 2
	dirs := []mgl32.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	for i := range dirs {
		dirs[i] = dirs[i].Normalize()
	}
	faces := []uint32{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	for range level {
		mids := make(map[edge]uint32, len(faces)/2)
		midpoint := func(a, b uint32) uint32 {
			e := newEdge(a, b)
			if idx, ok := mids[e]; ok {
				return idx
			}
			dirs = append(dirs, dirs[a].Add(dirs[b]).Normalize())
			idx := uint32(len(dirs) - 1)
			mids[e] = idx
			return idx
		}

		next := make([]uint32, 0, len(faces)*4)
		for i := 0; i < len(faces); i += 3 {
			a, b, c := faces[i], faces[i+1], faces[i+2]
			ab, bc, ca := midpoint(a, b), midpoint(b, c), midpoint(c, a)
			next = append(next,
				a, ab, ca,
				b, bc, ab,
				c, ca, bc,
				ab, bc, ca,
			)
		}
		faces = next
	}

	mesh := Mesh{
		Positions: make([]float32, 0, len(dirs)*4),
		Normals:   make([]float32, 0, len(dirs)*4),
		Indices:   faces,
	}
	for _, d := range dirs {
		p := center.Add(d.Mul(radius))
		mesh.Positions = append(mesh.Positions, p[0], p[1], p[2], 1)
		mesh.Normals = append(mesh.Normals, d[0], d[1], d[2], 0)
	}
	return mesh
}

// Square builds a unit quad spanning [-1, 1] on x and y, facing +z.
//
// Parameters:
//   - center: offset applied to every corner
//
// Returns:
//   - Mesh: the quad geometry
func Square(center mgl32.Vec3) Mesh {
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	mesh := Mesh{
		Positions: make([]float32, 0, 16),
		Normals:   make([]float32, 0, 16),
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	}
	for _, c := range corners {
		mesh.Positions = append(mesh.Positions, c[0]+center[0], c[1]+center[1], center[2], 1)
		mesh.Normals = append(mesh.Normals, 0, 0, 1, 0)
	}
	return mesh
}
