package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// CubeVertices are the corners of a unit cube centered at the origin.
var CubeVertices = [8]mgl32.Vec3{
	{0.5, 0.5, -0.5},
	{0.5, -0.5, -0.5},
	{0.5, 0.5, 0.5},
	{0.5, -0.5, 0.5},
	{-0.5, 0.5, -0.5},
	{-0.5, -0.5, -0.5},
	{-0.5, 0.5, 0.5},
	{-0.5, -0.5, 0.5},
}

// CubeIndices holds 12 triangles, two per face.
var CubeIndices = [36]uint32{
	4, 2, 0,
	2, 7, 3,
	6, 5, 7,
	1, 7, 5,
	0, 3, 1,
	4, 1, 5,
	4, 6, 2,
	2, 6, 7,
	6, 4, 5,
	1, 3, 7,
	0, 2, 3,
	4, 0, 1,
}

// Mesh is indexed triangle geometry shared by every instance.
type Mesh struct {
	Vertices []mgl32.Vec3
	Indices  []uint32
}

func (m Mesh) IndexCount() uint32 {
	return uint32(len(m.Indices))
}

// CubeMesh returns a copy of the cube table.
func CubeMesh() Mesh {
	vertices := make([]mgl32.Vec3, len(CubeVertices))
	copy(vertices, CubeVertices[:])
	indices := make([]uint32, len(CubeIndices))
	copy(indices, CubeIndices[:])
	return Mesh{Vertices: vertices, Indices: indices}
}
