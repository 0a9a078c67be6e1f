package kernel

import "fmt"

// Mesh is a triangle mesh.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Name     string    `json:"name"`     // hull or solid this mesh came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Vertex returns the position of vertex i.
func (m *Mesh) Vertex(i int) [3]float64 {
	return [3]float64{
		float64(m.Vertices[3*i]),
		float64(m.Vertices[3*i+1]),
		float64(m.Vertices[3*i+2]),
	}
}

// Triangle returns the vertex indices of triangle i, checking them against
// the vertex buffer.
func (m *Mesh) Triangle(i int) ([3]int, error) {
	if i < 0 || i >= m.TriangleCount() {
		return [3]int{}, fmt.Errorf("mesh: triangle %d out of range [0,%d)", i, m.TriangleCount())
	}
	var tri [3]int
	n := m.VertexCount()
	for j := 0; j < 3; j++ {
		idx := int(m.Indices[3*i+j])
		if idx >= n {
			return [3]int{}, fmt.Errorf("mesh: triangle %d references vertex %d, have %d", i, idx, n)
		}
		tri[j] = idx
	}
	return tri, nil
}
