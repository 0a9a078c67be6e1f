// Package hull holds the closed polyhedra that lines are tested against.
// A Hull is an ordered face list plus the vertex set it was built from; it is
// owned by the caller and passed explicitly to every query.
package hull

import (
	"fmt"
	"math"

	"github.com/AnonimowyCoder/Projekt-GO/pkg/geom"
	"github.com/AnonimowyCoder/Projekt-GO/pkg/kernel"
)

// Hull is a closed polyhedron given as ordered triangular faces. Face order
// is significant: hull queries report the first matching face in this order.
// Vertices are carried for display and are not consulted by queries.
type Hull struct {
	Name     string       `json:"name"`
	Faces    []geom.Plane `json:"faces"`
	Vertices []geom.Vec3  `json:"vertices,omitempty"`
}

// New returns a hull over the given faces. When vertices is nil the face
// corners are collected in first-seen order.
func New(name string, faces []geom.Plane, vertices []geom.Vec3) *Hull {
	if vertices == nil {
		vertices = faceVertices(faces)
	}
	return &Hull{Name: name, Faces: faces, Vertices: vertices}
}

// FaceCount returns the number of faces.
func (h *Hull) FaceCount() int {
	return len(h.Faces)
}

// IsEmpty returns true if the hull has no faces.
func (h *Hull) IsEmpty() bool {
	return len(h.Faces) == 0
}

// Bounds returns the axis-aligned bounds of the face corners. An empty hull
// returns two zero vectors.
func (h *Hull) Bounds() (min, max geom.Vec3) {
	if h.IsEmpty() {
		return geom.Vec3{}, geom.Vec3{}
	}
	inf := math.Inf(1)
	min = geom.Vec3{X: inf, Y: inf, Z: inf}
	max = geom.Vec3{X: -inf, Y: -inf, Z: -inf}
	for _, f := range h.Faces {
		for _, v := range f.Vertices() {
			min = geom.Vec3{X: math.Min(min.X, v.X), Y: math.Min(min.Y, v.Y), Z: math.Min(min.Z, v.Z)}
			max = geom.Vec3{X: math.Max(max.X, v.X), Y: math.Max(max.Y, v.Y), Z: math.Max(max.Z, v.Z)}
		}
	}
	return min, max
}

// Intersect scans the hull's faces for l with ix.
func (h *Hull) Intersect(l geom.Line, ix geom.Intersector) (geom.Hit, bool) {
	return ix.Scan(l, h.Faces)
}

// ToMesh flattens the hull into a mesh with one vertex per face corner, so a
// viewer can colour faces independently.
func (h *Hull) ToMesh() *kernel.Mesh {
	m := &kernel.Mesh{
		Vertices: make([]float32, 0, len(h.Faces)*9),
		Normals:  make([]float32, 0, len(h.Faces)*9),
		Indices:  make([]uint32, 0, len(h.Faces)*3),
		Name:     h.Name,
	}
	for _, f := range h.Faces {
		n := f.Normal
		if l := n.Length(); l > 0 {
			n = n.MulScalar(1 / l)
		}
		for _, v := range f.Vertices() {
			m.Indices = append(m.Indices, uint32(len(m.Vertices)/3))
			m.Vertices = append(m.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
			m.Normals = append(m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
		}
	}
	return m
}

func faceVertices(faces []geom.Plane) []geom.Vec3 {
	seen := make(map[geom.Vec3]bool)
	var out []geom.Vec3
	for _, f := range faces {
		for _, v := range f.Vertices() {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

// Box returns the 12-face axis-aligned box spanning lo to hi. Faces come in a
// fixed order (bottom, top, front, back, left, right; two triangles each)
// and every face normal points outward.
func Box(name string, lo, hi geom.Vec3) *Hull {
	// Corners indexed by bit pattern zyx: bit 0 picks hi.X, bit 1 hi.Y, bit 2 hi.Z.
	var c [8]geom.Vec3
	for i := range c {
		c[i] = lo
		if i&1 != 0 {
			c[i].X = hi.X
		}
		if i&2 != 0 {
			c[i].Y = hi.Y
		}
		if i&4 != 0 {
			c[i].Z = hi.Z
		}
	}

	quads := [6][4]int{
		{0, 2, 3, 1}, // bottom z=lo
		{4, 5, 7, 6}, // top z=hi
		{0, 1, 5, 4}, // front y=lo
		{2, 6, 7, 3}, // back y=hi
		{0, 4, 6, 2}, // left x=lo
		{1, 3, 7, 5}, // right x=hi
	}
	faces := make([]geom.Plane, 0, 12)
	for _, q := range quads {
		faces = append(faces,
			geom.NewPlane(c[q[0]], c[q[1]], c[q[2]]),
			geom.NewPlane(c[q[0]], c[q[2]], c[q[3]]),
		)
	}
	return New(name, faces, c[:])
}

// FromMesh builds a hull from a triangle mesh, one face per triangle in
// index order.
func FromMesh(name string, m *kernel.Mesh) (*Hull, error) {
	if m == nil {
		return nil, fmt.Errorf("hull: %s: nil mesh", name)
	}
	if len(m.Indices)%3 != 0 {
		return nil, fmt.Errorf("hull: %s: index buffer length %d is not a multiple of 3", name, len(m.Indices))
	}

	faces := make([]geom.Plane, 0, m.TriangleCount())
	for i := 0; i < m.TriangleCount(); i++ {
		tri, err := m.Triangle(i)
		if err != nil {
			return nil, fmt.Errorf("hull: %s: %w", name, err)
		}
		var p [3]geom.Vec3
		for j, idx := range tri {
			v := m.Vertex(idx)
			p[j] = geom.Vec3{X: v[0], Y: v[1], Z: v[2]}
		}
		faces = append(faces, geom.NewPlane(p[0], p[1], p[2]))
	}
	return New(name, faces, nil), nil
}

// FromSolid tessellates s with k and builds a hull from the result.
func FromSolid(name string, k kernel.Kernel, s kernel.Solid) (*Hull, error) {
	m, err := k.ToMesh(s)
	if err != nil {
		return nil, fmt.Errorf("hull: %s: tessellate: %w", name, err)
	}
	m.Name = name
	return FromMesh(name, m)
}
