package geom

// Plane is one triangular face of a hull: three ordered vertices and the
// normal derived from them.
type Plane struct {
	A      Vec3 `json:"a"`
	B      Vec3 `json:"b"`
	C      Vec3 `json:"c"`
	Normal Vec3 `json:"normal"`
}

// NewPlane builds a face from three points. The normal is (B-A) × (C-A) and is
// not normalized, so reversing the vertex order negates it. Collinear points
// are not rejected; they yield a zero normal that never intersects anything.
func NewPlane(a, b, c Vec3) Plane {
	return Plane{
		A:      a,
		B:      b,
		C:      c,
		Normal: b.Sub(a).Cross(c.Sub(a)),
	}
}

// Vertices returns the face's points in their stated order.
func (p Plane) Vertices() [3]Vec3 {
	return [3]Vec3{p.A, p.B, p.C}
}
