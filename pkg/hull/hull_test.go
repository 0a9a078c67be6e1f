package hull

import (
	"math"
	"testing"

	"github.com/AnonimowyCoder/Projekt-GO/pkg/geom"
	"github.com/AnonimowyCoder/Projekt-GO/pkg/kernel"
	"github.com/AnonimowyCoder/Projekt-GO/pkg/kernel/sdfx"
	"github.com/davecgh/go-spew/spew"
)

var (
	origin = geom.Vec3{}
	two    = geom.Vec3{X: 2, Y: 2, Z: 2}
)

func dominant() geom.Intersector {
	ix := geom.DefaultIntersector()
	ix.Containment = geom.DominantAxis{}
	return ix
}

func TestBoxFaces(t *testing.T) {
	h := Box("cube", origin, two)
	if h.FaceCount() != 12 {
		t.Fatalf("FaceCount() = %d, want 12", h.FaceCount())
	}
	if len(h.Vertices) != 8 {
		t.Fatalf("len(Vertices) = %d, want 8", len(h.Vertices))
	}

	center := geom.Vec3{X: 1, Y: 1, Z: 1}
	for i, f := range h.Faces {
		centroid := f.A.Add(f.B).Add(f.C).MulScalar(1.0 / 3)
		if f.Normal.Dot(centroid.Sub(center)) <= 0 {
			t.Errorf("face %d normal %v points inward", i, f.Normal)
		}
		if f.Normal.Length() == 0 {
			t.Errorf("face %d is degenerate", i)
		}
	}
}

func TestBoxOriginalScenario(t *testing.T) {
	h := Box("cube", origin, two)
	l := geom.NewLine(geom.Vec3{X: 1, Y: 1, Z: 1}, geom.Vec3{X: 1, Y: 0, Z: -1})

	want := geom.Hit{Face: 1, T: 1, Point: geom.Vec3{X: 2, Y: 1, Z: 0}}
	for run := 0; run < 5; run++ {
		got, ok := h.Intersect(l, geom.DefaultIntersector())
		if !ok {
			t.Fatalf("run %d: no hit", run)
		}
		if got != want {
			t.Fatalf("run %d: Intersect() = %s, want %s", run, spew.Sdump(got), spew.Sdump(want))
		}
	}
}

func TestBoxVerticalFaceCaveat(t *testing.T) {
	h := Box("cube", origin, two)
	// Parallel to x, well clear of the box.
	l := geom.NewLine(geom.Vec3{X: 10, Y: 10, Z: 10}, geom.Vec3{X: 1, Y: 0, Z: 0})

	// The xy test collapses the x=0 face to a segment and accepts the point.
	got, ok := h.Intersect(l, geom.DefaultIntersector())
	if !ok || got.Point != (geom.Vec3{X: 0, Y: 10, Z: 10}) {
		t.Errorf("xy Intersect() = %+v, %v; want the false hit at (0, 10, 10)", got, ok)
	}

	if got, ok := h.Intersect(l, dominant()); ok {
		t.Errorf("dominant-axis Intersect() = %+v, want miss", got)
	}
}

func TestBoxDominantAxisThroughCenter(t *testing.T) {
	h := Box("cube", origin, two)
	l := geom.NewLine(geom.Vec3{X: -5, Y: 1, Z: 1}, geom.Vec3{X: 1, Y: 0, Z: 0})

	got, ok := h.Intersect(l, dominant())
	if !ok {
		t.Fatal("no hit")
	}
	if got.Face != 8 || got.Point != (geom.Vec3{X: 0, Y: 1, Z: 1}) {
		t.Errorf("Intersect() = %+v, want left face 8 at (0, 1, 1)", got)
	}
}

func TestBounds(t *testing.T) {
	lo := geom.Vec3{X: -1, Y: 2, Z: -3}
	hi := geom.Vec3{X: 4, Y: 5, Z: 6}
	min, max := Box("b", lo, hi).Bounds()
	if min != lo || max != hi {
		t.Errorf("Bounds() = %v, %v; want %v, %v", min, max, lo, hi)
	}

	empty := New("empty", nil, nil)
	if !empty.IsEmpty() {
		t.Error("IsEmpty() = false for hull without faces")
	}
	min, max = empty.Bounds()
	if min != (geom.Vec3{}) || max != (geom.Vec3{}) {
		t.Errorf("empty Bounds() = %v, %v", min, max)
	}
	if _, ok := empty.Intersect(geom.NewLine(origin, two), geom.DefaultIntersector()); ok {
		t.Error("empty hull reported a hit")
	}
}

func TestNewCollectsVertices(t *testing.T) {
	a, b, c, d := geom.Vec3{}, geom.Vec3{X: 1}, geom.Vec3{Y: 1}, geom.Vec3{Z: 1}
	h := New("tet", []geom.Plane{
		geom.NewPlane(a, c, b),
		geom.NewPlane(a, b, d),
	}, nil)

	want := []geom.Vec3{a, c, b, d}
	if len(h.Vertices) != len(want) {
		t.Fatalf("Vertices = %v, want %v", h.Vertices, want)
	}
	for i := range want {
		if h.Vertices[i] != want[i] {
			t.Errorf("Vertices[%d] = %v, want %v", i, h.Vertices[i], want[i])
		}
	}
}

func TestFromMesh(t *testing.T) {
	m := &kernel.Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0},
		Indices:  []uint32{0, 1, 2, 0, 2, 3},
	}
	h, err := FromMesh("quad", m)
	if err != nil {
		t.Fatalf("FromMesh() error = %v", err)
	}
	if h.FaceCount() != 2 || len(h.Vertices) != 4 {
		t.Fatalf("FromMesh() = %d faces, %d vertices; want 2, 4", h.FaceCount(), len(h.Vertices))
	}
	if h.Faces[1].C != (geom.Vec3{Y: 1}) {
		t.Errorf("face 1 C = %v, want (0, 1, 0)", h.Faces[1].C)
	}
	if h.Faces[0].Normal != (geom.Vec3{Z: 1}) {
		t.Errorf("face 0 normal = %v, want (0, 0, 1)", h.Faces[0].Normal)
	}
}

func TestFromMeshErrors(t *testing.T) {
	tests := []struct {
		name string
		mesh *kernel.Mesh
	}{
		{"nil", nil},
		{"ragged indices", &kernel.Mesh{Vertices: []float32{0, 0, 0}, Indices: []uint32{0, 0}}},
		{"dangling index", &kernel.Mesh{Vertices: []float32{0, 0, 0}, Indices: []uint32{0, 0, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromMesh("bad", tt.mesh); err == nil {
				t.Error("FromMesh() error = nil, want error")
			}
		})
	}
}

func TestToMeshRoundTrip(t *testing.T) {
	h := Box("cube", origin, two)
	m := h.ToMesh()
	if m.TriangleCount() != 12 || m.VertexCount() != 36 || m.Name != "cube" {
		t.Fatalf("ToMesh() = %d triangles, %d vertices, name %q", m.TriangleCount(), m.VertexCount(), m.Name)
	}

	back, err := FromMesh("cube", m)
	if err != nil {
		t.Fatalf("FromMesh() error = %v", err)
	}
	for i := range h.Faces {
		if back.Faces[i] != h.Faces[i] {
			t.Errorf("face %d = %v, want %v", i, back.Faces[i], h.Faces[i])
		}
	}
}

func TestFromSolidSphere(t *testing.T) {
	const radius = 5.0
	k := sdfx.New(20)
	h, err := FromSolid("ball", k, k.Sphere(radius))
	if err != nil {
		t.Fatalf("FromSolid() error = %v", err)
	}
	if h.IsEmpty() {
		t.Fatal("sphere hull has no faces")
	}

	l := geom.NewLine(geom.Vec3{X: -20, Y: 0.3, Z: 0.2}, geom.Vec3{X: 1, Y: 0, Z: 0})
	got, ok := h.Intersect(l, dominant())
	if !ok {
		t.Fatal("line through the sphere reported no hit")
	}
	if got.Point.Y != 0.3 || got.Point.Z != 0.2 {
		t.Errorf("hit %v is off the line", got.Point)
	}
	cell := 2 * radius / float64(k.Cells())
	if r := got.Point.Length(); math.Abs(r-radius) > cell {
		t.Errorf("hit %v at radius %f, want ~%f", got.Point, r, radius)
	}

	miss := geom.NewLine(geom.Vec3{X: -20, Y: 9, Z: 0}, geom.Vec3{X: 1, Y: 0, Z: 0})
	if got, ok := h.Intersect(miss, dominant()); ok {
		t.Errorf("line clear of the sphere hit at %v", got.Point)
	}
}
