// Package kernel defines the abstract geometry kernel interface.
// A kernel builds solids and tessellates them into triangle meshes; those
// meshes are one source of the ordered face lists that hull queries scan.
package kernel

import "github.com/AnonimowyCoder/Projekt-GO/pkg/geom"

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) Solid
	Sphere(radius float64) Solid
	Cylinder(height, radius float64) Solid

	// Boolean operations
	Union(a, b Solid) Solid

	// Transforms
	Translate(s Solid, offset geom.Vec3) Solid

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
