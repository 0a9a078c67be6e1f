package geom

import (
	"fmt"
	"math"
)

// Containment classifies a point already known to lie in a face's plane as
// inside or outside the face's triangle.
type Containment interface {
	Contains(p Vec3, face Plane) bool
}

// XYProjection is the default containment test. It runs the 2D orientation
// test on x and y only and ignores z, so it is only reliable for faces whose
// xy projection is a proper triangle. Vertical faces project to a segment and
// may be misclassified.
type XYProjection struct{}

// Contains reports whether p lies inside or on the boundary of face,
// projected onto the xy plane.
func (XYProjection) Contains(p Vec3, face Plane) bool {
	return signTest(
		[2]float64{p.X, p.Y},
		[2]float64{face.A.X, face.A.Y},
		[2]float64{face.B.X, face.B.Y},
		[2]float64{face.C.X, face.C.Y},
	)
}

// DominantAxis drops the coordinate with the largest absolute normal
// component before running the same orientation test. Unlike XYProjection it
// handles steep and vertical faces. It changes observable results, so it is
// opt-in.
type DominantAxis struct{}

// Contains reports whether p lies inside or on the boundary of face,
// projected onto the plane best aligned with it.
func (DominantAxis) Contains(p Vec3, face Plane) bool {
	n := face.Normal
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)

	proj := func(v Vec3) [2]float64 { return [2]float64{v.X, v.Y} }
	switch {
	case ax >= ay && ax >= az:
		proj = func(v Vec3) [2]float64 { return [2]float64{v.Y, v.Z} }
	case ay >= az:
		proj = func(v Vec3) [2]float64 { return [2]float64{v.Z, v.X} }
	}
	return signTest(proj(p), proj(face.A), proj(face.B), proj(face.C))
}

// sign is the shoelace orientation of (p1, p2, p3).
func sign(p1, p2, p3 [2]float64) float64 {
	return (p1[0]-p3[0])*(p2[1]-p3[1]) - (p2[0]-p3[0])*(p1[1]-p3[1])
}

// signTest is inside unless the three orientations mix strictly positive and
// strictly negative values. A zero counts as on the boundary.
func signTest(p, a, b, c [2]float64) bool {
	d1 := sign(p, a, b)
	d2 := sign(p, b, c)
	d3 := sign(p, c, a)

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0

	return !(hasNeg && hasPos)
}

// Containment names accepted by ContainmentByName.
const (
	ContainmentXY           = "xy"
	ContainmentDominantAxis = "dominant-axis"
)

// ContainmentByName returns the containment test registered under name.
// The empty string selects XYProjection.
func ContainmentByName(name string) (Containment, error) {
	switch name {
	case "", ContainmentXY:
		return XYProjection{}, nil
	case ContainmentDominantAxis:
		return DominantAxis{}, nil
	}
	return nil, fmt.Errorf("geom: unknown containment %q, expected %q or %q",
		name, ContainmentXY, ContainmentDominantAxis)
}
