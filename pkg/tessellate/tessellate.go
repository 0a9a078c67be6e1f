// Package tessellate turns a scene into triangle meshes for viewers: one
// mesh per hull plus a small kernel-built sphere for every marked point.
package tessellate

import (
	"fmt"

	"github.com/AnonimowyCoder/Projekt-GO/pkg/geom"
	"github.com/AnonimowyCoder/Projekt-GO/pkg/kernel"
	"github.com/AnonimowyCoder/Projekt-GO/pkg/scene"
)

// DefaultMarkerRadius is the sphere radius used for markers when the caller
// passes a non-positive radius.
const DefaultMarkerRadius = 0.05

// Marker is a point drawn as a small sphere, typically an intersection.
type Marker struct {
	Name  string
	Point geom.Vec3
}

// Tessellate produces hull meshes in scene order followed by marker meshes
// in marker order. Empty hulls yield no mesh. Markers need a kernel; with a
// nil kernel they are skipped. The scene is never mutated.
func Tessellate(s *scene.Scene, k kernel.Kernel, markers []Marker, radius float64) ([]*kernel.Mesh, error) {
	if s == nil {
		return nil, nil
	}

	var meshes []*kernel.Mesh
	for _, h := range s.Hulls {
		if h.IsEmpty() {
			continue
		}
		meshes = append(meshes, h.ToMesh())
	}

	if k == nil || len(markers) == 0 {
		return meshes, nil
	}
	if radius <= 0 {
		radius = DefaultMarkerRadius
	}
	for _, m := range markers {
		mesh, err := marker(k, m, radius)
		if err != nil {
			return nil, fmt.Errorf("tessellate: marker %s: %w", m.Name, err)
		}
		meshes = append(meshes, mesh)
	}
	return meshes, nil
}

func marker(k kernel.Kernel, m Marker, radius float64) (*kernel.Mesh, error) {
	solid := k.Sphere(radius)
	if !m.Point.IsZero() {
		solid = k.Translate(solid, m.Point)
	}
	mesh, err := k.ToMesh(solid)
	if err != nil {
		return nil, err
	}
	mesh.Name = m.Name
	return mesh, nil
}
