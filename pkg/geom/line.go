package geom

import "math"

// ParallelEpsilon is the absolute threshold on normal·direction below which a
// line counts as parallel to (or lying in) a plane.
const ParallelEpsilon = 1e-10

// Line is the unbounded parametric line Start + t*Direction.
// Direction must be non-zero; this is not checked.
type Line struct {
	Start     Vec3 `json:"start"`
	Direction Vec3 `json:"direction"`
}

// NewLine returns the line through start along dir.
func NewLine(start, dir Vec3) Line {
	return Line{Start: start, Direction: dir}
}

// PointAt returns Start + t*Direction. Negative t is valid.
func (l Line) PointAt(t float64) Vec3 {
	return Vec3{
		l.Start.X + t*l.Direction.X,
		l.Start.Y + t*l.Direction.Y,
		l.Start.Z + t*l.Direction.Z,
	}
}

// IntersectPlane returns the point where l crosses the plane of p, using
// ParallelEpsilon. The second result is false when the line is parallel to
// the plane or lies in it.
func (l Line) IntersectPlane(p Plane) (Vec3, bool) {
	return l.intersectPlane(p, ParallelEpsilon)
}

// IntersectHull scans faces with DefaultIntersector.
func (l Line) IntersectHull(faces []Plane) (Vec3, bool) {
	return DefaultIntersector().IntersectHull(l, faces)
}

func (l Line) intersectPlane(p Plane, eps float64) (Vec3, bool) {
	_, pt, ok := l.planeParameter(p, eps)
	return pt, ok
}

// planeParameter returns the parameter t of the crossing along with the point.
func (l Line) planeParameter(p Plane, eps float64) (float64, Vec3, bool) {
	numerator := p.Normal.Dot(p.A.Sub(l.Start))
	denominator := p.Normal.Dot(l.Direction)
	if math.Abs(denominator) < eps {
		return 0, Vec3{}, false
	}
	t := numerator / denominator
	return t, l.PointAt(t), true
}
