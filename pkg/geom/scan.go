package geom

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Policy selects how a face sequence is scanned. Every policy returns the
// lowest-index face the line crosses inside its triangle; face order is part
// of the result, and a closer crossing on a later face never wins.
type Policy int

const (
	FirstHit         Policy = iota // sequential scan, stops at the first match
	ParallelFirstHit               // chunked concurrent scan, lowest matching index wins
)

func (p Policy) String() string {
	switch p {
	case FirstHit:
		return "first-hit"
	case ParallelFirstHit:
		return "parallel-first-hit"
	default:
		return "unknown"
	}
}

// ParsePolicy maps a policy name to a Policy. The empty string selects FirstHit.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "", "first-hit":
		return FirstHit, nil
	case "parallel-first-hit":
		return ParallelFirstHit, nil
	}
	return FirstHit, fmt.Errorf("geom: unknown scan policy %q", name)
}

// Hit describes a successful hull intersection.
type Hit struct {
	Face  int     `json:"face"`  // index into the scanned face slice
	T     float64 `json:"t"`     // line parameter of Point
	Point Vec3    `json:"point"` // the crossing
}

// Intersector bundles the tunables of a hull scan.
type Intersector struct {
	Epsilon     float64     // parallel threshold; zero means ParallelEpsilon
	Containment Containment // nil means XYProjection
	Policy      Policy
	Workers     int // ParallelFirstHit worker limit; zero means GOMAXPROCS
}

// DefaultIntersector returns the sequential first-hit scan with the xy
// projection containment test and ParallelEpsilon.
func DefaultIntersector() Intersector {
	return Intersector{
		Epsilon:     ParallelEpsilon,
		Containment: XYProjection{},
		Policy:      FirstHit,
	}
}

func (ix Intersector) epsilon() float64 {
	if ix.Epsilon == 0 {
		return ParallelEpsilon
	}
	return ix.Epsilon
}

func (ix Intersector) containment() Containment {
	if ix.Containment == nil {
		return XYProjection{}
	}
	return ix.Containment
}

// IntersectPlane is Line.IntersectPlane with the intersector's epsilon.
func (ix Intersector) IntersectPlane(l Line, p Plane) (Vec3, bool) {
	return l.intersectPlane(p, ix.epsilon())
}

// IntersectHull returns the point where l first crosses faces, in face order.
// An empty slice never hits.
func (ix Intersector) IntersectHull(l Line, faces []Plane) (Vec3, bool) {
	h, ok := ix.Scan(l, faces)
	return h.Point, ok
}

// Scan is IntersectHull that also reports which face matched.
func (ix Intersector) Scan(l Line, faces []Plane) (Hit, bool) {
	if ix.Policy == ParallelFirstHit {
		return ix.scanParallel(l, faces)
	}
	return ix.scanRange(l, faces, 0, len(faces))
}

// test checks a single face.
func (ix Intersector) test(l Line, face Plane, eps float64, c Containment) (float64, Vec3, bool) {
	t, pt, ok := l.planeParameter(face, eps)
	if !ok || !c.Contains(pt, face) {
		return 0, Vec3{}, false
	}
	return t, pt, true
}

func (ix Intersector) scanRange(l Line, faces []Plane, lo, hi int) (Hit, bool) {
	eps, c := ix.epsilon(), ix.containment()
	for i := lo; i < hi; i++ {
		if t, pt, ok := ix.test(l, faces[i], eps, c); ok {
			return Hit{Face: i, T: t, Point: pt}, true
		}
	}
	return Hit{}, false
}

// scanParallel splits faces into contiguous chunks, finds the first match in
// each chunk, and keeps the match from the lowest chunk. Chunks above the
// lowest chunk that already matched are skipped.
func (ix Intersector) scanParallel(l Line, faces []Plane) (Hit, bool) {
	workers := ix.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers <= 1 || len(faces) < 2*workers {
		return ix.scanRange(l, faces, 0, len(faces))
	}

	chunk := (len(faces) + workers - 1) / workers
	n := (len(faces) + chunk - 1) / chunk
	hits := make([]Hit, n)
	found := make([]bool, n)

	var lowest atomic.Int64
	lowest.Store(int64(n))

	var g errgroup.Group
	g.SetLimit(workers)
	for c := 0; c < n; c++ {
		lo := c * chunk
		hi := min(lo+chunk, len(faces))
		g.Go(func() error {
			if int64(c) > lowest.Load() {
				return nil
			}
			hits[c], found[c] = ix.scanRange(l, faces, lo, hi)
			if !found[c] {
				return nil
			}
			for {
				cur := lowest.Load()
				if int64(c) >= cur || lowest.CompareAndSwap(cur, int64(c)) {
					return nil
				}
			}
		})
	}
	_ = g.Wait()

	for c := 0; c < n; c++ {
		if found[c] {
			return hits[c], true
		}
	}
	return Hit{}, false
}
