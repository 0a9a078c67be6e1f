// Package query runs hull query scripts end to end: evaluate the script,
// validate the resulting scene, intersect every query and package the
// answers together with viewer meshes.
package query

import (
	"fmt"
	"log"

	"github.com/AnonimowyCoder/Projekt-GO/pkg/config"
	"github.com/AnonimowyCoder/Projekt-GO/pkg/engine"
	"github.com/AnonimowyCoder/Projekt-GO/pkg/geom"
	"github.com/AnonimowyCoder/Projekt-GO/pkg/hull"
	"github.com/AnonimowyCoder/Projekt-GO/pkg/kernel"
	"github.com/AnonimowyCoder/Projekt-GO/pkg/kernel/sdfx"
	"github.com/AnonimowyCoder/Projekt-GO/pkg/scene"
	"github.com/AnonimowyCoder/Projekt-GO/pkg/tessellate"
)

// colorPalette is a default palette used to assign distinct colors to meshes.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// Service evaluates scripts and answers their queries.
type Service struct {
	engine       *engine.Engine
	kernel       kernel.Kernel
	intersector  geom.Intersector
	markerRadius float64
}

// MeshData is the JSON-serializable mesh format for viewers.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	Name     string    `json:"name"`
	Color    string    `json:"color"`
}

// ErrorData is a JSON-serializable error or warning.
type ErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// QueryResult is the answer to one (line, hull) query. Face, T and Point
// are only meaningful when Hit is true.
type QueryResult struct {
	Line  string     `json:"line"`
	Hull  string     `json:"hull"`
	Hit   bool       `json:"hit"`
	Face  int        `json:"face"`
	T     float64    `json:"t"`
	Point *geom.Vec3 `json:"point,omitempty"`
}

// Result is the full outcome of a run.
type Result struct {
	Queries  []QueryResult `json:"queries"`
	Meshes   []MeshData    `json:"meshes,omitempty"`
	Errors   []ErrorData   `json:"errors"`
	Warnings []ErrorData   `json:"warnings"`
}

// OK reports whether the run finished without errors.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

func newResult() Result {
	return Result{
		Queries:  []QueryResult{},
		Meshes:   []MeshData{},
		Errors:   []ErrorData{},
		Warnings: []ErrorData{},
	}
}

// NewService creates a Service with an sdfx kernel and the scan settings
// from cfg.
func NewService(cfg config.Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	ix, err := cfg.Intersector()
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	k := sdfx.New(cfg.MeshCells)
	return &Service{
		engine:       engine.NewEngine(engine.WithKernel(k), engine.WithTimeout(cfg.EvalTimeout.Duration)),
		kernel:       k,
		intersector:  ix,
		markerRadius: cfg.MarkerRadius,
	}, nil
}

// Run takes script source and returns query answers, meshes and errors.
func (s *Service) Run(source string) Result {
	result := newResult()

	// Step 1: Evaluate the script into a scene.
	sc, evalErrs, err := s.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, ErrorData{Message: err.Error()})
		return result
	}

	// Step 2: Convert eval errors.
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, ErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	return s.runScene(sc, result)
}

// RunScene answers the queries of an already built scene.
func (s *Service) RunScene(sc *scene.Scene) Result {
	return s.runScene(sc, newResult())
}

func (s *Service) runScene(sc *scene.Scene, result Result) Result {
	// Step 3: Validate names and references.
	v := scene.Validate(sc)
	for _, w := range v.Warnings {
		result.Warnings = append(result.Warnings, ErrorData{Message: w.Error()})
	}
	if !v.OK() {
		for _, e := range v.Errors {
			result.Errors = append(result.Errors, ErrorData{Message: e.Error()})
		}
		return result
	}

	// Step 4: Intersect every query in order.
	var markers []tessellate.Marker
	for _, q := range sc.Queries {
		l, _ := sc.Line(q.Line)
		qr := s.Intersect(l, sc.Hull(q.Hull))
		qr.Line = q.Line
		if qr.Hit {
			markers = append(markers, tessellate.Marker{
				Name:  fmt.Sprintf("hit %s/%s", q.Line, q.Hull),
				Point: *qr.Point,
			})
		}
		result.Queries = append(result.Queries, qr)
	}
	if s.markerRadius == 0 {
		markers = nil
	}

	// Step 5: Tessellate hulls and hit markers.
	meshes, err := tessellate.Tessellate(sc, s.kernel, markers, s.markerRadius)
	if err != nil {
		log.Printf("Tessellate error: %v", err)
		result.Errors = append(result.Errors, ErrorData{Message: "tessellation failed: " + err.Error()})
		return result
	}
	for i, m := range meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			Name:     m.Name,
			Color:    colorPalette[i%len(colorPalette)],
		})
	}
	return result
}

// Intersect answers a single query with the service's scan settings.
// A nil hull never hits.
func (s *Service) Intersect(l geom.Line, h *hull.Hull) QueryResult {
	var qr QueryResult
	if h == nil {
		return qr
	}
	qr.Hull = h.Name
	hit, ok := h.Intersect(l, s.intersector)
	if !ok {
		return qr
	}
	qr.Hit = true
	qr.Face = hit.Face
	qr.T = hit.T
	qr.Point = &hit.Point
	return qr
}
