// Package scene describes a batch of hull queries: the hulls, the lines and
// the ordered (line, hull) pairs to intersect. A Scene is produced by one
// evaluation and is not mutated once evaluation finishes.
package scene

import (
	"github.com/AnonimowyCoder/Projekt-GO/pkg/geom"
	"github.com/AnonimowyCoder/Projekt-GO/pkg/hull"
)

// NamedLine is a line registered under a name.
type NamedLine struct {
	Name string    `json:"name"`
	Line geom.Line `json:"line"`
}

// Query asks where the named line first crosses the named hull.
type Query struct {
	Line string `json:"line"`
	Hull string `json:"hull"`
}

// Scene holds hulls and lines in definition order plus name indexes.
// Duplicate names are recorded so validation can report them; lookups
// resolve to the latest definition.
type Scene struct {
	Hulls   []*hull.Hull `json:"hulls"`
	Lines   []NamedLine  `json:"lines"`
	Queries []Query      `json:"queries"`

	hullIndex map[string]int
	lineIndex map[string]int
}

// New creates an empty Scene.
func New() *Scene {
	return &Scene{
		hullIndex: make(map[string]int),
		lineIndex: make(map[string]int),
	}
}

// AddHull appends h and indexes it by name.
func (s *Scene) AddHull(h *hull.Hull) {
	s.Hulls = append(s.Hulls, h)
	s.hullIndex[h.Name] = len(s.Hulls) - 1
}

// AddLine appends a named line.
func (s *Scene) AddLine(name string, l geom.Line) {
	s.Lines = append(s.Lines, NamedLine{Name: name, Line: l})
	s.lineIndex[name] = len(s.Lines) - 1
}

// AddQuery appends a query. Names are resolved at validation time, so a
// query may precede the definitions it names.
func (s *Scene) AddQuery(line, hullName string) {
	s.Queries = append(s.Queries, Query{Line: line, Hull: hullName})
}

// Hull returns the hull with the given name, or nil.
func (s *Scene) Hull(name string) *hull.Hull {
	i, ok := s.hullIndex[name]
	if !ok {
		return nil
	}
	return s.Hulls[i]
}

// Line returns the line with the given name.
func (s *Scene) Line(name string) (geom.Line, bool) {
	i, ok := s.lineIndex[name]
	if !ok {
		return geom.Line{}, false
	}
	return s.Lines[i].Line, true
}

// IsEmpty reports whether the scene defines nothing.
func (s *Scene) IsEmpty() bool {
	return len(s.Hulls) == 0 && len(s.Lines) == 0 && len(s.Queries) == 0
}
