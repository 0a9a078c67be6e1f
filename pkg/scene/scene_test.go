package scene

import (
	"strings"
	"testing"

	"github.com/AnonimowyCoder/Projekt-GO/pkg/geom"
	"github.com/AnonimowyCoder/Projekt-GO/pkg/hull"
)

// resultHas returns true if any finding's message or subject contains substr.
func resultHas(findings []ValidationError, substr string) bool {
	for _, e := range findings {
		if strings.Contains(e.Error(), substr) {
			return true
		}
	}
	return false
}

func cube(name string) *hull.Hull {
	return hull.Box(name, geom.Vec3{}, geom.Vec3{X: 2, Y: 2, Z: 2})
}

func probe() geom.Line {
	return geom.NewLine(geom.Vec3{X: 1, Y: 1, Z: 1}, geom.Vec3{X: 1, Y: 0, Z: -1})
}

func TestSceneLookup(t *testing.T) {
	s := New()
	if !s.IsEmpty() {
		t.Fatal("new scene should be empty")
	}

	s.AddHull(cube("a"))
	s.AddLine("p", probe())
	s.AddQuery("p", "a")

	if s.IsEmpty() {
		t.Error("IsEmpty() = true after adds")
	}
	if h := s.Hull("a"); h == nil || h.Name != "a" {
		t.Errorf("Hull(\"a\") = %v", h)
	}
	if h := s.Hull("missing"); h != nil {
		t.Errorf("Hull(\"missing\") = %v, want nil", h)
	}
	if l, ok := s.Line("p"); !ok || l != probe() {
		t.Errorf("Line(\"p\") = %v, %v", l, ok)
	}
	if _, ok := s.Line("q"); ok {
		t.Error("Line(\"q\") found an undefined line")
	}
}

func TestSceneLatestDefinitionWins(t *testing.T) {
	s := New()
	first := cube("a")
	second := hull.New("a", nil, nil)
	s.AddHull(first)
	s.AddHull(second)
	if s.Hull("a") != second {
		t.Error("Hull(\"a\") should resolve to the latest definition")
	}
}

func TestValidateClean(t *testing.T) {
	s := New()
	s.AddHull(cube("a"))
	s.AddLine("p", probe())
	s.AddQuery("p", "a")

	r := Validate(s)
	if !r.OK() || len(r.Warnings) != 0 {
		t.Errorf("Validate() = %+v, want clean", r)
	}
}

func TestValidateFindings(t *testing.T) {
	tests := []struct {
		name    string
		build   func(s *Scene)
		substr  string
		warning bool
	}{
		{"unknown line", func(s *Scene) {
			s.AddHull(cube("a"))
			s.AddQuery("nope", "a")
		}, `line "nope" is not defined`, false},
		{"unknown hull", func(s *Scene) {
			s.AddLine("p", probe())
			s.AddQuery("p", "nope")
		}, `hull "nope" is not defined`, false},
		{"duplicate hull", func(s *Scene) {
			s.AddHull(cube("a"))
			s.AddHull(cube("a"))
		}, "hull a: defined more than once", false},
		{"duplicate line", func(s *Scene) {
			s.AddLine("p", probe())
			s.AddLine("p", probe())
		}, "line p: defined more than once", false},
		{"empty hull name", func(s *Scene) {
			s.AddHull(cube(""))
		}, "hull has an empty name", false},
		{"zero direction", func(s *Scene) {
			s.AddLine("dot", geom.NewLine(geom.Vec3{}, geom.Vec3{}))
		}, "direction vector is zero", true},
		{"empty hull", func(s *Scene) {
			s.AddHull(hull.New("void", nil, nil))
		}, "hull void: has no faces", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			tt.build(s)
			r := Validate(s)

			findings, other := r.Errors, r.Warnings
			if tt.warning {
				findings, other = r.Warnings, r.Errors
			}
			if !resultHas(findings, tt.substr) {
				t.Errorf("expected finding %q, got errors %v warnings %v", tt.substr, r.Errors, r.Warnings)
			}
			if len(other) != 0 {
				t.Errorf("unexpected findings: %v", other)
			}
			if r.OK() != tt.warning {
				t.Errorf("OK() = %v, want %v", r.OK(), tt.warning)
			}
		})
	}
}

func TestSeverityString(t *testing.T) {
	if SeverityError.String() != "error" || SeverityWarning.String() != "warning" {
		t.Error("unexpected severity names")
	}
	if got := Severity(7).String(); got != "Severity(7)" {
		t.Errorf("Severity(7).String() = %q", got)
	}
}
