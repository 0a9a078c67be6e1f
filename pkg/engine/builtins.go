package engine

import (
	"fmt"
	"strings"

	"github.com/AnonimowyCoder/Projekt-GO/pkg/geom"
	"github.com/AnonimowyCoder/Projekt-GO/pkg/hull"
	"github.com/AnonimowyCoder/Projekt-GO/pkg/kernel"
	"github.com/AnonimowyCoder/Projekt-GO/pkg/scene"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a geom.Vec3.
type sexpVec3 struct {
	vec geom.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpFace wraps one triangular face.
type sexpFace struct {
	face geom.Plane
}

func (f *sexpFace) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(face %s %s %s)", f.face.A, f.face.B, f.face.C)
}
func (f *sexpFace) Type() *zygo.RegisteredType { return nil }

// sexpHull wraps a hull that has not been named by defhull yet, or a
// reference to one that has.
type sexpHull struct {
	hull *hull.Hull
}

func (h *sexpHull) SexpString(ps *zygo.PrintState) string {
	if h.hull.Name != "" {
		return fmt.Sprintf("(hull %q)", h.hull.Name)
	}
	return fmt.Sprintf("(hull :faces %d)", h.hull.FaceCount())
}
func (h *sexpHull) Type() *zygo.RegisteredType { return nil }

// sexpSolid wraps a kernel solid that has not been tessellated yet.
type sexpSolid struct {
	solid kernel.Solid
}

func (s *sexpSolid) SexpString(ps *zygo.PrintState) string {
	lo, hi := s.solid.BoundingBox()
	return fmt.Sprintf("(solid %v %v)", lo, hi)
}
func (s *sexpSolid) Type() *zygo.RegisteredType { return nil }

// sexpLineRef refers to a line defined with defline.
type sexpLineRef struct {
	name string
}

func (l *sexpLineRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(line %q)", l.name)
}
func (l *sexpLineRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			// Trailing keyword with no value.
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// float looks up an optional numeric keyword, returning def when absent.
func (a kwArgs) float(name string, def float64) (float64, error) {
	v, ok := a.kw[name]
	if !ok {
		return def, nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

// vec looks up an optional vec3 keyword, returning def when absent.
func (a kwArgs) vec(name string, def geom.Vec3) (geom.Vec3, error) {
	v, ok := a.kw[name]
	if !ok {
		return def, nil
	}
	vec, err := toVec3(v)
	if err != nil {
		return geom.Vec3{}, fmt.Errorf("%s: %w", name, err)
	}
	return vec, nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a Vec3 from a sexpVec3.
func toVec3(s zygo.Sexp) (geom.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return geom.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toName accepts a string or a reference returned by defline/defhull.
func toName(s zygo.Sexp) (string, error) {
	switch v := s.(type) {
	case *zygo.SexpStr:
		return v.S, nil
	case *sexpLineRef:
		return v.name, nil
	case *sexpHull:
		if v.hull.Name != "" {
			return v.hull.Name, nil
		}
	}
	return "", fmt.Errorf("expected name or reference, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// collectFaces flattens faces, lists of faces, unnamed hulls and solids into
// one ordered face slice. Solids are tessellated with k.
func collectFaces(k kernel.Kernel, items []zygo.Sexp) ([]geom.Plane, error) {
	var faces []geom.Plane
	for i, item := range items {
		switch v := item.(type) {
		case *sexpFace:
			faces = append(faces, v.face)
		case *sexpHull:
			faces = append(faces, v.hull.Faces...)
		case *sexpSolid:
			h, err := hull.FromSolid("", k, v.solid)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			faces = append(faces, h.Faces...)
		case *zygo.SexpPair, *zygo.SexpArray:
			inner, err := sexpListToSlice(v)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			sub, err := collectFaces(k, inner)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			faces = append(faces, sub...)
		default:
			return nil, fmt.Errorf("item %d: expected face or hull, got %T (%s)", i, item, item.SexpString(nil))
		}
	}
	return faces, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the query DSL into a zygomys environment. The
// builtins populate s during evaluation; k backs the solid builtins and may
// be nil.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, s *scene.Scene, k kernel.Kernel) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var c [3]float64
		for i, axis := range []string{"x", "y", "z"} {
			f, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %s: %w", axis, err)
			}
			c[i] = f
		}
		return &sexpVec3{vec: geom.Vec3{X: c[0], Y: c[1], Z: c[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// (face (vec3 0 0 0) (vec3 1 0 0) (vec3 0 1 0))
	// -----------------------------------------------------------------------
	env.AddFunction("face", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("face requires exactly 3 points, got %d", len(args))
		}
		var p [3]geom.Vec3
		for i := range p {
			v, err := toVec3(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("face: point %d: %w", i+1, err)
			}
			p[i] = v
		}
		return &sexpFace{face: geom.NewPlane(p[0], p[1], p[2])}, nil
	})

	// -----------------------------------------------------------------------
	// (box :min (vec3 0 0 0) :max (vec3 2 2 2))
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		lo, err := pa.vec("min", geom.Vec3{})
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("box: %w", err)
		}
		hi, err := pa.vec("max", geom.Vec3{X: 1, Y: 1, Z: 1})
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("box: %w", err)
		}
		return &sexpHull{hull: hull.Box("", lo, hi)}, nil
	})

	// -----------------------------------------------------------------------
	// (sphere :radius 5 :at (vec3 0 0 0))
	// (cylinder :height 10 :radius 2 :at (vec3 0 0 0))
	// (block :size (vec3 2 2 2) :at (vec3 0 0 0))
	//
	// Solids are centered on :at and become faces when passed to defhull.
	// -----------------------------------------------------------------------
	solid := func(builtin string, build func(pa kwArgs) (kernel.Solid, error)) zygo.ZlispUserFunction {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if k == nil {
				return zygo.SexpNull, fmt.Errorf("%s: no geometry kernel configured", builtin)
			}
			pa := parseArgs(args)
			sol, err := build(pa)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", builtin, err)
			}
			at, err := pa.vec("at", geom.Vec3{})
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", builtin, err)
			}
			if !at.IsZero() {
				sol = k.Translate(sol, at)
			}
			return &sexpSolid{solid: sol}, nil
		}
	}
	env.AddFunction("sphere", solid("sphere", func(pa kwArgs) (kernel.Solid, error) {
		r, err := pa.float("radius", 1)
		if err != nil {
			return nil, err
		}
		if r <= 0 {
			return nil, fmt.Errorf("radius must be positive, got %g", r)
		}
		return k.Sphere(r), nil
	}))
	env.AddFunction("block", solid("block", func(pa kwArgs) (kernel.Solid, error) {
		size, err := pa.vec("size", geom.Vec3{X: 1, Y: 1, Z: 1})
		if err != nil {
			return nil, err
		}
		if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
			return nil, fmt.Errorf("size must be positive on every axis, got %s", size)
		}
		return k.Box(size.X, size.Y, size.Z), nil
	}))
	env.AddFunction("cylinder", solid("cylinder", func(pa kwArgs) (kernel.Solid, error) {
		h, err := pa.float("height", 1)
		if err != nil {
			return nil, err
		}
		r, err := pa.float("radius", 1)
		if err != nil {
			return nil, err
		}
		if h <= 0 || r <= 0 {
			return nil, fmt.Errorf("height and radius must be positive, got %g and %g", h, r)
		}
		return k.Cylinder(h, r), nil
	}))

	// -----------------------------------------------------------------------
	// (union (sphere ...) (block ...) ...)
	// -----------------------------------------------------------------------
	env.AddFunction("union", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("union requires at least 2 solids, got %d", len(args))
		}
		var out kernel.Solid
		for i, a := range args {
			sol, ok := a.(*sexpSolid)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("union: argument %d: expected solid, got %T (%s)", i+1, a, a.SexpString(nil))
			}
			if out == nil {
				out = sol.solid
				continue
			}
			out = k.Union(out, sol.solid)
		}
		return &sexpSolid{solid: out}, nil
	})

	// -----------------------------------------------------------------------
	// (defhull "name" (box ...))
	// (defhull "name" (sphere ...))
	// (defhull "name" (face ...) (face ...) ...)
	// -----------------------------------------------------------------------
	env.AddFunction("defhull", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("defhull requires a name")
		}
		hullName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defhull: name: %w", err)
		}

		var h *hull.Hull
		if len(args) == 2 {
			switch single := args[1].(type) {
			case *sexpHull:
				if single.hull.Name == "" {
					// Copy so a def'd hull value stays unnamed and reusable.
					cp := *single.hull
					cp.Name = hullName
					h = &cp
				}
			case *sexpSolid:
				h, err = hull.FromSolid(hullName, k, single.solid)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("defhull %q: %w", hullName, err)
				}
			}
		}
		if h == nil {
			faces, err := collectFaces(k, args[1:])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("defhull %q: %w", hullName, err)
			}
			h = hull.New(hullName, faces, nil)
		}

		s.AddHull(h)
		return &sexpHull{hull: h}, nil
	})

	// -----------------------------------------------------------------------
	// (defline "name" :start (vec3 1 1 1) :direction (vec3 1 0 -1))
	// -----------------------------------------------------------------------
	env.AddFunction("defline", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("defline requires a name")
		}
		lineName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defline: name: %w", err)
		}
		if _, ok := pa.kw["direction"]; !ok {
			return zygo.SexpNull, fmt.Errorf("defline %q: :direction is required", lineName)
		}

		start, err := pa.vec("start", geom.Vec3{})
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defline %q: %w", lineName, err)
		}
		dir, err := pa.vec("direction", geom.Vec3{})
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defline %q: %w", lineName, err)
		}

		s.AddLine(lineName, geom.NewLine(start, dir))
		return &sexpLineRef{name: lineName}, nil
	})

	// -----------------------------------------------------------------------
	// (query "line" "hull") or (query line-ref hull-ref)
	// -----------------------------------------------------------------------
	env.AddFunction("query", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("query requires a line and a hull, got %d arguments", len(args))
		}
		lineName, err := toName(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("query: line: %w", err)
		}
		hullName, err := toName(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("query: hull: %w", err)
		}
		s.AddQuery(lineName, hullName)
		return zygo.SexpNull, nil
	})
}
