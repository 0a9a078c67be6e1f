package scene

import "fmt"

// Severity indicates whether a validation finding blocks queries or is
// merely informational.
type Severity int

const (
	SeverityError   Severity = iota // blocks queries
	SeverityWarning                 // informational
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Subject  string // hull, line or query the finding is about
	Message  string
	Severity Severity
}

func (e ValidationError) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Subject, e.Message)
}

// Result bundles blocking errors and advisory warnings.
type Result struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// OK reports whether there are no blocking errors.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// Validate checks names and references. It does not validate geometry
// beyond flagging zero direction vectors and empty hulls as warnings:
// queries trust their input.
func Validate(s *Scene) Result {
	var r Result
	add := func(e ValidationError) {
		if e.Severity == SeverityWarning {
			r.Warnings = append(r.Warnings, e)
		} else {
			r.Errors = append(r.Errors, e)
		}
	}

	for _, e := range validateNames(s) {
		add(e)
	}
	for _, e := range validateQueries(s) {
		add(e)
	}
	for _, e := range validateGeometry(s) {
		add(e)
	}
	return r
}

// validateNames rejects empty and duplicate hull and line names.
func validateNames(s *Scene) []ValidationError {
	var errs []ValidationError

	seen := make(map[string]bool)
	for _, h := range s.Hulls {
		switch {
		case h.Name == "":
			errs = append(errs, ValidationError{Message: "hull has an empty name", Severity: SeverityError})
		case seen[h.Name]:
			errs = append(errs, ValidationError{
				Subject:  "hull " + h.Name,
				Message:  "defined more than once",
				Severity: SeverityError,
			})
		}
		seen[h.Name] = true
	}

	seen = make(map[string]bool)
	for _, l := range s.Lines {
		switch {
		case l.Name == "":
			errs = append(errs, ValidationError{Message: "line has an empty name", Severity: SeverityError})
		case seen[l.Name]:
			errs = append(errs, ValidationError{
				Subject:  "line " + l.Name,
				Message:  "defined more than once",
				Severity: SeverityError,
			})
		}
		seen[l.Name] = true
	}
	return errs
}

// validateQueries checks that every query names a defined line and hull.
func validateQueries(s *Scene) []ValidationError {
	var errs []ValidationError
	for i, q := range s.Queries {
		subject := fmt.Sprintf("query %d", i)
		if _, ok := s.Line(q.Line); !ok {
			errs = append(errs, ValidationError{
				Subject:  subject,
				Message:  fmt.Sprintf("line %q is not defined", q.Line),
				Severity: SeverityError,
			})
		}
		if s.Hull(q.Hull) == nil {
			errs = append(errs, ValidationError{
				Subject:  subject,
				Message:  fmt.Sprintf("hull %q is not defined", q.Hull),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateGeometry emits advisory findings only.
func validateGeometry(s *Scene) []ValidationError {
	var warns []ValidationError
	for _, l := range s.Lines {
		if l.Line.Direction.IsZero() {
			warns = append(warns, ValidationError{
				Subject:  "line " + l.Name,
				Message:  "direction vector is zero; the line is a single point",
				Severity: SeverityWarning,
			})
		}
	}
	for _, h := range s.Hulls {
		if h.IsEmpty() {
			warns = append(warns, ValidationError{
				Subject:  "hull " + h.Name,
				Message:  "has no faces; every query against it misses",
				Severity: SeverityWarning,
			})
		}
	}
	return warns
}
