package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/AnonimowyCoder/Projekt-GO/pkg/geom"
	"github.com/AnonimowyCoder/Projekt-GO/pkg/query"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func decodeLine(t *testing.T, out string) lineReport {
	t.Helper()
	var r lineReport
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	return r
}

func TestLineDefaults(t *testing.T) {
	out, err := run(t, "line")
	if err != nil {
		t.Fatalf("line: %v", err)
	}
	r := decodeLine(t, out)
	if len(r.Queries) != 1 {
		t.Fatalf("expected 1 query, got %s", spew.Sdump(r))
	}
	q := r.Queries[0]
	if !q.Hit || q.Face != 1 || q.Point == nil || *q.Point != (geom.Vec3{X: 2, Y: 1, Z: 0}) {
		t.Errorf("default line mismatch: %s", spew.Sdump(q))
	}
	if len(r.Vertices) != 8 {
		t.Errorf("box vertices = %d, want 8", len(r.Vertices))
	}
	if len(r.Meshes) != 0 {
		t.Error("line output should not carry meshes")
	}
}

func TestLineMiss(t *testing.T) {
	out, err := run(t, "line", "--start", "5,5,5", "--direction", "0,0,1")
	if err != nil {
		t.Fatalf("line: %v", err)
	}
	if q := decodeLine(t, out).Queries[0]; q.Hit {
		t.Errorf("expected a miss: %s", spew.Sdump(q))
	}
}

func TestLineDominantAxisFlag(t *testing.T) {
	args := []string{"line", "--start", "10,10,10", "--direction", "1,0,0"}

	out, err := run(t, args...)
	if err != nil {
		t.Fatal(err)
	}
	if !decodeLine(t, out).Queries[0].Hit {
		t.Error("xy containment should report the vertical-face hit")
	}

	out, err = run(t, append(args, "--containment", "dominant-axis")...)
	if err != nil {
		t.Fatal(err)
	}
	if decodeLine(t, out).Queries[0].Hit {
		t.Error("dominant-axis containment should miss")
	}
}

func TestLinePoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloud.dat")
	if err := os.WriteFile(path, []byte("3\n0 0 0\n1 2 3\n-1 0.5 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "line", "--points", path)
	if err != nil {
		t.Fatal(err)
	}
	r := decodeLine(t, out)
	want := []geom.Vec3{{}, {X: 1, Y: 2, Z: 3}, {X: -1, Y: 0.5, Z: 4}}
	if len(r.Vertices) != len(want) {
		t.Fatalf("vertices = %s", spew.Sdump(r.Vertices))
	}
	for i := range want {
		if r.Vertices[i] != want[i] {
			t.Errorf("vertex %d = %v, want %v", i, r.Vertices[i], want[i])
		}
	}
}

func TestLineErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"short start", []string{"line", "--start", "1,2"}, "--start needs 3 components"},
		{"bad policy", []string{"line", "--policy", "nearest"}, "nearest"},
		{"bad epsilon", []string{"line", "--epsilon=-1"}, "epsilon"},
		{"missing points", []string{"line", "--points", "/nonexistent/cloud.dat"}, "cloud.dat"},
		{"missing config", []string{"line", "--config", "/nonexistent/hullray.yaml"}, "config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigFileAndOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hullray.yaml")
	if err := os.WriteFile(path, []byte("containment: dominant-axis\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	args := []string{"--config", path, "line", "--start", "10,10,10", "--direction", "1,0,0"}

	out, err := run(t, args...)
	if err != nil {
		t.Fatal(err)
	}
	if decodeLine(t, out).Queries[0].Hit {
		t.Error("config file containment should apply")
	}

	out, err = run(t, append(args, "--containment", "xy")...)
	if err != nil {
		t.Fatal(err)
	}
	if !decodeLine(t, out).Queries[0].Hit {
		t.Error("flag should override the config file")
	}
}

func TestEvalExample(t *testing.T) {
	out, err := run(t, "eval", "../../examples/box.hull")
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	var r query.Result
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(r.Queries) != 2 || !r.Queries[0].Hit || r.Queries[1].Hit {
		t.Errorf("unexpected eval result: %s", spew.Sdump(r.Queries))
	}
	if len(r.Meshes) != 0 {
		t.Error("meshes should be omitted without --meshes")
	}
}

func TestEvalMeshes(t *testing.T) {
	out, err := run(t, "eval", "--meshes", "../../examples/tetra.hull")
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	var r query.Result
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Tetra hull plus one hit marker.
	if len(r.Meshes) != 2 {
		t.Errorf("expected 2 meshes, got %d", len(r.Meshes))
	}
}

func TestEvalScriptErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.hull")
	if err := os.WriteFile(path, []byte(`(query "a" "b")`), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "eval", path)
	if err == nil {
		t.Fatal("expected error exit for undefined names")
	}
	if !strings.Contains(out, "not defined") {
		t.Errorf("errors should still be printed:\n%s", out)
	}

	if _, err := run(t, "eval"); err == nil {
		t.Error("eval without a script should fail")
	}
}
