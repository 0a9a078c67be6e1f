// Package pointcloud reads the plain-text point files hulls are built from.
//
// The format is a point count on the first line followed by one whitespace
// separated "x y z" triple per line. Blank lines are ignored.
package pointcloud

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AnonimowyCoder/Projekt-GO/pkg/geom"
)

// ParseError reports a malformed line.
type ParseError struct {
	Line    int
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("pointcloud: line %d: %s", e.Line, e.Message)
}

// Read parses a point file. The declared count must match the number of
// points that follow.
func Read(r io.Reader) ([]geom.Vec3, error) {
	sc := bufio.NewScanner(r)
	lineNo := 0

	count := -1
	var pts []geom.Vec3
	for sc.Scan() {
		lineNo++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if count < 0 {
			n, err := strconv.Atoi(text)
			if err != nil || n < 0 {
				return nil, ParseError{Line: lineNo, Message: fmt.Sprintf("invalid point count %q", text)}
			}
			count = n
			pts = make([]geom.Vec3, 0, n)
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 3 {
			return nil, ParseError{Line: lineNo, Message: fmt.Sprintf("expected 3 coordinates, got %d", len(fields))}
		}
		var xyz [3]float64
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, ParseError{Line: lineNo, Message: fmt.Sprintf("coordinate %d: %q is not a number", i+1, f)}
			}
			xyz[i] = v
		}
		pts = append(pts, geom.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("pointcloud: %w", err)
	}

	if count < 0 {
		return nil, fmt.Errorf("pointcloud: missing point count")
	}
	if len(pts) != count {
		return nil, fmt.Errorf("pointcloud: header declares %d points, found %d", count, len(pts))
	}
	return pts, nil
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string) ([]geom.Vec3, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pointcloud: %w", err)
	}
	defer f.Close()

	pts, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pts, nil
}
