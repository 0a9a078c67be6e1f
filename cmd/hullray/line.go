package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/AnonimowyCoder/Projekt-GO/pkg/geom"
	"github.com/AnonimowyCoder/Projekt-GO/pkg/hull"
	"github.com/AnonimowyCoder/Projekt-GO/pkg/pointcloud"
	"github.com/AnonimowyCoder/Projekt-GO/pkg/query"
	"github.com/AnonimowyCoder/Projekt-GO/pkg/scene"
)

type lineFlags struct {
	Start     []float64
	Direction []float64
	BoxMin    []float64
	BoxMax    []float64
	Points    string
}

func (f *lineFlags) BindFlags(fs *pflag.FlagSet) {
	fs.Float64SliceVar(&f.Start, "start", []float64{1, 1, 1}, "line start point x,y,z")
	fs.Float64SliceVar(&f.Direction, "direction", []float64{1, 0, -1}, "line direction x,y,z")
	fs.Float64SliceVar(&f.BoxMin, "box-min", []float64{0, 0, 0}, "box hull minimum corner x,y,z")
	fs.Float64SliceVar(&f.BoxMax, "box-max", []float64{2, 2, 2}, "box hull maximum corner x,y,z")
	fs.StringVar(&f.Points, "points", "", "point cloud (.dat) reported as the hull vertices")
}

// lineOptions is the validated form of lineFlags.
type lineOptions struct {
	Line   geom.Line
	BoxMin geom.Vec3
	BoxMax geom.Vec3
	Points []geom.Vec3
}

func (f *lineFlags) ToOptions() (*lineOptions, error) {
	o := &lineOptions{}
	var start, dir geom.Vec3
	for _, v := range []struct {
		name string
		in   []float64
		out  *geom.Vec3
	}{
		{"start", f.Start, &start},
		{"direction", f.Direction, &dir},
		{"box-min", f.BoxMin, &o.BoxMin},
		{"box-max", f.BoxMax, &o.BoxMax},
	} {
		if len(v.in) != 3 {
			return nil, fmt.Errorf("--%s needs 3 components, got %d", v.name, len(v.in))
		}
		*v.out = geom.Vec3{X: v.in[0], Y: v.in[1], Z: v.in[2]}
	}
	o.Line = geom.NewLine(start, dir)

	if f.Points != "" {
		pts, err := pointcloud.ReadFile(f.Points)
		if err != nil {
			return nil, err
		}
		o.Points = pts
	}
	return o, nil
}

// lineReport is the line command output: the run result plus the hull
// vertices, which are the point cloud when one is given.
type lineReport struct {
	query.Result
	Vertices []geom.Vec3 `json:"vertices"`
}

func newLineCommand(out io.Writer, gf *globalFlags) *cobra.Command {
	f := &lineFlags{}

	cmd := &cobra.Command{
		Use:   "line",
		Short: "Intersect one line with an axis-aligned box hull",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := f.ToOptions()
			if err != nil {
				return err
			}
			svc, err := newService(cmd, gf, false)
			if err != nil {
				return err
			}

			box := hull.Box("box", o.BoxMin, o.BoxMax)
			if o.Points != nil {
				box = hull.New(box.Name, box.Faces, o.Points)
			}
			sc := scene.New()
			sc.AddHull(box)
			sc.AddLine("line", o.Line)
			sc.AddQuery("line", box.Name)

			r := svc.RunScene(sc)
			r.Meshes = nil
			return writeJSON(out, lineReport{Result: r, Vertices: box.Vertices}, r)
		},
	}
	f.BindFlags(cmd.Flags())
	return cmd
}
