package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/AnonimowyCoder/Projekt-GO/pkg/config"
	"github.com/AnonimowyCoder/Projekt-GO/pkg/query"
)

// globalFlags are shared by every subcommand. Set values override the
// config file.
type globalFlags struct {
	ConfigPath  string
	Containment string
	Policy      string
	Epsilon     float64
	Workers     int
}

func (f *globalFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", "", "YAML config file")
	fs.StringVar(&f.Containment, "containment", "", `point-in-triangle test: "xy" or "dominant-axis"`)
	fs.StringVar(&f.Policy, "policy", "", `face scan: "first-hit" or "parallel-first-hit"`)
	fs.Float64Var(&f.Epsilon, "epsilon", 0, "parallel-line threshold on |n·d|")
	fs.IntVar(&f.Workers, "workers", 0, "worker limit for parallel-first-hit (0 = GOMAXPROCS)")
}

// ToConfig loads the config file, if any, and applies the flags that were
// set explicitly.
func (f *globalFlags) ToConfig(fs *pflag.FlagSet) (config.Config, error) {
	cfg := config.Default()
	if f.ConfigPath != "" {
		loaded, err := config.Load(f.ConfigPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if fs.Changed("containment") {
		cfg.Containment = f.Containment
	}
	if fs.Changed("policy") {
		cfg.Policy = f.Policy
	}
	if fs.Changed("epsilon") {
		cfg.Epsilon = f.Epsilon
	}
	if fs.Changed("workers") {
		cfg.Workers = f.Workers
	}
	return cfg, cfg.Validate()
}

func newRootCommand(out io.Writer) *cobra.Command {
	f := &globalFlags{}

	root := &cobra.Command{
		Use:   "hullray",
		Short: "Intersect lines with triangulated hulls",
		Long: `hullray finds where a line first crosses a hull made of triangular faces.

Faces are scanned in order and the first face whose plane intersection lies
inside the triangle wins; the result is not necessarily the nearest hit.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	f.BindFlags(root.PersistentFlags())

	root.AddCommand(newEvalCommand(out, f), newLineCommand(out, f))
	return root
}

// newService builds the query service for a subcommand invocation. Without
// meshes no hit markers are tessellated.
func newService(cmd *cobra.Command, f *globalFlags, withMeshes bool) (*query.Service, error) {
	cfg, err := f.ToConfig(cmd.Flags())
	if err != nil {
		return nil, err
	}
	if !withMeshes {
		cfg.MarkerRadius = 0
	}
	return query.NewService(cfg)
}

// writeJSON prints v indented and turns result errors into a command error
// so the exit status reflects them.
func writeJSON(out io.Writer, v any, r query.Result) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if _, err := fmt.Fprintln(out, string(data)); err != nil {
		return err
	}
	for _, w := range r.Warnings {
		log.Printf("warning: %s", w.Message)
	}
	if !r.OK() {
		return fmt.Errorf("%d error(s), first: %s", len(r.Errors), r.Errors[0].Message)
	}
	return nil
}
