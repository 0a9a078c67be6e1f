package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newEvalCommand(out io.Writer, f *globalFlags) *cobra.Command {
	var withMeshes bool

	cmd := &cobra.Command{
		Use:   "eval <script>",
		Short: "Run a query script and print the answers as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read script: %w", err)
			}
			svc, err := newService(cmd, f, withMeshes)
			if err != nil {
				return err
			}
			r := svc.Run(string(source))
			if !withMeshes {
				r.Meshes = nil
			}
			return writeJSON(out, r, r)
		},
	}
	cmd.Flags().BoolVar(&withMeshes, "meshes", false, "include viewer meshes in the output")
	return cmd
}
