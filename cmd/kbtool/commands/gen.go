package commands

import (
	"bytes"
	"os"

	"github.com/spf13/cobra"

	"splitkb/internal/keymapfile"
	"splitkb/internal/printer"
)

func newGenCmd() *cobra.Command {
	var (
		pkg string
		fn  string
		out string
	)
	cmd := &cobra.Command{
		Use:   "gen FILE",
		Short: "Compile a YAML keymap to Go source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layers, err := keymapfile.Load(args[0])
			if err != nil {
				return printer.Error(cmd.ErrOrStderr(), "Invalid keymap", err.Error(), nil)
			}
			var buf bytes.Buffer
			if err := keymapfile.WriteGo(&buf, pkg, fn, layers); err != nil {
				return printer.Error(cmd.ErrOrStderr(), "Code generation failed", err.Error(), []string{
					"Check that --package and --func are valid Go identifiers.",
				})
			}
			if out == "" || out == "-" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return printer.Error(cmd.ErrOrStderr(), "Write failed", err.Error(), nil)
			}
			printer.Success(cmd.ErrOrStderr(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&pkg, "package", "keymap", "package name of the generated file")
	cmd.Flags().StringVar(&fn, "func", "Layers", "name of the generated function")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}
