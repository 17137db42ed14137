package commands

import (
	"github.com/spf13/cobra"

	"splitkb/internal/keymapfile"
	"splitkb/internal/printer"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Validate a YAML keymap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layers, err := keymapfile.Load(args[0])
			if err != nil {
				return printer.Error(cmd.ErrOrStderr(), "Invalid keymap", err.Error(), []string{
					"Run 'kbtool show' to see the default keymap layout.",
				})
			}
			printer.Success(cmd.OutOrStdout(), "%s: %d layers, %d×%d\n", args[0], len(layers), len(layers[0]), len(layers[0][0]))
			return nil
		},
	}
}
