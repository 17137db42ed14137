package commands

import (
	"github.com/spf13/cobra"

	"splitkb/internal/buildinfo"
	"splitkb/internal/printer"
)

// NewRootCmd builds the kbtool command tree.
func NewRootCmd() *cobra.Command {
	var noColor bool
	root := &cobra.Command{
		Use:   "kbtool",
		Short: "Keymap tool for the split keyboard",
		Long: `kbtool validates YAML keymaps against the layout engine, prints them
as per-layer grids and compiles them to Go source for the firmware.`,
		Version: buildinfo.Long(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				printer.SetColor(false)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors:      true,
		SilenceUsage:       true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{},
	}
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable coloured output")
	root.AddCommand(newCheckCmd(), newShowCmd(), newGenCmd())
	return root
}

// Execute runs kbtool with the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}
