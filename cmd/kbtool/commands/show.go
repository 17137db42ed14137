package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"splitkb/firmware/keymap"
	"splitkb/firmware/layout"
	"splitkb/internal/keymapfile"
	"splitkb/internal/printer"
)

func newShowCmd() *cobra.Command {
	var only int
	cmd := &cobra.Command{
		Use:   "show [FILE]",
		Short: "Print a keymap as one grid per layer",
		Long:  "Print a keymap as one grid per layer. Without FILE the built-in keymap is shown.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layers := keymap.Default()
			if len(args) == 1 {
				var err error
				if layers, err = keymapfile.Load(args[0]); err != nil {
					return printer.Error(cmd.ErrOrStderr(), "Invalid keymap", err.Error(), nil)
				}
			}
			if only >= len(layers) {
				return printer.Error(cmd.ErrOrStderr(), "No such layer",
					fmt.Sprintf("layer %d requested, keymap has %d", only, len(layers)), nil)
			}
			for n, layer := range layers {
				if only >= 0 && n != only {
					continue
				}
				writeLayer(cmd.OutOrStdout(), n, layer)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&only, "layer", "l", -1, "show only this layer")
	return cmd
}

func writeLayer(w io.Writer, n int, layer [][]layout.Action) {
	width := 1
	for _, row := range layer {
		for _, a := range row {
			if l := len(keymapfile.FormatAction(a, keymapfile.DefaultHoldTimeout)); l > width {
				width = l
			}
		}
	}
	fmt.Fprintln(w, printer.Heading(fmt.Sprintf("Layer %d", n)))
	for _, row := range layer {
		cells := make([]string, len(row))
		for i, a := range row {
			tok := keymapfile.FormatAction(a, keymapfile.DefaultHoldTimeout)
			cells[i] = tint(a, tok+strings.Repeat(" ", width-len(tok)))
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, " "), " "))
	}
	fmt.Fprintln(w)
}

func tint(a layout.Action, s string) string {
	switch a.Kind {
	case layout.KindTrans:
		return printer.Faint(s)
	case layout.KindNoOp:
		return printer.Alert(s)
	case layout.KindLayer:
		return printer.Accent(s)
	case layout.KindHoldTap:
		return printer.Notice(s)
	case layout.KindCustom:
		return printer.Special(s)
	default:
		return s
	}
}
