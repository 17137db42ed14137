// Command kbtool checks, prints and compiles keyboard keymaps.
package main

import (
	"os"

	"splitkb/cmd/kbtool/commands"
)

func main() {
	// Errors are printed by the printer package.
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
