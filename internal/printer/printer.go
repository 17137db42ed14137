// Package printer formats CLI output with colour.
package printer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

func init() {
	// Colour stays on when piped; NO_COLOR turns it off.
	if os.Getenv("NO_COLOR") == "" {
		color.NoColor = false
	}
}

// SetColor turns coloured output on or off.
func SetColor(on bool) { color.NoColor = !on }

var (
	green   = color.New(color.FgGreen)
	yellow  = color.New(color.FgYellow)
	red     = color.New(color.FgRed, color.Bold)
	cyan    = color.New(color.FgCyan)
	magenta = color.New(color.FgMagenta)
	faint   = color.New(color.Faint)
	bold    = color.New(color.Bold)
)

// Success prints a message in green with a check mark.
func Success(w io.Writer, format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		msg = "✓ " + msg
	}
	green.Fprint(w, msg)
}

// Warning prints a message in yellow.
func Warning(w io.Writer, format string, a ...any) {
	yellow.Fprintf(w, "! %s", fmt.Sprintf(format, a...))
}

// Step prints a step of a multi-step operation.
func Step(w io.Writer, format string, a ...any) {
	cyan.Fprintf(w, "→ %s", fmt.Sprintf(format, a...))
}

// Error prints a titled error with an explanation and suggestions to w and
// returns an error carrying just the title.
func Error(w io.Writer, title, explanation string, suggestions []string) error {
	red.Fprintf(w, "%s\n\n", title)
	if explanation != "" {
		fmt.Fprintf(w, "%s\n", explanation)
	}
	switch len(suggestions) {
	case 0:
	case 1:
		fmt.Fprintf(w, "\n%s\n", suggestions[0])
	default:
		fmt.Fprintf(w, "\nEither:\n")
		for i, s := range suggestions {
			fmt.Fprintf(w, "  %d. %s\n", i+1, s)
		}
	}
	return fmt.Errorf("%s", title)
}

// Heading returns s in bold.
func Heading(s string) string { return bold.Sprint(s) }

// Faint returns s dimmed.
func Faint(s string) string { return faint.Sprint(s) }

// Accent returns s in cyan.
func Accent(s string) string { return cyan.Sprint(s) }

// Notice returns s in yellow.
func Notice(s string) string { return yellow.Sprint(s) }

// Special returns s in magenta.
func Special(s string) string { return magenta.Sprint(s) }

// Alert returns s in red.
func Alert(s string) string { return red.Sprint(s) }
