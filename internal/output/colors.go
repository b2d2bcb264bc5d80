// Package output renders run summaries and diagnostics for the terminal.
package output

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorScheme defines the colors used for the different summary elements.
type ColorScheme struct {
	Label   *color.Color
	Value   *color.Color
	Success *color.Color
	Error   *color.Color
	Target  *color.Color
}

// DefaultColorScheme returns the default color scheme.
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Label:   color.New(color.FgYellow),
		Value:   color.New(color.FgWhite),
		Success: color.New(color.FgGreen, color.Bold),
		Error:   color.New(color.FgRed, color.Bold),
		Target:  color.New(color.FgCyan),
	}
}

// NoColorScheme returns a color scheme with all colors disabled.
func NoColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()
	scheme.Label.DisableColor()
	scheme.Value.DisableColor()
	scheme.Success.DisableColor()
	scheme.Error.DisableColor()
	scheme.Target.DisableColor()
	return scheme
}

// SchemeFor picks a scheme for f: colors when f is a terminal, plain text
// otherwise. Pipes and files never receive escape codes.
func SchemeFor(f *os.File) *ColorScheme {
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return DefaultColorScheme()
	}
	return NoColorScheme()
}
