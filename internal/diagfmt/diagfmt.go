// Package diagfmt formats the compiler's fatal diagnostics the way
// cmd/vslower's teacher (cmd/surge's diagfmt package) formats its own:
// a colorized "error: message" line on stderr, with color auto-detected
// from the target file descriptor via golang.org/x/term. This package is
// deliberately much smaller than the teacher's — spec.md §7 makes the
// first semantic error fatal, so there is no diag.Bag of accumulated
// diagnostics to sort and render, only ever one message.
package diagfmt

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// ColorMode mirrors cmd/surge's --color flag values.
type ColorMode uint8

const (
	ColorAuto ColorMode = iota
	ColorOn
	ColorOff
)

// ParseColorMode validates a --color flag value.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto", "":
		return ColorAuto, nil
	case "on":
		return ColorOn, nil
	case "off":
		return ColorOff, nil
	default:
		return ColorAuto, fmt.Errorf("unsupported --color value %q (must be auto|on|off)", s)
	}
}

// ShouldColor resolves a ColorMode against whether f is a terminal.
func ShouldColor(mode ColorMode, f *os.File) bool {
	switch mode {
	case ColorOn:
		return true
	case ColorOff:
		return false
	default:
		return term.IsTerminal(int(f.Fd()))
	}
}

// Fatal prints a fatal compilation error (a syntax error, a redeclaration,
// or any other error propagated from parsing/lowering per spec §7) in the
// "error: message" shape, colorizing the "error:" tag when useColor is set.
func Fatal(w io.Writer, err error, useColor bool) {
	tag := color.New(color.FgRed, color.Bold)
	prev := color.NoColor
	defer func() { color.NoColor = prev }()
	color.NoColor = !useColor

	fmt.Fprintf(w, "%s %s\n", tag.Sprint("error:"), err.Error())
}

// Note prints an informational line (e.g. a debug-build section header)
// colorized the way cmd/surge colors its section banners.
func Note(w io.Writer, msg string, useColor bool) {
	tag := color.New(color.FgCyan, color.Bold)
	prev := color.NoColor
	defer func() { color.NoColor = prev }()
	color.NoColor = !useColor

	fmt.Fprintf(w, "%s\n", tag.Sprint(msg))
}
