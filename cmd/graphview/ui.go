package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	brand  = color.New(color.FgHiCyan, color.Bold)
	subtle = color.New(color.FgHiBlack)
	warn   = color.New(color.FgYellow)
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed, color.Bold)
)

// status prints a one-line status message: a colored tag, then the text.
func status(w io.Writer, tag *color.Color, label, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", tag.Sprintf("%-8s", label), fmt.Sprintf(format, args...))
}
