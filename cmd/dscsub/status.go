package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

// writerIsTerminal reports whether w is an interactive terminal, which gates
// ANSI color in per-entry status lines.
func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func statusLine(ok bool, colorize bool, format string, args ...any) string {
	label, color := "FAIL", ansiRed
	if ok {
		label, color = "OK", ansiGreen
	}
	label = fmt.Sprintf("%-4s", label)
	if colorize {
		label = color + label + ansiReset
	}
	return fmt.Sprintf("[%s] %s", label, fmt.Sprintf(format, args...))
}
