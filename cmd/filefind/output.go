package main

import (
	"fmt"
	"io"

	"github.com/mgutz/ansi"
)

// output handles result and warning formatting with optional color.
type output struct {
	stdout io.Writer
	stderr io.Writer

	green  func(string) string
	yellow func(string) string
}

func newOutput(stdout, stderr io.Writer, colorize bool) *output {
	color := func(name string) func(string) string {
		if colorize {
			return ansi.ColorFunc(name)
		}
		return ansi.ColorFunc("")
	}

	return &output{
		stdout: stdout,
		stderr: stderr,
		green:  color("green+b"),
		yellow: color("yellow"),
	}
}

// Match writes one matched path.
func (o *output) Match(path string) {
	fmt.Fprintf(o.stdout, "%s\n", o.green(path))
}

// Warningf writes a formatted warning message to stderr.
func (o *output) Warningf(format string, args ...any) {
	fmt.Fprintf(o.stderr, o.yellow("Warning: ")+format+"\n", args...)
}
