package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/npillmayer/thot/core"
)

// report prints warnings, colored if w is a terminal.
func report(w io.Writer, diags *core.Diagnostics) {
	if diags.Len() == 0 {
		return
	}
	colors := map[int]*color.Color{
		core.EMISSING:  color.New(color.FgMagenta),
		core.EEXTERNAL: color.New(color.FgCyan),
	}
	warning := color.New(color.FgYellow)
	fatal := color.New(color.FgRed, color.Bold)
	if !isTerminal(w) {
		for _, c := range []*color.Color{colors[core.EMISSING], colors[core.EEXTERNAL], warning, fatal} {
			c.DisableColor()
		}
	}
	for _, err := range diags.All() {
		c, ok := colors[core.Code(err)]
		switch {
		case core.IsFatal(err):
			c = fatal
		case !ok:
			c = warning
		}
		c.Fprintln(w, err.Error())
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
