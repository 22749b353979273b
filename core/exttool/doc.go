/*
Package exttool runs external programs on behalf of back ends, e.g. a
syntax highlighter for code blocks.

A failing tool never aborts document generation: errors are reported with
code core.EEXTERNAL and callers fall back to literal output.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package exttool

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'thot.exttool'.
func tracer() tracing.Trace {
	return tracing.Select("thot.exttool")
}
