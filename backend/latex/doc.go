/*
Package latex renders documents as LaTeX sources.

The packages loaded in the preamble are derived from the features the
document requires, e.g. graphicx for images or hyperref for links.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package latex

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'thot.latex'.
func tracer() tracing.Trace {
	return tracing.Select("thot.latex")
}
