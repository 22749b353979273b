/*
Package backend holds what all back ends share: the Base renderer
collecting warnings, numbering of headers and captioned nodes, anchors for
labels, the table of contents and a registry of output formats.

A back end is a doc.Renderer. Rendering a document is done in two steps.
Prepare walks the finished tree once and computes numbers and anchors,
then the document's Generate method drives the renderer. Both steps only
read the tree.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package backend

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'thot.backend'.
func tracer() tracing.Trace {
	return tracing.Select("thot.backend")
}
