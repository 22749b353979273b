/*
Package markdown implements a subset of Markdown.

Importing the package registers a syntax dialect "markdown" with package
assembly.

Supported are ATX headers (`## Title`), bullet and numbered lists nested by
indentation, block quotes, fenced code blocks, thematic breaks, pipe tables
with an optional delimiter row, emphasis, strong emphasis, strike-through,
code spans, links, images, autolinks and hard line breaks.

Markdown parsing is local: a construct never depends on input far behind
it, only on the current block context. Setext headers and indented code
blocks are not supported, as both would need to look back at the
preceding line.

See https://spec.commonmark.org/ and https://github.github.com/gfm/ for
the full syntax.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package markdown

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'thot.markdown'.
func tracer() tracing.Trace {
	return tracing.Select("thot.markdown")
}
