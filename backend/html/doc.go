/*
Package html renders documents as HTML5 pages.

The renderer builds a tree of golang.org/x/net/html nodes, which is
serialized with html.Render once the document has been walked. Working on a
node tree keeps the output well-formed and lets post-processing passes,
like relocating images to friend files, operate on the result with CSS
selectors.

A style sheet given in the options is parsed and normalized before it is
embedded into the page.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package html

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'thot.html'.
func tracer() tracing.Trace {
	return tracing.Select("thot.html")
}
