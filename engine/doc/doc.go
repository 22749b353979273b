/*
Package doc implements the document tree and the event protocol which builds it.

Markup recognizers do not create tree nodes directly. They emit a flat stream
of events, each describing one recognized structural token: a word, a style
toggle, the start of a list item, the end of a paragraph. An assembly manager
(see package assembly) keeps a stack of open nodes and delivers each event to
the node on top. Every node kind decides by itself whether it consumes an
event or declines it; declining pops the node and hands the event to its
parent. This way paragraph boundaries, implicitly closed styles, nested lists
and header sections fall out of a handful of local rules.

Once input is exhausted, the tree is pruned of empty containers and is
read-only from then on. Back ends walk it through the Renderer interface.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package doc

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'thot.doc'.
func tracer() tracing.Trace {
	return tracing.Select("thot.doc")
}
