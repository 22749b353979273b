/*
Package docbook renders documents as DocBook 5 articles.

Headers become nested sections. Numbering of sections, tables and examples
is left to the DocBook tool chain; the renderer only emits identifiers for
labelled elements and resolves internal links to them.

DocBook has no horizontal rules. The renderer drops them with a warning.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package docbook

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'thot.docbook'.
func tracer() tracing.Trace {
	return tracing.Select("thot.docbook")
}
