/*
Package textile implements a subset of the Textile markup dialect.

Importing the package registers a syntax dialect "textile" with package
assembly.

Block signatures understood are h1. to h6., p., bq., bc. and bc.. (an
extended code block ending at the next p.), lists with * and #, definition
lists (`; term` followed by `: definition`, or `- term := definition`) and
tables. Table cells may carry modifiers in front of a period: `_` for head
cells, `\N` for column spans, `/N` for row spans, and `<`, `=`, `>` for
alignment.

Phrase modifiers are the usual ones: *strong*, _emphasis_, +inserted+,
-deleted-, ^superscript^, ~subscript~, ??citation?? and @code@. Links are
written "text":url, images !url!, optionally with a size (!url 200x100!),
a scale (!url 50%!) and an alternate text in parentheses.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package textile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'thot.textile'.
func tracer() tracing.Trace {
	return tracing.Select("thot.textile")
}
