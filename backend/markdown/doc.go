/*
Package markdown writes documents as Markdown text.

Paragraphs are filled to a line width, breaking lines only between words
as found by a UAX #29 word segmenter. A line is never started with a
character which Markdown would read as a block marker.

Document variables for the title, authors and language go into a YAML
front matter block. Features Markdown lacks are approximated: underline
and citations use inline HTML, definition lists fall back to paragraphs
with a bold term, and table cells spanning several columns or rows are
flattened with a warning.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package markdown

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'thot.mdwriter'.
func tracer() tracing.Trace {
	return tracing.Select("thot.mdwriter")
}
