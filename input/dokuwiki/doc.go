/*
Package dokuwiki implements the DokuWiki markup dialect.

Importing the package registers a syntax dialect "dokuwiki" with package
assembly:

    import _ "github.com/npillmayer/thot/input/dokuwiki"

Supported are headers, ordered and unordered lists, tables (with head cells,
column spans and alignment by padding), quotes, literal blocks (<code>,
<file>, <nowiki> and indented lines), horizontal rules, text styles, links,
images, footnotes, line breaks, typographic entities and smileys.

Smileys are rendered as images found below $(THOT_BASE)smileys/.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dokuwiki

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'thot.dokuwiki'.
func tracer() tracing.Trace {
	return tracing.Select("thot.dokuwiki")
}
