/*
Package glyphs implements an extension module defining escapes for Unicode
characters.

Importing the package registers an extension module "unicode" with
package assembly. A block

	<unicode>
	0x2192: -->
	8656: <==
	(tm): TM
	</unicode>

makes the text right of a colon an escape for the character left of it,
given by a hexadecimal or decimal code point, or for a literal string.
Escapes apply to the rest of the document.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glyphs

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'thot.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("thot.glyphs")
}
