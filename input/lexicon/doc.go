/*
Package lexicon implements an extension module for glossaries.

Importing the package registers an extension module "lexicon" with package
assembly, to be loaded with `@use lexicon` or by configuration.

A line `@term TERM DEFINITION` defines a term, `@lexicon` places the list
of all terms of the document, sorted by the collation of the document's
language. In running text, `#TERM` or `#(TERM)` links to the definition of
a term and `##` stands for a single #. Terms have to be defined before
they are referenced.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexicon

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'thot.lexicon'.
func tracer() tracing.Trace {
	return tracing.Select("thot.lexicon")
}
