/*
Package assembly drives the construction of a document tree.

A Manager reads markup line by line. Each line is offered to the line rules
of the active dialects, the first matching rule wins. Lines no rule claims
are scanned for word rules, which are combined into one regular expression;
text between matches is sent as words. Rules do not build tree nodes
themselves, they send events (see package doc) to the Manager, which
delivers them to the node on top of its context stack.

Dialects register themselves, usually from an init function:

    func init() {
        assembly.Register(&assembly.Dialect{
            Name:  "dokuwiki",
            Kind:  assembly.Syntax,
            Lines: lineRules,
            Words: wordRules,
        })
    }

Rule precedence is fixed: built-in directives first, then extension modules
in the order they were loaded, then the syntax dialect. The first matching
rule wins, later modules never shadow earlier ones.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package assembly

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'thot.assembly'.
func tracer() tracing.Trace {
	return tracing.Select("thot.assembly")
}
