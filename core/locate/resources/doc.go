/*
Package resources resolves the files a document refers to.

Images are probed for their format and natural size. As probing may be a
time-consuming task, especially for remote images which have to be
downloaded first, it works in an async/await fashion. Functions named

   Resolve…(…)

will return a resource-specific promise type, which the client will call later
to receive the resource. The call to the promise-function will then block
until loading has completed.

Friend files are files an output document needs next to itself, e.g. images
referenced by an HTML page. Friends keeps track of them and maps every
source file to exactly one target path.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'thot.resources'.
func tracer() tracing.Trace {
	return tracing.Select("thot.resources")
}
