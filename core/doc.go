/*
Package core holds types shared by all parts of thot: application errors
with numeric codes and the diagnostics a conversion collects.

Errors carry a code and a message meant for the user. Codes above NOERROR
distinguish problems with document structure, unknown constructs, missing
resources, failed validation and failing external tools. Only structural
and internal errors are fatal; everything else is reported as a warning
and conversion goes on.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package core
