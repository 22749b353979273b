package html

import (
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/thot/core"
)

// defaultCSS styles the elements the renderer generates on its own.
const defaultCSS = `
body { max-width: 48em; margin: auto; font-family: serif; }
span.number { margin-right: 0.5em; }
pre { background: #f4f4f4; padding: 0.5em; overflow-x: auto; }
span.broken { color: #c00; }
table { border-collapse: collapse; }
th, td { border: 1px solid #999; padding: 0.2em 0.5em; }
.caption { font-style: italic; }
nav.toc ul { list-style: none; }
img.align-left { float: left; }
img.align-right { float: right; }
img.align-center { display: block; margin: auto; }
`

// stylesheet combines the default style sheet with the one from the options.
// A style sheet which cannot be parsed is reported and left out.
func (r *Renderer) stylesheet() string {
	sheet, err := parser.Parse(defaultCSS)
	if err != nil {
		r.Warn(core.WrapError(err, core.EINTERNAL, "default style sheet"))
		sheet = css.NewStylesheet()
	}
	if r.opts.Stylesheet != "" {
		user, err := parser.Parse(r.opts.Stylesheet)
		if err != nil {
			r.Warn(core.WrapError(err, core.EINVALID, "style sheet ignored: %v", err))
		} else {
			sheet.Rules = append(sheet.Rules, user.Rules...)
		}
	}
	tracer().Debugf("style sheet has %d rules", len(sheet.Rules))
	return sheet.String()
}
