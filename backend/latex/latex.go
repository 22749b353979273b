package latex

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/thot/backend"
	"github.com/npillmayer/thot/core"
	"github.com/npillmayer/thot/core/parameters"
	"github.com/npillmayer/thot/engine/doc"
	"github.com/npillmayer/thot/engine/doc/xpathadapter"
	"golang.org/x/text/language"
)

// Name is the output type of this back end.
const Name = "latex"

func init() {
	backend.Register(Name, Generate)
}

// Generate renders d as a LaTeX document to w.
func Generate(d *doc.Document, w io.Writer, opts backend.Options) (*core.Diagnostics, error) {
	r := New(d, opts)
	d.Generate(r)
	if _, err := io.WriteString(w, r.out.String()); err != nil {
		return r.Diagnostics(), core.WrapError(err, core.EINTERNAL, "cannot write LaTeX")
	}
	return r.Diagnostics(), nil
}

// Renderer implements doc.Renderer, doc.FootNoteRenderer and
// doc.DefinitionRenderer.
type Renderer struct {
	backend.Base
	prep   *backend.Prep
	opts   backend.Options
	out    strings.Builder
	cells  []int // number of cells emitted, per open row
	inCell int
	pars   int // paragraphs in the current cell
}

var _ doc.Renderer = &Renderer{}
var _ doc.FootNoteRenderer = &Renderer{}
var _ doc.DefinitionRenderer = &Renderer{}

// New creates a renderer for a document.
func New(d *doc.Document, opts backend.Options) *Renderer {
	return &Renderer{
		Base: backend.NewBase(Name),
		prep: backend.Prepare(d),
		opts: opts,
	}
}

func (r *Renderer) write(s ...string) {
	for _, x := range s {
		r.out.WriteString(x)
	}
}

// --- Escaping --------------------------------------------------------------

var escaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`#`, `\#`,
	`%`, `\%`,
	`_`, `\_`,
	`^`, `\textasciicircum{}`,
	`~`, `\textasciitilde{}`,
	`<`, `\textless{}`,
	`>`, `\textgreater{}`,
)

// Escape quotes characters special to LaTeX.
func Escape(s string) string {
	return escaper.Replace(s)
}

var urlEscaper = strings.NewReplacer(`%`, `\%`, `#`, `\#`, `\`, `\\`)

var glyphs = map[rune]string{
	'©': `\copyright{}`,
	'®': `\textregistered{}`,
	'™': `\texttrademark{}`,
	'…': `\ldots{}`,
	'—': `---`,
	'–': `--`,
	'→': `$\rightarrow$`,
	'←': `$\leftarrow$`,
	'↔': `$\leftrightarrow$`,
	'⇒': `$\Rightarrow$`,
	'⇐': `$\Leftarrow$`,
	'⇔': `$\Leftrightarrow$`,
	'«': `\guillemotleft{}`,
	'»': `\guillemotright{}`,
}

// --- Document --------------------------------------------------------------

var babelNames = map[language.Tag]string{
	language.English: "english",
	language.French:  "french",
	language.German:  "ngerman",
}

func (r *Renderer) DocumentBegin(d *doc.Document) {
	env := d.Env()
	r.write(`\documentclass{`, env.GetOr("LATEX_CLASS", "article"), "}\n")
	r.write(`\usepackage[utf8]{inputenc}`, "\n", `\usepackage[T1]{fontenc}`, "\n")
	if env.Get(parameters.LANG) != "" {
		r.write(`\usepackage[`, babelNames[r.prep.Trans.Tag], "]{babel}\n")
	}
	for _, pkg := range packages(d) {
		r.write(pkg, "\n")
	}
	if t := env.Get(parameters.TITLE); t != "" {
		r.write(`\title{`, Escape(t), "}\n")
		r.write(`\author{`, Escape(env.Get(parameters.AUTHORS)), "}\n")
	}
	r.write("\n", `\begin{document}`, "\n")
	if env.Get(parameters.TITLE) != "" {
		r.write(`\maketitle`, "\n")
	}
	if _, ok := backend.TOCDepth(d); ok {
		r.write(`\tableofcontents`, "\n")
	}
	r.write("\n")
}

// packages derives the preamble's packages from the document's features.
func packages(d *doc.Document) []string {
	var pkgs []string
	if d.Has("image") {
		pkgs = append(pkgs, `\usepackage{graphicx}`)
	}
	if d.Has("highlight") || d.Has("verbatim") {
		pkgs = append(pkgs, `\usepackage{listings}`)
	}
	count, err := xpathadapter.Evaluate(d,
		"count(//*[@style='deleted' or @style='inserted' or @style='underline'])")
	if n, ok := count.(float64); err == nil && ok && n > 0 {
		pkgs = append(pkgs, `\usepackage[normalem]{ulem}`)
	}
	if d.Has("link") {
		pkgs = append(pkgs, `\usepackage{hyperref}`)
	}
	tracer().Debugf("packages for features %v: %v", d.Features(), pkgs)
	return pkgs
}

func (r *Renderer) DocumentEnd(d *doc.Document) {
	r.write(`\end{document}`, "\n")
}

// --- Inline ----------------------------------------------------------------

func (r *Renderer) Word(w *doc.Word) {
	r.write(Escape(w.Text))
}

func (r *Renderer) Glyph(g *doc.Glyph) {
	if s, ok := glyphs[g.Code]; ok {
		r.write(s)
		return
	}
	r.write(Escape(string(g.Code)))
}

func (r *Renderer) LineBreak(br *doc.LineBreak) {
	r.write(`\\`, "\n")
}

func (r *Renderer) Image(img *doc.Image) {
	var opts []string
	switch {
	case img.Scale > 0:
		opts = append(opts, fmt.Sprintf(`width=%.2f\linewidth`, img.Scale.Fraction()))
	case img.Size.W > 0:
		opts = append(opts, "width="+img.Size.W.TeX())
	case img.Size.H > 0:
		opts = append(opts, "height="+img.Size.H.TeX())
	}
	graphic := `\includegraphics`
	if len(opts) > 0 {
		graphic += "[" + strings.Join(opts, ",") + "]"
	}
	graphic += "{" + img.URL + "}"
	if img.Caption() == nil && img.Label() == "" {
		r.write(graphic)
		return
	}
	r.write("\n", `\begin{figure}[htbp]`, "\n", `\centering`, "\n", graphic, "\n")
	r.captionAndLabel(img)
	r.write(`\end{figure}`, "\n")
}

func (r *Renderer) captionAndLabel(n doc.Node) {
	if n.Caption() != nil {
		r.write(`\caption{`)
		n.Caption().GenerateInline(r)
		r.write("}\n")
	}
	if a := r.prep.AnchorOf(n); a != "" {
		r.write(`\label{`, a, "}\n")
	}
}

var styleCommands = map[string]string{
	doc.Bold:        `\textbf{`,
	doc.Italic:      `\emph{`,
	doc.Underline:   `\uline{`,
	doc.Monospace:   `\texttt{`,
	doc.Subscript:   `\textsubscript{`,
	doc.Superscript: `\textsuperscript{`,
	doc.Deleted:     `\sout{`,
	doc.Inserted:    `\uwave{`,
	doc.Citation:    `\emph{`,
}

func (r *Renderer) StyleBegin(style string) {
	cmd, ok := styleCommands[style]
	if !ok {
		r.UnknownStyle(style)
		cmd = "{"
	}
	r.write(cmd)
}

func (r *Renderer) StyleEnd(style string) {
	r.write("}")
}

func (r *Renderer) LinkBegin(l *doc.Link) {
	if len(l.Content()) == 0 {
		r.write(`\url{`, urlEscaper.Replace(l.URL), "}")
		return
	}
	if strings.HasPrefix(l.URL, "#") {
		if _, anchor, ok := r.prep.Resolve(l.URL[1:]); ok && anchor != "" {
			r.write(`\hyperref[`, anchor, "]{")
			return
		}
	}
	r.write(`\href{`, urlEscaper.Replace(l.URL), "}{")
}

func (r *Renderer) LinkEnd(l *doc.Link) {
	if len(l.Content()) > 0 {
		r.write("}")
	}
}

func (r *Renderer) FootNoteBegin(fn *doc.FootNote) { r.write(`\footnote{`) }
func (r *Renderer) FootNoteEnd(fn *doc.FootNote)   { r.write("}") }

// --- Blocks ----------------------------------------------------------------

// ParBegin separates paragraphs within table cells by blanks.
func (r *Renderer) ParBegin(p *doc.Par) {
	if r.inCell > 0 {
		if r.pars > 0 {
			r.write(" ")
		}
		r.pars++
	}
}

func (r *Renderer) ParEnd(p *doc.Par) {
	if r.inCell == 0 {
		r.write("\n\n")
	}
}

func (r *Renderer) QuoteBegin(q *doc.Quote) { r.write(`\begin{quote}`, "\n") }
func (r *Renderer) QuoteEnd(q *doc.Quote)   { r.write(`\end{quote}`, "\n\n") }

func (r *Renderer) ListBegin(l *doc.List) {
	if l.ListKind() == doc.Ordered {
		r.write(`\begin{enumerate}`, "\n")
		return
	}
	r.write(`\begin{itemize}`, "\n")
}

func (r *Renderer) ListEnd(l *doc.List) {
	if l.ListKind() == doc.Ordered {
		r.write(`\end{enumerate}`, "\n\n")
		return
	}
	r.write(`\end{itemize}`, "\n\n")
}

func (r *Renderer) ItemBegin(it *doc.ListItem) { r.write(`\item `) }
func (r *Renderer) ItemEnd(it *doc.ListItem)   {}

func (r *Renderer) DefListBegin(dl *doc.DefinitionList) { r.write(`\begin{description}`, "\n") }
func (r *Renderer) DefListEnd(dl *doc.DefinitionList)   { r.write(`\end{description}`, "\n\n") }
func (r *Renderer) DefTermBegin(di *doc.DefinitionItem) { r.write(`\item[`) }
func (r *Renderer) DefBodyBegin(di *doc.DefinitionItem) {}
func (r *Renderer) DefBodyEnd(di *doc.DefinitionItem)   {}

func (r *Renderer) DefTermEnd(di *doc.DefinitionItem) {
	r.write("] ")
	if a := r.prep.AnchorOf(di); a != "" {
		r.write(`\label{`, a, "} ")
	}
}

var columnTypes = map[doc.Alignment]string{
	doc.AlignDefault: "l",
	doc.AlignLeft:    "l",
	doc.AlignCenter:  "c",
	doc.AlignRight:   "r",
}

func (r *Renderer) TableBegin(t *doc.Table) {
	floating := t.Caption() != nil || t.Label() != ""
	if floating {
		r.write(`\begin{table}[htbp]`, "\n", `\centering`, "\n")
	}
	cols := make([]string, t.Columns())
	for i := range cols {
		cols[i] = "l"
	}
	if rows := t.Rows(); len(rows) > 0 {
		i := 0
		for _, c := range rows[0].Cells() {
			h, _ := c.Span()
			if h == 1 && i < len(cols) {
				cols[i] = columnTypes[c.Align()]
			}
			i += h
		}
	}
	r.write(`\begin{tabular}{|`, strings.Join(cols, "|"), "|}\n", `\hline`, "\n")
}

func (r *Renderer) TableEnd(t *doc.Table) {
	r.write(`\end{tabular}`, "\n")
	if t.Caption() != nil || t.Label() != "" {
		r.captionAndLabel(t)
		r.write(`\end{table}`, "\n")
	}
	r.write("\n")
}

func (r *Renderer) RowBegin(row *doc.Row) {
	r.cells = append(r.cells, 0)
}

func (r *Renderer) RowEnd(row *doc.Row) {
	r.cells = r.cells[:len(r.cells)-1]
	r.write(` \\ \hline`, "\n")
}

func (r *Renderer) CellBegin(c *doc.Cell) {
	i := len(r.cells) - 1
	if r.cells[i] > 0 {
		r.write(" & ")
	}
	r.cells[i]++
	r.inCell++
	r.pars = 0
	h, v := c.Span()
	if v > 1 {
		pos := c.Pos()
		r.Warn(core.At(pos.File, pos.Line, core.Error(core.EUNKNOWN,
			"latex renderer cannot span %d rows", v)))
	}
	if h > 1 {
		r.write(fmt.Sprintf(`\multicolumn{%d}{|%s|}{`, h, columnTypes[c.Align()]))
	}
	if c.IsHead() {
		r.write(`\textbf{`)
	}
}

func (r *Renderer) CellEnd(c *doc.Cell) {
	r.inCell--
	if c.IsHead() {
		r.write("}")
	}
	if h, _ := c.Span(); h > 1 {
		r.write("}")
	}
}

// listingsLanguages are source languages known to the listings package.
var listingsLanguages = map[string]string{
	"c": "C", "cpp": "C++", "c++": "C++", "java": "Java", "python": "Python",
	"sh": "bash", "bash": "bash", "xml": "XML", "html": "HTML", "sql": "SQL",
	"tex": "TeX", "latex": "TeX", "perl": "Perl", "ruby": "Ruby", "make": "make",
	"pascal": "Pascal", "lisp": "Lisp", "haskell": "Haskell", "ada": "Ada",
}

func (r *Renderer) Block(b *doc.Block) {
	var opts []string
	if lang, ok := listingsLanguages[strings.ToLower(b.Lang)]; ok {
		opts = append(opts, "language="+lang)
	}
	r.write(`\begin{lstlisting}`)
	if b.Caption() != nil {
		opts = append(opts, "caption={")
	}
	if len(opts) > 0 || b.Label() != "" {
		r.write("[", strings.Join(opts, ","))
		if b.Caption() != nil {
			b.Caption().GenerateInline(r)
			r.write("}")
		}
		if b.Label() != "" {
			if len(opts) > 0 {
				r.write(",")
			}
			r.write("label=", r.prep.AnchorOf(b))
		}
		r.write("]")
	}
	r.write("\n", b.Text(), `\end{lstlisting}`, "\n\n")
}

func (r *Renderer) HorizontalLine(hl *doc.HorizontalLine) {
	r.write(`\noindent\rule{\linewidth}{0.4pt}`, "\n\n")
}

var sections = []string{`\section{`, `\subsection{`, `\subsubsection{`, `\paragraph{`, `\subparagraph{`}

func (r *Renderer) HeaderBegin(h *doc.Header) {
	level := h.HeaderLevel()
	if level >= len(sections) {
		level = len(sections) - 1
	}
	r.write(sections[level])
}

func (r *Renderer) HeaderTitleEnd(h *doc.Header) {
	r.write("}\n", `\label{`, r.prep.AnchorOf(h), "}\n\n")
}

func (r *Renderer) HeaderEnd(h *doc.Header) {}
