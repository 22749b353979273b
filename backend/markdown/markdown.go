package markdown

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/thot/backend"
	"github.com/npillmayer/thot/core"
	"github.com/npillmayer/thot/core/parameters"
	"github.com/npillmayer/thot/engine/doc"
	"gopkg.in/yaml.v3"
)

// Name is the output type of this back end.
const Name = "markdown"

func init() {
	backend.Register(Name, Generate)
}

// Generate writes d as Markdown to w.
func Generate(d *doc.Document, w io.Writer, opts backend.Options) (*core.Diagnostics, error) {
	r := New(d, opts)
	d.Generate(r)
	if _, err := io.WriteString(w, r.out.String()); err != nil {
		return r.Diagnostics(), core.WrapError(err, core.EINTERNAL, "cannot write Markdown")
	}
	return r.Diagnostics(), nil
}

// Renderer implements doc.Renderer and doc.FootNoteRenderer.
//
// Inline content is collected in a buffer and written when its block ends.
// Every output line starts with the prefixes of the enclosing quotes and
// list items.
type Renderer struct {
	backend.Base
	prep    *backend.Prep
	width   int
	filler  *Filler
	out     strings.Builder
	inline  *strings.Builder   // target of inline content
	saved   []*strings.Builder // targets interrupted by footnotes
	par     strings.Builder
	prefix  []string
	marker  string // replaces the innermost prefix on the next line
	started bool   // some block has been written
	last    string // prefix of the previous block
	code    int    // depth of monospace styles
	lists   []int  // items per open list; -1 for unordered lists
	notes   []string
	table   *pipeTable
	tables  int // depth of nested tables
	anchors bool
}

var _ doc.Renderer = &Renderer{}
var _ doc.FootNoteRenderer = &Renderer{}

// New creates a renderer for a document.
func New(d *doc.Document, opts backend.Options) *Renderer {
	r := &Renderer{
		Base:   backend.NewBase(Name),
		prep:   backend.Prepare(d),
		width:  opts.Width,
		filler: NewFiller(),
	}
	if r.width <= 0 {
		r.width = DefaultWidth
	}
	r.inline = &r.par
	return r
}

// --- Output lines ----------------------------------------------------------

func (r *Renderer) linePrefix() string {
	if len(r.prefix) == 0 {
		return ""
	}
	last := len(r.prefix) - 1
	p := strings.Join(r.prefix[:last], "")
	if r.marker != "" {
		p += r.marker
		r.marker = ""
		return p
	}
	return p + r.prefix[last]
}

func (r *Renderer) emit(line string) {
	r.out.WriteString(strings.TrimRight(r.linePrefix()+line, " "))
	r.out.WriteByte('\n')
}

// beginBlock separates blocks by an empty line. The empty line carries
// the prefixes shared with the previous block.
func (r *Renderer) beginBlock() {
	cur := strings.Join(r.prefix, "")
	if r.started {
		r.out.WriteString(strings.TrimRight(commonPrefix(r.last, cur), " "))
		r.out.WriteByte('\n')
	}
	r.started = true
	r.last = cur
}

func commonPrefix(a, b string) string {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return a[:i]
}

// fill writes text as a paragraph. Forced line breaks have been recorded
// as a backslash followed by a newline.
func (r *Renderer) fill(text string) {
	width := r.width - len(strings.Join(r.prefix, ""))
	for _, hard := range strings.Split(strings.TrimSpace(text), "\n") {
		for _, line := range r.filler.Fill(hard, width) {
			r.emit(line)
		}
	}
}

// collect renders inline content into a string.
func (r *Renderer) collect(f func()) string {
	var b strings.Builder
	r.saved = append(r.saved, r.inline)
	r.inline = &b
	f()
	r.inline = r.saved[len(r.saved)-1]
	r.saved = r.saved[:len(r.saved)-1]
	return b.String()
}

// caption writes a numbered caption as a paragraph of its own.
func (r *Renderer) caption(n doc.Node) {
	if n.Caption() == nil {
		return
	}
	text := r.collect(func() { n.Caption().GenerateInline(r) })
	r.beginBlock()
	r.fill("*" + r.prep.CaptionPrefix(n) + strings.TrimSpace(text) + "*")
}

// --- Document --------------------------------------------------------------

type frontMatter struct {
	Title  string `yaml:"title,omitempty"`
	Author string `yaml:"author,omitempty"`
	Lang   string `yaml:"lang,omitempty"`
}

func (r *Renderer) DocumentBegin(d *doc.Document) {
	env := d.Env()
	fm := frontMatter{
		Title:  env.Get(parameters.TITLE),
		Author: env.Get(parameters.AUTHORS),
		Lang:   env.Get(parameters.LANG),
	}
	if fm != (frontMatter{}) {
		y, err := yaml.Marshal(fm)
		if err != nil {
			r.Warn(core.WrapError(err, core.EINTERNAL, "cannot write front matter"))
		} else {
			r.out.WriteString("---\n")
			r.out.Write(y)
			r.out.WriteString("---\n")
			r.started = true
		}
	}
	depth, ok := backend.TOCDepth(d)
	if !ok {
		return
	}
	r.anchors = true
	entries := r.prep.TOC(depth)
	if len(entries) == 0 {
		return
	}
	r.beginBlock()
	r.emit("**" + r.prep.Trans.Get(backend.MsgContents) + "**")
	r.beginBlock()
	for _, e := range entries {
		indent := strings.Repeat("  ", e.Level)
		r.emit(fmt.Sprintf("%s- [%s](#%s)", indent, escaper.Replace(e.Title), e.Anchor))
	}
}

func (r *Renderer) DocumentEnd(d *doc.Document) {
	if len(r.notes) == 0 {
		return
	}
	r.prefix, r.marker = nil, ""
	r.beginBlock()
	for i, note := range r.notes {
		r.emit(fmt.Sprintf("[^%d]: %s", i+1, strings.TrimSpace(note)))
	}
}

// --- Inline ----------------------------------------------------------------

var escaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
)

func (r *Renderer) Word(w *doc.Word) {
	text := w.Text
	if r.code == 0 {
		text = escaper.Replace(text)
	}
	if r.table != nil {
		text = strings.ReplaceAll(text, "|", `\|`)
	}
	r.inline.WriteString(text)
}

func (r *Renderer) Glyph(g *doc.Glyph) {
	r.inline.WriteRune(g.Code)
}

func (r *Renderer) LineBreak(br *doc.LineBreak) {
	if r.table != nil {
		r.inline.WriteString("<br>")
		return
	}
	r.inline.WriteString("\\\n")
}

func (r *Renderer) Image(img *doc.Image) {
	alt := img.Title
	if img.Caption() != nil {
		alt = strings.TrimSpace(r.collect(func() { img.Caption().GenerateInline(r) }))
	}
	r.inline.WriteString("![" + alt + "](" + img.URL)
	if img.Title != "" {
		r.inline.WriteString(` "` + strings.ReplaceAll(img.Title, `"`, `\"`) + `"`)
	}
	r.inline.WriteString(")")
}

var styleMarks = map[string][2]string{
	doc.Bold:        {"**", "**"},
	doc.Italic:      {"*", "*"},
	doc.Monospace:   {"`", "`"},
	doc.Deleted:     {"~~", "~~"},
	doc.Subscript:   {"~", "~"},
	doc.Superscript: {"^", "^"},
	doc.Underline:   {"<u>", "</u>"},
	doc.Inserted:    {"<ins>", "</ins>"},
	doc.Citation:    {"<cite>", "</cite>"},
}

func (r *Renderer) StyleBegin(style string) {
	marks, ok := styleMarks[style]
	if !ok {
		r.UnknownStyle(style)
		return
	}
	if style == doc.Monospace {
		r.code++
	}
	r.inline.WriteString(marks[0])
}

func (r *Renderer) StyleEnd(style string) {
	marks, ok := styleMarks[style]
	if !ok {
		return
	}
	if style == doc.Monospace {
		r.code--
	}
	r.inline.WriteString(marks[1])
}

func (r *Renderer) target(l *doc.Link) string {
	if strings.HasPrefix(l.URL, "#") {
		if _, anchor, ok := r.prep.Resolve(l.URL[1:]); ok && anchor != "" {
			return "#" + anchor
		}
	}
	return l.URL
}

func (r *Renderer) LinkBegin(l *doc.Link) {
	if len(l.Content()) == 0 {
		r.inline.WriteString("<" + r.target(l) + ">")
		return
	}
	r.inline.WriteString("[")
}

func (r *Renderer) LinkEnd(l *doc.Link) {
	if len(l.Content()) > 0 {
		r.inline.WriteString("](" + r.target(l) + ")")
	}
}

func (r *Renderer) FootNoteBegin(fn *doc.FootNote) {
	fmt.Fprintf(r.inline, "[^%d]", len(r.notes)+1)
	r.notes = append(r.notes, "")
	r.saved = append(r.saved, r.inline)
	r.inline = &strings.Builder{}
}

func (r *Renderer) FootNoteEnd(fn *doc.FootNote) {
	for i := len(r.notes) - 1; i >= 0; i-- {
		if r.notes[i] == "" {
			r.notes[i] = r.inline.String()
			break
		}
	}
	r.inline = r.saved[len(r.saved)-1]
	r.saved = r.saved[:len(r.saved)-1]
}

// --- Blocks ----------------------------------------------------------------

func (r *Renderer) ParBegin(p *doc.Par) {
	if r.table != nil {
		if r.inline.Len() > 0 {
			r.inline.WriteByte(' ')
		}
		return
	}
	r.par.Reset()
	r.inline = &r.par
}

func (r *Renderer) ParEnd(p *doc.Par) {
	if r.table != nil {
		return
	}
	r.beginBlock()
	r.fill(r.par.String())
	r.par.Reset()
}

func (r *Renderer) QuoteBegin(q *doc.Quote) { r.prefix = append(r.prefix, "> ") }
func (r *Renderer) QuoteEnd(q *doc.Quote)   { r.prefix = r.prefix[:len(r.prefix)-1] }

func (r *Renderer) ListBegin(l *doc.List) {
	if l.ListKind() == doc.Ordered {
		r.lists = append(r.lists, 0)
		return
	}
	r.lists = append(r.lists, -1)
}

func (r *Renderer) ListEnd(l *doc.List) {
	r.lists = r.lists[:len(r.lists)-1]
}

func (r *Renderer) ItemBegin(it *doc.ListItem) {
	marker := "- "
	if i := len(r.lists) - 1; i >= 0 && r.lists[i] >= 0 {
		r.lists[i]++
		marker = fmt.Sprintf("%d. ", r.lists[i])
	}
	r.prefix = append(r.prefix, strings.Repeat(" ", len(marker)))
	r.marker = marker
}

func (r *Renderer) ItemEnd(it *doc.ListItem) {
	if r.marker != "" {
		r.beginBlock()
		r.emit("")
	}
	r.prefix = r.prefix[:len(r.prefix)-1]
}

// --- Tables ----------------------------------------------------------------

// pipeTable collects the cells of a table. Markdown tables need the width
// of every column before the first row can be written.
type pipeTable struct {
	rows    [][]string
	aligns  []doc.Alignment
	cell    strings.Builder
	headRow bool // current row is the table's header line
}

func (r *Renderer) TableBegin(t *doc.Table) {
	r.tables++
	if r.tables > 1 {
		r.Warn(core.At(t.Pos().File, t.Pos().Line,
			core.Error(core.EUNKNOWN, "markdown renderer cannot nest tables")))
		return
	}
	r.table = &pipeTable{aligns: make([]doc.Alignment, t.Columns())}
	if rows := t.Rows(); len(rows) > 0 {
		i := 0
		for _, c := range rows[0].Cells() {
			if i < len(r.table.aligns) {
				r.table.aligns[i] = c.Align()
			}
			h, _ := c.Span()
			i += h
		}
	}
}

func (r *Renderer) TableEnd(t *doc.Table) {
	r.tables--
	if r.tables > 0 {
		return
	}
	pt := r.table
	r.table = nil
	r.inline = &r.par
	cols := len(pt.aligns)
	widths := make([]int, cols)
	for i := range widths {
		widths[i] = 3
	}
	for _, row := range pt.rows {
		for i, c := range row {
			if i < cols && len([]rune(c)) > widths[i] {
				widths[i] = len([]rune(c))
			}
		}
	}
	line := func(cells []string) string {
		var b strings.Builder
		b.WriteString("|")
		for i := 0; i < cols; i++ {
			c := ""
			if i < len(cells) {
				c = cells[i]
			}
			b.WriteString(" " + c + strings.Repeat(" ", widths[i]-len([]rune(c))) + " |")
		}
		return b.String()
	}
	r.beginBlock()
	if len(pt.rows) == 0 {
		pt.rows = append(pt.rows, nil)
	}
	r.emit(line(pt.rows[0]))
	delims := make([]string, cols)
	for i, a := range pt.aligns {
		d := strings.Repeat("-", widths[i])
		switch a {
		case doc.AlignLeft:
			d = ":" + d[1:]
		case doc.AlignRight:
			d = d[1:] + ":"
		case doc.AlignCenter:
			d = ":" + d[2:] + ":"
		}
		delims[i] = d
	}
	r.emit(line(delims))
	for _, row := range pt.rows[1:] {
		r.emit(line(row))
	}
	r.caption(t)
}

func (r *Renderer) RowBegin(row *doc.Row) {
	if r.tables == 1 {
		r.table.rows = append(r.table.rows, nil)
		r.table.headRow = len(r.table.rows) == 1 && len(row.Cells()) > 0
		for _, c := range row.Cells() {
			r.table.headRow = r.table.headRow && c.IsHead()
		}
	}
}

func (r *Renderer) RowEnd(row *doc.Row) {}

func (r *Renderer) CellBegin(c *doc.Cell) {
	if r.tables > 1 {
		return
	}
	if h, v := c.Span(); h > 1 || v > 1 {
		r.Warn(core.At(c.Pos().File, c.Pos().Line, core.Error(core.EUNKNOWN,
			"markdown renderer cannot span cells (%dx%d)", h, v)))
	}
	r.table.cell.Reset()
	r.inline = &r.table.cell
}

func (r *Renderer) CellEnd(c *doc.Cell) {
	if r.tables > 1 {
		return
	}
	pt := r.table
	i := len(pt.rows) - 1
	text := strings.TrimSpace(pt.cell.String())
	if c.IsHead() && !pt.headRow && text != "" {
		text = "**" + text + "**"
	}
	pt.rows[i] = append(pt.rows[i], text)
	h, _ := c.Span()
	for ; h > 1; h-- {
		pt.rows[i] = append(pt.rows[i], "")
	}
}

// Block writes a fenced code block. The fence is longer than any run of
// backticks within the block.
func (r *Renderer) Block(b *doc.Block) {
	fence := "```"
	for _, line := range b.Lines() {
		trimmed := strings.TrimLeft(line, " ")
		n := len(trimmed) - len(strings.TrimLeft(trimmed, "`"))
		if n >= len(fence) {
			fence = strings.Repeat("`", n+1)
		}
	}
	r.beginBlock()
	r.emit(fence + b.Lang)
	for _, line := range b.Lines() {
		r.out.WriteString(r.linePrefix() + line + "\n")
	}
	r.emit(fence)
	r.caption(b)
}

func (r *Renderer) HorizontalLine(hl *doc.HorizontalLine) {
	r.beginBlock()
	r.emit("---")
}

func (r *Renderer) HeaderBegin(h *doc.Header) {
	r.par.Reset()
	r.inline = &r.par
}

// HeaderTitleEnd writes an ATX header. Headers get an explicit anchor if
// they are labeled or listed in a table of contents.
func (r *Renderer) HeaderTitleEnd(h *doc.Header) {
	level := h.HeaderLevel() + 1
	if level > 6 {
		level = 6
	}
	title := strings.Join(strings.Fields(r.par.String()), " ")
	r.par.Reset()
	if r.anchors || h.Label() != "" {
		title += " {#" + r.prep.AnchorOf(h) + "}"
	}
	r.beginBlock()
	r.emit(strings.Repeat("#", level) + " " + title)
	tracer().Debugf("header %s", title)
}

func (r *Renderer) HeaderEnd(h *doc.Header) {}
