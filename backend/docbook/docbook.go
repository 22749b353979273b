package docbook

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/npillmayer/thot/backend"
	"github.com/npillmayer/thot/core"
	"github.com/npillmayer/thot/core/parameters"
	"github.com/npillmayer/thot/engine/doc"
)

// Name is the output type of this back end.
const Name = "docbook"

func init() {
	backend.Register(Name, Generate)
}

// Generate renders d as a DocBook article to w.
func Generate(d *doc.Document, w io.Writer, opts backend.Options) (*core.Diagnostics, error) {
	r := New(d, opts)
	d.Generate(r)
	if _, err := io.WriteString(w, r.out.String()); err != nil {
		return r.Diagnostics(), core.WrapError(err, core.EINTERNAL, "cannot write DocBook")
	}
	return r.Diagnostics(), nil
}

// tgroup is the state of an open table.
type tgroup struct {
	section string // "thead", "tbody" or ""
	col     int    // column of the next cell
}

// Renderer implements doc.Renderer, doc.FootNoteRenderer and
// doc.DefinitionRenderer.
type Renderer struct {
	backend.Base
	prep   *backend.Prep
	opts   backend.Options
	out    strings.Builder
	tables []*tgroup
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

// text writes character data.
func (r *Renderer) text(s string) {
	xml.EscapeText(&r.out, []byte(s))
}

// tag writes a start tag. Attributes are given as name/value pairs; pairs
// with an empty value are skipped.
func (r *Renderer) tag(name string, attrs ...string) {
	r.write("<", name)
	for i := 0; i+1 < len(attrs); i += 2 {
		if attrs[i+1] == "" {
			continue
		}
		r.write(" ", attrs[i], `="`)
		r.text(attrs[i+1])
		r.write(`"`)
	}
	r.write(">")
}

func (r *Renderer) warnAt(n doc.Node, err error) {
	pos := n.Pos()
	r.Warn(core.At(pos.File, pos.Line, err))
}

// id returns the XML identifier of a labelled node, or "".
func (r *Renderer) id(n doc.Node) string {
	if n.Label() == "" {
		return ""
	}
	return xmlID(r.prep.AnchorOf(n))
}

// xmlID turns an anchor into an XML name without colons.
func xmlID(anchor string) string {
	id := strings.ReplaceAll(anchor, ":", "-")
	if id != "" && !unicode.IsLetter(rune(id[0])) && id[0] != '_' {
		id = "id-" + id
	}
	return id
}

// --- Document --------------------------------------------------------------

func (r *Renderer) DocumentBegin(d *doc.Document) {
	env := d.Env()
	r.write(`<?xml version="1.0" encoding="UTF-8"?>`, "\n")
	r.tag("article", "xmlns", "http://docbook.org/ns/docbook",
		"xmlns:xlink", "http://www.w3.org/1999/xlink", "version", "5.0",
		"xml:lang", env.Get(parameters.LANG))
	r.write("\n")
	title := env.Get(parameters.TITLE)
	if title == "" {
		return
	}
	r.write("<info>\n<title>")
	r.text(title)
	r.write("</title>\n")
	for _, author := range strings.Split(env.Get(parameters.AUTHORS), ",") {
		if author = strings.TrimSpace(author); author != "" {
			r.write("<author><personname>")
			r.text(author)
			r.write("</personname></author>\n")
		}
	}
	r.write("</info>\n")
}

func (r *Renderer) DocumentEnd(d *doc.Document) {
	r.write("</article>\n")
}

// --- Inline ----------------------------------------------------------------

func (r *Renderer) Word(w *doc.Word) {
	r.text(w.Text)
}

func (r *Renderer) Glyph(g *doc.Glyph) {
	r.text(string(g.Code))
}

func (r *Renderer) LineBreak(br *doc.LineBreak) {
	r.write("<?linebreak?>")
}

var alignments = map[doc.Alignment]string{
	doc.AlignLeft:   "left",
	doc.AlignCenter: "center",
	doc.AlignRight:  "right",
}

func (r *Renderer) Image(img *doc.Image) {
	var width, depth string
	switch {
	case img.Scale > 0:
		width = img.Scale.String()
	case img.Size.W > 0 || img.Size.H > 0:
		if img.Size.W > 0 {
			width = img.Size.W.CSS()
		}
		if img.Size.H > 0 {
			depth = img.Size.H.CSS()
		}
	}
	r.tag("inlinemediaobject", "xml:id", r.id(img))
	r.write("<imageobject>")
	r.tag("imagedata", "fileref", img.URL, "width", width, "depth", depth,
		"align", alignments[img.Align])
	r.write("</imagedata></imageobject>")
	switch {
	case img.Caption() != nil:
		r.write("<textobject><phrase>")
		img.Caption().GenerateInline(r)
		r.write("</phrase></textobject>")
	case img.Title != "":
		r.write("<textobject><phrase>")
		r.text(img.Title)
		r.write("</phrase></textobject>")
	}
	r.write("</inlinemediaobject>")
}

var styleTags = map[string][2]string{
	doc.Bold:        {`<emphasis role="bold">`, "</emphasis>"},
	doc.Italic:      {"<emphasis>", "</emphasis>"},
	doc.Underline:   {`<emphasis role="underline">`, "</emphasis>"},
	doc.Monospace:   {"<literal>", "</literal>"},
	doc.Subscript:   {"<subscript>", "</subscript>"},
	doc.Superscript: {"<superscript>", "</superscript>"},
	doc.Deleted:     {`<emphasis role="strikethrough">`, "</emphasis>"},
	doc.Inserted:    {`<emphasis role="inserted">`, "</emphasis>"},
	doc.Citation:    {"<citetitle>", "</citetitle>"},
}

func (r *Renderer) StyleBegin(style string) {
	if t, ok := styleTags[style]; ok {
		r.write(t[0])
		return
	}
	r.UnknownStyle(style)
	r.tag("phrase", "role", style)
}

func (r *Renderer) StyleEnd(style string) {
	if t, ok := styleTags[style]; ok {
		r.write(t[1])
		return
	}
	r.write("</phrase>")
}

func (r *Renderer) LinkBegin(l *doc.Link) {
	if strings.HasPrefix(l.URL, "#") {
		if _, anchor, ok := r.prep.Resolve(l.URL[1:]); ok && anchor != "" {
			r.tag("link", "linkend", xmlID(anchor))
			return
		}
	}
	r.tag("link", "xlink:href", l.URL)
	if len(l.Content()) == 0 {
		r.text(l.URL)
	}
}

func (r *Renderer) LinkEnd(l *doc.Link) {
	r.write("</link>")
}

func (r *Renderer) FootNoteBegin(fn *doc.FootNote) { r.write("<footnote><para>") }
func (r *Renderer) FootNoteEnd(fn *doc.FootNote)   { r.write("</para></footnote>") }

// --- Blocks ----------------------------------------------------------------

func (r *Renderer) ParBegin(p *doc.Par) { r.write("<para>") }
func (r *Renderer) ParEnd(p *doc.Par)   { r.write("</para>\n") }

func (r *Renderer) QuoteBegin(q *doc.Quote) { r.write("<blockquote>\n") }
func (r *Renderer) QuoteEnd(q *doc.Quote)   { r.write("</blockquote>\n") }

func (r *Renderer) ListBegin(l *doc.List) {
	if l.ListKind() == doc.Ordered {
		r.write("<orderedlist>\n")
		return
	}
	r.write("<itemizedlist>\n")
}

func (r *Renderer) ListEnd(l *doc.List) {
	if l.ListKind() == doc.Ordered {
		r.write("</orderedlist>\n")
		return
	}
	r.write("</itemizedlist>\n")
}

func (r *Renderer) ItemBegin(it *doc.ListItem) { r.write("<listitem>\n") }
func (r *Renderer) ItemEnd(it *doc.ListItem)   { r.write("</listitem>\n") }

func (r *Renderer) DefListBegin(dl *doc.DefinitionList) { r.write("<variablelist>\n") }
func (r *Renderer) DefListEnd(dl *doc.DefinitionList)   { r.write("</variablelist>\n") }
func (r *Renderer) DefTermEnd(di *doc.DefinitionItem)   { r.write("</term>\n") }
func (r *Renderer) DefBodyBegin(di *doc.DefinitionItem) { r.write("<listitem>\n") }
func (r *Renderer) DefBodyEnd(di *doc.DefinitionItem)   { r.write("</listitem>\n</varlistentry>\n") }

func (r *Renderer) DefTermBegin(di *doc.DefinitionItem) {
	r.tag("varlistentry", "xml:id", r.id(di))
	r.write("\n<term>")
}

// TableBegin opens a formal table if the table has a caption, an informal
// one otherwise.
func (r *Renderer) TableBegin(t *doc.Table) {
	if t.Caption() != nil {
		r.tag("table", "xml:id", r.id(t))
		r.write("<title>")
		t.Caption().GenerateInline(r)
		r.write("</title>\n")
	} else {
		r.tag("informaltable", "xml:id", r.id(t))
		r.write("\n")
	}
	cols := t.Columns()
	r.tag("tgroup", "cols", fmt.Sprint(cols))
	r.write("\n")
	for i := 1; i <= cols; i++ {
		r.write(fmt.Sprintf(`<colspec colname="c%d"/>`, i), "\n")
	}
	r.tables = append(r.tables, &tgroup{})
}

func (r *Renderer) TableEnd(t *doc.Table) {
	tg := r.tables[len(r.tables)-1]
	r.tables = r.tables[:len(r.tables)-1]
	if tg.section != "" {
		r.write("</", tg.section, ">\n")
	}
	r.write("</tgroup>\n")
	if t.Caption() != nil {
		r.write("</table>\n")
		return
	}
	r.write("</informaltable>\n")
}

// RowBegin puts leading rows consisting of head cells only into the
// table's head.
func (r *Renderer) RowBegin(row *doc.Row) {
	tg := r.tables[len(r.tables)-1]
	head := len(row.Cells()) > 0
	for _, c := range row.Cells() {
		head = head && c.IsHead()
	}
	switch {
	case head && tg.section == "":
		r.write("<thead>\n")
		tg.section = "thead"
	case !head && tg.section != "tbody":
		if tg.section != "" {
			r.write("</", tg.section, ">\n")
		}
		r.write("<tbody>\n")
		tg.section = "tbody"
	}
	tg.col = 0
	r.write("<row>")
}

func (r *Renderer) RowEnd(row *doc.Row) {
	r.write("</row>\n")
}

func (r *Renderer) CellBegin(c *doc.Cell) {
	tg := r.tables[len(r.tables)-1]
	h, v := c.Span()
	var namest, nameend, morerows string
	if h > 1 {
		namest = fmt.Sprintf("c%d", tg.col+1)
		nameend = fmt.Sprintf("c%d", tg.col+h)
	}
	if v > 1 {
		morerows = fmt.Sprint(v - 1)
	}
	var role string
	if c.IsHead() && tg.section != "thead" {
		role = "head" // head cell within a body row
	}
	tg.col += h
	r.tag("entry", "namest", namest, "nameend", nameend, "morerows", morerows,
		"align", alignments[c.Align()], "role", role)
}

func (r *Renderer) CellEnd(c *doc.Cell) {
	r.write("</entry>")
}

// Block renders program code as a program listing, other literal blocks as
// monospaced line layout. Captioned blocks become examples.
func (r *Renderer) Block(b *doc.Block) {
	text := strings.TrimSuffix(b.Text(), "\n")
	if b.Class != "code" && b.Class != "file" {
		r.tag("literallayout", "xml:id", r.id(b), "class", "monospaced")
		r.text(text)
		r.write("</literallayout>\n")
		return
	}
	listingID := r.id(b)
	if b.Caption() != nil {
		r.tag("example", "xml:id", listingID)
		r.write("<title>")
		b.Caption().GenerateInline(r)
		r.write("</title>\n")
		listingID = ""
	}
	r.tag("programlisting", "xml:id", listingID, "language", b.Lang)
	r.text(text)
	r.write("</programlisting>\n")
	if b.Caption() != nil {
		r.write("</example>\n")
	}
}

func (r *Renderer) HorizontalLine(hl *doc.HorizontalLine) {
	r.warnAt(hl, core.Error(core.EUNKNOWN, "docbook renderer cannot render horizontal lines"))
}

func (r *Renderer) HeaderBegin(h *doc.Header) {
	r.tag("section", "xml:id", xmlID(r.prep.AnchorOf(h)))
	r.write("\n<title>")
}

func (r *Renderer) HeaderTitleEnd(h *doc.Header) {
	r.write("</title>\n")
}

func (r *Renderer) HeaderEnd(h *doc.Header) {
	r.write("</section>\n")
	tracer().Debugf("closed section %s", r.prep.HeaderNumber(h))
}
