package html

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/thot/backend"
	"github.com/npillmayer/thot/core"
	"github.com/npillmayer/thot/core/exttool"
	"github.com/npillmayer/thot/core/locate/resources"
	"github.com/npillmayer/thot/core/parameters"
	"github.com/npillmayer/thot/engine/doc"
	"github.com/npillmayer/thot/engine/doc/xpathadapter"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Name is the output type of this back end.
const Name = "html"

func init() {
	backend.Register(Name, Generate)
}

// Generate renders d as an HTML page to w.
func Generate(d *doc.Document, w io.Writer, opts backend.Options) (*core.Diagnostics, error) {
	r := New(d, opts)
	d.Generate(r)
	if err := xhtml.Render(w, r.Tree()); err != nil {
		return r.Diagnostics(), core.WrapError(err, core.EINTERNAL, "cannot write HTML")
	}
	return r.Diagnostics(), nil
}

// Renderer implements doc.Renderer, doc.FootNoteRenderer and
// doc.DefinitionRenderer.
type Renderer struct {
	backend.Base
	prep   *backend.Prep
	opts   backend.Options
	ctx    context.Context
	page   *xhtml.Node // document node
	head   *xhtml.Node
	body   *xhtml.Node
	stack  []*xhtml.Node
	notes  []*xhtml.Node
	images map[*doc.Image]resources.ImagePromise
}

var _ doc.Renderer = &Renderer{}
var _ doc.FootNoteRenderer = &Renderer{}
var _ doc.DefinitionRenderer = &Renderer{}

// New creates a renderer for a document.
func New(d *doc.Document, opts backend.Options) *Renderer {
	return &Renderer{
		Base:   backend.NewBase(Name),
		prep:   backend.Prepare(d),
		opts:   opts,
		ctx:    context.Background(),
		images: make(map[*doc.Image]resources.ImagePromise),
	}
}

// Tree returns the HTML document node built so far.
func (r *Renderer) Tree() *xhtml.Node {
	return r.page
}

// --- Tree building ---------------------------------------------------------

func element(tag string, attrs ...string) *xhtml.Node {
	n := &xhtml.Node{Type: xhtml.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	for i := 0; i+1 < len(attrs); i += 2 {
		if attrs[i+1] != "" {
			n.Attr = append(n.Attr, xhtml.Attribute{Key: attrs[i], Val: attrs[i+1]})
		}
	}
	return n
}

func setAttr(n *xhtml.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, xhtml.Attribute{Key: key, Val: val})
}

func attr(n *xhtml.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func (r *Renderer) top() *xhtml.Node {
	return r.stack[len(r.stack)-1]
}

// add appends n to the current element.
func (r *Renderer) add(n *xhtml.Node) *xhtml.Node {
	r.top().AppendChild(n)
	return n
}

// open appends n to the current element and makes it current.
func (r *Renderer) open(n *xhtml.Node) *xhtml.Node {
	r.add(n)
	r.stack = append(r.stack, n)
	return n
}

func (r *Renderer) close() {
	if len(r.stack) > 1 {
		r.stack = r.stack[:len(r.stack)-1]
	}
}

func (r *Renderer) text(s string) {
	if last := r.top().LastChild; last != nil && last.Type == xhtml.TextNode {
		last.Data += s
		return
	}
	r.add(&xhtml.Node{Type: xhtml.TextNode, Data: s})
}

func (r *Renderer) warnAt(n doc.Node, err error) {
	pos := n.Pos()
	r.Warn(core.At(pos.File, pos.Line, err))
}

// caption renders the numbered caption of a node into the current element.
func (r *Renderer) caption(n doc.Node) {
	if prefix := r.prep.CaptionPrefix(n); prefix != "" {
		r.open(element("span", "class", "number"))
		r.text(prefix)
		r.close()
	}
	n.Caption().GenerateInline(r)
}

// --- Document --------------------------------------------------------------

func (r *Renderer) DocumentBegin(d *doc.Document) {
	env := d.Env()
	r.page = &xhtml.Node{Type: xhtml.DocumentNode}
	r.page.AppendChild(&xhtml.Node{Type: xhtml.DoctypeNode, Data: "html"})
	root := element("html", "lang", env.Get(parameters.LANG))
	r.page.AppendChild(root)
	r.head = element("head")
	root.AppendChild(r.head)
	r.head.AppendChild(element("meta", "charset", "utf-8"))
	r.head.AppendChild(element("meta", "name", "generator", "content", "thot "+env.Get(parameters.THOT_VERSION)))
	if authors := env.Get(parameters.AUTHORS); authors != "" {
		r.head.AppendChild(element("meta", "name", "author", "content", authors))
	}
	title := element("title")
	title.AppendChild(&xhtml.Node{Type: xhtml.TextNode, Data: env.Get(parameters.TITLE)})
	r.head.AppendChild(title)
	if css := r.stylesheet(); css != "" {
		style := element("style")
		style.AppendChild(&xhtml.Node{Type: xhtml.TextNode, Data: css})
		r.head.AppendChild(style)
	}
	r.body = element("body")
	root.AppendChild(r.body)
	r.stack = []*xhtml.Node{r.body}
	if t := env.Get(parameters.TITLE); t != "" {
		r.open(element("header", "class", "title"))
		r.open(element("h1"))
		r.text(t)
		r.close()
		if authors := env.Get(parameters.AUTHORS); authors != "" {
			r.open(element("p", "class", "authors"))
			r.text(authors)
			r.close()
		}
		r.close()
	}
	if depth, ok := backend.TOCDepth(d); ok {
		r.toc(depth)
	}
	if r.opts.Check {
		r.resolveImages(d)
	}
}

func (r *Renderer) toc(depth int) {
	entries := r.prep.TOC(depth)
	if len(entries) == 0 {
		return
	}
	nav := r.open(element("nav", "class", "toc"))
	r.open(element("h1"))
	r.text(r.prep.Trans.Get(backend.MsgContents))
	r.close()
	r.close()
	lists := []*xhtml.Node{element("ul")}
	levels := []int{entries[0].Level}
	nav.AppendChild(lists[0])
	var last *xhtml.Node
	for _, e := range entries {
		for len(levels) > 1 && e.Level < levels[len(levels)-1] {
			lists, levels = lists[:len(lists)-1], levels[:len(levels)-1]
		}
		if e.Level > levels[len(levels)-1] && last != nil {
			ul := element("ul")
			last.AppendChild(ul)
			lists, levels = append(lists, ul), append(levels, e.Level)
		}
		li := element("li")
		a := element("a", "href", "#"+e.Anchor)
		a.AppendChild(&xhtml.Node{Type: xhtml.TextNode, Data: e.Number + " " + e.Title})
		li.AppendChild(a)
		lists[len(lists)-1].AppendChild(li)
		last = li
	}
}

// resolveImages starts resolving all images of the document. Results are
// awaited when an image is rendered.
func (r *Renderer) resolveImages(d *doc.Document) {
	nodes, err := xpathadapter.Select(d, "//image")
	if err != nil {
		r.Warn(err)
		return
	}
	base := d.Env().Get(parameters.THOT_FILE)
	for _, n := range nodes {
		img := n.(*doc.Image)
		r.images[img] = resources.ResolveImage(img.URL, base)
	}
}

func (r *Renderer) DocumentEnd(d *doc.Document) {
	if len(r.notes) > 0 {
		r.stack = r.stack[:1]
		r.open(element("section", "class", "footnotes"))
		r.open(element("h2"))
		r.text(r.prep.Trans.Get(backend.MsgNotes))
		r.close()
		r.open(element("ol"))
		for _, li := range r.notes {
			r.add(li)
		}
		r.close()
		r.close()
	}
	if r.opts.Friends != nil {
		r.relocateImages(d.Env().Get(parameters.THOT_FILE))
	}
}

// --- Inline ----------------------------------------------------------------

func (r *Renderer) Word(w *doc.Word) {
	r.text(w.Text)
}

func (r *Renderer) Glyph(g *doc.Glyph) {
	r.text(string(g.Code))
}

func (r *Renderer) LineBreak(br *doc.LineBreak) {
	r.add(element("br"))
}

var alignClasses = map[doc.Alignment]string{
	doc.AlignLeft:   "align-left",
	doc.AlignCenter: "align-center",
	doc.AlignRight:  "align-right",
}

func (r *Renderer) Image(img *doc.Image) {
	if p, ok := r.images[img]; ok {
		if _, err := p.Await(r.ctx); err != nil {
			r.warnAt(img, err)
			r.open(element("span", "class", "broken"))
			r.text("[" + img.URL + "]")
			r.close()
			return
		}
	}
	tag := element("img", "src", img.URL, "alt", img.Title, "title", img.Title,
		"class", alignClasses[img.Align])
	if img.Size.W > 0 {
		setAttr(tag, "width", strconv.Itoa(img.Size.W.Pixels()))
	}
	if img.Size.H > 0 {
		setAttr(tag, "height", strconv.Itoa(img.Size.H.Pixels()))
	}
	if img.Scale > 0 {
		setAttr(tag, "style", "width:"+img.Scale.String())
	}
	if img.Caption() == nil && img.Label() == "" {
		r.add(tag)
		return
	}
	r.open(element("span", "class", "figure", "id", r.prep.AnchorOf(img)))
	r.add(tag)
	if img.Caption() != nil {
		r.open(element("span", "class", "caption"))
		r.caption(img)
		r.close()
	}
	r.close()
}

var styleTags = map[string]string{
	doc.Bold:        "strong",
	doc.Italic:      "em",
	doc.Underline:   "u",
	doc.Monospace:   "code",
	doc.Subscript:   "sub",
	doc.Superscript: "sup",
	doc.Deleted:     "del",
	doc.Inserted:    "ins",
	doc.Citation:    "cite",
}

func (r *Renderer) StyleBegin(style string) {
	tag, ok := styleTags[style]
	if !ok {
		r.UnknownStyle(style)
		r.open(element("span", "class", style))
		return
	}
	r.open(element(tag))
}

func (r *Renderer) StyleEnd(style string) {
	r.close()
}

func (r *Renderer) LinkBegin(l *doc.Link) {
	href := l.URL
	if strings.HasPrefix(href, "#") {
		if _, anchor, ok := r.prep.Resolve(href[1:]); ok && anchor != "" {
			href = "#" + anchor
		}
	}
	r.open(element("a", "href", href))
}

func (r *Renderer) LinkEnd(l *doc.Link) {
	if len(l.Content()) == 0 {
		r.text(l.URL)
	}
	r.close()
}

func (r *Renderer) FootNoteBegin(fn *doc.FootNote) {
	n := strconv.Itoa(len(r.notes) + 1)
	r.open(element("sup", "class", "footnote-ref"))
	r.open(element("a", "href", "#fn-"+n, "id", "fnref-"+n))
	r.text(n)
	r.close()
	r.close()
	li := element("li", "id", "fn-"+n)
	r.notes = append(r.notes, li)
	r.stack = append(r.stack, li)
}

func (r *Renderer) FootNoteEnd(fn *doc.FootNote) {
	n := strconv.Itoa(len(r.notes))
	r.text(" ")
	r.open(element("a", "href", "#fnref-"+n, "class", "footnote-back"))
	r.text("↩")
	r.close()
	r.close()
}

// --- Blocks ----------------------------------------------------------------

func (r *Renderer) ParBegin(p *doc.Par) { r.open(element("p")) }
func (r *Renderer) ParEnd(p *doc.Par)   { r.close() }

func (r *Renderer) QuoteBegin(q *doc.Quote) { r.open(element("blockquote")) }
func (r *Renderer) QuoteEnd(q *doc.Quote)   { r.close() }

func (r *Renderer) ListBegin(l *doc.List) {
	if l.ListKind() == doc.Ordered {
		r.open(element("ol"))
		return
	}
	r.open(element("ul"))
}

func (r *Renderer) ListEnd(l *doc.List)                 { r.close() }
func (r *Renderer) ItemBegin(it *doc.ListItem)          { r.open(element("li")) }
func (r *Renderer) ItemEnd(it *doc.ListItem)            { r.close() }
func (r *Renderer) DefListBegin(dl *doc.DefinitionList) { r.open(element("dl")) }
func (r *Renderer) DefListEnd(dl *doc.DefinitionList)   { r.close() }
func (r *Renderer) DefTermBegin(di *doc.DefinitionItem) { r.open(element("dt", "id", r.prep.AnchorOf(di))) }
func (r *Renderer) DefTermEnd(di *doc.DefinitionItem)   { r.close() }
func (r *Renderer) DefBodyBegin(di *doc.DefinitionItem) { r.open(element("dd")) }
func (r *Renderer) DefBodyEnd(di *doc.DefinitionItem)   { r.close() }

func (r *Renderer) TableBegin(t *doc.Table) {
	r.open(element("table", "id", r.prep.AnchorOf(t)))
	if t.Caption() != nil {
		r.open(element("caption"))
		r.caption(t)
		r.close()
	}
}

func (r *Renderer) TableEnd(t *doc.Table) { r.close() }
func (r *Renderer) RowBegin(row *doc.Row) { r.open(element("tr")) }
func (r *Renderer) RowEnd(row *doc.Row)   { r.close() }

func (r *Renderer) CellBegin(c *doc.Cell) {
	tag := "td"
	if c.IsHead() {
		tag = "th"
	}
	cell := element(tag)
	if h, v := c.Span(); h > 1 || v > 1 {
		if h > 1 {
			setAttr(cell, "colspan", strconv.Itoa(h))
		}
		if v > 1 {
			setAttr(cell, "rowspan", strconv.Itoa(v))
		}
	}
	if c.Align() != doc.AlignDefault {
		setAttr(cell, "style", "text-align:"+c.Align().String())
	}
	r.open(cell)
}

func (r *Renderer) CellEnd(c *doc.Cell) { r.close() }

func (r *Renderer) Block(b *doc.Block) {
	framed := b.Caption() != nil || b.Label() != ""
	if framed {
		r.open(element("div", "class", "listing", "id", r.prep.AnchorOf(b)))
	}
	pre := r.open(element("pre", "class", b.Class))
	if !r.highlight(b, pre) {
		class := ""
		if b.Lang != "" {
			class = "language-" + b.Lang
		}
		r.open(element("code", "class", class))
		r.text(b.Text())
		r.close()
	}
	r.close()
	if b.Caption() != nil {
		r.open(element("p", "class", "caption"))
		r.caption(b)
		r.close()
	}
	if framed {
		r.close()
	}
}

// highlight fills pre with the output of the syntax highlighter. It
// returns false if there is no highlighter or it failed.
func (r *Renderer) highlight(b *doc.Block, pre *xhtml.Node) bool {
	if r.opts.Highlight == nil || b.Lang == "" {
		return false
	}
	out, err := exttool.Highlight(r.ctx, r.opts.Highlight, b.Text(), b.Lang, "html")
	if err != nil {
		r.warnAt(b, err)
		return false
	}
	nodes, err := xhtml.ParseFragment(strings.NewReader(out), pre)
	if err != nil {
		r.warnAt(b, core.WrapError(err, core.EEXTERNAL, "highlighter output is not HTML"))
		return false
	}
	for _, n := range nodes {
		pre.AppendChild(n)
	}
	return true
}

func (r *Renderer) HorizontalLine(hl *doc.HorizontalLine) {
	r.add(element("hr"))
}

func (r *Renderer) HeaderBegin(h *doc.Header) {
	level := h.HeaderLevel() + 1
	if level > 6 {
		level = 6
	}
	r.open(element("section", "id", r.prep.AnchorOf(h)))
	r.open(element("h" + strconv.Itoa(level)))
	r.open(element("span", "class", "number"))
	r.text(r.prep.HeaderNumber(h))
	r.close()
	r.text(" ")
}

func (r *Renderer) HeaderTitleEnd(h *doc.Header) { r.close() }
func (r *Renderer) HeaderEnd(h *doc.Header)      { r.close() }
