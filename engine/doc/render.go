package doc

// Renderer is the visitor interface back ends implement. Nodes call it from
// Generate, passing themselves for read-only access. Renderers must not
// change the tree; the same tree may be rendered any number of times.
//
// Capabilities not every output format has are split off into
// FootNoteRenderer and DefinitionRenderer. Nodes fall back to a plainer
// rendering and report an EUNKNOWN warning via Warn.
type Renderer interface {
	Name() string
	Warn(err error)

	DocumentBegin(d *Document)
	DocumentEnd(d *Document)

	Word(w *Word)
	Glyph(g *Glyph)
	LineBreak(br *LineBreak)
	Image(img *Image)
	StyleBegin(style string)
	StyleEnd(style string)
	LinkBegin(l *Link)
	LinkEnd(l *Link)

	ParBegin(p *Par)
	ParEnd(p *Par)
	QuoteBegin(q *Quote)
	QuoteEnd(q *Quote)
	ListBegin(l *List)
	ListEnd(l *List)
	ItemBegin(it *ListItem)
	ItemEnd(it *ListItem)
	TableBegin(t *Table)
	TableEnd(t *Table)
	RowBegin(r *Row)
	RowEnd(r *Row)
	CellBegin(c *Cell)
	CellEnd(c *Cell)
	Block(b *Block)
	HorizontalLine(hl *HorizontalLine)

	// HeaderBegin is followed by the title's inline content, then
	// HeaderTitleEnd, then the header's body.
	HeaderBegin(h *Header)
	HeaderTitleEnd(h *Header)
	HeaderEnd(h *Header)
}

// FootNoteRenderer is implemented by renderers supporting footnotes.
type FootNoteRenderer interface {
	FootNoteBegin(fn *FootNote)
	FootNoteEnd(fn *FootNote)
}

// DefinitionRenderer is implemented by renderers supporting definition lists.
type DefinitionRenderer interface {
	DefListBegin(dl *DefinitionList)
	DefListEnd(dl *DefinitionList)
	DefTermBegin(di *DefinitionItem)
	DefTermEnd(di *DefinitionItem)
	DefBodyBegin(di *DefinitionItem)
	DefBodyEnd(di *DefinitionItem)
}

// Walk calls f for n and all nodes below it in document order, including
// header titles, definition terms and captions. If f returns false, the
// children of the current node are skipped.
func Walk(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	switch x := n.(type) {
	case *Header:
		Walk(x.title, f)
	case *DefinitionItem:
		Walk(x.term, f)
	}
	if c := n.Caption(); c != nil {
		Walk(c, f)
	}
	for _, ch := range n.Content() {
		Walk(ch, f)
	}
}
