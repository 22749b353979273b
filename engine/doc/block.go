package doc

import (
	"strings"

	"github.com/npillmayer/cords"
)

// Quote is a quoted section of a given depth. Quote events of the same depth
// continue the quote, quote events of other depths end it.
type Quote struct {
	Container
	depth int
}

// NewQuote creates a quote node.
func NewQuote(depth int) *Quote {
	return &Quote{depth: depth}
}

// Depth returns the quote's depth.
func (q *Quote) Depth() int { return q.depth }
func (q *Quote) Kind() Kind { return KindQuote }

func (q *Quote) Handle(ev Event, ctx Context) (Disposition, error) {
	switch ev.Level() {
	case LevelInline:
		d, _ := handleBlocks(&q.Container, ev, ctx)
		return d, nil
	case LevelParagraph:
		if ev.ID() == IDNewQuote {
			if quoteDepth(ev) != q.depth {
				return Forward, nil
			}
			if p, ok := q.Last().(*Par); ok {
				ctx.Push(p) // continuation of the quote's last paragraph
			}
			return Consumed, nil
		}
	}
	return Forward, nil
}

func quoteDepth(ev Event) int {
	switch x := ev.Tag().(type) {
	case QuoteTag:
		return x.Depth
	}
	if q, ok := ev.Node().(*Quote); ok {
		return q.depth
	}
	return 0
}

func (q *Quote) Generate(r Renderer) {
	r.QuoteBegin(q)
	q.generateContent(r)
	r.QuoteEnd(q)
}

// --- Literal blocks --------------------------------------------------------

// Block is a region of literal lines, e.g. program code. Its lines are not
// parsed for markup.
type Block struct {
	NodeBase
	Class string // "code", "file", "nowiki", …
	Lang  string // source language, for highlighting
	text  cords.Cord
	b     *cords.Builder
	n     int
}

// NewBlock creates an empty literal block.
func NewBlock(class, lang string) *Block {
	return &Block{Class: class, Lang: lang}
}

func (blk *Block) Kind() Kind           { return KindBlock }
func (blk *Block) Generate(r Renderer)  { r.Block(blk) }
func (blk *Block) Numbering() string    { return "listing" }
func (blk *Block) AcceptsLabel() bool   { return true }
func (blk *Block) AcceptsCaption() bool { return true }

// Feature is "highlight" for blocks with a source language.
func (blk *Block) Feature() string {
	if blk.Lang != "" {
		return "highlight"
	}
	return "verbatim"
}

// Add appends a line of text. line must not contain a newline.
func (blk *Block) Add(line string) {
	if blk.b == nil {
		blk.b = cords.NewBuilder()
		if blk.n > 0 {
			blk.b.Append(lineLeaf(blk.text.String()))
		}
	}
	blk.b.Append(lineLeaf(line + "\n"))
	blk.n++
}

// LineCount returns the number of lines added.
func (blk *Block) LineCount() int {
	return blk.n
}

// Clean completes the block's text. It is called once assembly is
// finished; afterwards reading the text does not modify the block.
func (blk *Block) Clean() {
	if blk.b != nil {
		blk.text = blk.b.Cord()
		blk.b = nil
	}
}

// Text returns the block's text, each line terminated by a newline.
func (blk *Block) Text() string {
	if blk.n == 0 {
		return ""
	}
	if blk.b != nil {
		return blk.b.Cord().String()
	}
	return blk.text.String()
}

// Lines returns the block's lines without line terminators.
func (blk *Block) Lines() []string {
	if blk.n == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(blk.Text(), "\n"), "\n")
}

// lineLeaf is the cord leaf holding one or more lines of a literal block.
type lineLeaf string

func (l lineLeaf) Weight() uint64 { return uint64(len(l)) }
func (l lineLeaf) String() string { return string(l) }

func (l lineLeaf) Split(i uint64) (cords.Leaf, cords.Leaf) {
	return l[:i], l[i:]
}

func (l lineLeaf) Substring(i, j uint64) []byte {
	return []byte(l)[i:j]
}

var _ cords.Leaf = lineLeaf("")

// HorizontalLine is a thematic break.
type HorizontalLine struct {
	NodeBase
}

// NewHorizontalLine creates a horizontal rule node.
func NewHorizontalLine() *HorizontalLine {
	return &HorizontalLine{}
}

func (hl *HorizontalLine) Kind() Kind          { return KindHLine }
func (hl *HorizontalLine) Generate(r Renderer) { r.HorizontalLine(hl) }
