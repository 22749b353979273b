package doc

import (
	"fmt"
	"strings"

	"github.com/npillmayer/thot/core"
)

// Disposition is a node's answer to an event.
type Disposition uint8

const (
	// Consumed: the event has been handled.
	Consumed Disposition = iota
	// Close: the event has been handled and the receiver is complete. The
	// receiver is popped from the context stack.
	Close
	// Forward: the receiver declines. It is popped from the context stack and
	// the event is delivered to the new top.
	Forward
	// Replay: the receiver pushed a new context which has to see the event.
	Replay
)

func (d Disposition) String() string {
	switch d {
	case Consumed:
		return "consumed"
	case Close:
		return "close"
	case Forward:
		return "forward"
	case Replay:
		return "replay"
	}
	return "?"
}

// Context is what a node sees of the assembly process while handling an event.
type Context interface {
	Push(n Node)         // make n the active node
	Document() *Document // the document under construction
}

// Pos is a location in a source file.
type Pos struct {
	File string
	Line int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// Kind identifies node variants in dumps and queries.
type Kind uint8

// Node kinds
const (
	KindWord Kind = iota
	KindGlyph
	KindLineBreak
	KindImage
	KindStyle
	KindOpenStyle
	KindLink
	KindFootNote
	KindPar
	KindQuote
	KindList
	KindItem
	KindDefList
	KindDefItem
	KindTable
	KindRow
	KindCell
	KindHeader
	KindBlock
	KindHLine
	KindDocument
)

var kindNames = [...]string{"word", "glyph", "br", "image", "style", "openstyle", "link",
	"footnote", "par", "quote", "list", "item", "deflist", "defitem", "table", "row",
	"cell", "header", "block", "hline", "document"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "?"
}

// Node is an element of the document tree. Besides its rendering contract,
// every node kind carries the rule deciding which events it consumes.
//
// Custom node types must embed NodeBase, Container or one of the concrete
// node types.
type Node interface {
	Handle(ev Event, ctx Context) (Disposition, error)
	Kind() Kind
	Pos() Pos
	SetPos(Pos)
	IsEmpty() bool
	Clean()
	Generate(r Renderer)
	HeaderLevel() int
	Content() []Node
	Numbering() string
	AcceptsLabel() bool
	Label() string
	SetLabel(string)
	AcceptsCaption() bool
	Caption() *Par
	SetCaption(*Par)
}

var (
	_ Node = (*Document)(nil)
	_ Node = (*Header)(nil)
	_ Node = (*Par)(nil)
	_ Node = (*Word)(nil)
	_ Node = (*Glyph)(nil)
	_ Node = (*LineBreak)(nil)
	_ Node = (*Image)(nil)
	_ Node = (*Style)(nil)
	_ Node = (*OpenStyle)(nil)
	_ Node = (*FootNote)(nil)
	_ Node = (*Link)(nil)
	_ Node = (*List)(nil)
	_ Node = (*ListItem)(nil)
	_ Node = (*DefinitionList)(nil)
	_ Node = (*DefinitionItem)(nil)
	_ Node = (*Quote)(nil)
	_ Node = (*Block)(nil)
	_ Node = (*HorizontalLine)(nil)
	_ Node = (*Table)(nil)
	_ Node = (*Row)(nil)
	_ Node = (*Cell)(nil)
)

// NodeBase provides defaults for the Node interface: a leaf which declines
// every event, accepts neither label nor caption and is never empty.
type NodeBase struct {
	pos     Pos
	label   string
	caption *Par
}

func (b *NodeBase) Pos() Pos             { return b.pos }
func (b *NodeBase) SetPos(p Pos)         { b.pos = p }
func (b *NodeBase) IsEmpty() bool        { return false }
func (b *NodeBase) Clean()               {}
func (b *NodeBase) HeaderLevel() int     { return -1 }
func (b *NodeBase) Content() []Node      { return nil }
func (b *NodeBase) Numbering() string    { return "" }
func (b *NodeBase) AcceptsLabel() bool   { return false }
func (b *NodeBase) Label() string        { return b.label }
func (b *NodeBase) SetLabel(l string)    { b.label = l }
func (b *NodeBase) AcceptsCaption() bool { return false }
func (b *NodeBase) Caption() *Par        { return b.caption }
func (b *NodeBase) SetCaption(p *Par)    { b.caption = p }

func (b *NodeBase) Handle(ev Event, ctx Context) (Disposition, error) {
	return Forward, nil
}

// Container is a node with ordered, exclusively owned children.
type Container struct {
	NodeBase
	children []Node
}

// Add appends a child.
func (c *Container) Add(n Node) {
	c.children = append(c.children, n)
}

// Content returns the children.
func (c *Container) Content() []Node {
	return c.children
}

// Last returns the last child or nil.
func (c *Container) Last() Node {
	if len(c.children) == 0 {
		return nil
	}
	return c.children[len(c.children)-1]
}

// owns reports whether n is already a child of c.
func (c *Container) owns(n Node) bool {
	for i := len(c.children) - 1; i >= 0; i-- {
		if c.children[i] == n {
			return true
		}
	}
	return false
}

// IsEmpty is true for containers without children.
func (c *Container) IsEmpty() bool {
	return len(c.children) == 0
}

// Clean cleans all children and removes those which have become empty.
// Cleaning is idempotent.
func (c *Container) Clean() {
	kept := c.children[:0]
	for _, ch := range c.children {
		ch.Clean()
		if !ch.IsEmpty() {
			kept = append(kept, ch)
		}
	}
	for i := len(kept); i < len(c.children); i++ {
		c.children[i] = nil
	}
	c.children = kept
}

func (c *Container) generateContent(r Renderer) {
	for _, ch := range c.children {
		ch.Generate(r)
	}
}

// Describe returns a short description of a node for diagnostics.
func Describe(n Node) string {
	if n == nil {
		return "<nil>"
	}
	switch x := n.(type) {
	case *Word:
		return fmt.Sprintf("word %q", x.Text)
	case *Style:
		return "style " + x.style
	case *OpenStyle:
		return "open " + x.style
	case *Link:
		return "link " + x.URL
	case *List:
		return fmt.Sprintf("list %s %d", x.kind, x.depth)
	case *Quote:
		return fmt.Sprintf("quote %d", x.depth)
	case *Header:
		return fmt.Sprintf("header %d", x.level)
	case *Image:
		return "image " + x.URL
	}
	return n.Kind().String()
}

// TextOf returns the concatenated text of all words below n.
func TextOf(n Node) string {
	var b strings.Builder
	collectText(n, &b)
	return b.String()
}

func collectText(n Node, b *strings.Builder) {
	switch x := n.(type) {
	case *Word:
		b.WriteString(x.Text)
		return
	case *Glyph:
		b.WriteRune(x.Code)
		return
	case *Header:
		collectText(x.title, b)
	}
	for _, ch := range n.Content() {
		collectText(ch, b)
	}
}

// --- Shared rules ----------------------------------------------------------

// featured is implemented by nodes which require a feature of back ends.
type featured interface {
	Feature() string
}

// attach appends n to c, registering features required by n.
func attach(ctx Context, c *Container, n Node) {
	c.Add(n)
	if f, ok := n.(featured); ok && f.Feature() != "" {
		ctx.Document().Require(f.Feature())
	}
}

func structural(format string, args ...interface{}) error {
	return core.Error(core.ESTRUCTURE, format, args...)
}

// handleInline implements the part of the inline rule shared by all
// containers for inline content: leaves are appended, styles and links are
// appended and become active. Closing events are left to the caller.
func handleInline(c *Container, ev Event, ctx Context) (Disposition, bool) {
	if ev.Level() != LevelInline {
		return Forward, true
	}
	switch ev.ID() {
	case IDNew:
		if n := ev.Make(); n != nil {
			attach(ctx, c, n)
		}
		return Consumed, true
	case IDNewStyle, IDNewLink:
		n := ev.Make()
		if n == nil {
			return Consumed, true
		}
		attach(ctx, c, n)
		ctx.Push(n)
		return Consumed, true
	}
	return Forward, false
}

// handleBlocks implements the rule shared by all containers holding
// paragraph level content (document, header body, list item, quote, cell,
// definition body). Inline events get a synthesized paragraph; paragraph
// level structures are created from the event and see the event again.
// Events not decided here are reported as unhandled.
func handleBlocks(c *Container, ev Event, ctx Context) (Disposition, bool) {
	switch ev.Level() {
	case LevelInline:
		p := NewPar()
		attach(ctx, c, p)
		ctx.Push(p)
		return Replay, true
	case LevelParagraph:
		switch ev.ID() {
		case IDNew:
			n := ev.Make()
			if n == nil || c.owns(n) {
				return Consumed, true
			}
			attach(ctx, c, n)
			if _, ok := n.(*Par); ok {
				ctx.Push(n)
			}
			return Consumed, true
		case IDNewItem, IDNewDef, IDNewQuote, IDNewRow:
			n := ev.Make()
			if n == nil || c.owns(n) {
				// a ready-made node declining its own creation event
				return Consumed, true
			}
			attach(ctx, c, n)
			ctx.Push(n)
			return Replay, true
		case IDNewCell:
			t := NewTable()
			attach(ctx, c, t)
			ctx.Push(t)
			return Replay, true
		}
	}
	return Forward, false
}
