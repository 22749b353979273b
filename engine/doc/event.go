package doc

import (
	"fmt"
	"strings"
)

// Level is the structural level an event addresses. Nodes usually forward
// events of levels above their own.
type Level uint8

// Event levels, from outermost to innermost.
const (
	LevelDocument Level = iota
	LevelSection
	LevelParagraph
	LevelInline
)

func (l Level) String() string {
	switch l {
	case LevelDocument:
		return "doc"
	case LevelSection:
		return "section"
	case LevelParagraph:
		return "par"
	case LevelInline:
		return "inline"
	}
	return "?"
}

// ID names the transition an event stands for.
type ID uint8

// Event IDs
const (
	IDNew      ID = iota // a new object
	IDEnd                // end of the current scope
	IDTitle              // end of a header title
	IDNewItem            // list item
	IDNewDef             // definition term or definition body
	IDNewQuote           // quoted line
	IDNewRow             // table row
	IDNewCell            // table cell
	IDNewStyle           // opening or toggling style
	IDEndStyle           // explicit close of a style
	IDNewLink            // start of a link
	IDEndLink            // end of a link
)

var idNames = [...]string{"new", "end", "title", "new_item", "new_def", "new_quote",
	"new_row", "new_cell", "new_style", "end_style", "new_link", "end_link"}

func (id ID) String() string {
	if int(id) < len(idNames) {
		return idNames[id]
	}
	return fmt.Sprintf("id(%d)", id)
}

// Tag is a symbolic event payload. The receiving node calls Make to create the
// node the tag stands for, if it decides to do so.
type Tag interface {
	Make() Node
	String() string
}

// Event is an immutable descriptor of one recognized structural token.
// It carries either a ready-made node, a Tag, or nothing.
type Event struct {
	level Level
	id    ID
	node  Node
	tag   Tag
}

// NewEvent creates an event without payload.
func NewEvent(level Level, id ID) Event {
	return Event{level: level, id: id}
}

// NodeEvent creates an event carrying a ready-made node.
func NodeEvent(level Level, id ID, n Node) Event {
	return Event{level: level, id: id, node: n}
}

// TagEvent creates an event carrying a symbolic tag.
func TagEvent(level Level, id ID, t Tag) Event {
	return Event{level: level, id: id, tag: t}
}

// Level returns the event's level.
func (ev Event) Level() Level { return ev.level }

// ID returns the event's ID.
func (ev Event) ID() ID { return ev.id }

// Node returns the ready-made payload node, if any.
func (ev Event) Node() Node { return ev.node }

// Tag returns the symbolic payload, if any.
func (ev Event) Tag() Tag { return ev.tag }

// Make returns the payload node, manufacturing it from the tag if
// necessary. Make returns nil for events without payload.
func (ev Event) Make() Node {
	if ev.node != nil {
		return ev.node
	}
	if ev.tag != nil {
		return ev.tag.Make()
	}
	return nil
}

// Is checks level and ID of an event.
func (ev Event) Is(level Level, id ID) bool {
	return ev.level == level && ev.id == id
}

func (ev Event) String() string {
	var b strings.Builder
	b.WriteString(ev.level.String())
	b.WriteByte('/')
	b.WriteString(ev.id.String())
	switch {
	case ev.node != nil:
		b.WriteString("(")
		b.WriteString(Describe(ev.node))
		b.WriteString(")")
	case ev.tag != nil:
		b.WriteString("(")
		b.WriteString(ev.tag.String())
		b.WriteString(")")
	}
	return b.String()
}

// --- Tags ------------------------------------------------------------------

// StyleTag stands for a toggling style.
type StyleTag struct{ Style string }

func (t StyleTag) Make() Node     { return NewStyle(t.Style) }
func (t StyleTag) String() string { return "style " + t.Style }

// OpenStyleTag stands for an explicitly opened style, closed by a matching
// IDEndStyle event.
type OpenStyleTag struct{ Style string }

func (t OpenStyleTag) Make() Node     { return NewOpenStyle(t.Style) }
func (t OpenStyleTag) String() string { return "open " + t.Style }

// ListTag stands for a list of a given kind and nesting depth.
type ListTag struct {
	Kind  ListKind
	Depth int
}

func (t ListTag) Make() Node     { return NewList(t.Kind, t.Depth) }
func (t ListTag) String() string { return fmt.Sprintf("%s %d", t.Kind, t.Depth) }

// DefTag stands for a definition list of a given nesting depth.
type DefTag struct{ Depth int }

func (t DefTag) Make() Node     { return NewDefinitionList(t.Depth) }
func (t DefTag) String() string { return fmt.Sprintf("def %d", t.Depth) }

// QuoteTag stands for a quote of a given depth.
type QuoteTag struct{ Depth int }

func (t QuoteTag) Make() Node     { return NewQuote(t.Depth) }
func (t QuoteTag) String() string { return fmt.Sprintf("quote %d", t.Depth) }

// HeaderTag stands for a header of a given level, 0 being the outermost.
type HeaderTag struct{ Level int }

func (t HeaderTag) Make() Node     { return NewHeader(t.Level) }
func (t HeaderTag) String() string { return fmt.Sprintf("header %d", t.Level) }

// TableTag stands for a table. It is the payload of row events: nodes
// outside of tables create a table, tables create a row.
type TableTag struct{}

func (t TableTag) Make() Node     { return NewTable() }
func (t TableTag) String() string { return "table" }

// CellTag stands for a table cell.
type CellTag struct {
	Kind         CellKind
	Align        Alignment
	HSpan, VSpan int
}

func (t CellTag) Make() Node {
	c := NewCell(t.Kind, t.Align)
	c.SetSpan(t.HSpan, t.VSpan)
	return c
}

func (t CellTag) String() string {
	return fmt.Sprintf("%s %s %dx%d", t.Kind, t.Align, t.HSpan, t.VSpan)
}

// --- Event constructors ----------------------------------------------------

// WordEvent creates an inline event for a run of text.
func WordEvent(text string) Event {
	return NodeEvent(LevelInline, IDNew, NewWord(text))
}

// InlineEvent creates an inline event for a leaf node (glyph, image, …).
func InlineEvent(n Node) Event {
	return NodeEvent(LevelInline, IDNew, n)
}

// BlockEvent creates a paragraph level event for a ready-made block node.
func BlockEvent(n Node) Event {
	return NodeEvent(LevelParagraph, IDNew, n)
}

// StyleEvent toggles a style: it opens the style, or closes it if it is the
// innermost open one.
func StyleEvent(style string) Event {
	return TagEvent(LevelInline, IDNewStyle, StyleTag{style})
}

// OpenStyleEvent opens a style which has to be closed explicitly.
func OpenStyleEvent(style string) Event {
	return TagEvent(LevelInline, IDNewStyle, OpenStyleTag{style})
}

// CloseStyleEvent closes an explicitly opened style.
func CloseStyleEvent(style string) Event {
	return TagEvent(LevelInline, IDEndStyle, StyleTag{style})
}

// LinkEvent opens a link.
func LinkEvent(url string) Event {
	return NodeEvent(LevelInline, IDNewLink, NewLink(url))
}

// CloseLinkEvent closes the innermost link.
func CloseLinkEvent() Event {
	return NewEvent(LevelInline, IDEndLink)
}

// FootNoteEvent opens a footnote.
func FootNoteEvent() Event {
	return NodeEvent(LevelInline, IDNewStyle, NewFootNote())
}

// CloseFootNoteEvent closes a footnote.
func CloseFootNoteEvent() Event {
	return CloseStyleEvent(FootNoteStyle)
}

// ItemEvent starts a list item.
func ItemEvent(kind ListKind, depth int) Event {
	return TagEvent(LevelParagraph, IDNewItem, ListTag{kind, depth})
}

// DefEvent starts a definition term, or switches from term to definition.
func DefEvent(depth int) Event {
	return TagEvent(LevelParagraph, IDNewDef, DefTag{depth})
}

// QuoteEvent starts or continues a quote.
func QuoteEvent(depth int) Event {
	return TagEvent(LevelParagraph, IDNewQuote, QuoteTag{depth})
}

// RowEvent starts a table row.
func RowEvent() Event {
	return TagEvent(LevelParagraph, IDNewRow, TableTag{})
}

// CellEvent starts a table cell.
func CellEvent(kind CellKind, align Alignment, hspan, vspan int) Event {
	return TagEvent(LevelParagraph, IDNewCell, CellTag{kind, align, hspan, vspan})
}

// HeaderEvent starts a header. The title follows as inline events,
// terminated by a TitleEndEvent.
func HeaderEvent(level int) Event {
	return TagEvent(LevelSection, IDNew, HeaderTag{level})
}

// TitleEndEvent terminates a header title.
func TitleEndEvent() Event {
	return NewEvent(LevelSection, IDTitle)
}

// ParEndEvent ends the current paragraph (and with it lists, quotes and tables).
func ParEndEvent() Event {
	return NewEvent(LevelParagraph, IDEnd)
}

// DocEndEvent is sent once at end of input.
func DocEndEvent() Event {
	return NewEvent(LevelDocument, IDEnd)
}
