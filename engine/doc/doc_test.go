package doc

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/thot/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// driver is a minimal context stack for exercising node rules in isolation.
type driver struct {
	d     *Document
	stack []Node
}

func newDriver() *driver {
	d := NewDocument(nil)
	return &driver{d: d, stack: []Node{d}}
}

func (drv *driver) Push(n Node)         { drv.stack = append(drv.stack, n) }
func (drv *driver) Document() *Document { return drv.d }
func (drv *driver) top() Node           { return drv.stack[len(drv.stack)-1] }

func (drv *driver) send(t *testing.T, events ...Event) error {
	for _, ev := range events {
		for replays := 0; ; {
			disp, err := drv.top().Handle(ev, drv)
			if err != nil {
				return err
			}
			if disp == Consumed {
				break
			}
			if disp == Close {
				drv.stack = drv.stack[:len(drv.stack)-1]
				break
			}
			if disp == Forward {
				require.Greater(t, len(drv.stack), 1, "document must not forward %s", ev)
				drv.stack = drv.stack[:len(drv.stack)-1]
			}
			if disp == Replay {
				replays++
				require.Less(t, replays, 64, "event %s replayed too often", ev)
			}
		}
	}
	return nil
}

func TestEventString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.doc")
	defer teardown()
	//
	assert.Equal(t, `inline/new(word "x ")`, WordEvent("x ").String())
	assert.Equal(t, "par/new_item(ol 2)", ItemEvent(Ordered, 2).String())
	assert.Equal(t, "section/title", TitleEndEvent().String())
	assert.Nil(t, ParEndEvent().Make())
	w := NewWord("y")
	assert.Same(t, w, InlineEvent(w).Make())
}

func TestBareWordMakesParagraph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.doc")
	defer teardown()
	//
	drv := newDriver()
	require.NoError(t, drv.send(t, WordEvent("hello "), DocEndEvent()))
	require.Len(t, drv.d.Content(), 1)
	p, ok := drv.d.Content()[0].(*Par)
	require.True(t, ok)
	assert.Equal(t, "hello ", TextOf(p))
}

func TestStyleToggle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.doc")
	defer teardown()
	//
	drv := newDriver()
	require.NoError(t, drv.send(t,
		WordEvent("a "), StyleEvent(Bold), WordEvent("b"), StyleEvent(Bold), WordEvent(" c "),
	))
	p := drv.d.Content()[0].(*Par)
	require.Len(t, p.Content(), 3)
	s, ok := p.Content()[1].(*Style)
	require.True(t, ok)
	assert.Equal(t, Bold, s.Style())
	assert.Equal(t, "b", TextOf(s))
	assert.IsType(t, &Word{}, p.Content()[2])
}

func TestUnclosedToggleEndsWithParagraph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.doc")
	defer teardown()
	//
	drv := newDriver()
	require.NoError(t, drv.send(t, StyleEvent(Italic), WordEvent("a "), ParEndEvent(), WordEvent("b ")))
	require.Len(t, drv.d.Content(), 2)
	assert.Equal(t, "b ", TextOf(drv.d.Content()[1]))
}

func TestCloseWithoutOpenIsStructural(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.doc")
	defer teardown()
	//
	drv := newDriver()
	err := drv.send(t, WordEvent("a "), CloseStyleEvent(Subscript))
	require.Error(t, err)
	assert.Equal(t, core.ESTRUCTURE, core.Code(err))
	//
	drv = newDriver()
	err = drv.send(t, OpenStyleEvent(Subscript), WordEvent("a"), CloseStyleEvent(Superscript))
	require.Error(t, err)
	assert.Equal(t, core.ESTRUCTURE, core.Code(err))
	//
	drv = newDriver()
	err = drv.send(t, OpenStyleEvent(Subscript), WordEvent("a"), CloseStyleEvent(Subscript))
	assert.NoError(t, err)
}

func TestFootNoteAndLink(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.doc")
	defer teardown()
	//
	drv := newDriver()
	require.NoError(t, drv.send(t,
		WordEvent("see "), LinkEvent("http://x.org"), WordEvent("x"), CloseLinkEvent(),
		FootNoteEvent(), WordEvent("note"), CloseFootNoteEvent(),
	))
	p := drv.d.Content()[0].(*Par)
	require.Len(t, p.Content(), 3)
	assert.Equal(t, "http://x.org", p.Content()[1].(*Link).URL)
	assert.Equal(t, KindFootNote, p.Content()[2].Kind())
	assert.True(t, drv.d.Has("footnote"))
	assert.True(t, drv.d.Has("link"))
	assert.Equal(t, []string{"footnote", "link"}, drv.d.Features())
}

func TestQuoteContinuation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.doc")
	defer teardown()
	//
	drv := newDriver()
	require.NoError(t, drv.send(t,
		QuoteEvent(1), WordEvent("a "), QuoteEvent(1), WordEvent("b "),
		QuoteEvent(2), WordEvent("c "),
	))
	require.Len(t, drv.d.Content(), 2)
	q1 := drv.d.Content()[0].(*Quote)
	require.Len(t, q1.Content(), 1)
	assert.Equal(t, "a b ", TextOf(q1))
	assert.Equal(t, 2, drv.d.Content()[1].(*Quote).Depth())
}

func TestDefinitionListAlternates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.doc")
	defer teardown()
	//
	drv := newDriver()
	require.NoError(t, drv.send(t,
		DefEvent(1), WordEvent("term "), DefEvent(1), WordEvent("meaning "),
		DefEvent(1), WordEvent("t2 "), DefEvent(1), WordEvent("m2 "),
		DefEvent(2), WordEvent("inner "),
	))
	require.Len(t, drv.d.Content(), 1)
	dl := drv.d.Content()[0].(*DefinitionList)
	require.Len(t, dl.Content(), 2)
	first := dl.Content()[0].(*DefinitionItem)
	assert.Equal(t, "term ", TextOf(first.Term()))
	assert.Equal(t, "meaning ", TextOf(first.Content()[0]))
	second := dl.Content()[1].(*DefinitionItem)
	require.Len(t, second.Content(), 2)
	nested, ok := second.Content()[1].(*DefinitionList)
	require.True(t, ok)
	assert.Equal(t, 2, nested.Depth())
}

func TestReadyNodesAttachOnce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.doc")
	defer teardown()
	//
	list := NewList(Ordered, 1)
	drv := newDriver()
	require.NoError(t, drv.send(t,
		NodeEvent(LevelParagraph, IDNewItem, list), WordEvent("one "),
		NodeEvent(LevelParagraph, IDNewItem, NewList(Ordered, 1)), WordEvent("two "),
	))
	require.Len(t, drv.d.Content(), 1)
	assert.Same(t, list, drv.d.Content()[0])
	assert.Len(t, list.Content(), 2)
	//
	dl := NewDefinitionList(1)
	drv = newDriver()
	require.NoError(t, drv.send(t,
		NodeEvent(LevelParagraph, IDNewDef, dl), WordEvent("term "),
		NodeEvent(LevelParagraph, IDNewDef, NewDefinitionList(1)), WordEvent("meaning "),
	))
	require.Len(t, drv.d.Content(), 1)
	require.Len(t, dl.Content(), 1)
	assert.Equal(t, "term ", TextOf(dl.Content()[0].(*DefinitionItem).Term()))
	//
	q := NewQuote(1)
	drv = newDriver()
	require.NoError(t, drv.send(t, NodeEvent(LevelParagraph, IDNewQuote, q), WordEvent("quoted ")))
	require.Len(t, drv.d.Content(), 1)
	assert.Equal(t, "quoted ", TextOf(q))
}

func TestNestedReadyList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.doc")
	defer teardown()
	//
	drv := newDriver()
	require.NoError(t, drv.send(t,
		ItemEvent(Unordered, 1), WordEvent("outer "),
		NodeEvent(LevelParagraph, IDNewItem, NewList(Unordered, 2)), WordEvent("inner "),
	))
	require.Len(t, drv.d.Content(), 1)
	outer := drv.d.Content()[0].(*List)
	require.Len(t, outer.Content(), 1)
	item := outer.Content()[0].(*ListItem)
	require.Len(t, item.Content(), 2)
	inner, ok := item.Content()[1].(*List)
	require.True(t, ok)
	assert.Equal(t, 2, inner.Depth())
	assert.Len(t, inner.Content(), 1)
}

func TestCleanupIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.doc")
	defer teardown()
	//
	drv := newDriver()
	require.NoError(t, drv.send(t,
		StyleEvent(Bold), StyleEvent(Bold), ParEndEvent(), // empty style in a paragraph
		RowEvent(), CellEvent(DataCell, AlignLeft, 1, 1), // empty cell, kept
		ParEndEvent(),
		WordEvent("x "), DocEndEvent(),
	))
	drv.d.Clean()
	once := dumpKinds(drv.d)
	drv.d.Clean()
	assert.Equal(t, once, dumpKinds(drv.d))
	assert.Equal(t, []Kind{KindDocument, KindTable, KindRow, KindCell, KindPar, KindWord}, once)
}

func dumpKinds(n Node) []Kind {
	var kinds []Kind
	Walk(n, func(x Node) bool {
		kinds = append(kinds, x.Kind())
		return true
	})
	return kinds
}

func TestLiteralBlock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.doc")
	defer teardown()
	//
	blk := NewBlock("code", "go")
	assert.Equal(t, "", blk.Text())
	blk.Add("package main")
	blk.Add("")
	assert.Equal(t, "package main\n\n", blk.Text())
	blk.Add("func main() {}")
	assert.Equal(t, []string{"package main", "", "func main() {}"}, blk.Lines())
	assert.Equal(t, 3, blk.LineCount())
	assert.Equal(t, "highlight", blk.Feature())
	assert.Equal(t, "listing", blk.Numbering())
	assert.NotNil(t, blk.b, "reading must not complete the text")
	blk.Clean()
	assert.Nil(t, blk.b)
	blk.Clean()
	assert.Equal(t, "package main\n\nfunc main() {}\n", blk.Text())
	assert.Nil(t, blk.b, "reading a completed block must not change it")
	blk.Add("}")
	assert.Equal(t, 4, blk.LineCount())
	assert.Equal(t, "}", blk.Lines()[3])
}

func TestLabels(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.doc")
	defer teardown()
	//
	d := NewDocument(nil)
	tbl := NewTable()
	require.NoError(t, d.BindLabel("tab:one", tbl))
	assert.Equal(t, "tab:one", tbl.Label())
	assert.Error(t, d.BindLabel("tab:one", NewTable()))
	assert.Error(t, d.BindLabel("p", NewPar()))
	n, ok := d.Lookup("tab:one")
	assert.True(t, ok)
	assert.Same(t, tbl, n)
	assert.Equal(t, []string{"tab:one"}, d.Labels())
}

func TestTableShape(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.doc")
	defer teardown()
	//
	drv := newDriver()
	require.NoError(t, drv.send(t,
		CellEvent(HeadCell, AlignCenter, 2, 1), WordEvent("H"),
		RowEvent(), WordEvent("a"), CellEvent(DataCell, AlignRight, 1, 1), WordEvent("b"),
	))
	tbl := drv.d.Content()[0].(*Table)
	require.Len(t, tbl.Rows(), 2)
	assert.Equal(t, 2, tbl.Columns())
	assert.True(t, tbl.Rows()[0].Cells()[0].IsHead())
	assert.Len(t, tbl.Rows()[1].Cells(), 2)
}
