package dokuwiki

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/thot/core/dimen"
	"github.com/npillmayer/thot/core/parameters"
	"github.com/npillmayer/thot/engine/assembly"
	"github.com/npillmayer/thot/engine/doc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assemble(t *testing.T, input string) *doc.Document {
	m, err := assembly.New(assembly.Options{
		Dialect: Name,
		Vars:    map[string]string{parameters.THOT_BASE: "/usr/share/thot"},
	})
	require.NoError(t, err)
	require.NoError(t, m.ParseString(input, "test.txt"))
	d, err := m.Finish()
	require.NoError(t, err)
	return d
}

func find(root doc.Node, kind doc.Kind) []doc.Node {
	var found []doc.Node
	doc.Walk(root, func(n doc.Node) bool {
		if n.Kind() == kind {
			found = append(found, n)
		}
		return true
	})
	return found
}

func TestHeaders(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.dokuwiki")
	defer teardown()
	//
	d := assemble(t, `====== Top ======
intro
===== Sub =====
text
====== Second ======
`)
	top := d.Content()
	require.Len(t, top, 2)
	h, ok := top[0].(*doc.Header)
	require.True(t, ok)
	assert.Equal(t, 0, h.HeaderLevel())
	assert.Equal(t, "Top", doc.TextOf(h.Title()))
	require.Len(t, h.Content(), 2)
	sub, ok := h.Content()[1].(*doc.Header)
	require.True(t, ok)
	assert.Equal(t, 1, sub.HeaderLevel())
	assert.Equal(t, "text ", doc.TextOf(sub.Content()[0]))
	assert.Equal(t, "Second", doc.TextOf(top[1].(*doc.Header).Title()))
}

func TestLists(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.dokuwiki")
	defer teardown()
	//
	d := assemble(t, "  * one\n  * two\n    * nested\n  - first\n")
	top := d.Content()
	require.Len(t, top, 2)
	ul := top[0].(*doc.List)
	assert.Equal(t, doc.Unordered, ul.ListKind())
	require.Len(t, ul.Content(), 2)
	second := ul.Content()[1]
	require.Len(t, second.Content(), 2)
	nested, ok := second.Content()[1].(*doc.List)
	require.True(t, ok)
	assert.Equal(t, 4, nested.Depth())
	ol := top[1].(*doc.List)
	assert.Equal(t, doc.Ordered, ol.ListKind())
	assert.Equal(t, "first ", doc.TextOf(ol))
}

func TestItemTextIsNotMarkup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.dokuwiki")
	defer teardown()
	//
	d := assemble(t, "  * a\n  * \n  * b\n  * ====== x ======\n")
	top := d.Content()
	require.Len(t, top, 1)
	ul := top[0].(*doc.List)
	require.Len(t, ul.Content(), 3)
	assert.Equal(t, "a ", doc.TextOf(ul.Content()[0]))
	assert.Equal(t, "b ", doc.TextOf(ul.Content()[1]))
	assert.Equal(t, "====== x ====== ", doc.TextOf(ul.Content()[2]))
	assert.Empty(t, find(d, doc.KindHeader))
}

func TestTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.dokuwiki")
	defer teardown()
	//
	d := assemble(t, "^ Name ^ Value ^\n| a    |  1 |\n| spans||\n")
	tables := find(d, doc.KindTable)
	require.Len(t, tables, 1)
	table := tables[0].(*doc.Table)
	rows := table.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, 2, table.Columns())
	head := rows[0].Cells()
	require.Len(t, head, 2)
	assert.True(t, head[0].IsHead())
	assert.Equal(t, "Value", doc.TextOf(head[1]))
	data := rows[1].Cells()
	require.Len(t, data, 2)
	assert.False(t, data[0].IsHead())
	assert.Equal(t, doc.AlignLeft, data[0].Align())
	assert.Equal(t, doc.AlignRight, data[1].Align())
	spanning := rows[2].Cells()
	require.Len(t, spanning, 1)
	h, v := spanning[0].Span()
	assert.Equal(t, 2, h)
	assert.Equal(t, 1, v)
}

func TestSplitRow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.dokuwiki")
	defer teardown()
	//
	cells := splitRow("| [[a|b]] | {{x.png|y}} ^ c |")
	require.Len(t, cells, 3)
	assert.Equal(t, "[[a|b]]", cells[0].text)
	assert.Equal(t, "{{x.png|y}}", cells[1].text)
	assert.Equal(t, doc.HeadCell, cells[2].kind)
	assert.Equal(t, doc.AlignDefault, cells[2].align)
}

func TestInlineMarkup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.dokuwiki")
	defer teardown()
	//
	d := assemble(t, "Some **bold** and [[http://x.org|the //site//]] {{ pic.png?200x100|A pic}}((note))\n")
	require.Len(t, d.Content(), 1)
	par := d.Content()[0]
	assert.Equal(t, doc.KindPar, par.Kind())
	links := find(d, doc.KindLink)
	require.Len(t, links, 1)
	assert.Equal(t, "http://x.org", links[0].(*doc.Link).URL)
	assert.Equal(t, "the site", doc.TextOf(links[0]))
	assert.Len(t, find(links[0], doc.KindStyle), 1)
	images := find(d, doc.KindImage)
	require.Len(t, images, 1)
	img := images[0].(*doc.Image)
	assert.Equal(t, "pic.png", img.URL)
	assert.Equal(t, doc.AlignRight, img.Align)
	assert.Equal(t, 200*dimen.PX, img.Size.W)
	assert.Equal(t, 100*dimen.PX, img.Size.H)
	assert.Equal(t, "A pic", img.Title)
	notes := find(d, doc.KindFootNote)
	require.Len(t, notes, 1)
	assert.Equal(t, "note", doc.TextOf(notes[0]))
	for _, f := range []string{"link", "image", "footnote"} {
		assert.True(t, d.Has(f), "document should require feature %s", f)
	}
}

func TestUnlabeledLinks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.dokuwiki")
	defer teardown()
	//
	d := assemble(t, "see [[https://a.org/x]], https://b.org or <me@example.com>\n")
	links := find(d, doc.KindLink)
	require.Len(t, links, 3)
	assert.Equal(t, "https://a.org/x", doc.TextOf(links[0]))
	assert.Equal(t, "https://b.org", links[1].(*doc.Link).URL)
	assert.Equal(t, "mailto:me@example.com", links[2].(*doc.Link).URL)
	assert.Equal(t, "me@example.com", doc.TextOf(links[2]))
}

func TestEntitiesAndSmileys(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.dokuwiki")
	defer teardown()
	//
	d := assemble(t, "a <-> b -> c :-) (c) 2021...\n")
	var glyphs []rune
	for _, g := range find(d, doc.KindGlyph) {
		glyphs = append(glyphs, g.(*doc.Glyph).Code)
	}
	assert.Equal(t, []rune{'↔', '→', '©', '…'}, glyphs)
	images := find(d, doc.KindImage)
	require.Len(t, images, 1)
	assert.Equal(t, "/usr/share/thot/smileys/icon_smile.gif", images[0].(*doc.Image).URL)
	assert.Contains(t, entities.pattern(), `<->|<=>`)
}

func TestLiteralBlocks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.dokuwiki")
	defer teardown()
	//
	d := assemble(t, `<code go>
func main() {}
</code>
text
  indented **one**
  indented two
after
`)
	top := d.Content()
	require.Len(t, top, 4)
	code := top[0].(*doc.Block)
	assert.Equal(t, "code", code.Class)
	assert.Equal(t, "go", code.Lang)
	assert.Equal(t, []string{"func main() {}"}, code.Lines())
	pre := top[2].(*doc.Block)
	assert.Equal(t, "pre", pre.Class)
	assert.Equal(t, []string{"indented **one**", "indented two"}, pre.Lines())
	assert.Equal(t, "after ", doc.TextOf(top[3]))
}

func TestQuotesAndRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.dokuwiki")
	defer teardown()
	//
	d := assemble(t, "> a\n> b\n>> c\n\n----\nd\n")
	top := d.Content()
	require.Len(t, top, 4)
	q := top[0].(*doc.Quote)
	assert.Equal(t, 1, q.Depth())
	require.Len(t, q.Content(), 1)
	assert.Equal(t, "a b ", doc.TextOf(q))
	assert.Equal(t, 2, top[1].(*doc.Quote).Depth())
	assert.Equal(t, doc.KindHLine, top[2].Kind())
	assert.Equal(t, "d ", doc.TextOf(top[3]))
}

func TestNonparsedAndLineBreak(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.dokuwiki")
	defer teardown()
	//
	d := assemble(t, "%%**x**%% a\\\\ b\n")
	assert.Empty(t, find(d, doc.KindStyle))
	assert.Len(t, find(d, doc.KindLineBreak), 1)
	assert.Equal(t, "**x** ab ", doc.TextOf(d))
}

func TestIndentedBlockAtEndOfInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.dokuwiki")
	defer teardown()
	//
	m, err := assembly.New(assembly.Options{Dialect: Name})
	require.NoError(t, err)
	require.NoError(t, m.ParseString("text\n  last line", "test.txt"))
	d, err := m.Finish()
	require.NoError(t, err)
	assert.Equal(t, 0, m.Diagnostics().Len())
	blocks := find(d, doc.KindBlock)
	require.Len(t, blocks, 1)
	assert.Equal(t, []string{"last line"}, blocks[0].(*doc.Block).Lines())
}
