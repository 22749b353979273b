package textile

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/thot/core/dimen"
	"github.com/npillmayer/thot/core/percent"
	"github.com/npillmayer/thot/engine/assembly"
	"github.com/npillmayer/thot/engine/doc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assemble(t *testing.T, input string) *doc.Document {
	m, err := assembly.New(assembly.Options{Dialect: Name})
	require.NoError(t, err)
	require.NoError(t, m.ParseString(input, "test.textile"))
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

func TestHeadersAndParagraphs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.textile")
	defer teardown()
	//
	d := assemble(t, "h1. Title\n\np. first\nsecond\np. third\nh2. Sub\ntext\n")
	require.Len(t, d.Content(), 1)
	h := d.Content()[0].(*doc.Header)
	assert.Equal(t, 0, h.HeaderLevel())
	assert.Equal(t, "Title", doc.TextOf(h.Title()))
	body := h.Content()
	require.Len(t, body, 3)
	assert.Equal(t, "first second ", doc.TextOf(body[0]))
	assert.Equal(t, "third ", doc.TextOf(body[1]))
	assert.Equal(t, 1, body[2].HeaderLevel())
}

func TestListsAndDefinitions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.textile")
	defer teardown()
	//
	d := assemble(t, "* a\n** b\n# c\n\n; term\n: def\n- cat := animal\n")
	top := d.Content()
	require.Len(t, top, 3)
	ul := top[0].(*doc.List)
	assert.Equal(t, doc.Unordered, ul.ListKind())
	assert.Len(t, find(ul, doc.KindList), 2)
	assert.Equal(t, doc.Ordered, top[1].(*doc.List).ListKind())
	dl := top[2].(*doc.DefinitionList)
	items := dl.Content()
	require.Len(t, items, 2)
	first := items[0].(*doc.DefinitionItem)
	assert.Equal(t, "term", doc.TextOf(first.Term()))
	assert.Equal(t, "def ", doc.TextOf(first))
	second := items[1].(*doc.DefinitionItem)
	assert.Equal(t, "cat", doc.TextOf(second.Term()))
	assert.Equal(t, "animal ", doc.TextOf(second))
}

func TestItemTextIsNotMarkup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.textile")
	defer teardown()
	//
	d := assemble(t, "* a\n* \n* h2. b\n; t\n: bq. c\n- p. x := bc. y\n")
	top := d.Content()
	require.Len(t, top, 2)
	ul := top[0].(*doc.List)
	require.Len(t, ul.Content(), 2)
	assert.Equal(t, "h2. b ", doc.TextOf(ul.Content()[1]))
	dl := top[1].(*doc.DefinitionList)
	require.Len(t, dl.Content(), 2)
	assert.Equal(t, "bq. c ", doc.TextOf(dl.Content()[0]))
	assert.Equal(t, "bc. y ", doc.TextOf(dl.Content()[1]))
	assert.Empty(t, find(d, doc.KindHeader))
	assert.Empty(t, find(d, doc.KindQuote))
	assert.Empty(t, find(d, doc.KindBlock))
}

func TestTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.textile")
	defer teardown()
	//
	d := assemble(t, "table.\n|_. Name|_. Value|\n|a|\\2. wide|\n|/2>. tall|b|\n")
	tables := find(d, doc.KindTable)
	require.Len(t, tables, 1)
	rows := tables[0].(*doc.Table).Rows()
	require.Len(t, rows, 3)
	for _, c := range rows[0].Cells() {
		assert.True(t, c.IsHead())
	}
	wide := rows[1].Cells()[1]
	h, _ := wide.Span()
	assert.Equal(t, 2, h)
	assert.Equal(t, "wide", doc.TextOf(wide))
	tall := rows[2].Cells()[0]
	_, v := tall.Span()
	assert.Equal(t, 2, v)
	assert.Equal(t, doc.AlignRight, tall.Align())
	assert.Equal(t, "tall", doc.TextOf(tall))
}

func TestPhrases(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.textile")
	defer teardown()
	//
	d := assemble(t, `This is *strong*, _em_ and @x := 1@ with "a *link*":http://x.org/p. (c)`)
	styles := find(d, doc.KindStyle)
	require.Len(t, styles, 4)
	var names []string
	for _, s := range styles {
		names = append(names, s.(*doc.Style).Style())
	}
	assert.Equal(t, []string{doc.Bold, doc.Italic, doc.Monospace, doc.Bold}, names)
	assert.Equal(t, "x := 1", doc.TextOf(styles[2]))
	links := find(d, doc.KindLink)
	require.Len(t, links, 1)
	assert.Equal(t, "http://x.org/p", links[0].(*doc.Link).URL)
	glyphs := find(d, doc.KindGlyph)
	require.Len(t, glyphs, 1)
	assert.Equal(t, '©', glyphs[0].(*doc.Glyph).Code)
}

func TestHyphensAreNotDeletions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.textile")
	defer teardown()
	//
	d := assemble(t, "a well-known snake_case - term\n")
	assert.Empty(t, find(d, doc.KindStyle))
	assert.Equal(t, "a well-known snake_case - term ", doc.TextOf(d))
}

func TestImages(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.textile")
	defer teardown()
	//
	d := assemble(t, "!>pic.png 200x100(Alt text)!:http://x.org and !small.png 50%!\n")
	images := find(d, doc.KindImage)
	require.Len(t, images, 2)
	pic := images[0].(*doc.Image)
	assert.Equal(t, "pic.png", pic.URL)
	assert.Equal(t, doc.AlignRight, pic.Align)
	assert.Equal(t, 200*dimen.PX, pic.Size.W)
	assert.Equal(t, "Alt text", pic.Title)
	links := find(d, doc.KindLink)
	require.Len(t, links, 1)
	assert.Len(t, find(links[0], doc.KindImage), 1)
	assert.Equal(t, percent.FromInt(50), images[1].(*doc.Image).Scale)
}

func TestCodeAndQuotes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.textile")
	defer teardown()
	//
	d := assemble(t, "bc.. line one\n  line two\n\np. after\nbq. quoted\nmore\nbc. x = 1\n")
	top := d.Content()
	require.Len(t, top, 4)
	blk := top[0].(*doc.Block)
	assert.Equal(t, []string{"line one", "  line two", ""}, blk.Lines())
	assert.Equal(t, "after ", doc.TextOf(top[1]))
	q := top[2].(*doc.Quote)
	assert.Equal(t, "quoted more ", doc.TextOf(q))
	assert.Equal(t, []string{"x = 1"}, top[3].(*doc.Block).Lines())
}
