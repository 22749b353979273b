package xpathadapter

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/thot/core"
	"github.com/npillmayer/thot/engine/assembly"
	"github.com/npillmayer/thot/engine/doc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDocument(t *testing.T) *doc.Document {
	m, err := assembly.New(assembly.Options{})
	require.NoError(t, err)
	blk := doc.NewBlock("code", "go")
	blk.Add("x := 1")
	for _, ev := range []doc.Event{
		doc.HeaderEvent(0), doc.WordEvent("Intro"), doc.TitleEndEvent(),
		doc.WordEvent("text "),
		doc.ItemEvent(doc.Ordered, 1), doc.WordEvent("a "),
		doc.ItemEvent(doc.Ordered, 1), doc.WordEvent("b "),
		doc.ParEndEvent(),
		doc.HeaderEvent(1), doc.WordEvent("Details"), doc.TitleEndEvent(),
		doc.BlockEvent(blk),
	} {
		require.NoError(t, m.Send(ev))
	}
	require.NoError(t, m.Label("lst:x"))
	d, err := m.Finish()
	require.NoError(t, err)
	return d
}

func TestSelect(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.xpath")
	defer teardown()
	//
	d := buildDocument(t)
	headers, err := Select(d, "//header")
	require.NoError(t, err)
	require.Len(t, headers, 2)
	assert.Equal(t, 0, headers[0].HeaderLevel())
	assert.Equal(t, 1, headers[1].HeaderLevel())
	//
	items, err := Select(d, "//list[@kind='ol']/item")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "b ", doc.TextOf(items[1]))
	//
	pars, err := Select(d, "/header/par")
	require.NoError(t, err)
	require.Len(t, pars, 1)
	assert.Equal(t, "text ", doc.TextOf(pars[0]))
}

func TestFindByAttributeAndValue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.xpath")
	defer teardown()
	//
	d := buildDocument(t)
	n, err := Find(d, "//*[@label='lst:x']")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, doc.KindBlock, n.Kind())
	//
	n, err = Find(d, "//header[.='Details']")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, 1, n.HeaderLevel())
	//
	n, err = Find(d, "//table")
	assert.NoError(t, err)
	assert.Nil(t, n)
}

func TestEvaluate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.xpath")
	defer teardown()
	//
	d := buildDocument(t)
	v, err := Evaluate(d, "count(//item)")
	require.NoError(t, err)
	assert.Equal(t, float64(2), v)
	v, err = Evaluate(d, "string(//block/@lang)")
	require.NoError(t, err)
	assert.Equal(t, "go", v)
}

func TestInvalidExpression(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.xpath")
	defer teardown()
	//
	_, err := Select(doc.NewDocument(nil), "//[")
	require.Error(t, err)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestNavigatorMoves(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.xpath")
	defer teardown()
	//
	d := buildDocument(t)
	nav := NewNavigator(d)
	require.True(t, nav.MoveToChild()) // header 0
	assert.Equal(t, "header", nav.LocalName())
	assert.Equal(t, "Intro", nav.Value())
	require.True(t, nav.MoveToChild()) // par
	require.True(t, nav.MoveToNext())  // list
	assert.Equal(t, "list", nav.LocalName())
	cp := nav.Copy().(*NodeNavigator)
	require.True(t, nav.MoveToNext()) // header 1
	assert.False(t, nav.MoveToNext())
	assert.Equal(t, "list", cp.LocalName(), "copy must not follow the original")
	require.True(t, nav.MoveToPrevious())
	require.True(t, nav.MoveToFirst())
	assert.Equal(t, "par", nav.LocalName())
	assert.False(t, nav.MoveToNextAttribute())
	nav.MoveToRoot()
	assert.Equal(t, "document", nav.LocalName())
	assert.False(t, nav.MoveToParent())
}
