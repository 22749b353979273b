package backend

import (
	"bytes"
	"io"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/thot/core"
	"github.com/npillmayer/thot/engine/assembly"
	"github.com/npillmayer/thot/engine/doc"
	"github.com/npillmayer/thot/input/dokuwiki"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `@LANG=de
@TOC=yes
====== Intro ======
text
===== Part =====
^ A ^ B ^
| 1 | 2 |
@caption Values
@label tab:values
<code go>
x := 1
</code>
@caption Code
====== Next ======
more
`

func assemble(t *testing.T, input string) *doc.Document {
	m, err := assembly.New(assembly.Options{Dialect: dokuwiki.Name})
	require.NoError(t, err)
	require.NoError(t, m.ParseString(input, "sample.txt"))
	d, err := m.Finish()
	require.NoError(t, err)
	return d
}

func TestHeaderNumbers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.backend")
	defer teardown()
	//
	p := Prepare(assemble(t, sample))
	toc := p.TOC(-1)
	require.Len(t, toc, 3)
	assert.Equal(t, "1", toc[0].Number)
	assert.Equal(t, "Intro", toc[0].Title)
	assert.Equal(t, "1.1", toc[1].Number)
	assert.Equal(t, 1, toc[1].Level)
	assert.Equal(t, "sec-1.1", toc[1].Anchor)
	assert.Equal(t, "2", toc[2].Number)
	assert.Len(t, p.TOC(0), 2)
	depth, ok := TOCDepth(p.Doc)
	assert.True(t, ok)
	assert.Equal(t, -1, depth)
}

func TestCaptionsAndLabels(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.backend")
	defer teardown()
	//
	p := Prepare(assemble(t, sample))
	n, anchor, ok := p.Resolve("tab:values")
	require.True(t, ok)
	assert.Equal(t, doc.KindTable, n.Kind())
	assert.Equal(t, "tab:values", anchor)
	assert.Equal(t, 1, p.Number(n))
	assert.Equal(t, "Tabelle 1: ", p.CaptionPrefix(n))
	assert.Equal(t, "Values", doc.TextOf(n.Caption()))
	var blocks []doc.Node
	doc.Walk(p.Doc, func(n doc.Node) bool {
		if n.Kind() == doc.KindBlock {
			blocks = append(blocks, n)
		}
		return true
	})
	require.Len(t, blocks, 1)
	assert.Equal(t, "Listing 1: ", p.CaptionPrefix(blocks[0]))
	assert.Equal(t, "", p.AnchorOf(blocks[0]))
	_, _, ok = p.Resolve("nope")
	assert.False(t, ok)
}

func TestUncaptionedNodesAreNotNumbered(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.backend")
	defer teardown()
	//
	p := Prepare(assemble(t, "^ A ^\n\n^ B ^\n@caption Second\n"))
	var tables []doc.Node
	doc.Walk(p.Doc, func(n doc.Node) bool {
		if n.Kind() == doc.KindTable {
			tables = append(tables, n)
		}
		return true
	})
	require.Len(t, tables, 2)
	assert.Equal(t, "", p.CaptionPrefix(tables[0]))
	assert.Equal(t, "Table 1: ", p.CaptionPrefix(tables[1]))
	_, ok := TOCDepth(p.Doc)
	assert.False(t, ok)
}

func TestAnchor(t *testing.T) {
	assert.Equal(t, "fig:a-b", Anchor("fig:a b"))
	assert.Equal(t, "x-y", Anchor("x/y"))
}

func TestTranslator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.backend")
	defer teardown()
	//
	assert.Equal(t, "Sommaire", TranslatorFor("fr_FR").Get(MsgContents))
	assert.Equal(t, "Inhalt", TranslatorFor("de-AT").Get(MsgContents))
	assert.Equal(t, "Contents", TranslatorFor("").Get(MsgContents))
	assert.Equal(t, "Contents", TranslatorFor("xx").Get(MsgContents))
	assert.Equal(t, "Figure 3: ", TranslatorFor("en").Caption(GroupFigure, 3))
	assert.Equal(t, "chart 2: ", TranslatorFor("en").Caption("chart", 2))
	assert.Equal(t, "unknown", TranslatorFor("en").Get("unknown"))
}

func TestBaseCollectsWarnings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.backend")
	defer teardown()
	//
	b := NewBase("test")
	b.Warn(nil)
	b.UnknownStyle("blink")
	b.Warnf(core.EMISSING, "image %s missing", "x.png")
	assert.Equal(t, "test", b.Name())
	assert.Equal(t, 2, b.Diagnostics().Len())
	assert.Equal(t, 1, b.Diagnostics().Count(core.EUNKNOWN))
}

func TestRegistry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.backend")
	defer teardown()
	//
	gen := func(d *doc.Document, w io.Writer, opts Options) (*core.Diagnostics, error) {
		_, err := io.WriteString(w, "ok")
		return &core.Diagnostics{}, err
	}
	Register("test-format", gen)
	assert.Panics(t, func() { Register("test-format", gen) })
	found, err := Lookup("test-format")
	require.NoError(t, err)
	var buf bytes.Buffer
	_, err = found(nil, &buf, Options{})
	require.NoError(t, err)
	assert.Equal(t, "ok", buf.String())
	assert.Contains(t, Names(), "test-format")
	_, err = Lookup("nope")
	assert.Equal(t, core.EINVALID, core.Code(err))
}
