package markdown

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/thot/backend"
	"github.com/npillmayer/thot/core"
	"github.com/npillmayer/thot/core/parameters"
	"github.com/npillmayer/thot/engine/assembly"
	"github.com/npillmayer/thot/engine/doc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFill(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.mdwriter")
	defer teardown()
	//
	f := NewFiller()
	lines := f.Fill("one two  three four five six seven eight nine ten", 20)
	assert.Equal(t, []string{"one two three four", "five six seven eight", "nine ten"}, lines)
	lines = f.Fill(strings.Repeat("a", 19)+" - b", 20)
	assert.Equal(t, []string{strings.Repeat("a", 19) + " -", "b"}, lines)
	assert.Equal(t, []string{""}, f.Fill("   ", 40))
}

const expected = "---\n" +
	"title: Notes\n" +
	"lang: de\n" +
	"---\n" +
	"\n" +
	"# Intro\n" +
	"\n" +
	"Some **x\\*y** and [a link](http://a.org)[^1]\n" +
	"\n" +
	"1. one\n" +
	"\n" +
	"2. two\n" +
	"\n" +
	"   - inner\n" +
	"\n" +
	"> quoted\n" +
	"\n" +
	"```go\n" +
	"x := 1\n" +
	"```\n" +
	"\n" +
	"---\n" +
	"\n" +
	"| A   | B   |\n" +
	"| :-- | --: |\n" +
	"| 1   | 2   |\n" +
	"\n" +
	"[^1]: see\n"

func TestDocument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.mdwriter")
	defer teardown()
	//
	m, err := assembly.New(assembly.Options{Vars: map[string]string{
		parameters.TITLE: "Notes",
		parameters.LANG:  "de",
	}})
	require.NoError(t, err)
	blk := doc.NewBlock("code", "go")
	blk.Add("x := 1")
	for _, ev := range []doc.Event{
		doc.HeaderEvent(0), doc.WordEvent("Intro"), doc.TitleEndEvent(),
		doc.WordEvent("Some "), doc.StyleEvent(doc.Bold), doc.WordEvent("x*y"), doc.StyleEvent(doc.Bold),
		doc.WordEvent(" and "), doc.LinkEvent("http://a.org"), doc.WordEvent("a link"), doc.CloseLinkEvent(),
		doc.FootNoteEvent(), doc.WordEvent("see"), doc.CloseFootNoteEvent(),
		doc.ParEndEvent(),
		doc.ItemEvent(doc.Ordered, 1), doc.WordEvent("one"),
		doc.ItemEvent(doc.Ordered, 1), doc.WordEvent("two"),
		doc.ItemEvent(doc.Unordered, 3), doc.WordEvent("inner"),
		doc.ParEndEvent(),
		doc.QuoteEvent(1), doc.WordEvent("quoted"), doc.ParEndEvent(),
		doc.BlockEvent(blk), doc.BlockEvent(doc.NewHorizontalLine()),
		doc.RowEvent(),
		doc.CellEvent(doc.HeadCell, doc.AlignLeft, 1, 1), doc.WordEvent("A"),
		doc.CellEvent(doc.HeadCell, doc.AlignRight, 1, 1), doc.WordEvent("B"),
		doc.RowEvent(),
		doc.CellEvent(doc.DataCell, doc.AlignDefault, 1, 1), doc.WordEvent("1"),
		doc.CellEvent(doc.DataCell, doc.AlignDefault, 1, 1), doc.WordEvent("2"),
		doc.ParEndEvent(),
	} {
		require.NoError(t, m.Send(ev))
	}
	d, err := m.Finish()
	require.NoError(t, err)
	var buf bytes.Buffer
	diags, err := Generate(d, &buf, backend.Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, diags.Len())
	assert.Equal(t, expected, buf.String())
}

func TestWrappedQuote(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.mdwriter")
	defer teardown()
	//
	m, err := assembly.New(assembly.Options{})
	require.NoError(t, err)
	text := strings.Repeat("lorem ipsum dolor sit amet ", 12)
	require.NoError(t, m.Send(doc.QuoteEvent(1)))
	require.NoError(t, m.Send(doc.WordEvent(text)))
	require.NoError(t, m.Send(doc.ParEndEvent()))
	require.NoError(t, m.Send(doc.CellEvent(doc.DataCell, doc.AlignDefault, 2, 1)))
	require.NoError(t, m.Send(doc.WordEvent("a|b")))
	d, err := m.Finish()
	require.NoError(t, err)
	var buf bytes.Buffer
	diags, err := Generate(d, &buf, backend.Options{Width: 40})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	quoted := 0
	for _, line := range lines {
		if !strings.HasPrefix(line, ">") {
			break
		}
		quoted++
		assert.LessOrEqual(t, utf8.RuneCountInString(line), 40, line)
	}
	assert.Greater(t, quoted, 5)
	assert.Contains(t, buf.String(), "\n\n| a\\|b |     |\n| ---- | --- |\n")
	assert.Equal(t, 1, diags.Count(core.EUNKNOWN))
}
