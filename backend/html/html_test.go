package html

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/thot/backend"
	"github.com/npillmayer/thot/core"
	"github.com/npillmayer/thot/core/exttool"
	"github.com/npillmayer/thot/core/locate/resources"
	"github.com/npillmayer/thot/core/parameters"
	"github.com/npillmayer/thot/engine/assembly"
	"github.com/npillmayer/thot/engine/doc"
	"github.com/npillmayer/thot/input/dokuwiki"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `@TITLE=Sample
@TOC=yes
====== Intro ======
Some **bold** text((a note)) and a [[#tab:values|reference]].
===== Part =====
^ A ^ B ^
| spans ||
@caption Values
@label tab:values
<code go>
x := 1
</code>
@caption Code
====== Next ======
  * one
  * two
`

func assemble(t *testing.T, input string, vars map[string]string) *doc.Document {
	m, err := assembly.New(assembly.Options{Dialect: dokuwiki.Name, Vars: vars})
	require.NoError(t, err)
	require.NoError(t, m.ParseString(input, "sample.txt"))
	d, err := m.Finish()
	require.NoError(t, err)
	return d
}

func render(t *testing.T, d *doc.Document, opts backend.Options) (*goquery.Document, *core.Diagnostics) {
	var buf bytes.Buffer
	diags, err := Generate(d, &buf, opts)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(buf.String(), "<!DOCTYPE html>"))
	page, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return page, diags
}

func TestSections(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.html")
	defer teardown()
	//
	page, diags := render(t, assemble(t, sample, nil), backend.Options{})
	assert.Equal(t, 0, diags.Len())
	assert.Equal(t, "Sample", page.Find("head title").Text())
	assert.Equal(t, "Sample", page.Find("header.title h1").Text())
	sections := page.Find("body > section[id^='sec-']")
	assert.Equal(t, 2, sections.Length())
	assert.Equal(t, 1, page.Find("section.footnotes").Length())
	assert.Equal(t, "sec-1", sections.First().AttrOr("id", ""))
	assert.Equal(t, "1 Intro", sections.First().Find("h1").Text())
	assert.Equal(t, "1.1 Part", page.Find("section section h2").Text())
	assert.Equal(t, 2, page.Find("section ul li").Length())
}

func TestTableOfContents(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.html")
	defer teardown()
	//
	page, _ := render(t, assemble(t, sample, nil), backend.Options{})
	toc := page.Find("nav.toc")
	require.Equal(t, 1, toc.Length())
	assert.Equal(t, "Contents", toc.Find("h1").Text())
	assert.Equal(t, 2, toc.Find("nav > ul > li").Length())
	nested := toc.Find("nav > ul > li > ul > li a")
	assert.Equal(t, "#sec-1.1", nested.AttrOr("href", ""))
	assert.Equal(t, "1.1 Part", nested.Text())
}

func TestTablesAndListings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.html")
	defer teardown()
	//
	page, _ := render(t, assemble(t, sample, nil), backend.Options{})
	table := page.Find("table[id='tab:values']")
	require.Equal(t, 1, table.Length())
	assert.Equal(t, "Table 1: Values", table.Find("caption").Text())
	assert.Equal(t, 2, table.Find("th").Length())
	assert.Equal(t, "2", table.Find("td").AttrOr("colspan", ""))
	listing := page.Find("div.listing")
	assert.Equal(t, "x := 1\n", listing.Find("pre.code code.language-go").Text())
	assert.Equal(t, "Listing 1: Code", listing.Find("p.caption").Text())
	assert.Equal(t, "#tab:values", page.Find("section p > a").AttrOr("href", ""))
}

func TestFootNotes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.html")
	defer teardown()
	//
	page, _ := render(t, assemble(t, sample, nil), backend.Options{})
	assert.Equal(t, "bold", page.Find("p strong").Text())
	ref := page.Find("sup.footnote-ref a")
	assert.Equal(t, "#fn-1", ref.AttrOr("href", ""))
	note := page.Find("section.footnotes li#fn-1")
	require.Equal(t, 1, note.Length())
	assert.Contains(t, note.Text(), "a note")
}

func TestUnknownStyleAndDefinitions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.html")
	defer teardown()
	//
	m, err := assembly.New(assembly.Options{})
	require.NoError(t, err)
	for _, ev := range []doc.Event{
		doc.OpenStyleEvent("blink"), doc.WordEvent("x"), doc.CloseStyleEvent("blink"),
		doc.ParEndEvent(),
		doc.DefEvent(1), doc.WordEvent("term"),
		doc.DefEvent(1), doc.WordEvent("meaning"),
	} {
		require.NoError(t, m.Send(ev))
	}
	d, err := m.Finish()
	require.NoError(t, err)
	page, diags := render(t, d, backend.Options{})
	assert.Equal(t, "x", page.Find("span.blink").Text())
	assert.Equal(t, 1, diags.Count(core.EUNKNOWN))
	assert.Equal(t, "term", page.Find("dl dt").Text())
	assert.Equal(t, "meaning", page.Find("dl dd p").Text())
}

func TestBrokenImages(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.html")
	defer teardown()
	//
	dir := t.TempDir()
	d := assemble(t, "{{missing.png}}\n", map[string]string{
		parameters.THOT_FILE: filepath.Join(dir, "doc.txt"),
	})
	page, diags := render(t, d, backend.Options{Check: true})
	assert.Equal(t, "[missing.png]", page.Find("span.broken").Text())
	assert.Equal(t, 1, diags.Count(core.EMISSING))
}

func TestImagesBecomeFriends(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.html")
	defer teardown()
	//
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "pic.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, 4, 4))))
	f.Close()
	d := assemble(t, "{{pic.png?8}}\n", map[string]string{
		parameters.THOT_FILE: filepath.Join(dir, "doc.txt"),
	})
	out := filepath.Join(dir, "out.html")
	page, diags := render(t, d, backend.Options{Check: true, Friends: resources.NewFriends(out)})
	assert.Equal(t, 0, diags.Len())
	img := page.Find("img")
	assert.Equal(t, "out-imports/pic.png", img.AttrOr("src", ""))
	assert.Equal(t, "8", img.AttrOr("width", ""))
	_, err = os.Stat(filepath.Join(dir, "out-imports", "pic.png"))
	assert.NoError(t, err)
}

func TestHighlighting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.html")
	defer teardown()
	//
	d := assemble(t, "<code go>\nx := 1\n</code>\n", nil)
	page, diags := render(t, d, backend.Options{Highlight: exttool.Parse(`sed -e s/x/<b>x<\/b>/`)})
	assert.Equal(t, 0, diags.Len())
	assert.Equal(t, "x", page.Find("pre b").Text())
	assert.Equal(t, 0, page.Find("pre code").Length())
	//
	page, diags = render(t, d, backend.Options{Highlight: exttool.Parse("false")})
	assert.Equal(t, 1, diags.Count(core.EEXTERNAL))
	assert.Equal(t, "x := 1\n", page.Find("pre code").Text())
}

func TestStylesheet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "thot.html")
	defer teardown()
	//
	d := assemble(t, "text\n", nil)
	page, diags := render(t, d, backend.Options{Stylesheet: "p.note { color: red; }"})
	assert.Equal(t, 0, diags.Len())
	css := page.Find("head style").Text()
	assert.Contains(t, css, "p.note {")
	assert.Contains(t, css, "color: red;")
	assert.Contains(t, css, "span.broken")
}
